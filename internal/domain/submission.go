// Package domain holds the persisted record shapes shared by the storage,
// service, and handler layers.
package domain

// Envelope is the three-field AES-GCM wire shape used both for sealed
// submission plaintext and for a wrapped DEK. All three fields are
// base64-encoded per spec.
type Envelope struct {
	Ciphertext string `json:"ciphertext"`
	Nonce      string `json:"nonce"`
	Tag        string `json:"tag"`
}

// Submission is an anonymous, PoW-gated, commitment-admitted record. It is
// keyed by a sequential decimal string (msg_id) in the Submissions document.
type Submission struct {
	Ciphertext  string    `json:"ciphertext"`
	Nonce       string    `json:"nonce"`
	Tag         string    `json:"tag"`
	WrappedDEK  *Envelope `json:"wrapped_dek"`
	Commitment  string    `json:"commitment"`
	CreatedAt   string    `json:"created_at"`
	Expiry      string    `json:"expiry"`
}

// Expired reports whether the submission's DEK has already been destroyed.
func (s *Submission) Expired() bool {
	return s.WrappedDEK == nil
}

// ChatMessage is an opaque end-to-end-encrypted message the server cannot
// decrypt. Keyed by a UUIDv4 message_id in the ChatMessages document.
type ChatMessage struct {
	EncryptedMessage string `json:"encrypted_message"`
	EncryptedKey     string `json:"encrypted_key"`
	Receiver         string `json:"receiver"`
	CreatedAt        string `json:"created_at"`
	Expiry           string `json:"expiry"`
	Expired          bool   `json:"expired"`
}

// Proof is a proof-of-existence record: the leaf hash that was folded into
// the Merkle tree, plus an optional RSA-PSS signature (chat messages always
// carry one; anonymous submissions never do, per spec).
type Proof struct {
	DataHash  string `json:"data_hash"`
	Signature string `json:"signature,omitempty"`
	CreatedAt string `json:"created_at"`
}
