// Package verify implements the read-only proof-of-existence surface
// (spec §4.11): Merkle root, hash lookup, inclusion proofs, and signature
// verification, all recomputed fresh from the proof ledger on every call.
package verify

import (
	"vaultchat-backend/internal/cryptoutil/merkle"
	"vaultchat-backend/internal/cryptoutil/signx"
	"vaultchat-backend/internal/storage"
	"vaultchat-backend/internal/vault"
	apperr "vaultchat-backend/pkg/errors"
)

// Service implements the verification endpoints.
type Service struct {
	proofs      *storage.ProofRepo
	submissions *storage.SubmissionRepo
	chat        *storage.ChatRepo
	vault       *vault.Vault
}

// New returns a verify Service.
func New(proofs *storage.ProofRepo, submissions *storage.SubmissionRepo, chat *storage.ChatRepo, v *vault.Vault) *Service {
	return &Service{proofs: proofs, submissions: submissions, chat: chat, vault: v}
}

// RootResult is returned by Root.
type RootResult struct {
	MerkleRoot       string `json:"merkle_root"`
	TotalSubmissions int    `json:"total_submissions"`
}

// Root recomputes the Merkle root over every proof record's hash, in
// insertion order. An empty ledger reports a blank root and zero count,
// not an error.
func (s *Service) Root() (RootResult, error) {
	doc, err := s.proofs.All()
	if err != nil {
		return RootResult{}, apperr.InternalFrom(err)
	}
	hashes := doc.OrderedHashes()
	return RootResult{
		MerkleRoot:       merkle.BuildRoot(hashes),
		TotalSubmissions: len(hashes),
	}, nil
}

// HashCheckResult is returned by HashCheck.
type HashCheckResult struct {
	DataHash   string `json:"data_hash"`
	Found      bool   `json:"found"`
	MerkleRoot string `json:"merkle_root"`
}

// HashCheck reports whether plaintext's hash appears anywhere in the
// proof ledger.
func (s *Service) HashCheck(plaintext string) (HashCheckResult, error) {
	doc, err := s.proofs.All()
	if err != nil {
		return HashCheckResult{}, apperr.InternalFrom(err)
	}
	hashes := doc.OrderedHashes()
	target := merkle.HashLeaf([]byte(plaintext))

	found := false
	for _, h := range hashes {
		if h == target {
			found = true
			break
		}
	}

	return HashCheckResult{
		DataHash:   target,
		Found:      found,
		MerkleRoot: merkle.BuildRoot(hashes),
	}, nil
}

// InclusionProofResult is returned by InclusionProof.
type InclusionProofResult struct {
	LeafHash   string        `json:"leaf_hash"`
	MerkleRoot string        `json:"merkle_root"`
	ProofPath  []merkle.Step `json:"proof_path"`
}

// InclusionProof builds the Merkle inclusion proof for id.
func (s *Service) InclusionProof(id string) (InclusionProofResult, error) {
	doc, err := s.proofs.All()
	if err != nil {
		return InclusionProofResult{}, apperr.InternalFrom(err)
	}

	idx := doc.IndexOf(id)
	if idx < 0 {
		return InclusionProofResult{}, apperr.NotFound("no proof record for that id")
	}

	hashes := doc.OrderedHashes()
	root, path := merkle.BuildProof(hashes, idx)

	return InclusionProofResult{
		LeafHash:   hashes[idx],
		MerkleRoot: root,
		ProofPath:  path,
	}, nil
}

// SignatureVerifyResult is returned by SignatureVerify. Exactly one of
// (Valid set, Note set) is populated, matching the spec's two response
// shapes for this endpoint.
type SignatureVerifyResult struct {
	Valid *bool  `json:"valid,omitempty"`
	Note  string `json:"note,omitempty"`
	Hash  string `json:"hash"`
}

// SignatureVerify recomputes the hash over a record's current stored
// content and checks the recorded signature against it. Records with no
// recorded signature (submissions, by default) report a note instead of a
// verdict.
func (s *Service) SignatureVerify(id string) (SignatureVerifyResult, error) {
	proof, ok, err := s.proofs.Get(id)
	if err != nil {
		return SignatureVerifyResult{}, apperr.InternalFrom(err)
	}
	if !ok {
		return SignatureVerifyResult{}, apperr.NotFound("no proof record for that id")
	}

	if proof.Signature == "" {
		return SignatureVerifyResult{
			Note: "no signature recorded for this record",
			Hash: proof.DataHash,
		}, nil
	}

	currentHash, err := s.currentContentHash(id)
	if err != nil {
		return SignatureVerifyResult{}, err
	}

	valid := signx.Verify(s.vault.SigningPublicKey(), []byte(currentHash), proof.Signature)
	return SignatureVerifyResult{Valid: &valid, Hash: currentHash}, nil
}

// currentContentHash recomputes the hash over whatever content id's
// record currently holds. For a chat message it hashes encrypted_message,
// the same input hashed at send time. For a submission it hashes the
// stored ciphertext, which differs from the plaintext hash recorded at
// admission.
func (s *Service) currentContentHash(id string) (string, error) {
	if msg, ok, err := s.chat.Get(id); err != nil {
		return "", apperr.InternalFrom(err)
	} else if ok {
		return merkle.HashLeaf([]byte(msg.EncryptedMessage)), nil
	}

	sub, ok, err := s.submissions.Get(id)
	if err != nil {
		return "", apperr.InternalFrom(err)
	}
	if !ok {
		return "", apperr.NotFound("underlying record no longer exists")
	}
	return merkle.HashLeaf([]byte(sub.Ciphertext)), nil
}
