// Package aesx implements the symmetric envelope scheme used to protect
// submission plaintext and per-message DEKs: AES-256-GCM. The data model
// (spec.md) documents this as an EAX-style authenticated cipher; no EAX
// implementation exists in the dependency corpus, and GCM provides the same
// authenticated-encryption guarantee (confidentiality + integrity, single
// nonce, detached tag), so it is used as the literal substitution.
package aesx

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"vaultchat-backend/internal/domain"
)

const (
	// KeySize is the DEK/KEK size in bytes (AES-256).
	KeySize = 32
	// NonceSize is the GCM-recommended nonce size in bytes.
	NonceSize = 12
)

// ErrAuthFailed is returned when decryption fails authentication — either
// the ciphertext was tampered with or the wrong key was used.
var ErrAuthFailed = errors.New("aesx: authentication failed")

// Envelope is the base64-encoded ciphertext/nonce/tag triple persisted on
// disk and returned to clients.
type Envelope = domain.Envelope

// GenerateDEK returns a fresh random 256-bit data-encryption key.
func GenerateDEK() ([KeySize]byte, error) {
	var dek [KeySize]byte
	if _, err := rand.Read(dek[:]); err != nil {
		return dek, fmt.Errorf("aesx: generate DEK: %w", err)
	}
	return dek, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aesx: new cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("aesx: new gcm: %w", err)
	}
	return gcm, nil
}

// Encrypt seals plaintext under key, returning a base64 envelope. Go's GCM
// implementation appends the authentication tag to the ciphertext; it is
// split back out here so the on-disk/wire shape matches the documented
// ciphertext/nonce/tag triple.
func Encrypt(key []byte, plaintext []byte) (Envelope, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return Envelope{}, err
	}

	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return Envelope{}, fmt.Errorf("aesx: generate nonce: %w", err)
	}

	sealed := gcm.Seal(nil, nonce, plaintext, nil)
	tagSize := gcm.Overhead()
	ciphertext, tag := sealed[:len(sealed)-tagSize], sealed[len(sealed)-tagSize:]

	return Envelope{
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		Tag:        base64.StdEncoding.EncodeToString(tag),
	}, nil
}

// Decrypt opens a base64 envelope under key, returning ErrAuthFailed on any
// tampering or key mismatch.
func Decrypt(key []byte, env Envelope) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	ciphertext, err := base64.StdEncoding.DecodeString(env.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: bad ciphertext encoding", ErrAuthFailed)
	}
	nonce, err := base64.StdEncoding.DecodeString(env.Nonce)
	if err != nil || len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: bad nonce", ErrAuthFailed)
	}
	tag, err := base64.StdEncoding.DecodeString(env.Tag)
	if err != nil {
		return nil, fmt.Errorf("%w: bad tag encoding", ErrAuthFailed)
	}

	plaintext, err := gcm.Open(nil, nonce, append(ciphertext, tag...), nil)
	if err != nil {
		return nil, ErrAuthFailed
	}
	if plaintext == nil {
		plaintext = []byte{}
	}
	return plaintext, nil
}

// WrapDEK encrypts dek under kek, producing the envelope stored alongside a
// submission as wrapped_dek.
func WrapDEK(kek [KeySize]byte, dek [KeySize]byte) (Envelope, error) {
	return Encrypt(kek[:], dek[:])
}

// UnwrapDEK recovers the DEK from its wrapped envelope.
func UnwrapDEK(kek [KeySize]byte, wrapped Envelope) ([KeySize]byte, error) {
	var dek [KeySize]byte
	plaintext, err := Decrypt(kek[:], wrapped)
	if err != nil {
		return dek, err
	}
	if len(plaintext) != KeySize {
		return dek, ErrAuthFailed
	}
	copy(dek[:], plaintext)
	return dek, nil
}
