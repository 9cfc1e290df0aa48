// Package commitment implements the one-way secret -> nullifier ->
// commitment chain used as a simplified Semaphore-style anonymity proof:
// a client proves knowledge of a secret without revealing it, and the
// server can only ever see the derived commitment.
package commitment

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// SecretSize is the identity secret size in bytes.
const SecretSize = 32

// GenerateIdentitySecret returns a fresh random identity secret, hex
// encoded. It never leaves the client in the real protocol; this helper
// exists for tests and local tooling.
func GenerateIdentitySecret() (string, error) {
	buf := make([]byte, SecretSize)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("commitment: generate secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// DeriveNullifier returns SHA256(secret), hex encoded.
func DeriveNullifier(secretHex string) string {
	return hashHex(secretHex)
}

// DeriveCommitment returns SHA256(nullifier), hex encoded.
func DeriveCommitment(nullifierHex string) string {
	return hashHex(nullifierHex)
}

// CommitmentFromSecret derives the commitment directly from a secret via
// the full nullifier -> commitment chain.
func CommitmentFromSecret(secretHex string) string {
	return DeriveCommitment(DeriveNullifier(secretHex))
}

// VerifyCommitmentChain reports whether commitment is the correct
// derivation of secretHex.
func VerifyCommitmentChain(secretHex, commitment string) bool {
	return CommitmentFromSecret(secretHex) == commitment
}

func hashHex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
