// Package pow implements the anonymous proof-of-work gate: a client must
// find a nonce such that SHA-256(commitment + nonce) has at least
// difficulty leading hex zeros before a submission is admitted.
package pow

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Verify reports whether nonce solves the proof-of-work challenge for
// commitment at the given difficulty. Hashing is over the UTF-8
// concatenation of the two strings, not their raw decoded bytes.
func Verify(commitment, nonce string, difficulty int) bool {
	if difficulty < 0 {
		return false
	}
	sum := sha256.Sum256([]byte(commitment + nonce))
	digest := hex.EncodeToString(sum[:])
	if difficulty > len(digest) {
		return false
	}
	return strings.HasPrefix(digest, strings.Repeat("0", difficulty))
}
