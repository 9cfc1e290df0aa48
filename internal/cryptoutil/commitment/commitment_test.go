package commitment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnownVectorFromZeroSecret(t *testing.T) {
	// identity_secret is hashed as its ASCII hex text, not as decoded
	// raw bytes — the chain operates on hex strings end to end.
	secret := strings.Repeat("00", 32)

	nullifier := DeriveNullifier(secret)
	assert.Equal(t, "60e05bd1b195af2f94112fa7197a5c88289058840ce7c6df9693756bc6250f55", nullifier)

	commit := DeriveCommitment(nullifier)
	assert.Equal(t, "632500b1742987815bf1e7ebc49d1da6ed2dd9659623bef3f9b96bf5e75ab702", commit)

	assert.Equal(t, commit, CommitmentFromSecret(secret))
}

func TestGenerateIdentitySecretIsRandomAndCorrectLength(t *testing.T) {
	a, err := GenerateIdentitySecret()
	require.NoError(t, err)
	b, err := GenerateIdentitySecret()
	require.NoError(t, err)

	assert.Len(t, a, SecretSize*2)
	assert.NotEqual(t, a, b)
}

func TestVerifyCommitmentChainAcceptsValid(t *testing.T) {
	secret, err := GenerateIdentitySecret()
	require.NoError(t, err)
	commit := CommitmentFromSecret(secret)

	assert.True(t, VerifyCommitmentChain(secret, commit))
}

func TestVerifyCommitmentChainRejectsWrongCommitment(t *testing.T) {
	secret, err := GenerateIdentitySecret()
	require.NoError(t, err)

	assert.False(t, VerifyCommitmentChain(secret, "not-the-right-commitment"))
}

func TestVerifyCommitmentChainRejectsWrongSecret(t *testing.T) {
	secret1, err := GenerateIdentitySecret()
	require.NoError(t, err)
	secret2, err := GenerateIdentitySecret()
	require.NoError(t, err)

	commit := CommitmentFromSecret(secret1)
	assert.False(t, VerifyCommitmentChain(secret2, commit))
}
