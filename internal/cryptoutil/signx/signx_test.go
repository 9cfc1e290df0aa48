package signx

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func TestSignVerifyRoundTrip(t *testing.T) {
	key := testKey(t)
	data := []byte("some data_hash bytes")

	sig, err := Sign(key, data)
	require.NoError(t, err)
	assert.NotEmpty(t, sig)

	assert.True(t, Verify(&key.PublicKey, data, sig))
}

func TestVerifyRejectsTamperedData(t *testing.T) {
	key := testKey(t)
	sig, err := Sign(key, []byte("original"))
	require.NoError(t, err)

	assert.False(t, Verify(&key.PublicKey, []byte("tampered"), sig))
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	key := testKey(t)
	data := []byte("original")
	sig, err := Sign(key, data)
	require.NoError(t, err)

	tampered := "00" + sig[2:]
	assert.False(t, Verify(&key.PublicKey, data, tampered))
}

func TestVerifyRejectsMalformedHex(t *testing.T) {
	key := testKey(t)
	assert.False(t, Verify(&key.PublicKey, []byte("x"), "not-hex!!"))
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	key1 := testKey(t)
	key2 := testKey(t)
	data := []byte("payload")

	sig, err := Sign(key1, data)
	require.NoError(t, err)

	assert.False(t, Verify(&key2.PublicKey, data, sig))
}

func TestSignIsNonDeterministicButBothVerify(t *testing.T) {
	key := testKey(t)
	data := []byte("payload")

	sig1, err := Sign(key, data)
	require.NoError(t, err)
	sig2, err := Sign(key, data)
	require.NoError(t, err)

	// PSS salts are random, so signatures normally differ, but both
	// signatures must independently verify.
	assert.True(t, Verify(&key.PublicKey, data, sig1))
	assert.True(t, Verify(&key.PublicKey, data, sig2))
}
