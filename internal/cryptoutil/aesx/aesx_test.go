package aesx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	dek, err := GenerateDEK()
	require.NoError(t, err)

	plaintext := []byte("hello, vault")
	env, err := Encrypt(dek[:], plaintext)
	require.NoError(t, err)
	assert.NotEmpty(t, env.Ciphertext)
	assert.NotEmpty(t, env.Nonce)
	assert.NotEmpty(t, env.Tag)

	got, err := Decrypt(dek[:], env)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestEncryptEmptyPlaintext(t *testing.T) {
	dek, err := GenerateDEK()
	require.NoError(t, err)

	env, err := Encrypt(dek[:], []byte(""))
	require.NoError(t, err)

	got, err := Decrypt(dek[:], env)
	require.NoError(t, err)
	assert.Equal(t, []byte(""), got)
}

func TestDecryptTamperedCiphertextFails(t *testing.T) {
	dek, err := GenerateDEK()
	require.NoError(t, err)

	env, err := Encrypt(dek[:], []byte("sensitive"))
	require.NoError(t, err)

	env.Ciphertext = env.Ciphertext[:len(env.Ciphertext)-2] + "AA"

	_, err = Decrypt(dek[:], env)
	assert.ErrorIs(t, err, ErrAuthFailed)
}

func TestDecryptWrongKeyFails(t *testing.T) {
	dek1, err := GenerateDEK()
	require.NoError(t, err)
	dek2, err := GenerateDEK()
	require.NoError(t, err)

	env, err := Encrypt(dek1[:], []byte("sensitive"))
	require.NoError(t, err)

	_, err = Decrypt(dek2[:], env)
	assert.ErrorIs(t, err, ErrAuthFailed)
}

func TestDecryptMalformedEncodingFails(t *testing.T) {
	dek, err := GenerateDEK()
	require.NoError(t, err)

	env, err := Encrypt(dek[:], []byte("x"))
	require.NoError(t, err)

	env.Nonce = "not-valid-base64!!"
	_, err = Decrypt(dek[:], env)
	assert.ErrorIs(t, err, ErrAuthFailed)
}

func TestWrapUnwrapDEKRoundTrip(t *testing.T) {
	var kek [KeySize]byte
	for i := range kek {
		kek[i] = byte(i)
	}
	dek, err := GenerateDEK()
	require.NoError(t, err)

	wrapped, err := WrapDEK(kek, dek)
	require.NoError(t, err)

	unwrapped, err := UnwrapDEK(kek, wrapped)
	require.NoError(t, err)
	assert.Equal(t, dek, unwrapped)
}

func TestUnwrapDEKWrongKEKFails(t *testing.T) {
	var kek1, kek2 [KeySize]byte
	for i := range kek1 {
		kek1[i] = byte(i)
		kek2[i] = byte(255 - i)
	}
	dek, err := GenerateDEK()
	require.NoError(t, err)

	wrapped, err := WrapDEK(kek1, dek)
	require.NoError(t, err)

	_, err = UnwrapDEK(kek2, wrapped)
	assert.ErrorIs(t, err, ErrAuthFailed)
}
