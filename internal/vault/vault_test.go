package vault

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootstrapCreatesFilesOnFirstRun(t *testing.T) {
	dir := t.TempDir()

	v, err := Bootstrap(dir)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "kek.json"))
	assert.FileExists(t, filepath.Join(dir, "signing_key.pem"))
	assert.NotZero(t, v.KEK())
	assert.NotNil(t, v.SigningKey())
}

func TestBootstrapReloadsSameTrustAnchors(t *testing.T) {
	dir := t.TempDir()

	v1, err := Bootstrap(dir)
	require.NoError(t, err)

	v2, err := Bootstrap(dir)
	require.NoError(t, err)

	assert.Equal(t, v1.KEK(), v2.KEK())
	assert.Equal(t, v1.SigningKey().N, v2.SigningKey().N)
	assert.Equal(t, v1.SigningKey().D, v2.SigningKey().D)
}

func TestSigningPublicKeyPEMIsWellFormed(t *testing.T) {
	dir := t.TempDir()
	v, err := Bootstrap(dir)
	require.NoError(t, err)

	pemStr, err := v.SigningPublicKeyPEM()
	require.NoError(t, err)
	assert.Contains(t, pemStr, "BEGIN PUBLIC KEY")
	assert.Contains(t, pemStr, "END PUBLIC KEY")
}

func TestSigningPublicKeyMatchesPrivateKey(t *testing.T) {
	dir := t.TempDir()
	v, err := Bootstrap(dir)
	require.NoError(t, err)

	assert.Equal(t, v.SigningKey().N, v.SigningPublicKey().N)
}
