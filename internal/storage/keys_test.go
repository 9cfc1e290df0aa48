package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeysUpsertAndGet(t *testing.T) {
	repo := NewKeysRepo(New(t.TempDir()))

	require.NoError(t, repo.Upsert("alice", "PEM-1"))

	pem, ok, err := repo.Get("alice")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "PEM-1", pem)
}

func TestKeysUpsertReplacesExisting(t *testing.T) {
	repo := NewKeysRepo(New(t.TempDir()))

	require.NoError(t, repo.Upsert("alice", "PEM-1"))
	require.NoError(t, repo.Upsert("alice", "PEM-2"))

	pem, ok, err := repo.Get("alice")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "PEM-2", pem)
}

func TestKeysExists(t *testing.T) {
	repo := NewKeysRepo(New(t.TempDir()))

	exists, err := repo.Exists("bob")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Upsert("bob", "PEM"))

	exists, err = repo.Exists("bob")
	require.NoError(t, err)
	assert.True(t, exists)
}
