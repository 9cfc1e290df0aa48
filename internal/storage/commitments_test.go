package storage

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitmentTryInsertAcceptsFirstUse(t *testing.T) {
	repo := NewCommitmentRepo(New(t.TempDir()))

	dup, err := repo.TryInsert("commit-a")
	require.NoError(t, err)
	assert.False(t, dup)

	all, err := repo.All()
	require.NoError(t, err)
	assert.Equal(t, []string{"commit-a"}, all)
}

func TestCommitmentTryInsertRejectsDuplicate(t *testing.T) {
	repo := NewCommitmentRepo(New(t.TempDir()))

	_, err := repo.TryInsert("commit-a")
	require.NoError(t, err)

	dup, err := repo.TryInsert("commit-a")
	require.NoError(t, err)
	assert.True(t, dup)

	all, err := repo.All()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCommitmentTryInsertConcurrentRaceOnlyOneWins(t *testing.T) {
	repo := NewCommitmentRepo(New(t.TempDir()))

	var wg sync.WaitGroup
	results := make([]bool, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			dup, err := repo.TryInsert("shared-commitment")
			assert.NoError(t, err)
			results[idx] = dup
		}(i)
	}
	wg.Wait()

	accepted := 0
	for _, dup := range results {
		if !dup {
			accepted++
		}
	}
	assert.Equal(t, 1, accepted)
}
