package merkle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func leafHashes(values ...string) []string {
	hashes := make([]string, len(values))
	for i, v := range values {
		hashes[i] = HashLeaf([]byte(v))
	}
	return hashes
}

func TestBuildRootEmpty(t *testing.T) {
	assert.Equal(t, "", BuildRoot(nil))
	assert.Equal(t, "", BuildRoot([]string{}))
}

func TestBuildRootSingleLeafIsLeafItself(t *testing.T) {
	leaves := leafHashes("hello")
	assert.Equal(t, leaves[0], BuildRoot(leaves))
}

func TestBuildRootDeterministic(t *testing.T) {
	leaves := leafHashes("a", "b", "c")
	root1 := BuildRoot(leaves)
	root2 := BuildRoot(append([]string(nil), leaves...))
	assert.Equal(t, root1, root2)
	assert.NotEmpty(t, root1)
}

func TestBuildRootOrderSensitive(t *testing.T) {
	forward := BuildRoot(leafHashes("a", "b"))
	reversed := BuildRoot(leafHashes("b", "a"))
	assert.NotEqual(t, forward, reversed)
}

func TestBuildRootOddLevelDuplicatesLastNode(t *testing.T) {
	leaves := leafHashes("a", "b", "c")
	// manual: level0 = [a,b,c] -> odd, duplicate c -> [a,b,c,c]
	// level1 = [h(a,b), h(c,c)]
	expectedLevel1 := []string{hashPair(leaves[0], leaves[1]), hashPair(leaves[2], leaves[2])}
	expectedRoot := hashPair(expectedLevel1[0], expectedLevel1[1])
	assert.Equal(t, expectedRoot, BuildRoot(leaves))
}

func TestBuildProofAndVerifyEvenCount(t *testing.T) {
	leaves := leafHashes("a", "b", "c", "d")
	root := BuildRoot(leaves)
	for i := range leaves {
		proofRoot, path := BuildProof(leaves, i)
		assert.Equal(t, root, proofRoot)
		assert.True(t, VerifyProof(leaves[i], path, root), "leaf %d should verify", i)
	}
}

func TestBuildProofAndVerifyOddCount(t *testing.T) {
	leaves := leafHashes("a", "b", "c")
	root := BuildRoot(leaves)
	for i := range leaves {
		proofRoot, path := BuildProof(leaves, i)
		assert.Equal(t, root, proofRoot)
		assert.True(t, VerifyProof(leaves[i], path, root), "leaf %d should verify", i)
	}
}

func TestBuildProofSingleLeaf(t *testing.T) {
	leaves := leafHashes("only")
	root, path := BuildProof(leaves, 0)
	assert.Equal(t, leaves[0], root)
	assert.Empty(t, path)
	assert.True(t, VerifyProof(leaves[0], path, root))
}

func TestVerifyProofRejectsWrongLeaf(t *testing.T) {
	leaves := leafHashes("a", "b", "c", "d")
	root := BuildRoot(leaves)
	_, path := BuildProof(leaves, 0)
	assert.False(t, VerifyProof(leaves[1], path, root))
}

func TestVerifyProofRejectsTamperedSibling(t *testing.T) {
	leaves := leafHashes("a", "b", "c", "d")
	root := BuildRoot(leaves)
	_, path := BuildProof(leaves, 0)
	path[0].Sibling = HashLeaf([]byte("tampered"))
	assert.False(t, VerifyProof(leaves[0], path, root))
}

func TestBuildProofPanicsOnOutOfRangeIndex(t *testing.T) {
	leaves := leafHashes("a", "b")
	assert.Panics(t, func() {
		BuildProof(leaves, 5)
	})
}
