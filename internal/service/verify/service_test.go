package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vaultchat-backend/internal/cryptoutil/merkle"
	"vaultchat-backend/internal/cryptoutil/signx"
	"vaultchat-backend/internal/domain"
	"vaultchat-backend/internal/storage"
	"vaultchat-backend/internal/vault"
	apperr "vaultchat-backend/pkg/errors"
)

func newTestService(t *testing.T) (*Service, *storage.ProofRepo, *storage.ChatRepo, *storage.SubmissionRepo, *vault.Vault) {
	t.Helper()
	store := storage.New(t.TempDir())
	v, err := vault.Bootstrap(t.TempDir())
	require.NoError(t, err)

	proofs := storage.NewProofRepo(store)
	chatRepo := storage.NewChatRepo(store)
	subRepo := storage.NewSubmissionRepo(store)

	return New(proofs, subRepo, chatRepo, v), proofs, chatRepo, subRepo, v
}

func TestRootOnEmptyLedgerReturnsBlankNotError(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)
	result, err := svc.Root()
	require.NoError(t, err)
	assert.Equal(t, "", result.MerkleRoot)
	assert.Equal(t, 0, result.TotalSubmissions)
}

func TestRootReflectsInsertionOrder(t *testing.T) {
	svc, proofs, _, _, _ := newTestService(t)
	require.NoError(t, proofs.Append("1", domain.Proof{DataHash: merkle.HashLeaf([]byte("a"))}))
	require.NoError(t, proofs.Append("2", domain.Proof{DataHash: merkle.HashLeaf([]byte("b"))}))

	result, err := svc.Root()
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalSubmissions)

	expected := merkle.BuildRoot([]string{merkle.HashLeaf([]byte("a")), merkle.HashLeaf([]byte("b"))})
	assert.Equal(t, expected, result.MerkleRoot)
}

func TestHashCheckFindsRecordedHash(t *testing.T) {
	svc, proofs, _, _, _ := newTestService(t)
	require.NoError(t, proofs.Append("1", domain.Proof{DataHash: merkle.HashLeaf([]byte("hello"))}))

	result, err := svc.HashCheck("hello")
	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.Equal(t, merkle.HashLeaf([]byte("hello")), result.DataHash)
}

func TestHashCheckReportsNotFoundForUnknownPlaintext(t *testing.T) {
	svc, proofs, _, _, _ := newTestService(t)
	require.NoError(t, proofs.Append("1", domain.Proof{DataHash: merkle.HashLeaf([]byte("hello"))}))

	result, err := svc.HashCheck("goodbye")
	require.NoError(t, err)
	assert.False(t, result.Found)
}

func TestInclusionProofRoundTripsWithMerklePackage(t *testing.T) {
	svc, proofs, _, _, _ := newTestService(t)
	require.NoError(t, proofs.Append("1", domain.Proof{DataHash: merkle.HashLeaf([]byte("a"))}))
	require.NoError(t, proofs.Append("2", domain.Proof{DataHash: merkle.HashLeaf([]byte("b"))}))
	require.NoError(t, proofs.Append("3", domain.Proof{DataHash: merkle.HashLeaf([]byte("c"))}))

	result, err := svc.InclusionProof("2")
	require.NoError(t, err)
	assert.True(t, merkle.VerifyProof(result.LeafHash, result.ProofPath, result.MerkleRoot))
}

func TestInclusionProofNotFoundForUnknownID(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)
	_, err := svc.InclusionProof("missing")
	appErr := apperr.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.ErrCodeNotFound, appErr.Code)
}

func TestSignatureVerifyReportsNoteWhenUnsigned(t *testing.T) {
	svc, proofs, _, _, _ := newTestService(t)
	require.NoError(t, proofs.Append("1", domain.Proof{DataHash: "somehash"}))

	result, err := svc.SignatureVerify("1")
	require.NoError(t, err)
	assert.Nil(t, result.Valid)
	assert.NotEmpty(t, result.Note)
}

func TestSignatureVerifyValidatesChatSignature(t *testing.T) {
	svc, proofs, chatRepo, _, v := newTestService(t)

	encryptedMessage := "base64-blob"
	dataHash := merkle.HashLeaf([]byte(encryptedMessage))
	sig, err := signx.Sign(v.SigningKey(), []byte(dataHash))
	require.NoError(t, err)

	require.NoError(t, chatRepo.Insert("msg-1", domain.ChatMessage{EncryptedMessage: encryptedMessage}))
	require.NoError(t, proofs.Append("msg-1", domain.Proof{DataHash: dataHash, Signature: sig}))

	result, err := svc.SignatureVerify("msg-1")
	require.NoError(t, err)
	require.NotNil(t, result.Valid)
	assert.True(t, *result.Valid)
}

func TestSignatureVerifyRejectsTamperedContent(t *testing.T) {
	svc, proofs, chatRepo, _, v := newTestService(t)

	original := "original-blob"
	dataHash := merkle.HashLeaf([]byte(original))
	sig, err := signx.Sign(v.SigningKey(), []byte(dataHash))
	require.NoError(t, err)

	require.NoError(t, chatRepo.Insert("msg-1", domain.ChatMessage{EncryptedMessage: "tampered-blob"}))
	require.NoError(t, proofs.Append("msg-1", domain.Proof{DataHash: dataHash, Signature: sig}))

	result, err := svc.SignatureVerify("msg-1")
	require.NoError(t, err)
	require.NotNil(t, result.Valid)
	assert.False(t, *result.Valid)
}

func TestSignatureVerifyNotFoundForUnknownID(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)
	_, err := svc.SignatureVerify("missing")
	appErr := apperr.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.ErrCodeNotFound, appErr.Code)
}
