// Package submission implements the anonymous admission and read pipeline
// (spec §4.8-4.9): proof-of-work gated, commitment-deduplicated, envelope
// encrypted, Merkle-recorded submissions.
package submission

import (
	"time"

	"go.uber.org/zap"

	"vaultchat-backend/internal/cryptoutil/aesx"
	"vaultchat-backend/internal/cryptoutil/merkle"
	"vaultchat-backend/internal/cryptoutil/pow"
	"vaultchat-backend/internal/domain"
	"vaultchat-backend/internal/storage"
	"vaultchat-backend/internal/vault"
	apperr "vaultchat-backend/pkg/errors"
	"vaultchat-backend/pkg/metrics"
)

const timeLayout = time.RFC3339

// Service implements the submission admission and read pipeline. It holds
// no ambient state beyond what's injected at construction.
type Service struct {
	submissions *storage.SubmissionRepo
	commitments *storage.CommitmentRepo
	proofs      *storage.ProofRepo
	vault       *vault.Vault
	metrics     *metrics.Metrics
	log         *zap.Logger

	powDifficulty    int
	keyExpiryMinutes int
}

// New returns a submission Service.
func New(
	submissions *storage.SubmissionRepo,
	commitments *storage.CommitmentRepo,
	proofs *storage.ProofRepo,
	v *vault.Vault,
	m *metrics.Metrics,
	log *zap.Logger,
	powDifficulty, keyExpiryMinutes int,
) *Service {
	return &Service{
		submissions:      submissions,
		commitments:      commitments,
		proofs:           proofs,
		vault:            v,
		metrics:          m,
		log:              log,
		powDifficulty:    powDifficulty,
		keyExpiryMinutes: keyExpiryMinutes,
	}
}

// AdmitResult is returned by Admit on success.
type AdmitResult struct {
	MsgID  string
	Expiry string
}

// Admit runs the full submission pipeline (spec §4.8): validate, verify
// proof-of-work, enforce commitment uniqueness, encrypt, wrap, persist,
// and append a proof record — in that order, matching the data model's
// explicit step numbering.
func (s *Service) Admit(data, commitment, nonce string) (AdmitResult, error) {
	if data == "" || commitment == "" || nonce == "" {
		return AdmitResult{}, apperr.BadRequest("data, commitment, and nonce are all required")
	}

	if !pow.Verify(commitment, nonce, s.powDifficulty) {
		s.metrics.RecordPoW("rejected")
		s.metrics.RecordSubmission("bad_request")
		return AdmitResult{}, apperr.BadRequest("proof of work failed")
	}
	s.metrics.RecordPoW("accepted")

	duplicate, err := s.commitments.TryInsert(commitment)
	if err != nil {
		return AdmitResult{}, apperr.InternalFrom(err)
	}
	if duplicate {
		s.metrics.RecordSubmission("duplicate_commitment")
		return AdmitResult{}, apperr.DuplicateCommitment("commitment already used")
	}

	dek, err := aesx.GenerateDEK()
	if err != nil {
		return AdmitResult{}, apperr.InternalFrom(err)
	}

	env, err := aesx.Encrypt(dek[:], []byte(data))
	if err != nil {
		return AdmitResult{}, apperr.InternalFrom(err)
	}

	wrapped, err := aesx.WrapDEK(s.vault.KEK(), dek)
	if err != nil {
		return AdmitResult{}, apperr.InternalFrom(err)
	}

	now := time.Now().UTC()
	expiry := now.Add(time.Duration(s.keyExpiryMinutes) * time.Minute)

	sub := domain.Submission{
		Ciphertext: env.Ciphertext,
		Nonce:      env.Nonce,
		Tag:        env.Tag,
		WrappedDEK: &wrapped,
		Commitment: commitment,
		CreatedAt:  now.Format(timeLayout),
		Expiry:     expiry.Format(timeLayout),
	}

	msgID, err := s.submissions.Insert(sub)
	if err != nil {
		// The commitment is already consumed; per spec this is an
		// acceptable fail-closed outcome, not rolled back.
		s.log.Error("submission persist failed after commitment consumed", zap.Error(err))
		return AdmitResult{}, apperr.InternalFrom(err)
	}

	leafHash := merkle.HashLeaf([]byte(data))
	if err := s.proofs.Append(msgID, domain.Proof{
		DataHash:  leafHash,
		CreatedAt: now.Format(timeLayout),
	}); err != nil {
		return AdmitResult{}, apperr.InternalFrom(err)
	}

	s.metrics.RecordSubmission("accepted")
	return AdmitResult{MsgID: msgID, Expiry: sub.Expiry}, nil
}

// ReadResult is returned by Read on success.
type ReadResult struct {
	MsgID  string
	Data   string
	Expiry string
}

// Read decrypts and returns a submission's plaintext (spec §4.9).
func (s *Service) Read(msgID string) (ReadResult, error) {
	sub, ok, err := s.submissions.Get(msgID)
	if err != nil {
		return ReadResult{}, apperr.InternalFrom(err)
	}
	if !ok {
		return ReadResult{}, apperr.NotFound("unknown msg_id")
	}

	expiry, err := time.Parse(timeLayout, sub.Expiry)
	if err != nil {
		return ReadResult{}, apperr.InternalFrom(err)
	}
	if sub.Expired() || !time.Now().UTC().Before(expiry) {
		return ReadResult{}, apperr.Gone("submission data has expired and its key material was destroyed")
	}

	dek, err := aesx.UnwrapDEK(s.vault.KEK(), *sub.WrappedDEK)
	if err != nil {
		return ReadResult{}, apperr.InternalFrom(err)
	}

	plaintext, err := aesx.Decrypt(dek[:], domain.Envelope{
		Ciphertext: sub.Ciphertext,
		Nonce:      sub.Nonce,
		Tag:        sub.Tag,
	})
	if err != nil {
		return ReadResult{}, apperr.InternalFrom(err)
	}

	return ReadResult{MsgID: msgID, Data: string(plaintext), Expiry: sub.Expiry}, nil
}
