// Package admin implements the privileged diagnostics and force-expire
// surface (spec §6, supplemented with dumps the distilled spec omits but
// the original implementation exposed).
package admin

import (
	"context"
	"time"

	"vaultchat-backend/internal/domain"
	"vaultchat-backend/internal/scheduler"
	"vaultchat-backend/internal/storage"
	apperr "vaultchat-backend/pkg/errors"
)

// Service implements the admin diagnostics surface.
type Service struct {
	submissions *storage.SubmissionRepo
	chat        *storage.ChatRepo
	commitments *storage.CommitmentRepo
	proofs      *storage.ProofRepo
	sweeper     *scheduler.Scheduler
}

// New returns an admin Service.
func New(
	submissions *storage.SubmissionRepo,
	chat *storage.ChatRepo,
	commitments *storage.CommitmentRepo,
	proofs *storage.ProofRepo,
	sweeper *scheduler.Scheduler,
) *Service {
	return &Service{
		submissions: submissions,
		chat:        chat,
		commitments: commitments,
		proofs:      proofs,
		sweeper:     sweeper,
	}
}

// Messages returns every submission record, keyed by msg_id.
func (s *Service) Messages() (map[string]domain.Submission, error) {
	all, err := s.submissions.All()
	if err != nil {
		return nil, apperr.InternalFrom(err)
	}
	return all, nil
}

// Chat returns every chat record, keyed by message_id.
func (s *Service) Chat() (map[string]domain.ChatMessage, error) {
	all, err := s.chat.All()
	if err != nil {
		return nil, apperr.InternalFrom(err)
	}
	return all, nil
}

// Proofs returns the full proof ledger.
func (s *Service) Proofs() (domain.ProofDocument, error) {
	doc, err := s.proofs.All()
	if err != nil {
		return domain.ProofDocument{}, apperr.InternalFrom(err)
	}
	return doc, nil
}

// Commitments returns the full accepted-commitment set.
func (s *Service) Commitments() ([]string, error) {
	all, err := s.commitments.All()
	if err != nil {
		return nil, apperr.InternalFrom(err)
	}
	return all, nil
}

// Stats is returned by Stats.
type Stats struct {
	TotalMessages   int `json:"total_messages"`
	ActiveMessages  int `json:"active_messages"`
	ExpiredMessages int `json:"expired_messages"`
	TotalChat       int `json:"total_chat_messages"`
	TotalProofs     int `json:"total_proofs"`
	TotalCommitments int `json:"total_commitments"`
}

// Stats aggregates simple counts across every document.
func (s *Service) Stats() (Stats, error) {
	subs, err := s.submissions.All()
	if err != nil {
		return Stats{}, apperr.InternalFrom(err)
	}
	chatMsgs, err := s.chat.All()
	if err != nil {
		return Stats{}, apperr.InternalFrom(err)
	}
	proofDoc, err := s.proofs.All()
	if err != nil {
		return Stats{}, apperr.InternalFrom(err)
	}
	commitments, err := s.commitments.All()
	if err != nil {
		return Stats{}, apperr.InternalFrom(err)
	}

	stats := Stats{
		TotalMessages:    len(subs),
		TotalChat:        len(chatMsgs),
		TotalProofs:      len(proofDoc.Records),
		TotalCommitments: len(commitments),
	}
	for _, sub := range subs {
		if sub.Expired() {
			stats.ExpiredMessages++
		} else {
			stats.ActiveMessages++
		}
	}
	return stats, nil
}

// ForceExpireResult is returned by ForceExpire.
type ForceExpireResult struct {
	Status    string `json:"status"`
	Destroyed int    `json:"destroyed"`
	Timestamp string `json:"timestamp"`
}

// ForceExpire runs one synchronous sweep outside the scheduler's own
// ticker, for operator-triggered cleanup.
func (s *Service) ForceExpire(ctx context.Context) (ForceExpireResult, error) {
	destroyed, err := s.sweeper.Sweep(ctx)
	if err != nil {
		return ForceExpireResult{}, apperr.InternalFrom(err)
	}
	return ForceExpireResult{
		Status:    "ok",
		Destroyed: destroyed,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil
}
