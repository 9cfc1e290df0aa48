// Package chat implements the chat send/inbox pipeline (spec §4.10): the
// server never inspects payload contents, only hashes and signs the
// already-encrypted blob for later proof-of-existence verification.
package chat

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vaultchat-backend/internal/cryptoutil/merkle"
	"vaultchat-backend/internal/cryptoutil/signx"
	"vaultchat-backend/internal/domain"
	"vaultchat-backend/internal/storage"
	"vaultchat-backend/internal/vault"
	apperr "vaultchat-backend/pkg/errors"
	"vaultchat-backend/pkg/metrics"
)

const timeLayout = time.RFC3339

// Notifier is implemented by the notification hub; Send calls it after a
// successful persist so connected clients learn about new mail without
// polling. Never carries message content.
type Notifier interface {
	NotifyInbox(receiver, messageID, expiry string)
}

// Service implements the chat pipeline.
type Service struct {
	chat    *storage.ChatRepo
	proofs  *storage.ProofRepo
	keys    *storage.KeysRepo
	vault   *vault.Vault
	metrics *metrics.Metrics
	log     *zap.Logger
	notify  Notifier

	keyExpiryMinutes int
}

// New returns a chat Service. notify may be nil when no live-push
// transport is wired up.
func New(
	chat *storage.ChatRepo,
	proofs *storage.ProofRepo,
	keys *storage.KeysRepo,
	v *vault.Vault,
	m *metrics.Metrics,
	log *zap.Logger,
	notify Notifier,
	keyExpiryMinutes int,
) *Service {
	return &Service{
		chat:             chat,
		proofs:           proofs,
		keys:             keys,
		vault:            v,
		metrics:          m,
		log:              log,
		notify:           notify,
		keyExpiryMinutes: keyExpiryMinutes,
	}
}

// SendResult is returned by Send on success.
type SendResult struct {
	MessageID string
	Expiry    string
}

// Send persists an opaque E2E blob for receiver, signing its hash for
// later proof-of-existence (spec §4.10).
func (s *Service) Send(encryptedMessage, encryptedKey, receiver string) (SendResult, error) {
	if encryptedMessage == "" || encryptedKey == "" || receiver == "" {
		return SendResult{}, apperr.BadRequest("encrypted_message, encrypted_key, and receiver are all required")
	}

	registered, err := s.keys.Exists(receiver)
	if err != nil {
		return SendResult{}, apperr.InternalFrom(err)
	}
	if !registered {
		return SendResult{}, apperr.NotFound("receiver has no registered public key")
	}

	messageID := uuid.New().String()
	dataHash := merkle.HashLeaf([]byte(encryptedMessage))

	signature, err := signx.Sign(s.vault.SigningKey(), []byte(dataHash))
	if err != nil {
		return SendResult{}, apperr.InternalFrom(err)
	}

	now := time.Now().UTC()
	expiry := now.Add(time.Duration(s.keyExpiryMinutes) * time.Minute)

	msg := domain.ChatMessage{
		EncryptedMessage: encryptedMessage,
		EncryptedKey:     encryptedKey,
		Receiver:         receiver,
		CreatedAt:        now.Format(timeLayout),
		Expiry:           expiry.Format(timeLayout),
		Expired:          false,
	}

	if err := s.chat.Insert(messageID, msg); err != nil {
		return SendResult{}, apperr.InternalFrom(err)
	}

	if err := s.proofs.Append(messageID, domain.Proof{
		DataHash:  dataHash,
		Signature: signature,
		CreatedAt: now.Format(timeLayout),
	}); err != nil {
		return SendResult{}, apperr.InternalFrom(err)
	}

	s.metrics.RecordChatMessage()

	if s.notify != nil {
		s.notify.NotifyInbox(receiver, messageID, msg.Expiry)
	}

	return SendResult{MessageID: messageID, Expiry: msg.Expiry}, nil
}

// InboxEntry is one record returned by Inbox.
type InboxEntry struct {
	MessageID        string `json:"message_id"`
	EncryptedMessage string `json:"encrypted_message,omitempty"`
	EncryptedKey     string `json:"encrypted_key,omitempty"`
	CreatedAt        string `json:"created_at"`
	Expiry           string `json:"expiry"`
	Expired          bool   `json:"expired"`
}

// Inbox returns every record addressed to userID.
func (s *Service) Inbox(userID string) ([]InboxEntry, error) {
	all, err := s.chat.ForReceiver(userID)
	if err != nil {
		return nil, apperr.InternalFrom(err)
	}

	entries := make([]InboxEntry, 0, len(all))
	for id, msg := range all {
		entries = append(entries, InboxEntry{
			MessageID:        id,
			EncryptedMessage: msg.EncryptedMessage,
			EncryptedKey:     msg.EncryptedKey,
			CreatedAt:        msg.CreatedAt,
			Expiry:           msg.Expiry,
			Expired:          msg.Expired,
		})
	}
	return entries, nil
}
