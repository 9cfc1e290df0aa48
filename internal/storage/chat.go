package storage

import "vaultchat-backend/internal/domain"

// ChatRepo serializes access to chat_messages.json.
type ChatRepo struct {
	store *Store
}

func NewChatRepo(store *Store) *ChatRepo {
	return &ChatRepo{store: store}
}

// Insert persists msg under messageID (a UUIDv4 already assigned by the
// caller).
func (r *ChatRepo) Insert(messageID string, msg domain.ChatMessage) error {
	all := make(map[string]domain.ChatMessage)
	return r.store.Mutate(DocChatMessages, &all, func() (bool, error) {
		all[messageID] = msg
		return true, nil
	})
}

// All returns every chat record, keyed by message_id.
func (r *ChatRepo) All() (map[string]domain.ChatMessage, error) {
	all := make(map[string]domain.ChatMessage)
	if err := r.store.Load(DocChatMessages, &all); err != nil {
		return nil, err
	}
	return all, nil
}

// Get returns a single chat record by messageID.
func (r *ChatRepo) Get(messageID string) (domain.ChatMessage, bool, error) {
	all, err := r.All()
	if err != nil {
		return domain.ChatMessage{}, false, err
	}
	msg, ok := all[messageID]
	return msg, ok, nil
}

// ForReceiver returns every message addressed to receiver.
func (r *ChatRepo) ForReceiver(receiver string) (map[string]domain.ChatMessage, error) {
	all, err := r.All()
	if err != nil {
		return nil, err
	}
	inbox := make(map[string]domain.ChatMessage)
	for id, msg := range all {
		if msg.Receiver == receiver {
			inbox[id] = msg
		}
	}
	return inbox, nil
}

// SweepExpired clears the E2E blobs and sets expired=true for every chat
// message whose expiry has passed and isn't already expired. Returns the
// number destroyed.
func (r *ChatRepo) SweepExpired(isExpired func(expiry string) bool) (int, error) {
	all := make(map[string]domain.ChatMessage)
	destroyed := 0

	err := r.store.Mutate(DocChatMessages, &all, func() (bool, error) {
		for id, msg := range all {
			if msg.Expired {
				continue
			}
			if isExpired(msg.Expiry) {
				msg.EncryptedMessage = ""
				msg.EncryptedKey = ""
				msg.Expired = true
				all[id] = msg
				destroyed++
			}
		}
		return destroyed > 0, nil
	})
	if err != nil {
		return 0, err
	}
	return destroyed, nil
}
