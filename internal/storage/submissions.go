package storage

import (
	"strconv"

	"vaultchat-backend/internal/domain"
)

// SubmissionRepo serializes access to submissions.json.
type SubmissionRepo struct {
	store *Store
}

func NewSubmissionRepo(store *Store) *SubmissionRepo {
	return &SubmissionRepo{store: store}
}

// Get returns the submission keyed by msgID, or ok=false if absent.
func (r *SubmissionRepo) Get(msgID string) (domain.Submission, bool, error) {
	var all map[string]domain.Submission
	if err := r.store.Load(DocSubmissions, &all); err != nil {
		return domain.Submission{}, false, err
	}
	sub, ok := all[msgID]
	return sub, ok, nil
}

// All returns every submission record, keyed by msg_id.
func (r *SubmissionRepo) All() (map[string]domain.Submission, error) {
	all := make(map[string]domain.Submission)
	if err := r.store.Load(DocSubmissions, &all); err != nil {
		return nil, err
	}
	return all, nil
}

// Insert allocates the next sequential msg_id (max existing key + 1,
// starting at 1) and persists sub under it, all within one lock acquisition
// so allocation is race-free. Returns the assigned msg_id.
func (r *SubmissionRepo) Insert(sub domain.Submission) (string, error) {
	all := make(map[string]domain.Submission)
	var assigned string

	err := r.store.Mutate(DocSubmissions, &all, func() (bool, error) {
		next := 1
		for k := range all {
			if n, err := strconv.Atoi(k); err == nil && n >= next {
				next = n + 1
			}
		}
		assigned = strconv.Itoa(next)
		all[assigned] = sub
		return true, nil
	})
	if err != nil {
		return "", err
	}
	return assigned, nil
}

// SweepExpired clears wrapped_dek for every submission whose expiry has
// passed and wrapped_dek is still set. Returns the number destroyed.
func (r *SubmissionRepo) SweepExpired(isExpired func(expiry string) bool) (int, error) {
	all := make(map[string]domain.Submission)
	destroyed := 0

	err := r.store.Mutate(DocSubmissions, &all, func() (bool, error) {
		for id, sub := range all {
			if sub.WrappedDEK == nil {
				continue
			}
			if isExpired(sub.Expiry) {
				sub.WrappedDEK = nil
				all[id] = sub
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
