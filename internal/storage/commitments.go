package storage

// CommitmentRepo serializes access to commitments.json, an append-only set
// of accepted commitments (spec invariant I2).
type CommitmentRepo struct {
	store *Store
}

func NewCommitmentRepo(store *Store) *CommitmentRepo {
	return &CommitmentRepo{store: store}
}

// TryInsert atomically checks membership and inserts commitment if absent.
// Returns duplicate=true if the commitment was already present (and leaves
// the set untouched).
func (r *CommitmentRepo) TryInsert(commitment string) (duplicate bool, err error) {
	var all []string
	err = r.store.Mutate(DocCommitments, &all, func() (bool, error) {
		for _, c := range all {
			if c == commitment {
				duplicate = true
				return false, nil
			}
		}
		all = append(all, commitment)
		return true, nil
	})
	return duplicate, err
}

// All returns the full commitment set.
func (r *CommitmentRepo) All() ([]string, error) {
	var all []string
	if err := r.store.Load(DocCommitments, &all); err != nil {
		return nil, err
	}
	return all, nil
}
