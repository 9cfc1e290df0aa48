package storage

// KeysRepo serializes access to public_keys.json, the user_id -> PEM
// registry used by the chat pipeline and the /keys endpoints.
type KeysRepo struct {
	store *Store
}

func NewKeysRepo(store *Store) *KeysRepo {
	return &KeysRepo{store: store}
}

// Upsert registers or replaces the public key for userID.
func (r *KeysRepo) Upsert(userID, publicKeyPEM string) error {
	all := make(map[string]string)
	return r.store.Mutate(DocPublicKeys, &all, func() (bool, error) {
		all[userID] = publicKeyPEM
		return true, nil
	})
}

// Get returns the PEM registered for userID, or ok=false.
func (r *KeysRepo) Get(userID string) (string, bool, error) {
	all := make(map[string]string)
	if err := r.store.Load(DocPublicKeys, &all); err != nil {
		return "", false, err
	}
	pem, ok := all[userID]
	return pem, ok, nil
}

// Exists reports whether userID is registered.
func (r *KeysRepo) Exists(userID string) (bool, error) {
	_, ok, err := r.Get(userID)
	return ok, err
}
