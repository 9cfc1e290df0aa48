package storage

import "vaultchat-backend/internal/domain"

// ProofRepo serializes access to proofs.json, the ordered leaf ledger the
// Merkle module and verification endpoints read from.
type ProofRepo struct {
	store *Store
}

func NewProofRepo(store *Store) *ProofRepo {
	return &ProofRepo{store: store}
}

func emptyProofDoc() domain.ProofDocument {
	return domain.ProofDocument{Records: make(map[string]domain.Proof)}
}

// Append inserts proof under id, recording id at the end of the insertion
// order. Appending an id that already exists replaces its record and keeps
// its original position in the order (callers only ever append a fresh
// msg_id/message_id once).
func (r *ProofRepo) Append(id string, proof domain.Proof) error {
	doc := emptyProofDoc()
	return r.store.Mutate(DocProofs, &doc, func() (bool, error) {
		if doc.Records == nil {
			doc.Records = make(map[string]domain.Proof)
		}
		if _, exists := doc.Records[id]; !exists {
			doc.Order = append(doc.Order, id)
		}
		doc.Records[id] = proof
		return true, nil
	})
}

// All returns the full proof document (order + records).
func (r *ProofRepo) All() (domain.ProofDocument, error) {
	doc := emptyProofDoc()
	if err := r.store.Load(DocProofs, &doc); err != nil {
		return domain.ProofDocument{}, err
	}
	if doc.Records == nil {
		doc.Records = make(map[string]domain.Proof)
	}
	return doc, nil
}

// Get returns a single proof record by id.
func (r *ProofRepo) Get(id string) (domain.Proof, bool, error) {
	doc, err := r.All()
	if err != nil {
		return domain.Proof{}, false, err
	}
	p, ok := doc.Records[id]
	return p, ok, nil
}
