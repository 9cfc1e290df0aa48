package domain

// ProofDocument is the on-disk shape of proofs.json. JSON objects don't
// preserve key order across a decode into a Go map, but the Merkle tree's
// leaves must be exactly the data_hash values in insertion order (spec
// invariant I3) — so insertion order is tracked explicitly in Order
// alongside the keyed Records map.
type ProofDocument struct {
	Order   []string         `json:"order"`
	Records map[string]Proof `json:"records"`
}

// OrderedHashes returns the leaf hashes of every proof record, in the order
// they were inserted.
func (d *ProofDocument) OrderedHashes() []string {
	hashes := make([]string, 0, len(d.Order))
	for _, id := range d.Order {
		if p, ok := d.Records[id]; ok {
			hashes = append(hashes, p.DataHash)
		}
	}
	return hashes
}

// IndexOf returns the insertion index of id within Order, or -1.
func (d *ProofDocument) IndexOf(id string) int {
	for i, k := range d.Order {
		if k == id {
			return i
		}
	}
	return -1
}
