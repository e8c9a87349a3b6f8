package reconcile

// exactIndex is a hash index from normalized name to the position of the
// first record in the reference dataset bearing that name. Later records
// with a repeated key stay out of the index on purpose: they remain real
// records but are only reachable through the fuzzy pass.
type exactIndex struct {
	byName map[string]int
}

// buildExactIndex indexes a reference dataset in input order. Records whose
// normalized name is empty are never indexed; an empty key cannot match.
func buildExactIndex(d *Dataset) *exactIndex {
	idx := &exactIndex{byName: make(map[string]int, d.Len())}
	for i := range d.records {
		name := d.records[i].NormalizedName
		if name == "" {
			continue
		}
		if _, seen := idx.byName[name]; !seen {
			idx.byName[name] = i
		}
	}
	return idx
}

// lookup returns the indexed record position for a normalized name.
func (x *exactIndex) lookup(name string) (int, bool) {
	if name == "" {
		return 0, false
	}
	i, ok := x.byName[name]
	return i, ok
}
