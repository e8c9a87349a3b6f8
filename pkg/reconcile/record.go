package reconcile

// RecordID is the opaque identifier a caller assigns to an input row.
// The engine never interprets it; it only reports it back.
type RecordID string

// String returns the string representation of a record ID.
func (id RecordID) String() string {
	return string(id)
}

// MatchKind classifies how a record was matched, if at all.
type MatchKind int

const (
	// MatchNone indicates the record was not matched in either pass.
	MatchNone MatchKind = iota
	// MatchExact indicates a normalized-name hash hit in the exact pass.
	MatchExact
	// MatchFuzzy indicates a bounded-similarity hit in the fuzzy pass.
	MatchFuzzy
)

// String returns a string representation of the MatchKind.
func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchFuzzy:
		return "fuzzy"
	case MatchNone:
		return "none"
	default:
		return "unknown"
	}
}

// Pair is a single input row: an opaque identifier and the raw name text.
type Pair struct {
	ID   RecordID
	Text string
}

// Record is one input row after normalization, plus its match outcome.
// A record is created once per input pair and mutated only by the Matcher.
type Record struct {
	ID             RecordID
	RawText        string
	NormalizedName string

	Matched bool
	Kind    MatchKind
	PeerID  RecordID // zero value when Kind is MatchNone
	Score   float64
}

// Dataset is an ordered, arena-style collection of records belonging to one
// side of a reconciliation. The Matcher addresses records by index so that
// match-state mutation stays confined to the dataset that owns them.
type Dataset struct {
	records []Record
}

// NewDataset builds a dataset from input pairs, normalizing each raw text
// exactly once. Input order is preserved; it is the tie-break order for the
// fuzzy pass and the construction order for the exact index.
func NewDataset(pairs []Pair) *Dataset {
	records := make([]Record, len(pairs))
	for i, p := range pairs {
		records[i] = Record{
			ID:             p.ID,
			RawText:        p.Text,
			NormalizedName: Normalize(p.Text),
		}
	}
	return &Dataset{records: records}
}

// Len returns the number of records in the dataset.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Record returns a copy of the record at index i.
func (d *Dataset) Record(i int) Record {
	return d.records[i]
}

// Records returns a copy of all records in input order.
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// markMatched records a match outcome on the record at index i.
func (d *Dataset) markMatched(i int, kind MatchKind, peer RecordID, score float64) {
	r := &d.records[i]
	r.Matched = true
	r.Kind = kind
	r.PeerID = peer
	r.Score = score
}

// unmatched returns the indices of records not yet matched, in input order.
func (d *Dataset) unmatched() []int {
	idx := make([]int, 0, len(d.records))
	for i := range d.records {
		if !d.records[i].Matched {
			idx = append(idx, i)
		}
	}
	return idx
}
