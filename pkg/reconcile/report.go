package reconcile

import "fmt"

// Outcome is the terminal result for a single input record.
type Outcome struct {
	ID      RecordID  `json:"id" yaml:"id"`
	RawText string    `json:"raw_text" yaml:"raw_text"`
	Matched bool      `json:"matched" yaml:"matched"`
	Kind    MatchKind `json:"-" yaml:"-"`
	Match   string    `json:"match" yaml:"match"`
	PeerID  RecordID  `json:"peer_id,omitempty" yaml:"peer_id,omitempty"`
	Score   float64   `json:"score" yaml:"score"`
}

// SideCounts summarizes one side of a reconciliation.
type SideCounts struct {
	Records   int `json:"records" yaml:"records"`
	Exact     int `json:"exact" yaml:"exact"`
	Fuzzy     int `json:"fuzzy" yaml:"fuzzy"`
	Unmatched int `json:"unmatched" yaml:"unmatched"`
}

// Report is the read-only aggregate of a completed run: summary counts per
// side and the full per-record outcome lists in input order. It is the only
// artifact the engine exposes; it is never mutated after construction.
type Report struct {
	Reference SideCounts `json:"reference" yaml:"reference"`
	Checked   SideCounts `json:"checked" yaml:"checked"`

	ReferenceOutcomes []Outcome `json:"reference_outcomes" yaml:"reference_outcomes"`
	CheckedOutcomes   []Outcome `json:"checked_outcomes" yaml:"checked_outcomes"`
}

// buildReport snapshots both datasets after a completed run.
func buildReport(a, b *Dataset) *Report {
	r := &Report{
		ReferenceOutcomes: outcomes(a),
		CheckedOutcomes:   outcomes(b),
	}
	r.Reference = count(r.ReferenceOutcomes)
	r.Checked = count(r.CheckedOutcomes)
	return r
}

func outcomes(d *Dataset) []Outcome {
	out := make([]Outcome, d.Len())
	for i := range d.records {
		rec := &d.records[i]
		out[i] = Outcome{
			ID:      rec.ID,
			RawText: rec.RawText,
			Matched: rec.Matched,
			Kind:    rec.Kind,
			Match:   rec.Kind.String(),
			PeerID:  rec.PeerID,
			Score:   rec.Score,
		}
	}
	return out
}

func count(outs []Outcome) SideCounts {
	c := SideCounts{Records: len(outs)}
	for _, o := range outs {
		switch o.Kind {
		case MatchExact:
			c.Exact++
		case MatchFuzzy:
			c.Fuzzy++
		default:
			c.Unmatched++
		}
	}
	return c
}

// Matched reports whether every record on both sides found a peer.
func (r *Report) Matched() bool {
	return r.Reference.Unmatched == 0 && r.Checked.Unmatched == 0
}

// Summary returns a one-line human-readable summary of the run.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d exact, %d fuzzy, %d/%d unmatched (reference/checked)",
		r.Checked.Exact, r.Checked.Fuzzy,
		r.Reference.Unmatched, r.Checked.Unmatched)
}
