package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatcher(t *testing.T, opts ...Option) *Matcher {
	t.Helper()
	m, err := NewMatcher(opts...)
	require.NoError(t, err)
	return m
}

func run(t *testing.T, m *Matcher, a, b []Pair) (*Report, *Dataset, *Dataset) {
	t.Helper()
	da, db := NewDataset(a), NewDataset(b)
	report, err := m.Run(context.Background(), da, db)
	require.NoError(t, err)
	return report, da, db
}

func TestMatcherOptions(t *testing.T) {
	_, err := NewMatcher(WithThreshold(1.5))
	assert.Error(t, err, "threshold above 1")

	_, err = NewMatcher(WithThreshold(0))
	assert.Error(t, err, "zero threshold")

	_, err = NewMatcher(WithBatchSize(0))
	assert.Error(t, err, "zero batch size")

	_, err = NewMatcher(WithLogger(nil))
	assert.Error(t, err, "nil logger")

	m, err := NewMatcher()
	require.NoError(t, err)
	assert.Equal(t, DefaultThreshold, m.threshold)
	assert.Equal(t, DefaultBatchSize, m.batchSize)
}

// Records whose raw texts normalize to the same key must be consumed by the
// exact pass with score 1.0 on both sides.
func TestMatcherExactPass(t *testing.T) {
	m := newTestMatcher(t)
	report, da, db := run(t, m,
		[]Pair{{ID: "a1", Text: "John Smith"}},
		[]Pair{{ID: "b1", Text: "john  SMITH"}},
	)

	assert.Equal(t, 1, report.Checked.Exact)
	assert.Equal(t, 0, report.Checked.Fuzzy)
	assert.True(t, report.Matched())

	ra, rb := da.Record(0), db.Record(0)
	assert.True(t, ra.Matched)
	assert.Equal(t, MatchExact, ra.Kind)
	assert.Equal(t, 1.0, ra.Score)
	assert.Equal(t, RecordID("b1"), ra.PeerID)
	assert.Equal(t, RecordID("a1"), rb.PeerID)
}

// The worked end-to-end example: one exact pair, one single-edit fuzzy pair.
func TestMatcherEndToEnd(t *testing.T) {
	m := newTestMatcher(t, WithThreshold(0.85))
	report, _, _ := run(t, m,
		[]Pair{{ID: "1", Text: "john smith"}, {ID: "2", Text: "jane doe"}},
		[]Pair{{ID: "10", Text: "John Smith (note)"}, {ID: "11", Text: "jane dow"}},
	)

	assert.Equal(t, 1, report.Checked.Exact)
	assert.Equal(t, 1, report.Checked.Fuzzy)
	assert.Equal(t, 0, report.Checked.Unmatched)
	assert.Equal(t, 0, report.Reference.Unmatched)

	exact := report.CheckedOutcomes[0]
	assert.Equal(t, RecordID("1"), exact.PeerID)
	assert.Equal(t, MatchExact, exact.Kind)
	assert.Equal(t, 1.0, exact.Score)

	fuzzy := report.CheckedOutcomes[1]
	assert.Equal(t, RecordID("2"), fuzzy.PeerID)
	assert.Equal(t, MatchFuzzy, fuzzy.Kind)
	// one edit over "janedoe"/"janedow": (7-1)/7
	assert.InDelta(t, 6.0/7.0, fuzzy.Score, 1e-9)
	assert.Greater(t, fuzzy.Score, 0.85)
}

// Names that fail the first-character gate produce no match at all; an
// unmatched record is a normal outcome, not an error.
func TestMatcherNoMatch(t *testing.T) {
	m := newTestMatcher(t, WithThreshold(0.85))
	report, _, _ := run(t, m,
		[]Pair{{ID: "1", Text: "alice brown"}},
		[]Pair{{ID: "10", Text: "bob green"}},
	)

	assert.Equal(t, 0, report.Checked.Exact)
	assert.Equal(t, 0, report.Checked.Fuzzy)
	assert.Equal(t, 1, report.Checked.Unmatched)
	assert.Equal(t, 1, report.Reference.Unmatched)

	o := report.CheckedOutcomes[0]
	assert.False(t, o.Matched)
	assert.Equal(t, MatchNone, o.Kind)
	assert.Equal(t, RecordID(""), o.PeerID)
	assert.Equal(t, 0.0, o.Score)
}

// A candidate scoring exactly the threshold is rejected: acceptance is
// strictly above.
func TestMatcherThresholdBoundary(t *testing.T) {
	// "anna" vs "anne" scores exactly 0.75.
	m := newTestMatcher(t, WithThreshold(0.75))
	report, _, _ := run(t, m,
		[]Pair{{ID: "1", Text: "anne"}},
		[]Pair{{ID: "10", Text: "anna"}},
	)

	assert.Equal(t, 0, report.Checked.Fuzzy)
	assert.Equal(t, 1, report.Checked.Unmatched)

	// Nudging the threshold below the score accepts the same pair.
	m = newTestMatcher(t, WithThreshold(0.74))
	report, _, _ = run(t, m,
		[]Pair{{ID: "1", Text: "anne"}},
		[]Pair{{ID: "10", Text: "anna"}},
	)
	assert.Equal(t, 1, report.Checked.Fuzzy)
	assert.Equal(t, 0.75, report.CheckedOutcomes[0].Score)
}

// When two candidates tie on score the earliest reference record in input
// order wins.
func TestMatcherGreedyTieBreak(t *testing.T) {
	// Both "smitt" and "smite" are one edit from "smith".
	m := newTestMatcher(t, WithThreshold(0.7))
	report, _, _ := run(t, m,
		[]Pair{{ID: "1", Text: "smitt"}, {ID: "2", Text: "smite"}},
		[]Pair{{ID: "10", Text: "smith"}},
	)

	require.Equal(t, 1, report.Checked.Fuzzy)
	assert.Equal(t, RecordID("1"), report.CheckedOutcomes[0].PeerID)
}

// An exact candidate beats fuzzy candidates outright: the exact pass
// consumes it before the fuzzy pass ever runs.
func TestMatcherExactBeatsFuzzy(t *testing.T) {
	m := newTestMatcher(t, WithThreshold(0.7))
	report, _, _ := run(t, m,
		[]Pair{{ID: "1", Text: "smith"}, {ID: "2", Text: "smyth"}},
		[]Pair{{ID: "10", Text: "smith"}},
	)

	require.True(t, report.CheckedOutcomes[0].Matched)
	assert.Equal(t, MatchExact, report.CheckedOutcomes[0].Kind)
	assert.Equal(t, RecordID("1"), report.CheckedOutcomes[0].PeerID)
}

// Duplicate normalized keys on the reference side: the first occurrence
// owns the index slot; later duplicates are reachable only through the
// fuzzy pass.
func TestMatcherDuplicateReferenceKeys(t *testing.T) {
	m := newTestMatcher(t)
	report, _, _ := run(t, m,
		[]Pair{{ID: "1", Text: "John Smith"}, {ID: "2", Text: "john smith"}},
		[]Pair{{ID: "10", Text: "John Smith"}, {ID: "11", Text: "John Smith."}},
	)

	first := report.CheckedOutcomes[0]
	assert.Equal(t, MatchExact, first.Kind)
	assert.Equal(t, RecordID("1"), first.PeerID)

	// The second checked record finds the shadowed duplicate via the
	// fuzzy pass at similarity 1.0.
	second := report.CheckedOutcomes[1]
	assert.Equal(t, MatchFuzzy, second.Kind)
	assert.Equal(t, RecordID("2"), second.PeerID)
	assert.Equal(t, 1.0, second.Score)
}

// After a run no record may be referenced by more than one matched peer.
func TestMatcherOneToOne(t *testing.T) {
	m := newTestMatcher(t, WithThreshold(0.7))
	report, _, _ := run(t, m,
		[]Pair{
			{ID: "a1", Text: "smith"},
			{ID: "a2", Text: "smyth"},
			{ID: "a3", Text: "jones"},
		},
		[]Pair{
			{ID: "b1", Text: "smith"},
			{ID: "b2", Text: "smithe"},
			{ID: "b3", Text: "janes"},
			{ID: "b4", Text: "smoth"},
		},
	)

	seenA := map[RecordID]int{}
	for _, o := range report.CheckedOutcomes {
		if o.Matched {
			seenA[o.PeerID]++
		}
	}
	for id, n := range seenA {
		assert.Equal(t, 1, n, "reference record %s claimed %d times", id, n)
	}

	seenB := map[RecordID]int{}
	for _, o := range report.ReferenceOutcomes {
		if o.Matched {
			seenB[o.PeerID]++
		}
	}
	for id, n := range seenB {
		assert.Equal(t, 1, n, "checked record %s claimed %d times", id, n)
	}

	// Reciprocity: every matched pair points at each other.
	outA := map[RecordID]Outcome{}
	for _, o := range report.ReferenceOutcomes {
		outA[o.ID] = o
	}
	for _, o := range report.CheckedOutcomes {
		if !o.Matched {
			continue
		}
		peer, ok := outA[o.PeerID]
		require.True(t, ok)
		assert.Equal(t, o.ID, peer.PeerID)
		assert.Equal(t, o.Kind, peer.Kind)
	}
}

// Records whose normalized name is empty can never match, on either side.
func TestMatcherEmptyNormalizedName(t *testing.T) {
	m := newTestMatcher(t)
	report, _, _ := run(t, m,
		[]Pair{{ID: "1", Text: "(annotation only)"}},
		[]Pair{{ID: "10", Text: "123!"}, {ID: "11", Text: ""}},
	)

	assert.Equal(t, 1, report.Reference.Unmatched)
	assert.Equal(t, 2, report.Checked.Unmatched)
	for _, o := range append(report.ReferenceOutcomes, report.CheckedOutcomes...) {
		assert.False(t, o.Matched)
		assert.Equal(t, MatchNone, o.Kind)
	}
}

// Batching paces the fuzzy pass; it must never change the outcome.
func TestMatcherBatchSizeInvariance(t *testing.T) {
	a := []Pair{
		{ID: "a1", Text: "smith"},
		{ID: "a2", Text: "smyth"},
		{ID: "a3", Text: "brown"},
		{ID: "a4", Text: "braun"},
		{ID: "a5", Text: "jones"},
	}
	b := []Pair{
		{ID: "b1", Text: "smithe"},
		{ID: "b2", Text: "smythe"},
		{ID: "b3", Text: "browne"},
		{ID: "b4", Text: "brauns"},
		{ID: "b5", Text: "joanes"},
	}

	batched := newTestMatcher(t, WithThreshold(0.7), WithBatchSize(1))
	whole := newTestMatcher(t, WithThreshold(0.7), WithBatchSize(100))

	r1, _, _ := run(t, batched, a, b)
	r2, _, _ := run(t, whole, a, b)

	assert.Equal(t, r2, r1)
}

// Cancellation is honored only at batch boundaries and surfaces as the
// context's error with no report.
func TestMatcherContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := newTestMatcher(t, WithThreshold(0.7))
	report, err := m.Run(ctx,
		NewDataset([]Pair{{ID: "1", Text: "smith"}}),
		NewDataset([]Pair{{ID: "10", Text: "smithe"}}),
	)

	assert.Nil(t, report)
	assert.ErrorIs(t, err, context.Canceled)
}

// A matcher is stateless between runs: reusing one on fresh datasets gives
// fresh results.
func TestMatcherReuse(t *testing.T) {
	m := newTestMatcher(t)

	r1, _, _ := run(t, m,
		[]Pair{{ID: "1", Text: "john smith"}},
		[]Pair{{ID: "10", Text: "john smith"}})
	r2, _, _ := run(t, m,
		[]Pair{{ID: "1", Text: "john smith"}},
		[]Pair{{ID: "10", Text: "john smith"}})

	assert.Equal(t, r1, r2)
}
