package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCountsAndSummary(t *testing.T) {
	m, err := NewMatcher(WithThreshold(0.85))
	require.NoError(t, err)

	report, err := m.Run(context.Background(),
		NewDataset([]Pair{
			{ID: "1", Text: "john smith"},
			{ID: "2", Text: "jane doe"},
			{ID: "3", Text: "alice brown"},
		}),
		NewDataset([]Pair{
			{ID: "10", Text: "John Smith"},
			{ID: "11", Text: "jane dow"},
		}),
	)
	require.NoError(t, err)

	assert.Equal(t, SideCounts{Records: 3, Exact: 1, Fuzzy: 1, Unmatched: 1}, report.Reference)
	assert.Equal(t, SideCounts{Records: 2, Exact: 1, Fuzzy: 1, Unmatched: 0}, report.Checked)
	assert.False(t, report.Matched())

	assert.Equal(t, "1 exact, 1 fuzzy, 1/0 unmatched (reference/checked)", report.Summary())

	// Outcomes preserve input order and carry the printable match kind.
	require.Len(t, report.CheckedOutcomes, 2)
	assert.Equal(t, "exact", report.CheckedOutcomes[0].Match)
	assert.Equal(t, "fuzzy", report.CheckedOutcomes[1].Match)
	require.Len(t, report.ReferenceOutcomes, 3)
	assert.Equal(t, "none", report.ReferenceOutcomes[2].Match)
}

func TestMatchKindString(t *testing.T) {
	assert.Equal(t, "none", MatchNone.String())
	assert.Equal(t, "exact", MatchExact.String())
	assert.Equal(t, "fuzzy", MatchFuzzy.String())
	assert.Equal(t, "unknown", MatchKind(42).String())
}
