package reconcile

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/BLewisDesDev/ADMINify/pkg/errors"
	"github.com/BLewisDesDev/ADMINify/pkg/logging"
)

const (
	// DefaultThreshold is the similarity a fuzzy candidate must exceed.
	DefaultThreshold = 0.85
	// DefaultBatchSize bounds how many residual records the fuzzy pass
	// works through between checkpoints.
	DefaultBatchSize = 50
)

// Matcher runs one reconciliation over two datasets: an exact pass on
// normalized names, then a fuzzy pass over the unmatched residue. A Matcher
// is stateless between runs and safe to reuse.
type Matcher struct {
	threshold float64
	batchSize int
	logger    *zerolog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher) error

// WithThreshold sets the fuzzy acceptance threshold. Candidates are
// accepted strictly above it; a score exactly equal to the threshold is
// rejected.
func WithThreshold(threshold float64) Option {
	return func(m *Matcher) error {
		if threshold <= 0 || threshold >= 1 {
			return errors.NewValidationError("threshold", threshold, "must be in (0, 1)")
		}
		m.threshold = threshold
		return nil
	}
}

// WithBatchSize sets how many residual records the fuzzy pass processes
// per batch. Batching only paces the work; it never changes the result.
func WithBatchSize(size int) Option {
	return func(m *Matcher) error {
		if size < 1 {
			return errors.NewValidationError("batch size", size, "must be at least 1")
		}
		m.batchSize = size
		return nil
	}
}

// WithLogger sets the logger used for per-phase progress.
func WithLogger(logger *zerolog.Logger) Option {
	return func(m *Matcher) error {
		if logger == nil {
			return errors.NewValidationError("logger", nil, "cannot be nil")
		}
		m.logger = logger
		return nil
	}
}

// NewMatcher creates a Matcher with options.
func NewMatcher(opts ...Option) (*Matcher, error) {
	m := &Matcher{
		threshold: DefaultThreshold,
		batchSize: DefaultBatchSize,
		logger:    &logging.Nop,
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Run reconciles dataset B against reference dataset A and returns the
// report. Both datasets are mutated in place: each record receives exactly
// one terminal outcome. An unmatched record is a normal outcome, not an
// error; the only error Run returns is context cancellation, checked
// between fuzzy batches.
func (m *Matcher) Run(ctx context.Context, a, b *Dataset) (*Report, error) {
	index := buildExactIndex(a)

	exact := m.exactPass(index, a, b)
	m.logger.Debug().
		Int("matched", exact).
		Int("reference", a.Len()).
		Int("checked", b.Len()).
		Msg("exact pass complete")

	fuzzy, err := m.fuzzyPass(ctx, a, b)
	if err != nil {
		return nil, err
	}
	m.logger.Debug().Int("matched", fuzzy).Msg("fuzzy pass complete")

	return buildReport(a, b), nil
}

// exactPass walks dataset B in input order and matches each record against
// the reference index. Returns the number of pairs matched.
func (m *Matcher) exactPass(index *exactIndex, a, b *Dataset) int {
	matched := 0
	for bi := range b.records {
		rec := &b.records[bi]
		ai, ok := index.lookup(rec.NormalizedName)
		if !ok || a.records[ai].Matched {
			continue
		}
		a.markMatched(ai, MatchExact, rec.ID, 1.0)
		b.markMatched(bi, MatchExact, a.records[ai].ID, 1.0)
		matched++
	}
	return matched
}

// fuzzyPass matches the unmatched residue of B against the shrinking pool
// of unmatched A records. For each B record the best-scoring candidate
// wins, ties broken by earliest A input order; the chosen A record leaves
// the pool immediately so no later record can claim it.
func (m *Matcher) fuzzyPass(ctx context.Context, a, b *Dataset) (int, error) {
	scorer := NewScorer(m.threshold)
	residueB := b.unmatched()
	matched := 0

	for start := 0; start < len(residueB); start += m.batchSize {
		// Checkpoint seam for the host: the only place a run can stop
		// early, always on a committed batch boundary.
		if err := ctx.Err(); err != nil {
			return matched, err
		}

		end := start + m.batchSize
		if end > len(residueB) {
			end = len(residueB)
		}

		for _, bi := range residueB[start:end] {
			rec := &b.records[bi]
			if rec.NormalizedName == "" {
				continue
			}

			bestScore := 0.0
			bestA := -1
			for ai := range a.records {
				cand := &a.records[ai]
				if cand.Matched || cand.NormalizedName == "" {
					continue
				}
				score := scorer.Score(rec.NormalizedName, cand.NormalizedName)
				if score > bestScore {
					bestScore = score
					bestA = ai
				}
			}

			if bestA < 0 || bestScore <= m.threshold {
				continue
			}
			a.markMatched(bestA, MatchFuzzy, rec.ID, bestScore)
			b.markMatched(bi, MatchFuzzy, a.records[bestA].ID, bestScore)
			matched++
		}
	}
	return matched, nil
}
