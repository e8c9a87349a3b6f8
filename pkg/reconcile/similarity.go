package reconcile

import "math/bits"

// jaccardFloor is the minimum character-set overlap two names need before
// the edit-distance computation is attempted. The gate is deliberately
// lossy: it can reject pairs with high edit similarity but little shared
// alphabet, trading recall for speed.
const jaccardFloor = 0.6

// Scorer computes a bounded similarity in [0,1] between two normalized
// names. A cascade of cheap gates rejects hopeless pairs before the
// dynamic-programming edit distance runs; every gate is a hard zero.
type Scorer struct {
	threshold float64
}

// NewScorer returns a scorer tuned to the acceptance threshold the Matcher
// will apply. The threshold bounds the edit-distance budget: only pairs
// that could still score above it are worth computing.
func NewScorer(threshold float64) *Scorer {
	return &Scorer{threshold: threshold}
}

// Score returns the similarity of two normalized names. Both empty scores
// 1.0, exactly one empty scores 0. The score is symmetric in its arguments.
func (s *Scorer) Score(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	// floor(maxLen * (1 - τ)) is the largest edit distance that can still
	// score above the threshold.
	maxDist := int(float64(maxLen) * (1 - s.threshold))

	if !withinLengthBudget(a, b, maxDist) {
		return 0
	}
	if a[0] != b[0] {
		return 0
	}
	if charSetJaccard(a, b) < jaccardFloor {
		return 0
	}

	dist := boundedLevenshtein(a, b, maxDist)
	if dist > maxDist {
		return 0
	}
	return float64(maxLen-dist) / float64(maxLen)
}

// withinLengthBudget rejects pairs whose length difference alone already
// exceeds the edit budget; no edit sequence can bridge the gap.
func withinLengthBudget(a, b string, maxDist int) bool {
	diff := len(a) - len(b)
	if diff < 0 {
		diff = -diff
	}
	return diff <= maxDist
}

// charSetJaccard treats each string as a set of its characters and returns
// |intersection| / |union|. Inputs are normalized names, so only [a-z]
// occurs and a fixed bitmask suffices.
func charSetJaccard(a, b string) float64 {
	var setA, setB uint32
	for i := 0; i < len(a); i++ {
		setA |= 1 << (a[i] - 'a')
	}
	for i := 0; i < len(b); i++ {
		setB |= 1 << (b[i] - 'a')
	}
	union := bits.OnesCount32(setA | setB)
	if union == 0 {
		return 0
	}
	return float64(bits.OnesCount32(setA&setB)) / float64(union)
}

// boundedLevenshtein computes the edit distance between a and b with a hard
// budget. It fills a two-row rolling array and tracks each row's minimum;
// once the minimum exceeds maxDist no cell in any later row can recover, so
// it aborts and reports maxDist+1 as a guaranteed rejection.
func boundedLevenshtein(a, b string, maxDist int) int {
	if a == b {
		return 0
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		rowMin := curr[0]
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost

			min := del
			if ins < min {
				min = ins
			}
			if sub < min {
				min = sub
			}
			curr[j] = min
			if min < rowMin {
				rowMin = min
			}
		}
		if rowMin > maxDist {
			return maxDist + 1
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
