package ranking

import (
	"math/rand/v2"

	"github.com/agentstation/humansort/pkg/constants"
	"github.com/agentstation/humansort/pkg/errors"
)

// Source supplies uniform values in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// DefaultSource draws from the math/rand/v2 global generator.
var DefaultSource Source = globalSource{}

// SelectBatch picks BatchSize distinct item values to present together.
//
// Positions are drawn with a squared uniform value, so items near the top of
// the ranking come up more often than items near the bottom. A nil src uses
// DefaultSource.
func (s *State) SelectBatch(src Source) ([]string, error) {
	n, k := len(s.items), s.batchSize
	if n < k {
		return nil, &errors.InsufficientItemsError{Have: n, Need: k}
	}
	if n == k {
		return s.Values(), nil
	}
	if src == nil {
		src = DefaultSource
	}

	picked := make([]bool, n)
	batch := make([]string, 0, k)
	for len(batch) < k {
		i, ok := drawIndex(src, n, picked)
		if !ok {
			// Redraws exhausted: take the best-ranked unused item.
			for i = 0; picked[i]; i++ {
			}
		}
		picked[i] = true
		batch = append(batch, s.items[i].Value)
	}
	return batch, nil
}

func drawIndex(src Source, n int, picked []bool) (int, bool) {
	for range constants.MaxSelectionAttempts {
		i := warpIndex(src.Float64(), n)
		if !picked[i] {
			return i, true
		}
	}
	return 0, false
}

// warpIndex maps u in [0, 1) to an index in [0, n), biased toward 0.
func warpIndex(u float64, n int) int {
	i := int(u * u * float64(n))
	return min(max(i, 0), n-1)
}
