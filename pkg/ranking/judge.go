package ranking

import (
	"math"

	"github.com/agentstation/humansort/pkg/constants"
	"github.com/agentstation/humansort/pkg/errors"
)

// Judge applies a judgment. ordered[0] is the preferred item and every other
// value in ordered lost against it.
//
// Each loser l loses expected = 1/(1+10^(r(l)-r(w))) where r(w) is the
// winner's rating before this call, and the winner gains the sum of those
// amounts. Items are re-sorted afterwards.
func (s *State) Judge(ordered []string) error {
	if len(ordered) < 2 {
		return &errors.TooFewItemsError{Got: len(ordered)}
	}

	idx := s.index()
	positions := make([]int, len(ordered))
	seen := make(map[string]struct{}, len(ordered))
	for i, value := range ordered {
		pos, ok := idx[value]
		if !ok {
			return errors.NewUnknownItemError(value)
		}
		if _, dup := seen[value]; dup {
			return errors.NewDuplicateItemError(value)
		}
		seen[value] = struct{}{}
		positions[i] = pos
	}

	winner := positions[0]
	losers := positions[1:]

	// All ratings are read before any is written.
	winnerRating := s.items[winner].Rating
	deltas := make([]float64, len(losers))
	var total float64
	for i, pos := range losers {
		deltas[i] = ExpectedScore(s.items[pos].Rating, winnerRating)
		total += deltas[i]
	}

	for i, pos := range losers {
		s.items[pos].Rating -= deltas[i]
	}
	s.items[winner].Rating += total

	s.sort()
	return nil
}

// ExpectedScore returns 1/(1+10^(loser-winner)), the amount a loser rated
// loser gives up when it loses to a winner rated winner.
func ExpectedScore(loser, winner float64) float64 {
	return 1 / (1 + math.Pow(constants.RatingBase, loser-winner))
}
