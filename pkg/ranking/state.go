// Package ranking implements the humansort ranking engine.
//
// A State holds a set of uniquely valued items, each with a rating, kept in
// descending rating order. Callers repeatedly ask the state for a small batch
// of items (SelectBatch), show it to a person, and feed the person's choice
// back (Judge). Each judgment moves the winner up and the losers down using a
// logistic expected-score rule, so after enough rounds the order of the
// items converges on the person's preferences.
//
// Reconciliation operations (Merge, Add, Rename, Remove) let the item list
// change over time without losing ratings accumulated for surviving items.
//
// Every operation is a synchronous, in-memory transformation of a single
// State. Failed operations leave the state unchanged. A State is not safe
// for concurrent mutation; use Clone to hand a copy to another goroutine.
//
// Example usage:
//
//	state := ranking.New([]string{"tea", "coffee", "juice", "water", "milk"})
//	batch, err := state.SelectBatch(rand.New(rand.NewPCG(1, 2)))
//	if err != nil {
//	    return err
//	}
//	// batch[2] was chosen as the favourite
//	ordered := append([]string{batch[2]}, batch[:2]...)
//	ordered = append(ordered, batch[3:]...)
//	if err := state.Judge(ordered); err != nil {
//	    return err
//	}
package ranking

import (
	"cmp"
	"slices"

	"github.com/agentstation/humansort/pkg/constants"
)

// Item is a single ranked value and its current rating.
type Item struct {
	Value  string  `json:"value" yaml:"value"`
	Rating float64 `json:"rating" yaml:"rating"`
}

// State is the ranking engine's state: the rated items in descending rating
// order, the number of items presented per judgment, and the traversal cursor.
type State struct {
	items     []Item
	batchSize int
	cursor    int
}

// New builds a state from a flat list of names. Each distinct name becomes an
// item rated 0 in first-seen order; later duplicates are dropped.
func New(names []string) *State {
	items := make([]Item, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		items = append(items, Item{Value: name, Rating: constants.InitialRating})
	}
	return &State{
		items:     items,
		batchSize: constants.DefaultBatchSize,
	}
}

// Len returns the number of items.
func (s *State) Len() int {
	return len(s.items)
}

// BatchSize returns the number of items presented per judgment.
func (s *State) BatchSize() int {
	return s.batchSize
}

// Items returns a copy of the items in ranked order.
func (s *State) Items() []Item {
	return slices.Clone(s.items)
}

// Values returns the item values in ranked order.
func (s *State) Values() []string {
	values := make([]string, len(s.items))
	for i, item := range s.items {
		values[i] = item.Value
	}
	return values
}

// Contains reports whether value names an item.
func (s *State) Contains(value string) bool {
	return s.indexOf(value) >= 0
}

// Rating returns the rating of value and whether the item exists.
func (s *State) Rating(value string) (float64, bool) {
	i := s.indexOf(value)
	if i < 0 {
		return 0, false
	}
	return s.items[i].Rating, true
}

// Rank returns the 1-based position of value in the ranking, or 0 if absent.
func (s *State) Rank(value string) int {
	return s.indexOf(value) + 1
}

// Clone returns an independent copy of the state.
func (s *State) Clone() *State {
	return &State{
		items:     slices.Clone(s.items),
		batchSize: s.batchSize,
		cursor:    s.cursor,
	}
}

// Equal reports whether two states hold the same items in the same order
// with the same batch size. The cursor is not compared.
func (s *State) Equal(other *State) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.batchSize == other.batchSize && slices.Equal(s.items, other.items)
}

func (s *State) indexOf(value string) int {
	return slices.IndexFunc(s.items, func(item Item) bool {
		return item.Value == value
	})
}

func (s *State) index() map[string]int {
	idx := make(map[string]int, len(s.items))
	for i, item := range s.items {
		idx[item.Value] = i
	}
	return idx
}

// sort orders items by rating descending, breaking ties by value.
func (s *State) sort() {
	sortItems(s.items)
}

func sortItems(items []Item) {
	slices.SortStableFunc(items, func(a, b Item) int {
		if c := cmp.Compare(b.Rating, a.Rating); c != 0 {
			return c
		}
		return cmp.Compare(a.Value, b.Value)
	})
}

func sortByRating(items []Item) {
	slices.SortStableFunc(items, func(a, b Item) int {
		return cmp.Compare(b.Rating, a.Rating)
	})
}

func (s *State) clampCursor() {
	s.cursor = min(max(s.cursor, 0), len(s.items))
}
