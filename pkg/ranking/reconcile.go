package ranking

import (
	"github.com/agentstation/humansort/pkg/constants"
	"github.com/agentstation/humansort/pkg/errors"
)

// Merge reconciles the state with an updated list of names. Items whose value
// is still listed keep their rating, items no longer listed are dropped, and
// new names are appended with the initial rating.
func (s *State) Merge(names []string) {
	listed := make(map[string]struct{}, len(names))
	for _, name := range names {
		listed[name] = struct{}{}
	}

	merged := make([]Item, 0, len(names))
	present := make(map[string]struct{}, len(s.items))
	for _, item := range s.items {
		if _, ok := listed[item.Value]; ok {
			merged = append(merged, item)
			present[item.Value] = struct{}{}
		}
	}
	for _, name := range names {
		if _, ok := present[name]; ok {
			continue
		}
		present[name] = struct{}{}
		merged = append(merged, Item{Value: name, Rating: constants.InitialRating})
	}

	s.items = merged
	s.sort()
	s.clampCursor()
}

// Add appends a new item with the initial rating.
func (s *State) Add(value string) error {
	if s.Contains(value) {
		return errors.NewDuplicateItemError(value)
	}
	s.items = append(s.items, Item{Value: value, Rating: constants.InitialRating})
	s.sort()
	return nil
}

// Rename changes the value of an item, keeping its rating.
func (s *State) Rename(from, to string) error {
	i := s.indexOf(from)
	if i < 0 {
		return errors.NewUnknownItemError(from)
	}
	if from == to {
		return nil
	}
	if s.Contains(to) {
		return errors.NewDuplicateItemError(to)
	}
	s.items[i].Value = to
	s.sort()
	return nil
}

// Remove deletes an item. The relative order of the others is unchanged.
func (s *State) Remove(value string) error {
	i := s.indexOf(value)
	if i < 0 {
		return errors.NewUnknownItemError(value)
	}
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	s.clampCursor()
	return nil
}

// SetBatchSize changes how many items are presented per judgment.
func (s *State) SetBatchSize(n int) error {
	if err := ValidateBatchSize(n); err != nil {
		return err
	}
	s.batchSize = n
	return nil
}

// ValidateBatchSize checks n against the supported batch size range.
func ValidateBatchSize(n int) error {
	if n < constants.MinBatchSize || n > constants.MaxBatchSize {
		return errors.NewInvalidBatchSizeError(n, constants.MinBatchSize, constants.MaxBatchSize)
	}
	return nil
}
