package ranking

import (
	"encoding/json"

	"github.com/agentstation/humansort/pkg/constants"
	"github.com/agentstation/humansort/pkg/errors"
)

// document is the persisted form of a State. The cursor is not persisted.
type document struct {
	Items     []Item `json:"items" yaml:"items"`
	BatchSize int    `json:"batch_size" yaml:"batch_size"`
}

func (s *State) document() document {
	items := s.items
	if items == nil {
		items = []Item{}
	}
	return document{Items: items, BatchSize: s.batchSize}
}

// fromDocument validates a decoded document and builds a state from it.
func fromDocument(doc document) (*State, error) {
	batchSize := doc.BatchSize
	if batchSize == 0 {
		batchSize = constants.DefaultBatchSize
	}
	if err := ValidateBatchSize(batchSize); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(doc.Items))
	seen := make(map[string]struct{}, len(doc.Items))
	for _, item := range doc.Items {
		if _, dup := seen[item.Value]; dup {
			return nil, errors.NewDuplicateItemError(item.Value)
		}
		seen[item.Value] = struct{}{}
		items = append(items, item)
	}
	// Ties keep file order, so a fresh state loads back in first-seen order.
	sortByRating(items)

	return &State{items: items, batchSize: batchSize}, nil
}

// MarshalJSON implements json.Marshaler.
func (s *State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.document())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *State) UnmarshalJSON(data []byte) error {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	decoded, err := fromDocument(doc)
	if err != nil {
		return err
	}
	*s = *decoded
	return nil
}

// MarshalYAML implements the go-yaml InterfaceMarshaler.
func (s *State) MarshalYAML() (any, error) {
	return s.document(), nil
}

// UnmarshalYAML implements the go-yaml InterfaceUnmarshaler.
func (s *State) UnmarshalYAML(unmarshal func(any) error) error {
	var doc document
	if err := unmarshal(&doc); err != nil {
		return err
	}
	decoded, err := fromDocument(doc)
	if err != nil {
		return err
	}
	*s = *decoded
	return nil
}
