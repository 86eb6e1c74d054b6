package ranking

import (
	"iter"
	"slices"
)

// Ranked is a one-shot traversal over a snapshot of a state's items in
// ranked order. It never touches the state it was taken from.
type Ranked struct {
	items  []Item
	pos    int
	offset int
}

// Drain returns the items from the state's cursor onward, best first, and
// moves the cursor to the end. A second Drain yields nothing until
// ResetCursor is called.
func (s *State) Drain() *Ranked {
	s.clampCursor()
	r := &Ranked{items: slices.Clone(s.items[s.cursor:]), offset: s.cursor}
	s.cursor = len(s.items)
	return r
}

// Cursor returns the position the next Drain starts from.
func (s *State) Cursor() int {
	return s.cursor
}

// ResetCursor rewinds the cursor so the next Drain covers every item.
func (s *State) ResetCursor() {
	s.cursor = 0
}

// Next returns the next item and true, or false once exhausted.
func (r *Ranked) Next() (Item, bool) {
	if r.pos >= len(r.items) {
		return Item{}, false
	}
	item := r.items[r.pos]
	r.pos++
	return item, true
}

// Remaining returns how many items Next has yet to return.
func (r *Ranked) Remaining() int {
	return len(r.items) - r.pos
}

// Take returns up to n of the remaining items. n <= 0 takes all of them.
func (r *Ranked) Take(n int) []Item {
	if n <= 0 || n > r.Remaining() {
		n = r.Remaining()
	}
	out := r.items[r.pos : r.pos+n : r.pos+n]
	r.pos += n
	return out
}

// All yields the remaining items with their 1-based rank in the state.
func (r *Ranked) All() iter.Seq2[int, Item] {
	return func(yield func(int, Item) bool) {
		for r.pos < len(r.items) {
			rank := r.offset + r.pos + 1
			item := r.items[r.pos]
			r.pos++
			if !yield(rank, item) {
				return
			}
		}
	}
}
