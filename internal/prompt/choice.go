package prompt

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/agentstation/humansort/pkg/errors"
)

// Action is what a line of input asks the session to do.
type Action int

// Actions a line of input can request.
const (
	ActionJudge Action = iota
	ActionSkip
	ActionQuit
)

// Choice is a parsed line of input.
type Choice struct {
	Action Action
	// Order holds 0-based batch positions, best first. Every position in
	// the batch appears exactly once.
	Order []int
}

// Apply maps the choice's order onto the batch values.
func (c Choice) Apply(batch []string) []string {
	ordered := make([]string, len(c.Order))
	for i, pos := range c.Order {
		ordered[i] = batch[pos]
	}
	return ordered
}

// ParseChoice parses a line typed for a batch of n items.
//
// A single digit picks the winner; the rest keep their batch order as
// losers. Several digits give an explicit order, best first, with any
// positions left out appended in batch order. Spaces and commas between
// digits are ignored. "s" skips the batch and "q" quits. Bad input is
// reported as a *errors.ValidationError on the "choice" field.
func ParseChoice(line string, n int) (Choice, error) {
	invalid := func(format string, args ...any) (Choice, error) {
		return Choice{}, errors.NewValidationError("choice", line, fmt.Sprintf(format, args...))
	}

	text := strings.ToLower(strings.TrimSpace(line))
	switch text {
	case "":
		return invalid("enter a number between 1 and %d", n)
	case "q", "quit", "exit":
		return Choice{Action: ActionQuit}, nil
	case "s", "skip":
		return Choice{Action: ActionSkip}, nil
	}

	order := make([]int, 0, n)
	used := make([]bool, n)
	for _, r := range text {
		if r == ',' || unicode.IsSpace(r) {
			continue
		}
		if r < '1' || r > '9' {
			return invalid("unexpected %q: use digits 1-%d, s or q", r, n)
		}
		pos := int(r - '1')
		if pos >= n {
			return invalid("%c is out of range 1-%d", r, n)
		}
		if used[pos] {
			return invalid("%c was given twice", r)
		}
		used[pos] = true
		order = append(order, pos)
	}
	if len(order) == 0 {
		return invalid("enter a number between 1 and %d", n)
	}

	for pos := range n {
		if !used[pos] {
			order = append(order, pos)
		}
	}
	return Choice{Action: ActionJudge, Order: order}, nil
}
