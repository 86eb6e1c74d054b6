package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/humansort/pkg/errors"
)

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		n      int
		action Action
		order  []int
	}{
		{"single winner", "3", 4, ActionJudge, []int{2, 0, 1, 3}},
		{"first wins", "1\n", 3, ActionJudge, []int{0, 1, 2}},
		{"full order", "312", 3, ActionJudge, []int{2, 0, 1}},
		{"partial order", "42", 5, ActionJudge, []int{3, 1, 0, 2, 4}},
		{"separators", " 2, 1 3 ", 3, ActionJudge, []int{1, 0, 2}},
		{"skip", "s", 3, ActionSkip, nil},
		{"skip word", "SKIP", 3, ActionSkip, nil},
		{"quit", "q", 3, ActionQuit, nil},
		{"exit", "exit", 3, ActionQuit, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			choice, err := ParseChoice(tt.line, tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.action, choice.Action)
			assert.Equal(t, tt.order, choice.Order)
		})
	}
}

func TestParseChoiceErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
		n    int
	}{
		{"empty", "", 3},
		{"blank", "   ", 3},
		{"separators only", ", ,", 3},
		{"out of range", "4", 3},
		{"zero", "0", 3},
		{"repeated", "11", 3},
		{"letters", "abc", 3},
		{"negative", "-1", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseChoice(tt.line, tt.n)
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err), "got %v", err)

			var invalid *errors.ValidationError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, "choice", invalid.Field)
			assert.Equal(t, tt.line, invalid.Value)
		})
	}
}

func TestChoiceApply(t *testing.T) {
	choice, err := ParseChoice("2", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, choice.Apply([]string{"a", "b", "c"}))
}
