package prompt

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/humansort"
	"github.com/agentstation/humansort/pkg/errors"
	"github.com/agentstation/humansort/pkg/logging"
)

func newClient(t *testing.T, names []string, batchSize int) humansort.Client {
	t.Helper()
	c, err := humansort.New(humansort.WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	_, err = c.Create(context.Background(), names, humansort.WithBatchSize(batchSize))
	require.NoError(t, err)
	return c
}

func TestSessionJudgesAndQuits(t *testing.T) {
	ctx := context.Background()
	c := newClient(t, []string{"A", "B", "C"}, 3)

	var out bytes.Buffer
	s := NewSession(c, strings.NewReader("2\nq\n"), &out, WithLogger(logging.NewNopLogger()))

	summary, err := s.Run(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, Summary{Rounds: 2, Judgments: 1, Quit: true}, summary)

	state, err := c.State(ctx)
	require.NoError(t, err)
	items := state.Items()
	assert.InDelta(t, 1.0, items[0].Rating, 1e-12, "the picked item won against two equals")
	assert.Contains(t, out.String(), "Round 1")
	assert.Contains(t, out.String(), "  1) ")
}

func TestSessionRounds(t *testing.T) {
	c := newClient(t, []string{"A", "B"}, 2)

	s := NewSession(c, strings.NewReader("1\n1\n1\n1\n"), &bytes.Buffer{})
	summary, err := s.Run(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, Summary{Rounds: 3, Judgments: 3}, summary)
}

func TestSessionReprompts(t *testing.T) {
	c := newClient(t, []string{"A", "B"}, 2)

	var out bytes.Buffer
	s := NewSession(c, strings.NewReader("7\nhello\ns\n"), &out)
	summary, err := s.Run(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, Summary{Rounds: 1, Skipped: 1}, summary)
	assert.Contains(t, out.String(), "out of range")
	assert.Contains(t, out.String(), "unexpected")
	assert.NotContains(t, out.String(), "validation failed")
}

func TestSessionEndOfInput(t *testing.T) {
	c := newClient(t, []string{"A", "B"}, 2)

	summary, err := NewSession(c, strings.NewReader(""), &bytes.Buffer{}).Run(context.Background(), 0)
	require.NoError(t, err)
	assert.True(t, summary.Quit)
	assert.Zero(t, summary.Judgments)
}

func TestSessionInsufficientItems(t *testing.T) {
	c := newClient(t, []string{"A", "B"}, 3)

	_, err := NewSession(c, strings.NewReader("1\n"), &bytes.Buffer{}).Run(context.Background(), 0)
	require.Error(t, err)
	assert.True(t, errors.IsInsufficientItems(err))
}

func TestSessionCancelled(t *testing.T) {
	c := newClient(t, []string{"A", "B"}, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSession(c, strings.NewReader("1\n"), &bytes.Buffer{}).Run(ctx, 0)
	assert.ErrorIs(t, err, context.Canceled)
}
