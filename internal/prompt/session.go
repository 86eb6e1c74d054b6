// Package prompt runs the interactive terminal sorting loop.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/agentstation/humansort"
	"github.com/agentstation/humansort/pkg/errors"
	"github.com/agentstation/humansort/pkg/logging"
)

// Summary reports what happened during a session.
type Summary struct {
	Rounds    int  `json:"rounds" yaml:"rounds"`
	Judgments int  `json:"judgments" yaml:"judgments"`
	Skipped   int  `json:"skipped" yaml:"skipped"`
	Quit      bool `json:"quit" yaml:"quit"`
}

// Session presents batches from a client and applies the answers.
type Session struct {
	client humansort.Client
	in     *bufio.Scanner
	out    io.Writer
	logger *zerolog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSession returns a session reading answers from in and writing prompts
// to out.
func NewSession(client humansort.Client, in io.Reader, out io.Writer, opts ...Option) *Session {
	s := &Session{
		client: client,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run presents up to rounds batches, or batches until the user quits when
// rounds <= 0. Each judgment is saved before the next batch is drawn.
// End of input ends the session like "q".
func (s *Session) Run(ctx context.Context, rounds int) (Summary, error) {
	var summary Summary

	for rounds <= 0 || summary.Rounds < rounds {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		batch, err := s.client.Next(ctx)
		if err != nil {
			return summary, err
		}
		summary.Rounds++

		choice, ok := s.ask(batch, summary.Rounds)
		if !ok {
			summary.Quit = true
			return summary, nil
		}

		switch choice.Action {
		case ActionQuit:
			summary.Quit = true
			return summary, nil
		case ActionSkip:
			summary.Skipped++
			s.logger.Debug().Strs("batch", batch).Msg("Batch skipped")
			continue
		}

		ordered := choice.Apply(batch)
		if _, err := s.client.Judge(ctx, ordered); err != nil {
			return summary, err
		}
		summary.Judgments++
		s.logger.Debug().
			Str("winner", ordered[0]).
			Strs("losers", ordered[1:]).
			Msg("Judgment saved")
	}

	return summary, nil
}

// ask shows a batch and reads lines until one parses. It returns false at
// end of input.
func (s *Session) ask(batch []string, round int) (Choice, bool) {
	fmt.Fprintf(s.out, "\nRound %d\n", round)
	for i, value := range batch {
		fmt.Fprintf(s.out, "  %d) %s\n", i+1, value)
	}

	for {
		fmt.Fprintf(s.out, "Best (1-%d), order (e.g. 213), s=skip, q=quit: ", len(batch))
		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			return Choice{}, false
		}
		choice, err := ParseChoice(s.in.Text(), len(batch))
		if err != nil {
			msg := err.Error()
			var invalid *errors.ValidationError
			if errors.As(err, &invalid) {
				msg = invalid.Message
			}
			fmt.Fprintf(s.out, "  %s\n", msg)
			continue
		}
		return choice, true
	}
}
