// Package cmdutil provides helpers shared by humansort commands.
package cmdutil

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/humansort"
	"github.com/agentstation/humansort/internal/appcontext"
	"github.com/agentstation/humansort/internal/cmd/alerts"
	"github.com/agentstation/humansort/internal/cmd/output"
	"github.com/agentstation/humansort/pkg/errors"
)

// WithClient opens a client for location, runs fn and closes the client.
func WithClient(ctx context.Context, app appcontext.Interface, location string, fn func(humansort.Client) error) error {
	client, err := app.Client(ctx, location)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			app.Logger().Warn().Err(cerr).Str("state", location).Msg("Failed to close store")
		}
	}()
	return fn(client)
}

// Alerts returns an alert writer on the command's stderr.
func Alerts(cmd *cobra.Command, app appcontext.Interface) *alerts.Writer {
	return alerts.NewWriter(cmd.ErrOrStderr(), app.NoColor()).Quiet(app.Quiet())
}

// Format resolves the --format flag, detecting it from the terminal when
// it is empty.
func Format(app appcontext.Interface) (output.Format, error) {
	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return "", err
	}
	return output.DetectFormat(string(format)), nil
}

// RankingFlags holds flags for commands that print a ranking.
type RankingFlags struct {
	Limit   int
	Ratings bool
}

// AddRankingFlags adds ranking flags to a command.
func AddRankingFlags(cmd *cobra.Command, defaultLimit int) *RankingFlags {
	flags := &RankingFlags{}

	cmd.Flags().IntVarP(&flags.Limit, "limit", "n", defaultLimit,
		"Number of items to show (0 shows all)")
	cmd.Flags().BoolVarP(&flags.Ratings, "ratings", "r", false,
		"Show ratings next to items")

	return flags
}

// InvalidFlag reports a flag value that cannot be used.
func InvalidFlag(name string, value any, message string) error {
	return errors.NewValidationError("--"+name, value, message)
}
