// Package output implements the output command.
package output

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/humansort"
	"github.com/agentstation/humansort/internal/appcontext"
	"github.com/agentstation/humansort/internal/cmd/cmdutil"
	render "github.com/agentstation/humansort/internal/cmd/output"
)

// NewCommand creates the output command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "output STATEFILE",
		GroupID: "core",
		Short:   "Print items in rank order",
		Long: `Output prints the items of a state from best to worst. Items with equal
ratings are ordered by value.

When stdout is not a terminal the default format is one item per line, so
the result can be used as a new list file.`,
		Example: `  humansort output movies.txt.humansort
  humansort output movies.txt.humansort --limit 10 --ratings
  humansort output movies.txt.humansort -o json`,
		Args: cobra.ExactArgs(1),
	}

	flags := cmdutil.AddRankingFlags(cmd, 0)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if flags.Limit < 0 {
			return cmdutil.InvalidFlag("limit", flags.Limit, "must not be negative")
		}

		format, err := cmdutil.Format(app)
		if err != nil {
			return err
		}

		return cmdutil.WithClient(cmd.Context(), app, args[0], func(client humansort.Client) error {
			ranked, err := client.Ranked(cmd.Context())
			if err != nil {
				return err
			}

			ranking := render.NewRanking(ranked, flags.Limit, flags.Ratings)
			return render.NewFormatter(format).Format(cmd.OutOrStdout(), ranking)
		})
	}

	return cmd
}
