// Package sort implements the interactive sort command.
package sort

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/humansort"
	"github.com/agentstation/humansort/internal/appcontext"
	"github.com/agentstation/humansort/internal/cmd/alerts"
	"github.com/agentstation/humansort/internal/cmd/cmdutil"
	"github.com/agentstation/humansort/internal/prompt"
)

// NewCommand creates the sort command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		rounds    int
		batchSize int
	)

	cmd := &cobra.Command{
		Use:     "sort STATEFILE",
		GroupID: "core",
		Short:   "Sort a state interactively",
		Long: `Sort shows batches of items and asks for the best one. Answer with the
number of the winner, or with several numbers to give a full order (the
first is the winner, the rest lose to it). "s" skips a batch and "q"
quits. Every answer is saved before the next batch is shown.`,
		Example: `  humansort sort movies.txt.humansort
  humansort sort movies.txt.humansort --rounds 20
  humansort sort movies.txt.humansort --batch-size 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			return cmdutil.WithClient(ctx, app, args[0], func(client humansort.Client) error {
				if cmd.Flags().Changed("batch-size") {
					if _, err := client.SetBatchSize(ctx, batchSize); err != nil {
						return err
					}
				}

				session := prompt.NewSession(client, cmd.InOrStdin(), cmd.OutOrStdout(),
					prompt.WithLogger(app.Logger()))
				summary, err := session.Run(ctx, rounds)

				app.Logger().Debug().
					Int("rounds", summary.Rounds).
					Int("judgments", summary.Judgments).
					Int("skipped", summary.Skipped).
					Bool("quit", summary.Quit).
					Msg("Session finished")
				if err != nil {
					return err
				}

				cmdutil.Alerts(cmd, app).Write(alerts.Success("%s saved to %s",
					plural(summary.Judgments, "judgment"), args[0]))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&rounds, "rounds", "n", 0,
		"Stop after this many batches (0 runs until quit)")
	cmd.Flags().IntVarP(&batchSize, "batch-size", "b", 0,
		"Change the batch size (2-9) before sorting")

	return cmd
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
