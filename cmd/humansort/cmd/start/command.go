// Package start implements the start command.
package start

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/humansort"
	"github.com/agentstation/humansort/internal/appcontext"
	"github.com/agentstation/humansort/internal/cmd/alerts"
	"github.com/agentstation/humansort/internal/cmd/cmdutil"
	"github.com/agentstation/humansort/pkg/constants"
	"github.com/agentstation/humansort/pkg/listfile"
)

// NewCommand creates the start command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		batchSize int
		force     bool
	)

	cmd := &cobra.Command{
		Use:     "start INFILE [OUTFILE]",
		GroupID: "core",
		Short:   "Create a state file from a list of items",
		Long: `Start reads a line-delimited list of items and creates a humansort
state for it. Blank lines are skipped and duplicates keep their first
occurrence. Every item starts with a rating of zero.

OUTFILE defaults to <INFILE>.humansort. With the redis store OUTFILE is
the key to write.`,
		Example: `  humansort start movies.txt
  humansort start movies.txt ranked.humansort --batch-size 4
  humansort start movies.txt --force`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := listfile.ReadFile(args[0])
			if err != nil {
				return err
			}

			location := app.StateLocation(args[0])
			if len(args) == 2 {
				location = args[1]
			}

			return cmdutil.WithClient(cmd.Context(), app, location, func(client humansort.Client) error {
				state, err := client.Create(cmd.Context(), items,
					humansort.WithOverwrite(force),
					humansort.WithBatchSize(batchSize),
				)
				if err != nil {
					return err
				}

				app.Logger().Debug().
					Str("state", location).
					Int("items", state.Len()).
					Int("batch_size", state.BatchSize()).
					Msg("State created")

				cmdutil.Alerts(cmd, app).Write(
					alerts.Success("Created %s with %d items", location, state.Len()))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&batchSize, "batch-size", "b", constants.DefaultBatchSize,
		"Items shown per round (2-9)")
	cmd.Flags().BoolVarP(&force, "force", "f", false,
		"Overwrite an existing state")

	return cmd
}
