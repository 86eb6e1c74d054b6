// Package export implements the export command.
package export

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/humansort"
	"github.com/agentstation/humansort/internal/appcontext"
	"github.com/agentstation/humansort/internal/cmd/alerts"
	"github.com/agentstation/humansort/internal/cmd/cmdutil"
	"github.com/agentstation/humansort/internal/store"
	"github.com/agentstation/humansort/pkg/constants"
	"github.com/agentstation/humansort/pkg/save"
)

// NewCommand creates the export command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		to     string
		format string
	)

	cmd := &cobra.Command{
		Use:     "export STATEFILE",
		GroupID: "management",
		Short:   "Write a state as a JSON or YAML file",
		Long: `Export copies a state, including ratings, batch size and cursor, into a
state file. The format follows the extension of --to: .yaml and .yml write
YAML, anything else writes JSON. The result can be used as STATEFILE by
every other command.

With --to - the state is written to stdout in --state-format.`,
		Example: `  humansort export movies.txt.humansort --to movies.yaml
  humansort --store redis export movies --to movies.humansort
  humansort export movies.txt.humansort --to - --state-format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if to == "" {
				return cmdutil.InvalidFlag("to", to, "a destination is required")
			}

			return cmdutil.WithClient(cmd.Context(), app, args[0], func(client humansort.Client) error {
				state, err := client.State(cmd.Context())
				if err != nil {
					return err
				}

				if to == "-" {
					f, err := save.ParseFormat(format)
					if err != nil {
						return err
					}
					return save.Write(state, save.WithWriter(cmd.OutOrStdout()), save.WithFormat(f))
				}

				dst := store.NewFileStore(to)
				lockCtx, cancel := context.WithTimeout(cmd.Context(), constants.LockTimeout)
				defer cancel()
				unlock, err := store.Lock(lockCtx, dst)
				if err != nil {
					return err
				}
				defer unlock()
				if err := dst.Save(cmd.Context(), state); err != nil {
					return err
				}
				cmdutil.Alerts(cmd, app).Write(alerts.Success("Exported %d items to %s (%s)",
					state.Len(), to, save.FormatFromPath(to)))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&to, "to", "t", "", "Destination file, or - for stdout")
	cmd.Flags().StringVar(&format, "state-format", "json", "Encoding for --to -: json or yaml")

	return cmd
}
