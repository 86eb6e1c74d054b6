// Package merge implements the merge command.
package merge

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/humansort"
	"github.com/agentstation/humansort/internal/appcontext"
	"github.com/agentstation/humansort/internal/cmd/alerts"
	"github.com/agentstation/humansort/internal/cmd/cmdutil"
	"github.com/agentstation/humansort/pkg/listfile"
	"github.com/agentstation/humansort/pkg/ranking"
)

// NewCommand creates the merge command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "merge STATEFILE LISTFILE",
		GroupID: "core",
		Short:   "Reconcile a state with an edited list",
		Long: `Merge brings a state in line with a list file. Items missing from the
list are removed, new items are added with a rating of zero, and items on
both keep their rating and position.

A missing state is created from the list.`,
		Example: `  humansort merge movies.txt.humansort movies.txt`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := listfile.ReadFile(args[1])
			if err != nil {
				return err
			}

			return cmdutil.WithClient(cmd.Context(), app, args[0], func(client humansort.Client) error {
				var added, removed []string
				client.OnItemAdded(func(item ranking.Item) { added = append(added, item.Value) })
				client.OnItemRemoved(func(item ranking.Item) { removed = append(removed, item.Value) })

				state, err := client.Merge(cmd.Context(), names)
				if err != nil {
					return err
				}

				alert := alerts.Success("Merged %s: %d added, %d removed, %d items",
					args[1], len(added), len(removed), state.Len())
				for _, v := range added {
					alert.WithDetails("+ " + v)
				}
				for _, v := range removed {
					alert.WithDetails("- " + v)
				}
				cmdutil.Alerts(cmd, app).Write(alert)
				return nil
			})
		},
	}
}
