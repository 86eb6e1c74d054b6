// Package items implements the items command and its subcommands.
package items

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/humansort"
	"github.com/agentstation/humansort/internal/appcontext"
	"github.com/agentstation/humansort/internal/cmd/alerts"
	"github.com/agentstation/humansort/internal/cmd/cmdutil"
	"github.com/agentstation/humansort/pkg/errors"
)

// NewCommand creates the items command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "items",
		GroupID: "management",
		Short:   "Add, rename or remove items in a state",
		Long: `Items edits the item list of a state without a list file.

Added items start with a rating of zero. Renamed items keep their rating
and position. Removing and re-adding an item resets it.`,
	}

	cmd.AddCommand(newAddCommand(app))
	cmd.AddCommand(newRenameCommand(app))
	cmd.AddCommand(newRemoveCommand(app))

	return cmd
}

func newAddCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "add STATEFILE ITEM...",
		Short:   "Add items",
		Example: `  humansort items add movies.txt.humansort "Alien" "Heat"`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := clean(args[1:])
			if err != nil {
				return err
			}
			return cmdutil.WithClient(cmd.Context(), app, args[0], func(client humansort.Client) error {
				out := cmdutil.Alerts(cmd, app)
				for _, v := range values {
					if _, err := client.Add(cmd.Context(), v); err != nil {
						return err
					}
					out.Write(alerts.Success("Added %q", v))
				}
				return nil
			})
		},
	}
}

func newRenameCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "rename STATEFILE FROM TO",
		Short:   "Rename an item, keeping its rating",
		Example: `  humansort items rename movies.txt.humansort "Alien" "Aliens"`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := clean(args[1:])
			if err != nil {
				return err
			}
			return cmdutil.WithClient(cmd.Context(), app, args[0], func(client humansort.Client) error {
				if _, err := client.Rename(cmd.Context(), values[0], values[1]); err != nil {
					return err
				}
				cmdutil.Alerts(cmd, app).Write(alerts.Success("Renamed %q to %q", values[0], values[1]))
				return nil
			})
		},
	}
}

func newRemoveCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "remove STATEFILE ITEM...",
		Aliases: []string{"rm"},
		Short:   "Remove items",
		Example: `  humansort items remove movies.txt.humansort "Heat"`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := clean(args[1:])
			if err != nil {
				return err
			}
			return cmdutil.WithClient(cmd.Context(), app, args[0], func(client humansort.Client) error {
				out := cmdutil.Alerts(cmd, app)
				for _, v := range values {
					if _, err := client.Remove(cmd.Context(), v); err != nil {
						return err
					}
					out.Write(alerts.Success("Removed %q", v))
				}
				return nil
			})
		},
	}
}

// clean trims item arguments the way list files are trimmed.
func clean(args []string) ([]string, error) {
	values := make([]string, len(args))
	for i, arg := range args {
		values[i] = strings.TrimSpace(arg)
		if values[i] == "" {
			return nil, errors.NewValidationError("item", arg, "item cannot be blank")
		}
	}
	return values, nil
}
