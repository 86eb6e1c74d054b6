package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/humansort/cmd/humansort/cmd/export"
	"github.com/agentstation/humansort/cmd/humansort/cmd/items"
	"github.com/agentstation/humansort/cmd/humansort/cmd/merge"
	"github.com/agentstation/humansort/cmd/humansort/cmd/output"
	"github.com/agentstation/humansort/cmd/humansort/cmd/serve"
	sortcmd "github.com/agentstation/humansort/cmd/humansort/cmd/sort"
	"github.com/agentstation/humansort/cmd/humansort/cmd/start"
	"github.com/agentstation/humansort/cmd/humansort/cmd/version"
	render "github.com/agentstation/humansort/internal/cmd/output"
)

// Execute runs the humansort CLI application with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "humansort",
		Short:   "Rank a list by picking favourites from small batches",
		Version: a.version,
		Long: `Humansort ranks a list of items by showing small batches and asking
which one is best. Each answer adjusts Elo-style ratings, and batches are
drawn so that well-rated items are compared more often.

  humansort start movies.txt          # create movies.txt.humansort
  humansort sort movies.txt.humansort # answer batches until you quit
  humansort output movies.txt.humansort`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands:",
	})

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.humansort.yaml)")
	flags.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringP("format", "o", "", "output format: table, plain, json, yaml")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	flags.String("store", "", "state backend: file, redis, memory (default file)")
	flags.String("redis-addr", "", "redis address for --store redis")
	flags.Int("redis-db", 0, "redis database for --store redis")

	rootCmd.SetVersionTemplate("humansort {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs. Flags that were set
// explicitly take precedence over the config file and the environment.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if path := mustGetString(cmd, "config"); path != "" {
		config, err := LoadConfig(path)
		if err != nil {
			return err
		}
		a.config = config
	}

	changed := cmd.Flags().Changed
	if changed("verbose") {
		a.config.Verbose = mustGetBool(cmd, "verbose")
	}
	if changed("quiet") {
		a.config.Quiet = mustGetBool(cmd, "quiet")
	}
	if changed("no-color") {
		a.config.NoColor = mustGetBool(cmd, "no-color")
	}
	if changed("format") {
		a.config.Format = mustGetString(cmd, "format")
	}
	if changed("log-level") {
		a.config.LogLevel = mustGetString(cmd, "log-level")
	}
	if changed("store") {
		a.config.Store = mustGetString(cmd, "store")
	}
	if changed("redis-addr") {
		a.config.Redis.Addr = mustGetString(cmd, "redis-addr")
	}
	if changed("redis-db") {
		db, err := cmd.Flags().GetInt("redis-db")
		if err != nil {
			panic("programming error: failed to get flag redis-db: " + err.Error())
		}
		a.config.Redis.DB = db
	}

	if _, err := render.ParseFormat(a.config.Format); err != nil {
		return err
	}

	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(start.NewCommand(a))
	rootCmd.AddCommand(merge.NewCommand(a))
	rootCmd.AddCommand(sortcmd.NewCommand(a))
	rootCmd.AddCommand(output.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(items.NewCommand(a))
	rootCmd.AddCommand(export.NewCommand(a))
	rootCmd.AddCommand(serve.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(version.NewCommand(a))
}

// ExitOnError prints an error and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
