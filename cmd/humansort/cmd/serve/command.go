// Package serve implements the serve command.
package serve

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/agentstation/humansort"
	"github.com/agentstation/humansort/internal/appcontext"
	"github.com/agentstation/humansort/internal/cmd/alerts"
	"github.com/agentstation/humansort/internal/cmd/cmdutil"
	"github.com/agentstation/humansort/internal/server"
	"github.com/agentstation/humansort/pkg/constants"
	hserrors "github.com/agentstation/humansort/pkg/errors"
)

// Flags holds the serve command flags.
type Flags struct {
	Host        string
	Port        int
	State       string
	Ephemeral   bool
	CORS        bool
	CORSOrigins []string
	Token       string
}

// NewCommand creates the serve command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "serve",
		GroupID: "management",
		Short:   "Serve the sorting API for browser front-ends",
		Long: `Serve starts a JSON API over one state, with live updates over
WebSocket (/api/v1/updates/ws) and Server-Sent Events
(/api/v1/updates/stream).

--state names the state file, or the key with the redis store. It is
created empty if it does not exist. --ephemeral keeps the state in memory
and loses it on exit.

With --token, requests that change the state need an
"Authorization: Bearer <token>" header.`,
		Example: `  humansort serve --state movies.txt.humansort
  humansort serve --ephemeral --port 3000 --cors
  humansort --store redis serve --state movies --token s3cret`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app, flags)
		},
	}

	cmd.Flags().StringVar(&flags.Host, "host", constants.DefaultServerHost, "Bind address")
	cmd.Flags().IntVarP(&flags.Port, "port", "p", constants.DefaultServerPort, "Server port")
	cmd.Flags().StringVarP(&flags.State, "state", "s", "", "State file or redis key to serve")
	cmd.Flags().BoolVar(&flags.Ephemeral, "ephemeral", false, "Keep the state in memory only")
	cmd.Flags().BoolVar(&flags.CORS, "cors", false, "Enable CORS for all origins")
	cmd.Flags().StringSliceVar(&flags.CORSOrigins, "cors-origins", nil, "Allowed CORS origins (comma-separated)")
	cmd.Flags().StringVar(&flags.Token, "token", "", "Bearer token required on mutating requests")
	cmd.MarkFlagsMutuallyExclusive("state", "ephemeral")

	return cmd
}

// config merges explicitly set flags over the app's server configuration.
func config(cmd *cobra.Command, app appcontext.Interface, flags *Flags) server.Config {
	cfg := app.ServerConfig()
	changed := cmd.Flags().Changed

	if changed("host") {
		cfg.Host = flags.Host
	}
	if changed("port") {
		cfg.Port = flags.Port
	}
	if changed("cors") {
		cfg.CORSEnabled = flags.CORS
	}
	if changed("cors-origins") {
		cfg.CORSEnabled = true
		cfg.CORSOrigins = flags.CORSOrigins
	}
	if changed("token") {
		cfg.Token = flags.Token
	}
	return cfg
}

func open(ctx context.Context, app appcontext.Interface, flags *Flags) (humansort.Client, error) {
	if flags.Ephemeral {
		return humansort.New(humansort.WithLogger(app.Logger()))
	}
	if flags.State == "" {
		return nil, hserrors.NewValidationError("--state", "", "a state is required unless --ephemeral is set")
	}
	return app.Client(ctx, flags.State)
}

func run(cmd *cobra.Command, app appcontext.Interface, flags *Flags) error {
	ctx := cmd.Context()
	logger := app.Logger()

	client, err := open(ctx, app, flags)
	if err != nil {
		return err
	}
	defer client.Close() //nolint:errcheck

	srv, err := server.New(client, config(cmd, app, flags), logger)
	if err != nil {
		return hserrors.WrapResource("create", "server", "", err)
	}
	if err := srv.Start(ctx); err != nil {
		return err
	}

	httpServer := srv.HTTPServer()
	listener, err := net.Listen("tcp", httpServer.Addr)
	if err != nil {
		_ = srv.Shutdown(ctx)
		return hserrors.WrapIO("listen", httpServer.Addr, err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", listener.Addr().String()).
			Str("store", client.Store().Name()).
			Str("state", client.Store().Location()).
			Msg("Server starting")

		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	out := cmdutil.Alerts(cmd, app)
	out.Write(alerts.Info("Serving %s on http://%s%s", client.Store().Location(),
		listener.Addr(), constants.APIPathPrefix).WithDetails("Press Ctrl+C to stop"))

	select {
	case err := <-serverErr:
		_ = srv.Shutdown(context.Background())
		if err != nil {
			return hserrors.WrapResource("serve", "server", listener.Addr().String(), err)
		}
		return nil
	case <-ctx.Done():
		logger.Info().Msg("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	// Ending the streams first lets http.Server.Shutdown drain quickly.
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("Failed to stop background services")
	}
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return hserrors.WrapResource("shutdown", "server", listener.Addr().String(), err)
	}

	logger.Info().Msg("Server stopped gracefully")
	out.Write(alerts.Success("Server stopped"))
	return nil
}
