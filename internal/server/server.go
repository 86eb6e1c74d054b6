// Package server serves the humansort JSON API and pushes state changes to
// browsers over WebSocket and Server-Sent Events.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/humansort"
	"github.com/agentstation/humansort/internal/server/cache"
	"github.com/agentstation/humansort/internal/server/events"
	"github.com/agentstation/humansort/internal/server/handlers"
	"github.com/agentstation/humansort/internal/server/sse"
	ws "github.com/agentstation/humansort/internal/server/websocket"
	"github.com/agentstation/humansort/pkg/constants"
	"github.com/agentstation/humansort/pkg/errors"
	"github.com/agentstation/humansort/pkg/ranking"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	client         humansort.Client
	rankings       *cache.Cache[handlers.RankingResponse]
	views          *handlers.Views
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
	config         Config
	ctx            context.Context
	cancel         context.CancelFunc
	startTime      time.Time
}

// New creates a server for client. Call Start before serving requests.
func New(client humansort.Client, cfg Config, logger *zerolog.Logger) (*Server, error) {
	if client == nil {
		return nil, errors.NewValidationError("client", nil, "client cannot be nil")
	}
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = constants.APIPathPrefix
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultConfig().CacheTTL
	}

	broker := events.NewBroker(logger)
	wsHub := ws.NewHub(logger)
	sseBroadcaster := sse.NewBroadcaster(logger)
	broker.Subscribe(wsHub)
	broker.Subscribe(sseBroadcaster)

	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		client:         client,
		rankings:       cache.New[handlers.RankingResponse](cfg.CacheTTL),
		views:          handlers.NewViews(),
		broker:         broker,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(cfg),
		},
		logger:    logger,
		config:    cfg,
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
	}

	s.connectHooks()

	logger.Debug().
		Str("store", client.Store().Name()).
		Str("state", client.Store().Location()).
		Msg("Server instance created")
	return s, nil
}

// checkOrigin accepts any origin unless CORS is restricted to a list.
func checkOrigin(cfg Config) func(*http.Request) bool {
	if !cfg.CORSEnabled || len(cfg.CORSOrigins) == 0 {
		return func(*http.Request) bool { return true }
	}
	allowed := make(map[string]bool, len(cfg.CORSOrigins))
	for _, o := range cfg.CORSOrigins {
		allowed[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed["*"] || allowed[origin]
	}
}

// connectHooks publishes client state changes to the broker and keeps the
// ranking cache in step with saves.
func (s *Server) connectHooks() {
	s.client.OnItemAdded(func(item ranking.Item) {
		s.broker.Publish(events.ItemAdded, map[string]any{"item": item})
	})

	s.client.OnItemRemoved(func(item ranking.Item) {
		s.broker.Publish(events.ItemRemoved, map[string]any{"item": item})
	})

	s.client.OnItemRenamed(func(from, to string) {
		s.broker.Publish(events.ItemRenamed, map[string]any{"from": from, "to": to})
	})

	s.client.OnJudged(func(j humansort.Judgment) {
		s.broker.Publish(events.JudgmentApplied, j)
	})

	s.client.OnStateSaved(func(*ranking.State) {
		s.rankings.Flush()
	})
}

// Start makes sure a state exists, then starts the event broker and the
// realtime transports.
func (s *Server) Start(ctx context.Context) error {
	if _, err := s.client.Create(ctx, nil); err != nil && !errors.IsAlreadyExists(err) {
		return errors.WrapResource("initialize", "state", s.client.Store().Location(), err)
	}

	go s.broker.Run(s.ctx)
	go s.wsHub.Run(s.ctx)
	go s.sseBroadcaster.Run(s.ctx)

	s.logger.Debug().Msg("Background services started")
	return nil
}

// Handler returns the routed handler with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// HTTPServer returns an http.Server for Handler using the configured
// address and timeouts.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: constants.ReadHeaderTimeout,
		ReadTimeout:       s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
		BaseContext:       func(net.Listener) context.Context { return s.ctx },
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
}

// URL returns the API base URL for the configured address.
func (s *Server) URL() string {
	return fmt.Sprintf("http://%s%s", s.Addr(), s.config.PathPrefix)
}

// Shutdown stops the background services and closes open streams.
func (s *Server) Shutdown(_ context.Context) error {
	s.logger.Info().Dur("uptime", time.Since(s.startTime)).Msg("Shutting down server background services")
	s.cancel()
	return nil
}

// Broker returns the event broker.
func (s *Server) Broker() *events.Broker {
	return s.broker
}
