package server

import (
	"net/http"

	"github.com/agentstation/humansort/internal/server/handlers"
	"github.com/agentstation/humansort/internal/server/middleware"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(handlers.Deps{
		Client:         s.client,
		Rankings:       s.rankings,
		Views:          s.views,
		Publisher:      s.broker,
		WSHub:          s.wsHub,
		SSEBroadcaster: s.sseBroadcaster,
		Upgrader:       s.upgrader,
		Logger:         s.logger,
	})

	s.registerRoutes(mux, h)
	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	p := s.config.PathPrefix

	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("GET "+p+"/health", h.HandleHealth)
	mux.HandleFunc("GET "+p+"/ready", h.HandleReady)

	mux.HandleFunc("GET "+p+"/state", h.HandleGetState)

	mux.HandleFunc("GET "+p+"/items", h.HandleListItems)
	mux.HandleFunc("POST "+p+"/items", h.HandleAddItem)
	mux.HandleFunc("PUT "+p+"/items/{name}", h.HandleRenameItem)
	mux.HandleFunc("DELETE "+p+"/items/{name}", h.HandleRemoveItem)

	mux.HandleFunc("PUT "+p+"/batch-size", h.HandleSetBatchSize)
	mux.HandleFunc("GET "+p+"/batch", h.HandleGetBatch)
	mux.HandleFunc("POST "+p+"/judgments", h.HandleJudge)
	mux.HandleFunc("GET "+p+"/ranking", h.HandleRanking)

	mux.HandleFunc("GET "+p+"/view", h.HandleGetView)
	mux.HandleFunc("PUT "+p+"/view", h.HandleSetView)

	mux.HandleFunc("GET "+p+"/updates/ws", h.HandleWebSocket)
	mux.HandleFunc("GET "+p+"/updates/stream", h.HandleSSE)
}

// applyMiddleware wraps handler with the middleware chain. Request IDs are
// assigned first so every later layer can log them.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cfg := s.config

	handler = middleware.Token(cfg.Token, s.logger)(handler)

	if cfg.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		corsConfig.AllowedOrigins = cfg.CORSOrigins
		handler = middleware.CORS(corsConfig)(handler)
	}

	return middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(s.logger),
		middleware.Logger(s.logger),
	)(handler)
}
