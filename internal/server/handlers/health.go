package handlers

import (
	"net/http"

	"github.com/agentstation/humansort/internal/server/response"
)

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "humansort-api",
		"version": "v1",
	})
}

// HandleReady handles GET /api/v1/ready. It fails when the store cannot be
// read.
func (h *Handlers) HandleReady(w http.ResponseWriter, r *http.Request) {
	state, err := h.load(r.Context())
	if err != nil {
		h.logger.Warn().Err(err).Msg("Readiness check failed")
		response.ServiceUnavailable(w, "State store not available")
		return
	}

	s := h.client.Store()
	response.OK(w, map[string]any{
		"status": "ready",
		"store": map[string]any{
			"backend":  s.Name(),
			"location": s.Location(),
		},
		"items":             state.Len(),
		"cached_rankings":   h.rankings.Len(),
		"websocket_clients": h.wsHub.ClientCount(),
		"sse_clients":       h.sseBroadcaster.ClientCount(),
	})
}
