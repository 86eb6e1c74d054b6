// Package handlers implements the humansort HTTP API on top of a
// humansort.Client.
package handlers

import (
	"context"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/humansort"
	"github.com/agentstation/humansort/internal/cmd/output"
	"github.com/agentstation/humansort/internal/server/cache"
	"github.com/agentstation/humansort/internal/server/events"
	"github.com/agentstation/humansort/internal/server/sse"
	ws "github.com/agentstation/humansort/internal/server/websocket"
	"github.com/agentstation/humansort/internal/store"
	"github.com/agentstation/humansort/pkg/errors"
	"github.com/agentstation/humansort/pkg/ranking"
)

// Publisher queues an event for realtime clients.
type Publisher interface {
	Publish(t events.Type, data any)
}

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	client         humansort.Client
	rankings       *cache.Cache[RankingResponse]
	views          *Views
	publisher      Publisher
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
}

// Deps groups what the handlers need from the server.
type Deps struct {
	Client         humansort.Client
	Rankings       *cache.Cache[RankingResponse]
	Views          *Views
	Publisher      Publisher
	WSHub          *ws.Hub
	SSEBroadcaster *sse.Broadcaster
	Upgrader       websocket.Upgrader
	Logger         *zerolog.Logger
}

// New creates a new Handlers instance.
func New(d Deps) *Handlers {
	return &Handlers{
		client:         d.Client,
		rankings:       d.Rankings,
		views:          d.Views,
		publisher:      d.Publisher,
		wsHub:          d.WSHub,
		sseBroadcaster: d.SSEBroadcaster,
		upgrader:       d.Upgrader,
		logger:         d.Logger,
	}
}

// StateResponse is the body of GET /state and of item mutations.
type StateResponse struct {
	Items     []ranking.Item `json:"items"`
	BatchSize int            `json:"batch_size"`
	View      View           `json:"view"`
	CanSort   bool           `json:"can_sort"`
}

// RankingResponse is the body of GET /ranking.
type RankingResponse struct {
	Items []output.RankedItem `json:"items"`
	Total int                 `json:"total"`
}

// load returns the saved state, or an empty one if nothing is saved yet.
func (h *Handlers) load(ctx context.Context) (*ranking.State, error) {
	state, err := h.client.State(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return ranking.New(nil), nil
	}
	return state, err
}

func (h *Handlers) stateResponse(state *ranking.State) StateResponse {
	return StateResponse{
		Items:     state.Items(),
		BatchSize: state.BatchSize(),
		View:      h.views.Current(),
		CanSort:   canSort(state),
	}
}

func newRankingResponse(state *ranking.State, limit int) RankingResponse {
	r := output.NewRanking(state.Drain(), limit, true)
	return RankingResponse{Items: r.Items, Total: state.Len()}
}

func canSort(state *ranking.State) bool {
	return state.Len() >= state.BatchSize()
}
