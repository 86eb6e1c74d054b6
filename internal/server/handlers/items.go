package handlers

import (
	"net/http"
	"strings"

	"github.com/agentstation/humansort/internal/server/events"
	"github.com/agentstation/humansort/internal/server/response"
	"github.com/agentstation/humansort/pkg/errors"
	"github.com/agentstation/humansort/pkg/logging"
)

// ItemRequest is the body of POST /items and PUT /items/{name}.
type ItemRequest struct {
	Name string `json:"name"`
}

// BatchSizeRequest is the body of PUT /batch-size.
type BatchSizeRequest struct {
	BatchSize int `json:"batch_size"`
}

// name trims the requested item name and rejects blank names.
func (req ItemRequest) name() (string, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return "", errors.NewValidationError("name", req.Name, "item name must not be blank")
	}
	return name, nil
}

// HandleGetState handles GET /api/v1/state.
func (h *Handlers) HandleGetState(w http.ResponseWriter, r *http.Request) {
	state, err := h.load(r.Context())
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.OK(w, h.stateResponse(state))
}

// HandleListItems handles GET /api/v1/items. Items come in rank order.
func (h *Handlers) HandleListItems(w http.ResponseWriter, r *http.Request) {
	state, err := h.load(r.Context())
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.OK(w, state.Items())
}

// HandleAddItem handles POST /api/v1/items.
func (h *Handlers) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if err := response.Decode(w, r, &req); err != nil {
		response.Err(w, r, err)
		return
	}
	name, err := req.name()
	if err != nil {
		response.Err(w, r, err)
		return
	}

	ctx := logging.WithItem(r.Context(), name)
	state, err := h.client.Add(ctx, name)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	logging.FromContext(ctx).Info().Msg("Item added")
	response.Created(w, h.stateResponse(state))
}

// HandleRenameItem handles PUT /api/v1/items/{name}.
func (h *Handlers) HandleRenameItem(w http.ResponseWriter, r *http.Request) {
	from := r.PathValue("name")

	var req ItemRequest
	if err := response.Decode(w, r, &req); err != nil {
		response.Err(w, r, err)
		return
	}
	to, err := req.name()
	if err != nil {
		response.Err(w, r, err)
		return
	}

	state, err := h.client.Rename(r.Context(), from, to)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info().Str("from", from).Str("to", to).Msg("Item renamed")
	response.OK(w, h.stateResponse(state))
}

// HandleRemoveItem handles DELETE /api/v1/items/{name}.
func (h *Handlers) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx := logging.WithItem(r.Context(), r.PathValue("name"))
	state, err := h.client.Remove(ctx, r.PathValue("name"))
	if err != nil {
		response.Err(w, r, err)
		return
	}

	logging.FromContext(ctx).Info().Msg("Item removed")
	response.OK(w, h.stateResponse(state))
}

// HandleSetBatchSize handles PUT /api/v1/batch-size.
func (h *Handlers) HandleSetBatchSize(w http.ResponseWriter, r *http.Request) {
	var req BatchSizeRequest
	if err := response.Decode(w, r, &req); err != nil {
		response.Err(w, r, err)
		return
	}

	state, err := h.client.SetBatchSize(r.Context(), req.BatchSize)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	h.publisher.Publish(events.BatchSizeChanged, map[string]any{"batch_size": state.BatchSize()})
	response.OK(w, h.stateResponse(state))
}
