package handlers

import (
	"net/http"
	"sync"

	"github.com/agentstation/humansort/internal/server/events"
	"github.com/agentstation/humansort/internal/server/response"
	"github.com/agentstation/humansort/pkg/errors"
)

// View is the screen the front-end shows.
type View string

// Views.
const (
	ViewInput   View = "input"
	ViewSorting View = "sorting"
	ViewOutput  View = "output"
)

// IsValid reports whether v names a known view.
func (v View) IsValid() bool {
	switch v {
	case ViewInput, ViewSorting, ViewOutput:
		return true
	}
	return false
}

// Views holds the current view. It lives in server memory only and starts
// at ViewInput.
type Views struct {
	mu      sync.RWMutex
	current View
}

// NewViews returns a Views showing ViewInput.
func NewViews() *Views {
	return &Views{current: ViewInput}
}

// Current returns the current view.
func (v *Views) Current() View {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

func (v *Views) set(view View) {
	v.mu.Lock()
	v.current = view
	v.mu.Unlock()
}

// ViewRequest is the body of PUT /view.
type ViewRequest struct {
	View View `json:"view"`
}

// HandleGetView handles GET /api/v1/view.
func (h *Handlers) HandleGetView(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, ViewRequest{View: h.views.Current()})
}

// HandleSetView handles PUT /api/v1/view. Switching to sorting needs at
// least a batch worth of items.
func (h *Handlers) HandleSetView(w http.ResponseWriter, r *http.Request) {
	var req ViewRequest
	if err := response.Decode(w, r, &req); err != nil {
		response.Err(w, r, err)
		return
	}
	if !req.View.IsValid() {
		response.Err(w, r, errors.NewValidationError("view", req.View, "view must be input, sorting or output"))
		return
	}

	if req.View == ViewSorting {
		state, err := h.load(r.Context())
		if err != nil {
			response.Err(w, r, err)
			return
		}
		if !canSort(state) {
			response.Err(w, r, &errors.InsufficientItemsError{Have: state.Len(), Need: state.BatchSize()})
			return
		}
	}

	if previous := h.views.Current(); previous != req.View {
		h.views.set(req.View)
		h.publisher.Publish(events.ViewChanged, map[string]any{"from": previous, "to": req.View})
	}
	response.OK(w, req)
}
