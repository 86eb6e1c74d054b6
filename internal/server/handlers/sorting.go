package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/agentstation/humansort/internal/server/response"
	"github.com/agentstation/humansort/internal/store"
	"github.com/agentstation/humansort/pkg/constants"
	"github.com/agentstation/humansort/pkg/errors"
	"github.com/agentstation/humansort/pkg/logging"
)

// JudgmentRequest is the body of POST /judgments: the winner beat every
// item in others.
type JudgmentRequest struct {
	Winner string   `json:"winner"`
	Others []string `json:"others"`
}

// BatchResponse is the body of GET /batch.
type BatchResponse struct {
	Items []string `json:"items"`
}

// JudgmentResponse is the body of POST /judgments. NextBatch is null when
// the state cannot fill a batch.
type JudgmentResponse struct {
	Ranking   RankingResponse `json:"ranking"`
	NextBatch []string        `json:"next_batch"`
}

// next selects a batch, reporting a missing state as an empty one.
func (h *Handlers) next(ctx context.Context) ([]string, error) {
	batch, err := h.client.Next(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &errors.InsufficientItemsError{Have: 0, Need: constants.DefaultBatchSize}
	}
	return batch, err
}

// HandleGetBatch handles GET /api/v1/batch.
func (h *Handlers) HandleGetBatch(w http.ResponseWriter, r *http.Request) {
	batch, err := h.next(r.Context())
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.OK(w, BatchResponse{Items: batch})
}

// HandleJudge handles POST /api/v1/judgments.
func (h *Handlers) HandleJudge(w http.ResponseWriter, r *http.Request) {
	var req JudgmentRequest
	if err := response.Decode(w, r, &req); err != nil {
		response.Err(w, r, err)
		return
	}

	ordered := append([]string{req.Winner}, req.Others...)
	state, err := h.client.Judge(r.Context(), ordered)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info().
		Str("winner", req.Winner).
		Int("losers", len(req.Others)).
		Msg("Judgment applied")

	resp := JudgmentResponse{Ranking: newRankingResponse(state, 0)}
	batch, err := h.next(r.Context())
	switch {
	case err == nil:
		resp.NextBatch = batch
	case !errors.IsInsufficientItems(err):
		response.Err(w, r, err)
		return
	}
	response.OK(w, resp)
}

// HandleRanking handles GET /api/v1/ranking?limit=N. The default limit is
// 10 and limit=0 returns every item.
func (h *Handlers) HandleRanking(w http.ResponseWriter, r *http.Request) {
	limit := constants.DefaultOutputLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			response.Err(w, r, errors.NewValidationError("limit", raw, "limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	key := "ranking:" + strconv.Itoa(limit)
	resp, hit, err := h.rankings.GetOrLoad(key, func() (RankingResponse, error) {
		state, err := h.load(r.Context())
		if err != nil {
			return RankingResponse{}, err
		}
		return newRankingResponse(state, limit), nil
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}

	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	response.OK(w, resp)
}
