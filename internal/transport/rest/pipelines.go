package rest

import (
	"context"
	"net/http"

	"github.com/heartmarshall/vocabmaster/internal/domain"
	"github.com/heartmarshall/vocabmaster/internal/service/assess"
	"github.com/heartmarshall/vocabmaster/internal/service/enrich"
	"github.com/heartmarshall/vocabmaster/internal/service/rank"
)

type assessService interface {
	Run(ctx context.Context, progress func(done, total int)) (assess.Summary, error)
}

type enrichService interface {
	Run(ctx context.Context, status domain.WordStatus, progress func(done, total int)) (enrich.Summary, error)
}

type rankService interface {
	Run(ctx context.Context, progress func(done, total int)) (rank.Summary, error)
	Reset(ctx context.Context) (int64, error)
}

// PipelinesHandler serves the LLM pipeline endpoints. The pipelines run
// synchronously; with personal-bank word counts a run finishes well within
// an HTTP timeout.
type PipelinesHandler struct {
	assess assessService
	enrich enrichService
	rank   rankService
}

// NewPipelinesHandler creates a PipelinesHandler.
func NewPipelinesHandler(assess assessService, enrich enrichService, rank rankService) *PipelinesHandler {
	return &PipelinesHandler{assess: assess, enrich: enrich, rank: rank}
}

// Assess scores every New word and auto-ignores pedestrian ones.
func (h *PipelinesHandler) Assess(w http.ResponseWriter, r *http.Request) {
	summary, err := h.assess.Run(r.Context(), nil)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// EnrichRequest is the JSON body for POST /api/pipelines/enrich.
type EnrichRequest struct {
	// Status selects which words to enrich. Empty means New.
	Status string `json:"status"`
}

// Enrich generates definitions, examples and distractors for every word in
// the requested status.
func (h *PipelinesHandler) Enrich(w http.ResponseWriter, r *http.Request) {
	var req EnrichRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	status := domain.WordStatusNew
	if req.Status != "" {
		status = domain.WordStatus(req.Status)
		if !status.IsValid() {
			writeError(w, r, domain.NewValidationError("status", "unknown status "+req.Status))
			return
		}
	}

	summary, err := h.enrich.Run(r.Context(), status, nil)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Rank assigns frequency tiers to unranked active words.
func (h *PipelinesHandler) Rank(w http.ResponseWriter, r *http.Request) {
	summary, err := h.rank.Run(r.Context(), nil)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// ResetTiersResponse is the JSON response for POST /api/pipelines/rank/reset.
type ResetTiersResponse struct {
	Cleared int64 `json:"cleared"`
}

// ResetTiers clears every priority tier.
func (h *PipelinesHandler) ResetTiers(w http.ResponseWriter, r *http.Request) {
	n, err := h.rank.Reset(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ResetTiersResponse{Cleared: n})
}
