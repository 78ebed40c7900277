package rest

import (
	"context"
	"net/http"

	"github.com/heartmarshall/vocabmaster/internal/domain"
	"github.com/heartmarshall/vocabmaster/internal/grid"
	"github.com/heartmarshall/vocabmaster/internal/service/editor"
)

type editorService interface {
	Snapshot(ctx context.Context) ([]grid.Row, error)
	Sync(ctx context.Context, baseline, current []grid.Row) (editor.SyncResult, error)
	Stats(ctx context.Context) (map[domain.WordStatus]int, error)
}

// WordsHandler serves the grid editor endpoints.
type WordsHandler struct {
	editor editorService
}

// NewWordsHandler creates a WordsHandler.
func NewWordsHandler(editor editorService) *WordsHandler {
	return &WordsHandler{editor: editor}
}

// SnapshotResponse is the JSON response for GET /api/words.
type SnapshotResponse struct {
	Rows []grid.Row `json:"rows"`
}

// Snapshot returns the full word bank as grid rows.
func (h *WordsHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	rows, err := h.editor.Snapshot(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if rows == nil {
		rows = []grid.Row{}
	}
	writeJSON(w, http.StatusOK, SnapshotResponse{Rows: rows})
}

// SyncRequest is the JSON body for POST /api/words/sync. Baseline is the
// snapshot the client last loaded; Current is its edited copy.
type SyncRequest struct {
	Baseline []grid.Row `json:"baseline"`
	Current  []grid.Row `json:"current"`
}

// Sync reconciles an edited grid against the baseline snapshot.
func (h *WordsHandler) Sync(w http.ResponseWriter, r *http.Request) {
	var req SyncRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.editor.Sync(r.Context(), req.Baseline, req.Current)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// WordStatsResponse is the JSON response for GET /api/words/stats.
type WordStatsResponse struct {
	Counts map[string]int `json:"counts"`
}

// Stats returns word counts per status.
func (h *WordsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.editor.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp := WordStatsResponse{Counts: make(map[string]int, len(counts))}
	for status, n := range counts {
		resp.Counts[status.String()] = n
	}
	writeJSON(w, http.StatusOK, resp)
}
