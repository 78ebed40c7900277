package rest

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/heartmarshall/vocabmaster/internal/domain"
)

type studyService interface {
	LogAttempt(ctx context.Context, wordID int64, result domain.StudyResult, sessionID uuid.UUID) (uuid.UUID, error)
	Stats(ctx context.Context, wordID int64) (domain.StudyStats, error)
	RandomInsult(ctx context.Context, maxSeverity int) (domain.Insult, error)
}

// StudyHandler serves the study-app support endpoints.
type StudyHandler struct {
	study studyService
}

// NewStudyHandler creates a StudyHandler.
func NewStudyHandler(study studyService) *StudyHandler {
	return &StudyHandler{study: study}
}

// AttemptRequest is the JSON body for POST /api/study/attempts.
type AttemptRequest struct {
	WordID    int64  `json:"word_id"`
	Result    string `json:"result"`
	SessionID string `json:"session_id,omitempty"`
}

// AttemptResponse echoes the session the attempt was grouped under.
type AttemptResponse struct {
	SessionID string `json:"session_id"`
}

// LogAttempt records one quiz answer.
func (h *StudyHandler) LogAttempt(w http.ResponseWriter, r *http.Request) {
	var req AttemptRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.WordID <= 0 {
		writeError(w, r, domain.NewValidationError("word_id", "must be positive"))
		return
	}

	sessionID := uuid.Nil
	if req.SessionID != "" {
		parsed, err := uuid.Parse(req.SessionID)
		if err != nil {
			writeError(w, r, domain.NewValidationError("session_id", "invalid UUID"))
			return
		}
		sessionID = parsed
	}

	sessionID, err := h.study.LogAttempt(r.Context(), req.WordID, domain.StudyResult(req.Result), sessionID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, AttemptResponse{SessionID: sessionID.String()})
}

// StatsResponse is the JSON response for GET /api/study/words/{id}/stats.
type StatsResponse struct {
	WordID    int64 `json:"word_id"`
	Correct   int   `json:"correct"`
	Incorrect int   `json:"incorrect"`
}

// Stats returns a word's attempt counts.
func (h *StudyHandler) Stats(w http.ResponseWriter, r *http.Request) {
	wordID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || wordID <= 0 {
		writeError(w, r, domain.NewValidationError("id", "must be a positive integer"))
		return
	}

	stats, err := h.study.Stats(r.Context(), wordID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, StatsResponse{
		WordID:    wordID,
		Correct:   stats.Correct,
		Incorrect: stats.Incorrect,
	})
}

// InsultResponse is the JSON response for GET /api/study/insult.
type InsultResponse struct {
	Text     string `json:"text"`
	Severity int    `json:"severity"`
}

// Insult returns a random wrong-answer taunt. The optional max_severity
// query parameter caps how harsh it gets.
func (h *StudyHandler) Insult(w http.ResponseWriter, r *http.Request) {
	maxSeverity := 0
	if raw := r.URL.Query().Get("max_severity"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, domain.NewValidationError("max_severity", "must be an integer"))
			return
		}
		maxSeverity = parsed
	}

	ins, err := h.study.RandomInsult(r.Context(), maxSeverity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, InsultResponse{Text: ins.Text, Severity: ins.Severity})
}
