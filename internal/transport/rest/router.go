package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/vocabmaster/internal/config"
	"github.com/heartmarshall/vocabmaster/internal/transport/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Health    *HealthHandler
	Words     *WordsHandler
	Pipelines *PipelinesHandler
	Import    *ImportHandler
	Study     *StudyHandler
}

// NewRouter mounts all REST endpoints and wraps them in the standard
// middleware chain.
func NewRouter(log *slog.Logger, cors config.CORSConfig, h Handlers) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /health/live", h.Health.Live)
	mux.HandleFunc("GET /health/ready", h.Health.Ready)

	mux.HandleFunc("GET /api/words", h.Words.Snapshot)
	mux.HandleFunc("GET /api/words/stats", h.Words.Stats)
	mux.HandleFunc("POST /api/words/sync", h.Words.Sync)

	mux.HandleFunc("POST /api/import", h.Import.Upload)

	mux.HandleFunc("POST /api/pipelines/assess", h.Pipelines.Assess)
	mux.HandleFunc("POST /api/pipelines/enrich", h.Pipelines.Enrich)
	mux.HandleFunc("POST /api/pipelines/rank", h.Pipelines.Rank)
	mux.HandleFunc("POST /api/pipelines/rank/reset", h.Pipelines.ResetTiers)

	mux.HandleFunc("POST /api/study/attempts", h.Study.LogAttempt)
	mux.HandleFunc("GET /api/study/words/{id}/stats", h.Study.Stats)
	mux.HandleFunc("GET /api/study/insult", h.Study.Insult)

	chain := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(log),
		middleware.Logger(log),
		middleware.CORS(cors),
	)
	return chain(mux)
}
