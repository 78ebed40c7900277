package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/vocabmaster/internal/adapter/postgres"
	"github.com/heartmarshall/vocabmaster/internal/adapter/postgres/distractor"
	"github.com/heartmarshall/vocabmaster/internal/adapter/postgres/example"
	"github.com/heartmarshall/vocabmaster/internal/adapter/postgres/insult"
	"github.com/heartmarshall/vocabmaster/internal/adapter/postgres/studylog"
	"github.com/heartmarshall/vocabmaster/internal/adapter/postgres/word"
	"github.com/heartmarshall/vocabmaster/internal/config"
	"github.com/heartmarshall/vocabmaster/internal/llm"
	"github.com/heartmarshall/vocabmaster/internal/service/assess"
	"github.com/heartmarshall/vocabmaster/internal/service/editor"
	"github.com/heartmarshall/vocabmaster/internal/service/enrich"
	"github.com/heartmarshall/vocabmaster/internal/service/importer"
	"github.com/heartmarshall/vocabmaster/internal/service/rank"
	"github.com/heartmarshall/vocabmaster/internal/service/study"
	"github.com/heartmarshall/vocabmaster/internal/transport/rest"
)

// Run is the admin-server entry point. It loads configuration, applies
// pending migrations, wires repositories and services, and serves the REST
// API until ctx is canceled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	applied, err := postgres.Migrate(ctx, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if applied > 0 {
		logger.Info("migrations applied", slog.Int("count", applied))
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	llmClient := NewLLMClient(cfg.LLM, logger)

	words := word.New(pool)
	examples := example.New(pool)
	distractors := distractor.New(pool)
	insults := insult.New(pool)
	studyLogs := studylog.New(pool)
	txm := postgres.NewTxManager(pool)

	handlers := rest.Handlers{
		Health: rest.NewHealthHandler(pool, BuildVersion()),
		Words:  rest.NewWordsHandler(editor.NewService(logger, words)),
		Pipelines: rest.NewPipelinesHandler(
			assess.NewService(logger, words, llmClient, cfg.Pipeline.AssessBatchSize, cfg.Pipeline.PedestrianThreshold),
			enrich.NewService(logger, words, examples, distractors, txm, llmClient, cfg.Pipeline.EnrichBatchSize),
			rank.NewService(logger, words, llmClient, cfg.Pipeline.RankBatchSize),
		),
		Import: rest.NewImportHandler(importer.NewService(logger, words)),
		Study:  rest.NewStudyHandler(study.NewService(logger, studyLogs, insults)),
	}

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      rest.NewRouter(logger, cfg.CORS, handlers),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// NewLLMClient selects the language-model client for the configured provider.
// Config validation has already rejected unknown providers.
func NewLLMClient(cfg config.LLMConfig, logger *slog.Logger) llm.Client {
	if strings.EqualFold(cfg.Provider, "mock") {
		return llm.NewMockClient()
	}
	return llm.NewAnthropicClient(cfg, logger)
}
