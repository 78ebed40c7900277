// Command assess runs the difficulty-assessment pipeline against every New
// word, auto-ignoring pedestrian ones.
//
// Usage:
//
//	assess
//
// Configuration comes from CONFIG_PATH (YAML) and environment variables;
// DATABASE_DSN is required. Set LLM_PROVIDER=mock to run offline.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/cheggaaa/pb/v3"

	"github.com/heartmarshall/vocabmaster/internal/adapter/postgres"
	"github.com/heartmarshall/vocabmaster/internal/adapter/postgres/word"
	"github.com/heartmarshall/vocabmaster/internal/app"
	"github.com/heartmarshall/vocabmaster/internal/config"
	"github.com/heartmarshall/vocabmaster/internal/service/assess"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	svc := assess.NewService(
		logger,
		word.New(pool),
		app.NewLLMClient(cfg.LLM, logger),
		cfg.Pipeline.AssessBatchSize,
		cfg.Pipeline.PedestrianThreshold,
	)

	var bar *pb.ProgressBar
	summary, err := svc.Run(ctx, func(done, total int) {
		if bar == nil {
			bar = pb.Full.Start(total)
		}
		bar.SetCurrent(int64(done))
	})
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		log.Fatalf("assess: %v", err)
	}

	if summary.Total == 0 {
		fmt.Println("No 'New' words to check.")
		os.Exit(0)
	}
	fmt.Printf("Analyzed %d words. Auto-ignored %d pedestrian words (%d skipped).\n",
		summary.Scored, summary.Ignored, summary.Skipped)
}
