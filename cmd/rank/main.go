// Command rank runs the tier-ranking pipeline, splitting unranked active
// words into frequency quintiles.
//
// Usage:
//
//	rank           assign tiers to unranked words
//	rank --reset   clear every tier instead
//
// Configuration comes from CONFIG_PATH (YAML) and environment variables;
// DATABASE_DSN is required. Set LLM_PROVIDER=mock to run offline.
package main

import (
	"context"
	"flag"
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
	"github.com/heartmarshall/vocabmaster/internal/service/rank"
)

func main() {
	reset := flag.Bool("reset", false, "clear every priority tier instead of ranking")
	flag.Parse()

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

	svc := rank.NewService(logger, word.New(pool), app.NewLLMClient(cfg.LLM, logger), cfg.Pipeline.RankBatchSize)

	if *reset {
		n, err := svc.Reset(ctx)
		if err != nil {
			log.Fatalf("reset tiers: %v", err)
		}
		fmt.Printf("All priority tiers have been reset (%d cleared).\n", n)
		return
	}

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
		log.Fatalf("rank: %v", err)
	}

	if summary.Total == 0 {
		fmt.Println("No unranked active words found.")
		os.Exit(0)
	}
	fmt.Printf("Ranked %d words into 5 Tiers (%d skipped).\n", summary.Ranked, summary.Skipped)
}
