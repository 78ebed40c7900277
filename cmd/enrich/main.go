// Command enrich runs the enrichment pipeline: definitions, example
// sentences and quiz distractors for every word in the chosen status.
// Enriching New words promotes them to On Deck.
//
// Usage:
//
//	enrich [--status=New]
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
	"github.com/heartmarshall/vocabmaster/internal/adapter/postgres/distractor"
	"github.com/heartmarshall/vocabmaster/internal/adapter/postgres/example"
	"github.com/heartmarshall/vocabmaster/internal/adapter/postgres/word"
	"github.com/heartmarshall/vocabmaster/internal/app"
	"github.com/heartmarshall/vocabmaster/internal/config"
	"github.com/heartmarshall/vocabmaster/internal/domain"
	"github.com/heartmarshall/vocabmaster/internal/service/enrich"
)

func main() {
	statusFlag := flag.String("status", "New", "status of words to enrich")
	flag.Parse()

	status := domain.WordStatus(*statusFlag)
	if !status.IsValid() {
		fmt.Fprintf(os.Stderr, "unknown status %q\n", *statusFlag)
		os.Exit(1)
	}

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

	svc := enrich.NewService(
		logger,
		word.New(pool),
		example.New(pool),
		distractor.New(pool),
		postgres.NewTxManager(pool),
		app.NewLLMClient(cfg.LLM, logger),
		cfg.Pipeline.EnrichBatchSize,
	)

	var bar *pb.ProgressBar
	summary, err := svc.Run(ctx, status, func(done, total int) {
		if bar == nil {
			bar = pb.Full.Start(total)
		}
		bar.SetCurrent(int64(done))
	})
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		log.Fatalf("enrich: %v", err)
	}

	if summary.Total == 0 {
		fmt.Printf("No %q words found to enrich.\n", status)
		os.Exit(0)
	}

	if status == domain.WordStatusNew {
		fmt.Printf("Enriched %d words! Moved to 'On Deck'.\n", summary.Enriched)
	} else {
		fmt.Printf("Enriched %d words in status %q.\n", summary.Enriched, status)
	}
	fmt.Printf("Summary: %d/%d updated, examples present for %d, distractors present for %d, avg examples %.2f, avg distractors %.2f\n",
		summary.Enriched, summary.Total,
		summary.WithExamples, summary.WithDistractors,
		summary.AvgExamples, summary.AvgDistractors)
	for _, d := range summary.Details {
		fmt.Printf("  %-24s examples=%d distractors=%d\n", d.Word, d.Examples, d.Distractors)
	}
}
