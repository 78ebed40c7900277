// Command import loads a Kindle vocab.db into the word bank.
//
// Usage:
//
//	import --file=/path/to/vocab.db
//
// Requires DATABASE_DSN environment variable to be set.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/vocabmaster/internal/adapter/postgres"
	"github.com/heartmarshall/vocabmaster/internal/adapter/postgres/word"
	"github.com/heartmarshall/vocabmaster/internal/config"
	"github.com/heartmarshall/vocabmaster/internal/service/importer"
)

func main() {
	file := flag.String("file", "", "path to Kindle vocab.db")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Usage: import --file=/path/to/vocab.db")
		os.Exit(1)
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	pool, err := postgres.NewPool(ctx, config.DatabaseConfig{DSN: dsn, MaxConns: 2, MinConns: 1})
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	svc := importer.NewService(logger, word.New(pool))
	summary, err := svc.ImportFile(ctx, *file)
	if err != nil {
		log.Fatalf("import: %v", err)
	}

	fmt.Printf("Found %d distinct words, added %d new.\n", summary.Found, summary.Added)
}
