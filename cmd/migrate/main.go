// Command migrate applies pending schema migrations and exits.
//
// Usage:
//
//	migrate
//
// Requires DATABASE_DSN environment variable to be set.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/heartmarshall/vocabmaster/internal/adapter/postgres"
)

func main() {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	applied, err := postgres.Migrate(ctx, dsn)
	if err != nil {
		log.Fatalf("migrate: %v", err)
	}

	if applied == 0 {
		fmt.Println("Database is up to date.")
		return
	}
	fmt.Printf("Applied %d migration(s).\n", applied)
}
