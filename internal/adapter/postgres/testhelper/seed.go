package testhelper

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/vocabmaster/internal/domain"
)

// SeedWord inserts a word with the given stem and status and returns its id.
func SeedWord(t *testing.T, pool *pgxpool.Pool, stem string, status domain.WordStatus) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO words (word_stem, status) VALUES ($1, $2) RETURNING id`,
		stem, status.String(),
	).Scan(&id)
	if err != nil {
		t.Fatalf("SeedWord %q: %v", stem, err)
	}
	return id
}

// SeedExample inserts one example sentence for the word.
func SeedExample(t *testing.T, pool *pgxpool.Pool, wordID int64, sentence string) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO examples (word_id, sentence) VALUES ($1, $2)`,
		wordID, sentence,
	)
	if err != nil {
		t.Fatalf("SeedExample for word %d: %v", wordID, err)
	}
}

// SeedDistractor inserts one distractor for the word.
func SeedDistractor(t *testing.T, pool *pgxpool.Pool, wordID int64, text string) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO distractors (word_id, text) VALUES ($1, $2)`,
		wordID, text,
	)
	if err != nil {
		t.Fatalf("SeedDistractor for word %d: %v", wordID, err)
	}
}

// TruncateWords clears words and everything cascading from them, so tests can
// share the container without leaking fixtures.
func TruncateWords(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	if _, err := pool.Exec(context.Background(), `TRUNCATE words CASCADE`); err != nil {
		t.Fatalf("TruncateWords: %v", err)
	}
}
