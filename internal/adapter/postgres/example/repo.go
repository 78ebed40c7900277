// Package example implements the Example repository using PostgreSQL.
// Examples are owned by their word: enrichment replaces the full set in one
// logical operation, never merging with prior rows.
package example

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/vocabmaster/internal/adapter/postgres"
	"github.com/heartmarshall/vocabmaster/internal/domain"
)

// Repo provides example persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new example repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const listByWordIDSQL = `
SELECT id, word_id, sentence
FROM examples
WHERE word_id = $1
ORDER BY id`

const deleteByWordIDSQL = `
DELETE FROM examples WHERE word_id = $1`

const insertSQL = `
INSERT INTO examples (word_id, sentence) VALUES ($1, $2)`

// ListByWordID returns all examples for a word.
func (r *Repo) ListByWordID(ctx context.Context, wordID int64) ([]domain.Example, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByWordIDSQL, wordID)
	if err != nil {
		return nil, postgres.MapError(err, "example", wordID)
	}
	defer rows.Close()

	var examples []domain.Example
	for rows.Next() {
		var e domain.Example
		if err := rows.Scan(&e.ID, &e.WordID, &e.Sentence); err != nil {
			return nil, fmt.Errorf("scan example: %w", err)
		}
		examples = append(examples, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate examples: %w", err)
	}
	return examples, nil
}

// ReplaceForWord deletes every example of the word and inserts the given
// sentences. Run inside the caller's transaction so the replace is atomic
// with the word update it accompanies.
func (r *Repo) ReplaceForWord(ctx context.Context, wordID int64, sentences []string) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteByWordIDSQL, wordID); err != nil {
		return postgres.MapError(err, "example", wordID)
	}
	for _, sentence := range sentences {
		if _, err := querier.Exec(ctx, insertSQL, wordID, sentence); err != nil {
			return postgres.MapError(err, "example", wordID)
		}
	}
	return nil
}
