// Package distractor implements the Distractor repository using PostgreSQL.
// Distractors are replaced wholesale alongside examples on re-enrichment.
package distractor

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/vocabmaster/internal/adapter/postgres"
	"github.com/heartmarshall/vocabmaster/internal/domain"
)

// Repo provides distractor persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new distractor repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const listByWordIDSQL = `
SELECT id, word_id, text, is_plausible
FROM distractors
WHERE word_id = $1
ORDER BY id`

const deleteByWordIDSQL = `
DELETE FROM distractors WHERE word_id = $1`

const insertSQL = `
INSERT INTO distractors (word_id, text) VALUES ($1, $2)`

// ListByWordID returns all distractors for a word.
func (r *Repo) ListByWordID(ctx context.Context, wordID int64) ([]domain.Distractor, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByWordIDSQL, wordID)
	if err != nil {
		return nil, postgres.MapError(err, "distractor", wordID)
	}
	defer rows.Close()

	var distractors []domain.Distractor
	for rows.Next() {
		var d domain.Distractor
		if err := rows.Scan(&d.ID, &d.WordID, &d.Text, &d.IsPlausible); err != nil {
			return nil, fmt.Errorf("scan distractor: %w", err)
		}
		distractors = append(distractors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate distractors: %w", err)
	}
	return distractors, nil
}

// ReplaceForWord deletes every distractor of the word and inserts the given
// texts. is_plausible keeps its column default. Run inside the caller's
// transaction.
func (r *Repo) ReplaceForWord(ctx context.Context, wordID int64, texts []string) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteByWordIDSQL, wordID); err != nil {
		return postgres.MapError(err, "distractor", wordID)
	}
	for _, text := range texts {
		if _, err := querier.Exec(ctx, insertSQL, wordID, text); err != nil {
			return postgres.MapError(err, "distractor", wordID)
		}
	}
	return nil
}
