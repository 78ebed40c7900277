// Package insult implements read access to the seeded insults table.
package insult

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/vocabmaster/internal/adapter/postgres"
	"github.com/heartmarshall/vocabmaster/internal/domain"
)

// Repo provides read-only access to insults. The table is seeded by
// migration and never written at runtime.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new insult repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const listSQL = `
SELECT id, text, severity FROM insults ORDER BY id`

const randomSQL = `
SELECT id, text, severity
FROM insults
WHERE severity <= $1
ORDER BY random()
LIMIT 1`

// List returns every insult.
func (r *Repo) List(ctx context.Context) ([]domain.Insult, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listSQL)
	if err != nil {
		return nil, fmt.Errorf("list insults: %w", err)
	}
	defer rows.Close()

	var insults []domain.Insult
	for rows.Next() {
		var ins domain.Insult
		if err := rows.Scan(&ins.ID, &ins.Text, &ins.Severity); err != nil {
			return nil, fmt.Errorf("scan insult: %w", err)
		}
		insults = append(insults, ins)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate insults: %w", err)
	}
	return insults, nil
}

// Random returns one insult with severity at most maxSeverity.
// Returns domain.ErrNotFound if nothing qualifies.
func (r *Repo) Random(ctx context.Context, maxSeverity int) (domain.Insult, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var ins domain.Insult
	err := querier.QueryRow(ctx, randomSQL, maxSeverity).Scan(&ins.ID, &ins.Text, &ins.Severity)
	if err != nil {
		return domain.Insult{}, postgres.MapError(err, "insult", maxSeverity)
	}
	return ins, nil
}
