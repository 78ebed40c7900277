// Package studylog implements the study-log repository using PostgreSQL.
package studylog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/vocabmaster/internal/adapter/postgres"
	"github.com/heartmarshall/vocabmaster/internal/domain"
)

// Repo provides study-log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new study-log repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const insertSQL = `
INSERT INTO study_log (word_id, result, session_id) VALUES ($1, $2, $3)`

const statsForWordSQL = `
SELECT
    COUNT(*) FILTER (WHERE result = $2),
    COUNT(*) FILTER (WHERE result = $3)
FROM study_log
WHERE word_id = $1`

// Add appends one quiz attempt.
func (r *Repo) Add(ctx context.Context, wordID int64, result domain.StudyResult, sessionID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, insertSQL, wordID, result.String(), sessionID); err != nil {
		return postgres.MapError(err, "study_log", wordID)
	}
	return nil
}

// StatsForWord returns the word's correct/incorrect attempt counts.
func (r *Repo) StatsForWord(ctx context.Context, wordID int64) (domain.StudyStats, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var stats domain.StudyStats
	err := querier.QueryRow(ctx, statsForWordSQL, wordID,
		domain.StudyResultCorrect.String(), domain.StudyResultIncorrect.String()).
		Scan(&stats.Correct, &stats.Incorrect)
	if err != nil {
		return domain.StudyStats{}, fmt.Errorf("study stats for word %d: %w", wordID, err)
	}
	return stats, nil
}
