// Package word implements the Word repository using PostgreSQL.
// Static queries use raw SQL with manual scans; the grid reconciler's
// per-row updates are built dynamically with squirrel because their column
// set is only known at runtime.
package word

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/vocabmaster/internal/adapter/postgres"
	"github.com/heartmarshall/vocabmaster/internal/domain"
	"github.com/heartmarshall/vocabmaster/internal/grid"
)

// Repo provides word persistence backed by PostgreSQL.
type Repo struct {
	pool   *pgxpool.Pool
	schema grid.Schema
}

// New creates a new word repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool, schema: grid.WordSchema()}
}

const wordColumns = `id, word_stem, original_context, book_title, definition, phonetic,
    status, bucket_date, next_review_date, difficulty_score, priority_tier,
    status_correct_streak, manual_flag`

const listSQL = `
SELECT ` + wordColumns + `
FROM words
ORDER BY id`

const listByStatusSQL = `
SELECT ` + wordColumns + `
FROM words
WHERE status = $1
ORDER BY id`

const listUnrankedSQL = `
SELECT ` + wordColumns + `
FROM words
WHERE priority_tier IS NULL AND status <> $1
ORDER BY id`

const insertIgnoreSQL = `
INSERT INTO words (word_stem, original_context, book_title)
VALUES ($1, $2, $3)
ON CONFLICT (word_stem) DO NOTHING`

const idByStemSQL = `
SELECT id FROM words WHERE word_stem = $1`

const setDifficultySQL = `
UPDATE words
SET difficulty_score = $1, status = $2
WHERE word_stem = $3 AND status = $4`

const promoteWithDefinitionSQL = `
UPDATE words
SET definition = $1, status = $2, bucket_date = $3
WHERE word_stem = $4 AND status = $5`

const setDefinitionSQL = `
UPDATE words
SET definition = $1
WHERE word_stem = $2 AND status = $3`

const setTierSQL = `
UPDATE words SET priority_tier = $1 WHERE word_stem = $2`

const resetTiersSQL = `
UPDATE words SET priority_tier = NULL`

const countByStatusSQL = `
SELECT status, COUNT(*) FROM words GROUP BY status`

// List returns every word ordered by id.
func (r *Repo) List(ctx context.Context) ([]domain.Word, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listSQL)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	defer rows.Close()

	return scanWords(rows)
}

// ListByStatus returns all words currently in the given status.
func (r *Repo) ListByStatus(ctx context.Context, status domain.WordStatus) ([]domain.Word, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByStatusSQL, status.String())
	if err != nil {
		return nil, fmt.Errorf("list words by status: %w", err)
	}
	defer rows.Close()

	return scanWords(rows)
}

// ListUnranked returns words with no priority tier, excluding Ignored words.
func (r *Repo) ListUnranked(ctx context.Context) ([]domain.Word, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listUnrankedSQL, domain.WordStatusIgnored.String())
	if err != nil {
		return nil, fmt.Errorf("list unranked words: %w", err)
	}
	defer rows.Close()

	return scanWords(rows)
}

// InsertIgnore inserts a stem with its first-seen context and book title.
// Returns false without error when the stem already exists.
func (r *Repo) InsertIgnore(ctx context.Context, stem, originalContext, bookTitle string) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, insertIgnoreSQL, stem, nullIfEmpty(originalContext), nullIfEmpty(bookTitle))
	if err != nil {
		return false, mapWordError(err, stem)
	}
	return tag.RowsAffected() > 0, nil
}

// IDByStem resolves the surrogate id for a stem.
func (r *Repo) IDByStem(ctx context.Context, stem string) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var id int64
	if err := querier.QueryRow(ctx, idByStemSQL, stem).Scan(&id); err != nil {
		return 0, mapWordError(err, stem)
	}
	return id, nil
}

// UpdateFields applies one staged grid edit. The update is keyed by whichever
// identity the detector resolved and constrained to the staged columns.
// Column names are validated against the grid schema before they reach SQL.
func (r *Repo) UpdateFields(ctx context.Context, upd grid.RowUpdate) (int64, error) {
	if len(upd.Fields) == 0 {
		return 0, nil
	}
	if upd.KeyColumn != r.schema.Key && upd.KeyColumn != r.schema.NaturalKey {
		return 0, fmt.Errorf("update words: key column %q: %w", upd.KeyColumn, domain.ErrValidation)
	}
	for col := range upd.Fields {
		if _, ok := r.schema.Kind(col); !ok || r.schema.ReadOnly(col) {
			return 0, fmt.Errorf("update words: column %q: %w", col, domain.ErrValidation)
		}
	}

	sql, args, err := sq.Update(r.schema.Table).
		SetMap(upd.Fields).
		Where(sq.Eq{upd.KeyColumn: upd.Key}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build word update: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return 0, mapWordError(err, upd.Key)
	}
	return tag.RowsAffected(), nil
}

// SetDifficulty records a difficulty score and the resulting status for a
// stem, conditioned on the word still being in expectStatus at write time.
// A concurrent edit makes this a 0-row no-op, not an error.
func (r *Repo) SetDifficulty(ctx context.Context, stem string, score int, status, expectStatus domain.WordStatus) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, setDifficultySQL, score, status.String(), stem, expectStatus.String())
	if err != nil {
		return 0, mapWordError(err, stem)
	}
	return tag.RowsAffected(), nil
}

// PromoteWithDefinition stores a definition and moves the word from New to
// On Deck, stamping bucket_date with the given day. Conditioned on the word
// still being New.
func (r *Repo) PromoteWithDefinition(ctx context.Context, stem, definition string, bucketDate time.Time) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, promoteWithDefinitionSQL,
		definition, domain.WordStatusOnDeck.String(), bucketDate, stem, domain.WordStatusNew.String())
	if err != nil {
		return 0, mapWordError(err, stem)
	}
	return tag.RowsAffected(), nil
}

// SetDefinition stores a definition, conditioned on the word still being in
// the given status.
func (r *Repo) SetDefinition(ctx context.Context, stem, definition string, status domain.WordStatus) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, setDefinitionSQL, definition, stem, status.String())
	if err != nil {
		return 0, mapWordError(err, stem)
	}
	return tag.RowsAffected(), nil
}

// SetTier records a priority tier unconditionally.
func (r *Repo) SetTier(ctx context.Context, stem string, tier int) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, setTierSQL, tier, stem)
	if err != nil {
		return 0, mapWordError(err, stem)
	}
	return tag.RowsAffected(), nil
}

// ResetTiers clears every word's priority tier.
func (r *Repo) ResetTiers(ctx context.Context) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, resetTiersSQL)
	if err != nil {
		return 0, fmt.Errorf("reset tiers: %w", err)
	}
	return tag.RowsAffected(), nil
}

// CountByStatus returns word counts grouped by status.
func (r *Repo) CountByStatus(ctx context.Context) (map[domain.WordStatus]int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, countByStatusSQL)
	if err != nil {
		return nil, fmt.Errorf("count words by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.WordStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[domain.WordStatus(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count words by status: %w", err)
	}
	return counts, nil
}

func scanWords(rows pgx.Rows) ([]domain.Word, error) {
	var words []domain.Word
	for rows.Next() {
		var (
			w          domain.Word
			status     string
			manualFlag int
		)
		err := rows.Scan(
			&w.ID, &w.WordStem, &w.OriginalContext, &w.BookTitle, &w.Definition,
			&w.Phonetic, &status, &w.BucketDate, &w.NextReviewDate,
			&w.DifficultyScore, &w.PriorityTier, &w.StatusCorrectStreak, &manualFlag,
		)
		if err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		w.Status = domain.WordStatus(status)
		w.ManualFlag = manualFlag != 0
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate words: %w", err)
	}
	return words, nil
}

func mapWordError(err error, key any) error {
	return postgres.MapError(err, "word", key)
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
