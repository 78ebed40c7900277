// Package editor implements the grid-editor workflow: loading the word bank
// as a snapshot of grid rows and reconciling an edited copy back into storage.
package editor

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/vocabmaster/internal/domain"
	"github.com/heartmarshall/vocabmaster/internal/grid"
)

type wordRepo interface {
	List(ctx context.Context) ([]domain.Word, error)
	UpdateFields(ctx context.Context, update grid.RowUpdate) (int64, error)
	CountByStatus(ctx context.Context) (map[domain.WordStatus]int, error)
}

// Service provides grid snapshot and reconciliation operations.
type Service struct {
	words  wordRepo
	schema grid.Schema
	log    *slog.Logger
}

// NewService creates a new Editor service.
func NewService(log *slog.Logger, words wordRepo) *Service {
	return &Service{
		words:  words,
		schema: grid.WordSchema(),
		log:    log.With("service", "editor"),
	}
}

// Schema returns the editable column set the grid works against.
func (s *Service) Schema() grid.Schema { return s.schema }

// Stats returns word counts per status, with every known status present so
// the console can render a stable breakdown.
func (s *Service) Stats(ctx context.Context) (map[domain.WordStatus]int, error) {
	counts, err := s.words.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	for _, status := range domain.AllWordStatuses() {
		if _, ok := counts[status]; !ok {
			counts[status] = 0
		}
	}
	return counts, nil
}
