// Package study implements the study-app support operations: logging quiz
// attempts, per-word stats, and the seeded wrong-answer insults.
package study

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/vocabmaster/internal/domain"
)

// MaxSeverity caps insult selection. The seeded table tops out at 3; a lower
// cap keeps the milder ones only.
const MaxSeverity = 3

type logRepo interface {
	Add(ctx context.Context, wordID int64, result domain.StudyResult, sessionID uuid.UUID) error
	StatsForWord(ctx context.Context, wordID int64) (domain.StudyStats, error)
}

type insultRepo interface {
	Random(ctx context.Context, maxSeverity int) (domain.Insult, error)
}

// Service provides study-log and insult operations.
type Service struct {
	logs    logRepo
	insults insultRepo
	log     *slog.Logger
}

// NewService creates a new Study service.
func NewService(log *slog.Logger, logs logRepo, insults insultRepo) *Service {
	return &Service{
		logs:    logs,
		insults: insults,
		log:     log.With("service", "study"),
	}
}

// LogAttempt records one quiz answer. A zero session ID gets a fresh one,
// which is returned so the caller can group the rest of the session.
func (s *Service) LogAttempt(ctx context.Context, wordID int64, result domain.StudyResult, sessionID uuid.UUID) (uuid.UUID, error) {
	if !result.IsValid() {
		return uuid.Nil, fmt.Errorf("%w: unknown study result %q", domain.ErrValidation, result)
	}
	if sessionID == uuid.Nil {
		sessionID = uuid.New()
	}

	if err := s.logs.Add(ctx, wordID, result, sessionID); err != nil {
		return uuid.Nil, fmt.Errorf("log attempt: %w", err)
	}

	s.log.InfoContext(ctx, "attempt logged",
		slog.Int64("word_id", wordID),
		slog.String("result", result.String()),
		slog.String("session_id", sessionID.String()),
	)
	return sessionID, nil
}

// Stats returns the word's attempt counts.
func (s *Service) Stats(ctx context.Context, wordID int64) (domain.StudyStats, error) {
	stats, err := s.logs.StatsForWord(ctx, wordID)
	if err != nil {
		return domain.StudyStats{}, fmt.Errorf("stats for word %d: %w", wordID, err)
	}
	return stats, nil
}

// RandomInsult picks a wrong-answer taunt. maxSeverity outside the seeded
// range is clamped.
func (s *Service) RandomInsult(ctx context.Context, maxSeverity int) (domain.Insult, error) {
	if maxSeverity < 1 || maxSeverity > MaxSeverity {
		maxSeverity = MaxSeverity
	}
	ins, err := s.insults.Random(ctx, maxSeverity)
	if err != nil {
		return domain.Insult{}, fmt.Errorf("random insult: %w", err)
	}
	return ins, nil
}
