package domain

import (
	"time"

	"github.com/google/uuid"
)

// StudyLogEntry is one recorded quiz attempt from the study app.
type StudyLogEntry struct {
	ID        int64
	LoggedAt  time.Time
	WordID    int64
	Result    StudyResult
	SessionID uuid.UUID
}

// StudyStats holds per-word attempt counts.
type StudyStats struct {
	Correct   int
	Incorrect int
}
