package editor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/vocabmaster/internal/grid"
)

// SyncResult reports what a reconciliation pass did.
type SyncResult struct {
	// Changed is how many rows had at least one staged edit.
	Changed int `json:"changed"`
	// RowsUpdated is how many storage rows the updates actually hit.
	RowsUpdated int64 `json:"rows_updated"`
	// Failed lists the identities of rows whose update errored.
	Failed []string `json:"failed,omitempty"`
}

// Sync diffs the edited rows against the baseline snapshot and applies the
// staged per-row updates. A failing row is recorded and skipped; the rest of
// the batch still lands.
func (s *Service) Sync(ctx context.Context, baseline, current []grid.Row) (SyncResult, error) {
	updates := grid.Detect(baseline, current, s.schema)

	result := SyncResult{Changed: len(updates)}
	for _, update := range updates {
		n, err := s.words.UpdateFields(ctx, update)
		if err != nil {
			key := fmt.Sprintf("%s=%v", update.KeyColumn, update.Key)
			s.log.WarnContext(ctx, "row update failed",
				slog.String("row", key), slog.Any("error", err))
			result.Failed = append(result.Failed, key)
			continue
		}
		result.RowsUpdated += n
	}

	s.log.InfoContext(ctx, "grid sync applied",
		slog.Int("changed", result.Changed),
		slog.Int64("rows_updated", result.RowsUpdated),
		slog.Int("failed", len(result.Failed)),
	)
	return result, nil
}
