package editor

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/heartmarshall/vocabmaster/internal/domain"
	"github.com/heartmarshall/vocabmaster/internal/grid"
)

func newTestService(mock *wordRepoMock) *Service {
	return &Service{
		words:  mock,
		schema: grid.WordSchema(),
		log:    slog.Default(),
	}
}

func strPtr(s string) *string { return &s }

func TestSnapshot_MapsWordToRow(t *testing.T) {
	t.Parallel()

	bucket := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	score := 7
	mock := &wordRepoMock{
		ListFunc: func(ctx context.Context) ([]domain.Word, error) {
			return []domain.Word{{
				ID:              1,
				WordStem:        "ephemeral",
				Definition:      strPtr("Lasting briefly."),
				Status:          domain.WordStatusOnDeck,
				BucketDate:      &bucket,
				DifficultyScore: &score,
				ManualFlag:      true,
			}}, nil
		},
	}

	rows, err := newTestService(mock).Snapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows: got %d, want 1", len(rows))
	}

	row := rows[0]
	if row["id"] != int64(1) {
		t.Errorf("id: got %v", row["id"])
	}
	if row["status"] != "On Deck" {
		t.Errorf("status: got %v", row["status"])
	}
	if row["bucket_date"] != "2025-06-01" {
		t.Errorf("bucket_date: got %v", row["bucket_date"])
	}
	if row["difficulty_score"] != int64(7) {
		t.Errorf("difficulty_score: got %v", row["difficulty_score"])
	}
	if row["manual_flag"] != int64(1) {
		t.Errorf("manual_flag: got %v", row["manual_flag"])
	}
	if row["original_context"] != nil {
		t.Errorf("original_context: got %v, want nil", row["original_context"])
	}
}

func TestSync_AppliesDetectedChanges(t *testing.T) {
	t.Parallel()

	mock := &wordRepoMock{
		UpdateFieldsFunc: func(ctx context.Context, update grid.RowUpdate) (int64, error) {
			if update.KeyColumn != "id" || update.Key != int64(1) {
				t.Errorf("key: got %s=%v", update.KeyColumn, update.Key)
			}
			if update.Fields["status"] != "Ignored" {
				t.Errorf("fields: got %v", update.Fields)
			}
			return 1, nil
		},
	}
	svc := newTestService(mock)

	baseline := []grid.Row{{"id": int64(1), "word_stem": "cat", "status": "New"}}
	current := []grid.Row{{"id": float64(1), "word_stem": "cat", "status": "Ignored"}}

	result, err := svc.Sync(context.Background(), baseline, current)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Changed != 1 || result.RowsUpdated != 1 || len(result.Failed) != 0 {
		t.Errorf("result: got %+v", result)
	}
	if len(mock.UpdateFieldsCalls()) != 1 {
		t.Errorf("UpdateFields calls: got %d, want 1", len(mock.UpdateFieldsCalls()))
	}
}

func TestSync_NoChangesIsNoop(t *testing.T) {
	t.Parallel()

	mock := &wordRepoMock{}
	svc := newTestService(mock)

	rows := []grid.Row{{"id": int64(1), "word_stem": "cat", "status": "New"}}
	result, err := svc.Sync(context.Background(), rows, rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Changed != 0 {
		t.Errorf("changed: got %d, want 0", result.Changed)
	}
	if len(mock.UpdateFieldsCalls()) != 0 {
		t.Errorf("UpdateFields should not be called")
	}
}

func TestSync_FailedRowDoesNotStopBatch(t *testing.T) {
	t.Parallel()

	mock := &wordRepoMock{
		UpdateFieldsFunc: func(ctx context.Context, update grid.RowUpdate) (int64, error) {
			if update.Key == int64(1) {
				return 0, errors.New("boom")
			}
			return 1, nil
		},
	}
	svc := newTestService(mock)

	baseline := []grid.Row{
		{"id": int64(1), "word_stem": "cat", "status": "New"},
		{"id": int64(2), "word_stem": "dog", "status": "New"},
	}
	current := []grid.Row{
		{"id": int64(1), "word_stem": "cat", "status": "Ignored"},
		{"id": int64(2), "word_stem": "dog", "status": "Ignored"},
	}

	result, err := svc.Sync(context.Background(), baseline, current)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Changed != 2 || result.RowsUpdated != 1 {
		t.Errorf("result: got %+v", result)
	}
	if len(result.Failed) != 1 || result.Failed[0] != "id=1" {
		t.Errorf("failed: got %v", result.Failed)
	}
}

func TestStats_FillsMissingStatuses(t *testing.T) {
	t.Parallel()

	mock := &wordRepoMock{
		CountByStatusFunc: func(ctx context.Context) (map[domain.WordStatus]int, error) {
			return map[domain.WordStatus]int{
				domain.WordStatusNew:     3,
				domain.WordStatusIgnored: 1,
			}, nil
		},
	}

	counts, err := newTestService(mock).Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(counts) != len(domain.AllWordStatuses()) {
		t.Errorf("statuses: got %d, want %d", len(counts), len(domain.AllWordStatuses()))
	}
	if counts[domain.WordStatusNew] != 3 || counts[domain.WordStatusOnDeck] != 0 {
		t.Errorf("counts: got %v", counts)
	}
}

func TestSnapshot_ListError(t *testing.T) {
	t.Parallel()

	mock := &wordRepoMock{
		ListFunc: func(ctx context.Context) ([]domain.Word, error) {
			return nil, errors.New("db down")
		},
	}

	_, err := newTestService(mock).Snapshot(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
}
