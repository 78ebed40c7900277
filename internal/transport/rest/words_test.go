package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/heartmarshall/vocabmaster/internal/domain"
	"github.com/heartmarshall/vocabmaster/internal/grid"
	"github.com/heartmarshall/vocabmaster/internal/service/editor"
)

type editorServiceMock struct {
	SnapshotFunc func(ctx context.Context) ([]grid.Row, error)
	SyncFunc     func(ctx context.Context, baseline, current []grid.Row) (editor.SyncResult, error)
	StatsFunc    func(ctx context.Context) (map[domain.WordStatus]int, error)
}

func (m *editorServiceMock) Snapshot(ctx context.Context) ([]grid.Row, error) {
	return m.SnapshotFunc(ctx)
}

func (m *editorServiceMock) Sync(ctx context.Context, baseline, current []grid.Row) (editor.SyncResult, error) {
	return m.SyncFunc(ctx, baseline, current)
}

func (m *editorServiceMock) Stats(ctx context.Context) (map[domain.WordStatus]int, error) {
	return m.StatsFunc(ctx)
}

func TestWordsSnapshot_ReturnsRows(t *testing.T) {
	t.Parallel()

	h := NewWordsHandler(&editorServiceMock{
		SnapshotFunc: func(ctx context.Context) ([]grid.Row, error) {
			return []grid.Row{{"id": int64(1), "word_stem": "ephemeral"}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/words", nil)
	rec := httptest.NewRecorder()

	h.Snapshot(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp SnapshotResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Rows) != 1 || resp.Rows[0]["word_stem"] != "ephemeral" {
		t.Errorf("rows: got %v", resp.Rows)
	}
}

func TestWordsSnapshot_EmptyBankIsEmptyArray(t *testing.T) {
	t.Parallel()

	h := NewWordsHandler(&editorServiceMock{
		SnapshotFunc: func(ctx context.Context) ([]grid.Row, error) {
			return nil, nil
		},
	})

	rec := httptest.NewRecorder()
	h.Snapshot(rec, httptest.NewRequest(http.MethodGet, "/api/words", nil))

	if body := strings.TrimSpace(rec.Body.String()); body != `{"rows":[]}` {
		t.Errorf("body: got %s", body)
	}
}

func TestWordsSync_AppliesChanges(t *testing.T) {
	t.Parallel()

	h := NewWordsHandler(&editorServiceMock{
		SyncFunc: func(ctx context.Context, baseline, current []grid.Row) (editor.SyncResult, error) {
			if len(baseline) != 1 || len(current) != 1 {
				t.Errorf("rows: baseline=%d current=%d", len(baseline), len(current))
			}
			return editor.SyncResult{Changed: 1, RowsUpdated: 1}, nil
		},
	})

	body := `{"baseline":[{"id":1,"status":"New"}],"current":[{"id":1,"status":"Ignored"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/words/sync", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Sync(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body)
	}

	var result editor.SyncResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Changed != 1 || result.RowsUpdated != 1 {
		t.Errorf("result: got %+v", result)
	}
}

func TestWordsSync_InvalidJSONIs400(t *testing.T) {
	t.Parallel()

	h := NewWordsHandler(&editorServiceMock{})

	req := httptest.NewRequest(http.MethodPost, "/api/words/sync", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.Sync(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestWordsStats_ReturnsCounts(t *testing.T) {
	t.Parallel()

	h := NewWordsHandler(&editorServiceMock{
		StatsFunc: func(ctx context.Context) (map[domain.WordStatus]int, error) {
			return map[domain.WordStatus]int{
				domain.WordStatusNew:    2,
				domain.WordStatusOnDeck: 0,
			}, nil
		},
	})

	rec := httptest.NewRecorder()
	h.Stats(rec, httptest.NewRequest(http.MethodGet, "/api/words/stats", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp WordStatsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Counts["New"] != 2 {
		t.Errorf("counts: got %v", resp.Counts)
	}
	if _, ok := resp.Counts["On Deck"]; !ok {
		t.Errorf("zero statuses must still appear: %v", resp.Counts)
	}
}

func TestWordsSnapshot_ServiceErrorIs500(t *testing.T) {
	t.Parallel()

	h := NewWordsHandler(&editorServiceMock{
		SnapshotFunc: func(ctx context.Context) ([]grid.Row, error) {
			return nil, errors.New("db down")
		},
	})

	rec := httptest.NewRecorder()
	h.Snapshot(rec, httptest.NewRequest(http.MethodGet, "/api/words", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "internal server error" {
		t.Errorf("error message must be generic, got %q", resp.Error)
	}
}
