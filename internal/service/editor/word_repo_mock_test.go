package editor

import (
	"context"
	"sync"

	"github.com/heartmarshall/vocabmaster/internal/domain"
	"github.com/heartmarshall/vocabmaster/internal/grid"
)

var _ wordRepo = &wordRepoMock{}

type wordRepoMock struct {
	ListFunc          func(ctx context.Context) ([]domain.Word, error)
	UpdateFieldsFunc  func(ctx context.Context, update grid.RowUpdate) (int64, error)
	CountByStatusFunc func(ctx context.Context) (map[domain.WordStatus]int, error)

	calls struct {
		List         []struct{}
		UpdateFields []struct {
			Update grid.RowUpdate
		}
	}
	lockList         sync.RWMutex
	lockUpdateFields sync.RWMutex
}

func (mock *wordRepoMock) List(ctx context.Context) ([]domain.Word, error) {
	if mock.ListFunc == nil {
		panic("wordRepoMock.ListFunc: method is nil but wordRepo.List was just called")
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, struct{}{})
	mock.lockList.Unlock()
	return mock.ListFunc(ctx)
}

func (mock *wordRepoMock) ListCalls() []struct{} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *wordRepoMock) UpdateFields(ctx context.Context, update grid.RowUpdate) (int64, error) {
	if mock.UpdateFieldsFunc == nil {
		panic("wordRepoMock.UpdateFieldsFunc: method is nil but wordRepo.UpdateFields was just called")
	}
	callInfo := struct {
		Update grid.RowUpdate
	}{Update: update}
	mock.lockUpdateFields.Lock()
	mock.calls.UpdateFields = append(mock.calls.UpdateFields, callInfo)
	mock.lockUpdateFields.Unlock()
	return mock.UpdateFieldsFunc(ctx, update)
}

func (mock *wordRepoMock) UpdateFieldsCalls() []struct {
	Update grid.RowUpdate
} {
	mock.lockUpdateFields.RLock()
	calls := mock.calls.UpdateFields
	mock.lockUpdateFields.RUnlock()
	return calls
}

func (mock *wordRepoMock) CountByStatus(ctx context.Context) (map[domain.WordStatus]int, error) {
	if mock.CountByStatusFunc == nil {
		panic("wordRepoMock.CountByStatusFunc: method is nil but wordRepo.CountByStatus was just called")
	}
	return mock.CountByStatusFunc(ctx)
}
