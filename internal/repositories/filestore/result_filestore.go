package filestore

import (
	"context"

	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/models"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/repositories"
)

type resultFileStore struct {
	store *Store
}

func NewResultFileStore(store *Store) repositories.ResultRepository {
	return &resultFileStore{store: store}
}

func (r *resultFileStore) Save(_ context.Context, result *models.Result) error {
	return r.store.writeRecord(dirResults, result.ResultID, result)
}

func (r *resultFileStore) GetByID(_ context.Context, id string) (*models.Result, error) {
	return readRecord[models.Result](r.store, dirResults, id)
}

func (r *resultFileStore) List(_ context.Context, filters repositories.ResultFilters) ([]*models.Result, error) {
	results, err := scanRecords[models.Result](r.store, dirResults)
	if err != nil {
		return nil, err
	}
	filtered := results[:0]
	for _, res := range results {
		if filters.ExamID != nil && res.ExamID != *filters.ExamID {
			continue
		}
		if filters.StudentID != nil && res.StudentID != *filters.StudentID {
			continue
		}
		filtered = append(filtered, res)
	}
	return filtered, nil
}

func (r *resultFileStore) Delete(_ context.Context, id string) error {
	return r.store.deleteRecord(dirResults, id)
}
