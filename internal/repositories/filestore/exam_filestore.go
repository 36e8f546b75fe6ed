package filestore

import (
	"context"

	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/models"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/repositories"
)

type examFileStore struct {
	store *Store
}

func NewExamFileStore(store *Store) repositories.ExamRepository {
	return &examFileStore{store: store}
}

func (r *examFileStore) Save(_ context.Context, exam *models.Exam) error {
	return r.store.writeRecord(dirExams, exam.ExamID, exam)
}

func (r *examFileStore) GetByID(_ context.Context, id string) (*models.Exam, error) {
	return readRecord[models.Exam](r.store, dirExams, id)
}

func (r *examFileStore) List(_ context.Context) ([]*models.Exam, error) {
	return scanRecords[models.Exam](r.store, dirExams)
}

func (r *examFileStore) Delete(_ context.Context, id string) error {
	return r.store.deleteRecord(dirExams, id)
}
