package filestore

import (
	"context"

	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/models"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/repositories"
)

type submissionFileStore struct {
	store *Store
}

func NewSubmissionFileStore(store *Store) repositories.SubmissionRepository {
	return &submissionFileStore{store: store}
}

func (r *submissionFileStore) Save(_ context.Context, submission *models.Submission) error {
	return r.store.writeRecord(dirSubmissions, submission.SubmissionID, submission)
}

func (r *submissionFileStore) GetByID(_ context.Context, id string) (*models.Submission, error) {
	return readRecord[models.Submission](r.store, dirSubmissions, id)
}

func (r *submissionFileStore) List(_ context.Context, filters repositories.SubmissionFilters) ([]*models.Submission, error) {
	submissions, err := scanRecords[models.Submission](r.store, dirSubmissions)
	if err != nil {
		return nil, err
	}
	filtered := submissions[:0]
	for _, sub := range submissions {
		if filters.ExamID != nil && sub.ExamID != *filters.ExamID {
			continue
		}
		if filters.StudentID != nil && sub.StudentID != *filters.StudentID {
			continue
		}
		filtered = append(filtered, sub)
	}
	return filtered, nil
}

func (r *submissionFileStore) Delete(_ context.Context, id string) error {
	return r.store.deleteRecord(dirSubmissions, id)
}
