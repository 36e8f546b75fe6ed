package filestore

import (
	"context"

	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/models"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/repositories"
)

type userFileStore struct {
	store *Store
}

func NewUserFileStore(store *Store) repositories.UserRepository {
	return &userFileStore{store: store}
}

func (r *userFileStore) Save(_ context.Context, user *models.User) error {
	return r.store.writeRecord(dirUsers, user.UserID, user)
}

func (r *userFileStore) GetByID(_ context.Context, id string) (*models.User, error) {
	return readRecord[models.User](r.store, dirUsers, id)
}

func (r *userFileStore) List(_ context.Context, filters repositories.UserFilters) ([]*models.User, error) {
	users, err := scanRecords[models.User](r.store, dirUsers)
	if err != nil {
		return nil, err
	}
	filtered := users[:0]
	for _, user := range users {
		if filters.Role != nil && user.Role != *filters.Role {
			continue
		}
		filtered = append(filtered, user)
	}
	return filtered, nil
}

func (r *userFileStore) Delete(_ context.Context, id string) error {
	return r.store.deleteRecord(dirUsers, id)
}
