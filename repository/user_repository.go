package repository

import (
	"context"

	"dentalClinicManagement/internal/storage"
	"dentalClinicManagement/models"
)

type UserRepository struct {
	users *collection[models.User]
}

func NewUserRepository(s storage.Storage, opts ...Option) *UserRepository {
	o := buildOptions(opts)
	return &UserRepository{users: newCollection[models.User](KeyUsers, s, o.log)}
}

// List returns all users in stored order.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	return r.users.list(ctx)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.find(ctx, func(u models.User) bool { return u.ID == id })
}

// GetByEmail matches the email exactly, without case folding.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.find(ctx, func(u models.User) bool { return u.Email == email })
}

// FindByCredentials returns the first user whose email and password both match exactly.
func (r *UserRepository) FindByCredentials(ctx context.Context, email, password string) (*models.User, error) {
	return r.find(ctx, func(u models.User) bool { return u.Email == email && u.Password == password })
}

func (r *UserRepository) find(ctx context.Context, match func(models.User) bool) (*models.User, error) {
	users, err := r.users.list(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if match(users[i]) {
			u := users[i]
			return &u, nil
		}
	}
	return nil, nil
}
