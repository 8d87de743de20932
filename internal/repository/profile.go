package repository

import (
	"context"

	"portfolio/internal/store"
)

// ProfileRepository defines interface for the profile cells
type ProfileRepository interface {
	Username(ctx context.Context) (string, error)
	SetUsername(ctx context.Context, username string) error
	Photo(ctx context.Context) (string, error)
	SetPhoto(ctx context.Context, photo string) error
}

type profileRepository struct {
	username *store.Cell[string]
	photo    *store.Cell[string]
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(s store.Store) ProfileRepository {
	return &profileRepository{
		username: store.NewCell[string](s, KeyUsername, nil),
		photo:    store.NewCell[string](s, KeyProfilePhoto, nil),
	}
}

func (r *profileRepository) Username(ctx context.Context) (string, error) {
	return r.username.Get(ctx)
}

func (r *profileRepository) SetUsername(ctx context.Context, username string) error {
	_, err := r.username.Set(ctx, func(string) string { return username })
	return err
}

func (r *profileRepository) Photo(ctx context.Context) (string, error) {
	return r.photo.Get(ctx)
}

func (r *profileRepository) SetPhoto(ctx context.Context, photo string) error {
	_, err := r.photo.Set(ctx, func(string) string { return photo })
	return err
}
