package service

import (
	"context"
	"encoding/base64"
	"strings"

	"portfolio/internal/models"
	"portfolio/internal/repository"
)

// MaxPhotoBytes caps the length of a stored photo data URL.
const MaxPhotoBytes = 5 * 1024 * 1024

type ProfileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

func (s *ProfileService) Username(ctx context.Context) (string, error) {
	return s.profileRepo.Username(ctx)
}

func (s *ProfileService) Photo(ctx context.Context) (string, error) {
	return s.profileRepo.Photo(ctx)
}

// SetPhoto stores a base64 image data URL. An empty value clears the photo.
func (s *ProfileService) SetPhoto(ctx context.Context, photo string) error {
	photo = strings.TrimSpace(photo)
	if photo != "" {
		if err := validatePhotoDataURL(photo); err != nil {
			return err
		}
	}
	return s.profileRepo.SetPhoto(ctx, photo)
}

func validatePhotoDataURL(photo string) error {
	if len(photo) > MaxPhotoBytes {
		return models.NewValidationError("Photo too large (max 5MB)")
	}
	header, payload, ok := strings.Cut(photo, ",")
	if !ok || !strings.HasPrefix(header, "data:image/") || !strings.HasSuffix(header, ";base64") {
		return models.NewValidationError("Photo must be a base64 image data URL")
	}
	if _, err := base64.StdEncoding.DecodeString(payload); err != nil {
		return models.NewValidationError("Photo payload is not valid base64")
	}
	return nil
}
