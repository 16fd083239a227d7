package service

import (
	"context"
	"errors"

	"app/internal/model"
	"app/internal/repository"

	"github.com/rs/zerolog"
)

// ErrForbidden is returned when a caller acts on a record they do not own.
var ErrForbidden = errors.New("forbidden")

const adminListLimit = 50

// ImageService covers history, soft deletion, and the admin listing.
type ImageService interface {
	GetUserHistory(ctx context.Context, userID string) ([]model.GeneratedImage, error)
	// Hide flips the record's visibility off. Only the owner or an
	// admin may hide a record; nothing is ever physically deleted.
	Hide(ctx context.Context, caller *model.UserProfile, imageID string) error
	ListAllAdmin(ctx context.Context) ([]model.GeneratedImage, error)
}

type imageService struct {
	images repository.ImageRepository
	logger zerolog.Logger
}

// NewImageService creates a new ImageService with a scoped logger.
func NewImageService(images repository.ImageRepository, logger zerolog.Logger) ImageService {
	return &imageService{
		images: images,
		logger: logger.With().Str("service", "ImageService").Logger(),
	}
}

func (s *imageService) GetUserHistory(ctx context.Context, userID string) ([]model.GeneratedImage, error) {
	return s.images.GetUserHistory(ctx, userID)
}

func (s *imageService) Hide(ctx context.Context, caller *model.UserProfile, imageID string) error {
	img, err := s.images.GetByID(ctx, imageID)
	if err != nil {
		return err
	}
	if img == nil {
		return ErrImageNotFound
	}
	if img.UserID != caller.UserID && !caller.IsAdmin() {
		return ErrForbidden
	}
	return s.images.Hide(ctx, imageID)
}

func (s *imageService) ListAllAdmin(ctx context.Context) ([]model.GeneratedImage, error) {
	return s.images.ListRecent(ctx, adminListLimit)
}
