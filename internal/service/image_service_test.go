package service

import (
	"context"
	"testing"

	"app/internal/model"
	"app/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHideRepo struct {
	repository.ImageRepository

	byID   *model.GeneratedImage
	hidden []string
}

func (f *fakeHideRepo) GetByID(ctx context.Context, id string) (*model.GeneratedImage, error) {
	return f.byID, nil
}

func (f *fakeHideRepo) Hide(ctx context.Context, id string) error {
	f.hidden = append(f.hidden, id)
	return nil
}

func TestHideByOwner(t *testing.T) {
	repo := &fakeHideRepo{byID: &model.GeneratedImage{ID: "img-1", UserID: "user-1"}}
	svc := NewImageService(repo, zerolog.Nop())

	err := svc.Hide(context.Background(), testUser(10), "img-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"img-1"}, repo.hidden)
}

func TestHideByAdmin(t *testing.T) {
	repo := &fakeHideRepo{byID: &model.GeneratedImage{ID: "img-1", UserID: "someone-else"}}
	svc := NewImageService(repo, zerolog.Nop())

	admin := testUser(10)
	admin.Role = model.RoleAdmin
	err := svc.Hide(context.Background(), admin, "img-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"img-1"}, repo.hidden)
}

func TestHideByStrangerForbidden(t *testing.T) {
	repo := &fakeHideRepo{byID: &model.GeneratedImage{ID: "img-1", UserID: "someone-else"}}
	svc := NewImageService(repo, zerolog.Nop())

	err := svc.Hide(context.Background(), testUser(10), "img-1")

	require.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, repo.hidden)
}

func TestHideMissingImage(t *testing.T) {
	svc := NewImageService(&fakeHideRepo{}, zerolog.Nop())

	err := svc.Hide(context.Background(), testUser(10), "missing")
	require.ErrorIs(t, err, ErrImageNotFound)
}
