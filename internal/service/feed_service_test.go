package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"app/internal/catalog"
	"app/internal/model"
	"app/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFeedRepo struct {
	repository.ImageRepository

	feed    []model.GeneratedImage
	feedErr error

	liked []string
}

func (f *fakeFeedRepo) GetPublicFeed(ctx context.Context, limit int) ([]model.GeneratedImage, error) {
	if f.feedErr != nil {
		return nil, f.feedErr
	}
	return f.feed, nil
}

func (f *fakeFeedRepo) IncrementLikes(ctx context.Context, imageID string) error {
	f.liked = append(f.liked, imageID)
	return nil
}

func liveImages(n int) []model.GeneratedImage {
	imgs := make([]model.GeneratedImage, 0, n)
	for i := 0; i < n; i++ {
		imgs = append(imgs, model.GeneratedImage{
			ID:     fmt.Sprintf("live-%d", i),
			Prompt: fmt.Sprintf("prompt %d", i),
		})
	}
	return imgs
}

func TestGetFeedServesCuratedWhenEmpty(t *testing.T) {
	repo := &fakeFeedRepo{feed: nil}
	svc := NewFeedService(repo, zerolog.Nop())

	feed := svc.GetFeed(context.Background())

	require.NotNil(t, feed)
	assert.False(t, feed.Live)
	require.Len(t, feed.Images, 6)
	for _, img := range feed.Images {
		assert.True(t, catalog.IsCurated(img.ID))
	}
}

func TestGetFeedServesCuratedOnFetchError(t *testing.T) {
	repo := &fakeFeedRepo{feedErr: errors.New("db down")}
	svc := NewFeedService(repo, zerolog.Nop())

	feed := svc.GetFeed(context.Background())

	require.NotNil(t, feed, "the feed must degrade, not fail")
	assert.False(t, feed.Live)
	require.Len(t, feed.Images, 6)
}

func TestGetFeedPadsSparseLiveWithCurated(t *testing.T) {
	repo := &fakeFeedRepo{feed: liveImages(4)}
	svc := NewFeedService(repo, zerolog.Nop())

	feed := svc.GetFeed(context.Background())

	assert.True(t, feed.Live)
	require.Len(t, feed.Images, 6)
	// Live records first, curated padding on the tail.
	for i := 0; i < 4; i++ {
		assert.Equal(t, fmt.Sprintf("live-%d", i), feed.Images[i].ID)
	}
	for i := 4; i < 6; i++ {
		assert.True(t, catalog.IsCurated(feed.Images[i].ID))
	}
}

func TestGetFeedServesLiveOnlyAtMinimum(t *testing.T) {
	repo := &fakeFeedRepo{feed: liveImages(7)}
	svc := NewFeedService(repo, zerolog.Nop())

	feed := svc.GetFeed(context.Background())

	assert.True(t, feed.Live)
	require.Len(t, feed.Images, 7)
	for _, img := range feed.Images {
		assert.False(t, catalog.IsCurated(img.ID))
	}
}

func TestLikeCuratedSkipsRemoteWrite(t *testing.T) {
	repo := &fakeFeedRepo{}
	svc := NewFeedService(repo, zerolog.Nop())

	err := svc.Like(context.Background(), catalog.CuratedExamples()[0].ID)

	require.NoError(t, err)
	assert.Empty(t, repo.liked)
}

func TestLikeLiveIncrementsOnce(t *testing.T) {
	repo := &fakeFeedRepo{}
	svc := NewFeedService(repo, zerolog.Nop())

	err := svc.Like(context.Background(), "live-42")

	require.NoError(t, err)
	assert.Equal(t, []string{"live-42"}, repo.liked)
}
