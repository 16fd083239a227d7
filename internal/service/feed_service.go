package service

import (
	"context"

	"app/internal/catalog"
	"app/internal/model"
	"app/internal/repository"

	"github.com/rs/zerolog"
)

const (
	// feedFetchLimit caps the live records fetched per assembly.
	feedFetchLimit = 12
	// feedMinimum is the display size padded out with curated examples.
	feedMinimum = 6
)

// FeedService assembles the community display list and routes likes.
type FeedService interface {
	// GetFeed never fails: when the live fetch errors or comes back
	// empty the curated set is served, marked non-live.
	GetFeed(ctx context.Context) *model.Feed
	// Like records a like for a live record; curated entries are
	// acknowledged without a remote write.
	Like(ctx context.Context, imageID string) error
}

type feedService struct {
	images repository.ImageRepository
	logger zerolog.Logger
}

// NewFeedService creates a new FeedService with a scoped logger.
func NewFeedService(images repository.ImageRepository, logger zerolog.Logger) FeedService {
	return &feedService{
		images: images,
		logger: logger.With().Str("service", "FeedService").Logger(),
	}
}

func (s *feedService) GetFeed(ctx context.Context) *model.Feed {
	live, err := s.images.GetPublicFeed(ctx, feedFetchLimit)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Live feed fetch failed, serving curated examples")
		return &model.Feed{Images: catalog.CuratedExamples(), Live: false}
	}
	if len(live) == 0 {
		return &model.Feed{Images: catalog.CuratedExamples(), Live: false}
	}
	if len(live) < feedMinimum {
		// Pad the tail with curated examples, front-filled.
		live = append(live, catalog.CuratedExamples()[:feedMinimum-len(live)]...)
	}
	return &model.Feed{Images: live, Live: true}
}

func (s *feedService) Like(ctx context.Context, imageID string) error {
	if catalog.IsCurated(imageID) {
		return nil
	}
	return s.images.IncrementLikes(ctx, imageID)
}
