package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"app/internal/catalog"
	"app/internal/model"
	"app/internal/pubsub"
	"app/internal/repository"
	"app/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	// ErrCreateModeRequired is returned when generation is invoked from
	// explore mode; the caller should prompt for authentication/mode
	// switch instead of proceeding.
	ErrCreateModeRequired = errors.New("create_mode_required")
	// ErrNotSignedIn is returned when no profile is present.
	ErrNotSignedIn = errors.New("not_signed_in")
	// ErrInsufficientCredits covers both the precondition check and the
	// conditional debit refusing to cross zero.
	ErrInsufficientCredits = repository.ErrInsufficientCredits
	// ErrEmptyPrompt is returned for whitespace-only prompts.
	ErrEmptyPrompt = errors.New("empty_prompt")
	// ErrImageNotFound is returned when a download target does not exist.
	ErrImageNotFound = errors.New("image_not_found")
)

// GenerateRequest carries the client's session mode with the prompt.
type GenerateRequest struct {
	Mode    model.AppMode
	Prompt  string
	StyleID string
}

// GenerationService converts a validated prompt into a persisted,
// credit-debited image result.
type GenerationService interface {
	Generate(ctx context.Context, user *model.UserProfile, req GenerateRequest) (*model.GeneratedImage, error)
	// Download returns the image payload, watermarked unless the caller
	// is on the paid tier or an admin.
	Download(ctx context.Context, user *model.UserProfile, imageID string) ([]byte, string, error)
	// EnhancePrompt rewrites the prompt; on provider failure the
	// original prompt is returned unchanged.
	EnhancePrompt(ctx context.Context, prompt string) string
}

type generationService struct {
	generator ImageGenerator
	enhancer  PromptEnhancer
	users     repository.UserRepository
	images    repository.ImageRepository
	store     storage.ObjectStore
	publisher pubsub.Publisher
	topic     string
	logger    zerolog.Logger
}

// NewGenerationService wires the workflow. publisher may be nil, in
// which case completion events are skipped.
func NewGenerationService(
	generator ImageGenerator,
	enhancer PromptEnhancer,
	users repository.UserRepository,
	images repository.ImageRepository,
	store storage.ObjectStore,
	publisher pubsub.Publisher,
	topic string,
	logger zerolog.Logger,
) GenerationService {
	return &generationService{
		generator: generator,
		enhancer:  enhancer,
		users:     users,
		images:    images,
		store:     store,
		publisher: publisher,
		topic:     topic,
		logger:    logger.With().Str("service", "GenerationService").Logger(),
	}
}

// Generate runs the workflow: preconditions, provider call, conditional
// debit, payload upload, history insert. A failure after the debit is
// compensated with a refund so the balance never pays for a result that
// was not persisted.
func (s *generationService) Generate(ctx context.Context, user *model.UserProfile, req GenerateRequest) (*model.GeneratedImage, error) {
	// Preconditions, checked in order, before any external call.
	if req.Mode != model.ModeCreate {
		return nil, ErrCreateModeRequired
	}
	if user == nil {
		return nil, ErrNotSignedIn
	}
	if user.Credits < catalog.CreditCostPerImage {
		return nil, ErrInsufficientCredits
	}
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	// 1. Provider call. Nothing is mutated until it succeeds.
	data, err := s.generator.GenerateImage(ctx, prompt, req.StyleID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.UserID).Msg("Image generation failed")
		return nil, fmt.Errorf("generate image: %w", err)
	}

	// 2. Debit. The conditional decrement refuses to cross zero, so a
	// concurrent spend from the same account cannot double-charge past
	// the balance.
	if err := s.users.DebitCredits(ctx, user.UserID, catalog.CreditCostPerImage); err != nil {
		if !errors.Is(err, ErrInsufficientCredits) {
			s.logger.Error().Err(err).Str("user_id", user.UserID).Msg("Credit debit failed")
		}
		return nil, err
	}

	// 3. Persist: upload the payload, then insert the history record.
	// Either failure refunds the debit.
	id := uuid.NewString()
	url, err := s.store.Upload(ctx, "generations/"+id+".png", data, "image/png")
	if err != nil {
		s.refund(ctx, user.UserID)
		s.logger.Error().Err(err).Str("user_id", user.UserID).Msg("Payload upload failed")
		return nil, fmt.Errorf("store image payload: %w", err)
	}

	img := &model.GeneratedImage{
		ID:        id,
		UserID:    user.UserID,
		Prompt:    prompt,
		Style:     req.StyleID,
		ImageURL:  url,
		IsPublic:  true, // default to public for the community feed
		UserEmail: user.Email,
	}
	if err := s.images.Insert(ctx, img); err != nil {
		s.refund(ctx, user.UserID)
		s.logger.Error().Err(err).Str("user_id", user.UserID).Msg("History insert failed")
		return nil, fmt.Errorf("persist image record: %w", err)
	}

	// 4. Notify dependent views. Best effort.
	s.publishCompleted(ctx, img)

	return img, nil
}

func (s *generationService) refund(ctx context.Context, userID string) {
	if err := s.users.RefundCredits(ctx, userID, catalog.CreditCostPerImage); err != nil {
		// The debit stands with no record to show for it; this needs an
		// operator to reconcile, so log loudly.
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Compensating refund failed")
	}
}

func (s *generationService) publishCompleted(ctx context.Context, img *model.GeneratedImage) {
	if s.publisher == nil {
		return
	}
	payload, err := json.Marshal(map[string]string{
		"image_id": img.ID,
		"user_id":  img.UserID,
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to marshal completion event")
		return
	}
	if _, err := s.publisher.Publish(ctx, s.topic, payload); err != nil {
		s.logger.Warn().Err(err).Str("image_id", img.ID).Msg("Failed to publish completion event")
	}
}

// Download fetches the stored payload. Free-tier, non-admin callers
// receive a watermarked copy; paid and admin callers get the exact
// stored bytes.
func (s *generationService) Download(ctx context.Context, user *model.UserProfile, imageID string) ([]byte, string, error) {
	if user == nil {
		return nil, "", ErrNotSignedIn
	}
	img, err := s.images.GetByID(ctx, imageID)
	if err != nil {
		return nil, "", err
	}
	if img == nil {
		return nil, "", ErrImageNotFound
	}
	key, err := s.store.KeyFromURL(img.ImageURL)
	if err != nil {
		return nil, "", fmt.Errorf("resolve payload for image %s: %w", imageID, err)
	}
	data, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, "", err
	}
	if user.Tier == model.TierPaid || user.Role == model.RoleAdmin {
		return data, "image/png", nil
	}
	marked, err := ApplyWatermark(data)
	if err != nil {
		return nil, "", fmt.Errorf("watermark image %s: %w", imageID, err)
	}
	return marked, "image/png", nil
}

func (s *generationService) EnhancePrompt(ctx context.Context, prompt string) string {
	enhanced, err := s.enhancer.EnhancePrompt(ctx, prompt)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Prompt enhancement failed, returning original")
		return prompt
	}
	enhanced = strings.TrimSpace(enhanced)
	if enhanced == "" {
		return prompt
	}
	return enhanced
}
