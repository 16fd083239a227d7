package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/model"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------- service fakes --------

type fakeGenService struct {
	img     *model.GeneratedImage
	genErr  error
	lastReq service.GenerateRequest
}

func (f *fakeGenService) Generate(ctx context.Context, user *model.UserProfile, req service.GenerateRequest) (*model.GeneratedImage, error) {
	f.lastReq = req
	if f.genErr != nil {
		return nil, f.genErr
	}
	return f.img, nil
}

func (f *fakeGenService) Download(ctx context.Context, user *model.UserProfile, imageID string) ([]byte, string, error) {
	return []byte("png"), "image/png", nil
}

func (f *fakeGenService) EnhancePrompt(ctx context.Context, prompt string) string {
	return prompt + ", enhanced"
}

type fakeFeedService struct {
	feed  *model.Feed
	liked []string
}

func (f *fakeFeedService) GetFeed(ctx context.Context) *model.Feed {
	return f.feed
}

func (f *fakeFeedService) Like(ctx context.Context, imageID string) error {
	f.liked = append(f.liked, imageID)
	return nil
}

type fakeImageService struct {
	service.ImageService

	hideErr error
	hidden  []string
}

func (f *fakeImageService) Hide(ctx context.Context, caller *model.UserProfile, imageID string) error {
	if f.hideErr != nil {
		return f.hideErr
	}
	f.hidden = append(f.hidden, imageID)
	return nil
}

type fakeUserService struct {
	profile *model.UserProfile
}

func (f *fakeUserService) EnsureProfile(ctx context.Context, userID, email, displayName string) (*model.UserProfile, error) {
	return f.profile, nil
}

func (f *fakeUserService) Get(ctx context.Context, id string) (*model.UserProfile, error) {
	return f.profile, nil
}

// passAuth stands in for the JWT middleware and stamps a fixed identity.
func passAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), middleware.UserContextKey, middleware.AuthUser{
			ID:    "user-1",
			Email: "fox@example.com",
			Name:  "Fox",
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func newTestMux(gen *fakeGenService, feed *fakeFeedService, images *fakeImageService) *http.ServeMux {
	h := NewImageHandler(gen, feed, images,
		&fakeUserService{profile: &model.UserProfile{UserID: "user-1", Email: "fox@example.com", Credits: 25}},
		validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop())
	mux := http.NewServeMux()
	h.RegisterRoutes(mux, passAuth)
	return mux
}

func postGenerate(t *testing.T, mux *http.ServeMux, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/images/generate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

// -------- tests --------

func TestGenerateReturnsCreated(t *testing.T) {
	gen := &fakeGenService{img: &model.GeneratedImage{ID: "img-1", UserID: "user-1", Prompt: "a red fox"}}
	mux := newTestMux(gen, &fakeFeedService{}, &fakeImageService{})

	rec := postGenerate(t, mux, `{"mode":"create","prompt":"a red fox","style":"anime"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, model.ModeCreate, gen.lastReq.Mode)
	assert.Equal(t, "anime", gen.lastReq.StyleID)

	var resp dto.ImageResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "img-1", resp.ID)
}

func TestGenerateErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"explore mode", service.ErrCreateModeRequired, http.StatusForbidden, "Switch to Create Mode"},
		{"not signed in", service.ErrNotSignedIn, http.StatusUnauthorized, "Sign in"},
		{"insufficient credits", service.ErrInsufficientCredits, http.StatusPaymentRequired, "You need 5 credits"},
		{"empty prompt", service.ErrEmptyPrompt, http.StatusBadRequest, "enter a prompt"},
		{"provider failure", assertableErr("quota"), http.StatusBadGateway, "try again"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := newTestMux(&fakeGenService{genErr: tt.err}, &fakeFeedService{}, &fakeImageService{})

			rec := postGenerate(t, mux, `{"mode":"create","prompt":"a red fox"}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

type assertableErr string

func (e assertableErr) Error() string { return string(e) }

func TestGenerateRejectsBadMode(t *testing.T) {
	mux := newTestMux(&fakeGenService{}, &fakeFeedService{}, &fakeImageService{})

	rec := postGenerate(t, mux, `{"mode":"turbo","prompt":"a red fox"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFeedIsPublic(t *testing.T) {
	feed := &fakeFeedService{feed: &model.Feed{
		Live:   true,
		Images: []model.GeneratedImage{{ID: "img-1", Prompt: "a red fox"}},
	}}
	mux := newTestMux(&fakeGenService{}, feed, &fakeImageService{})

	req := httptest.NewRequest(http.MethodGet, "/images/feed", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.FeedResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Live)
	require.Len(t, resp.Images, 1)
	assert.Equal(t, "img-1", resp.Images[0].ID)
}

func TestLikeRoutesImageID(t *testing.T) {
	feed := &fakeFeedService{}
	mux := newTestMux(&fakeGenService{}, feed, &fakeImageService{})

	req := httptest.NewRequest(http.MethodPost, "/images/img-42/like", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"img-42"}, feed.liked)
}

func TestDownloadSetsAttachmentHeaders(t *testing.T) {
	mux := newTestMux(&fakeGenService{}, &fakeFeedService{}, &fakeImageService{})

	req := httptest.NewRequest(http.MethodGet, "/images/img-1/download", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "vindra-img-1.png")
}

func TestEnhancePromptEndpoint(t *testing.T) {
	mux := newTestMux(&fakeGenService{}, &fakeFeedService{}, &fakeImageService{})

	req := httptest.NewRequest(http.MethodPost, "/prompts/enhance", strings.NewReader(`{"prompt":"a red fox"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.EnhancePromptResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "a red fox, enhanced", resp.Prompt)
}

func deleteImage(t *testing.T, mux *http.ServeMux, imageID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodDelete, "/images/"+imageID, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestRemoveHidesImage(t *testing.T) {
	images := &fakeImageService{}
	mux := newTestMux(&fakeGenService{}, &fakeFeedService{}, images)

	rec := deleteImage(t, mux, "img-42")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"img-42"}, images.hidden)
}

func TestRemoveMissingImage(t *testing.T) {
	images := &fakeImageService{hideErr: service.ErrImageNotFound}
	mux := newTestMux(&fakeGenService{}, &fakeFeedService{}, images)

	rec := deleteImage(t, mux, "missing")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, images.hidden)
}

func TestRemoveForeignImageForbidden(t *testing.T) {
	images := &fakeImageService{hideErr: service.ErrForbidden}
	mux := newTestMux(&fakeGenService{}, &fakeFeedService{}, images)

	rec := deleteImage(t, mux, "img-1")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, images.hidden)
}

func TestListStylesIsPublic(t *testing.T) {
	mux := newTestMux(&fakeGenService{}, &fakeFeedService{}, &fakeImageService{})

	req := httptest.NewRequest(http.MethodGet, "/styles", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp, "styles")
	assert.Contains(t, resp, "presets")
}
