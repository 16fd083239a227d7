package repository

import (
	"context"
	"errors"
	"fmt"

	"app/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ImageRepository manages persisted generation records.
type ImageRepository interface {
	Insert(ctx context.Context, img *model.GeneratedImage) error
	GetByID(ctx context.Context, id string) (*model.GeneratedImage, error)
	// GetPublicFeed returns up to limit public records, newest first.
	GetPublicFeed(ctx context.Context, limit int) ([]model.GeneratedImage, error)
	GetUserHistory(ctx context.Context, userID string) ([]model.GeneratedImage, error)
	IncrementLikes(ctx context.Context, id string) error
	// Hide flips the public-visibility flag off. Records are never
	// physically deleted.
	Hide(ctx context.Context, id string) error
	// ListRecent returns the newest records regardless of visibility.
	ListRecent(ctx context.Context, limit int) ([]model.GeneratedImage, error)
}

type imageRepo struct {
	pool *pgxpool.Pool
}

// NewImageRepo creates a new ImageRepository.
func NewImageRepo(pool *pgxpool.Pool) ImageRepository {
	return &imageRepo{pool: pool}
}

const imageColumns = `id, user_id, prompt, style, image_url, is_public, likes, user_email, created_at`

func (r *imageRepo) Insert(ctx context.Context, img *model.GeneratedImage) error {
	const q = `
        INSERT INTO generated_images (id, user_id, prompt, style, image_url, is_public, likes, user_email)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at
    `
	err := r.pool.QueryRow(ctx, q,
		img.ID, img.UserID, img.Prompt, img.Style, img.ImageURL, img.IsPublic, img.Likes, img.UserEmail,
	).Scan(&img.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting image record for user %s: %w", img.UserID, err)
	}
	return nil
}

func (r *imageRepo) GetByID(ctx context.Context, id string) (*model.GeneratedImage, error) {
	q := `SELECT ` + imageColumns + ` FROM generated_images WHERE id = $1`
	var img model.GeneratedImage
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&img.ID, &img.UserID, &img.Prompt, &img.Style, &img.ImageURL, &img.IsPublic, &img.Likes, &img.UserEmail, &img.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch image %s: %w", id, err)
	}
	return &img, nil
}

func (r *imageRepo) GetPublicFeed(ctx context.Context, limit int) ([]model.GeneratedImage, error) {
	q := `
        SELECT ` + imageColumns + `
        FROM generated_images
        WHERE is_public = TRUE
        ORDER BY created_at DESC
        LIMIT $1
    `
	return r.queryImages(ctx, q, limit)
}

func (r *imageRepo) GetUserHistory(ctx context.Context, userID string) ([]model.GeneratedImage, error) {
	q := `
        SELECT ` + imageColumns + `
        FROM generated_images
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	return r.queryImages(ctx, q, userID)
}

func (r *imageRepo) IncrementLikes(ctx context.Context, id string) error {
	const q = `UPDATE generated_images SET likes = likes + 1 WHERE id = $1`
	if _, err := r.pool.Exec(ctx, q, id); err != nil {
		return fmt.Errorf("incrementing likes for image %s: %w", id, err)
	}
	return nil
}

func (r *imageRepo) Hide(ctx context.Context, id string) error {
	const q = `UPDATE generated_images SET is_public = FALSE WHERE id = $1`
	if _, err := r.pool.Exec(ctx, q, id); err != nil {
		return fmt.Errorf("hiding image %s: %w", id, err)
	}
	return nil
}

func (r *imageRepo) ListRecent(ctx context.Context, limit int) ([]model.GeneratedImage, error) {
	q := `
        SELECT ` + imageColumns + `
        FROM generated_images
        ORDER BY created_at DESC
        LIMIT $1
    `
	return r.queryImages(ctx, q, limit)
}

func (r *imageRepo) queryImages(ctx context.Context, q string, args ...interface{}) ([]model.GeneratedImage, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying images: %w", err)
	}
	defer rows.Close()

	var images []model.GeneratedImage
	for rows.Next() {
		var img model.GeneratedImage
		if err := rows.Scan(
			&img.ID, &img.UserID, &img.Prompt, &img.Style, &img.ImageURL, &img.IsPublic, &img.Likes, &img.UserEmail, &img.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning image row: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating image rows: %w", err)
	}
	return images, nil
}
