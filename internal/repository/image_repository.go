package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"imagedrop/api/internal/models"
)

var ErrImageNotFound = errors.New("image not found")

type ImageRepository struct {
	pool *pgxpool.Pool
}

func NewImageRepository(pool *pgxpool.Pool) *ImageRepository {
	return &ImageRepository{pool: pool}
}

// CreateBatch inserts all records in a single transaction. Either every
// record lands or none do.
func (r *ImageRepository) CreateBatch(ctx context.Context, images []models.Image) error {
	if len(images) == 0 {
		return nil
	}

	const query = `
		INSERT INTO images (
			id, filename, url, size_bytes, mime_type, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
	`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, image := range images {
		batch.Queue(query,
			image.ID,
			image.Filename,
			image.URL,
			image.SizeBytes,
			image.MimeType,
			image.CreatedAt,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range images {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("insert image: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}

	return tx.Commit(ctx)
}

// ListURLs returns all image URLs, newest first.
func (r *ImageRepository) ListURLs(ctx context.Context) ([]string, error) {
	const query = `
		SELECT url FROM images ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	urls := make([]string, 0)
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, rows.Err()
}

func (r *ImageRepository) ExistsByFilename(ctx context.Context, filename string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM images WHERE filename = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, filename).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
