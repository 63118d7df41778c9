package service

import (
	"context"
	"io"

	"imagedrop/api/internal/models"
)

// UserStore is the credential store the auth flow depends on. Email
// uniqueness is ultimately enforced by the store's unique index; the flow
// checks first to return a clean duplicate error.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	Count(ctx context.Context) (int64, error)
}

// ImageStore is the metadata store the upload and query flows depend on.
type ImageStore interface {
	CreateBatch(ctx context.Context, images []models.Image) error
	ListURLs(ctx context.Context) ([]string, error)
}

// BlobStore persists file content addressed by filename.
type BlobStore interface {
	Save(filename string, r io.Reader) (int64, error)
}
