package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"imagedrop/api/internal/ids"
	"imagedrop/api/internal/media"
	"imagedrop/api/internal/models"
)

// UploadFile is one file from a multipart batch.
type UploadFile struct {
	OriginalName string
	ContentType  string
	Size         int64
	Open         func() (io.ReadCloser, error)
}

type UploadResult struct {
	Files   []models.Image
	Elapsed time.Duration
}

type UploadService struct {
	images       ImageStore
	blobs        BlobStore
	publicPath   string
	maxFiles     int
	maxFileBytes int64
	storeTimeout time.Duration
	log          zerolog.Logger
}

func NewUploadService(images ImageStore, blobs BlobStore, publicPath string, maxFiles int, maxFileBytes int64, storeTimeout time.Duration, log zerolog.Logger) *UploadService {
	return &UploadService{
		images:       images,
		blobs:        blobs,
		publicPath:   strings.TrimSuffix(publicPath, "/"),
		maxFiles:     maxFiles,
		maxFileBytes: maxFileBytes,
		storeTimeout: storeTimeout,
		log:          log,
	}
}

// Upload validates the whole batch before touching disk, persists every
// file, then bulk-inserts the metadata in one transaction. One bad file
// rejects the entire batch. A metadata insert failure after the disk
// writes leaves the files behind; the orphan sweep picks those up later.
func (s *UploadService) Upload(ctx context.Context, files []UploadFile, baseURL string) (UploadResult, error) {
	start := time.Now()

	if len(files) > s.maxFiles {
		return UploadResult{}, fmt.Errorf("%w: got %d, max %d", models.ErrTooManyFiles, len(files), s.maxFiles)
	}

	for _, f := range files {
		if !media.IsImage(f.ContentType) {
			return UploadResult{}, fmt.Errorf("%w: %s is %s", models.ErrNotImage, f.OriginalName, f.ContentType)
		}
		if s.maxFileBytes > 0 && f.Size > s.maxFileBytes {
			return UploadResult{}, fmt.Errorf("%w: %s is %d bytes, max %d", models.ErrFileTooLarge, f.OriginalName, f.Size, s.maxFileBytes)
		}
	}

	records := make([]models.Image, 0, len(files))
	now := time.Now().UTC()
	for _, f := range files {
		filename := s.buildFilename(f.OriginalName)

		size, err := s.saveFile(f, filename)
		if err != nil {
			return UploadResult{}, fmt.Errorf("%w: %v", models.ErrStorage, err)
		}

		records = append(records, models.Image{
			ID:        ids.New(),
			Filename:  filename,
			URL:       s.buildPublicURL(baseURL, filename),
			SizeBytes: size,
			MimeType:  media.NormalizeMimeType(f.ContentType),
			CreatedAt: now,
		})
	}

	storeCtx, cancel := s.storeCtx(ctx)
	defer cancel()

	if err := s.images.CreateBatch(storeCtx, records); err != nil {
		s.log.Error().Err(err).Int("files", len(records)).Msg("image metadata insert failed")
		return UploadResult{}, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}

	return UploadResult{
		Files:   records,
		Elapsed: time.Since(start),
	}, nil
}

// ListImageURLs returns every stored image URL, most recent first.
func (s *UploadService) ListImageURLs(ctx context.Context) ([]string, error) {
	ctx, cancel := s.storeCtx(ctx)
	defer cancel()

	urls, err := s.images.ListURLs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	return urls, nil
}

func (s *UploadService) saveFile(f UploadFile, filename string) (int64, error) {
	r, err := f.Open()
	if err != nil {
		return 0, fmt.Errorf("open upload: %w", err)
	}
	defer r.Close()

	return s.blobs.Save(filename, r)
}

// buildFilename prefixes the sanitized original name with a ksuid, which
// is time-ordered and safe against same-millisecond collisions. Identical
// content uploaded twice still yields two distinct files.
func (s *UploadService) buildFilename(originalName string) string {
	base := filepath.Base(strings.ReplaceAll(originalName, `\`, "/"))
	if base == "." || base == ".." || base == "/" || base == "" {
		base = "file"
	}
	return ids.New() + "-" + base
}

func (s *UploadService) buildPublicURL(baseURL, filename string) string {
	return fmt.Sprintf("%s%s/%s", strings.TrimSuffix(baseURL, "/"), s.publicPath, filename)
}

func (s *UploadService) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.storeTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.storeTimeout)
}
