package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"imagedrop/api/internal/storage"
)

// ImageIndex answers whether a stored file has a metadata row.
type ImageIndex interface {
	ExistsByFilename(ctx context.Context, filename string) (bool, error)
}

// Sweeper removes files that made it to disk but never got a metadata
// row, which happens when the process dies between the disk write and the
// batch insert. Files younger than the grace window are left alone so an
// in-flight upload is never swept.
type Sweeper struct {
	blobs  *storage.Disk
	images ImageIndex
	grace  time.Duration
	log    zerolog.Logger
}

func NewSweeper(blobs *storage.Disk, images ImageIndex, grace time.Duration, log zerolog.Logger) *Sweeper {
	return &Sweeper{
		blobs:  blobs,
		images: images,
		grace:  grace,
		log:    log,
	}
}

func (s *Sweeper) Sweep(ctx context.Context) error {
	entries, err := s.blobs.List()
	if err != nil {
		return err
	}

	cutoff := time.Now().Add(-s.grace)
	removed := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}

		exists, err := s.images.ExistsByFilename(ctx, entry.Name())
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		if err := s.blobs.Remove(entry.Name()); err != nil {
			s.log.Warn().Err(err).Str("file", entry.Name()).Msg("orphan remove failed")
			continue
		}
		removed++
	}

	if removed > 0 {
		s.log.Info().Int("removed", removed).Msg("orphaned uploads swept")
	}
	return nil
}
