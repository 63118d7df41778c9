package jobs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imagedrop/api/internal/storage"
)

type fakeImageIndex struct {
	known map[string]bool
}

func (f *fakeImageIndex) ExistsByFilename(_ context.Context, filename string) (bool, error) {
	return f.known[filename], nil
}

func TestSweepRemovesOnlyOldOrphans(t *testing.T) {
	disk, err := storage.NewDisk(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"orphan-old.png", "orphan-fresh.png", "tracked-old.png"} {
		_, err := disk.Save(name, strings.NewReader("bytes"))
		require.NoError(t, err)
	}

	old := time.Now().Add(-2 * time.Hour)
	for _, name := range []string{"orphan-old.png", "tracked-old.png"} {
		require.NoError(t, os.Chtimes(filepath.Join(disk.Dir(), name), old, old))
	}

	index := &fakeImageIndex{known: map[string]bool{"tracked-old.png": true}}
	sweeper := NewSweeper(disk, index, time.Hour, zerolog.Nop())

	require.NoError(t, sweeper.Sweep(context.Background()))

	_, err = os.Stat(filepath.Join(disk.Dir(), "orphan-old.png"))
	assert.True(t, os.IsNotExist(err), "old orphan must be removed")

	_, err = os.Stat(filepath.Join(disk.Dir(), "orphan-fresh.png"))
	assert.NoError(t, err, "fresh file is inside the grace window")

	_, err = os.Stat(filepath.Join(disk.Dir(), "tracked-old.png"))
	assert.NoError(t, err, "tracked file must stay")
}

func TestSweepEmptyDir(t *testing.T) {
	disk, err := storage.NewDisk(t.TempDir())
	require.NoError(t, err)

	sweeper := NewSweeper(disk, &fakeImageIndex{known: map[string]bool{}}, time.Hour, zerolog.Nop())
	assert.NoError(t, sweeper.Sweep(context.Background()))
}
