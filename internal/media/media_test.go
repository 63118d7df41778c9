package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage("image/png"))
	assert.True(t, IsImage("image/jpeg"))
	assert.True(t, IsImage("image/svg+xml"))
	assert.True(t, IsImage("IMAGE/PNG"))
	assert.True(t, IsImage(" image/gif ; q=1"))

	assert.False(t, IsImage(""))
	assert.False(t, IsImage("text/html"))
	assert.False(t, IsImage("application/octet-stream"))
	assert.False(t, IsImage("video/mp4"))
}

func TestNormalizeMimeType(t *testing.T) {
	assert.Equal(t, "image/png", NormalizeMimeType("image/png"))
	assert.Equal(t, "image/jpeg", NormalizeMimeType(" IMAGE/JPEG; charset=binary "))
	assert.Equal(t, "", NormalizeMimeType(""))
}
