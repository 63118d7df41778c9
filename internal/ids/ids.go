package ids

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/segmentio/ksuid"
)

// New returns a time-ordered, collision-resistant identifier.
func New() string {
	return ksuid.New().String()
}

// NewOpaqueToken returns length random bytes hex-encoded.
func NewOpaqueToken(length int) (string, error) {
	if length <= 0 {
		length = 40
	}
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
