package media

import "strings"

// IsImage reports whether the declared media type names an image. The
// upload flow validates the declared type only; bytes are stored as sent.
func IsImage(mimeType string) bool {
	return strings.HasPrefix(NormalizeMimeType(mimeType), "image/")
}

// NormalizeMimeType strips parameters like "; charset=..." and surrounding
// whitespace from a Content-Type value.
func NormalizeMimeType(contentType string) string {
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
