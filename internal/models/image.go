package models

import "time"

// Image is the metadata record for one uploaded file. Records are created
// in batches at upload time and are immutable afterwards.
type Image struct {
	ID        string
	Filename  string
	URL       string
	SizeBytes int64
	MimeType  string
	CreatedAt time.Time
}
