package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"imagedrop/api/internal/service"
)

const uploadFieldName = "images"

type uploadedFile struct {
	Filename  string    `json:"filename"`
	URL       string    `json:"url"`
	Size      int64     `json:"size"`
	MimeType  string    `json:"mimetype"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h HandlerSet) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	headers := form.File[uploadFieldName]
	files := make([]service.UploadFile, 0, len(headers))
	for _, header := range headers {
		files = append(files, toUploadFile(header))
	}

	result, err := h.uploads.Upload(c.Request.Context(), files, requestBaseURL(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]uploadedFile, 0, len(result.Files))
	var totalBytes int64
	for _, f := range result.Files {
		totalBytes += f.SizeBytes
		resp = append(resp, uploadedFile{
			Filename:  f.Filename,
			URL:       f.URL,
			Size:      f.SizeBytes,
			MimeType:  f.MimeType,
			CreatedAt: f.CreatedAt,
		})
	}
	h.collector.RecordUpload(len(result.Files), totalBytes)

	c.JSON(http.StatusOK, gin.H{
		"files":          resp,
		"processingTime": result.Elapsed.Seconds(),
	})
}

func (h HandlerSet) ListImages(c *gin.Context) {
	urls, err := h.uploads.ListImageURLs(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, urls)
}

func toUploadFile(header *multipart.FileHeader) service.UploadFile {
	return service.UploadFile{
		OriginalName: header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		Size:         header.Size,
		Open: func() (io.ReadCloser, error) {
			return header.Open()
		},
	}
}

// requestBaseURL rebuilds the externally visible origin so stored URLs
// resolve for the client that uploaded them.
func requestBaseURL(c *gin.Context) string {
	scheme := "http"
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	} else if c.Request.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, c.Request.Host)
}
