package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imagedrop/api/internal/config"
	"imagedrop/api/internal/metrics"
	"imagedrop/api/internal/models"
	"imagedrop/api/internal/repository"
	"imagedrop/api/internal/service"
)

type memUserStore struct {
	users []models.User
}

func (m *memUserStore) Create(_ context.Context, user models.User) error {
	m.users = append(m.users, user)
	return nil
}

func (m *memUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (m *memUserStore) Count(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

type memImageStore struct {
	images []models.Image
}

func (m *memImageStore) CreateBatch(_ context.Context, images []models.Image) error {
	m.images = append(m.images, images...)
	return nil
}

func (m *memImageStore) ListURLs(_ context.Context) ([]string, error) {
	urls := make([]string, 0, len(m.images))
	for i := len(m.images) - 1; i >= 0; i-- {
		urls = append(urls, m.images[i].URL)
	}
	return urls, nil
}

type memBlobStore struct {
	files map[string][]byte
}

func (m *memBlobStore) Save(filename string, r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	m.files[filename] = data
	return int64(len(data)), nil
}

type testEnv struct {
	engine *gin.Engine
	users  *memUserStore
	images *memImageStore
	blobs  *memBlobStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.AppConfig{
		Environment: "development",
		Postgres:    config.PostgresConfig{StoreTimeout: time.Second},
		Security: config.SecurityConfig{
			JWTSecret:  "test-secret",
			TokenTTL:   720 * time.Hour,
			CookieName: "token",
			CookieTTL:  24 * time.Hour,
		},
		Upload: config.UploadConfig{
			PublicPath:   "/uploads",
			MaxFiles:     10,
			MaxFileBytes: 1 << 20,
		},
	}

	users := &memUserStore{}
	images := &memImageStore{}
	blobs := &memBlobStore{files: map[string][]byte{}}

	auth := service.NewAuthService(users, cfg.Security.JWTSecret, cfg.Security.TokenTTL, cfg.Postgres.StoreTimeout, zerolog.Nop())
	uploads := service.NewUploadService(images, blobs, cfg.Upload.PublicPath, cfg.Upload.MaxFiles, cfg.Upload.MaxFileBytes, cfg.Postgres.StoreTimeout, zerolog.Nop())

	hs := HandlerSet{
		log:       zerolog.Nop(),
		cfg:       cfg,
		auth:      auth,
		uploads:   uploads,
		collector: metrics.NewCollector(),
	}

	engine := gin.New()
	engine.NoRoute(NotFound)
	hs.Register(engine.Group("/api"))

	return &testEnv{engine: engine, users: users, images: images, blobs: blobs}
}

func (e *testEnv) postJSON(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	return nil
}

func TestRegisterLoginScenario(t *testing.T) {
	env := newTestEnv(t)

	// First registration becomes admin.
	w := env.postJSON(t, "/api/v1/auth/register", gin.H{"email": "a@x.com", "name": "A", "password": "pw1secret"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Success!", decodeBody(t, w)["msg"])
	require.Len(t, env.users.users, 1)
	assert.Equal(t, models.UserRoleAdmin, env.users.users[0].Role)

	// Duplicate email is rejected.
	w = env.postJSON(t, "/api/v1/auth/register", gin.H{"email": "a@x.com", "name": "A", "password": "pw1secret"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Second user is a plain user.
	w = env.postJSON(t, "/api/v1/auth/register", gin.H{"email": "b@x.com", "name": "B", "password": "pw2secret"})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, env.users.users, 2)
	assert.Equal(t, models.UserRoleUser, env.users.users[1].Role)

	// Wrong password and unknown email yield the same response.
	wrongPw := env.postJSON(t, "/api/v1/auth/login", gin.H{"email": "a@x.com", "password": "wrong"})
	unknown := env.postJSON(t, "/api/v1/auth/login", gin.H{"email": "nobody@x.com", "password": "pw1secret"})
	assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, wrongPw.Body.String(), unknown.Body.String())

	// Successful login sets the cookie and returns the projection.
	w = env.postJSON(t, "/api/v1/auth/login", gin.H{"email": "a@x.com", "password": "pw1secret"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cookie := sessionCookie(w)
	require.NotNil(t, cookie, "login must set the session cookie")
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)
	assert.False(t, cookie.Secure, "secure flag is off outside production")

	body := decodeBody(t, w)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "A", user["name"])
	assert.Equal(t, "admin", user["role"])
	assert.NotEmpty(t, user["id"])
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "Hash")
}

func TestCheckLoginStatus(t *testing.T) {
	env := newTestEnv(t)

	env.postJSON(t, "/api/v1/auth/register", gin.H{"email": "a@x.com", "name": "A", "password": "pw1secret"})
	login := env.postJSON(t, "/api/v1/auth/login", gin.H{"email": "a@x.com", "password": "pw1secret"})
	cookie := sessionCookie(login)
	require.NotNil(t, cookie)

	// With the session cookie.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/check-login-status", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["isLoggedIn"])

	// Without any cookie.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/check-login-status", nil)
	w = httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["isLoggedIn"])

	// With a tampered cookie.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/check-login-status", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: cookie.Value + "tampered"})
	w = httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	assert.Equal(t, false, decodeBody(t, w)["isLoggedIn"])
}

func TestLogoutClearsCookie(t *testing.T) {
	env := newTestEnv(t)

	w := env.postJSON(t, "/api/v1/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Logged out successfully", decodeBody(t, w)["msg"])

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func multipartBody(t *testing.T, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for filename, contentType := range files {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename=%q`, filename))
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte("file content for " + filename))
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func TestUploadImagesAndList(t *testing.T) {
	env := newTestEnv(t)

	body, contentType := multipartBody(t, map[string]string{
		"cat.png": "image/png",
		"dog.jpg": "image/jpeg",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/upload-images", body)
	req.Header.Set("Content-Type", contentType)
	req.Host = "example.com"
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decodeBody(t, w)
	files, ok := resp["files"].([]any)
	require.True(t, ok)
	assert.Len(t, files, 2)
	assert.Contains(t, resp, "processingTime")
	assert.Len(t, env.images.images, 2)
	assert.Len(t, env.blobs.files, 2)

	for _, img := range env.images.images {
		assert.True(t, strings.HasPrefix(img.URL, "http://example.com/uploads/"), img.URL)
	}

	// Listing returns the URLs newest first.
	listReq := httptest.NewRequest(http.MethodGet, "/api/v1/auth/images", nil)
	listW := httptest.NewRecorder()
	env.engine.ServeHTTP(listW, listReq)
	require.Equal(t, http.StatusOK, listW.Code)

	var urls []string
	require.NoError(t, json.Unmarshal(listW.Body.Bytes(), &urls))
	assert.Len(t, urls, 2)
	assert.Equal(t, env.images.images[1].URL, urls[0])
}

func TestUploadRejectsNonImage(t *testing.T) {
	env := newTestEnv(t)

	body, contentType := multipartBody(t, map[string]string{
		"ok.png":    "image/png",
		"notes.txt": "text/plain",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/upload-images", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, env.images.images, "no metadata for a rejected batch")
	assert.Empty(t, env.blobs.files, "no files for a rejected batch")
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	// Missing fields and malformed email are rejected before the flow runs.
	for _, body := range []gin.H{
		{},
		{"email": "a@x.com", "name": "A"},
		{"email": "not-an-email", "name": "A", "password": "pw1secret"},
	} {
		w := env.postJSON(t, "/api/v1/auth/register", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
	assert.Empty(t, env.users.users)
}

func TestNotFoundRoute(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/nope", nil)
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "route not found", decodeBody(t, w)["error"])
}
