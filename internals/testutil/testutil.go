// Package testutil wires an in-memory database and Fiber app for handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"amanah_backend/internals/configs"
	authModel "amanah_backend/internals/features/users/auth/model"
	helper "amanah_backend/internals/helpers"
	"amanah_backend/internals/helpers/storage"
)

const TestJWTSecret = "test-secret"

// NewDB opens a private in-memory SQLite database and migrates models into it.
func NewDB(t *testing.T, models ...any) *gorm.DB {
	t.Helper()
	if configs.JWTSecret == "" {
		configs.JWTSecret = TestJWTSecret
	}
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	all := append([]any{&authModel.UserModel{}, &authModel.TokenBlacklist{}}, models...)
	require.NoError(t, db.AutoMigrate(all...))
	return db
}

func NewApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
}

// CreateUser inserts an active, verified user with the given role.
func CreateUser(t *testing.T, db *gorm.DB, role, email, password string) authModel.UserModel {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := authModel.UserModel{
		FullName:      "Test " + role,
		Email:         email,
		PasswordHash:  string(hash),
		Role:          role,
		IsActive:      true,
		EmailVerified: true,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

// TokenFor signs an access token the auth middleware accepts.
func TokenFor(t *testing.T, u authModel.UserModel) string {
	t.Helper()
	if configs.JWTSecret == "" {
		configs.JWTSecret = TestJWTSecret
	}
	now := time.Now()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":        u.ID.String(),
		"role":      u.Role,
		"user_name": u.FullName,
		"email":     u.Email,
		"iat":       now.Unix(),
		"exp":       now.Add(time.Hour).Unix(),
	}).SignedString([]byte(configs.JWTSecret))
	require.NoError(t, err)
	return tok
}

// Response is the decoded envelope plus the raw body.
type Response struct {
	Status int
	Body   map[string]any
	Raw    []byte
	Header http.Header
}

// Data returns body["data"] as a map, or nil.
func (r Response) Data() map[string]any {
	m, _ := r.Body["data"].(map[string]any)
	return m
}

// List returns body["data"] as a slice, or nil.
func (r Response) List() []any {
	l, _ := r.Body["data"].([]any)
	return l
}

// DoJSON sends body as JSON (nil for no body) with an optional bearer token.
func DoJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) Response {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return Do(t, app, req, token)
}

// DoMultipart posts fields and files (field name -> filename -> content).
func DoMultipart(t *testing.T, app *fiber.App, method, path string, fields map[string]string, files map[string]FilePart, token string) Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for field, f := range files {
		fw, err := w.CreateFormFile(field, f.Name)
		require.NoError(t, err)
		_, err = fw.Write(f.Content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return Do(t, app, req, token)
}

type FilePart struct {
	Name    string
	Content []byte
}

func Do(t *testing.T, app *fiber.App, req *http.Request, token string) Response {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := Response{Status: resp.StatusCode, Raw: raw, Header: resp.Header}
	if len(raw) > 0 && raw[0] == '{' {
		_ = json.Unmarshal(raw, &out.Body)
	}
	return out
}

// NewMedia returns a processor over an in-memory store. ffmpeg is pointed at
// a missing binary so videos are stored as uploaded.
func NewMedia() (*storage.Processor, *storage.MemoryStore) {
	store := storage.NewMemoryStore("https://cdn.test")
	return &storage.Processor{
		Store:  store,
		WebP:   storage.DefaultWebPOptions(),
		FFmpeg: storage.FFmpeg{Path: "ffmpeg-missing-in-tests"},
	}, store
}

// PNG encodes a small gradient image.
func PNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{uint8(x * 7), uint8(y * 5), 90, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
