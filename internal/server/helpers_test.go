package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"scribe/internal/config"
	"scribe/internal/database"
	"scribe/internal/repository"
	"scribe/internal/seed"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestServer wires the full route table onto an in-memory database
// with seeded roles and no Redis.
func setupTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models()...))
	require.NoError(t, seed.SeedRoles(context.Background(), repository.NewRoleRepository(db)))

	cfg := &config.Config{
		Port:               "8080",
		SecretKey:          "test-secret",
		AdminAddress:       "admin@example.com",
		ActivationTokenTTL: 3600,
		AuthTokenTTL:       3600,
		PostsPerPage:       10,
		CommentsPerPage:    10,
		AllowedOrigins:     "*",
		Env:                "test",
	}

	srv := NewServerWithDB(cfg, db, nil)
	app := fiber.New()
	srv.SetupRoutes(app)
	return srv, app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	if len(raw) > 0 {
		// Array responses are left to the caller; decode errors here
		// just mean a non-object body.
		_ = json.Unmarshal(raw, &decoded)
	}
	resp.Body = io.NopCloser(bytes.NewReader(raw))
	return resp, decoded
}

// registerUser creates an account over HTTP and returns its auth token
// with the registration response body.
func registerUser(t *testing.T, app *fiber.App, username, email string) (string, map[string]any) {
	t.Helper()

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"username": username,
		"email":    email,
		"password": "cat",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, "register %s: %v", username, body)

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token, body
}

func registerAdmin(t *testing.T, app *fiber.App) string {
	t.Helper()
	token, _ := registerUser(t, app, "admin", "admin@example.com")
	return token
}

func createPost(t *testing.T, app *fiber.App, token, title string) map[string]any {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/posts", token, fiber.Map{
		"title": title,
		"body":  "some body text",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, "create post: %v", body)
	return body
}

func postID(t *testing.T, body map[string]any) uint {
	t.Helper()
	id, ok := body["id"].(float64)
	require.True(t, ok, "no id in %v", body)
	return uint(id)
}
