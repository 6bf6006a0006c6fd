package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostEndpoint(t *testing.T) {
	_, app := setupTestServer(t)
	adminToken := registerAdmin(t, app)
	userToken, _ := registerUser(t, app, "reader", "reader@example.com")

	t.Run("AdminCreatesPost", func(t *testing.T) {
		body := createPost(t, app, adminToken, "My First Post")
		assert.Equal(t, "my-first-post", body["slug"])
	})

	t.Run("DuplicateTitleConflicts", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/posts", adminToken, fiber.Map{
			"title": "My First Post", "body": "again",
		})
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})

	t.Run("RegularUserLacksWritePermission", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/posts", userToken, fiber.Map{
			"title": "Not Allowed", "body": "x",
		})
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("AnonymousRejected", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/posts", "", fiber.Map{
			"title": "Anon", "body": "x",
		})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestReadPostEndpoints(t *testing.T) {
	_, app := setupTestServer(t)
	adminToken := registerAdmin(t, app)
	createPost(t, app, adminToken, "Public Post")

	t.Run("GetBySlugIsPublic", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodGet, "/api/posts/public-post", "", nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "Public Post", body["title"])
	})

	t.Run("UnknownSlugIs404", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodGet, "/api/posts/missing", "", nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("ListIsPublic", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodGet, "/api/posts", "", nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var posts []map[string]any
		require.NoError(t, json.Unmarshal(raw, &posts))
		assert.Len(t, posts, 1)
	})
}

func TestUpdateAndDeletePostEndpoints(t *testing.T) {
	_, app := setupTestServer(t)
	adminToken := registerAdmin(t, app)
	userToken, _ := registerUser(t, app, "reader", "reader@example.com")

	post := createPost(t, app, adminToken, "Editable")
	id := postID(t, post)

	t.Run("StrangerCannotEdit", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/posts/%d", id), userToken, fiber.Map{
			"body": "hijacked",
		})
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("AuthorEditsKeepSlug", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/posts/%d", id), adminToken, fiber.Map{
			"title": "Renamed",
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "Renamed", body["title"])
		assert.Equal(t, "editable", body["slug"])
	})

	t.Run("StrangerCannotDelete", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/posts/%d", id), userToken, nil)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("AuthorDeletes", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/posts/%d", id), adminToken, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		resp, _ = doJSON(t, app, http.MethodGet, "/api/posts/editable", "", nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}
