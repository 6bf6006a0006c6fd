package server

import (
	"fmt"
	"time"

	"scribe/internal/cache"
	"scribe/internal/models"
	"scribe/internal/service"

	"github.com/gofiber/fiber/v2"
)

// pageParams reads ?page= (1-based) and returns limit/offset.
func pageParams(c *fiber.Ctx, perPage int) (limit, offset int) {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	return perPage, (page - 1) * perPage
}

// GetMyProfile handles GET /api/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	return c.JSON(currentUser(c))
}

// UpdateMyProfile handles PUT /api/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		Location string `json:"location"`
		AboutMe  string `json:"about_me"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.users.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:   currentUser(c).ID,
		Name:     req.Name,
		Location: req.Location,
		AboutMe:  req.AboutMe,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(user)
}

// ListUsers handles GET /api/users
func (s *Server) ListUsers(c *fiber.Ctx) error {
	limit, offset := pageParams(c, s.config.PostsPerPage)
	users, err := s.users.ListUsers(c.UserContext(), limit, offset)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	views := make([]models.UserJSON, 0, len(users))
	for i := range users {
		view, err := s.users.APIView(c.UserContext(), &users[i])
		if err != nil {
			return models.RespondWithError(c, models.StatusForError(err), err)
		}
		views = append(views, view)
	}
	return c.JSON(views)
}

// GetUser handles GET /api/users/:id and serves the read-only JSON
// contract, cached in Redis for a short window.
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid user ID"))
	}

	var view models.UserJSON
	cacheErr := cache.CacheAside(c.UserContext(), fmt.Sprintf("user:%d:api", id), &view, 30*time.Second, func() error {
		user, err := s.users.GetUserByID(c.UserContext(), uint(id))
		if err != nil {
			return err
		}
		view, err = s.users.APIView(c.UserContext(), user)
		return err
	})
	if cacheErr != nil {
		return models.RespondWithError(c, models.StatusForError(cacheErr), cacheErr)
	}

	return c.JSON(view)
}

// GetUserPosts handles GET /api/users/:id/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid user ID"))
	}

	if _, err := s.users.GetUserByID(c.UserContext(), uint(id)); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	limit, offset := pageParams(c, s.config.PostsPerPage)
	posts, err := s.posts.ListByAuthor(c.UserContext(), uint(id), limit, offset)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(posts)
}

// AssignRole handles POST /api/users/:id/role (admin only)
func (s *Server) AssignRole(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid user ID"))
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil || req.Role == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Role name is required"))
	}

	user, err := s.users.AssignRole(c.UserContext(), uint(id), req.Role)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(user)
}
