package server

import (
	"io"
	"net/http"

	"scribe/internal/models"
	"scribe/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListDemos handles GET /api/demos
func (s *Server) ListDemos(c *fiber.Ctx) error {
	limit, offset := pageParams(c, s.config.PostsPerPage)
	demos, err := s.demos.List(c.UserContext(), limit, offset)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(demos)
}

// GetDemo handles GET /api/demos/:slug
func (s *Server) GetDemo(c *fiber.Ctx) error {
	demo, err := s.demos.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(demo)
}

// CreateDemo handles POST /api/demos (admin only)
func (s *Server) CreateDemo(c *fiber.Ctx) error {
	var req struct {
		Title       string `json:"title"`
		Summary     string `json:"summary"`
		Body        string `json:"body"`
		ThumbnailID *uint  `json:"thumbnail_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	demo, err := s.demos.CreateDemo(c.UserContext(), service.CreateDemoInput{
		Title:       req.Title,
		Summary:     req.Summary,
		Body:        req.Body,
		ThumbnailID: req.ThumbnailID,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(demo)
}

// UpdateDemo handles PUT /api/demos/:id (admin only)
func (s *Server) UpdateDemo(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid demo ID"))
	}

	var req struct {
		Title       string `json:"title"`
		Summary     string `json:"summary"`
		Body        string `json:"body"`
		ThumbnailID *uint  `json:"thumbnail_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	demo, err := s.demos.UpdateDemo(c.UserContext(), service.UpdateDemoInput{
		DemoID:      uint(id),
		Title:       req.Title,
		Summary:     req.Summary,
		Body:        req.Body,
		ThumbnailID: req.ThumbnailID,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(demo)
}

// DeleteDemo handles DELETE /api/demos/:id (admin only)
func (s *Server) DeleteDemo(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid demo ID"))
	}

	if err := s.demos.DeleteDemo(c.UserContext(), uint(id)); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// UploadImage handles POST /api/images (admin only, multipart form
// with an "image" file and optional "alt_text" field).
func (s *Server) UploadImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Image file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read image file"))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read image file"))
	}

	image, err := s.demos.UploadImage(c.UserContext(), fileHeader.Filename, data, c.FormValue("alt_text"))
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(image)
}

// GetImage handles GET /api/images/:filename and serves the raw bytes.
func (s *Server) GetImage(c *fiber.Ctx) error {
	image, err := s.demos.GetImage(c.UserContext(), c.Params("filename"))
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	c.Set("Content-Type", http.DetectContentType(image.Data))
	return c.Send(image.Data)
}
