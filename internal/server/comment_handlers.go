package server

import (
	"scribe/internal/models"
	"scribe/internal/observability"
	"scribe/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetThread handles GET /api/posts/:id/comments and returns the
// comment forest for a post. Disabled comments stay in the tree with
// their body hidden unless the requester may moderate.
func (s *Server) GetThread(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid post ID"))
	}

	limit, offset := pageParams(c, s.config.CommentsPerPage)
	thread, err := s.comments.Thread(c.UserContext(), uint(id), limit, offset)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	if !currentIdentity(c).Can(models.PermModerate) {
		for _, root := range thread {
			hideDisabled(root)
		}
	}
	return c.JSON(thread)
}

// hideDisabled blanks the bodies of disabled comments in place.
func hideDisabled(node *models.CommentNode) {
	if node.Comment.Disabled {
		node.Comment.Body = ""
		node.Comment.BodyHTML = ""
	}
	for _, child := range node.Children {
		hideDisabled(child)
	}
}

// CreateComment handles POST /api/posts/:id/comments (requires COMMENT)
func (s *Server) CreateComment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid post ID"))
	}

	var req struct {
		Body     string `json:"body"`
		ParentID *uint  `json:"parent_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.comments.PostComment(c.UserContext(), service.CreateCommentInput{
		PostID:   uint(id),
		AuthorID: currentUser(c).ID,
		Body:     req.Body,
		ParentID: req.ParentID,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	observability.CommentsTotal.WithLabelValues("create").Inc()
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// UpdateComment handles PUT /api/comments/:id (author only)
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid comment ID"))
	}

	var req struct {
		Body string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.comments.EditComment(c.UserContext(), service.EditCommentInput{
		CommentID: uint(id),
		EditorID:  currentUser(c).ID,
		Body:      req.Body,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	observability.CommentsTotal.WithLabelValues("edit").Inc()
	return c.JSON(comment)
}

// DisableComment handles POST /api/comments/:id/disable (requires MODERATE)
func (s *Server) DisableComment(c *fiber.Ctx) error {
	return s.setCommentDisabled(c, true, "disable")
}

// EnableComment handles POST /api/comments/:id/enable (requires MODERATE)
func (s *Server) EnableComment(c *fiber.Ctx) error {
	return s.setCommentDisabled(c, false, "enable")
}

func (s *Server) setCommentDisabled(c *fiber.Ctx, disabled bool, action string) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid comment ID"))
	}

	comment, err := s.comments.SetDisabled(c.UserContext(), uint(id), disabled)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	observability.CommentsTotal.WithLabelValues(action).Inc()
	return c.JSON(comment)
}
