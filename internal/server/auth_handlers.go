package server

import (
	"scribe/internal/models"
	"scribe/internal/observability"
	"scribe/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /api/auth/register. The account starts
// inactive; mail delivery is out of scope, so the activation token is
// returned in the response for the caller to deliver.
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, activation, err := s.auth.Register(c.UserContext(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	authToken, err := s.auth.IssueAuthToken(user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	observability.RegistrationsTotal.Inc()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":             user,
		"token":            authToken,
		"activation_token": activation,
	})
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, authToken, err := s.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(fiber.Map{
		"token": authToken,
		"user":  user,
	})
}

// Activate handles POST /api/auth/activate. Any invalid token answers
// with the same failure regardless of cause.
func (s *Server) Activate(c *fiber.Ctx) error {
	var req struct {
		Token string `json:"token"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user := currentUser(c)
	if !s.auth.Activate(c.UserContext(), user, req.Token) {
		observability.TokenVerificationFailures.WithLabelValues("confirm").Inc()
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid or expired activation token"))
	}

	observability.ActivationsTotal.Inc()
	return c.JSON(fiber.Map{"active": true})
}

// ResendActivation handles POST /api/auth/resend
func (s *Server) ResendActivation(c *fiber.Ctx) error {
	user := currentUser(c)
	if user.Active {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Account is already active"))
	}

	activation, err := s.auth.IssueActivationToken(user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{"activation_token": activation})
}
