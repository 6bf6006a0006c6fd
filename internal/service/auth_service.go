package service

import (
	"context"
	"time"

	"scribe/internal/config"
	"scribe/internal/models"
	"scribe/internal/repository"
	"scribe/internal/token"
)

// AuthService handles registration, login and the token lifecycle.
type AuthService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	tokens   *token.Service
	cfg      *config.Config
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	// RoleName optionally pins a role; when empty the admin-address
	// match and then the default role decide.
	RoleName string
}

func NewAuthService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	tokens *token.Service,
	cfg *config.Config,
) *AuthService {
	return &AuthService{userRepo: userRepo, roleRepo: roleRepo, tokens: tokens, cfg: cfg}
}

// Register creates an inactive user and returns it with an activation
// token. Role assignment: explicit role, else `admin` when the email
// matches the configured administrator address, else the default role;
// with no default role seeded the user simply has no role and every
// permission check denies.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, "", models.NewValidationError("username, email, and password are required")
	}

	role, err := s.resolveRole(ctx, in)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
	}
	if role != nil {
		user.RoleID = &role.ID
		user.Role = role
	}
	if err := user.SetPassword(in.Password); err != nil {
		return nil, "", err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	activation, err := s.tokens.Issue(token.PurposeActivate, user.ID, s.cfg.ActivationTTL())
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}

	return user, activation, nil
}

func (s *AuthService) resolveRole(ctx context.Context, in RegisterInput) (*models.Role, error) {
	if in.RoleName != "" {
		role, err := s.roleRepo.GetByName(ctx, in.RoleName)
		if err != nil {
			return nil, err
		}
		if role == nil {
			return nil, models.NewValidationError("unknown role " + in.RoleName)
		}
		return role, nil
	}
	if s.cfg.AdminAddress != "" && in.Email == s.cfg.AdminAddress {
		if role, err := s.roleRepo.GetByName(ctx, "admin"); err != nil || role != nil {
			return role, err
		}
	}
	return s.roleRepo.GetDefault(ctx)
}

// Login verifies credentials and returns the user with an auth token.
// Both unknown email and wrong password collapse to the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil || !user.VerifyPassword(password) {
		return nil, "", models.NewUnauthorizedError("invalid credentials")
	}

	authToken, err := s.IssueAuthToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, authToken, nil
}

// IssueAuthToken creates a stateless identity token for the user.
func (s *AuthService) IssueAuthToken(user *models.User) (string, error) {
	t, err := s.tokens.Issue(token.PurposeAuth, user.ID, s.cfg.AuthTTL())
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return t, nil
}

// IssueActivationToken re-issues an activation token for an existing user.
func (s *AuthService) IssueActivationToken(user *models.User) (string, error) {
	t, err := s.tokens.Issue(token.PurposeActivate, user.ID, s.cfg.ActivationTTL())
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return t, nil
}

// Activate consumes an activation token for the user. It fails closed:
// malformed, tampered, expired, and wrong-user tokens all report false.
// Activating an already-active user again succeeds; the token itself is
// never invalidated and stays replayable until expiry.
func (s *AuthService) Activate(ctx context.Context, user *models.User, tokenString string) bool {
	id, ok := s.tokens.Verify(token.PurposeActivate, tokenString)
	if !ok || id != user.ID {
		return false
	}
	if user.Active {
		return true
	}
	user.Active = true
	if err := s.userRepo.Update(ctx, user); err != nil {
		user.Active = false
		return false
	}
	return true
}

// VerifyAuthToken resolves an auth token to its user, or nil for any
// invalid, expired or unknown-user token. It never returns an error
// that distinguishes the failure cause.
func (s *AuthService) VerifyAuthToken(ctx context.Context, tokenString string) *models.User {
	id, ok := s.tokens.Verify(token.PurposeAuth, tokenString)
	if !ok {
		return nil
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil
	}
	return user
}

// Seen records request activity for the user.
func (s *AuthService) Seen(ctx context.Context, userID uint) error {
	return s.userRepo.TouchLastSeen(ctx, userID, time.Now().UTC())
}
