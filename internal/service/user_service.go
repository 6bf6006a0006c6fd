package service

import (
	"context"

	"scribe/internal/models"
	"scribe/internal/repository"
)

// UserService implements profile and role management.
type UserService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	postRepo repository.PostRepository
}

type UpdateProfileInput struct {
	UserID   uint
	Name     string
	Location string
	AboutMe  string
}

func NewUserService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	postRepo repository.PostRepository,
) *UserService {
	return &UserService{userRepo: userRepo, roleRepo: roleRepo, postRepo: postRepo}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// APIView builds the external JSON contract for a user, including the
// live post count.
func (s *UserService) APIView(ctx context.Context, user *models.User) (models.UserJSON, error) {
	count, err := s.postRepo.CountByAuthor(ctx, user.ID)
	if err != nil {
		return models.UserJSON{}, err
	}
	return user.APIView(count), nil
}

// UpdateProfile edits the free-form profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxFieldLen = 64
	if in.Name != "" {
		if len(in.Name) > maxFieldLen {
			return nil, models.NewValidationError("name too long (max 64 characters)")
		}
		user.Name = in.Name
	}
	if in.Location != "" {
		if len(in.Location) > maxFieldLen {
			return nil, models.NewValidationError("location too long (max 64 characters)")
		}
		user.Location = in.Location
	}
	if in.AboutMe != "" {
		user.AboutMe = in.AboutMe
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AssignRole moves a user onto the named role.
func (s *UserService) AssignRole(ctx context.Context, targetID uint, roleName string) (*models.User, error) {
	role, err := s.roleRepo.GetByName(ctx, roleName)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, models.NewValidationError("unknown role " + roleName)
	}

	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	user.RoleID = &role.ID
	user.Role = role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
