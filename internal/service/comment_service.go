package service

import (
	"context"
	"time"

	"scribe/internal/models"
	"scribe/internal/repository"
)

const maxCommentLen = 10000

// CommentService implements comment threading and moderation.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type CreateCommentInput struct {
	PostID   uint
	AuthorID uint
	Body     string
	ParentID *uint
}

type EditCommentInput struct {
	CommentID uint
	EditorID  uint
	Body      string
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

// PostComment creates a comment on a post, optionally nested under a
// parent comment of the same post. The rendered body is derived at
// write time; a fresh comment has no edit time.
func (s *CommentService) PostComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}
	if in.Body == "" {
		return nil, models.NewValidationError("body is required")
	}
	if len(in.Body) > maxCommentLen {
		return nil, models.NewValidationError("comment too long (max 10000 characters)")
	}

	if in.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != in.PostID {
			return nil, models.NewValidationError("parent comment belongs to a different post")
		}
	}

	comment := &models.Comment{
		PostID:   in.PostID,
		AuthorID: in.AuthorID,
		Body:     in.Body,
		BodyHTML: models.RenderBody(in.Body),
		ParentID: in.ParentID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// EditComment replaces the body, re-derives the rendered body, and
// stamps the edit time. Only the author may edit.
func (s *CommentService) EditComment(ctx context.Context, in EditCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != in.EditorID {
		return nil, models.NewForbiddenError("you can only edit your own comments")
	}
	if in.Body == "" {
		return nil, models.NewValidationError("body is required")
	}
	if len(in.Body) > maxCommentLen {
		return nil, models.NewValidationError("comment too long (max 10000 characters)")
	}

	now := time.Now().UTC()
	comment.Body = in.Body
	comment.BodyHTML = models.RenderBody(in.Body)
	comment.EditTime = &now

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// Thread returns the post's comment forest. Roots are paginated after
// assembly; replies always travel with their root.
func (s *CommentService) Thread(ctx context.Context, postID uint, limit, offset int) ([]*models.CommentNode, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	roots := models.BuildThread(comments)
	if offset >= len(roots) {
		return []*models.CommentNode{}, nil
	}
	roots = roots[offset:]
	if limit > 0 && limit < len(roots) {
		roots = roots[:limit]
	}
	return roots, nil
}

// SetDisabled flips moderation state on a comment. Permission checks
// (MODERATE) happen at the transport layer.
func (s *CommentService) SetDisabled(ctx context.Context, commentID uint, disabled bool) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.Disabled == disabled {
		return comment, nil
	}
	comment.Disabled = disabled
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
