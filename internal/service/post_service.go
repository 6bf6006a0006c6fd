package service

import (
	"context"

	"scribe/internal/models"
	"scribe/internal/repository"

	"github.com/gosimple/slug"
)

// PostService implements blog post operations.
type PostService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	AuthorID uint
	Title    string
	Body     string
	Summary  string
}

type UpdatePostInput struct {
	PostID   uint
	EditorID uint
	IsAdmin  bool
	Title    string
	Body     string
	Summary  string
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// CreatePost publishes a post with a slug derived from its title. A
// title colliding with an existing slug surfaces as a conflict.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Title == "" || in.Body == "" {
		return nil, models.NewValidationError("title and body are required")
	}

	post := &models.Post{
		Title:    in.Title,
		Slug:     slug.Make(in.Title),
		AuthorID: in.AuthorID,
		Body:     in.Body,
		Summary:  in.Summary,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// UpdatePost edits title/body/summary. The slug stays stable so links
// never break. Only the author or an admin may edit.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != in.EditorID && !in.IsAdmin {
		return nil, models.NewForbiddenError("you can only edit your own posts")
	}

	if in.Title != "" {
		post.Title = in.Title
	}
	if in.Body != "" {
		post.Body = in.Body
	}
	if in.Summary != "" {
		post.Summary = in.Summary
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// DeletePost removes a post and its comments. Only the author or an
// admin may delete.
func (s *PostService) DeletePost(ctx context.Context, postID, requesterID uint, isAdmin bool) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != requesterID && !isAdmin {
		return models.NewForbiddenError("you can only delete your own posts")
	}
	return s.postRepo.DeleteWithComments(ctx, postID)
}

func (s *PostService) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return s.postRepo.GetBySlug(ctx, slug)
}

func (s *PostService) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.List(ctx, limit, offset)
}

func (s *PostService) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.ListByAuthor(ctx, authorID, limit, offset)
}
