package service

import (
	"context"

	"scribe/internal/models"
	"scribe/internal/repository"

	"github.com/gosimple/slug"
)

// DemoService implements the gallery: demo entries plus their stored
// images, a plain filename→bytes store.
type DemoService struct {
	demoRepo repository.DemoRepository
}

type CreateDemoInput struct {
	Title       string
	Summary     string
	Body        string
	ThumbnailID *uint
}

type UpdateDemoInput struct {
	DemoID      uint
	Title       string
	Summary     string
	Body        string
	ThumbnailID *uint
}

func NewDemoService(demoRepo repository.DemoRepository) *DemoService {
	return &DemoService{demoRepo: demoRepo}
}

func (s *DemoService) CreateDemo(ctx context.Context, in CreateDemoInput) (*models.Demo, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("title is required")
	}
	demo := &models.Demo{
		Title:       in.Title,
		Slug:        slug.Make(in.Title),
		Summary:     in.Summary,
		Body:        in.Body,
		ThumbnailID: in.ThumbnailID,
	}
	if err := s.demoRepo.Create(ctx, demo); err != nil {
		return nil, err
	}
	return s.demoRepo.GetByID(ctx, demo.ID)
}

func (s *DemoService) UpdateDemo(ctx context.Context, in UpdateDemoInput) (*models.Demo, error) {
	demo, err := s.demoRepo.GetByID(ctx, in.DemoID)
	if err != nil {
		return nil, err
	}
	if in.Title != "" {
		demo.Title = in.Title
		demo.Slug = slug.Make(in.Title)
	}
	if in.Summary != "" {
		demo.Summary = in.Summary
	}
	if in.Body != "" {
		demo.Body = in.Body
	}
	if in.ThumbnailID != nil {
		demo.ThumbnailID = in.ThumbnailID
	}
	if err := s.demoRepo.Update(ctx, demo); err != nil {
		return nil, err
	}
	return s.demoRepo.GetByID(ctx, demo.ID)
}

func (s *DemoService) DeleteDemo(ctx context.Context, id uint) error {
	if _, err := s.demoRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.demoRepo.Delete(ctx, id)
}

func (s *DemoService) GetBySlug(ctx context.Context, slug string) (*models.Demo, error) {
	return s.demoRepo.GetBySlug(ctx, slug)
}

func (s *DemoService) List(ctx context.Context, limit, offset int) ([]*models.Demo, error) {
	return s.demoRepo.List(ctx, limit, offset)
}

// UploadImage stores raw bytes under a unique filename. A duplicate
// filename surfaces as a conflict.
func (s *DemoService) UploadImage(ctx context.Context, filename string, data []byte, altText string) (*models.Image, error) {
	if filename == "" {
		return nil, models.NewValidationError("filename is required")
	}
	if len(data) == 0 {
		return nil, models.NewValidationError("image data is required")
	}
	image := &models.Image{
		Filename: filename,
		Data:     data,
		AltText:  altText,
	}
	if err := s.demoRepo.CreateImage(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *DemoService) GetImage(ctx context.Context, filename string) (*models.Image, error) {
	return s.demoRepo.GetImageByFilename(ctx, filename)
}
