package repository

import (
	"context"
	"errors"

	"scribe/internal/models"

	"gorm.io/gorm"
)

// DemoRepository defines the interface for gallery entries and their images
type DemoRepository interface {
	Create(ctx context.Context, demo *models.Demo) error
	GetByID(ctx context.Context, id uint) (*models.Demo, error)
	GetBySlug(ctx context.Context, slug string) (*models.Demo, error)
	List(ctx context.Context, limit, offset int) ([]*models.Demo, error)
	Update(ctx context.Context, demo *models.Demo) error
	Delete(ctx context.Context, id uint) error

	CreateImage(ctx context.Context, image *models.Image) error
	GetImageByFilename(ctx context.Context, filename string) (*models.Image, error)
	DeleteImage(ctx context.Context, id uint) error
}

type demoRepository struct {
	db *gorm.DB
}

// NewDemoRepository creates a new demo repository
func NewDemoRepository(db *gorm.DB) DemoRepository {
	return &demoRepository{db: db}
}

func (r *demoRepository) Create(ctx context.Context, demo *models.Demo) error {
	if err := r.db.WithContext(ctx).Create(demo).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *demoRepository) GetByID(ctx context.Context, id uint) (*models.Demo, error) {
	var demo models.Demo
	if err := r.db.WithContext(ctx).Preload("Thumbnail").First(&demo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("demo", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &demo, nil
}

func (r *demoRepository) GetBySlug(ctx context.Context, slug string) (*models.Demo, error) {
	var demo models.Demo
	if err := r.db.WithContext(ctx).Preload("Thumbnail").Where("slug = ?", slug).First(&demo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("demo", slug)
		}
		return nil, models.NewInternalError(err)
	}
	return &demo, nil
}

func (r *demoRepository) List(ctx context.Context, limit, offset int) ([]*models.Demo, error) {
	var demos []*models.Demo
	err := r.db.WithContext(ctx).
		Preload("Thumbnail").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&demos).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return demos, nil
}

func (r *demoRepository) Update(ctx context.Context, demo *models.Demo) error {
	if err := r.db.WithContext(ctx).Save(demo).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *demoRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Demo{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *demoRepository) CreateImage(ctx context.Context, image *models.Image) error {
	return translateWriteError(
		r.db.WithContext(ctx).Create(image).Error,
		"image", "filename already exists")
}

func (r *demoRepository) GetImageByFilename(ctx context.Context, filename string) (*models.Image, error) {
	var image models.Image
	if err := r.db.WithContext(ctx).Where("filename = ?", filename).First(&image).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("image", filename)
		}
		return nil, models.NewInternalError(err)
	}
	return &image, nil
}

func (r *demoRepository) DeleteImage(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Image{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
