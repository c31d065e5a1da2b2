package service

import (
	"context"

	"github.com/civicmap/backend/internal/model"
	"github.com/civicmap/backend/internal/repository"
)

// CategoryService manages one category registry. Construct one instance
// per domain (message categories, event categories) around the matching
// repository.
type CategoryService interface {
	Create(ctx context.Context, cat *model.Category) error
	Update(ctx context.Context, id int64, patch model.CategoryPatch) error
	List(ctx context.Context) ([]*model.Category, error)
	Get(ctx context.Context, id int64) (*model.Category, error)
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)
}

// CategoryServiceImpl is the CategoryService implementation.
type CategoryServiceImpl struct {
	repo repository.CategoryRepository
}

// NewCategoryService creates a CategoryServiceImpl.
func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &CategoryServiceImpl{repo: repo}
}

// Create stores a new category. Name is the only required field.
func (s *CategoryServiceImpl) Create(ctx context.Context, cat *model.Category) error {
	if cat.Name == "" {
		return &ValidationError{Field: "name"}
	}
	return s.repo.Create(ctx, cat)
}

// Update applies a partial update to a category.
func (s *CategoryServiceImpl) Update(ctx context.Context, id int64, patch model.CategoryPatch) error {
	if patch.Name != nil && *patch.Name == "" {
		return &ValidationError{Field: "name"}
	}
	return s.repo.Update(ctx, id, patch)
}

// List returns all categories ascending by their order field.
func (s *CategoryServiceImpl) List(ctx context.Context) ([]*model.Category, error) {
	return s.repo.List(ctx)
}

// Get returns one category by id.
func (s *CategoryServiceImpl) Get(ctx context.Context, id int64) (*model.Category, error) {
	return s.repo.FindByID(ctx, id)
}

// GetBySlug returns one category by its URL-safe identifier.
func (s *CategoryServiceImpl) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	return s.repo.FindBySlug(ctx, slug)
}
