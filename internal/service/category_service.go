package service

import (
	"context"
	"strings"

	"github.com/estudiocobogo/catalogo-api/internal/model"
)

// CategoryStore is the persistence surface the category service needs.
// *repository.CategoryRepo satisfies it.  DeleteCascade and
// DuplicateDeep are transactional in the repository: either the whole
// cascade lands or none of it does.
type CategoryStore interface {
	Create(ctx context.Context, c *model.Category) error
	Update(ctx context.Context, c *model.Category) error
	GetByID(ctx context.Context, id uint64) (*model.Category, error)
	DeleteCascade(ctx context.Context, id uint64) (int64, error)
	DuplicateDeep(ctx context.Context, id uint64) (*model.Category, int, error)
}

// SubcategoryStore is the persistence surface for subcategory CRUD.
// *repository.SubcategoryRepo satisfies it.
type SubcategoryStore interface {
	Create(ctx context.Context, s *model.Subcategory) error
	Update(ctx context.Context, s *model.Subcategory) error
	GetByID(ctx context.Context, id uint64) (*model.Subcategory, error)
	Delete(ctx context.Context, id uint64) error
}

// CategoryInput is the field set accepted by category create and edit.
type CategoryInput struct {
	Name      string
	SortOrder int
	Active    bool
}

// CategoryService implements the category lifecycle including the
// destructive cascade operations.
type CategoryService struct {
	categories    CategoryStore
	subcategories SubcategoryStore
}

// NewCategoryService wires the service to its stores.
func NewCategoryService(categories CategoryStore, subcategories SubcategoryStore) *CategoryService {
	return &CategoryService{categories: categories, subcategories: subcategories}
}

// Create persists a new category.  Name is required.
func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, missing("name")
	}
	c := &model.Category{Name: name, SortOrder: in.SortOrder, Active: in.Active}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Edit updates an existing category's fields.
func (s *CategoryService) Edit(ctx context.Context, id uint64, in CategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, missing("name")
	}
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = name
	c.SortOrder = in.SortOrder
	c.Active = in.Active
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a category and every product referencing it, and
// reports how many products went with it.  The cascade is
// all-or-nothing; a failure leaves both the category and its products
// in place.
func (s *CategoryService) Delete(ctx context.Context, id uint64) (int64, error) {
	return s.categories.DeleteCascade(ctx, id)
}

// Duplicate copies a category and all of its products, returning the
// new category and the number of products copied.
func (s *CategoryService) Duplicate(ctx context.Context, id uint64) (*model.Category, int, error) {
	return s.categories.DuplicateDeep(ctx, id)
}

// SubcategoryInput is the field set accepted by subcategory create and edit.
type SubcategoryInput struct {
	CategoryID uint64
	Name       string
	SortOrder  int
	Active     bool
}

// CreateSubcategory adds a subcategory under an existing category.
func (s *CategoryService) CreateSubcategory(ctx context.Context, in SubcategoryInput) (*model.Subcategory, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, missing("name")
	}
	if _, err := s.categories.GetByID(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	sub := &model.Subcategory{CategoryID: in.CategoryID, Name: name, SortOrder: in.SortOrder, Active: in.Active}
	if err := s.subcategories.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// EditSubcategory updates a subcategory, optionally moving it to a
// different parent category.
func (s *CategoryService) EditSubcategory(ctx context.Context, id uint64, in SubcategoryInput) (*model.Subcategory, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, missing("name")
	}
	sub, err := s.subcategories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.CategoryID != 0 && in.CategoryID != sub.CategoryID {
		if _, err := s.categories.GetByID(ctx, in.CategoryID); err != nil {
			return nil, err
		}
		sub.CategoryID = in.CategoryID
	}
	sub.Name = name
	sub.SortOrder = in.SortOrder
	sub.Active = in.Active
	if err := s.subcategories.Update(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// DeleteSubcategory removes a subcategory.  Products are unaffected.
func (s *CategoryService) DeleteSubcategory(ctx context.Context, id uint64) error {
	return s.subcategories.Delete(ctx, id)
}
