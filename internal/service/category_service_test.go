package service

import (
	"context"
	"errors"
	"testing"

	"github.com/estudiocobogo/catalogo-api/internal/model"
	"github.com/estudiocobogo/catalogo-api/internal/repository"
)

// fakeCategoryStore covers the category service surface including the
// cascade results, which the fake just reports back verbatim.
type fakeCategoryStore struct {
	byID        map[uint64]*model.Category
	nextID      uint64
	cascadeGone int64
	copied      int
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{byID: map[uint64]*model.Category{}}
}

func (f *fakeCategoryStore) seed(c model.Category) uint64 {
	f.nextID++
	c.ID = f.nextID
	f.byID[c.ID] = &c
	return c.ID
}

func (f *fakeCategoryStore) Create(_ context.Context, c *model.Category) error {
	for _, existing := range f.byID {
		if existing.Name == c.Name {
			return repository.ErrDuplicateName
		}
	}
	f.nextID++
	c.ID = f.nextID
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeCategoryStore) Update(_ context.Context, c *model.Category) error {
	if _, ok := f.byID[c.ID]; !ok {
		return repository.ErrCategoryNotFound
	}
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeCategoryStore) GetByID(_ context.Context, id uint64) (*model.Category, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCategoryStore) DeleteCascade(_ context.Context, id uint64) (int64, error) {
	if _, ok := f.byID[id]; !ok {
		return 0, repository.ErrCategoryNotFound
	}
	delete(f.byID, id)
	return f.cascadeGone, nil
}

func (f *fakeCategoryStore) DuplicateDeep(_ context.Context, id uint64) (*model.Category, int, error) {
	src, ok := f.byID[id]
	if !ok {
		return nil, 0, repository.ErrCategoryNotFound
	}
	dup := &model.Category{Name: src.Name + " (Copy)", SortOrder: src.SortOrder, Active: src.Active}
	f.nextID++
	dup.ID = f.nextID
	f.byID[dup.ID] = dup
	return dup, f.copied, nil
}

type fakeSubcategoryStore struct {
	byID   map[uint64]*model.Subcategory
	nextID uint64
}

func newFakeSubcategoryStore() *fakeSubcategoryStore {
	return &fakeSubcategoryStore{byID: map[uint64]*model.Subcategory{}}
}

func (f *fakeSubcategoryStore) Create(_ context.Context, s *model.Subcategory) error {
	f.nextID++
	s.ID = f.nextID
	cp := *s
	f.byID[s.ID] = &cp
	return nil
}

func (f *fakeSubcategoryStore) Update(_ context.Context, s *model.Subcategory) error {
	if _, ok := f.byID[s.ID]; !ok {
		return repository.ErrSubcategoryNotFound
	}
	cp := *s
	f.byID[s.ID] = &cp
	return nil
}

func (f *fakeSubcategoryStore) GetByID(_ context.Context, id uint64) (*model.Subcategory, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrSubcategoryNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSubcategoryStore) Delete(_ context.Context, id uint64) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrSubcategoryNotFound
	}
	delete(f.byID, id)
	return nil
}

func TestCategoryCreateRequiresName(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryStore(), newFakeSubcategoryStore())
	_, err := svc.Create(context.Background(), CategoryInput{Name: "  "})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "name" {
		t.Fatalf("expected name validation error, got %v", err)
	}
}

func TestCategoryCreateDuplicateName(t *testing.T) {
	store := newFakeCategoryStore()
	store.seed(model.Category{Name: "Cobogós"})
	svc := NewCategoryService(store, newFakeSubcategoryStore())

	_, err := svc.Create(context.Background(), CategoryInput{Name: "Cobogós"})
	if !errors.Is(err, repository.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestCategoryDeleteReportsCascadeCount(t *testing.T) {
	store := newFakeCategoryStore()
	id := store.seed(model.Category{Name: "Cobogós"})
	store.cascadeGone = 7
	svc := NewCategoryService(store, newFakeSubcategoryStore())

	deleted, err := svc.Delete(context.Background(), id)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted != 7 {
		t.Errorf("deleted = %d, want 7", deleted)
	}
}

func TestCategoryDeleteMissing(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryStore(), newFakeSubcategoryStore())
	if _, err := svc.Delete(context.Background(), 99); !errors.Is(err, repository.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCategoryDuplicateReportsCopiedCount(t *testing.T) {
	store := newFakeCategoryStore()
	id := store.seed(model.Category{Name: "Cobogós", Active: true})
	store.copied = 3
	svc := NewCategoryService(store, newFakeSubcategoryStore())

	dup, copied, err := svc.Duplicate(context.Background(), id)
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	if dup.Name != "Cobogós (Copy)" {
		t.Errorf("name = %q, want Cobogós (Copy)", dup.Name)
	}
	if copied != 3 {
		t.Errorf("copied = %d, want 3", copied)
	}
}

func TestCreateSubcategoryUnknownParent(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryStore(), newFakeSubcategoryStore())
	_, err := svc.CreateSubcategory(context.Background(), SubcategoryInput{CategoryID: 42, Name: "Linha Lua"})
	if !errors.Is(err, repository.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestEditSubcategoryReparentChecksTarget(t *testing.T) {
	cats := newFakeCategoryStore()
	parent := cats.seed(model.Category{Name: "Cobogós"})
	subs := newFakeSubcategoryStore()
	svc := NewCategoryService(cats, subs)

	sub, err := svc.CreateSubcategory(context.Background(), SubcategoryInput{CategoryID: parent, Name: "Linha Lua"})
	if err != nil {
		t.Fatalf("create subcategory: %v", err)
	}

	_, err = svc.EditSubcategory(context.Background(), sub.ID, SubcategoryInput{CategoryID: 99, Name: "Linha Lua"})
	if !errors.Is(err, repository.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound for unknown target, got %v", err)
	}

	other := cats.seed(model.Category{Name: "Revestimentos"})
	moved, err := svc.EditSubcategory(context.Background(), sub.ID, SubcategoryInput{CategoryID: other, Name: "Linha Lua"})
	if err != nil {
		t.Fatalf("edit subcategory: %v", err)
	}
	if moved.CategoryID != other {
		t.Errorf("category_id = %d, want %d", moved.CategoryID, other)
	}
}
