package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/estudiocobogo/catalogo-api/internal/catalog"
	"github.com/estudiocobogo/catalogo-api/internal/model"
	"github.com/estudiocobogo/catalogo-api/internal/repository"
	"github.com/estudiocobogo/catalogo-api/internal/storage"
)

// maxSlugAttempts bounds the commit-time retry loop when concurrent
// writers keep winning slug candidates.  Exhaustion surfaces the
// underlying ErrSlugTaken as a constraint violation.
const maxSlugAttempts = 20

// ProductStore is the persistence surface the product service needs.
// *repository.ProductRepo satisfies it.
type ProductStore interface {
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, p *model.Product) error
	GetByID(ctx context.Context, id uint64) (*model.Product, error)
	Delete(ctx context.Context, id uint64) error
	SlugExists(ctx context.Context, slug string, excludeID uint64) (bool, error)
}

// CategoryGetter resolves category references on product input.
// *repository.CategoryRepo satisfies it.
type CategoryGetter interface {
	GetByID(ctx context.Context, id uint64) (*model.Category, error)
}

// Upload carries the bytes of one uploaded image slot.
type Upload struct {
	Filename string
	Data     []byte
}

// ProductInput is the field set accepted by create and edit.
type ProductInput struct {
	Name           string
	Slug           string
	Description    string
	CategoryID     uint64
	CategoryLabel  string
	Tag            string
	ImageFilename  string
	Dimensions     string
	Color          string
	SaleUnit       string
	Specifications string
	Active         bool
	SortOrder      int
}

// ProductService implements the product lifecycle: create, edit,
// duplicate and delete.
type ProductService struct {
	products   ProductStore
	categories CategoryGetter
	assets     storage.AssetStore
}

// NewProductService wires the service to its stores.  assets may be nil
// when no asset backend is configured; uploads then fail cleanly and
// removals only clear the slot.
func NewProductService(products ProductStore, categories CategoryGetter, assets storage.AssetStore) *ProductService {
	return &ProductService{products: products, categories: categories, assets: assets}
}

// Create builds and persists a new product.  Name is required; the tag
// defaults when blank; a supplied slug is honored only when URL-safe,
// otherwise it is generated from the name.  Uploaded slots are stored
// before the insert and a storage failure aborts the whole operation.
func (s *ProductService) Create(ctx context.Context, in ProductInput, uploads map[int]Upload) (*model.Product, error) {
	p, err := s.fromInput(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.attachUploads(ctx, p, uploads); err != nil {
		return nil, err
	}
	if err := s.saveWithSlug(ctx, p, "", false, func() error {
		return s.products.Create(ctx, p)
	}); err != nil {
		return nil, err
	}
	return p, nil
}

// Edit loads a product, applies field updates, attaches new uploads
// (overwriting the slot reference) and clears slots whose removal flag
// is set.  Removing a slot deletes the stored asset best-effort: a
// storage failure is logged and swallowed, never propagated.
func (s *ProductService) Edit(ctx context.Context, id uint64, in ProductInput, uploads map[int]Upload, removals [3]bool) (*model.Product, error) {
	existing, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p, err := s.fromInput(ctx, in)
	if err != nil {
		return nil, err
	}
	p.ID = existing.ID
	p.Image1, p.Image2, p.Image3 = existing.Image1, existing.Image2, existing.Image3
	p.CreatedAt, p.UpdatedAt = existing.CreatedAt, existing.UpdatedAt

	slots := [3]*string{&p.Image1, &p.Image2, &p.Image3}
	for i, remove := range removals {
		if !remove || *slots[i] == "" {
			continue
		}
		if s.assets != nil {
			if err := s.assets.Delete(ctx, *slots[i]); err != nil {
				log.Printf("product %d: best-effort delete of image_%d failed: %v", id, i+1, err)
			}
		}
		*slots[i] = ""
	}
	if err := s.attachUploads(ctx, p, uploads); err != nil {
		return nil, err
	}

	if err := s.saveWithSlug(ctx, p, existing.Name, true, func() error {
		return s.products.Update(ctx, p)
	}); err != nil {
		return nil, err
	}
	return p, nil
}

// Duplicate copies a product under the name "<original> (Copy)".  The
// slug is regenerated from scratch and image references are shared with
// the source; the underlying assets are not copied.
func (s *ProductService) Duplicate(ctx context.Context, id uint64) (*model.Product, error) {
	src, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cp := *src
	cp.ID = 0
	cp.Name = fmt.Sprintf("%s (Copy)", src.Name)
	cp.Slug = ""
	if err := s.saveWithSlug(ctx, &cp, "", false, func() error {
		return s.products.Create(ctx, &cp)
	}); err != nil {
		return nil, err
	}
	return &cp, nil
}

// Delete removes a product permanently.  Stored assets are left in
// place because duplicates may share them.
func (s *ProductService) Delete(ctx context.Context, id uint64) error {
	if _, err := s.products.GetByID(ctx, id); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}

// fromInput validates the field set and builds an unsaved product.
func (s *ProductService) fromInput(ctx context.Context, in ProductInput) (*model.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, missing("name")
	}
	if in.CategoryID != 0 {
		if _, err := s.categories.GetByID(ctx, in.CategoryID); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return nil, &ValidationError{Field: "category_id", Reason: "unknown category"}
			}
			return nil, err
		}
	}
	tag := strings.TrimSpace(in.Tag)
	if tag == "" {
		tag = model.DefaultTag
	}
	return &model.Product{
		Name:           name,
		Slug:           strings.TrimSpace(in.Slug),
		Description:    in.Description,
		CategoryID:     in.CategoryID,
		CategoryLabel:  strings.TrimSpace(in.CategoryLabel),
		Tag:            tag,
		ImageFilename:  strings.TrimSpace(in.ImageFilename),
		Dimensions:     strings.TrimSpace(in.Dimensions),
		Color:          strings.TrimSpace(in.Color),
		SaleUnit:       strings.TrimSpace(in.SaleUnit),
		Specifications: in.Specifications,
		Active:         in.Active,
		SortOrder:      in.SortOrder,
	}, nil
}

// attachUploads stores each uploaded slot and writes its URL into the
// matching image field.  Upload failures are fatal for the operation.
func (s *ProductService) attachUploads(ctx context.Context, p *model.Product, uploads map[int]Upload) error {
	if len(uploads) == 0 {
		return nil
	}
	if s.assets == nil {
		return fmt.Errorf("image upload requested but no asset store is configured")
	}
	slots := map[int]*string{1: &p.Image1, 2: &p.Image2, 3: &p.Image3}
	for slot := 1; slot <= 3; slot++ {
		up, ok := uploads[slot]
		if !ok {
			continue
		}
		url, err := s.assets.Store(ctx, up.Data, fmt.Sprintf("image_%d", slot))
		if err != nil {
			return fmt.Errorf("store image_%d: %w", slot, err)
		}
		*slots[slot] = url
	}
	return nil
}

// saveWithSlug applies the slug policy around a save closure.  When the
// stored slug must be (re)computed — empty, invalid, or the name of an
// existing product changed — a unique candidate is picked with the
// pre-insert existence check, then the save runs.  The database unique
// constraint remains authoritative: if a concurrent writer takes the
// candidate between check and commit, the disambiguator is bumped and
// the save retried.  A caller-supplied valid slug is saved as-is and a
// collision on it is returned to the caller unchanged.
func (s *ProductService) saveWithSlug(ctx context.Context, p *model.Product, persistedName string, exists bool, save func() error) error {
	owned := catalog.NeedsSlug(p.Slug, persistedName, p.Name, exists)
	var base string
	n := 0
	if owned {
		base = catalog.BaseSlug(p.Name)
		if base == "" {
			base = "product"
		}
		var err error
		if n, err = s.nextFreeSuffix(ctx, base, 0, p.ID); err != nil {
			return err
		}
		p.Slug = catalog.CandidateSlug(base, n)
	}
	for attempt := 0; ; attempt++ {
		err := save()
		if err == nil || !errors.Is(err, repository.ErrSlugTaken) {
			return err
		}
		if !owned || attempt >= maxSlugAttempts {
			return err
		}
		if n, err = s.nextFreeSuffix(ctx, base, n+1, p.ID); err != nil {
			return err
		}
		p.Slug = catalog.CandidateSlug(base, n)
	}
}

// nextFreeSuffix finds the lowest disambiguator at or above start whose
// candidate slug is not taken by another product.
func (s *ProductService) nextFreeSuffix(ctx context.Context, base string, start int, excludeID uint64) (int, error) {
	for n := start; n < start+10000; n++ {
		taken, err := s.products.SlugExists(ctx, catalog.CandidateSlug(base, n), excludeID)
		if err != nil {
			return 0, err
		}
		if !taken {
			return n, nil
		}
	}
	return 0, repository.ErrSlugTaken
}
