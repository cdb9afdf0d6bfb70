package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/estudiocobogo/catalogo-api/internal/model"
	"github.com/estudiocobogo/catalogo-api/internal/repository"
)

// fakeProductStore keeps products in memory and enforces slug
// uniqueness the way the database does.  saveErrs queues errors to
// inject commit-time failures ahead of the real save.
type fakeProductStore struct {
	byID     map[uint64]*model.Product
	nextID   uint64
	saveErrs []error
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{byID: map[uint64]*model.Product{}}
}

func (f *fakeProductStore) popErr() error {
	if len(f.saveErrs) == 0 {
		return nil
	}
	err := f.saveErrs[0]
	f.saveErrs = f.saveErrs[1:]
	return err
}

func (f *fakeProductStore) slugHolder(slug string) (uint64, bool) {
	for id, p := range f.byID {
		if p.Slug == slug {
			return id, true
		}
	}
	return 0, false
}

func (f *fakeProductStore) Create(_ context.Context, p *model.Product) error {
	if err := f.popErr(); err != nil {
		return err
	}
	if _, taken := f.slugHolder(p.Slug); taken {
		return repository.ErrSlugTaken
	}
	f.nextID++
	p.ID = f.nextID
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakeProductStore) Update(_ context.Context, p *model.Product) error {
	if err := f.popErr(); err != nil {
		return err
	}
	if _, ok := f.byID[p.ID]; !ok {
		return repository.ErrProductNotFound
	}
	if holder, taken := f.slugHolder(p.Slug); taken && holder != p.ID {
		return repository.ErrSlugTaken
	}
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakeProductStore) GetByID(_ context.Context, id uint64) (*model.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductStore) Delete(_ context.Context, id uint64) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeProductStore) SlugExists(_ context.Context, slug string, excludeID uint64) (bool, error) {
	holder, taken := f.slugHolder(slug)
	return taken && holder != excludeID, nil
}

// seed inserts a product directly, bypassing the service.
func (f *fakeProductStore) seed(p model.Product) uint64 {
	f.nextID++
	p.ID = f.nextID
	f.byID[p.ID] = &p
	return p.ID
}

type fakeCategories struct {
	byID map[uint64]*model.Category
}

func (f *fakeCategories) GetByID(_ context.Context, id uint64) (*model.Category, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	return c, nil
}

// fakeAssets records stores and deletes; failDelete simulates a flaky
// asset backend.
type fakeAssets struct {
	stored     int
	deleted    []string
	failDelete bool
	failStore  bool
}

func (f *fakeAssets) Store(_ context.Context, _ []byte, slotKey string) (string, error) {
	if f.failStore {
		return "", errors.New("upload backend down")
	}
	f.stored++
	return fmt.Sprintf("https://cdn.example/%s_%d.png", slotKey, f.stored), nil
}

func (f *fakeAssets) Delete(_ context.Context, ref string) error {
	if f.failDelete {
		return errors.New("delete backend down")
	}
	f.deleted = append(f.deleted, ref)
	return nil
}

func newProductService(store *fakeProductStore, assets *fakeAssets) *ProductService {
	cats := &fakeCategories{byID: map[uint64]*model.Category{
		1: {ID: 1, Name: "Cobogós"},
	}}
	if assets == nil {
		// A nil interface, not a typed nil, so the service sees no store.
		return NewProductService(store, cats, nil)
	}
	return NewProductService(store, cats, assets)
}

func TestCreateRequiresName(t *testing.T) {
	svc := newProductService(newFakeProductStore(), nil)
	_, err := svc.Create(context.Background(), ProductInput{Name: "   "}, nil)
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "name" {
		t.Fatalf("expected name validation error, got %v", err)
	}
}

func TestCreateUnknownCategory(t *testing.T) {
	svc := newProductService(newFakeProductStore(), nil)
	_, err := svc.Create(context.Background(), ProductInput{Name: "Cobogó", CategoryID: 99}, nil)
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "category_id" {
		t.Fatalf("expected category_id validation error, got %v", err)
	}
}

func TestCreateDefaultsTagAndSlug(t *testing.T) {
	store := newFakeProductStore()
	svc := newProductService(store, nil)
	p, err := svc.Create(context.Background(), ProductInput{Name: "Cobogó 40x40", Active: true}, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Slug != "cobogo-40x40" {
		t.Errorf("slug = %q, want cobogo-40x40", p.Slug)
	}
	if p.Tag != model.DefaultTag {
		t.Errorf("tag = %q, want default", p.Tag)
	}
}

func TestCreateSlugCollisionGetsSuffix(t *testing.T) {
	store := newFakeProductStore()
	store.seed(model.Product{Name: "Cobogó", Slug: "cobogo"})
	store.seed(model.Product{Name: "Cobogó again", Slug: "cobogo-1"})
	svc := newProductService(store, nil)

	p, err := svc.Create(context.Background(), ProductInput{Name: "Cobogó"}, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Slug != "cobogo-2" {
		t.Errorf("slug = %q, want cobogo-2", p.Slug)
	}
}

func TestCreateRetriesWhenCommitLosesRace(t *testing.T) {
	store := newFakeProductStore()
	// The pre-check sees the slug free, but the first save hits the
	// unique constraint as if a concurrent writer won the candidate.
	store.saveErrs = []error{repository.ErrSlugTaken}
	svc := newProductService(store, nil)

	p, err := svc.Create(context.Background(), ProductInput{Name: "Cobogó"}, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Slug != "cobogo-1" {
		t.Errorf("slug = %q, want cobogo-1 after retry", p.Slug)
	}
}

func TestCreateCallerSlugHonoredWhenValid(t *testing.T) {
	store := newFakeProductStore()
	svc := newProductService(store, nil)
	p, err := svc.Create(context.Background(), ProductInput{Name: "Cobogó", Slug: "custom-slug"}, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Slug != "custom-slug" {
		t.Errorf("slug = %q, want caller's custom-slug", p.Slug)
	}
}

func TestCreateCallerSlugCollisionNotRetried(t *testing.T) {
	store := newFakeProductStore()
	store.seed(model.Product{Name: "Other", Slug: "taken"})
	svc := newProductService(store, nil)
	_, err := svc.Create(context.Background(), ProductInput{Name: "Cobogó", Slug: "taken"}, nil)
	if !errors.Is(err, repository.ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken for caller-supplied slug, got %v", err)
	}
}

func TestEditKeepsSlugWhenNameUnchanged(t *testing.T) {
	store := newFakeProductStore()
	id := store.seed(model.Product{Name: "Cobogó", Slug: "cobogo"})
	svc := newProductService(store, nil)

	p, err := svc.Edit(context.Background(), id, ProductInput{Name: "Cobogó", Tag: "x"}, nil, [3]bool{})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if p.Slug != "cobogo" {
		t.Errorf("slug = %q, want unchanged cobogo", p.Slug)
	}
}

func TestEditRegeneratesSlugOnRename(t *testing.T) {
	store := newFakeProductStore()
	id := store.seed(model.Product{Name: "Cobogó", Slug: "cobogo"})
	svc := newProductService(store, nil)

	p, err := svc.Edit(context.Background(), id, ProductInput{Name: "Elemento Vazado", Slug: "cobogo"}, nil, [3]bool{})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if p.Slug != "elemento-vazado" {
		t.Errorf("slug = %q, want elemento-vazado", p.Slug)
	}
}

func TestEditRenameToOwnSlugKeepsBase(t *testing.T) {
	store := newFakeProductStore()
	id := store.seed(model.Product{Name: "Cobogo", Slug: "cobogo"})
	svc := newProductService(store, nil)

	// Renaming to a name that slugifies back to the current slug must
	// not pick up a disambiguator: the row's own slug is excluded from
	// the existence check.
	p, err := svc.Edit(context.Background(), id, ProductInput{Name: "Cobogó"}, nil, [3]bool{})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if p.Slug != "cobogo" {
		t.Errorf("slug = %q, want cobogo without suffix", p.Slug)
	}
}

func TestEditRemovalClearsSlotDespiteAssetFailure(t *testing.T) {
	store := newFakeProductStore()
	id := store.seed(model.Product{Name: "Cobogó", Slug: "cobogo", Image1: "https://cdn.example/a.png"})
	assets := &fakeAssets{failDelete: true}
	svc := newProductService(store, assets)

	p, err := svc.Edit(context.Background(), id, ProductInput{Name: "Cobogó"}, nil, [3]bool{true, false, false})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if p.Image1 != "" {
		t.Errorf("image_1 = %q, want cleared even when the asset delete fails", p.Image1)
	}
}

func TestEditRemovalDeletesStoredAsset(t *testing.T) {
	store := newFakeProductStore()
	id := store.seed(model.Product{Name: "Cobogó", Slug: "cobogo", Image2: "https://cdn.example/b.png"})
	assets := &fakeAssets{}
	svc := newProductService(store, assets)

	if _, err := svc.Edit(context.Background(), id, ProductInput{Name: "Cobogó"}, nil, [3]bool{false, true, false}); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if len(assets.deleted) != 1 || assets.deleted[0] != "https://cdn.example/b.png" {
		t.Errorf("deleted = %v, want the removed slot's URL", assets.deleted)
	}
}

func TestUploadsAttachToSlots(t *testing.T) {
	store := newFakeProductStore()
	assets := &fakeAssets{}
	svc := newProductService(store, assets)

	p, err := svc.Create(context.Background(), ProductInput{Name: "Cobogó"}, map[int]Upload{
		1: {Filename: "front.png", Data: []byte{1}},
		3: {Filename: "back.png", Data: []byte{2}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Image1 == "" || p.Image3 == "" {
		t.Errorf("slots 1 and 3 should be filled, got %q / %q", p.Image1, p.Image3)
	}
	if p.Image2 != "" {
		t.Errorf("slot 2 should stay empty, got %q", p.Image2)
	}
}

func TestUploadWithoutAssetStoreFails(t *testing.T) {
	svc := newProductService(newFakeProductStore(), nil)
	_, err := svc.Create(context.Background(), ProductInput{Name: "Cobogó"}, map[int]Upload{
		1: {Filename: "front.png", Data: []byte{1}},
	})
	if err == nil {
		t.Fatal("expected error when no asset store is configured")
	}
}

func TestUploadFailureAbortsCreate(t *testing.T) {
	store := newFakeProductStore()
	assets := &fakeAssets{failStore: true}
	svc := newProductService(store, assets)

	_, err := svc.Create(context.Background(), ProductInput{Name: "Cobogó"}, map[int]Upload{
		1: {Filename: "front.png", Data: []byte{1}},
	})
	if err == nil {
		t.Fatal("expected create to fail when the upload fails")
	}
	if len(store.byID) != 0 {
		t.Errorf("no product should be persisted, got %d", len(store.byID))
	}
}

func TestDuplicateNamesCopyAndRegeneratesSlug(t *testing.T) {
	store := newFakeProductStore()
	id := store.seed(model.Product{Name: "Cobogó Lua", Slug: "cobogo-lua", Tag: "Special", Image1: "https://cdn.example/a.png"})
	svc := newProductService(store, nil)

	cp, err := svc.Duplicate(context.Background(), id)
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	if cp.Name != "Cobogó Lua (Copy)" {
		t.Errorf("name = %q, want Cobogó Lua (Copy)", cp.Name)
	}
	if cp.Slug != "cobogo-lua-copy" {
		t.Errorf("slug = %q, want cobogo-lua-copy", cp.Slug)
	}
	if cp.Image1 != "https://cdn.example/a.png" {
		t.Errorf("image_1 = %q, want shared asset reference", cp.Image1)
	}
	if cp.ID == id {
		t.Error("duplicate must be a new row")
	}
}

func TestDeleteMissingProduct(t *testing.T) {
	svc := newProductService(newFakeProductStore(), nil)
	if err := svc.Delete(context.Background(), 42); !errors.Is(err, repository.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}
