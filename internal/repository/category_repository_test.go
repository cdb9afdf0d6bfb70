package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/estudiocobogo/catalogo-api/internal/model"
)

// fakeCopier implements productCopier in memory.  Inserted rows feed
// back into the name and slug existence checks, the same visibility the
// duplication transaction gives the real loop.  failOnInsert aborts the
// n-th insert, slugConflicts makes the first k inserts fail with
// ErrSlugTaken as if concurrent writers kept winning candidates.
type fakeCopier struct {
	names         map[string]bool
	slugs         map[string]bool
	inserted      []*model.Product
	failOnInsert  int
	insertErr     error
	slugConflicts int
}

func newFakeCopier(seedNames, seedSlugs []string) *fakeCopier {
	f := &fakeCopier{names: map[string]bool{}, slugs: map[string]bool{}}
	for _, n := range seedNames {
		f.names[n] = true
	}
	for _, s := range seedSlugs {
		f.slugs[s] = true
	}
	return f
}

func (f *fakeCopier) NameTaken(_ context.Context, name string) (bool, error) {
	return f.names[name], nil
}

func (f *fakeCopier) SlugTaken(_ context.Context, slug string) (bool, error) {
	return f.slugs[slug], nil
}

func (f *fakeCopier) Insert(_ context.Context, p *model.Product) error {
	if f.slugConflicts > 0 {
		f.slugConflicts--
		f.slugs[p.Slug] = true
		return ErrSlugTaken
	}
	if f.failOnInsert > 0 && len(f.inserted)+1 >= f.failOnInsert {
		return f.insertErr
	}
	cp := *p
	cp.ID = uint64(len(f.inserted) + 1)
	p.ID = cp.ID
	f.inserted = append(f.inserted, &cp)
	f.names[cp.Name] = true
	f.slugs[cp.Slug] = true
	return nil
}

func TestCopyProductsAssignsCopySuffixes(t *testing.T) {
	store := newFakeCopier(nil, nil)
	sources := []*model.Product{
		{Name: "Cobogó Lua", Slug: "cobogo-lua"},
		{Name: "Cobogó Sol", Slug: "cobogo-sol"},
	}
	copied, err := copyProductsInto(context.Background(), store, sources, 9)
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	if copied != 2 || len(store.inserted) != 2 {
		t.Fatalf("copied = %d (%d inserted), want 2", copied, len(store.inserted))
	}
	if got := store.inserted[0].Name; got != "Cobogó Lua (Copy)" {
		t.Errorf("name = %q, want Cobogó Lua (Copy)", got)
	}
	if got := store.inserted[1].Name; got != "Cobogó Sol (Copy)" {
		t.Errorf("name = %q, want Cobogó Sol (Copy)", got)
	}
	for _, p := range store.inserted {
		if p.CategoryID != 9 {
			t.Errorf("category_id = %d, want target 9", p.CategoryID)
		}
	}
}

func TestCopyProductsDisambiguatesToGlobalUniqueness(t *testing.T) {
	// "(Copy)" is already taken by an earlier duplication, and the two
	// sources collapse to the same base name; every copy still gets a
	// distinct name.
	store := newFakeCopier([]string{"Cobogó Lua (Copy)"}, nil)
	sources := []*model.Product{
		{Name: "Cobogó Lua", Slug: "cobogo-lua"},
		{Name: "Cobogó Lua (Copy)", Slug: "cobogo-lua-copy"},
	}
	if _, err := copyProductsInto(context.Background(), store, sources, 1); err != nil {
		t.Fatalf("copy: %v", err)
	}
	if got := store.inserted[0].Name; got != "Cobogó Lua (Copy 2)" {
		t.Errorf("first copy name = %q, want Cobogó Lua (Copy 2)", got)
	}
	// The second source's base strips its existing suffix, so it
	// competes for the same sequence and takes the next free slot.
	if got := store.inserted[1].Name; got != "Cobogó Lua (Copy 3)" {
		t.Errorf("second copy name = %q, want Cobogó Lua (Copy 3)", got)
	}
}

func TestCopyProductsRegeneratesUniqueSlugs(t *testing.T) {
	store := newFakeCopier(nil, []string{"cobogo-lua-copy"})
	sources := []*model.Product{{Name: "Cobogó Lua", Slug: "cobogo-lua"}}
	if _, err := copyProductsInto(context.Background(), store, sources, 1); err != nil {
		t.Fatalf("copy: %v", err)
	}
	if got := store.inserted[0].Slug; got != "cobogo-lua-copy-1" {
		t.Errorf("slug = %q, want cobogo-lua-copy-1", got)
	}
}

func TestCopyProductsRetriesSlugOnInsertConflict(t *testing.T) {
	// The pre-check sees the candidate free, but the insert loses the
	// race to the unique constraint; the loop bumps and retries.
	store := newFakeCopier(nil, nil)
	store.slugConflicts = 1
	sources := []*model.Product{{Name: "Cobogó Lua", Slug: "cobogo-lua"}}
	if _, err := copyProductsInto(context.Background(), store, sources, 1); err != nil {
		t.Fatalf("copy: %v", err)
	}
	if got := store.inserted[0].Slug; got != "cobogo-lua-copy-1" {
		t.Errorf("slug = %q, want cobogo-lua-copy-1 after retry", got)
	}
}

func TestCopyProductsAbortsOnMidRunFailure(t *testing.T) {
	store := newFakeCopier(nil, nil)
	store.failOnInsert = 2
	store.insertErr = errors.New("connection lost")
	sources := []*model.Product{
		{Name: "Cobogó Lua", Slug: "cobogo-lua"},
		{Name: "Cobogó Sol", Slug: "cobogo-sol"},
		{Name: "Cobogó Mar", Slug: "cobogo-mar"},
	}
	copied, err := copyProductsInto(context.Background(), store, sources, 1)
	if !errors.Is(err, store.insertErr) {
		t.Fatalf("expected the insert failure to surface, got %v", err)
	}
	// The error reaches DuplicateDeep, whose deferred rollback discards
	// the rows written before the failure; no partial count escapes.
	if copied != 0 {
		t.Errorf("copied = %d on failure, want 0", copied)
	}
}
