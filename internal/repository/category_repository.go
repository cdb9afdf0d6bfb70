package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/estudiocobogo/catalogo-api/internal/catalog"
	"github.com/estudiocobogo/catalogo-api/internal/model"
)

// CategoryRepo encapsulates all database queries related to top-level
// categories, including the transactional cascade operations: deleting a
// category removes its products in the same transaction, and duplicating
// one copies the category together with every associated product.  Both
// are all-or-nothing; a partial cascade never becomes visible.
type CategoryRepo struct {
	db *sql.DB
}

// NewCategoryRepo constructs a CategoryRepo with the provided DB handle.
func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// Create inserts a new category.  On success the ID and timestamps are
// populated.  A name collision surfaces as ErrDuplicateName.
func (r *CategoryRepo) Create(ctx context.Context, c *model.Category) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO categories (name, sort_order, active) VALUES (?,?,?)",
		c.Name, c.SortOrder, c.Active)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateName
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM categories WHERE id = ?", c.ID).
		Scan(&c.CreatedAt, &c.UpdatedAt)
}

// Update rewrites the mutable columns of a category.
func (r *CategoryRepo) Update(ctx context.Context, c *model.Category) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE categories SET name=?, sort_order=?, active=? WHERE id=?",
		c.Name, c.SortOrder, c.Active, c.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateName
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, "SELECT 1 FROM categories WHERE id=?", c.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrCategoryNotFound
			}
			return err
		}
	}
	return nil
}

// GetByID fetches a category by primary key.
func (r *CategoryRepo) GetByID(ctx context.Context, id uint64) (*model.Category, error) {
	var c model.Category
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, sort_order, active, created_at, updated_at FROM categories WHERE id = ?", id).
		Scan(&c.ID, &c.Name, &c.SortOrder, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListAll returns every category in catalog order for admin listings.
func (r *CategoryRepo) ListAll(ctx context.Context) ([]*model.Category, error) {
	return r.list(ctx, "SELECT id, name, sort_order, active, created_at, updated_at FROM categories ORDER BY sort_order, name")
}

// ListActive returns publicly visible categories in catalog order.
func (r *CategoryRepo) ListActive(ctx context.Context) ([]*model.Category, error) {
	return r.list(ctx, "SELECT id, name, sort_order, active, created_at, updated_at FROM categories WHERE active = 1 ORDER BY sort_order, name")
}

func (r *CategoryRepo) list(ctx context.Context, q string) ([]*model.Category, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Category
	for rows.Next() {
		c := new(model.Category)
		if err := rows.Scan(&c.ID, &c.Name, &c.SortOrder, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteCascade removes a category and every product referencing it
// inside a single transaction.  It returns the number of products
// deleted alongside the category.  Subcategories go with the category
// via the ON DELETE CASCADE foreign key.  ErrCategoryNotFound is
// returned when the id does not exist.
func (r *CategoryRepo) DeleteCascade(ctx context.Context, id uint64) (deleted int64, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var one int
	if err = tx.QueryRowContext(ctx, "SELECT 1 FROM categories WHERE id = ?", id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrCategoryNotFound
		}
		return 0, err
	}

	// Products first: the restrictive FK on products.category_id would
	// otherwise block the category delete.
	res, err := tx.ExecContext(ctx, "DELETE FROM products WHERE category_id = ?", id)
	if err != nil {
		return 0, err
	}
	deleted, _ = res.RowsAffected()

	if _, err = tx.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id); err != nil {
		return 0, err
	}
	return deleted, nil
}

// DuplicateDeep copies a category and all of its products inside a
// single transaction.  The new category is named "<original> (Copy)";
// each product copy gets a globally unique name built from its base name
// plus a copy suffix, and a freshly generated unique slug.  Image
// references are copied as-is: both products point at the same stored
// assets.  Returns the new category and the number of products copied.
func (r *CategoryRepo) DuplicateDeep(ctx context.Context, id uint64) (dup *model.Category, copied int, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var src model.Category
	err = tx.QueryRowContext(ctx,
		"SELECT id, name, sort_order, active FROM categories WHERE id = ?", id).
		Scan(&src.ID, &src.Name, &src.SortOrder, &src.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrCategoryNotFound
		}
		return nil, 0, err
	}

	dup = &model.Category{
		Name:      fmt.Sprintf("%s (Copy)", src.Name),
		SortOrder: src.SortOrder,
		Active:    src.Active,
	}
	res, err := tx.ExecContext(ctx,
		"INSERT INTO categories (name, sort_order, active) VALUES (?,?,?)",
		dup.Name, dup.SortOrder, dup.Active)
	if err != nil {
		if isDuplicateKey(err) {
			err = ErrDuplicateName
		}
		return nil, 0, err
	}
	newID, err := res.LastInsertId()
	if err != nil {
		return nil, 0, err
	}
	dup.ID = uint64(newID)

	rows, err := tx.QueryContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE category_id = ? ORDER BY id", src.ID)
	if err != nil {
		return nil, 0, err
	}
	var sources []*model.Product
	for rows.Next() {
		var p *model.Product
		if p, err = scanProduct(rows); err != nil {
			rows.Close()
			return nil, 0, err
		}
		sources = append(sources, p)
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return nil, 0, err
	}
	rows.Close()

	if copied, err = copyProductsInto(ctx, txProductCopier{tx: tx}, sources, dup.ID); err != nil {
		return nil, 0, err
	}
	return dup, copied, nil
}

// productCopier is the persistence surface the duplication loop needs.
// txProductCopier backs it with the duplication transaction, so names
// and slugs inserted earlier in the same cascade are visible to the
// existence checks and copies never collide with each other.
type productCopier interface {
	NameTaken(ctx context.Context, name string) (bool, error)
	SlugTaken(ctx context.Context, slug string) (bool, error)
	Insert(ctx context.Context, p *model.Product) error
}

// copyProductsInto copies each source product into the target category,
// giving every copy a globally unique name built from the base name
// plus a copy suffix and a freshly generated unique slug.  The first
// failure aborts the whole run; the caller owns the transaction and
// rolls back, so a partial copy never becomes visible.
func copyProductsInto(ctx context.Context, store productCopier, sources []*model.Product, targetID uint64) (int, error) {
	copied := 0
	for _, p := range sources {
		name, err := uniqueCopyName(ctx, store, p.Name)
		if err != nil {
			return 0, err
		}
		cp := *p
		cp.ID = 0
		cp.Name = name
		cp.Slug = "" // regenerated by insertWithFreshSlug
		cp.CategoryID = targetID
		if err := insertWithFreshSlug(ctx, store, &cp); err != nil {
			return 0, err
		}
		copied++
	}
	return copied, nil
}

// uniqueCopyName finds the first copy name not taken by any product,
// checking against exact names: "<base> (Copy)", then "(Copy 2)" and up.
func uniqueCopyName(ctx context.Context, store productCopier, original string) (string, error) {
	base := catalog.CopyBase(original)
	for n := 1; ; n++ {
		candidate := catalog.CopyName(base, n)
		taken, err := store.NameTaken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}

// insertWithFreshSlug inserts a product copy, generating its slug from
// the name.  The slug unique constraint stays authoritative: ErrSlugTaken
// from the insert (a concurrent writer winning the candidate) bumps the
// disambiguator and retries.
func insertWithFreshSlug(ctx context.Context, store productCopier, p *model.Product) error {
	base := catalog.BaseSlug(p.Name)
	for n := 0; ; n++ {
		p.Slug = catalog.CandidateSlug(base, n)
		taken, err := store.SlugTaken(ctx, p.Slug)
		if err != nil {
			return err
		}
		if taken {
			continue
		}
		if err := store.Insert(ctx, p); err != nil {
			if errors.Is(err, ErrSlugTaken) {
				continue
			}
			return err
		}
		return nil
	}
}

// txProductCopier implements productCopier over the duplication
// transaction.  Kept thin: one statement per method.
type txProductCopier struct {
	tx *sql.Tx
}

func (s txProductCopier) NameTaken(ctx context.Context, name string) (bool, error) {
	var one int
	err := s.tx.QueryRowContext(ctx,
		"SELECT 1 FROM products WHERE name = ? LIMIT 1", name).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s txProductCopier) SlugTaken(ctx context.Context, slug string) (bool, error) {
	var one int
	err := s.tx.QueryRowContext(ctx,
		"SELECT 1 FROM products WHERE slug = ? LIMIT 1", slug).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s txProductCopier) Insert(ctx context.Context, p *model.Product) error {
	const q = `INSERT INTO products
		(name, slug, description, category_id, category_label, tag,
		 image_1, image_2, image_3, image_filename, dimensions, color,
		 sale_unit, specifications, active, sort_order)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`
	res, err := s.tx.ExecContext(ctx, q,
		p.Name, p.Slug, p.Description, nullableID(p.CategoryID), p.CategoryLabel, p.Tag,
		p.Image1, p.Image2, p.Image3, p.ImageFilename, p.Dimensions, p.Color,
		p.SaleUnit, p.Specifications, p.Active, p.SortOrder)
	if err != nil {
		if isDuplicateKeyFor(err, "uq_products_slug") {
			return ErrSlugTaken
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}
