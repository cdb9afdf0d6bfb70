package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/estudiocobogo/catalogo-api/internal/model"
)

// productColumns is the canonical select list shared by every product query.
const productColumns = `id, name, slug, description, COALESCE(category_id, 0), category_label,
	tag, image_1, image_2, image_3, image_filename, dimensions, color, sale_unit,
	COALESCE(specifications, ''), active, sort_order, created_at, updated_at`

// ProductRepo encapsulates all database queries related to products.
type ProductRepo struct {
	db *sql.DB
}

// NewProductRepo constructs a ProductRepo with the provided DB handle.
func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

func scanProduct(row interface{ Scan(...any) error }) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.CategoryID, &p.CategoryLabel,
		&p.Tag, &p.Image1, &p.Image2, &p.Image3, &p.ImageFilename, &p.Dimensions, &p.Color,
		&p.SaleUnit, &p.Specifications, &p.Active, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// nullableID converts our zero-means-NULL convention into a driver value.
func nullableID(id uint64) any {
	if id == 0 {
		return nil
	}
	return id
}

// Create inserts a new product.  On success the ID field is populated and
// the timestamp fields are read back so callers receive a full record.
// A slug collision surfaces as ErrSlugTaken so the caller can retry with
// the next disambiguator.
func (r *ProductRepo) Create(ctx context.Context, p *model.Product) error {
	const q = `INSERT INTO products
		(name, slug, description, category_id, category_label, tag,
		 image_1, image_2, image_3, image_filename, dimensions, color,
		 sale_unit, specifications, active, sort_order)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`
	res, err := r.db.ExecContext(ctx, q,
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
	return r.db.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM products WHERE id = ?", p.ID).
		Scan(&p.CreatedAt, &p.UpdatedAt)
}

// Update rewrites every mutable column of an existing product.
func (r *ProductRepo) Update(ctx context.Context, p *model.Product) error {
	const q = `UPDATE products SET
		name=?, slug=?, description=?, category_id=?, category_label=?, tag=?,
		image_1=?, image_2=?, image_3=?, image_filename=?, dimensions=?, color=?,
		sale_unit=?, specifications=?, active=?, sort_order=?
		WHERE id=?`
	res, err := r.db.ExecContext(ctx, q,
		p.Name, p.Slug, p.Description, nullableID(p.CategoryID), p.CategoryLabel, p.Tag,
		p.Image1, p.Image2, p.Image3, p.ImageFilename, p.Dimensions, p.Color,
		p.SaleUnit, p.Specifications, p.Active, p.SortOrder, p.ID)
	if err != nil {
		if isDuplicateKeyFor(err, "uq_products_slug") {
			return ErrSlugTaken
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Zero affected rows is ambiguous (missing row vs identical
		// values); confirm existence before reporting not found.
		var one int
		if err := r.db.QueryRowContext(ctx, "SELECT 1 FROM products WHERE id=?", p.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrProductNotFound
			}
			return err
		}
	}
	return nil
}

// GetByID fetches a product by primary key.
func (r *ProductRepo) GetByID(ctx context.Context, id uint64) (*model.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	return p, err
}

// GetBySlug fetches a product by its unique slug.
func (r *ProductRepo) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE slug = ?", slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	return p, err
}

// Delete removes a product permanently.  It does not cascade.
func (r *ProductRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

// ListAll returns every product ordered for admin listings.
func (r *ProductRepo) ListAll(ctx context.Context) ([]*model.Product, error) {
	return r.list(ctx, "SELECT "+productColumns+" FROM products ORDER BY sort_order, name")
}

// ListActive returns publicly visible products in catalog order.
func (r *ProductRepo) ListActive(ctx context.Context) ([]*model.Product, error) {
	return r.list(ctx, "SELECT "+productColumns+" FROM products WHERE active = 1 ORDER BY sort_order, name")
}

// ListActiveByCategory returns a category's visible products in catalog order.
func (r *ProductRepo) ListActiveByCategory(ctx context.Context, categoryID uint64) ([]*model.Product, error) {
	return r.list(ctx,
		"SELECT "+productColumns+" FROM products WHERE active = 1 AND category_id = ? ORDER BY sort_order, name",
		categoryID)
}

// ListOthers returns up to limit visible products excluding the given
// slug, used for the "other products" strip on the detail page.
func (r *ProductRepo) ListOthers(ctx context.Context, excludeSlug string, limit int) ([]*model.Product, error) {
	return r.list(ctx,
		"SELECT "+productColumns+" FROM products WHERE active = 1 AND slug <> ? ORDER BY sort_order, name LIMIT ?",
		excludeSlug, limit)
}

func (r *ProductRepo) list(ctx context.Context, q string, args ...any) ([]*model.Product, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SlugExists reports whether another product already holds the slug.
// excludeID skips the product's own row when updating so that renaming a
// product to a name that slugifies to its current slug does not bump the
// disambiguator.
func (r *ProductRepo) SlugExists(ctx context.Context, slug string, excludeID uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM products WHERE slug = ? AND id <> ? LIMIT 1", slug, excludeID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
