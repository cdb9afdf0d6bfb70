package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/estudiocobogo/catalogo-api/internal/model"
)

// SubcategoryRepo encapsulates database queries for subcategories.  The
// (category_id, name) pair is unique and collisions surface as
// ErrDuplicateName.
type SubcategoryRepo struct {
	db *sql.DB
}

// NewSubcategoryRepo constructs a SubcategoryRepo with the provided DB handle.
func NewSubcategoryRepo(db *sql.DB) *SubcategoryRepo {
	return &SubcategoryRepo{db: db}
}

// Create inserts a new subcategory under its parent category.
func (r *SubcategoryRepo) Create(ctx context.Context, s *model.Subcategory) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO subcategories (category_id, name, sort_order, active) VALUES (?,?,?,?)",
		s.CategoryID, s.Name, s.SortOrder, s.Active)
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
	s.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM subcategories WHERE id = ?", s.ID).
		Scan(&s.CreatedAt, &s.UpdatedAt)
}

// Update rewrites the mutable columns of a subcategory, including moving
// it to a different parent category.
func (r *SubcategoryRepo) Update(ctx context.Context, s *model.Subcategory) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE subcategories SET category_id=?, name=?, sort_order=?, active=? WHERE id=?",
		s.CategoryID, s.Name, s.SortOrder, s.Active, s.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateName
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, "SELECT 1 FROM subcategories WHERE id=?", s.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrSubcategoryNotFound
			}
			return err
		}
	}
	return nil
}

// GetByID fetches a subcategory by primary key.
func (r *SubcategoryRepo) GetByID(ctx context.Context, id uint64) (*model.Subcategory, error) {
	var s model.Subcategory
	err := r.db.QueryRowContext(ctx,
		"SELECT id, category_id, name, sort_order, active, created_at, updated_at FROM subcategories WHERE id = ?", id).
		Scan(&s.ID, &s.CategoryID, &s.Name, &s.SortOrder, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSubcategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete removes a subcategory.  Products are untouched: they reference
// subcategories only through the free-text category_label field.
func (r *SubcategoryRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM subcategories WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSubcategoryNotFound
	}
	return nil
}

// ListByCategory returns a category's subcategories in catalog order.
// When activeOnly is set, inactive rows are filtered out.
func (r *SubcategoryRepo) ListByCategory(ctx context.Context, categoryID uint64, activeOnly bool) ([]*model.Subcategory, error) {
	q := "SELECT id, category_id, name, sort_order, active, created_at, updated_at FROM subcategories WHERE category_id = ?"
	if activeOnly {
		q += " AND active = 1"
	}
	q += " ORDER BY sort_order, name"

	rows, err := r.db.QueryContext(ctx, q, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Subcategory
	for rows.Next() {
		s := new(model.Subcategory)
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Name, &s.SortOrder, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
