package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/stagex-boxoffice/internal/model"
)

// SeatCategoryRepo manages seat categories (price tiers with a display color).
type SeatCategoryRepo struct {
	db *sql.DB
}

// NewSeatCategoryRepo constructs a SeatCategoryRepo with the given DB handle.
func NewSeatCategoryRepo(db *sql.DB) *SeatCategoryRepo {
	return &SeatCategoryRepo{db: db}
}

// List returns every category ordered by id.
func (r *SeatCategoryRepo) List(ctx context.Context) ([]model.SeatCategory, error) {
	const q = `SELECT category_id, category_name, base_price, color_class FROM seat_categories ORDER BY category_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.SeatCategory{}
	for rows.Next() {
		var c model.SeatCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.BasePrice, &c.ColorClass); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns ErrCategoryNotFound when the id is unknown.
func (r *SeatCategoryRepo) GetByID(ctx context.Context, id uint64) (*model.SeatCategory, error) {
	const q = `SELECT category_id, category_name, base_price, color_class FROM seat_categories WHERE category_id = ?`
	var c model.SeatCategory
	err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Name, &c.BasePrice, &c.ColorClass)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

// NameExists reports whether another category uses name, ignoring case.
// excludeID is the category being edited, or 0.
func (r *SeatCategoryRepo) NameExists(ctx context.Context, name string, excludeID uint64) (bool, error) {
	const q = `SELECT COUNT(*) FROM seat_categories WHERE LOWER(category_name) = LOWER(?) AND category_id <> ?`
	var n int
	if err := r.db.QueryRowContext(ctx, q, strings.TrimSpace(name), excludeID).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create inserts c and sets its ID.
func (r *SeatCategoryRepo) Create(ctx context.Context, c *model.SeatCategory) error {
	const q = `INSERT INTO seat_categories (category_name, base_price, color_class) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, c.Name, c.BasePrice, c.ColorClass)
	if err != nil {
		return translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// Update changes name and price.  The color is assigned once at creation
// and never changes.
func (r *SeatCategoryRepo) Update(ctx context.Context, c *model.SeatCategory) error {
	const q = `UPDATE seat_categories SET category_name = ?, base_price = ? WHERE category_id = ?`
	res, err := r.db.ExecContext(ctx, q, c.Name, c.BasePrice, c.ID)
	if err != nil {
		return translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// MySQL reports 0 for an unchanged row, so tell that apart from a missing one
		if _, err := r.GetByID(ctx, c.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a category.  It fails with ErrCategoryInUse while seats
// still reference it.
func (r *SeatCategoryRepo) Delete(ctx context.Context, id uint64) error {
	var used int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM seats WHERE category_id = ?`, id).Scan(&used); err != nil {
		return err
	}
	if used > 0 {
		return ErrCategoryInUse
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM seat_categories WHERE category_id = ?`, id)
	if err != nil {
		return translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
