package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/stagex-boxoffice/internal/model"
)

// GenreRepo manages show genres.
type GenreRepo struct {
	db *sql.DB
}

// NewGenreRepo constructs a GenreRepo with the given DB handle.
func NewGenreRepo(db *sql.DB) *GenreRepo {
	return &GenreRepo{db: db}
}

// List returns every genre ordered by id.
func (r *GenreRepo) List(ctx context.Context) ([]model.Genre, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT genre_id, genre_name FROM genres ORDER BY genre_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Genre{}
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns ErrGenreNotFound when the id is unknown.
func (r *GenreRepo) GetByID(ctx context.Context, id uint64) (*model.Genre, error) {
	var g model.Genre
	err := r.db.QueryRowContext(ctx, `SELECT genre_id, genre_name FROM genres WHERE genre_id = ?`, id).Scan(&g.ID, &g.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGenreNotFound
		}
		return nil, err
	}
	return &g, nil
}

// NameExists reports whether another genre uses name, ignoring case.
// excludeID is the genre being edited, or 0.
func (r *GenreRepo) NameExists(ctx context.Context, name string, excludeID uint64) (bool, error) {
	const q = `SELECT COUNT(*) FROM genres WHERE LOWER(genre_name) = LOWER(?) AND genre_id <> ?`
	var n int
	if err := r.db.QueryRowContext(ctx, q, strings.TrimSpace(name), excludeID).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create inserts g and sets its ID.
func (r *GenreRepo) Create(ctx context.Context, g *model.Genre) error {
	res, err := r.db.ExecContext(ctx, `INSERT INTO genres (genre_name) VALUES (?)`, g.Name)
	if err != nil {
		return translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	return nil
}

// Update renames a genre.
func (r *GenreRepo) Update(ctx context.Context, g *model.Genre) error {
	res, err := r.db.ExecContext(ctx, `UPDATE genres SET genre_name = ? WHERE genre_id = ?`, g.Name, g.ID)
	if err != nil {
		return translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, g.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a genre.  It fails with ErrGenreInUse while shows are
// tagged with it.
func (r *GenreRepo) Delete(ctx context.Context, id uint64) error {
	var used int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM show_genres WHERE genre_id = ?`, id).Scan(&used); err != nil {
		return err
	}
	if used > 0 {
		return ErrGenreInUse
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM genres WHERE genre_id = ?`, id)
	if err != nil {
		if errors.Is(translate(err), ErrInUse) {
			return ErrGenreInUse
		}
		return translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrGenreNotFound
	}
	return nil
}
