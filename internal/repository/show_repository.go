package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/stagex-boxoffice/internal/model"
)

// ShowRepo manages shows and their genre links.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

const showSelect = `SELECT s.show_id, s.title, s.director, s.duration_minutes, s.poster_image_url, s.description, s.status,
       (SELECT COUNT(*) FROM performances p WHERE p.show_id = s.show_id) AS performances
FROM shows s`

func scanShow(sc interface{ Scan(...any) error }) (model.Show, error) {
	var (
		s     model.Show
		count int
	)
	if err := sc.Scan(&s.ID, &s.Title, &s.Director, &s.DurationMinutes, &s.PosterImageURL, &s.Description, &s.Status, &count); err != nil {
		return model.Show{}, err
	}
	s.CanDelete = count == 0
	s.Genres = []model.Genre{}
	return s, nil
}

// List returns shows, newest first.  keyword matches part of the title;
// a non-zero genreID keeps shows tagged with that genre.
func (r *ShowRepo) List(ctx context.Context, keyword string, genreID uint64) ([]model.Show, error) {
	keyword = strings.TrimSpace(keyword)
	const where = ` WHERE (? = '' OR s.title LIKE CONCAT('%', ?, '%'))
  AND (? = 0 OR EXISTS (SELECT 1 FROM show_genres sg WHERE sg.show_id = s.show_id AND sg.genre_id = ?))
ORDER BY s.show_id DESC`
	rows, err := r.db.QueryContext(ctx, showSelect+where, keyword, keyword, genreID, genreID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Show{}
	for rows.Next() {
		s, err := scanShow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachGenres(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns ErrShowNotFound when the id is unknown.
func (r *ShowRepo) GetByID(ctx context.Context, id uint64) (*model.Show, error) {
	s, err := scanShow(r.db.QueryRowContext(ctx, showSelect+` WHERE s.show_id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	list := []model.Show{s}
	if err := r.attachGenres(ctx, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

func (r *ShowRepo) attachGenres(ctx context.Context, shows []model.Show) error {
	if len(shows) == 0 {
		return nil
	}
	byID := make(map[uint64]int, len(shows))
	args := make([]any, len(shows))
	for i, s := range shows {
		byID[s.ID] = i
		args[i] = s.ID
	}
	q := `SELECT sg.show_id, g.genre_id, g.genre_name FROM show_genres sg
JOIN genres g ON g.genre_id = sg.genre_id
WHERE sg.show_id IN (` + placeholders(len(args)) + `) ORDER BY g.genre_id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			showID uint64
			g      model.Genre
		)
		if err := rows.Scan(&showID, &g.ID, &g.Name); err != nil {
			return err
		}
		if i, ok := byID[showID]; ok {
			shows[i].Genres = append(shows[i].Genres, g)
		}
	}
	return rows.Err()
}

// Save inserts s when its ID is 0 and updates it otherwise.  The show's
// genre links are replaced by genreIDs in the same transaction.  An
// unknown genre id fails with ErrUnknownReference.
func (r *ShowRepo) Save(ctx context.Context, s *model.Show, genreIDs []uint64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if s.ID == 0 {
		const ins = `INSERT INTO shows (title, director, duration_minutes, poster_image_url, description, status) VALUES (?, ?, ?, ?, ?, ?)`
		res, err := tx.ExecContext(ctx, ins, s.Title, s.Director, s.DurationMinutes, s.PosterImageURL, s.Description, s.Status)
		if err != nil {
			return translate(err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		s.ID = uint64(id)
	} else {
		var locked uint64
		err = tx.QueryRowContext(ctx, `SELECT show_id FROM shows WHERE show_id = ? FOR UPDATE`, s.ID).Scan(&locked)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrShowNotFound
		}
		if err != nil {
			return err
		}
		const upd = `UPDATE shows SET title = ?, director = ?, duration_minutes = ?, poster_image_url = ?, description = ?, status = ? WHERE show_id = ?`
		if _, err = tx.ExecContext(ctx, upd, s.Title, s.Director, s.DurationMinutes, s.PosterImageURL, s.Description, s.Status, s.ID); err != nil {
			return translate(err)
		}
		if _, err = tx.ExecContext(ctx, `DELETE FROM show_genres WHERE show_id = ?`, s.ID); err != nil {
			return err
		}
	}

	for _, gid := range genreIDs {
		if _, err = tx.ExecContext(ctx, `INSERT INTO show_genres (show_id, genre_id) VALUES (?, ?)`, s.ID, gid); err != nil {
			return translate(err)
		}
	}
	return tx.Commit()
}

// Delete removes a show and its genre links.  Shows with performances are
// kept and ErrShowScheduled is returned.
func (r *ShowRepo) Delete(ctx context.Context, id uint64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = showLock.lock(ctx, tx, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM show_genres WHERE show_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM shows WHERE show_id = ?`, id); err != nil {
		return translate(err)
	}
	return tx.Commit()
}

// placeholders returns "?, ?, ..." with n marks.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
