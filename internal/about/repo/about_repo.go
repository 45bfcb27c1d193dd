package repo

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/pitchfork/service-portfolio/internal/about/entity"
)

// Repo is the about table backed by PostgreSQL.
type Repo struct {
	db *sqlx.DB
}

func NewRepo(db *sqlx.DB) *Repo { return &Repo{db: db} }

// EnsureTable creates the about table if it does not already exist.
func (r *Repo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS about (
  id BIGSERIAL PRIMARY KEY,
  title TEXT NOT NULL DEFAULT '',
  content TEXT NOT NULL DEFAULT '',
  image_url TEXT NOT NULL DEFAULT '',
  is_reverse BOOLEAN NOT NULL DEFAULT false,
  order_index INT NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_about_order_index ON about(order_index);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

var errNoID = errors.New("insert returned no id")

const columns = `id, title, content, image_url, is_reverse, order_index`

func (r *Repo) List(ctx context.Context) ([]entity.About, error) {
	rows := []entity.About{}
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+columns+` FROM about ORDER BY order_index ASC, id ASC`); err != nil {
		return nil, err
	}
	return rows, nil
}

// Get returns one row or sql.ErrNoRows.
func (r *Repo) Get(ctx context.Context, id int64) (*entity.About, error) {
	var a entity.About
	if err := r.db.GetContext(ctx, &a, `SELECT `+columns+` FROM about WHERE id=$1`, id); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a and fills in the id assigned by the store.
func (r *Repo) Create(ctx context.Context, a *entity.About) error {
	const q = `INSERT INTO about (title, content, image_url, is_reverse, order_index)
		VALUES (:title, :content, :image_url, :is_reverse, :order_index) RETURNING id`
	rows, err := r.db.NamedQueryContext(ctx, q, a)
	if err != nil {
		return err
	}
	defer rows.Close()
	if rows.Next() {
		return rows.Scan(&a.ID)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return errNoID
}

// Update overwrites every mutable column and returns the affected row count.
func (r *Repo) Update(ctx context.Context, a *entity.About) (int64, error) {
	const q = `UPDATE about SET title=:title, content=:content, image_url=:image_url,
		is_reverse=:is_reverse, order_index=:order_index WHERE id=:id`
	res, err := r.db.NamedExecContext(ctx, q, a)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *Repo) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM about WHERE id=$1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
