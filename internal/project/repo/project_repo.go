package repo

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/pitchfork/service-portfolio/internal/project/entity"
)

// Repo is the projects table backed by PostgreSQL.
type Repo struct {
	db *sqlx.DB
}

func NewRepo(db *sqlx.DB) *Repo { return &Repo{db: db} }

// EnsureTable creates the projects table if it does not already exist.
// features and tech are text[] columns.
func (r *Repo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS projects (
  id BIGSERIAL PRIMARY KEY,
  title TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  image_url TEXT NOT NULL DEFAULT '',
  features TEXT[] NOT NULL DEFAULT '{}',
  tech TEXT[] NOT NULL DEFAULT '{}',
  github TEXT NOT NULL DEFAULT '',
  live TEXT NOT NULL DEFAULT '',
  date_added TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

var errNoID = errors.New("insert returned no id")

const columns = `id, title, category, description, image_url, features, tech, github, live, date_added`

// List returns all projects, newest first.
func (r *Repo) List(ctx context.Context) ([]entity.Project, error) {
	rows := []entity.Project{}
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+columns+` FROM projects ORDER BY id DESC`); err != nil {
		return nil, err
	}
	return rows, nil
}

// Get returns one row or sql.ErrNoRows.
func (r *Repo) Get(ctx context.Context, id int64) (*entity.Project, error) {
	var p entity.Project
	if err := r.db.GetContext(ctx, &p, `SELECT `+columns+` FROM projects WHERE id=$1`, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts p and fills in the id assigned by the store.
func (r *Repo) Create(ctx context.Context, p *entity.Project) error {
	const q = `INSERT INTO projects (title, category, description, image_url, features, tech, github, live, date_added)
		VALUES (:title, :category, :description, :image_url, :features, :tech, :github, :live, :date_added) RETURNING id`
	rows, err := r.db.NamedQueryContext(ctx, q, p)
	if err != nil {
		return err
	}
	defer rows.Close()
	if rows.Next() {
		return rows.Scan(&p.ID)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return errNoID
}

// Update overwrites every mutable column and returns the affected row count.
// date_added is not mutable.
func (r *Repo) Update(ctx context.Context, p *entity.Project) (int64, error) {
	const q = `UPDATE projects SET title=:title, category=:category, description=:description,
		image_url=:image_url, features=:features, tech=:tech, github=:github, live=:live
		WHERE id=:id`
	res, err := r.db.NamedExecContext(ctx, q, p)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *Repo) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id=$1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
