package repo

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/pitchfork/service-portfolio/internal/services/entity"
)

// Repo is the services table backed by PostgreSQL.
type Repo struct {
	db *sqlx.DB
}

func NewRepo(db *sqlx.DB) *Repo { return &Repo{db: db} }

func (r *Repo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS services (
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  points TEXT[] NOT NULL DEFAULT '{}',
  image_url TEXT NOT NULL DEFAULT ''
);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

var errNoID = errors.New("insert returned no id")

const columns = `id, name, description, points, image_url`

func (r *Repo) List(ctx context.Context) ([]entity.ServiceItem, error) {
	rows := []entity.ServiceItem{}
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+columns+` FROM services ORDER BY id DESC`); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repo) Get(ctx context.Context, id int64) (*entity.ServiceItem, error) {
	var s entity.ServiceItem
	if err := r.db.GetContext(ctx, &s, `SELECT `+columns+` FROM services WHERE id=$1`, id); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repo) Create(ctx context.Context, s *entity.ServiceItem) error {
	const q = `INSERT INTO services (name, description, points, image_url)
		VALUES (:name, :description, :points, :image_url) RETURNING id`
	rows, err := r.db.NamedQueryContext(ctx, q, s)
	if err != nil {
		return err
	}
	defer rows.Close()
	if rows.Next() {
		return rows.Scan(&s.ID)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return errNoID
}

func (r *Repo) Update(ctx context.Context, s *entity.ServiceItem) (int64, error) {
	const q = `UPDATE services SET name=:name, description=:description, points=:points, image_url=:image_url WHERE id=:id`
	res, err := r.db.NamedExecContext(ctx, q, s)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *Repo) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id=$1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
