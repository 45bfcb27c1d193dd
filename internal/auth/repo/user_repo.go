package repo

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/pitchfork/service-portfolio/internal/auth/entity"
)

// UserRepo provides data access for the usercredentials table using sqlx.
type UserRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

// EnsureTable creates the usercredentials table if not exists (idempotent).
func (r *UserRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS usercredentials (
  id BIGSERIAL PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  fullname TEXT NOT NULL DEFAULT '',
  role TEXT NOT NULL DEFAULT 'admin',
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_usercredentials_role ON usercredentials(role);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// GetByEmail returns the credential whose email matches exactly, or sql.ErrNoRows.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.AdminUser, error) {
	const q = `SELECT id, email, password_hash, fullname, role, created_at FROM usercredentials WHERE email=$1`
	var u entity.AdminUser
	if err := r.db.GetContext(ctx, &u, q, email); err != nil {
		return nil, err
	}
	return &u, nil
}

// CountByRole counts credentials holding role.
func (r *UserRepo) CountByRole(ctx context.Context, role entity.Role) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM usercredentials WHERE role=$1`, role); err != nil {
		return 0, err
	}
	return n, nil
}

// Create inserts a credential and returns its id. An existing row with the
// same email is left untouched and reported as ErrEmailTaken.
func (r *UserRepo) Create(ctx context.Context, u *entity.AdminUser) (int64, error) {
	const q = `INSERT INTO usercredentials (email, password_hash, fullname, role)
		VALUES (:email, :password_hash, :fullname, :role)
		ON CONFLICT (email) DO NOTHING
		RETURNING id, created_at`
	rows, err := r.db.NamedQueryContext(ctx, q, u)
	if err != nil {
		return 0, err
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&u.ID, &u.CreatedAt); err != nil {
			return 0, err
		}
		return u.ID, nil
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	return 0, ErrEmailTaken
}

var ErrEmailTaken = errors.New("email already registered")
