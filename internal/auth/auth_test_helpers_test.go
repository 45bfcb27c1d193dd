package auth

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ovaphlow/pitchfork/service-portfolio/internal/auth/entity"
	"github.com/ovaphlow/pitchfork/service-portfolio/internal/auth/repo"
)

const testSecret = "test-secret-0123456789"

var testHasher = BcryptHasher{Cost: bcrypt.MinCost}

// memUsers is an in-memory UserStore.
type memUsers struct {
	mu     sync.Mutex
	rows   []entity.AdminUser
	nextID int64
	err    error
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.AdminUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.rows {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memUsers) CountByRole(_ context.Context, role entity.Role) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	n := 0
	for _, u := range m.rows {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (m *memUsers) Create(_ context.Context, u *entity.AdminUser) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	for _, existing := range m.rows {
		if existing.Email == u.Email {
			return 0, repo.ErrEmailTaken
		}
	}
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = time.Now()
	m.rows = append(m.rows, *u)
	return u.ID, nil
}

func seededStore(t *testing.T, email, password, name string) *memUsers {
	t.Helper()
	hash, err := testHasher.Hash(password)
	require.NoError(t, err)
	m := &memUsers{}
	_, err = m.Create(context.Background(), &entity.AdminUser{Email: email, PasswordHash: hash, FullName: name, Role: entity.RoleAdmin})
	require.NoError(t, err)
	return m
}

// fixedClock is a settable clock for token expiry tests.
type fixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fixedClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}
