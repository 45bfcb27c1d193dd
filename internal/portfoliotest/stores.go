package portfoliotest

import (
	"context"
	"database/sql"
	"sync"
	"time"

	aboutentity "github.com/ovaphlow/pitchfork/service-portfolio/internal/about/entity"
	authentity "github.com/ovaphlow/pitchfork/service-portfolio/internal/auth/entity"
	"github.com/ovaphlow/pitchfork/service-portfolio/internal/auth/repo"
	projectentity "github.com/ovaphlow/pitchfork/service-portfolio/internal/project/entity"
	serviceentity "github.com/ovaphlow/pitchfork/service-portfolio/internal/services/entity"
)

// NewAboutTable orders like the about repo: order_index, then id.
func NewAboutTable() *Table[aboutentity.About] {
	return &Table[aboutentity.About]{
		id: func(a *aboutentity.About) *int64 { return &a.ID },
		less: func(a, b aboutentity.About) bool {
			if a.OrderIndex != b.OrderIndex {
				return a.OrderIndex < b.OrderIndex
			}
			return a.ID < b.ID
		},
	}
}

// NewProjectTable orders newest first and keeps date_added across updates.
func NewProjectTable() *Table[projectentity.Project] {
	return &Table[projectentity.Project]{
		id:   func(p *projectentity.Project) *int64 { return &p.ID },
		less: func(a, b projectentity.Project) bool { return a.ID > b.ID },
		keep: func(old, updated *projectentity.Project) { updated.DateAdded = old.DateAdded },
	}
}

func NewServiceTable() *Table[serviceentity.ServiceItem] {
	return &Table[serviceentity.ServiceItem]{
		id:   func(s *serviceentity.ServiceItem) *int64 { return &s.ID },
		less: func(a, b serviceentity.ServiceItem) bool { return a.ID > b.ID },
	}
}

// Users is an in-memory credential table.
type Users struct {
	mu     sync.Mutex
	rows   []authentity.AdminUser
	nextID int64
}

func (u *Users) GetByEmail(_ context.Context, email string) (*authentity.AdminUser, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, row := range u.rows {
		if row.Email == email {
			row := row
			return &row, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (u *Users) CountByRole(_ context.Context, role authentity.Role) (int, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	n := 0
	for _, row := range u.rows {
		if row.Role == role {
			n++
		}
	}
	return n, nil
}

func (u *Users) Create(_ context.Context, user *authentity.AdminUser) (int64, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, row := range u.rows {
		if row.Email == user.Email {
			return 0, repo.ErrEmailTaken
		}
	}
	u.nextID++
	user.ID = u.nextID
	user.CreatedAt = time.Now()
	u.rows = append(u.rows, *user)
	return user.ID, nil
}

// Pinger reports the database as up until Down is set.
type Pinger struct {
	mu   sync.Mutex
	down bool
}

func (p *Pinger) SetDown(down bool) {
	p.mu.Lock()
	p.down = down
	p.mu.Unlock()
}

func (p *Pinger) PingContext(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.down {
		return errClosed
	}
	return nil
}
