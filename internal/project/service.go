package project

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ovaphlow/pitchfork/service-portfolio/internal/project/entity"
)

// Store is the persistence the project service depends on; *repo.Repo
// satisfies it.
type Store interface {
	List(ctx context.Context) ([]entity.Project, error)
	Get(ctx context.Context, id int64) (*entity.Project, error)
	Create(ctx context.Context, p *entity.Project) error
	Update(ctx context.Context, p *entity.Project) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

var ErrNotFound = errors.New("project not found")

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(s Store) *Service {
	return &Service{store: s, now: time.Now}
}

// List returns every project, newest first; never nil.
func (s *Service) List(ctx context.Context) ([]entity.Project, error) {
	rows, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []entity.Project{}
	}
	return rows, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*entity.Project, error) {
	p, err := s.store.Get(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

// Create stores a new project stamped with the server clock.
func (s *Service) Create(ctx context.Context, in entity.Input) (*entity.Project, error) {
	p := in.Row(0)
	p.DateAdded = s.now().UTC().Truncate(time.Microsecond)
	if err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces every mutable field; omitted lists become empty.
func (s *Service) Update(ctx context.Context, id int64, in entity.Input) error {
	n, err := s.store.Update(ctx, in.Row(id))
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	n, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
