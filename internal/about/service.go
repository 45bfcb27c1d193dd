package about

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ovaphlow/pitchfork/service-portfolio/internal/about/entity"
)

// Store is the persistence the about service depends on; *repo.Repo
// satisfies it.
type Store interface {
	List(ctx context.Context) ([]entity.About, error)
	Get(ctx context.Context, id int64) (*entity.About, error)
	Create(ctx context.Context, a *entity.About) error
	Update(ctx context.Context, a *entity.About) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

var ErrNotFound = errors.New("about section not found")

type Service struct {
	store Store
}

func NewService(s Store) *Service {
	return &Service{store: s}
}

// List returns every section ordered by order_index; never nil.
func (s *Service) List(ctx context.Context) ([]entity.About, error) {
	rows, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []entity.About{}
	}
	return rows, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*entity.About, error) {
	a, err := s.store.Get(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

func (s *Service) Create(ctx context.Context, in entity.Input) (*entity.About, error) {
	a := in.Row(0)
	if err := s.store.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Update replaces the whole row.
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
