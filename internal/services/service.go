package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ovaphlow/pitchfork/service-portfolio/internal/services/entity"
)

type Store interface {
	List(ctx context.Context) ([]entity.ServiceItem, error)
	Get(ctx context.Context, id int64) (*entity.ServiceItem, error)
	Create(ctx context.Context, s *entity.ServiceItem) error
	Update(ctx context.Context, s *entity.ServiceItem) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

var ErrNotFound = errors.New("service not found")

// ItemService manages the services content table.
type ItemService struct {
	store Store
}

func NewItemService(s Store) *ItemService {
	return &ItemService{store: s}
}

func (s *ItemService) List(ctx context.Context) ([]entity.ServiceItem, error) {
	rows, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []entity.ServiceItem{}
	}
	return rows, nil
}

func (s *ItemService) Get(ctx context.Context, id int64) (*entity.ServiceItem, error) {
	item, err := s.store.Get(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return item, err
}

func (s *ItemService) Create(ctx context.Context, in entity.Input) (*entity.ServiceItem, error) {
	item := in.Row(0)
	if err := s.store.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) Update(ctx context.Context, id int64, in entity.Input) error {
	n, err := s.store.Update(ctx, in.Row(id))
	switch {
	case err != nil:
		return err
	case n == 0:
		return ErrNotFound
	}
	return nil
}

func (s *ItemService) Delete(ctx context.Context, id int64) error {
	n, err := s.store.Delete(ctx, id)
	switch {
	case err != nil:
		return err
	case n == 0:
		return ErrNotFound
	}
	return nil
}
