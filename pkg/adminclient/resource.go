package adminclient

import (
	"context"
	"fmt"
	"net/http"
	"sync"
)

// Resource is one content table as seen from the dashboard: its API path
// and the locally held list.
type Resource[T any] struct {
	c    *Client
	path string
	id   func(*T) *int64
	// patch brings an updated row in line with what the server stores:
	// server-owned columns from old, list fields normalised.
	patch func(old, updated *T)

	mu    sync.RWMutex
	items []T
}

func newResource[T any](c *Client, path string, id func(*T) *int64, patch func(old, updated *T)) *Resource[T] {
	return &Resource[T]{c: c, path: path, id: id, patch: patch, items: []T{}}
}

// Items returns a copy of the local list.
func (r *Resource[T]) Items() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]T{}, r.items...)
}

// Fetch replaces the local list with the server's.
func (r *Resource[T]) Fetch(ctx context.Context) ([]T, error) {
	var rows []T
	if err := r.c.do(ctx, http.MethodGet, r.path, nil, &rows, false); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []T{}
	}
	r.mu.Lock()
	r.items = rows
	r.mu.Unlock()
	return append([]T{}, rows...), nil
}

// Get reads one row without touching the local list.
func (r *Resource[T]) Get(ctx context.Context, id int64) (*T, error) {
	var row T
	if err := r.c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", r.path, id), nil, &row, false); err != nil {
		return nil, err
	}
	return &row, nil
}

// Create posts item and prepends the stored row to the local list.
func (r *Resource[T]) Create(ctx context.Context, item T) (T, error) {
	var created T
	if err := r.c.do(ctx, http.MethodPost, r.path, item, &created, true); err != nil {
		return created, err
	}
	r.mu.Lock()
	r.items = append([]T{created}, r.items...)
	r.mu.Unlock()
	return created, nil
}

// Update replaces row id with item, on the server and then locally.
func (r *Resource[T]) Update(ctx context.Context, id int64, item T) error {
	var ack Ack
	if err := r.c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", r.path, id), item, &ack, true); err != nil {
		return err
	}
	*r.id(&item) = id
	r.mu.Lock()
	for i := range r.items {
		if *r.id(&r.items[i]) == id {
			if r.patch != nil {
				r.patch(&r.items[i], &item)
			}
			r.items[i] = item
		}
	}
	r.mu.Unlock()
	return nil
}

// Delete removes row id on the server and filters it out locally.
func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	var ack Ack
	if err := r.c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", r.path, id), nil, &ack, true); err != nil {
		return err
	}
	r.mu.Lock()
	kept := r.items[:0:0]
	for _, it := range r.items {
		if *r.id(&it) != id {
			kept = append(kept, it)
		}
	}
	r.items = kept
	r.mu.Unlock()
	return nil
}
