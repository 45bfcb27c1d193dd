// Package portfoliotest provides in-memory stores and a fully wired router
// for tests that need the HTTP surface without a database.
package portfoliotest

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"
)

// Table is an in-memory row store that satisfies the about, project and
// services Store interfaces for its row type.
type Table[T any] struct {
	mu     sync.Mutex
	rows   []T
	nextID int64

	id   func(*T) *int64
	less func(a, b T) bool
	// keep copies columns an update must not change from old into updated.
	keep func(old, updated *T)

	// Err, when set, is returned by every call.
	Err error
}

func (t *Table[T]) List(context.Context) ([]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return nil, t.Err
	}
	out := append([]T(nil), t.rows...)
	sort.SliceStable(out, func(i, j int) bool { return t.less(out[i], out[j]) })
	return out, nil
}

func (t *Table[T]) Get(_ context.Context, id int64) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return nil, t.Err
	}
	if i := t.index(id); i >= 0 {
		row := t.rows[i]
		return &row, nil
	}
	return nil, sql.ErrNoRows
}

func (t *Table[T]) Create(_ context.Context, row *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return t.Err
	}
	t.nextID++
	*t.id(row) = t.nextID
	t.rows = append(t.rows, *row)
	return nil
}

func (t *Table[T]) Update(_ context.Context, row *T) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return 0, t.Err
	}
	i := t.index(*t.id(row))
	if i < 0 {
		return 0, nil
	}
	updated := *row
	if t.keep != nil {
		t.keep(&t.rows[i], &updated)
	}
	t.rows[i] = updated
	return 1, nil
}

func (t *Table[T]) Delete(_ context.Context, id int64) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return 0, t.Err
	}
	i := t.index(id)
	if i < 0 {
		return 0, nil
	}
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	return 1, nil
}

// Len reports the number of stored rows.
func (t *Table[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rows)
}

func (t *Table[T]) index(id int64) int {
	for i := range t.rows {
		if *t.id(&t.rows[i]) == id {
			return i
		}
	}
	return -1
}

var errClosed = errors.New("database is closed")
