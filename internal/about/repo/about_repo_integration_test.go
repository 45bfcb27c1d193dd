//go:build integration

package repo

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovaphlow/pitchfork/service-portfolio/internal/about/entity"
	"github.com/ovaphlow/pitchfork/service-portfolio/internal/testinfra"
)

func TestAboutRepo_Postgres(t *testing.T) {
	ctx := context.Background()
	r := NewRepo(testinfra.NewPostgres(t))
	require.NoError(t, r.EnsureTable(ctx))

	rows, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)

	second := &entity.About{Title: "Second", OrderIndex: 2}
	first := &entity.About{Title: "First", OrderIndex: 1, IsReverse: true}
	require.NoError(t, r.Create(ctx, second))
	require.NoError(t, r.Create(ctx, first))

	rows, err = r.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "First", rows[0].Title)
	assert.True(t, rows[0].IsReverse)

	n, err := r.Update(ctx, &entity.About{ID: second.ID, Title: "Renamed"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	got, err := r.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Zero(t, got.OrderIndex)

	n, err = r.Update(ctx, &entity.About{ID: 999, Title: "x"})
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = r.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	_, err = r.Get(ctx, first.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
