//go:build integration

package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovaphlow/pitchfork/service-portfolio/internal/content"
	"github.com/ovaphlow/pitchfork/service-portfolio/internal/services/entity"
	"github.com/ovaphlow/pitchfork/service-portfolio/internal/testinfra"
)

func TestServiceRepo_Postgres(t *testing.T) {
	ctx := context.Background()
	r := NewRepo(testinfra.NewPostgres(t))
	require.NoError(t, r.EnsureTable(ctx))

	s := &entity.ServiceItem{Name: "Design", Points: content.StringList{"one", "two"}}
	require.NoError(t, r.Create(ctx, s))
	assert.Positive(t, s.ID)

	got, err := r.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, content.StringList{"one", "two"}, got.Points)

	n, err := r.Update(ctx, &entity.ServiceItem{ID: s.ID, Name: "Design", Points: nil})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	got, err = r.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, content.StringList{}, got.Points)

	rows, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
