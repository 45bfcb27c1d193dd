package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-portfolio/internal/content"
	"github.com/ovaphlow/pitchfork/service-portfolio/internal/services/entity"
)

// sliceStore keeps rows newest first, mirroring ORDER BY id DESC.
type sliceStore struct {
	rows   []entity.ServiceItem
	nextID int64
	err    error
}

func (s *sliceStore) List(context.Context) ([]entity.ServiceItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	return append([]entity.ServiceItem(nil), s.rows...), nil
}

func (s *sliceStore) Get(_ context.Context, id int64) (*entity.ServiceItem, error) {
	for _, r := range s.rows {
		if r.ID == id {
			r := r
			return &r, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *sliceStore) Create(_ context.Context, item *entity.ServiceItem) error {
	if s.err != nil {
		return s.err
	}
	s.nextID++
	item.ID = s.nextID
	s.rows = append([]entity.ServiceItem{*item}, s.rows...)
	return nil
}

func (s *sliceStore) Update(_ context.Context, item *entity.ServiceItem) (int64, error) {
	for i := range s.rows {
		if s.rows[i].ID == item.ID {
			s.rows[i] = *item
			return 1, nil
		}
	}
	return 0, nil
}

func (s *sliceStore) Delete(_ context.Context, id int64) (int64, error) {
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func router(store Store) http.Handler {
	h := NewHandler(NewItemService(store), zap.NewNop().Sugar())
	r := chi.NewRouter()
	r.Get("/api/services", h.List)
	r.Get("/api/services/{id}", h.Get)
	r.Post("/api/services", h.Create)
	r.Put("/api/services/{id}", h.Update)
	r.Delete("/api/services/{id}", h.Delete)
	return r
}

func send(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestServicesLifecycle(t *testing.T) {
	store := &sliceStore{}
	h := router(store)

	rec := send(h, http.MethodPost, "/api/services", `{"name":"Web design","points":["Responsive","Fast"],"image_url":"/web.png"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"name":"Web design","description":"","points":["Responsive","Fast"],"image_url":"/web.png"}`, rec.Body.String())

	rec = send(h, http.MethodPost, "/api/services", `{"name":"Hosting"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"points":[]`)

	rec = send(h, http.MethodGet, "/api/services", "")
	var list []entity.ServiceItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, int64(2), list[0].ID)

	rec = send(h, http.MethodPut, "/api/services/1", `{"name":"Web design","description":"new"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	got, err := NewItemService(store).Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Description)
	assert.Equal(t, content.StringList{}, got.Points)
	assert.Empty(t, got.ImageURL)

	require.Equal(t, http.StatusOK, send(h, http.MethodDelete, "/api/services/2", "").Code)
	rec = send(h, http.MethodGet, "/api/services/2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Service not found"}`, rec.Body.String())
}

func TestServicesErrors(t *testing.T) {
	store := &sliceStore{}
	h := router(store)

	assert.Equal(t, http.StatusBadRequest, send(h, http.MethodPost, "/api/services", `{"name":"`+strings.Repeat("n", 256)+`"}`).Code)
	assert.Equal(t, http.StatusBadRequest, send(h, http.MethodPost, "/api/services", `{"points":{"a":1}}`).Code)
	assert.Equal(t, http.StatusOK, send(h, http.MethodPost, "/api/services", `{"description":"nameless"}`).Code)
	assert.Equal(t, http.StatusNotFound, send(h, http.MethodPut, "/api/services/3", `{"name":"x"}`).Code)
	assert.Equal(t, http.StatusNotFound, send(h, http.MethodDelete, "/api/services/0", "").Code)

	store.err = errors.New("relation \"services\" does not exist")
	rec := send(h, http.MethodPost, "/api/services", `{"name":"x"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "relation")
}
