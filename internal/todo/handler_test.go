package todo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush/todo-api/internal/models"
	"github.com/ayush/todo-api/internal/store"
)

// spyStore counts store calls so tests can assert a handler short-circuited.
type spyStore struct {
	ItemStore
	calls int
}

func (s *spyStore) List(ctx context.Context) ([]models.Item, error) {
	s.calls++
	return s.ItemStore.List(ctx)
}

func (s *spyStore) Create(ctx context.Context, title, description string, done bool) (*models.Item, error) {
	s.calls++
	return s.ItemStore.Create(ctx, title, description, done)
}

func (s *spyStore) Get(ctx context.Context, id int64) (*models.Item, error) {
	s.calls++
	return s.ItemStore.Get(ctx, id)
}

func (s *spyStore) Update(ctx context.Context, item *models.Item) error {
	s.calls++
	return s.ItemStore.Update(ctx, item)
}

func (s *spyStore) Delete(ctx context.Context, id int64) (*models.Item, error) {
	s.calls++
	return s.ItemStore.Delete(ctx, id)
}

func newTestRouter() (*chi.Mux, *spyStore) {
	items := &spyStore{ItemStore: store.NewMemoryItemStore()}
	h := NewHandler(items)

	r := chi.NewRouter()
	r.Get("/api/Todo", h.List)
	r.Post("/api/Todo", h.Create)
	r.Get("/api/Todo/{id}", h.Get)
	r.Put("/api/Todo/{id}", h.Update)
	r.Delete("/api/Todo/{id}", h.Delete)
	return r, items
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func mustCreate(t *testing.T, r http.Handler, body string) models.Item {
	t.Helper()
	rec := do(r, http.MethodPost, "/api/Todo", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	var it models.Item
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&it))
	return it
}

func TestList_EmptyIsArray(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter()
	rec := do(r, http.MethodGet, "/api/Todo", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestCreateGet_RoundTrip(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter()
	created := mustCreate(t, r, `{"title":"buy milk","description":"2 liters","done":false}`)
	require.NotZero(t, created.ID)

	rec := do(r, http.MethodGet, "/api/Todo/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Item
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, created, got)
}

func TestCreate_AssignsMonotonicIDs(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter()
	a := mustCreate(t, r, `{"title":"first"}`)
	b := mustCreate(t, r, `{"title":"second"}`)
	assert.Greater(t, b.ID, a.ID)
}

func TestCreate_InvalidPayload(t *testing.T) {
	t.Parallel()

	r, items := newTestRouter()
	for name, body := range map[string]string{
		"malformed json": `{"title":`,
		"empty title":    `{"description":"no title"}`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := do(r, http.MethodPost, "/api/Todo", body)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.JSONEq(t, `"Something went wrong!"`, rec.Body.String())
		})
	}
	assert.Zero(t, items.calls)
}

func TestGet_NotFound(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter()
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/Todo/42", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/Todo/abc", "").Code)
}

func TestUpdate_Success(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter()
	mustCreate(t, r, `{"title":"old","description":"old desc"}`)

	rec := do(r, http.MethodPut, "/api/Todo/1",
		`{"id":1,"title":"new","description":"new desc","done":true}`)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())

	rec = do(r, http.MethodGet, "/api/Todo/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Item
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, models.Item{ID: 1, Title: "new", Description: "new desc", Done: true}, got)
}

func TestUpdate_IDMismatch(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter()
	created := mustCreate(t, r, `{"title":"keep me"}`)

	rec := do(r, http.MethodPut, "/api/Todo/1", `{"id":2,"title":"changed"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// stored item untouched
	rec = do(r, http.MethodGet, "/api/Todo/1", "")
	var got models.Item
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, created, got)
}

func TestUpdate_NotFound(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter()
	rec := do(r, http.MethodPut, "/api/Todo/9", `{"id":9,"title":"ghost"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDelete_Success(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter()
	created := mustCreate(t, r, `{"title":"short-lived","done":true}`)

	rec := do(r, http.MethodDelete, "/api/Todo/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var removed models.Item
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&removed))
	assert.Equal(t, created, removed)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/Todo/1", "").Code)
}

func TestDelete_ZeroID(t *testing.T) {
	t.Parallel()

	r, items := newTestRouter()
	rec := do(r, http.MethodDelete, "/api/Todo/0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, items.calls, "zero id must be rejected before the store is hit")
}

func TestDelete_NotFound(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter()
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/api/Todo/7", "").Code)
}
