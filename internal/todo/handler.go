package todo

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ayush/todo-api/internal/models"
	"github.com/ayush/todo-api/internal/store"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ItemStore defines the interface for item persistence. Lookups return
// store.ErrNotFound when no item matches.
type ItemStore interface {
	List(ctx context.Context) ([]models.Item, error)
	Create(ctx context.Context, title, description string, done bool) (*models.Item, error)
	Get(ctx context.Context, id int64) (*models.Item, error)
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, id int64) (*models.Item, error)
}

// Handler holds todo HTTP handlers. Authentication is enforced by the
// middleware in front of these routes, not re-checked here.
type Handler struct {
	items ItemStore
}

func NewHandler(items ItemStore) *Handler {
	return &Handler{items: items}
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

// List returns every item in the store.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.List(r.Context())
	if err != nil {
		log.Printf("list items: %v", err)
		http.Error(w, `{"error":"database error"}`, http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []models.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

// Create inserts a new item and returns it with its assigned id. Invalid
// payloads get the generic 500 body this API has always answered with.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.Item
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		writeJSON(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	item, err := h.items.Create(r.Context(), req.Title, req.Description, req.Done)
	if err != nil {
		log.Printf("create item: %v", err)
		writeJSON(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// Get returns a single item, or 404 when it does not exist.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	item, err := h.items.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("get item %d: %v", id, err)
		http.Error(w, `{"error":"database error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Update overwrites title, description and done of an existing item. The id
// in the body must match the path; the id itself never changes.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}

	var req models.Item
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	if req.ID != id {
		http.Error(w, `{"error":"id mismatch"}`, http.StatusBadRequest)
		return
	}

	err := h.items.Update(r.Context(), &req)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("update item %d: %v", id, err)
		http.Error(w, `{"error":"database error"}`, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes an item and returns its prior state. The zero id is
// rejected before any store access.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	if id == 0 {
		http.Error(w, `{"error":"invalid id"}`, http.StatusBadRequest)
		return
	}

	item, err := h.items.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("delete item %d: %v", id, err)
		http.Error(w, `{"error":"database error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, item)
}
