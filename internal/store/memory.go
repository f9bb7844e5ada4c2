package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/ayush/todo-api/internal/models"
)

// MemoryUserStore is a map-backed credential store for tests and local runs.
type MemoryUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User // keyed by email
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]*models.User)}
}

func (s *MemoryUserStore) CreateUser(ctx context.Context, email, username, password string) (*models.User, error) {
	if err := checkPasswordPolicy(password); err != nil {
		return nil, err
	}
	hashed, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[email]; ok {
		return nil, ErrEmailTaken
	}
	u := &models.User{
		ID:       uuid.New().String(),
		Username: username,
		Email:    email,
		Password: hashed,
	}
	s.users[email] = u
	out := *u
	return &out, nil
}

func (s *MemoryUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	out := *u
	return &out, nil
}

func (s *MemoryUserStore) CheckPassword(ctx context.Context, email, password string) (bool, error) {
	u, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return comparePassword(u.Password, password), nil
}

// MemoryItemStore is a map-backed item store with a monotonic id counter.
type MemoryItemStore struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]*models.Item
}

func NewMemoryItemStore() *MemoryItemStore {
	return &MemoryItemStore{items: make(map[int64]*models.Item)}
}

func (s *MemoryItemStore) List(ctx context.Context) ([]models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []models.Item
	for id := int64(1); id <= s.nextID; id++ {
		if it, ok := s.items[id]; ok {
			items = append(items, *it)
		}
	}
	return items, nil
}

func (s *MemoryItemStore) Create(ctx context.Context, title, description string, done bool) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	it := &models.Item{ID: s.nextID, Title: title, Description: description, Done: done}
	s.items[it.ID] = it
	out := *it
	return &out, nil
}

func (s *MemoryItemStore) Get(ctx context.Context, id int64) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *it
	return &out, nil
}

func (s *MemoryItemStore) Update(ctx context.Context, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[item.ID]; !ok {
		return ErrNotFound
	}
	stored := *item
	s.items[item.ID] = &stored
	return nil
}

func (s *MemoryItemStore) Delete(ctx context.Context, id int64) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(s.items, id)
	out := *it
	return &out, nil
}
