// Package memory implements the default in-memory store, seeded with the
// fixture user and todo the service ships with.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ccatimbang/todo-api/internal/models"
	"github.com/ccatimbang/todo-api/internal/storage"
)

// Seed credentials: username "admin", password "password".
const (
	seedUserID       = "1"
	seedUsername     = "admin"
	seedEmail        = "admin@test.com"
	seedPasswordHash = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"
)

// Ensure Store satisfies the storage interfaces at compile time.
var (
	_ storage.UserStore = (*Store)(nil)
	_ storage.TodoStore = (*Store)(nil)
)

// Store keeps users and todos in slices guarded by a single mutex. Todos
// stay in insertion order; every read hands out copies.
type Store struct {
	mu    sync.Mutex
	users []models.User
	todos []models.Todo
}

// New creates a store pre-populated with the seed user and todo.
func New() *Store {
	now := time.Now()
	return &Store{
		users: []models.User{
			{
				ID:           seedUserID,
				Username:     seedUsername,
				Email:        seedEmail,
				PasswordHash: seedPasswordHash,
				CreatedAt:    now,
			},
		},
		todos: []models.Todo{
			{
				ID:          "1",
				Title:       "Learn Testing",
				Description: "Study automated testing frameworks",
				Completed:   false,
				UserID:      seedUserID,
				CreatedAt:   now,
			},
		},
	}
}

// FindByUsername returns the user with the given username.
func (s *Store) FindByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

// FindByID returns the user with the given id.
func (s *Store) FindByID(_ context.Context, id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

// ListByOwner returns the owner's todos in insertion order.
func (s *Store) ListByOwner(_ context.Context, ownerID string) ([]models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]models.Todo, 0)
	for _, t := range s.todos {
		if t.UserID == ownerID {
			result = append(result, t)
		}
	}
	return result, nil
}

// Create appends the todo with a fresh id and creation timestamp.
func (s *Store) Create(_ context.Context, todo models.Todo) (models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo.ID = uuid.NewString()
	todo.CreatedAt = time.Now()
	s.todos = append(s.todos, todo)
	return todo, nil
}

// Update applies the patch to the matching owned todo in place.
func (s *Store) Update(_ context.Context, id, ownerID string, patch storage.TodoPatch) (models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findOwned(id, ownerID)
	if idx == -1 {
		return models.Todo{}, storage.ErrNotFound
	}

	todo := &s.todos[idx]
	if patch.Title != nil && *patch.Title != "" {
		todo.Title = *patch.Title
	}
	if patch.Description != nil {
		todo.Description = *patch.Description
	}
	if patch.Completed != nil {
		todo.Completed = *patch.Completed
	}
	return *todo, nil
}

// Delete removes the matching owned todo and returns its snapshot.
func (s *Store) Delete(_ context.Context, id, ownerID string) (models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findOwned(id, ownerID)
	if idx == -1 {
		return models.Todo{}, storage.ErrNotFound
	}

	deleted := s.todos[idx]
	s.todos = append(s.todos[:idx], s.todos[idx+1:]...)
	return deleted, nil
}

// findOwned locates a todo by id and owner simultaneously so a mismatch on
// either looks identical to the caller. Callers must hold s.mu.
func (s *Store) findOwned(id, ownerID string) int {
	for i, t := range s.todos {
		if t.ID == id && t.UserID == ownerID {
			return i
		}
	}
	return -1
}
