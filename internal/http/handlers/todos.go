package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ccatimbang/todo-api/internal/auth"
	"github.com/ccatimbang/todo-api/internal/middleware"
	"github.com/ccatimbang/todo-api/internal/models"
	"github.com/ccatimbang/todo-api/internal/models/dto"
	"github.com/ccatimbang/todo-api/internal/storage"
)

// TodoHandler owns the per-user todo CRUD endpoints. Every route requires a
// bearer token; the caller identity from the token scopes all store access.
type TodoHandler struct {
	todos  storage.TodoStore
	tokens *auth.TokenManager
}

// NewTodoHandler constructs the handler.
func NewTodoHandler(todos storage.TodoStore, tokens *auth.TokenManager) *TodoHandler {
	return &TodoHandler{todos: todos, tokens: tokens}
}

// Register attaches todo routes to the mux, all behind the auth guard.
func (h *TodoHandler) Register(mux *http.ServeMux) {
	guard := func(fn http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(h.tokens, fn)
	}
	mux.Handle("GET /items", guard(h.handleList))
	mux.Handle("POST /items", guard(h.handleCreate))
	mux.Handle("PUT /items/{id}", guard(h.handleUpdate))
	mux.Handle("DELETE /items/{id}", guard(h.handleDelete))
}

func (h *TodoHandler) handleList(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	todos, err := h.todos.ListByOwner(r.Context(), claims.UserID())
	if err != nil {
		log.Printf("todos: list for %q: %v", claims.UserID(), err)
		respondError(w, http.StatusInternalServerError, "failed to list todos")
		return
	}
	respondJSON(w, http.StatusOK, todos)
}

func (h *TodoHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	var req dto.CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "Title is required")
		return
	}

	created, err := h.todos.Create(r.Context(), models.Todo{
		Title:       req.Title,
		Description: req.Description,
		UserID:      claims.UserID(),
	})
	if err != nil {
		log.Printf("todos: create for %q: %v", claims.UserID(), err)
		respondError(w, http.StatusInternalServerError, "failed to create todo")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *TodoHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	var req dto.UpdateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	patch := storage.TodoPatch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	}
	updated, err := h.todos.Update(r.Context(), r.PathValue("id"), claims.UserID(), patch)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Todo not found")
			return
		}
		log.Printf("todos: update %q for %q: %v", r.PathValue("id"), claims.UserID(), err)
		respondError(w, http.StatusInternalServerError, "failed to update todo")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *TodoHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	deleted, err := h.todos.Delete(r.Context(), r.PathValue("id"), claims.UserID())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Todo not found")
			return
		}
		log.Printf("todos: delete %q for %q: %v", r.PathValue("id"), claims.UserID(), err)
		respondError(w, http.StatusInternalServerError, "failed to delete todo")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Todo deleted successfully",
		"todo":    deleted,
	})
}
