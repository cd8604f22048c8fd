package storage

import (
	"context"
	"errors"

	"github.com/ccatimbang/todo-api/internal/models"
)

// ErrNotFound indicates a record does not exist or is owned by someone else.
// Callers cannot distinguish the two cases.
var ErrNotFound = errors.New("record not found")

// TodoPatch carries the fields of a partial update. Nil fields are left
// untouched; a non-nil Title pointing at an empty string is also left
// untouched (an update never clears a title).
type TodoPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

// UserStore captures read access to the seeded credential records.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
}

// TodoStore captures persistence operations needed by handlers. Every
// operation that takes an ownerID colocates the ownership check with the
// lookup: a wrong id and a wrong owner both surface as ErrNotFound.
type TodoStore interface {
	ListByOwner(ctx context.Context, ownerID string) ([]models.Todo, error)
	Create(ctx context.Context, todo models.Todo) (models.Todo, error)
	Update(ctx context.Context, id, ownerID string, patch TodoPatch) (models.Todo, error)
	Delete(ctx context.Context, id, ownerID string) (models.Todo, error)
}
