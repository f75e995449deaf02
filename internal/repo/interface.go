package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/BuzzLyutic/todo-api/internal/model"
)

// TodoRepository is the persistence boundary for todos. Ownership checks
// live in the service layer; the repository is keyed by raw IDs.
type TodoRepository interface {
	Create(ctx context.Context, t model.Todo) (model.Todo, error)
	Get(ctx context.Context, id uuid.UUID) (model.Todo, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Todo, error)
	Update(ctx context.Context, t model.Todo) (model.Todo, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, ownerID uuid.UUID, today model.Date) (Stats, error)
}

type UserRepository interface {
	Create(ctx context.Context, u model.User) (model.User, error)
	Get(ctx context.Context, id uuid.UUID) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
}

// Stats summarizes one owner's collection.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pinned    int `json:"pinned"`
	Overdue   int `json:"overdue"`
}
