package ports

import (
	"context"

	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
)

// TodoService defines the service port for todo operations.
// Implemented by the application layer; called by inbound adapters (handlers).
type TodoService interface {
	// List returns the todos matching every criterion set in filter, in
	// id order. A zero-value Filter lists all todos.
	// Returns domain.ErrValidation if an enumerated filter is invalid.
	List(ctx context.Context, filter todo.Filter) ([]todo.Todo, error)

	// Get returns a single todo by ID.
	// Returns domain.ErrNotFound if the todo does not exist.
	Get(ctx context.Context, id int64) (*todo.Todo, error)

	// Agenda returns the todos due on the given date.
	Agenda(ctx context.Context, date todo.DueDate) ([]todo.Todo, error)

	// Create stores a new todo with its caller-supplied ID.
	// Returns domain.ErrValidation if the todo fails validation and
	// domain.ErrConflict if the ID is already taken.
	Create(ctx context.Context, t *todo.Todo) error

	// Update applies a single-field change to the todo with the given ID.
	// No existence check is made; updating a missing ID is a no-op.
	Update(ctx context.Context, id int64, u todo.Update) error

	// Delete removes the todo with the given ID. Deleting a missing ID
	// succeeds.
	Delete(ctx context.Context, id int64) error
}
