package ports

import (
	"context"

	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
)

// TodoRepository defines the store port for the todo table.
// Implemented by the postgres adapter; called by the application layer.
// Implementations must bind every value as a query parameter.
type TodoRepository interface {
	// List returns rows matching filter using case-sensitive substring
	// matches combined with AND.
	List(ctx context.Context, filter todo.Filter) ([]todo.Todo, error)

	// ListByDueDate returns rows whose due_date equals date exactly.
	ListByDueDate(ctx context.Context, date todo.DueDate) ([]todo.Todo, error)

	// Get returns the row with the given ID.
	// Returns domain.ErrNotFound if no row matches.
	Get(ctx context.Context, id int64) (*todo.Todo, error)

	// Insert adds a new row with exactly the six todo fields.
	// Returns domain.ErrConflict on a duplicate ID.
	Insert(ctx context.Context, t *todo.Todo) error

	// UpdateField sets one column on the row with the given ID.
	UpdateField(ctx context.Context, id int64, u todo.Update) error

	// Delete removes the row with the given ID, if any.
	Delete(ctx context.Context, id int64) error
}
