package dto

import (
	"github.com/jsamuelsen11/todo-service/internal/domain"
	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
)

// CreateTodoRequest represents the JSON body for creating a todo. The caller
// supplies the ID; a body without one is rejected.
type CreateTodoRequest struct {
	ID       *int64 `json:"id"`
	Todo     string `json:"todo"`
	Priority string `json:"priority"`
	Status   string `json:"status"`
	Category string `json:"category"`
	DueDate  string `json:"dueDate"`
}

// ToDomain validates the request and builds the todo it describes. The first
// invalid field is reported alone, checked in the order status, priority,
// category, due date, then the presence of id.
func (r *CreateTodoRequest) ToDomain() (*todo.Todo, error) {
	var id int64
	if r.ID != nil {
		id = *r.ID
	}

	t, err := todo.New(id, r.Todo, r.Priority, r.Status, r.Category, r.DueDate)
	if err != nil {
		return nil, err
	}
	if r.ID == nil {
		return nil, domain.NewValidationError("id", todo.MsgInvalidID)
	}
	return t, nil
}

// UpdateTodoRequest represents the JSON body for changing one field of a
// todo. Only the first non-empty field, in declaration order, is applied.
type UpdateTodoRequest struct {
	Status   string `json:"status,omitempty"`
	Priority string `json:"priority,omitempty"`
	Todo     string `json:"todo,omitempty"`
	Category string `json:"category,omitempty"`
	DueDate  string `json:"dueDate,omitempty"`
}

// ToUpdate selects the field to change and validates its value. A body with
// no non-empty field yields a "No Field To Update" validation error.
func (r *UpdateTodoRequest) ToUpdate() (todo.Update, error) {
	candidates := []struct {
		field todo.Field
		value string
	}{
		{todo.FieldStatus, r.Status},
		{todo.FieldPriority, r.Priority},
		{todo.FieldText, r.Todo},
		{todo.FieldCategory, r.Category},
		{todo.FieldDueDate, r.DueDate},
	}

	for _, c := range candidates {
		if c.value != "" {
			return todo.NewUpdate(c.field, c.value)
		}
	}
	return todo.NewUpdate("", "")
}

// ListTodosQuery holds the raw query parameters of the list endpoint.
type ListTodosQuery struct {
	Status   string
	Priority string
	Category string
	Search   string
}

// ToFilter validates the enumerated filters. Empty parameters leave their
// dimension unfiltered.
func (q ListTodosQuery) ToFilter() (todo.Filter, error) {
	return todo.NewFilter(q.Status, q.Priority, q.Category, q.Search)
}
