// Package dto provides HTTP request/response data transfer objects and the
// plain-text error responses for the inbound HTTP adapter layer.
package dto

import (
	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
)

// Confirmation bodies for successful writes.
const (
	MsgCreated = "Todo Successfully Added"
	MsgDeleted = "Todo Deleted"
)

// TodoResponse represents a single todo in HTTP responses. Field names follow
// the store columns.
type TodoResponse struct {
	ID       int64  `json:"id"`
	Todo     string `json:"todo"`
	Priority string `json:"priority"`
	Status   string `json:"status"`
	Category string `json:"category"`
	DueDate  string `json:"due_date"`
}

// ToTodoResponse converts a domain Todo entity to an HTTP response DTO.
func ToTodoResponse(t *todo.Todo) TodoResponse {
	return TodoResponse{
		ID:       t.ID,
		Todo:     t.Text,
		Priority: t.Priority.String(),
		Status:   t.Status.String(),
		Category: t.Category.String(),
		DueDate:  t.DueDate.String(),
	}
}

// ToTodoListResponse converts todos to a JSON array. An empty result encodes
// as [] rather than null.
func ToTodoListResponse(todos []todo.Todo) []TodoResponse {
	items := make([]TodoResponse, len(todos))
	for i := range todos {
		items[i] = ToTodoResponse(&todos[i])
	}
	return items
}

// UpdatedMessage returns the confirmation body for an update of field,
// e.g. "Status Updated".
func UpdatedMessage(field todo.Field) string {
	return field.Label() + " Updated"
}
