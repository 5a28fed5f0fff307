// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jsamuelsen11/todo-service/internal/domain"
	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
	"github.com/jsamuelsen11/todo-service/internal/ports"
)

// Compile-time check that TodoService implements ports.TodoService.
var _ ports.TodoService = (*TodoService)(nil)

// TodoService implements ports.TodoService on top of the TodoRepository port.
// It validates input, logs failures and delegates every read and write to the
// repository in a single round-trip.
type TodoService struct {
	repo   ports.TodoRepository
	logger *slog.Logger
}

// NewTodoService creates a TodoService. A nil logger discards output.
func NewTodoService(repo ports.TodoRepository, logger *slog.Logger) *TodoService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TodoService{
		repo:   repo,
		logger: logger,
	}
}

// List returns the todos matching filter.
func (s *TodoService) List(ctx context.Context, filter todo.Filter) ([]todo.Todo, error) {
	s.logger.DebugContext(ctx, "listing todos",
		slog.String("status", filter.Status.String()),
		slog.String("priority", filter.Priority.String()),
		slog.String("category", filter.Category.String()),
		slog.String("search_q", filter.Search),
	)

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	todos, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list todos",
			slog.String("operation", "List"),
			slog.Any("error", err),
		)
		return nil, err
	}

	return todos, nil
}

// Get returns a single todo by ID. A missing ID is reported as
// domain.ErrNotFound and logged at debug level only.
func (s *TodoService) Get(ctx context.Context, id int64) (*todo.Todo, error) {
	s.logger.DebugContext(ctx, "fetching todo", slog.Int64("id", id))

	t, err := s.repo.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		s.logger.DebugContext(ctx, "todo not found", slog.Int64("id", id))
		return nil, err
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch todo",
			slog.String("operation", "Get"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	return t, nil
}

// Agenda returns the todos due on date. date may be in any accepted spelling;
// it is compared in canonical YYYY-MM-DD form.
func (s *TodoService) Agenda(ctx context.Context, date todo.DueDate) ([]todo.Todo, error) {
	s.logger.DebugContext(ctx, "listing agenda", slog.String("date", date.String()))

	date, err := todo.ParseDueDate(date.String())
	if err != nil {
		return nil, err
	}

	todos, err := s.repo.ListByDueDate(ctx, date)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list agenda",
			slog.String("operation", "Agenda"),
			slog.String("date", date.String()),
			slog.Any("error", err),
		)
		return nil, err
	}

	return todos, nil
}

// Create validates and stores a new todo.
func (s *TodoService) Create(ctx context.Context, t *todo.Todo) error {
	s.logger.InfoContext(ctx, "creating todo", slog.Int64("id", t.ID))

	if err := t.Validate(); err != nil {
		return err
	}

	if err := s.repo.Insert(ctx, t); err != nil {
		s.logger.ErrorContext(ctx, "failed to create todo",
			slog.String("operation", "Create"),
			slog.Int64("id", t.ID),
			slog.Any("error", err),
		)
		return err
	}

	return nil
}

// Update validates and applies a single-field change.
func (s *TodoService) Update(ctx context.Context, id int64, u todo.Update) error {
	s.logger.InfoContext(ctx, "updating todo",
		slog.Int64("id", id),
		slog.String("field", string(u.Field)),
	)

	if err := u.Validate(); err != nil {
		return err
	}

	if err := s.repo.UpdateField(ctx, id, u); err != nil {
		s.logger.ErrorContext(ctx, "failed to update todo",
			slog.String("operation", "Update"),
			slog.Int64("id", id),
			slog.String("field", string(u.Field)),
			slog.Any("error", err),
		)
		return err
	}

	return nil
}

// Delete removes a todo. Missing IDs are not an error.
func (s *TodoService) Delete(ctx context.Context, id int64) error {
	s.logger.InfoContext(ctx, "deleting todo", slog.Int64("id", id))

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete todo",
			slog.String("operation", "Delete"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return err
	}

	return nil
}
