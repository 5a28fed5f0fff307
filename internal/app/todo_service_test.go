package app

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/todo-service/internal/domain"
	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
	"github.com/jsamuelsen11/todo-service/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func validTodo() todo.Todo {
	return todo.Todo{
		ID:       1,
		Text:     "Buy milk",
		Priority: todo.PriorityHigh,
		Status:   todo.StatusToDo,
		Category: todo.CategoryHome,
		DueDate:  "2024-03-05",
	}
}

// --- NewTodoService ---

func TestNewTodoService_NilLogger(t *testing.T) {
	t.Parallel()
	repo := mocks.NewMockTodoRepository(t)

	svc := NewTodoService(repo, nil)
	if svc.logger == nil {
		t.Fatal("NewTodoService(nil logger) should create a no-op logger, got nil")
	}
}

// --- List ---

func TestTodoService_List(t *testing.T) {
	t.Parallel()

	t.Run("returns todos on success", func(t *testing.T) {
		t.Parallel()
		repo := mocks.NewMockTodoRepository(t)
		svc := NewTodoService(repo, discardLogger())

		filter := todo.Filter{Status: todo.StatusToDo, Search: "milk"}
		repo.EXPECT().List(mock.Anything, filter).Return([]todo.Todo{validTodo()}, nil)

		got, err := svc.List(context.Background(), filter)
		if err != nil {
			t.Fatalf("List() error = %v, want nil", err)
		}
		if len(got) != 1 {
			t.Errorf("List() returned %d todos, want 1", len(got))
		}
	})

	t.Run("rejects invalid filter without touching the store", func(t *testing.T) {
		t.Parallel()
		repo := mocks.NewMockTodoRepository(t)
		svc := NewTodoService(repo, discardLogger())

		_, err := svc.List(context.Background(), todo.Filter{Priority: "URGENT"})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("List() error = %v, want ErrValidation", err)
		}
	})

	t.Run("propagates store error and logs it", func(t *testing.T) {
		t.Parallel()
		repo := mocks.NewMockTodoRepository(t)

		var buf bytes.Buffer
		svc := NewTodoService(repo, slog.New(slog.NewTextHandler(&buf, nil)))

		repo.EXPECT().List(mock.Anything, todo.Filter{}).Return(nil, domain.ErrUnavailable)

		_, err := svc.List(context.Background(), todo.Filter{})
		if !errors.Is(err, domain.ErrUnavailable) {
			t.Errorf("List() error = %v, want ErrUnavailable", err)
		}
		if !strings.Contains(buf.String(), "operation=List") {
			t.Errorf("log output missing operation attribute: %s", buf.String())
		}
	})
}

// --- Get ---

func TestTodoService_Get(t *testing.T) {
	t.Parallel()

	t.Run("returns todo", func(t *testing.T) {
		t.Parallel()
		repo := mocks.NewMockTodoRepository(t)
		svc := NewTodoService(repo, discardLogger())

		want := validTodo()
		repo.EXPECT().Get(mock.Anything, int64(1)).Return(&want, nil)

		got, err := svc.Get(context.Background(), 1)
		if err != nil {
			t.Fatalf("Get() error = %v, want nil", err)
		}
		if *got != want {
			t.Errorf("Get() = %+v, want %+v", *got, want)
		}
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		repo := mocks.NewMockTodoRepository(t)
		svc := NewTodoService(repo, discardLogger())

		repo.EXPECT().Get(mock.Anything, int64(7)).Return(nil, domain.ErrNotFound)

		got, err := svc.Get(context.Background(), 7)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("Get() error = %v, want ErrNotFound", err)
		}
		if got != nil {
			t.Errorf("Get() = %+v, want nil", got)
		}
	})

	t.Run("missing id is not logged as an error", func(t *testing.T) {
		t.Parallel()
		repo := mocks.NewMockTodoRepository(t)
		var buf bytes.Buffer
		svc := NewTodoService(repo, slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))

		repo.EXPECT().Get(mock.Anything, int64(7)).Return(nil, domain.ErrNotFound)

		_, _ = svc.Get(context.Background(), 7)
		if strings.Contains(buf.String(), "level=ERROR") {
			t.Errorf("log output = %q, want no ERROR record for a missing todo", buf.String())
		}
	})

	t.Run("store failure is logged as an error", func(t *testing.T) {
		t.Parallel()
		repo := mocks.NewMockTodoRepository(t)
		var buf bytes.Buffer
		svc := NewTodoService(repo, slog.New(slog.NewTextHandler(&buf, nil)))

		repo.EXPECT().Get(mock.Anything, int64(7)).Return(nil, errors.New("connection refused"))

		_, _ = svc.Get(context.Background(), 7)
		if !strings.Contains(buf.String(), "operation=Get") {
			t.Errorf("log output = %q, want operation=Get", buf.String())
		}
	})
}

// --- Agenda ---

func TestTodoService_Agenda(t *testing.T) {
	t.Parallel()

	t.Run("lists todos due on date", func(t *testing.T) {
		t.Parallel()
		repo := mocks.NewMockTodoRepository(t)
		svc := NewTodoService(repo, discardLogger())

		repo.EXPECT().ListByDueDate(mock.Anything, todo.DueDate("2024-03-05")).Return([]todo.Todo{validTodo()}, nil)

		got, err := svc.Agenda(context.Background(), "2024-03-05")
		if err != nil {
			t.Fatalf("Agenda() error = %v, want nil", err)
		}
		if len(got) != 1 {
			t.Errorf("Agenda() returned %d todos, want 1", len(got))
		}
	})

	t.Run("normalizes the date before querying", func(t *testing.T) {
		t.Parallel()
		repo := mocks.NewMockTodoRepository(t)
		svc := NewTodoService(repo, discardLogger())

		repo.EXPECT().ListByDueDate(mock.Anything, todo.DueDate("2024-03-05")).Return([]todo.Todo{validTodo()}, nil)

		got, err := svc.Agenda(context.Background(), "2024-3-5")
		if err != nil {
			t.Fatalf("Agenda() error = %v, want nil", err)
		}
		if len(got) != 1 {
			t.Errorf("Agenda() returned %d todos, want 1", len(got))
		}
	})

	t.Run("rejects invalid date", func(t *testing.T) {
		t.Parallel()
		repo := mocks.NewMockTodoRepository(t)
		svc := NewTodoService(repo, discardLogger())

		_, err := svc.Agenda(context.Background(), "2024-13-01")
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("Agenda() error = %v, want ErrValidation", err)
		}
	})
}

// --- Create ---

func TestTodoService_Create(t *testing.T) {
	t.Parallel()

	t.Run("inserts valid todo", func(t *testing.T) {
		t.Parallel()
		repo := mocks.NewMockTodoRepository(t)
		svc := NewTodoService(repo, discardLogger())

		newTodo := validTodo()
		repo.EXPECT().Insert(mock.Anything, &newTodo).Return(nil)

		if err := svc.Create(context.Background(), &newTodo); err != nil {
			t.Fatalf("Create() error = %v, want nil", err)
		}
	})

	t.Run("rejects invalid status before the store", func(t *testing.T) {
		t.Parallel()
		repo := mocks.NewMockTodoRepository(t)
		svc := NewTodoService(repo, discardLogger())

		bad := validTodo()
		bad.Status = "DOING"

		err := svc.Create(context.Background(), &bad)
		var verr *domain.ValidationError
		if !errors.As(err, &verr) || verr.Message != todo.MsgInvalidStatus {
			t.Errorf("Create() error = %v, want %q", err, todo.MsgInvalidStatus)
		}
	})

	t.Run("duplicate id", func(t *testing.T) {
		t.Parallel()
		repo := mocks.NewMockTodoRepository(t)
		svc := NewTodoService(repo, discardLogger())

		dup := validTodo()
		repo.EXPECT().Insert(mock.Anything, &dup).Return(domain.ErrConflict)

		if err := svc.Create(context.Background(), &dup); !errors.Is(err, domain.ErrConflict) {
			t.Errorf("Create() error = %v, want ErrConflict", err)
		}
	})
}

// --- Update ---

func TestTodoService_Update(t *testing.T) {
	t.Parallel()

	t.Run("applies single-field update", func(t *testing.T) {
		t.Parallel()
		repo := mocks.NewMockTodoRepository(t)
		svc := NewTodoService(repo, discardLogger())

		u := todo.Update{Field: todo.FieldStatus, Value: "DONE"}
		repo.EXPECT().UpdateField(mock.Anything, int64(1), u).Return(nil)

		if err := svc.Update(context.Background(), 1, u); err != nil {
			t.Fatalf("Update() error = %v, want nil", err)
		}
	})

	t.Run("rejects unnormalized due date", func(t *testing.T) {
		t.Parallel()
		repo := mocks.NewMockTodoRepository(t)
		svc := NewTodoService(repo, discardLogger())

		err := svc.Update(context.Background(), 1, todo.Update{Field: todo.FieldDueDate, Value: "someday"})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("Update() error = %v, want ErrValidation", err)
		}
	})

	t.Run("rejects empty update", func(t *testing.T) {
		t.Parallel()
		repo := mocks.NewMockTodoRepository(t)
		svc := NewTodoService(repo, discardLogger())

		err := svc.Update(context.Background(), 1, todo.Update{})
		var verr *domain.ValidationError
		if !errors.As(err, &verr) || verr.Message != todo.MsgNoFieldToUpdate {
			t.Errorf("Update() error = %v, want %q", err, todo.MsgNoFieldToUpdate)
		}
	})
}

// --- Delete ---

func TestTodoService_Delete(t *testing.T) {
	t.Parallel()

	t.Run("delegates to store", func(t *testing.T) {
		t.Parallel()
		repo := mocks.NewMockTodoRepository(t)
		svc := NewTodoService(repo, discardLogger())

		repo.EXPECT().Delete(mock.Anything, int64(3)).Return(nil)

		if err := svc.Delete(context.Background(), 3); err != nil {
			t.Fatalf("Delete() error = %v, want nil", err)
		}
	})

	t.Run("propagates store error", func(t *testing.T) {
		t.Parallel()
		repo := mocks.NewMockTodoRepository(t)
		svc := NewTodoService(repo, discardLogger())

		storeErr := errors.New("connection reset")
		repo.EXPECT().Delete(mock.Anything, int64(3)).Return(storeErr)

		if err := svc.Delete(context.Background(), 3); !errors.Is(err, storeErr) {
			t.Errorf("Delete() error = %v, want %v", err, storeErr)
		}
	})
}
