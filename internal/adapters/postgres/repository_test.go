package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/todo-service/internal/domain"
	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
	"github.com/jsamuelsen11/todo-service/internal/platform/config"
)

var columns = []string{"id", "todo", "priority", "status", "category", "due_date"}

// newTestDB wraps a sqlmock connection. monitorPings makes Ping calls
// expectations instead of no-ops.
func newTestDB(t *testing.T, monitorPings ...bool) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(len(monitorPings) > 0 && monitorPings[0]))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	cb := &config.CircuitBreakerConfig{MaxFailures: 2, Timeout: time.Minute, HalfOpenLimit: 1}
	return New(sqlx.NewDb(conn, "postgres"), cb, nil, nil), mock
}

func TestTodoRepository_List(t *testing.T) {
	t.Run("no filters selects everything in id order", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewTodoRepository(db)

		mock.ExpectQuery(`^SELECT id, todo, priority, status, category, due_date FROM todo ORDER BY id$`).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(1, "Buy milk", "HIGH", "TO DO", "HOME", "2024-03-05").
				AddRow(2, "Learn Go", "LOW", "DONE", "LEARNING", "2024-03-06"))

		todos, err := repo.List(context.Background(), todo.Filter{})
		require.NoError(t, err)
		require.Len(t, todos, 2)
		assert.Equal(t, todo.Todo{
			ID: 1, Text: "Buy milk", Priority: todo.PriorityHigh,
			Status: todo.StatusToDo, Category: todo.CategoryHome, DueDate: "2024-03-05",
		}, todos[0])
		assert.Equal(t, int64(2), todos[1].ID)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("set filters are AND-combined substring matches", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewTodoRepository(db)

		mock.ExpectQuery(`FROM todo WHERE status LIKE \$1 AND priority LIKE \$2 AND todo LIKE \$3 ORDER BY id$`).
			WithArgs("%TO DO%", "%HIGH%", "%milk%").
			WillReturnRows(sqlmock.NewRows(columns))

		filter := todo.Filter{Status: todo.StatusToDo, Priority: todo.PriorityHigh, Search: "milk"}
		todos, err := repo.List(context.Background(), filter)
		require.NoError(t, err)
		assert.NotNil(t, todos)
		assert.Empty(t, todos)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("search text is matched literally", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewTodoRepository(db)

		mock.ExpectQuery(`FROM todo WHERE category LIKE \$1 AND todo LIKE \$2 ORDER BY id$`).
			WithArgs("%WORK%", `%50\% off\_now\\%`).
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.List(context.Background(), todo.Filter{Category: todo.CategoryWork, Search: `50% off_now\`})
		require.NoError(t, err)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTodoRepository_ListByDueDate(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewTodoRepository(db)

	mock.ExpectQuery(`FROM todo WHERE due_date = \$1 ORDER BY id$`).
		WithArgs("2024-03-05").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(1, "Buy milk", "HIGH", "TO DO", "HOME", "2024-03-05"))

	todos, err := repo.ListByDueDate(context.Background(), "2024-03-05")
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, todo.DueDate("2024-03-05"), todos[0].DueDate)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTodoRepository_Get(t *testing.T) {
	t.Run("existing row", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewTodoRepository(db)

		mock.ExpectQuery(`FROM todo WHERE id = \$1`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(1, "Buy milk", "HIGH", "TO DO", "HOME", "2024-03-05"))

		got, err := repo.Get(context.Background(), 1)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Buy milk", got.Text)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row is ErrNotFound", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewTodoRepository(db)

		mock.ExpectQuery(`FROM todo WHERE id = \$1`).
			WithArgs(int64(999)).
			WillReturnError(sql.ErrNoRows)

		got, err := repo.Get(context.Background(), 999)
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.Nil(t, got)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTodoRepository_Insert(t *testing.T) {
	newTodo := &todo.Todo{
		ID: 1, Text: "Buy milk", Priority: todo.PriorityHigh,
		Status: todo.StatusToDo, Category: todo.CategoryHome, DueDate: "2024-03-05",
	}

	t.Run("binds all six fields", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewTodoRepository(db)

		mock.ExpectExec(`INSERT INTO todo`).
			WithArgs(int64(1), "Buy milk", "HIGH", "TO DO", "HOME", "2024-03-05").
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, repo.Insert(context.Background(), newTodo))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate id is ErrConflict", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewTodoRepository(db)

		mock.ExpectExec(`INSERT INTO todo`).
			WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

		err := repo.Insert(context.Background(), newTodo)
		require.ErrorIs(t, err, domain.ErrConflict)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTodoRepository_UpdateField(t *testing.T) {
	t.Run("sets one column", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewTodoRepository(db)

		mock.ExpectExec(`UPDATE todo SET status = \$1 WHERE id = \$2`).
			WithArgs("DONE", int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateField(context.Background(), 1, todo.Update{Field: todo.FieldStatus, Value: "DONE"})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row is not an error", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewTodoRepository(db)

		mock.ExpectExec(`UPDATE todo SET due_date = \$1 WHERE id = \$2`).
			WithArgs("2024-03-05", int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateField(context.Background(), 42, todo.Update{Field: todo.FieldDueDate, Value: "2024-03-05"})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid update never reaches the database", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewTodoRepository(db)

		err := repo.UpdateField(context.Background(), 1, todo.Update{Field: "id", Value: "2"})
		require.ErrorIs(t, err, domain.ErrValidation)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTodoRepository_Delete(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewTodoRepository(db)

	mock.ExpectExec(`DELETE FROM todo WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), 7))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTodoRepository_CircuitBreakerOpens(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewTodoRepository(db)

	connErr := errors.New("connection refused")
	mock.ExpectExec(`DELETE FROM todo`).WillReturnError(connErr)
	mock.ExpectExec(`DELETE FROM todo`).WillReturnError(connErr)

	for range 2 {
		err := repo.Delete(context.Background(), 1)
		require.ErrorIs(t, err, connErr)
		assert.NotErrorIs(t, err, domain.ErrUnavailable)
	}

	err := repo.Delete(context.Background(), 1)
	require.ErrorIs(t, err, domain.ErrUnavailable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTodoRepository_NotFoundDoesNotTripBreaker(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewTodoRepository(db)

	for range 3 {
		mock.ExpectQuery(`FROM todo WHERE id = \$1`).WillReturnError(sql.ErrNoRows)
	}

	for range 3 {
		_, err := repo.Get(context.Background(), 1)
		require.ErrorIs(t, err, domain.ErrNotFound)
	}

	require.NoError(t, db.HealthCheck(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLikePattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "milk", want: "%milk%"},
		{in: "100%", want: `%100\%%`},
		{in: "a_b", want: `%a\_b%`},
		{in: `c:\tmp`, want: `%c:\\tmp%`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, likePattern(tt.in))
		})
	}
}
