package postgres

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
	"github.com/jsamuelsen11/todo-service/internal/ports"
)

const todoTable = "todo"

var todoColumns = []string{"id", "todo", "priority", "status", "category", "due_date"}

// Compile-time check that TodoRepository implements ports.TodoRepository.
var _ ports.TodoRepository = (*TodoRepository)(nil)

// psql builds statements with $n placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// likeEscaper makes a value match itself literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type todoRow struct {
	ID       int64  `db:"id"`
	Text     string `db:"todo"`
	Priority string `db:"priority"`
	Status   string `db:"status"`
	Category string `db:"category"`
	DueDate  string `db:"due_date"`
}

func (r todoRow) toDomain() todo.Todo {
	return todo.Todo{
		ID:       r.ID,
		Text:     r.Text,
		Priority: todo.Priority(r.Priority),
		Status:   todo.Status(r.Status),
		Category: todo.Category(r.Category),
		DueDate:  todo.DueDate(r.DueDate),
	}
}

// TodoRepository implements ports.TodoRepository on the todo table.
type TodoRepository struct {
	db *DB
}

// NewTodoRepository creates a TodoRepository sharing db's connection and
// circuit breaker.
func NewTodoRepository(db *DB) *TodoRepository {
	return &TodoRepository{db: db}
}

// List returns rows where every set filter is a substring of its column.
// Rows are ordered by id, so an update never moves a row in the listing.
func (r *TodoRepository) List(ctx context.Context, filter todo.Filter) ([]todo.Todo, error) {
	q := psql.Select(todoColumns...).From(todoTable)
	q = whereContains(q, "status", filter.Status.String())
	q = whereContains(q, "priority", filter.Priority.String())
	q = whereContains(q, "category", filter.Category.String())
	q = whereContains(q, "todo", filter.Search)
	q = q.OrderBy("id")

	return r.selectTodos(ctx, "list", q)
}

// ListByDueDate returns rows whose due_date equals date.
func (r *TodoRepository) ListByDueDate(ctx context.Context, date todo.DueDate) ([]todo.Todo, error) {
	q := psql.Select(todoColumns...).
		From(todoTable).
		Where(squirrel.Eq{"due_date": date.String()}).
		OrderBy("id")

	return r.selectTodos(ctx, "list_by_due_date", q)
}

// Get returns the row with the given ID or domain.ErrNotFound.
func (r *TodoRepository) Get(ctx context.Context, id int64) (*todo.Todo, error) {
	query, args, err := psql.Select(todoColumns...).
		From(todoTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var row todoRow
	err = r.db.runRead(ctx, "get", func(ctx context.Context) error {
		return r.db.conn.GetContext(ctx, &row, query, args...)
	})
	if err != nil {
		return nil, err
	}

	t := row.toDomain()
	return &t, nil
}

// Insert adds t. A duplicate ID yields domain.ErrConflict.
func (r *TodoRepository) Insert(ctx context.Context, t *todo.Todo) error {
	query, args, err := psql.Insert(todoTable).
		Columns(todoColumns...).
		Values(t.ID, t.Text, t.Priority.String(), t.Status.String(), t.Category.String(), t.DueDate.String()).
		ToSql()
	if err != nil {
		return err
	}

	return r.exec(ctx, "insert", query, args)
}

// UpdateField sets the single column named by u. Missing IDs are not an
// error.
func (r *TodoRepository) UpdateField(ctx context.Context, id int64, u todo.Update) error {
	if err := u.Validate(); err != nil {
		return err
	}

	query, args, err := psql.Update(todoTable).
		Set(u.Field.Column(), u.Value).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	return r.exec(ctx, "update", query, args)
}

// Delete removes the row with the given ID, if any.
func (r *TodoRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := psql.Delete(todoTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	return r.exec(ctx, "delete", query, args)
}

func (r *TodoRepository) selectTodos(ctx context.Context, operation string, q squirrel.SelectBuilder) ([]todo.Todo, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	var rows []todoRow
	err = r.db.runRead(ctx, operation, func(ctx context.Context) error {
		return r.db.conn.SelectContext(ctx, &rows, query, args...)
	})
	if err != nil {
		return nil, err
	}

	todos := make([]todo.Todo, 0, len(rows))
	for _, row := range rows {
		todos = append(todos, row.toDomain())
	}
	return todos, nil
}

func (r *TodoRepository) exec(ctx context.Context, operation, query string, args []any) error {
	return r.db.run(ctx, operation, func(ctx context.Context) error {
		_, err := r.db.conn.ExecContext(ctx, query, args...)
		return err
	})
}

// whereContains adds a case-sensitive substring predicate on column. Empty
// values add nothing.
func whereContains(q squirrel.SelectBuilder, column, value string) squirrel.SelectBuilder {
	if value == "" {
		return q
	}
	return q.Where(squirrel.Like{column: likePattern(value)})
}

func likePattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}
