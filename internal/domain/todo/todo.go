package todo

import (
	"strconv"
	"strings"

	"github.com/jsamuelsen11/todo-service/internal/domain"
)

// MsgInvalidID is returned when a path identifier is not an integer.
const MsgInvalidID = "Invalid Todo Id"

// Todo represents a single task record. ID is supplied by the caller; its
// uniqueness is enforced by the store.
type Todo struct {
	ID       int64
	Text     string
	Priority Priority
	Status   Status
	Category Category
	DueDate  DueDate
}

// New builds a Todo from raw client input. Fields are checked in the order
// status, priority, category, due date and the first failure is returned
// alone. The due date is normalized to YYYY-MM-DD.
func New(id int64, text, priority, status, category, dueDate string) (*Todo, error) {
	s, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}
	p, err := ParsePriority(priority)
	if err != nil {
		return nil, err
	}
	c, err := ParseCategory(category)
	if err != nil {
		return nil, err
	}
	d, err := ParseDueDate(dueDate)
	if err != nil {
		return nil, err
	}
	return &Todo{
		ID:       id,
		Text:     text,
		Priority: p,
		Status:   s,
		Category: c,
		DueDate:  d,
	}, nil
}

// Validate checks the enumerations and the due date using the same order and
// messages as New. Returns a *domain.ValidationError or nil.
func (t *Todo) Validate() error {
	switch {
	case !t.Status.IsValid():
		return domain.NewValidationError(string(FieldStatus), MsgInvalidStatus)
	case !t.Priority.IsValid():
		return domain.NewValidationError(string(FieldPriority), MsgInvalidPriority)
	case !t.Category.IsValid():
		return domain.NewValidationError(string(FieldCategory), MsgInvalidCategory)
	case !t.DueDate.IsValid():
		return domain.NewValidationError(string(FieldDueDate), MsgInvalidDueDate)
	}
	return nil
}

// ParseID reads a todo identifier from its decimal text form.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, domain.NewValidationError("id", MsgInvalidID)
	}
	return id, nil
}
