package todo

import "github.com/jsamuelsen11/todo-service/internal/domain"

// MsgNoFieldToUpdate is returned when an update names no field.
const MsgNoFieldToUpdate = "No Field To Update"

// Field names a single mutable column of a Todo.
type Field string

const (
	FieldStatus   Field = "status"
	FieldPriority Field = "priority"
	FieldText     Field = "todo"
	FieldCategory Field = "category"
	FieldDueDate  Field = "due_date"
)

// Column returns the store column backing the field.
func (f Field) Column() string {
	return string(f)
}

// Label returns the capitalized name used in update confirmations.
func (f Field) Label() string {
	switch f {
	case FieldStatus:
		return "Status"
	case FieldPriority:
		return "Priority"
	case FieldText:
		return "Todo"
	case FieldCategory:
		return "Category"
	case FieldDueDate:
		return "Due Date"
	default:
		return string(f)
	}
}

// Update sets exactly one field of a Todo to Value. Value is already
// validated and normalized when built by NewUpdate.
type Update struct {
	Field Field
	Value string
}

// NewUpdate validates value for field. Enumerated fields must hold one of
// their values, the due date is normalized, and free text is accepted as is.
func NewUpdate(field Field, value string) (Update, error) {
	switch field {
	case FieldStatus:
		s, err := ParseStatus(value)
		if err != nil {
			return Update{}, err
		}
		return Update{Field: field, Value: s.String()}, nil
	case FieldPriority:
		p, err := ParsePriority(value)
		if err != nil {
			return Update{}, err
		}
		return Update{Field: field, Value: p.String()}, nil
	case FieldCategory:
		c, err := ParseCategory(value)
		if err != nil {
			return Update{}, err
		}
		return Update{Field: field, Value: c.String()}, nil
	case FieldDueDate:
		d, err := ParseDueDate(value)
		if err != nil {
			return Update{}, err
		}
		return Update{Field: field, Value: d.String()}, nil
	case FieldText:
		if value == "" {
			return Update{}, domain.NewValidationError("body", MsgNoFieldToUpdate)
		}
		return Update{Field: field, Value: value}, nil
	default:
		return Update{}, domain.NewValidationError("body", MsgNoFieldToUpdate)
	}
}

// Validate re-checks u as NewUpdate would.
func (u Update) Validate() error {
	_, err := NewUpdate(u.Field, u.Value)
	return err
}
