package todo

import "github.com/jsamuelsen11/todo-service/internal/domain"

// MsgInvalidStatus is returned when a status value is outside the enumeration.
const MsgInvalidStatus = "Invalid Todo Status"

// Status represents the completion state of a Todo.
type Status string

const (
	StatusToDo       Status = "TO DO"
	StatusInProgress Status = "IN PROGRESS"
	StatusDone       Status = "DONE"
)

// IsValid returns true if the status is one of the defined constants.
func (s Status) IsValid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// ParseStatus converts raw input to a Status. Matching is exact and
// case-sensitive.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.IsValid() {
		return "", domain.NewValidationError(string(FieldStatus), MsgInvalidStatus)
	}
	return s, nil
}
