package todo

import "github.com/jsamuelsen11/todo-service/internal/domain"

// MsgInvalidPriority is returned when a priority value is outside the enumeration.
const MsgInvalidPriority = "Invalid Todo Priority"

// Priority represents how urgent a Todo is.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// IsValid returns true if the priority is one of the defined constants.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (p Priority) String() string {
	return string(p)
}

// ParsePriority converts raw input to a Priority.
func ParsePriority(raw string) (Priority, error) {
	p := Priority(raw)
	if !p.IsValid() {
		return "", domain.NewValidationError(string(FieldPriority), MsgInvalidPriority)
	}
	return p, nil
}
