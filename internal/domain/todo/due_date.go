package todo

import (
	"strings"
	"time"

	"github.com/jsamuelsen11/todo-service/internal/domain"
)

// MsgInvalidDueDate is returned when a date cannot be read as a calendar date.
const MsgInvalidDueDate = "Invalid Due Date"

// dueDateLayouts lists the spellings accepted from clients, most specific
// first. Timestamps keep the calendar date as written, ignoring the offset.
var dueDateLayouts = []string{
	time.DateOnly,
	"2006-1-2",
	"2006/1/2",
	"1/2/2006",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	time.DateTime,
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// DueDate is a calendar date in canonical YYYY-MM-DD form.
type DueDate string

// ParseDueDate reads raw as a calendar date and normalizes it. Impossible
// dates such as 2024-02-30 are rejected.
func ParseDueDate(raw string) (DueDate, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", invalidDueDate()
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return DueDateOf(t), nil
		}
	}
	return "", invalidDueDate()
}

// DueDateOf returns the calendar date of t in t's own location.
func DueDateOf(t time.Time) DueDate {
	return DueDate(t.Format(time.DateOnly))
}

// IsValid reports whether d is already in canonical form.
func (d DueDate) IsValid() bool {
	_, err := time.Parse(time.DateOnly, string(d))
	return err == nil
}

// String implements fmt.Stringer.
func (d DueDate) String() string {
	return string(d)
}

func invalidDueDate() error {
	return domain.NewValidationError(string(FieldDueDate), MsgInvalidDueDate)
}
