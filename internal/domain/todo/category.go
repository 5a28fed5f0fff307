package todo

import "github.com/jsamuelsen11/todo-service/internal/domain"

// MsgInvalidCategory is returned when a category value is outside the enumeration.
const MsgInvalidCategory = "Invalid Todo Category"

// Category represents the categorization of a Todo item.
type Category string

const (
	CategoryWork     Category = "WORK"
	CategoryHome     Category = "HOME"
	CategoryLearning Category = "LEARNING"
)

// IsValid returns true if the category is one of the defined constants.
func (c Category) IsValid() bool {
	switch c {
	case CategoryWork, CategoryHome, CategoryLearning:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// ParseCategory converts raw input to a Category.
func ParseCategory(raw string) (Category, error) {
	c := Category(raw)
	if !c.IsValid() {
		return "", domain.NewValidationError(string(FieldCategory), MsgInvalidCategory)
	}
	return c, nil
}
