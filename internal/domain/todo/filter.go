package todo

// Filter holds optional criteria for listing todos. Each non-empty field is a
// case-sensitive substring match against its column and all of them must
// hold. Zero-value fields mean "no filter" for that dimension.
type Filter struct {
	Status   Status
	Priority Priority
	Category Category
	Search   string
}

// NewFilter validates the enumerated filters in the order status, priority,
// category. Empty values are accepted and leave that dimension unfiltered.
func NewFilter(status, priority, category, search string) (Filter, error) {
	f := Filter{Search: search}
	if status != "" {
		s, err := ParseStatus(status)
		if err != nil {
			return Filter{}, err
		}
		f.Status = s
	}
	if priority != "" {
		p, err := ParsePriority(priority)
		if err != nil {
			return Filter{}, err
		}
		f.Priority = p
	}
	if category != "" {
		c, err := ParseCategory(category)
		if err != nil {
			return Filter{}, err
		}
		f.Category = c
	}
	return f, nil
}

// Validate re-checks the enumerated filters that are set.
func (f Filter) Validate() error {
	_, err := NewFilter(f.Status.String(), f.Priority.String(), f.Category.String(), f.Search)
	return err
}
