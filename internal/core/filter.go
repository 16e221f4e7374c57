package core

// FilterAll is the wildcard value matching every category or group.
// Month has no wildcard: criteria always select exactly one month.
const FilterAll = "all"

// Criteria is the active month/category/group selection. Category and Group
// accept FilterAll; Month must be a well-formed month key.
type Criteria struct {
	Month    MonthKey
	Category string
	Group    string
}

// NewCriteria builds criteria with wildcard category and group for a month.
func NewCriteria(month MonthKey) Criteria {
	return Criteria{Month: month, Category: FilterAll, Group: FilterAll}
}

func (c Criteria) Validate() error {
	if err := c.Month.Validate(); err != nil {
		return err
	}
	if c.Category != FilterAll && !Category(c.Category).Valid() {
		return ErrInvalidFilter
	}
	if c.Group != FilterAll && !Group(c.Group).Valid() {
		return ErrInvalidFilter
	}
	return nil
}

// Matches reports whether a single transaction satisfies the criteria:
// exact month-key equality AND category match-or-wildcard AND group
// match-or-wildcard.
func (c Criteria) Matches(t Transaction) bool {
	if t.Date.MonthKey() != c.Month {
		return false
	}
	if c.Category != FilterAll && t.Category != Category(c.Category) {
		return false
	}
	if c.Group != FilterAll && t.Group != Group(c.Group) {
		return false
	}
	return true
}

// Apply returns the transactions matching the criteria, preserving the
// relative order of the input. The result is always a subsequence of txns.
// Returns ErrInvalidFilter when the criteria are malformed rather than
// silently matching nothing.
func Apply(txns []Transaction, c Criteria) ([]Transaction, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	out := make([]Transaction, 0, len(txns))
	for _, t := range txns {
		if c.Matches(t) {
			out = append(out, t)
		}
	}
	return out, nil
}
