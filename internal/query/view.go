package query

import "github.com/mesh-intelligence/keeper/pkg/types"

// View remembers the last sorted column so that sorting the same column
// again flips the direction, the way clicking a table header does.
// The zero value is ready to use.
type View[R types.Record[R]] struct {
	field   string
	reverse bool
}

// SortBy sorts records by field. When field is the column sorted by the
// previous call the remembered direction toggles and reverse is ignored;
// otherwise sorting starts on field with the given direction.
func (v *View[R]) SortBy(records []R, field string, reverse bool) ([]R, error) {
	next := reverse
	if field == v.field {
		next = !v.reverse
	}
	out, err := Sort(records, field, next)
	if err != nil {
		return nil, err
	}
	v.field, v.reverse = field, next
	return out, nil
}

// Column returns the column and direction of the last successful SortBy.
func (v *View[R]) Column() (field string, reverse bool) {
	return v.field, v.reverse
}

// Reset forgets the remembered column.
func (v *View[R]) Reset() {
	v.field, v.reverse = "", false
}
