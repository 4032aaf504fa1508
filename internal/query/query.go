// Package query derives read-only projections of a record collection:
// substring filtering, stable column sorting with click-to-toggle
// direction, the task status filter, and status-bar summaries.
// Nothing here mutates its input.
package query

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mesh-intelligence/keeper/pkg/types"
)

// Filter returns the records whose value in at least one of fields contains
// term, ignoring case. Order is preserved. An empty term returns records
// unchanged.
func Filter[R types.Record[R]](records []R, term string, fields ...string) ([]R, error) {
	if term == "" {
		return records, nil
	}
	if err := checkFields[R](fields); err != nil {
		return nil, err
	}

	needle := strings.ToLower(term)
	out := make([]R, 0, len(records))
	for _, r := range records {
		for _, f := range fields {
			v, _ := r.Field(f)
			if strings.Contains(strings.ToLower(v.Text()), needle) {
				out = append(out, r)
				break
			}
		}
	}
	return out, nil
}

// Sort returns a stably sorted copy of records ordered by field. Strings
// compare byte-wise (case-sensitive), booleans false before true, ids
// numerically. reverse inverts the order; ties keep their input order in
// both directions.
func Sort[R types.Record[R]](records []R, field string, reverse bool) ([]R, error) {
	if err := checkFields[R]([]string{field}); err != nil {
		return nil, err
	}

	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b R) int {
		av, _ := a.Field(field)
		bv, _ := b.Field(field)
		c := av.Compare(bv)
		if reverse {
			return -c
		}
		return c
	})
	return out, nil
}

// checkFields reports ErrUnknownField for a name the record kind does not
// have. The zero value of R is enough to ask.
func checkFields[R types.Record[R]](fields []string) error {
	var probe R
	for _, f := range fields {
		if _, ok := probe.Field(f); !ok {
			return fmt.Errorf("%q: %w", f, types.ErrUnknownField)
		}
	}
	return nil
}
