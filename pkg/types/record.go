package types

import (
	"strconv"
	"time"
)

// DateLayout is the on-disk form of date_added: YYYY-MM-DD HH:MM.
const DateLayout = "2006-01-02 15:04"

// FormatDate renders t in DateLayout using t's own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Record kinds.
const (
	KindContact = "contact"
	KindTask    = "task"
)

// Record is the constraint satisfied by every entity kind the Store manages.
// R is the concrete value type itself (Contact, Task), so methods that build
// a modified copy can return it without type assertions.
type Record[R any] interface {
	// RecordID returns the record's id; zero means not yet assigned.
	RecordID() int

	// Added returns the date_added stamp.
	Added() string

	// Validate reports a *ValidationError when a required field is empty.
	Validate() error

	// Normalize returns a copy with surrounding whitespace trimmed from
	// every user-entered string field.
	Normalize() R

	// WithIdentity returns a copy carrying the given id and date_added.
	WithIdentity(id int, dateAdded string) R

	// Field returns the value of the named column.
	Field(name string) (Value, bool)
}

// ValueKind distinguishes how a column sorts and filters.
type ValueKind int

const (
	StringValue ValueKind = iota
	BoolValue
	IntValue
)

// Value is a single column value of a record.
type Value struct {
	Kind ValueKind
	Str  string
	Bool bool
	Int  int
}

// String returns a string column value.
func String(s string) Value { return Value{Kind: StringValue, Str: s} }

// Bool returns a boolean column value.
func Bool(b bool) Value { return Value{Kind: BoolValue, Bool: b} }

// Int returns an integer column value.
func Int(i int) Value { return Value{Kind: IntValue, Int: i} }

// Text returns the value as it is matched by substring search.
func (v Value) Text() string {
	switch v.Kind {
	case BoolValue:
		return strconv.FormatBool(v.Bool)
	case IntValue:
		return strconv.Itoa(v.Int)
	default:
		return v.Str
	}
}

// Compare orders a before b: strings byte-wise, false before true, integers
// numerically. Values of different kinds order by kind.
func (v Value) Compare(other Value) int {
	if v.Kind != other.Kind {
		return int(v.Kind) - int(other.Kind)
	}
	switch v.Kind {
	case BoolValue:
		switch {
		case v.Bool == other.Bool:
			return 0
		case !v.Bool:
			return -1
		default:
			return 1
		}
	case IntValue:
		switch {
		case v.Int < other.Int:
			return -1
		case v.Int > other.Int:
			return 1
		default:
			return 0
		}
	default:
		switch {
		case v.Str < other.Str:
			return -1
		case v.Str > other.Str:
			return 1
		default:
			return 0
		}
	}
}
