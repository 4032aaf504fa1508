package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/keeper/pkg/types"
)

func contacts() []types.Contact {
	return []types.Contact{
		{ID: 1, Name: "Alice Smith", Phone: "555-1234", Email: "alice@example.com"},
		{ID: 2, Name: "bob", Phone: "555-9999"},
		{ID: 3, Name: "Carol", Phone: "555-0000", Email: "SMITHY@example.com"},
		{ID: 4, Name: "Dave", Phone: "555-4321", Address: "1 Smith Rd"},
	}
}

func names(cs []types.Contact) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

func taskIDs(ts []types.Task) []int {
	out := make([]int, len(ts))
	for i, t := range ts {
		out[i] = t.ID
	}
	return out
}

func TestFilterEmptyTermIsIdentity(t *testing.T) {
	in := contacts()
	got, err := Filter(in, "", types.FieldName)
	require.NoError(t, err)
	assert.Equal(t, in, got)

	got, err = Filter(in, "", "no-such-field")
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name   string
		term   string
		fields []string
		want   []string
	}{
		{
			name:   "case-insensitive substring on name",
			term:   "smith",
			fields: []string{types.FieldName},
			want:   []string{"Alice Smith"},
		},
		{
			name:   "matches any searchable field",
			term:   "smith",
			fields: types.ContactSearchFields,
			want:   []string{"Alice Smith", "Carol"},
		},
		{
			name:   "address not searched unless named",
			term:   "smith rd",
			fields: types.ContactSearchFields,
			want:   []string{},
		},
		{
			name:   "absent optional field treated as empty",
			term:   "example",
			fields: []string{types.FieldEmail},
			want:   []string{"Alice Smith", "Carol"},
		},
		{
			name:   "phone digits",
			term:   "-4",
			fields: types.ContactSearchFields,
			want:   []string{"Dave"},
		},
		{
			name:   "uppercase term",
			term:   "BOB",
			fields: types.ContactSearchFields,
			want:   []string{"bob"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Filter(contacts(), tt.term, tt.fields...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestFilterByNameExample(t *testing.T) {
	in := []types.Contact{{ID: 1, Name: "Alice Smith"}, {ID: 2, Name: "bob"}}
	got, err := Filter(in, "smith", types.FieldName)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice Smith"}, names(got))
}

func TestFilterUnknownField(t *testing.T) {
	_, err := Filter(contacts(), "x", "completed")
	assert.ErrorIs(t, err, types.ErrUnknownField)
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	in := contacts()
	_, err := Filter(in, "a", types.FieldName)
	require.NoError(t, err)
	assert.Equal(t, contacts(), in)
}

func TestSort(t *testing.T) {
	t.Run("strings are case-sensitive", func(t *testing.T) {
		got, err := Sort(contacts(), types.FieldName, false)
		require.NoError(t, err)
		assert.Equal(t, []string{"Alice Smith", "Carol", "Dave", "bob"}, names(got))
	})

	t.Run("reverse", func(t *testing.T) {
		got, err := Sort(contacts(), types.FieldName, true)
		require.NoError(t, err)
		assert.Equal(t, []string{"bob", "Dave", "Carol", "Alice Smith"}, names(got))
	})

	t.Run("empty optional values sort first", func(t *testing.T) {
		got, err := Sort(contacts(), types.FieldEmail, false)
		require.NoError(t, err)
		assert.Equal(t, []string{"bob", "Dave", "Carol", "Alice Smith"}, names(got))
	})

	t.Run("ids numerically", func(t *testing.T) {
		in := []types.Task{{ID: 10, Text: "a"}, {ID: 2, Text: "b"}, {ID: 1, Text: "c"}}
		got, err := Sort(in, types.FieldID, false)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 10}, taskIDs(got))
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := Sort(contacts(), "text", false)
		assert.ErrorIs(t, err, types.ErrUnknownField)
	})

	t.Run("input untouched", func(t *testing.T) {
		in := contacts()
		_, err := Sort(in, types.FieldName, true)
		require.NoError(t, err)
		assert.Equal(t, contacts(), in)
	})
}

func TestSortBooleanIsStable(t *testing.T) {
	tasks := []types.Task{
		{ID: 1, Text: "a", Completed: true},
		{ID: 2, Text: "b"},
		{ID: 3, Text: "c", Completed: true},
		{ID: 4, Text: "d"},
	}

	got, err := Sort(tasks, types.FieldCompleted, false)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 1, 3}, taskIDs(got))

	got, err = Sort(tasks, types.FieldCompleted, true)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 2, 4}, taskIDs(got))
}

func TestViewSortByTogglesOnSameField(t *testing.T) {
	var v View[types.Contact]
	in := contacts()

	first, err := v.SortBy(in, types.FieldName, false)
	require.NoError(t, err)
	second, err := v.SortBy(in, types.FieldName, false)
	require.NoError(t, err)

	reversed := make([]types.Contact, len(first))
	for i, c := range first {
		reversed[len(first)-1-i] = c
	}
	assert.Equal(t, reversed, second)

	third, err := v.SortBy(in, types.FieldName, false)
	require.NoError(t, err)
	assert.Equal(t, first, third)
}

func TestViewSortByDifferentFieldResets(t *testing.T) {
	var v View[types.Contact]
	in := contacts()

	_, err := v.SortBy(in, types.FieldName, false)
	require.NoError(t, err)
	_, err = v.SortBy(in, types.FieldName, false)
	require.NoError(t, err)
	field, reverse := v.Column()
	assert.Equal(t, types.FieldName, field)
	assert.True(t, reverse)

	got, err := v.SortBy(in, types.FieldPhone, false)
	require.NoError(t, err)
	field, reverse = v.Column()
	assert.Equal(t, types.FieldPhone, field)
	assert.False(t, reverse)
	assert.Equal(t, []string{"Carol", "Alice Smith", "Dave", "bob"}, names(got))
}

func TestViewSortByUnknownFieldKeepsState(t *testing.T) {
	var v View[types.Task]
	_, err := v.SortBy(nil, types.FieldText, false)
	require.NoError(t, err)

	_, err = v.SortBy(nil, "phone", false)
	require.ErrorIs(t, err, types.ErrUnknownField)

	field, reverse := v.Column()
	assert.Equal(t, types.FieldText, field)
	assert.False(t, reverse)

	v.Reset()
	field, _ = v.Column()
	assert.Empty(t, field)
}
