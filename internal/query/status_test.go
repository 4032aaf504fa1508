package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/keeper/pkg/types"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    StatusFilter
		wantErr bool
	}{
		{"", StatusAll, false},
		{"all", StatusAll, false},
		{"All", StatusAll, false},
		{"Completed", StatusCompleted, false},
		{" pending ", StatusPending, false},
		{"done", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatus(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterStatus(t *testing.T) {
	tasks := []types.Task{
		{ID: 1, Text: "a"},
		{ID: 2, Text: "b", Completed: true},
		{ID: 3, Text: "c"},
	}

	assert.Equal(t, tasks, FilterStatus(tasks, StatusAll))
	assert.Equal(t, []int{2}, taskIDs(FilterStatus(tasks, StatusCompleted)))
	assert.Equal(t, []int{1, 3}, taskIDs(FilterStatus(tasks, StatusPending)))
	assert.Empty(t, FilterStatus(nil, StatusPending))
}

func TestSummaries(t *testing.T) {
	s := SummarizeTasks([]types.Task{{Completed: true}, {}, {}})
	assert.Equal(t, TaskSummary{Total: 3, Completed: 1, Pending: 2}, s)
	assert.Equal(t, "Total Tasks: 3 | Completed: 1 | Pending: 2", s.String())

	assert.Equal(t, "Total Contacts: 4", ContactSummary(4, 4))
	assert.Equal(t, "Showing 1 of 4 contacts", ContactSummary(1, 4))
}
