package query

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/keeper/pkg/types"
)

// StatusFilter selects tasks by completion.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusCompleted StatusFilter = "completed"
	StatusPending   StatusFilter = "pending"
)

// ParseStatus accepts a status filter name in any case.
func ParseStatus(s string) (StatusFilter, error) {
	switch f := StatusFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "", StatusAll:
		return StatusAll, nil
	case StatusCompleted, StatusPending:
		return f, nil
	}
	return "", fmt.Errorf("status %q (valid: all, completed, pending): %w", s, types.ErrUnknownField)
}

// FilterStatus returns the tasks matching status, preserving order.
// StatusAll returns tasks unchanged.
func FilterStatus(tasks []types.Task, status StatusFilter) []types.Task {
	if status == StatusAll || status == "" {
		return tasks
	}
	want := status == StatusCompleted
	out := make([]types.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed == want {
			out = append(out, t)
		}
	}
	return out
}

// TaskSummary counts tasks by completion.
type TaskSummary struct {
	Total     int
	Completed int
	Pending   int
}

// SummarizeTasks counts tasks.
func SummarizeTasks(tasks []types.Task) TaskSummary {
	s := TaskSummary{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
	}
	s.Pending = s.Total - s.Completed
	return s
}

func (s TaskSummary) String() string {
	return fmt.Sprintf("Total Tasks: %d | Completed: %d | Pending: %d", s.Total, s.Completed, s.Pending)
}

// ContactSummary is the contact status line for shown of total records.
func ContactSummary(shown, total int) string {
	if shown == total {
		return fmt.Sprintf("Total Contacts: %d", total)
	}
	return fmt.Sprintf("Showing %d of %d contacts", shown, total)
}
