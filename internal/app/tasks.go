package app

import (
	"github.com/mesh-intelligence/keeper/internal/query"
	"github.com/mesh-intelligence/keeper/internal/store"
	"github.com/mesh-intelligence/keeper/pkg/types"
)

// TaskQuery selects and orders the visible tasks.
type TaskQuery struct {
	Status  query.StatusFilter
	Search  string
	Sort    []string
	Reverse bool
}

// TaskPage is a computed task projection plus counts over all tasks.
type TaskPage struct {
	Tasks   []types.Task
	Summary query.TaskSummary
}

// AddTask stores a new pending task.
func AddTask(s *store.Store[types.Task], text string) (types.Task, error) {
	return s.Add(types.Task{Text: text})
}

// EditTask replaces the text of task id, keeping its completion state.
func EditTask(s *store.Store[types.Task], id int, text string) (types.Task, error) {
	t, err := s.Get(id)
	if err != nil {
		return types.Task{}, err
	}
	t.Text = text
	return s.Update(id, t)
}

// SetTaskCompleted sets the completion state of task id.
func SetTaskCompleted(s *store.Store[types.Task], id int, completed bool) (types.Task, error) {
	t, err := s.Get(id)
	if err != nil {
		return types.Task{}, err
	}
	t.Completed = completed
	return s.Update(id, t)
}

// ToggleTask flips the completion state of task id.
func ToggleTask(s *store.Store[types.Task], id int) (types.Task, error) {
	t, err := s.Get(id)
	if err != nil {
		return types.Task{}, err
	}
	return SetTaskCompleted(s, id, !t.Completed)
}

// DeleteTask removes task id.
func DeleteTask(s *store.Store[types.Task], id int) error {
	return s.Delete(id)
}

// ClearCompleted removes every completed task with a single save and
// returns how many were removed.
func ClearCompleted(s *store.Store[types.Task]) (int, error) {
	return s.RemoveIf(func(t types.Task) bool { return t.Completed })
}

// ListTasks applies the status filter, then the text search, then replays
// q.Sort through v. Summary always counts every task.
func ListTasks(s *store.Store[types.Task], v *query.View[types.Task], q TaskQuery) (TaskPage, error) {
	all := s.List()
	shown := query.FilterStatus(all, q.Status)
	shown, err := query.Filter(shown, q.Search, types.TaskSearchFields...)
	if err != nil {
		return TaskPage{}, err
	}
	for _, field := range q.Sort {
		if shown, err = v.SortBy(shown, field, q.Reverse); err != nil {
			return TaskPage{}, err
		}
	}
	return TaskPage{
		Tasks:   shown,
		Summary: query.SummarizeTasks(all),
	}, nil
}
