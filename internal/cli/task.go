package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/keeper/internal/app"
	"github.com/mesh-intelligence/keeper/internal/query"
	"github.com/mesh-intelligence/keeper/pkg/types"
)

func newTaskCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks", "todo"},
		Short:   "Manage to-do tasks",
	}
	cmd.AddCommand(
		newTaskAddCmd(s),
		newTaskListCmd(s),
		newTaskEditCmd(s),
		newTaskDoneCmd(s),
		newTaskDeleteCmd(s),
		newTaskClearCmd(s),
	)
	return cmd
}

func newTaskAddCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>...",
		Short: "Add a pending task",
		Long: `Add a task. All arguments are joined with spaces to form the text.

Example:
  keeper task add Buy milk
  keeper task add "Call mom"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := s.open(cmd)
			if err != nil {
				return err
			}
			t, err := app.AddTask(a.Tasks, strings.Join(args, " "))
			if t.ID == 0 {
				return err
			}
			if perr := s.renderTask(cmd.OutOrStdout(), "Added", t); perr != nil {
				return perr
			}
			return saveFailed(cmd, err)
		},
	}
}

func newTaskListCmd(s *session) *cobra.Command {
	var (
		status string
		q      app.TaskQuery
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks in insertion order. --status narrows to completed or
pending tasks, --search to tasks whose text contains the term. The
summary line always counts every task.

--sort may be repeated; naming the same column twice in a row flips the
direction.

Example:
  keeper task list
  keeper task list --status pending
  keeper task list --sort completed --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := query.ParseStatus(status)
			if err != nil {
				return err
			}
			q.Status = f

			a, err := s.open(cmd)
			if err != nil {
				return err
			}
			page, err := app.ListTasks(a.Tasks, a.TaskView, q)
			if err != nil {
				return err
			}
			if s.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), page.Tasks)
			}
			printTaskTable(cmd.OutOrStdout(), page)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "all", "filter by status (all, completed, pending)")
	cmd.Flags().StringVarP(&q.Search, "search", "s", "", "case-insensitive search over task text")
	cmd.Flags().StringArrayVar(&q.Sort, "sort", nil, "sort by column (id, text, completed, date_added); repeatable")
	cmd.Flags().BoolVar(&q.Reverse, "reverse", false, "start the first sort in descending order")
	return cmd
}

func newTaskEditCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <text>...",
		Short: "Change the text of a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := s.open(cmd)
			if err != nil {
				return err
			}
			t, err := app.EditTask(a.Tasks, id, strings.Join(args[1:], " "))
			if t.ID == 0 {
				return err
			}
			if perr := s.renderTask(cmd.OutOrStdout(), "Updated", t); perr != nil {
				return perr
			}
			return saveFailed(cmd, err)
		},
	}
}

func newTaskDoneCmd(s *session) *cobra.Command {
	var (
		undo   bool
		toggle bool
	)
	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task completed",
		Long: `Mark a task completed. --undo marks it pending again; --toggle flips
its current state.

Example:
  keeper task done 2
  keeper task done 2 --undo`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if undo && toggle {
				return errors.New("--undo and --toggle cannot be combined")
			}
			a, err := s.open(cmd)
			if err != nil {
				return err
			}
			var t types.Task
			if toggle {
				t, err = app.ToggleTask(a.Tasks, id)
			} else {
				t, err = app.SetTaskCompleted(a.Tasks, id, !undo)
			}
			if t.ID == 0 {
				return err
			}
			if perr := s.renderTask(cmd.OutOrStdout(), "Updated", t); perr != nil {
				return perr
			}
			return saveFailed(cmd, err)
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "mark the task pending")
	cmd.Flags().BoolVar(&toggle, "toggle", false, "flip the completion state")
	return cmd
}

func newTaskDeleteCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := s.open(cmd)
			if err != nil {
				return err
			}
			err = app.DeleteTask(a.Tasks, id)
			if err != nil && !errors.Is(err, types.ErrPersistence) {
				return err
			}
			if s.flags.jsonMode {
				if perr := printJSON(cmd.OutOrStdout(), deletedOutput{Deleted: id}); perr != nil {
					return perr
				}
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %d\n", id)
			}
			return saveFailed(cmd, err)
		},
	}
}

func newTaskClearCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all completed tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := s.open(cmd)
			if err != nil {
				return err
			}
			n, err := app.ClearCompleted(a.Tasks)
			if err != nil && !errors.Is(err, types.ErrPersistence) {
				return err
			}
			if s.flags.jsonMode {
				if perr := printJSON(cmd.OutOrStdout(), removedOutput{Removed: n}); perr != nil {
					return perr
				}
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d completed task(s)\n", n)
			}
			return saveFailed(cmd, err)
		},
	}
}

// renderTask prints t as JSON or as labelled lines headed by verb.
func (s *session) renderTask(w io.Writer, verb string, t types.Task) error {
	if s.flags.jsonMode {
		return printJSON(w, t)
	}
	fmt.Fprintf(w, "%s task %d\n", verb, t.ID)
	fmt.Fprintf(w, "  %s %s (added %s)\n", t.Status(), t.Text, t.DateAdded)
	return nil
}

func printTaskTable(w io.Writer, page app.TaskPage) {
	if len(page.Tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		fmt.Fprintln(w, page.Summary)
		return
	}
	rows := make([][]string, len(page.Tasks))
	for i, t := range page.Tasks {
		rows[i] = []string{
			strconv.Itoa(t.ID),
			t.Status(),
			truncate(t.Text, 50),
			t.DateAdded,
		}
	}
	printTable(w, []string{"ID", "STATUS", "TEXT", "ADDED"}, rows)
	fmt.Fprintln(w, page.Summary)
}
