package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/keeper/pkg/types"
)

// errBadID is returned for id arguments that are not positive integers.
var errBadID = errors.New("id must be a positive integer")

// parseID converts a positional id argument.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%q: %w", arg, errBadID)
	}
	return id, nil
}

// JSON results of commands that return no record.
type (
	deletedOutput struct {
		Deleted int `json:"deleted"`
	}
	removedOutput struct {
		Removed int `json:"removed"`
	}
)

// printJSON writes v as indented JSON followed by a newline.
func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal output: %w", errSystem, err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}

// saveFailed reports a mutation that was applied in memory but could not be
// written. The returned error carries the persistence failure so the exit
// status reflects it.
func saveFailed(cmd *cobra.Command, err error) error {
	if errors.Is(err, types.ErrPersistence) {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: the change was applied but could not be saved; it may not survive a restart")
	}
	return err
}

// printTable renders rows under header through a tabwriter, trimming the
// trailing padding tabwriter leaves on the last column.
func printTable(w io.Writer, header []string, rows [][]string) {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, strings.Join(header, "\t"))
	rule := make([]string, len(header))
	for i, h := range header {
		rule[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(tw, strings.Join(rule, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()

	for _, line := range strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n") {
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
