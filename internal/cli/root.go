// Package cli implements the keeper command-line interface: a thin
// front-end that opens the App, calls one handler, and renders the result.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/keeper/internal/app"
	"github.com/mesh-intelligence/keeper/internal/paths"
	"github.com/mesh-intelligence/keeper/pkg/keeper"
	"github.com/mesh-intelligence/keeper/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// errSystem marks failures that are not the user's fault (config, backend).
var errSystem = errors.New("system error")

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool
}

// session carries per-invocation state from the root command to its
// subcommands. The App is opened lazily by commands that need records.
type session struct {
	flags  rootFlags
	app    *app.App
	logger *slog.Logger
}

// NewRootCmd creates the top-level "keeper" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&session{})
}

func newRootCmd(s *session) *cobra.Command {
	root := &cobra.Command{
		Use:     "keeper",
		Short:   "Local contact and to-do record keeper",
		Long:    "keeper manages contacts and tasks stored as JSON files in the working directory.",
		Version: keeper.Version,
		// Errors are printed once by Run.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&s.flags.configDir, "config-dir", "", "configuration directory (default: $(CWD)/.keeper)")
	root.PersistentFlags().StringVar(&s.flags.dataDir, "data-dir", "", "data directory (default: working directory)")
	root.PersistentFlags().BoolVar(&s.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&s.flags.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(s))
	root.AddCommand(newContactCmd(s))
	root.AddCommand(newTaskCmd(s))

	return root
}

// Run executes the command line args and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	s := &session{}
	root := newRootCmd(s)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if cerr := s.close(); err == nil && cerr != nil {
		err = fmt.Errorf("%w: close: %w", errSystem, cerr)
	}
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// Execute runs the root command against the process arguments and exits
// with the appropriate code.
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}

// exitCode maps an error to exit status: persistence and setup failures are
// system errors, everything else (validation, unknown ids, bad arguments)
// is the user's.
func exitCode(err error) int {
	if errors.Is(err, types.ErrPersistence) || errors.Is(err, errSystem) {
		return exitSysError
	}
	return exitUserError
}

// open loads configuration and opens the App once per invocation. Load
// failures are printed as warnings; the command still runs.
func (s *session) open(cmd *cobra.Command) (*app.App, error) {
	if s.app != nil {
		return s.app, nil
	}

	configDir, err := paths.ResolveConfigDir(s.flags.configDir)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve config dir: %w", errSystem, err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("%w: load config: %w", errSystem, err)
	}
	dataDir, err := paths.ResolveDataDir(s.flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return nil, fmt.Errorf("%w: resolve data dir: %w", errSystem, err)
	}

	s.logger = newLogger(cmd.ErrOrStderr(), v.GetString(cfgKeyLogLevel), s.flags.verbose)

	cfg := types.Config{
		Backend: v.GetString(cfgKeyBackend),
		DataDir: dataDir,
	}
	a, err := app.Open(cfg, app.WithLogger(s.logger))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errSystem, err)
	}
	for _, w := range a.Warnings() {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v (starting with an empty list)\n", w)
	}

	s.app = a
	return a, nil
}

func (s *session) close() error {
	if s.app == nil {
		return nil
	}
	err := s.app.Close()
	s.app = nil
	return err
}

// newLogger builds the stderr text logger. --verbose forces debug.
func newLogger(w io.Writer, level string, verbose bool) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil || level == "" {
		lvl = slog.LevelWarn
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
