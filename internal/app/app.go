// Package app wires one Store and one sort View per record kind into an
// application context, and provides the command handlers the CLI calls.
// Handlers take the Store (and View) they act on as parameters so they can
// be exercised without any front-end.
package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mesh-intelligence/keeper/internal/jsonfile"
	"github.com/mesh-intelligence/keeper/internal/query"
	"github.com/mesh-intelligence/keeper/internal/sqlite"
	"github.com/mesh-intelligence/keeper/internal/store"
	"github.com/mesh-intelligence/keeper/pkg/types"
)

// App owns the authoritative stores. Front-ends hold a reference to an App
// and keep no record data of their own.
type App struct {
	Contacts    *store.Store[types.Contact]
	Tasks       *store.Store[types.Task]
	ContactView *query.View[types.Contact]
	TaskView    *query.View[types.Task]

	config   types.Config
	db       *sqlite.DB
	warnings []error
	logger   *slog.Logger
}

// Option configures Open.
type Option func(*options)

type options struct {
	logger *slog.Logger
	now    func() time.Time
}

// WithLogger sets the logger handed to both stores.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock sets the clock both stores stamp date_added with.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// Open builds the persisters selected by cfg, creates both stores and loads
// them. A snapshot that fails to load is not fatal: that store starts empty
// and the failure is available from Warnings. Open fails only when cfg is
// invalid or the backend cannot be opened.
func Open(cfg types.Config, opts ...Option) (*App, error) {
	o := options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "."
	}

	a := &App{
		ContactView: &query.View[types.Contact]{},
		TaskView:    &query.View[types.Task]{},
		config:      cfg,
		logger:      o.logger,
	}

	var (
		contacts store.Persister[types.Contact]
		tasks    store.Persister[types.Task]
	)
	switch cfg.Backend {
	case types.BackendSQLite:
		db, err := sqlite.Open(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open sqlite backend: %w", err)
		}
		a.db = db
		contacts = sqlite.NewAdapter[types.Contact](db, types.KindContact)
		tasks = sqlite.NewAdapter[types.Task](db, types.KindTask)
	default:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data dir: %w", err)
		}
		contacts = jsonfile.New[types.Contact](cfg.DataDir, types.KindContact)
		tasks = jsonfile.New[types.Task](cfg.DataDir, types.KindTask)
	}

	storeOpts := []store.Option{store.WithLogger(o.logger), store.WithClock(o.now)}
	a.Contacts = store.New(types.KindContact, contacts, storeOpts...)
	a.Tasks = store.New(types.KindTask, tasks, storeOpts...)

	if err := a.Contacts.Load(); err != nil {
		a.warnings = append(a.warnings, err)
	}
	if err := a.Tasks.Load(); err != nil {
		a.warnings = append(a.warnings, err)
	}

	o.logger.Debug("app opened",
		"backend", cfg.Backend,
		"data_dir", cfg.DataDir,
		"contacts", a.Contacts.Len(),
		"tasks", a.Tasks.Len(),
	)
	return a, nil
}

// Config returns the effective configuration.
func (a *App) Config() types.Config { return a.config }

// Warnings returns the recoverable load failures seen by Open.
func (a *App) Warnings() []error { return a.warnings }

// Close releases the backend.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

// LastSnapshot reports the most recent save of kind when the sqlite backend
// is in use. With the json backend it returns sqlite.ErrNoSnapshot.
func (a *App) LastSnapshot(kind string) (sqlite.Snapshot, error) {
	if a.db == nil {
		return sqlite.Snapshot{}, sqlite.ErrNoSnapshot
	}
	return a.db.LastSnapshot(kind)
}

// IsUserError reports whether err stems from caller input rather than the
// system: validation, unknown ids, or unknown fields.
func IsUserError(err error) bool {
	return errors.Is(err, types.ErrValidation) ||
		errors.Is(err, types.ErrNotFound) ||
		errors.Is(err, types.ErrUnknownField)
}
