// Package cli implements the scriptbox command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/scriptbox/internal/config"
	"github.com/mesh-intelligence/scriptbox/internal/library"
	"github.com/mesh-intelligence/scriptbox/internal/paths"
	"github.com/mesh-intelligence/scriptbox/internal/status"
	"github.com/mesh-intelligence/scriptbox/internal/watch"
	"github.com/mesh-intelligence/scriptbox/pkg/scriptbox"
	"github.com/mesh-intelligence/scriptbox/pkg/storage"
	"github.com/mesh-intelligence/scriptbox/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool
}

// app is the state shared by every subcommand of one invocation.
type app struct {
	flags  rootFlags
	cfg    config.Config
	logger *slog.Logger
}

// NewRootCmd creates the "scriptbox" command with global flags and all
// subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{cfg: config.Default()}

	root := &cobra.Command{
		Use:     "scriptbox",
		Short:   "A local library of saved text snippets",
		Long:    "Scriptbox keeps generated scripts and replies in a local library,\norganized into folders with favorites.",
		Version: scriptbox.Version,
		// Errors are printed once by Execute.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (env "+paths.EnvConfigDir+")")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (env "+paths.EnvDataDir+")")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output as JSON")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "debug logging on stderr")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newAddCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newTitleCmd(a),
		newMoveCmd(a),
		newFavCmd(a),
		newRmCmd(a),
		newClearCmd(a),
		newFoldersCmd(a),
		newFolderCmd(a),
		newStatusCmd(a),
		newWatchCmd(a),
	)
	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "scriptbox:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// setup builds the logger and loads config.yaml.
func (a *app) setup(cmd *cobra.Command) error {
	level := slog.LevelWarn
	if a.flags.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	cfg, err := config.Load(configDir)
	if err != nil {
		return userError(err)
	}
	a.cfg = cfg
	a.logger.Debug("config loaded", "dir", configDir, "backend", cfg.Backend)
	return nil
}

func (a *app) configDir() (string, error) {
	return paths.ResolveConfigDir(a.flags.configDir)
}

func (a *app) dataDir() (string, error) {
	return paths.ResolveDataDir(a.flags.dataDir, a.cfg.DataDir)
}

// openStorage opens the configured backend. The caller must Close it.
func (a *app) openStorage() (types.Storage, error) {
	dir, err := a.dataDir()
	if err != nil {
		return nil, sysError(fmt.Errorf("resolve data dir: %w", err))
	}
	s, err := storage.Open(a.cfg.StorageConfig(dir))
	if err != nil {
		return nil, sysError(fmt.Errorf("open storage: %w", err))
	}
	a.logger.Debug("storage opened", "backend", a.cfg.Backend, "dir", dir)
	return s, nil
}

// withStore opens storage, builds a Store, and runs fn with it.
func (a *app) withStore(fn func(*library.Store) error, opts ...library.Option) error {
	s, err := a.openStorage()
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			a.logger.Warn("closing storage", "error", err)
		}
	}()

	opts = append([]library.Option{library.WithLogger(a.logger.With("component", "library"))}, opts...)
	return classify(fn(library.New(s, opts...)))
}

// exitError carries the process exit code for err.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: exitUserError, err: err}
}

func sysError(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: exitSysError, err: err}
}

// userErrors are sentinels caused by bad input rather than a failing system.
var userErrors = []error{
	types.ErrEmptyText,
	types.ErrInvalidName,
	types.ErrReservedFolder,
	types.ErrBackendEmpty,
	types.ErrBackendUnknown,
	errItemNotFound,
	status.ErrNoURL,
	watch.ErrWatchUnsupported,
}

// classify tags err with an exit code unless it already has one.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return err
	}
	for _, u := range userErrors {
		if errors.Is(err, u) {
			return userError(err)
		}
	}
	return sysError(err)
}

// exitCode maps err to a process exit code. Errors raised by cobra itself,
// such as unknown commands or bad flags, are user errors.
func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// stdinText reads all of r, for commands that accept piped input.
func stdinText(r io.Reader) (string, error) {
	if f, ok := r.(*os.File); ok {
		if fi, err := f.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
			return "", nil
		}
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", sysError(fmt.Errorf("read stdin: %w", err))
	}
	return string(b), nil
}
