// Package app implements the application, following the dependency injection pattern.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"sync"
	"time"

	"baseline/internal/build"
	"baseline/internal/platform/database"
	"baseline/internal/platform/database/config"
	"baseline/internal/platform/database/workspaces"
	"baseline/internal/platform/release"
	"baseline/internal/types"
	"baseline/internal/workspace"
	"baseline/pkg/x"

	"github.com/Data-Corruption/lmdb-go/wrap"
	"github.com/Data-Corruption/stdx/xlog"
	"github.com/urfave/cli/v3"
)

type CleanupFunc func() error

/*
App represents the application, following the dependency injection pattern.

It provides:
  - build-time variables
  - the enclosing workspace, if any
  - injected services (logger, settings database, release source)
  - lifecycle management and the post-cleanup hook used by self update/uninstall
*/
type App struct {
	buildInfo build.BuildInfo

	// workspace enclosing the working directory, empty/nil outside one
	WorkspaceRoot string
	Workspace     *workspace.Config

	DB            *wrap.DB
	Log           *xlog.Logger
	Out           io.Writer // command output, defaults to os.Stdout
	StorageDir    string    // e.g. ~/.baseline
	RuntimeDir    string    // e.g. XDG_RUNTIME_DIR/baseline, fallback to /tmp/baseline-USER
	TempDir       string    // StorageDir/tmp
	ReleaseSource release.ReleaseSource

	// lifecycle management
	cleanup       []CleanupFunc
	cleanupOnce   sync.Once
	postCleanup   CleanupFunc
	postCleanupMu sync.Mutex
	updateOnce    sync.Once
	// Context is the root command's context once Init has run.
	Context context.Context
}

func New(bi build.BuildInfo) *App {
	return &App{
		buildInfo:     bi,
		ReleaseSource: &release.HTTPSource{},
		Context:       context.Background(),
	}
}

func (a *App) BuildInfo() build.BuildInfo {
	return a.buildInfo
}

// Writer is where commands print their output.
func (a *App) Writer() io.Writer {
	if a.Out == nil {
		return os.Stdout
	}
	return a.Out
}

// SetWorkspace records the workspace found at startup.
func (a *App) SetWorkspace(root string, cfg *workspace.Config) {
	a.WorkspaceRoot, a.Workspace = root, cfg
}

// Init is the root command's Before hook. It sets up storage paths, the
// migration guard, logging and the settings database.
func (a *App) Init(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	name := a.buildInfo.Name

	var err error
	if a.StorageDir, err = getStoragePath(name); err != nil {
		return ctx, err
	}
	if a.RuntimeDir, err = getRuntimePath(name); err != nil {
		return ctx, err
	}
	a.TempDir = filepath.Join(a.StorageDir, "tmp")
	if err := os.MkdirAll(a.TempDir, 0o755); err != nil {
		return ctx, fmt.Errorf("failed to create temp dir: %w", err)
	}

	migrator := cmd.Bool("migrate")

	// migration guard before touching anything
	if !migrator {
		if err := a.mguard(); err != nil {
			return ctx, fmt.Errorf("failed to setup migration guard: %w", err)
		}
	} else {
		fmt.Fprintf(a.Writer(), "%s version %s\n", name, a.buildInfo.Version)
	}

	// logger, level comes from settings unless overridden
	logOverride := cmd.IsSet("log")
	a.Log, err = xlog.New(filepath.Join(a.StorageDir, "logs"), x.Ternary(logOverride, cmd.String("log"), "none"))
	if err != nil {
		// an invalid level still yields a running logger
		if a.Log != nil {
			a.Log.Close()
			a.Log = nil
		}
		return ctx, fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.AddCleanup(a.Log.Close)

	a.Log.Debugf("Starting %s, version: %s, storage path: %s, runtime path: %s, workspace: %q",
		name, a.buildInfo.Version, a.StorageDir, a.RuntimeDir, a.WorkspaceRoot)

	if a.DB, err = database.New(filepath.Join(a.StorageDir, "db"), a.Log); err != nil {
		return ctx, fmt.Errorf("failed to initialize database: %w", err)
	}
	a.AddCleanup(func() error {
		// store PreUpdateVersion on shutdown, unless we are the migrator instance
		if !migrator {
			if err := config.Update(a.DB, func(cfg *types.Configuration) error {
				cfg.PreUpdateVersion = a.buildInfo.Version
				return nil
			}); err != nil {
				a.Log.Errorf("failed to set PreUpdateVersion on shutdown: %v", err)
			}
		}
		a.DB.Close()
		return nil
	})
	a.Log.Debug("Database initialized")

	var cfg *types.Configuration
	if err := config.Update(a.DB, func(c *types.Configuration) error {
		c.TouchWorkspace(a.WorkspaceRoot)
		snapshot := *c
		cfg = &snapshot
		return nil
	}); err != nil {
		return ctx, fmt.Errorf("failed to update config: %w", err)
	}

	if !logOverride {
		if err := a.Log.SetLevel(cfg.LogLevel); err != nil {
			return ctx, fmt.Errorf("failed to set log level: %w", err)
		}
	}

	if a.WorkspaceRoot != "" {
		var wsName string
		if a.Workspace != nil {
			wsName = a.Workspace.Name
		}
		// usage stats only, never fatal
		if _, err := workspaces.Touch(a.DB, a.WorkspaceRoot, wsName, time.Now()); err != nil {
			a.Log.Errorf("failed to record workspace use: %v", err)
		}
	}

	if cfg.PreUpdateVersion != "" && cfg.PreUpdateVersion != a.buildInfo.Version {
		a.Log.Infof("Updated from %s to %s", cfg.PreUpdateVersion, a.buildInfo.Version)
	}

	ctx = xlog.IntoContext(ctx, a.Log)
	a.Context = ctx

	if !migrator {
		if err := a.Notify(); err != nil {
			a.Log.Errorf("update notification failed: %v", err)
		}
	}

	return ctx, nil
}

// Close runs cleanup funcs in reverse order, then the post cleanup func.
// Safe to call more than once.
func (a *App) Close() {
	a.cleanupOnce.Do(func() {
		for i := len(a.cleanup) - 1; i >= 0; i-- {
			if err := a.cleanup[i](); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to clean up: %v\n", err)
			}
		}
		a.postCleanupMu.Lock()
		defer a.postCleanupMu.Unlock()
		if a.postCleanup != nil {
			time.Sleep(500 * time.Millisecond) // let released locks settle before the script takes them
			if err := a.postCleanup(); err != nil {
				fmt.Fprintf(os.Stderr, "Post cleanup failure: %v\n", err)
			}
		}
	})
}

func (a *App) AddCleanup(f func() error) {
	a.cleanup = append(a.cleanup, f)
}

var ErrPostCleanupSet = errors.New("post cleanup already set")

// SetPostCleanup sets the func run after all cleanup. It returns an error if it's already set.
func (a *App) SetPostCleanup(f func() error) error {
	a.postCleanupMu.Lock()
	defer a.postCleanupMu.Unlock()

	if a.postCleanup != nil {
		return ErrPostCleanupSet
	}
	a.postCleanup = f
	return nil
}

// getStoragePath returns ~/.appName.
func getStoragePath(appName string) (string, error) {
	home, err := x.GetUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "."+appName), nil
}

// getRuntimePath prefers XDG_RUNTIME_DIR, falls back to /tmp/appName-USER.
func getRuntimePath(appName string) (string, error) {
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		return filepath.Join(runtimeDir, appName), nil
	}

	// include username to avoid conflicts in shared /tmp
	username := os.Getenv("USER")
	if username == "" {
		u, err := user.Current()
		if err != nil {
			return "", fmt.Errorf("cannot determine current user: %w", err)
		}
		username = u.Username
	}
	return filepath.Join("/tmp", appName+"-"+username), nil
}
