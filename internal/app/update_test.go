package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"baseline/internal/build"
	"baseline/internal/platform/database"
	"baseline/internal/platform/database/config"
	"baseline/internal/types"

	"github.com/Data-Corruption/lmdb-go/wrap"
	"github.com/Data-Corruption/stdx/xlog"
)

// MockReleaseSource is a mock implementation of ReleaseSource for testing.
type MockReleaseSource struct {
	LatestVersion string
	Error         error
	Calls         int
}

func (m *MockReleaseSource) GetLatestVersion(ctx context.Context, releaseURL string) (string, error) {
	m.Calls++
	return m.LatestVersion, m.Error
}

func newTestDB(t *testing.T) (*wrap.DB, *xlog.Logger) {
	t.Helper()
	tmpDir := t.TempDir()

	logger, err := xlog.New(filepath.Join(tmpDir, "logs"), "debug")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	t.Cleanup(func() { logger.Close() })

	db, err := database.New(filepath.Join(tmpDir, "db"), logger)
	if err != nil {
		t.Fatalf("Failed to create db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, logger
}

func newTestApp(t *testing.T, version string, src *MockReleaseSource) (*App, *bytes.Buffer) {
	t.Helper()
	db, logger := newTestDB(t)

	bi := build.Info()
	bi.Version = version
	bi.ReleaseURL = "https://download.example-app.com/release/"

	out := &bytes.Buffer{}
	return &App{
		DB:            db,
		Log:           logger,
		Out:           out,
		ReleaseSource: src,
		buildInfo:     bi,
		Context:       context.Background(),
	}, out
}

func TestCheckForUpdate(t *testing.T) {
	tests := []struct {
		name           string
		currentVersion string
		latestVersion  string
		mockError      error
		wantUpdate     bool
		wantError      bool
	}{
		{
			name:           "Update Available",
			currentVersion: "v1.0.0",
			latestVersion:  "v1.1.0",
			wantUpdate:     true,
		},
		{
			name:           "No Update Available",
			currentVersion: "v1.1.0",
			latestVersion:  "v1.1.0",
		},
		{
			name:           "Current Newer Than Latest (Dev)",
			currentVersion: "v1.2.0",
			latestVersion:  "v1.1.0",
		},
		{
			name:           "Network Error",
			currentVersion: "v1.0.0",
			mockError:      fmt.Errorf("network error"),
			wantError:      true,
		},
		{
			name:           "Dev Build Skipped",
			currentVersion: build.DevVersion,
			latestVersion:  "v9.9.9",
			wantError:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &MockReleaseSource{LatestVersion: tt.latestVersion, Error: tt.mockError}
			app, _ := newTestApp(t, tt.currentVersion, src)

			gotUpdate, err := app.CheckForUpdate()
			if (err != nil) != tt.wantError {
				t.Fatalf("CheckForUpdate() error = %v, wantError %v", err, tt.wantError)
			}
			if gotUpdate != tt.wantUpdate {
				t.Errorf("CheckForUpdate() = %v, want %v", gotUpdate, tt.wantUpdate)
			}
			if tt.currentVersion == build.DevVersion {
				if !errors.Is(err, ErrDevBuild) {
					t.Errorf("CheckForUpdate() error = %v; want ErrDevBuild", err)
				}
				if src.Calls != 0 {
					t.Errorf("release source queried for a dev build")
				}
			}

			if !tt.wantError {
				cfg, err := config.View(app.DB)
				if err != nil {
					t.Fatalf("Failed to view config: %v", err)
				}
				if cfg.UpdateAvailable != tt.wantUpdate {
					t.Errorf("DB Config UpdateAvailable = %v, want %v", cfg.UpdateAvailable, tt.wantUpdate)
				}
			}
		})
	}
}

func TestNotify(t *testing.T) {
	t.Run("prints hint and records check time", func(t *testing.T) {
		src := &MockReleaseSource{LatestVersion: "v2.0.0"}
		app, out := newTestApp(t, "v1.0.0", src)

		if err := app.Notify(); err != nil {
			t.Fatalf("Notify() failed: %v", err)
		}
		if !strings.Contains(out.String(), "Update available!") {
			t.Errorf("expected update hint, got %q", out.String())
		}
		cfg, err := config.View(app.DB)
		if err != nil {
			t.Fatalf("Failed to view config: %v", err)
		}
		if time.Since(cfg.LastUpdateCheck) > time.Minute {
			t.Errorf("LastUpdateCheck not recorded: %v", cfg.LastUpdateCheck)
		}

		// second call within a day does not query again
		if err := app.Notify(); err != nil {
			t.Fatalf("Notify() failed: %v", err)
		}
		if src.Calls != 1 {
			t.Errorf("release source queried %d times; want 1", src.Calls)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		src := &MockReleaseSource{LatestVersion: "v2.0.0"}
		app, out := newTestApp(t, "v1.0.0", src)
		if err := config.Update(app.DB, func(cfg *types.Configuration) error {
			cfg.UpdateNotifications = false
			return nil
		}); err != nil {
			t.Fatalf("Failed to update config: %v", err)
		}

		if err := app.Notify(); err != nil {
			t.Fatalf("Notify() failed: %v", err)
		}
		if src.Calls != 0 || out.Len() != 0 {
			t.Errorf("Notify() checked for updates while disabled")
		}
	})

	t.Run("offline", func(t *testing.T) {
		src := &MockReleaseSource{Error: errors.New("no network")}
		app, out := newTestApp(t, "v1.0.0", src)
		if err := app.Notify(); err != nil {
			t.Errorf("Notify() should swallow check failures, got %v", err)
		}
		if out.Len() != 0 {
			t.Errorf("unexpected output: %q", out.String())
		}
	})
}

func TestToggleNotifications(t *testing.T) {
	app, _ := newTestApp(t, "v1.0.0", &MockReleaseSource{})
	for _, want := range []bool{false, true} {
		got, err := app.ToggleNotifications()
		if err != nil {
			t.Fatalf("ToggleNotifications() failed: %v", err)
		}
		if got != want {
			t.Errorf("ToggleNotifications() = %v; want %v", got, want)
		}
	}
}

func TestDeferUpdate(t *testing.T) {
	t.Run("schedules install script", func(t *testing.T) {
		app, out := newTestApp(t, "v1.0.0", &MockReleaseSource{LatestVersion: "v1.1.0"})
		if err := app.DeferUpdate(); err != nil {
			t.Fatalf("DeferUpdate() failed: %v", err)
		}
		if !strings.Contains(out.String(), "New version available: v1.1.0") {
			t.Errorf("output = %q", out.String())
		}
		if app.postCleanup == nil {
			t.Errorf("install script was not scheduled")
		}
		// a second scheduling attempt must not replace the first
		if err := app.SetPostCleanup(func() error { return nil }); !errors.Is(err, ErrPostCleanupSet) {
			t.Errorf("SetPostCleanup() error = %v; want ErrPostCleanupSet", err)
		}
	})

	t.Run("up to date", func(t *testing.T) {
		app, out := newTestApp(t, "v1.1.0", &MockReleaseSource{LatestVersion: "v1.1.0"})
		if err := app.DeferUpdate(); err != nil {
			t.Fatalf("DeferUpdate() failed: %v", err)
		}
		if !strings.Contains(out.String(), "No updates available.") || app.postCleanup != nil {
			t.Errorf("unexpected update scheduling, output %q", out.String())
		}
	})

	t.Run("dev build", func(t *testing.T) {
		app, out := newTestApp(t, build.DevVersion, &MockReleaseSource{LatestVersion: "v1.1.0"})
		if err := app.DeferUpdate(); err != nil {
			t.Fatalf("DeferUpdate() failed: %v", err)
		}
		if !strings.Contains(out.String(), "Dev build detected") {
			t.Errorf("output = %q", out.String())
		}
	})
}
