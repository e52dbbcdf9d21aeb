package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"baseline/internal/build"
	"baseline/internal/platform/database/config"
	"baseline/internal/types"

	"golang.org/x/mod/semver"
)

const (
	UpdateTimeout      = 10 * time.Minute // max time for the install script
	updateCheckTimeout = 10 * time.Second
	updateCheckEvery   = 24 * time.Hour
)

// ErrDevBuild is returned by update checks on builds without a release version.
var ErrDevBuild = errors.New("dev build, no release version to compare")

// Notify prints a hint when an update is available. It checks the release
// source at most once a day and only if notifications are enabled.
func (a *App) Notify() error {
	cfg, err := config.View(a.DB)
	if err != nil {
		return fmt.Errorf("failed to view config: %w", err)
	}
	if !cfg.UpdateNotifications || time.Since(cfg.LastUpdateCheck) < updateCheckEvery {
		return nil
	}

	a.Log.Debug("Checking for updates...")
	if err := config.Update(a.DB, func(cfg *types.Configuration) error {
		cfg.LastUpdateCheck = time.Now()
		return nil
	}); err != nil {
		return fmt.Errorf("failed to update lastUpdateCheck in config: %w", err)
	}

	updateAvailable, err := a.CheckForUpdate()
	switch {
	case errors.Is(err, ErrDevBuild):
	case err != nil:
		a.Log.Errorf("Update check failed: %v", err) // just log since might not be online
	case updateAvailable:
		fmt.Fprintf(a.Writer(), "Update available! Run '%s self update' to update to the latest version.\n", a.buildInfo.Name)
	}
	return nil
}

// latest fetches the latest released version and compares it to ours.
func (a *App) latest() (string, bool, error) {
	if a.buildInfo.Version == "" || a.buildInfo.Version == build.DevVersion {
		return "", false, ErrDevBuild
	}
	if a.ReleaseSource == nil {
		return "", false, errors.New("no release source configured")
	}

	parent := a.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, updateCheckTimeout)
	defer cancel()

	latest, err := a.ReleaseSource.GetLatestVersion(ctx, a.buildInfo.ReleaseURL)
	if err != nil {
		return "", false, err
	}
	return latest, semver.Compare(latest, a.buildInfo.Version) > 0, nil
}

// CheckForUpdate reports whether a newer version is available and stores the
// answer in the config.
func (a *App) CheckForUpdate() (bool, error) {
	latest, updateAvailable, err := a.latest()
	if err != nil {
		return false, err
	}
	if a.Log != nil {
		a.Log.Debugf("Latest version: %s, Current version: %s, Update available: %t", latest, a.buildInfo.Version, updateAvailable)
	}

	if err := config.Update(a.DB, func(cfg *types.Configuration) error {
		cfg.UpdateAvailable = updateAvailable
		return nil
	}); err != nil {
		return false, fmt.Errorf("failed to update updateAvailable in config: %w", err)
	}
	return updateAvailable, nil
}

// ToggleNotifications flips the update notification setting and returns the new value.
func (a *App) ToggleNotifications() (bool, error) {
	var enabled bool
	if err := config.Update(a.DB, func(cfg *types.Configuration) error {
		cfg.UpdateNotifications = !cfg.UpdateNotifications
		enabled = cfg.UpdateNotifications
		return nil
	}); err != nil {
		return false, fmt.Errorf("failed to update notification setting in config: %w", err)
	}
	return enabled, nil
}

// DeferUpdate checks for a newer version and, if there is one, schedules the
// install script to run after cleanup. Exit soon after calling this. Calling
// it more than once has no effect.
func (a *App) DeferUpdate() error {
	var returnErr error

	a.updateOnce.Do(func() {
		latest, updateAvailable, err := a.latest()
		if errors.Is(err, ErrDevBuild) {
			fmt.Fprintln(a.Writer(), "Dev build detected, skipping update.")
			return
		}
		if err != nil {
			returnErr = fmt.Errorf("failed to check for updates: %w", err)
			return
		}
		if !updateAvailable {
			fmt.Fprintln(a.Writer(), "No updates available.")
			return
		}
		fmt.Fprintln(a.Writer(), "New version available:", latest)

		if err := config.Update(a.DB, func(cfg *types.Configuration) error {
			cfg.UpdateAvailable = false
			return nil
		}); err != nil {
			returnErr = fmt.Errorf("failed to update updateAvailable in config: %w", err)
			return
		}

		pipeline := fmt.Sprintf("curl -sSfL %s | sh", a.buildInfo.InstallScriptURL())
		if a.Log != nil {
			a.Log.Debugf("Prepared update, command: %s", pipeline)
		}
		if err := a.SetPostCleanup(func() error { return runUpdate(pipeline) }); err != nil {
			returnErr = err
		}
	})

	return returnErr
}

func runUpdate(pipeline string) error {
	ctx, cancel := context.WithTimeout(context.Background(), UpdateTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", pipeline)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	return cmd.Run()
}
