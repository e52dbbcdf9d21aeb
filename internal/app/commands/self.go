package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"baseline/internal/app"
	"baseline/internal/command"
	"baseline/internal/core"
	"baseline/internal/platform/database/config"
	"baseline/internal/platform/database/workspaces"
	"baseline/internal/result"

	"github.com/Data-Corruption/stdx/xterm/prompt"
)

// confirm asks a yes/no question. Swapped out in tests.
var confirm = func(msg string) (bool, error) {
	return prompt.YesNo(msg)
}

// Self manages the installed CLI itself rather than a workspace.
var Self RegFunc = func(a *app.App, _ core.Service) *command.Entry {
	update := leaf("update", "", "Update the CLI",
		func(ctx context.Context, _, opts command.Values) error {
			out := a.Writer()

			if opts.Bool("notify") {
				enabled, err := a.ToggleNotifications()
				if err != nil {
					return err
				}
				if enabled {
					fmt.Fprintln(out, "Update notifications are now enabled.")
				} else {
					fmt.Fprintln(out, "Update notifications are now disabled.")
				}
				return nil
			}

			if opts.Bool("check") {
				updateAvailable, err := a.CheckForUpdate()
				switch {
				case errors.Is(err, app.ErrDevBuild):
					fmt.Fprintln(out, "Dev build detected, skipping update check.")
				case err != nil:
					return fmt.Errorf("failed to check for updates: %w", err)
				case updateAvailable:
					fmt.Fprintf(out, "Update available! Run '%s self update' to update to the latest version.\n", a.BuildInfo().Name)
				default:
					fmt.Fprintln(out, "No updates available.")
				}
				return nil
			}

			return a.DeferUpdate()
		})
	withOptions(update,
		flag("--notify", "Toggle update notifications"),
		flag("--check", "Only check for updates"),
	)

	uninstall := leaf("uninstall", "", "Uninstall the CLI and delete its data",
		func(ctx context.Context, _, _ command.Values) error {
			return uninstallApp(a)
		})

	info := leaf("info", "", "Show build and storage information",
		func(ctx context.Context, _, _ command.Values) error {
			return wrap(ctx, a, "Installation", func(context.Context) (*result.Result, error) {
				return installInfo(a)
			})
		})

	return group("self", "", "Manage this installation", update, uninstall, info)
}

func uninstallApp(a *app.App) error {
	out := a.Writer()
	name := a.BuildInfo().Name

	msg := fmt.Sprintf("Are you sure you want to uninstall %s? This will delete all data and the application binary.", name)
	if yes, err := confirm(msg); err != nil {
		return fmt.Errorf("prompt failed: %w", err)
	} else if !yes {
		fmt.Fprintln(out, "Uninstall cancelled.")
		return nil
	}

	binPath, err := getBinPath()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}
	storagePath := a.StorageDir

	fmt.Fprintln(out, "Uninstalling...")

	// the database and logs live in storage, remove it only after they're closed
	return a.SetPostCleanup(func() error {
		if storagePath != "" {
			fmt.Fprintf(out, "Removing storage directory: %s\n", storagePath)
			if err := os.RemoveAll(storagePath); err != nil {
				fmt.Fprintf(out, "Failed to remove storage directory: %v\n", err)
			}
		}
		fmt.Fprintf(out, "Removing binary: %s\n", binPath)
		if err := os.Remove(binPath); err != nil {
			fmt.Fprintf(out, "Failed to remove binary: %v\n", err)
		}
		fmt.Fprintln(out, "Uninstall complete.")
		return nil
	})
}

// installInfo reports the build, where it keeps its data and the stored
// update state.
func installInfo(a *app.App) (*result.Result, error) {
	r := result.OK(result.Dim(a.BuildInfo().JSON()))
	r.Add(result.KindInfo, "Storage: %s", a.StorageDir)
	if a.WorkspaceRoot == "" {
		r.Add(result.KindInfo, "Workspace: (none)")
	} else {
		r.Add(result.KindInfo, "Workspace: %s", a.WorkspaceRoot)
	}

	if a.DB == nil {
		return r, nil
	}
	if a.WorkspaceRoot != "" {
		rec, err := workspaces.Get(a.DB, a.WorkspaceRoot)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			r.Add(result.KindInfo, "Runs in this workspace: %d, last at %s", rec.Runs, rec.LastUsed.Format(time.DateTime))
		}
	}
	cfg, err := config.View(a.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to view config: %w", err)
	}
	r.Add(result.KindInfo, "Update notifications: %t", cfg.UpdateNotifications)
	if cfg.UpdateAvailable {
		r.Messages = append(r.Messages, result.Warn(fmt.Sprintf("Update available, run '%s self update'", a.BuildInfo().Name)))
	} else if !cfg.LastUpdateCheck.IsZero() {
		r.Messages = append(r.Messages, result.Success("Up to date as of "+cfg.LastUpdateCheck.Format(time.DateTime)))
	}
	for _, root := range cfg.RecentWorkspaces {
		r.Messages = append(r.Messages, result.Info("Recent: "+root))
	}
	return r, nil
}

func getBinPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(exe)
}
