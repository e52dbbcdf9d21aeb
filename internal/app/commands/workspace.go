package commands

import (
	"context"

	"baseline/internal/app"
	"baseline/internal/command"
	"baseline/internal/core"
	"baseline/internal/result"
)

var Workspace RegFunc = func(a *app.App, svc core.Service) *command.Entry {
	force := flag("--force", "Force overwrite existing configs")

	// setup is config followed by project init, stopping at the first failure
	setup := leaf("setup", "", "Setup workspace (config + project-init)",
		func(ctx context.Context, _, opts command.Values) error {
			f := opts.Bool("force")
			if err := wrap(ctx, a, "Generating Editor Workspace Files", func(ctx context.Context) (*result.Result, error) {
				return svc.ConfigureEditors(ctx, core.EditorConfigRequest{Force: f})
			}); err != nil {
				return err
			}
			return wrap(ctx, a, "Initializing Project Configs", func(ctx context.Context) (*result.Result, error) {
				return svc.InitProjects(ctx, core.ProjectInitRequest{Force: f})
			})
		})
	withOptions(setup, force)

	config := leaf("config", "", "Generate editor workspace files",
		func(ctx context.Context, _, opts command.Values) error {
			req := core.EditorConfigRequest{
				Force:      opts.Bool("force"),
				AutoDetect: opts.Bool("auto-detect"),
			}
			return wrap(ctx, a, "Generating Editor Workspace Files", func(ctx context.Context) (*result.Result, error) {
				return svc.ConfigureEditors(ctx, req)
			})
		})
	withOptions(config, force, flag("--auto-detect", "Auto-detect installed editors"))

	link := leaf("link", "", "Link packages using workspace protocols",
		func(ctx context.Context, _, _ command.Values) error {
			return wrap(ctx, a, "Linking Workspace", svc.Link)
		})

	update := leaf("update", "", "Update workspace (sync repos + install dependencies)",
		func(ctx context.Context, _, opts command.Values) error {
			req := core.WorkspaceUpdateRequest{
				SkipSync:    opts.Bool("skip-sync"),
				SkipInstall: opts.Bool("skip-install"),
				Parallel:    opts.Bool("parallel"),
			}
			return wrap(ctx, a, "Updating Workspace", func(ctx context.Context) (*result.Result, error) {
				return svc.UpdateWorkspace(ctx, req)
			})
		})
	withOptions(update,
		flag("--skip-sync", "Skip git sync step"),
		flag("--skip-install", "Skip dependency installation step"),
		flag("--parallel", "Install dependencies in parallel"),
	)

	sync := leaf("sync", "", "Sync workspace configurations (regenerate package manager configs)",
		func(ctx context.Context, _, opts command.Values) error {
			req := core.WorkspaceSyncRequest{Force: opts.Bool("force")}
			return wrap(ctx, a, "Syncing Workspace", func(ctx context.Context) (*result.Result, error) {
				return svc.SyncWorkspace(ctx, req)
			})
		})
	withOptions(sync, flag("--force", "Force regeneration even if already linked"))

	return group("workspace", "ws", "Workspace management", setup, config, link, update, sync)
}
