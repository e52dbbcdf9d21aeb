package commands

import (
	"context"
	"fmt"

	"baseline/internal/app"
	"baseline/internal/command"
	"baseline/internal/core"
	"baseline/internal/option"
	"baseline/internal/result"
)

var (
	updateStrategies = []string{"latest", "major", "minor", "patch"}
	syncStrategies   = []string{"highest", "lowest", "exact"}
)

var packageOption = flag("--package <package>", "Filter by package name")

var Deps RegFunc = func(a *app.App, svc core.Service) *command.Entry {
	list := leaf("list", "", "List all dependencies",
		func(ctx context.Context, _, opts command.Values) error {
			req := core.DepsListRequest{Package: opts.String("package"), Filter: opts.String("filter")}
			return wrap(ctx, a, "Listing Dependencies", func(ctx context.Context) (*result.Result, error) {
				return svc.ListDeps(ctx, req)
			})
		})
	withOptions(list, packageOption, flag("--filter <filter>", "Filter by dependency name"))

	outdated := leaf("outdated", "", "Check for outdated dependencies",
		func(ctx context.Context, _, opts command.Values) error {
			req := core.DepsOutdatedRequest{Package: opts.String("package")}
			return wrap(ctx, a, "Checking Outdated Dependencies", func(ctx context.Context) (*result.Result, error) {
				return svc.OutdatedDeps(ctx, req)
			})
		})
	withOptions(outdated, packageOption)

	update := leaf("update", "", "Update dependencies",
		func(ctx context.Context, _, opts command.Values) error {
			strategy, err := option.String(opts["strategy"], option.StringOpts{Default: "latest", Allowed: updateStrategies})
			if err != nil {
				return err
			}
			req := core.DepsUpdateRequest{
				Package:      opts.String("package"),
				Dependencies: option.Array(opts["dependencies"], option.ArrayOpts{}),
				Strategy:     strategy,
			}
			return wrap(ctx, a, fmt.Sprintf("Updating Dependencies (%s)", strategy), func(ctx context.Context) (*result.Result, error) {
				return svc.UpdateDeps(ctx, req)
			})
		})
	withOptions(update,
		packageOption,
		flag("--dependencies <deps...>", "Specific dependencies to update"),
		flag("--strategy <strategy>", "Update strategy (latest|major|minor|patch)"),
	)

	sync := leaf("sync", "", "Synchronize dependency versions across packages",
		func(ctx context.Context, _, opts command.Values) error {
			strategy, err := option.String(opts["strategy"], option.StringOpts{Default: "highest", Allowed: syncStrategies})
			if err != nil {
				return err
			}
			req := core.DepsSyncRequest{
				Package:        opts.String("package"),
				Strategy:       strategy,
				UpdateLockfile: opts.Bool("update-lockfile"),
			}
			title := fmt.Sprintf("Syncing Dependency Versions (%s)", strategy)
			if req.UpdateLockfile {
				title += " (updating lockfile)"
			}
			return wrap(ctx, a, title, func(ctx context.Context) (*result.Result, error) {
				return svc.SyncDeps(ctx, req)
			})
		})
	withOptions(sync,
		packageOption,
		flag("--strategy <strategy>", "Sync strategy (highest|lowest|exact)"),
		flag("--update-lockfile", "Update lock file after sync"),
	)

	install := leaf("install", "", "Install dependencies",
		func(ctx context.Context, _, opts command.Values) error {
			req := core.DepsInstallRequest{
				Package:        opts.String("package"),
				Parallel:       opts.Bool("parallel"),
				FrozenLockfile: opts.Bool("frozen-lockfile"),
				UpdateLockfile: opts.Bool("update-lockfile"),
			}
			title := "Installing Dependencies"
			if req.Parallel {
				title += " (parallel)"
			}
			switch {
			case req.FrozenLockfile:
				title += " (frozen lockfile)"
			case req.UpdateLockfile:
				title += " (updating lockfile)"
			}
			return wrap(ctx, a, title, func(ctx context.Context) (*result.Result, error) {
				return svc.InstallDeps(ctx, req)
			})
		})
	withOptions(install,
		packageOption,
		flag("--parallel", "Install in parallel"),
		flag("--frozen-lockfile", "Fail if lock file is out of sync"),
		flag("--update-lockfile", "Update lock file after installation"),
	)

	return group("deps", "dependencies", "Dependency management",
		list, outdated, update, sync, install, cache(a, svc),
	)
}

func cache(a *app.App, svc core.Service) *command.Entry {
	pm := flag("--package-manager <pm>", "Filter by package manager")
	action := func(name, desc, title string, extra ...command.Option) *command.Entry {
		e := leaf(name, "", desc, func(ctx context.Context, _, opts command.Values) error {
			req := core.CacheRequest{
				Action:         name,
				PackageManager: opts.String("package-manager"),
				DryRun:         opts.Bool("dry-run"),
			}
			return wrap(ctx, a, title, func(ctx context.Context) (*result.Result, error) {
				return svc.Cache(ctx, req)
			})
		})
		return withOptions(e, append([]command.Option{pm}, extra...)...)
	}

	return group("cache", "", "Manage dependency caches",
		action("info", "Show cache information", "Cache Information"),
		action("clear", "Clear dependency caches", "Clearing Caches", flag("--dry-run", "Dry run (don't actually clear)")),
		action("list", "List cached packages", "Listing Cached Packages"),
	)
}
