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

var pluginSources = []string{"npm", "git", "local"}

var Plugin RegFunc = func(a *app.App, svc core.Service) *command.Entry {
	install := leaf("install", "", "Install a plugin",
		func(ctx context.Context, args, opts command.Values) error {
			source, err := option.String(opts["source"], option.StringOpts{Allowed: pluginSources})
			if err != nil {
				return err
			}
			req := core.PluginInstallRequest{
				ID:      args.String("pluginId"),
				Version: opts.String("version"),
				Source:  source,
				URL:     opts.String("url"),
				Path:    opts.String("path"),
				Save:    option.Bool(opts["save"], true),
			}
			return wrap(ctx, a, fmt.Sprintf("Installing Plugin: %s", req.ID), func(ctx context.Context) (*result.Result, error) {
				return svc.InstallPlugin(ctx, req)
			})
		})
	withArgs(install, required("<pluginId>", "Plugin ID"))
	withOptions(install,
		flag("--version <version>", "Plugin version"),
		flag("--source <source>", "Plugin source (npm|git|local)"),
		flag("--url <url>", "Plugin URL"),
		flag("--path <path>", "Plugin path"),
		flag("--no-save", "Don't save to baseline.json"),
	)

	list := leaf("list", "", "List installed plugins",
		func(ctx context.Context, _, _ command.Values) error {
			return wrap(ctx, a, "Installed Plugins", svc.ListPlugins)
		})

	remove := leaf("remove", "", "Remove plugin",
		func(ctx context.Context, args, _ command.Values) error {
			id := args.String("pluginId")
			return wrap(ctx, a, fmt.Sprintf("Removing Plugin: %s", id), func(ctx context.Context) (*result.Result, error) {
				return svc.RemovePlugin(ctx, id)
			})
		})
	withArgs(remove, required("<pluginId>", "Plugin ID"))

	installAll := leaf("install-all", "", "Install all plugins from baseline.json",
		func(ctx context.Context, _, _ command.Values) error {
			return wrap(ctx, a, "Installing All Plugin Dependencies", svc.InstallAllPlugins)
		})

	search := leaf("search", "", "Search for plugins",
		func(ctx context.Context, args, opts command.Values) error {
			req := core.PluginSearchRequest{Query: args.String("query"), Registry: opts.Bool("registry")}
			return wrap(ctx, a, fmt.Sprintf("Searching for plugins: %s", req.Query), func(ctx context.Context) (*result.Result, error) {
				return svc.SearchPlugins(ctx, req)
			})
		})
	withArgs(search, required("<query>", "Search query"))
	withOptions(search, flag("--registry", "Search plugin registry instead of npm"))

	return group("plugin", "", "Plugin management", install, list, remove, installAll, search)
}
