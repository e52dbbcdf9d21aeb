package commands

import (
	"context"

	"baseline/internal/app"
	"baseline/internal/command"
	"baseline/internal/core"
	"baseline/internal/option"
	"baseline/internal/result"
)

var InitCmd RegFunc = func(a *app.App, svc core.Service) *command.Entry {
	return leaf("init", "i", "Initialize a new baseline workspace",
		func(ctx context.Context, _, _ command.Values) error {
			return wrap(ctx, a, "Initializing Workspace", svc.Init)
		})
}

var Add RegFunc = func(a *app.App, svc core.Service) *command.Entry {
	e := leaf("add", "a", "Add a repository to the workspace",
		func(ctx context.Context, args, opts command.Values) error {
			req := core.AddRequest{
				GitURL: args.String("gitUrl"),
				Name:   opts.String("name"),
				Branch: opts.String("branch"),
			}
			return wrap(ctx, a, "Adding Repository", func(ctx context.Context) (*result.Result, error) {
				return svc.Add(ctx, req)
			})
		})
	withArgs(e, required("<gitUrl>", "Repository URL or path"))
	return withOptions(e,
		flag("--name <name>", "Custom name for the repository"),
		flag("--branch <branch>", "Branch to track"),
	)
}

var Clone RegFunc = func(a *app.App, svc core.Service) *command.Entry {
	return leaf("clone", "c", "Clone all repositories",
		func(ctx context.Context, _, _ command.Values) error {
			return wrap(ctx, a, "Cloning Repositories", svc.Clone)
		})
}

var Status RegFunc = func(a *app.App, svc core.Service) *command.Entry {
	return leaf("status", "s", "Show status of all repositories",
		func(ctx context.Context, _, _ command.Values) error {
			return wrap(ctx, a, "Checking Repositories", svc.Status)
		})
}

var Doctor RegFunc = func(a *app.App, svc core.Service) *command.Entry {
	return leaf("doctor", "d", "Validate workspace configuration",
		func(ctx context.Context, _, _ command.Values) error {
			return wrap(ctx, a, "Checking Workspace Health", svc.Doctor)
		})
}

var Graph RegFunc = func(a *app.App, svc core.Service) *command.Entry {
	e := leaf("graph", "g", "Generate dependency graph visualization",
		func(ctx context.Context, _, opts command.Values) error {
			format, err := option.String(opts["format"], option.StringOpts{Default: "text"})
			if err != nil {
				return err
			}
			output, err := option.String(opts["output"], option.StringOpts{})
			if err != nil {
				return err
			}
			req := core.GraphRequest{Format: format, Output: output}
			return wrap(ctx, a, "Generating Dependency Graph", func(ctx context.Context) (*result.Result, error) {
				return svc.Graph(ctx, req)
			})
		})
	return withOptions(e,
		command.Option{Flags: "--format <format>", Description: "Output format (text, dot, json, html, pdf)", DefaultValue: "text"},
		flag("--output <file>", "Output file (default: stdout)"),
	)
}
