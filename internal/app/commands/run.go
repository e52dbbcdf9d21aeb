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

var composeSubcommands = []string{"up", "down", "start", "stop", "ps", "logs"}

// script builds a leaf that runs a package script across repositories.
func script(a *app.App, svc core.Service, name, alias, desc, title string, full bool) *command.Entry {
	e := leaf(name, alias, desc, func(ctx context.Context, _, opts command.Values) error {
		req := core.ScriptRequest{
			Script:   name,
			Filter:   opts.String("filter"),
			Parallel: opts.Bool("parallel"),
			FailFast: opts.Bool("fail-fast"),
		}
		return wrap(ctx, a, title, func(ctx context.Context) (*result.Result, error) {
			return svc.RunScript(ctx, req)
		})
	})
	withOptions(e, filterOption)
	if full {
		withOptions(e,
			flag("--parallel", "Run in parallel"),
			flag("--fail-fast", "Stop on first error"),
		)
	}
	return e
}

var Run RegFunc = func(a *app.App, svc core.Service) *command.Entry {
	exec := leaf("exec", "", "Execute a command in every repository",
		func(ctx context.Context, args, opts command.Values) error {
			req := core.ExecRequest{
				Command:  args.String("command"),
				Filter:   opts.String("filter"),
				Parallel: opts.Bool("parallel"),
			}
			return wrap(ctx, a, fmt.Sprintf("Executing: %s", req.Command), func(ctx context.Context) (*result.Result, error) {
				return svc.Exec(ctx, req)
			})
		})
	withArgs(exec, required("<command>", "Command to execute"))
	withOptions(exec, filterOption, flag("--parallel", "Run in parallel"))

	compose := leaf("docker-compose", "dc", "Docker Compose operations",
		func(ctx context.Context, args, opts command.Values) error {
			sub, err := option.String(args["subcommand"], option.StringOpts{Allowed: composeSubcommands})
			if err != nil {
				return err
			}
			file, err := option.String(opts["file"], option.StringOpts{})
			if err != nil {
				return err
			}
			req := core.ComposeRequest{
				Subcommand: sub,
				File:       file,
				Detach:     opts.Bool("detach"),
				Build:      opts.Bool("build"),
				Services:   option.Array(opts["services"], option.ArrayOpts{}),
			}
			return wrap(ctx, a, fmt.Sprintf("Docker Compose: %s", sub), func(ctx context.Context) (*result.Result, error) {
				return svc.DockerCompose(ctx, req)
			})
		})
	withArgs(compose, required("<subcommand>", "Subcommand: up, down, start, stop, ps, logs"))
	withOptions(compose,
		flag("-f, --file <file>", "Compose file name (default: docker-compose.yml)"),
		flag("-d, --detach", "Detached mode: run in background"),
		flag("--build", "Build images before starting"),
		flag("--services <services...>", "Service names"),
	)

	return group("run", "", "Run commands across repositories",
		script(a, svc, "test", "t", "Run tests across repositories", "Running Tests", true),
		script(a, svc, "lint", "l", "Run linting across repositories", "Running Linters", true),
		script(a, svc, "start", "", "Start applications", "Starting Applications", false),
		script(a, svc, "watch", "w", "Watch for changes", "Watching for Changes", false),
		exec,
		compose,
	)
}
