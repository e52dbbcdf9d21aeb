package commands

import (
	"context"
	"fmt"

	"baseline/internal/app"
	"baseline/internal/command"
	"baseline/internal/core"
	"baseline/internal/result"
)

var Git RegFunc = func(a *app.App, svc core.Service) *command.Entry {
	sync := leaf("sync", "", "Sync repositories (fetch + pull)",
		func(ctx context.Context, _, _ command.Values) error {
			return wrap(ctx, a, "Syncing Repositories", svc.GitSync)
		})

	branch := leaf("branch", "", "Create/checkout branch across repos",
		func(ctx context.Context, args, opts command.Values) error {
			req := core.BranchRequest{Name: args.String("name"), Create: opts.Bool("create")}
			title := fmt.Sprintf("Checking Out Branch: %s", req.Name)
			if req.Create {
				title = fmt.Sprintf("Creating Branch: %s", req.Name)
			}
			return wrap(ctx, a, title, func(ctx context.Context) (*result.Result, error) {
				return svc.GitBranch(ctx, req)
			})
		})
	withArgs(branch, required("<name>", "Branch name"))
	withOptions(branch, flag("--create", "Create new branch"))

	prCreate := leaf("create", "", "Create pull requests",
		func(ctx context.Context, _, opts command.Values) error {
			req := core.PRRequest{
				Repo:  opts.String("repo"),
				Title: opts.String("title"),
				Body:  opts.String("body"),
				Draft: opts.Bool("draft"),
			}
			return wrap(ctx, a, "Creating Pull Requests", func(ctx context.Context) (*result.Result, error) {
				return svc.CreatePR(ctx, req)
			})
		})
	withOptions(prCreate,
		flag("-r, --repo <repo>", "Specific repository"),
		flag("-t, --title <title>", "PR title"),
		flag("-b, --body <body>", "PR body"),
		flag("--draft", "Create as draft"),
	)

	return group("git", "", "Git operations",
		sync,
		branch,
		group("pr", "", "Pull request operations", prCreate),
	)
}
