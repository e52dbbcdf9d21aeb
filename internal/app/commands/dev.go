package commands

import (
	"context"

	"baseline/internal/app"
	"baseline/internal/command"
	"baseline/internal/core"
	"baseline/internal/result"
)

var Dev RegFunc = func(a *app.App, svc core.Service) *command.Entry {
	stage := func(name, desc, title string) *command.Entry {
		return leaf(name, "", desc, func(ctx context.Context, _, _ command.Values) error {
			return wrap(ctx, a, title, func(ctx context.Context) (*result.Result, error) {
				return svc.Release(ctx, core.ReleaseRequest{Stage: name})
			})
		})
	}

	return group("dev", "", "Development operations",
		group("release", "r", "Release management",
			stage("plan", "Show release plan", "Release Plan"),
			stage("version", "Bump versions", "Version Bump"),
			stage("publish", "Publish packages", "Publishing Packages"),
		),
	)
}
