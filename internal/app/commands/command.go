// Package commands declares every command of the CLI as registry entries.
//
// Each file contributes one top-level command or group. Handlers turn their
// bound input into a core request, forward it to the service and render the
// outcome with result.Wrap.
package commands

import (
	"context"

	"baseline/internal/app"
	"baseline/internal/command"
	"baseline/internal/core"
	"baseline/internal/result"
)

type RegFunc func(a *app.App, svc core.Service) *command.Entry

// catalog lists top-level commands in registration order, which is also
// their order in help output.
var catalog = []RegFunc{
	InitCmd,
	Add,
	Clone,
	Status,
	Doctor,
	Graph,
	Git,
	Workspace,
	Run,
	Dev,
	Deps,
	Plugin,
	Self,
}

// Register adds every command to reg.
func Register(reg *command.Registry, a *app.App, svc core.Service) {
	for _, rf := range catalog {
		if e := rf(a, svc); e != nil {
			reg.Register(e)
		}
	}
}

// wrap renders fn's result under title on the app's output.
func wrap(ctx context.Context, a *app.App, title string, fn result.Func) error {
	return result.Wrap(ctx, a.Writer(), a.Log, title, fn)
}

// leaf is shorthand for a leaf entry.
func leaf(name, alias, desc string, h command.Handler) *command.Entry {
	return &command.Entry{Kind: command.KindLeaf, Name: name, Alias: alias, Description: desc, Handler: h}
}

func group(name, alias, desc string, children ...*command.Entry) *command.Entry {
	return &command.Entry{Kind: command.KindGroup, Name: name, Alias: alias, Description: desc, Commands: children}
}

// withArgs and withOptions decorate an entry in place.
func withArgs(e *command.Entry, args ...command.Argument) *command.Entry {
	e.Arguments = append(e.Arguments, args...)
	return e
}

func withOptions(e *command.Entry, opts ...command.Option) *command.Entry {
	e.Options = append(e.Options, opts...)
	return e
}

func required(name, desc string) command.Argument {
	return command.Argument{Name: name, Description: desc, Required: true}
}

func flag(flags, desc string) command.Option {
	return command.Option{Flags: flags, Description: desc}
}

// filterOption is shared by the run commands.
var filterOption = flag("--filter <filter>", "Filter repositories")
