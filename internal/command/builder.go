package command

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Data-Corruption/stdx/xlog"
	"github.com/urfave/cli/v3"
)

// Options configures a Builder.
type Options struct {
	// ErrWriter receives the "Error: ..." diagnostic of failed commands.
	// Defaults to os.Stderr.
	ErrWriter io.Writer
	// Log returns the logger to use. It is called lazily because the
	// logger is usually created in the root command's Before hook.
	Log func() *xlog.Logger
}

// Builder turns registry entries into urfave/cli commands.
type Builder struct {
	errWriter io.Writer
	log       func() *xlog.Logger
}

func NewBuilder(opts Options) *Builder {
	b := &Builder{errWriter: opts.ErrWriter, log: opts.Log}
	if b.errWriter == nil {
		b.errWriter = os.Stderr
	}
	return b
}

func (b *Builder) logger() *xlog.Logger {
	if b.log == nil {
		return nil
	}
	return b.log()
}

// Route is one dispatchable leaf of the tree.
type Route struct {
	Path    string // e.g. "git branch <name>"
	Entry   *Entry
	Command *cli.Command
}

// Tree is the built command tree.
type Tree struct {
	Commands []*cli.Command // roots, in registration order
	Routes   []Route        // one per leaf, depth first
	shadowed []string
}

// Shadowed lists command paths that repeat an earlier sibling's name or alias.
// Dispatch always reaches the first registration.
func (t *Tree) Shadowed() []string {
	return t.shadowed
}

// Mount appends the tree to root and makes sure failed commands return their
// exit error to root.Run's caller instead of exiting the process.
func (t *Tree) Mount(root *cli.Command) {
	root.Commands = append(root.Commands, t.Commands...)
	if root.ExitErrHandler == nil {
		root.ExitErrHandler = keepExitCode
	}
}

// Build walks reg and returns the resulting tree.
func (b *Builder) Build(reg *Registry) (*Tree, error) {
	t := &Tree{}
	cmds, err := b.buildLevel(t, "", reg.Entries())
	if err != nil {
		return nil, err
	}
	t.Commands = cmds
	return t, nil
}

// buildLevel builds sibling entries under the parent path prefix.
func (b *Builder) buildLevel(t *Tree, prefix string, entries []*Entry) ([]*cli.Command, error) {
	seen := map[string]bool{}
	cmds := make([]*cli.Command, 0, len(entries))
	for _, e := range entries {
		if e == nil {
			return nil, fmt.Errorf("nil command entry under %q", prefix)
		}
		path := strings.TrimSpace(prefix + " " + e.Name)

		for _, name := range []string{e.Name, e.Alias} {
			if name == "" {
				continue
			}
			if seen[name] {
				t.shadowed = append(t.shadowed, path)
				if log := b.logger(); log != nil {
					log.Warnf("command %q is shadowed by an earlier registration of %q", path, name)
				}
				break
			}
		}
		seen[e.Name] = true
		if e.Alias != "" {
			seen[e.Alias] = true
		}

		var (
			cmd *cli.Command
			err error
		)
		switch e.Kind {
		case KindGroup:
			cmd, err = b.group(t, path, e)
		case KindLeaf:
			cmd, err = b.leaf(t, path, e)
		default:
			err = fmt.Errorf("command %q has unknown kind %v", path, e.Kind)
		}
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

func (b *Builder) group(t *Tree, path string, e *Entry) (*cli.Command, error) {
	children, err := b.buildLevel(t, path, e.Commands)
	if err != nil {
		return nil, err
	}
	cmd := &cli.Command{
		Name:     e.Name,
		Usage:    e.Description,
		Commands: children,
	}
	if e.Alias != "" {
		cmd.Aliases = []string{e.Alias}
	}
	return cmd, nil
}

func (b *Builder) leaf(t *Tree, path string, e *Entry) (*cli.Command, error) {
	cmd := &cli.Command{
		Name:  e.Name,
		Usage: e.Description,
	}
	if e.Alias != "" {
		cmd.Aliases = []string{e.Alias}
	}
	if len(e.Arguments) > 0 {
		tokens := make([]string, len(e.Arguments))
		for i, a := range e.Arguments {
			tokens[i] = a.Name
		}
		cmd.ArgsUsage = strings.Join(tokens, " ")
	}

	opts := make([]boundOption, 0, len(e.Options))
	for _, o := range e.Options {
		bo, err := bindOption(o)
		if err != nil {
			return nil, fmt.Errorf("command %q: %w", path, err)
		}
		opts = append(opts, bo)
		cmd.Flags = append(cmd.Flags, cliFlag(o, bo))
	}

	routePath := strings.TrimSpace(strings.TrimSuffix(path, e.Name) + invocationPath(e))
	cmd.Action = b.dispatch(e, routePath, opts)
	t.Routes = append(t.Routes, Route{Path: routePath, Entry: e, Command: cmd})
	return cmd, nil
}

// cliFlag derives the urfave/cli flag for an option. A default is only
// applied when its type matches the flag.
func cliFlag(o Option, bo boundOption) cli.Flag {
	var aliases []string
	if bo.spec.Short != "" {
		aliases = []string{bo.spec.Short}
	}

	switch bo.spec.Value {
	case valueList:
		f := &cli.StringSliceFlag{Name: bo.spec.Long, Aliases: aliases, Usage: o.Description}
		if v, ok := bo.def.([]string); ok {
			f.Value = v
		}
		return f
	case valueString:
		f := &cli.StringFlag{Name: bo.spec.Long, Aliases: aliases, Usage: o.Description}
		if v, ok := bo.def.(string); ok {
			f.Value = v
		}
		return f
	default:
		f := &cli.BoolFlag{Name: bo.spec.Long, Aliases: aliases, Usage: o.Description}
		if v, ok := bo.def.(bool); ok && !bo.spec.Negated {
			f.Value = v
		}
		return f
	}
}
