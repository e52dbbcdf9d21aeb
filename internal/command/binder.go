package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"
)

// Invocation is the raw input of one command run, independent of the parser
// that produced it.
type Invocation struct {
	Positionals []string
	Options     map[string]any
}

// boundOption is an Option with its flag syntax already parsed.
type boundOption struct {
	spec       flagSpec
	def        any
	hasDefault bool
}

func bindOption(o Option) (boundOption, error) {
	spec, err := parseFlags(o.Flags)
	if err != nil {
		return boundOption{}, err
	}
	b := boundOption{spec: spec}
	switch v := o.DefaultValue.(type) {
	case string, bool, []string:
		b.def, b.hasDefault = v, true
	}
	if spec.Negated && !b.hasDefault {
		b.def, b.hasDefault = true, true
	}
	return b, nil
}

// invocationFrom reads the parsed positionals and declared options off cmd.
// Unset options fall back to their default, or are left out.
func invocationFrom(cmd *cli.Command, opts []boundOption) Invocation {
	inv := Invocation{
		Positionals: cmd.Args().Slice(),
		Options:     make(map[string]any, len(opts)),
	}
	for _, o := range opts {
		name := o.spec.Long
		if !cmd.IsSet(name) {
			if o.hasDefault {
				inv.Options[o.spec.Key] = o.def
			}
			continue
		}
		switch o.spec.Value {
		case valueNone:
			v := cmd.Bool(name)
			if o.spec.Negated {
				v = !v
			}
			inv.Options[o.spec.Key] = v
		case valueList:
			inv.Options[o.spec.Key] = cmd.StringSlice(name)
		default:
			inv.Options[o.spec.Key] = cmd.String(name)
		}
	}
	return inv
}

// Bind maps an invocation onto the entry's declared arguments. Missing
// trailing positionals are left out of args; a variadic argument collects
// every remaining positional. Options are copied as-is.
func Bind(e *Entry, inv Invocation) (args, options Values) {
	args = Values{}
	for i, a := range e.Arguments {
		if i >= len(inv.Positionals) {
			break
		}
		key := ArgumentKey(a.Name)
		if a.Variadic || isVariadicToken(a.Name) {
			rest := make([]string, len(inv.Positionals)-i)
			copy(rest, inv.Positionals[i:])
			args[key] = rest
			break
		}
		args[key] = inv.Positionals[i]
	}

	options = make(Values, len(inv.Options))
	for k, v := range inv.Options {
		options[k] = v
	}
	return args, options
}

// call runs h, turning a panic into an error.
func call(ctx context.Context, h Handler, args, options Values) (err error) {
	defer func() {
		if v := recover(); v != nil {
			if perr, ok := v.(error); ok {
				err = perr
			} else {
				err = errors.New(fmt.Sprint(v))
			}
		}
	}()
	return h(ctx, args, options)
}

// dispatch is the action bound to every leaf command.
func (b *Builder) dispatch(e *Entry, path string, opts []boundOption) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		args, options := Bind(e, invocationFrom(cmd, opts))
		if log := b.logger(); log != nil {
			log.Debugf("dispatching %q with %d argument(s), %d option(s)", path, len(args), len(options))
		}

		var err error
		if e.Handler == nil {
			err = fmt.Errorf("command %q has no handler", path)
		} else {
			err = call(ctx, e.Handler, args, options)
		}
		if err == nil {
			return nil
		}
		return b.fail(path, err)
	}
}

// fail writes the single diagnostic line for err and returns the exit error.
func (b *Builder) fail(path string, err error) error {
	if log := b.logger(); log != nil {
		log.Errorf("command %q failed: %v", path, err)
	}
	if !errors.Is(err, ErrReported) {
		fmt.Fprintf(b.errWriter, "Error: %s\n", err.Error())
	}
	return &ExitError{Code: 1, Err: err}
}
