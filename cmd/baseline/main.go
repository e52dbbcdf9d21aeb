package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"baseline/internal/app"
	"baseline/internal/app/commands"
	"baseline/internal/build"
	"baseline/internal/command"
	"baseline/internal/core"
	"baseline/internal/workspace"

	"github.com/Data-Corruption/stdx/xlog"
	"github.com/urfave/cli/v3"
)

// errBuildVars stops the run after --build-vars printed its output.
var errBuildVars = errors.New("build vars printed")

// startupError marks failures that happen before any command is dispatched.
type startupError struct{ err error }

func (e *startupError) Error() string { return e.err.Error() }
func (e *startupError) Unwrap() error { return e.err }

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	bi := build.Info()
	a := app.New(bi)
	a.Out = stdout
	defer a.Close()

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(stderr, "Fatal error: %v\n", err)
		return 1
	}
	// a broken workspace file must not lock the user out of init or self
	root, cfg, discoverErr := workspace.Discover(cwd)
	if discoverErr != nil {
		fmt.Fprintf(stderr, "Warning: %v\n", discoverErr)
	}
	a.SetWorkspace(root, cfg)
	name := cfg.RootCommand(bi.Name)

	reg := command.NewRegistry()
	commands.Register(reg, a, &core.Unavailable{Name: name, Root: root})

	tree, err := command.NewBuilder(command.Options{
		ErrWriter: stderr,
		Log:       func() *xlog.Logger { return a.Log },
	}).Build(reg)
	if err != nil {
		fmt.Fprintf(stderr, "Fatal error: %v\n", err)
		return 1
	}

	rootCommand := &cli.Command{
		Name:      name,
		Version:   bi.Version,
		Usage:     "Manage multiple Git repositories as a single coordinated workspace",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log",
				Aliases: []string{"l"},
				Value:   bi.DefaultLogLevel,
				Usage:   "override log level (debug|info|warn|error|none)",
			},
			&cli.BoolFlag{
				Name:    "migrate",
				Aliases: []string{"m"},
				Hidden:  true,
				Usage:   "skip migration guard (for the migrator)",
			},
			&cli.BoolFlag{
				Name:   "build-vars",
				Hidden: true,
				Usage:  "print build variables and exit",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("build-vars") {
				fmt.Fprintln(stdout, bi.JSON())
				return ctx, errBuildVars
			}
			ctx, err := a.Init(ctx, cmd)
			if err != nil {
				return ctx, &startupError{err}
			}
			if discoverErr != nil {
				a.Log.Warnf("ignoring workspace file: %v", discoverErr)
			}
			return ctx, nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a.Log.Info("Ran with no arguments.")
			fmt.Fprintf(stdout, "%s version %s\n", name, bi.Version)
			fmt.Fprintf(stdout, "Use '%s help' to see available commands.\n", name)
			return nil
		},
	}
	tree.Mount(rootCommand)

	err = rootCommand.Run(context.Background(), args)
	// flush logs and the database before anything is reported
	a.Close()

	var startupErr *startupError
	switch {
	case errors.Is(err, errBuildVars):
		return 0
	case errors.As(err, &startupErr):
		fmt.Fprintf(stderr, "Fatal error: %v\n", err)
	case err != nil && !command.Reported(err):
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return command.ExitCode(err)
}
