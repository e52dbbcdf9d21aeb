package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"
)

// ErrReported marks a failure whose output was already shown to the user.
// The dispatcher exits 1 for it without writing another diagnostic line.
var ErrReported = errors.New("failure already reported")

// ExitError is returned by a dispatched command that failed. Its diagnostic
// has already been written; callers only need the code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode implements cli.ExitCoder.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// ExitCode maps the error returned by Run to a process exit code: 0 for nil,
// 1 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

// Reported reports whether err came out of the dispatcher, meaning the user
// has already seen a diagnostic for it.
func Reported(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr)
}

// keepExitCode replaces urfave/cli's default handler, which would call
// os.Exit before deferred cleanup runs. main applies ExitCode instead.
func keepExitCode(context.Context, *cli.Command, error) {}
