package result

import (
	"context"
	"fmt"
	"io"
	"strings"

	"baseline/internal/command"

	"github.com/Data-Corruption/stdx/xlog"
)

// sectionMarkers turn an info message into a section title.
var sectionMarkers = []string{"Summary", "Repository Status", "Dependency Graph"}

// Func produces the result of one operation.
type Func func(ctx context.Context) (*Result, error)

// Wrap runs fn and renders its result to w under title. An unsuccessful
// result or an error from fn has already been shown to the user when Wrap
// returns, so the returned error is command.ErrReported in both cases.
func Wrap(ctx context.Context, w io.Writer, log *xlog.Logger, title string, fn Func) error {
	if log != nil {
		log.Debugf("running %q", title)
	}

	res, err := fn(ctx)
	if err != nil {
		fmt.Fprintf(w, "✗ Failed: %s\n", err.Error())
		if log != nil {
			log.Errorf("%s failed: %v", title, err)
		}
		return command.ErrReported
	}
	if res == nil {
		res = &Result{}
	}

	if len(res.Messages) == 0 {
		if res.Success {
			fmt.Fprintf(w, "✓ %s\n", title)
			return nil
		}
		fmt.Fprintln(w, "✗ Failed")
		return command.ErrReported
	}

	printTitle(w, title)
	for _, m := range res.Messages {
		render(w, m)
	}
	if !res.Success {
		if log != nil {
			log.Warnf("%s finished unsuccessfully", title)
		}
		return command.ErrReported
	}
	return nil
}

func printTitle(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("─", len([]rune(title))))
}

func render(w io.Writer, m Message) {
	switch m.Kind {
	case KindInfo:
		for _, marker := range sectionMarkers {
			if strings.Contains(m.Text, marker) {
				printTitle(w, m.Text)
				return
			}
		}
		fmt.Fprintf(w, "ℹ %s\n", m.Text)
	case KindSuccess:
		fmt.Fprintf(w, "✓ %s\n", m.Text)
	case KindError:
		fmt.Fprintf(w, "✗ %s\n", m.Text)
		if m.Suggestion != "" {
			fmt.Fprintf(w, "ℹ 💡 %s\n", m.Suggestion)
		}
	case KindWarn:
		fmt.Fprintf(w, "⚠ %s\n", m.Text)
	case KindDim:
		fmt.Fprintf(w, "\x1b[2m%s\x1b[0m\n", m.Text)
	}
}
