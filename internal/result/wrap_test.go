package result

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"baseline/internal/command"

	"github.com/Data-Corruption/stdx/xlog"
)

func newLogger(t *testing.T) *xlog.Logger {
	t.Helper()
	logger, err := xlog.New(filepath.Join(t.TempDir(), "logs"), "debug")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	t.Cleanup(func() { logger.Close() })
	return logger
}

func fixed(r *Result, err error) Func {
	return func(context.Context) (*Result, error) { return r, err }
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name    string
		fn      Func
		want    []string // lines expected in the output, in order
		absent  []string
		wantErr bool
	}{
		{
			name: "success without messages",
			fn:   fixed(OK(), nil),
			want: []string{"✓ Test Command"},
		},
		{
			name: "success with messages",
			fn:   fixed(OK(Info("Info message"), Success("Success message")), nil),
			want: []string{"Test Command", "ℹ Info message", "✓ Success message"},
			absent: []string{
				"✓ Test Command",
			},
		},
		{
			name:    "failure with messages",
			fn:      fixed(Failed(Error("Error message", "Try again")), nil),
			want:    []string{"Test Command", "✗ Error message", "💡 Try again"},
			wantErr: true,
		},
		{
			name:    "failure without messages",
			fn:      fixed(Failed(), nil),
			want:    []string{"✗ Failed"},
			wantErr: true,
		},
		{
			name: "all message kinds",
			fn: fixed(OK(
				Info("Info"),
				Success("Success"),
				Error("Error", ""),
				Warn("Warning"),
				Dim("Dim"),
			), nil),
			want:   []string{"ℹ Info", "✓ Success", "✗ Error", "⚠ Warning", "Dim"},
			absent: []string{"💡"},
		},
		{
			name: "section titles",
			fn: fixed(OK(
				Info("Summary of operations"),
				Info("Repository Status"),
				Info("Dependency Graph"),
			), nil),
			want:   []string{"Summary of operations\n───", "Repository Status\n───", "Dependency Graph\n───"},
			absent: []string{"ℹ Summary", "ℹ Repository", "ℹ Dependency"},
		},
		{
			name:    "returned error",
			fn:      fixed(nil, errors.New("Command failed")),
			want:    []string{"✗ Failed: Command failed"},
			wantErr: true,
		},
		{
			name: "nil result",
			fn:   fixed(nil, nil),
			want: []string{"✗ Failed"},
			// a nil result counts as unsuccessful
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := Wrap(context.Background(), &out, newLogger(t), "Test Command", tt.fn)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Wrap() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, command.ErrReported) {
				t.Errorf("Wrap() error = %v; want command.ErrReported", err)
			}

			got := out.String()
			pos := 0
			for _, w := range tt.want {
				i := strings.Index(got[pos:], w)
				if i < 0 {
					t.Fatalf("output missing %q (in order) in:\n%s", w, got)
				}
				pos += i + len(w)
			}
			for _, a := range tt.absent {
				if strings.Contains(got, a) {
					t.Errorf("output unexpectedly contains %q:\n%s", a, got)
				}
			}
		})
	}
}

func TestWrapNilLogger(t *testing.T) {
	var out bytes.Buffer
	if err := Wrap(context.Background(), &out, nil, "Quiet", fixed(OK(), nil)); err != nil {
		t.Fatalf("Wrap() = %v", err)
	}
	if out.String() != "✓ Quiet\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestResultAdd(t *testing.T) {
	r := OK().Add(KindWarn, "%d repositories skipped", 2)
	if len(r.Messages) != 1 || r.Messages[0].Kind != KindWarn || r.Messages[0].Text != "2 repositories skipped" {
		t.Errorf("Add() produced %+v", r.Messages)
	}
}
