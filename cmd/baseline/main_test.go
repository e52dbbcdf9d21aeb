package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"baseline/internal/workspace"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		workspaceFile string // written to the working directory when set
		wantCode      int
		wantStdout    []string
		wantStderr    []string
		wantErrLines  int // number of "Error:" lines on stderr
	}{
		{
			name:       "no arguments",
			wantCode:   0,
			wantStdout: []string{"baseline version vX.X.X", "Use 'baseline help'"},
		},
		{
			name:       "help skips startup",
			args:       []string{"--help"},
			wantCode:   0,
			wantStdout: []string{"Manage multiple Git repositories"},
		},
		{
			name:       "build vars",
			args:       []string{"--build-vars"},
			wantCode:   0,
			wantStdout: []string{`"name":"baseline"`},
		},
		{
			name:         "unknown flag",
			args:         []string{"--bogus"},
			wantCode:     1,
			wantStderr:   []string{"Error: flag provided but not defined"},
			wantErrLines: 1,
		},
		{
			name:       "startup failure",
			args:       []string{"--log", "verbose", "status"},
			wantCode:   1,
			wantStderr: []string{"Fatal error: failed to initialize logger"},
		},
		{
			name:       "failed result is not repeated",
			args:       []string{"status"},
			wantCode:   1,
			wantStdout: []string{"No baseline.json found", "baseline init"},
		},
		{
			name:         "handler error",
			args:         []string{"deps", "update", "--strategy", "bogus"},
			wantCode:     1,
			wantStderr:   []string{`Error: Invalid option value: "bogus"`},
			wantErrLines: 1,
		},
		{
			name:          "workspace names the command",
			workspaceFile: `{"name": "platform", "commandName": "ws"}`,
			wantCode:      0,
			wantStdout:    []string{"ws version vX.X.X"},
		},
		{
			name:          "malformed workspace file",
			args:          []string{"self", "info"},
			workspaceFile: `{`,
			wantCode:      0,
			wantStdout:    []string{`"name":"baseline"`, "Workspace: /"},
			wantStderr:    []string{"Warning: failed to parse baseline.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SUDO_USER", "")
			t.Setenv("HOME", t.TempDir())
			t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
			dir := t.TempDir()
			if tt.workspaceFile != "" {
				if err := os.WriteFile(filepath.Join(dir, workspace.FileName), []byte(tt.workspaceFile), 0o644); err != nil {
					t.Fatalf("Failed to write workspace file: %v", err)
				}
			}
			t.Chdir(dir)

			var stdout, stderr bytes.Buffer
			code := run(append([]string{"baseline"}, tt.args...), &stdout, &stderr)

			if code != tt.wantCode {
				t.Errorf("run() = %d; want %d\nstdout: %s\nstderr: %s", code, tt.wantCode, stdout.String(), stderr.String())
			}
			for _, want := range tt.wantStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout missing %q:\n%s", want, stdout.String())
				}
			}
			for _, want := range tt.wantStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr missing %q:\n%s", want, stderr.String())
				}
			}
			if got := strings.Count(stderr.String(), "Error:"); got != tt.wantErrLines {
				t.Errorf("stderr has %d Error: lines; want %d:\n%s", got, tt.wantErrLines, stderr.String())
			}
		})
	}
}
