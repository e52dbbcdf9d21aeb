package core

import (
	"context"
	"strings"
	"testing"

	"baseline/internal/result"
)

func TestUnavailable(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		svc      *Unavailable
		call     func(Service) (*result.Result, error)
		wantText string
		wantHint string
	}{
		{
			name:     "outside a workspace",
			svc:      &Unavailable{Name: "bl"},
			call:     func(s Service) (*result.Result, error) { return s.Status(ctx) },
			wantText: "No baseline.json found",
			wantHint: "Run 'bl init'",
		},
		{
			name:     "inside a workspace",
			svc:      &Unavailable{Name: "bl", Root: "/work"},
			call:     func(s Service) (*result.Result, error) { return s.GitBranch(ctx, BranchRequest{Name: "main"}) },
			wantText: "git branch main: not available in this build",
			wantHint: "Run 'bl self info'",
		},
		{
			name:     "init needs no workspace",
			svc:      &Unavailable{},
			call:     func(s Service) (*result.Result, error) { return s.Init(ctx) },
			wantText: "init: not available",
			wantHint: "Run 'baseline self info'",
		},
		{
			name: "search needs no workspace",
			svc:  &Unavailable{},
			call: func(s Service) (*result.Result, error) {
				return s.SearchPlugins(ctx, PluginSearchRequest{Query: "lint"})
			},
			wantText: "plugin search lint: not available",
			wantHint: "self info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.call(tt.svc)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Success {
				t.Fatalf("expected an unsuccessful result")
			}
			if len(res.Messages) != 1 {
				t.Fatalf("expected 1 message, got %d", len(res.Messages))
			}
			m := res.Messages[0]
			if m.Kind != result.KindError {
				t.Errorf("message kind = %q; want error", m.Kind)
			}
			if !strings.Contains(m.Text, tt.wantText) {
				t.Errorf("message = %q; want it to contain %q", m.Text, tt.wantText)
			}
			if !strings.Contains(m.Suggestion, tt.wantHint) {
				t.Errorf("suggestion = %q; want it to contain %q", m.Suggestion, tt.wantHint)
			}
		})
	}
}
