package types

import (
	"fmt"
	"reflect"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.UpdateNotifications {
		t.Errorf("update notifications should default to on")
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q; want warn", cfg.LogLevel)
	}
}

func TestTouchWorkspace(t *testing.T) {
	var cfg Configuration
	cfg.TouchWorkspace("/a")
	cfg.TouchWorkspace("/b")
	cfg.TouchWorkspace("/a")
	cfg.TouchWorkspace("")
	if want := []string{"/a", "/b"}; !reflect.DeepEqual(cfg.RecentWorkspaces, want) {
		t.Errorf("RecentWorkspaces = %v; want %v", cfg.RecentWorkspaces, want)
	}

	for i := range MaxRecentWorkspaces + 5 {
		cfg.TouchWorkspace(fmt.Sprintf("/w%d", i))
	}
	if len(cfg.RecentWorkspaces) != MaxRecentWorkspaces {
		t.Errorf("len(RecentWorkspaces) = %d; want %d", len(cfg.RecentWorkspaces), MaxRecentWorkspaces)
	}
	if cfg.RecentWorkspaces[0] != fmt.Sprintf("/w%d", MaxRecentWorkspaces+4) {
		t.Errorf("newest workspace not first: %v", cfg.RecentWorkspaces)
	}
}
