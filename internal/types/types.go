package types

import (
	"baseline/internal/build"
	"time"
)

// Configuration holds per-user settings, persisted in the database.
type Configuration struct {
	LogLevel string `json:"logLevel"`

	UpdateNotifications bool      `json:"updateNotifications"`
	LastUpdateCheck     time.Time `json:"lastUpdateCheck"`
	UpdateAvailable     bool      `json:"updateAvailable"`

	// app version when an update was accepted. Compared on the next start to report whether it succeeded.
	PreUpdateVersion string `json:"preUpdateVersion"`

	// most recently used workspace roots, newest first
	RecentWorkspaces []string `json:"recentWorkspaces,omitempty"`
}

// WorkspaceRecord is what the CLI remembers about one workspace root.
type WorkspaceRecord struct {
	Name     string    `json:"name,omitempty"` // from baseline.json, kept when a later run can't read it
	LastUsed time.Time `json:"lastUsed"`
	Runs     int       `json:"runs"`
}

// MaxRecentWorkspaces bounds Configuration.RecentWorkspaces.
const MaxRecentWorkspaces = 10

func DefaultConfig() Configuration {
	return Configuration{
		LogLevel:            build.Info().DefaultLogLevel,
		UpdateNotifications: true,
		LastUpdateCheck:     time.Time{},
	}
}

// TouchWorkspace moves root to the front of RecentWorkspaces.
func (c *Configuration) TouchWorkspace(root string) {
	if root == "" {
		return
	}
	recent := []string{root}
	for _, r := range c.RecentWorkspaces {
		if r != root && len(recent) < MaxRecentWorkspaces {
			recent = append(recent, r)
		}
	}
	c.RecentWorkspaces = recent
}
