// Package migrator applies ordered schema steps to an LMDB database.
package migrator

import (
	"fmt"

	"github.com/Data-Corruption/lmdb-go/lmdb"
	"github.com/Data-Corruption/stdx/xlog"
)

// Operation defines the actual database modification.
type Operation func(txn *lmdb.Txn) error

// Migration is a single version step.
type Migration struct {
	ID   string // e.g. "v2"
	Desc string // shown in logs
	Up   Operation
}

type Migrator struct {
	steps []Migration
}

func New() *Migrator {
	return &Migrator{}
}

// Add registers a step. Steps run in the order they were added.
func (m *Migrator) Add(id string, desc string, op Operation) {
	m.steps = append(m.steps, Migration{ID: id, Desc: desc, Up: op})
}

// Latest returns the ID of the last registered step, or "" if there is none.
func (m *Migrator) Latest() string {
	if len(m.steps) == 0 {
		return ""
	}
	return m.steps[len(m.steps)-1].ID
}

// Pending returns the steps after currentVersion. An empty currentVersion
// means nothing has run yet; an unknown one is an error since the stored
// state can't be placed in the history.
func (m *Migrator) Pending(currentVersion string) ([]Migration, error) {
	if currentVersion == "" {
		return m.steps, nil
	}
	for i, step := range m.steps {
		if step.ID == currentVersion {
			return m.steps[i+1:], nil
		}
	}
	return nil, fmt.Errorf("current version %q not found in migration history; database state is unknown", currentVersion)
}

// Run applies every pending step inside txn and returns the resulting version.
// On failure the returned version is the last step that succeeded.
func (m *Migrator) Run(txn *lmdb.Txn, currentVersion string, logger *xlog.Logger) (string, error) {
	pending, err := m.Pending(currentVersion)
	if err != nil {
		return currentVersion, err
	}

	finalVersion := currentVersion
	for _, step := range pending {
		logger.Infof("Applying migration: %s - %s", step.ID, step.Desc)
		if err := step.Up(txn); err != nil {
			return finalVersion, fmt.Errorf("failed to apply migration %q (%s): %w", step.ID, step.Desc, err)
		}
		finalVersion = step.ID
	}
	return finalVersion, nil
}
