// Package workspaces keeps a usage record per workspace root.
package workspaces

import (
	"fmt"
	"time"

	"baseline/internal/platform/database"
	"baseline/internal/types"

	"github.com/Data-Corruption/lmdb-go/lmdb"
	"github.com/Data-Corruption/lmdb-go/wrap"
)

// Get returns the record for root, or nil if the CLI never ran there.
func Get(db *wrap.DB, root string) (*types.WorkspaceRecord, error) {
	rec, err := database.View[types.WorkspaceRecord](db, *database.WorkspacesDBI, []byte(root))
	if lmdb.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace record: %w", err)
	}
	return rec, nil
}

// Touch counts one run in root at now, creating the record on first use. An
// empty name keeps the stored one.
func Touch(db *wrap.DB, root, name string, now time.Time) (*types.WorkspaceRecord, error) {
	if root == "" {
		return nil, fmt.Errorf("empty workspace root")
	}
	var rec types.WorkspaceRecord
	if err := db.Update(func(txn *lmdb.Txn) error {
		rec = types.WorkspaceRecord{}
		err := database.TxnGetAndUnmarshal(txn, *database.WorkspacesDBI, []byte(root), &rec)
		if err != nil && !lmdb.IsNotFound(err) {
			return fmt.Errorf("failed to get workspace record: %w", err)
		}
		if name != "" {
			rec.Name = name
		}
		rec.LastUsed = now
		rec.Runs++
		return database.TxnMarshalAndPut(txn, *database.WorkspacesDBI, []byte(root), rec)
	}); err != nil {
		return nil, err
	}
	return &rec, nil
}
