// Package config reads and writes the persisted user settings stored under
// the config DBI.
package config

import (
	"baseline/internal/platform/database"
	"baseline/internal/types"

	"github.com/Data-Corruption/lmdb-go/wrap"
)

var dataKey = []byte(database.ConfigDataKey)

// View returns a copy of the stored settings.
//
// WARNING: Starts a transaction. Do not call it from inside another one.
func View(db *wrap.DB) (*types.Configuration, error) {
	return database.View[types.Configuration](db, *database.ConfigDBI, dataKey)
}

// Update applies fn to the stored settings and writes them back in the same
// transaction. Nothing is written when fn fails.
//
// WARNING: Starts a transaction. Do not call it from inside another one.
func Update(db *wrap.DB, fn func(cfg *types.Configuration) error) error {
	return database.Update(db, *database.ConfigDBI, dataKey, fn)
}
