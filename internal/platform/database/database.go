// Package database owns the CLI's LMDB environment: the named DBIs, their key
// layout and the schema migrations applied on open.
package database

import (
	"fmt"

	"github.com/Data-Corruption/lmdb-go/lmdb"
	"github.com/Data-Corruption/lmdb-go/wrap"
	"github.com/Data-Corruption/stdx/xlog"
)

// DBIs are opened by name on every start. Adding one needs no migration;
// removing one leaves its data in the file. wrap caps named DBIs at 128.
var (
	ConfigDBI     = register("config")
	WorkspacesDBI = register("workspaces")
)

/* KV Layout:

config
    "version" -> settings schema version (not the app version)
    "data"    -> JSON types.Configuration

workspaces
    "<absolute workspace root>" -> JSON types.WorkspaceRecord

*/

const (
	ConfigVersionKey = "version"
	ConfigDataKey    = "data"
)

// dbiEntry holds a DBI name and a pointer to its cached handle.
type dbiEntry struct {
	name   string
	handle *lmdb.DBI
}

// dbiRegistry holds all registered DBIs. Populated at init time via register().
var dbiRegistry []dbiEntry

// register adds a DBI to the registry and returns a pointer to its handle.
func register(name string) *lmdb.DBI {
	handle := new(lmdb.DBI)
	dbiRegistry = append(dbiRegistry, dbiEntry{name: name, handle: handle})
	return handle
}

// DBINameList returns a slice of all registered DBI names for initialization.
func DBINameList() []string {
	names := make([]string, len(dbiRegistry))
	for i, entry := range dbiRegistry {
		names[i] = entry.name
	}
	return names
}

// New opens (or creates) the database in directory and brings its schema up
// to date.
func New(directory string, logger *xlog.Logger) (*wrap.DB, error) {
	db, srClosed, err := wrap.New(directory, DBINameList())
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, err
	}
	logger.Debugf("LMDB initialized at %s", directory)
	if srClosed > 0 {
		logger.Warnf("LMDB had %d stale readers which were closed", srClosed)
	}

	if err := cacheDBIs(db); err != nil {
		db.Close()
		return nil, err
	}

	if err := Migrate(db, logger); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func cacheDBIs(db *wrap.DB) error {
	dbis := db.GetDBis()
	for _, entry := range dbiRegistry {
		dbi, ok := dbis[entry.name]
		if !ok {
			return fmt.Errorf("DBI %q not found", entry.name)
		}
		*entry.handle = dbi
	}
	return nil
}
