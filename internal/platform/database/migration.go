package database

import (
	"fmt"
	"strings"

	"baseline/internal/types"
	"baseline/pkg/migrator"

	"github.com/Data-Corruption/lmdb-go/lmdb"
	"github.com/Data-Corruption/lmdb-go/wrap"
	"github.com/Data-Corruption/stdx/xlog"
)

// Migrate brings the stored schema up to the latest version.
func Migrate(db *wrap.DB, logger *xlog.Logger) error {
	m := migrator.New()

	// Add steps here. Order matters!

	m.Add("v1", "Initial settings", func(txn *lmdb.Txn) error {
		cfg := types.DefaultConfig()

		// ConfigDBI is already cached at this point
		if err := TxnMarshalAndPut(txn, *ConfigDBI, []byte(ConfigDataKey), cfg); err != nil {
			return fmt.Errorf("failed to store initial config: %w", err)
		}
		return nil
	})

	m.Add("v2", "Lowercase log level", func(txn *lmdb.Txn) error {
		var cfg types.Configuration
		if err := TxnGetAndUnmarshal(txn, *ConfigDBI, []byte(ConfigDataKey), &cfg); err != nil {
			return fmt.Errorf("failed to get config: %w", err)
		}
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
		if cfg.LogLevel == "" {
			cfg.LogLevel = types.DefaultConfig().LogLevel
		}
		return TxnMarshalAndPut(txn, *ConfigDBI, []byte(ConfigDataKey), cfg)
	})

	return db.Update(func(txn *lmdb.Txn) error {
		currentVer := ""
		if err := TxnGetAndUnmarshal(txn, *ConfigDBI, []byte(ConfigVersionKey), &currentVer); err != nil {
			if !lmdb.IsNotFound(err) {
				return fmt.Errorf("failed to get config version: %w", err)
			}
			currentVer = ""
		}

		newVer, err := m.Run(txn, currentVer, logger)
		if err != nil {
			return err
		}

		if err := TxnMarshalAndPut(txn, *ConfigDBI, []byte(ConfigVersionKey), newVer); err != nil {
			return fmt.Errorf("failed to update config version: %w", err)
		}

		if newVer != currentVer {
			logger.Infof("Migrated from %q to %q", currentVer, newVer)
		}
		return nil
	})
}
