package database

import (
	"encoding/json"
	"fmt"

	"github.com/Data-Corruption/lmdb-go/lmdb"
	"github.com/Data-Corruption/lmdb-go/wrap"
)

// TxnMarshalAndPut marshals the provided value and stores it in the database under the given key.
func TxnMarshalAndPut(txn *lmdb.Txn, dbi lmdb.DBI, key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return txn.Put(dbi, key, data, 0)
}

// TxnGetAndUnmarshal retrieves a value from the database and unmarshals it into the provided value pointer.
// lmdb.IsNotFound(err) will be true if the key was not found in the database.
func TxnGetAndUnmarshal(txn *lmdb.Txn, dbi lmdb.DBI, key []byte, value any) error {
	buf, err := txn.Get(dbi, key)
	if err != nil {
		return err
	}
	return json.Unmarshal(buf, value)
}

// View returns a copy of the JSON value stored under key.
//
// WARNING: Starts a transaction. Avoid nesting transactions (will deadlock).
func View[T any](db *wrap.DB, dbi lmdb.DBI, key []byte) (*T, error) {
	var v T
	if err := db.View(func(txn *lmdb.Txn) error {
		return TxnGetAndUnmarshal(txn, dbi, key, &v)
	}); err != nil {
		return nil, err
	}
	return &v, nil
}

// Update reads the JSON value stored under key, lets updateFunc modify it and
// writes it back, all in one transaction.
//
// WARNING: Starts a transaction. Avoid nesting transactions (will deadlock).
func Update[T any](db *wrap.DB, dbi lmdb.DBI, key []byte, updateFunc func(v *T) error) error {
	return db.Update(func(txn *lmdb.Txn) error {
		var v T
		if err := TxnGetAndUnmarshal(txn, dbi, key, &v); err != nil {
			return fmt.Errorf("failed to get %q: %w", key, err)
		}
		if err := updateFunc(&v); err != nil {
			return fmt.Errorf("update function failed: %w", err)
		}
		if err := TxnMarshalAndPut(txn, dbi, key, v); err != nil {
			return fmt.Errorf("failed to put %q: %w", key, err)
		}
		return nil
	})
}
