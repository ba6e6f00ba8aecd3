// Package badgerkv adapts github.com/dgraph-io/badger/v3 to
// internal/enginecontract.Engine, standing in for "an alternative
// third-party engine whose only requirement is that it satisfies the engine
// interface" (spec §4.2, §6 — the on-disk marker value for this backend is
// "sled", carried over from the system this specification was distilled
// from since that is the marker value spec §6 mandates).
//
// Unlike the native log-structured engine, badger owns its own LSM-tree
// storage, WAL, and compaction; this adapter only translates between the
// narrow Set/Get/Remove contract and badger's transactional API.
package badgerkv

import (
	stdErrors "errors"

	"github.com/dgraph-io/badger/v3"
	"github.com/iamNilotpal/ignite/internal/enginecontract"
	"github.com/iamNilotpal/ignite/pkg/errors"
	"go.uber.org/zap"
)

var _ enginecontract.Engine = (*Engine)(nil)

// Engine wraps one open *badger.DB. It is safe for concurrent use by
// multiple goroutines, satisfying the "cheap to duplicate per worker"
// clause of spec §4.2 trivially — callers can share a single *Engine value
// rather than actually duplicating it.
type Engine struct {
	db  *badger.DB
	log *zap.SugaredLogger
}

// Config carries the dependencies needed to open a badger-backed engine.
type Config struct {
	DataDir string
	Logger  *zap.SugaredLogger
}

// Open opens (creating if necessary) a badger database rooted at
// config.DataDir.
func Open(config Config) (*Engine, error) {
	if config.DataDir == "" {
		return nil, errors.NewRequiredFieldError("DataDir")
	}

	opts := badger.DefaultOptions(config.DataDir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.NewStorageError(err, errors.ErrorCodeBackend, "failed to open badger database").
			WithPath(config.DataDir)
	}

	return &Engine{db: db, log: config.Logger}, nil
}

// Set stores value under key in one badger transaction.
func (e *Engine) Set(key, value string) error {
	err := e.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	if err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeBackend, "badger set failed").WithDetail("key", key)
	}
	return nil
}

// Get returns the current value for key and true, or "", false if absent.
func (e *Engine) Get(key string) (string, bool, error) {
	var value []byte
	err := e.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if stdErrors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.NewStorageError(err, errors.ErrorCodeBackend, "badger get failed").WithDetail("key", key)
	}
	return string(value), true, nil
}

// Remove deletes key, returning enginecontract.ErrKeyNotFound if it was
// never set.
func (e *Engine) Remove(key string) error {
	err := e.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(key)); err != nil {
			return err
		}
		return txn.Delete([]byte(key))
	})
	if stdErrors.Is(err, badger.ErrKeyNotFound) {
		return enginecontract.ErrKeyNotFound
	}
	if err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeBackend, "badger remove failed").WithDetail("key", key)
	}
	return nil
}

// Close releases every resource the underlying badger database holds open.
func (e *Engine) Close() error {
	return e.db.Close()
}
