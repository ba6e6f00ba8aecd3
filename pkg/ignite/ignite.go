// Package ignite provides a high-performance key/value data store
// designed for fast read and write operations, inspired by Bitcask.
// It combines an in-memory hash table (KeyDir/Index) with an append-only log
// structure on disk to achieve high throughput. It is designed for applications
// requiring fast read and write operations, such as caching, session management,
// and real-time data processing, aiming to provide a simple, efficient, and
// reliable solution for in-memory data storage in Go applications.
package ignite

import (
	"context"

	"github.com/iamNilotpal/ignite/internal/badgerkv"
	"github.com/iamNilotpal/ignite/internal/engine"
	"github.com/iamNilotpal/ignite/internal/enginecontract"
	"github.com/iamNilotpal/ignite/pkg/logger"
	"github.com/iamNilotpal/ignite/pkg/options"
)

// Represents an instance of the Ignite key/value data store.
// It encapsulates whichever enginecontract.Engine backend was selected and
// the configuration options this instance was opened with.
//
// Instance is the primary entry point for interacting with the Ignite store,
// providing methods for setting, getting, and removing key-value pairs.
type Instance struct {
	engine  enginecontract.Engine // The underlying backend handling read/write operations.
	options *options.Options      // Configuration options applied to this DB instance.
}

// Creates and opens a new Ignite DB instance. Before any segment or
// database file is touched, it verifies the data directory's "engine"
// marker file agrees with the selected backend (spec §6); opening a
// directory with a mismatched engine fails fast.
//
// context is accepted for parity with the rest of this package's surface
// and for future cancellation support; neither backend's open path
// currently suspends on it (spec §5: "the engine's mutating operations do
// not suspend").
func NewInstance(ctx context.Context, service string, opts ...options.OptionFunc) (*Instance, error) {
	// Initialize a logger for the given service.
	log := logger.New(service)

	// Initialize default options.
	cfg := options.NewDefaultOptions()

	// Apply any provided functional options to override defaults.
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := verifyOrWriteEngineMarker(cfg.DataDir, cfg.Engine); err != nil {
		return nil, err
	}

	var eng enginecontract.Engine
	switch cfg.Engine {
	case options.EngineSled:
		backend, err := badgerkv.Open(badgerkv.Config{DataDir: cfg.DataDir, Logger: log})
		if err != nil {
			return nil, err
		}
		eng = backend
	default:
		backend, err := engine.New(&engine.Config{Logger: log, Options: &cfg})
		if err != nil {
			return nil, err
		}
		eng = backend
	}

	return &Instance{engine: eng, options: &cfg}, nil
}

// Engine returns the underlying backend this instance opened, for callers
// that need to wire it into something beyond the Set/Get/Remove facade —
// namely internal/server, which drives it through internal/service instead
// of through Instance directly.
func (i *Instance) Engine() enginecontract.Engine {
	return i.engine
}

// Options returns the resolved configuration this instance was opened
// with.
func (i *Instance) Options() *options.Options {
	return i.options
}

// Set stores a key-value pair in the database.
// If the key already exists, its value will be updated.
// The operation is durable and will be written to the append-only log.
func (i *Instance) Set(ctx context.Context, key, value string) error {
	return i.engine.Set(key, value)
}

// Get retrieves the value associated with the given key. The returned bool
// is false when key is absent; that is not an error condition (spec §7).
func (i *Instance) Get(ctx context.Context, key string) (string, bool, error) {
	return i.engine.Get(key)
}

// Remove deletes a key-value pair from the database, returning
// enginecontract.ErrKeyNotFound if the key was never set.
func (i *Instance) Remove(ctx context.Context, key string) error {
	return i.engine.Remove(key)
}

// Compact runs an explicit maintenance compaction pass, if the selected
// engine exposes one (spec §6). Backends that manage their own compaction,
// such as the badger adapter, report this as a no-op.
func (i *Instance) Compact(ctx context.Context) error {
	if c, ok := i.engine.(enginecontract.Compactable); ok {
		return c.Compact()
	}
	return nil
}

// Close gracefully shuts down the Ignite DB instance, releasing all
// resources the underlying engine holds open.
func (i *Instance) Close(ctx context.Context) error {
	return i.engine.Close()
}
