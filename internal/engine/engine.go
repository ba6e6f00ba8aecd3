// Package engine provides the core database engine implementation for the Ignite storage system.
//
// The engine serves as the central coordinator and entry point for all database operations.
// It orchestrates the interaction between three main subsystems:
//   - Index: an in-memory, sharded mapping from key to on-disk position
//   - Storage: append-only segment files, one active writer, and positioned readers
//   - Compaction: the routine that reclaims space by rewriting live entries into a fresh segment
//
// Opening a directory replays every generation it finds to rebuild the index
// and the uncompacted-byte count before the engine accepts any mutation
// (spec §4.1's recovery algorithm), so a crash at any point before leaves
// the reopened store consistent with the longest validly-decoding prefix of
// each segment.
package engine

import (
	stdErrors "errors"
	"sync"
	"sync/atomic"

	"github.com/iamNilotpal/ignite/internal/compaction"
	"github.com/iamNilotpal/ignite/internal/enginecontract"
	"github.com/iamNilotpal/ignite/internal/index"
	"github.com/iamNilotpal/ignite/internal/storage"
	"github.com/iamNilotpal/ignite/pkg/errors"
	"github.com/iamNilotpal/ignite/pkg/options"
	"go.uber.org/zap"
)

// ErrEngineClosed is returned when attempting to perform operations on a closed engine.
var ErrEngineClosed = stdErrors.New("operation failed: cannot access closed engine")

var _ enginecontract.Engine = (*Engine)(nil)
var _ enginecontract.Compactable = (*Engine)(nil)

// Engine represents the main database engine that coordinates all subsystems.
// It acts as the primary interface for database operations and manages the lifecycle
// of all internal components. Get/Set/Remove take the read side of mu so they
// run concurrently with each other; Compact takes the write side, matching this
// implementation's choice to make compaction exclusive of concurrent reads
// (spec §4.1: "reads issued through the engine during compaction are not
// supported concurrently").
type Engine struct {
	mu sync.RWMutex

	options    *options.Options
	log        *zap.SugaredLogger
	closed     atomic.Bool
	index      *index.Index
	storage    *storage.Storage
	compaction *compaction.Compaction
}

// Config holds all the parameters needed to initialize a new Engine instance.
type Config struct {
	Options *options.Options
	Logger  *zap.SugaredLogger
}

// New opens the data directory named by config.Options.DataDir, performing
// recovery (replaying every generation found on disk to rebuild the index
// and the uncompacted byte count) before returning an engine ready to serve
// mutations.
func New(config *Config) (*Engine, error) {
	if config == nil || config.Options == nil || config.Logger == nil {
		return nil, errors.NewRequiredFieldError("Config")
	}

	idx, err := index.New(index.Config{DataDir: config.Options.DataDir, Logger: config.Logger})
	if err != nil {
		return nil, err
	}

	store, err := storage.New(&storage.Config{Options: config.Options, Logger: config.Logger})
	if err != nil {
		return nil, err
	}

	generations, err := store.Generations()
	if err != nil {
		return nil, err
	}

	for _, gen := range generations {
		if err := replayGeneration(store, idx, gen); err != nil {
			return nil, err
		}
	}

	nextGen := uint64(1)
	if len(generations) > 0 {
		nextGen = generations[len(generations)-1] + 1
	}
	if err := store.ActivateWriter(nextGen); err != nil {
		return nil, err
	}

	comp := compaction.New(compaction.Config{Storage: store, Index: idx, Logger: config.Logger})

	config.Logger.Infow(
		"engine opened",
		"dataDir", config.Options.DataDir,
		"generationsReplayed", len(generations),
		"activeGeneration", nextGen,
		"uncompacted", store.Uncompacted(),
	)

	return &Engine{options: config.Options, log: config.Logger, index: idx, storage: store, compaction: comp}, nil
}

// replayGeneration streams one generation's records into idx, accumulating
// uncompacted bytes for every entry a later record shadows (spec §4.1
// recovery algorithm).
func replayGeneration(store *storage.Storage, idx *index.Index, gen uint64) error {
	return store.Replay(gen, func(rec storage.Record, offset, length int64) error {
		switch rec.Kind {
		case storage.RecordSet:
			if prev, ok := idx.Get(rec.Key); ok {
				store.AddUncompacted(prev.Length)
			}
			idx.Set(rec.Key, index.Position{Generation: gen, Offset: offset, Length: length})
		case storage.RecordRemove:
			if prev, ok := idx.Get(rec.Key); ok {
				store.AddUncompacted(prev.Length)
			}
			idx.Delete(rec.Key)
			store.AddUncompacted(length)
		}
		return nil
	})
}

// Set stores value under key, replacing any previous value (spec §4.1:
// "Appends a Set record to the active segment, flushes the writer to the
// OS, then updates the index to the new position").
func (e *Engine) Set(key, value string) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}

	e.mu.RLock()
	gen, offset, length, err := e.storage.Append(storage.Record{Kind: storage.RecordSet, Key: key, Value: value})
	if err != nil {
		e.mu.RUnlock()
		return err
	}

	if prev, ok := e.index.Get(key); ok {
		e.storage.AddUncompacted(prev.Length)
	}
	e.index.Set(key, index.Position{Generation: gen, Offset: offset, Length: length})
	exceeded := e.storage.Uncompacted() > e.options.CompactionThreshold
	e.mu.RUnlock()

	if exceeded {
		if err := e.Compact(); err != nil {
			e.log.Warnw("inline compaction failed", "error", err)
		}
	}
	return nil
}

// Get returns the current value for key. A position whose record does not
// decode as a Set indicates on-disk corruption under the index's own
// invariant and is reported as unexpected-command-type (spec §4.1).
func (e *Engine) Get(key string) (string, bool, error) {
	if e.closed.Load() {
		return "", false, ErrEngineClosed
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	pos, ok := e.index.Get(key)
	if !ok {
		return "", false, nil
	}

	rec, err := e.storage.Read(pos.Generation, pos.Offset, pos.Length)
	if err != nil {
		return "", false, err
	}
	if rec.Kind != storage.RecordSet {
		return "", false, errors.NewUnexpectedCommandTypeError(pos.Generation, pos.Offset, pos.Length)
	}
	return rec.Value, true, nil
}

// Remove deletes key, returning enginecontract.ErrKeyNotFound if it was
// never set — the only error contract that is purely semantic rather than
// a failure (spec §4.1, §4.2).
func (e *Engine) Remove(key string) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}

	e.mu.RLock()
	pos, ok := e.index.Get(key)
	if !ok {
		e.mu.RUnlock()
		return enginecontract.ErrKeyNotFound
	}

	if _, _, _, err := e.storage.Append(storage.Record{Kind: storage.RecordRemove, Key: key}); err != nil {
		e.mu.RUnlock()
		return err
	}

	e.storage.AddUncompacted(pos.Length)
	e.index.Delete(key)
	exceeded := e.storage.Uncompacted() > e.options.CompactionThreshold
	e.mu.RUnlock()

	if exceeded {
		if err := e.Compact(); err != nil {
			e.log.Warnw("inline compaction failed", "error", err)
		}
	}
	return nil
}

// Compact runs an explicit compaction pass (spec §6's embedded-library
// "compact() entry point for explicit maintenance"). It takes the engine's
// write lock, so it excludes concurrent Get/Set/Remove for its duration.
func (e *Engine) Compact() error {
	if e.closed.Load() {
		return ErrEngineClosed
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.compaction.Run()
}

// Close gracefully shuts down the engine and releases all associated resources.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return ErrEngineClosed
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.index.Close(); err != nil {
		e.log.Warnw("failed to close index", "error", err)
	}
	return e.storage.Close()
}
