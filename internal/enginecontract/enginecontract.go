// Package enginecontract defines the narrow interface both storage backends
// satisfy: the native log-structured engine (internal/engine) and the
// badger-backed adapter (internal/badgerkv) standing in for "an alternative
// third-party engine" (spec §4.2, §6). The server and the service
// dispatcher are generic over this interface; neither knows which backend
// it is talking to.
package enginecontract

import stdErrors "errors"

// ErrKeyNotFound is the sentinel every Engine implementation returns from
// Remove when the key was never set (spec §4.1: "remove(key) → ok |
// key-not-found | io-error"). Get does not use it: an absent key is
// reported through Get's bool result with a nil error.
var ErrKeyNotFound = stdErrors.New("engine: key not found")

// Engine is the closed contract both storage backends implement. Methods
// take a shared receiver with interior synchronization so that the value is
// cheap to duplicate per pool worker (spec §4.2: "shared receivers with
// interior synchronization and the type is cheap to duplicate per worker").
type Engine interface {
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Get returns the current value for key and true, or "", false if key
	// is absent. A non-nil error indicates I/O failure or on-disk
	// corruption, never "key absent".
	Get(key string) (string, bool, error)

	// Remove deletes key. It returns ErrKeyNotFound if key was never set.
	Remove(key string) error

	// Close releases every resource the engine holds open.
	Close() error
}

// Compactable is implemented by engines that expose an explicit maintenance
// entry point (spec §6: "in the single-threaded variant, the compact()
// entry point for explicit maintenance"). The badger adapter does not
// implement this — badger manages its own LSM compaction internally.
type Compactable interface {
	Compact() error
}
