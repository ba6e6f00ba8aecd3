// Package index provides the in-memory hash table implementation for the ignite key-value store.
// This package embodies the core Bitcask architectural principle: maintain all keys in memory
// with minimal metadata while storing actual values on disk for optimal memory utilization.
//
// The design philosophy centers on memory efficiency as the primary constraint. Every byte
// stored in the Position structure directly impacts the system's ability to handle
// large datasets. The approach here prioritizes compact data structures over convenience
// features, recognizing that memory constraints often determine system scalability limits.
//
// The index enables O(1) key lookups through an in-memory hash table while keeping
// storage overhead minimal. To keep that O(1) lookup from becoming a serialization point
// under concurrent load, the keyspace is split into a fixed number of lock-striped shards
// (spec §5: "the index uses a sharded/lock-striped mapping") rather than guarded by one
// mutex for the whole map.
package index

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// shardCount is the number of lock stripes the index splits its keyspace
// across. It is a fixed power of two so the shard for a key can be picked
// with a mask instead of a modulo.
const shardCount = 32

// Position identifies exactly where one command record lives: which
// generation's segment file, at what byte offset, spanning how many bytes.
//
// Invariant (spec §3): for every key present in the index, reading Length
// bytes starting at Offset from segment Generation yields a Set record whose
// key equals the index key; the value of that record is the current value
// for that key.
type Position struct {
	// Generation identifies which segment file (named "<Generation>.log")
	// contains this record.
	Generation uint64

	// Offset is the byte position within that segment where the record's
	// encoded bytes begin.
	Offset int64

	// Length is the total size in bytes of the encoded record, letting a
	// read fetch the entire record in a single ReadAt call.
	Length int64
}

// shard is one lock-striped partition of the index's keyspace. Splitting the
// index this way means two goroutines touching unrelated keys rarely
// contend with each other.
type shard struct {
	mu        sync.RWMutex
	positions map[string]Position
}

// Index represents the in-memory hash table that maps keys to their disk locations.
// This structure embodies the central component of the Bitcask architecture,
// maintaining the balance between memory efficiency and access performance.
//
// The Index keeps all keys in memory for immediate lookup while storing only
// essential metadata about each entry. This design allows the system to handle
// datasets much larger than available RAM while maintaining predictable performance
// characteristics that don't degrade as data volume increases.
type Index struct {
	dataDir string             // Contains the filesystem path where segment files are stored.
	log     *zap.SugaredLogger // Provides structured logging capabilities.
	shards  [shardCount]*shard // Lock-striped partitions of the key -> Position map.
	closed  atomic.Bool        // Indicates whether the index has been closed.
}

// Config encapsulates the configuration parameters required to initialize an Index.
type Config struct {
	DataDir string             // Specifies the filesystem directory containing segment files.
	Logger  *zap.SugaredLogger // Provides structured logging capabilities for Index operations.
}
