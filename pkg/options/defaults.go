package options

import "time"

const (
	// DefaultDataDir specifies the default base directory where Ignite will
	// store its data files. If no other directory is specified during
	// initialization, this path will be used.
	DefaultDataDir = "/var/lib/ignitedb"

	// DefaultCompactInterval is the default value stored in
	// Options.CompactInterval. No component reads that field: compaction
	// runs only inline when a write crosses the byte threshold, or through
	// an explicit Compact call.
	DefaultCompactInterval = time.Hour * 5

	// DefaultCompactionThreshold is the number of uncompacted bytes a data
	// directory may accumulate before an online compaction is triggered.
	DefaultCompactionThreshold uint64 = 1 << 20 // 1 MiB

	// MinCompactionThreshold is the smallest compaction threshold accepted by
	// WithCompactionThreshold; below this, compaction would run so often it
	// would dominate write latency.
	MinCompactionThreshold uint64 = 4 << 10 // 4 KiB

	// MaxCompactionThreshold is the largest compaction threshold accepted by
	// WithCompactionThreshold; above this, space amplification is considered
	// unbounded for practical purposes.
	MaxCompactionThreshold uint64 = 4 << 30 // 4 GiB

	// DefaultSegmentDirectory is the default subdirectory within the main
	// data directory where segment files (<gen>.log) are stored.
	DefaultSegmentDirectory = "segments"

	// DefaultAddr is the default bind/connect address for the server and
	// client.
	DefaultAddr = "127.0.0.1:4000"

	// DefaultPoolSize is the default worker count for pool kinds that use a
	// fixed number of workers (shared-queue, work-stealing).
	DefaultPoolSize = 8
)

// EngineKind identifies which storage backend a data directory is opened
// with. It is persisted verbatim into the on-disk "engine" marker file
// (spec §6) so that reopening a directory with a different backend fails
// fast rather than silently misinterpreting the segment files.
type EngineKind string

const (
	// EngineKVS is the native log-structured engine (internal/engine +
	// internal/storage + internal/index + internal/compaction).
	EngineKVS EngineKind = "kvs"

	// EngineSled is the alternative third-party engine adapter, backed by
	// badger (internal/badgerkv). The name is kept as "sled" because that is
	// the marker value spec §6 mandates for "the alternative engine".
	EngineSled EngineKind = "sled"
)

// PoolKind selects which internal/pool.Pool implementation backs the server.
type PoolKind string

const (
	PoolNaive        PoolKind = "naive"
	PoolSharedQueue  PoolKind = "shared"
	PoolWorkStealing PoolKind = "stealing"
)

// Holds the default configuration settings for an Ignite DB instance.
var defaultOptions = Options{
	DataDir:             DefaultDataDir,
	Engine:              EngineKVS,
	CompactInterval:     DefaultCompactInterval,
	CompactionThreshold: DefaultCompactionThreshold,
	SegmentOptions:      &segmentOptions{Directory: DefaultSegmentDirectory},
	Server:              &ServerOptions{Addr: DefaultAddr},
	Pool:                &PoolOptions{Kind: PoolSharedQueue, Size: DefaultPoolSize},
}

// NewDefaultOptions returns a copy of the baseline Options. Callers apply
// OptionFuncs on top of it rather than mutating the package-level default.
func NewDefaultOptions() Options {
	opts := defaultOptions
	segCopy := *defaultOptions.SegmentOptions
	serverCopy := *defaultOptions.Server
	poolCopy := *defaultOptions.Pool
	opts.SegmentOptions = &segCopy
	opts.Server = &serverCopy
	opts.Pool = &poolCopy
	return opts
}
