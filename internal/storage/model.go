// Package storage manages the on-disk segment files of the log-structured
// engine: the currently active append-only segment that absorbs new writes,
// the set of read handles into every generation a key might still live in,
// and the byte-accounting (uncompacted) that drives online compaction.
//
// A segment file is named "<generation>.log" and holds a concatenation of
// command records, each a self-delimiting JSON object with no separator
// between them (spec §3). Boundaries are recovered by streaming JSON
// decode, not by a length prefix per record — the index remembers the
// exact [offset, offset+length) span a record occupies so that later reads
// never need to re-scan.
package storage

import (
	"os"
	"sync"
	"sync/atomic"

	"github.com/iamNilotpal/ignite/pkg/options"
	"go.uber.org/zap"
)

// RecordKind distinguishes the two command record shapes the log holds.
type RecordKind string

const (
	RecordSet    RecordKind = "set"
	RecordRemove RecordKind = "remove"
)

// Record is the on-disk shape of one log entry. Value is omitted from the
// JSON encoding of a Remove record, matching the wire-format description in
// spec §3 ("Set{key, value}" or "Remove{key}" — two distinct shapes, not one
// shape with an unused field).
type Record struct {
	Kind  RecordKind `json:"kind"`
	Key   string     `json:"key"`
	Value string     `json:"value,omitempty"`
}

// reader is a read-only handle into one sealed or active generation's
// segment file, accessed exclusively via ReadAt so that concurrent readers
// never contend on a shared seek cursor (this is this implementation's
// resolution of the thread-local-reader question in spec §9: Go's
// os.File.ReadAt has no mutable cursor to race over, so one handle per
// generation, shared across goroutines, replaces a per-worker reader pool).
type reader struct {
	file *os.File
}

// Storage owns every segment file for one data directory: the single
// active writer that all new records are appended to, and the map of
// per-generation readers used to service point reads and compaction scans.
type Storage struct {
	mu sync.Mutex // Serializes writer access and generation bookkeeping.

	dataDir    string
	segmentDir string

	activeGen    uint64
	activeWriter *os.File
	writeOffset  int64

	readersMu sync.RWMutex
	readers   map[uint64]*reader

	uncompacted atomic.Uint64
	closed      atomic.Bool

	options *options.Options
	log     *zap.SugaredLogger
}

// Config carries the dependencies Storage needs to open a data directory.
type Config struct {
	Options *options.Options
	Logger  *zap.SugaredLogger
}
