// Package options provides data structures and functions for configuring
// the Ignite database. It defines various parameters that control Ignite's
// storage behavior, performance, networking, and maintenance operations,
// such as directory paths, compaction thresholds, server binding, and
// worker-pool sizing.
package options

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Defines configurable parameters for segment file placement.
type segmentOptions struct {
	// Specifies the subdirectory (relative to DataDir) where segment files
	// (named "<generation>.log") are stored.
	//
	// Default: "segments"
	Directory string `json:"directory"`
}

// ServerOptions configures the networked front-end that exposes the engine
// over the framed wire protocol.
type ServerOptions struct {
	// Addr is the "host:port" the server binds to, or the client connects
	// to.
	//
	// Default: "127.0.0.1:4000"
	Addr string `json:"addr"`

	// TLSCertFile and TLSKeyFile, when both non-empty, switch the transport
	// adapter from plain TCP to TLS (internal/transport).
	TLSCertFile string `json:"tlsCertFile,omitempty"`
	TLSKeyFile  string `json:"tlsKeyFile,omitempty"`
}

// PoolOptions configures which internal/pool.Pool implementation serves
// accepted connections, and how many workers it starts with.
type PoolOptions struct {
	Kind PoolKind `json:"kind"`
	Size int      `json:"size"`
}

// Defines the configuration parameters for Ignite DB.
// It provides control over storage, performance, networking, and
// maintenance aspects.
type Options struct {
	// Specifies the base path where files will be stored.
	//
	// Default: "/var/lib/ignitedb"
	DataDir string `json:"dataDir"`

	// Engine selects which storage backend a directory is opened with: the
	// native log-structured engine ("kvs") or the alternative badger-backed
	// adapter ("sled").
	Engine EngineKind `json:"engine"`

	// CompactInterval is stored but read by no component;
	// there is no background compaction sweep. Compaction runs inline when
	// a write crosses CompactionThreshold, or through an explicit Compact.
	//
	// Default: 5h
	CompactInterval time.Duration `json:"compactInterval"`

	// CompactionThreshold is the number of uncompacted bytes a data
	// directory accumulates before the engine triggers an online compaction
	// inline with the write that crossed it.
	//
	// Default: 1 MiB
	CompactionThreshold uint64 `json:"compactionThreshold"`

	// Configures where segment files are stored.
	SegmentOptions *segmentOptions `json:"segmentOptions"`

	// Configures the networked server/client front-end.
	Server *ServerOptions `json:"server"`

	// Configures the worker pool the server uses to serve accepted
	// connections.
	Pool *PoolOptions `json:"pool"`
}

// OptionFunc is a function type that modifies the Ignite system's configuration.
type OptionFunc func(*Options)

// Applies a predefined set of default configuration values to the Options struct.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		*o = NewDefaultOptions()
	}
}

// Sets the primary data directory for Ignite.
func WithDataDir(directory string) OptionFunc {
	return func(o *Options) {
		directory = strings.TrimSpace(directory)
		if directory != "" {
			o.DataDir = directory
		}
	}
}

// Sets which storage backend a data directory is opened with.
func WithEngine(kind EngineKind) OptionFunc {
	return func(o *Options) {
		if kind == EngineKVS || kind == EngineSled {
			o.Engine = kind
		}
	}
}

// Sets Options.CompactInterval. The value is stored only; no background
// compactor reads it.
func WithCompactInterval(interval time.Duration) OptionFunc {
	return func(o *Options) {
		if interval > 0 {
			o.CompactInterval = interval
		}
	}
}

// Sets the uncompacted-byte threshold that triggers online compaction,
// directly in bytes.
func WithCompactionThreshold(bytes uint64) OptionFunc {
	return func(o *Options) {
		if bytes >= MinCompactionThreshold && bytes <= MaxCompactionThreshold {
			o.CompactionThreshold = bytes
		}
	}
}

// Sets the uncompacted-byte threshold from a human-readable size string such
// as "1MiB" or "512KB". Malformed input is ignored, leaving the previous
// threshold in place.
func WithCompactionThresholdString(size string) OptionFunc {
	return func(o *Options) {
		bytes, err := humanize.ParseBytes(size)
		if err != nil {
			return
		}
		WithCompactionThreshold(bytes)(o)
	}
}

// Sets the directory specifically for storing segment files.
func WithSegmentDir(directory string) OptionFunc {
	return func(o *Options) {
		directory = strings.TrimSpace(directory)
		if directory != "" {
			o.SegmentOptions.Directory = directory
		}
	}
}

// Sets the address the server binds to or the client connects to.
func WithAddr(addr string) OptionFunc {
	return func(o *Options) {
		addr = strings.TrimSpace(addr)
		if addr != "" {
			o.Server.Addr = addr
		}
	}
}

// Configures the server to accept TLS connections using the given
// certificate and key files, via internal/transport.
func WithTLS(certFile, keyFile string) OptionFunc {
	return func(o *Options) {
		certFile, keyFile = strings.TrimSpace(certFile), strings.TrimSpace(keyFile)
		if certFile != "" && keyFile != "" {
			o.Server.TLSCertFile = certFile
			o.Server.TLSKeyFile = keyFile
		}
	}
}

// Selects which worker-pool implementation the server uses.
func WithPool(kind PoolKind, size int) OptionFunc {
	return func(o *Options) {
		switch kind {
		case PoolNaive, PoolSharedQueue, PoolWorkStealing:
			o.Pool.Kind = kind
		default:
			return
		}
		if size > 0 {
			o.Pool.Size = size
		}
	}
}
