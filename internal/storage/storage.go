// Package storage provides the append-only segment files the log-structured
// engine is built on: a single active writer that absorbs new command
// records, and a set of positioned read handles into every generation the
// in-memory index can still point at.
//
// A segment is a file named "<generation>.log" holding a concatenation of
// JSON-encoded command records with no separator between them (spec §3).
// Once sealed by compaction, a segment is read-only until it is unlinked.
package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/iamNilotpal/ignite/pkg/errors"
	"github.com/iamNilotpal/ignite/pkg/filesys"
	"github.com/iamNilotpal/ignite/pkg/seginfo"
)

// ErrStorageClosed is returned by Close when called more than once.
var ErrStorageClosed = fmt.Errorf("storage: already closed")

// New opens (creating if necessary) the segment directory under
// config.Options.DataDir. It neither lists the existing generations (see
// Generations) nor decides which generation is active for writes — that is
// decided by the caller once it has replayed every discovered generation and
// knows the highest one seen (Recovery algorithm, spec §4.1).
func New(config *Config) (*Storage, error) {
	if config == nil || config.Options == nil || config.Logger == nil {
		return nil, fmt.Errorf("storage: invalid configuration")
	}

	segmentDirPath := filepath.Join(config.Options.DataDir, config.Options.SegmentOptions.Directory)
	if err := filesys.CreateDir(segmentDirPath, 0755, true); err != nil {
		return nil, errors.NewStorageError(
			err, errors.ErrorCodeIO, "failed to create segment directory",
		).WithPath(segmentDirPath).WithDetail("permission", "0755").WithDetail("forceCreate", true)
	}

	s := &Storage{
		log:        config.Logger,
		options:    config.Options,
		dataDir:    config.Options.DataDir,
		segmentDir: config.Options.SegmentOptions.Directory,
		readers:    make(map[uint64]*reader),
	}
	return s, nil
}

// Generations returns, ascending, every generation currently on disk.
func (s *Storage) Generations() ([]uint64, error) {
	dirPath := filepath.Join(s.dataDir, s.segmentDir)
	gens, err := seginfo.ListGenerations(dirPath)
	if err != nil {
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to list segment generations").WithPath(dirPath)
	}
	return gens, nil
}

// Replay streams every record of generation gen in file order, invoking fn
// with the record and the exact [offset, offset+length) span it occupied.
// Boundaries are recovered by streaming JSON decode, matching spec §3's
// "self-delimiting JSON objects concatenated without separators".
func (s *Storage) Replay(gen uint64, fn func(rec Record, offset, length int64) error) error {
	path := s.segmentPath(gen)
	file, err := os.Open(path)
	if err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to open segment for replay").
			WithPath(path).WithSegmentID(int(gen))
	}
	defer file.Close()

	dec := json.NewDecoder(file)
	for {
		offset := dec.InputOffset()
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			if err == io.EOF {
				return nil
			}
			return errors.NewStorageError(err, errors.ErrorCodeSegmentCorrupted, "failed to decode segment record").
				WithPath(path).WithSegmentID(int(gen)).WithOffset(int(offset))
		}
		length := dec.InputOffset() - offset
		if err := fn(rec, offset, length); err != nil {
			return err
		}
	}
}

// ActivateWriter opens a fresh writable handle for generation gen and makes
// it the active segment. Reads against gen are served from the same handle
// via ReadAt, since O_APPEND writes always land at the file's current tail
// regardless of the offset used for a concurrent positioned read.
func (s *Storage) ActivateWriter(gen uint64) error {
	path := s.segmentPath(gen)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to open active segment").
			WithPath(path).WithSegmentID(int(gen))
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to stat active segment").WithPath(path)
	}

	s.mu.Lock()
	s.activeGen = gen
	s.activeWriter = file
	s.writeOffset = info.Size()
	s.mu.Unlock()

	s.log.Infow("activated writable segment", "generation", gen, "path", path, "offset", info.Size())
	return nil
}

// Append encodes rec and writes it to the active segment, returning the
// generation, byte offset, and byte length of the record it just wrote.
func (s *Storage) Append(rec Record) (gen uint64, offset int64, length int64, err error) {
	data, marshalErr := json.Marshal(rec)
	if marshalErr != nil {
		return 0, 0, 0, errors.NewStorageError(marshalErr, errors.ErrorCodeSerialization, "failed to encode command record").
			WithDetail("kind", rec.Kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeWriter == nil {
		return 0, 0, 0, errors.NewStorageError(nil, errors.ErrorCodeIO, "no active segment to write to")
	}

	n, writeErr := s.activeWriter.Write(data)
	if writeErr != nil {
		return 0, 0, 0, errors.NewStorageError(writeErr, errors.ErrorCodeIO, "failed to append record").
			WithSegmentID(int(s.activeGen))
	}

	offset = s.writeOffset
	length = int64(n)
	s.writeOffset += length
	return s.activeGen, offset, length, nil
}

// Read fetches the length bytes starting at offset in generation gen,
// without disturbing any other reader's position, and decodes them as a
// Record.
func (s *Storage) Read(gen uint64, offset, length int64) (Record, error) {
	r, err := s.readerFor(gen)
	if err != nil {
		return Record{}, err
	}

	buf := make([]byte, length)
	if _, err := r.ReadAt(buf, offset); err != nil {
		return Record{}, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to read record").
			WithSegmentID(int(gen)).WithOffset(int(offset))
	}

	var rec Record
	if err := json.Unmarshal(buf, &rec); err != nil {
		return Record{}, errors.NewStorageError(err, errors.ErrorCodeSegmentCorrupted, "failed to decode record").
			WithSegmentID(int(gen)).WithOffset(int(offset))
	}
	return rec, nil
}

// readerFor returns the *os.File backing generation gen, opening and
// caching a read-only handle for sealed generations on first use.
func (s *Storage) readerFor(gen uint64) (*os.File, error) {
	s.mu.Lock()
	if gen == s.activeGen && s.activeWriter != nil {
		f := s.activeWriter
		s.mu.Unlock()
		return f, nil
	}
	s.mu.Unlock()

	s.readersMu.RLock()
	if r, ok := s.readers[gen]; ok {
		s.readersMu.RUnlock()
		return r.file, nil
	}
	s.readersMu.RUnlock()

	s.readersMu.Lock()
	defer s.readersMu.Unlock()
	if r, ok := s.readers[gen]; ok {
		return r.file, nil
	}

	path := s.segmentPath(gen)
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to open segment for reading").
			WithPath(path).WithSegmentID(int(gen))
	}
	s.readers[gen] = &reader{file: file}
	return file, nil
}

// AddUncompacted accumulates bytes that recovery or a mutation determined
// are now shadowed by a newer write or removal.
func (s *Storage) AddUncompacted(n int64) {
	if n > 0 {
		s.uncompacted.Add(uint64(n))
	}
}

// Uncompacted reports the running count of shadowed bytes in live segments.
func (s *Storage) Uncompacted() uint64 {
	return s.uncompacted.Load()
}

// segmentPath builds the full path of a generation's segment file.
func (s *Storage) segmentPath(gen uint64) string {
	return seginfo.SegmentPath(s.dataDir, s.segmentDir, gen)
}

// ActiveGeneration reports the generation currently receiving writes.
func (s *Storage) ActiveGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeGen
}

// Close releases every open file handle. It does not delete any segment.
func (s *Storage) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return ErrStorageClosed
	}

	s.mu.Lock()
	if s.activeWriter != nil {
		_ = s.activeWriter.Close()
	}
	s.mu.Unlock()

	s.readersMu.Lock()
	for gen, r := range s.readers {
		_ = r.file.Close()
		delete(s.readers, gen)
	}
	s.readersMu.Unlock()

	s.log.Infow("storage closed")
	return nil
}

// Compaction carries the state of one in-flight compaction: the fresh
// segment live records are copied into, and the generation the engine
// should transition writes to once the copy is done (spec §4.1, step 1:
// "Reserve two fresh generations ... create the new writable segment at the
// new current_gen").
type Compaction struct {
	compactionGen    uint64
	compactionFile   *os.File
	compactionOffset int64

	newActiveGen  uint64
	newActiveFile *os.File

	retiredBelow uint64
}

// Generation returns the generation live records are being rewritten into.
func (c *Compaction) Generation() uint64 {
	return c.compactionGen
}

// BeginCompaction reserves compaction_gen = activeGen+1 and
// newActiveGen = activeGen+2, opening fresh empty files for both, per the
// two-generation advance in spec §4.1. The two-generation jump guarantees
// the compaction output and the segment writes continue into afterward
// never collide on a generation number.
func (s *Storage) BeginCompaction() (*Compaction, error) {
	s.mu.Lock()
	compactionGen := s.activeGen + 1
	newActiveGen := s.activeGen + 2
	s.mu.Unlock()

	compactionPath := s.segmentPath(compactionGen)
	compactionFile, err := os.OpenFile(compactionPath, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to create compaction segment").
			WithPath(compactionPath).WithSegmentID(int(compactionGen))
	}

	newActivePath := s.segmentPath(newActiveGen)
	newActiveFile, err := os.OpenFile(newActivePath, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		compactionFile.Close()
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to create next active segment").
			WithPath(newActivePath).WithSegmentID(int(newActiveGen))
	}

	return &Compaction{
		compactionGen: compactionGen,
		compactionFile: compactionFile,
		newActiveGen:  newActiveGen,
		newActiveFile: newActiveFile,
		retiredBelow:  compactionGen,
	}, nil
}

// CopyRecord reads the length bytes at offset in generation gen and appends
// them verbatim to the compaction segment, returning the new offset they
// landed at (spec §4.1 step 2: "copy exactly len bytes into the compaction
// segment").
func (c *Compaction) CopyRecord(s *Storage, gen uint64, offset, length int64) (newOffset int64, err error) {
	r, err := s.readerFor(gen)
	if err != nil {
		return 0, err
	}

	buf := make([]byte, length)
	if _, err := r.ReadAt(buf, offset); err != nil {
		return 0, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to read live record during compaction").
			WithSegmentID(int(gen)).WithOffset(int(offset))
	}

	n, err := c.compactionFile.Write(buf)
	if err != nil {
		return 0, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to write compaction record").
			WithSegmentID(int(c.compactionGen))
	}

	newOffset = c.compactionOffset
	c.compactionOffset += int64(n)
	return newOffset, nil
}

// FinishCompaction flushes the compaction segment, installs it as a sealed
// reader, makes the reserved next generation the active writer, unlinks
// every generation strictly below the compaction generation, and resets
// uncompacted to zero (spec §4.1 steps 3-5).
func (s *Storage) FinishCompaction(c *Compaction) error {
	if err := c.compactionFile.Sync(); err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to flush compaction segment").
			WithSegmentID(int(c.compactionGen))
	}

	s.readersMu.Lock()
	for gen, r := range s.readers {
		if gen < c.retiredBelow {
			_ = r.file.Close()
			delete(s.readers, gen)
		}
	}
	s.readers[c.compactionGen] = &reader{file: c.compactionFile}
	s.readersMu.Unlock()

	s.mu.Lock()
	oldActiveWriter := s.activeWriter
	s.activeGen = c.newActiveGen
	s.activeWriter = c.newActiveFile
	s.writeOffset = 0
	s.mu.Unlock()
	if oldActiveWriter != nil {
		_ = oldActiveWriter.Close()
	}

	for gen := uint64(0); gen < c.retiredBelow; gen++ {
		path := s.segmentPath(gen)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.log.Warnw("failed to unlink retired segment", "generation", gen, "path", path, "error", err)
		}
	}

	s.uncompacted.Store(0)
	s.log.Infow("compaction finished", "compactionGeneration", c.compactionGen, "newActiveGeneration", c.newActiveGen)
	return nil
}
