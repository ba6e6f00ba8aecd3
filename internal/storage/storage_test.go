package storage

import (
	"testing"

	"github.com/iamNilotpal/ignite/pkg/logger"
	"github.com/iamNilotpal/ignite/pkg/options"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	dataDir := t.TempDir()
	cfg := options.NewDefaultOptions()
	cfg.DataDir = dataDir

	s, err := New(&Config{Options: &cfg, Logger: logger.NewNop()})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := s.ActivateWriter(1); err != nil {
		t.Fatalf("ActivateWriter failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendAndReadRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	gen, offset, length, err := s.Append(Record{Kind: RecordSet, Key: "k1", Value: "v1"})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	rec, err := s.Read(gen, offset, length)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if rec.Kind != RecordSet || rec.Key != "k1" || rec.Value != "v1" {
		t.Errorf("read record = %+v, want {set k1 v1}", rec)
	}
}

func TestAppendMultipleRecordsDistinctOffsets(t *testing.T) {
	s := newTestStorage(t)

	_, off1, len1, err := s.Append(Record{Kind: RecordSet, Key: "k1", Value: "v1"})
	if err != nil {
		t.Fatalf("Append 1 failed: %v", err)
	}
	_, off2, _, err := s.Append(Record{Kind: RecordSet, Key: "k2", Value: "v2"})
	if err != nil {
		t.Fatalf("Append 2 failed: %v", err)
	}

	if off2 != off1+len1 {
		t.Errorf("second record offset = %d, want %d (immediately after first)", off2, off1+len1)
	}
}

func TestReplayRecoversAllRecords(t *testing.T) {
	s := newTestStorage(t)

	if _, _, _, err := s.Append(Record{Kind: RecordSet, Key: "k1", Value: "v1"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if _, _, _, err := s.Append(Record{Kind: RecordSet, Key: "k2", Value: "v2"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if _, _, _, err := s.Append(Record{Kind: RecordRemove, Key: "k1"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	var got []Record
	err := s.Replay(1, func(rec Record, offset, length int64) error {
		got = append(got, rec)
		return nil
	})
	if err != nil {
		t.Fatalf("Replay failed: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("replayed %d records, want 3", len(got))
	}
	if got[0].Key != "k1" || got[0].Value != "v1" {
		t.Errorf("record 0 = %+v", got[0])
	}
	if got[2].Kind != RecordRemove || got[2].Key != "k1" {
		t.Errorf("record 2 = %+v, want remove k1", got[2])
	}
}

func TestCompactionRetiresOldGenerations(t *testing.T) {
	s := newTestStorage(t)

	_, off, length, err := s.Append(Record{Kind: RecordSet, Key: "live", Value: "v"})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	comp, err := s.BeginCompaction()
	if err != nil {
		t.Fatalf("BeginCompaction failed: %v", err)
	}

	newOffset, err := comp.CopyRecord(s, 1, off, length)
	if err != nil {
		t.Fatalf("CopyRecord failed: %v", err)
	}
	if newOffset != 0 {
		t.Errorf("first copied record offset = %d, want 0", newOffset)
	}

	if err := s.FinishCompaction(comp); err != nil {
		t.Fatalf("FinishCompaction failed: %v", err)
	}

	if got := s.ActiveGeneration(); got != 3 {
		t.Errorf("active generation after compaction = %d, want 3 (activeGen+2)", got)
	}
	if got := s.Uncompacted(); got != 0 {
		t.Errorf("uncompacted after compaction = %d, want 0", got)
	}

	rec, err := s.Read(comp.Generation(), 0, length)
	if err != nil {
		t.Fatalf("Read from compaction segment failed: %v", err)
	}
	if rec.Key != "live" {
		t.Errorf("compacted record = %+v, want key=live", rec)
	}
}

func TestUncompactedAccumulates(t *testing.T) {
	s := newTestStorage(t)
	s.AddUncompacted(10)
	s.AddUncompacted(20)
	if got := s.Uncompacted(); got != 30 {
		t.Errorf("uncompacted = %d, want 30", got)
	}
	// Zero and negative contributions are no-ops.
	s.AddUncompacted(0)
	s.AddUncompacted(-5)
	if got := s.Uncompacted(); got != 30 {
		t.Errorf("uncompacted after no-op adds = %d, want 30", got)
	}
}

func TestCloseIsIdempotentError(t *testing.T) {
	dataDir := t.TempDir()
	cfg := options.NewDefaultOptions()
	cfg.DataDir = dataDir
	s, err := New(&Config{Options: &cfg, Logger: logger.NewNop()})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := s.Close(); err != ErrStorageClosed {
		t.Errorf("second Close = %v, want ErrStorageClosed", err)
	}
}
