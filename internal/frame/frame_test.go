package frame

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	cases := []struct {
		name    string
		payload []byte
	}{
		{"empty", []byte{}},
		{"small", []byte("hello")},
		{"just-under-threshold", bytes.Repeat([]byte("a"), compressionThreshold-1)},
		{"at-threshold", bytes.Repeat([]byte("b"), compressionThreshold)},
		{"large", bytes.Repeat([]byte{0}, 16384)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, tc.payload); err != nil {
				t.Fatalf("Write failed: %v", err)
			}

			got, err := Read(&buf)
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			if !bytes.Equal(got, tc.payload) {
				t.Errorf("round-tripped payload mismatch: got %d bytes, want %d bytes", len(got), len(tc.payload))
			}
		})
	}
}

func TestWriteSetsCompressedBitAboveThreshold(t *testing.T) {
	var buf bytes.Buffer
	payload := bytes.Repeat([]byte{0}, compressionThreshold)
	if err := Write(&buf, payload); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	header := binary.BigEndian.Uint32(buf.Bytes()[:HeaderLen])
	if header&compressedBit == 0 {
		t.Error("expected compressed bit to be set for a payload at the threshold")
	}
}

func TestWriteLeavesSmallPayloadUncompressed(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte("small payload")
	if err := Write(&buf, payload); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	header := binary.BigEndian.Uint32(buf.Bytes()[:HeaderLen])
	if header&compressedBit != 0 {
		t.Error("expected compressed bit to be clear for a small payload")
	}
	if int(header&lengthMask) != len(payload) {
		t.Errorf("header length = %d, want %d", header&lengthMask, len(payload))
	}
}

func TestReadRejectsOversizedDeclaredLength(t *testing.T) {
	var headerBytes [HeaderLen]byte
	binary.BigEndian.PutUint32(headerBytes[:], maxPayloadLen+1)

	r := bytes.NewReader(headerBytes[:])
	if _, err := Read(r); err == nil {
		t.Error("expected Read to reject a declared length exceeding the maximum")
	}
}

func TestReadRejectsTruncatedPayload(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, []byte("hello world")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	truncated := buf.Bytes()[:HeaderLen+2]
	if _, err := Read(bytes.NewReader(truncated)); err == nil {
		t.Error("expected Read to fail on a truncated payload")
	}
}
