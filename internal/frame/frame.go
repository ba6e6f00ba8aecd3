// Package frame implements the length-prefixed, optionally-compressed
// envelope every CommandRequest/CommandResponse payload travels inside
// (spec §4.3, §4.5). A frame is a 4-byte big-endian header followed by the
// payload it describes:
//
//	bit 31       : compressed flag
//	bits 0..30   : payload length, post-compression if the flag is set
//
// Payloads at or above compressionThreshold bytes are gzip-compressed
// before the header is computed; smaller payloads are sent verbatim, since
// gzip's own framing overhead would dominate at that size.
package frame

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"io"

	"github.com/iamNilotpal/ignite/pkg/errors"
)

const (
	// compressedBit marks bit 31 of the 4-byte header.
	compressedBit uint32 = 1 << 31

	// lengthMask isolates the 31-bit payload length.
	lengthMask uint32 = compressedBit - 1

	// compressionThreshold is the payload size, in bytes, at or above which
	// a frame is gzip-compressed before being written (spec §4.3).
	compressionThreshold = 1436

	// maxPayloadLen is the largest length the 31-bit header field can carry.
	// Write refuses a body longer than this; Read masks the header to 31
	// bits, so a decoded length never exceeds it.
	maxPayloadLen = 1<<31 - 1
)

// HeaderLen is the fixed size, in bytes, of a frame's length-prefix header.
const HeaderLen = 4

// Write encodes payload as one frame and writes it to w: compressing it
// first when its length is at or above compressionThreshold, then a 4-byte
// big-endian header, then the (possibly compressed) bytes.
func Write(w io.Writer, payload []byte) error {
	body := payload
	compressed := false

	if len(payload) >= compressionThreshold {
		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		if _, err := gz.Write(payload); err != nil {
			return errors.NewWireError(err, errors.ErrorCodeSerde, "failed to gzip frame payload")
		}
		if err := gz.Close(); err != nil {
			return errors.NewWireError(err, errors.ErrorCodeSerde, "failed to flush gzip writer")
		}
		body = buf.Bytes()
		compressed = true
	}

	if len(body) > maxPayloadLen {
		return errors.NewWireError(nil, errors.ErrorCodeSerde, "frame payload exceeds maximum length").
			WithDetail("length", len(body))
	}

	header := uint32(len(body))
	if compressed {
		header |= compressedBit
	}

	var headerBytes [HeaderLen]byte
	binary.BigEndian.PutUint32(headerBytes[:], header)

	if _, err := w.Write(headerBytes[:]); err != nil {
		return errors.NewWireError(err, errors.ErrorCodeSerde, "failed to write frame header")
	}
	if _, err := w.Write(body); err != nil {
		return errors.NewWireError(err, errors.ErrorCodeSerde, "failed to write frame payload")
	}
	return nil
}

// Read decodes one frame from r, decompressing its payload if the
// compressed bit was set, and returns the original payload bytes.
func Read(r io.Reader) ([]byte, error) {
	var headerBytes [HeaderLen]byte
	if _, err := io.ReadFull(r, headerBytes[:]); err != nil {
		return nil, errors.NewWireError(err, errors.ErrorCodeSerde, "failed to read frame header")
	}

	header := binary.BigEndian.Uint32(headerBytes[:])
	compressed := header&compressedBit != 0
	length := header & lengthMask

	if length > maxPayloadLen {
		return nil, errors.NewWireError(nil, errors.ErrorCodeSerde, "frame header declares payload exceeding maximum length").
			WithDetail("length", length)
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, errors.NewWireError(err, errors.ErrorCodeSerde, "failed to read frame payload").
			WithDetail("declaredLength", length)
	}

	if !compressed {
		return body, nil
	}

	gz, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, errors.NewWireError(err, errors.ErrorCodeSerde, "failed to open gzip frame payload")
	}
	defer gz.Close()

	decoded, err := io.ReadAll(gz)
	if err != nil {
		return nil, errors.NewWireError(err, errors.ErrorCodeSerde, "failed to decompress frame payload")
	}
	return decoded, nil
}
