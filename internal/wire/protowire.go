// Package wire defines the request/response message schema carried inside
// each frame (spec §3 "Wire-side types") and a hand-rolled encoder/decoder
// that speaks the protocol buffer wire format directly.
//
// A generated protoc-gen-go client could decode these bytes against a
// matching .proto schema (none is kept in this repository; the field
// numbers live in messages.go) — this implementation skips code generation and encodes the same tag/varint/
// length-delimited layout itself, since there is no way to invoke protoc
// here to validate generated code. The varint algorithm protobuf uses is
// bit-for-bit the same base-128 continuation encoding encoding/binary's
// Uvarint/PutUvarint already implement, so the primitives below build
// directly on the standard library rather than reimplementing LEB128.
package wire

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/iamNilotpal/ignite/pkg/errors"
)

// Protobuf wire types used by this schema.
const (
	wireVarint = 0
	wireBytes  = 2
)

func writeTag(buf *bytes.Buffer, field int, wireType int) {
	tag := uint64(field)<<3 | uint64(wireType)
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], tag)
	buf.Write(tmp[:n])
}

func writeVarint(buf *bytes.Buffer, field int, v uint64) {
	writeTag(buf, field, wireVarint)
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	buf.Write(tmp[:n])
}

func writeString(buf *bytes.Buffer, field int, s string) {
	if s == "" {
		return
	}
	writeLenDelimited(buf, field, []byte(s))
}

// writeLenDelimited writes a length-delimited field: tag, length varint,
// raw bytes.
func writeLenDelimited(buf *bytes.Buffer, field int, data []byte) {
	writeTag(buf, field, wireBytes)
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], uint64(len(data)))
	buf.Write(tmp[:n])
	buf.Write(data)
}

func readTag(r *bytes.Reader) (field int, wireType int, err error) {
	tag, err := binary.ReadUvarint(r)
	if err != nil {
		return 0, 0, err
	}
	return int(tag >> 3), int(tag & 0x7), nil
}

func readVarint(r *bytes.Reader) (uint64, error) {
	return binary.ReadUvarint(r)
}

func readBytes(r *bytes.Reader) ([]byte, error) {
	length, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errors.NewWireError(err, errors.ErrorCodeSerde, "truncated length-delimited field")
	}
	return buf, nil
}

// skipField discards the value of a field whose number this decoder does
// not recognize, preserving protobuf's forward-compatibility contract.
func skipField(r *bytes.Reader, wireType int) error {
	switch wireType {
	case wireVarint:
		_, err := readVarint(r)
		return err
	case wireBytes:
		_, err := readBytes(r)
		return err
	default:
		return errors.NewWireError(nil, errors.ErrorCodeSerde, "unsupported wire type").WithDetail("wireType", wireType)
	}
}
