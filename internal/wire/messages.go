package wire

import (
	"bytes"

	"github.com/iamNilotpal/ignite/pkg/errors"
)

// Verb identifies which engine operation a CommandRequest carries (spec
// §3's "sum over the supported verbs"). Table-scoped variants (HGET, HSET,
// HDEL, HMGET) are layered on top of the plain single-key verbs without
// changing the frame or message shape.
type Verb uint32

const (
	VerbGet Verb = iota + 1
	VerbSet
	VerbRemove
	VerbHGet
	VerbHSet
	VerbHDel
	VerbHMGet
)

// CommandRequest is the sum type over every supported verb. Only the
// fields relevant to Verb are populated; the rest are zero.
type CommandRequest struct {
	Verb  Verb
	Table string
	Key   string
	Value string
	Keys  []string
}

// NewGet builds a plain (table-less) Get request.
func NewGet(key string) CommandRequest { return CommandRequest{Verb: VerbGet, Key: key} }

// NewSet builds a plain Set request.
func NewSet(key, value string) CommandRequest {
	return CommandRequest{Verb: VerbSet, Key: key, Value: value}
}

// NewRemove builds a plain Remove request.
func NewRemove(key string) CommandRequest { return CommandRequest{Verb: VerbRemove, Key: key} }

// NewHGet builds a table-scoped get.
func NewHGet(table, key string) CommandRequest {
	return CommandRequest{Verb: VerbHGet, Table: table, Key: key}
}

// NewHSet builds a table-scoped set.
func NewHSet(table, key, value string) CommandRequest {
	return CommandRequest{Verb: VerbHSet, Table: table, Key: key, Value: value}
}

// NewHDel builds a table-scoped remove.
func NewHDel(table, key string) CommandRequest {
	return CommandRequest{Verb: VerbHDel, Table: table, Key: key}
}

// NewHMGet builds a table-scoped multi-get.
func NewHMGet(table string, keys []string) CommandRequest {
	return CommandRequest{Verb: VerbHMGet, Table: table, Keys: keys}
}

// Marshal encodes the request to its protocol-buffer byte representation.
func (r CommandRequest) Marshal() []byte {
	var buf bytes.Buffer
	writeVarint(&buf, 1, uint64(r.Verb))
	writeString(&buf, 2, r.Table)
	writeString(&buf, 3, r.Key)
	writeString(&buf, 4, r.Value)
	for _, k := range r.Keys {
		writeLenDelimited(&buf, 5, []byte(k))
	}
	return buf.Bytes()
}

// UnmarshalCommandRequest decodes data into a CommandRequest.
func UnmarshalCommandRequest(data []byte) (CommandRequest, error) {
	var req CommandRequest
	r := bytes.NewReader(data)

	for r.Len() > 0 {
		field, wireType, err := readTag(r)
		if err != nil {
			return req, errors.NewWireError(err, errors.ErrorCodeSerde, "failed to read field tag")
		}

		switch field {
		case 1:
			v, err := readVarint(r)
			if err != nil {
				return req, errors.NewWireError(err, errors.ErrorCodeSerde, "failed to read verb")
			}
			req.Verb = Verb(v)
		case 2:
			b, err := readBytes(r)
			if err != nil {
				return req, err
			}
			req.Table = string(b)
		case 3:
			b, err := readBytes(r)
			if err != nil {
				return req, err
			}
			req.Key = string(b)
		case 4:
			b, err := readBytes(r)
			if err != nil {
				return req, err
			}
			req.Value = string(b)
		case 5:
			b, err := readBytes(r)
			if err != nil {
				return req, err
			}
			req.Keys = append(req.Keys, string(b))
		default:
			if err := skipField(r, wireType); err != nil {
				return req, err
			}
		}
	}
	return req, nil
}

// KvPair is one key/value result pair, used by CommandResponse.Pairs for
// multi-key responses such as HMGET (spec §3).
type KvPair struct {
	Key   string
	Value string
}

// CommandResponse is the uniform response shape for every request verb
// (spec §3): `{ status: u32, message: string, values: [Value], pairs:
// [KvPair] }`. Status follows HTTP-style conventions (spec §4.5).
type CommandResponse struct {
	Status  uint32
	Message string
	Values  []string
	Pairs   []KvPair
}

const (
	StatusOK               uint32 = 200
	StatusNotFound         uint32 = 404
	StatusBadRequest       uint32 = 400
	StatusInternal         uint32 = 500
	StatusBackendError     uint32 = 502
	StatusUnexpectedRecord uint32 = 422
)

// Marshal encodes the response to its protocol-buffer byte representation.
func (resp CommandResponse) Marshal() []byte {
	var buf bytes.Buffer
	writeVarint(&buf, 1, uint64(resp.Status))
	writeString(&buf, 2, resp.Message)
	for _, v := range resp.Values {
		writeLenDelimited(&buf, 3, []byte(v))
	}
	for _, p := range resp.Pairs {
		var pairBuf bytes.Buffer
		writeString(&pairBuf, 1, p.Key)
		writeString(&pairBuf, 2, p.Value)
		writeLenDelimited(&buf, 4, pairBuf.Bytes())
	}
	return buf.Bytes()
}

// UnmarshalCommandResponse decodes data into a CommandResponse.
func UnmarshalCommandResponse(data []byte) (CommandResponse, error) {
	var resp CommandResponse
	r := bytes.NewReader(data)

	for r.Len() > 0 {
		field, wireType, err := readTag(r)
		if err != nil {
			return resp, errors.NewWireError(err, errors.ErrorCodeSerde, "failed to read field tag")
		}

		switch field {
		case 1:
			v, err := readVarint(r)
			if err != nil {
				return resp, errors.NewWireError(err, errors.ErrorCodeSerde, "failed to read status")
			}
			resp.Status = uint32(v)
		case 2:
			b, err := readBytes(r)
			if err != nil {
				return resp, err
			}
			resp.Message = string(b)
		case 3:
			b, err := readBytes(r)
			if err != nil {
				return resp, err
			}
			resp.Values = append(resp.Values, string(b))
		case 4:
			b, err := readBytes(r)
			if err != nil {
				return resp, err
			}
			pair, err := unmarshalKvPair(b)
			if err != nil {
				return resp, err
			}
			resp.Pairs = append(resp.Pairs, pair)
		default:
			if err := skipField(r, wireType); err != nil {
				return resp, err
			}
		}
	}
	return resp, nil
}

func unmarshalKvPair(data []byte) (KvPair, error) {
	var pair KvPair
	r := bytes.NewReader(data)
	for r.Len() > 0 {
		field, wireType, err := readTag(r)
		if err != nil {
			return pair, errors.NewWireError(err, errors.ErrorCodeSerde, "failed to read kv-pair field tag")
		}
		switch field {
		case 1:
			b, err := readBytes(r)
			if err != nil {
				return pair, err
			}
			pair.Key = string(b)
		case 2:
			b, err := readBytes(r)
			if err != nil {
				return pair, err
			}
			pair.Value = string(b)
		default:
			if err := skipField(r, wireType); err != nil {
				return pair, err
			}
		}
	}
	return pair, nil
}
