// Package service dispatches a decoded wire.CommandRequest to an
// enginecontract.Engine and builds the corresponding wire.CommandResponse
// (spec §4.5). Table-scoped verbs (HGET/HSET/HDEL/HMGET) are layered onto
// the base single-key engine contract by namespacing the key with its
// table, never by changing the engine interface or the frame/message
// shapes (spec §3's "may be layered atop without changing the framing").
package service

import (
	stdErrors "errors"
	"strings"

	"github.com/iamNilotpal/ignite/internal/enginecontract"
	"github.com/iamNilotpal/ignite/internal/wire"
	"github.com/iamNilotpal/ignite/pkg/errors"
	"go.uber.org/zap"
)

// tableKeySeparator namespaces a table-scoped key, matching SPEC_FULL.md's
// `table + "\x00" + key` scheme. The join is unambiguous only while table
// names contain no NUL byte; the wire decoder does not reject NUL.
const tableKeySeparator = "\x00"

// Dispatcher serves CommandRequests against one engine.
type Dispatcher struct {
	engine enginecontract.Engine
	log    *zap.SugaredLogger
}

// New builds a Dispatcher over engine.
func New(engine enginecontract.Engine, log *zap.SugaredLogger) *Dispatcher {
	return &Dispatcher{engine: engine, log: log}
}

// Dispatch matches req's verb, invokes the corresponding engine operation,
// and returns an HTTP-style response. It never returns a Go error itself —
// every failure is folded into the response's Status/Message, per spec
// §4.5/§7's "the service converts engine errors to a response with
// non-2xx status".
func (d *Dispatcher) Dispatch(req wire.CommandRequest) wire.CommandResponse {
	switch req.Verb {
	case wire.VerbGet:
		return d.get(req.Key)
	case wire.VerbSet:
		return d.set(req.Key, req.Value)
	case wire.VerbRemove:
		return d.remove(req.Key)
	case wire.VerbHGet:
		return d.get(scopedKey(req.Table, req.Key))
	case wire.VerbHSet:
		return d.set(scopedKey(req.Table, req.Key), req.Value)
	case wire.VerbHDel:
		return d.remove(scopedKey(req.Table, req.Key))
	case wire.VerbHMGet:
		return d.hmget(req.Table, req.Keys)
	default:
		return wire.CommandResponse{Status: wire.StatusBadRequest, Message: "unknown verb"}
	}
}

func scopedKey(table, key string) string {
	return table + tableKeySeparator + key
}

func (d *Dispatcher) get(key string) wire.CommandResponse {
	value, ok, err := d.engine.Get(key)
	if err != nil {
		return d.internalError("get", err)
	}
	if !ok {
		return wire.CommandResponse{Status: wire.StatusNotFound, Message: "key not found"}
	}
	return wire.CommandResponse{Status: wire.StatusOK, Values: []string{value}}
}

// set stores key=value and reports the prior value as the response's
// single value — always exactly one value, defaulting to "" when there
// was no prior value, matching the HSET behavior described in DESIGN.md.
func (d *Dispatcher) set(key, value string) wire.CommandResponse {
	prior, _, err := d.engine.Get(key)
	if err != nil {
		return d.internalError("set", err)
	}
	if err := d.engine.Set(key, value); err != nil {
		return d.internalError("set", err)
	}
	return wire.CommandResponse{Status: wire.StatusOK, Values: []string{prior}}
}

func (d *Dispatcher) remove(key string) wire.CommandResponse {
	err := d.engine.Remove(key)
	if err == nil {
		return wire.CommandResponse{Status: wire.StatusOK}
	}
	if stdErrors.Is(err, enginecontract.ErrKeyNotFound) {
		return wire.CommandResponse{Status: wire.StatusNotFound, Message: "key not found"}
	}
	return d.internalError("remove", err)
}

func (d *Dispatcher) hmget(table string, keys []string) wire.CommandResponse {
	pairs := make([]wire.KvPair, 0, len(keys))
	for _, key := range keys {
		value, ok, err := d.engine.Get(scopedKey(table, key))
		if err != nil {
			return d.internalError("hmget", err)
		}
		if ok {
			pairs = append(pairs, wire.KvPair{Key: key, Value: value})
		}
	}
	return wire.CommandResponse{Status: wire.StatusOK, Pairs: pairs}
}

func (d *Dispatcher) internalError(verb string, err error) wire.CommandResponse {
	if d.log != nil {
		d.log.Errorw("engine operation failed", "verb", verb, "error", err)
	}

	code := errors.GetErrorCode(err)
	if we, ok := errors.AsWireError(err); ok {
		code = we.Code()
	}

	status := wire.StatusInternal
	switch code {
	case errors.ErrorCodeBackend:
		status = wire.StatusBackendError
	case errors.ErrorCodeUnexpectedCommandType, errors.ErrorCodeSegmentCorrupted, errors.ErrorCodeIndexCorrupted:
		status = wire.StatusUnexpectedRecord
	}

	msg := err.Error()
	if idx := strings.IndexByte(msg, '\n'); idx >= 0 {
		msg = msg[:idx]
	}
	return wire.CommandResponse{Status: status, Message: msg}
}
