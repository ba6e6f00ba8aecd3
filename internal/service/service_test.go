package service

import (
	"errors"
	"testing"

	"github.com/iamNilotpal/ignite/internal/enginecontract"
	"github.com/iamNilotpal/ignite/internal/wire"
	ignerr "github.com/iamNilotpal/ignite/pkg/errors"
)

// fakeEngine is a minimal in-memory enginecontract.Engine for exercising the
// dispatcher without any real storage backend.
type fakeEngine struct {
	data    map[string]string
	failGet error
	failSet error
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{data: map[string]string{}}
}

func (f *fakeEngine) Set(key, value string) error {
	if f.failSet != nil {
		return f.failSet
	}
	f.data[key] = value
	return nil
}

func (f *fakeEngine) Get(key string) (string, bool, error) {
	if f.failGet != nil {
		return "", false, f.failGet
	}
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeEngine) Remove(key string) error {
	if _, ok := f.data[key]; !ok {
		return enginecontract.ErrKeyNotFound
	}
	delete(f.data, key)
	return nil
}

func (f *fakeEngine) Close() error { return nil }

func TestDispatchGetFound(t *testing.T) {
	e := newFakeEngine()
	e.data["k1"] = "v1"
	d := New(e, nil)

	resp := d.Dispatch(wire.NewGet("k1"))
	if resp.Status != wire.StatusOK || len(resp.Values) != 1 || resp.Values[0] != "v1" {
		t.Errorf("got %+v, want status 200 value v1", resp)
	}
}

func TestDispatchGetNotFound(t *testing.T) {
	d := New(newFakeEngine(), nil)
	resp := d.Dispatch(wire.NewGet("missing"))
	if resp.Status != wire.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.Status, wire.StatusNotFound)
	}
}

func TestDispatchSetReturnsDefaultValueOnFirstWrite(t *testing.T) {
	d := New(newFakeEngine(), nil)
	resp := d.Dispatch(wire.NewSet("k1", "v1"))
	if resp.Status != wire.StatusOK || len(resp.Values) != 1 || resp.Values[0] != "" {
		t.Errorf("got %+v, want status 200 with a single empty default value", resp)
	}
}

func TestDispatchSetReturnsPriorValueOnOverwrite(t *testing.T) {
	e := newFakeEngine()
	e.data["k1"] = "old"
	d := New(e, nil)

	resp := d.Dispatch(wire.NewSet("k1", "new"))
	if resp.Status != wire.StatusOK || len(resp.Values) != 1 || resp.Values[0] != "old" {
		t.Errorf("got %+v, want status 200 value old", resp)
	}
	if e.data["k1"] != "new" {
		t.Errorf("stored value = %q, want new", e.data["k1"])
	}
}

func TestDispatchRemove(t *testing.T) {
	e := newFakeEngine()
	e.data["k1"] = "v1"
	d := New(e, nil)

	resp := d.Dispatch(wire.NewRemove("k1"))
	if resp.Status != wire.StatusOK {
		t.Errorf("status = %d, want 200", resp.Status)
	}

	resp = d.Dispatch(wire.NewRemove("k1"))
	if resp.Status != wire.StatusNotFound {
		t.Errorf("status = %d, want 404 for already-removed key", resp.Status)
	}
}

func TestDispatchTableScopedVerbsNamespaceKeys(t *testing.T) {
	d := New(newFakeEngine(), nil)

	d.Dispatch(wire.NewHSet("t1", "k1", "v1"))
	resp := d.Dispatch(wire.NewHGet("t1", "k1"))
	if resp.Status != wire.StatusOK || resp.Values[0] != "v1" {
		t.Errorf("got %+v, want status 200 value v1", resp)
	}

	// Same key under a different table must not collide.
	resp = d.Dispatch(wire.NewHGet("t2", "k1"))
	if resp.Status != wire.StatusNotFound {
		t.Errorf("status = %d, want 404 (table-scoped isolation)", resp.Status)
	}

	resp = d.Dispatch(wire.NewHDel("t1", "k1"))
	if resp.Status != wire.StatusOK {
		t.Errorf("status = %d, want 200", resp.Status)
	}
}

func TestDispatchHMGetSkipsAbsentKeys(t *testing.T) {
	e := newFakeEngine()
	d := New(e, nil)

	d.Dispatch(wire.NewHSet("t1", "k1", "v1"))
	d.Dispatch(wire.NewHSet("t1", "k3", "v3"))

	resp := d.Dispatch(wire.NewHMGet("t1", []string{"k1", "k2", "k3"}))
	if resp.Status != wire.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Status)
	}
	if len(resp.Pairs) != 2 {
		t.Fatalf("pairs = %+v, want 2 entries", resp.Pairs)
	}
	want := map[string]string{"k1": "v1", "k3": "v3"}
	for _, p := range resp.Pairs {
		if want[p.Key] != p.Value {
			t.Errorf("pair %+v doesn't match expected %v", p, want)
		}
	}
}

func TestDispatchUnknownVerb(t *testing.T) {
	d := New(newFakeEngine(), nil)
	resp := d.Dispatch(wire.CommandRequest{Verb: 0})
	if resp.Status != wire.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.Status)
	}
}

func TestDispatchBackendErrorMapsToBackendStatus(t *testing.T) {
	e := newFakeEngine()
	e.failGet = ignerr.NewStorageError(errors.New("disk full"), ignerr.ErrorCodeBackend, "backend failure")
	d := New(e, nil)

	resp := d.Dispatch(wire.NewGet("k1"))
	if resp.Status != wire.StatusBackendError {
		t.Errorf("status = %d, want %d", resp.Status, wire.StatusBackendError)
	}
}

func TestDispatchUnexpectedCommandTypeMapsToUnexpectedRecordStatus(t *testing.T) {
	e := newFakeEngine()
	e.failGet = ignerr.NewUnexpectedCommandTypeError(1, 0, 10)
	d := New(e, nil)

	resp := d.Dispatch(wire.NewGet("k1"))
	if resp.Status != wire.StatusUnexpectedRecord {
		t.Errorf("status = %d, want %d", resp.Status, wire.StatusUnexpectedRecord)
	}
}
