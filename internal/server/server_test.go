package server

import (
	"testing"

	"github.com/iamNilotpal/ignite/internal/duplex"
	"github.com/iamNilotpal/ignite/internal/enginecontract"
	"github.com/iamNilotpal/ignite/internal/transport"
	"github.com/iamNilotpal/ignite/internal/wire"
	"github.com/iamNilotpal/ignite/pkg/logger"
	"github.com/iamNilotpal/ignite/pkg/options"
)

// fakeEngine is a minimal in-memory enginecontract.Engine, duplicated here
// (rather than shared with internal/service's test helper) to keep this
// package's tests independent of service's internal test file.
type fakeEngine struct {
	data map[string]string
}

func newFakeEngine() *fakeEngine { return &fakeEngine{data: map[string]string{}} }

func (f *fakeEngine) Set(key, value string) error { f.data[key] = value; return nil }

func (f *fakeEngine) Get(key string) (string, bool, error) {
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

func newTestServer(t *testing.T, poolKind options.PoolKind) (*Server, string) {
	t.Helper()
	cfg := options.NewDefaultOptions()
	cfg.Server.Addr = "127.0.0.1:0"
	cfg.Pool.Kind = poolKind
	cfg.Pool.Size = 4

	srv, err := New(&cfg, newFakeEngine(), logger.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	go srv.Serve()
	t.Cleanup(func() { srv.Close() })
	return srv, srv.Addr().String()
}

func TestServeHandlesSetGetRemoveOverRealListener(t *testing.T) {
	for _, kind := range []options.PoolKind{options.PoolNaive, options.PoolSharedQueue, options.PoolWorkStealing} {
		kind := kind
		t.Run(string(kind), func(t *testing.T) {
			_, addr := newTestServer(t, kind)

			conn, err := transport.Dial(addr)
			if err != nil {
				t.Fatalf("Dial failed: %v", err)
			}
			defer conn.Close()
			stream := duplex.New(conn)

			if err := stream.WriteRequest(wire.NewSet("k1", "v1")); err != nil {
				t.Fatalf("WriteRequest(set) failed: %v", err)
			}
			resp, err := stream.ReadResponse()
			if err != nil {
				t.Fatalf("ReadResponse(set) failed: %v", err)
			}
			if resp.Status != wire.StatusOK {
				t.Fatalf("set status = %d, want 200", resp.Status)
			}

			if err := stream.WriteRequest(wire.NewGet("k1")); err != nil {
				t.Fatalf("WriteRequest(get) failed: %v", err)
			}
			resp, err = stream.ReadResponse()
			if err != nil {
				t.Fatalf("ReadResponse(get) failed: %v", err)
			}
			if resp.Status != wire.StatusOK || len(resp.Values) != 1 || resp.Values[0] != "v1" {
				t.Fatalf("get response = %+v, want status 200 value v1", resp)
			}

			if err := stream.WriteRequest(wire.NewRemove("k1")); err != nil {
				t.Fatalf("WriteRequest(remove) failed: %v", err)
			}
			resp, err = stream.ReadResponse()
			if err != nil {
				t.Fatalf("ReadResponse(remove) failed: %v", err)
			}
			if resp.Status != wire.StatusOK {
				t.Fatalf("remove status = %d, want 200", resp.Status)
			}
		})
	}
}

func TestServeReturnsNilAfterClose(t *testing.T) {
	cfg := options.NewDefaultOptions()
	cfg.Server.Addr = "127.0.0.1:0"

	srv, err := New(&cfg, newFakeEngine(), logger.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- srv.Serve() }()

	if err := srv.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if err := <-done; err != nil {
		t.Errorf("Serve returned %v after a clean Close, want nil", err)
	}
}

func TestServeHandlesMultipleSequentialRequestsOnOneConnection(t *testing.T) {
	_, addr := newTestServer(t, options.PoolSharedQueue)

	conn, err := transport.Dial(addr)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()
	stream := duplex.New(conn)

	for i := 0; i < 5; i++ {
		if err := stream.WriteRequest(wire.NewSet("k", "v")); err != nil {
			t.Fatalf("WriteRequest %d failed: %v", i, err)
		}
		if _, err := stream.ReadResponse(); err != nil {
			t.Fatalf("ReadResponse %d failed: %v", i, err)
		}
	}
}
