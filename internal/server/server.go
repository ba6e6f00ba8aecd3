// Package server implements the accept loop of spec §4.6: bind a listener,
// and for each accepted connection submit a job to the configured worker
// pool that drives the connection's duplex stream to completion.
package server

import (
	"errors"
	"io"
	"net"

	"github.com/iamNilotpal/ignite/internal/duplex"
	"github.com/iamNilotpal/ignite/internal/enginecontract"
	"github.com/iamNilotpal/ignite/internal/pool"
	"github.com/iamNilotpal/ignite/internal/service"
	"github.com/iamNilotpal/ignite/internal/transport"
	"github.com/iamNilotpal/ignite/pkg/options"
	"go.uber.org/zap"
)

// Server owns a listener, a worker pool, and the dispatcher every
// connection's requests are served through.
type Server struct {
	listener   transport.Listener
	pool       pool.Pool
	dispatcher *service.Dispatcher
	log        *zap.SugaredLogger
}

// New binds a listener per cfg.Server (plain TCP, or TLS when both
// TLSCertFile/TLSKeyFile are set) and builds the configured pool variant.
func New(cfg *options.Options, engine enginecontract.Engine, log *zap.SugaredLogger) (*Server, error) {
	var ln transport.Listener
	var err error

	if cfg.Server.TLSCertFile != "" && cfg.Server.TLSKeyFile != "" {
		ln, err = transport.ListenTLS(cfg.Server.Addr, cfg.Server.TLSCertFile, cfg.Server.TLSKeyFile)
	} else {
		ln, err = transport.Listen(cfg.Server.Addr)
	}
	if err != nil {
		return nil, err
	}

	return &Server{
		listener:   ln,
		pool:       newPool(cfg.Pool, log),
		dispatcher: service.New(engine, log),
		log:        log,
	}, nil
}

func newPool(cfg *options.PoolOptions, log *zap.SugaredLogger) pool.Pool {
	switch cfg.Kind {
	case options.PoolNaive:
		return pool.NewNaive(log)
	case options.PoolWorkStealing:
		return pool.NewWorkStealing(int64(cfg.Size), log)
	default:
		return pool.NewSharedQueue(cfg.Size, log)
	}
}

// Addr returns the address the server is bound to.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Serve runs the accept loop until the listener is closed, submitting one
// job per accepted connection. It returns the error that ended the loop
// (nil on a clean Close).
func (s *Server) Serve() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}

		s.pool.Submit(func() { s.handleConnection(conn) })
	}
}

// handleConnection drives one connection's duplex stream to completion:
// read a request, dispatch it, write the response, repeat. It exits on
// transport EOF or a decode error, logging and dropping the connection
// rather than propagating the failure to the listener (spec §4.6).
func (s *Server) handleConnection(conn net.Conn) {
	stream := duplex.New(conn)
	defer stream.Close()

	for {
		req, err := stream.ReadRequest()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.log.Debugw("dropping connection after request decode failure", "remote", conn.RemoteAddr(), "error", err)
			}
			return
		}

		resp := s.dispatcher.Dispatch(req)
		if err := stream.WriteResponse(resp); err != nil {
			s.log.Debugw("dropping connection after response write failure", "remote", conn.RemoteAddr(), "error", err)
			return
		}
	}
}

// Close stops accepting new connections and waits for in-flight jobs to
// finish.
func (s *Server) Close() error {
	lnErr := s.listener.Close()
	poolErr := s.pool.Close()
	if lnErr != nil {
		return lnErr
	}
	return poolErr
}
