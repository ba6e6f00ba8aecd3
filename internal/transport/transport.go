// Package transport adapts plain TCP and TLS listeners/dialers to the same
// io.ReadWriteCloser contract the duplex stream needs (spec §4.6, §6). TLS
// certificate provisioning (generation, rotation, chain verification) is out
// of scope; this package only wires a *tls.Config built from an already
// issued cert/key pair into net.Listen/tls.Dial.
package transport

import (
	"crypto/tls"
	"net"

	"github.com/iamNilotpal/ignite/pkg/errors"
)

// Listener accepts incoming connections, each satisfying net.Conn (which in
// turn satisfies io.ReadWriteCloser).
type Listener interface {
	Accept() (net.Conn, error)
	Addr() net.Addr
	Close() error
}

// Listen binds a plain TCP listener on addr.
func Listen(addr string) (Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.NewWireError(err, errors.ErrorCodeIO, "failed to bind listener").WithDetail("addr", addr)
	}
	return ln, nil
}

// ListenTLS binds a TLS listener on addr using the certificate/key pair at
// certFile/keyFile.
func ListenTLS(addr, certFile, keyFile string) (Listener, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, errors.NewWireError(err, errors.ErrorCodeIO, "failed to load TLS key pair").
			WithDetail("certFile", certFile).
			WithDetail("keyFile", keyFile)
	}

	config := &tls.Config{Certificates: []tls.Certificate{cert}, MinVersion: tls.VersionTLS12}
	ln, err := tls.Listen("tcp", addr, config)
	if err != nil {
		return nil, errors.NewWireError(err, errors.ErrorCodeIO, "failed to bind TLS listener").WithDetail("addr", addr)
	}
	return ln, nil
}

// Dial connects to addr over plain TCP.
func Dial(addr string) (net.Conn, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, errors.NewWireError(err, errors.ErrorCodeIO, "failed to dial server").WithDetail("addr", addr)
	}
	return conn, nil
}

// DialTLS connects to addr over TLS. insecureSkipVerify exists only to make
// local development against a self-signed cert practical — it is never set
// true from the CLI entrypoints' default configuration.
func DialTLS(addr string, insecureSkipVerify bool) (net.Conn, error) {
	config := &tls.Config{InsecureSkipVerify: insecureSkipVerify, MinVersion: tls.VersionTLS12}
	conn, err := tls.Dial("tcp", addr, config)
	if err != nil {
		return nil, errors.NewWireError(err, errors.ErrorCodeIO, "failed to dial TLS server").WithDetail("addr", addr)
	}
	return conn, nil
}
