// Package client implements the synchronous request/response facade of
// spec §4.8: one duplex stream to a server, with Get/Set/Remove helpers
// that map response status codes back to value/none/error.
package client

import (
	stdErrors "errors"
	"io"

	"github.com/iamNilotpal/ignite/internal/duplex"
	"github.com/iamNilotpal/ignite/internal/transport"
	"github.com/iamNilotpal/ignite/internal/wire"
	"github.com/iamNilotpal/ignite/pkg/errors"
)

// ErrNoResponse is returned by Execute when the stream closed without
// delivering a response to a sent request (spec §4.8's
// "internal(\"no response\")").
var ErrNoResponse = stdErrors.New("client: no response received")

// Client owns a duplex stream to one server.
type Client struct {
	stream *duplex.Stream
}

// Dial connects to addr over plain TCP and wraps the connection in a
// duplex stream.
func Dial(addr string) (*Client, error) {
	conn, err := transport.Dial(addr)
	if err != nil {
		return nil, err
	}
	return &Client{stream: duplex.New(conn)}, nil
}

// DialTLS connects to addr over TLS.
func DialTLS(addr string, insecureSkipVerify bool) (*Client, error) {
	conn, err := transport.DialTLS(addr, insecureSkipVerify)
	if err != nil {
		return nil, err
	}
	return &Client{stream: duplex.New(conn)}, nil
}

// Execute sends req and awaits exactly one response.
func (c *Client) Execute(req wire.CommandRequest) (wire.CommandResponse, error) {
	if err := c.stream.WriteRequest(req); err != nil {
		return wire.CommandResponse{}, err
	}

	resp, err := c.stream.ReadResponse()
	if err != nil {
		if stdErrors.Is(err, io.EOF) {
			return wire.CommandResponse{}, ErrNoResponse
		}
		return wire.CommandResponse{}, err
	}
	return resp, nil
}

// Get retrieves key. The returned bool is false when the server reports
// the key as absent; that is not an error condition.
func (c *Client) Get(key string) (string, bool, error) {
	resp, err := c.Execute(wire.NewGet(key))
	if err != nil {
		return "", false, err
	}
	switch resp.Status {
	case wire.StatusOK:
		if len(resp.Values) == 0 {
			return "", false, nil
		}
		return resp.Values[0], true, nil
	case wire.StatusNotFound:
		return "", false, nil
	default:
		return "", false, responseError(resp)
	}
}

// Set stores key=value, returning the prior value if one existed. The
// server answers with an empty value when there was no prior one, so an
// empty prior value is reported as hadPrior false.
func (c *Client) Set(key, value string) (prior string, hadPrior bool, err error) {
	resp, err := c.Execute(wire.NewSet(key, value))
	if err != nil {
		return "", false, err
	}
	if resp.Status != wire.StatusOK {
		return "", false, responseError(resp)
	}
	if len(resp.Values) == 0 || resp.Values[0] == "" {
		return "", false, nil
	}
	return resp.Values[0], true, nil
}

// Remove deletes key. If the key was never set it returns a
// *errors.WireError whose code is ErrorCodeIndexKeyNotFound.
func (c *Client) Remove(key string) error {
	resp, err := c.Execute(wire.NewRemove(key))
	if err != nil {
		return err
	}
	if resp.Status != wire.StatusOK {
		return responseError(resp)
	}
	return nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.stream.Close()
}

func responseError(resp wire.CommandResponse) error {
	if resp.Status == wire.StatusNotFound {
		return errors.NewKeyNotFoundWireError("", "")
	}
	return errors.NewWireError(nil, errors.ErrorCodeSerde, resp.Message).WithDetail("status", resp.Status)
}
