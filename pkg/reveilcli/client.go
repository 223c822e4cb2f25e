// Package reveilcli is the client library for the reveil daemon. It speaks
// JSON-RPC 2.0 over the daemon's unix socket and dispatches alarm.fired push
// notifications to registered handlers.
package reveilcli

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"

	"github.com/reveil-sh/reveil/common"
)

// Client is a connection to the reveil daemon.
type Client struct {
	conn net.Conn
	rpc  *jrpc2.Client
	d    *Dispatcher
	done chan struct{}
}

// NewClient connects to the daemon on its default socket, honoring
// $REVEIL_SOCKET_PATH.
func NewClient() (*Client, error) {
	return NewClientAt(SocketPath())
}

// NewClientAt connects to the daemon at the given socket path.
func NewClientAt(socketPath string) (*Client, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("error connecting to daemon: %s", err.Error())
	}
	return newClient(conn, channel.Line(conn, conn)), nil
}

func newClient(conn net.Conn, ch channel.Channel) *Client {
	c := &Client{conn: conn, d: &Dispatcher{}, done: make(chan struct{})}
	watched := &watchChannel{Channel: ch, done: c.done}
	c.rpc = jrpc2.NewClient(watched, &jrpc2.ClientOptions{
		OnNotify: c.d.process,
	})
	return c
}

// watchChannel closes done when the transport ends, either side first.
type watchChannel struct {
	channel.Channel
	done chan struct{}
	once sync.Once
}

func (w *watchChannel) Recv() ([]byte, error) {
	msg, err := w.Channel.Recv()
	if err != nil {
		w.once.Do(func() { close(w.done) })
	}
	return msg, err
}

// SocketPath returns the daemon socket path, honoring $REVEIL_SOCKET_PATH.
func SocketPath() string {
	if p := os.Getenv(common.SocketPathEnv); p != "" {
		return p
	}
	return filepath.Join(os.TempDir(), "reveil.sock")
}

// Wait blocks until the connection is closed, either by Close or by the
// daemon going away. Notifications keep dispatching while waiting.
func (c *Client) Wait() {
	<-c.done
}

// Close terminates the connection.
func (c *Client) Close() error {
	err := c.rpc.Close()
	_ = c.conn.Close()
	return err
}

func invoke[T any](ctx context.Context, c *Client, method string, params any) (*T, error) {
	rsp, err := c.rpc.Call(ctx, method, params)
	if err != nil {
		return nil, fmt.Errorf("failed to invoke %s: %s", method, err.Error())
	}
	var v T
	if err := rsp.UnmarshalResult(&v); err != nil {
		return nil, fmt.Errorf("failed to read %s: %s", method, err.Error())
	}
	return &v, nil
}

// Dispatcher routes push notifications to registered handlers by method name.
type Dispatcher struct {
	handlers map[string]Handler
}

// Handler defines the interface for processing daemon notifications.
type Handler interface {
	Handle(json.RawMessage) error
}

// AddHandler registers a handler for the given notification method,
// replacing any previous one.
func (c *Client) AddHandler(method string, h Handler) {
	if c.d.handlers == nil {
		c.d.handlers = make(map[string]Handler)
	}
	c.d.handlers[method] = h
}

func (d *Dispatcher) process(req *jrpc2.Request) {
	h, ok := d.handlers[req.Method()]
	if !ok {
		return
	}
	var raw json.RawMessage
	if err := req.UnmarshalParams(&raw); err != nil {
		return
	}
	// Handler errors have nowhere useful to go on a push path.
	_ = h.Handle(raw)
}

// FiredHandler invokes a callback for every alarm.fired notification.
type FiredHandler struct {
	Callback func(*common.FiredNotification) error
}

// NewFiredHandler creates a handler for alarm.fired notifications.
func NewFiredHandler(callback func(*common.FiredNotification) error) *FiredHandler {
	return &FiredHandler{Callback: callback}
}

// Handle unmarshals the notification payload and invokes the callback.
func (h *FiredHandler) Handle(m json.RawMessage) error {
	var v common.FiredNotification
	if err := json.Unmarshal(m, &v); err != nil {
		return err
	}
	return h.Callback(&v)
}
