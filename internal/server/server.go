// Package server exposes the daemon's operations to external processes over
// JSON-RPC 2.0: newline-delimited over a unix socket for local clients, plus
// an optional HTTP/WebSocket bridge for graphical front-ends. The server
// never touches the alarm store or the wake timer; it only talks to the
// scheduler loop.
package server

import (
	"context"
	"net"
	"os"
	"sync"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"
	"github.com/creachadair/jrpc2/handler"
	"github.com/reveil-sh/reveil/pkg/logger"
)

// Server accepts client connections on a unix socket and runs one jrpc2
// server (push-capable) per connection.
type Server struct {
	log        logger.Logger
	methods    handler.Map
	notifier   *Notifier
	socketPath string

	mu       sync.Mutex
	listener net.Listener
}

// NewServer creates a server for the given method set. Connections register
// with the notifier so alarm.fired pushes reach every connected client.
func NewServer(l logger.Logger, methods handler.Map, notifier *Notifier, socketPath string) *Server {
	if socketPath == "" {
		socketPath = SocketPath()
	}
	return &Server{
		log:        l,
		methods:    methods,
		notifier:   notifier,
		socketPath: socketPath,
	}
}

// Start listens on the unix socket and accepts connections until the context
// is canceled. Each connection is served by its own jrpc2 server goroutine.
func (s *Server) Start(ctx context.Context) error {
	_ = os.Remove(s.socketPath)
	l, err := net.ListenUnix("unix", &net.UnixAddr{Name: s.socketPath, Net: "unix"})
	if err != nil {
		return err
	}
	_ = os.Chmod(s.socketPath, 0o666)

	s.mu.Lock()
	s.listener = l
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()

	s.log.Info("listening on %s", s.socketPath)
	for {
		conn, err := l.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			s.log.Error("accept: %v", err)
			continue
		}
		go s.serveConn(conn)
	}
}

func (s *Server) serveConn(conn net.Conn) {
	srv := jrpc2.NewServer(s.methods, &jrpc2.ServerOptions{AllowPush: true})
	srv.Start(channel.Line(conn, conn))
	s.notifier.Register(srv)
	_ = srv.Wait()
	s.notifier.Unregister(srv)
	_ = conn.Close()
}

// Shutdown closes the listener and removes the socket file. Connections that
// are mid-call finish via the scheduler's own shutdown handling.
func (s *Server) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		if err := s.listener.Close(); err != nil {
			s.log.Error("closing listener: %v", err)
		}
		s.listener = nil
	}
	if err := os.Remove(s.socketPath); err != nil && !os.IsNotExist(err) {
		s.log.Error("removing socket file: %v", err)
	}
}
