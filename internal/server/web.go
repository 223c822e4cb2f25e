package server

import (
	"context"
	"net/http"
	"time"

	cws "github.com/coder/websocket"
	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"
	"github.com/creachadair/jrpc2/jhttp"
	"github.com/reveil-sh/reveil/pkg/logger"
)

// WebServer is the optional HTTP bridge for graphical clients: plain
// JSON-RPC over POST at /jsonrpc and a push-capable WebSocket endpoint at
// /jsonrpc/ws. Both require the configured Bearer token.
type WebServer struct {
	log      logger.Logger
	methods  handler.Map
	notifier *Notifier
	addr     string
	secret   string

	bridge jhttp.Bridge
	server *http.Server
}

// NewWebServer creates the bridge. addr is the listen address; secret must
// be non-empty or every request is rejected.
func NewWebServer(l logger.Logger, methods handler.Map, notifier *Notifier, addr, secret string) *WebServer {
	ws := &WebServer{
		log:      l,
		methods:  methods,
		notifier: notifier,
		addr:     addr,
		secret:   secret,
	}
	ws.bridge = jhttp.NewBridge(methods, nil)
	return ws
}

func (s *WebServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/jsonrpc", requireToken(s.secret, s.bridge))
	mux.Handle("/jsonrpc/ws", requireToken(s.secret, http.HandlerFunc(s.serveWS)))
	return mux
}

// serveWS upgrades the connection and serves JSON-RPC over it with push
// enabled, registering with the notifier for alarm.fired broadcasts.
func (s *WebServer) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := cws.Accept(w, r, nil)
	if err != nil {
		s.log.Error("websocket accept: %v", err)
		return
	}
	ch := &wsChannel{conn: conn, ctx: r.Context()}
	srv := jrpc2.NewServer(s.methods, &jrpc2.ServerOptions{AllowPush: true})
	srv.Start(ch)
	s.notifier.Register(srv)
	_ = srv.Wait()
	s.notifier.Unregister(srv)
	_ = ch.Close()
}

// Start serves HTTP until the listener fails or Shutdown is called.
func (s *WebServer) Start() error {
	s.server = &http.Server{Addr: s.addr, Handler: s.handler()}
	s.log.Info("http bridge listening on %s", s.addr)
	err := s.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the HTTP server and closes the jrpc2 bridge.
func (s *WebServer) Shutdown(ctx context.Context) error {
	var err error
	if s.server != nil {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		err = s.server.Shutdown(ctx)
	}
	_ = s.bridge.Close()
	return err
}
