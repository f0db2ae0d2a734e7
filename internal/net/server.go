package net

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Server upgrades HTTP requests to websocket Sessions.
// New/dead sessions and every inbound message reach the game loop via channels.
type Server struct {
	upgrader websocket.Upgrader
	opts     Options

	newConns chan *Session
	deadCh   chan string // ids of dead sessions
	inbound  chan Inbound

	httpSrv  *http.Server
	listener net.Listener

	closeCh   chan struct{}
	closeOnce sync.Once

	log *zap.Logger
}

func NewServer(opts Options, log *zap.Logger) *Server {
	opts = opts.withDefaults()
	return &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		opts:     opts,
		newConns: make(chan *Session, 64),
		deadCh:   make(chan string, 64),
		inbound:  make(chan Inbound, opts.InQueueSize),
		closeCh:  make(chan struct{}),
		log:      log,
	}
}

// ServeHTTP upgrades the request and hands the session to the game loop.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	select {
	case <-s.closeCh:
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	default:
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("連線接受失敗", zap.Error(err))
		return
	}

	sess := newSession(conn, ulid.Make().String(), s.inbound, s.opts, s.log)
	sess.onClose = func(dead *Session) { s.NotifyDead(dead.ID()) }

	select {
	case s.newConns <- sess:
		s.log.Info(fmt.Sprintf("玩家連線  session=%s  ip=%s", sess.ID(), sess.IP))
		sess.start()
	default:
		s.log.Warn("連線佇列已滿，拒絕新連線")
		sess.onClose = nil
		sess.Close()
		conn.Close()
	}
}

// Listen binds addr and serves websocket upgrades on path in a background
// goroutine.
func (s *Server) Listen(addr, path string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	mux := http.NewServeMux()
	mux.Handle(path, s)
	s.listener = ln
	s.httpSrv = &http.Server{Handler: mux}

	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("http serve", zap.Error(err))
		}
	}()
	return nil
}

// NewSessions returns the channel of newly connected sessions.
func (s *Server) NewSessions() <-chan *Session {
	return s.newConns
}

// NotifyDead reports a dead session ID to the game loop.
func (s *Server) NotifyDead(id string) {
	select {
	case s.deadCh <- id:
	case <-s.closeCh:
	}
}

// DeadSessions returns the channel of dead session IDs.
func (s *Server) DeadSessions() <-chan string {
	return s.deadCh
}

// Inbound returns the merged channel of messages from every session.
func (s *Server) Inbound() <-chan Inbound {
	return s.inbound
}

// Shutdown stops accepting new connections. Open sessions are closed by
// their owner.
func (s *Server) Shutdown(ctx context.Context) error {
	s.closeOnce.Do(func() { close(s.closeCh) })
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// Addr returns the listener's address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}
