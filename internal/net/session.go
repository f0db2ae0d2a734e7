package net

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// maxMessageSize bounds one inbound websocket message.
const maxMessageSize = 64 * 1024

// Options tune every session of a server or a dialed client.
type Options struct {
	InQueueSize       int
	OutQueueSize      int
	MessagesPerSecond int           // inbound limit, 0 = unlimited
	WriteTimeout      time.Duration // per message write deadline
	ReadTimeout       time.Duration // idle limit; pings are sent at 9/10 of it, 0 = no limit
}

func (o Options) withDefaults() Options {
	if o.InQueueSize <= 0 {
		o.InQueueSize = 128
	}
	if o.OutQueueSize <= 0 {
		o.OutQueueSize = 256
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = 10 * time.Second
	}
	return o
}

// Inbound is one text message read from a session.
type Inbound struct {
	Session *Session
	Msg     string
}

// Session is one websocket connection. Network I/O runs in dedicated
// goroutines that only move strings across channels; game state is touched
// only by the goroutine that drains Inbound.
type Session struct {
	id   string
	conn *websocket.Conn
	opts Options

	IP string

	inbound chan Inbound
	out     chan string

	closeCh   chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool
	onClose   func(*Session)

	// Per-second message rate limiter (readLoop goroutine only, no lock needed)
	msgCount   int
	msgResetAt int64

	log *zap.Logger
}

func newSession(conn *websocket.Conn, id string, inbound chan Inbound, opts Options, log *zap.Logger) *Session {
	return &Session{
		id:      id,
		conn:    conn,
		opts:    opts,
		IP:      conn.RemoteAddr().String(),
		inbound: inbound,
		out:     make(chan string, opts.OutQueueSize),
		closeCh: make(chan struct{}),
		log:     log.With(zap.String("session", id)),
	}
}

// ID returns the connection id.
func (s *Session) ID() string { return s.id }

// Inbound returns the channel this session's reader feeds. Server sessions
// share one merged channel.
func (s *Session) Inbound() <-chan Inbound { return s.inbound }

// Done is closed once the session is closed.
func (s *Session) Done() <-chan struct{} { return s.closeCh }

func (s *Session) start() {
	go s.readLoop()
	go s.writeLoop()
}

// Send queues msg for the writer goroutine. It never blocks: a session whose
// outbound queue is full is disconnected.
func (s *Session) Send(msg string) {
	if s.closed.Load() {
		return
	}
	select {
	case s.out <- msg:
	default:
		s.log.Warn("輸出佇列已滿，斷開慢速連線", zap.Int("queued", len(s.out)))
		s.Close()
	}
}

// Close marks the session closed and wakes both loops without touching the
// connection; the writer sends the close frame and releases it on its way
// out. Safe to call from any goroutine, any number of times.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.closeCh)
		if s.onClose != nil {
			go s.onClose(s)
		}
	})
}

func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// allow applies the per-second inbound limit.
func (s *Session) allow(now time.Time) bool {
	if s.opts.MessagesPerSecond <= 0 {
		return true
	}
	sec := now.Unix()
	if sec != s.msgResetAt {
		s.msgCount = 0
		s.msgResetAt = sec
	}
	s.msgCount++
	return s.msgCount <= s.opts.MessagesPerSecond
}

func (s *Session) extendReadDeadline() {
	if s.opts.ReadTimeout > 0 {
		s.conn.SetReadDeadline(time.Now().Add(s.opts.ReadTimeout))
	}
}

// readLoop pushes every text message onto the inbound channel.
func (s *Session) readLoop() {
	defer s.Close()

	s.conn.SetReadLimit(maxMessageSize)
	s.extendReadDeadline()
	s.conn.SetPongHandler(func(string) error {
		s.extendReadDeadline()
		return nil
	})

	for {
		typ, data, err := s.conn.ReadMessage()
		if err != nil {
			if !s.closed.Load() {
				s.log.Debug("讀取錯誤", zap.Error(err))
			}
			return
		}
		s.extendReadDeadline()

		if typ != websocket.TextMessage {
			s.log.Debug("drop non-text message", zap.Int("type", typ))
			continue
		}
		if !s.allow(time.Now()) {
			s.log.Warn("封包速率超限，斷開連線", zap.Int("mps", s.msgCount))
			return
		}

		// Blocks this reader only, until the game loop takes the message.
		select {
		case s.inbound <- Inbound{Session: s, Msg: string(data)}:
		case <-s.closeCh:
			return
		}
	}
}

// writeLoop drains the outbound queue and keeps the connection alive with
// pings when a read timeout is configured.
func (s *Session) writeLoop() {
	defer s.conn.Close()
	defer s.Close()

	var ping <-chan time.Time
	if s.opts.ReadTimeout > 0 {
		t := time.NewTicker(s.opts.ReadTimeout * 9 / 10)
		defer t.Stop()
		ping = t.C
	}

	for {
		select {
		case msg := <-s.out:
			if !s.write(websocket.TextMessage, []byte(msg)) {
				return
			}
		case <-ping:
			if !s.write(websocket.PingMessage, nil) {
				return
			}
		case <-s.closeCh:
			s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			return
		}
	}
}

func (s *Session) write(typ int, data []byte) bool {
	s.conn.SetWriteDeadline(time.Now().Add(s.opts.WriteTimeout))
	if err := s.conn.WriteMessage(typ, data); err != nil {
		if !s.closed.Load() {
			s.log.Debug("寫入錯誤", zap.Error(err))
		}
		return false
	}
	return true
}
