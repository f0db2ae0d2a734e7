package net

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Dial connects to a server and returns a running session. Messages from the
// server arrive on the session's own Inbound channel.
func Dial(ctx context.Context, url string, opts Options, log *zap.Logger) (*Session, error) {
	opts = opts.withDefaults()
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	sess := newSession(conn, ulid.Make().String(), make(chan Inbound, opts.InQueueSize), opts, log)
	sess.start()
	return sess, nil
}
