package server

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/voxarena/server/internal/action"
	"github.com/voxarena/server/internal/component"
	"github.com/voxarena/server/internal/handler"
	"github.com/voxarena/server/internal/net"
	"github.com/voxarena/server/internal/net/packet"
	"go.uber.org/zap"
)

// waitFor reads sess until match accepts a decoded action or ctx expires.
func waitFor(ctx context.Context, t *testing.T, sess *net.Session, match func(action.Action) bool) action.Action {
	t.Helper()
	codec := packet.NewCodec()
	for {
		select {
		case in := <-sess.Inbound():
			if a, ok := codec.Decode(in.Msg); ok && match(a) {
				return a
			}
		case <-ctx.Done():
			t.Fatal("timed out waiting for message")
			return nil
		}
	}
}

func isLocalSpawn(a action.Action) bool { return a.Kind() == action.KindSpawnLocalAvatar }

func TestWebSocketRelay(t *testing.T) {
	log := zap.NewNop()
	srv := net.NewServer(net.Options{}, log)
	hs := httptest.NewServer(srv)
	defer hs.Close()
	defer srv.Shutdown(context.Background())

	opts := testOptions
	opts.SpawnDelay = 0
	hub := NewHub(handler.NewDispatcher(handler.Deps{}), testLevel(t), opts, log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	done := make(chan struct{})
	go func() {
		hub.Run(ctx, srv, 10*time.Millisecond)
		close(done)
	}()
	defer func() {
		cancel()
		<-done
	}()

	url := "ws" + strings.TrimPrefix(hs.URL, "http")
	a, err := net.Dial(ctx, url, net.Options{}, log)
	if err != nil {
		t.Fatalf("dial A: %v", err)
	}
	defer a.Close()
	avatarA := waitFor(ctx, t, a, isLocalSpawn).(*action.SpawnLocalAvatar).AvatarID

	b, err := net.Dial(ctx, url, net.Options{}, log)
	if err != nil {
		t.Fatalf("dial B: %v", err)
	}
	defer b.Close()
	waitFor(ctx, t, b, isLocalSpawn)

	want := component.Vec3{X: 1.25, Y: 0, Z: 3.5}
	msg, err := packet.NewCodec().Encode(&action.AvatarTransform{ID: avatarA, Position: want})
	if err != nil {
		t.Fatal(err)
	}
	a.Send(msg)

	waitFor(ctx, t, b, func(got action.Action) bool {
		tr, ok := got.(*action.AvatarTransform)
		return ok && tr.ID == avatarA && tr.Position == want
	})
}

// A client that hangs up before the hub has registered it must not leave a
// player behind, whichever of the connect and dead notices the hub reads first.
func TestEarlyHangupLeavesNoPlayer(t *testing.T) {
	log := zap.NewNop()
	opts := testOptions
	opts.SpawnDelay = 0

	for trial := 0; trial < 10; trial++ {
		srv := net.NewServer(net.Options{}, log)
		hs := httptest.NewServer(srv)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		url := "ws" + strings.TrimPrefix(hs.URL, "http")
		c, err := net.Dial(ctx, url, net.Options{}, log)
		if err != nil {
			t.Fatalf("trial %d: dial: %v", trial, err)
		}
		c.Close()

		// Both notices are queued before the hub starts reading.
		for len(srv.NewSessions()) == 0 || len(srv.DeadSessions()) == 0 {
			if ctx.Err() != nil {
				t.Fatalf("trial %d: server never reported the hangup", trial)
			}
			time.Sleep(5 * time.Millisecond)
		}

		hub := NewHub(handler.NewDispatcher(handler.Deps{}), testLevel(t), opts, log)
		runCtx, stop := context.WithTimeout(ctx, 100*time.Millisecond)
		hub.Run(runCtx, srv, 10*time.Millisecond)
		stop()

		if n := hub.PlayerCount(); n != 0 {
			t.Errorf("trial %d: %d players left after hangup", trial, n)
		}
		if n := hub.State().Avatars().Len(); n != 0 {
			t.Errorf("trial %d: %d avatars left after hangup", trial, n)
		}

		srv.Shutdown(context.Background())
		hs.Close()
		cancel()
	}
}
