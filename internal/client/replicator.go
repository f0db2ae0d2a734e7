// Package client is the client half of replication: it keeps a local world
// replica in sync with the server and forwards the local avatar's actions.
package client

import (
	"context"
	"time"

	"github.com/voxarena/server/internal/action"
	"github.com/voxarena/server/internal/component"
	"github.com/voxarena/server/internal/core/ecs"
	"github.com/voxarena/server/internal/data"
	"github.com/voxarena/server/internal/handler"
	"github.com/voxarena/server/internal/net"
	"github.com/voxarena/server/internal/net/packet"
	"github.com/voxarena/server/internal/system"
	"github.com/voxarena/server/internal/world"
	"go.uber.org/zap"
)

// Conn is the upstream connection. *net.Session implements it.
type Conn interface {
	Send(msg string)
}

// Options bound the frame delta handed to Tick.
type Options struct {
	MinFrameTime time.Duration
	MaxFrameTime time.Duration
}

// Replicator owns the client world. Render-driven: call Tick once per frame
// and Receive for every server message, both from the same goroutine.
type Replicator struct {
	state *world.State
	codec *packet.Codec
	conn  Conn
	opts  Options

	localID  string
	lastSent action.AvatarTransform
	hasSent  bool

	log *zap.Logger
}

func NewReplicator(conn Conn, d *handler.Dispatcher, level *data.Level, opts Options, log *zap.Logger) *Replicator {
	r := &Replicator{
		state: world.NewState(d),
		codec: packet.NewCodec(),
		conn:  conn,
		opts:  opts,
		log:   log,
	}
	w := r.state.World()
	r.state.Register(system.NewInputSystem(w))
	r.state.Register(system.NewShooterSystem(w, r.state.Weapons(), r, system.NewUUID, log))
	r.state.Register(system.NewMovementSystem(w, level))
	r.state.Register(system.NewPickupSystem(w, r))
	r.state.Register(system.NewProjectileSystem(w, level, r, log))
	r.state.Register(system.NewEffectsSystem(w))
	r.state.Register(system.NewSoundSystem(w))
	r.state.Register(system.NewCleanupSystem())
	return r
}

func (r *Replicator) State() *world.State { return r.state }

// LocalID returns the id of the avatar this client controls, or "".
func (r *Replicator) LocalID() string { return r.localID }

// Local returns the controlled avatar, or nil before the server spawned it.
func (r *Replicator) Local() *ecs.Entity {
	if r.localID == "" {
		return nil
	}
	return r.state.Get(r.localID)
}

// Input returns the input component of the controlled avatar, or nil.
func (r *Replicator) Input() *component.Input {
	if e := r.Local(); e != nil {
		return e.Input
	}
	return nil
}

// Receive decodes one server message and applies it immediately.
func (r *Replicator) Receive(msg string) {
	a, ok := r.codec.Decode(msg)
	if !ok {
		kind, _ := packet.ParseKind(msg)
		r.log.Debug("drop undecodable message", zap.Stringer("kind", kind), zap.Int("len", len(msg)))
		return
	}
	if spawn, ok := a.(*action.SpawnLocalAvatar); ok {
		r.localID = spawn.AvatarID
		r.hasSent = false
	}
	if err := r.state.Apply(a); err != nil {
		r.log.Error("apply server action", zap.Error(err))
	}
}

// Tick advances the replica by one frame, then sends the local avatar's
// transform if it changed and every queued action.
func (r *Replicator) Tick(dt float64) {
	dt = max(r.opts.MinFrameTime.Seconds(), dt)
	if r.opts.MaxFrameTime > 0 {
		dt = min(r.opts.MaxFrameTime.Seconds(), dt)
	}
	r.state.Tick(dt)
	r.flush()
}

func (r *Replicator) flush() {
	e := r.Local()
	if e == nil || e.Position == nil || e.Velocity == nil || e.Rotation == nil {
		return
	}

	t := action.AvatarTransform{
		ID:       e.ID,
		Position: *e.Position,
		Velocity: *e.Velocity,
		Rotation: *e.Rotation,
	}
	if !r.hasSent || t != r.lastSent {
		r.send(&t)
		r.lastSent = t
		r.hasSent = true
	}

	if e.Outbox == nil {
		return
	}
	for _, a := range e.Outbox.Pending {
		r.send(a)
	}
	clear(e.Outbox.Pending)
	e.Outbox.Pending = e.Outbox.Pending[:0]
}

// Emit applies a locally produced action and queues it for the server.
func (r *Replicator) Emit(a action.Action) {
	if err := r.state.Apply(a); err != nil {
		r.log.Error("apply local action", zap.Error(err))
		return
	}
	if e := r.Local(); e != nil && e.Outbox != nil {
		e.Outbox.Pending = append(e.Outbox.Pending, a)
		return
	}
	r.send(a)
}

func (r *Replicator) send(a action.Action) {
	msg, err := r.codec.Encode(a)
	if err != nil {
		r.log.Warn("encode action", zap.Stringer("kind", a.Kind()), zap.Error(err))
		return
	}
	r.conn.Send(msg)
}

// Run drives the replicator from a dialed session until ctx ends or the
// session closes. drive, if set, is called before every frame to fill input.
func (r *Replicator) Run(ctx context.Context, sess *net.Session, frame time.Duration, drive func(*Replicator)) error {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-sess.Done():
			return nil
		case in := <-sess.Inbound():
			r.Receive(in.Msg)
		case now := <-ticker.C:
			if drive != nil {
				drive(r)
			}
			r.Tick(now.Sub(last).Seconds())
			last = now
		}
	}
}
