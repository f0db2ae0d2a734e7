// Package server is the authoritative half of replication. The Hub owns the
// canonical world, spawns avatars for new connections, validates and relays
// client actions, and generates deaths, respawns and pickups.
package server

import (
	"context"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/voxarena/server/internal/action"
	"github.com/voxarena/server/internal/core/event"
	"github.com/voxarena/server/internal/data"
	"github.com/voxarena/server/internal/handler"
	"github.com/voxarena/server/internal/net"
	"github.com/voxarena/server/internal/net/packet"
	"github.com/voxarena/server/internal/system"
	"github.com/voxarena/server/internal/world"
	"go.uber.org/zap"
)

// Peer is one client connection as seen by the hub. *net.Session implements it.
type Peer interface {
	ID() string
	Send(msg string)
}

// Options tune the hub's timers.
type Options struct {
	SpawnDelay     time.Duration // grace period between connect and first spawn
	RespawnDelay   time.Duration
	PickupInterval time.Duration
	Seed           uint64 // spawn point rng, 0 = time based
}

// player is the hub's record of one connection.
type player struct {
	peer      Peer
	id        string
	avatarID  string
	spawned   bool
	spawnAt   float64 // first spawn deadline, pending until spawned
	respawnAt float64 // 0 = alive or not yet dead
}

// Hub owns the canonical world. Every method must be called from the
// goroutine running the game loop.
type Hub struct {
	state *world.State
	level *data.Level
	codec *packet.Codec
	rng   *rand.Rand
	opts  Options

	players map[string]*player // by connection id
	order   []*player          // connection order, for stable broadcast

	spotPickups []string // live pickup id per level spot

	bus    *event.Bus
	scores *Scoreboard

	newEntityID system.IDFunc
	newPlayerID func() string

	log *zap.Logger
}

// NewHub builds the canonical world over level, which must not be nil, and
// places the first round of pickups.
func NewHub(d *handler.Dispatcher, level *data.Level, opts Options, log *zap.Logger) *Hub {
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	h := &Hub{
		state:       world.NewState(d),
		level:       level,
		codec:       packet.NewCodec(),
		rng:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		opts:        opts,
		players:     make(map[string]*player),
		spotPickups: make([]string, len(level.PickupSpots())),
		bus:         event.NewBus(),
		newEntityID: system.NewUUID,
		newPlayerID: func() string { return ulid.Make().String() },
		log:         log,
	}
	h.scores = NewScoreboard(h.bus, log)

	w := h.state.World()
	h.state.Register(system.NewMovementSystem(w, level))
	h.state.Register(system.NewProjectileSystem(w, level, nil, log))
	h.state.Register(system.NewSoundSystem(w))
	h.state.Register(&spawnSystem{hub: h})
	h.state.Register(&pickupSpawner{hub: h, interval: opts.PickupInterval.Seconds()})
	h.state.Register(system.NewCleanupSystem())

	h.spawnPickups()
	return h
}

func (h *Hub) State() *world.State { return h.state }

func (h *Hub) Scores() *Scoreboard { return h.scores }

// PlayerCount returns the number of connected peers, spawned or not.
func (h *Hub) PlayerCount() int { return len(h.order) }

// Connect registers a peer. Its avatar spawns once SpawnDelay has passed.
func (h *Hub) Connect(peer Peer) {
	if _, ok := h.players[peer.ID()]; ok {
		return
	}
	p := &player{
		peer:    peer,
		id:      h.newPlayerID(),
		spawnAt: h.state.Elapsed() + h.opts.SpawnDelay.Seconds(),
	}
	h.players[peer.ID()] = p
	h.order = append(h.order, p)
	h.log.Info("player connected",
		zap.String("session", peer.ID()),
		zap.String("player", p.id),
		zap.Int("online", len(h.order)),
	)
}

// Disconnect removes every entity the peer's player owns and tells the
// remaining peers.
func (h *Hub) Disconnect(connID string) {
	p, ok := h.players[connID]
	if !ok {
		return
	}
	delete(h.players, connID)
	h.order = slices.DeleteFunc(h.order, func(o *player) bool { return o == p })

	removed := 0
	if p.spawned {
		ids := h.state.OwnedBy(p.id)
		slices.Sort(ids)
		for _, id := range ids {
			rm := &action.RemoveEntity{ID: id}
			h.apply(rm)
			h.broadcast(rm, nil)
		}
		removed = len(ids)
		event.Emit(h.bus, event.PlayerLeft{PlayerID: p.id, Removed: removed})
	}
	h.log.Info("player disconnected",
		zap.String("session", connID),
		zap.String("player", p.id),
		zap.Int("removed", removed),
		zap.Int("online", len(h.order)),
	)
}

// Receive decodes one client message and, if authorized, applies it to the
// canonical world and relays it. Nothing is deferred to the next tick.
func (h *Hub) Receive(connID, msg string) {
	p, ok := h.players[connID]
	if !ok {
		return
	}
	a, ok := h.codec.Decode(msg)
	if !ok {
		kind, _ := packet.ParseKind(msg)
		h.log.Debug("drop undecodable message", zap.String("session", connID), zap.Stringer("kind", kind))
		return
	}
	if !p.spawned {
		return
	}

	if hit, ok := a.(*action.AvatarHit); ok {
		h.handleHit(p, hit)
		return
	}
	if !h.authorize(p, a) {
		h.log.Debug("reject action", zap.String("player", p.id), zap.Stringer("kind", a.Kind()))
		h.resync(p, a)
		return
	}
	if h.apply(a) {
		h.broadcast(a, p)
	}
}

// Tick delivers last tick's events, then advances the canonical world.
func (h *Hub) Tick(dt float64) {
	h.bus.SwapBuffers()
	h.bus.DispatchAll()
	h.state.Tick(dt)
}

// Run is the server game loop: one goroutine selecting over the ticker,
// new and dead sessions and the merged inbound channel.
func (h *Hub) Run(ctx context.Context, srv *net.Server, tickRate time.Duration) {
	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()
	sessions := make(map[string]*net.Session)
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			for _, s := range sessions {
				s.Close()
			}
			return
		case sess := <-srv.NewSessions():
			// Its dead notice may already have been consumed; Close marks the
			// session before that notice is sent.
			if sess.IsClosed() {
				continue
			}
			sessions[sess.ID()] = sess
			h.Connect(sess)
		case id := <-srv.DeadSessions():
			delete(sessions, id)
			h.Disconnect(id)
		case in := <-srv.Inbound():
			h.Receive(in.Session.ID(), in.Msg)
		case now := <-ticker.C:
			h.Tick(now.Sub(last).Seconds())
			last = now
		}
	}
}

func (h *Hub) apply(a action.Action) bool {
	if err := h.state.Apply(a); err != nil {
		h.log.Error("apply action", zap.Stringer("kind", a.Kind()), zap.Error(err))
		return false
	}
	return true
}

func (h *Hub) encode(a action.Action) (string, bool) {
	msg, err := h.codec.Encode(a)
	if err != nil {
		h.log.Error("encode action", zap.Stringer("kind", a.Kind()), zap.Error(err))
		return "", false
	}
	return msg, true
}

func (h *Hub) sendTo(p *player, a action.Action) {
	if msg, ok := h.encode(a); ok {
		p.peer.Send(msg)
	}
}

// broadcast sends a to every spawned player except skip. Players still in
// their spawn grace get the world state by replay instead.
func (h *Hub) broadcast(a action.Action, skip *player) {
	msg, ok := h.encode(a)
	if !ok {
		return
	}
	for _, p := range h.order {
		if p != skip && p.spawned {
			p.peer.Send(msg)
		}
	}
}

func (h *Hub) playerByAvatar(avatarID string) *player {
	for _, p := range h.order {
		if p.avatarID == avatarID {
			return p
		}
	}
	return nil
}
