package world

import (
	"github.com/voxarena/server/internal/action"
	"github.com/voxarena/server/internal/core/ecs"
	coresys "github.com/voxarena/server/internal/core/system"
	"github.com/voxarena/server/internal/data"
	"github.com/voxarena/server/internal/handler"
)

// State is one peer's replica of the arena: the ECS world, the systems that
// simulate it and the dispatcher that applies actions to it.
// Single-goroutine access only (game loop).
type State struct {
	world      *ecs.World
	runner     *coresys.Runner
	dispatcher *handler.Dispatcher

	avatars *ecs.Family
	pickups *ecs.Family
	owned   *ecs.Family
}

func NewState(d *handler.Dispatcher) *State {
	w := ecs.NewWorld()
	return &State{
		world:      w,
		runner:     coresys.NewRunner(),
		dispatcher: d,
		avatars:    ecs.NewFamily(w.Store(), ecs.Require(ecs.Avatar, ecs.Position)),
		pickups:    ecs.NewFamily(w.Store(), ecs.Require(ecs.Pickup, ecs.Position)),
		owned:      ecs.NewFamily(w.Store(), ecs.Require(ecs.Owner)),
	}
}

func (s *State) World() *ecs.World { return s.world }

func (s *State) Weapons() *data.WeaponTable { return s.dispatcher.Weapons() }

// Register appends a system to the tick order.
func (s *State) Register(sys coresys.System) { s.runner.Register(sys) }

// Tick advances simulated time by dt seconds and runs every system once.
func (s *State) Tick(dt float64) {
	s.world.Advance(dt)
	s.runner.Tick(s.world, dt)
}

// Apply dispatches one action to the world.
func (s *State) Apply(a action.Action) error {
	return s.dispatcher.Dispatch(s.world, a)
}

func (s *State) Get(id string) *ecs.Entity { return s.world.Get(id) }

// Elapsed returns simulated seconds since the state was created.
func (s *State) Elapsed() float64 { return s.world.Elapsed() }

// Avatars returns the live family of spawned avatars.
func (s *State) Avatars() *ecs.Family { return s.avatars }

// Pickups returns the live family of pickups waiting to be consumed.
func (s *State) Pickups() *ecs.Family { return s.pickups }

// OwnedBy returns the ids of every entity owned by playerID.
func (s *State) OwnedBy(playerID string) []string {
	var ids []string
	for id, e := range s.owned.Members() {
		if e.Owner.PlayerID == playerID {
			ids = append(ids, id)
		}
	}
	return ids
}

// AvatarOf returns the avatar of playerID, or nil.
func (s *State) AvatarOf(playerID string) *ecs.Entity {
	for _, e := range s.avatars.Members() {
		if e.Avatar.PlayerID == playerID {
			return e
		}
	}
	return nil
}
