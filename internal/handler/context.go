package handler

import (
	"fmt"

	"github.com/voxarena/server/internal/action"
	"github.com/voxarena/server/internal/component"
	"github.com/voxarena/server/internal/core/ecs"
	"github.com/voxarena/server/internal/data"
	"go.uber.org/zap"
)

// DamageRule derives hit damage from the shooter's weapon. The server may
// plug in a scripted rule; clients use DefaultDamage.
type DamageRule interface {
	HitDamage(spec *data.WeaponSpec, headshot bool) int
}

// DefaultDamage is bulletDamage, tripled on a headshot.
type DefaultDamage struct{}

func (DefaultDamage) HitDamage(spec *data.WeaponSpec, headshot bool) int {
	dmg := spec.BulletDamage
	if headshot {
		dmg *= component.HeadshotMultiplier
	}
	return dmg
}

// Deps holds shared dependencies injected into all action handlers.
type Deps struct {
	Weapons *data.WeaponTable
	Damage  DamageRule
	Log     *zap.Logger
}

// Dispatcher applies actions to a world. Every peer, client or server, runs
// the same Dispatcher, so there is a single mutation path per action kind.
type Dispatcher struct {
	deps Deps
}

func NewDispatcher(deps Deps) *Dispatcher {
	if deps.Weapons == nil {
		deps.Weapons = data.DefaultWeapons()
	}
	if deps.Damage == nil {
		deps.Damage = DefaultDamage{}
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	return &Dispatcher{deps: deps}
}

// Weapons returns the weapon table handlers resolve specs from.
func (d *Dispatcher) Weapons() *data.WeaponTable { return d.deps.Weapons }

// Dispatch applies a to w. Nil actions are dropped. A handler panic is
// recovered and returned as an error.
func (d *Dispatcher) Dispatch(w *ecs.World, a action.Action) (err error) {
	if a == nil {
		return nil
	}
	d.deps.Log.Debug("apply action", zap.Stringer("kind", a.Kind()))

	defer func() {
		if rec := recover(); rec != nil {
			d.deps.Log.Error("action handler panic recovered",
				zap.Stringer("kind", a.Kind()),
				zap.Any("panic", rec),
			)
			err = fmt.Errorf("handler panic for %s: %v", a.Kind(), rec)
		}
	}()
	a.Accept(&applier{w: w, deps: &d.deps})
	return nil
}

// applier binds one dispatch to its world. It must implement every method of
// action.Handler; the assertion below turns a missing handler into a build error.
type applier struct {
	w    *ecs.World
	deps *Deps
}

var _ action.Handler = (*applier)(nil)

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
