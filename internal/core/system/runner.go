package system

import "github.com/voxarena/server/internal/core/ecs"

type entry struct {
	sys      System
	interval float64
	acc      float64
}

// Runner executes systems in registration order each tick.
//
// Each system accumulates elapsed time. A throttled system runs once its
// accumulator reaches the interval and receives the accumulated time as dt;
// the accumulator then resets to zero.
type Runner struct {
	systems []*entry
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]*entry, 0, 16),
	}
}

func (r *Runner) Register(s System) {
	e := &entry{sys: s}
	if t, ok := s.(Throttled); ok {
		e.interval = t.UpdateInterval()
	}
	r.systems = append(r.systems, e)
}

func (r *Runner) Len() int { return len(r.systems) }

func (r *Runner) Tick(w *ecs.World, dt float64) {
	for _, e := range r.systems {
		e.acc += dt
		if e.acc < e.interval {
			continue
		}
		elapsed := e.acc
		e.acc = 0
		e.sys.Update(w, elapsed)
	}
}
