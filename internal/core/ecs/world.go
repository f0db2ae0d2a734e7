package ecs

// World is the top-level ECS container. It owns the entity store, the elapsed
// time counter and a deferred destruction queue flushed by CleanupSystem each tick.
type World struct {
	store        *Store
	elapsed      float64
	destroyQueue []string
}

func NewWorld() *World {
	return &World{
		store:        NewStore(),
		destroyQueue: make([]string, 0, 64),
	}
}

func (w *World) Store() *Store { return w.store }

// Elapsed returns the simulated time in seconds since the world was created.
func (w *World) Elapsed() float64 { return w.elapsed }

// Advance moves the elapsed counter forward by dt seconds.
func (w *World) Advance(dt float64) {
	if dt > 0 {
		w.elapsed += dt
	}
}

func (w *World) Get(id string) *Entity { return w.store.Get(id) }

// MarkForDestruction queues an entity for end-of-tick cleanup.
func (w *World) MarkForDestruction(id string) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// FlushDestroyQueue removes all queued entities from the store.
// Ids queued twice or already removed are skipped by Store.Remove.
func (w *World) FlushDestroyQueue() {
	for _, id := range w.destroyQueue {
		w.store.Remove(id)
	}
	w.destroyQueue = w.destroyQueue[:0]
}
