package ecs

// Listener is notified synchronously on store mutations.
type Listener interface {
	EntityAdded(e *Entity)
	EntityRemoved(e *Entity)
}

// Store owns the entities of a world keyed by id.
// Accessed only from the goroutine that owns the world; it is not locked.
type Store struct {
	entities  map[string]*Entity
	listeners []Listener
}

func NewStore() *Store {
	return &Store{
		entities:  make(map[string]*Entity, 256),
		listeners: make([]Listener, 0, 16),
	}
}

// Listen registers l. Listeners run in registration order.
func (s *Store) Listen(l Listener) {
	s.listeners = append(s.listeners, l)
}

// Add inserts e, overwriting any entity already stored under e.ID, then
// notifies every listener before returning.
func (s *Store) Add(e *Entity) {
	s.entities[e.ID] = e
	for _, l := range s.listeners {
		l.EntityAdded(e)
	}
}

// Remove deletes the entity with the given id and notifies listeners.
// Unknown ids are a no-op.
func (s *Store) Remove(id string) {
	e, ok := s.entities[id]
	if !ok {
		return
	}
	delete(s.entities, id)
	for _, l := range s.listeners {
		l.EntityRemoved(e)
	}
}

// Get returns the entity with the given id, or nil.
func (s *Store) Get(id string) *Entity {
	return s.entities[id]
}

func (s *Store) Len() int {
	return len(s.entities)
}

// Each calls fn for every entity. fn must not add or remove entities.
func (s *Store) Each(fn func(*Entity)) {
	for _, e := range s.entities {
		fn(e)
	}
}
