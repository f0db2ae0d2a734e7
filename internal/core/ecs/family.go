package ecs

// Family is a live query: the entities whose component set is a superset of
// a required mask. Membership is kept up to date from store notifications and
// is never recomputed by scanning the store after construction.
type Family struct {
	required ComponentMask
	members  map[string]*Entity

	// Optional callbacks, fired after the member map is updated.
	OnAdded   func(*Entity)
	OnRemoved func(*Entity)
}

// NewFamily declares a family over store and seeds it with the entities the
// store already holds. The family lives as long as the store.
func NewFamily(store *Store, required ComponentMask) *Family {
	f := &Family{
		required: required,
		members:  make(map[string]*Entity, 64),
	}
	store.Each(func(e *Entity) {
		if f.matches(e) {
			f.members[e.ID] = e
		}
	})
	store.Listen(f)
	return f
}

func (f *Family) matches(e *Entity) bool {
	return e.Mask()&f.required == f.required
}

// EntityAdded implements Listener.
func (f *Family) EntityAdded(e *Entity) {
	_, wasMember := f.members[e.ID]
	if !f.matches(e) {
		// An overwrite by a narrower entity drops the old membership.
		if wasMember {
			old := f.members[e.ID]
			delete(f.members, e.ID)
			if f.OnRemoved != nil {
				f.OnRemoved(old)
			}
		}
		return
	}
	f.members[e.ID] = e
	if !wasMember && f.OnAdded != nil {
		f.OnAdded(e)
	}
}

// EntityRemoved implements Listener.
func (f *Family) EntityRemoved(e *Entity) {
	old, ok := f.members[e.ID]
	if !ok {
		return
	}
	if f.OnRemoved != nil {
		f.OnRemoved(old)
	}
	delete(f.members, e.ID)
}

// Members exposes the live id→entity map. Callers must not modify it.
func (f *Family) Members() map[string]*Entity { return f.members }

func (f *Family) Get(id string) *Entity { return f.members[id] }

func (f *Family) Len() int { return len(f.members) }

// Each iterates over a snapshot of the members, so fn may add or remove
// entities from the store.
func (f *Family) Each(fn func(*Entity)) {
	snapshot := make([]*Entity, 0, len(f.members))
	for _, e := range f.members {
		snapshot = append(snapshot, e)
	}
	for _, e := range snapshot {
		fn(e)
	}
}
