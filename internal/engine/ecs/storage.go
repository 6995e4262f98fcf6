package ecs

import "reflect"

// Storage holds one component type for many entities.
type Storage[T any] struct {
	items map[Entity]*T
}

func (s *Storage[T]) remove(e Entity) {
	delete(s.items, e)
}

// Insert attaches c to e, replacing any previous component of the same type.
func (s *Storage[T]) Insert(e Entity, c *T) {
	s.items[e] = c
}

// Get returns the component of e.
func (s *Storage[T]) Get(e Entity) (*T, bool) {
	c, ok := s.items[e]
	return c, ok
}

// Remove detaches the component from e and returns it.
func (s *Storage[T]) Remove(e Entity) (*T, bool) {
	c, ok := s.items[e]
	if ok {
		delete(s.items, e)
	}
	return c, ok
}

// Len returns the number of stored components.
func (s *Storage[T]) Len() int {
	return len(s.items)
}

// Entities returns the entities holding this component, ordered by id.
func (s *Storage[T]) Entities() []Entity {
	out := make([]Entity, 0, len(s.items))
	for e := range s.items {
		out = append(out, e)
	}
	sortEntities(out)
	return out
}

// Each calls fn for every component in entity id order.
func (s *Storage[T]) Each(fn func(e Entity, c *T)) {
	for _, e := range s.Entities() {
		fn(e, s.items[e])
	}
}

// StorageOf returns the world's storage for T, creating it on first use.
func StorageOf[T any](w *World) *Storage[T] {
	key := reflect.TypeOf((*T)(nil)).Elem()
	if s, ok := w.storages[key]; ok {
		return s.(*Storage[T])
	}
	s := &Storage[T]{items: make(map[Entity]*T)}
	w.storages[key] = s
	return s
}

// Insert attaches a component to a live entity. Dead entities are ignored.
func Insert[T any](w *World, e Entity, c *T) {
	if !w.Alive(e) {
		return
	}
	StorageOf[T](w).Insert(e, c)
}

// Get fetches a component of a live entity.
func Get[T any](w *World, e Entity) (*T, bool) {
	if !w.Alive(e) {
		return nil, false
	}
	return StorageOf[T](w).Get(e)
}

// SetResource stores a world-global value of type T.
func SetResource[T any](w *World, r *T) {
	w.resources[reflect.TypeOf((*T)(nil)).Elem()] = r
}

// Resource fetches a world-global value of type T.
func Resource[T any](w *World) (*T, bool) {
	r, ok := w.resources[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil, false
	}
	return r.(*T), true
}
