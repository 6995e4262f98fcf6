// Package ecs provides the entity world and system dispatcher the viewer runs on.
package ecs

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
)

// ErrNoSuchEntity is returned when an entity is dead or was never created.
var ErrNoSuchEntity = errors.New("no such entity")

// Entity identifies an object in a World. Ids are recycled; the generation
// tells a recycled id apart from the entity that held it before.
type Entity struct {
	ID  uint32
	Gen uint32
}

func (e Entity) String() string {
	return fmt.Sprintf("Entity(%d:%d)", e.ID, e.Gen)
}

type remover interface {
	remove(e Entity)
}

// World owns entities, their components and global resources.
type World struct {
	gens  []uint32
	alive []bool
	free  []uint32

	storages  map[reflect.Type]remover
	resources map[reflect.Type]any
	tags      map[string]map[Entity]struct{}
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		storages:  make(map[reflect.Type]remover),
		resources: make(map[reflect.Type]any),
		tags:      make(map[string]map[Entity]struct{}),
	}
}

// Create allocates a new entity.
func (w *World) Create() Entity {
	if n := len(w.free); n > 0 {
		id := w.free[n-1]
		w.free = w.free[:n-1]
		w.alive[id] = true
		return Entity{ID: id, Gen: w.gens[id]}
	}
	id := uint32(len(w.gens))
	w.gens = append(w.gens, 0)
	w.alive = append(w.alive, true)
	return Entity{ID: id}
}

// Alive reports whether e refers to a live entity.
func (w *World) Alive(e Entity) bool {
	return int(e.ID) < len(w.gens) && w.alive[e.ID] && w.gens[e.ID] == e.Gen
}

// Delete removes an entity with all its components and tags.
func (w *World) Delete(e Entity) error {
	if !w.Alive(e) {
		return fmt.Errorf("deleting %v: %w", e, ErrNoSuchEntity)
	}
	for _, s := range w.storages {
		s.remove(e)
	}
	for _, set := range w.tags {
		delete(set, e)
	}
	w.alive[e.ID] = false
	w.gens[e.ID]++
	w.free = append(w.free, e.ID)
	return nil
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.gens) - len(w.free)
}

// Tag marks an entity with a named tag.
func (w *World) Tag(e Entity, tag string) {
	set, ok := w.tags[tag]
	if !ok {
		set = make(map[Entity]struct{})
		w.tags[tag] = set
	}
	set[e] = struct{}{}
}

// HasTag reports whether e carries tag.
func (w *World) HasTag(e Entity, tag string) bool {
	_, ok := w.tags[tag][e]
	return ok
}

// FindTag returns the first live entity (lowest id) carrying tag.
func (w *World) FindTag(tag string) (Entity, bool) {
	tagged := w.Tagged(tag)
	if len(tagged) == 0 {
		return Entity{}, false
	}
	return tagged[0], true
}

// Tagged returns every live entity carrying tag, ordered by id.
func (w *World) Tagged(tag string) []Entity {
	set := w.tags[tag]
	out := make([]Entity, 0, len(set))
	for e := range set {
		if w.Alive(e) {
			out = append(out, e)
		}
	}
	sortEntities(out)
	return out
}

func sortEntities(es []Entity) {
	sort.Slice(es, func(i, j int) bool { return es[i].ID < es[j].ID })
}
