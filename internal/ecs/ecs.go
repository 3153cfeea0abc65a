// Package ecs implements the entity-component store the scene graph is built
// on: generational entity handles allocated from an arena, plus typed
// component pools indexed by those handles.
package ecs

import "fmt"

// Entity is a handle into a Registry. The zero value is never alive.
type Entity struct {
	Index      uint32
	Generation uint32
}

// Nil is the handle that never refers to an entity.
var Nil = Entity{}

// String implements fmt.Stringer.
func (e Entity) String() string {
	return fmt.Sprintf("%d:%d", e.Index, e.Generation)
}

// Registry allocates entity handles and recycles destroyed slots.
// Generation zero is reserved so that the zero Entity is never valid.
type Registry struct {
	generations []uint32
	alive       []bool
	free        []uint32
	count       int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Create allocates a new entity handle.
func (r *Registry) Create() Entity {
	r.count++
	if n := len(r.free); n > 0 {
		idx := r.free[n-1]
		r.free = r.free[:n-1]
		r.alive[idx] = true
		return Entity{Index: idx, Generation: r.generations[idx]}
	}
	idx := uint32(len(r.generations))
	r.generations = append(r.generations, 1)
	r.alive = append(r.alive, true)
	return Entity{Index: idx, Generation: 1}
}

// Destroy releases the handle. Existing copies of e become stale.
// Destroying a dead handle is a no-op.
func (r *Registry) Destroy(e Entity) {
	if !r.Alive(e) {
		return
	}
	r.alive[e.Index] = false
	r.generations[e.Index]++
	if r.generations[e.Index] == 0 {
		r.generations[e.Index] = 1
	}
	r.free = append(r.free, e.Index)
	r.count--
}

// Alive reports whether e refers to a live entity.
func (r *Registry) Alive(e Entity) bool {
	return int(e.Index) < len(r.generations) &&
		r.alive[e.Index] &&
		r.generations[e.Index] == e.Generation
}

// Len returns the number of live entities.
func (r *Registry) Len() int {
	return r.count
}

// Each calls fn for every live entity in index order.
func (r *Registry) Each(fn func(Entity)) {
	for i, ok := range r.alive {
		if ok {
			fn(Entity{Index: uint32(i), Generation: r.generations[i]})
		}
	}
}
