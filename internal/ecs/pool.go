package ecs

import "fmt"

// Pool stores one component of type T per entity. Components live in a
// sparse slice indexed by entity index; the generation stored next to each
// slot rejects lookups through stale handles.
type Pool[T any] struct {
	name  string
	slots []slot[T]
	count int
}

type slot[T any] struct {
	generation uint32
	used       bool
	value      T
}

// NewPool creates an empty pool. name is used in panic messages.
func NewPool[T any](name string) *Pool[T] {
	return &Pool[T]{name: name}
}

// Add attaches value to e, replacing any existing component, including one
// left in the slot by an older generation of the same index.
func (p *Pool[T]) Add(e Entity, value T) *T {
	for int(e.Index) >= len(p.slots) {
		p.slots = append(p.slots, slot[T]{})
	}
	s := &p.slots[e.Index]
	if !s.used {
		p.count++
	}
	*s = slot[T]{generation: e.Generation, used: true, value: value}
	return &s.value
}

// Has reports whether e carries a component in this pool.
func (p *Pool[T]) Has(e Entity) bool {
	if int(e.Index) >= len(p.slots) {
		return false
	}
	s := &p.slots[e.Index]
	return s.used && s.generation == e.Generation
}

// Get returns the component attached to e. A missing component is a
// programming error and panics.
func (p *Pool[T]) Get(e Entity) *T {
	if !p.Has(e) {
		panic(fmt.Sprintf("ecs: entity %s has no %s component", e, p.name))
	}
	return &p.slots[e.Index].value
}

// Lookup returns the component attached to e, or false.
func (p *Pool[T]) Lookup(e Entity) (*T, bool) {
	if !p.Has(e) {
		return nil, false
	}
	return &p.slots[e.Index].value, true
}

// Remove detaches the component from e. Missing components are ignored.
func (p *Pool[T]) Remove(e Entity) {
	if !p.Has(e) {
		return
	}
	p.slots[e.Index] = slot[T]{}
	p.count--
}

// Len returns the number of stored components.
func (p *Pool[T]) Len() int {
	return p.count
}
