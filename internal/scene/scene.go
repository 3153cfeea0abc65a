// Package scene implements the transform hierarchy: entities carrying a local
// translation, rotation and per-axis scale, linked into a parent/child tree
// whose world pose is composed on demand.
//
// All mutation must happen from one goroutine. Queries are pure reads and may
// run concurrently only while no mutation is in flight.
package scene

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/rigcore/internal/ecs"
	"github.com/Faultbox/rigcore/internal/logger"
	"github.com/Faultbox/rigcore/pkg/math"
)

var (
	// ErrCycle is returned when a re-parenting would make an entity its own
	// ancestor.
	ErrCycle = errors.New("scene: re-parenting would create a cycle")
	// ErrDegenerateScale is returned when a pose cannot be decomposed
	// because an axis of the involved transform has collapsed to zero.
	ErrDegenerateScale = errors.New("scene: transform has a zero-length scale axis")
)

// ActionType selects between parent-relative and composed world values.
type ActionType int

const (
	// Absolute composes the value through every ancestor.
	Absolute ActionType = iota
	// Relative uses the entity's own local value only.
	Relative
)

// String implements fmt.Stringer.
func (a ActionType) String() string {
	switch a {
	case Absolute:
		return "absolute"
	case Relative:
		return "relative"
	default:
		return "unknown"
	}
}

// Scene owns a set of entities and their transform tree.
type Scene struct {
	ID uuid.UUID

	registry   *ecs.Registry
	transforms *ecs.Pool[Transform]
	nodes      *ecs.Pool[node]
	log        *zap.Logger
}

// New creates an empty scene. A nil log uses the global "scene" logger.
func New(log *zap.Logger) *Scene {
	if log == nil {
		log = logger.Named("scene")
	}
	s := &Scene{
		ID:         uuid.Must(uuid.NewV7()),
		registry:   ecs.NewRegistry(),
		transforms: ecs.NewPool[Transform]("transform"),
		nodes:      ecs.NewPool[node]("node"),
	}
	s.log = log.With(zap.Stringer("scene", s.ID))
	return s
}

// Len returns the number of live entities.
func (s *Scene) Len() int {
	return s.registry.Len()
}

// Alive reports whether e is a live entity of this scene.
func (s *Scene) Alive(e ecs.Entity) bool {
	return s.registry.Alive(e)
}

// CreateEntity adds a root-space entity with an identity transform.
func (s *Scene) CreateEntity() ecs.Entity {
	e := s.registry.Create()
	s.transforms.Add(e, NewTransform())
	s.nodes.Add(e, node{})
	s.log.Debug("entity created", zap.Stringer("entity", e))
	return e
}

// CreateChild adds an entity attached to parent. Its world pose is the
// identity, so its local transform becomes the inverse of the parent's.
func (s *Scene) CreateChild(parent ecs.Entity) (ecs.Entity, error) {
	e := s.CreateEntity()
	if err := s.AddChild(parent, e); err != nil {
		s.DestroyEntity(e)
		return ecs.Nil, err
	}
	return e, nil
}

// DestroyEntity unlinks e from its parent, detaches its children into root
// space without moving them, and releases the handle.
func (s *Scene) DestroyEntity(e ecs.Entity) {
	n := s.nodes.Get(e)

	for _, child := range append([]ecs.Entity(nil), n.children...) {
		if err := s.RemoveChild(e, child); err != nil {
			// Collapsed pose: keep the local transform and just unlink.
			s.log.Warn("child detached without pose preservation",
				zap.Stringer("entity", e), zap.Stringer("child", child), zap.Error(err))
			s.unlink(e, child)
		}
	}
	if n.hasParent {
		s.unlink(n.parent, e)
	}

	s.transforms.Remove(e)
	s.nodes.Remove(e)
	s.registry.Destroy(e)
	s.log.Debug("entity destroyed", zap.Stringer("entity", e))
}

// Parent returns the parent of e, or false for a root.
func (s *Scene) Parent(e ecs.Entity) (ecs.Entity, bool) {
	n := s.nodes.Get(e)
	return n.parent, n.hasParent
}

// Children returns a copy of e's children in insertion order.
func (s *Scene) Children(e ecs.Entity) []ecs.Entity {
	return append([]ecs.Entity(nil), s.nodes.Get(e).children...)
}

// Roots returns every entity without a parent, in handle order.
func (s *Scene) Roots() []ecs.Entity {
	var roots []ecs.Entity
	s.registry.Each(func(e ecs.Entity) {
		if !s.nodes.Get(e).hasParent {
			roots = append(roots, e)
		}
	})
	return roots
}

// LocalTransform returns e's translation, rotation and scale.
func (s *Scene) LocalTransform(e ecs.Entity) (math.Vec3, math.Quat, math.Vec3) {
	t := s.transforms.Get(e)
	return t.Translation, t.Rotation, t.Scale
}

// Transform returns a copy of e's local transform.
func (s *Scene) Transform(e ecs.Entity) Transform {
	return *s.transforms.Get(e)
}

// isAncestor reports whether candidate is e or one of e's ancestors.
func (s *Scene) isAncestor(candidate, e ecs.Entity) bool {
	for {
		if e == candidate {
			return true
		}
		n := s.nodes.Get(e)
		if !n.hasParent {
			return false
		}
		e = n.parent
	}
}

// unlink removes child from parent's list and clears the back-reference.
func (s *Scene) unlink(parent, child ecs.Entity) {
	pn := s.nodes.Get(parent)
	if i := pn.childIndex(child); i >= 0 {
		pn.removeChildAt(i)
	}
	cn := s.nodes.Get(child)
	cn.parent = ecs.Nil
	cn.hasParent = false
}
