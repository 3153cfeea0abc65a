package scene

import (
	"github.com/Faultbox/rigcore/internal/ecs"
	"github.com/Faultbox/rigcore/pkg/math"
)

// Action is applied to an entity by Act.
type Action func(s *Scene, e ecs.Entity)

// Act runs action on e and then on each descendant, pre-order. The child
// list is snapshotted per node, so an action may re-parent the entity it is
// visiting.
func (s *Scene) Act(e ecs.Entity, action Action) {
	action(s, e)
	for _, child := range s.Children(e) {
		if s.Alive(child) {
			s.Act(child, action)
		}
	}
}

// ResetAction resets every visited entity to the identity transform.
func ResetAction() Action {
	return func(s *Scene, e ecs.Entity) { s.Reset(e) }
}

// TranslateAction offsets every visited entity's local translation.
func TranslateAction(offset math.Vec3) Action {
	return func(s *Scene, e ecs.Entity) { s.Translate(e, offset) }
}

// RotateAction post-multiplies every visited entity's local rotation.
func RotateAction(rotation math.Quat) Action {
	return func(s *Scene, e ecs.Entity) { s.Rotate(e, rotation) }
}

// ScaleAction multiplies every visited entity's local scale.
func ScaleAction(factor math.Vec3) Action {
	return func(s *Scene, e ecs.Entity) { s.ScaleBy(e, factor) }
}

// Visit collects e and its descendants in pre-order.
func (s *Scene) Visit(e ecs.Entity) []ecs.Entity {
	var out []ecs.Entity
	s.Act(e, func(_ *Scene, v ecs.Entity) { out = append(out, v) })
	return out
}
