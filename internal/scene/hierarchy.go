package scene

import (
	"go.uber.org/zap"

	"github.com/Faultbox/rigcore/internal/ecs"
	"github.com/Faultbox/rigcore/pkg/math"
)

// WorldMatrix returns e's model matrix. Relative returns the local matrix;
// Absolute composes world(parent) * local(e) up to the root.
func (s *Scene) WorldMatrix(e ecs.Entity, mode ActionType) math.Mat4 {
	local := s.transforms.Get(e).Matrix()
	n := s.nodes.Get(e)
	if mode == Relative || !n.hasParent {
		return local
	}
	return s.WorldMatrix(n.parent, mode).Mul(local)
}

// WorldTranslation returns e's translation. In Absolute mode the local
// translations of all ancestors are summed. This matches
// WorldMatrix(e, Absolute).Translation() only while no ancestor is rotated
// or scaled; renderers should use WorldMatrix.
func (s *Scene) WorldTranslation(e ecs.Entity, mode ActionType) math.Vec3 {
	translation := s.transforms.Get(e).Translation
	n := s.nodes.Get(e)
	if mode == Absolute && n.hasParent {
		return translation.Add(s.WorldTranslation(n.parent, mode))
	}
	return translation
}

// WorldRotation returns e's rotation. In Absolute mode it is
// parent_rotation * rotation, composed up to the root.
func (s *Scene) WorldRotation(e ecs.Entity, mode ActionType) math.Quat {
	rotation := s.transforms.Get(e).Rotation
	n := s.nodes.Get(e)
	if mode == Absolute && n.hasParent {
		return s.WorldRotation(n.parent, mode).Mul(rotation)
	}
	return rotation
}

// WorldScale returns e's scale. In Absolute mode scales multiply
// component-wise up to the root. Under rotated, non-uniformly scaled
// ancestors this differs from the scale decomposed from WorldMatrix.
func (s *Scene) WorldScale(e ecs.Entity, mode ActionType) math.Vec3 {
	scale := s.transforms.Get(e).Scale
	n := s.nodes.Get(e)
	if mode == Absolute && n.hasParent {
		return scale.Mul(s.WorldScale(n.parent, mode))
	}
	return scale
}

// SetTranslation replaces e's local translation.
//
// In Absolute mode every direct child is shifted by old - new so that
// children keep their world position while the parent moves. Relative mode
// sets the value and lets children follow.
// TODO: the Absolute child shift ignores e's rotation and scale; apply the
// offset in e's local frame instead.
func (s *Scene) SetTranslation(e ecs.Entity, translation math.Vec3, mode ActionType) {
	t := s.transforms.Get(e)
	if mode == Absolute {
		delta := t.Translation.Sub(translation)
		for _, child := range s.nodes.Get(e).children {
			ct := s.transforms.Get(child)
			ct.Translation = ct.Translation.Add(delta)
		}
	}
	t.Translation = translation
}

// SetRotation replaces e's local rotation.
func (s *Scene) SetRotation(e ecs.Entity, rotation math.Quat) {
	s.transforms.Get(e).Rotation = rotation.Normalize()
}

// SetRotationAxis replaces e's local rotation with angle radians about axis.
func (s *Scene) SetRotationAxis(e ecs.Entity, axis math.Vec3, angle float32) {
	s.transforms.Get(e).Rotation = math.QuatFromAxisAngle(axis, angle)
}

// SetScale replaces e's local per-axis scale.
func (s *Scene) SetScale(e ecs.Entity, scale math.Vec3) {
	s.transforms.Get(e).Scale = scale
}

// Translate offsets e's local translation.
func (s *Scene) Translate(e ecs.Entity, offset math.Vec3) {
	t := s.transforms.Get(e)
	t.Translation = t.Translation.Add(offset)
}

// Rotate post-multiplies e's local rotation by rotation.
func (s *Scene) Rotate(e ecs.Entity, rotation math.Quat) {
	t := s.transforms.Get(e)
	t.Rotation = t.Rotation.Mul(rotation).Normalize()
}

// RotateAxis post-multiplies e's local rotation by angle radians about axis.
func (s *Scene) RotateAxis(e ecs.Entity, axis math.Vec3, angle float32) {
	s.Rotate(e, math.QuatFromAxisAngle(axis, angle))
}

// ScaleBy multiplies e's local scale component-wise.
func (s *Scene) ScaleBy(e ecs.Entity, factor math.Vec3) {
	t := s.transforms.Get(e)
	t.Scale = t.Scale.Mul(factor)
}

// Reset restores e's local transform to the identity.
func (s *Scene) Reset(e ecs.Entity) {
	*s.transforms.Get(e) = NewTransform()
}

// AddChild attaches child under parent while keeping child's world pose.
// The new local transform is inverse(world(parent)) * world(child),
// decomposed into translation, rotation and per-axis scale.
//
// Adding an existing child again is a no-op. A child that already has a
// different parent is moved. Shear introduced by rotated non-uniformly
// scaled ancestors cannot be represented and is dropped.
func (s *Scene) AddChild(parent, child ecs.Entity) error {
	pn := s.nodes.Get(parent)
	if pn.childIndex(child) >= 0 {
		return nil
	}
	if s.isAncestor(child, parent) {
		return ErrCycle
	}

	// The parent must pass the same scale check RemoveChild applies later,
	// or the child could be attached but never detached.
	parentWorld := s.WorldMatrix(parent, Absolute)
	if _, _, _, ok := parentWorld.Decompose(); !ok {
		return ErrDegenerateScale
	}
	inv, ok := parentWorld.InverseOK()
	if !ok {
		return ErrDegenerateScale
	}
	local := inv.Mul(s.WorldMatrix(child, Absolute))
	translation, rotation, scale, ok := local.Decompose()
	if !ok {
		return ErrDegenerateScale
	}

	if cn := s.nodes.Get(child); cn.hasParent {
		s.unlink(cn.parent, child)
	}

	*s.transforms.Get(child) = Transform{
		Translation: translation,
		Rotation:    rotation,
		Scale:       scale,
	}

	cn := s.nodes.Get(child)
	cn.parent = parent
	cn.hasParent = true
	pn = s.nodes.Get(parent)
	pn.children = append(pn.children, child)

	s.log.Debug("child attached", zap.Stringer("parent", parent), zap.Stringer("child", child))
	return nil
}

// RemoveChild detaches child from parent into root space, rewriting its
// local transform to its former world transform. Removing an entity that is
// not a child of parent is a no-op.
func (s *Scene) RemoveChild(parent, child ecs.Entity) error {
	if s.nodes.Get(parent).childIndex(child) < 0 {
		return nil
	}

	translation, rotation, scale, ok := s.WorldMatrix(child, Absolute).Decompose()
	if !ok {
		return ErrDegenerateScale
	}

	*s.transforms.Get(child) = Transform{
		Translation: translation,
		Rotation:    rotation,
		Scale:       scale,
	}
	s.unlink(parent, child)

	s.log.Debug("child detached", zap.Stringer("parent", parent), zap.Stringer("child", child))
	return nil
}
