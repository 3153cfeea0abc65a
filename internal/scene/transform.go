package scene

import (
	"github.com/Faultbox/rigcore/internal/ecs"
	"github.com/Faultbox/rigcore/pkg/math"
)

// Transform is the local pose of an entity relative to its parent, or to
// world space for roots.
type Transform struct {
	Translation math.Vec3
	Rotation    math.Quat
	Scale       math.Vec3
}

// NewTransform returns the identity transform.
func NewTransform() Transform {
	return Transform{
		Rotation: math.QuatIdentity(),
		Scale:    math.Vec3One(),
	}
}

// Matrix returns translate * rotate * scale.
func (t Transform) Matrix() math.Mat4 {
	return math.Compose(t.Translation, t.Rotation, t.Scale)
}

// node links an entity into the tree. Children keep insertion order.
type node struct {
	parent    ecs.Entity
	hasParent bool
	children  []ecs.Entity
}

func (n *node) childIndex(child ecs.Entity) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

func (n *node) removeChildAt(i int) {
	n.children = append(n.children[:i], n.children[i+1:]...)
}
