package animation

import (
	"fmt"

	"github.com/Faultbox/rigcore/pkg/math"
)

// BoneNode is one node of an imported skeleton.
type BoneNode struct {
	Name string
	// Local is the bind-pose transform relative to the parent node.
	Local math.Mat4
	// Global is the accumulated bind pose from the root, refreshed by
	// Skeleton.Relocalize.
	Global   math.Mat4
	Children []int
}

// Skeleton is a flat, index-linked bone hierarchy rooted at node 0.
// It is immutable after construction apart from Relocalize.
type Skeleton struct {
	Nodes []BoneNode
	index map[string]int
}

// NewSkeleton validates the hierarchy and computes the bind pose with the
// root at the origin. Every node must be reachable from node 0 exactly once.
func NewSkeleton(nodes []BoneNode) (*Skeleton, error) {
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: no nodes", ErrBadSkeleton)
	}

	seen := make([]bool, len(nodes))
	seen[0] = true
	stack := []int{0}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range nodes[idx].Children {
			if c < 0 || c >= len(nodes) {
				return nil, fmt.Errorf("%w: node %q has child index %d out of range", ErrBadSkeleton, nodes[idx].Name, c)
			}
			if seen[c] {
				return nil, fmt.Errorf("%w: node %q is reachable twice", ErrBadSkeleton, nodes[c].Name)
			}
			seen[c] = true
			stack = append(stack, c)
		}
	}
	for i, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("%w: node %q is not reachable from the root", ErrBadSkeleton, nodes[i].Name)
		}
	}

	s := &Skeleton{
		Nodes: nodes,
		index: make(map[string]int, len(nodes)),
	}
	for i, n := range nodes {
		if _, dup := s.index[n.Name]; !dup {
			s.index[n.Name] = i
		}
	}
	s.Relocalize(math.Identity())
	return s, nil
}

// Find returns the index of the first node called name.
func (s *Skeleton) Find(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Relocalize recomputes every node's Global bind pose with the root placed
// at world.
func (s *Skeleton) Relocalize(world math.Mat4) {
	s.relocalize(0, world)
}

func (s *Skeleton) relocalize(idx int, parent math.Mat4) {
	n := &s.Nodes[idx]
	n.Global = parent.Mul(n.Local)
	for _, c := range n.Children {
		s.relocalize(c, n.Global)
	}
}
