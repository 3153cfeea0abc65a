package animation

import (
	"fmt"

	"github.com/Faultbox/rigcore/pkg/math"
)

// BoneInfo maps a named bone to its palette slot.
type BoneInfo struct {
	Index int
	// InverseBind maps mesh-space positions into the bone's local space.
	InverseBind math.Mat4
}

// Model is an animated asset: skeleton, skin bones and clips.
type Model struct {
	Skeleton *Skeleton

	bones map[string]BoneInfo
	names []string
	clips []*Clip
}

// NewModel wraps a validated skeleton.
func NewModel(skeleton *Skeleton) *Model {
	return &Model{
		Skeleton: skeleton,
		bones:    make(map[string]BoneInfo),
	}
}

// RegisterBone assigns the next palette index to name. A bone that is
// already registered keeps its index and inverse bind matrix.
func (m *Model) RegisterBone(name string, inverseBind math.Mat4) (BoneInfo, error) {
	if info, ok := m.bones[name]; ok {
		return info, nil
	}
	if len(m.names) >= MaxBones {
		return BoneInfo{}, fmt.Errorf("bone %q: %w (max %d)", name, ErrTooManyBones, MaxBones)
	}
	info := BoneInfo{Index: len(m.names), InverseBind: inverseBind}
	m.bones[name] = info
	m.names = append(m.names, name)
	return info, nil
}

// AddClip registers clip and returns its index. Bones animated by the clip
// but missing from the skin get the next free index with an identity
// inverse bind. Nothing is registered if that would exceed MaxBones.
func (m *Model) AddClip(clip *Clip) (int, error) {
	missing := 0
	for _, ch := range clip.Channels() {
		if _, ok := m.bones[ch.Bone]; !ok {
			missing++
		}
	}
	if len(m.names)+missing > MaxBones {
		return 0, fmt.Errorf("clip %q: %w (max %d)", clip.Name, ErrTooManyBones, MaxBones)
	}
	for _, ch := range clip.Channels() {
		if _, err := m.RegisterBone(ch.Bone, math.Identity()); err != nil {
			return 0, err
		}
	}
	m.clips = append(m.clips, clip)
	return len(m.clips) - 1, nil
}

// Bone returns the palette slot for name.
func (m *Model) Bone(name string) (BoneInfo, bool) {
	info, ok := m.bones[name]
	return info, ok
}

// BoneNames returns bone names ordered by palette index.
func (m *Model) BoneNames() []string {
	return append([]string(nil), m.names...)
}

// BoneCount returns the number of registered bones.
func (m *Model) BoneCount() int {
	return len(m.names)
}

// Clip returns the clip at index i.
func (m *Model) Clip(i int) *Clip {
	return m.clips[i]
}

// ClipIndex looks a clip up by name.
func (m *Model) ClipIndex(name string) (int, bool) {
	for i, c := range m.clips {
		if c.Name == name {
			return i, true
		}
	}
	return 0, false
}

// ClipCount returns the number of clips.
func (m *Model) ClipCount() int {
	return len(m.clips)
}

// Relocalize moves the model's bind pose to world.
func (m *Model) Relocalize(world math.Mat4) {
	m.Skeleton.Relocalize(world)
}

// BindPalette fills dst with the skinning matrices of the bind pose, in the
// space last passed to Relocalize.
func (m *Model) BindPalette(dst *Palette) {
	dst.Reset()
	for _, n := range m.Skeleton.Nodes {
		if info, ok := m.bones[n.Name]; ok {
			dst[info.Index] = n.Global.Mul(info.InverseBind)
		}
	}
}
