// Package rig imports skeletons, skins and clips from YAML rig documents
// into animation models. All structural checks happen here so the animator
// never sees malformed data.
package rig

import "github.com/Faultbox/rigcore/pkg/math"

// Document is the on-disk layout of a rig file.
type Document struct {
	Name  string    `yaml:"name"`
	Bones []BoneDoc `yaml:"bones"`
	Skin  []SkinDoc `yaml:"skin"`
	Clips []ClipDoc `yaml:"clips"`
}

// Pose is a transform given either as TRS parts or as a 16-element
// column-major matrix. Matrix wins when both are present.
type Pose struct {
	Translation *[3]float32  `yaml:"translation,omitempty"`
	Rotation    *[4]float32  `yaml:"rotation,omitempty"`
	Scale       *[3]float32  `yaml:"scale,omitempty"`
	Matrix      *[16]float32 `yaml:"matrix,omitempty"`
}

// BoneDoc is one skeleton node. The first bone is the root.
type BoneDoc struct {
	Name     string   `yaml:"name"`
	Children []string `yaml:"children,omitempty"`

	Pose `yaml:",inline"`
}

// SkinDoc assigns a palette slot to a bone. Without an inverse bind the
// inverse of the bone's bind pose is used.
type SkinDoc struct {
	Bone        string `yaml:"bone"`
	InverseBind *Pose  `yaml:"inverse_bind,omitempty"`
}

// ClipDoc is one animation clip. Duration is in ticks.
type ClipDoc struct {
	Name           string       `yaml:"name"`
	Duration       float32      `yaml:"duration"`
	TicksPerSecond float32      `yaml:"ticks_per_second,omitempty"`
	Channels       []ChannelDoc `yaml:"channels"`
}

// ChannelDoc holds the keyframes of one bone.
type ChannelDoc struct {
	Bone      string    `yaml:"bone"`
	Positions []VecKey  `yaml:"positions"`
	Rotations []QuatKey `yaml:"rotations"`
	Scales    []VecKey  `yaml:"scales"`
}

// VecKey is a translation or scale keyframe.
type VecKey struct {
	Time  float32    `yaml:"time"`
	Value [3]float32 `yaml:"value"`
}

// QuatKey is a rotation keyframe stored as x, y, z, w.
type QuatKey struct {
	Time  float32    `yaml:"time"`
	Value [4]float32 `yaml:"value"`
}

// IsZero reports whether no part of the pose is set.
func (p Pose) IsZero() bool {
	return p.Translation == nil && p.Rotation == nil && p.Scale == nil && p.Matrix == nil
}

// Matrix4 returns the pose as a matrix. Missing TRS parts default to the
// identity.
func (p Pose) Matrix4() math.Mat4 {
	if p.Matrix != nil {
		return math.Mat4(*p.Matrix)
	}
	t := math.Vec3{}
	if p.Translation != nil {
		t = math.Vec3FromArray(*p.Translation)
	}
	r := math.QuatIdentity()
	if p.Rotation != nil {
		r = quat(*p.Rotation)
	}
	s := math.Vec3One()
	if p.Scale != nil {
		s = math.Vec3FromArray(*p.Scale)
	}
	return math.Compose(t, r, s)
}

func quat(v [4]float32) math.Quat {
	return math.Quat{X: v[0], Y: v[1], Z: v[2], W: v[3]}
}
