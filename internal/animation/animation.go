// Package animation implements skeletal animation: a static bone hierarchy,
// keyframed per-bone channels grouped into clips, and an Animator that turns
// the active clip into a palette of skinning matrices every frame.
package animation

import (
	"errors"

	"github.com/Faultbox/rigcore/pkg/math"
)

// MaxBones is the size of the skinning palette. Models with more bones are
// rejected when they are built.
const MaxBones = 100

// DefaultTicksPerSecond is used for clips imported without a tick rate.
const DefaultTicksPerSecond = 25

var (
	// ErrTooManyBones is returned when a model would exceed MaxBones.
	ErrTooManyBones = errors.New("animation: bone count exceeds palette size")
	// ErrEmptyTrack is returned for a keyframe track without keys.
	ErrEmptyTrack = errors.New("animation: keyframe track is empty")
	// ErrUnsortedTrack is returned when keyframe times decrease.
	ErrUnsortedTrack = errors.New("animation: keyframe times are not non-decreasing")
	// ErrBadDuration is returned for a clip whose duration is not positive.
	ErrBadDuration = errors.New("animation: clip duration must be positive")
	// ErrDuplicateChannel is returned when a clip animates a bone twice.
	ErrDuplicateChannel = errors.New("animation: duplicate channel for bone")
	// ErrBadSkeleton is returned for a malformed bone hierarchy.
	ErrBadSkeleton = errors.New("animation: malformed bone hierarchy")
)

// Palette holds one skinning matrix per bone index.
type Palette [MaxBones]math.Mat4

// NewPalette returns a palette of identity matrices.
func NewPalette() Palette {
	var p Palette
	p.Reset()
	return p
}

// Reset sets every matrix to the identity.
func (p *Palette) Reset() {
	for i := range p {
		p[i] = math.Identity()
	}
}
