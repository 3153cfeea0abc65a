package animation

import (
	"fmt"

	"github.com/Faultbox/rigcore/pkg/math"
)

// PositionKey is a translation keyframe.
type PositionKey struct {
	Time  float32
	Value math.Vec3
}

// RotationKey is an orientation keyframe.
type RotationKey struct {
	Time  float32
	Value math.Quat
}

// ScaleKey is a scale keyframe.
type ScaleKey struct {
	Time  float32
	Value math.Vec3
}

// Channel animates a single bone with three independent tracks. Every track
// holds at least one key; a single key is constant over the whole clip.
type Channel struct {
	Bone      string
	Positions []PositionKey
	Rotations []RotationKey
	Scales    []ScaleKey
}

// NewChannel validates the tracks and builds a channel.
func NewChannel(bone string, positions []PositionKey, rotations []RotationKey, scales []ScaleKey) (*Channel, error) {
	if err := checkTrack("position", positions, func(k PositionKey) float32 { return k.Time }); err != nil {
		return nil, fmt.Errorf("bone %q: %w", bone, err)
	}
	if err := checkTrack("rotation", rotations, func(k RotationKey) float32 { return k.Time }); err != nil {
		return nil, fmt.Errorf("bone %q: %w", bone, err)
	}
	if err := checkTrack("scale", scales, func(k ScaleKey) float32 { return k.Time }); err != nil {
		return nil, fmt.Errorf("bone %q: %w", bone, err)
	}
	return &Channel{
		Bone:      bone,
		Positions: positions,
		Rotations: rotations,
		Scales:    scales,
	}, nil
}

func checkTrack[K any](track string, keys []K, at func(K) float32) error {
	if len(keys) == 0 {
		return fmt.Errorf("%s track: %w", track, ErrEmptyTrack)
	}
	for i := 1; i < len(keys); i++ {
		if at(keys[i]) < at(keys[i-1]) {
			return fmt.Errorf("%s track key %d: %w", track, i, ErrUnsortedTrack)
		}
	}
	return nil
}

// segment finds the first pair (i, i+1) with time < keys[i+1] and returns i
// with the blend factor between the two keys. At or past the last key the
// final pair is used with the factor clamped to 1. keys must hold at least
// two entries.
func segment[K any](keys []K, at func(K) float32, time float32) (int, float32) {
	for i := 0; i < len(keys)-1; i++ {
		t1 := at(keys[i+1])
		if time < t1 {
			return i, blendFactor(at(keys[i]), t1, time)
		}
	}
	return len(keys) - 2, 1
}

func blendFactor(t0, t1, time float32) float32 {
	span := t1 - t0
	if span <= 0 {
		return 1
	}
	f := (time - t0) / span
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// SamplePosition returns the interpolated translation at time.
func (c *Channel) SamplePosition(time float32) math.Vec3 {
	if len(c.Positions) == 1 {
		return c.Positions[0].Value
	}
	i, f := segment(c.Positions, func(k PositionKey) float32 { return k.Time }, time)
	return c.Positions[i].Value.Lerp(c.Positions[i+1].Value, f)
}

// SampleRotation returns the spherically interpolated, normalized rotation
// at time.
func (c *Channel) SampleRotation(time float32) math.Quat {
	if len(c.Rotations) == 1 {
		return c.Rotations[0].Value
	}
	i, f := segment(c.Rotations, func(k RotationKey) float32 { return k.Time }, time)
	return c.Rotations[i].Value.Slerp(c.Rotations[i+1].Value, f).Normalize()
}

// SampleScale returns the interpolated scale at time.
func (c *Channel) SampleScale(time float32) math.Vec3 {
	if len(c.Scales) == 1 {
		return c.Scales[0].Value
	}
	i, f := segment(c.Scales, func(k ScaleKey) float32 { return k.Time }, time)
	return c.Scales[i].Value.Lerp(c.Scales[i+1].Value, f)
}

// Evaluate returns the bone's local transform at time, in ticks:
// translate(position) * rotate(rotation) * scale(scale).
func (c *Channel) Evaluate(time float32) math.Mat4 {
	return math.Compose(c.SamplePosition(time), c.SampleRotation(time), c.SampleScale(time))
}
