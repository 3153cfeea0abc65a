package animation

import "fmt"

// Clip is a named set of channels. Duration is measured in ticks.
type Clip struct {
	Name           string
	Duration       float32
	TicksPerSecond float32

	channels []*Channel
	byBone   map[string]*Channel
}

// NewClip builds a clip from its channels. A non-positive tick rate falls
// back to DefaultTicksPerSecond.
func NewClip(name string, duration, ticksPerSecond float32, channels []*Channel) (*Clip, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("clip %q: %w", name, ErrBadDuration)
	}
	if ticksPerSecond <= 0 {
		ticksPerSecond = DefaultTicksPerSecond
	}

	c := &Clip{
		Name:           name,
		Duration:       duration,
		TicksPerSecond: ticksPerSecond,
		channels:       channels,
		byBone:         make(map[string]*Channel, len(channels)),
	}
	for _, ch := range channels {
		if _, dup := c.byBone[ch.Bone]; dup {
			return nil, fmt.Errorf("clip %q bone %q: %w", name, ch.Bone, ErrDuplicateChannel)
		}
		c.byBone[ch.Bone] = ch
	}
	return c, nil
}

// Channel returns the channel animating bone, or nil.
func (c *Clip) Channel(bone string) *Channel {
	return c.byBone[bone]
}

// Channels returns the clip's channels in import order.
func (c *Clip) Channels() []*Channel {
	return c.channels
}

// Seconds returns the clip length in seconds.
func (c *Clip) Seconds() float32 {
	return c.Duration / c.TicksPerSecond
}
