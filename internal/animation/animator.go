package animation

import (
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/rigcore/internal/logger"
	"github.com/Faultbox/rigcore/pkg/math"
)

// State is the playback state of an Animator.
type State int

const (
	// Idle means no clip is active; the palette keeps its last pose.
	Idle State = iota
	// Playing means a clip advances on every Update.
	Playing
)

// String implements fmt.Stringer.
func (s State) String() string {
	if s == Playing {
		return "playing"
	}
	return "idle"
}

// LoopPolicy decides how many times a clip repeats.
type LoopPolicy int

const (
	// Once plays the clip a single time.
	Once LoopPolicy = iota
	// Times plays the clip a given number of cycles.
	Times
	// Indefinite loops until Stop or another Play.
	Indefinite
)

// String implements fmt.Stringer.
func (p LoopPolicy) String() string {
	switch p {
	case Once:
		return "once"
	case Times:
		return "times"
	case Indefinite:
		return "indefinite"
	default:
		return fmt.Sprintf("LoopPolicy(%d)", int(p))
	}
}

// ParseLoopPolicy converts a name accepted by String, or "loop", back into
// a LoopPolicy.
func ParseLoopPolicy(name string) (LoopPolicy, error) {
	switch name {
	case "once":
		return Once, nil
	case "times", "n-times":
		return Times, nil
	case "indefinite", "loop":
		return Indefinite, nil
	}
	return Once, fmt.Errorf("unknown loop policy %q", name)
}

// Animator plays one clip of a model at a time and owns the resulting
// palette. The palette is overwritten in place by Play and Update; callers
// that need the previous frame must copy it first.
type Animator struct {
	model     *Model
	clip      *Clip
	clipIndex int
	time      float32
	policy    LoopPolicy
	remaining int

	palette Palette
	log     *zap.Logger
}

// NewAnimator creates an idle animator with an identity palette. A nil log
// uses the global "animator" logger.
func NewAnimator(log *zap.Logger) *Animator {
	if log == nil {
		log = logger.Named("animator")
	}
	return &Animator{
		palette: NewPalette(),
		log:     log,
	}
}

// Play starts clip clipIndex of model from time zero and immediately
// computes the pose at time zero. cycles is only used by Times; values
// below one play a single cycle. An out-of-range clip index panics.
func (a *Animator) Play(model *Model, clipIndex int, policy LoopPolicy, cycles int) {
	if model == nil {
		panic("animation: Play called with a nil model")
	}
	if clipIndex < 0 || clipIndex >= model.ClipCount() {
		panic(fmt.Sprintf("animation: clip index %d out of range [0, %d)", clipIndex, model.ClipCount()))
	}

	a.model = model
	a.clip = model.Clip(clipIndex)
	a.clipIndex = clipIndex
	a.time = 0
	a.policy = policy

	switch policy {
	case Once:
		a.remaining = 1
	case Times:
		a.remaining = max(cycles, 1)
	default:
		a.remaining = 0
	}

	// Slots the new model never writes must not keep another model's pose.
	a.palette.Reset()
	a.computePalette()

	a.log.Debug("clip started",
		zap.String("clip", a.clip.Name),
		zap.Stringer("policy", policy),
		zap.Int("cycles", a.remaining))
}

// Update advances playback by dt seconds. It does nothing while idle.
//
// Time advances by dt * ticks per second. Passing the clip duration spends
// one cycle of the loop budget and wraps time back into [0, duration). The
// palette is always computed for the wrapped time, then the animator goes
// idle if the budget is exhausted, so the last frame still renders.
func (a *Animator) Update(dt float32) {
	if a.clip == nil {
		return
	}

	a.time += dt * a.clip.TicksPerSecond
	finished := a.spendCycle()

	a.time = math32.Mod(a.time, a.clip.Duration)
	if a.time < 0 {
		a.time += a.clip.Duration
	}

	a.computePalette()

	if finished {
		a.log.Debug("clip finished", zap.String("clip", a.clip.Name))
		a.clip = nil
	}
}

// spendCycle charges the loop budget when time passed the clip end and
// reports whether the budget is exhausted.
func (a *Animator) spendCycle() bool {
	if a.policy == Indefinite {
		return false
	}
	if a.time > a.clip.Duration {
		a.remaining--
	}
	return a.remaining <= 0
}

// Stop makes the animator idle, keeping the current palette.
func (a *Animator) Stop() {
	if a.clip != nil {
		a.log.Debug("clip stopped", zap.String("clip", a.clip.Name))
	}
	a.clip = nil
}

// State returns Playing while a clip is active.
func (a *Animator) State() State {
	if a.clip != nil {
		return Playing
	}
	return Idle
}

// IsAnimating reports whether a clip is active.
func (a *Animator) IsAnimating() bool {
	return a.clip != nil
}

// Time returns the playback position in ticks.
func (a *Animator) Time() float32 {
	return a.time
}

// CurrentClip returns the active clip and its index, or nil when idle.
func (a *Animator) CurrentClip() (*Clip, int) {
	if a.clip == nil {
		return nil, -1
	}
	return a.clip, a.clipIndex
}

// RemainingCycles returns the loop budget left, or -1 for Indefinite.
func (a *Animator) RemainingCycles() int {
	if a.policy == Indefinite {
		return -1
	}
	return a.remaining
}

// FinalBoneMatrices returns the palette. It stays valid until the next Play
// or Update.
func (a *Animator) FinalBoneMatrices() *Palette {
	return &a.palette
}

// CopyPalette copies the current palette into dst.
func (a *Animator) CopyPalette(dst *Palette) {
	*dst = a.palette
}

// computePalette walks the skeleton pre-order from the root and writes
// global * inverseBind for every skinned bone.
func (a *Animator) computePalette() {
	a.calculateBoneTransform(0, math.Identity())
}

func (a *Animator) calculateBoneTransform(idx int, parent math.Mat4) {
	n := &a.model.Skeleton.Nodes[idx]

	local := n.Local
	if ch := a.clip.Channel(n.Name); ch != nil {
		local = ch.Evaluate(a.time)
	}
	global := parent.Mul(local)

	if info, ok := a.model.Bone(n.Name); ok {
		a.palette[info.Index] = global.Mul(info.InverseBind)
	}

	for _, c := range n.Children {
		a.calculateBoneTransform(c, global)
	}
}
