package rig

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/rigcore/internal/animation"
	"github.com/Faultbox/rigcore/internal/logger"
	"github.com/Faultbox/rigcore/pkg/math"
)

var (
	// ErrUnknownBone is returned when a child or skin entry names a bone
	// that is not in the skeleton.
	ErrUnknownBone = errors.New("rig: unknown bone")
	// ErrDuplicateBone is returned when two skeleton nodes share a name.
	ErrDuplicateBone = errors.New("rig: duplicate bone name")
	// ErrSingularBind is returned when a bind pose cannot be inverted.
	ErrSingularBind = errors.New("rig: bind pose is not invertible")
)

// Loader turns rig documents into animation models.
type Loader struct {
	// DefaultTicksPerSecond replaces a missing clip tick rate. Zero leaves
	// the choice to animation.NewClip.
	DefaultTicksPerSecond float32

	log *zap.Logger
}

// NewLoader creates a loader. A nil log uses the global "rig" logger.
func NewLoader(log *zap.Logger) *Loader {
	if log == nil {
		log = logger.Named("rig")
	}
	return &Loader{log: log}
}

// Load reads and imports the rig file at path.
func Load(path string) (*animation.Model, error) {
	return NewLoader(nil).Load(path)
}

// Parse imports a rig document held in memory.
func Parse(data []byte) (*animation.Model, error) {
	return NewLoader(nil).Parse(data)
}

// Load reads and imports the rig file at path.
func (l *Loader) Load(path string) (*animation.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading rig")
	}
	model, err := l.Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "rig %s", path)
	}
	return model, nil
}

// Parse decodes data as YAML and builds the model.
func (l *Loader) Parse(data []byte) (*animation.Model, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decoding rig document")
	}
	return l.Build(&doc)
}

// Build validates doc and converts it to a model. Skin bones are registered
// in document order, so the first skin entry gets palette index 0.
func (l *Loader) Build(doc *Document) (*animation.Model, error) {
	skel, err := buildSkeleton(doc.Bones)
	if err != nil {
		return nil, err
	}

	model := animation.NewModel(skel)
	for _, s := range doc.Skin {
		idx, ok := skel.Find(s.Bone)
		if !ok {
			return nil, errors.Wrapf(ErrUnknownBone, "skin bone %q", s.Bone)
		}

		inv := skel.Nodes[idx].Global
		if s.InverseBind != nil && !s.InverseBind.IsZero() {
			inv = s.InverseBind.Matrix4()
		} else if inv, ok = inv.InverseOK(); !ok {
			return nil, errors.Wrapf(ErrSingularBind, "skin bone %q", s.Bone)
		}

		if _, err := model.RegisterBone(s.Bone, inv); err != nil {
			return nil, errors.Wrapf(err, "skin bone %q", s.Bone)
		}
	}

	for _, c := range doc.Clips {
		clip, err := l.buildClip(c)
		if err != nil {
			return nil, errors.Wrapf(err, "clip %q", c.Name)
		}
		if _, err := model.AddClip(clip); err != nil {
			return nil, errors.Wrapf(err, "clip %q", c.Name)
		}
	}

	l.log.Debug("rig imported",
		zap.String("name", doc.Name),
		zap.Int("nodes", len(skel.Nodes)),
		zap.Int("bones", model.BoneCount()),
		zap.Int("clips", model.ClipCount()))
	return model, nil
}

func buildSkeleton(bones []BoneDoc) (*animation.Skeleton, error) {
	index := make(map[string]int, len(bones))
	for i, b := range bones {
		if _, dup := index[b.Name]; dup {
			return nil, errors.Wrapf(ErrDuplicateBone, "bone %q", b.Name)
		}
		index[b.Name] = i
	}

	nodes := make([]animation.BoneNode, len(bones))
	for i, b := range bones {
		nodes[i] = animation.BoneNode{
			Name:  b.Name,
			Local: b.Pose.Matrix4(),
		}
		for _, child := range b.Children {
			c, ok := index[child]
			if !ok {
				return nil, errors.Wrapf(ErrUnknownBone, "bone %q child %q", b.Name, child)
			}
			nodes[i].Children = append(nodes[i].Children, c)
		}
	}

	skel, err := animation.NewSkeleton(nodes)
	if err != nil {
		return nil, errors.Wrap(err, "skeleton")
	}
	return skel, nil
}

func (l *Loader) buildClip(c ClipDoc) (*animation.Clip, error) {
	channels := make([]*animation.Channel, 0, len(c.Channels))
	for _, cd := range c.Channels {
		ch, err := buildChannel(cd)
		if err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}

	tps := c.TicksPerSecond
	if tps <= 0 {
		tps = l.DefaultTicksPerSecond
	}
	return animation.NewClip(c.Name, c.Duration, tps, channels)
}

func buildChannel(cd ChannelDoc) (*animation.Channel, error) {
	positions := make([]animation.PositionKey, len(cd.Positions))
	for i, k := range cd.Positions {
		positions[i] = animation.PositionKey{Time: k.Time, Value: math.Vec3FromArray(k.Value)}
	}
	rotations := make([]animation.RotationKey, len(cd.Rotations))
	for i, k := range cd.Rotations {
		rotations[i] = animation.RotationKey{Time: k.Time, Value: quat(k.Value).Normalize()}
	}
	scales := make([]animation.ScaleKey, len(cd.Scales))
	for i, k := range cd.Scales {
		scales[i] = animation.ScaleKey{Time: k.Time, Value: math.Vec3FromArray(k.Value)}
	}
	return animation.NewChannel(cd.Bone, positions, rotations, scales)
}
