package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/rigcore/internal/animation"
	"github.com/Faultbox/rigcore/internal/config"
	"github.com/Faultbox/rigcore/internal/logger"
	"github.com/Faultbox/rigcore/internal/rig"
	"github.com/Faultbox/rigcore/pkg/math"
)

func loadRig(cfg *config.Config, path string) (*animation.Model, error) {
	l := rig.NewLoader(logger.Named("rig"))
	l.DefaultTicksPerSecond = cfg.Animation.DefaultTicksPerSecond
	return l.Load(path)
}

func cmdInfo(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: rigtool info <rig.yaml>")
	}

	model, err := loadRig(cfg, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Rig:    %s\n", args[0])
	fmt.Printf("Nodes:  %d\n", len(model.Skeleton.Nodes))
	fmt.Printf("Bones:  %d / %d\n", model.BoneCount(), animation.MaxBones)
	fmt.Printf("Clips:  %d\n", model.ClipCount())
	fmt.Println()

	fmt.Println("Skeleton:")
	printNode(model, 0, 1)
	fmt.Println()

	fmt.Println("Clips:")
	for i := 0; i < model.ClipCount(); i++ {
		c := model.Clip(i)
		fmt.Printf("  [%d] %-16s %6.1f ticks @ %5.1f/s (%.2fs), %d channels\n",
			i, c.Name, c.Duration, c.TicksPerSecond, c.Seconds(), len(c.Channels()))
	}
	return nil
}

func printNode(model *animation.Model, idx, depth int) {
	n := model.Skeleton.Nodes[idx]
	slot := ""
	if info, ok := model.Bone(n.Name); ok {
		slot = fmt.Sprintf(" [bone %d]", info.Index)
	}
	fmt.Printf("%s%s%s\n", strings.Repeat("  ", depth), n.Name, slot)
	for _, c := range n.Children {
		printNode(model, c, depth+1)
	}
}

func cmdPlay(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	clipArg := fs.String("clip", "0", "Clip name or index")
	mode := fs.String("mode", "once", "Loop policy: once, times or loop")
	cycles := fs.Int("cycles", 1, "Cycles for -mode times")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return errors.New("usage: rigtool play [-clip name|index] [-mode once|times|loop] [-cycles n] <rig.yaml>")
	}

	policy, err := animation.ParseLoopPolicy(*mode)
	if err != nil {
		return err
	}

	model, err := loadRig(cfg, fs.Arg(0))
	if err != nil {
		return err
	}

	clipIndex, err := resolveClip(model, *clipArg)
	if err != nil {
		return err
	}

	a := animation.NewAnimator(logger.Named("animator"))
	a.Play(model, clipIndex, policy, *cycles)
	printFrame(model, a, 0)

	for frame := 1; frame <= cfg.Animation.Frames && a.IsAnimating(); frame++ {
		a.Update(cfg.Animation.FrameStep)
		printFrame(model, a, frame)
	}
	return nil
}

func resolveClip(model *animation.Model, arg string) (int, error) {
	if i, ok := model.ClipIndex(arg); ok {
		return i, nil
	}
	i, err := strconv.Atoi(arg)
	if err != nil || i < 0 || i >= model.ClipCount() {
		return 0, fmt.Errorf("no clip %q (have %d clips)", arg, model.ClipCount())
	}
	return i, nil
}

func printFrame(model *animation.Model, a *animation.Animator, frame int) {
	fmt.Printf("frame %d  time %.3f  %s\n", frame, a.Time(), a.State())
	palette := a.FinalBoneMatrices()
	for i, name := range model.BoneNames() {
		fmt.Printf("  %-12s %s\n", name, formatMat(palette[i]))
	}
}

func formatMat(m math.Mat4) string {
	var b strings.Builder
	for row := 0; row < 4; row++ {
		if row > 0 {
			b.WriteString(" | ")
		}
		for col := 0; col < 4; col++ {
			if col > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%7.3f", m[col*4+row])
		}
	}
	return b.String()
}

func cmdConfig(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	save := fs.Bool("save", false, "Write to the user config file")
	fs.Parse(args)

	switch {
	case fs.NArg() > 0:
		return cfg.SaveTo(fs.Arg(0))
	case *save:
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(config.DefaultPath())
		return nil
	default:
		return cfg.Write(os.Stdout)
	}
}
