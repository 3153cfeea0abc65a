package main

import (
	"fmt"
	stdmath "math"

	"github.com/Faultbox/rigcore/internal/config"
	"github.com/Faultbox/rigcore/internal/ecs"
	"github.com/Faultbox/rigcore/internal/logger"
	"github.com/Faultbox/rigcore/internal/scene"
	"github.com/Faultbox/rigcore/pkg/math"
)

// cmdScene builds a three-node chain, moves the hand between parents and
// checks that its world pose survives each move.
func cmdScene(cfg *config.Config) error {
	s := scene.New(logger.Named("scene"))
	tol := cfg.Scene.Tolerance

	body := s.CreateEntity()
	arm, err := s.CreateChild(body)
	if err != nil {
		return err
	}
	hand, err := s.CreateChild(arm)
	if err != nil {
		return err
	}

	s.SetTranslation(body, math.Vec3{X: 2}, scene.Relative)
	s.SetRotationAxis(body, math.Vec3{Y: 1}, stdmath.Pi/2)
	s.SetTranslation(arm, math.Vec3{Y: 1}, scene.Relative)
	s.SetScale(arm, math.Vec3{X: 2, Y: 2, Z: 2})
	s.SetTranslation(hand, math.Vec3{Z: 0.5}, scene.Relative)

	names := map[ecs.Entity]string{body: "body", arm: "arm", hand: "hand"}
	printScene(s, names, "initial")

	before := s.WorldMatrix(hand, scene.Absolute)
	if err := s.AddChild(body, hand); err != nil {
		return err
	}
	printScene(s, names, "hand moved to body")
	fmt.Printf("pose preserved: %v\n\n", s.WorldMatrix(hand, scene.Absolute).ApproxEqual(before, tol))

	if err := s.RemoveChild(body, hand); err != nil {
		return err
	}
	printScene(s, names, "hand detached")
	fmt.Printf("pose preserved: %v\n\n", s.WorldMatrix(hand, scene.Absolute).ApproxEqual(before, tol))

	s.Act(body, scene.TranslateAction(math.Vec3{Y: -1}))
	printScene(s, names, "body subtree lowered")

	s.DestroyEntity(body)
	delete(names, body)
	printScene(s, names, "body destroyed")
	return nil
}

func printScene(s *scene.Scene, names map[ecs.Entity]string, title string) {
	fmt.Printf("== %s (%d entities)\n", title, s.Len())
	for _, root := range s.Roots() {
		for _, e := range s.Visit(root) {
			parent := "-"
			if p, ok := s.Parent(e); ok {
				parent = names[p]
			}
			fmt.Printf("  %-5s parent %-5s world %v\n", names[e], parent, s.WorldTranslation(e, scene.Absolute))
			fmt.Printf("        %s\n", formatMat(s.WorldMatrix(e, scene.Absolute)))
		}
	}
}
