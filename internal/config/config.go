// Package config handles rigtool configuration loading and management.
package config

import "fmt"

// Config holds all settings.
type Config struct {
	Animation AnimationConfig `yaml:"animation"`
	Scene     SceneConfig     `yaml:"scene"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// AnimationConfig holds playback settings.
type AnimationConfig struct {
	// DefaultTicksPerSecond is used for clips that carry no tick rate.
	DefaultTicksPerSecond float32 `yaml:"default_ticks_per_second"`
	// FrameStep is the simulated frame time in seconds.
	FrameStep float32 `yaml:"frame_step"`
	// Frames is how many frames rigtool play advances.
	Frames int `yaml:"frames"`
}

// SceneConfig holds transform hierarchy settings.
type SceneConfig struct {
	// Tolerance is the float comparison epsilon used when verifying poses.
	Tolerance float32 `yaml:"tolerance"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Animation: AnimationConfig{
			DefaultTicksPerSecond: 25,
			FrameStep:             1.0 / 60.0,
			Frames:                10,
		},
		Scene: SceneConfig{
			Tolerance: 1e-5,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate rejects settings the animator cannot run with.
func (c *Config) Validate() error {
	if c.Animation.DefaultTicksPerSecond <= 0 {
		return fmt.Errorf("animation.default_ticks_per_second must be positive, got %v", c.Animation.DefaultTicksPerSecond)
	}
	if c.Animation.FrameStep <= 0 {
		return fmt.Errorf("animation.frame_step must be positive, got %v", c.Animation.FrameStep)
	}
	if c.Scene.Tolerance <= 0 {
		return fmt.Errorf("scene.tolerance must be positive, got %v", c.Scene.Tolerance)
	}
	return nil
}
