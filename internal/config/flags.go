package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagDT     = flag.Float64("dt", 0, "Frame step in seconds")
	flagFrames = flag.Int("frames", 0, "Number of frames to simulate")
	flagLog    = flag.String("log", "", "Log file path")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments left after ParseFlags.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagDT > 0 {
		cfg.Animation.FrameStep = float32(*flagDT)
	}
	if *flagFrames > 0 {
		cfg.Animation.Frames = *flagFrames
	}
	if *flagLog != "" {
		cfg.Logging.LogFile = *flagLog
	}
}
