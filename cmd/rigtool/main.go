// rigtool inspects rig files, plays their clips and runs a small
// transform hierarchy demo.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/rigcore/internal/config"
	"github.com/Faultbox/rigcore/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	logger.Sugar.Debugf("Config: %+v", cfg)

	code := run(cfg, config.Args())
	logger.Sync()
	os.Exit(code)
}

// run dispatches a subcommand and returns the process exit code. Commands
// report failures as errors so main flushes the logger before exiting.
func run(cfg *config.Config, args []string) int {
	if len(args) < 1 {
		printUsage()
		return 1
	}

	command := args[0]
	args = args[1:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(cfg, args)
	case "play":
		err = cmdPlay(cfg, args)
	case "scene":
		err = cmdScene(cfg)
	case "config":
		err = cmdConfig(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		return 1
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		return 1
	}
	return 0
}

func printUsage() {
	fmt.Println(`rigtool - skeletal rig utility

Usage:
  rigtool [global options] <command> [options]

Global options:
  -config <file>   Config file (default: ./config.yaml or the user config dir)
  -debug           Debug logging
  -dt <seconds>    Frame step for play
  -frames <n>      Frames to simulate for play
  -log <file>      Also log to a rotating file

Commands:
  info <rig.yaml>                                Show skeleton, skin and clips
  play [-clip name|index] [-mode once|times|loop]
       [-cycles n] <rig.yaml>                    Play a clip and print the palette
  scene                                          Run the re-parenting demo
  config [-save] [file]                          Print the effective config, or write it

Examples:
  rigtool info arm.yaml
  rigtool -frames 30 play -clip wave -mode loop arm.yaml
  rigtool -debug scene`)
}
