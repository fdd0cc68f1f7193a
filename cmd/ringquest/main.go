// Command ringquest runs the game in the terminal.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/nathoo/ringquest/config"
	"github.com/nathoo/ringquest/loader"
	"github.com/nathoo/ringquest/tui"
)

// Set via -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "print version and exit")
		configPath  = flag.String("config", "ringquest.toml", "path to the config file")
		dataDir     = flag.String("data", "", "override the game data directory")
		seed        = flag.Int64("seed", 0, "override the RNG seed (0 = wall clock)")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("ringquest %s (%s)\n", version, commit)
		return
	}

	if err := run(*configPath, *dataDir, *seed); err != nil {
		fmt.Fprintln(os.Stderr, "ringquest:", err)
		os.Exit(1)
	}
}

func run(configPath, dataDir string, seed int64) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dataDir != "" {
		cfg.Game.DataDir = dataDir
	}
	if seed == 0 {
		seed = cfg.Game.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	defs, err := loader.Load(cfg.Game.DataDir, log)
	if err != nil {
		log.Error("load game data", zap.Error(err))
		return fmt.Errorf("load game data: %w", err)
	}

	log.Info("starting", zap.String("version", version), zap.Int64("seed", seed))
	return tui.Run(defs, cfg, seed, log)
}
