// The bot speaks the theaigames.com line protocol on stdin and stdout.
// Logs go to stderr only.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/pprof"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/uttt/config"
	"github.com/domino14/uttt/shell"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if ex, err := os.Executable(); err == nil {
		cfg.AdjustRelativePaths(filepath.Dir(ex))
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}
	level := zerolog.InfoLevel
	if cfg.GetBool(config.ConfigDebug) {
		level = zerolog.DebugLevel
	} else if l, err := zerolog.ParseLevel(cfg.GetString(config.ConfigLogLevel)); err == nil {
		level = l
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()

	if p := cfg.GetString(config.ConfigCPUProfile); p != "" {
		f, err := os.Create(p)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
	}

	if err := shell.BotLoop(cfg, os.Stdin, os.Stdout); err != nil {
		log.Error().Err(err).Msg("reading-stdin")
	}
}
