// Package config loads the engine settings from flags, the environment
// and defaults, in that order of precedence.
package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug               = "debug"
	ConfigLogLevel            = "log-level"
	ConfigDepthOpening        = "depth-opening"
	ConfigDepthDeepEndgame    = "depth-deep-endgame"
	ConfigDepthWide           = "depth-wide"
	ConfigDepthDefault        = "depth-default"
	ConfigWideThreshold       = "wide-threshold"
	ConfigEndgameThreshold    = "endgame-threshold"
	ConfigEvalCachePower      = "eval-cache-power"
	ConfigSearchLogPath       = "search-log-path"
	ConfigUsePruning          = "use-pruning"
	ConfigAutoplayThreads     = "autoplay-threads"
	ConfigAutoplayRandomPlies = "autoplay-random-plies"
	ConfigCPUProfile          = "cpu-profile"
)

// Config is a viper instance with our keys registered on it.
type Config struct {
	*viper.Viper
	args []string
}

func newConfig() *Config {
	c := &Config{Viper: viper.New()}
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigLogLevel, "info")
	c.SetDefault(ConfigDepthOpening, 8)
	c.SetDefault(ConfigDepthDeepEndgame, 8)
	c.SetDefault(ConfigDepthWide, 5)
	c.SetDefault(ConfigDepthDefault, 7)
	c.SetDefault(ConfigWideThreshold, 25)
	c.SetDefault(ConfigEndgameThreshold, 4)
	c.SetDefault(ConfigEvalCachePower, 20)
	c.SetDefault(ConfigSearchLogPath, "")
	c.SetDefault(ConfigUsePruning, true)
	c.SetDefault(ConfigAutoplayThreads, 1)
	c.SetDefault(ConfigAutoplayRandomPlies, 2)
	c.SetDefault(ConfigCPUProfile, "")
	return c
}

// DefaultConfig returns the configuration with every key at its default.
// Tests use it; so can anything that does not care about flags.
func DefaultConfig() *Config {
	return newConfig()
}

// Load builds the configuration from command line args and UTTT_*
// environment variables.
func Load(args []string) (*Config, error) {
	c := newConfig()

	fs := pflag.NewFlagSet("uttt", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigLogLevel, "info", "log level when debug is off: trace, debug, info, warn, error")
	fs.Int(ConfigDepthOpening, 8, "search depth when routed to a board with many moves")
	fs.Int(ConfigDepthDeepEndgame, 8, "search depth when very few moves remain")
	fs.Int(ConfigDepthWide, 5, "search depth for wide free-choice positions")
	fs.Int(ConfigDepthDefault, 7, "search depth otherwise")
	fs.Int(ConfigWideThreshold, 25, "more legal moves than this counts as wide")
	fs.Int(ConfigEndgameThreshold, 4, "this many legal moves or fewer counts as a deep endgame")
	fs.Int(ConfigEvalCachePower, 20, "log2 of the number of evaluation cache entries; 0 disables the cache")
	fs.String(ConfigSearchLogPath, "", "write a YAML trace of every search to this file")
	fs.Bool(ConfigUsePruning, true, "use alpha-beta pruning (turn off for a full-width reference search)")
	fs.Int(ConfigAutoplayThreads, 1, "concurrent games when self-playing")
	fs.Int(ConfigAutoplayRandomPlies, 2, "random opening moves in each self-play game")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	c.args = fs.Args()
	if err := c.BindPFlags(fs); err != nil {
		return nil, err
	}
	c.SetEnvPrefix("uttt")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()
	return c, nil
}

// Args are the command line arguments left over after the flags.
func (c *Config) Args() []string {
	return c.args
}

// AdjustRelativePaths makes relative file paths relative to basepath
// instead of the working directory.
func (c *Config) AdjustRelativePaths(basepath string) {
	for _, key := range []string{ConfigSearchLogPath, ConfigCPUProfile} {
		p := c.GetString(key)
		if p == "" || filepath.IsAbs(p) {
			continue
		}
		c.Set(key, filepath.Join(basepath, p))
	}
}

// SanitizedSettings returns the settings for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
