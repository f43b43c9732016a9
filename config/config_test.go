package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	c := DefaultConfig()
	is.Equal(c.GetInt(ConfigDepthOpening), 8)
	is.Equal(c.GetInt(ConfigDepthDeepEndgame), 8)
	is.Equal(c.GetInt(ConfigDepthWide), 5)
	is.Equal(c.GetInt(ConfigDepthDefault), 7)
	is.Equal(c.GetInt(ConfigWideThreshold), 25)
	is.Equal(c.GetInt(ConfigEndgameThreshold), 4)
	is.True(c.GetBool(ConfigUsePruning))
	is.True(!c.GetBool(ConfigDebug))
}

func TestLoadFlags(t *testing.T) {
	is := is.New(t)
	c, err := Load([]string{"--depth-wide", "3", "--debug", "--use-pruning=false", "best", "4"})
	is.NoErr(err)
	is.Equal(c.Args(), []string{"best", "4"})
	is.Equal(c.GetInt(ConfigDepthWide), 3)
	is.True(c.GetBool(ConfigDebug))
	is.True(!c.GetBool(ConfigUsePruning))
	// untouched keys keep their defaults
	is.Equal(c.GetInt(ConfigDepthDefault), 7)
}

func TestLoadEnv(t *testing.T) {
	is := is.New(t)
	t.Setenv("UTTT_DEPTH_DEFAULT", "6")
	c, err := Load(nil)
	is.NoErr(err)
	is.Equal(c.GetInt(ConfigDepthDefault), 6)
}

func TestLoadBadFlag(t *testing.T) {
	is := is.New(t)
	_, err := Load([]string{"--no-such-flag"})
	is.True(err != nil)
}

func TestAdjustRelativePaths(t *testing.T) {
	is := is.New(t)
	c := DefaultConfig()
	c.Set(ConfigSearchLogPath, "trace.yaml")
	abs := filepath.Join(os.TempDir(), "cpu.prof")
	c.Set(ConfigCPUProfile, abs)
	c.AdjustRelativePaths("/opt/uttt")
	is.Equal(c.GetString(ConfigSearchLogPath), "/opt/uttt/trace.yaml")
	is.Equal(c.GetString(ConfigCPUProfile), abs)
}
