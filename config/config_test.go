package config

import (
	"testing"

	"github.com/matryer/is"
)

func TestLoadDefaults(t *testing.T) {
	is := is.New(t)

	cfg := &Config{}
	is.NoErr(cfg.Load(nil))
	is.Equal(cfg.TopMoves, 2)
	is.Equal(cfg.FirstTopMoves, 3)
	is.Equal(cfg.FirstGames, 5)
	is.Equal(cfg.MaxMoves, 100)
	is.Equal(cfg.LevelFile, "")
	is.Equal(cfg.Debug, false)
}

func TestLoadFlags(t *testing.T) {
	is := is.New(t)

	cfg := &Config{}
	is.NoErr(cfg.Load([]string{
		"-top-moves", "4", "-first-top-moves", "6",
		"-level-file", "levels.yaml", "-trace-db", "trace.db", "-debug",
	}))
	is.Equal(cfg.TopMoves, 4)
	is.Equal(cfg.FirstTopMoves, 6)
	is.Equal(cfg.LevelFile, "levels.yaml")
	is.Equal(cfg.TraceDBPath, "trace.db")
	is.Equal(cfg.Debug, true)
}

func TestLoadBadFlag(t *testing.T) {
	is := is.New(t)

	cfg := &Config{}
	is.True(cfg.Load([]string{"-no-such-flag"}) != nil)
}
