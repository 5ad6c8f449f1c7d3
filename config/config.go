package config

import "github.com/namsral/flag"

// Config holds the runtime knobs shared by the shell and the batch
// runner. Values can come from flags or environment variables.
type Config struct {
	TopMoves      int
	FirstTopMoves int
	FirstGames    int
	MaxMoves      int
	LevelFile     string
	TraceDBPath   string
	Debug         bool
}

func (c *Config) Load(args []string) error {
	fs := flag.NewFlagSet("spidersolver", flag.ContinueOnError)
	fs.IntVar(&c.TopMoves, "top-moves", 2, "draw-requiring branches to expand per node")
	fs.IntVar(&c.FirstTopMoves, "first-top-moves", 3, "wider branch cap for the opening window")
	fs.IntVar(&c.FirstGames, "first-games", 5, "cumulative move count covered by the opening window")
	fs.IntVar(&c.MaxMoves, "max-moves", 100, "bound used when a level has no known minimum")
	fs.StringVar(&c.LevelFile, "level-file", "", "YAML file of level definitions to load at startup")
	fs.StringVar(&c.TraceDBPath, "trace-db", "", "SQLite path for decision traces; empty disables tracing")
	fs.BoolVar(&c.Debug, "debug", false, "log at debug level")
	return fs.Parse(args)
}
