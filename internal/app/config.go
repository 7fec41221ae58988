package app

import "flag"

// Config carries the command-line settings shared by the frontends.
type Config struct {
	Sim   string
	Seed  int64
	Count int
	W     int
	H     int
	TPS   int
	HUD   int
	Synth bool
}

// NewConfig returns the default configuration.
func NewConfig() *Config {
	return &Config{
		Sim:   "field",
		Seed:  1337,
		W:     1280,
		H:     720,
		TPS:   60,
		Synth: true,
	}
}

// Bind registers the configuration onto fs as command-line flags.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run (field, specimen)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "deterministic seed")
	fs.IntVar(&c.Count, "count", c.Count, "initial bloom count (0 uses the sim default)")
	fs.IntVar(&c.W, "w", c.W, "view width in pixels")
	fs.IntVar(&c.H, "h", c.H, "view height in pixels")
	fs.IntVar(&c.TPS, "tps", c.TPS, "simulation ticks per second")
	fs.IntVar(&c.HUD, "hud", c.HUD, "parameter panel width in pixels (0 disables)")
	fs.BoolVar(&c.Synth, "synth", c.Synth, "drive the field from the built-in synth instead of silent oscillators")
}
