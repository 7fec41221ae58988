package flora

import "strconv"

// Params holds tunable population and growth settings for the field sim.
type Params struct {
	GrowBatch      int
	FastDeathBatch int
	ReactiveMin    int
	ReactiveMax    int

	LifeSpeedBase float64
}

// Config controls the field simulation seed and population behavior.
type Config struct {
	BaseCount int

	Seed int64

	// ColorMode selects a palette: 0 cycles the fixed palettes per spawn
	// cohort, 1..8 pin one palette, anything else rolls free-wheel colors.
	ColorMode int

	// Reactive scales the population target and growth speed with
	// measured musical activity instead of holding BaseCount.
	Reactive bool

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		BaseCount: 80,
		Seed:      1337,
		ColorMode: 9,
		Reactive:  true,
		Params: Params{
			GrowBatch:      10,
			FastDeathBatch: 5,
			ReactiveMin:    30,
			ReactiveMax:    1500,
			LifeSpeedBase:  1.0 / 18.0,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["count"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.BaseCount = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["color_mode"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.ColorMode = parsed
		}
	}
	if v, ok := cfg["reactive"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Reactive = parsed
		}
	}
	if v, ok := cfg["grow_batch"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.GrowBatch = parsed
		}
	}
	if v, ok := cfg["fast_death_batch"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.FastDeathBatch = parsed
		}
	}
	if v, ok := cfg["reactive_min"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.ReactiveMin = parsed
		}
	}
	if v, ok := cfg["reactive_max"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.ReactiveMax = parsed
		}
	}
	if v, ok := cfg["life_speed"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.LifeSpeedBase = parsed
		}
	}
	if c.Params.ReactiveMax < c.Params.ReactiveMin {
		c.Params.ReactiveMax = c.Params.ReactiveMin
	}
	return c
}
