package rules

import "github.com/richoux/microPhantom/explore"

// Params are the numeric thresholds of the rule plan. The compiler
// interpolates them into rule conditions; the exploration thresholds are
// handed to the heat map.
type Params struct {
	// WorkerCap stops bases from training once this many workers exist.
	WorkerCap int `mapstructure:"worker_cap" yaml:"worker_cap"`
	// SmallMapSurface is the largest map area (cells) treated as a small map:
	// barracks are built in place and the early rush is enabled.
	SmallMapSurface int `mapstructure:"small_map_surface" yaml:"small_map_surface"`
	RushTickLimit   int `mapstructure:"rush_tick_limit" yaml:"rush_tick_limit"`
	RushArmyLimit   int `mapstructure:"rush_army_limit" yaml:"rush_army_limit"`

	EarlyFogReveal int `mapstructure:"early_fog_reveal" yaml:"early_fog_reveal"`
	LateFogReveal  int `mapstructure:"late_fog_reveal" yaml:"late_fog_reveal"`
	FogPhaseTick   int `mapstructure:"fog_phase_tick" yaml:"fog_phase_tick"`
}

// DefaultParams returns the thresholds tuned for the standard microRTS maps.
func DefaultParams() Params {
	th := explore.DefaultThresholds()
	return Params{
		WorkerCap:       4,
		SmallMapSurface: 144,
		RushTickLimit:   400,
		RushArmyLimit:   2,
		EarlyFogReveal:  th.EarlyReveal,
		LateFogReveal:   th.LateReveal,
		FogPhaseTick:    th.PhaseTick,
	}
}

// Validate clamps every threshold to a sane range.
func (p *Params) Validate() {
	p.WorkerCap = clampInt(p.WorkerCap, 1, 64)
	p.SmallMapSurface = clampInt(p.SmallMapSurface, 0, 1<<20)
	p.RushTickLimit = clampInt(p.RushTickLimit, 0, 1<<20)
	p.RushArmyLimit = clampInt(p.RushArmyLimit, 0, 64)
	p.EarlyFogReveal = clampInt(p.EarlyFogReveal, 1, 1<<10)
	p.LateFogReveal = clampInt(p.LateFogReveal, 1, p.EarlyFogReveal)
	p.FogPhaseTick = clampInt(p.FogPhaseTick, 0, 1<<24)
}

// Thresholds returns the exploration part of the parameters.
func (p Params) Thresholds() explore.Thresholds {
	return explore.Thresholds{
		EarlyReveal: p.EarlyFogReveal,
		LateReveal:  p.LateFogReveal,
		PhaseTick:   p.FogPhaseTick,
	}
}

// clampInt restricts v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
