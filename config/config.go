// Package config loads the sidecar's runtime configuration from an optional
// file and PHANTOM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/richoux/microPhantom/model"
	"github.com/richoux/microPhantom/rules"
)

// Solver modes.
const (
	ModeProcess = "process" // spawn the solver binary for every request
	ModeDial    = "dial"    // connect to a solver that is already listening
	ModeRandom  = "random"  // no solver: draw production at random
)

var (
	ErrInvalidMode    = errors.New("invalid solver mode")
	ErrInvalidTimeout = errors.New("solver timeout must be positive")
)

// SolverConfig selects and tunes the production policy.
type SolverConfig struct {
	Mode    string        `mapstructure:"mode"`
	Command string        `mapstructure:"command"`
	Args    []string      `mapstructure:"args"`
	Address string        `mapstructure:"address"`
	Timeout time.Duration `mapstructure:"timeout"`
	Samples int           `mapstructure:"samples"`
	Seed    uint64        `mapstructure:"seed"`
}

type Config struct {
	Socket     string        `mapstructure:"socket"`
	LogLevel   string        `mapstructure:"logLevel"`
	UnitTypes  string        `mapstructure:"unitTypes"`
	TickBudget time.Duration `mapstructure:"tickBudget"`
	Solver     SolverConfig  `mapstructure:"solver"`
	Rules      rules.Params  `mapstructure:"rules"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("socket", "/tmp/microphantom.sock")
	v.SetDefault("logLevel", "info")
	v.SetDefault("unitTypes", "")
	v.SetDefault("tickBudget", "0s")

	v.SetDefault("solver.mode", ModeProcess)
	v.SetDefault("solver.command", "./solver_cpp")
	v.SetDefault("solver.args", []string{})
	v.SetDefault("solver.address", "127.0.0.1:1085")
	v.SetDefault("solver.timeout", "100ms")
	v.SetDefault("solver.samples", 50)
	v.SetDefault("solver.seed", 0)

	p := rules.DefaultParams()
	v.SetDefault("rules.worker_cap", p.WorkerCap)
	v.SetDefault("rules.small_map_surface", p.SmallMapSurface)
	v.SetDefault("rules.rush_tick_limit", p.RushTickLimit)
	v.SetDefault("rules.rush_army_limit", p.RushArmyLimit)
	v.SetDefault("rules.early_fog_reveal", p.EarlyFogReveal)
	v.SetDefault("rules.late_fog_reveal", p.LateFogReveal)
	v.SetDefault("rules.fog_phase_tick", p.FogPhaseTick)
}

// Load reads configuration from path (any format viper understands; empty
// for none), applies PHANTOM_* environment overrides and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("PHANTOM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	switch cfg.Solver.Mode {
	case ModeProcess, ModeDial, ModeRandom:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, cfg.Solver.Mode)
	}
	if cfg.Solver.Mode != ModeRandom && cfg.Solver.Timeout <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimeout, cfg.Solver.Timeout)
	}
	cfg.Rules.Validate()
	return &cfg, nil
}

// Level parses LogLevel, defaulting to info.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

type unitTypesFile struct {
	Types []model.UnitType `yaml:"types"`
}

// LoadUnitTypes reads a YAML ruleset. An empty path yields the standard
// microRTS types.
func LoadUnitTypes(path string) (*model.UnitTypeTable, error) {
	if path == "" {
		return model.NewUnitTypeTable(model.DefaultUnitTypes())
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f unitTypesFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	t, err := model.NewUnitTypeTable(f.Types)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
