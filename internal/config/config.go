// Package config loads the simulator's run configuration from a sectioned
// TOML file (spec.md §6).
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jwmdev/brtsim/internal/model"
)

// Config is the complete run configuration (spec.md §6's key table).
type Config struct {
	General  GeneralConfig  `toml:"general"`
	Stop     StopConfig     `toml:"stop"`
	Signal   SignalConfig   `toml:"signal"`
	Schedule ScheduleConfig `toml:"schedule"`
	Velocity VelocityConfig `toml:"velocity"`
	Time     TimeConfig     `toml:"time"`
}

type GeneralConfig struct {
	Route       string `toml:"route"`
	MorningPeak string `toml:"morningPeak"`
	EveningPeak string `toml:"eveningPeak"`
}

type StopConfig struct {
	DistAvg float64 `toml:"distAvg"`
	DistSd  float64 `toml:"distSd"`
}

type SignalConfig struct {
	DistAvg float64 `toml:"distAvg"`
	DistSd  float64 `toml:"distSd"`
}

type ScheduleConfig struct {
	StartTime string  `toml:"startTime"`
	Shift     int     `toml:"shift"`
	Avg       float64 `toml:"avg"` // minutes
	Sd        float64 `toml:"sd"`  // minutes
}

type VelocityConfig struct {
	Avg   float64 `toml:"avg"` // km/h
	Sd    float64 `toml:"sd"`  // km/h
	Limit float64 `toml:"limit"`
	Low   float64 `toml:"low"`
}

type TimeConfig struct {
	Tmax            float64 `toml:"Tmax"`
	SchemeThreshold float64 `toml:"schemeThreshold"`
}

// ConfigError wraps a configuration problem with the offending key.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Key, e.Reason)
}

// Load reads and parses the TOML file at path.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks required keys and value ranges, returning the first
// problem found as a *ConfigError.
func (c *Config) Validate() error {
	if c.Stop.DistAvg <= 0 {
		return &ConfigError{Key: "stop.distAvg", Reason: "must be positive"}
	}
	if c.Signal.DistAvg <= 0 {
		return &ConfigError{Key: "signal.distAvg", Reason: "must be positive"}
	}
	if c.Schedule.StartTime == "" {
		return &ConfigError{Key: "schedule.startTime", Reason: "required"}
	}
	if c.Schedule.Shift <= 0 {
		return &ConfigError{Key: "schedule.shift", Reason: "must be a positive integer"}
	}
	if c.Schedule.Avg <= 0 {
		return &ConfigError{Key: "schedule.avg", Reason: "must be positive"}
	}
	if c.Velocity.Avg <= 0 {
		return &ConfigError{Key: "velocity.avg", Reason: "must be positive"}
	}
	if c.Velocity.Limit <= c.Velocity.Low {
		return &ConfigError{Key: "velocity.limit", Reason: "must exceed velocity.low"}
	}
	if c.Time.Tmax <= 0 {
		return &ConfigError{Key: "time.Tmax", Reason: "must be positive"}
	}
	if c.Time.SchemeThreshold <= 0 || c.Time.SchemeThreshold > 1 {
		return &ConfigError{Key: "time.schemeThreshold", Reason: "must be in (0, 1]"}
	}
	return nil
}

// ParseHHMM converts an "HHMM" clock string to seconds-of-day.
func ParseHHMM(hhmm string) (float64, error) {
	if len(hhmm) != 4 {
		return 0, fmt.Errorf("bad HHMM %q", hhmm)
	}
	hh, err := strconv.Atoi(hhmm[:2])
	if err != nil {
		return 0, fmt.Errorf("bad hour in %q: %w", hhmm, err)
	}
	mm, err := strconv.Atoi(hhmm[2:])
	if err != nil {
		return 0, fmt.Errorf("bad minute in %q: %w", hhmm, err)
	}
	return float64(hh*3600 + mm*60), nil
}

// defaultPeakSpan is the fallback window length for a single-clock peak
// spec, 3540s (59 minutes), per spec.md §6.
const defaultPeakSpan = 3540

// ParsePeakWindow accepts "HHMM-HHMM" or a single "HHMM" (→ start,
// start+3540s), per spec.md §6.
func ParsePeakWindow(spec string) (model.Window, error) {
	parts := strings.SplitN(spec, "-", 2)
	start, err := ParseHHMM(parts[0])
	if err != nil {
		return model.Window{}, err
	}
	if len(parts) == 1 {
		return model.Window{Start: start, End: start + defaultPeakSpan}, nil
	}
	end, err := ParseHHMM(parts[1])
	if err != nil {
		return model.Window{}, err
	}
	return model.Window{Start: start, End: end}, nil
}
