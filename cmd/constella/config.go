package main

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config collects the driver settings, read from an optional key=value
// configuration file and overridden by key=value command line arguments.
type Config struct {
	Workers         int
	PrimeTableLimit uint64
	Pattern         []uint64
	PatternMin      []bool
	PrimorialNumber int
	PrimorialOffset uint64
	SieveBits       int
	Difficulty      float64
	TupleLengthMin  int
	RefreshInterval float64
	MetricsBind     string
}

func loadConfig(path string, overrides []string) (Config, error) {
	v := viper.New()
	v.SetConfigType("properties")
	v.SetDefault("Difficulty", 1024)
	v.SetDefault("SieveBits", 25)
	v.SetDefault("RefreshInterval", 5.0)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "reading configuration file %s", path)
		}
	}
	for _, kv := range overrides {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return Config{}, errors.Errorf("malformed override %q, want key=value", kv)
		}
		v.Set(strings.TrimSpace(key), strings.TrimSpace(value))
	}

	cfg := Config{
		Workers:         v.GetInt("Workers"),
		PrimeTableLimit: v.GetUint64("PrimeTableLimit"),
		PrimorialNumber: v.GetInt("PrimorialNumber"),
		PrimorialOffset: v.GetUint64("PrimorialOffset"),
		SieveBits:       v.GetInt("SieveBits"),
		Difficulty:      v.GetFloat64("Difficulty"),
		TupleLengthMin:  v.GetInt("TupleLengthMin"),
		RefreshInterval: v.GetFloat64("RefreshInterval"),
		MetricsBind:     v.GetString("MetricsBind"),
	}
	if cfg.SieveBits < 6 || cfg.SieveBits > 40 {
		return Config{}, errors.Errorf("SieveBits %d out of range [6, 40]", cfg.SieveBits)
	}
	if cfg.Difficulty < 16 {
		return Config{}, errors.Errorf("Difficulty %.0f too low, want at least 16", cfg.Difficulty)
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = 5.0
	}

	var err error
	if s := v.GetString("ConstellationPattern"); s != "" {
		if cfg.Pattern, err = parseGapPattern(s); err != nil {
			return Config{}, errors.Wrap(err, "parsing ConstellationPattern")
		}
	}
	if s := v.GetString("ConstellationPatternMin"); s != "" {
		if cfg.PatternMin, err = parseMinPattern(s); err != nil {
			return Config{}, errors.Wrap(err, "parsing ConstellationPatternMin")
		}
	}
	return cfg, nil
}

// parseGapPattern turns a comma-separated gap list like "0, 2, 4, 2, 4, 6, 2"
// into cumulative offsets (0, 2, 6, 8, 12, 18, 20).
func parseGapPattern(s string) ([]uint64, error) {
	parts := strings.Split(s, ",")
	offsets := make([]uint64, 0, len(parts))
	var sum uint64
	for _, part := range parts {
		gap, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid gap %q", strings.TrimSpace(part))
		}
		sum += gap
		offsets = append(offsets, sum)
	}
	return offsets, nil
}

// parseMinPattern turns a comma-separated flag list like "1,1,0,0" into the
// required-position mask.
func parseMinPattern(s string) ([]bool, error) {
	parts := strings.Split(s, ",")
	mask := make([]bool, 0, len(parts))
	for _, part := range parts {
		switch strings.TrimSpace(part) {
		case "1", "true":
			mask = append(mask, true)
		case "0", "false":
			mask = append(mask, false)
		default:
			return nil, errors.Errorf("invalid flag %q, want 0 or 1", strings.TrimSpace(part))
		}
	}
	return mask, nil
}
