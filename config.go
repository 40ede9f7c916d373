package main

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// RunConfig is the [run] section of the configuration file.
type RunConfig struct {
	Material     string  `ini:"material"`      // "Al" or "SS"
	Epsilon      float64 `ini:"epsilon"`       // steady-state threshold, K/s
	TMax         float64 `ini:"t_max"`         // simulated-time limit, s
	RecordStride int     `ini:"record_stride"` // plate steps between records
	Output       string  `ini:"output"`        // history CSV path
	LogLevel     string  `ini:"log_level"`
	BandMin      float64 `ini:"band_min"` // plausible band lower bound, K
	BandMax      float64 `ini:"band_max"` // plausible band upper bound, K
}

// OperatingConfig is the [operating] section. A zero value keeps the
// reference operating point for that entry.
type OperatingConfig struct {
	U        float64 `ini:"u"`         // mean water velocity, m/s
	HWater   float64 `ini:"h_water"`   // water-plate coefficient, W/(m2 K)
	HAir     float64 `ini:"h_air"`     // air-surface coefficient, W/(m2 K)
	TFIn     float64 `ini:"t_f_in"`    // coolant inlet after the step, K
	TInf     float64 `ini:"t_inf"`     // ambient temperature, K
	TInitial float64 `ini:"t_initial"` // initial solid temperature, K
}

type Config struct {
	Run       RunConfig
	Operating OperatingConfig
}

func DefaultConfig() Config {
	return Config{
		Run: RunConfig{
			Material:     string(MaterialAl),
			Epsilon:      1e-3,
			TMax:         600.0,
			RecordStride: 50,
			Output:       "history.csv",
			LogLevel:     "info",
			BandMin:      DefaultPhysicalBand.t_min,
			BandMax:      DefaultPhysicalBand.t_max,
		},
	}
}

// load_config reads an ini file over the defaults. Missing sections and
// keys keep their default values.
func load_config(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := ini.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := f.Section("run").MapTo(&cfg.Run); err != nil {
		return cfg, fmt.Errorf("config %s [run]: %w", path, err)
	}
	if err := f.Section("operating").MapTo(&cfg.Operating); err != nil {
		return cfg, fmt.Errorf("config %s [operating]: %w", path, err)
	}
	return cfg, nil
}

/*
Builds the parameter set for the configured material and operating point.

	Notes:
		Operating overrides change the stability limits, so the time
		step is re-derived and the whole set re-validated after they
		are applied.
*/
func (cfg Config) build_parameters() (*Parameters, error) {
	params, err := NewParameters(Material(cfg.Run.Material))
	if err != nil {
		return nil, err
	}

	if cfg.Run.BandMin >= cfg.Run.BandMax {
		return nil, fmt.Errorf("physical band is empty: (%g, %g) K", cfg.Run.BandMin, cfg.Run.BandMax)
	}
	params.band = PhysicalBand{t_min: cfg.Run.BandMin, t_max: cfg.Run.BandMax}

	op := cfg.Operating
	if op.U != 0 {
		params.u = op.U
	}
	if op.HWater != 0 {
		params.h_water = op.HWater
	}
	if op.HAir != 0 {
		params.h_air = op.HAir
	}
	if op.TFIn != 0 {
		params.t_f_in = op.TFIn
	}
	if op.TInf != 0 {
		params.t_inf = op.TInf
	}
	if op.TInitial != 0 {
		params.t_initial = op.TInitial
	}

	// Overrides move the stability limits and the band that the initial
	// temperatures are validated against, so re-derive and re-validate.
	if err := params.finalize(); err != nil {
		return nil, err
	}
	return params, nil
}
