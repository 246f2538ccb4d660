package config

import (
	"fmt"
	"github.com/jmgilman/go/errors"
	"gopkg.in/yaml.v3"
	"os"
	"time"
)

const (
	defaultLogLevel          = "info"
	defaultTelemetryInterval = 5 * time.Second
	defaultQCSamples         = 100
	defaultMetricsNamespace  = "msdata"
)

// AdjustConfig fills defaults for omitted values and validates the rest.
func (cfg *Controller) AdjustConfig() error {
	if cfg.Mode == "" {
		cfg.Mode = ModeCacheAndSource
	}
	if !cfg.Mode.Valid() {
		return errors.Newf(errors.CodeInvalidConfig, "unknown access mode %q", cfg.Mode)
	}

	if cfg.Logs.Level == "" {
		cfg.Logs.Level = defaultLogLevel
	}

	if cfg.Telemetry.Enabled() && cfg.Telemetry.Interval <= 0 {
		cfg.Telemetry.Interval = defaultTelemetryInterval
	}

	if !cfg.QC.Enabled() {
		cfg.QC = &QCCfg{}
	}
	if cfg.QC.Samples < 0 {
		return errors.Newf(errors.CodeInvalidConfig, "qc samples must not be negative, got %d", cfg.QC.Samples)
	}
	if cfg.QC.DrawsPerSec < 0 {
		return errors.Newf(errors.CodeInvalidConfig, "qc draws per second must not be negative, got %d", cfg.QC.DrawsPerSec)
	}
	if cfg.QC.Samples == 0 {
		cfg.QC.Samples = defaultQCSamples
	}

	if cfg.Metrics.Enabled() && cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = defaultMetricsNamespace
	}

	return nil
}

// Default returns an adjusted configuration with every optional subsystem at its default.
func Default() *Controller {
	cfg := &Controller{}
	_ = cfg.AdjustConfig()
	return cfg
}

func LoadConfig(path string) (*Controller, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config yaml file %s: %w", path, err)
	}

	var cfg *Controller
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml from %s: %w", path, err)
	}
	if cfg == nil {
		cfg = &Controller{}
	}
	if err = cfg.AdjustConfig(); err != nil {
		return nil, fmt.Errorf("adjust config from %s: %w", path, err)
	}

	return cfg, nil
}
