package config

import "time"

type TelemetryCfg struct {
	// Interval between two cache statistics log lines.
	// Example: "5s".
	Interval time.Duration `yaml:"interval"`
}

func (cfg *TelemetryCfg) Enabled() bool {
	return cfg != nil
}
