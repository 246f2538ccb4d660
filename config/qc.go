package config

// QCCfg configures stratified delta-mass sampling.
type QCCfg struct {
	// Samples is the number of bucket draws used when the caller does not request a count.
	Samples int `yaml:"samples"`

	// Seed makes sampling reproducible. Zero means a time-derived seed.
	Seed uint64 `yaml:"seed"`

	// DrawsPerSec caps the draws a sampling run resolves per second. Zero means unpaced.
	DrawsPerSec int `yaml:"draws_per_sec"`
}

func (cfg *QCCfg) Enabled() bool {
	return cfg != nil
}
