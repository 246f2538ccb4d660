package config

type MetricsCfg struct {
	// Namespace prefixes every collector name.
	Namespace string `yaml:"namespace"`
}

func (cfg *MetricsCfg) Enabled() bool {
	return cfg != nil
}
