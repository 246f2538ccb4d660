package config

// AccessMode defines how a controller treats a cache miss.
type AccessMode string

const (
	// ModeCacheOnly answers from the cache only. A miss yields the documented default value.
	ModeCacheOnly AccessMode = "cache_only"

	// ModeCacheAndSource resolves a miss from the underlying source and populates the cache.
	ModeCacheAndSource AccessMode = "cache_and_source"
)

// Valid reports whether m is one of the known modes.
func (m AccessMode) Valid() bool {
	return m == ModeCacheOnly || m == ModeCacheAndSource
}

// Controller groups configuration of a data access controller and its satellites.
// Optional subsystems are disabled by leaving them nil.
type Controller struct {
	// Mode is the initial data access mode. It may be changed at runtime via SetMode.
	// Supported values:
	//   - "cache_only":       a miss returns the documented default, no source I/O
	//   - "cache_and_source": a miss is resolved from the source and stored (default)
	Mode AccessMode `yaml:"mode"`

	Logs LogsCfg `yaml:"logs"`

	// Telemetry enables periodic cache statistics logs.
	// If nil, no background goroutine is started.
	Telemetry *TelemetryCfg `yaml:"telemetry"`

	// QC configures the delta-mass quality-control sampler.
	// If nil, defaults are used.
	QC *QCCfg `yaml:"qc"`

	// Metrics configures Prometheus collectors.
	// If nil, collectors are still created but never registered, even when a registerer is given.
	Metrics *MetricsCfg `yaml:"metrics"`
}
