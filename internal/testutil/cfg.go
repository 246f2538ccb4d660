package testutil

import "github.com/Borislavv/go-ash-msdata/config"

// Cfg is a fully adjusted configuration with a fixed QC seed and no telemetry loop.
func Cfg() *config.Controller {
	c := &config.Controller{
		Mode: config.ModeCacheAndSource,
		Logs: config.LogsCfg{Level: "warn"},
		QC: &config.QCCfg{
			Samples: 20,
			Seed:    42,
		},
	}
	if err := c.AdjustConfig(); err != nil {
		panic(err)
	}
	return c
}

func CacheOnlyCfg() *config.Controller {
	c := Cfg()
	c.Mode = config.ModeCacheOnly
	return c
}
