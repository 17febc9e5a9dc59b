package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type WatchConfig struct {
	PollInterval     uint
	EnablePrometheus bool
	PrometheusAddr   string
}

func (c WatchConfig) Validate() error {
	if c.PollInterval == 0 {
		return fmt.Errorf("poll interval must be greater than zero")
	}
	if c.EnablePrometheus && c.PrometheusAddr == "" {
		return fmt.Errorf("missing prometheus address")
	}
	return nil
}

func LoadWatchConfigFromCLI() WatchConfig {
	return WatchConfig{
		PollInterval:     viper.GetUint("poll-interval"),
		EnablePrometheus: viper.GetBool("enable-prometheus"),
		PrometheusAddr:   viper.GetString("prometheus-addr"),
	}
}
