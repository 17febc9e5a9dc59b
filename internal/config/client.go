package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type ClientConfig struct {
	Timeout time.Duration
}

func (c ClientConfig) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}
	return nil
}

func LoadClientConfigFromCLI() ClientConfig {
	return ClientConfig{
		Timeout: viper.GetDuration("timeout"),
	}
}
