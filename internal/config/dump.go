package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type DumpConfig struct {
	Out    string
	Format string
}

func (c DumpConfig) Validate() error {
	switch c.Format {
	case "json", "tsv":
		return nil
	default:
		return fmt.Errorf("invalid dump format: %s. Valid formats are: json|tsv", c.Format)
	}
}

func LoadDumpConfigFromCLI() DumpConfig {
	return DumpConfig{
		Out:    viper.GetString("out"),
		Format: viper.GetString("format"),
	}
}
