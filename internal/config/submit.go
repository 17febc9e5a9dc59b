package config

import "github.com/spf13/viper"

// SubmitConfig carries the raw form fields. Validation is the submitter's
// local gate, not the CLI's.
type SubmitConfig struct {
	Sender    string
	Recipient string
	Amount    string
}

func LoadSubmitConfigFromCLI() SubmitConfig {
	return SubmitConfig{
		Sender:    viper.GetString("sender"),
		Recipient: viper.GetString("recipient"),
		Amount:    viper.GetString("amount"),
	}
}
