package yalc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openledger/yalc/internal/config"
	"github.com/openledger/yalc/internal/store"
)

var submitCmd = &cobra.Command{
	Use:   "submit [address]",
	Short: "Propose a transaction for inclusion in a future block",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadSubmitConfigFromCLI()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		c, _, err := runCore(ctx, args[0])
		if err != nil {
			return err
		}

		// Mirror the form entry so the snapshot reflects what was typed.
		c.SetField(store.FieldSender, cfg.Sender)
		c.SetField(store.FieldRecipient, cfg.Recipient)
		c.SetField(store.FieldAmount, cfg.Amount)

		submitErr := <-c.Submit(ctx, cfg.Sender, cfg.Recipient, cfg.Amount)

		snap := c.Snapshot()
		fmt.Println(snap.Status)

		return submitErr
	},
}

func init() {
	submitCmd.Flags().StringP("sender", "s", "", "transaction sender")
	submitCmd.Flags().StringP("recipient", "r", "", "transaction recipient")
	submitCmd.Flags().StringP("amount", "a", "", "transaction amount")
	if err := viper.BindPFlags(submitCmd.Flags()); err != nil {
		slog.Error("Failed to bind submitCmd flags", "error", err)
	}
}
