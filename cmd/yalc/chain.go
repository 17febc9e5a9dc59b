package yalc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openledger/yalc/internal/config"
	"github.com/openledger/yalc/internal/models"
	"github.com/openledger/yalc/internal/output"
)

var chainCmd = &cobra.Command{
	Use:   "chain [address]",
	Short: "Fetch and display the current chain",
	Long:  `Fetch the full chain from the ledger service and print it as JSON, or dump it to files with --out.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dumpCfg := config.LoadDumpConfigFromCLI()
		if err := dumpCfg.Validate(); err != nil {
			return fmt.Errorf("invalid dump configuration: %w", err)
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		c, _, err := runCore(ctx, args[0])
		if err != nil {
			return err
		}

		if err := <-c.Sync(ctx); err != nil {
			return fmt.Errorf("failed to fetch chain: %w", err)
		}
		snap := c.Snapshot()

		if dumpCfg.Out != "" {
			return dumpChain(ctx, snap.Chain, dumpCfg)
		}

		data, err := json.MarshalIndent(snap.Chain, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal chain: %w", err)
		}
		fmt.Println(string(data))

		return nil
	},
}

func dumpChain(ctx context.Context, chain models.Chain, cfg config.DumpConfig) error {
	var handler output.OutputHandler
	var err error
	switch cfg.Format {
	case "json":
		handler, err = output.NewJSONOutputHandler(cfg.Out)
	case "tsv":
		handler, err = output.NewTSVOutputHandler(cfg.Out)
	}
	if err != nil {
		return fmt.Errorf("failed to create %s output handler: %w", cfg.Format, err)
	}
	defer handler.Close()

	for i := range chain {
		if err := handler.WriteBlock(ctx, &chain[i]); err != nil {
			return fmt.Errorf("failed to write block %d: %w", chain[i].Index, err)
		}
	}

	slog.Info("Chain dumped", "blocks", len(chain), "out", cfg.Out, "format", cfg.Format)
	return nil
}

func init() {
	chainCmd.Flags().StringP("out", "o", "", "dump the chain to this directory instead of stdout")
	chainCmd.Flags().StringP("format", "f", "json", "dump format (json|tsv)")
	if err := viper.BindPFlags(chainCmd.Flags()); err != nil {
		slog.Error("Failed to bind chainCmd flags", "error", err)
	}
}
