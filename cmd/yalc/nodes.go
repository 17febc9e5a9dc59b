package yalc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/openledger/yalc/internal/client"
	"github.com/openledger/yalc/internal/config"
)

var nodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "Manage the ledger service's peer nodes",
}

var registerCmd = &cobra.Command{
	Use:   "register [address] [peer]...",
	Short: "Announce peer node addresses to the ledger service",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		clientCfg := config.LoadClientConfigFromCLI()
		if err := clientCfg.Validate(); err != nil {
			return fmt.Errorf("invalid client configuration: %w", err)
		}

		ledger := client.New(args[0], clientCfg.Timeout)
		res, err := ledger.RegisterNodes(cmd.Context(), args[1:])
		if err != nil {
			return fmt.Errorf("failed to register nodes: %w", err)
		}

		fmt.Println(res.Message)
		slog.Info("Registered nodes", "total", len(res.TotalNodes))
		return nil
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [address]",
	Short: "Ask the ledger service to run its consensus algorithm",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		c, _, err := runCore(ctx, args[0])
		if err != nil {
			return err
		}

		resolveErr := <-c.Resolve(ctx)

		snap := c.Snapshot()
		fmt.Println(snap.Status)

		return resolveErr
	},
}

func init() {
	nodesCmd.AddCommand(registerCmd)
	nodesCmd.AddCommand(resolveCmd)
}
