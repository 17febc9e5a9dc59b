package yalc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/openledger/yalc/internal/client"
	"github.com/openledger/yalc/internal/config"
	"github.com/openledger/yalc/internal/core"
	"github.com/openledger/yalc/internal/metrics"
	"github.com/openledger/yalc/internal/store"
)

var watchCmd = &cobra.Command{
	Use:   "watch [address]",
	Short: "Follow the chain and log new blocks as they are forged",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		watchCfg := config.LoadWatchConfigFromCLI()
		if err := watchCfg.Validate(); err != nil {
			return fmt.Errorf("invalid watch configuration: %w", err)
		}

		clientCfg := config.LoadClientConfigFromCLI()
		if err := clientCfg.Validate(); err != nil {
			return fmt.Errorf("invalid client configuration: %w", err)
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		handleInterrupt(cancel)

		ops := metrics.NewOps()
		c := core.New(store.New(), client.New(args[0], clientCfg.Timeout), ops)

		if watchCfg.EnablePrometheus {
			server, err := metrics.CreateMetricsServer(ops, watchCfg.PrometheusAddr)
			if err != nil {
				return fmt.Errorf("failed to start metrics server: %w", err)
			}
			defer func() {
				sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer scancel()
				_ = server.Shutdown(sctx)
			}()
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			c.Run(gctx)
			return nil
		})
		g.Go(func() error {
			defer cancel()
			return watchChain(gctx, c, watchCfg.PollInterval)
		})

		return g.Wait()
	},
}

// watchChain performs the startup sync and then polls the service, logging
// every block that appears beyond the last seen height. Poll failures keep
// the existing view and are already logged by the core.
func watchChain(ctx context.Context, c *core.Core, interval uint) error {
	if err := <-c.Sync(ctx); err != nil {
		if errors.Is(err, core.ErrStopped) || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("initial sync failed: %w", err)
	}

	var last uint64
	snap := c.Snapshot()
	if n := len(snap.Chain); n > 0 {
		last = snap.Chain[n-1].Index
	}
	slog.Info("Watching chain", "height", last, "poll_interval", interval)

	ticker := time.NewTicker(time.Duration(interval) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			<-c.Sync(ctx)
			snap := c.Snapshot()
			for _, block := range snap.Chain {
				if block.Index > last {
					slog.Info("New block",
						"index", block.Index,
						"proof", block.Proof,
						"transactions", len(block.Transactions))
					last = block.Index
				}
			}
		}
	}
}

// handleInterrupt handles interrupt signals for graceful shutdown.
func handleInterrupt(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		slog.Info("Received interrupt signal, shutting down...")
		cancel()
	}()
}

func init() {
	watchCmd.Flags().UintP("poll-interval", "t", 2, "seconds between chain polls")
	watchCmd.Flags().Bool("enable-prometheus", false, "Enable Prometheus metrics server")
	watchCmd.Flags().String("prometheus-addr", "0.0.0.0:2112", "Address and port of the Prometheus metrics server")
	if err := viper.BindPFlags(watchCmd.Flags()); err != nil {
		slog.Error("Failed to bind watchCmd flags", "error", err)
	}
}
