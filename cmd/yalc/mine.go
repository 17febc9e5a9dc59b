package yalc

import (
	"context"
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var mineCmd = &cobra.Command{
	Use:   "mine [address]",
	Short: "Trigger block production on the ledger service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		c, _, err := runCore(ctx, args[0])
		if err != nil {
			return err
		}

		bar := progressbar.NewOptions(-1,
			progressbar.OptionSetDescription("Mining block..."),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionClearOnFinish(),
		)

		result := c.Mine(ctx)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		var mineErr error
	wait:
		for {
			select {
			case mineErr = <-result:
				break wait
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
		_ = bar.Finish()

		snap := c.Snapshot()
		fmt.Println(snap.Status)

		return mineErr
	},
}
