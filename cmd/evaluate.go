package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/watcheth/beaconledger/internal/clock"
	"github.com/watcheth/beaconledger/internal/config"
	"github.com/watcheth/beaconledger/internal/evaluator"
	"github.com/watcheth/beaconledger/internal/logger"
	"github.com/watcheth/beaconledger/internal/store"
	"github.com/watcheth/beaconledger/internal/types"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Replay archived attestations and stream LEDGER confirmation records",
	RunE: func(cmd *cobra.Command, args []string) error {
		var cfg config.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("parse config: %w", err)
		}

		st, err := store.Open(cfg.GetDBPath())
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		chainSpec := clock.Spec{
			SlotsPerEpoch:   viper.GetUint64("slots_per_epoch"),
			SecondsPerSlot:  viper.GetUint64("seconds_per_slot"),
			GenesisUnixtime: viper.GetInt64("genesis_unixtime"),
		}
		if chainSpec.SlotsPerEpoch == 0 {
			chainSpec.SlotsPerEpoch = 32
		}

		if err := evaluator.Run(os.Stdout, st, cfg.GetQuorums(), types.Slot(cfg.MaxSlot), chainSpec); err != nil {
			logger.Error("evaluator run failed: %v", err)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
}
