package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kpumuk/lazytimeline/internal/config"
	"github.com/kpumuk/lazytimeline/internal/store"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <dataset.yaml>",
		Short: "Write a YAML dataset into Redis.",
		Long:  "Replaces the groups, entries and bounds stored under the key prefix with the dataset.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ds, err := store.LoadDataset(args[0])
			if err != nil {
				return err
			}
			return seed(cmd, cfg, ds)
		},
	}
}

func seed(cmd *cobra.Command, cfg config.Config, ds store.Dataset) error {
	rdb, err := openRedis(cmd, cfg, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = rdb.Close()
	}()

	if err := rdb.Save(cmd.Context(), ds); err != nil {
		return fmt.Errorf("seed %s: %w", rdb.DisplayRedisURL(), err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "seeded %d groups and %d entries into %s\n",
		len(ds.Groups), len(ds.Entries), rdb.DisplayRedisURL())
	return err
}
