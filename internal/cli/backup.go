package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/kopi/internal/backup"
	"github.com/roach88/kopi/internal/watch"
)

// NewBackupCommand snapshots the data root and prunes old snapshots.
func NewBackupCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Snapshot the data directory and prune old snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := loadCore(rootOpts)
			if err != nil {
				return err
			}
			mgr := backup.NewManager(cfg)
			dir, err := mgr.Snapshot()
			if err != nil {
				return err
			}
			if err := mgr.Prune(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "snapshot written to %s\n", dir)
			return nil
		},
	}
}

// NewWatchCommand tails catalog changes made by other processes,
// printing a line per reload. Mostly a diagnostic for the change
// notification path.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the data directory and report catalog changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, _, err := loadCore(rootOpts)
			if err != nil {
				return err
			}

			w := watch.New(cfg, store, nil)
			report := func(what string) func() {
				return func() { fmt.Fprintf(cmd.OutOrStdout(), "%s changed\n", what) }
			}
			w.OnCategoriesChanged(report("categories"))
			w.OnProductsChanged(report("products"))
			w.OnSpecialRequestsChanged(report("special requests"))
			w.OnAddOnsChanged(report("add-ons"))

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return w.Run(ctx)
		},
	}
}
