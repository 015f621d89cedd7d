// Package cli implements the kopi operations command line: the same
// core API the graphical front-ends consume, exposed for admins and
// scripts.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/kopi/internal/catalog"
	"github.com/roach88/kopi/internal/config"
	"github.com/roach88/kopi/internal/ledger"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	ConfigPath string
}

// NewRootCommand creates the root command for the kopi CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "kopi",
		Short:         "kopi - coffee shop catalog and order ledger",
		Long:          "Operations tooling for the shared file-backed shop catalog and order ledger.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if opts.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "kopi.yaml", "path to config file")

	cmd.AddCommand(NewMenuCommand(opts))
	cmd.AddCommand(NewInventoryCommand(opts))
	cmd.AddCommand(NewRefillCommand(opts))
	cmd.AddCommand(NewAlertsCommand(opts))
	cmd.AddCommand(NewOrdersCommand(opts))
	cmd.AddCommand(NewCompleteCommand(opts))
	cmd.AddCommand(NewBackupCommand(opts))
	cmd.AddCommand(NewWatchCommand(opts))

	return cmd
}

// loadCore builds the loaded store and ledger every subcommand starts
// from.
func loadCore(opts *RootOptions) (*config.Config, *catalog.Store, *ledger.Ledger, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, nil, nil, err
	}
	store := catalog.NewStore(cfg)
	if err := store.Load(); err != nil {
		return nil, nil, nil, err
	}
	return cfg, store, ledger.NewLedger(cfg), nil
}
