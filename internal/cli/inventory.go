package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// NewInventoryCommand lists the ingredient inventory.
func NewInventoryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inventory",
		Short: "List ingredient inventory",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, _, err := loadCore(rootOpts)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			defer w.Flush()
			for _, item := range store.ListInventory() {
				fmt.Fprintf(w, "%s\t%s %s\n", item.Name, item.Quantity.String(), item.Unit)
			}
			return nil
		},
	}
}

// NewRefillCommand refills either a product's stock or an ingredient's
// quantity.
func NewRefillCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refill",
		Short: "Refill product stock or ingredient inventory",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "product <id> <amount>",
		Short: "Raise a product's stock (clamped to max stock)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, _, err := loadCore(rootOpts)
			if err != nil {
				return err
			}
			var amount int
			if _, err := fmt.Sscanf(args[1], "%d", &amount); err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}
			if err := store.RefillProduct(args[0], amount); err != nil {
				return err
			}
			p, err := store.GetProduct(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s stock is now %d\n", p.Name, p.Stock)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "inventory <name> <amount>",
		Short: "Add quantity to an ingredient",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, _, err := loadCore(rootOpts)
			if err != nil {
				return err
			}
			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}
			if err := store.RefillInventory(args[0], amount); err != nil {
				return err
			}
			item, err := store.GetInventoryItem(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s %s\n", item.Name, item.Quantity, item.Unit)
			return nil
		},
	})

	return cmd
}

// NewAlertsCommand prints refill alerts.
func NewAlertsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "alerts",
		Short: "List products needing a refill",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, _, err := loadCore(rootOpts)
			if err != nil {
				return err
			}

			alerts := store.RefillAlerts()
			if len(alerts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no refill alerts")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			defer w.Flush()
			for _, a := range alerts {
				fmt.Fprintf(w, "%s\t%s\tstock %d\tneeds %d\n", a.Level, a.ProductName, a.Stock, a.Needed)
			}
			return nil
		},
	}
}
