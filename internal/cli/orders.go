package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewOrdersCommand lists active pending orders.
func NewOrdersCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "List active (not completed) orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, led, err := loadCore(rootOpts)
			if err != nil {
				return err
			}

			orders, err := led.LoadActive()
			if err != nil {
				return err
			}
			if len(orders) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no active orders")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			defer w.Flush()
			for _, po := range orders {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d items\t%s\n",
					po.OrderID, po.Status, po.CustomerName, len(po.Lines), po.TotalAmount.StringFixed(2))
			}
			return nil
		},
	}
}

// NewCompleteCommand marks a pending order completed.
func NewCompleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <order-id>",
		Short: "Mark a pending order completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, led, err := loadCore(rootOpts)
			if err != nil {
				return err
			}
			if err := led.MarkCompleted(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "order %s completed\n", args[0])
			return nil
		},
	}
}
