package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewMenuCommand lists the catalog the way a menu front-end sees it.
func NewMenuCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "List products by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, _, err := loadCore(rootOpts)
			if err != nil {
				return err
			}

			products := store.ListProducts()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			defer w.Flush()

			for _, cat := range store.ListCategories() {
				fmt.Fprintf(w, "%s\n", cat.Name)
				for _, p := range products {
					if p.Category != cat.Name {
						continue
					}
					fmt.Fprintf(w, "  %s\t%s\t%s\tstock %d\n", p.ID, p.Name, p.Price.StringFixed(2), p.Stock)
				}
			}
			return nil
		},
	}
}
