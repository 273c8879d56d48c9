package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/go-arrower/warehouse/inventory"
)

func newDemoCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk through the inventory and the ways operations can fail",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			empty, err := c.manager.IsEmpty(cmd.Context())
			if err != nil {
				return err //nolint:wrapcheck // error message is already descriptive
			}

			if empty {
				if err := c.manager.Seed(cmd.Context()); err != nil {
					return err //nolint:wrapcheck // error message is already descriptive
				}
			}

			runDemo(cmd.Context(), cmd.OutOrStdout(), c.manager)

			return nil
		},
	}
}

func runDemo(ctx context.Context, w io.Writer, m *inventory.Manager) {
	fmt.Fprintln(w, "Groceries:")
	inventory.PrintAllItems(ctx, m, w, m.Groceries())

	fmt.Fprintln(w, "\nElectronics:")
	inventory.PrintAllItems(ctx, m, w, m.Electronics())

	fmt.Fprintln(w, "\n--- Error demos ---")

	tablet, err := inventory.NewElectronic(1, "Tablet", 5, "Apple", 12)
	if err == nil {
		err = m.Electronics().AddItem(ctx, tablet)
	}

	if err != nil {
		failure.Fprintf(w, "Duplicate add: %v\n", err) //nolint:errcheck // best effort output
	}

	printReport(w, inventory.RemoveItemByID(ctx, m, m.Groceries(), 999))

	if err := m.Electronics().UpdateQuantity(ctx, 2, -5); err != nil {
		failure.Fprintf(w, "Invalid quantity: %v\n", err) //nolint:errcheck // best effort output
	}

	printReport(w, inventory.IncreaseStock(ctx, m, m.Groceries(), 2, 10))
}
