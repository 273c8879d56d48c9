package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list [electronics|groceries]",
		Short: "List the items of one or all categories",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := categoryOrder
			if len(args) == 1 {
				if _, err := lookupCategory(args[0]); err != nil {
					return err
				}

				names = args
			}

			if err := c.seedIfEmpty(cmd.Context()); err != nil {
				return err
			}

			w := cmd.OutOrStdout()

			for i, name := range names {
				cat, _ := lookupCategory(name)

				if i > 0 {
					fmt.Fprintln(w)
				}

				fmt.Fprintln(w, cat.title+":")

				if report := cat.print(cmd.Context(), c.manager, w); !report.OK() {
					printReport(w, report)
				}
			}

			return nil
		},
	}
}
