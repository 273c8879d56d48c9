package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSeedCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Add the sample items to the inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.manager.Seed(cmd.Context()); err != nil {
				return err //nolint:wrapcheck // error message is already descriptive
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Seeded sample items")

			return nil
		},
	}
}
