package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newIncreaseCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "increase <category> <id> <delta>",
		Short: "Increase the stock of an item, a negative delta decreases it",
		Args:  cobra.ExactArgs(3), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := lookupCategory(args[0])
			if err != nil {
				return err
			}

			id, err := parseID(args[1])
			if err != nil {
				return err
			}

			delta, err := strconv.ParseInt(args[2], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid delta %q: %w", args[2], err)
			}

			if err := c.seedIfEmpty(cmd.Context()); err != nil {
				return err
			}

			printReport(cmd.OutOrStdout(), cat.increase(cmd.Context(), c.manager, id, int32(delta)))

			return nil
		},
	}

	// a negative delta is an argument and not a flag.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func newRemoveCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <category> <id>",
		Short: "Remove an item",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := lookupCategory(args[0])
			if err != nil {
				return err
			}

			id, err := parseID(args[1])
			if err != nil {
				return err
			}

			if err := c.seedIfEmpty(cmd.Context()); err != nil {
				return err
			}

			printReport(cmd.OutOrStdout(), cat.remove(cmd.Context(), c.manager, id))

			return nil
		},
	}
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", arg, err)
	}

	return id, nil
}
