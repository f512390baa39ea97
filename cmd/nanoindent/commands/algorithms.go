package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newAlgorithmsCmd() *cobra.Command {
	var family string
	cmd := &cobra.Command{
		Use:     "algorithms",
		Aliases: []string{"algos"},
		Short:   "List the registered algorithms and their parameters",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Algorithms(cmd.OutOrStdout(), family)
		},
	}
	cmd.Flags().StringVar(&family, "family", "", "Only list one family: filter, cpoint, fmodel or emodel")
	return cmd
}
