package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/nanoindent/internal/core/domain"
)

func (c *CLI) newProcessCmd() *cobra.Command {
	var (
		flags  selectionFlags
		single bool
	)
	cmd := &cobra.Command{
		Use:   "process [curve ids...]",
		Short: "Derive the force, indentation and elasticity graphs of curves",
		Example: `  nanoindent process 1 2 3 --detector autothresh:zeroRange=300
  nanoindent process 4 --detector autothresh --fmodel hertz --emodel constant
  nanoindent process -r request.json`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req domain.Request
			fromFile, err := flags.decode(cmd, &req)
			if err != nil {
				return err
			}
			if !fromFile {
				if len(args) == 0 {
					// Display command usage help without returning an error
					_ = cmd.Help()
					return nil
				}
				if req.Filters, err = flags.selection(); err != nil {
					return err
				}
				req.Single = single
				req.ZeroForce = flags.zeroForce()
				req.MetadataOverrides = flags.overrides()
				req.Elasticity = flags.elasticity()
			}
			if len(args) > 0 {
				if req.CurveIDs, err = parseIDs(args); err != nil {
					return err
				}
			}
			return c.app.Process(cmd.Context(), &req, cmd.OutOrStdout())
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVarP(&single, "single", "s", false, "Overlay fitted models on every curve")
	return cmd
}
