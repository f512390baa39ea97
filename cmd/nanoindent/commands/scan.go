package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/nanoindent/internal/core/domain"
)

func (c *CLI) newScanCmd() *cobra.Command {
	var (
		flags selectionFlags
		chunk int
	)
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Fit elastic models over every stored curve, one JSON line per chunk",
		Example: `  nanoindent scan --detector autothresh --emodel constant
  nanoindent scan -r scan.json --chunk-size 100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req domain.ScanRequest
			fromFile, err := flags.decode(cmd, &req)
			if err != nil {
				return err
			}
			if !fromFile {
				if req.Filters, err = flags.selection(); err != nil {
					return err
				}
				req.ZeroForce = flags.zeroForce()
				req.MetadataOverrides = flags.overrides()
				req.Elasticity = flags.elasticity()
			}
			if chunk > 0 {
				req.ChunkSize = chunk
			}
			return c.app.Scan(cmd.Context(), &req, cmd.OutOrStdout())
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVarP(&chunk, "chunk-size", "n", 0, "Curves per chunk (defaults to the configured chunk size)")
	return cmd
}
