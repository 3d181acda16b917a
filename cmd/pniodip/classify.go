package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tturner/pniodip/internal/pnio"
)

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <frame-id>...",
		Short: "Classify PROFINET frame identifiers",
		Long: `Classify one or more frame identifiers into their transport class.

Arguments may be numeric IDs (hex like 0x8001 or decimal) or symbolic
names like "RT_CLASS_1" or "DCP-Identify-ReqPDU"; names resolve to the
canonical (lowest) ID of their class before classification.`,
		Example: `  pniodip classify 0x8001
  pniodip classify 0x0100 0xC000 0xFEFE
  pniodip classify RT_CLASS_3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				id, ok := pnio.Resolve(arg)
				if !ok {
					return fmt.Errorf("unrecognized frame ID %q", arg)
				}
				c := pnio.Classify(id)
				marker := ""
				if pnio.IsRTC(id) {
					marker = "  [cyclic real-time]"
				}
				fmt.Fprintf(os.Stdout, "0x%04X  %s%s\n", uint16(id), c, marker)
			}
			return nil
		},
	}
}
