package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"
)

// infoCommand creates the "info" command.
func (c *CLI) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Print a summary of a dataset file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sg, err := c.readDataset(args[0])
			if err != nil {
				return err
			}
			defer sg.Release()

			st := sg.Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "file:       %s\n", args[0])
			fmt.Fprintf(out, "samples:    %d\n", st.Nodes)
			fmt.Fprintf(out, "labels:     %d\n", st.Labels)
			fmt.Fprintf(out, "features:   %d\n", st.Features)
			for _, label := range slices.Sorted(maps.Keys(st.LabelCounts)) {
				fmt.Fprintf(out, "  label %d: %d\n", label, st.LabelCounts[label])
			}
			return nil
		},
	}
}
