package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/opfgo"
	"github.com/hupe1980/opfgo/subgraph"
)

// convertCommand creates the "convert" command.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		prototypes  bool
		compression string
	)

	cmd := &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert a dataset between layouts and containers",
		Long: `Convert reads <in> and writes <out>. A .txt extension selects the text
layout, anything else the binary layout. A trailing .zst or .lz4 selects a
compressed container on either side.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			extra, err := compressionOption(compression)
			if err != nil {
				return err
			}
			p := newProgress(c.Logger)

			sg, err := c.readDataset(args[0])
			if err != nil {
				return err
			}
			defer sg.Release()

			out := sg
			if prototypes {
				protos, err := opfgo.ExtractPrototypes(sg, c.options()...)
				if err != nil {
					return err
				}
				defer protos.Release()
				out = protos
			}

			if err := c.writeDataset(args[1], out, extra...); err != nil {
				return err
			}
			p.done(convertSummary(args[1], out))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&prototypes, "prototypes", "p", false,
		"write only the nodes without a predecessor; files carry no forest, so this only thins datasets whose predecessors were set in memory")
	cmd.Flags().StringVar(&compression, "compression", "", "container for <out>: none, lz4 or zstd (default: from the extension)")
	return cmd
}

func convertSummary(file string, sg *subgraph.Subgraph) string {
	return fmt.Sprintf("Wrote %s (%s)", file, plural(sg.Len(), "sample"))
}
