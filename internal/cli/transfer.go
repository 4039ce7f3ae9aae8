package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hupe1980/opfgo"
)

func (c *CLI) openRepository(cmd *cobra.Command, extra ...opfgo.Option) (*opfgo.Repository, error) {
	store, err := c.cfg.Storage.OpenStore(cmd.Context())
	if err != nil {
		return nil, err
	}
	return opfgo.NewRepository(store, append(c.options(), extra...)...), nil
}

// pushCommand creates the "push" command.
func (c *CLI) pushCommand() *cobra.Command {
	var compression string

	cmd := &cobra.Command{
		Use:   "push <file> [name]",
		Short: "Upload a local dataset to the configured storage",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := filepath.Base(args[0])
			if len(args) == 2 {
				name = args[1]
			}

			extra, err := compressionOption(compression)
			if err != nil {
				return err
			}
			repo, err := c.openRepository(cmd, extra...)
			if err != nil {
				return err
			}

			sg, err := c.readDataset(args[0])
			if err != nil {
				return err
			}
			defer sg.Release()

			p := newProgress(c.Logger)
			if err := repo.Save(cmd.Context(), name, sg); err != nil {
				return err
			}
			p.done(fmt.Sprintf("Pushed %s (%s)", name, plural(sg.Len(), "sample")))
			return nil
		},
	}

	cmd.Flags().StringVar(&compression, "compression", "", "container for the blob: none, lz4 or zstd (default: from the name)")
	return cmd
}

// pullCommand creates the "pull" command.
func (c *CLI) pullCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pull <name>... <dir>",
		Short: "Download datasets from the configured storage into a directory",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, dir := args[:len(args)-1], args[len(args)-1]

			repo, err := c.openRepository(cmd)
			if err != nil {
				return err
			}

			p := newProgress(c.Logger)
			all, err := repo.LoadAll(cmd.Context(), names)
			if err != nil {
				return err
			}
			defer func() {
				for _, sg := range all {
					sg.Release()
				}
			}()

			for i, name := range names {
				target := filepath.Join(dir, filepath.FromSlash(name))
				if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
					return err
				}
				if err := c.writeDataset(target, all[i]); err != nil {
					return err
				}
			}
			p.done(fmt.Sprintf("Pulled %s", plural(len(names), "dataset")))
			return nil
		},
	}
}

// listCommand creates the "list" command.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [prefix]",
		Short: "List datasets in the configured storage",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}

			repo, err := c.openRepository(cmd)
			if err != nil {
				return err
			}
			names, err := repo.List(cmd.Context(), prefix)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
