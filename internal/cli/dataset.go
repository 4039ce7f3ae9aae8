package cli

import (
	"path"
	"strings"

	"github.com/hupe1980/opfgo"
	"github.com/hupe1980/opfgo/compress"
	"github.com/hupe1980/opfgo/subgraph"
)

// isText reports whether name uses the text layout, ignoring any
// compression extension.
func isText(name string) bool {
	return strings.EqualFold(path.Ext(compress.TrimExt(name)), ".txt")
}

func (c *CLI) readDataset(file string) (*subgraph.Subgraph, error) {
	if isText(file) {
		return opfgo.ReadTextFile(file, c.options()...)
	}
	return opfgo.ReadFile(file, c.options()...)
}

func (c *CLI) writeDataset(file string, sg *subgraph.Subgraph, extra ...opfgo.Option) error {
	opts := append(c.options(), extra...)
	if isText(file) {
		return opfgo.WriteTextFile(file, sg, opts...)
	}
	return opfgo.WriteFile(file, sg, opts...)
}

// compressionOption turns a --compression value into a library option.
// An empty value keeps the container implied by the file or blob name.
func compressionOption(name string) ([]opfgo.Option, error) {
	if name == "" {
		return nil, nil
	}
	t, err := compress.ParseType(name)
	if err != nil {
		return nil, err
	}
	return []opfgo.Option{opfgo.WithCompression(t)}, nil
}

