package subgraph

import (
	"fmt"
	"io"

	"github.com/hupe1980/opfgo/internal/conv"
	"github.com/hupe1980/opfgo/persistence"
)

const (
	// MaxNodeCount bounds the node count accepted from a stream header.
	MaxNodeCount = 100_000_000
	// MaxFeatureCount bounds the feature count accepted from a stream header.
	MaxFeatureCount = 1 << 20
)

// Encode writes sg to w in the OPF binary layout.
//
// The subgraph is validated before the first byte is written: every feature
// vector must hold NumFeatures values and every persisted integer must fit in
// 32 bits. Adjacency, forest linkage, density and the auxiliary scalars are
// not written.
func Encode(w io.Writer, sg *Subgraph) error {
	_, err := sg.WriteTo(w)
	return err
}

// WriteTo writes the subgraph in the OPF binary layout.
//
// It matches the io.WriterTo interface.
func (sg *Subgraph) WriteTo(w io.Writer) (int64, error) {
	if sg == nil {
		return 0, ErrNilSubgraph
	}

	header, err := sg.encodeHeader()
	if err != nil {
		return 0, err
	}
	if err := sg.validateFeatures(); err != nil {
		return 0, err
	}
	records, err := sg.encodeRecords()
	if err != nil {
		return 0, err
	}

	bw := persistence.NewBinaryWriter(w)
	if err := bw.WriteInt32s(header[:]...); err != nil {
		return bw.BytesWritten(), err
	}
	for i := range sg.Nodes {
		r := records[i]
		if err := bw.WriteRecord(r[0], r[1], sg.Nodes[i].Features); err != nil {
			return bw.BytesWritten(), fmt.Errorf("subgraph: write node %d: %w", i, err)
		}
	}
	return bw.BytesWritten(), nil
}

func (sg *Subgraph) encodeHeader() ([3]int32, error) {
	var h [3]int32
	fields := [3]struct {
		name string
		v    int
	}{
		{"node count", len(sg.Nodes)},
		{"label count", sg.NumLabels},
		{"feature count", sg.NumFeatures},
	}
	for i, f := range fields {
		if f.v < 0 {
			return h, &InvariantError{Node: -1, Field: f.name, Expected: 0, Actual: f.v}
		}
		v, err := conv.IntToInt32(f.v)
		if err != nil {
			return h, fmt.Errorf("subgraph: %s: %w", f.name, err)
		}
		h[i] = v
	}
	return h, nil
}

func (sg *Subgraph) encodeRecords() ([][2]int32, error) {
	records := make([][2]int32, len(sg.Nodes))
	for i := range sg.Nodes {
		pos, err := conv.IntToInt32(sg.Nodes[i].Position)
		if err != nil {
			return nil, fmt.Errorf("subgraph: node %d position: %w", i, err)
		}
		label, err := conv.IntToInt32(sg.Nodes[i].TrueLabel)
		if err != nil {
			return nil, fmt.Errorf("subgraph: node %d true label: %w", i, err)
		}
		records[i] = [2]int32{pos, label}
	}
	return records, nil
}

// Decode reads a subgraph in the OPF binary layout from r.
//
// Each node gets its position, true label and a freshly allocated feature
// vector; all other fields keep their New defaults. Node storage grows as
// records arrive, so a short stream with an inflated header fails with
// ErrTruncated instead of allocating for the declared count. On failure the partially
// built subgraph is released and a *FormatError describes which section and
// field could not be read.
func Decode(r io.Reader, opts ...Option) (*Subgraph, error) {
	br := persistence.NewBinaryReader(r)

	nnodes, err := br.ReadInt32()
	if err != nil {
		return nil, headerError("node count", err)
	}
	nlabels, err := br.ReadInt32()
	if err != nil {
		return nil, headerError("label count", err)
	}
	nfeats, err := br.ReadInt32()
	if err != nil {
		return nil, headerError("feature count", err)
	}

	if err := checkHeader("node count", nnodes, MaxNodeCount); err != nil {
		return nil, err
	}
	if err := checkHeader("label count", nlabels, -1); err != nil {
		return nil, err
	}
	if err := checkHeader("feature count", nfeats, MaxFeatureCount); err != nil {
		return nil, err
	}

	total := int(nnodes)
	sg, err := newDecoding(total, opts)
	if err != nil {
		return nil, err
	}
	sg.NumLabels = int(nlabels)
	sg.NumFeatures = int(nfeats)

	for range total {
		i, err := sg.appendNode(total)
		if err == nil {
			err = sg.decodeNode(br, i)
		}
		if err != nil {
			sg.Release()
			return nil, err
		}
	}
	if err := sg.finishDecoding(); err != nil {
		sg.Release()
		return nil, err
	}

	return sg, nil
}

func (sg *Subgraph) decodeNode(br *persistence.BinaryReader, i int) error {
	node := &sg.Nodes[i]

	pos, err := br.ReadInt32()
	if err != nil {
		return bodyError(i, "position", err)
	}
	label, err := br.ReadInt32()
	if err != nil {
		return bodyError(i, "true label", err)
	}
	node.Position = int(pos)
	node.TrueLabel = int(label)

	feat, err := sg.AllocFeatures(i)
	if err != nil {
		return err
	}
	if err := br.ReadFloat32SliceInto(feat); err != nil {
		return bodyError(i, "features", err)
	}
	return nil
}

func checkHeader(field string, v int32, limit int32) error {
	if v < 0 || (limit >= 0 && v > limit) {
		return &FormatError{
			Section: SectionHeader,
			Node:    -1,
			Field:   field,
			Err:     fmt.Errorf("%w: %d", ErrInvalidHeader, v),
		}
	}
	return nil
}
