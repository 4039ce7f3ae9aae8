package subgraph

// Prototypes builds a new subgraph from the nodes of sg that have no
// predecessor, in source order.
//
// The result has NumLabels == 1 and sg's NumFeatures. Each prototype gets a
// copy of its feature vector plus its TrueLabel, Label, Pred and Position, so
// distance matrices indexed by position stay valid across levels. Root,
// adjacency, path value, density and the remaining fields are left zero.
// If no node qualifies the result is a valid empty subgraph.
func (sg *Subgraph) Prototypes() (*Subgraph, error) {
	if sg == nil {
		return nil, ErrNilSubgraph
	}

	count := sg.CountPrototypes()
	out, err := New(count, WithController(sg.rc))
	if err != nil {
		return nil, err
	}
	out.NumLabels = 1
	out.NumFeatures = sg.NumFeatures

	j := 0
	for i := range sg.Nodes {
		src := &sg.Nodes[i]
		if !src.Pred.IsNil() {
			continue
		}
		if len(src.Features) != sg.NumFeatures {
			out.Release()
			return nil, &InvariantError{Node: i, Field: "features", Expected: sg.NumFeatures, Actual: len(src.Features)}
		}
		if err := out.SetFeatures(j, src.Features); err != nil {
			out.Release()
			return nil, err
		}

		dst := &out.Nodes[j]
		dst.TrueLabel = src.TrueLabel
		dst.Label = src.Label
		dst.Pred = src.Pred
		dst.Position = src.Position
		j++
	}

	return out, nil
}
