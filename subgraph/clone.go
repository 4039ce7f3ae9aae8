package subgraph

// Clone returns a deep copy of sg.
//
// Every node is copied with CopyFrom, so feature vectors and adjacency sets
// are duplicated rather than shared, and the ordering index is copied in
// order. Cloning a nil subgraph returns nil and no error.
func (sg *Subgraph) Clone() (*Subgraph, error) {
	if sg == nil {
		return nil, nil
	}

	clone, err := New(len(sg.Nodes), WithController(sg.rc))
	if err != nil {
		return nil, err
	}

	var featureCount int64
	for i := range sg.Nodes {
		featureCount += int64(len(sg.Nodes[i].Features))
	}
	if err := clone.reserve(featureCount, 4); err != nil {
		clone.Release()
		return nil, err
	}

	clone.BestK = sg.BestK
	clone.DensityRadius = sg.DensityRadius
	clone.NumLabels = sg.NumLabels
	clone.NumFeatures = sg.NumFeatures
	clone.MinDensity = sg.MinDensity
	clone.MaxDensity = sg.MaxDensity
	clone.K = sg.K

	for i := range sg.Nodes {
		clone.Nodes[i].CopyFrom(&sg.Nodes[i])
	}
	copy(clone.Ordered, sg.Ordered)

	return clone, nil
}
