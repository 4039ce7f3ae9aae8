package subgraph

import (
	"slices"

	"github.com/hupe1980/opfgo/adjacency"
)

// Node is one sample of a subgraph.
type Node struct {
	// Features is the feature vector, NumFeatures long once populated.
	Features []float32
	// Adjacency holds neighbour indices into the same subgraph. nil means none.
	Adjacency *adjacency.Set

	// Position correlates the node with its row in the source dataset.
	Position int
	// TrueLabel is the ground-truth class.
	TrueLabel int
	// Label is the assigned class.
	Label int

	// Pred is the parent in the optimum-path forest; Nil for prototypes.
	Pred Ref
	// Root is the forest root this node traces to.
	Root int
	// PathValue is the cost of the optimum path reaching this node.
	PathValue float32

	Density         float32
	Radius          float32
	Status          uint8
	Relevant        uint8
	PlateauAdjacent int
}

// IsPrototype reports whether the node has no predecessor.
func (n *Node) IsPrototype() bool { return n.Pred.IsNil() }

// CopyFrom makes n a deep copy of src. The feature vector and adjacency set
// are duplicated; every other field is copied by value.
func (n *Node) CopyFrom(src *Node) {
	*n = *src
	n.Features = slices.Clone(src.Features)
	n.Adjacency = src.Adjacency.Clone()
}

// AddNeighbor inserts id into the node's adjacency set, creating it on demand.
// Range checking against the owning subgraph is done by Subgraph.AddArc.
func (n *Node) AddNeighbor(id int) error {
	if n.Adjacency == nil {
		n.Adjacency = adjacency.New()
	}
	return n.Adjacency.Add(id)
}

// SwapNodes exchanges the contents of a and b, including ownership of their
// feature vectors and adjacency sets. It does not allocate.
func SwapNodes(a, b *Node) {
	*a, *b = *b, *a
}
