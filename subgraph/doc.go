// Package subgraph implements the node collection used as the training and
// working set of an Optimum-Path Forest classifier.
//
// A Subgraph owns a fixed number of nodes. Each node exclusively owns its
// feature vector and its adjacency set; Clone deep-copies both, so no buffer
// is ever shared between two live subgraphs.
//
// # Lifecycle
//
//	sg, err := subgraph.New(3)
//	sg.NumFeatures = 2
//	for i := range sg.Nodes {
//	    feat, _ := sg.AllocFeatures(i)
//	    copy(feat, samples[i])
//	}
//	defer sg.Release()
//
// # Binary layout
//
// Encode and Decode read and write the classic OPF dataset layout: three int32
// header fields (node count, label count, feature count) followed, per node, by
// the int32 position, the int32 true label and the float32 features. All values
// are little-endian. Forest linkage, adjacency and density are not persisted;
// they are rebuilt by re-running the training algorithm.
//
// # Prototypes
//
// A node whose Pred is Nil is a prototype. Prototypes returns a new subgraph
// holding only those nodes, for the next level of a hierarchical forest.
//
// A Subgraph is not safe for concurrent mutation.
package subgraph
