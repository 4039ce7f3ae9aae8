// Package adjacency provides the neighbour set owned by each subgraph node.
//
// A Set is a compressed bitmap of node indices. It is not safe for concurrent
// mutation; a Set belongs to exactly one node and is deep-copied, never shared,
// when a subgraph is cloned.
package adjacency
