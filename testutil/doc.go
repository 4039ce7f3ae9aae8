// Package testutil provides testing utilities for opfgo.
//
// This package is intended for use in tests and benchmarks only.
//
// # Random Subgraphs
//
//	rng := testutil.NewRNG(seed)
//	sg := testutil.RandomSubgraph(rng, testutil.SubgraphConfig{Nodes: 100, Features: 16, Labels: 3})
//
// RandomSubgraph fills every node field, including forest linkage and
// adjacency, so copies and codecs can be checked field by field.
package testutil
