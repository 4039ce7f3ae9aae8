// Package persistence provides fixed-width binary field IO and atomic file
// helpers for subgraph datasets.
//
// All integers are 4-byte signed little-endian values and all feature values
// are 4-byte IEEE-754 floats. Fields are encoded explicitly, so the layout does
// not depend on the host's in-memory representation.
package persistence
