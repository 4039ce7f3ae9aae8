// Package conv provides safe integer type conversion utilities.
//
// These functions perform bounds checking to prevent integer overflow/underflow
// when converting between Go's platform-dependent int and the fixed-width
// integers used by the on-disk subgraph layout and the adjacency bitmaps.
//
// For conversions that are provably safe by domain constraints (e.g., loop
// indices bounded by an int32 node count), use direct type casts instead.
package conv
