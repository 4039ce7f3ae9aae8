package subgraph

import (
	"fmt"
	"unsafe"

	"github.com/hupe1980/opfgo/internal/conv"
	"github.com/hupe1980/opfgo/resource"
)

var (
	nodeBytes  = int64(unsafe.Sizeof(Node{}))
	indexBytes = int64(unsafe.Sizeof(int(0)))
)

// Subgraph is a fixed-size collection of nodes plus the collection-wide
// parameters read and written by the forest algorithms.
type Subgraph struct {
	// Nodes holds the samples. Its length is fixed at creation.
	Nodes []Node

	NumLabels   int
	NumFeatures int

	// Ordered is a traversal order over node indices maintained by the
	// training algorithm. It is allocated zero-filled with Len() entries.
	Ordered []int

	BestK int
	// DensityRadius is the feature-space radius used for density estimation.
	DensityRadius float32
	MinDensity    float32
	MaxDensity    float32
	// K is the normalisation constant of the density function.
	K float32

	rc       *resource.Controller
	reserved int64
}

type options struct {
	controller *resource.Controller
}

// Option configures subgraph construction.
type Option func(*options)

// WithController reserves the subgraph's node array, ordering index and
// feature buffers against c. Reservations are returned by Release.
func WithController(c *resource.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}

// New allocates a subgraph of n nodes with unset feature vectors.
//
// Every node starts with Pred == Nil, zero density and Relevant == 0. The
// caller sets NumFeatures and populates each vector before use.
func New(n int, opts ...Option) (*Subgraph, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if n < 0 {
		return nil, fmt.Errorf("%w: negative node count %d", ErrAllocation, n)
	}

	sg := &Subgraph{rc: o.controller}
	if err := sg.reserve(int64(n), nodeBytes+indexBytes); err != nil {
		return nil, fmt.Errorf("%w: %d nodes", err, n)
	}

	sg.Nodes = make([]Node, n)
	sg.Ordered = make([]int, n)
	return sg, nil
}

// decodeChunk bounds how many nodes a decoder allocates ahead of the
// records it has actually read.
const decodeChunk = 4096

// newDecoding starts an empty subgraph that a decoder fills record by
// record up to n nodes. A header that overstates n cannot force a large
// allocation before the body proves it.
func newDecoding(n int, opts []Option) (*Subgraph, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	sg := &Subgraph{rc: o.controller}
	initial := min(n, decodeChunk)
	if err := sg.reserve(int64(initial), nodeBytes); err != nil {
		return nil, fmt.Errorf("%w: %d nodes", err, initial)
	}
	sg.Nodes = make([]Node, 0, initial)
	return sg, nil
}

// appendNode extends Nodes by one zero node and returns its index. Capacity
// grows geometrically but never beyond total.
func (sg *Subgraph) appendNode(total int) (int, error) {
	i := len(sg.Nodes)
	if i == cap(sg.Nodes) {
		newCap := min(max(2*i, decodeChunk), total)
		if err := sg.reserve(int64(newCap-i), nodeBytes); err != nil {
			return 0, fmt.Errorf("%w: %d nodes", err, newCap)
		}
		nodes := make([]Node, i, newCap)
		copy(nodes, sg.Nodes)
		sg.Nodes = nodes
	}
	sg.Nodes = sg.Nodes[:i+1]
	return i, nil
}

// finishDecoding allocates the ordering index once every node is present.
func (sg *Subgraph) finishDecoding() error {
	n := len(sg.Nodes)
	if err := sg.reserve(int64(n), indexBytes); err != nil {
		return fmt.Errorf("%w: ordering index of %d nodes", err, n)
	}
	sg.Ordered = make([]int, n)
	return nil
}

func (sg *Subgraph) reserve(count, size int64) error {
	bytes, err := conv.MulInt64(count, size)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAllocation, err)
	}
	if !sg.rc.TryAcquireMemory(bytes) {
		return fmt.Errorf("%w: memory budget exhausted (%d bytes requested, %d in use)",
			ErrAllocation, bytes, sg.rc.MemoryUsage())
	}
	sg.reserved += bytes
	return nil
}

// unreserve returns bytes to the controller, never more than the subgraph
// holds.
func (sg *Subgraph) unreserve(bytes int64) {
	bytes = min(bytes, sg.reserved)
	sg.rc.ReleaseMemory(bytes)
	sg.reserved -= bytes
}

// Len returns the number of nodes.
func (sg *Subgraph) Len() int {
	if sg == nil {
		return 0
	}
	return len(sg.Nodes)
}

// Controller returns the resource controller the subgraph reserves memory
// against, or nil.
func (sg *Subgraph) Controller() *resource.Controller { return sg.rc }

// Reserved returns the bytes currently reserved against the controller.
func (sg *Subgraph) Reserved() int64 { return sg.reserved }

func (sg *Subgraph) checkIndex(i int) error {
	if i < 0 || i >= len(sg.Nodes) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(sg.Nodes))
	}
	return nil
}

// AllocFeatures gives node i a fresh zeroed vector of NumFeatures values and
// returns it. A vector the node already holds is replaced and its share of
// the memory reservation carries over.
func (sg *Subgraph) AllocFeatures(i int) ([]float32, error) {
	if err := sg.checkIndex(i); err != nil {
		return nil, err
	}
	if sg.NumFeatures < 0 {
		return nil, &InvariantError{Node: -1, Field: "feature count", Expected: 0, Actual: sg.NumFeatures}
	}
	// A replaced vector hands its reservation to the new one.
	delta := int64(sg.NumFeatures - len(sg.Nodes[i].Features))
	if delta > 0 {
		if err := sg.reserve(delta, 4); err != nil {
			return nil, err
		}
	} else {
		sg.unreserve(-delta * 4)
	}
	feat := make([]float32, sg.NumFeatures)
	sg.Nodes[i].Features = feat
	return feat, nil
}

// SetFeatures copies vec into a fresh vector owned by node i. vec must hold
// exactly NumFeatures values.
func (sg *Subgraph) SetFeatures(i int, vec []float32) error {
	if err := sg.checkIndex(i); err != nil {
		return err
	}
	if len(vec) != sg.NumFeatures {
		return &InvariantError{Node: i, Field: "features", Expected: sg.NumFeatures, Actual: len(vec)}
	}
	feat, err := sg.AllocFeatures(i)
	if err != nil {
		return err
	}
	copy(feat, vec)
	return nil
}

// AddArc inserts to into the adjacency set of from.
func (sg *Subgraph) AddArc(from, to int) error {
	if err := sg.checkIndex(from); err != nil {
		return err
	}
	if err := sg.checkIndex(to); err != nil {
		return err
	}
	return sg.Nodes[from].AddNeighbor(to)
}

// Swap exchanges nodes i and j in place. It panics if either index is out
// of range, like slice indexing.
func (sg *Subgraph) Swap(i, j int) {
	SwapNodes(&sg.Nodes[i], &sg.Nodes[j])
}

// Release drops every feature vector, adjacency set, the node array and the
// ordering index, and returns reserved memory to the controller.
//
// Release is a no-op on a nil or already released subgraph. The subgraph
// must not be used afterwards except for further Release calls.
func (sg *Subgraph) Release() {
	if sg == nil {
		return
	}
	for i := range sg.Nodes {
		sg.Nodes[i].Features = nil
		sg.Nodes[i].Adjacency = nil
	}
	sg.Nodes = nil
	sg.Ordered = nil
	sg.unreserve(sg.reserved)
}

// CountPrototypes returns the number of nodes without a predecessor.
func (sg *Subgraph) CountPrototypes() int {
	if sg == nil {
		return 0
	}
	n := 0
	for i := range sg.Nodes {
		if sg.Nodes[i].Pred.IsNil() {
			n++
		}
	}
	return n
}

// Validate checks the structural invariants: non-negative counts, an
// ordering index of Len() entries, every feature vector NumFeatures long, and
// every adjacency and predecessor index inside [0, Len()).
func (sg *Subgraph) Validate() error {
	if sg == nil {
		return ErrNilSubgraph
	}
	n := len(sg.Nodes)
	if sg.NumFeatures < 0 {
		return &InvariantError{Node: -1, Field: "feature count", Expected: 0, Actual: sg.NumFeatures}
	}
	if sg.NumLabels < 0 {
		return &InvariantError{Node: -1, Field: "label count", Expected: 0, Actual: sg.NumLabels}
	}
	if len(sg.Ordered) != n {
		return &InvariantError{Node: -1, Field: "ordering index length", Expected: n, Actual: len(sg.Ordered)}
	}
	if err := sg.validateFeatures(); err != nil {
		return err
	}
	for i := range sg.Nodes {
		node := &sg.Nodes[i]
		if hi, ok := node.Adjacency.Max(); ok && hi >= n {
			return &InvariantError{Node: i, Field: "adjacency index", Expected: n - 1, Actual: hi}
		}
		if p, ok := node.Pred.Index(); ok && p >= n {
			return &InvariantError{Node: i, Field: "predecessor index", Expected: n - 1, Actual: p}
		}
	}
	return nil
}

func (sg *Subgraph) validateFeatures() error {
	for i := range sg.Nodes {
		if got := len(sg.Nodes[i].Features); got != sg.NumFeatures {
			return &InvariantError{Node: i, Field: "features", Expected: sg.NumFeatures, Actual: got}
		}
	}
	return nil
}

// Stats summarises a subgraph.
type Stats struct {
	Nodes      int
	Labels     int
	Features   int
	Prototypes int
	Arcs       int
	// LabelCounts maps each true label to its number of nodes.
	LabelCounts map[int]int
}

// Stats returns summary counts for the subgraph.
func (sg *Subgraph) Stats() Stats {
	if sg == nil {
		return Stats{LabelCounts: map[int]int{}}
	}
	st := Stats{
		Nodes:       len(sg.Nodes),
		Labels:      sg.NumLabels,
		Features:    sg.NumFeatures,
		LabelCounts: make(map[int]int),
	}
	for i := range sg.Nodes {
		node := &sg.Nodes[i]
		if node.Pred.IsNil() {
			st.Prototypes++
		}
		st.Arcs += node.Adjacency.Len()
		st.LabelCounts[node.TrueLabel]++
	}
	return st
}
