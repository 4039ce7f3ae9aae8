package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/opfgo/subgraph"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float32 returns, as a float32, a pseudo-random number in [0.0,1.0).
func (r *RNG) Float32() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float32()
}

// FillUniform fills dst with random values in range [0, 1).
// Locks only once per call (preferred over calling Float32 in a loop).
func (r *RNG) FillUniform(dst []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.Float32()
	}
}

// GaussianVectors generates random vectors with values from a standard normal distribution.
// Uses a single backing array for efficiency.
func (r *RNG) GaussianVectors(num int, dimensions int) [][]float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float32, num*dimensions)
	vectors := make([][]float32, num)

	for i := range num {
		vec := data[i*dimensions : (i+1)*dimensions]
		for j := range vec {
			vec[j] = float32(r.rand.NormFloat64())
		}
		vectors[i] = vec
	}

	return vectors
}

// SubgraphConfig describes a random subgraph.
type SubgraphConfig struct {
	Nodes    int
	Features int
	Labels   int
	// PrototypeRate is the probability that a node has no predecessor.
	// Node 0 is always a prototype.
	PrototypeRate float64
	// MaxArcs bounds the adjacency set size of each node.
	MaxArcs int
}

// RandomSubgraph builds a fully populated subgraph. Every predecessor points
// to an earlier node, so the forest is acyclic.
func RandomSubgraph(r *RNG, cfg SubgraphConfig) *subgraph.Subgraph {
	sg, err := subgraph.New(cfg.Nodes)
	if err != nil {
		panic(err)
	}
	labels := max(cfg.Labels, 1)
	sg.NumLabels = labels
	sg.NumFeatures = cfg.Features

	vectors := r.GaussianVectors(cfg.Nodes, cfg.Features)

	r.mu.Lock()
	defer r.mu.Unlock()

	sg.BestK = r.rand.Intn(10) + 1
	sg.DensityRadius = r.rand.Float32()
	sg.MinDensity = r.rand.Float32()
	sg.MaxDensity = sg.MinDensity + r.rand.Float32()
	sg.K = r.rand.Float32()

	for i := range sg.Nodes {
		if err := sg.SetFeatures(i, vectors[i]); err != nil {
			panic(err)
		}
		n := &sg.Nodes[i]
		n.Position = 1000 + i
		n.TrueLabel = r.rand.Intn(labels) + 1
		n.Label = r.rand.Intn(labels) + 1
		if i > 0 && r.rand.Float64() >= cfg.PrototypeRate {
			n.Pred = subgraph.RefTo(r.rand.Intn(i))
		}
		n.Root = r.rand.Intn(i + 1)
		n.PathValue = r.rand.Float32() * 10
		n.Density = r.rand.Float32()
		n.Radius = r.rand.Float32()
		n.Status = uint8(r.rand.Intn(3))
		n.Relevant = uint8(r.rand.Intn(2))
		n.PlateauAdjacent = r.rand.Intn(5)

		if cfg.MaxArcs > 0 && cfg.Nodes > 0 {
			arcs := r.rand.Intn(cfg.MaxArcs + 1)
			for range arcs {
				if err := sg.AddArc(i, r.rand.Intn(cfg.Nodes)); err != nil {
					panic(err)
				}
			}
		}
		sg.Ordered[i] = cfg.Nodes - 1 - i
	}

	return sg
}

// FromVectors builds a subgraph holding vectors with the given true labels
// and positions. labels and positions may be nil.
func FromVectors(vectors [][]float32, labels, positions []int) (*subgraph.Subgraph, error) {
	sg, err := subgraph.New(len(vectors))
	if err != nil {
		return nil, err
	}
	if len(vectors) > 0 {
		sg.NumFeatures = len(vectors[0])
	}
	seen := make(map[int]struct{})
	for i, vec := range vectors {
		if err := sg.SetFeatures(i, vec); err != nil {
			sg.Release()
			return nil, err
		}
		if labels != nil {
			sg.Nodes[i].TrueLabel = labels[i]
			seen[labels[i]] = struct{}{}
		}
		if positions != nil {
			sg.Nodes[i].Position = positions[i]
		} else {
			sg.Nodes[i].Position = i
		}
	}
	sg.NumLabels = max(len(seen), 1)
	return sg, nil
}
