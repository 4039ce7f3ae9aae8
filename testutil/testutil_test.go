package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGaussianVectors(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.GaussianVectors(8, 32)

	assert.Equal(t, 8, len(v))
	assert.Equal(t, 32, len(v[0]))
}

func TestRNG_Deterministic(t *testing.T) {
	a := NewRNG(7)
	b := NewRNG(7)
	assert.Equal(t, a.Intn(1000), b.Intn(1000))
	assert.Equal(t, a.Float32(), b.Float32())
	assert.Equal(t, int64(7), a.Seed())
}

func TestRandomSubgraph(t *testing.T) {
	rng := NewRNG(42)
	sg := RandomSubgraph(rng, SubgraphConfig{Nodes: 50, Features: 4, Labels: 3, PrototypeRate: 0.2, MaxArcs: 5})
	defer sg.Release()

	require.NoError(t, sg.Validate())
	assert.Equal(t, 50, sg.Len())
	assert.Equal(t, 3, sg.NumLabels)
	assert.True(t, sg.Nodes[0].IsPrototype())

	for i := range sg.Nodes {
		if p, ok := sg.Nodes[i].Pred.Index(); ok {
			assert.Less(t, p, i)
		}
	}
}

func TestFromVectors(t *testing.T) {
	sg, err := FromVectors([][]float32{{1, 2}, {3, 4}}, []int{0, 1}, []int{10, 11})
	require.NoError(t, err)
	defer sg.Release()

	assert.Equal(t, 2, sg.NumFeatures)
	assert.Equal(t, 2, sg.NumLabels)
	assert.Equal(t, 11, sg.Nodes[1].Position)
	assert.Equal(t, []float32{3, 4}, sg.Nodes[1].Features)

	_, err = FromVectors([][]float32{{1, 2}, {3}}, nil, nil)
	assert.Error(t, err)
}
