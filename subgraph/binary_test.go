package subgraph_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/hupe1980/opfgo/resource"
	"github.com/hupe1980/opfgo/subgraph"
	"github.com/hupe1980/opfgo/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioSubgraph(t *testing.T) *subgraph.Subgraph {
	t.Helper()
	sg, err := testutil.FromVectors(
		[][]float32{{1.0, 2.0}, {3.0, 4.0}, {5.0, 6.0}},
		[]int{0, 1, 0},
		[]int{10, 11, 12},
	)
	require.NoError(t, err)
	return sg
}

func TestEncodeDecode_Scenario(t *testing.T) {
	sg := scenarioSubgraph(t)
	defer sg.Release()

	var buf bytes.Buffer
	require.NoError(t, subgraph.Encode(&buf, sg))

	got, err := subgraph.Decode(&buf)
	require.NoError(t, err)
	defer got.Release()

	assert.Equal(t, 3, got.Len())
	assert.Equal(t, 2, got.NumLabels)
	assert.Equal(t, 2, got.NumFeatures)
	assert.Equal(t, []float32{1, 2}, got.Nodes[0].Features)
	assert.Equal(t, []float32{3, 4}, got.Nodes[1].Features)
	assert.Equal(t, []float32{5, 6}, got.Nodes[2].Features)
	assert.Equal(t, 0, got.Nodes[0].TrueLabel)
	assert.Equal(t, 1, got.Nodes[1].TrueLabel)
	assert.Equal(t, 0, got.Nodes[2].TrueLabel)
	assert.Equal(t, 10, got.Nodes[0].Position)
	assert.Equal(t, 11, got.Nodes[1].Position)
	assert.Equal(t, 12, got.Nodes[2].Position)
}

func TestEncode_Layout(t *testing.T) {
	sg := scenarioSubgraph(t)
	defer sg.Release()

	var buf bytes.Buffer
	n, err := sg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(12+3*(8+2*4)), n)
	assert.Equal(t, int(n), buf.Len())

	le := binary.LittleEndian
	b := buf.Bytes()
	assert.Equal(t, uint32(3), le.Uint32(b[0:]))
	assert.Equal(t, uint32(2), le.Uint32(b[4:]))
	assert.Equal(t, uint32(2), le.Uint32(b[8:]))
	// node 1
	off := 12 + 16
	assert.Equal(t, uint32(11), le.Uint32(b[off:]))
	assert.Equal(t, uint32(1), le.Uint32(b[off+4:]))
	assert.Equal(t, float32(3), math.Float32frombits(le.Uint32(b[off+8:])))
	assert.Equal(t, float32(4), math.Float32frombits(le.Uint32(b[off+12:])))
}

func TestEncodeDecode_RoundTripDropsForest(t *testing.T) {
	for _, seed := range []int64{21, 22, 23} {
		sg := testutil.RandomSubgraph(testutil.NewRNG(seed), testutil.SubgraphConfig{
			Nodes: 80, Features: 7, Labels: 3, PrototypeRate: 0.2, MaxArcs: 4,
		})

		var buf bytes.Buffer
		require.NoError(t, subgraph.Encode(&buf, sg))

		got, err := subgraph.Decode(&buf)
		require.NoError(t, err)

		require.Equal(t, sg.Len(), got.Len())
		assert.Equal(t, sg.NumLabels, got.NumLabels)
		assert.Equal(t, sg.NumFeatures, got.NumFeatures)
		assert.Zero(t, got.BestK)
		assert.Zero(t, got.K)
		for i := range sg.Nodes {
			w, g := &sg.Nodes[i], &got.Nodes[i]
			assert.Equal(t, w.Features, g.Features)
			assert.Equal(t, w.Position, g.Position)
			assert.Equal(t, w.TrueLabel, g.TrueLabel)

			assert.True(t, g.IsPrototype())
			assert.Nil(t, g.Adjacency)
			assert.Zero(t, g.Label)
			assert.Zero(t, g.Root)
			assert.Zero(t, g.PathValue)
			assert.Zero(t, g.Density)
			assert.Zero(t, g.Status)
		}
		assert.Equal(t, make([]int, sg.Len()), got.Ordered)

		got.Release()
		sg.Release()
	}
}

func TestEncodeDecode_Empty(t *testing.T) {
	sg, err := subgraph.New(0)
	require.NoError(t, err)
	sg.NumFeatures = 4
	sg.NumLabels = 2

	var buf bytes.Buffer
	require.NoError(t, subgraph.Encode(&buf, sg))
	assert.Equal(t, 12, buf.Len())

	got, err := subgraph.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
	assert.Equal(t, 4, got.NumFeatures)
	assert.Equal(t, 2, got.NumLabels)
}

func TestEncode_InvariantViolation(t *testing.T) {
	sg := scenarioSubgraph(t)
	defer sg.Release()
	sg.Nodes[2].Features = []float32{1}

	var buf bytes.Buffer
	err := subgraph.Encode(&buf, sg)

	var ie *subgraph.InvariantError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 2, ie.Node)
	assert.Zero(t, buf.Len(), "nothing is written for an invalid subgraph")
}

func TestEncode_PositionOverflow(t *testing.T) {
	sg := scenarioSubgraph(t)
	defer sg.Release()
	big := int64(math.MaxInt32) + 1
	sg.Nodes[0].Position = int(big)

	var buf bytes.Buffer
	assert.Error(t, subgraph.Encode(&buf, sg))
	assert.Zero(t, buf.Len())
}

func TestEncode_Nil(t *testing.T) {
	assert.ErrorIs(t, subgraph.Encode(io.Discard, nil), subgraph.ErrNilSubgraph)
}

type failingWriter struct{ after int }

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.after <= 0 {
		return 0, errors.New("disk full")
	}
	w.after--
	return len(p), nil
}

func TestEncode_WriteError(t *testing.T) {
	sg := scenarioSubgraph(t)
	defer sg.Release()

	_, err := sg.WriteTo(&failingWriter{after: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "node 1")
}

func TestDecode_HeaderTruncated(t *testing.T) {
	sg := scenarioSubgraph(t)
	defer sg.Release()
	var buf bytes.Buffer
	require.NoError(t, subgraph.Encode(&buf, sg))
	data := buf.Bytes()

	for _, tc := range []struct {
		n     int
		field string
	}{
		{0, "node count"},
		{3, "node count"},
		{4, "label count"},
		{9, "feature count"},
	} {
		_, err := subgraph.Decode(bytes.NewReader(data[:tc.n]))

		var fe *subgraph.FormatError
		require.ErrorAs(t, err, &fe, "prefix %d", tc.n)
		assert.Equal(t, subgraph.SectionHeader, fe.Section)
		assert.Equal(t, tc.field, fe.Field)
		assert.True(t, fe.IsTruncated())
		assert.ErrorIs(t, err, subgraph.ErrTruncated)
	}
}

func TestDecode_BodyTruncated(t *testing.T) {
	sg := scenarioSubgraph(t)
	defer sg.Release()
	var buf bytes.Buffer
	require.NoError(t, subgraph.Encode(&buf, sg))
	data := buf.Bytes()

	for _, tc := range []struct {
		n     int
		node  int
		field string
	}{
		{12, 0, "position"},
		{12 + 4, 0, "true label"},
		{12 + 8 + 3, 0, "features"},
		{12 + 16 + 16 + 10, 2, "features"},
		{len(data) - 1, 2, "features"},
	} {
		rc := resource.NewController(resource.Config{})
		_, err := subgraph.Decode(bytes.NewReader(data[:tc.n]), subgraph.WithController(rc))

		var fe *subgraph.FormatError
		require.ErrorAs(t, err, &fe, "prefix %d", tc.n)
		assert.Equal(t, subgraph.SectionBody, fe.Section)
		assert.Equal(t, tc.node, fe.Node)
		assert.Equal(t, tc.field, fe.Field)
		assert.ErrorIs(t, err, subgraph.ErrTruncated)
		assert.Zero(t, rc.MemoryUsage(), "partial subgraph is released")
	}
}

func TestDecode_InvalidHeader(t *testing.T) {
	header := func(n, l, f int32) []byte {
		b := make([]byte, 12)
		binary.LittleEndian.PutUint32(b[0:], uint32(n))
		binary.LittleEndian.PutUint32(b[4:], uint32(l))
		binary.LittleEndian.PutUint32(b[8:], uint32(f))
		return b
	}

	for _, b := range [][]byte{
		header(-1, 1, 1),
		header(1, -1, 1),
		header(1, 1, -3),
		header(subgraph.MaxNodeCount+1, 1, 1),
		header(1, 1, subgraph.MaxFeatureCount+1),
	} {
		_, err := subgraph.Decode(bytes.NewReader(b))
		assert.ErrorIs(t, err, subgraph.ErrInvalidHeader)
		assert.NotErrorIs(t, err, subgraph.ErrTruncated)
	}
}

func TestDecode_MemoryBudget(t *testing.T) {
	sg := testutil.RandomSubgraph(testutil.NewRNG(30), testutil.SubgraphConfig{Nodes: 16, Features: 64})
	defer sg.Release()
	var buf bytes.Buffer
	require.NoError(t, subgraph.Encode(&buf, sg))

	rc := resource.NewController(resource.Config{MemoryLimitBytes: 2048})
	_, err := subgraph.Decode(&buf, subgraph.WithController(rc))
	assert.ErrorIs(t, err, subgraph.ErrAllocation)
	assert.Zero(t, rc.MemoryUsage())
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("device gone") }

func TestDecode_ReadError(t *testing.T) {
	_, err := subgraph.Decode(errReader{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, subgraph.ErrTruncated)
	assert.Contains(t, err.Error(), "device gone")
}

func TestDecode_InflatedHeaderTruncated(t *testing.T) {
	header := make([]byte, 12)
	binary.LittleEndian.PutUint32(header[0:], subgraph.MaxNodeCount)
	binary.LittleEndian.PutUint32(header[4:], 1)
	binary.LittleEndian.PutUint32(header[8:], 1)

	rc := resource.NewController(resource.Config{})
	_, err := subgraph.Decode(bytes.NewReader(header), subgraph.WithController(rc))

	var fe *subgraph.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, subgraph.SectionBody, fe.Section)
	assert.Equal(t, 0, fe.Node)
	assert.Equal(t, "position", fe.Field)
	assert.ErrorIs(t, err, subgraph.ErrTruncated)
	assert.Zero(t, rc.MemoryUsage())
}

func TestDecode_ReservationMatchesNew(t *testing.T) {
	sg := testutil.RandomSubgraph(testutil.NewRNG(31), testutil.SubgraphConfig{Nodes: 5000, Features: 2})
	defer sg.Release()
	var buf bytes.Buffer
	require.NoError(t, subgraph.Encode(&buf, sg))

	rc := resource.NewController(resource.Config{})
	got, err := subgraph.Decode(&buf, subgraph.WithController(rc))
	require.NoError(t, err)
	require.Equal(t, 5000, got.Len())
	assert.Len(t, got.Ordered, 5000)
	assert.Equal(t, sg.Nodes[4999].Features, got.Nodes[4999].Features)

	fresh, err := subgraph.New(5000, subgraph.WithController(resource.NewController(resource.Config{})))
	require.NoError(t, err)
	defer fresh.Release()
	assert.Equal(t, fresh.Reserved()+5000*2*4, got.Reserved())
	assert.Equal(t, rc.MemoryUsage(), got.Reserved())

	got.Release()
	assert.Zero(t, rc.MemoryUsage())
}
