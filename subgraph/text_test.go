package subgraph_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hupe1980/opfgo/subgraph"
	"github.com/hupe1980/opfgo/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteText_Scenario(t *testing.T) {
	sg := scenarioSubgraph(t)
	defer sg.Release()

	var buf bytes.Buffer
	require.NoError(t, subgraph.WriteText(&buf, sg))
	assert.Equal(t, "3 2 2\n10 0 1 2\n11 1 3 4\n12 0 5 6\n", buf.String())
}

func TestText_RoundTrip(t *testing.T) {
	sg := testutil.RandomSubgraph(testutil.NewRNG(40), testutil.SubgraphConfig{Nodes: 30, Features: 6, Labels: 3})
	defer sg.Release()

	var buf bytes.Buffer
	require.NoError(t, subgraph.WriteText(&buf, sg))

	got, err := subgraph.ReadText(&buf)
	require.NoError(t, err)
	defer got.Release()

	require.Equal(t, sg.Len(), got.Len())
	assert.Equal(t, sg.NumLabels, got.NumLabels)
	assert.Equal(t, sg.NumFeatures, got.NumFeatures)
	for i := range sg.Nodes {
		assert.Equal(t, sg.Nodes[i].Features, got.Nodes[i].Features)
		assert.Equal(t, sg.Nodes[i].Position, got.Nodes[i].Position)
		assert.Equal(t, sg.Nodes[i].TrueLabel, got.Nodes[i].TrueLabel)
	}
}

func TestReadText_Whitespace(t *testing.T) {
	got, err := subgraph.ReadText(strings.NewReader("2 1 2\n\n  0 1\t0.5 1.5\n1 1 2.5\n3.5"))
	require.NoError(t, err)
	assert.Equal(t, []float32{2.5, 3.5}, got.Nodes[1].Features)
}

func TestReadText_Errors(t *testing.T) {
	var fe *subgraph.FormatError

	_, err := subgraph.ReadText(strings.NewReader("2 1"))
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, subgraph.SectionHeader, fe.Section)
	assert.ErrorIs(t, err, subgraph.ErrTruncated)

	_, err = subgraph.ReadText(strings.NewReader("2 1 2\n0 1 0.5 0.5\n1 1 0.5"))
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, subgraph.SectionBody, fe.Section)
	assert.Equal(t, 1, fe.Node)
	assert.Equal(t, "features", fe.Field)
	assert.ErrorIs(t, err, subgraph.ErrTruncated)

	_, err = subgraph.ReadText(strings.NewReader("1 1 1\n0 x 0.5"))
	assert.ErrorIs(t, err, subgraph.ErrMalformed)

	_, err = subgraph.ReadText(strings.NewReader("-1 1 1"))
	assert.ErrorIs(t, err, subgraph.ErrInvalidHeader)
}

func TestWriteText_Invalid(t *testing.T) {
	sg := scenarioSubgraph(t)
	defer sg.Release()
	sg.Nodes[0].Features = nil

	var buf bytes.Buffer
	assert.ErrorIs(t, subgraph.WriteText(&buf, sg), subgraph.ErrInvariant)
	assert.Zero(t, buf.Len())

	assert.ErrorIs(t, subgraph.WriteText(&buf, nil), subgraph.ErrNilSubgraph)
}

func TestReadText_InflatedHeaderTruncated(t *testing.T) {
	_, err := subgraph.ReadText(strings.NewReader("100000000 1 1\n"))

	var fe *subgraph.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, subgraph.SectionBody, fe.Section)
	assert.Equal(t, 0, fe.Node)
	assert.ErrorIs(t, err, subgraph.ErrTruncated)
}
