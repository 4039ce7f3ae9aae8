package persistence

const (
	// Int32Size is the encoded width of every integer field.
	Int32Size = 4
	// Float32Size is the encoded width of every feature value.
	Float32Size = 4

	// HeaderSize is the encoded size of the dataset header:
	// node count, label count and feature count.
	HeaderSize = 3 * Int32Size

	// NodePrefixSize is the encoded size of the fixed node fields
	// (position and true label) that precede the features.
	NodePrefixSize = 2 * Int32Size
)

// NodeSize returns the encoded size of one node with nfeats features.
func NodeSize(nfeats int) int {
	return NodePrefixSize + nfeats*Float32Size
}

// EncodedSize returns the encoded size of a dataset with nnodes nodes of
// nfeats features each.
func EncodedSize(nnodes, nfeats int) int64 {
	return int64(HeaderSize) + int64(nnodes)*int64(NodeSize(nfeats))
}
