package subgraph

import "strconv"

// Ref is an optional node index.
//
// The zero value is Nil: "no node". For a node's Pred, Nil marks a forest
// root, i.e. a prototype.
type Ref struct {
	idx int
	set bool
}

// Nil is the empty Ref.
var Nil Ref

// RefTo returns a Ref to node i. Negative indices, including the legacy -1
// marker used by OPF tools, map to Nil.
func RefTo(i int) Ref {
	if i < 0 {
		return Nil
	}
	return Ref{idx: i, set: true}
}

// IsNil reports whether r points to no node.
func (r Ref) IsNil() bool { return !r.set }

// Index returns the referenced node index and true, or 0 and false for Nil.
func (r Ref) Index() (int, bool) { return r.idx, r.set }

// Int returns the index, or -1 for Nil.
func (r Ref) Int() int {
	if !r.set {
		return -1
	}
	return r.idx
}

func (r Ref) String() string {
	if !r.set {
		return "nil"
	}
	return strconv.Itoa(r.idx)
}
