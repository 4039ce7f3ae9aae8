package adjacency

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/opfgo/internal/conv"
)

// Set is a set of node indices backed by a 32-bit Roaring bitmap.
//
// Read methods are safe on a nil *Set, which behaves as an empty set.
type Set struct {
	rb *roaring.Bitmap
}

// New creates a new empty set.
func New() *Set {
	return &Set{rb: roaring.New()}
}

// Of creates a set containing ids.
func Of(ids ...int) (*Set, error) {
	s := New()
	for _, id := range ids {
		if err := s.Add(id); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add inserts id. Negative ids are rejected.
func (s *Set) Add(id int) error {
	u, err := conv.IntToUint32(id)
	if err != nil {
		return err
	}
	s.rb.Add(u)
	return nil
}

// Remove deletes id if present.
func (s *Set) Remove(id int) {
	u, err := conv.IntToUint32(id)
	if err != nil {
		return
	}
	s.rb.Remove(u)
}

// Contains reports whether id is in the set.
func (s *Set) Contains(id int) bool {
	if s == nil {
		return false
	}
	u, err := conv.IntToUint32(id)
	if err != nil {
		return false
	}
	return s.rb.Contains(u)
}

// Len returns the number of ids in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return int(s.rb.GetCardinality())
}

// IsEmpty returns true if the set holds no ids.
func (s *Set) IsEmpty() bool {
	return s == nil || s.rb.IsEmpty()
}

// Max returns the largest id, or false for an empty set.
func (s *Set) Max() (int, bool) {
	if s.IsEmpty() {
		return 0, false
	}
	return int(s.rb.Maximum()), true
}

// Clone returns a deep copy of the set. Cloning nil yields nil.
func (s *Set) Clone() *Set {
	if s == nil {
		return nil
	}
	return &Set{rb: s.rb.Clone()}
}

// Equal reports whether both sets hold the same ids.
func (s *Set) Equal(other *Set) bool {
	if s.IsEmpty() || other.IsEmpty() {
		return s.IsEmpty() == other.IsEmpty()
	}
	return s.rb.Equals(other.rb)
}

// ForEach calls fn for every id in ascending order until fn returns false.
func (s *Set) ForEach(fn func(id int) bool) {
	if s == nil {
		return
	}
	it := s.rb.Iterator()
	for it.HasNext() {
		if !fn(int(it.Next())) {
			break
		}
	}
}

// All returns an iterator over the ids in ascending order.
func (s *Set) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		s.ForEach(yield)
	}
}

// Slice returns the ids in ascending order.
func (s *Set) Slice() []int {
	if s == nil {
		return nil
	}
	out := make([]int, 0, s.Len())
	s.ForEach(func(id int) bool {
		out = append(out, id)
		return true
	})
	return out
}
