// Package shuffle implements verified bijections between index spaces.
//
// A Shuffler stores the forward map of a permutation of [0, N) as a dense
// lookup table. The opposite direction is never computed by a second rule:
// it is derived from the table by Transpose, which fails unless the table is
// a true permutation. Shufflers are immutable once built and safe for
// concurrent readers.
package shuffle

import (
	"github.com/james-bowman/sparse"
	"github.com/notargets/golattice/utils"
	"golang.org/x/exp/constraints"
)

type Shuffler[In, Out constraints.Integer] struct {
	table []Out
	alloc utils.Allocator
	nw    int
}

type config struct {
	workers int
	alloc   utils.Allocator
}

type Option func(*config)

// WithWorkers sets the number of goroutines filling the tables, zero or
// less means one per available CPU.
func WithWorkers(n int) Option {
	return func(c *config) { c.workers = n }
}

// WithAllocator sets the Allocator providing the table storage.
func WithAllocator(a utils.Allocator) Option {
	return func(c *config) { c.alloc = a }
}

func newConfig(opts []Option) (c config) {
	c.workers = 1
	for _, opt := range opts {
		opt(&c)
	}
	return
}

// New fills the forward table of n elements with f. Disjoint chunks of the
// table are filled concurrently, f must be safe for concurrent use.
func New[In, Out constraints.Integer](n int, f func(In) Out, opts ...Option) *Shuffler[In, Out] {
	c := newConfig(opts)
	s := &Shuffler[In, Out]{
		table: utils.Provide[Out](c.alloc, n),
		alloc: c.alloc,
		nw:    c.workers,
	}
	_ = utils.ParallelFor(c.workers, n, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			s.table[i] = f(In(i))
		}
		return nil
	})
	return s
}

// FromInverse fills the table of the opposite direction with g and derives
// the forward table by transposition.
func FromInverse[In, Out constraints.Integer](n int, g func(Out) In, opts ...Option) (*Shuffler[In, Out], error) {
	inv := New[Out, In](n, g, opts...)
	defer inv.Release()
	return inv.Transpose()
}

// FromTable wraps an already filled forward table, which is not copied.
func FromTable[In, Out constraints.Integer](table []Out) *Shuffler[In, Out] {
	return &Shuffler[In, Out]{table: table, nw: 1}
}

// At returns the image of in.
func (s *Shuffler[In, Out]) At(in In) Out {
	return s.table[in]
}

func (s *Shuffler[In, Out]) Len() int {
	return len(s.table)
}

// Table returns a copy of the forward table.
func (s *Shuffler[In, Out]) Table() []Out {
	out := make([]Out, len(s.table))
	copy(out, s.table)
	return out
}

// Verify checks that every image lies in [0, N) and that no two elements
// share an image.
func (s *Shuffler[In, Out]) Verify() error {
	var (
		n    = int64(len(s.table))
		used = utils.Provide[int64](s.alloc, len(s.table))
	)
	defer utils.Release(s.alloc, used)
	for i := range used {
		used[i] = n
	}
	for in, o := range s.table {
		out := int64(o)
		if out < 0 || out >= n {
			return &IndexOutOfRangeError{Element: int64(in), Value: out, N: n}
		}
		if used[out] != n {
			return &DuplicateMappingError{ElementA: used[out], ElementB: int64(in), Value: out}
		}
		used[out] = int64(in)
	}
	return nil
}

// Transpose returns the shuffler of the opposite direction, sharing the
// allocator and worker count of s.
func (s *Shuffler[In, Out]) Transpose() (*Shuffler[Out, In], error) {
	if err := s.Verify(); err != nil {
		return nil, err
	}
	t := &Shuffler[Out, In]{
		table: utils.Provide[In](s.alloc, len(s.table)),
		alloc: s.alloc,
		nw:    s.nw,
	}
	// Verify guarantees every slot of t is written by exactly one element
	_ = utils.ParallelFor(s.nw, len(s.table), func(lo, hi int) error {
		for in := lo; in < hi; in++ {
			t.table[s.table[in]] = In(in)
		}
		return nil
	})
	return t, nil
}

// Equal reports whether two shufflers have the same forward table.
func (s *Shuffler[In, Out]) Equal(o *Shuffler[In, Out]) bool {
	if len(s.table) != len(o.table) {
		return false
	}
	for i := range s.table {
		if s.table[i] != o.table[i] {
			return false
		}
	}
	return true
}

// Release hands the table back to the allocator. The shuffler must not be
// used afterwards.
func (s *Shuffler[In, Out]) Release() {
	utils.Release(s.alloc, s.table)
	s.table = nil
}

// PermutationMatrix returns P with P[out][in] = 1, so that y = P x moves
// the value stored at in to out. It is nil for an empty shuffler.
func (s *Shuffler[In, Out]) PermutationMatrix() *sparse.CSR {
	n := len(s.table)
	if n == 0 {
		return nil
	}
	dok := sparse.NewDOK(n, n)
	for in, out := range s.table {
		dok.Set(int(out), in, 1)
	}
	return dok.ToCSR()
}
