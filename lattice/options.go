package lattice

import (
	"io"
	"log/slog"

	"github.com/notargets/golattice/shuffle"
	"github.com/notargets/golattice/utils"
)

type config struct {
	workers int
	alloc   utils.Allocator
	logger  *slog.Logger
	rank    RankProvider
}

// Option configures the construction of grids, geometries and the index
// spaces derived from them.
type Option func(*config)

// WithWorkers sets the number of goroutines filling lookup tables, zero or
// less means one per available CPU.
func WithWorkers(n int) Option {
	return func(c *config) { c.workers = n }
}

// WithAllocator sets the Allocator providing lookup table storage.
func WithAllocator(a utils.Allocator) Option {
	return func(c *config) { c.alloc = a }
}

// WithLogger sets the logger receiving construction events.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithRank sets the accessor for the rank this process runs as.
func WithRank(r RankProvider) Option {
	return func(c *config) { c.rank = r }
}

func newConfig(opts []Option) (c config) {
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.rank == nil {
		c.rank = FixedRank(0)
	}
	return
}

func (c config) options() []Option {
	return []Option{WithWorkers(c.workers), WithAllocator(c.alloc), WithLogger(c.logger), WithRank(c.rank)}
}

func (c config) shuffleOptions() []shuffle.Option {
	return []shuffle.Option{shuffle.WithWorkers(c.workers), shuffle.WithAllocator(c.alloc)}
}
