package lattice

import (
	"strconv"

	"golang.org/x/exp/constraints"
)

// Index is satisfied by every integer type used to label sites.
type Index interface {
	constraints.Integer
}

// DynamicSize is the Size of a component whose extent is only known once
// the grid it indexes has been built.
const DynamicSize int64 = -1

// Component is a named index type. Each kind of site has its own Go type,
// so that a local site can not be passed where a global one is expected
// without an explicit conversion.
type Component interface {
	Name() string
	Size() int64
}

type (
	GlbSite    int64 // Site of the global lattice
	LocSite    int64 // Site of the local lattice of a rank
	Rank       int32 // Site of the rank grid
	Parity     int8  // Even/odd discriminator
	EosSite    int64 // Site within one parity of the local lattice
	ParEosSite int64 // Parity and EosSite combined as parity*LocVolH+eos
	LebSite    int64 // Site in Lebesgue order
	Direction  int
)

const (
	Even Parity = 0
	Odd  Parity = 1
	// NParity is the number of values of Parity.
	NParity = 2
)

func (GlbSite) Name() string    { return "glbSite" }
func (LocSite) Name() string    { return "locSite" }
func (Rank) Name() string       { return "rank" }
func (Parity) Name() string     { return "eoDiscriminator" }
func (EosSite) Name() string    { return "eosSite" }
func (ParEosSite) Name() string { return "parEosSite" }
func (LebSite) Name() string    { return "lebSite" }
func (Direction) Name() string  { return "direction" }

func (GlbSite) Size() int64    { return DynamicSize }
func (LocSite) Size() int64    { return DynamicSize }
func (Rank) Size() int64       { return DynamicSize }
func (Parity) Size() int64     { return NParity }
func (EosSite) Size() int64    { return DynamicSize }
func (ParEosSite) Size() int64 { return DynamicSize }
func (LebSite) Size() int64    { return DynamicSize }
func (Direction) Size() int64  { return DynamicSize }

func (p Parity) String() string { return strconv.Itoa(int(p)) }

// Opposite returns the other parity.
func (p Parity) Opposite() Parity { return 1 - p }

var (
	_ Component = GlbSite(0)
	_ Component = LocSite(0)
	_ Component = Rank(0)
	_ Component = Parity(0)
	_ Component = EosSite(0)
	_ Component = ParEosSite(0)
	_ Component = LebSite(0)
	_ Component = Direction(0)
)
