package lattice

// RankProvider tells which site of the rank grid the running process is.
type RankProvider interface {
	ThisRank() Rank
}

// FixedRank is a RankProvider for a rank known at startup, FixedRank(0)
// describes a serial run.
type FixedRank Rank

func (r FixedRank) ThisRank() Rank { return Rank(r) }
