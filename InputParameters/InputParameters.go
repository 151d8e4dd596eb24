package InputParameters

import (
	"fmt"
	"strings"

	"github.com/ghodss/yaml"
)

// LatticeParameters are read from a YAML file like:
//
//	Title: "4D test"
//	GlobalSizes: [8, 8, 8, 16]
//	RankSizes: [1, 1, 2, 2]
//	Hashed: true
//	Workers: 4
//	Rank: 3
//	SplitCheck: true
//
// ghodss/yaml decodes through encoding/json, hence the json tags.
type LatticeParameters struct {
	Title       string `json:"Title"`
	GlobalSizes []int  `json:"GlobalSizes"`
	RankSizes   []int  `json:"RankSizes"`  // All ones when omitted
	Periodic    []int  `json:"Periodic"`   // Periodicity of the plain global box, all ones when omitted
	Hashed      bool   `json:"Hashed"`     // Tabulate coordinates of the plain global box
	Workers     int    `json:"Workers"`    // 0 uses every CPU
	Rank        int    `json:"Rank"`       // Rank this process runs as
	SplitCheck  bool   `json:"SplitCheck"` // Verify every derived index space after building it
}

func (lp *LatticeParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, lp)
}

// Validate fills the omitted sizes and rejects inconsistent ones. The
// divisibility of the global sizes is left to the geometry.
func (lp *LatticeParameters) Validate() (err error) {
	nDims := len(lp.GlobalSizes)
	if nDims == 0 {
		return fmt.Errorf("GlobalSizes must list at least one direction")
	}
	if len(lp.RankSizes) == 0 {
		lp.RankSizes = ones(nDims)
	}
	if len(lp.Periodic) == 0 {
		lp.Periodic = ones(nDims)
	}
	switch {
	case len(lp.RankSizes) != nDims:
		err = fmt.Errorf("RankSizes %v and GlobalSizes %v have different dimensions", lp.RankSizes, lp.GlobalSizes)
	case len(lp.Periodic) != nDims:
		err = fmt.Errorf("Periodic %v and GlobalSizes %v have different dimensions", lp.Periodic, lp.GlobalSizes)
	case lp.Workers < 0:
		err = fmt.Errorf("Workers must not be negative, have %d", lp.Workers)
	case lp.Rank < 0:
		err = fmt.Errorf("Rank must not be negative, have %d", lp.Rank)
	}
	if err != nil {
		return
	}
	for mu := 0; mu < nDims; mu++ {
		if lp.GlobalSizes[mu] <= 0 || lp.RankSizes[mu] <= 0 {
			return fmt.Errorf("sizes must be positive, have GlobalSizes %v RankSizes %v", lp.GlobalSizes, lp.RankSizes)
		}
		if lp.Periodic[mu] != 0 && lp.Periodic[mu] != 1 {
			return fmt.Errorf("Periodic entries are 0 or 1, have %v", lp.Periodic)
		}
	}
	return
}

func ones(n int) (o []int) {
	o = make([]int, n)
	for i := range o {
		o[i] = 1
	}
	return
}

func (lp *LatticeParameters) Print() {
	fmt.Print(lp.String())
}

func (lp *LatticeParameters) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\"%s\"\t\t= Title\n", lp.Title)
	fmt.Fprintf(&sb, "%v\t\t= Global Sizes\n", lp.GlobalSizes)
	fmt.Fprintf(&sb, "%v\t\t= Rank Sizes\n", lp.RankSizes)
	fmt.Fprintf(&sb, "%v\t\t= Periodic\n", lp.Periodic)
	fmt.Fprintf(&sb, "[%v]\t\t\t= Hashed\n", lp.Hashed)
	fmt.Fprintf(&sb, "[%d]\t\t\t= Workers\n", lp.Workers)
	fmt.Fprintf(&sb, "[%d]\t\t\t= Rank\n", lp.Rank)
	fmt.Fprintf(&sb, "[%v]\t\t\t= Split Check\n", lp.SplitCheck)
	return sb.String()
}
