package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseRange converts a slice expression over [0, max) into the half open
// range [lo, hi). Accepted forms:
//
//	":"   full range
//	"end" last index
//	"N"   single index N
//	"A:B" from A to B, either side may be omitted
//
// Negative indices count from max.
func ParseRange(expr string, max int) (lo, hi int, err error) {
	expr = strings.TrimSpace(expr)
	switch expr {
	case ":", "":
		return 0, max, nil
	case "end":
		lo, hi = max-1, max
	default:
		splits := strings.Split(expr, ":")
		if len(splits) > 2 {
			err = fmt.Errorf("range %q has more than one colon", expr)
			return
		}
		if lo, err = parseBound(splits[0], 0, max); err != nil {
			return
		}
		if len(splits) == 1 {
			hi = lo + 1
		} else if hi, err = parseBound(splits[1], max, max); err != nil {
			return
		}
	}
	if lo < 0 || hi > max || lo > hi {
		err = fmt.Errorf("range %q is not within [0, %d)", expr, max)
	}
	return
}

func parseBound(s string, dflt, max int) (i int, err error) {
	if s = strings.TrimSpace(s); s == "" {
		return dflt, nil
	}
	if i, err = strconv.Atoi(s); err != nil {
		return 0, fmt.Errorf("bad range bound %q: %w", s, err)
	}
	if i < 0 {
		i += max
	}
	return
}
