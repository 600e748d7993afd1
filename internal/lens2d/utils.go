package lens2d

import (
	"math"
)

type Real = float64

func isFinite(x Real) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }

func imax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// floorDiv is the floored quotient a // b derived from the exact floating
// remainder, so a value sitting on a pixel edge does not round up into the
// next pixel the way math.Floor(a/b) can.
func floorDiv(a, b Real) Real {
	mod := math.Mod(a, b)
	div := (a - mod) / b
	if mod != 0 && (b < 0) != (mod < 0) {
		div -= 1
	}
	if div == 0 {
		return 0
	}
	fl := math.Floor(div)
	if div-fl > 0.5 {
		fl += 1
	}
	return fl
}
