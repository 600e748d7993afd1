package lens2d

import "math"

// rot2 is the counter-clockwise rotation by a radians.
func rot2(a Real) Mat2 {
	c, s := math.Cos(a), math.Sin(a)
	M := I2()
	M.M[0][0], M.M[0][1] = c, -s
	M.M[1][0], M.M[1][1] = s, c
	return M
}
