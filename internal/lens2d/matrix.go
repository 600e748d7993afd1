package lens2d

// 2×2 matrix (row-major)
type Mat2 struct {
	M [2][2]Real
}

func I2() Mat2 {
	return Mat2{M: [2][2]Real{
		{1, 0},
		{0, 1},
	}}
}

func (A Mat2) MulVec(v Vector2) Vector2 {
	return Vector2{
		A.M[0][0]*v.X + A.M[0][1]*v.Y,
		A.M[1][0]*v.X + A.M[1][1]*v.Y,
	}
}
