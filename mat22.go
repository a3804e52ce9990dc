package boxlite

import "math"

// Mat22 is a 2x2 matrix stored as two column vectors.
type Mat22 struct {
	Col1, Col2 Vector
}

// Rotation returns the rotation matrix for the given angle (in radians).
func Rotation(angle float64) Mat22 {
	c := math.Cos(angle)
	s := math.Sin(angle)
	return Mat22{Vector{c, s}, Vector{-s, c}}
}

func (m Mat22) Transpose() Mat22 {
	return Mat22{
		Vector{m.Col1.X, m.Col2.X},
		Vector{m.Col1.Y, m.Col2.Y},
	}
}

// Invert returns the multiplicative inverse.
// Inverting a singular matrix is a programming error, e.g. a joint
// between two static bodies has no effective mass to invert.
func (m Mat22) Invert() Mat22 {
	a := m.Col1.X
	b := m.Col2.X
	c := m.Col1.Y
	d := m.Col2.Y

	det := a*d - b*c
	assert(math.Abs(det) > 1e-12, "Mat22.Invert: singular matrix")

	det = 1.0 / det
	return Mat22{
		Vector{det * d, -det * c},
		Vector{-det * b, det * a},
	}
}

func (m Mat22) Abs() Mat22 {
	return Mat22{m.Col1.Abs(), m.Col2.Abs()}
}

func (m Mat22) Add(other Mat22) Mat22 {
	return Mat22{m.Col1.Add(other.Col1), m.Col2.Add(other.Col2)}
}

func (m Mat22) Mult(v Vector) Vector {
	return m.Col1.Mult(v.X).Add(m.Col2.Mult(v.Y))
}

func (m Mat22) MultMat(other Mat22) Mat22 {
	return Mat22{m.Mult(other.Col1), m.Mult(other.Col2)}
}
