package geometry

import "math"

// Affine is a 2-D affine transform in the canvas convention
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Affine struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c"`
	D float64 `json:"d"`
	E float64 `json:"e"`
	F float64 `json:"f"`
}

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{A: 1, D: 1}
}

// Translate returns a translation by (tx, ty).
func Translate(tx, ty float64) Affine {
	return Affine{A: 1, D: 1, E: tx, F: ty}
}

// Rotate returns a rotation built from precomputed sin and cos. With Y
// pointing down a positive angle turns clockwise on screen.
func Rotate(sin, cos float64) Affine {
	return Affine{A: cos, B: sin, C: -sin, D: cos}
}

// RotateDegrees returns a rotation by deg degrees.
func RotateDegrees(deg float64) Affine {
	rad := deg * math.Pi / 180
	return Rotate(math.Sin(rad), math.Cos(rad))
}

// Multiply returns m·n, the transform that applies n first and then m.
func (m Affine) Multiply(n Affine) Affine {
	return Affine{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Apply transforms the point (x, y).
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// IsIdentity reports whether m is exactly the identity.
func (m Affine) IsIdentity() bool {
	return m == Identity()
}
