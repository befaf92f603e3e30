// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Matrix4 is 4x4 matrix organized internally as column matrix.
type Matrix4 [16]float32

// Identity4 returns a new identity [Matrix4] matrix.
func Identity4() *Matrix4 {
	m := &Matrix4{}
	m.SetIdentity()
	return m
}

// SetIdentity sets this matrix as the identity matrix.
func (m *Matrix4) SetIdentity() {
	*m = Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// SetScalePos sets this matrix to scale by sc then translate by pos.
func (m *Matrix4) SetScalePos(sc, pos Vector3) {
	*m = Matrix4{
		sc.X, 0, 0, 0,
		0, sc.Y, 0, 0,
		0, 0, sc.Z, 0,
		pos.X, pos.Y, pos.Z, 1,
	}
}

// Mul returns this matrix times other.
func (m *Matrix4) Mul(other *Matrix4) *Matrix4 {
	nm := &Matrix4{}
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var s float32
			for k := 0; k < 4; k++ {
				s += m[k*4+r] * other[c*4+k]
			}
			nm[c*4+r] = s
		}
	}
	return nm
}

// MulVector3AsPoint returns the point v transformed by this matrix,
// with an implicit w = 1.
func (m *Matrix4) MulVector3AsPoint(v Vector3) Vector3 {
	return Vector3{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12],
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13],
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14],
	}
}
