// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrix4ScalePos(t *testing.T) {
	m := Identity4()
	m.SetScalePos(Vector3Scalar(0.04), Vec3(1, 2, 3))
	p := m.MulVector3AsPoint(Vec3(25, 0, -25))
	assert.InDelta(t, 2, p.X, 1e-6)
	assert.InDelta(t, 2, p.Y, 1e-6)
	assert.InDelta(t, 2, p.Z, 1e-6)

	id := Identity4()
	assert.Equal(t, *m, *id.Mul(m))
	assert.Equal(t, *m, *m.Mul(id))
}

func TestBox3(t *testing.T) {
	b := B3Empty()
	assert.True(t, b.IsEmpty())
	assert.Equal(t, Vector3{}, b.Size())
	b.ExpandByPoint(Vec3(-1, -2, 0))
	b.ExpandByPoint(Vec3(1, 2, 3))
	assert.False(t, b.IsEmpty())
	assert.Equal(t, Vec3(2, 4, 3), b.Size())

	m := Identity4()
	m.SetScalePos(Vector3Scalar(2), Vector3{})
	assert.Equal(t, Vec3(4, 8, 6), b.MulMatrix4(m).Size())
}

func TestNormal(t *testing.T) {
	n := Normal(Vec3(0, 0, 0), Vec3(1, 0, 0), Vec3(0, 1, 0))
	assert.Equal(t, Vec3(0, 0, 1), n)
	assert.InDelta(t, 1, Vec3(3, 4, 0).Normal().Length(), 1e-6)
	assert.Equal(t, float32(0.5), Clamp(0.5, 0, 1))
	assert.Equal(t, float32(1), Clamp(2, 0, 1))
	assert.Equal(t, float32(0), Clamp(-1, 0, 1))
}
