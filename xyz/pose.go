// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import "github.com/helioviewer-project/helios/math32"

// Pose contains the position and scale of a node relative to its parent.
// Rotation is not needed for solar imagery, which is always placed
// facing the observer.
type Pose struct {

	// Pos is the position relative to the parent.
	Pos math32.Vector3

	// Scale is the scale relative to the parent.
	Scale math32.Vector3

	// Matrix is the local transform computed from Pos and Scale.
	Matrix math32.Matrix4 `json:"-"`

	// WorldMatrix is the parent's world matrix times Matrix.
	WorldMatrix math32.Matrix4 `json:"-"`

	dirty bool
}

// Defaults sets defaults only if current values are nil
func (ps *Pose) Defaults() {
	if ps.Scale == (math32.Vector3{}) {
		ps.Scale.SetScalar(1)
	}
	ps.Matrix.SetIdentity()
	ps.WorldMatrix.SetIdentity()
	ps.dirty = true
}

// SetDirty marks the transform as needing an update.
func (ps *Pose) SetDirty() {
	ps.dirty = true
}

// IsDirty returns true if the transform needs an update.
func (ps *Pose) IsDirty() bool {
	return ps.dirty
}

// UpdateMatrix updates the local transform matrix based on its Pos and Scale.
func (ps *Pose) UpdateMatrix() {
	ps.Matrix.SetScalePos(ps.Scale, ps.Pos)
	ps.dirty = false
}

// UpdateWorldMatrix updates the world transform matrix based on Matrix and the
// parent's world matrix. parWorld is nil for the root.
func (ps *Pose) UpdateWorldMatrix(parWorld *math32.Matrix4) {
	if parWorld == nil {
		ps.WorldMatrix = ps.Matrix
		return
	}
	ps.WorldMatrix = *parWorld.Mul(&ps.Matrix)
}
