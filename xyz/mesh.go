// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"

	"github.com/jinzhu/copier"

	"github.com/helioviewer-project/helios/math32"
)

// Mesh parametrizes the mesh-based shape used for rendering a [Solid].
// Only indexed triangle meshes are supported.
type Mesh interface {
	// AsMeshBase returns the [MeshBase] for this Mesh,
	// which provides the core functionality of a mesh.
	AsMeshBase() *MeshBase

	// Make regenerates the vertex data of the mesh from its parameters.
	// Meshes loaded from files have no parameters and Make is a no-op.
	Make()
}

// MeshBase provides the core implementation of the [Mesh] interface.
type MeshBase struct {
	// Name is the name of the mesh. [Mesh]es are registered on the
	// [Scene] by name so this matters.
	Name string

	// Vertex holds the vertex positions, 3 per vertex.
	Vertex []float32

	// Normal holds the vertex normals, 3 per vertex.
	Normal []float32

	// TexCoord holds the texture coordinates, 2 per vertex.
	TexCoord []float32

	// Index holds the triangle indexes, 3 per triangle.
	Index []uint32

	// BBox is the bounding box of the vertex positions.
	BBox math32.Box3

	// Changed is set when the vertex data needs to be uploaded to the device.
	Changed bool
}

func (ms *MeshBase) AsMeshBase() *MeshBase {
	return ms
}

func (ms *MeshBase) Make() {}

// NumVertex returns the number of vertexes in the mesh.
func (ms *MeshBase) NumVertex() int {
	return len(ms.Vertex) / 3
}

// NumIndex returns the number of indexes in the mesh.
func (ms *MeshBase) NumIndex() int {
	return len(ms.Index)
}

// Reset drops all of the vertex data.
func (ms *MeshBase) Reset() {
	ms.Vertex = nil
	ms.Normal = nil
	ms.TexCoord = nil
	ms.Index = nil
	ms.BBox.SetEmpty()
	ms.Changed = true
}

// Validate checks that the vertex arrays are consistent with each other.
func (ms *MeshBase) Validate() error {
	nv := len(ms.Vertex)
	if nv%3 != 0 {
		return fmt.Errorf("xyz: mesh %q: vertex array length %d is not a multiple of 3", ms.Name, nv)
	}
	if len(ms.Normal) != 0 && len(ms.Normal) != nv {
		return fmt.Errorf("xyz: mesh %q: %d normals for %d vertexes", ms.Name, len(ms.Normal)/3, nv/3)
	}
	if len(ms.TexCoord) != 0 && len(ms.TexCoord)/2 != nv/3 {
		return fmt.Errorf("xyz: mesh %q: %d texture coordinates for %d vertexes", ms.Name, len(ms.TexCoord)/2, nv/3)
	}
	if len(ms.Index)%3 != 0 {
		return fmt.Errorf("xyz: mesh %q: index array length %d is not a multiple of 3", ms.Name, len(ms.Index))
	}
	for _, ix := range ms.Index {
		if int(ix) >= nv/3 {
			return fmt.Errorf("xyz: mesh %q: index %d out of range for %d vertexes", ms.Name, ix, nv/3)
		}
	}
	return nil
}

// UpdateBBox recomputes the bounding box from the vertex positions.
func (ms *MeshBase) UpdateBBox() {
	ms.BBox.SetEmpty()
	for i := 0; i+2 < len(ms.Vertex); i += 3 {
		ms.BBox.ExpandByPoint(math32.Vec3(ms.Vertex[i], ms.Vertex[i+1], ms.Vertex[i+2]))
	}
}

// GenMesh is a generic, arbitrary Mesh, storing its values
// directly, typically as loaded from a file.
type GenMesh struct {
	MeshBase
}

// NewGenMesh returns a new empty [GenMesh] with the given name.
func NewGenMesh(name string) *GenMesh {
	ms := &GenMesh{}
	ms.Name = name
	ms.BBox.SetEmpty()
	return ms
}

// Clone returns a deep copy of this mesh with the given name, so that
// the copy can be released independently of the original.
func (ms *GenMesh) Clone(name string) (*GenMesh, error) {
	nm := &GenMesh{}
	if err := copier.CopyWithOption(nm, ms, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("xyz: cloning mesh %q: %w", ms.Name, err)
	}
	nm.Name = name
	nm.Changed = true
	return nm, nil
}

var _ Mesh = &GenMesh{}
