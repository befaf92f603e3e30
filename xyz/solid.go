// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

// Solid represents an individual 3D solid element.
// It has its own unique spatial transforms and material properties,
// and points to a mesh structure defining the shape of the solid.
type Solid struct {
	NodeBase

	// Mesh is the shape of the solid. It is registered on the Scene
	// under its name so that the device can configure it.
	Mesh Mesh

	// Material is how the surface of the mesh is drawn.
	Material Material
}

// NewSolid returns a new solid for the given scene with the given mesh
// and material. The mesh is added to the scene's mesh library.
func NewSolid(sc *Scene, name string, ms Mesh, mat Material) *Solid {
	sld := &Solid{Mesh: ms, Material: mat}
	sld.InitName(sld, name)
	sld.Scene = sc
	if sc != nil && ms != nil {
		sc.AddMesh(ms)
	}
	sld.UpdateMeshBBox()
	return sld
}

func (sld *Solid) IsSolid() bool {
	return true
}

func (sld *Solid) AsSolid() *Solid {
	return sld
}

// UpdateMeshBBox updates the Mesh-based BBox info for all nodes.
func (sld *Solid) UpdateMeshBBox() {
	if sld.Mesh != nil {
		sld.MeshBBox = sld.Mesh.AsMeshBase().BBox
	}
}

// SetScale sets the [Pose.Scale] scale of the solid
func (sld *Solid) SetScale(x, y, z float32) *Solid {
	sld.Pose.Scale.Set(x, y, z)
	sld.Pose.SetDirty()
	return sld
}

// SetMeshChanged marks the mesh data as changed, so that the device
// uploads it again on the next [Scene.Config], and marks the transform
// as dirty so that bounding boxes are recomputed on the next [Scene.Update].
func (sld *Solid) SetMeshChanged() {
	if sld.Mesh != nil {
		sld.Mesh.AsMeshBase().Changed = true
	}
	sld.UpdateMeshBBox()
	sld.Pose.SetDirty()
}

// Release releases the GPU resources of the mesh and material of
// this solid through the scene's device, removes the mesh from the
// scene and drops the CPU-side vertex data. It must be called at
// most once; the solid must not be rendered afterwards.
func (sld *Solid) Release() {
	sc := sld.Scene
	if sld.Mesh != nil {
		if sc != nil {
			if sc.Device != nil {
				sc.Device.ReleaseMesh(sld.Mesh)
			}
			sc.DeleteMesh(sld.Mesh.AsMeshBase().Name)
		}
		sld.Mesh.AsMeshBase().Reset()
	}
	if sld.Material != nil && sc != nil && sc.Device != nil {
		sc.Device.ReleaseMaterial(sld.Material)
	}
}

var _ Node = &Solid{}
