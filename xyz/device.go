// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

// Device owns the GPU-side copies of meshes, materials and textures.
// Each Release method is called at most once per resource.
type Device interface {
	// ConfigMesh uploads the vertex data of the mesh.
	ConfigMesh(ms Mesh) error

	// ConfigTexture uploads the image of the texture.
	ConfigTexture(tx Texture) error

	// ReleaseMesh frees the device copy of the mesh.
	ReleaseMesh(ms Mesh)

	// ReleaseMaterial frees any device state held for the material.
	ReleaseMaterial(mt Material)

	// ReleaseTexture frees the device copy of the texture.
	ReleaseTexture(tx Texture)
}

// NopDevice is a [Device] that holds nothing, for headless use.
type NopDevice struct{}

func (NopDevice) ConfigMesh(ms Mesh) error       { return nil }
func (NopDevice) ConfigTexture(tx Texture) error { return nil }
func (NopDevice) ReleaseMesh(ms Mesh)            {}
func (NopDevice) ReleaseMaterial(mt Material)    {}
func (NopDevice) ReleaseTexture(tx Texture)      {}

var _ Device = NopDevice{}
