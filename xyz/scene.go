// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/helioviewer-project/helios/base/ordmap"
)

// Scene is the overall scenegraph containing nodes as children.
// It holds the libraries of meshes and textures that the [Device]
// must have configured prior to rendering.
//
// Meshes and textures may be added concurrently, for example by
// model builders loading several solids in parallel. Changes to the
// node tree itself are not synchronized.
type Scene struct {
	NodeBase

	// Device owns the GPU-side resources. It is never nil.
	Device Device `json:"-"`

	// meshes holds all the mesh data, keyed by mesh name.
	meshes ordmap.Map[string, Mesh]

	// textures holds all the textures, keyed by texture name.
	textures ordmap.Map[string, Texture]

	// configured is the set of textures already uploaded to the device.
	configured map[string]bool

	// library holds decoded mesh files, keyed by path, as templates
	// that [Scene.LoadMesh] clones.
	library map[string]*GenMesh

	// loads collapses concurrent decodes of the same file.
	loads singleflight.Group

	// serial numbers generated names.
	serial atomic.Uint64

	// mu protects the libraries.
	mu sync.Mutex
}

// NewScene creates a new Scene to contain a 3D scenegraph,
// using the given device, or a [NopDevice] if nil.
func NewScene(name string, dev Device) *Scene {
	sc := &Scene{Device: dev}
	if sc.Device == nil {
		sc.Device = NopDevice{}
	}
	sc.InitName(sc, name)
	sc.Scene = sc
	sc.meshes.Init()
	sc.textures.Init()
	sc.configured = make(map[string]bool)
	sc.library = make(map[string]*GenMesh)
	return sc
}

// UniqueName returns the given prefix followed by a number unique
// within this scene.
func (sc *Scene) UniqueName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, sc.serial.Add(1))
}

// AddMesh adds given mesh to mesh collection, replacing
// any mesh with the same name.
func (sc *Scene) AddMesh(ms Mesh) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.meshes.Add(ms.AsMeshBase().Name, ms)
}

// DeleteMesh removes the mesh with the given name from the collection,
// returning false if there is no such mesh.
func (sc *Scene) DeleteMesh(name string) bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.meshes.DeleteKey(name)
}

// MeshByName looks for mesh by name, returning false if not found.
func (sc *Scene) MeshByName(name string) (Mesh, bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.meshes.ValueByKeyTry(name)
}

// NumMeshes returns the number of meshes in the collection.
func (sc *Scene) NumMeshes() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.meshes.Len()
}

// AddTexture adds given texture to texture collection, replacing
// any texture with the same name.
func (sc *Scene) AddTexture(tx Texture) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	name := tx.AsTextureBase().Name
	sc.textures.Add(name, tx)
	delete(sc.configured, name)
}

// DeleteTexture removes the texture with the given name from the
// collection and releases it on the device, returning false if
// there is no such texture.
func (sc *Scene) DeleteTexture(name string) bool {
	sc.mu.Lock()
	tx, ok := sc.textures.ValueByKeyTry(name)
	if ok {
		sc.textures.DeleteKey(name)
		delete(sc.configured, name)
	}
	sc.mu.Unlock()
	if ok {
		sc.Device.ReleaseTexture(tx)
	}
	return ok
}

// TextureByName looks for texture by name, returning false if not found.
func (sc *Scene) TextureByName(name string) (Texture, bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.textures.ValueByKeyTry(name)
}

// NumTextures returns the number of textures in the collection.
func (sc *Scene) NumTextures() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.textures.Len()
}

// Config uploads any changed meshes and new textures to the device,
// in the order they were added.
func (sc *Scene) Config() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	for _, kv := range sc.meshes.Order {
		mb := kv.Value.AsMeshBase()
		if !mb.Changed {
			continue
		}
		if err := sc.Device.ConfigMesh(kv.Value); err != nil {
			return fmt.Errorf("xyz: configuring mesh %q: %w", kv.Key, err)
		}
		mb.Changed = false
	}
	for _, kv := range sc.textures.Order {
		if sc.configured[kv.Key] {
			continue
		}
		if err := sc.Device.ConfigTexture(kv.Value); err != nil {
			return fmt.Errorf("xyz: configuring texture %q: %w", kv.Key, err)
		}
		sc.configured[kv.Key] = true
	}
	return nil
}

// Update recomputes the transform matrices and bounding boxes of all
// nodes in the scene.
func (sc *Scene) Update() {
	sc.WalkDown(func(n Node) bool {
		nb := n.AsNodeBase()
		nb.Pose.UpdateMatrix()
		if nb.Parent == nil {
			nb.Pose.UpdateWorldMatrix(nil)
		} else {
			nb.Pose.UpdateWorldMatrix(&nb.Parent.AsNodeBase().Pose.WorldMatrix)
		}
		return Continue
	})
	sc.WalkPost(func(n Node) {
		n.UpdateMeshBBox()
		nb := n.AsNodeBase()
		nb.WorldBBox = nb.MeshBBox.MulMatrix4(&nb.Pose.WorldMatrix)
	})
}
