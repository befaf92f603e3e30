// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"path"
)

// Decoder parses 3D object file(s) into meshes.
// This interface is implemented by the different format-specific decoders.
type Decoder interface {
	// New returns a new instance of the decoder used for a specific decoding
	New() Decoder

	// Desc returns the description of this decoder
	Desc() string

	// Decode reads the given data and decodes it.
	Decode(r io.Reader) error

	// Meshes returns the decoded meshes, one per object in the file.
	Meshes() []*GenMesh
}

// Decoders is the master list of decoders, indexed by the primary extension.
// .obj = Wavefront object file -- only has mesh data, not scene info.
var Decoders = map[string]Decoder{}

// DecodeFile decodes the given file from the given filesystem using a
// decoder based on the file extension, returning all of its objects
// merged into a single mesh named after the file.
func DecodeFile(fsys fs.FS, fname string) (*GenMesh, error) {
	ext := path.Ext(fname)
	dt, has := Decoders[ext]
	if !has {
		return nil, fmt.Errorf("xyz.DecodeFile: file extension: %v not found in Decoders list for file %v", ext, fname)
	}
	f, err := fsys.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dec := dt.New()
	if err := dec.Decode(f); err != nil {
		return nil, fmt.Errorf("xyz.DecodeFile: %v: %w", fname, err)
	}
	objs := dec.Meshes()
	if len(objs) == 0 {
		return nil, fmt.Errorf("xyz.DecodeFile: %v: no objects found", fname)
	}
	ms := NewGenMesh(fname)
	for _, obj := range objs {
		ms.Append(&obj.MeshBase)
	}
	if err := ms.Validate(); err != nil {
		return nil, err
	}
	return ms, nil
}

// Append adds the vertexes and triangles of the given mesh to this one.
func (ms *MeshBase) Append(other *MeshBase) {
	st := uint32(ms.NumVertex())
	ms.Vertex = append(ms.Vertex, other.Vertex...)
	ms.Normal = append(ms.Normal, other.Normal...)
	ms.TexCoord = append(ms.TexCoord, other.TexCoord...)
	for _, ix := range other.Index {
		ms.Index = append(ms.Index, st+ix)
	}
	ms.BBox.ExpandByBox(other.BBox)
	ms.Changed = true
}

// LoadMesh returns a new mesh with a unique name holding the geometry
// of the given file. Each file is decoded once per scene, and concurrent
// loads of the same file share the decode. The returned mesh is a copy
// owned by the caller, and is not added to the scene.
func (sc *Scene) LoadMesh(ctx context.Context, fsys fs.FS, fname string) (*GenMesh, error) {
	sc.mu.Lock()
	tmpl, ok := sc.library[fname]
	sc.mu.Unlock()
	if !ok {
		ch := sc.loads.DoChan(fname, func() (any, error) {
			ms, err := DecodeFile(fsys, fname)
			if err != nil {
				return nil, err
			}
			sc.mu.Lock()
			sc.library[fname] = ms
			sc.mu.Unlock()
			return ms, nil
		})
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case res := <-ch:
			if res.Err != nil {
				return nil, res.Err
			}
			tmpl = res.Val.(*GenMesh)
		}
	}
	return tmpl.Clone(sc.UniqueName(path.Base(fname)))
}
