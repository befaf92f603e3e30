// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"math"

	"github.com/helioviewer-project/helios/math32"
)

// Sphere is a sphere mesh
type Sphere struct {
	MeshBase

	// Radius of the sphere.
	Radius float32

	// number of segments around the width of the sphere (32 is reasonable default for full circle)
	WidthSegs int `min:"3"`

	// number of height segments (32 is reasonable default for full height)
	HeightSegs int `min:"3"`

	// starting radial angle in degrees, relative to -1,0,0 left side starting point
	AngleStart float32 `min:"0" max:"360" step:"5"`

	// total radial angle to generate in degrees (max = 360)
	AngleLength float32 `min:"0" max:"360" step:"5"`

	// starting elevation (height) angle in degrees - 0 = top of sphere, and Pi is bottom
	ElevationStart float32 `min:"0" max:"180" step:"5"`

	// total angle to generate in degrees (max = 180)
	ElevationLength float32 `min:"0" max:"180" step:"5"`
}

// NewSphere creates a sphere mesh with the specified radius,
// number of width and height segments (resolution).
func NewSphere(name string, radius float32, widthSegs, heightSegs int) *Sphere {
	sp := &Sphere{}
	sp.Name = name
	sp.Radius = radius
	sp.WidthSegs = widthSegs
	sp.HeightSegs = heightSegs
	sp.AngleLength = 360
	sp.ElevationLength = 180
	sp.Make()
	return sp
}

func (sp *Sphere) Make() {
	sp.Reset()
	sp.AddSphereSector(sp.Radius, sp.WidthSegs, sp.HeightSegs, sp.AngleStart, sp.AngleLength, sp.ElevationStart, sp.ElevationLength, math32.Vector3{})
}

// AddSphereSector creates a sphere sector mesh
// with the specified radius, number of radial segments in each dimension,
// radial sector start angle and length in degrees (0 - 360), start = -1,0,0,
// elevation start angle and length in degrees (0 - 180), top = 0, bot = 180,
// offset is an arbitrary offset (for composing shapes).
func (ms *MeshBase) AddSphereSector(radius float32, widthSegs, heightSegs int, angStart, angLen, elevStart, elevLen float32, offset math32.Vector3) {
	widthSegs = max(widthSegs, 3)
	heightSegs = max(heightSegs, 2)
	nVtx := (widthSegs + 1) * (heightSegs + 1)

	angStRad := math32.DegToRad(angStart)
	angLenRad := math32.DegToRad(angLen)
	elevStRad := math32.DegToRad(elevStart)
	elevLenRad := math32.DegToRad(elevLen)
	elevEndRad := elevStRad + elevLenRad

	pos := make([]float32, 0, nVtx*3)
	norms := make([]float32, 0, nVtx*3)
	uvs := make([]float32, 0, nVtx*2)
	idxs := make([]uint32, 0, nVtx*6)
	stidx := uint32(len(ms.Vertex) / 3)

	idx := uint32(0)
	vtxs := make([][]uint32, 0, heightSegs+1)

	for y := 0; y <= heightSegs; y++ {
		vtxsRow := make([]uint32, 0, widthSegs+1)
		v := float32(y) / float32(heightSegs)
		for x := 0; x <= widthSegs; x++ {
			u := float32(x) / float32(widthSegs)
			px := -radius * math32.Cos(angStRad+u*angLenRad) * math32.Sin(elevStRad+v*elevLenRad)
			py := radius * math32.Cos(elevStRad+v*elevLenRad)
			pz := radius * math32.Sin(angStRad+u*angLenRad) * math32.Sin(elevStRad+v*elevLenRad)
			pt := math32.Vec3(px, py, pz)
			norm := pt.Normal()
			pt = pt.Add(offset)

			pos = append(pos, pt.X, pt.Y, pt.Z)
			norms = append(norms, norm.X, norm.Y, norm.Z)
			uvs = append(uvs, u, 1-v)
			vtxsRow = append(vtxsRow, idx)
			ms.BBox.ExpandByPoint(pt)
			idx++
		}
		vtxs = append(vtxs, vtxsRow)
	}

	for y := 0; y < heightSegs; y++ {
		for x := 0; x < widthSegs; x++ {
			v1 := vtxs[y][x+1]
			v2 := vtxs[y][x]
			v3 := vtxs[y+1][x]
			v4 := vtxs[y+1][x+1]
			if y != 0 || elevStRad > 0 {
				idxs = append(idxs, stidx+v1, stidx+v2, stidx+v4)
			}
			if y != heightSegs-1 || elevEndRad < math.Pi {
				idxs = append(idxs, stidx+v2, stidx+v3, stidx+v4)
			}
		}
	}

	ms.Vertex = append(ms.Vertex, pos...)
	ms.Normal = append(ms.Normal, norms...)
	ms.TexCoord = append(ms.TexCoord, uvs...)
	ms.Index = append(ms.Index, idxs...)
	ms.Changed = true
}

// Plane is a flat 2D plane in the XY plane, facing the positive Z axis,
// centered on the origin.
type Plane struct {
	MeshBase

	// Size is the 2D size of the plane.
	Size math32.Vector2
}

// NewPlane returns a new plane mesh with the given name and size.
func NewPlane(name string, width, height float32) *Plane {
	pl := &Plane{}
	pl.Name = name
	pl.Size.Set(width, height)
	pl.Make()
	return pl
}

// SetSize sets the size of the plane and regenerates its vertex data.
func (pl *Plane) SetSize(width, height float32) *Plane {
	pl.Size.Set(width, height)
	pl.Make()
	return pl
}

func (pl *Plane) Make() {
	pl.Reset()
	hw, hh := pl.Size.X/2, pl.Size.Y/2
	pl.Vertex = []float32{
		-hw, -hh, 0,
		hw, -hh, 0,
		hw, hh, 0,
		-hw, hh, 0,
	}
	pl.Normal = []float32{0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1}
	pl.TexCoord = []float32{0, 0, 1, 0, 1, 1, 0, 1}
	pl.Index = []uint32{0, 1, 2, 0, 2, 3}
	pl.UpdateBBox()
	pl.Changed = true
}

var (
	_ Mesh = &Sphere{}
	_ Mesh = &Plane{}
)
