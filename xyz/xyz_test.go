// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helioviewer-project/helios/math32"
	"github.com/helioviewer-project/helios/shaders"
)

type recordDevice struct {
	NopDevice
	configured []string
	meshes     []string
	materials  []string
	textures   []string
}

func (rd *recordDevice) ConfigMesh(ms Mesh) error {
	rd.configured = append(rd.configured, ms.AsMeshBase().Name)
	return nil
}

func (rd *recordDevice) ReleaseMesh(ms Mesh) {
	rd.meshes = append(rd.meshes, ms.AsMeshBase().Name)
}

func (rd *recordDevice) ReleaseMaterial(mt Material) {
	rd.materials = append(rd.materials, mt.AsMaterialBase().Name)
}

func (rd *recordDevice) ReleaseTexture(tx Texture) {
	rd.textures = append(rd.textures, tx.AsTextureBase().Name)
}

func TestTree(t *testing.T) {
	sc := NewScene("scene", nil)
	gp := NewGroup(sc, "group", SolarModel)
	sc.AddChild(gp)
	sld := NewSolid(sc, "solid", NewPlane("plane", 2, 2), NewBasicMaterial("red", color.RGBA{255, 0, 0, 255}))
	gp.AddChild(sld)

	assert.Equal(t, "/scene/group/solid", sld.Path())
	assert.Equal(t, Node(sld), gp.ChildByName("solid"))
	assert.Len(t, gp.Solids(), 1)
	assert.Equal(t, "sun", gp.Kind().String())

	var visited []string
	sc.WalkDown(func(n Node) bool {
		visited = append(visited, n.AsNodeBase().Name)
		if n == Node(gp) {
			return Break
		}
		return Continue
	})
	assert.Equal(t, []string{"scene", "group"}, visited)

	assert.True(t, gp.DeleteChild(sld))
	assert.False(t, gp.DeleteChild(sld))
	assert.Nil(t, sld.Parent)
}

func TestReparent(t *testing.T) {
	sc := NewScene("scene", nil)
	a := NewGroup(sc, "a", KindNone)
	b := NewGroup(sc, "b", KindNone)
	sld := NewSolid(sc, "s", NewPlane("p", 1, 1), nil)
	a.AddChild(sld)
	b.AddChild(sld)
	assert.Equal(t, 0, a.NumChildren())
	assert.Equal(t, 1, b.NumChildren())
	assert.Equal(t, Node(b), sld.Parent)
}

func TestUpdateWorldBBox(t *testing.T) {
	sc := NewScene("scene", nil)
	gp := NewGroup(sc, "group", SolarModel).SetScale(0.5, 0.5, 0.5).SetPos(1, 0, 0)
	sc.AddChild(gp)
	sld := NewSolid(sc, "solid", NewPlane("plane", 2, 4), nil)
	gp.AddChild(sld)
	sc.Update()

	assert.Equal(t, math32.Vec3(0.5, -1, 0), sld.WorldBBox.Min)
	assert.Equal(t, math32.Vec3(1.5, 1, 0), sld.WorldBBox.Max)
	assert.Equal(t, math32.Vec3(-1, -2, 0), gp.MeshBBox.Min)
	assert.Equal(t, sld.WorldBBox, gp.WorldBBox)
	assert.False(t, gp.Pose.IsDirty())
}

func TestSphere(t *testing.T) {
	sp := NewSphere("sphere", 0.5, 32, 16)
	assert.Equal(t, 33*17, sp.NumVertex())
	assert.NoError(t, sp.Validate())
	assert.InDelta(t, 1, sp.BBox.Size().X, 1e-5)
	assert.InDelta(t, 1, sp.BBox.Size().Y, 1e-5)
	assert.True(t, sp.Changed)
}

func TestPlaneSetSize(t *testing.T) {
	pl := NewPlane("plane", 1, 1)
	pl.Changed = false
	pl.SetSize(4, 2)
	assert.True(t, pl.Changed)
	assert.Equal(t, math32.Vec3(-2, -1, 0), pl.BBox.Min)
	assert.Equal(t, math32.Vec3(2, 1, 0), pl.BBox.Max)
}

func TestMeshValidate(t *testing.T) {
	ms := NewGenMesh("bad")
	ms.Vertex = []float32{0, 0, 0, 1, 1, 1}
	ms.Index = []uint32{0, 1, 2}
	assert.Error(t, ms.Validate())
	ms.Index = []uint32{0, 1, 1}
	assert.NoError(t, ms.Validate())
	ms.TexCoord = []float32{0, 0}
	assert.Error(t, ms.Validate())
}

func TestGenMeshClone(t *testing.T) {
	ms := NewGenMesh("orig")
	ms.Vertex = []float32{1, 2, 3}
	ms.UpdateBBox()
	cl, err := ms.Clone("copy")
	require.NoError(t, err)
	cl.Vertex[0] = 9
	assert.Equal(t, float32(1), ms.Vertex[0])
	assert.Equal(t, "copy", cl.Name)
	assert.Equal(t, ms.BBox, cl.BBox)
}

func TestSolidRelease(t *testing.T) {
	rd := &recordDevice{}
	sc := NewScene("scene", rd)
	mat := NewShaderMaterial("mat", shaders.Solar(), ShaderParameters{Opacity: 1})
	sld := NewSolid(sc, "solid", NewPlane("plane", 1, 1), mat)
	assert.Equal(t, 1, sc.NumMeshes())
	sld.Release()
	assert.Equal(t, 0, sc.NumMeshes())
	assert.Equal(t, []string{"plane"}, rd.meshes)
	assert.Equal(t, []string{"mat"}, rd.materials)
	assert.Zero(t, sld.Mesh.AsMeshBase().NumVertex())
}

func TestSceneConfig(t *testing.T) {
	rd := &recordDevice{}
	sc := NewScene("scene", rd)
	sc.AddMesh(NewPlane("a", 1, 1))
	sc.AddMesh(NewPlane("b", 1, 1))
	require.NoError(t, sc.Config())
	require.NoError(t, sc.Config())
	assert.Equal(t, []string{"a", "b"}, rd.configured)

	tx := NewTexture("tex", image.NewGray(image.Rect(0, 0, 2, 2)))
	sc.AddTexture(tx)
	assert.Equal(t, image.Pt(2, 2), tx.Size())
	assert.False(t, tx.Transparent)
	require.NoError(t, sc.Config())
	assert.True(t, sc.DeleteTexture("tex"))
	assert.False(t, sc.DeleteTexture("tex"))
	assert.Equal(t, []string{"tex"}, rd.textures)
}

func TestMaterials(t *testing.T) {
	bm := NewBasicMaterial("red", color.RGBA{255, 0, 0, 255})
	assert.False(t, bm.Transparent)
	assert.True(t, bm.CullBack)

	sm := NewShaderMaterial("sun", shaders.Solar(), ShaderParameters{Scale: 2})
	sm.SetBackSide()
	assert.True(t, sm.Transparent)
	assert.True(t, sm.CullFront)
	assert.False(t, sm.CullBack)

	var mat Material = sm
	hp, ok := mat.(HasShaderParameters)
	require.True(t, ok)
	hp.ShaderParameters().Opacity = 0.5
	assert.Equal(t, float32(0.5), sm.Params.Opacity)

	tex := NewTexture("aia", image.NewRGBA(image.Rect(0, 0, 2, 2)))
	assert.Same(t, sm, sm.SetTexture(tex))
	assert.Equal(t, Texture(tex), hp.ShaderParameters().Texture)
	assert.Equal(t, float32(2), sm.Params.Scale)

	_, ok = Material(bm).(HasShaderParameters)
	assert.False(t, ok)
}
