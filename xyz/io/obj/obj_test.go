// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obj

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helioviewer-project/helios/math32"
	"github.com/helioviewer-project/helios/xyz"
)

func TestDecodeQuad(t *testing.T) {
	ms, err := xyz.DecodeFile(os.DirFS("testdata"), "quad.obj")
	require.NoError(t, err)
	assert.Equal(t, 4, ms.NumVertex())
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, ms.Index)
	assert.Equal(t, []float32{0, 0, 1, 0, 1, 1, 0, 1}, ms.TexCoord)
	assert.Equal(t, math32.Vec3(-1, -1, 0), ms.BBox.Min)
	assert.Equal(t, math32.Vec3(1, 1, 0), ms.BBox.Max)
	assert.NoError(t, ms.Validate())
}

func TestDecodeComputedNormals(t *testing.T) {
	ms, err := xyz.DecodeFile(os.DirFS("testdata"), "noobj.obj")
	require.NoError(t, err)
	assert.Equal(t, 6, ms.NumVertex())
	// faces without normals get the normal of their triangle
	assert.Equal(t, []float32{0, 0, 1}, ms.Normal[:3])
	assert.Equal(t, []float32{0, 0, 1}, ms.Normal[15:18])
	assert.Len(t, ms.TexCoord, 12)
}

func TestDecodeErrors(t *testing.T) {
	for _, src := range []string{
		"v 0 0\n",
		"v 0 0 0\nv 1 0 0\nf 1 2\n",
		"v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n",
		"v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n",
		"v a b c\n",
	} {
		dec := (&Decoder{}).New()
		assert.Error(t, dec.Decode(strings.NewReader(src)), src)
	}
}

func TestWarnings(t *testing.T) {
	dec := (&Decoder{}).New().(*Decoder)
	require.NoError(t, dec.Decode(strings.NewReader("mtllib sun.mtl\nfoo bar\n")))
	assert.Equal(t, []string{"obj(1): ignored: mtllib", "obj(2): field not supported: foo"}, dec.Warnings)
	assert.Empty(t, dec.Meshes())
}

func TestSceneLoadMesh(t *testing.T) {
	sc := xyz.NewScene("scene", nil)
	fsys := os.DirFS("testdata")
	var wg sync.WaitGroup
	mss := make([]*xyz.GenMesh, 4)
	for i := range mss {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ms, err := sc.LoadMesh(context.Background(), fsys, "quad.obj")
			assert.NoError(t, err)
			mss[i] = ms
		}()
	}
	wg.Wait()
	names := map[string]bool{}
	for _, ms := range mss {
		require.NotNil(t, ms)
		assert.Equal(t, 4, ms.NumVertex())
		names[ms.Name] = true
	}
	assert.Len(t, names, len(mss))
	mss[0].Vertex[0] = 42
	assert.NotEqual(t, float32(42), mss[1].Vertex[0])

	_, err := sc.LoadMesh(context.Background(), fsys, "missing.obj")
	assert.Error(t, err)
	_, err = sc.LoadMesh(context.Background(), fsys, "quad.gltf")
	assert.Error(t, err)
}
