// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This package is based extensively on https://github.com/g3n/engine :
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package obj is used to parse the Wavefront OBJ file format (*.obj).
// Only geometry is decoded: positions, texture coordinates and normals,
// grouped by object. Material libraries are ignored with a warning.
// Basic format info: https://en.wikipedia.org/wiki/Wavefront_.obj_file
package obj

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/helioviewer-project/helios/math32"
	"github.com/helioviewer-project/helios/xyz"
)

func init() {
	xyz.Decoders[".obj"] = &Decoder{}
}

// Decoder contains all decoded data from the obj file.
// It also implements the xyz.Decoder interface and an instance
// is registered to handle .obj files.
type Decoder struct {
	Objects  []Object  // decoded objects
	Vertices []float32 // vertices positions array
	Normals  []float32 // vertices normals
	Uvs      []float32 // vertices texture coordinates
	Warnings []string  // warning messages

	line       uint    // current line number
	objCurrent *Object // current object
}

func (dec *Decoder) New() xyz.Decoder {
	di := new(Decoder)
	di.line = 1
	return di
}

func (dec *Decoder) Desc() string {
	return ".obj = Wavefront OBJ format geometry. Materials (.mtl) are not loaded."
}

// Decode reads the given data and decodes into Decoder tmp vars.
func (dec *Decoder) Decode(r io.Reader) error {
	if r == nil {
		return errors.New("obj.Decoder: no reader passed")
	}
	return dec.parse(r, dec.parseObjLine)
}

// Meshes returns a mesh for each object that has faces.
func (dec *Decoder) Meshes() []*xyz.GenMesh {
	var mss []*xyz.GenMesh
	for i := range dec.Objects {
		ob := &dec.Objects[i]
		if len(ob.Faces) == 0 {
			continue
		}
		mss = append(mss, dec.objectMesh(ob))
	}
	return mss
}

// Object contains all information about one decoded object
type Object struct {
	Name  string // Object name
	Faces []Face // Faces
}

// Face contains all information about an object face
type Face struct {
	Vertices []int // Indices to the face vertices
	Uvs      []int // Indices to the face UV coordinates
	Normals  []int // Indices to the face normals
}

// Local constants
const (
	blanks   = "\r\n\t "
	invINDEX = -1
	objType  = "obj"
)

// objectMesh converts the faces of the object into triangles, as fans
// around the first vertex of each face.
func (dec *Decoder) objectMesh(ob *Object) *xyz.GenMesh {
	ms := xyz.NewGenMesh(ob.Name)
	for fi := range ob.Faces {
		face := &ob.Faces[fi]
		st := len(ms.Vertex) / 3
		hasNorm := true
		for idx := range face.Vertices {
			if !dec.copyVertex(ms, face, idx) {
				hasNorm = false
			}
		}
		if !hasNorm {
			dec.setFaceNormal(ms, st, len(face.Vertices))
		}
		for idx := 2; idx < len(face.Vertices); idx++ {
			ms.Index = append(ms.Index, uint32(st), uint32(st+idx-1), uint32(st+idx))
		}
	}
	ms.UpdateBBox()
	ms.Changed = true
	return ms
}

// setFaceNormal overwrites the normals of the n vertexes starting at st
// with the normal of their first triangle.
func (dec *Decoder) setFaceNormal(ms *xyz.GenMesh, st, n int) {
	vec := func(i int) math32.Vector3 {
		return math32.Vec3(ms.Vertex[3*i], ms.Vertex[3*i+1], ms.Vertex[3*i+2])
	}
	nrm := math32.Normal(vec(st), vec(st+1), vec(st+2))
	ms.Normal = ms.Normal[:3*st]
	for range n {
		ms.Normal = append(ms.Normal, nrm.X, nrm.Y, nrm.Z)
	}
}

// copyVertex appends the vertex at idx in the face to the mesh, returning
// false if the face gives no normal for it.
func (dec *Decoder) copyVertex(ms *xyz.GenMesh, face *Face, idx int) bool {
	i := 3 * face.Vertices[idx]
	ms.Vertex = append(ms.Vertex, dec.Vertices[i:i+3]...)

	hasNorm := false
	var nrm [3]float32
	if ni := face.Normals[idx]; ni != invINDEX && 3*ni+3 <= len(dec.Normals) {
		copy(nrm[:], dec.Normals[3*ni:3*ni+3])
		hasNorm = true
	}
	ms.Normal = append(ms.Normal, nrm[:]...)

	var uv [2]float32
	if ti := face.Uvs[idx]; ti != invINDEX && 2*ti+2 <= len(dec.Uvs) {
		copy(uv[:], dec.Uvs[2*ti:2*ti+2])
	}
	ms.TexCoord = append(ms.TexCoord, uv[:]...)
	return hasNorm
}

// parse reads the lines from the specified reader and dispatch them
// to the specified line parser.
func (dec *Decoder) parse(reader io.Reader, parseLine func(string) error) error {
	bufin := bufio.NewReader(reader)
	dec.line = 1
	for {
		// Reads next line and abort on errors (not EOF)
		line, err := bufin.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		line = strings.Trim(line, blanks)
		perr := parseLine(line)
		if perr != nil {
			return perr
		}
		if err == io.EOF {
			break
		}
		dec.line++
	}
	return nil
}

// Parses obj file line, dispatching to specific parsers
func (dec *Decoder) parseObjLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	ltype := fields[0]
	if strings.HasPrefix(ltype, "#") {
		return nil
	}
	switch ltype {
	// Object name
	case "o":
		return dec.parseObject(fields[1:])
	// Group names. We are considering "group" the same as "object"
	// This may not be right
	case "g":
		return dec.parseObject(fields[1:])
	// Vertex coordinate
	case "v":
		return dec.parseVertex(fields[1:])
	// Vertex normal coordinate
	case "vn":
		return dec.parseNormal(fields[1:])
	// Vertex texture coordinate
	case "vt":
		return dec.parseTex(fields[1:])
	// Face vertex
	case "f":
		return dec.parseFace(fields[1:])
	case "mtllib", "usemtl", "s":
		dec.appendWarn(objType, "ignored: "+ltype)
	default:
		dec.appendWarn(objType, "field not supported: "+ltype)
	}
	return nil
}

func (dec *Decoder) parseObject(fields []string) error {
	if len(fields) < 1 {
		return dec.formatError("Object line (o) with no fields")
	}
	dec.Objects = append(dec.Objects, Object{Name: fields[0]})
	dec.objCurrent = &dec.Objects[len(dec.Objects)-1]
	return nil
}

// parseFloats appends the first n fields, parsed as floats, to dst.
func (dec *Decoder) parseFloats(dst *[]float32, fields []string, n int, what string) error {
	if len(fields) < n {
		return dec.formatError(fmt.Sprintf("Less than %d values in '%s' line", n, what))
	}
	for _, f := range fields[:n] {
		val, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return dec.formatError(err.Error())
		}
		*dst = append(*dst, float32(val))
	}
	return nil
}

// Parses a vertex position line
// v <x> <y> <z> [w]
func (dec *Decoder) parseVertex(fields []string) error {
	return dec.parseFloats(&dec.Vertices, fields, 3, "v")
}

// Parses a vertex normal line
// vn <x> <y> <z>
func (dec *Decoder) parseNormal(fields []string) error {
	return dec.parseFloats(&dec.Normals, fields, 3, "vn")
}

// Parses a vertex texture coordinate line:
// vt <u> <v> <w>
func (dec *Decoder) parseTex(fields []string) error {
	return dec.parseFloats(&dec.Uvs, fields, 2, "vt")
}

// parseIndex parses a 1-based face index, where negative values count
// back from the last of the n items parsed so far.
func (dec *Decoder) parseIndex(s string, n int, what string) (int, error) {
	val, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, dec.formatError(err.Error())
	}
	var idx int
	switch {
	case val > 0:
		idx = int(val - 1)
	case val < 0:
		idx = n + int(val)
	default:
		return 0, dec.formatError(fmt.Sprintf("Face %s index value equal to 0", what))
	}
	if idx < 0 || idx >= n {
		return 0, dec.formatError(fmt.Sprintf("Face %s index %d out of range", what, val))
	}
	return idx, nil
}

// parseFace parses a face decription line:
// f v1[/vt1][/vn1] v2[/vt2][/vn2] v3[/vt3][/vn3] ...
func (dec *Decoder) parseFace(fields []string) error {
	if dec.objCurrent == nil {
		// if a face line is encountered before a group (g) or object (o),
		// create a new "default" object. This 'handles' the case when
		// a g or o line is not specified (allowed in OBJ format)
		dec.parseObject([]string{fmt.Sprintf("unnamed%d", dec.line)})
	}
	if len(fields) < 3 {
		return dec.formatError("Face line with less 3 fields")
	}
	face := Face{
		Vertices: make([]int, len(fields)),
		Uvs:      make([]int, len(fields)),
		Normals:  make([]int, len(fields)),
	}
	for pos, f := range fields {
		// Separate the current field in its components: v vt vn
		vfields := strings.Split(f, "/")
		var err error
		face.Vertices[pos], err = dec.parseIndex(vfields[0], len(dec.Vertices)/3, "vertex")
		if err != nil {
			return err
		}
		face.Uvs[pos] = invINDEX
		if len(vfields) > 1 && len(vfields[1]) > 0 {
			face.Uvs[pos], err = dec.parseIndex(vfields[1], len(dec.Uvs)/2, "uv")
			if err != nil {
				return err
			}
		}
		face.Normals[pos] = invINDEX
		if len(vfields) > 2 && len(vfields[2]) > 0 {
			face.Normals[pos], err = dec.parseIndex(vfields[2], len(dec.Normals)/3, "normal")
			if err != nil {
				return err
			}
		}
	}
	dec.objCurrent.Faces = append(dec.objCurrent.Faces, face)
	return nil
}

func (dec *Decoder) formatError(msg string) error {
	return fmt.Errorf("%s in line:%d", msg, dec.line)
}

func (dec *Decoder) appendWarn(ftype string, msg string) {
	wline := fmt.Sprintf("%s(%d): %s", ftype, dec.line, msg)
	dec.Warnings = append(dec.Warnings, wline)
}
