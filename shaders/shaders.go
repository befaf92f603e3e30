// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shaders holds the GLSL programs used to draw solar imagery:
// the hemisphere program, which maps an image of the solar disk onto
// the front of the sun mesh and its corona onto the back, and the
// plane program, which draws coronagraph images on a flat plane.
package shaders

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed *.vert *.frag
var content embed.FS

// Uniform names shared by the programs.
const (
	UniformTexture              = "tex"
	UniformScale                = "scale"
	UniformXOffset              = "x_offset"
	UniformYOffset              = "y_offset"
	UniformBackside             = "backside"
	UniformOpacity              = "opacity"
	UniformTransparentThreshold = "transparent_threshold"
)

// Program is a vertex and fragment shader pair along with the names of
// the uniforms that its materials must provide.
type Program struct {
	// Name identifies the program, and is the base name of its source files.
	Name string

	// Vertex is the vertex shader source.
	Vertex string

	// Fragment is the fragment shader source.
	Fragment string

	// Uniforms are the uniforms set per material.
	Uniforms []string
}

var (
	solar = mustLoad("solar", UniformTexture, UniformScale, UniformXOffset, UniformYOffset,
		UniformBackside, UniformOpacity, UniformTransparentThreshold)
	plane = mustLoad("plane", UniformTexture, UniformXOffset, UniformYOffset, UniformOpacity)
)

// Solar returns the hemisphere program.
func Solar() *Program {
	return solar
}

// Plane returns the coronagraph plane program.
func Plane() *Program {
	return plane
}

// Load reads the program with the given name from the embedded sources.
func Load(name string, uniforms ...string) (*Program, error) {
	vert, err := fs.ReadFile(content, name+".vert")
	if err != nil {
		return nil, fmt.Errorf("shaders: %w", err)
	}
	frag, err := fs.ReadFile(content, name+".frag")
	if err != nil {
		return nil, fmt.Errorf("shaders: %w", err)
	}
	return &Program{Name: name, Vertex: string(vert), Fragment: string(frag), Uniforms: uniforms}, nil
}

func mustLoad(name string, uniforms ...string) *Program {
	pr, err := Load(name, uniforms...)
	if err != nil {
		panic(err)
	}
	return pr
}

func (pr *Program) String() string {
	return pr.Name
}
