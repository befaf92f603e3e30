// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image/color"

	"github.com/helioviewer-project/helios/shaders"
)

// Material describes how the surface of a [Solid] is drawn.
type Material interface {
	// AsMaterialBase returns the [MaterialBase] for this material.
	AsMaterialBase() *MaterialBase
}

// MaterialBase holds the properties common to all materials.
type MaterialBase struct {
	// Name identifies the material for the device.
	Name string

	// Transparent enables alpha blending, without which transparent
	// pixels are drawn opaque.
	Transparent bool

	// CullBack indicates to cull the back-facing surfaces.
	CullBack bool

	// CullFront indicates to cull the front-facing surfaces.
	CullFront bool
}

func (mb *MaterialBase) AsMaterialBase() *MaterialBase {
	return mb
}

// Defaults sets default surface parameters
func (mb *MaterialBase) Defaults() {
	mb.CullBack = true
	mb.CullFront = false
}

// SetBackSide draws only the back-facing surfaces.
func (mb *MaterialBase) SetBackSide() {
	mb.CullBack = false
	mb.CullFront = true
}

// BasicMaterial is an unlit material of a single color.
type BasicMaterial struct {
	MaterialBase

	// Color is the surface color.
	Color color.RGBA
}

// NewBasicMaterial returns a new [BasicMaterial] with the given color.
func NewBasicMaterial(name string, clr color.RGBA) *BasicMaterial {
	mt := &BasicMaterial{Color: clr}
	mt.Name = name
	mt.Defaults()
	mt.Transparent = clr.A < 255
	return mt
}

// ShaderParameters are the uniforms of a [ShaderMaterial].
// Fields a program does not declare are ignored by it.
type ShaderParameters struct {
	// Texture is the image sampled by the shader.
	Texture Texture

	// Scale maps the mesh's texture coordinates onto the image.
	Scale float32

	// XOffset shifts texture coordinates horizontally.
	XOffset float32

	// YOffset shifts texture coordinates vertically.
	YOffset float32

	// Backside selects the back-face rendering path.
	Backside bool

	// Opacity multiplies the sampled alpha.
	Opacity float32

	// TransparentThreshold is the channel value below which
	// pixels are discarded.
	TransparentThreshold float32
}

// HasShaderParameters is implemented by materials with [ShaderParameters].
type HasShaderParameters interface {
	ShaderParameters() *ShaderParameters
}

// ShaderMaterial draws a surface with a custom [shaders.Program].
type ShaderMaterial struct {
	MaterialBase

	// Program is the shader program.
	Program *shaders.Program

	// Params are the uniform values.
	Params ShaderParameters
}

// NewShaderMaterial returns a new transparent [ShaderMaterial]
// for the given program, with the given parameters.
func NewShaderMaterial(name string, pr *shaders.Program, params ShaderParameters) *ShaderMaterial {
	mt := &ShaderMaterial{Program: pr, Params: params}
	mt.Name = name
	mt.Defaults()
	mt.Transparent = true
	return mt
}

func (mt *ShaderMaterial) ShaderParameters() *ShaderParameters {
	return &mt.Params
}

// SetTexture sets material to use given texture
func (mt *ShaderMaterial) SetTexture(tex Texture) *ShaderMaterial {
	mt.Params.Texture = tex
	return mt
}

var (
	_ Material            = &BasicMaterial{}
	_ Material            = &ShaderMaterial{}
	_ HasShaderParameters = &ShaderMaterial{}
)
