// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image"
	"image/draw"
)

// Texture is the interface for all textures
type Texture interface {
	// AsTextureBase returns the [TextureBase] for this texture.
	AsTextureBase() *TextureBase

	// Image returns the image for the texture in [image.RGBA] format used
	// by the GPU.
	Image() *image.RGBA
}

// TextureBase is the base texture implementation.
// It uses an [image.RGBA] as the underlying image storage.
type TextureBase struct {
	// Name is the name of the texture; textures are connected to
	// materials by name.
	Name string

	// Transparent is whether the texture has transparency.
	Transparent bool

	// RGBA is the cached internal representation of the image.
	RGBA *image.RGBA
}

func (tx *TextureBase) AsTextureBase() *TextureBase {
	return tx
}

func (tx *TextureBase) Image() *image.RGBA {
	return tx.RGBA
}

// Size returns the size of the image, zero if released.
func (tx *TextureBase) Size() image.Point {
	if tx.RGBA == nil {
		return image.Point{}
	}
	return tx.RGBA.Bounds().Size()
}

// SetImage sets the image of the texture, converting it to
// [image.RGBA] if needed, and records whether it has any
// transparent pixels.
func (tx *TextureBase) SetImage(img image.Image) {
	if rgba, ok := img.(*image.RGBA); ok {
		tx.RGBA = rgba
	} else {
		b := img.Bounds()
		tx.RGBA = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(tx.RGBA, tx.RGBA.Bounds(), img, b.Min, draw.Src)
	}
	tx.Transparent = hasAlpha(tx.RGBA)
}

func hasAlpha(img *image.RGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] < 255 {
			return true
		}
	}
	return false
}

// NewTexture returns a new texture with the given name and image.
func NewTexture(name string, img image.Image) *TextureBase {
	tx := &TextureBase{Name: name}
	tx.SetImage(img)
	return tx
}

var _ Texture = &TextureBase{}
