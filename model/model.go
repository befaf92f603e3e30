// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model builds, updates and frees the scene models that display
// solar imagery: hemispheres for full-disk images, planes for
// coronagraph images, and markers for points of interest.
//
// Every model returned by a [Builder] must be passed to [Free] exactly
// once when it is removed from the scene, or its device resources leak.
// Freeing a model twice is undefined.
package model

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"

	"github.com/helioviewer-project/helios/assets"
	"github.com/helioviewer-project/helios/projection"
	"github.com/helioviewer-project/helios/xyz"
	_ "github.com/helioviewer-project/helios/xyz/io/obj"
)

const (
	// GroupScale is the scale applied to hemisphere models, which maps
	// the radius of the base mesh to one solar radius in scene units.
	GroupScale = 0.04

	// TransparentThreshold is the channel value below which the solar
	// shader discards pixels.
	TransparentThreshold = 0.05

	// MarkerRadius is the radius of marker spheres.
	MarkerRadius = 0.5
)

// DebugColor is the color of the debug hemisphere.
var DebugColor = color.RGBA{255, 0, 0, 255}

// ErrLabelsNotImplemented is returned by [Builder.AttachLabel].
var ErrLabelsNotImplemented = errors.New("model: text labels not implemented")

// AssetLoadError is returned when the base mesh asset of a model
// cannot be loaded.
type AssetLoadError struct {
	// Path is the asset path.
	Path string

	// Err is the underlying error.
	Err error
}

func (e *AssetLoadError) Error() string {
	return fmt.Sprintf("model: loading mesh asset %q: %v", e.Path, e.Err)
}

func (e *AssetLoadError) Unwrap() error {
	return e.Err
}

// Builder creates models for a scene.
type Builder struct {
	scene        *xyz.Scene
	assets       fs.FS
	assetPath    string
	planeSources projection.PlaneSources
}

// Option configures a [Builder].
type Option func(b *Builder)

// WithAssets sets the filesystem the base mesh is loaded from.
// The default is [assets.FS].
func WithAssets(fsys fs.FS) Option {
	return func(b *Builder) {
		b.assets = fsys
	}
}

// WithAssetPath sets the path of the base mesh within the assets.
// The default is [assets.SunModel].
func WithAssetPath(path string) Option {
	return func(b *Builder) {
		b.assetPath = path
	}
}

// WithPlaneSources sets the sources that are projected on a plane.
func WithPlaneSources(sources projection.PlaneSources) Option {
	return func(b *Builder) {
		b.planeSources = sources
	}
}

// NewBuilder returns a new [Builder] for the given scene.
func NewBuilder(sc *xyz.Scene, opts ...Option) *Builder {
	b := &Builder{
		scene:     sc,
		assets:    assets.FS(),
		assetPath: assets.SunModel,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Scene returns the scene models are built for.
func (b *Builder) Scene() *xyz.Scene {
	return b.scene
}

// PlaneSources returns the sources that are projected on a plane.
func (b *Builder) PlaneSources() projection.PlaneSources {
	return b.planeSources
}

// IsSolarModel returns whether the node is a group of solar imagery.
func IsSolarModel(n xyz.Node) bool {
	return kindOf(n) == xyz.SolarModel
}

// IsMarkerModel returns whether the node is a marker group.
func IsMarkerModel(n xyz.Node) bool {
	return kindOf(n) == xyz.MarkerModel
}

func kindOf(n xyz.Node) xyz.Kind {
	if gp, ok := n.(*xyz.Group); ok {
		return gp.Kind()
	}
	return xyz.KindNone
}
