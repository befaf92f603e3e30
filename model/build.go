// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"context"
	"image/color"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/helioviewer-project/helios/jp2"
	"github.com/helioviewer-project/helios/projection"
	"github.com/helioviewer-project/helios/shaders"
	"github.com/helioviewer-project/helios/xyz"
)

// Build builds the model for an image from the given source, using the
// projection policy of the source.
func (b *Builder) Build(ctx context.Context, source int, tex xyz.Texture, info jp2.Info) (*xyz.Group, error) {
	if b.planeSources.PolicyFor(source) == projection.Plane {
		return b.BuildPlane(ctx, tex, info)
	}
	return b.BuildHemisphere(ctx, tex, info)
}

// BuildHemisphere builds a model that projects a full-disk image onto
// the front of a hemisphere, with the part of the image beyond the
// solar disk drawn on the inside of the hemisphere so that it shows
// around the limb.
func (b *Builder) BuildHemisphere(ctx context.Context, tex xyz.Texture, info jp2.Info) (*xyz.Group, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}
	scale := float32(projection.MeshScale(info))
	var front, back *xyz.Solid
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		front, err = b.solarSolid(ctx, "front", tex, scale, false)
		return err
	})
	eg.Go(func() (err error) {
		back, err = b.solarSolid(ctx, "back", tex, scale, true)
		return err
	})
	if err := eg.Wait(); err != nil {
		for _, sld := range []*xyz.Solid{front, back} {
			if sld != nil {
				sld.Release()
			}
		}
		return nil, err
	}
	gp := xyz.NewGroup(b.scene, b.scene.UniqueName("sun"), xyz.SolarModel)
	gp.AddChild(front)
	gp.AddChild(back)
	gp.SetScale(GroupScale, GroupScale, GroupScale)
	slog.Debug("built hemisphere model", "name", gp.Name, "scale", scale, "calibration", info)
	return gp, nil
}

func (b *Builder) solarSolid(ctx context.Context, side string, tex xyz.Texture, scale float32, backside bool) (*xyz.Solid, error) {
	ms, err := b.loadMesh(ctx)
	if err != nil {
		return nil, err
	}
	mat := xyz.NewShaderMaterial(ms.Name, shaders.Solar(), xyz.ShaderParameters{
		Texture:              tex,
		Scale:                scale,
		Backside:             backside,
		Opacity:              1,
		TransparentThreshold: TransparentThreshold,
	})
	if backside {
		mat.SetBackSide()
	}
	return xyz.NewSolid(b.scene, side, ms, mat), nil
}

func (b *Builder) loadMesh(ctx context.Context) (*xyz.GenMesh, error) {
	ms, err := b.scene.LoadMesh(ctx, b.assets, b.assetPath)
	if err != nil {
		return nil, &AssetLoadError{Path: b.assetPath, Err: err}
	}
	return ms, nil
}

// BuildPlane builds a model that projects a coronagraph image onto a
// flat plane sized in solar radii.
func (b *Builder) BuildPlane(ctx context.Context, tex xyz.Texture, info jp2.Info) (*xyz.Group, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w, h := projection.PlaneDimensions(info)
	ms := xyz.NewPlane(b.scene.UniqueName("plane"), float32(w), float32(h))
	mat := xyz.NewShaderMaterial(ms.Name, shaders.Plane(), xyz.ShaderParameters{
		Texture: tex,
		Opacity: 1,
	})
	gp := xyz.NewGroup(b.scene, b.scene.UniqueName("sun"), xyz.SolarModel)
	gp.AddChild(xyz.NewSolid(b.scene, "plane", ms, mat))
	slog.Debug("built plane model", "name", gp.Name, "width", w, "height", h)
	return gp, nil
}

// BuildMarker builds a small sphere of the given color marking a point
// of interest.
func (b *Builder) BuildMarker(clr color.RGBA) *xyz.Group {
	ms := xyz.NewSphere(b.scene.UniqueName("marker"), MarkerRadius, 32, 16)
	gp := xyz.NewGroup(b.scene, b.scene.UniqueName("marker"), xyz.MarkerModel)
	gp.AddChild(xyz.NewSolid(b.scene, "sphere", ms, xyz.NewBasicMaterial(ms.Name, clr)))
	return gp
}

// BuildDebugHemisphere builds the base mesh with a flat red material
// and no shader parameters, for checking the mesh geometry.
func (b *Builder) BuildDebugHemisphere(ctx context.Context) (*xyz.Solid, error) {
	ms, err := b.loadMesh(ctx)
	if err != nil {
		return nil, err
	}
	sld := xyz.NewSolid(b.scene, "debug", ms, xyz.NewBasicMaterial(ms.Name, DebugColor))
	sld.SetScale(GroupScale, GroupScale, GroupScale)
	return sld, nil
}

// AttachLabel would attach a text label to the given marker.
// Text rendering is not supported, so it always returns
// [ErrLabelsNotImplemented].
func (b *Builder) AttachLabel(gp *xyz.Group, text string) error {
	slog.Warn("text labels not implemented", "model", gp.Name, "text", text)
	return ErrLabelsNotImplemented
}
