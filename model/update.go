// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"github.com/helioviewer-project/helios/jp2"
	"github.com/helioviewer-project/helios/math32"
	"github.com/helioviewer-project/helios/projection"
	"github.com/helioviewer-project/helios/xyz"
)

// UpdateTexture replaces the image shown by every shaded solid in the
// group, without rebuilding the model. For plane sources the plane is
// resized to the new calibration; otherwise the hemisphere scale is
// recomputed. Solids without a [xyz.ShaderMaterial] are skipped.
//
// All solids are updated before returning, so it must be called from
// the goroutine that renders the scene.
func (b *Builder) UpdateTexture(gp *xyz.Group, tex xyz.Texture, info jp2.Info, source int) error {
	if err := info.Validate(); err != nil {
		return err
	}
	plane := b.planeSources.PolicyFor(source) == projection.Plane
	var w, h float32
	if plane {
		pw, ph := projection.PlaneDimensions(info)
		w, h = float32(pw), float32(ph)
	}
	scale := float32(projection.MeshScale(info))
	for _, sld := range gp.Solids() {
		sm, ok := sld.Material.(*xyz.ShaderMaterial)
		if !ok {
			continue
		}
		sm.SetTexture(tex)
		if !plane {
			sm.Params.Scale = scale
			continue
		}
		if pl, ok := sld.Mesh.(*xyz.Plane); ok {
			pl.SetSize(w, h)
		}
		sld.SetMeshChanged()
	}
	return nil
}

// UpdateOpacity sets the opacity of every shaded solid in the group,
// clamped to [0, 1]. Solids without shader parameters, such as
// markers, are left as is.
func UpdateOpacity(gp *xyz.Group, opacity float32) {
	opacity = math32.Clamp(opacity, 0, 1)
	for _, sld := range gp.Solids() {
		if hp, ok := sld.Material.(xyz.HasShaderParameters); ok {
			hp.ShaderParameters().Opacity = opacity
		}
	}
}
