// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package projection converts image calibration into the parameters
// used to place the image on a mesh. Full-disk images are projected on
// a hemisphere, whose shader needs a texture scale. Wide-field images
// from coronagraphs are projected on a flat plane sized relative to
// the solar radius.
package projection

import (
	"fmt"
	"slices"

	"github.com/helioviewer-project/helios/jp2"
)

// TargetWidthRatio is the fraction of the base mesh texture width
// covered by the hemisphere. It is fixed by the construction of the
// base sun mesh.
const TargetWidthRatio = 0.5

// Policy is how an image is projected into the scene.
type Policy int32

const (
	// Hemisphere maps a full-disk image onto a half sphere.
	Hemisphere Policy = iota

	// Plane maps a wide-field image onto a flat rectangle.
	Plane
)

func (p Policy) String() string {
	switch p {
	case Hemisphere:
		return "hemisphere"
	case Plane:
		return "plane"
	}
	return fmt.Sprintf("Policy(%d)", int32(p))
}

// MeshScale returns the scale passed to the solar shader so that the
// sun in the texture exactly covers the hemisphere of the base mesh.
// The sun is assumed to be centered in the image; the solar center
// recorded in the calibration is not used.
func MeshScale(in jp2.Info) float64 {
	diameter := in.SolarRadius * 2
	sunImageRatio := diameter / in.Width
	return sunImageRatio / TargetWidthRatio
}

// PlaneDimensions returns the width and height of the plane for the
// given image, in units of the solar radius, so that images from
// instruments with different fields of view render at the same
// relative scale.
func PlaneDimensions(in jp2.Info) (width, height float64) {
	return in.Width / in.SolarRadius, in.Height / in.SolarRadius
}

// PlaneSources is the allow-list of Helioviewer source ids whose
// images are projected on a plane. All other sources use [Hemisphere].
type PlaneSources []int

// PolicyFor returns the projection policy for the given source id.
func (ps PlaneSources) PolicyFor(source int) Policy {
	if slices.Contains(ps, source) {
		return Plane
	}
	return Hemisphere
}
