// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jp2 extracts the calibration of a solar image: its pixel
// dimensions, the sub-pixel position of the solar center and the solar
// radius in pixels. The calibration can come from a Helioviewer image
// record (JSON) or from the FITS-style header embedded in a JPEG 2000
// file (XML). Both normalize to the same [Info].
package jp2

import (
	"fmt"
	"math"
)

// Info is the calibration of one solar image, in pixels.
type Info struct {

	// Width is the image width.
	Width float64 `json:"width"`

	// Height is the image height.
	Height float64 `json:"height"`

	// SolarCenterX is the x coordinate of the center of the sun within the image.
	SolarCenterX float64 `json:"solar_center_x"`

	// SolarCenterY is the y coordinate of the center of the sun within the image.
	SolarCenterY float64 `json:"solar_center_y"`

	// SolarRadius is the radius of the sun.
	SolarRadius float64 `json:"solar_radius"`
}

// Validate returns a [*MalformedCalibrationError] if the calibration
// cannot be used to project an image: a size or radius that is not a
// positive finite number, or a non-finite solar center.
func (in Info) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"width", in.Width},
		{"height", in.Height},
		{"solar_radius", in.SolarRadius},
	} {
		if err := checkFinite(f.name, f.v); err != nil {
			return err
		}
		if !(f.v > 0) {
			return &MalformedCalibrationError{Field: f.name, Reason: fmt.Sprintf("must be > 0, got %g", f.v)}
		}
	}
	if err := checkFinite("solar_center_x", in.SolarCenterX); err != nil {
		return err
	}
	return checkFinite("solar_center_y", in.SolarCenterY)
}

// checkFinite returns a [*MalformedCalibrationError] for NaN and
// infinite values of the named field.
func checkFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &MalformedCalibrationError{Field: name, Reason: fmt.Sprintf("not a finite number: %g", v)}
	}
	return nil
}

func (in Info) String() string {
	return fmt.Sprintf("%gx%g center=(%g, %g) rsun=%g", in.Width, in.Height, in.SolarCenterX, in.SolarCenterY, in.SolarRadius)
}

// MalformedCalibrationError is returned when a calibration field is
// missing or is not a number. It is fatal to the image it belongs to only.
type MalformedCalibrationError struct {

	// Field is the name of the field as it appears in the source document.
	Field string

	// Reason describes what is wrong with the field.
	Reason string
}

func (e *MalformedCalibrationError) Error() string {
	return fmt.Sprintf("jp2: malformed calibration field %q: %s", e.Field, e.Reason)
}
