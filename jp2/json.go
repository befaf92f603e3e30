// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jp2

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Names of the calibration fields in a Helioviewer image record.
const (
	FieldWidth     = "width"
	FieldHeight    = "height"
	FieldRefPixelX = "refPixelX"
	FieldRefPixelY = "refPixelY"
	FieldRSun      = "rsun"
)

// FromJSON extracts the calibration from a JSON object with the fields
// width, height, refPixelX, refPixelY and rsun, as returned by the
// Helioviewer getClosestImage endpoint. Other fields are ignored.
func FromJSON(data []byte) (Info, error) {
	fields := map[string]any{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return Info{}, fmt.Errorf("jp2: decoding calibration JSON: %w", err)
	}
	return FromFields(fields)
}

// FromFields extracts the calibration from an already decoded JSON
// object. Values may be JSON numbers or numeric strings.
func FromFields(fields map[string]any) (Info, error) {
	var in Info
	targets := []struct {
		name string
		dst  *float64
	}{
		{FieldWidth, &in.Width},
		{FieldHeight, &in.Height},
		{FieldRefPixelX, &in.SolarCenterX},
		{FieldRefPixelY, &in.SolarCenterY},
		{FieldRSun, &in.SolarRadius},
	}
	for _, tg := range targets {
		v, err := number(tg.name, fields)
		if err != nil {
			return Info{}, err
		}
		*tg.dst = v
	}
	if err := in.Validate(); err != nil {
		return Info{}, err
	}
	return in, nil
}

// number returns the named field of fields as a float64.
func number(name string, fields map[string]any) (float64, error) {
	v, ok := fields[name]
	if !ok || v == nil {
		return 0, &MalformedCalibrationError{Field: name, Reason: "missing"}
	}
	var (
		f   float64
		err error
	)
	switch tv := v.(type) {
	case float64:
		f = tv
	case float32:
		f = float64(tv)
	case int:
		f = float64(tv)
	case json.Number:
		f, err = tv.Float64()
	case string:
		f, err = strconv.ParseFloat(tv, 64)
	default:
		return 0, &MalformedCalibrationError{Field: name, Reason: fmt.Sprintf("not a number: %v", v)}
	}
	if err != nil {
		return 0, &MalformedCalibrationError{Field: name, Reason: fmt.Sprintf("not a number: %v", v)}
	}
	if err := checkFinite(name, f); err != nil {
		return 0, err
	}
	return f, nil
}
