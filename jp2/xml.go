// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jp2

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

// Names of the calibration keywords in a JPEG 2000 header.
const (
	KeyNAXIS1 = "NAXIS1"
	KeyNAXIS2 = "NAXIS2"
	KeyCRPIX1 = "CRPIX1"
	KeyCRPIX2 = "CRPIX2"
	KeyRSun   = "R_SUN"
)

var headerKeys = []string{KeyNAXIS1, KeyNAXIS2, KeyCRPIX1, KeyCRPIX2, KeyRSun}

// FromHeaderXML extracts the calibration from the XML header of a
// JPEG 2000 image, as returned by the Helioviewer getJP2Header endpoint.
// The keywords NAXIS1, NAXIS2, CRPIX1, CRPIX2 and R_SUN are looked up
// as elements anywhere in the document; the first occurrence of each wins.
func FromHeaderXML(r io.Reader) (Info, error) {
	vals, err := scanHeader(r)
	if err != nil {
		return Info{}, err
	}
	var in Info
	targets := []struct {
		key string
		dst *float64
	}{
		{KeyNAXIS1, &in.Width},
		{KeyNAXIS2, &in.Height},
		{KeyCRPIX1, &in.SolarCenterX},
		{KeyCRPIX2, &in.SolarCenterY},
		{KeyRSun, &in.SolarRadius},
	}
	for _, tg := range targets {
		s, ok := vals[tg.key]
		if !ok {
			return Info{}, &MalformedCalibrationError{Field: tg.key, Reason: "missing"}
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Info{}, &MalformedCalibrationError{Field: tg.key, Reason: fmt.Sprintf("not a number: %q", s)}
		}
		if err := checkFinite(tg.key, f); err != nil {
			return Info{}, err
		}
		*tg.dst = f
	}
	if err := in.Validate(); err != nil {
		return Info{}, err
	}
	return in, nil
}

// scanHeader returns the trimmed text content of the first element
// named by each of the header keys.
func scanHeader(r io.Reader) (map[string]string, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false
	vals := map[string]string{}
	var (
		cur  string
		text strings.Builder
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return vals, nil
		}
		if err != nil {
			return nil, fmt.Errorf("jp2: parsing header XML: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if cur == "" && slices.Contains(headerKeys, t.Name.Local) {
				if _, seen := vals[t.Name.Local]; !seen {
					cur = t.Name.Local
					text.Reset()
				}
			}
		case xml.CharData:
			if cur != "" {
				text.Write(t)
			}
		case xml.EndElement:
			if cur != "" && t.Name.Local == cur {
				vals[cur] = strings.TrimSpace(text.String())
				cur = ""
				if len(vals) == len(headerKeys) {
					return vals, nil
				}
			}
		}
	}
}
