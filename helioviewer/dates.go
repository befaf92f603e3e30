// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helioviewer

import (
	"fmt"
	"time"
)

// APIDateLayout is the layout of dates in requests.
const APIDateLayout = "2006-01-02T15:04:05Z"

// EventDateLayout is the layout of dates in event records, which
// are in UTC but carry no zone.
const EventDateLayout = "2006-01-02T15:04:05"

// layouts are the layouts accepted for dates in responses. Dates
// without a zone are in UTC.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// APIDate formats the time for a request.
func APIDate(t time.Time) string {
	return t.UTC().Format(APIDateLayout)
}

// ParseDate parses a date from a response. The services report dates
// in UTC without saying so, so dates without a zone are taken as UTC.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("helioviewer: invalid date %q", s)
}
