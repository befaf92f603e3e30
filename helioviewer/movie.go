// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helioviewer

import (
	"context"
	"encoding/json"
	"net/url"
)

// MovieStatus is the status of a Helioviewer movie.
type MovieStatus struct {
	// Status is the processing state: 0 queued, 1 processing,
	// 2 completed, 3 failed.
	Status int `json:"status"`

	// Title is the title of the movie.
	Title string `json:"title,omitempty"`

	// StartDate and EndDate are the movie range, as reported.
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`

	// Frames is the number of frames.
	Frames int `json:"numFrames,omitempty"`

	// URL is the movie file, when completed.
	URL string `json:"url,omitempty"`

	// Raw is the full response, since verbose responses carry many
	// more fields than are decoded here.
	Raw json.RawMessage `json:"-"`
}

// MovieDetails returns the status of the given movie.
func (c *Client) MovieDetails(ctx context.Context, id string) (MovieStatus, error) {
	u := c.endpointURL(EndpointMovieStatus, url.Values{
		"id":      {id},
		"format":  {"mp4"},
		"verbose": {"true"},
	})
	var raw json.RawMessage
	if err := c.getJSON(ctx, EndpointMovieStatus, u, &raw); err != nil {
		return MovieStatus{}, err
	}
	var ms MovieStatus
	if err := json.Unmarshal(raw, &ms); err != nil {
		return MovieStatus{}, err
	}
	ms.Raw = raw
	return ms, nil
}
