// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helioviewer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/helioviewer-project/helios/base/batch"
	"github.com/helioviewer-project/helios/jp2"
)

// Endpoint names, as used in errors and metrics.
const (
	EndpointClosestImage = "getClosestImage"
	EndpointJP2Header    = "getJP2Header"
	EndpointDownload     = "downloadImage"
	EndpointEvents       = "getEvents"
	EndpointMovieStatus  = "getMovieStatus"
	EndpointHeliosEvents = "event"
	EndpointPosition     = "event/position"
)

// ImageRecord is a Helioviewer image with its calibration.
type ImageRecord struct {
	// ID identifies the image in Helioviewer.
	ID string

	// Timestamp is the observation time of the image, in UTC.
	Timestamp time.Time

	// JP2Info is the calibration of the image.
	JP2Info jp2.Info
}

// ImageResult is the outcome of one sample of a range query.
type ImageResult struct {
	// Time is the requested sample time.
	Time time.Time

	// Record is the image nearest to Time, valid when Err is nil.
	Record ImageRecord

	// Err is the error of this sample.
	Err error
}

// NearestImage returns the image from the given source nearest to the
// given time.
func (c *Client) NearestImage(ctx context.Context, source int, t time.Time) (ImageRecord, error) {
	key := ImageKey(source, t)
	if rec, ok := cached[ImageRecord](c, key); ok {
		return rec, nil
	}
	u := c.endpointURL(EndpointClosestImage, url.Values{
		"sourceId": {strconv.Itoa(source)},
		"date":     {APIDate(t)},
	})
	body, err := c.get(ctx, EndpointClosestImage, u)
	if err != nil {
		return ImageRecord{}, err
	}
	rec, err := parseImageRecord(body)
	if err != nil {
		c.metrics.observe(EndpointClosestImage, outcomeDecodeError)
		return ImageRecord{}, fmt.Errorf("helioviewer: %s: source %d at %s: %w", EndpointClosestImage, source, APIDate(t), err)
	}
	c.cache.Set(key, rec)
	return rec, nil
}

func parseImageRecord(body []byte) (ImageRecord, error) {
	fields := map[string]any{}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return ImageRecord{}, fmt.Errorf("decoding response: %w", err)
	}
	info, err := jp2.FromFields(fields)
	if err != nil {
		return ImageRecord{}, err
	}
	var rec ImageRecord
	rec.JP2Info = info
	switch id := fields["id"].(type) {
	case string:
		rec.ID = id
	case json.Number:
		rec.ID = id.String()
	default:
		return ImageRecord{}, fmt.Errorf("missing image id")
	}
	date, _ := fields["date"].(string)
	rec.Timestamp, err = ParseDate(date)
	if err != nil {
		return ImageRecord{}, err
	}
	return rec, nil
}

// SampleTimes returns the times start, start+cadence, ... up to and
// including end. A cadence that is not positive gives start only, and
// start after end gives no times.
func SampleTimes(start, end time.Time, cadence time.Duration) []time.Time {
	var ts []time.Time
	for t := start; !t.After(end); t = t.Add(cadence) {
		ts = append(ts, t)
		if cadence <= 0 {
			break
		}
	}
	return ts
}

// ImagesInRange returns the images from the given source nearest to each
// of the [SampleTimes] of the range, in sample order. All samples are
// requested concurrently; the first error fails the whole query.
func (c *Client) ImagesInRange(ctx context.Context, source int, start, end time.Time, cadence time.Duration) ([]ImageRecord, error) {
	b := batch.New[ImageRecord](ctx, batch.FailFast)
	c.submitRange(b, source, start, end, cadence)
	return b.Wait()
}

// ImageResultsInRange is like [Client.ImagesInRange] but each sample
// succeeds or fails on its own, so that a malformed calibration only
// drops the image it belongs to.
func (c *Client) ImageResultsInRange(ctx context.Context, source int, start, end time.Time, cadence time.Duration) []ImageResult {
	ts := SampleTimes(start, end, cadence)
	b := batch.New[ImageRecord](ctx, batch.Collect)
	c.submitTimes(b, source, ts)
	rs := b.Results()
	out := make([]ImageResult, len(rs))
	for i, r := range rs {
		out[i] = ImageResult{Time: ts[i], Record: r.Value, Err: r.Err}
	}
	return out
}

func (c *Client) submitRange(b *batch.Ordered[ImageRecord], source int, start, end time.Time, cadence time.Duration) {
	c.submitTimes(b, source, SampleTimes(start, end, cadence))
}

func (c *Client) submitTimes(b *batch.Ordered[ImageRecord], source int, ts []time.Time) {
	if c.config.MaxConcurrent > 0 {
		b.SetLimit(c.config.MaxConcurrent)
	}
	for _, t := range ts {
		b.Go(func(ctx context.Context) (ImageRecord, error) {
			return c.NearestImage(ctx, source, t)
		})
	}
}

// JP2Header returns the calibration of the given image, read from the
// header of its JPEG 2000 file.
func (c *Client) JP2Header(ctx context.Context, id string) (jp2.Info, error) {
	u := c.endpointURL(EndpointJP2Header, url.Values{"id": {id}})
	body, err := c.get(ctx, EndpointJP2Header, u)
	if err != nil {
		return jp2.Info{}, err
	}
	info, err := jp2.FromHeaderXML(bytes.NewReader(body))
	if err != nil {
		return jp2.Info{}, fmt.Errorf("helioviewer: %s: image %s: %w", EndpointJP2Header, id, err)
	}
	return info, nil
}

// DownloadImageURL returns the URL of a PNG rendering of the given image
// at the given scale. It does not make any request.
func (c *Client) DownloadImageURL(id string, scale float64) string {
	return c.endpointURL(EndpointDownload, url.Values{
		"id":    {id},
		"scale": {strconv.FormatFloat(scale, 'g', -1, 64)},
	})
}
