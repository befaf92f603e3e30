// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helioviewer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helioviewer-project/helios/jp2"
)

const (
	testHelioviewerURL = "https://hv.test"
	testHeliosURL      = "https://helios.test/"
	closestImageURL    = testHelioviewerURL + "/v2/getClosestImage/"
)

func setupHTTPMock(t *testing.T) {
	t.Helper()
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)
}

func newTestClient(t *testing.T, events bool) *Client {
	t.Helper()
	return NewClient(Config{
		HelioviewerURL:          testHelioviewerURL,
		HeliosAPIURL:            testHeliosURL,
		EnableFeaturesAndEvents: events,
		Timeout:                 5 * time.Second,
	})
}

// closestImageResponder answers with an image taken at the requested
// time, delaying earlier samples longer so that responses complete in
// reverse order.
func closestImageResponder(t *testing.T, start time.Time) httpmock.Responder {
	return func(req *http.Request) (*http.Response, error) {
		q := req.URL.Query()
		assert.Equal(t, "13", q.Get("sourceId"))
		ts, err := time.Parse(APIDateLayout, q.Get("date"))
		if !assert.NoError(t, err) {
			return nil, err
		}
		delay := 30*time.Millisecond - time.Duration(ts.Sub(start).Seconds()/3)*time.Millisecond
		if delay > 0 {
			time.Sleep(delay)
		}
		body := fmt.Sprintf(`{"id": "%d", "date": "%s", "width": 4096, "height": 4096,
			"refPixelX": 2048.5, "refPixelY": 2048.5, "rsun": 1600}`,
			ts.Unix(), ts.Format("2006-01-02 15:04:05"))
		return httpmock.NewStringResponse(http.StatusOK, body), nil
	}
}

func TestAPIURL(t *testing.T) {
	c := NewClient(Config{HelioviewerURL: "https://hv.test"})
	assert.Equal(t, "https://hv.test/v2/", c.APIURL())
	c = NewClient(Config{HelioviewerURL: "https://hv.test/"})
	assert.Equal(t, "https://hv.test/v2/", c.APIURL())
	assert.Equal(t, "https://hv.test/v2/downloadImage/?id=42&scale=2.5", c.DownloadImageURL("42", 2.5))
}

func TestDates(t *testing.T) {
	ts := time.Date(2023, 5, 1, 12, 30, 0, 0, time.UTC)
	assert.Equal(t, "2023-05-01T12:30:00Z", APIDate(ts.In(time.FixedZone("X", 3600))))
	for _, s := range []string{"2023-05-01 12:30:00", "2023-05-01T12:30:00", "2023-05-01T12:30:00Z", "2023-05-01T12:30:00.000"} {
		got, err := ParseDate(s)
		require.NoError(t, err, s)
		assert.True(t, ts.Equal(got), s)
		assert.Equal(t, time.UTC, got.Location())
	}
	_, err := ParseDate("yesterday")
	assert.Error(t, err)
}

func TestSampleTimes(t *testing.T) {
	start := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	assert.Len(t, SampleTimes(start, start, 0), 1)
	assert.Len(t, SampleTimes(start, start.Add(time.Hour), 0), 1)
	assert.Len(t, SampleTimes(start, start.Add(time.Minute), 30*time.Second), 3)
	assert.Len(t, SampleTimes(start, start.Add(time.Minute-time.Second), 30*time.Second), 2)
	assert.Empty(t, SampleTimes(start.Add(time.Second), start, time.Second))
}

func TestNearestImage(t *testing.T) {
	setupHTTPMock(t)
	start := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	httpmock.RegisterResponder("GET", closestImageURL, closestImageResponder(t, start))

	c := newTestClient(t, false)
	rec, err := c.NearestImage(context.Background(), 13, start)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprint(start.Unix()), rec.ID)
	assert.True(t, start.Equal(rec.Timestamp))
	assert.Equal(t, jp2.Info{Width: 4096, Height: 4096, SolarCenterX: 2048.5, SolarCenterY: 2048.5, SolarRadius: 1600}, rec.JP2Info)

	// second query is served from the cache
	_, err = c.NearestImage(context.Background(), 13, start)
	require.NoError(t, err)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
	assert.Equal(t, float64(1), testutil.ToFloat64(c.Metrics().CacheHits))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.Metrics().Requests.WithLabelValues(EndpointClosestImage, outcomeOK)))
}

func TestImagesInRangeZeroCadence(t *testing.T) {
	setupHTTPMock(t)
	start := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	httpmock.RegisterResponder("GET", closestImageURL, closestImageResponder(t, start))

	c := newTestClient(t, false)
	recs, err := c.ImagesInRange(context.Background(), 13, start, start, 0)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestImagesInRangeOrdered(t *testing.T) {
	setupHTTPMock(t)
	start := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	httpmock.RegisterResponder("GET", closestImageURL, closestImageResponder(t, start))

	c := newTestClient(t, false)
	recs, err := c.ImagesInRange(context.Background(), 13, start, start.Add(time.Minute), 30*time.Second)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	for i, rec := range recs {
		assert.True(t, start.Add(time.Duration(i)*30*time.Second).Equal(rec.Timestamp), "sample %d", i)
	}
	assert.Equal(t, 3, httpmock.GetTotalCallCount())
}

func TestImageResultsInRangeMalformed(t *testing.T) {
	setupHTTPMock(t)
	start := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	good := closestImageResponder(t, start)
	httpmock.RegisterResponder("GET", closestImageURL, func(req *http.Request) (*http.Response, error) {
		if req.URL.Query().Get("date") == APIDate(start.Add(30*time.Second)) {
			return httpmock.NewStringResponse(http.StatusOK, `{"id": "7", "date": "2023-05-01 00:00:30", "width": 1024, "height": 1024, "refPixelX": 512, "refPixelY": 512}`), nil
		}
		return good(req)
	})

	c := newTestClient(t, false)
	end := start.Add(time.Minute)
	rs := c.ImageResultsInRange(context.Background(), 13, start, end, 30*time.Second)
	require.Len(t, rs, 3)
	assert.NoError(t, rs[0].Err)
	assert.NoError(t, rs[2].Err)
	var merr *jp2.MalformedCalibrationError
	require.ErrorAs(t, rs[1].Err, &merr)
	assert.Equal(t, "rsun", merr.Field)
	assert.True(t, start.Add(30*time.Second).Equal(rs[1].Time))

	c.Cache().Flush()
	_, err := c.ImagesInRange(context.Background(), 13, start, end, 30*time.Second)
	assert.ErrorAs(t, err, &merr)
}

func TestServiceErrors(t *testing.T) {
	setupHTTPMock(t)
	body := `{"error": "Invalid source id"}`
	for _, u := range []string{
		closestImageURL,
		testHelioviewerURL + "/v2/getEvents/",
		testHelioviewerURL + "/v2/getMovieStatus/",
		testHeliosURL + "event",
		testHeliosURL + "event/position",
	} {
		httpmock.RegisterResponder("GET", u, httpmock.NewStringResponder(http.StatusOK, body))
	}

	c := newTestClient(t, true)
	ctx := context.Background()
	now := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	_, err1 := c.NearestImage(ctx, 99, now)
	_, err2 := c.EventsForDay(ctx, now)
	_, err3 := c.MovieDetails(ctx, "abc")
	_, err4 := c.EventsInRange(ctx, now, now.Add(time.Hour))
	_, err5 := c.ResolveEventPosition(ctx, EventPositionQuery{System: "UTC-HPC-TOPO", Date: now})
	for i, err := range []error{err1, err2, err3, err4, err5} {
		var serr *ServiceError
		require.ErrorAs(t, err, &serr, "call %d", i)
		assert.Equal(t, "Invalid source id", serr.Message)
	}
	assert.Zero(t, c.Cache().Len())
	assert.Equal(t, float64(1), testutil.ToFloat64(c.Metrics().Requests.WithLabelValues(EndpointHeliosEvents, outcomeServiceError)))
}

func TestServiceErrorObject(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder("GET", testHeliosURL+"event",
		httpmock.NewStringResponder(http.StatusBadRequest, `{"error": {"code": 3, "detail": "bad range"}}`))
	c := newTestClient(t, false)
	_, err := c.EventsInRange(context.Background(), time.Now(), time.Now())
	var serr *ServiceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusBadRequest, serr.StatusCode)
	assert.Equal(t, `{"code": 3, "detail": "bad range"}`, serr.Message)
}

func TestHTTPError(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder("GET", closestImageURL, httpmock.NewStringResponder(http.StatusBadGateway, "<html>bad gateway</html>"))
	httpmock.RegisterResponder("GET", testHeliosURL+"event", httpmock.NewErrorResponder(errors.New("connection refused")))
	c := newTestClient(t, false)
	_, err := c.NearestImage(context.Background(), 13, time.Now())
	require.Error(t, err)
	var serr *ServiceError
	assert.False(t, errors.As(err, &serr))
	assert.Contains(t, err.Error(), "502")

	_, err = c.EventsInRange(context.Background(), time.Now(), time.Now())
	assert.ErrorContains(t, err, "connection refused")
}

func TestEventsForDayDisabled(t *testing.T) {
	setupHTTPMock(t)
	c := newTestClient(t, false)
	evs, err := c.EventsForDay(context.Background(), time.Now())
	require.NoError(t, err)
	assert.NotNil(t, evs)
	assert.Empty(t, evs)
	assert.Zero(t, httpmock.GetTotalCallCount())
}

func TestEventsForDay(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder("GET", testHelioviewerURL+"/v2/getEvents/", func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "**", req.URL.Query().Get("eventType"))
		assert.Equal(t, "2023-05-01T00:00:00Z", req.URL.Query().Get("startTime"))
		return httpmock.NewStringResponse(http.StatusOK, `[
			{"name": "FL", "groups": [{"name": "SWPC", "data": [
				{"event_starttime": "2023-05-01T01:00:00", "event_endtime": "2023-05-01T01:30:00", "event_coordsys": "UTC-HPC-TOPO"}
			]}]},
			{"name": "AR", "groups": [{"name": "NOAA", "data": [
				{"event_type": "AR", "event_starttime": "2023-05-01T00:00:00", "event_endtime": "2023-05-02T00:00:00"}
			]}]}
		]`), nil
	})
	c := newTestClient(t, true)
	evs, err := c.EventsForDay(context.Background(), time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, evs, 2)
	assert.Equal(t, "FL", evs[0].Type)
	assert.Equal(t, time.Date(2023, 5, 1, 1, 30, 0, 0, time.UTC), evs[0].End)
	assert.Equal(t, "AR", evs[1].Type)
}

const heliosEvents = `{"results": [
	{"kb_archivid": "ivo://helio-informatics.org/FL1", "event_type": "FL",
	 "event_starttime": "2023-05-01T01:00:00", "event_endtime": "2023-05-01T01:30:00",
	 "event_coordsys": "UTC-HPC-TOPO", "event_coord1": -250.5, "event_coord2": 300, "event_coord3": 0,
	 "event_coordunit": "arcsec", "obs_instrument": "AIA",
	 "coordinates": {"observer": {"x": 1, "y": 2, "z": 3}}},
	{"event_type": "CE", "event_starttime": "2023-05-01T02:00:00", "event_endtime": "2023-05-01T03:00:00",
	 "coordinates": {"observer": [4, 5, 6]}}
]}`

func TestEventsInRange(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder("GET", testHeliosURL+"event", func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "2023-05-01T00:00:00Z", req.URL.Query().Get("start"))
		assert.Equal(t, "2023-05-02T00:00:00Z", req.URL.Query().Get("end"))
		return httpmock.NewStringResponse(http.StatusOK, heliosEvents), nil
	})
	c := newTestClient(t, false)
	start := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)
	evs, err := c.EventsInRange(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, evs, 2)
	assert.Equal(t, time.Date(2023, 5, 1, 1, 0, 0, 0, time.UTC), evs[0].Start)
	assert.Equal(t, Coordinates{1, 2, 3}, evs[0].Coordinates.Observer)
	assert.Equal(t, Coordinates{4, 5, 6}, evs[1].Coordinates.Observer)

	_, err = c.EventsInRange(context.Background(), start, end)
	require.NoError(t, err)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())

	c.Cache().Invalidate(EventsKey(start, end))
	_, err = c.EventsInRange(context.Background(), start, end)
	require.NoError(t, err)
	assert.Equal(t, 2, httpmock.GetTotalCallCount())
	assert.Equal(t, "events:2023-05-01T00:00:00Z:2023-05-02T00:00:00Z", EventsKey(start, end))
}

func TestEventsInRangeCopies(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder("GET", testHeliosURL+"event", httpmock.NewStringResponder(http.StatusOK, heliosEvents))
	c := newTestClient(t, false)
	start := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	first, err := c.EventsInRange(context.Background(), start, end)
	require.NoError(t, err)
	require.NotEmpty(t, first)
	want := first[0].Type
	first[0].Type = "changed"

	second, err := c.EventsInRange(context.Background(), start, end)
	require.NoError(t, err)
	assert.Equal(t, want, second[0].Type)
	second[0].Coord1 = -1

	third, err := c.EventsInRange(context.Background(), start, end)
	require.NoError(t, err)
	assert.Equal(t, want, third[0].Type)
	assert.NotEqual(t, -1.0, third[0].Coord1)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestEventPosition(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder("GET", testHeliosURL+"event", httpmock.NewStringResponder(http.StatusOK, heliosEvents))
	httpmock.RegisterResponder("GET", testHeliosURL+"event/position", func(req *http.Request) (*http.Response, error) {
		q := req.URL.Query()
		assert.Equal(t, "UTC-HPC-TOPO", q.Get("system"))
		assert.Equal(t, "-250.5", q.Get("coord1"))
		assert.Equal(t, "300", q.Get("coord2"))
		assert.Equal(t, "0", q.Get("coord3"))
		assert.Equal(t, "AIA", q.Get("observatory"))
		assert.Equal(t, "arcsec", q.Get("units"))
		assert.Equal(t, "2023-05-01T01:00:00", q.Get("date"))
		return httpmock.NewStringResponse(http.StatusOK, `{"x": 0.1, "y": -0.2, "z": 0.97}`), nil
	})
	c := newTestClient(t, false)
	start := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	evs, err := c.EventsInRange(context.Background(), start, start.Add(time.Hour))
	require.NoError(t, err)
	co, err := c.EventPosition(context.Background(), evs[0])
	require.NoError(t, err)
	assert.Equal(t, Coordinates{0.1, -0.2, 0.97}, co)
}

func TestCoordinatesDecodeError(t *testing.T) {
	var co Coordinates
	assert.Error(t, co.UnmarshalJSON([]byte(`[1, 2]`)))
	assert.Error(t, co.UnmarshalJSON([]byte(`"north"`)))
	assert.NoError(t, co.UnmarshalJSON([]byte(`null`)))
}

func TestJP2Header(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder("GET", testHelioviewerURL+"/v2/getJP2Header/", func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "42", req.URL.Query().Get("id"))
		return httpmock.NewStringResponse(http.StatusOK, `<?xml version="1.0"?><meta><fits>
			<NAXIS1>4096</NAXIS1><NAXIS2>4096</NAXIS2><CRPIX1>2048.5</CRPIX1><CRPIX2>2048.5</CRPIX2>
			<R_SUN>1600</R_SUN></fits></meta>`), nil
	})
	c := newTestClient(t, false)
	info, err := c.JP2Header(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, 1600.0, info.SolarRadius)
}

func TestMovieDetails(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder("GET", testHelioviewerURL+"/v2/getMovieStatus/", func(req *http.Request) (*http.Response, error) {
		q := req.URL.Query()
		assert.Equal(t, "VXvX5", q.Get("id"))
		assert.Equal(t, "mp4", q.Get("format"))
		assert.Equal(t, "true", q.Get("verbose"))
		return httpmock.NewStringResponse(http.StatusOK, `{"status": 2, "title": "AIA 171", "numFrames": 120, "url": "https://hv.test/movie.mp4", "extra": 1}`), nil
	})
	c := newTestClient(t, false)
	ms, err := c.MovieDetails(context.Background(), "VXvX5")
	require.NoError(t, err)
	assert.Equal(t, 2, ms.Status)
	assert.Equal(t, 120, ms.Frames)
	assert.True(t, strings.Contains(string(ms.Raw), `"extra"`))
}

func TestRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewRegisteredMetrics(reg)
	require.NoError(t, err)
	_, err = NewRegisteredMetrics(reg)
	assert.Error(t, err)
	c := NewClient(Config{}, WithMetrics(m))
	assert.Same(t, m, c.Metrics())
}
