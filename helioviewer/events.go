// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helioviewer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strconv"
	"time"
)

// Coordinates is a position in a cartesian frame. It decodes from an
// object with x, y and z fields or from an array of three numbers.
type Coordinates struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (co *Coordinates) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var arr []float64
	if err := json.Unmarshal(data, &arr); err == nil {
		if len(arr) != 3 {
			return fmt.Errorf("helioviewer: coordinates: expected 3 values, got %d", len(arr))
		}
		co.X, co.Y, co.Z = arr[0], arr[1], arr[2]
		return nil
	}
	type plain Coordinates
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("helioviewer: coordinates: %w", err)
	}
	*co = Coordinates(p)
	return nil
}

func (co Coordinates) String() string {
	return fmt.Sprintf("(%g, %g, %g)", co.X, co.Y, co.Z)
}

// EventCoordinates are the positions attached to an event.
type EventCoordinates struct {
	// Observer is the position of the observatory.
	Observer Coordinates `json:"observer"`
}

// Event is a solar event, as recorded in the Heliophysics Event
// Knowledgebase. The raw fields keep their HEK names.
type Event struct {
	// ID is the HEK archive id of the event.
	ID string `json:"kb_archivid,omitempty"`

	// Type is the HEK event type, such as AR or FL.
	Type string `json:"event_type,omitempty"`

	// RawStart and RawEnd are the event times as reported, in UTC
	// without a zone.
	RawStart string `json:"event_starttime"`
	RawEnd   string `json:"event_endtime"`

	// CoordSystem, Coord1-3 and CoordUnit give the event position.
	CoordSystem string  `json:"event_coordsys"`
	Coord1      float64 `json:"event_coord1"`
	Coord2      float64 `json:"event_coord2"`
	Coord3      float64 `json:"event_coord3"`
	CoordUnit   string  `json:"event_coordunit"`

	// Instrument is the observing instrument.
	Instrument string `json:"obs_instrument"`

	// Coordinates are the normalized positions of the event.
	Coordinates EventCoordinates `json:"coordinates"`

	// Start and End are the parsed event times.
	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

// parseTimes sets Start and End from the raw times.
func (ev *Event) parseTimes() error {
	var err error
	if ev.Start, err = ParseDate(ev.RawStart); err != nil {
		return err
	}
	if ev.RawEnd == "" {
		ev.End = ev.Start
		return nil
	}
	ev.End, err = ParseDate(ev.RawEnd)
	return err
}

func parseEventTimes(evs []Event) error {
	for i := range evs {
		if err := evs[i].parseTimes(); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
	}
	return nil
}

// eventCategory is a Helioviewer event listing, grouped by event
// type and then by recognition method.
type eventCategory struct {
	Name   string `json:"name"`
	Groups []struct {
		Name string  `json:"name"`
		Data []Event `json:"data"`
	} `json:"groups"`
}

// EventsForDay returns the events of the day starting at the given time.
// It returns no events, without making a request, unless
// [Config.EnableFeaturesAndEvents] is set.
func (c *Client) EventsForDay(ctx context.Context, day time.Time) ([]Event, error) {
	if !c.config.EnableFeaturesAndEvents {
		slog.Debug("helioviewer events disabled")
		return []Event{}, nil
	}
	u := c.endpointURL(EndpointEvents, url.Values{
		"eventType": {"**"},
		"startTime": {APIDate(day)},
	})
	var cats []eventCategory
	if err := c.getJSON(ctx, EndpointEvents, u, &cats); err != nil {
		return nil, err
	}
	evs := []Event{}
	for _, cat := range cats {
		for _, gp := range cat.Groups {
			for _, ev := range gp.Data {
				if ev.Type == "" {
					ev.Type = cat.Name
				}
				evs = append(evs, ev)
			}
		}
	}
	if err := parseEventTimes(evs); err != nil {
		return nil, fmt.Errorf("helioviewer: %s: %w", EndpointEvents, err)
	}
	return evs, nil
}

// EventsInRange returns the events between start and end from the
// Helios event API. Results are cached under [EventsKey]; each call
// returns its own copy of the cached slice.
func (c *Client) EventsInRange(ctx context.Context, start, end time.Time) ([]Event, error) {
	key := EventsKey(start, end)
	if evs, ok := cached[[]Event](c, key); ok {
		return slices.Clone(evs), nil
	}
	u := c.heliosURL(EndpointHeliosEvents) + "?" + url.Values{
		"start": {APIDate(start)},
		"end":   {APIDate(end)},
	}.Encode()
	var data struct {
		Results []Event `json:"results"`
	}
	if err := c.getJSON(ctx, EndpointHeliosEvents, u, &data); err != nil {
		return nil, err
	}
	if data.Results == nil {
		data.Results = []Event{}
	}
	if err := parseEventTimes(data.Results); err != nil {
		return nil, fmt.Errorf("helioviewer: %s: %w", EndpointHeliosEvents, err)
	}
	c.cache.Set(key, slices.Clone(data.Results))
	return data.Results, nil
}

// EventPositionQuery is a position to resolve with
// [Client.ResolveEventPosition].
type EventPositionQuery struct {
	// System is the coordinate system, such as UTC-HPC-TOPO.
	System string

	// Coord1, Coord2 and Coord3 are the coordinates in the system.
	Coord1, Coord2, Coord3 float64

	// Observatory is the observing instrument.
	Observatory string

	// Units are the units of the coordinates.
	Units string

	// Date is the observation time.
	Date time.Time
}

// ResolveEventPosition converts a position reported with an event into
// scene coordinates, using the Helios API.
func (c *Client) ResolveEventPosition(ctx context.Context, q EventPositionQuery) (Coordinates, error) {
	ff := func(v float64) string {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	u := c.heliosURL(EndpointPosition) + "?" + url.Values{
		"system":      {q.System},
		"coord1":      {ff(q.Coord1)},
		"coord2":      {ff(q.Coord2)},
		"coord3":      {ff(q.Coord3)},
		"observatory": {q.Observatory},
		"units":       {q.Units},
		"date":        {q.Date.UTC().Format(EventDateLayout)},
	}.Encode()
	var co Coordinates
	if err := c.getJSON(ctx, EndpointPosition, u, &co); err != nil {
		return Coordinates{}, err
	}
	return co, nil
}

// EventPosition resolves the position of the given event.
func (c *Client) EventPosition(ctx context.Context, ev Event) (Coordinates, error) {
	return c.ResolveEventPosition(ctx, EventPositionQuery{
		System:      ev.CoordSystem,
		Coord1:      ev.Coord1,
		Coord2:      ev.Coord2,
		Coord3:      ev.Coord3,
		Observatory: ev.Instrument,
		Units:       ev.CoordUnit,
		Date:        ev.Start,
	})
}
