// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package helioviewer is a client for the Helioviewer API, which serves
// solar images and their calibration, and for the Helios event API,
// which serves solar events and resolves their positions.
//
// A [Client] is constructed explicitly and passed to whatever needs it;
// there is no package-level client.
package helioviewer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Config holds the settings of a [Client].
type Config struct {
	// HelioviewerURL is the base URL of the Helioviewer API, without
	// the version path.
	HelioviewerURL string

	// HeliosAPIURL is the base URL of the Helios event API.
	HeliosAPIURL string

	// EnableFeaturesAndEvents enables the Helioviewer event queries.
	EnableFeaturesAndEvents bool

	// Timeout is the timeout of each request.
	Timeout time.Duration

	// CacheTTL is how long query results are cached.
	CacheTTL time.Duration

	// MaxConcurrent limits the number of concurrent requests of a
	// range query; 0 means no limit.
	MaxConcurrent int
}

// DefaultConfig returns the default configuration, using the public
// Helioviewer and Helios services.
func DefaultConfig() Config {
	return Config{
		HelioviewerURL: "https://api.helioviewer.org/",
		HeliosAPIURL:   "https://api.gl.helioviewer.org/",
		Timeout:        30 * time.Second,
		CacheTTL:       10 * time.Minute,
		MaxConcurrent:  8,
	}
}

// Client makes requests to the Helioviewer and Helios APIs.
// It is safe for concurrent use.
type Client struct {
	config     Config
	httpClient *http.Client
	cache      *Cache
	metrics    *Metrics
}

// Option configures a [Client].
type Option func(c *Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithMetrics sets the metrics the client records into.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient returns a new client with the given configuration.
// Zero fields of the configuration are set from [DefaultConfig].
func NewClient(config Config, opts ...Option) *Client {
	def := DefaultConfig()
	if config.HelioviewerURL == "" {
		config.HelioviewerURL = def.HelioviewerURL
	}
	if config.HeliosAPIURL == "" {
		config.HeliosAPIURL = def.HeliosAPIURL
	}
	if config.Timeout == 0 {
		config.Timeout = def.Timeout
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = def.CacheTTL
	}
	c := &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		cache:      NewCache(config.CacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		c.metrics = NewMetrics()
	}
	slog.Debug("helioviewer client initialized",
		"helioviewer_url", config.HelioviewerURL,
		"helios_api_url", config.HeliosAPIURL,
		"events_enabled", config.EnableFeaturesAndEvents,
		"cache_ttl", config.CacheTTL)
	return c
}

// Config returns the configuration of the client.
func (c *Client) Config() Config {
	return c.config
}

// Cache returns the query cache of the client.
func (c *Client) Cache() *Cache {
	return c.cache
}

// Metrics returns the metrics of the client.
func (c *Client) Metrics() *Metrics {
	return c.metrics
}

// APIURL returns the versioned Helioviewer API URL, ending in a slash.
func (c *Client) APIURL() string {
	u := c.config.HelioviewerURL
	if !strings.HasSuffix(u, "/") {
		u += "/"
	}
	return u + "v2/"
}

// heliosURL returns the Helios API URL for the given path.
func (c *Client) heliosURL(path string) string {
	return strings.TrimSuffix(c.config.HeliosAPIURL, "/") + "/" + path
}

func (c *Client) endpointURL(endpoint string, query url.Values) string {
	return c.APIURL() + endpoint + "/?" + query.Encode()
}

// getJSON requests the given URL and decodes the JSON body into v.
// A body that is an object with an "error" field is a [*ServiceError],
// whatever the status code.
func (c *Client) getJSON(ctx context.Context, endpoint, u string, v any) error {
	body, err := c.get(ctx, endpoint, u)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		c.metrics.observe(endpoint, outcomeDecodeError)
		return fmt.Errorf("helioviewer: %s: decoding response: %w", endpoint, err)
	}
	return nil
}

// get requests the given URL and returns the body.
func (c *Client) get(ctx context.Context, endpoint, u string) ([]byte, error) {
	start := time.Now()
	defer func() {
		c.metrics.Latency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		c.metrics.observe(endpoint, outcomeTransportError)
		return nil, fmt.Errorf("helioviewer: %s: creating request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	slog.Debug("helioviewer request", "endpoint", endpoint, "url", u)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observe(endpoint, outcomeTransportError)
		return nil, fmt.Errorf("helioviewer: %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.observe(endpoint, outcomeTransportError)
		return nil, fmt.Errorf("helioviewer: %s: reading response: %w", endpoint, err)
	}
	if serr := serviceError(endpoint, resp.StatusCode, body); serr != nil {
		c.metrics.observe(endpoint, outcomeServiceError)
		slog.Warn("helioviewer service error", "endpoint", endpoint, "status", resp.StatusCode, "message", serr.Message)
		return nil, serr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.observe(endpoint, outcomeHTTPError)
		return nil, fmt.Errorf("helioviewer: %s: unexpected status %s", endpoint, resp.Status)
	}
	c.metrics.observe(endpoint, outcomeOK)
	return body, nil
}

// serviceError returns the error reported in the body, if any.
func serviceError(endpoint string, status int, body []byte) *ServiceError {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	var probe struct {
		Error json.RawMessage `json:"error"`
	}
	if json.Unmarshal(trimmed, &probe) != nil || len(probe.Error) == 0 || string(probe.Error) == "null" {
		return nil
	}
	msg := string(probe.Error)
	var s string
	if json.Unmarshal(probe.Error, &s) == nil {
		msg = s
	}
	return &ServiceError{Endpoint: endpoint, StatusCode: status, Message: msg}
}
