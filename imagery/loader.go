// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagery

import (
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/anthonynsimon/bild/transform"

	"github.com/helioviewer-project/helios/helioviewer"
	"github.com/helioviewer-project/helios/xyz"
)

// DefaultImageScale is the scale, in arcseconds per pixel, at which
// textures are downloaded by default.
const DefaultImageScale = 4.8

// MaxImageBytes is the default bound on the size of a downloaded texture.
const MaxImageBytes = 64 << 20

// Loader downloads images and turns them into textures.
type Loader struct {
	// Client builds the download URLs.
	Client *helioviewer.Client

	// HTTPClient makes the downloads.
	HTTPClient *http.Client

	// Scale is the image scale requested from the service.
	Scale float64

	// MaxBytes is the largest image Fetch accepts.
	MaxBytes int64
}

// NewLoader returns a new loader downloading through the given client.
func NewLoader(client *helioviewer.Client) *Loader {
	return &Loader{
		Client:     client,
		HTTPClient: &http.Client{Timeout: client.Config().Timeout},
		Scale:      DefaultImageScale,
		MaxBytes:   MaxImageBytes,
	}
}

// SetScale sets the image scale. Non-positive scales are ignored.
func (ld *Loader) SetScale(scale float64) *Loader {
	if scale > 0 {
		ld.Scale = scale
	}
	return ld
}

// Fetch downloads the data at the given URL. It fails for bodies
// longer than [Loader.MaxBytes].
func (ld *Loader) Fetch(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("imagery: creating request: %w", err)
	}
	start := time.Now()
	resp, err := ld.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("imagery: downloading image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("imagery: downloading image: unexpected status %s", resp.Status)
	}
	limit := ld.MaxBytes
	if limit <= 0 {
		limit = MaxImageBytes
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("imagery: reading image: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("imagery: image exceeds %d bytes", limit)
	}
	slog.Debug("downloaded image", "url", u, "bytes", len(data), "elapsed", time.Since(start))
	return data, nil
}

// Image downloads and decodes the image at the given URL, flipped
// vertically so that its first row is at the bottom, as textures
// are addressed.
func (ld *Loader) Image(ctx context.Context, u string) (image.Image, error) {
	data, err := ld.Fetch(ctx, u)
	if err != nil {
		return nil, err
	}
	img, _, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return transform.FlipV(img), nil
}

// Texture downloads the given image record as a texture with the given name.
func (ld *Loader) Texture(ctx context.Context, name string, rec helioviewer.ImageRecord) (*xyz.TextureBase, error) {
	img, err := ld.Image(ctx, ld.Client.DownloadImageURL(rec.ID, ld.Scale))
	if err != nil {
		return nil, fmt.Errorf("imagery: image %s: %w", rec.ID, err)
	}
	return xyz.NewTexture(name, img), nil
}
