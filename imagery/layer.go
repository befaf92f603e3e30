// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/helioviewer-project/helios/helioviewer"
	"github.com/helioviewer-project/helios/model"
	"github.com/helioviewer-project/helios/xyz"
)

// ErrNoFrames is returned when a layer has no frame to show.
var ErrNoFrames = errors.New("imagery: layer has no frames")

// Layer shows the images of one source over a time range as a single
// live model in a scene. The model is built for the first frame shown
// and updated in place for every later frame. Textures are downloaded
// once per frame and owned by the layer.
//
// A Layer is not safe for concurrent use; it must be driven from the
// goroutine that renders the scene.
type Layer struct {
	// Source is the Helioviewer source id of the images.
	Source int

	builder *model.Builder
	client  *helioviewer.Client
	loader  *Loader

	frames   []helioviewer.ImageRecord
	current  int
	group    *xyz.Group
	textures []string
	opacity  float32
}

// NewLayer returns a new layer of the given source, building its model
// with the given builder.
func NewLayer(builder *model.Builder, loader *Loader, source int) *Layer {
	return &Layer{
		Source:  source,
		builder: builder,
		client:  loader.Client,
		loader:  loader,
		current: -1,
		opacity: 1,
	}
}

// Load queries the images of the range. Samples whose query fails are
// skipped with a warning; it is an error only if no sample succeeds.
// Loading again replaces the frames but keeps the model.
func (ly *Layer) Load(ctx context.Context, start, end time.Time, cadence time.Duration) error {
	rs := ly.client.ImageResultsInRange(ctx, ly.Source, start, end, cadence)
	var frames []helioviewer.ImageRecord
	var errs []error
	for _, r := range rs {
		if r.Err != nil {
			slog.Warn("skipping image", "source", ly.Source, "time", r.Time, "err", r.Err)
			errs = append(errs, r.Err)
			continue
		}
		frames = append(frames, r.Record)
	}
	if len(frames) == 0 {
		return fmt.Errorf("imagery: source %d: %w", ly.Source, errors.Join(append([]error{ErrNoFrames}, errs...)...))
	}
	ly.frames = frames
	ly.current = -1
	slog.Info("loaded layer", "source", ly.Source, "frames", len(frames), "skipped", len(errs))
	return nil
}

// Frames returns the frames of the layer, in time order.
func (ly *Layer) Frames() []helioviewer.ImageRecord {
	return ly.frames
}

// Current returns the index of the frame shown, or -1.
func (ly *Layer) Current() int {
	return ly.current
}

// Group returns the model of the layer, which is nil until a frame
// has been shown.
func (ly *Layer) Group() *xyz.Group {
	return ly.group
}

// textureName returns the scene name of the texture of a frame.
func (ly *Layer) textureName(rec helioviewer.ImageRecord) string {
	return fmt.Sprintf("layer-%d-%s", ly.Source, rec.ID)
}

// texture returns the texture of the frame, downloading it if needed.
func (ly *Layer) texture(ctx context.Context, rec helioviewer.ImageRecord) (xyz.Texture, error) {
	sc := ly.builder.Scene()
	name := ly.textureName(rec)
	if tx, ok := sc.TextureByName(name); ok {
		return tx, nil
	}
	tx, err := ly.loader.Texture(ctx, name, rec)
	if err != nil {
		return nil, err
	}
	sc.AddTexture(tx)
	ly.textures = append(ly.textures, name)
	return tx, nil
}

// ShowFrame shows the frame with the given index. The first frame
// shown builds the model and adds it to the scene; later frames update
// its texture and calibration in place.
func (ly *Layer) ShowFrame(ctx context.Context, i int) error {
	if i < 0 || i >= len(ly.frames) {
		return fmt.Errorf("imagery: frame %d out of range [0, %d)", i, len(ly.frames))
	}
	rec := ly.frames[i]
	tx, err := ly.texture(ctx, rec)
	if err != nil {
		return err
	}
	if ly.group == nil {
		gp, err := ly.builder.Build(ctx, ly.Source, tx, rec.JP2Info)
		if err != nil {
			return err
		}
		model.UpdateOpacity(gp, ly.opacity)
		ly.builder.Scene().AddChild(gp)
		ly.group = gp
	} else if err := ly.builder.UpdateTexture(ly.group, tx, rec.JP2Info, ly.Source); err != nil {
		return err
	}
	ly.current = i
	slog.Debug("showing frame", "source", ly.Source, "frame", i, "id", rec.ID, "time", rec.Timestamp)
	return nil
}

// Nearest returns the index of the frame nearest to the given time.
func (ly *Layer) Nearest(t time.Time) (int, error) {
	if len(ly.frames) == 0 {
		return -1, ErrNoFrames
	}
	best := 0
	for i, rec := range ly.frames {
		if absDuration(rec.Timestamp.Sub(t)) < absDuration(ly.frames[best].Timestamp.Sub(t)) {
			best = i
		}
	}
	return best, nil
}

// ShowTime shows the frame nearest to the given time.
func (ly *Layer) ShowTime(ctx context.Context, t time.Time) error {
	i, err := ly.Nearest(t)
	if err != nil {
		return err
	}
	if i == ly.current {
		return nil
	}
	return ly.ShowFrame(ctx, i)
}

// SetOpacity sets the opacity of the layer, clamped to [0, 1].
func (ly *Layer) SetOpacity(opacity float32) {
	ly.opacity = opacity
	if ly.group != nil {
		model.UpdateOpacity(ly.group, opacity)
	}
}

// Close removes the model from the scene, frees it and releases the
// textures of the layer. The layer can be loaded and shown again.
func (ly *Layer) Close() {
	sc := ly.builder.Scene()
	if ly.group != nil {
		sc.DeleteChild(ly.group)
		model.Free(ly.group)
		ly.group = nil
	}
	for _, name := range ly.textures {
		sc.DeleteTexture(name)
	}
	ly.textures = nil
	ly.current = -1
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
