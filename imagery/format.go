// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagery

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Formats are the supported texture image formats.
type Formats int32

// The supported texture image formats.
const (
	None Formats = iota
	PNG
	JPEG
	GIF
	TIFF
	BMP
	WebP
)

func (f Formats) String() string {
	switch f {
	case PNG:
		return "png"
	case JPEG:
		return "jpeg"
	case GIF:
		return "gif"
	case TIFF:
		return "tiff"
	case BMP:
		return "bmp"
	case WebP:
		return "webp"
	}
	return "none"
}

// ErrUnsupportedFormat is returned for data that is not an image in
// one of the supported [Formats].
var ErrUnsupportedFormat = errors.New("imagery: unsupported image format")

// ExtToFormat returns a Format based on a filename extension,
// which can start with a . or not.
func ExtToFormat(ext string) (Formats, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	switch ext {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "gif":
		return GIF, nil
	case "tif", "tiff":
		return TIFF, nil
	case "bmp":
		return BMP, nil
	case "webp":
		return WebP, nil
	}
	return None, fmt.Errorf("%w: extension %q", ErrUnsupportedFormat, ext)
}

// Sniff returns the format of the given data, determined from its
// leading bytes.
func Sniff(data []byte) (Formats, error) {
	kind, err := filetype.Match(data)
	if err != nil {
		return None, fmt.Errorf("imagery: sniffing image: %w", err)
	}
	if kind == filetype.Unknown {
		return None, fmt.Errorf("%w: unknown content", ErrUnsupportedFormat)
	}
	f, err := ExtToFormat(kind.Extension)
	if err != nil {
		return None, fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind.MIME.Value)
	}
	return f, nil
}

// Decode sniffs and decodes the given image data.
func Decode(data []byte) (image.Image, Formats, error) {
	f, err := Sniff(data)
	if err != nil {
		return nil, None, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, f, fmt.Errorf("imagery: decoding %s image: %w", f, err)
	}
	return img, f, nil
}
