// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package assets provides the resources bundled with helios.
package assets

import (
	"embed"
	"io/fs"
	"os"
)

// SunModel is the path of the hemisphere mesh within [FS].
const SunModel = "models/sun_model.obj"

//go:embed models
var content embed.FS

// FS returns the embedded assets.
func FS() fs.FS {
	return content
}

// Dir returns the assets in the given directory if it is not empty,
// so that assets can be replaced without rebuilding, and the embedded
// assets otherwise.
func Dir(dir string) fs.FS {
	if dir == "" {
		return content
	}
	return os.DirFS(dir)
}
