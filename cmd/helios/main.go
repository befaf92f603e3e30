// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command helios queries the Helioviewer services for solar images and
// events, and builds the 3D models that the images are projected onto.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/helioviewer-project/helios/base/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := RootCommand(&App{}).ExecuteContext(ctx); err != nil {
		errors.Log(err)
		stop()
		os.Exit(1)
	}
}
