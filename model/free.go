// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import "github.com/helioviewer-project/helios/xyz"

// Free releases the device resources of a model. Groups are freed
// by freeing all of their children; solids release their mesh and
// material. Textures are not released: they belong to whoever created
// them, and may be shared between models.
//
// Free does not remove the node from its parent. It must be called
// exactly once per model.
func Free(n xyz.Node) {
	if sld := n.AsSolid(); sld != nil {
		sld.Release()
		return
	}
	for _, kid := range n.AsNodeBase().Children {
		Free(kid)
	}
}
