// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import "fmt"

// Kind is the role of a [Group] in the scene, fixed when the group is
// built, so that consumers can select models by role without
// inspecting their geometry.
type Kind int32

const (
	// KindNone is a plain group with no particular role.
	KindNone Kind = iota

	// SolarModel is a group holding projected solar imagery.
	SolarModel

	// MarkerModel is a group holding a point of interest annotation.
	MarkerModel
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case SolarModel:
		return "sun"
	case MarkerModel:
		return "marker"
	}
	return fmt.Sprintf("Kind(%d)", int32(k))
}

// Group collects individual elements in a scene but does not have a Mesh or Material of
// its own. It does have a transform that applies to all nodes under it.
type Group struct {
	NodeBase

	kind Kind
}

// NewGroup returns a new group of the given kind for the given scene.
// The group is not added to the scene: use [NodeBase.AddChild] on the
// intended parent.
func NewGroup(sc *Scene, name string, kind Kind) *Group {
	gp := &Group{kind: kind}
	gp.InitName(gp, name)
	gp.Scene = sc
	return gp
}

// Kind returns the role of this group.
func (gp *Group) Kind() Kind {
	return gp.kind
}

// UpdateMeshBBox updates the Mesh-based BBox info for all nodes.
// groups aggregate over elements
func (gp *Group) UpdateMeshBBox() {
	gp.MeshBBox.SetEmpty()
	for _, kid := range gp.Children {
		kb := kid.AsNodeBase()
		gp.MeshBBox.ExpandByBox(kb.MeshBBox.MulMatrix4(&kb.Pose.Matrix))
	}
}

// SetPos sets the [Pose.Pos] position of the group
func (gp *Group) SetPos(x, y, z float32) *Group {
	gp.Pose.Pos.Set(x, y, z)
	gp.Pose.SetDirty()
	return gp
}

// SetScale sets the [Pose.Scale] scale of the group
func (gp *Group) SetScale(x, y, z float32) *Group {
	gp.Pose.Scale.Set(x, y, z)
	gp.Pose.SetDirty()
	return gp
}

// Solids returns the direct children of this group that are solids.
func (gp *Group) Solids() []*Solid {
	var slds []*Solid
	for _, kid := range gp.Children {
		if sld := kid.AsSolid(); sld != nil {
			slds = append(slds, sld)
		}
	}
	return slds
}

var _ Node = &Group{}
