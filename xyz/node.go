// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xyz is a small 3D scenegraph: groups and solids arranged in a
// tree, meshes and textures collected on a [Scene], and a [Device] that
// owns the GPU-side copies of those resources. Rendering itself is done
// by whatever implements [Device]; this package only keeps the scene
// state that the renderer consumes between frames.
package xyz

import (
	"strings"

	"github.com/helioviewer-project/helios/math32"
)

// Node is the interface for all nodes in the scenegraph.
type Node interface {
	// AsNodeBase returns the [NodeBase] for this node,
	// which holds the tree structure and the pose.
	AsNodeBase() *NodeBase

	// IsSolid returns true if this is a [Solid] node,
	// which has a Mesh and a Material.
	IsSolid() bool

	// AsSolid returns the node as a [*Solid], or nil if it is not one.
	AsSolid() *Solid

	// UpdateMeshBBox updates the local bounding box from the mesh
	// (solids) or from the children (groups).
	UpdateMeshBBox()
}

// Walk return values for [NodeBase.WalkDown] functions.
const (
	// Continue keeps walking into the children of the current node.
	Continue = true

	// Break skips the children of the current node.
	Break = false
)

// NodeBase is the common part of all nodes. It must be embedded as the
// first field of every node type and initialized with [NodeBase.InitName].
type NodeBase struct {

	// Name is the name of this node, unique among its siblings.
	Name string

	// This is the node as its true underlying type.
	This Node `json:"-"`

	// Parent is the parent of this node, nil for the root.
	Parent Node `json:"-"`

	// Children are the child nodes.
	Children []Node

	// Scene is the scene this node was created for. It provides the
	// [Device] used to release GPU resources.
	Scene *Scene `json:"-"`

	// Pose is the position and scale relative to the parent.
	Pose Pose

	// MeshBBox is the bounding box in local coordinates.
	MeshBBox math32.Box3

	// WorldBBox is the bounding box in world coordinates,
	// computed in [Scene.Update].
	WorldBBox math32.Box3
}

// InitName initializes the node with its true type and name.
func (nb *NodeBase) InitName(this Node, name string) {
	nb.This = this
	nb.Name = name
	nb.Pose.Defaults()
	nb.MeshBBox.SetEmpty()
	nb.WorldBBox.SetEmpty()
}

func (nb *NodeBase) AsNodeBase() *NodeBase {
	return nb
}

func (nb *NodeBase) IsSolid() bool {
	return false
}

func (nb *NodeBase) AsSolid() *Solid {
	return nil
}

func (nb *NodeBase) UpdateMeshBBox() {}

// AddChild adds the given node as the last child of this node.
// The child is removed from any previous parent.
func (nb *NodeBase) AddChild(kid Node) {
	kb := kid.AsNodeBase()
	if kb.Parent != nil {
		kb.Parent.AsNodeBase().DeleteChild(kid)
	}
	kb.Parent = nb.This
	nb.Children = append(nb.Children, kid)
}

// DeleteChild removes the given child from this node, returning false
// if it is not a child. It does not release any resources: see
// the model package for that.
func (nb *NodeBase) DeleteChild(kid Node) bool {
	for i, k := range nb.Children {
		if k == kid {
			nb.Children = append(nb.Children[:i], nb.Children[i+1:]...)
			kid.AsNodeBase().Parent = nil
			return true
		}
	}
	return false
}

// NumChildren returns the number of children.
func (nb *NodeBase) NumChildren() int {
	return len(nb.Children)
}

// ChildByName returns the first child with the given name, or nil.
func (nb *NodeBase) ChildByName(name string) Node {
	for _, k := range nb.Children {
		if k.AsNodeBase().Name == name {
			return k
		}
	}
	return nil
}

// Path returns the path to this node from the root, as /root/child/...
func (nb *NodeBase) Path() string {
	names := []string{nb.Name}
	for p := nb.Parent; p != nil; p = p.AsNodeBase().Parent {
		names = append(names, p.AsNodeBase().Name)
	}
	var sb strings.Builder
	for i := len(names) - 1; i >= 0; i-- {
		sb.WriteString("/")
		sb.WriteString(names[i])
	}
	return sb.String()
}

// WalkDown calls fun on this node and then recursively on its children,
// in depth-first order. If fun returns [Break], the children of that
// node are skipped.
func (nb *NodeBase) WalkDown(fun func(n Node) bool) {
	if !fun(nb.This) {
		return
	}
	for _, k := range nb.Children {
		k.AsNodeBase().WalkDown(fun)
	}
}

// WalkPost calls fun on all children recursively and then on this node,
// so that every node is visited after all of its descendants.
func (nb *NodeBase) WalkPost(fun func(n Node)) {
	for _, k := range nb.Children {
		k.AsNodeBase().WalkPost(fun)
	}
	fun(nb.This)
}
