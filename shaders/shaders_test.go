// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shaders

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgramsDeclareUniforms(t *testing.T) {
	for _, pr := range []*Program{Solar(), Plane()} {
		assert.NotEmpty(t, pr.Vertex, pr.Name)
		for _, u := range pr.Uniforms {
			assert.True(t, strings.Contains(pr.Fragment, " "+u+";"), "%s does not declare %s", pr.Name, u)
		}
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load("lasco")
	assert.Error(t, err)
}
