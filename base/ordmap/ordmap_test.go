// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ordmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	om := New[string, int]()
	om.Add("sun", 1)
	om.Add("backside", 2)
	om.Add("marker", 3)
	om.Add("sun", 10)

	assert.Equal(t, 3, om.Len())
	assert.Equal(t, []string{"sun", "backside", "marker"}, om.Keys())
	v, ok := om.ValueByKeyTry("sun")
	assert.True(t, ok)
	assert.Equal(t, 10, v)

	assert.True(t, om.DeleteKey("backside"))
	assert.False(t, om.DeleteKey("backside"))
	assert.Equal(t, []string{"sun", "marker"}, om.Keys())
	v, ok = om.ValueByKeyTry("marker")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	om.Reset()
	assert.Equal(t, 0, om.Len())
	_, ok = om.ValueByKeyTry("sun")
	assert.False(t, ok)

	var nilmap *Map[string, int]
	assert.Equal(t, 0, nilmap.Len())
}
