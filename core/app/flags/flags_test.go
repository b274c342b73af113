// Copyright (C) 2026 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package flags_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ARM-software/vktrace-arm-sub000/core/app/flags"
)

type colour int

const (
	red colour = iota
	green
)

func (c colour) String() string {
	switch c {
	case red:
		return "red"
	case green:
		return "green"
	}
	return ""
}

func (c *colour) Choose(v interface{}) { *c = v.(colour) }

type nested struct {
	Depth int `help:"nesting depth"`
}

type myFlags struct {
	CompatibilityMode bool   `help:"enable translation"`
	ForceSyncImgIdx   bool   `help:"force image index"`
	DisableRQAndRTP   uint32 `help:"mask"`
	Out               string `name:"o" help:"output"`
	Colour            colour `help:"a colour"`
	Inner             nested
	nested
}

func TestBindAndParse(t *testing.T) {
	f := myFlags{CompatibilityMode: true}
	s := flags.Set{}
	s.Bind("", &f, "")
	require.NoError(t, s.Parse(
		"-compatibility-mode=false",
		"-force-sync-img-idx",
		"-disable-rq-and-rtp", "0x5",
		"-o", "out.txt",
		"-colour", "green",
		"-inner-depth", "3",
		"trace.vktrace",
	))
	assert.False(t, f.CompatibilityMode)
	assert.True(t, f.ForceSyncImgIdx)
	assert.Equal(t, uint32(5), f.DisableRQAndRTP)
	assert.Equal(t, "out.txt", f.Out)
	assert.Equal(t, green, f.Colour)
	assert.Equal(t, 3, f.Inner.Depth)
	assert.Equal(t, []string{"trace.vktrace"}, s.Args())
	assert.Contains(t, s.Usage(), "-compatibility-mode")
}

func TestParseRejectsBadMask(t *testing.T) {
	f := myFlags{}
	s := flags.Set{}
	s.Bind("", &f, "")
	s.Raw.SetOutput(discard{})
	assert.Error(t, s.Parse("-disable-rq-and-rtp", "0x1ffffffff"))
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
