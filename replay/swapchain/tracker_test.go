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

package swapchain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ARM-software/vktrace-arm-sub000/replay/api"
	"github.com/ARM-software/vktrace-arm-sub000/replay/swapchain"
)

func populated(n int) (*swapchain.Tracker, []api.VkImage) {
	t := swapchain.NewTracker()
	images := make([]api.VkImage, n)
	for i := range images {
		images[i] = api.VkImage(0x100 + i)
	}
	t.Populate(images)
	return t, images
}

func TestTrackerStates(t *testing.T) {
	tr := swapchain.NewTracker()
	assert.Equal(t, swapchain.Unbound, tr.State())
	tr.Populate([]api.VkImage{1, 2})
	assert.Equal(t, swapchain.Populated, tr.State())
	tr.Reset()
	assert.Equal(t, swapchain.Reset, tr.State())
	assert.Equal(t, 0, tr.Len())
}

func TestRemoveImageLeavesOthers(t *testing.T) {
	const n = 4
	for i := 0; i < n; i++ {
		tr, images := populated(n)
		tr.RemoveImage(images[i])
		assert.Equal(t, n-1, tr.Len())
		_, ok := tr.Index(images[i])
		assert.False(t, ok)
		_, ok = tr.Image(uint32(i))
		assert.False(t, ok)
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			idx, ok := tr.Index(images[j])
			assert.True(t, ok)
			assert.Equal(t, uint32(j), idx)
			img, ok := tr.Image(uint32(j))
			assert.True(t, ok)
			assert.Equal(t, images[j], img)
		}
	}
}

func TestViewsAndFramebuffers(t *testing.T) {
	tr, images := populated(2)
	assert.True(t, tr.AddView(10, images[0]))
	assert.True(t, tr.AddView(11, images[1]))
	assert.False(t, tr.AddView(12, 0x999))

	assert.True(t, tr.AddFramebuffer(20, 30, []api.VkImageView{10}))
	assert.True(t, tr.AddFramebuffer(21, 30, []api.VkImageView{11}))
	assert.False(t, tr.AddFramebuffer(22, 30, []api.VkImageView{12}))

	idx, ok := tr.FramebufferIndex(21)
	assert.True(t, ok)
	assert.Equal(t, uint32(1), idx)

	tr.RemoveView(10)
	_, ok = tr.ViewIndex(10)
	assert.False(t, ok)
	tr.RemoveFramebuffer(20)
	_, ok = tr.FramebufferIndex(20)
	assert.False(t, ok)
}

func TestSubstituteFramebuffer(t *testing.T) {
	tr, images := populated(2)
	tr.AddView(10, images[0])
	tr.AddView(11, images[1])
	tr.AddFramebuffer(20, 30, []api.VkImageView{10, 99})
	tr.AddFramebuffer(21, 31, []api.VkImageView{11})
	tr.AddFramebuffer(22, 30, []api.VkImageView{11, 98})

	// Same index acquired: nothing to substitute.
	tr.Acquire(0, 0)
	assert.Equal(t, api.VkFramebuffer(20), tr.SubstituteFramebuffer(20, 30))

	// Render pass match wins over attachment count.
	tr.Acquire(0, 1)
	assert.Equal(t, api.VkFramebuffer(22), tr.SubstituteFramebuffer(20, 30))

	// No render pass match: fall back to attachment count.
	assert.Equal(t, api.VkFramebuffer(22), tr.SubstituteFramebuffer(20, 32))
	tr.RemoveFramebuffer(22)
	assert.Equal(t, api.VkFramebuffer(20), tr.SubstituteFramebuffer(20, 32))

	// Untracked framebuffers pass through.
	assert.Equal(t, api.VkFramebuffer(77), tr.SubstituteFramebuffer(77, 30))

	assert.Equal(t, images[1], tr.SubstituteImage(images[0]))
}

func TestPushPop(t *testing.T) {
	tr, images := populated(3)
	tr.Push()
	assert.Equal(t, swapchain.Unbound, tr.State())
	assert.Equal(t, 0, tr.Len())
	assert.Equal(t, 1, tr.Depth())

	tr.Populate([]api.VkImage{0x200})
	assert.True(t, tr.Pop())
	assert.Equal(t, 3, tr.Len())
	idx, ok := tr.Index(images[2])
	assert.True(t, ok)
	assert.Equal(t, uint32(2), idx)
	assert.False(t, tr.Pop())
}

func TestTrackers(t *testing.T) {
	s := swapchain.NewTrackers()
	s.Get(1).Populate([]api.VkImage{0x10, 0x11})
	s.Get(2).Populate([]api.VkImage{0x20})
	s.AddView(0x30, 0x11)
	s.AddFramebuffer(0x40, 0x50, []api.VkImageView{0x30})

	tr, ok := s.ForFramebuffer(0x40)
	assert.True(t, ok)
	assert.Same(t, s.Get(1), tr)

	s.Get(1).Acquire(1, 0)
	assert.Equal(t, api.VkFramebuffer(0x40), s.SubstituteFramebuffer(0x40, 0x50))

	s.Delete(1)
	_, ok = s.Lookup(1)
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())
}
