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

package handles_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ARM-software/vktrace-arm-sub000/replay/api"
	"github.com/ARM-software/vktrace-arm-sub000/replay/handles"
)

func TestRemapIsStable(t *testing.T) {
	for _, premapped := range []bool{false, true} {
		r := handles.New(premapped)
		for i := uint64(1); i <= 100; i++ {
			r.Add(api.TypeBuffer, i, 0x1000+i)
		}
		for pass := 0; pass < 3; pass++ {
			for i := uint64(1); i <= 100; i++ {
				live, ok := r.Remap(api.TypeBuffer, i)
				require.True(t, ok)
				assert.Equal(t, 0x1000+i, live)
			}
		}
	}
}

func TestNullAlwaysMapsToNull(t *testing.T) {
	r := handles.New(false)
	live, ok := r.Remap(api.TypeImage, 0)
	assert.True(t, ok)
	assert.Zero(t, live)

	r.Add(api.TypeImage, 0, 0x55)
	assert.Zero(t, r.Len(api.TypeImage))
	img, ok := handles.Remap(r, api.VkImage(0))
	assert.True(t, ok)
	assert.Zero(t, img)
}

func TestCategoriesAreIndependent(t *testing.T) {
	r := handles.New(false)
	handles.Add(r, api.VkBuffer(1), api.VkBuffer(10))
	handles.Add(r, api.VkImage(1), api.VkImage(20))

	buf, ok := handles.Remap(r, api.VkBuffer(1))
	require.True(t, ok)
	assert.Equal(t, api.VkBuffer(10), buf)
	img, ok := handles.Remap(r, api.VkImage(1))
	require.True(t, ok)
	assert.Equal(t, api.VkImage(20), img)
	_, ok = handles.Remap(r, api.VkSampler(1))
	assert.False(t, ok)
}

func TestRemoveAndReverse(t *testing.T) {
	r := handles.New(false)
	handles.Add(r, api.VkFence(3), api.VkFence(30))
	captured, ok := handles.Captured(r, api.VkFence(30))
	require.True(t, ok)
	assert.Equal(t, api.VkFence(3), captured)

	handles.Remove(r, api.VkFence(3))
	_, ok = handles.Remap(r, api.VkFence(3))
	assert.False(t, ok)
	_, ok = handles.Captured(r, api.VkFence(30))
	assert.False(t, ok)
}

func TestReAddReplacesReverseEntry(t *testing.T) {
	r := handles.New(false)
	r.Add(api.TypeSemaphore, 1, 100)
	r.Add(api.TypeSemaphore, 1, 200)
	_, ok := r.Captured(api.TypeSemaphore, 100)
	assert.False(t, ok)
	captured, ok := r.Captured(api.TypeSemaphore, 200)
	assert.True(t, ok)
	assert.Equal(t, uint64(1), captured)
}

func TestSharedLiveHandle(t *testing.T) {
	r := handles.New(false)
	handles.Add(r, api.VkSurfaceKHR(1), api.VkSurfaceKHR(100))
	handles.Add(r, api.VkSurfaceKHR(2), api.VkSurfaceKHR(100))
	assert.Equal(t, []api.VkSurfaceKHR{1, 2}, handles.CapturedAll(r, api.VkSurfaceKHR(100)))

	handles.Remove(r, api.VkSurfaceKHR(1))
	captured, ok := handles.Captured(r, api.VkSurfaceKHR(100))
	require.True(t, ok)
	assert.Equal(t, api.VkSurfaceKHR(2), captured)
	live, ok := handles.Remap(r, api.VkSurfaceKHR(2))
	require.True(t, ok)
	assert.Equal(t, api.VkSurfaceKHR(100), live)

	// Moving the remaining handle leaves nothing behind for the old value.
	handles.Add(r, api.VkSurfaceKHR(2), api.VkSurfaceKHR(200))
	assert.Empty(t, handles.CapturedAll(r, api.VkSurfaceKHR(100)))
}

func TestPremappedSlots(t *testing.T) {
	r := handles.New(true)
	slot := r.Premap(api.TypeBuffer, 7)
	require.NotNil(t, slot)
	assert.Same(t, slot, r.Premap(api.TypeBuffer, 7))

	_, err := slot.Get(api.TypeBuffer)
	assert.ErrorIs(t, err, handles.ErrEmptySlot)

	r.Add(api.TypeBuffer, 7, 70)
	buf, err := handles.SlotValue[api.VkBuffer](slot)
	require.NoError(t, err)
	assert.Equal(t, api.VkBuffer(70), buf)

	_, err = handles.SlotValue[api.VkImage](slot)
	assert.ErrorIs(t, err, handles.ErrCategoryMismatch)

	r.Remove(api.TypeBuffer, 7)
	_, err = slot.Get(api.TypeBuffer)
	assert.ErrorIs(t, err, handles.ErrEmptySlot)
	_, ok := r.Remap(api.TypeBuffer, 7)
	assert.False(t, ok)

	assert.Nil(t, handles.New(false).Premap(api.TypeBuffer, 7))
}

func TestRemapperInterface(t *testing.T) {
	r := handles.New(false)
	handles.Add(r, api.VkSwapchainKHR(4), api.VkSwapchainKHR(40))
	c, err := api.NewChain(&api.ImageSwapchainCreateInfo{Swapchain: 4}).Remapped(r)
	require.NoError(t, err)
	info, _ := api.FindAs[*api.ImageSwapchainCreateInfo](c)
	assert.Equal(t, api.VkSwapchainKHR(40), info.Swapchain)
}

func TestWriteMappings(t *testing.T) {
	r := handles.New(false)
	handles.Add(r, api.VkImage(0x2), api.VkImage(0x20))
	handles.Add(r, api.VkBuffer(0x3), api.VkBuffer(0x30))
	handles.Add(r, api.VkBuffer(0x1), api.VkBuffer(0x10))

	buf := &bytes.Buffer{}
	require.NoError(t, r.WriteMappings(buf))
	assert.Equal(t,
		"VkBuffer(0x1): 0x10\nVkBuffer(0x3): 0x30\nVkImage(0x2): 0x20\n",
		buf.String())
}
