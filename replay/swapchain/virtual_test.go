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
	"github.com/stretchr/testify/require"

	"github.com/ARM-software/vktrace-arm-sub000/core/log"
	"github.com/ARM-software/vktrace-arm-sub000/replay/api"
	"github.com/ARM-software/vktrace-arm-sub000/replay/driver/nulldriver"
	"github.com/ARM-software/vktrace-arm-sub000/replay/swapchain"
)

type fixture struct {
	drv   *nulldriver.Driver
	dev   api.VkDevice
	queue api.VkQueue
	sc    api.VkSwapchainKHR
	real  []api.VkImage
	v     *swapchain.Virtual
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{drv: nulldriver.New(nulldriver.DefaultConfig())}
	inst, _ := f.drv.CreateInstance(&api.InstanceCreateInfo{})
	pds, _ := f.drv.EnumeratePhysicalDevices(inst)
	var res api.VkResult
	f.dev, res = f.drv.CreateDevice(pds[0], &api.DeviceCreateInfo{})
	require.Equal(t, api.VK_SUCCESS, res)
	f.queue = f.drv.GetDeviceQueue(f.dev, 0, 0)
	surface, _ := f.drv.CreateSurface(inst)
	f.sc, _ = f.drv.CreateSwapchain(f.dev, &api.SwapchainCreateInfo{Surface: surface, MinImageCount: 2})
	f.real, _ = f.drv.GetSwapchainImages(f.dev, f.sc)
	f.v = swapchain.NewVirtual(f.drv)
	f.v.Register(f.sc, swapchain.SwapchainInfo{
		Device: f.dev,
		Memory: f.drv.GetPhysicalDeviceMemoryProperties(pds[0]),
		Format: 44, // VK_FORMAT_B8G8R8A8_UNORM
		Extent: api.Extent2D{Width: 64, Height: 64},
		Usage:  api.ImageUsageColorAttachment,
	}, f.real)
	return f
}

func TestVirtualImagesCreatedOnce(t *testing.T) {
	ctx := log.Testing(t)
	f := newFixture(t)

	images, err := f.v.Images(ctx, f.sc)
	require.NoError(t, err)
	require.Len(t, images, len(f.real))
	for i, img := range images {
		assert.True(t, f.drv.Owns(api.TypeImage, uint64(img)))
		assert.NotEqual(t, f.real[i], img)
	}
	again, err := f.v.Images(ctx, f.sc)
	require.NoError(t, err)
	assert.Equal(t, images, again)
	assert.Len(t, f.drv.Calls("vkCreateImage"), len(f.real))

	// Device local memory is preferred.
	for _, c := range f.drv.Calls("vkAllocateMemory") {
		assert.Equal(t, uint32(0), c.Args[1])
	}

	_, err = f.v.Images(ctx, 0x1234)
	assert.Equal(t, swapchain.ErrUnknownSwapchain, err)
}

func TestVirtualPresentFenceCycle(t *testing.T) {
	ctx := log.Testing(t)
	f := newFixture(t)
	appSemaphore, _ := f.drv.CreateSemaphore(f.dev, &api.SemaphoreCreateInfo{})

	// Frame N and frame N+1 both blit from virtual image 0.
	for frame := 0; frame < 2; frame++ {
		sem, err := f.v.Present(ctx, f.queue, f.sc, 0, uint32(frame), []api.VkSemaphore{appSemaphore})
		require.NoError(t, err)
		vi, ok := f.v.Image(f.sc, 0)
		require.True(t, ok)
		assert.Equal(t, vi.Semaphore, sem)
		assert.Equal(t, frame+1, vi.Presents)
		assert.True(t, f.drv.Signaled(uint64(vi.Fence)))
		assert.Equal(t, []api.VkFence{vi.Fence}, f.v.Pending(f.dev))
	}
	// Resubmitting the blit fence without the reset would be reported here.
	assert.Equal(t, 0, f.drv.ValidationErrors())

	calls := f.drv.Calls("vkWaitForFences", "vkResetFences", "vkQueueSubmit")
	names := make([]string, len(calls))
	for i, c := range calls {
		names[i] = c.Name
	}
	assert.Equal(t, []string{
		"vkWaitForFences", "vkResetFences", "vkQueueSubmit",
		"vkWaitForFences", "vkResetFences", "vkQueueSubmit",
	}, names)

	copies := f.drv.Calls("vkCmdCopyImage")
	require.Len(t, copies, 2)
	assert.Equal(t, f.real[0], copies[0].Args[2])
	assert.Equal(t, f.real[1], copies[1].Args[2])
}

func TestVirtualWaitPending(t *testing.T) {
	ctx := log.Testing(t)
	f := newFixture(t)
	_, err := f.v.Present(ctx, f.queue, f.sc, 1, 0, nil)
	require.NoError(t, err)
	require.Len(t, f.v.Pending(f.dev), 1)
	require.NoError(t, f.v.WaitPending(ctx, f.dev))
	assert.Empty(t, f.v.Pending(f.dev))
	require.NoError(t, f.v.WaitPending(ctx, f.dev))
}

func TestVirtualPresentErrors(t *testing.T) {
	ctx := log.Testing(t)
	f := newFixture(t)
	_, err := f.v.Present(ctx, f.queue, f.sc, 0, 5, nil)
	assert.ErrorIs(t, err, swapchain.ErrImageIndex)

	f.drv.LoseDevice()
	_, err = f.v.Present(ctx, f.queue, f.sc, 0, 0, nil)
	assert.ErrorIs(t, err, swapchain.ErrVirtualImageFailed)
}

func TestVirtualDestroy(t *testing.T) {
	ctx := log.Testing(t)
	f := newFixture(t)
	images, err := f.v.Images(ctx, f.sc)
	require.NoError(t, err)
	_, err = f.v.Present(ctx, f.queue, f.sc, 0, 0, nil)
	require.NoError(t, err)

	f.v.Destroy(ctx, f.sc)
	assert.False(t, f.v.Registered(f.sc))
	for _, img := range images {
		assert.False(t, f.drv.Owns(api.TypeImage, uint64(img)))
	}
	assert.Empty(t, f.v.Pending(f.dev))
	assert.Equal(t, 0, f.drv.ValidationErrors())
}
