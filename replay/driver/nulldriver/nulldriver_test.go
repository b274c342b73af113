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

package nulldriver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ARM-software/vktrace-arm-sub000/replay/api"
	"github.com/ARM-software/vktrace-arm-sub000/replay/driver/nulldriver"
)

func setup(t *testing.T, cfg nulldriver.Config) (*nulldriver.Driver, api.VkPhysicalDevice, api.VkDevice) {
	d := nulldriver.New(cfg)
	inst, res := d.CreateInstance(&api.InstanceCreateInfo{})
	require.Equal(t, api.VK_SUCCESS, res)
	pds, res := d.EnumeratePhysicalDevices(inst)
	require.Equal(t, api.VK_SUCCESS, res)
	require.NotEmpty(t, pds)
	dev, res := d.CreateDevice(pds[0], &api.DeviceCreateInfo{})
	require.Equal(t, api.VK_SUCCESS, res)
	return d, pds[0], dev
}

func TestCreateDeviceRejectsUnsupported(t *testing.T) {
	d, pd, _ := setup(t, nulldriver.DefaultConfig())

	features := api.PhysicalDeviceFeatures{}
	features[api.FeatureGeometryShader] = true
	_, res := d.CreateDevice(pd, &api.DeviceCreateInfo{EnabledFeatures: &features})
	assert.Equal(t, api.VK_ERROR_FEATURE_NOT_PRESENT, res)

	_, res = d.CreateDevice(pd, &api.DeviceCreateInfo{EnabledExtensions: []string{"VK_KHR_ray_query"}})
	assert.Equal(t, api.VK_ERROR_EXTENSION_NOT_PRESENT, res)

	_, res = d.CreateDevice(pd, &api.DeviceCreateInfo{EnabledExtensions: []string{"VK_KHR_swapchain"}})
	assert.Equal(t, api.VK_SUCCESS, res)
}

func TestForeignHandlesAreValidationErrors(t *testing.T) {
	d, _, dev := setup(t, nulldriver.DefaultConfig())

	buf, _ := d.CreateBuffer(dev, &api.BufferCreateInfo{Size: 64})
	assert.True(t, d.Owns(api.TypeBuffer, uint64(buf)))
	assert.False(t, d.Owns(api.TypeImage, uint64(buf)))
	assert.Equal(t, 0, d.ValidationErrors())

	d.BindBufferMemory(dev, buf, api.VkDeviceMemory(0xdead), 0)
	assert.Equal(t, 1, d.ValidationErrors())

	d.DestroyBuffer(dev, buf)
	d.DestroyBuffer(dev, buf)
	assert.Equal(t, 2, d.ValidationErrors())

	// Null handles are always accepted.
	d.DestroyBuffer(dev, 0)
	assert.Equal(t, 2, d.ValidationErrors())
}

func TestMemoryRequirements(t *testing.T) {
	d, _, dev := setup(t, nulldriver.DefaultConfig())
	buf, _ := d.CreateBuffer(dev, &api.BufferCreateInfo{Size: 0x101})
	reqs := d.GetBufferMemoryRequirements(dev, buf)
	assert.Equal(t, uint64(0x200), reqs.Size)
	assert.Equal(t, uint32(0x7), reqs.MemoryTypeBits)

	_, res := d.AllocateMemory(dev, &api.MemoryAllocateInfo{AllocationSize: 16, MemoryTypeIndex: 3})
	assert.Equal(t, api.VK_ERROR_OUT_OF_DEVICE_MEMORY, res)
}

func TestDeviceAddresses(t *testing.T) {
	d, _, dev := setup(t, nulldriver.DefaultConfig())

	a, _ := d.CreateBuffer(dev, &api.BufferCreateInfo{Size: 0x10, Usage: api.BufferUsageShaderDeviceAddress})
	b, _ := d.CreateBuffer(dev, &api.BufferCreateInfo{Size: 0x10, Usage: api.BufferUsageShaderDeviceAddress})
	addrA, addrB := d.GetBufferDeviceAddress(dev, a), d.GetBufferDeviceAddress(dev, b)
	assert.NotZero(t, addrA)
	assert.NotEqual(t, addrA, addrB)
	assert.Equal(t, addrA, d.GetBufferDeviceAddress(dev, a))

	// Opaque capture addresses are honoured.
	c, _ := d.CreateBuffer(dev, &api.BufferCreateInfo{
		Size:  0x10,
		Flags: api.BufferCreateDeviceAddressCaptureReplay,
		Next:  api.NewChain(&api.BufferOpaqueCaptureAddressCreateInfo{OpaqueCaptureAddress: 0x5000}),
	})
	assert.Equal(t, uint64(0x5000), d.GetBufferDeviceAddress(dev, c))
	assert.Equal(t, 0, d.ValidationErrors())

	as, _ := d.CreateAccelerationStructure(dev, &api.AccelerationStructureCreateInfo{Buffer: a, Offset: 0x8, Size: 0x8})
	assert.Equal(t, addrA+0x8, d.GetAccelerationStructureDeviceAddress(dev, as))
}

func TestFences(t *testing.T) {
	d, _, dev := setup(t, nulldriver.DefaultConfig())
	q := d.GetDeviceQueue(dev, 0, 0)

	f, _ := d.CreateFence(dev, &api.FenceCreateInfo{})
	assert.Equal(t, api.VK_NOT_READY, d.GetFenceStatus(dev, f))
	assert.Equal(t, api.VK_TIMEOUT, d.WaitForFences(dev, []api.VkFence{f}, true, api.Infinite))

	assert.Equal(t, api.VK_SUCCESS, d.QueueSubmit(q, nil, f))
	assert.True(t, d.Signaled(uint64(f)))
	assert.Equal(t, api.VK_SUCCESS, d.WaitForFences(dev, []api.VkFence{f}, true, api.Infinite))

	// Resubmitting a signaled fence is a usage error.
	d.QueueSubmit(q, nil, f)
	assert.Equal(t, 1, d.ValidationErrors())

	d.ResetFences(dev, []api.VkFence{f})
	assert.False(t, d.Signaled(uint64(f)))

	signaled, _ := d.CreateFence(dev, &api.FenceCreateInfo{Flags: api.FenceCreateSignaled})
	assert.True(t, d.Signaled(uint64(signaled)))
}

func TestDeviceLoss(t *testing.T) {
	d, _, dev := setup(t, nulldriver.DefaultConfig())
	q := d.GetDeviceQueue(dev, 0, 0)
	f, _ := d.CreateFence(dev, &api.FenceCreateInfo{})
	d.LoseDevice()
	assert.Equal(t, api.VK_ERROR_DEVICE_LOST, d.QueueSubmit(q, nil, f))
	assert.Equal(t, api.VK_ERROR_DEVICE_LOST, d.WaitForFences(dev, []api.VkFence{f}, true, 0))
	assert.Equal(t, api.VK_ERROR_DEVICE_LOST, d.DeviceWaitIdle(dev))
}

func TestSwapchain(t *testing.T) {
	cfg := nulldriver.DefaultConfig()
	cfg.AcquireOrder = []uint32{1, 0}
	d, _, dev := setup(t, cfg)
	inst, _ := d.CreateInstance(&api.InstanceCreateInfo{})
	surface, _ := d.CreateSurface(inst)

	sc, res := d.CreateSwapchain(dev, &api.SwapchainCreateInfo{Surface: surface, MinImageCount: 3})
	require.Equal(t, api.VK_SUCCESS, res)
	images, res := d.GetSwapchainImages(dev, sc)
	require.Equal(t, api.VK_SUCCESS, res)
	assert.Len(t, images, 3)

	var got []uint32
	for i := 0; i < 3; i++ {
		idx, res := d.AcquireNextImage(dev, sc, api.Infinite, 0, 0)
		require.Equal(t, api.VK_SUCCESS, res)
		got = append(got, idx)
	}
	assert.Equal(t, []uint32{1, 0, 1}, got)

	q := d.GetDeviceQueue(dev, 0, 0)
	assert.Equal(t, api.VK_SUCCESS, d.QueuePresent(q, &api.PresentInfo{
		Swapchains:   []api.VkSwapchainKHR{sc},
		ImageIndices: []uint32{2},
	}))
	assert.Equal(t, 0, d.ValidationErrors())

	d.QueuePresent(q, &api.PresentInfo{Swapchains: []api.VkSwapchainKHR{sc}, ImageIndices: []uint32{3}})
	assert.Equal(t, 1, d.ValidationErrors())

	d.DestroySwapchain(dev, sc)
	assert.False(t, d.Owns(api.TypeImage, uint64(images[0])))
}

func TestSwapchainImageCountClamped(t *testing.T) {
	d, _, dev := setup(t, nulldriver.DefaultConfig())
	sc, _ := d.CreateSwapchain(dev, &api.SwapchainCreateInfo{MinImageCount: 8})
	images, _ := d.GetSwapchainImages(dev, sc)
	assert.Len(t, images, 2)
	assert.Equal(t, 1, d.ValidationErrors())
}

func TestJournal(t *testing.T) {
	d, _, dev := setup(t, nulldriver.DefaultConfig())
	pool, _ := d.CreateCommandPool(dev, &api.CommandPoolCreateInfo{})
	cbs, _ := d.AllocateCommandBuffers(dev, &api.CommandBufferAllocateInfo{CommandPool: pool, CommandBufferCount: 1})
	d.CmdDispatch(cbs[0], 1, 2, 3)

	calls := d.Calls("vkCmdDispatch")
	require.Len(t, calls, 1)
	assert.Equal(t, []interface{}{cbs[0], uint32(1), uint32(2), uint32(3)}, calls[0].Args)
	assert.Contains(t, calls[0].String(), "vkCmdDispatch(")
}
