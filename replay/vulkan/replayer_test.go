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

package vulkan_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ARM-software/vktrace-arm-sub000/core/log"
	"github.com/ARM-software/vktrace-arm-sub000/replay/address"
	"github.com/ARM-software/vktrace-arm-sub000/replay/api"
	"github.com/ARM-software/vktrace-arm-sub000/replay/config"
	"github.com/ARM-software/vktrace-arm-sub000/replay/driver/nulldriver"
	"github.com/ARM-software/vktrace-arm-sub000/replay/handles"
	"github.com/ARM-software/vktrace-arm-sub000/replay/trace"
	"github.com/ARM-software/vktrace-arm-sub000/replay/vulkan"
)

// Captured handle values used across the tests.
const (
	instance  api.VkInstance                 = 0x1
	physical  api.VkPhysicalDevice           = 0x10
	device    api.VkDevice                   = 0x20
	queue     api.VkQueue                    = 0x21
	buffer    api.VkBuffer                   = 0x30
	structure api.VkAccelerationStructureKHR = 0x40
	pool      api.VkCommandPool              = 0x45
	cmdBuffer api.VkCommandBuffer            = 0x50
	surface   api.VkSurfaceKHR               = 0x60
	swapchain api.VkSwapchainKHR             = 0x70
	semaphore api.VkSemaphore                = 0xb0
)

var capturedImages = []api.VkImage{0x90, 0x91}

type fixture struct {
	t   *testing.T
	ctx context.Context
	drv *nulldriver.Driver
	r   *vulkan.Replayer
}

func newFixture(t *testing.T, cfg nulldriver.Config, settings config.Settings) *fixture {
	drv := nulldriver.New(cfg)
	r := vulkan.New(drv, settings)
	r.Terminate = func(ctx context.Context, err error) { t.Fatalf("Unexpected termination: %v", err) }
	return &fixture{t: t, ctx: r.Context(log.Testing(t)), drv: drv, r: r}
}

// recording routes the fixture's logging to a recorder, for tests that
// expect errors to be logged.
func (f *fixture) recording() *log.Recorder {
	ctx, rec := log.Recording(f.ctx)
	f.ctx = ctx
	return rec
}

// run replays cmds, requiring each to succeed.
func (f *fixture) run(cmds ...vulkan.Cmd) {
	for _, c := range cmds {
		require.Equal(f.t, vulkan.Success, f.r.Replay(f.ctx, c), c.CmdName())
	}
}

// boot creates the captured instance, physical device and device.
func (f *fixture) boot(info api.DeviceCreateInfo) {
	if info.QueueCreateInfos == nil {
		info.QueueCreateInfos = []api.DeviceQueueCreateInfo{{QueueFamilyIndex: 0, QueuePriorities: []float32{1}}}
	}
	f.run(
		&vulkan.VkCreateInstance{Instance: instance},
		&vulkan.VkEnumeratePhysicalDevices{Instance: instance, PhysicalDevices: []api.VkPhysicalDevice{physical}},
		&vulkan.VkCreateDevice{PhysicalDevice: physical, Info: info, Device: device},
		&vulkan.VkGetDeviceQueue{Device: device, Queue: queue},
	)
}

// present creates a surface and swapchain and fetches its images.
func (f *fixture) present() api.VkSwapchainKHR {
	f.run(
		&vulkan.VkCreateSurface{Instance: instance, Surface: surface},
		&vulkan.VkCreateSwapchain{Device: device, Swapchain: swapchain, Info: api.SwapchainCreateInfo{
			Surface:          surface,
			MinImageCount:    2,
			ImageFormat:      44, // VK_FORMAT_B8G8R8A8_UNORM
			ImageExtent:      api.Extent2D{Width: 64, Height: 64},
			ImageArrayLayers: 1,
			ImageUsage:       api.ImageUsageColorAttachment,
		}},
		&vulkan.VkGetSwapchainImages{Device: device, Swapchain: swapchain, Images: capturedImages},
	)
	return f.live(swapchain)
}

func (f *fixture) live(h api.VkSwapchainKHR) api.VkSwapchainKHR {
	out, ok := handles.Remap(f.r.Handles(), h)
	require.True(f.t, ok)
	return out
}

func otherDevice() nulldriver.PhysicalDevice {
	d := nulldriver.DefaultDevice()
	d.Properties.VendorID = 0x10de
	d.Properties.DeviceID = 0x2204
	d.Properties.DeviceName = "Other GPU"
	return d
}

func TestPhysicalDevicesMatchedByFingerprint(t *testing.T) {
	cfg := nulldriver.DefaultConfig()
	cfg.Devices = []nulldriver.PhysicalDevice{nulldriver.DefaultDevice(), otherDevice()}
	f := newFixture(t, cfg, config.Settings{CompatibilityMode: true})

	// The capture saw the devices in the opposite order.
	f.r.AddCapturedDevices([]trace.Device{
		{Handle: 0x10, Properties: otherDevice().Properties},
		{Handle: 0x11, Properties: nulldriver.DefaultDevice().Properties},
	})
	f.run(
		&vulkan.VkCreateInstance{Instance: instance},
		&vulkan.VkEnumeratePhysicalDevices{Instance: instance, PhysicalDevices: []api.VkPhysicalDevice{0x10, 0x11}},
	)
	calls := f.drv.Calls("vkEnumeratePhysicalDevices")
	require.Len(t, calls, 1)
	pds := calls[0].Args[1].([]api.VkPhysicalDevice)
	require.Len(t, pds, 2)

	got, ok := handles.Remap(f.r.Handles(), api.VkPhysicalDevice(0x10))
	require.True(t, ok)
	assert.Equal(t, pds[1], got)
	got, ok = handles.Remap(f.r.Handles(), api.VkPhysicalDevice(0x11))
	require.True(t, ok)
	assert.Equal(t, pds[0], got)
}

func TestPhysicalDevicesPositionalWithoutCompatibility(t *testing.T) {
	cfg := nulldriver.DefaultConfig()
	cfg.Devices = []nulldriver.PhysicalDevice{nulldriver.DefaultDevice(), otherDevice()}
	f := newFixture(t, cfg, config.Settings{})
	f.r.AddCapturedDevices([]trace.Device{{Handle: 0x10, Properties: otherDevice().Properties}})
	f.run(
		&vulkan.VkCreateInstance{Instance: instance},
		&vulkan.VkEnumeratePhysicalDevices{Instance: instance, PhysicalDevices: []api.VkPhysicalDevice{0x10, 0x11}},
	)
	pds := f.drv.Calls("vkEnumeratePhysicalDevices")[0].Args[1].([]api.VkPhysicalDevice)
	got, _ := handles.Remap(f.r.Handles(), api.VkPhysicalDevice(0x10))
	assert.Equal(t, pds[0], got)
}

func TestDestroyInstanceForgetsSharedPhysicalDevices(t *testing.T) {
	f := newFixture(t, nulldriver.DefaultConfig(), config.Settings{})
	f.run(
		&vulkan.VkCreateInstance{Instance: instance},
		&vulkan.VkEnumeratePhysicalDevices{Instance: instance, PhysicalDevices: []api.VkPhysicalDevice{0x10, 0x11}},
	)
	// Both captured devices replay on the single live device.
	a, ok := handles.Remap(f.r.Handles(), api.VkPhysicalDevice(0x10))
	require.True(t, ok)
	b, ok := handles.Remap(f.r.Handles(), api.VkPhysicalDevice(0x11))
	require.True(t, ok)
	require.Equal(t, a, b)

	f.run(&vulkan.VkDestroyInstance{Instance: instance})
	for _, pd := range []api.VkPhysicalDevice{0x10, 0x11} {
		_, ok := handles.Remap(f.r.Handles(), pd)
		assert.False(t, ok, "physical device 0x%x", uint64(pd))
	}
	assert.Zero(t, f.r.Handles().Len(api.TypePhysicalDevice))
}

func TestOverrideCreateDeviceFeatures(t *testing.T) {
	features := api.PhysicalDeviceFeatures{}
	features[api.FeatureGeometryShader] = true
	create := func(override bool) (*fixture, vulkan.Status) {
		f := newFixture(t, nulldriver.DefaultConfig(), config.Settings{OverrideCreateDeviceFeatures: override})
		f.recording()
		f.run(
			&vulkan.VkCreateInstance{Instance: instance},
			&vulkan.VkEnumeratePhysicalDevices{Instance: instance, PhysicalDevices: []api.VkPhysicalDevice{physical}},
		)
		requested := features
		s := f.r.Replay(f.ctx, &vulkan.VkCreateDevice{
			PhysicalDevice: physical,
			Info:           api.DeviceCreateInfo{EnabledFeatures: &requested},
			Device:         device,
		})
		// The captured request is never modified.
		assert.True(t, requested[api.FeatureGeometryShader])
		return f, s
	}

	f, s := create(true)
	assert.Equal(t, vulkan.Success, s)
	_, ok := handles.Remap(f.r.Handles(), device)
	assert.True(t, ok)

	f, s = create(false)
	assert.Equal(t, vulkan.BadReturnValueMismatch, s)
	assert.Equal(t, 1, f.r.Stats().Mismatches)
	_, ok = handles.Remap(f.r.Handles(), device)
	assert.False(t, ok)
}

func TestUnmappedHandleSkipsCall(t *testing.T) {
	f := newFixture(t, nulldriver.DefaultConfig(), config.Settings{})
	f.boot(api.DeviceCreateInfo{})
	rec := f.recording()

	s := f.r.Replay(f.ctx, &vulkan.VkDestroyBuffer{Device: device, Buffer: 0xbad})
	assert.Equal(t, vulkan.ValidationErrorReported, s)
	assert.Equal(t, 1, f.r.Stats().Skipped)
	assert.Empty(t, f.drv.Calls("vkDestroyBuffer"))
	assert.Equal(t, 0, f.drv.ValidationErrors())
	assert.Equal(t, 1, rec.Count(log.Error))
}

// compatDevices configures a replay device on a different platform from the
// captured one at physical.
func compatDevices(t *testing.T, replay nulldriver.PhysicalDevice, captured trace.Device) *fixture {
	cfg := nulldriver.DefaultConfig()
	cfg.Devices = []nulldriver.PhysicalDevice{replay}
	f := newFixture(t, cfg, config.Settings{CompatibilityMode: true})
	captured.Handle = physical
	f.r.AddCapturedDevices([]trace.Device{captured})
	return f
}

func TestNoCompatibleMemoryTypeSkipsAllocation(t *testing.T) {
	replay := otherDevice()
	replay.Memory.Types = []api.MemoryType{{PropertyFlags: api.MemoryHostVisible}}
	memory := nulldriver.DefaultDevice().Memory
	f := compatDevices(t, replay, trace.Device{
		Properties: nulldriver.DefaultDevice().Properties,
		Memory:     &memory,
	})
	rec := f.recording()
	f.boot(api.DeviceCreateInfo{})

	// Captured type 0 is device local only.
	s := f.r.Replay(f.ctx, &vulkan.VkAllocateMemory{
		Device: device,
		Info:   api.MemoryAllocateInfo{AllocationSize: 0x1000, MemoryTypeIndex: 0},
		Memory: 0x80,
	})
	assert.Equal(t, vulkan.ValidationErrorReported, s)
	assert.Equal(t, 1, f.r.Stats().Skipped)
	assert.Empty(t, f.drv.Calls("vkAllocateMemory"))
	_, ok := handles.Remap(f.r.Handles(), api.VkDeviceMemory(0x80))
	assert.False(t, ok)
	assert.Equal(t, 1, rec.Count(log.Error))
}

func TestNoCompatibleQueueFamilySkipsCall(t *testing.T) {
	replay := otherDevice()
	replay.QueueFamilies = []api.QueueFamilyProperties{
		{QueueFlags: api.QueueCompute, QueueCount: 1},
		{QueueFlags: api.QueueTransfer, QueueCount: 1},
	}
	f := compatDevices(t, replay, trace.Device{
		Properties: nulldriver.DefaultDevice().Properties,
		QueueFamilies: []api.QueueFamilyProperties{
			{QueueFlags: api.QueueCompute, QueueCount: 1},
			{QueueFlags: api.QueueTransfer, QueueCount: 1},
			{QueueFlags: api.QueueGraphics, QueueCount: 1},
		},
	})
	rec := f.recording()
	f.run(
		&vulkan.VkCreateInstance{Instance: instance},
		&vulkan.VkEnumeratePhysicalDevices{Instance: instance, PhysicalDevices: []api.VkPhysicalDevice{physical}},
	)

	s := f.r.Replay(f.ctx, &vulkan.VkCreateDevice{PhysicalDevice: physical, Device: device,
		Info: api.DeviceCreateInfo{QueueCreateInfos: []api.DeviceQueueCreateInfo{
			{QueueFamilyIndex: 2, QueuePriorities: []float32{1}},
		}}})
	assert.Equal(t, vulkan.ValidationErrorReported, s)
	assert.Empty(t, f.drv.Calls("vkCreateDevice"))
	_, ok := handles.Remap(f.r.Handles(), device)
	assert.False(t, ok)

	// The compute family resolves, the graphics one still fails the buffer.
	f.run(&vulkan.VkCreateDevice{PhysicalDevice: physical, Device: device,
		Info: api.DeviceCreateInfo{QueueCreateInfos: []api.DeviceQueueCreateInfo{
			{QueueFamilyIndex: 0, QueuePriorities: []float32{1}},
		}}})
	s = f.r.Replay(f.ctx, &vulkan.VkCreateBuffer{Device: device, Buffer: buffer, Info: api.BufferCreateInfo{
		Size:               0x100,
		SharingMode:        api.SharingModeConcurrent,
		QueueFamilyIndices: []uint32{0, 2},
	}})
	assert.Equal(t, vulkan.ValidationErrorReported, s)
	assert.Empty(t, f.drv.Calls("vkCreateBuffer"))
	assert.Equal(t, 2, f.r.Stats().Skipped)
	assert.Equal(t, 0, f.drv.ValidationErrors())
	assert.Equal(t, 2, rec.Count(log.Error))
}

// addressed creates a device addressable buffer captured at 0xa000 and a
// command buffer, returning the buffer's live address.
func (f *fixture) addressed() uint64 {
	f.run(
		&vulkan.VkCreateBuffer{Device: device, Buffer: buffer, Info: api.BufferCreateInfo{
			Size:  0x1000,
			Usage: api.BufferUsageShaderDeviceAddress | api.BufferUsageAccelerationStructureStorage,
		}},
		&vulkan.VkGetBufferDeviceAddress{Device: device, Buffer: buffer, Address: 0xa000},
		&vulkan.VkCreateCommandPool{Device: device, Pool: pool},
		&vulkan.VkAllocateCommandBuffers{
			Device:         device,
			Info:           api.CommandBufferAllocateInfo{CommandPool: pool, CommandBufferCount: 1},
			CommandBuffers: []api.VkCommandBuffer{cmdBuffer},
		},
	)
	addr, ok := f.r.Addresses().Exact(address.Buffer, 0xa000)
	require.True(f.t, ok)
	return addr
}

func TestAddressTranslation(t *testing.T) {
	f := newFixture(t, nulldriver.DefaultConfig(), config.Settings{CompatibilityMode: true})
	f.boot(api.DeviceCreateInfo{})
	base := f.addressed()

	f.run(
		&vulkan.VkCreateAccelerationStructure{Device: device, Structure: structure,
			Info: api.AccelerationStructureCreateInfo{Buffer: buffer, Size: 0x800}},
		&vulkan.VkCmdBuildAccelerationStructures{CommandBuffer: cmdBuffer,
			Infos: []api.AccelerationStructureBuildGeometryInfo{{
				Dst:         structure,
				ScratchData: 0xa800,
				Geometries: []api.AccelerationStructureGeometry{{
					Type:       api.GeometryTypeTriangles,
					VertexData: 0xa100,
				}},
			}}},
		&vulkan.VkCmdTraceRays{CommandBuffer: cmdBuffer,
			Raygen: api.StridedDeviceAddressRegion{DeviceAddress: 0xa040, Size: 0x40},
			Miss:   api.StridedDeviceAddressRegion{DeviceAddress: 0xdead0000},
			Width:  1, Height: 1, Depth: 1},
	)

	builds := f.drv.Calls("vkCmdBuildAccelerationStructuresKHR")
	require.Len(t, builds, 1)
	info := builds[0].Args[1].([]api.AccelerationStructureBuildGeometryInfo)[0]
	assert.Equal(t, base+0x800, info.ScratchData)
	assert.Equal(t, base+0x100, info.Geometries[0].VertexData)

	rays := f.drv.Calls("vkCmdTraceRaysKHR")
	require.Len(t, rays, 1)
	assert.Equal(t, base+0x40, rays[0].Args[1])
	// Unknown addresses are passed through.
	assert.Equal(t, uint64(0xdead0000), rays[0].Args[2])
	assert.Equal(t, uint64(0), rays[0].Args[3])
}

func TestAddressMissSkipsWithoutCaptureReplay(t *testing.T) {
	f := newFixture(t, nulldriver.DefaultConfig(), config.Settings{
		CompatibilityMode:            true,
		OverrideCreateDeviceFeatures: true,
	})
	// The trace relied on buffer capture replay, which the null device lacks.
	f.boot(api.DeviceCreateInfo{Next: api.NewChain(&api.BufferDeviceAddressFeatures{
		BufferDeviceAddress:              true,
		BufferDeviceAddressCaptureReplay: true,
	})})
	f.addressed()
	f.recording()

	s := f.r.Replay(f.ctx, &vulkan.VkCmdTraceRays{CommandBuffer: cmdBuffer,
		Raygen: api.StridedDeviceAddressRegion{DeviceAddress: 0xdead0000}})
	assert.Equal(t, vulkan.ValidationErrorReported, s)
	assert.Empty(t, f.drv.Calls("vkCmdTraceRaysKHR"))
}

func TestInstanceDataWarnsWithOwningBuffer(t *testing.T) {
	f := newFixture(t, nulldriver.DefaultConfig(), config.Settings{
		CompatibilityMode:            true,
		OverrideCreateDeviceFeatures: true,
	})
	f.boot(api.DeviceCreateInfo{Next: api.NewChain(&api.AccelerationStructureFeatures{
		AccelerationStructure:              true,
		AccelerationStructureCaptureReplay: true,
	})})
	base := f.addressed()
	rec := f.recording()

	f.run(&vulkan.VkCmdBuildAccelerationStructures{CommandBuffer: cmdBuffer,
		Infos: []api.AccelerationStructureBuildGeometryInfo{{
			Geometries: []api.AccelerationStructureGeometry{{
				Type:         api.GeometryTypeInstances,
				InstanceData: 0xa200,
			}},
		}}})
	builds := f.drv.Calls("vkCmdBuildAccelerationStructuresKHR")
	require.Len(t, builds, 1)
	info := builds[0].Args[1].([]api.AccelerationStructureBuildGeometryInfo)[0]
	assert.Equal(t, base+0x200, info.Geometries[0].InstanceData)

	require.Equal(t, 1, rec.Count(log.Warning))
	for _, m := range rec.Messages {
		if m.Severity == log.Warning {
			assert.Contains(t, m.Text, "buffer 0x30 at offset 0x200")
		}
	}
}

func TestVirtualSwapchainPresent(t *testing.T) {
	f := newFixture(t, nulldriver.DefaultConfig(), config.Settings{EnableVirtualSwapchain: true})
	f.boot(api.DeviceCreateInfo{})
	sc := f.present()
	f.run(&vulkan.VkCreateSemaphore{Device: device, Semaphore: semaphore})

	// The application renders to virtual images, never the presentable ones.
	presentable, _ := f.drv.GetSwapchainImages(0, sc)
	for i, img := range capturedImages {
		got, ok := handles.Remap(f.r.Handles(), img)
		require.True(t, ok)
		assert.NotContains(t, presentable, got)
		vi, ok := f.r.Virtual().Image(sc, uint32(i))
		require.True(t, ok)
		assert.Equal(t, vi.Image, got)
	}

	// Frames N and N+2 both blit from virtual image 0.
	for frame := 0; frame < 3; frame++ {
		index := uint32(frame % 2)
		f.run(
			&vulkan.VkAcquireNextImage{Device: device, Swapchain: swapchain, Timeout: api.Infinite, ImageIndex: index},
			&vulkan.VkQueueSubmit{Queue: queue},
			&vulkan.VkQueuePresent{Queue: queue, Info: api.PresentInfo{
				WaitSemaphores: []api.VkSemaphore{semaphore},
				Swapchains:     []api.VkSwapchainKHR{swapchain},
				ImageIndices:   []uint32{index},
			}},
		)
		vi, ok := f.r.Virtual().Image(sc, index)
		require.True(t, ok)
		presents := f.drv.Calls("vkQueuePresentKHR")
		require.Len(t, presents, frame+1)
		assert.Equal(t, []api.VkSemaphore{vi.Semaphore}, presents[frame].Args[1])
		assert.Equal(t, []uint32{index}, presents[frame].Args[3])
	}
	assert.Len(t, f.drv.Calls("vkCmdCopyImage"), 3)
	assert.Equal(t, 0, f.drv.ValidationErrors())

	f.run(&vulkan.VkDestroySwapchain{Device: device, Swapchain: swapchain})
	assert.False(t, f.r.Virtual().Registered(sc))
}

func TestDestroyDeviceReleasesVirtualSwapchain(t *testing.T) {
	f := newFixture(t, nulldriver.DefaultConfig(), config.Settings{EnableVirtualSwapchain: true})
	f.boot(api.DeviceCreateInfo{})
	sc := f.present()
	owned := map[api.HandleType][]uint64{}
	for i := range capturedImages {
		vi, ok := f.r.Virtual().Image(sc, uint32(i))
		require.True(t, ok)
		owned[api.TypeImage] = append(owned[api.TypeImage], uint64(vi.Image))
		owned[api.TypeDeviceMemory] = append(owned[api.TypeDeviceMemory], uint64(vi.Memory))
		owned[api.TypeFence] = append(owned[api.TypeFence], uint64(vi.Fence))
		owned[api.TypeSemaphore] = append(owned[api.TypeSemaphore], uint64(vi.Semaphore))
	}

	f.run(&vulkan.VkDestroyDevice{Device: device})
	assert.False(t, f.r.Virtual().Registered(sc))
	assert.False(t, f.drv.Owns(api.TypeSwapchainKHR, uint64(sc)))
	for ty, hs := range owned {
		for _, h := range hs {
			assert.False(t, f.drv.Owns(ty, h), "%v 0x%x", ty, h)
		}
	}
	_, ok := handles.Remap(f.r.Handles(), swapchain)
	assert.False(t, ok)
	_, ok = handles.Remap(f.r.Handles(), capturedImages[0])
	assert.False(t, ok)
	assert.Equal(t, 0, f.r.Trackers().Len())
}

func TestForceSyncImageIndex(t *testing.T) {
	cfg := nulldriver.DefaultConfig()
	cfg.AcquireOrder = []uint32{1, 0}
	f := newFixture(t, cfg, config.Settings{ForceSyncImgIdx: true})
	f.boot(api.DeviceCreateInfo{})
	sc := f.present()
	f.run(
		&vulkan.VkCreateSemaphore{Device: device, Semaphore: semaphore},
		&vulkan.VkAcquireNextImage{Device: device, Swapchain: swapchain, Timeout: api.Infinite,
			Semaphore: semaphore, ImageIndex: 0},
	)

	assert.Len(t, f.drv.Calls("vkAcquireNextImageKHR"), 2)
	// The mismatching image is handed back.
	presents := f.drv.Calls("vkQueuePresentKHR")
	require.Len(t, presents, 1)
	assert.Equal(t, []uint32{1}, presents[0].Args[3])
	// The application's semaphore is signaled by an empty submit.
	submits := f.drv.Calls("vkQueueSubmit")
	require.Len(t, submits, 1)
	live, _ := handles.Remap(f.r.Handles(), semaphore)
	assert.Equal(t, []api.VkSemaphore{live}, submits[0].Args[1].([]api.SubmitInfo)[0].SignalSemaphores)

	assert.Equal(t, uint32(0), f.r.Trackers().Get(sc).LiveIndex(0))
	assert.Equal(t, 0, f.drv.ValidationErrors())
}

func TestAcquireCorrelatesIndices(t *testing.T) {
	cfg := nulldriver.DefaultConfig()
	cfg.AcquireOrder = []uint32{1}
	f := newFixture(t, cfg, config.Settings{})
	f.boot(api.DeviceCreateInfo{})
	sc := f.present()
	f.run(
		&vulkan.VkAcquireNextImage{Device: device, Swapchain: swapchain, ImageIndex: 0},
		&vulkan.VkQueuePresent{Queue: queue, Info: api.PresentInfo{
			Swapchains:   []api.VkSwapchainKHR{swapchain},
			ImageIndices: []uint32{0},
		}},
	)
	assert.Equal(t, uint32(1), f.r.Trackers().Get(sc).LiveIndex(0))
	presents := f.drv.Calls("vkQueuePresentKHR")
	require.Len(t, presents, 1)
	assert.Equal(t, []uint32{1}, presents[0].Args[3])
}

func TestTrackerHoldsLiveImages(t *testing.T) {
	f := newFixture(t, nulldriver.DefaultConfig(), config.Settings{})
	f.boot(api.DeviceCreateInfo{})
	sc := f.present()
	tracker := f.r.Trackers().Get(sc)
	for i, img := range capturedImages {
		liveImg, ok := handles.Remap(f.r.Handles(), img)
		require.True(t, ok)
		require.NotEqual(t, img, liveImg)
		index, ok := tracker.Index(liveImg)
		assert.True(t, ok)
		assert.Equal(t, uint32(i), index)
		_, ok = tracker.Index(img)
		assert.False(t, ok)
	}
}

func TestSwapchainsCoalesceOnOneWindow(t *testing.T) {
	f := newFixture(t, nulldriver.DefaultConfig(), config.Settings{})
	f.boot(api.DeviceCreateInfo{})
	sc := f.present()

	f.run(
		&vulkan.VkCreateSurface{Instance: instance, Surface: surface + 1},
		&vulkan.VkCreateSwapchain{Device: device, Swapchain: swapchain + 1, Info: api.SwapchainCreateInfo{
			Surface:       surface + 1,
			MinImageCount: 2,
		}},
	)
	assert.Len(t, f.drv.Calls("vkCreateSurfaceKHR"), 1)
	assert.Len(t, f.drv.Calls("vkCreateSwapchainKHR"), 1)
	assert.Equal(t, sc, f.live(swapchain+1))
	assert.Equal(t, 1, f.r.Trackers().Get(sc).Depth())

	f.run(&vulkan.VkDestroySwapchain{Device: device, Swapchain: swapchain + 1})
	assert.Empty(t, f.drv.Calls("vkDestroySwapchainKHR"))
	assert.Equal(t, 0, f.r.Trackers().Get(sc).Depth())

	f.run(
		&vulkan.VkDestroySwapchain{Device: device, Swapchain: swapchain},
		&vulkan.VkDestroySurface{Instance: instance, Surface: surface + 1},
	)
	assert.Len(t, f.drv.Calls("vkDestroySwapchainKHR"), 1)
	assert.Empty(t, f.drv.Calls("vkDestroySurfaceKHR"))
	f.run(&vulkan.VkDestroySurface{Instance: instance, Surface: surface})
	assert.Len(t, f.drv.Calls("vkDestroySurfaceKHR"), 1)
}

func TestSwapchainImageCountClamped(t *testing.T) {
	f := newFixture(t, nulldriver.DefaultConfig(), config.Settings{})
	f.boot(api.DeviceCreateInfo{})
	f.run(
		&vulkan.VkCreateSurface{Instance: instance, Surface: surface},
		&vulkan.VkCreateSwapchain{Device: device, Swapchain: swapchain, Info: api.SwapchainCreateInfo{
			Surface:       surface,
			MinImageCount: 5,
		}},
	)
	calls := f.drv.Calls("vkCreateSwapchainKHR")
	require.Len(t, calls, 1)
	assert.Equal(t, uint32(3), calls[0].Args[1])
	assert.Equal(t, 0, f.drv.ValidationErrors())
}

func TestDeviceLossTerminates(t *testing.T) {
	f := newFixture(t, nulldriver.DefaultConfig(), config.Settings{})
	f.boot(api.DeviceCreateInfo{})
	var got error
	f.r.Terminate = func(ctx context.Context, err error) { got = err }
	f.recording()

	f.drv.LoseDevice()
	s := f.r.Replay(f.ctx, &vulkan.VkQueueWaitIdle{Queue: queue})
	assert.Equal(t, vulkan.Unrecoverable, s)
	assert.ErrorIs(t, got, vulkan.ErrUnrecoverableDeviceLoss)
}

func TestReturnValues(t *testing.T) {
	f := newFixture(t, nulldriver.DefaultConfig(), config.Settings{})
	f.boot(api.DeviceCreateInfo{})

	s := f.r.Replay(f.ctx, &vulkan.VkCreateFence{Device: device, Fence: 0xc0, Result: api.VK_ERROR_OUT_OF_HOST_MEMORY})
	assert.Equal(t, vulkan.BadReturnValueMismatch, s)
	assert.Equal(t, 1, f.r.Stats().Mismatches)

	// A fence that completed during capture is waited on forever, and the
	// null driver's timeout counts as the same outcome.
	s = f.r.Replay(f.ctx, &vulkan.VkWaitForFences{Device: device, Fences: []api.VkFence{0xc0}, WaitAll: true})
	assert.Equal(t, vulkan.Success, s)
	waits := f.drv.Calls("vkWaitForFences")
	require.Len(t, waits, 1)
	assert.Equal(t, api.Infinite, waits[0].Args[3])
}

func TestRunDecodesTrace(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := trace.NewWriter(buf, trace.Header{
		Devices: []trace.Device{{Handle: physical, Properties: nulldriver.DefaultDevice().Properties}},
	})
	require.NoError(t, err)
	require.NoError(t, w.Write("vkCreateInstance", &vulkan.VkCreateInstance{Instance: instance}))
	require.NoError(t, w.Write("vkFrobnicate", map[string]int{}))
	require.NoError(t, w.Write("vkEnumeratePhysicalDevices", &vulkan.VkEnumeratePhysicalDevices{
		Instance:        instance,
		PhysicalDevices: []api.VkPhysicalDevice{physical},
	}))
	require.NoError(t, w.Flush())

	rd, err := trace.NewReader(buf)
	require.NoError(t, err)
	f := newFixture(t, nulldriver.DefaultConfig(), config.Settings{CompatibilityMode: true})
	require.NoError(t, f.r.Run(f.ctx, rd))

	assert.Equal(t, 2, f.r.Stats().Calls)
	assert.Equal(t, 1, f.r.Stats().Skipped)
	_, ok := handles.Remap(f.r.Handles(), physical)
	assert.True(t, ok)
}

func TestDecodeUnknownCommand(t *testing.T) {
	_, err := vulkan.Decode(trace.Packet{Name: "vkFrobnicate"})
	assert.ErrorIs(t, err, vulkan.ErrUnknownCommand)
	assert.Contains(t, vulkan.Commands(), "vkQueuePresentKHR")
}
