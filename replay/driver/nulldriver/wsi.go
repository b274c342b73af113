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

package nulldriver

import "github.com/ARM-software/vktrace-arm-sub000/replay/api"

func (d *Driver) CreateSurface(instance api.VkInstance) (api.VkSurfaceKHR, api.VkResult) {
	d.check(api.TypeInstance, uint64(instance))
	h := api.VkSurfaceKHR(d.create(api.TypeSurfaceKHR, uint64(instance)))
	d.record("vkCreateSurfaceKHR", instance, h)
	return h, api.VK_SUCCESS
}

func (d *Driver) DestroySurface(instance api.VkInstance, surface api.VkSurfaceKHR) {
	d.record("vkDestroySurfaceKHR", instance, surface)
	d.destroy(api.TypeSurfaceKHR, uint64(surface))
}

func (d *Driver) GetPhysicalDeviceSurfaceSupport(pd api.VkPhysicalDevice, family uint32, surface api.VkSurfaceKHR) (bool, api.VkResult) {
	d.record("vkGetPhysicalDeviceSurfaceSupportKHR", pd, family, surface)
	d.check(api.TypeSurfaceKHR, uint64(surface))
	families := d.device(pd).QueueFamilies
	return int(family) < len(families) && families[family].QueueFlags&api.QueueGraphics != 0, api.VK_SUCCESS
}

func (d *Driver) GetPhysicalDeviceSurfaceCapabilities(pd api.VkPhysicalDevice, surface api.VkSurfaceKHR) (api.SurfaceCapabilities, api.VkResult) {
	d.record("vkGetPhysicalDeviceSurfaceCapabilitiesKHR", pd, surface)
	d.check(api.TypeSurfaceKHR, uint64(surface))
	return d.cfg.Surface, api.VK_SUCCESS
}

func (d *Driver) CreateSwapchain(device api.VkDevice, info *api.SwapchainCreateInfo) (api.VkSwapchainKHR, api.VkResult) {
	d.check(api.TypeSurfaceKHR, uint64(info.Surface))
	d.check(api.TypeSwapchainKHR, uint64(info.OldSwapchain))
	caps := d.cfg.Surface
	count := info.MinImageCount
	if count < caps.MinImageCount || (caps.MaxImageCount != 0 && count > caps.MaxImageCount) {
		d.validationErrors++
		count = max(caps.MinImageCount, 1)
	}
	h := api.VkSwapchainKHR(d.create(api.TypeSwapchainKHR, uint64(device)))
	sc := &swapchain{images: make([]api.VkImage, count)}
	for i := range sc.images {
		sc.images[i] = api.VkImage(d.create(api.TypeImage, uint64(h)))
	}
	d.swapchains[h] = sc
	d.record("vkCreateSwapchainKHR", device, info.MinImageCount, info.ImageUsage, h)
	return h, api.VK_SUCCESS
}

func (d *Driver) DestroySwapchain(device api.VkDevice, swapchain api.VkSwapchainKHR) {
	d.record("vkDestroySwapchainKHR", device, swapchain)
	if sc, ok := d.swapchains[swapchain]; ok {
		for _, img := range sc.images {
			delete(d.objects, uint64(img))
		}
		delete(d.swapchains, swapchain)
	}
	d.destroy(api.TypeSwapchainKHR, uint64(swapchain))
}

func (d *Driver) GetSwapchainImages(device api.VkDevice, swapchain api.VkSwapchainKHR) ([]api.VkImage, api.VkResult) {
	d.record("vkGetSwapchainImagesKHR", device, swapchain)
	sc, ok := d.swapchains[swapchain]
	if !ok {
		d.validationErrors++
		return nil, api.VK_ERROR_SURFACE_LOST_KHR
	}
	return append([]api.VkImage(nil), sc.images...), api.VK_SUCCESS
}

func (d *Driver) AcquireNextImage(device api.VkDevice, swapchain api.VkSwapchainKHR, timeout uint64, semaphore api.VkSemaphore, fence api.VkFence) (uint32, api.VkResult) {
	d.check(api.TypeSemaphore, uint64(semaphore))
	d.check(api.TypeFence, uint64(fence))
	sc, ok := d.swapchains[swapchain]
	if !ok {
		d.validationErrors++
		d.record("vkAcquireNextImageKHR", device, swapchain, semaphore, fence)
		return 0, api.VK_ERROR_OUT_OF_DATE_KHR
	}
	if d.lost {
		d.record("vkAcquireNextImageKHR", device, swapchain, semaphore, fence)
		return 0, api.VK_ERROR_DEVICE_LOST
	}
	var index uint32
	if order := d.cfg.AcquireOrder; len(order) > 0 {
		index = order[sc.acquire%len(order)] % uint32(len(sc.images))
	} else {
		index = uint32(sc.acquire % len(sc.images))
	}
	sc.acquire++
	if fence != 0 {
		d.signaled[uint64(fence)] = true
	}
	d.record("vkAcquireNextImageKHR", device, swapchain, semaphore, fence, index)
	return index, api.VK_SUCCESS
}

func (d *Driver) QueuePresent(queue api.VkQueue, info *api.PresentInfo) api.VkResult {
	d.record("vkQueuePresentKHR", queue, info.WaitSemaphores, info.Swapchains, info.ImageIndices)
	d.check(api.TypeQueue, uint64(queue))
	checkAll(d, info.WaitSemaphores)
	for i, h := range info.Swapchains {
		sc, ok := d.swapchains[h]
		if !ok || i >= len(info.ImageIndices) || int(info.ImageIndices[i]) >= len(sc.images) {
			d.validationErrors++
		}
	}
	return d.status()
}

func (d *Driver) CreateAccelerationStructure(device api.VkDevice, info *api.AccelerationStructureCreateInfo) (api.VkAccelerationStructureKHR, api.VkResult) {
	d.check(api.TypeBuffer, uint64(info.Buffer))
	h := api.VkAccelerationStructureKHR(d.create(api.TypeAccelerationStructureKHR, uint64(device)))
	d.sizes[uint64(h)] = info.Size
	switch {
	case info.DeviceAddress != 0:
		if info.CreateFlags&api.AccelerationStructureCreateDeviceAddressCaptureReplay == 0 {
			d.validationErrors++
		}
		d.addresses[uint64(h)] = info.DeviceAddress
	case d.addresses[uint64(info.Buffer)] != 0:
		d.addresses[uint64(h)] = d.addresses[uint64(info.Buffer)] + info.Offset
	default:
		d.addresses[uint64(h)] = d.allocAddress(info.Size)
	}
	d.record("vkCreateAccelerationStructureKHR", device, info.Buffer, info.Size, h)
	return h, api.VK_SUCCESS
}

func (d *Driver) DestroyAccelerationStructure(device api.VkDevice, as api.VkAccelerationStructureKHR) {
	d.record("vkDestroyAccelerationStructureKHR", device, as)
	d.destroy(api.TypeAccelerationStructureKHR, uint64(as))
}

func (d *Driver) GetAccelerationStructureDeviceAddress(device api.VkDevice, as api.VkAccelerationStructureKHR) uint64 {
	d.record("vkGetAccelerationStructureDeviceAddressKHR", device, as)
	d.check(api.TypeAccelerationStructureKHR, uint64(as))
	return d.addresses[uint64(as)]
}

func (d *Driver) CmdBuildAccelerationStructures(cb api.VkCommandBuffer, infos []api.AccelerationStructureBuildGeometryInfo, ranges [][]api.AccelerationStructureBuildRangeInfo) {
	d.cmd("vkCmdBuildAccelerationStructuresKHR", cb, infos)
	for _, i := range infos {
		d.check(api.TypeAccelerationStructureKHR, uint64(i.Src))
		d.check(api.TypeAccelerationStructureKHR, uint64(i.Dst))
	}
}

func (d *Driver) CmdCopyAccelerationStructure(cb api.VkCommandBuffer, info *api.CopyAccelerationStructureInfo) {
	d.cmd("vkCmdCopyAccelerationStructureKHR", cb, info.Src, info.Dst)
	d.check(api.TypeAccelerationStructureKHR, uint64(info.Src))
	d.check(api.TypeAccelerationStructureKHR, uint64(info.Dst))
}

func (d *Driver) CmdWriteAccelerationStructuresProperties(cb api.VkCommandBuffer, structures []api.VkAccelerationStructureKHR, queryType uint32, pool api.VkQueryPool, first uint32) {
	d.cmd("vkCmdWriteAccelerationStructuresPropertiesKHR", cb, structures, pool)
	checkAll(d, structures)
	d.check(api.TypeQueryPool, uint64(pool))
	values := d.queries[uint64(pool)]
	if values == nil {
		values = map[uint32]uint64{}
		d.queries[uint64(pool)] = values
	}
	for i, as := range structures {
		size := d.sizes[uint64(as)]
		if queryType == api.QueryTypeAccelerationStructureCompactedSize {
			size = size / 2
		}
		values[first+uint32(i)] = size
	}
}

func (d *Driver) CreateRayTracingPipelines(device api.VkDevice, cache api.VkPipelineCache, infos []api.RayTracingPipelineCreateInfo) ([]api.VkPipeline, api.VkResult) {
	d.check(api.TypePipelineCache, uint64(cache))
	out := make([]api.VkPipeline, len(infos))
	for i, info := range infos {
		d.checkStages(info.Stages)
		d.check(api.TypePipelineLayout, uint64(info.Layout))
		if n, ok := api.FindAs[*api.PipelineLibraryCreateInfo](info.Next); ok {
			checkAll(d, n.Libraries)
		}
		out[i] = api.VkPipeline(d.create(api.TypePipeline, uint64(device)))
	}
	d.record("vkCreateRayTracingPipelinesKHR", device, cache, out)
	return out, api.VK_SUCCESS
}

func (d *Driver) GetRayTracingCaptureReplayShaderGroupHandles(device api.VkDevice, pipeline api.VkPipeline, first, count uint32, size int) ([]byte, api.VkResult) {
	d.record("vkGetRayTracingCaptureReplayShaderGroupHandlesKHR", device, pipeline, first, count)
	d.check(api.TypePipeline, uint64(pipeline))
	return make([]byte, size), api.VK_SUCCESS
}

func (d *Driver) CmdTraceRays(cb api.VkCommandBuffer, raygen, miss, hit, callable api.StridedDeviceAddressRegion, width, height, depth uint32) {
	d.cmd("vkCmdTraceRaysKHR", cb, raygen.DeviceAddress, miss.DeviceAddress, hit.DeviceAddress, callable.DeviceAddress)
}
