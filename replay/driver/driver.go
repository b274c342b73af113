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

// Package driver declares the live Vulkan entry points the replayer issues
// translated calls to.
package driver

import "github.com/ARM-software/vktrace-arm-sub000/replay/api"

// Driver is the resolved entry-point table of a live Vulkan implementation.
// Every handle and address passed to it is a live value.
type Driver interface {
	Instance
	PhysicalDevice
	Device
	Resources
	Pipelines
	Sync
	Commands
	Recording
	WSI
	RayTracing

	// ValidationErrors returns the number of validation messages reported by
	// the layers below the driver so far.
	ValidationErrors() int
}

type Instance interface {
	CreateInstance(info *api.InstanceCreateInfo) (api.VkInstance, api.VkResult)
	DestroyInstance(instance api.VkInstance)
	EnumeratePhysicalDevices(instance api.VkInstance) ([]api.VkPhysicalDevice, api.VkResult)
}

type PhysicalDevice interface {
	GetPhysicalDeviceProperties(pd api.VkPhysicalDevice) api.PhysicalDeviceProperties
	GetPhysicalDeviceQueueFamilyProperties(pd api.VkPhysicalDevice) []api.QueueFamilyProperties
	GetPhysicalDeviceMemoryProperties(pd api.VkPhysicalDevice) api.MemoryProperties
	GetPhysicalDeviceFeatures(pd api.VkPhysicalDevice) api.PhysicalDeviceFeatures
	// GetPhysicalDeviceFeatures2 fills in every feature structure of chain
	// known to the driver.
	GetPhysicalDeviceFeatures2(pd api.VkPhysicalDevice, chain api.Chain) api.PhysicalDeviceFeatures
	EnumerateDeviceExtensionProperties(pd api.VkPhysicalDevice) ([]string, api.VkResult)
}

type Device interface {
	CreateDevice(pd api.VkPhysicalDevice, info *api.DeviceCreateInfo) (api.VkDevice, api.VkResult)
	DestroyDevice(device api.VkDevice)
	DeviceWaitIdle(device api.VkDevice) api.VkResult
	GetDeviceQueue(device api.VkDevice, family, index uint32) api.VkQueue
	QueueWaitIdle(queue api.VkQueue) api.VkResult
	QueueSubmit(queue api.VkQueue, submits []api.SubmitInfo, fence api.VkFence) api.VkResult
}

type Resources interface {
	AllocateMemory(device api.VkDevice, info *api.MemoryAllocateInfo) (api.VkDeviceMemory, api.VkResult)
	FreeMemory(device api.VkDevice, memory api.VkDeviceMemory)
	MapMemory(device api.VkDevice, memory api.VkDeviceMemory, offset, size uint64) api.VkResult
	UnmapMemory(device api.VkDevice, memory api.VkDeviceMemory)
	FlushMappedMemoryRanges(device api.VkDevice, ranges []api.MappedMemoryRange) api.VkResult
	GetDeviceMemoryOpaqueCaptureAddress(device api.VkDevice, memory api.VkDeviceMemory) uint64

	CreateBuffer(device api.VkDevice, info *api.BufferCreateInfo) (api.VkBuffer, api.VkResult)
	DestroyBuffer(device api.VkDevice, buffer api.VkBuffer)
	GetBufferMemoryRequirements(device api.VkDevice, buffer api.VkBuffer) api.MemoryRequirements
	BindBufferMemory(device api.VkDevice, buffer api.VkBuffer, memory api.VkDeviceMemory, offset uint64) api.VkResult
	BindBufferMemory2(device api.VkDevice, infos []api.BindBufferMemoryInfo) api.VkResult
	GetBufferDeviceAddress(device api.VkDevice, buffer api.VkBuffer) uint64
	GetBufferOpaqueCaptureAddress(device api.VkDevice, buffer api.VkBuffer) uint64

	CreateImage(device api.VkDevice, info *api.ImageCreateInfo) (api.VkImage, api.VkResult)
	DestroyImage(device api.VkDevice, image api.VkImage)
	GetImageMemoryRequirements(device api.VkDevice, image api.VkImage) api.MemoryRequirements
	BindImageMemory(device api.VkDevice, image api.VkImage, memory api.VkDeviceMemory, offset uint64) api.VkResult
	BindImageMemory2(device api.VkDevice, infos []api.BindImageMemoryInfo) api.VkResult

	CreateBufferView(device api.VkDevice, info *api.BufferViewCreateInfo) (api.VkBufferView, api.VkResult)
	DestroyBufferView(device api.VkDevice, view api.VkBufferView)
	CreateImageView(device api.VkDevice, info *api.ImageViewCreateInfo) (api.VkImageView, api.VkResult)
	DestroyImageView(device api.VkDevice, view api.VkImageView)
	CreateSampler(device api.VkDevice, info *api.SamplerCreateInfo) (api.VkSampler, api.VkResult)
	DestroySampler(device api.VkDevice, sampler api.VkSampler)
	CreateSamplerYcbcrConversion(device api.VkDevice, info *api.SamplerYcbcrConversionCreateInfo) (api.VkSamplerYcbcrConversion, api.VkResult)
	DestroySamplerYcbcrConversion(device api.VkDevice, conversion api.VkSamplerYcbcrConversion)

	CreateDescriptorSetLayout(device api.VkDevice, info *api.DescriptorSetLayoutCreateInfo) (api.VkDescriptorSetLayout, api.VkResult)
	DestroyDescriptorSetLayout(device api.VkDevice, layout api.VkDescriptorSetLayout)
	CreateDescriptorPool(device api.VkDevice, info *api.DescriptorPoolCreateInfo) (api.VkDescriptorPool, api.VkResult)
	DestroyDescriptorPool(device api.VkDevice, pool api.VkDescriptorPool)
	ResetDescriptorPool(device api.VkDevice, pool api.VkDescriptorPool) api.VkResult
	AllocateDescriptorSets(device api.VkDevice, info *api.DescriptorSetAllocateInfo) ([]api.VkDescriptorSet, api.VkResult)
	FreeDescriptorSets(device api.VkDevice, pool api.VkDescriptorPool, sets []api.VkDescriptorSet) api.VkResult
	UpdateDescriptorSets(device api.VkDevice, writes []api.WriteDescriptorSet, copies []api.CopyDescriptorSet)
}

type Pipelines interface {
	CreateShaderModule(device api.VkDevice, info *api.ShaderModuleCreateInfo) (api.VkShaderModule, api.VkResult)
	DestroyShaderModule(device api.VkDevice, module api.VkShaderModule)
	CreatePipelineCache(device api.VkDevice, info *api.PipelineCacheCreateInfo) (api.VkPipelineCache, api.VkResult)
	DestroyPipelineCache(device api.VkDevice, cache api.VkPipelineCache)
	CreatePipelineLayout(device api.VkDevice, info *api.PipelineLayoutCreateInfo) (api.VkPipelineLayout, api.VkResult)
	DestroyPipelineLayout(device api.VkDevice, layout api.VkPipelineLayout)
	CreateRenderPass(device api.VkDevice, info *api.RenderPassCreateInfo) (api.VkRenderPass, api.VkResult)
	DestroyRenderPass(device api.VkDevice, pass api.VkRenderPass)
	CreateFramebuffer(device api.VkDevice, info *api.FramebufferCreateInfo) (api.VkFramebuffer, api.VkResult)
	DestroyFramebuffer(device api.VkDevice, fb api.VkFramebuffer)
	CreateGraphicsPipelines(device api.VkDevice, cache api.VkPipelineCache, infos []api.GraphicsPipelineCreateInfo) ([]api.VkPipeline, api.VkResult)
	CreateComputePipelines(device api.VkDevice, cache api.VkPipelineCache, infos []api.ComputePipelineCreateInfo) ([]api.VkPipeline, api.VkResult)
	DestroyPipeline(device api.VkDevice, pipeline api.VkPipeline)
}

type Sync interface {
	CreateFence(device api.VkDevice, info *api.FenceCreateInfo) (api.VkFence, api.VkResult)
	DestroyFence(device api.VkDevice, fence api.VkFence)
	ResetFences(device api.VkDevice, fences []api.VkFence) api.VkResult
	GetFenceStatus(device api.VkDevice, fence api.VkFence) api.VkResult
	WaitForFences(device api.VkDevice, fences []api.VkFence, waitAll bool, timeout uint64) api.VkResult
	CreateSemaphore(device api.VkDevice, info *api.SemaphoreCreateInfo) (api.VkSemaphore, api.VkResult)
	DestroySemaphore(device api.VkDevice, semaphore api.VkSemaphore)
	CreateEvent(device api.VkDevice, info *api.EventCreateInfo) (api.VkEvent, api.VkResult)
	DestroyEvent(device api.VkDevice, event api.VkEvent)
	GetEventStatus(device api.VkDevice, event api.VkEvent) api.VkResult
	SetEvent(device api.VkDevice, event api.VkEvent) api.VkResult
	ResetEvent(device api.VkDevice, event api.VkEvent) api.VkResult
	CreateQueryPool(device api.VkDevice, info *api.QueryPoolCreateInfo) (api.VkQueryPool, api.VkResult)
	DestroyQueryPool(device api.VkDevice, pool api.VkQueryPool)
	GetQueryPoolResults(device api.VkDevice, pool api.VkQueryPool, first, count uint32, stride uint64, flags api.QueryResultFlags) ([]byte, api.VkResult)
}

type Commands interface {
	CreateCommandPool(device api.VkDevice, info *api.CommandPoolCreateInfo) (api.VkCommandPool, api.VkResult)
	DestroyCommandPool(device api.VkDevice, pool api.VkCommandPool)
	ResetCommandPool(device api.VkDevice, pool api.VkCommandPool, flags uint32) api.VkResult
	AllocateCommandBuffers(device api.VkDevice, info *api.CommandBufferAllocateInfo) ([]api.VkCommandBuffer, api.VkResult)
	FreeCommandBuffers(device api.VkDevice, pool api.VkCommandPool, cbs []api.VkCommandBuffer)
	BeginCommandBuffer(cb api.VkCommandBuffer, info *api.CommandBufferBeginInfo) api.VkResult
	EndCommandBuffer(cb api.VkCommandBuffer) api.VkResult
	ResetCommandBuffer(cb api.VkCommandBuffer, flags uint32) api.VkResult
}

// Recording holds the vkCmd* entry points.
type Recording interface {
	CmdBeginRenderPass(cb api.VkCommandBuffer, info *api.RenderPassBeginInfo, contents uint32)
	CmdNextSubpass(cb api.VkCommandBuffer, contents uint32)
	CmdEndRenderPass(cb api.VkCommandBuffer)
	CmdBindPipeline(cb api.VkCommandBuffer, bindPoint uint32, pipeline api.VkPipeline)
	CmdBindDescriptorSets(cb api.VkCommandBuffer, bindPoint uint32, layout api.VkPipelineLayout, first uint32, sets []api.VkDescriptorSet, dynamicOffsets []uint32)
	CmdBindVertexBuffers(cb api.VkCommandBuffer, first uint32, buffers []api.VkBuffer, offsets []uint64)
	CmdBindIndexBuffer(cb api.VkCommandBuffer, buffer api.VkBuffer, offset uint64, indexType uint32)
	CmdPushConstants(cb api.VkCommandBuffer, layout api.VkPipelineLayout, stages, offset uint32, data []byte)
	CmdDraw(cb api.VkCommandBuffer, vertexCount, instanceCount, firstVertex, firstInstance uint32)
	CmdDrawIndexed(cb api.VkCommandBuffer, indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32)
	CmdDrawIndirect(cb api.VkCommandBuffer, buffer api.VkBuffer, offset uint64, drawCount, stride uint32)
	CmdDispatch(cb api.VkCommandBuffer, x, y, z uint32)
	CmdDispatchIndirect(cb api.VkCommandBuffer, buffer api.VkBuffer, offset uint64)
	CmdCopyBuffer(cb api.VkCommandBuffer, src, dst api.VkBuffer, regions []api.BufferCopy)
	CmdCopyImage(cb api.VkCommandBuffer, src api.VkImage, srcLayout api.ImageLayout, dst api.VkImage, dstLayout api.ImageLayout, regions []api.ImageCopy)
	CmdCopyBufferToImage(cb api.VkCommandBuffer, src api.VkBuffer, dst api.VkImage, dstLayout api.ImageLayout, regions []api.BufferImageCopy)
	CmdCopyImageToBuffer(cb api.VkCommandBuffer, src api.VkImage, srcLayout api.ImageLayout, dst api.VkBuffer, regions []api.BufferImageCopy)
	CmdUpdateBuffer(cb api.VkCommandBuffer, dst api.VkBuffer, offset uint64, data []byte)
	CmdFillBuffer(cb api.VkCommandBuffer, dst api.VkBuffer, offset, size uint64, data uint32)
	CmdClearColorImage(cb api.VkCommandBuffer, image api.VkImage, layout api.ImageLayout, color [4]uint32, ranges []api.ImageSubresourceRange)
	CmdPipelineBarrier(cb api.VkCommandBuffer, srcStages, dstStages api.PipelineStageFlags, dependencyFlags uint32,
		memory []api.MemoryBarrier, buffers []api.BufferMemoryBarrier, images []api.ImageMemoryBarrier)
	CmdSetEvent(cb api.VkCommandBuffer, event api.VkEvent, stages api.PipelineStageFlags)
	CmdResetEvent(cb api.VkCommandBuffer, event api.VkEvent, stages api.PipelineStageFlags)
	CmdWaitEvents(cb api.VkCommandBuffer, events []api.VkEvent, srcStages, dstStages api.PipelineStageFlags,
		memory []api.MemoryBarrier, buffers []api.BufferMemoryBarrier, images []api.ImageMemoryBarrier)
	CmdResetQueryPool(cb api.VkCommandBuffer, pool api.VkQueryPool, first, count uint32)
	CmdBeginQuery(cb api.VkCommandBuffer, pool api.VkQueryPool, query, flags uint32)
	CmdEndQuery(cb api.VkCommandBuffer, pool api.VkQueryPool, query uint32)
	CmdWriteTimestamp(cb api.VkCommandBuffer, stage api.PipelineStageFlags, pool api.VkQueryPool, query uint32)
	CmdExecuteCommands(cb api.VkCommandBuffer, cbs []api.VkCommandBuffer)
}

// WSI holds the surface and swapchain entry points.
type WSI interface {
	// CreateSurface creates a presentable surface for the instance. The
	// window system behind it is chosen by the driver.
	CreateSurface(instance api.VkInstance) (api.VkSurfaceKHR, api.VkResult)
	DestroySurface(instance api.VkInstance, surface api.VkSurfaceKHR)
	GetPhysicalDeviceSurfaceSupport(pd api.VkPhysicalDevice, family uint32, surface api.VkSurfaceKHR) (bool, api.VkResult)
	GetPhysicalDeviceSurfaceCapabilities(pd api.VkPhysicalDevice, surface api.VkSurfaceKHR) (api.SurfaceCapabilities, api.VkResult)
	CreateSwapchain(device api.VkDevice, info *api.SwapchainCreateInfo) (api.VkSwapchainKHR, api.VkResult)
	DestroySwapchain(device api.VkDevice, swapchain api.VkSwapchainKHR)
	GetSwapchainImages(device api.VkDevice, swapchain api.VkSwapchainKHR) ([]api.VkImage, api.VkResult)
	AcquireNextImage(device api.VkDevice, swapchain api.VkSwapchainKHR, timeout uint64, semaphore api.VkSemaphore, fence api.VkFence) (uint32, api.VkResult)
	QueuePresent(queue api.VkQueue, info *api.PresentInfo) api.VkResult
}

// RayTracing holds the acceleration structure and ray tracing pipeline entry
// points.
type RayTracing interface {
	CreateAccelerationStructure(device api.VkDevice, info *api.AccelerationStructureCreateInfo) (api.VkAccelerationStructureKHR, api.VkResult)
	DestroyAccelerationStructure(device api.VkDevice, as api.VkAccelerationStructureKHR)
	GetAccelerationStructureDeviceAddress(device api.VkDevice, as api.VkAccelerationStructureKHR) uint64
	CmdBuildAccelerationStructures(cb api.VkCommandBuffer, infos []api.AccelerationStructureBuildGeometryInfo, ranges [][]api.AccelerationStructureBuildRangeInfo)
	CmdCopyAccelerationStructure(cb api.VkCommandBuffer, info *api.CopyAccelerationStructureInfo)
	CmdWriteAccelerationStructuresProperties(cb api.VkCommandBuffer, structures []api.VkAccelerationStructureKHR, queryType uint32, pool api.VkQueryPool, first uint32)
	CreateRayTracingPipelines(device api.VkDevice, cache api.VkPipelineCache, infos []api.RayTracingPipelineCreateInfo) ([]api.VkPipeline, api.VkResult)
	GetRayTracingCaptureReplayShaderGroupHandles(device api.VkDevice, pipeline api.VkPipeline, first, count uint32, size int) ([]byte, api.VkResult)
	CmdTraceRays(cb api.VkCommandBuffer, raygen, miss, hit, callable api.StridedDeviceAddressRegion, width, height, depth uint32)
}
