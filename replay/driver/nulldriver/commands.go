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

import (
	"encoding/binary"

	"github.com/ARM-software/vktrace-arm-sub000/replay/api"
)

func (d *Driver) CreateShaderModule(device api.VkDevice, info *api.ShaderModuleCreateInfo) (api.VkShaderModule, api.VkResult) {
	h := api.VkShaderModule(d.create(api.TypeShaderModule, uint64(device)))
	d.record("vkCreateShaderModule", device, len(info.Code), h)
	return h, api.VK_SUCCESS
}

func (d *Driver) DestroyShaderModule(device api.VkDevice, module api.VkShaderModule) {
	d.record("vkDestroyShaderModule", device, module)
	d.destroy(api.TypeShaderModule, uint64(module))
}

func (d *Driver) CreatePipelineCache(device api.VkDevice, info *api.PipelineCacheCreateInfo) (api.VkPipelineCache, api.VkResult) {
	h := api.VkPipelineCache(d.create(api.TypePipelineCache, uint64(device)))
	d.record("vkCreatePipelineCache", device, len(info.InitialData), h)
	return h, api.VK_SUCCESS
}

func (d *Driver) DestroyPipelineCache(device api.VkDevice, cache api.VkPipelineCache) {
	d.record("vkDestroyPipelineCache", device, cache)
	d.destroy(api.TypePipelineCache, uint64(cache))
}

func (d *Driver) CreatePipelineLayout(device api.VkDevice, info *api.PipelineLayoutCreateInfo) (api.VkPipelineLayout, api.VkResult) {
	checkAll(d, info.SetLayouts)
	h := api.VkPipelineLayout(d.create(api.TypePipelineLayout, uint64(device)))
	d.record("vkCreatePipelineLayout", device, h)
	return h, api.VK_SUCCESS
}

func (d *Driver) DestroyPipelineLayout(device api.VkDevice, layout api.VkPipelineLayout) {
	d.record("vkDestroyPipelineLayout", device, layout)
	d.destroy(api.TypePipelineLayout, uint64(layout))
}

func (d *Driver) CreateRenderPass(device api.VkDevice, info *api.RenderPassCreateInfo) (api.VkRenderPass, api.VkResult) {
	h := api.VkRenderPass(d.create(api.TypeRenderPass, uint64(device)))
	d.record("vkCreateRenderPass", device, len(info.Attachments), h)
	return h, api.VK_SUCCESS
}

func (d *Driver) DestroyRenderPass(device api.VkDevice, pass api.VkRenderPass) {
	d.record("vkDestroyRenderPass", device, pass)
	d.destroy(api.TypeRenderPass, uint64(pass))
}

func (d *Driver) CreateFramebuffer(device api.VkDevice, info *api.FramebufferCreateInfo) (api.VkFramebuffer, api.VkResult) {
	d.check(api.TypeRenderPass, uint64(info.RenderPass))
	checkAll(d, info.Attachments)
	h := api.VkFramebuffer(d.create(api.TypeFramebuffer, uint64(device)))
	d.record("vkCreateFramebuffer", device, info.RenderPass, info.Attachments, h)
	return h, api.VK_SUCCESS
}

func (d *Driver) DestroyFramebuffer(device api.VkDevice, fb api.VkFramebuffer) {
	d.record("vkDestroyFramebuffer", device, fb)
	d.destroy(api.TypeFramebuffer, uint64(fb))
}

func (d *Driver) checkStages(stages []api.PipelineShaderStageCreateInfo) {
	for _, s := range stages {
		d.check(api.TypeShaderModule, uint64(s.Module))
	}
}

func (d *Driver) CreateGraphicsPipelines(device api.VkDevice, cache api.VkPipelineCache, infos []api.GraphicsPipelineCreateInfo) ([]api.VkPipeline, api.VkResult) {
	d.check(api.TypePipelineCache, uint64(cache))
	out := make([]api.VkPipeline, len(infos))
	for i, info := range infos {
		d.checkStages(info.Stages)
		d.check(api.TypePipelineLayout, uint64(info.Layout))
		d.check(api.TypeRenderPass, uint64(info.RenderPass))
		d.check(api.TypePipeline, uint64(info.BasePipelineHandle))
		out[i] = api.VkPipeline(d.create(api.TypePipeline, uint64(device)))
	}
	d.record("vkCreateGraphicsPipelines", device, cache, out)
	return out, api.VK_SUCCESS
}

func (d *Driver) CreateComputePipelines(device api.VkDevice, cache api.VkPipelineCache, infos []api.ComputePipelineCreateInfo) ([]api.VkPipeline, api.VkResult) {
	d.check(api.TypePipelineCache, uint64(cache))
	out := make([]api.VkPipeline, len(infos))
	for i, info := range infos {
		d.check(api.TypeShaderModule, uint64(info.Stage.Module))
		d.check(api.TypePipelineLayout, uint64(info.Layout))
		d.check(api.TypePipeline, uint64(info.BasePipelineHandle))
		out[i] = api.VkPipeline(d.create(api.TypePipeline, uint64(device)))
	}
	d.record("vkCreateComputePipelines", device, cache, out)
	return out, api.VK_SUCCESS
}

func (d *Driver) DestroyPipeline(device api.VkDevice, pipeline api.VkPipeline) {
	d.record("vkDestroyPipeline", device, pipeline)
	d.destroy(api.TypePipeline, uint64(pipeline))
}

func (d *Driver) CreateFence(device api.VkDevice, info *api.FenceCreateInfo) (api.VkFence, api.VkResult) {
	h := api.VkFence(d.create(api.TypeFence, uint64(device)))
	d.signaled[uint64(h)] = info.Flags&api.FenceCreateSignaled != 0
	d.record("vkCreateFence", device, h)
	return h, api.VK_SUCCESS
}

func (d *Driver) DestroyFence(device api.VkDevice, fence api.VkFence) {
	d.record("vkDestroyFence", device, fence)
	d.destroy(api.TypeFence, uint64(fence))
}

func (d *Driver) ResetFences(device api.VkDevice, fences []api.VkFence) api.VkResult {
	d.record("vkResetFences", device, fences)
	for _, f := range fences {
		if d.check(api.TypeFence, uint64(f)) {
			d.signaled[uint64(f)] = false
		}
	}
	return api.VK_SUCCESS
}

func (d *Driver) GetFenceStatus(device api.VkDevice, fence api.VkFence) api.VkResult {
	d.record("vkGetFenceStatus", device, fence)
	d.check(api.TypeFence, uint64(fence))
	switch {
	case d.lost:
		return api.VK_ERROR_DEVICE_LOST
	case d.signaled[uint64(fence)]:
		return api.VK_SUCCESS
	default:
		return api.VK_NOT_READY
	}
}

// WaitForFences never blocks: unsignaled fences report VK_TIMEOUT whatever
// the timeout.
func (d *Driver) WaitForFences(device api.VkDevice, fences []api.VkFence, waitAll bool, timeout uint64) api.VkResult {
	d.record("vkWaitForFences", device, fences, waitAll, timeout)
	if d.lost {
		return api.VK_ERROR_DEVICE_LOST
	}
	done := 0
	for _, f := range fences {
		d.check(api.TypeFence, uint64(f))
		if d.signaled[uint64(f)] {
			done++
		}
	}
	if done == len(fences) || (!waitAll && done > 0) {
		return api.VK_SUCCESS
	}
	return api.VK_TIMEOUT
}

func (d *Driver) CreateSemaphore(device api.VkDevice, info *api.SemaphoreCreateInfo) (api.VkSemaphore, api.VkResult) {
	h := api.VkSemaphore(d.create(api.TypeSemaphore, uint64(device)))
	d.record("vkCreateSemaphore", device, h)
	return h, api.VK_SUCCESS
}

func (d *Driver) DestroySemaphore(device api.VkDevice, semaphore api.VkSemaphore) {
	d.record("vkDestroySemaphore", device, semaphore)
	d.destroy(api.TypeSemaphore, uint64(semaphore))
}

func (d *Driver) CreateEvent(device api.VkDevice, info *api.EventCreateInfo) (api.VkEvent, api.VkResult) {
	h := api.VkEvent(d.create(api.TypeEvent, uint64(device)))
	d.record("vkCreateEvent", device, h)
	return h, api.VK_SUCCESS
}

func (d *Driver) DestroyEvent(device api.VkDevice, event api.VkEvent) {
	d.record("vkDestroyEvent", device, event)
	d.destroy(api.TypeEvent, uint64(event))
}

func (d *Driver) GetEventStatus(device api.VkDevice, event api.VkEvent) api.VkResult {
	d.record("vkGetEventStatus", device, event)
	d.check(api.TypeEvent, uint64(event))
	if d.signaled[uint64(event)] {
		return api.VK_EVENT_SET
	}
	return api.VK_EVENT_RESET
}

func (d *Driver) SetEvent(device api.VkDevice, event api.VkEvent) api.VkResult {
	d.record("vkSetEvent", device, event)
	if d.check(api.TypeEvent, uint64(event)) {
		d.signaled[uint64(event)] = true
	}
	return api.VK_SUCCESS
}

func (d *Driver) ResetEvent(device api.VkDevice, event api.VkEvent) api.VkResult {
	d.record("vkResetEvent", device, event)
	if d.check(api.TypeEvent, uint64(event)) {
		d.signaled[uint64(event)] = false
	}
	return api.VK_SUCCESS
}

func (d *Driver) CreateQueryPool(device api.VkDevice, info *api.QueryPoolCreateInfo) (api.VkQueryPool, api.VkResult) {
	h := api.VkQueryPool(d.create(api.TypeQueryPool, uint64(device)))
	d.record("vkCreateQueryPool", device, info.QueryCount, h)
	return h, api.VK_SUCCESS
}

func (d *Driver) DestroyQueryPool(device api.VkDevice, pool api.VkQueryPool) {
	d.record("vkDestroyQueryPool", device, pool)
	d.destroy(api.TypeQueryPool, uint64(pool))
	delete(d.queries, uint64(pool))
}

func (d *Driver) GetQueryPoolResults(device api.VkDevice, pool api.VkQueryPool, first, count uint32, stride uint64, flags api.QueryResultFlags) ([]byte, api.VkResult) {
	d.record("vkGetQueryPoolResults", device, pool, first, count, flags)
	d.check(api.TypeQueryPool, uint64(pool))
	out := make([]byte, uint64(count)*stride)
	for i := uint32(0); i < count; i++ {
		v := d.queries[uint64(pool)][first+i]
		at := out[uint64(i)*stride:]
		switch {
		case flags&api.QueryResult64 != 0 && len(at) >= 8:
			binary.LittleEndian.PutUint64(at, v)
		case len(at) >= 4:
			binary.LittleEndian.PutUint32(at, uint32(v))
		}
	}
	return out, d.status()
}

func (d *Driver) CreateCommandPool(device api.VkDevice, info *api.CommandPoolCreateInfo) (api.VkCommandPool, api.VkResult) {
	if int(info.QueueFamilyIndex) >= len(d.deviceOf(device).QueueFamilies) {
		d.validationErrors++
	}
	h := api.VkCommandPool(d.create(api.TypeCommandPool, uint64(device)))
	d.record("vkCreateCommandPool", device, info.QueueFamilyIndex, h)
	return h, api.VK_SUCCESS
}

func (d *Driver) DestroyCommandPool(device api.VkDevice, pool api.VkCommandPool) {
	d.record("vkDestroyCommandPool", device, pool)
	d.destroy(api.TypeCommandPool, uint64(pool))
}

func (d *Driver) ResetCommandPool(device api.VkDevice, pool api.VkCommandPool, flags uint32) api.VkResult {
	d.record("vkResetCommandPool", device, pool)
	d.check(api.TypeCommandPool, uint64(pool))
	return api.VK_SUCCESS
}

func (d *Driver) AllocateCommandBuffers(device api.VkDevice, info *api.CommandBufferAllocateInfo) ([]api.VkCommandBuffer, api.VkResult) {
	d.check(api.TypeCommandPool, uint64(info.CommandPool))
	out := make([]api.VkCommandBuffer, info.CommandBufferCount)
	for i := range out {
		out[i] = api.VkCommandBuffer(d.create(api.TypeCommandBuffer, uint64(info.CommandPool)))
	}
	d.record("vkAllocateCommandBuffers", device, info.CommandPool, out)
	return out, api.VK_SUCCESS
}

func (d *Driver) FreeCommandBuffers(device api.VkDevice, pool api.VkCommandPool, cbs []api.VkCommandBuffer) {
	d.record("vkFreeCommandBuffers", device, pool, cbs)
	for _, cb := range cbs {
		d.destroy(api.TypeCommandBuffer, uint64(cb))
	}
}

func (d *Driver) BeginCommandBuffer(cb api.VkCommandBuffer, info *api.CommandBufferBeginInfo) api.VkResult {
	d.record("vkBeginCommandBuffer", cb, info.Inheritance)
	d.check(api.TypeCommandBuffer, uint64(cb))
	if i := info.Inheritance; i != nil {
		d.check(api.TypeRenderPass, uint64(i.RenderPass))
		d.check(api.TypeFramebuffer, uint64(i.Framebuffer))
	}
	return api.VK_SUCCESS
}

func (d *Driver) EndCommandBuffer(cb api.VkCommandBuffer) api.VkResult {
	d.record("vkEndCommandBuffer", cb)
	d.check(api.TypeCommandBuffer, uint64(cb))
	return api.VK_SUCCESS
}

func (d *Driver) ResetCommandBuffer(cb api.VkCommandBuffer, flags uint32) api.VkResult {
	d.record("vkResetCommandBuffer", cb)
	d.check(api.TypeCommandBuffer, uint64(cb))
	return api.VK_SUCCESS
}
