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

package vulkan

import (
	"context"

	"github.com/ARM-software/vktrace-arm-sub000/replay/api"
)

type VkCreateCommandPool struct {
	Device api.VkDevice
	Info   api.CommandPoolCreateInfo
	Pool   api.VkCommandPool
	Result api.VkResult
}

func (*VkCreateCommandPool) CmdName() string { return "vkCreateCommandPool" }

func (a *VkCreateCommandPool) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev := live(c, a.Device)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	info := a.Info
	info.QueueFamilyIndex = r.family(ctx, c, r.device(a.Device), a.Info.QueueFamilyIndex)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	pool, res := r.drv.CreateCommandPool(dev, &info)
	if res == api.VK_SUCCESS {
		add(ctx, r, a.Pool, pool)
		r.pools[a.Pool] = a.Device
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkDestroyCommandPool struct {
	Device api.VkDevice
	Pool   api.VkCommandPool
}

func (*VkDestroyCommandPool) CmdName() string { return "vkDestroyCommandPool" }

func (a *VkDestroyCommandPool) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, pool := live(c, a.Device), live(c, a.Pool)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.DestroyCommandPool(dev, pool)
	delete(r.pools, a.Pool)
	forget(r, a.Pool)
	return Success
}

type VkResetCommandPool struct {
	Device api.VkDevice
	Pool   api.VkCommandPool
	Flags  uint32
	Result api.VkResult
}

func (*VkResetCommandPool) CmdName() string { return "vkResetCommandPool" }

func (a *VkResetCommandPool) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, pool := live(c, a.Device), live(c, a.Pool)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	return r.result(ctx, a.CmdName(), a.Result, r.drv.ResetCommandPool(dev, pool, a.Flags))
}

type VkAllocateCommandBuffers struct {
	Device         api.VkDevice
	Info           api.CommandBufferAllocateInfo
	CommandBuffers []api.VkCommandBuffer
	Result         api.VkResult
}

func (*VkAllocateCommandBuffers) CmdName() string { return "vkAllocateCommandBuffers" }

func (a *VkAllocateCommandBuffers) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev := live(c, a.Device)
	info := a.Info
	info.CommandPool = live(c, a.Info.CommandPool)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	cbs, res := r.drv.AllocateCommandBuffers(dev, &info)
	if res == api.VK_SUCCESS {
		addAll(ctx, r, a.CommandBuffers, cbs)
		for _, cb := range a.CommandBuffers {
			r.commandBuffers[cb] = a.Device
		}
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkFreeCommandBuffers struct {
	Device         api.VkDevice
	Pool           api.VkCommandPool
	CommandBuffers []api.VkCommandBuffer
}

func (*VkFreeCommandBuffers) CmdName() string { return "vkFreeCommandBuffers" }

func (a *VkFreeCommandBuffers) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, pool := live(c, a.Device), live(c, a.Pool)
	cbs := liveAll(c, a.CommandBuffers)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.FreeCommandBuffers(dev, pool, cbs)
	for _, cb := range a.CommandBuffers {
		delete(r.commandBuffers, cb)
	}
	forgetAll(r, a.CommandBuffers)
	return Success
}

// framebuffer returns the live framebuffer to render to in place of fb.
// Without a virtual swapchain the live driver may have acquired a different
// image than the capture did, so the framebuffer of the acquired image is
// used instead.
func (r *Replayer) framebuffer(fb api.VkFramebuffer, pass api.VkRenderPass) api.VkFramebuffer {
	if r.settings.EnableVirtualSwapchain {
		return fb
	}
	return r.trackers.SubstituteFramebuffer(fb, pass)
}

// image returns the live image to use in place of img for the same reason.
func (r *Replayer) image(img api.VkImage) api.VkImage {
	if r.settings.EnableVirtualSwapchain {
		return img
	}
	if t, ok := r.trackers.ForImage(img); ok {
		return t.SubstituteImage(img)
	}
	return img
}

type VkBeginCommandBuffer struct {
	CommandBuffer api.VkCommandBuffer
	Info          api.CommandBufferBeginInfo
	Result        api.VkResult
}

func (*VkBeginCommandBuffer) CmdName() string { return "vkBeginCommandBuffer" }

func (a *VkBeginCommandBuffer) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb := live(c, a.CommandBuffer)
	info := a.Info
	if in := a.Info.Inheritance; in != nil {
		inh := *in
		inh.RenderPass = live(c, in.RenderPass)
		inh.Framebuffer = live(c, in.Framebuffer)
		info.Inheritance = &inh
	}
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	if inh := info.Inheritance; inh != nil && inh.Framebuffer != 0 {
		inh.Framebuffer = r.framebuffer(inh.Framebuffer, inh.RenderPass)
	}
	return r.result(ctx, a.CmdName(), a.Result, r.drv.BeginCommandBuffer(cb, &info))
}

type VkEndCommandBuffer struct {
	CommandBuffer api.VkCommandBuffer
	Result        api.VkResult
}

func (*VkEndCommandBuffer) CmdName() string { return "vkEndCommandBuffer" }

func (a *VkEndCommandBuffer) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb := live(c, a.CommandBuffer)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	return r.result(ctx, a.CmdName(), a.Result, r.drv.EndCommandBuffer(cb))
}

type VkResetCommandBuffer struct {
	CommandBuffer api.VkCommandBuffer
	Flags         uint32
	Result        api.VkResult
}

func (*VkResetCommandBuffer) CmdName() string { return "vkResetCommandBuffer" }

func (a *VkResetCommandBuffer) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb := live(c, a.CommandBuffer)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	return r.result(ctx, a.CmdName(), a.Result, r.drv.ResetCommandBuffer(cb, a.Flags))
}

type VkCmdBeginRenderPass struct {
	CommandBuffer api.VkCommandBuffer
	Info          api.RenderPassBeginInfo
	Contents      uint32
}

func (*VkCmdBeginRenderPass) CmdName() string { return "vkCmdBeginRenderPass" }

func (a *VkCmdBeginRenderPass) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb := live(c, a.CommandBuffer)
	info := a.Info
	info.RenderPass = live(c, a.Info.RenderPass)
	info.Framebuffer = live(c, a.Info.Framebuffer)
	info.Next = c.chain(a.Info.Next)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	info.Framebuffer = r.framebuffer(info.Framebuffer, info.RenderPass)
	r.drv.CmdBeginRenderPass(cb, &info, a.Contents)
	return Success
}

type VkCmdNextSubpass struct {
	CommandBuffer api.VkCommandBuffer
	Contents      uint32
}

func (*VkCmdNextSubpass) CmdName() string { return "vkCmdNextSubpass" }

func (a *VkCmdNextSubpass) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb := live(c, a.CommandBuffer)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.CmdNextSubpass(cb, a.Contents)
	return Success
}

type VkCmdEndRenderPass struct {
	CommandBuffer api.VkCommandBuffer
}

func (*VkCmdEndRenderPass) CmdName() string { return "vkCmdEndRenderPass" }

func (a *VkCmdEndRenderPass) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb := live(c, a.CommandBuffer)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.CmdEndRenderPass(cb)
	return Success
}

type VkCmdBindPipeline struct {
	CommandBuffer api.VkCommandBuffer
	BindPoint     uint32
	Pipeline      api.VkPipeline
}

func (*VkCmdBindPipeline) CmdName() string { return "vkCmdBindPipeline" }

func (a *VkCmdBindPipeline) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb, pipeline := live(c, a.CommandBuffer), live(c, a.Pipeline)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.CmdBindPipeline(cb, a.BindPoint, pipeline)
	return Success
}

type VkCmdBindDescriptorSets struct {
	CommandBuffer  api.VkCommandBuffer
	BindPoint      uint32
	Layout         api.VkPipelineLayout
	FirstSet       uint32
	Sets           []api.VkDescriptorSet
	DynamicOffsets []uint32
}

func (*VkCmdBindDescriptorSets) CmdName() string { return "vkCmdBindDescriptorSets" }

func (a *VkCmdBindDescriptorSets) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb, layout, sets := live(c, a.CommandBuffer), live(c, a.Layout), liveAll(c, a.Sets)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.CmdBindDescriptorSets(cb, a.BindPoint, layout, a.FirstSet, sets, a.DynamicOffsets)
	return Success
}

type VkCmdBindVertexBuffers struct {
	CommandBuffer api.VkCommandBuffer
	FirstBinding  uint32
	Buffers       []api.VkBuffer
	Offsets       []uint64
}

func (*VkCmdBindVertexBuffers) CmdName() string { return "vkCmdBindVertexBuffers" }

func (a *VkCmdBindVertexBuffers) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb, buffers := live(c, a.CommandBuffer), liveAll(c, a.Buffers)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.CmdBindVertexBuffers(cb, a.FirstBinding, buffers, a.Offsets)
	return Success
}

type VkCmdBindIndexBuffer struct {
	CommandBuffer api.VkCommandBuffer
	Buffer        api.VkBuffer
	Offset        uint64
	IndexType     uint32
}

func (*VkCmdBindIndexBuffer) CmdName() string { return "vkCmdBindIndexBuffer" }

func (a *VkCmdBindIndexBuffer) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb, buf := live(c, a.CommandBuffer), live(c, a.Buffer)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.CmdBindIndexBuffer(cb, buf, a.Offset, a.IndexType)
	return Success
}

type VkCmdPushConstants struct {
	CommandBuffer api.VkCommandBuffer
	Layout        api.VkPipelineLayout
	Stages        uint32
	Offset        uint32
	Data          []byte
}

func (*VkCmdPushConstants) CmdName() string { return "vkCmdPushConstants" }

func (a *VkCmdPushConstants) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb, layout := live(c, a.CommandBuffer), live(c, a.Layout)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.CmdPushConstants(cb, layout, a.Stages, a.Offset, a.Data)
	return Success
}

type VkCmdDraw struct {
	CommandBuffer api.VkCommandBuffer
	VertexCount   uint32
	InstanceCount uint32
	FirstVertex   uint32
	FirstInstance uint32
}

func (*VkCmdDraw) CmdName() string { return "vkCmdDraw" }

func (a *VkCmdDraw) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb := live(c, a.CommandBuffer)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.CmdDraw(cb, a.VertexCount, a.InstanceCount, a.FirstVertex, a.FirstInstance)
	return Success
}

type VkCmdDrawIndexed struct {
	CommandBuffer api.VkCommandBuffer
	IndexCount    uint32
	InstanceCount uint32
	FirstIndex    uint32
	VertexOffset  int32
	FirstInstance uint32
}

func (*VkCmdDrawIndexed) CmdName() string { return "vkCmdDrawIndexed" }

func (a *VkCmdDrawIndexed) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb := live(c, a.CommandBuffer)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.CmdDrawIndexed(cb, a.IndexCount, a.InstanceCount, a.FirstIndex, a.VertexOffset, a.FirstInstance)
	return Success
}

type VkCmdDrawIndirect struct {
	CommandBuffer api.VkCommandBuffer
	Buffer        api.VkBuffer
	Offset        uint64
	DrawCount     uint32
	Stride        uint32
}

func (*VkCmdDrawIndirect) CmdName() string { return "vkCmdDrawIndirect" }

func (a *VkCmdDrawIndirect) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb, buf := live(c, a.CommandBuffer), live(c, a.Buffer)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.CmdDrawIndirect(cb, buf, a.Offset, a.DrawCount, a.Stride)
	return Success
}

type VkCmdDispatch struct {
	CommandBuffer api.VkCommandBuffer
	X, Y, Z       uint32
}

func (*VkCmdDispatch) CmdName() string { return "vkCmdDispatch" }

func (a *VkCmdDispatch) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb := live(c, a.CommandBuffer)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.CmdDispatch(cb, a.X, a.Y, a.Z)
	return Success
}

type VkCmdDispatchIndirect struct {
	CommandBuffer api.VkCommandBuffer
	Buffer        api.VkBuffer
	Offset        uint64
}

func (*VkCmdDispatchIndirect) CmdName() string { return "vkCmdDispatchIndirect" }

func (a *VkCmdDispatchIndirect) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb, buf := live(c, a.CommandBuffer), live(c, a.Buffer)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.CmdDispatchIndirect(cb, buf, a.Offset)
	return Success
}

type VkCmdCopyBuffer struct {
	CommandBuffer api.VkCommandBuffer
	Src, Dst      api.VkBuffer
	Regions       []api.BufferCopy
}

func (*VkCmdCopyBuffer) CmdName() string { return "vkCmdCopyBuffer" }

func (a *VkCmdCopyBuffer) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb, src, dst := live(c, a.CommandBuffer), live(c, a.Src), live(c, a.Dst)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.CmdCopyBuffer(cb, src, dst, a.Regions)
	return Success
}

type VkCmdCopyImage struct {
	CommandBuffer api.VkCommandBuffer
	Src           api.VkImage
	SrcLayout     api.ImageLayout
	Dst           api.VkImage
	DstLayout     api.ImageLayout
	Regions       []api.ImageCopy
}

func (*VkCmdCopyImage) CmdName() string { return "vkCmdCopyImage" }

func (a *VkCmdCopyImage) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb, src, dst := live(c, a.CommandBuffer), live(c, a.Src), live(c, a.Dst)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.CmdCopyImage(cb, r.image(src), a.SrcLayout, r.image(dst), a.DstLayout, a.Regions)
	return Success
}

type VkCmdCopyBufferToImage struct {
	CommandBuffer api.VkCommandBuffer
	Src           api.VkBuffer
	Dst           api.VkImage
	DstLayout     api.ImageLayout
	Regions       []api.BufferImageCopy
}

func (*VkCmdCopyBufferToImage) CmdName() string { return "vkCmdCopyBufferToImage" }

func (a *VkCmdCopyBufferToImage) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb, src, dst := live(c, a.CommandBuffer), live(c, a.Src), live(c, a.Dst)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.CmdCopyBufferToImage(cb, src, r.image(dst), a.DstLayout, a.Regions)
	return Success
}

type VkCmdCopyImageToBuffer struct {
	CommandBuffer api.VkCommandBuffer
	Src           api.VkImage
	SrcLayout     api.ImageLayout
	Dst           api.VkBuffer
	Regions       []api.BufferImageCopy
}

func (*VkCmdCopyImageToBuffer) CmdName() string { return "vkCmdCopyImageToBuffer" }

func (a *VkCmdCopyImageToBuffer) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb, src, dst := live(c, a.CommandBuffer), live(c, a.Src), live(c, a.Dst)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.CmdCopyImageToBuffer(cb, r.image(src), a.SrcLayout, dst, a.Regions)
	return Success
}

type VkCmdUpdateBuffer struct {
	CommandBuffer api.VkCommandBuffer
	Dst           api.VkBuffer
	Offset        uint64
	Data          []byte
}

func (*VkCmdUpdateBuffer) CmdName() string { return "vkCmdUpdateBuffer" }

func (a *VkCmdUpdateBuffer) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb, dst := live(c, a.CommandBuffer), live(c, a.Dst)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.CmdUpdateBuffer(cb, dst, a.Offset, a.Data)
	return Success
}

type VkCmdFillBuffer struct {
	CommandBuffer api.VkCommandBuffer
	Dst           api.VkBuffer
	Offset        uint64
	Size          uint64
	Data          uint32
}

func (*VkCmdFillBuffer) CmdName() string { return "vkCmdFillBuffer" }

func (a *VkCmdFillBuffer) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb, dst := live(c, a.CommandBuffer), live(c, a.Dst)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.CmdFillBuffer(cb, dst, a.Offset, a.Size, a.Data)
	return Success
}

type VkCmdClearColorImage struct {
	CommandBuffer api.VkCommandBuffer
	Image         api.VkImage
	Layout        api.ImageLayout
	Color         [4]uint32
	Ranges        []api.ImageSubresourceRange
}

func (*VkCmdClearColorImage) CmdName() string { return "vkCmdClearColorImage" }

func (a *VkCmdClearColorImage) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb, img := live(c, a.CommandBuffer), live(c, a.Image)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.CmdClearColorImage(cb, r.image(img), a.Layout, a.Color, a.Ranges)
	return Success
}

// barriers translates the handles and queue family indices of buffer and
// image barriers recorded into cb.
func (r *Replayer) barriers(ctx context.Context, c *call, cb api.VkCommandBuffer,
	buffers []api.BufferMemoryBarrier, images []api.ImageMemoryBarrier) ([]api.BufferMemoryBarrier, []api.ImageMemoryBarrier) {

	d := r.device(r.commandBuffers[cb])
	outBuffers := make([]api.BufferMemoryBarrier, len(buffers))
	for i, b := range buffers {
		outBuffers[i] = b
		outBuffers[i].Buffer = live(c, b.Buffer)
		outBuffers[i].SrcQueueFamilyIndex = r.family(ctx, c, d, b.SrcQueueFamilyIndex)
		outBuffers[i].DstQueueFamilyIndex = r.family(ctx, c, d, b.DstQueueFamilyIndex)
	}
	outImages := make([]api.ImageMemoryBarrier, len(images))
	for i, b := range images {
		outImages[i] = b
		outImages[i].Image = r.image(live(c, b.Image))
		outImages[i].SrcQueueFamilyIndex = r.family(ctx, c, d, b.SrcQueueFamilyIndex)
		outImages[i].DstQueueFamilyIndex = r.family(ctx, c, d, b.DstQueueFamilyIndex)
	}
	return outBuffers, outImages
}

type VkCmdPipelineBarrier struct {
	CommandBuffer   api.VkCommandBuffer
	SrcStages       api.PipelineStageFlags
	DstStages       api.PipelineStageFlags
	DependencyFlags uint32
	Memory          []api.MemoryBarrier
	Buffers         []api.BufferMemoryBarrier
	Images          []api.ImageMemoryBarrier
}

func (*VkCmdPipelineBarrier) CmdName() string { return "vkCmdPipelineBarrier" }

func (a *VkCmdPipelineBarrier) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb := live(c, a.CommandBuffer)
	buffers, images := r.barriers(ctx, c, a.CommandBuffer, a.Buffers, a.Images)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.CmdPipelineBarrier(cb, a.SrcStages, a.DstStages, a.DependencyFlags, a.Memory, buffers, images)
	return Success
}

type VkCmdSetEvent struct {
	CommandBuffer api.VkCommandBuffer
	Event         api.VkEvent
	Stages        api.PipelineStageFlags
}

func (*VkCmdSetEvent) CmdName() string { return "vkCmdSetEvent" }

func (a *VkCmdSetEvent) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb, event := live(c, a.CommandBuffer), live(c, a.Event)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.CmdSetEvent(cb, event, a.Stages)
	return Success
}

type VkCmdResetEvent struct {
	CommandBuffer api.VkCommandBuffer
	Event         api.VkEvent
	Stages        api.PipelineStageFlags
}

func (*VkCmdResetEvent) CmdName() string { return "vkCmdResetEvent" }

func (a *VkCmdResetEvent) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb, event := live(c, a.CommandBuffer), live(c, a.Event)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.CmdResetEvent(cb, event, a.Stages)
	return Success
}

type VkCmdWaitEvents struct {
	CommandBuffer api.VkCommandBuffer
	Events        []api.VkEvent
	SrcStages     api.PipelineStageFlags
	DstStages     api.PipelineStageFlags
	Memory        []api.MemoryBarrier
	Buffers       []api.BufferMemoryBarrier
	Images        []api.ImageMemoryBarrier
}

func (*VkCmdWaitEvents) CmdName() string { return "vkCmdWaitEvents" }

func (a *VkCmdWaitEvents) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb, events := live(c, a.CommandBuffer), liveAll(c, a.Events)
	buffers, images := r.barriers(ctx, c, a.CommandBuffer, a.Buffers, a.Images)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.CmdWaitEvents(cb, events, a.SrcStages, a.DstStages, a.Memory, buffers, images)
	return Success
}

type VkCmdResetQueryPool struct {
	CommandBuffer api.VkCommandBuffer
	Pool          api.VkQueryPool
	First         uint32
	Count         uint32
}

func (*VkCmdResetQueryPool) CmdName() string { return "vkCmdResetQueryPool" }

func (a *VkCmdResetQueryPool) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb, pool := live(c, a.CommandBuffer), live(c, a.Pool)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.CmdResetQueryPool(cb, pool, a.First, a.Count)
	return Success
}

type VkCmdBeginQuery struct {
	CommandBuffer api.VkCommandBuffer
	Pool          api.VkQueryPool
	Query         uint32
	Flags         uint32
}

func (*VkCmdBeginQuery) CmdName() string { return "vkCmdBeginQuery" }

func (a *VkCmdBeginQuery) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb, pool := live(c, a.CommandBuffer), live(c, a.Pool)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.CmdBeginQuery(cb, pool, a.Query, a.Flags)
	return Success
}

type VkCmdEndQuery struct {
	CommandBuffer api.VkCommandBuffer
	Pool          api.VkQueryPool
	Query         uint32
}

func (*VkCmdEndQuery) CmdName() string { return "vkCmdEndQuery" }

func (a *VkCmdEndQuery) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb, pool := live(c, a.CommandBuffer), live(c, a.Pool)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.CmdEndQuery(cb, pool, a.Query)
	return Success
}

type VkCmdWriteTimestamp struct {
	CommandBuffer api.VkCommandBuffer
	Stage         api.PipelineStageFlags
	Pool          api.VkQueryPool
	Query         uint32
}

func (*VkCmdWriteTimestamp) CmdName() string { return "vkCmdWriteTimestamp" }

func (a *VkCmdWriteTimestamp) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb, pool := live(c, a.CommandBuffer), live(c, a.Pool)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.CmdWriteTimestamp(cb, a.Stage, pool, a.Query)
	return Success
}

type VkCmdExecuteCommands struct {
	CommandBuffer  api.VkCommandBuffer
	CommandBuffers []api.VkCommandBuffer
}

func (*VkCmdExecuteCommands) CmdName() string { return "vkCmdExecuteCommands" }

func (a *VkCmdExecuteCommands) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb, cbs := live(c, a.CommandBuffer), liveAll(c, a.CommandBuffers)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.CmdExecuteCommands(cb, cbs)
	return Success
}
