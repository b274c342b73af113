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

func (d *Driver) cmd(name string, cb api.VkCommandBuffer, args ...interface{}) {
	d.check(api.TypeCommandBuffer, uint64(cb))
	d.record(name, append([]interface{}{cb}, args...)...)
}

func (d *Driver) CmdBeginRenderPass(cb api.VkCommandBuffer, info *api.RenderPassBeginInfo, contents uint32) {
	d.cmd("vkCmdBeginRenderPass", cb, info.RenderPass, info.Framebuffer)
	d.check(api.TypeRenderPass, uint64(info.RenderPass))
	d.check(api.TypeFramebuffer, uint64(info.Framebuffer))
}

func (d *Driver) CmdNextSubpass(cb api.VkCommandBuffer, contents uint32) {
	d.cmd("vkCmdNextSubpass", cb)
}

func (d *Driver) CmdEndRenderPass(cb api.VkCommandBuffer) { d.cmd("vkCmdEndRenderPass", cb) }

func (d *Driver) CmdBindPipeline(cb api.VkCommandBuffer, bindPoint uint32, pipeline api.VkPipeline) {
	d.cmd("vkCmdBindPipeline", cb, pipeline)
	d.check(api.TypePipeline, uint64(pipeline))
}

func (d *Driver) CmdBindDescriptorSets(cb api.VkCommandBuffer, bindPoint uint32, layout api.VkPipelineLayout, first uint32, sets []api.VkDescriptorSet, dynamicOffsets []uint32) {
	d.cmd("vkCmdBindDescriptorSets", cb, layout, sets)
	d.check(api.TypePipelineLayout, uint64(layout))
	checkAll(d, sets)
}

func (d *Driver) CmdBindVertexBuffers(cb api.VkCommandBuffer, first uint32, buffers []api.VkBuffer, offsets []uint64) {
	d.cmd("vkCmdBindVertexBuffers", cb, buffers)
	checkAll(d, buffers)
}

func (d *Driver) CmdBindIndexBuffer(cb api.VkCommandBuffer, buffer api.VkBuffer, offset uint64, indexType uint32) {
	d.cmd("vkCmdBindIndexBuffer", cb, buffer)
	d.check(api.TypeBuffer, uint64(buffer))
}

func (d *Driver) CmdPushConstants(cb api.VkCommandBuffer, layout api.VkPipelineLayout, stages, offset uint32, data []byte) {
	d.cmd("vkCmdPushConstants", cb, layout, len(data))
	d.check(api.TypePipelineLayout, uint64(layout))
}

func (d *Driver) CmdDraw(cb api.VkCommandBuffer, vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	d.cmd("vkCmdDraw", cb, vertexCount, instanceCount)
}

func (d *Driver) CmdDrawIndexed(cb api.VkCommandBuffer, indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
	d.cmd("vkCmdDrawIndexed", cb, indexCount, instanceCount)
}

func (d *Driver) CmdDrawIndirect(cb api.VkCommandBuffer, buffer api.VkBuffer, offset uint64, drawCount, stride uint32) {
	d.cmd("vkCmdDrawIndirect", cb, buffer, offset)
	d.check(api.TypeBuffer, uint64(buffer))
}

func (d *Driver) CmdDispatch(cb api.VkCommandBuffer, x, y, z uint32) {
	d.cmd("vkCmdDispatch", cb, x, y, z)
}

func (d *Driver) CmdDispatchIndirect(cb api.VkCommandBuffer, buffer api.VkBuffer, offset uint64) {
	d.cmd("vkCmdDispatchIndirect", cb, buffer, offset)
	d.check(api.TypeBuffer, uint64(buffer))
}

func (d *Driver) CmdCopyBuffer(cb api.VkCommandBuffer, src, dst api.VkBuffer, regions []api.BufferCopy) {
	d.cmd("vkCmdCopyBuffer", cb, src, dst)
	d.check(api.TypeBuffer, uint64(src))
	d.check(api.TypeBuffer, uint64(dst))
}

func (d *Driver) CmdCopyImage(cb api.VkCommandBuffer, src api.VkImage, srcLayout api.ImageLayout, dst api.VkImage, dstLayout api.ImageLayout, regions []api.ImageCopy) {
	d.cmd("vkCmdCopyImage", cb, src, dst)
	d.check(api.TypeImage, uint64(src))
	d.check(api.TypeImage, uint64(dst))
}

func (d *Driver) CmdCopyBufferToImage(cb api.VkCommandBuffer, src api.VkBuffer, dst api.VkImage, dstLayout api.ImageLayout, regions []api.BufferImageCopy) {
	d.cmd("vkCmdCopyBufferToImage", cb, src, dst)
	d.check(api.TypeBuffer, uint64(src))
	d.check(api.TypeImage, uint64(dst))
}

func (d *Driver) CmdCopyImageToBuffer(cb api.VkCommandBuffer, src api.VkImage, srcLayout api.ImageLayout, dst api.VkBuffer, regions []api.BufferImageCopy) {
	d.cmd("vkCmdCopyImageToBuffer", cb, src, dst)
	d.check(api.TypeImage, uint64(src))
	d.check(api.TypeBuffer, uint64(dst))
}

func (d *Driver) CmdUpdateBuffer(cb api.VkCommandBuffer, dst api.VkBuffer, offset uint64, data []byte) {
	d.cmd("vkCmdUpdateBuffer", cb, dst, offset, len(data))
	d.check(api.TypeBuffer, uint64(dst))
}

func (d *Driver) CmdFillBuffer(cb api.VkCommandBuffer, dst api.VkBuffer, offset, size uint64, data uint32) {
	d.cmd("vkCmdFillBuffer", cb, dst, offset, size)
	d.check(api.TypeBuffer, uint64(dst))
}

func (d *Driver) CmdClearColorImage(cb api.VkCommandBuffer, image api.VkImage, layout api.ImageLayout, color [4]uint32, ranges []api.ImageSubresourceRange) {
	d.cmd("vkCmdClearColorImage", cb, image)
	d.check(api.TypeImage, uint64(image))
}

func (d *Driver) checkBarriers(buffers []api.BufferMemoryBarrier, images []api.ImageMemoryBarrier) {
	for _, b := range buffers {
		d.check(api.TypeBuffer, uint64(b.Buffer))
	}
	for _, i := range images {
		d.check(api.TypeImage, uint64(i.Image))
	}
}

func (d *Driver) CmdPipelineBarrier(cb api.VkCommandBuffer, srcStages, dstStages api.PipelineStageFlags, dependencyFlags uint32,
	memory []api.MemoryBarrier, buffers []api.BufferMemoryBarrier, images []api.ImageMemoryBarrier) {
	d.cmd("vkCmdPipelineBarrier", cb, srcStages, dstStages, buffers, images)
	d.checkBarriers(buffers, images)
}

func (d *Driver) CmdSetEvent(cb api.VkCommandBuffer, event api.VkEvent, stages api.PipelineStageFlags) {
	d.cmd("vkCmdSetEvent", cb, event)
	if d.check(api.TypeEvent, uint64(event)) {
		d.signaled[uint64(event)] = true
	}
}

func (d *Driver) CmdResetEvent(cb api.VkCommandBuffer, event api.VkEvent, stages api.PipelineStageFlags) {
	d.cmd("vkCmdResetEvent", cb, event)
	if d.check(api.TypeEvent, uint64(event)) {
		d.signaled[uint64(event)] = false
	}
}

func (d *Driver) CmdWaitEvents(cb api.VkCommandBuffer, events []api.VkEvent, srcStages, dstStages api.PipelineStageFlags,
	memory []api.MemoryBarrier, buffers []api.BufferMemoryBarrier, images []api.ImageMemoryBarrier) {
	d.cmd("vkCmdWaitEvents", cb, events)
	checkAll(d, events)
	d.checkBarriers(buffers, images)
}

func (d *Driver) CmdResetQueryPool(cb api.VkCommandBuffer, pool api.VkQueryPool, first, count uint32) {
	d.cmd("vkCmdResetQueryPool", cb, pool, first, count)
	d.check(api.TypeQueryPool, uint64(pool))
}

func (d *Driver) CmdBeginQuery(cb api.VkCommandBuffer, pool api.VkQueryPool, query, flags uint32) {
	d.cmd("vkCmdBeginQuery", cb, pool, query)
	d.check(api.TypeQueryPool, uint64(pool))
}

func (d *Driver) CmdEndQuery(cb api.VkCommandBuffer, pool api.VkQueryPool, query uint32) {
	d.cmd("vkCmdEndQuery", cb, pool, query)
	d.check(api.TypeQueryPool, uint64(pool))
}

func (d *Driver) CmdWriteTimestamp(cb api.VkCommandBuffer, stage api.PipelineStageFlags, pool api.VkQueryPool, query uint32) {
	d.cmd("vkCmdWriteTimestamp", cb, pool, query)
	d.check(api.TypeQueryPool, uint64(pool))
}

func (d *Driver) CmdExecuteCommands(cb api.VkCommandBuffer, cbs []api.VkCommandBuffer) {
	d.cmd("vkCmdExecuteCommands", cb, cbs)
	checkAll(d, cbs)
}
