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
	"reflect"
	"sort"

	"github.com/pkg/errors"

	"github.com/ARM-software/vktrace-arm-sub000/replay/trace"
)

var commands = map[string]reflect.Type{}

func register(cmds ...Cmd) {
	for _, c := range cmds {
		commands[c.CmdName()] = reflect.TypeOf(c).Elem()
	}
}

func init() {
	register(
		// Instance and physical devices.
		&VkCreateInstance{}, &VkDestroyInstance{}, &VkEnumeratePhysicalDevices{},
		&VkGetPhysicalDeviceProperties{}, &VkGetPhysicalDeviceQueueFamilyProperties{},
		&VkGetPhysicalDeviceMemoryProperties{}, &VkGetPhysicalDeviceFeatures{},
		&VkGetPhysicalDeviceFeatures2{}, &VkEnumerateDeviceExtensionProperties{},
		// Devices and queues.
		&VkCreateDevice{}, &VkDestroyDevice{}, &VkDeviceWaitIdle{}, &VkGetDeviceQueue{},
		&VkQueueWaitIdle{}, &VkQueueSubmit{},
		// Memory, buffers and images.
		&VkAllocateMemory{}, &VkFreeMemory{}, &VkMapMemory{}, &VkUnmapMemory{},
		&VkFlushMappedMemoryRanges{}, &VkGetDeviceMemoryOpaqueCaptureAddress{},
		&VkCreateBuffer{}, &VkDestroyBuffer{}, &VkGetBufferMemoryRequirements{},
		&VkBindBufferMemory{}, &VkBindBufferMemory2{}, &VkGetBufferDeviceAddress{},
		&VkGetBufferOpaqueCaptureAddress{}, &VkCreateImage{}, &VkDestroyImage{},
		&VkGetImageMemoryRequirements{}, &VkBindImageMemory{}, &VkBindImageMemory2{},
		// Views, descriptors and pipelines.
		&VkCreateBufferView{}, &VkDestroyBufferView{}, &VkCreateImageView{}, &VkDestroyImageView{},
		&VkCreateSampler{}, &VkDestroySampler{}, &VkCreateSamplerYcbcrConversion{},
		&VkDestroySamplerYcbcrConversion{}, &VkCreateDescriptorSetLayout{},
		&VkDestroyDescriptorSetLayout{}, &VkCreateDescriptorPool{}, &VkDestroyDescriptorPool{},
		&VkResetDescriptorPool{}, &VkAllocateDescriptorSets{}, &VkFreeDescriptorSets{},
		&VkUpdateDescriptorSets{}, &VkCreateShaderModule{}, &VkDestroyShaderModule{},
		&VkCreatePipelineCache{}, &VkDestroyPipelineCache{}, &VkCreatePipelineLayout{},
		&VkDestroyPipelineLayout{}, &VkCreateRenderPass{}, &VkDestroyRenderPass{},
		&VkCreateFramebuffer{}, &VkDestroyFramebuffer{}, &VkCreateGraphicsPipelines{},
		&VkCreateComputePipelines{}, &VkDestroyPipeline{},
		// Synchronization and queries.
		&VkCreateFence{}, &VkDestroyFence{}, &VkResetFences{}, &VkGetFenceStatus{},
		&VkWaitForFences{}, &VkCreateSemaphore{}, &VkDestroySemaphore{}, &VkCreateEvent{},
		&VkDestroyEvent{}, &VkGetEventStatus{}, &VkSetEvent{}, &VkResetEvent{},
		&VkCreateQueryPool{}, &VkDestroyQueryPool{}, &VkGetQueryPoolResults{},
		// Command buffers.
		&VkCreateCommandPool{}, &VkDestroyCommandPool{}, &VkResetCommandPool{},
		&VkAllocateCommandBuffers{}, &VkFreeCommandBuffers{}, &VkBeginCommandBuffer{},
		&VkEndCommandBuffer{}, &VkResetCommandBuffer{}, &VkCmdBeginRenderPass{},
		&VkCmdNextSubpass{}, &VkCmdEndRenderPass{}, &VkCmdBindPipeline{},
		&VkCmdBindDescriptorSets{}, &VkCmdBindVertexBuffers{}, &VkCmdBindIndexBuffer{},
		&VkCmdPushConstants{}, &VkCmdDraw{}, &VkCmdDrawIndexed{}, &VkCmdDrawIndirect{},
		&VkCmdDispatch{}, &VkCmdDispatchIndirect{}, &VkCmdCopyBuffer{}, &VkCmdCopyImage{},
		&VkCmdCopyBufferToImage{}, &VkCmdCopyImageToBuffer{}, &VkCmdUpdateBuffer{},
		&VkCmdFillBuffer{}, &VkCmdClearColorImage{}, &VkCmdPipelineBarrier{},
		&VkCmdSetEvent{}, &VkCmdResetEvent{}, &VkCmdWaitEvents{}, &VkCmdResetQueryPool{},
		&VkCmdBeginQuery{}, &VkCmdEndQuery{}, &VkCmdWriteTimestamp{}, &VkCmdExecuteCommands{},
		// Ray tracing.
		&VkCreateAccelerationStructure{}, &VkDestroyAccelerationStructure{},
		&VkGetAccelerationStructureDeviceAddress{}, &VkCmdBuildAccelerationStructures{},
		&VkCmdCopyAccelerationStructure{}, &VkCmdWriteAccelerationStructuresProperties{},
		&VkCreateRayTracingPipelines{}, &VkGetRayTracingCaptureReplayShaderGroupHandles{},
		&VkCmdTraceRays{},
		// Window system integration.
		&VkCreateSurface{}, &VkDestroySurface{}, &VkGetPhysicalDeviceSurfaceSupport{},
		&VkGetPhysicalDeviceSurfaceCapabilities{}, &VkCreateSwapchain{}, &VkDestroySwapchain{},
		&VkGetSwapchainImages{}, &VkAcquireNextImage{}, &VkQueuePresent{},
	)
}

// Decode returns the command recorded in p.
func Decode(p trace.Packet) (Cmd, error) {
	t, ok := commands[p.Name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownCommand, "%s", p.Name)
	}
	cmd := reflect.New(t).Interface().(Cmd)
	if err := p.Decode(cmd); err != nil {
		return nil, err
	}
	return cmd, nil
}

// Commands returns the names of every command that can be decoded, sorted.
func Commands() []string {
	out := make([]string, 0, len(commands))
	for name := range commands {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
