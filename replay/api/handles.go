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

package api

import "fmt"

// HandleType identifies the category of a dispatchable or non-dispatchable
// object handle. Handle values are only unique within a category.
type HandleType uint8

const (
	TypeUnknown HandleType = iota
	TypeInstance
	TypePhysicalDevice
	TypeDevice
	TypeQueue
	TypeCommandBuffer
	TypeSemaphore
	TypeFence
	TypeDeviceMemory
	TypeBuffer
	TypeImage
	TypeEvent
	TypeQueryPool
	TypeBufferView
	TypeImageView
	TypeShaderModule
	TypePipelineCache
	TypePipelineLayout
	TypeRenderPass
	TypePipeline
	TypeDescriptorSetLayout
	TypeSampler
	TypeDescriptorPool
	TypeDescriptorSet
	TypeFramebuffer
	TypeCommandPool
	TypeSamplerYcbcrConversion
	TypeDescriptorUpdateTemplate
	TypeSurfaceKHR
	TypeSwapchainKHR
	TypeAccelerationStructureKHR
	TypeDebugUtilsMessengerEXT

	handleTypeCount
)

var handleTypeNames = [...]string{
	TypeUnknown:                  "VkUnknownHandle",
	TypeInstance:                 "VkInstance",
	TypePhysicalDevice:           "VkPhysicalDevice",
	TypeDevice:                   "VkDevice",
	TypeQueue:                    "VkQueue",
	TypeCommandBuffer:            "VkCommandBuffer",
	TypeSemaphore:                "VkSemaphore",
	TypeFence:                    "VkFence",
	TypeDeviceMemory:             "VkDeviceMemory",
	TypeBuffer:                   "VkBuffer",
	TypeImage:                    "VkImage",
	TypeEvent:                    "VkEvent",
	TypeQueryPool:                "VkQueryPool",
	TypeBufferView:               "VkBufferView",
	TypeImageView:                "VkImageView",
	TypeShaderModule:             "VkShaderModule",
	TypePipelineCache:            "VkPipelineCache",
	TypePipelineLayout:           "VkPipelineLayout",
	TypeRenderPass:               "VkRenderPass",
	TypePipeline:                 "VkPipeline",
	TypeDescriptorSetLayout:      "VkDescriptorSetLayout",
	TypeSampler:                  "VkSampler",
	TypeDescriptorPool:           "VkDescriptorPool",
	TypeDescriptorSet:            "VkDescriptorSet",
	TypeFramebuffer:              "VkFramebuffer",
	TypeCommandPool:              "VkCommandPool",
	TypeSamplerYcbcrConversion:   "VkSamplerYcbcrConversion",
	TypeDescriptorUpdateTemplate: "VkDescriptorUpdateTemplate",
	TypeSurfaceKHR:               "VkSurfaceKHR",
	TypeSwapchainKHR:             "VkSwapchainKHR",
	TypeAccelerationStructureKHR: "VkAccelerationStructureKHR",
	TypeDebugUtilsMessengerEXT:   "VkDebugUtilsMessengerEXT",
}

func (t HandleType) String() string {
	if int(t) < len(handleTypeNames) {
		return handleTypeNames[t]
	}
	return fmt.Sprintf("HandleType(%d)", uint8(t))
}

// HandleTypes returns every known handle category in declaration order.
func HandleTypes() []HandleType {
	out := make([]HandleType, 0, handleTypeCount-1)
	for t := TypeUnknown + 1; t < handleTypeCount; t++ {
		out = append(out, t)
	}
	return out
}

// Handle is the constraint satisfied by every typed object handle.
type Handle interface {
	~uint64
	Category() HandleType
}

// Remapper translates captured handle values into their live equivalents.
type Remapper interface {
	// RemapHandle returns the live value for the captured handle of the given
	// category. A captured value of 0 must always map to 0.
	RemapHandle(ty HandleType, captured uint64) (uint64, bool)
}

// RemapError is returned when a handle could not be translated.
type RemapError struct {
	Type     HandleType
	Captured uint64
}

func (e RemapError) Error() string {
	return fmt.Sprintf("no live %v for captured handle 0x%x", e.Type, e.Captured)
}

// Remap translates h through r, returning a RemapError when r has no mapping.
func Remap[T Handle](r Remapper, h T) (T, error) {
	if h == 0 {
		return 0, nil
	}
	live, ok := r.RemapHandle(h.Category(), uint64(h))
	if !ok {
		return h, RemapError{h.Category(), uint64(h)}
	}
	return T(live), nil
}

// RemapAll translates every handle of s in place.
func RemapAll[T Handle](r Remapper, s []T) error {
	for i, h := range s {
		live, err := Remap(r, h)
		if err != nil {
			return err
		}
		s[i] = live
	}
	return nil
}

type VkInstance uint64
type VkPhysicalDevice uint64
type VkDevice uint64
type VkQueue uint64
type VkCommandBuffer uint64
type VkSemaphore uint64
type VkFence uint64
type VkDeviceMemory uint64
type VkBuffer uint64
type VkImage uint64
type VkEvent uint64
type VkQueryPool uint64
type VkBufferView uint64
type VkImageView uint64
type VkShaderModule uint64
type VkPipelineCache uint64
type VkPipelineLayout uint64
type VkRenderPass uint64
type VkPipeline uint64
type VkDescriptorSetLayout uint64
type VkSampler uint64
type VkDescriptorPool uint64
type VkDescriptorSet uint64
type VkFramebuffer uint64
type VkCommandPool uint64
type VkSamplerYcbcrConversion uint64
type VkDescriptorUpdateTemplate uint64
type VkSurfaceKHR uint64
type VkSwapchainKHR uint64
type VkAccelerationStructureKHR uint64
type VkDebugUtilsMessengerEXT uint64

func (VkInstance) Category() HandleType                 { return TypeInstance }
func (VkPhysicalDevice) Category() HandleType           { return TypePhysicalDevice }
func (VkDevice) Category() HandleType                   { return TypeDevice }
func (VkQueue) Category() HandleType                    { return TypeQueue }
func (VkCommandBuffer) Category() HandleType            { return TypeCommandBuffer }
func (VkSemaphore) Category() HandleType                { return TypeSemaphore }
func (VkFence) Category() HandleType                    { return TypeFence }
func (VkDeviceMemory) Category() HandleType             { return TypeDeviceMemory }
func (VkBuffer) Category() HandleType                   { return TypeBuffer }
func (VkImage) Category() HandleType                    { return TypeImage }
func (VkEvent) Category() HandleType                    { return TypeEvent }
func (VkQueryPool) Category() HandleType                { return TypeQueryPool }
func (VkBufferView) Category() HandleType               { return TypeBufferView }
func (VkImageView) Category() HandleType                { return TypeImageView }
func (VkShaderModule) Category() HandleType             { return TypeShaderModule }
func (VkPipelineCache) Category() HandleType            { return TypePipelineCache }
func (VkPipelineLayout) Category() HandleType           { return TypePipelineLayout }
func (VkRenderPass) Category() HandleType               { return TypeRenderPass }
func (VkPipeline) Category() HandleType                 { return TypePipeline }
func (VkDescriptorSetLayout) Category() HandleType      { return TypeDescriptorSetLayout }
func (VkSampler) Category() HandleType                  { return TypeSampler }
func (VkDescriptorPool) Category() HandleType           { return TypeDescriptorPool }
func (VkDescriptorSet) Category() HandleType            { return TypeDescriptorSet }
func (VkFramebuffer) Category() HandleType              { return TypeFramebuffer }
func (VkCommandPool) Category() HandleType              { return TypeCommandPool }
func (VkSamplerYcbcrConversion) Category() HandleType   { return TypeSamplerYcbcrConversion }
func (VkDescriptorUpdateTemplate) Category() HandleType { return TypeDescriptorUpdateTemplate }
func (VkSurfaceKHR) Category() HandleType               { return TypeSurfaceKHR }
func (VkSwapchainKHR) Category() HandleType             { return TypeSwapchainKHR }
func (VkAccelerationStructureKHR) Category() HandleType { return TypeAccelerationStructureKHR }
func (VkDebugUtilsMessengerEXT) Category() HandleType   { return TypeDebugUtilsMessengerEXT }
