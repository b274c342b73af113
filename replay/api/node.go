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

// StructureType is the sType tag of an extension structure.
type StructureType uint32

const (
	StructureTypePhysicalDeviceFeatures2                 StructureType = 1000059000
	StructureTypeMemoryAllocateFlagsInfo                 StructureType = 1000060000
	StructureTypeBindImageMemorySwapchainInfoKHR         StructureType = 1000060009
	StructureTypeImageSwapchainCreateInfoKHR             StructureType = 1000060012
	StructureTypeMemoryDedicatedAllocateInfo             StructureType = 1000127001
	StructureTypeWriteDescriptorSetAccelerationStructure StructureType = 1000150007
	StructureTypeAccelerationStructureFeatures           StructureType = 1000150013
	StructureTypeSamplerYcbcrConversionInfo              StructureType = 1000156001
	StructureTypeBufferDeviceAddressFeatures             StructureType = 1000257000
	StructureTypeBufferOpaqueCaptureAddressCreateInfo    StructureType = 1000257002
	StructureTypeMemoryOpaqueCaptureAddressAllocateInfo  StructureType = 1000257003
	StructureTypePipelineLibraryCreateInfoKHR            StructureType = 1000290000
	StructureTypeRayTracingPipelineFeatures              StructureType = 1000347000
	StructureTypeRayQueryFeatures                        StructureType = 1000348013
)

var structureTypeNames = map[StructureType]string{
	StructureTypePhysicalDeviceFeatures2:                 "VkPhysicalDeviceFeatures2",
	StructureTypeMemoryAllocateFlagsInfo:                 "VkMemoryAllocateFlagsInfo",
	StructureTypeBindImageMemorySwapchainInfoKHR:         "VkBindImageMemorySwapchainInfoKHR",
	StructureTypeImageSwapchainCreateInfoKHR:             "VkImageSwapchainCreateInfoKHR",
	StructureTypeMemoryDedicatedAllocateInfo:             "VkMemoryDedicatedAllocateInfo",
	StructureTypeWriteDescriptorSetAccelerationStructure: "VkWriteDescriptorSetAccelerationStructureKHR",
	StructureTypeAccelerationStructureFeatures:           "VkPhysicalDeviceAccelerationStructureFeaturesKHR",
	StructureTypeSamplerYcbcrConversionInfo:              "VkSamplerYcbcrConversionInfo",
	StructureTypeBufferDeviceAddressFeatures:             "VkPhysicalDeviceBufferDeviceAddressFeatures",
	StructureTypeBufferOpaqueCaptureAddressCreateInfo:    "VkBufferOpaqueCaptureAddressCreateInfo",
	StructureTypeMemoryOpaqueCaptureAddressAllocateInfo:  "VkMemoryOpaqueCaptureAddressAllocateInfo",
	StructureTypePipelineLibraryCreateInfoKHR:            "VkPipelineLibraryCreateInfoKHR",
	StructureTypeRayTracingPipelineFeatures:              "VkPhysicalDeviceRayTracingPipelineFeaturesKHR",
	StructureTypeRayQueryFeatures:                        "VkPhysicalDeviceRayQueryFeaturesKHR",
}

func (t StructureType) String() string {
	if n, ok := structureTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("VkStructureType(%d)", uint32(t))
}

// Node is a single structure of a pNext extension chain.
//
// The set of node kinds is closed: every implementation lives in this package
// and carries its own handle translation.
type Node interface {
	// StructureType returns the sType tag of the node.
	StructureType() StructureType
	// RemapHandles translates every captured handle held by the node in place.
	RemapHandles(r Remapper) error

	clone() Node
}

// FeatureMember is a named boolean member of a feature structure.
type FeatureMember struct {
	Name    string
	Enabled *bool
}

// FeatureStruct is a Node that reports device feature support or requests.
type FeatureStruct interface {
	Node
	// Members returns pointers to the boolean members of the structure.
	Members() []FeatureMember
}

func newNode(ty StructureType) Node {
	switch ty {
	case StructureTypeMemoryAllocateFlagsInfo:
		return &MemoryAllocateFlagsInfo{}
	case StructureTypeBindImageMemorySwapchainInfoKHR:
		return &BindImageMemorySwapchainInfo{}
	case StructureTypeImageSwapchainCreateInfoKHR:
		return &ImageSwapchainCreateInfo{}
	case StructureTypeMemoryDedicatedAllocateInfo:
		return &MemoryDedicatedAllocateInfo{}
	case StructureTypeWriteDescriptorSetAccelerationStructure:
		return &WriteDescriptorSetAccelerationStructure{}
	case StructureTypeAccelerationStructureFeatures:
		return &AccelerationStructureFeatures{}
	case StructureTypeSamplerYcbcrConversionInfo:
		return &SamplerYcbcrConversionInfo{}
	case StructureTypeBufferDeviceAddressFeatures:
		return &BufferDeviceAddressFeatures{}
	case StructureTypeBufferOpaqueCaptureAddressCreateInfo:
		return &BufferOpaqueCaptureAddressCreateInfo{}
	case StructureTypeMemoryOpaqueCaptureAddressAllocateInfo:
		return &MemoryOpaqueCaptureAddressAllocateInfo{}
	case StructureTypePipelineLibraryCreateInfoKHR:
		return &PipelineLibraryCreateInfo{}
	case StructureTypeRayTracingPipelineFeatures:
		return &RayTracingPipelineFeatures{}
	case StructureTypeRayQueryFeatures:
		return &RayQueryFeatures{}
	}
	return &OpaqueNode{Type: ty}
}

type MemoryDedicatedAllocateInfo struct {
	Image  VkImage
	Buffer VkBuffer
}

func (*MemoryDedicatedAllocateInfo) StructureType() StructureType {
	return StructureTypeMemoryDedicatedAllocateInfo
}

func (n *MemoryDedicatedAllocateInfo) RemapHandles(r Remapper) (err error) {
	if n.Image, err = Remap(r, n.Image); err != nil {
		return err
	}
	n.Buffer, err = Remap(r, n.Buffer)
	return err
}

func (n *MemoryDedicatedAllocateInfo) clone() Node { c := *n; return &c }

type MemoryAllocateFlagsInfo struct {
	Flags      MemoryAllocateFlags
	DeviceMask uint32
}

func (*MemoryAllocateFlagsInfo) StructureType() StructureType {
	return StructureTypeMemoryAllocateFlagsInfo
}
func (*MemoryAllocateFlagsInfo) RemapHandles(Remapper) error { return nil }
func (n *MemoryAllocateFlagsInfo) clone() Node               { c := *n; return &c }

// BufferOpaqueCaptureAddressCreateInfo requests a buffer be placed at an
// address observed during capture.
type BufferOpaqueCaptureAddressCreateInfo struct {
	OpaqueCaptureAddress uint64
}

func (*BufferOpaqueCaptureAddressCreateInfo) StructureType() StructureType {
	return StructureTypeBufferOpaqueCaptureAddressCreateInfo
}
func (*BufferOpaqueCaptureAddressCreateInfo) RemapHandles(Remapper) error { return nil }
func (n *BufferOpaqueCaptureAddressCreateInfo) clone() Node               { c := *n; return &c }

// MemoryOpaqueCaptureAddressAllocateInfo requests an allocation be placed at
// an address observed during capture.
type MemoryOpaqueCaptureAddressAllocateInfo struct {
	OpaqueCaptureAddress uint64
}

func (*MemoryOpaqueCaptureAddressAllocateInfo) StructureType() StructureType {
	return StructureTypeMemoryOpaqueCaptureAddressAllocateInfo
}
func (*MemoryOpaqueCaptureAddressAllocateInfo) RemapHandles(Remapper) error { return nil }
func (n *MemoryOpaqueCaptureAddressAllocateInfo) clone() Node               { c := *n; return &c }

type ImageSwapchainCreateInfo struct {
	Swapchain VkSwapchainKHR
}

func (*ImageSwapchainCreateInfo) StructureType() StructureType {
	return StructureTypeImageSwapchainCreateInfoKHR
}

func (n *ImageSwapchainCreateInfo) RemapHandles(r Remapper) (err error) {
	n.Swapchain, err = Remap(r, n.Swapchain)
	return err
}

func (n *ImageSwapchainCreateInfo) clone() Node { c := *n; return &c }

// BindImageMemorySwapchainInfo binds an image to the memory of a swapchain
// image. ImageIndex is a captured index and is not rewritten here.
type BindImageMemorySwapchainInfo struct {
	Swapchain  VkSwapchainKHR
	ImageIndex uint32
}

func (*BindImageMemorySwapchainInfo) StructureType() StructureType {
	return StructureTypeBindImageMemorySwapchainInfoKHR
}

func (n *BindImageMemorySwapchainInfo) RemapHandles(r Remapper) (err error) {
	n.Swapchain, err = Remap(r, n.Swapchain)
	return err
}

func (n *BindImageMemorySwapchainInfo) clone() Node { c := *n; return &c }

type SamplerYcbcrConversionInfo struct {
	Conversion VkSamplerYcbcrConversion
}

func (*SamplerYcbcrConversionInfo) StructureType() StructureType {
	return StructureTypeSamplerYcbcrConversionInfo
}

func (n *SamplerYcbcrConversionInfo) RemapHandles(r Remapper) (err error) {
	n.Conversion, err = Remap(r, n.Conversion)
	return err
}

func (n *SamplerYcbcrConversionInfo) clone() Node { c := *n; return &c }

type PipelineLibraryCreateInfo struct {
	Libraries []VkPipeline
}

func (*PipelineLibraryCreateInfo) StructureType() StructureType {
	return StructureTypePipelineLibraryCreateInfoKHR
}

func (n *PipelineLibraryCreateInfo) RemapHandles(r Remapper) error {
	return RemapAll(r, n.Libraries)
}

func (n *PipelineLibraryCreateInfo) clone() Node {
	return &PipelineLibraryCreateInfo{Libraries: append([]VkPipeline(nil), n.Libraries...)}
}

type WriteDescriptorSetAccelerationStructure struct {
	AccelerationStructures []VkAccelerationStructureKHR
}

func (*WriteDescriptorSetAccelerationStructure) StructureType() StructureType {
	return StructureTypeWriteDescriptorSetAccelerationStructure
}

func (n *WriteDescriptorSetAccelerationStructure) RemapHandles(r Remapper) error {
	return RemapAll(r, n.AccelerationStructures)
}

func (n *WriteDescriptorSetAccelerationStructure) clone() Node {
	return &WriteDescriptorSetAccelerationStructure{
		AccelerationStructures: append([]VkAccelerationStructureKHR(nil), n.AccelerationStructures...),
	}
}

type BufferDeviceAddressFeatures struct {
	BufferDeviceAddress              bool
	BufferDeviceAddressCaptureReplay bool
	BufferDeviceAddressMultiDevice   bool
}

func (*BufferDeviceAddressFeatures) StructureType() StructureType {
	return StructureTypeBufferDeviceAddressFeatures
}
func (*BufferDeviceAddressFeatures) RemapHandles(Remapper) error { return nil }
func (n *BufferDeviceAddressFeatures) clone() Node               { c := *n; return &c }

func (n *BufferDeviceAddressFeatures) Members() []FeatureMember {
	return []FeatureMember{
		{"bufferDeviceAddress", &n.BufferDeviceAddress},
		{"bufferDeviceAddressCaptureReplay", &n.BufferDeviceAddressCaptureReplay},
		{"bufferDeviceAddressMultiDevice", &n.BufferDeviceAddressMultiDevice},
	}
}

type AccelerationStructureFeatures struct {
	AccelerationStructure                                 bool
	AccelerationStructureCaptureReplay                    bool
	AccelerationStructureIndirectBuild                    bool
	AccelerationStructureHostCommands                     bool
	DescriptorBindingAccelerationStructureUpdateAfterBind bool
}

func (*AccelerationStructureFeatures) StructureType() StructureType {
	return StructureTypeAccelerationStructureFeatures
}
func (*AccelerationStructureFeatures) RemapHandles(Remapper) error { return nil }
func (n *AccelerationStructureFeatures) clone() Node               { c := *n; return &c }

func (n *AccelerationStructureFeatures) Members() []FeatureMember {
	return []FeatureMember{
		{"accelerationStructure", &n.AccelerationStructure},
		{"accelerationStructureCaptureReplay", &n.AccelerationStructureCaptureReplay},
		{"accelerationStructureIndirectBuild", &n.AccelerationStructureIndirectBuild},
		{"accelerationStructureHostCommands", &n.AccelerationStructureHostCommands},
		{"descriptorBindingAccelerationStructureUpdateAfterBind", &n.DescriptorBindingAccelerationStructureUpdateAfterBind},
	}
}

type RayTracingPipelineFeatures struct {
	RayTracingPipeline                                    bool
	RayTracingPipelineShaderGroupHandleCaptureReplay      bool
	RayTracingPipelineShaderGroupHandleCaptureReplayMixed bool
	RayTracingPipelineTraceRaysIndirect                   bool
	RayTraversalPrimitiveCulling                          bool
}

func (*RayTracingPipelineFeatures) StructureType() StructureType {
	return StructureTypeRayTracingPipelineFeatures
}
func (*RayTracingPipelineFeatures) RemapHandles(Remapper) error { return nil }
func (n *RayTracingPipelineFeatures) clone() Node               { c := *n; return &c }

func (n *RayTracingPipelineFeatures) Members() []FeatureMember {
	return []FeatureMember{
		{"rayTracingPipeline", &n.RayTracingPipeline},
		{"rayTracingPipelineShaderGroupHandleCaptureReplay", &n.RayTracingPipelineShaderGroupHandleCaptureReplay},
		{"rayTracingPipelineShaderGroupHandleCaptureReplayMixed", &n.RayTracingPipelineShaderGroupHandleCaptureReplayMixed},
		{"rayTracingPipelineTraceRaysIndirect", &n.RayTracingPipelineTraceRaysIndirect},
		{"rayTraversalPrimitiveCulling", &n.RayTraversalPrimitiveCulling},
	}
}

type RayQueryFeatures struct {
	RayQuery bool
}

func (*RayQueryFeatures) StructureType() StructureType { return StructureTypeRayQueryFeatures }
func (*RayQueryFeatures) RemapHandles(Remapper) error  { return nil }
func (n *RayQueryFeatures) clone() Node                { c := *n; return &c }

func (n *RayQueryFeatures) Members() []FeatureMember {
	return []FeatureMember{{"rayQuery", &n.RayQuery}}
}

// OpaqueNode holds an extension structure the replayer does not interpret.
// It is passed through untouched; its payload must not contain handles.
type OpaqueNode struct {
	Type StructureType
	Data []byte
}

func (n *OpaqueNode) StructureType() StructureType { return n.Type }
func (*OpaqueNode) RemapHandles(Remapper) error    { return nil }

func (n *OpaqueNode) clone() Node {
	return &OpaqueNode{Type: n.Type, Data: append([]byte(nil), n.Data...)}
}
