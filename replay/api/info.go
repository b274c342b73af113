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

// The create-info payloads below mirror the Vulkan structures the replayer
// rewrites. Handles and addresses in them are captured values until the
// dispatcher translates them. Members the replayer never inspects are kept as
// opaque bytes.

type InstanceCreateInfo struct {
	ApplicationName   string
	EngineName        string
	APIVersion        uint32
	EnabledLayers     []string
	EnabledExtensions []string
	Next              Chain
}

type DeviceQueueCreateInfo struct {
	QueueFamilyIndex uint32
	QueuePriorities  []float32
}

type DeviceCreateInfo struct {
	QueueCreateInfos  []DeviceQueueCreateInfo
	EnabledExtensions []string
	EnabledFeatures   *PhysicalDeviceFeatures
	Next              Chain
}

type MemoryAllocateInfo struct {
	AllocationSize  uint64
	MemoryTypeIndex uint32
	Next            Chain
}

// MappedMemoryRange carries the bytes the application wrote to a mapped
// range before flushing it.
type MappedMemoryRange struct {
	Memory VkDeviceMemory
	Offset uint64
	Size   uint64
	Data   []byte
}

type BufferCreateInfo struct {
	Flags              BufferCreateFlags
	Size               uint64
	Usage              BufferUsageFlags
	SharingMode        SharingMode
	QueueFamilyIndices []uint32
	Next               Chain
}

type ImageCreateInfo struct {
	Flags              uint32
	ImageType          uint32
	Format             Format
	Extent             Extent3D
	MipLevels          uint32
	ArrayLayers        uint32
	Samples            uint32
	Tiling             uint32
	Usage              ImageUsageFlags
	SharingMode        SharingMode
	QueueFamilyIndices []uint32
	InitialLayout      ImageLayout
	Next               Chain
}

type BindImageMemoryInfo struct {
	Image        VkImage
	Memory       VkDeviceMemory
	MemoryOffset uint64
	Next         Chain
}

type BindBufferMemoryInfo struct {
	Buffer       VkBuffer
	Memory       VkDeviceMemory
	MemoryOffset uint64
	Next         Chain
}

type BufferViewCreateInfo struct {
	Buffer VkBuffer
	Format Format
	Offset uint64
	Range  uint64
}

type ImageViewCreateInfo struct {
	Image            VkImage
	ViewType         uint32
	Format           Format
	Components       [4]uint32
	SubresourceRange ImageSubresourceRange
	Next             Chain
}

type SamplerCreateInfo struct {
	Flags         uint32
	MagFilter     uint32
	MinFilter     uint32
	MipmapMode    uint32
	AddressMode   [3]uint32
	MaxAnisotropy float32
	State         []byte
	Next          Chain
}

type SamplerYcbcrConversionCreateInfo struct {
	Format     Format
	Model      uint32
	Range      uint32
	Components [4]uint32
}

type ShaderModuleCreateInfo struct {
	Code []uint32
}

type PipelineCacheCreateInfo struct {
	Flags       uint32
	InitialData []byte
}

type PushConstantRange struct {
	StageFlags uint32
	Offset     uint32
	Size       uint32
}

type PipelineLayoutCreateInfo struct {
	SetLayouts         []VkDescriptorSetLayout
	PushConstantRanges []PushConstantRange
}

type DescriptorSetLayoutBinding struct {
	Binding           uint32
	DescriptorType    DescriptorType
	DescriptorCount   uint32
	StageFlags        uint32
	ImmutableSamplers []VkSampler
}

type DescriptorSetLayoutCreateInfo struct {
	Flags    uint32
	Bindings []DescriptorSetLayoutBinding
	Next     Chain
}

type DescriptorPoolSize struct {
	Type            DescriptorType
	DescriptorCount uint32
}

type DescriptorPoolCreateInfo struct {
	Flags     uint32
	MaxSets   uint32
	PoolSizes []DescriptorPoolSize
	Next      Chain
}

type DescriptorSetAllocateInfo struct {
	DescriptorPool VkDescriptorPool
	SetLayouts     []VkDescriptorSetLayout
	Next           Chain
}

// DescriptorType is a VkDescriptorType value.
type DescriptorType uint32

const (
	DescriptorTypeSampler                  DescriptorType = 0
	DescriptorTypeCombinedImageSampler     DescriptorType = 1
	DescriptorTypeSampledImage             DescriptorType = 2
	DescriptorTypeStorageImage             DescriptorType = 3
	DescriptorTypeUniformTexelBuffer       DescriptorType = 4
	DescriptorTypeStorageTexelBuffer       DescriptorType = 5
	DescriptorTypeUniformBuffer            DescriptorType = 6
	DescriptorTypeStorageBuffer            DescriptorType = 7
	DescriptorTypeUniformBufferDynamic     DescriptorType = 8
	DescriptorTypeStorageBufferDynamic     DescriptorType = 9
	DescriptorTypeInputAttachment          DescriptorType = 10
	DescriptorTypeAccelerationStructureKHR DescriptorType = 1000150000
)

type DescriptorImageInfo struct {
	Sampler     VkSampler
	ImageView   VkImageView
	ImageLayout ImageLayout
}

type DescriptorBufferInfo struct {
	Buffer VkBuffer
	Offset uint64
	Range  uint64
}

type WriteDescriptorSet struct {
	DstSet          VkDescriptorSet
	DstBinding      uint32
	DstArrayElement uint32
	DescriptorType  DescriptorType
	ImageInfo       []DescriptorImageInfo
	BufferInfo      []DescriptorBufferInfo
	TexelBufferView []VkBufferView
	Next            Chain
}

type CopyDescriptorSet struct {
	SrcSet          VkDescriptorSet
	SrcBinding      uint32
	SrcArrayElement uint32
	DstSet          VkDescriptorSet
	DstBinding      uint32
	DstArrayElement uint32
	DescriptorCount uint32
}

type AttachmentDescription struct {
	Flags         uint32
	Format        Format
	Samples       uint32
	LoadOp        uint32
	StoreOp       uint32
	InitialLayout ImageLayout
	FinalLayout   ImageLayout
}

type AttachmentReference struct {
	Attachment uint32
	Layout     ImageLayout
}

type SubpassDescription struct {
	PipelineBindPoint      uint32
	InputAttachments       []AttachmentReference
	ColorAttachments       []AttachmentReference
	ResolveAttachments     []AttachmentReference
	DepthStencilAttachment *AttachmentReference
	PreserveAttachments    []uint32
}

type SubpassDependency struct {
	SrcSubpass      uint32
	DstSubpass      uint32
	SrcStageMask    PipelineStageFlags
	DstStageMask    PipelineStageFlags
	SrcAccessMask   AccessFlags
	DstAccessMask   AccessFlags
	DependencyFlags uint32
}

type RenderPassCreateInfo struct {
	Attachments  []AttachmentDescription
	Subpasses    []SubpassDescription
	Dependencies []SubpassDependency
	Next         Chain
}

type FramebufferCreateInfo struct {
	Flags       uint32
	RenderPass  VkRenderPass
	Attachments []VkImageView
	Width       uint32
	Height      uint32
	Layers      uint32
}

type PipelineShaderStageCreateInfo struct {
	Stage              uint32
	Module             VkShaderModule
	Name               string
	SpecializationData []byte
}

// GraphicsPipelineCreateInfo keeps the fixed-function state blocks as an
// opaque blob; none of them carry handles.
type GraphicsPipelineCreateInfo struct {
	Flags              PipelineCreateFlags
	Stages             []PipelineShaderStageCreateInfo
	State              []byte
	Layout             VkPipelineLayout
	RenderPass         VkRenderPass
	Subpass            uint32
	BasePipelineHandle VkPipeline
	BasePipelineIndex  int32
	Next               Chain
}

type ComputePipelineCreateInfo struct {
	Flags              PipelineCreateFlags
	Stage              PipelineShaderStageCreateInfo
	Layout             VkPipelineLayout
	BasePipelineHandle VkPipeline
	BasePipelineIndex  int32
	Next               Chain
}

type RayTracingShaderGroupCreateInfo struct {
	Type                           uint32
	GeneralShader                  uint32
	ClosestHitShader               uint32
	AnyHitShader                   uint32
	IntersectionShader             uint32
	CaptureReplayShaderGroupHandle []byte
}

type RayTracingPipelineCreateInfo struct {
	Flags                        PipelineCreateFlags
	Stages                       []PipelineShaderStageCreateInfo
	Groups                       []RayTracingShaderGroupCreateInfo
	MaxPipelineRayRecursionDepth uint32
	Layout                       VkPipelineLayout
	BasePipelineHandle           VkPipeline
	BasePipelineIndex            int32
	Next                         Chain
}

type FenceCreateInfo struct {
	Flags FenceCreateFlags
}

type SemaphoreCreateInfo struct {
	Flags uint32
	Next  Chain
}

type EventCreateInfo struct {
	Flags uint32
}

type QueryPoolCreateInfo struct {
	QueryType          uint32
	QueryCount         uint32
	PipelineStatistics uint32
}

type CommandPoolCreateInfo struct {
	Flags            CommandPoolCreateFlags
	QueueFamilyIndex uint32
}

type CommandBufferAllocateInfo struct {
	CommandPool        VkCommandPool
	Level              CommandBufferLevel
	CommandBufferCount uint32
}

type CommandBufferInheritanceInfo struct {
	RenderPass           VkRenderPass
	Subpass              uint32
	Framebuffer          VkFramebuffer
	OcclusionQueryEnable bool
	QueryFlags           uint32
	PipelineStatistics   uint32
}

type CommandBufferBeginInfo struct {
	Flags       CommandBufferUsageFlags
	Inheritance *CommandBufferInheritanceInfo
}

type RenderPassBeginInfo struct {
	RenderPass  VkRenderPass
	Framebuffer VkFramebuffer
	RenderArea  Rect2D
	ClearValues [][4]uint32
	Next        Chain
}

type MemoryBarrier struct {
	SrcAccessMask AccessFlags
	DstAccessMask AccessFlags
}

type BufferMemoryBarrier struct {
	SrcAccessMask       AccessFlags
	DstAccessMask       AccessFlags
	SrcQueueFamilyIndex uint32
	DstQueueFamilyIndex uint32
	Buffer              VkBuffer
	Offset              uint64
	Size                uint64
}

type ImageMemoryBarrier struct {
	SrcAccessMask       AccessFlags
	DstAccessMask       AccessFlags
	OldLayout           ImageLayout
	NewLayout           ImageLayout
	SrcQueueFamilyIndex uint32
	DstQueueFamilyIndex uint32
	Image               VkImage
	SubresourceRange    ImageSubresourceRange
}

type BufferCopy struct {
	SrcOffset uint64
	DstOffset uint64
	Size      uint64
}

type ImageCopy struct {
	SrcSubresource ImageSubresourceLayers
	SrcOffset      Offset3D
	DstSubresource ImageSubresourceLayers
	DstOffset      Offset3D
	Extent         Extent3D
}

type BufferImageCopy struct {
	BufferOffset      uint64
	BufferRowLength   uint32
	BufferImageHeight uint32
	ImageSubresource  ImageSubresourceLayers
	ImageOffset       Offset3D
	ImageExtent       Extent3D
}

type SubmitInfo struct {
	WaitSemaphores   []VkSemaphore
	WaitDstStageMask []PipelineStageFlags
	CommandBuffers   []VkCommandBuffer
	SignalSemaphores []VkSemaphore
	Next             Chain
}

type SwapchainCreateInfo struct {
	Flags              uint32
	Surface            VkSurfaceKHR
	MinImageCount      uint32
	ImageFormat        Format
	ImageColorSpace    uint32
	ImageExtent        Extent2D
	ImageArrayLayers   uint32
	ImageUsage         ImageUsageFlags
	ImageSharingMode   SharingMode
	QueueFamilyIndices []uint32
	PreTransform       uint32
	CompositeAlpha     uint32
	PresentMode        uint32
	Clipped            bool
	OldSwapchain       VkSwapchainKHR
	Next               Chain
}

type PresentInfo struct {
	WaitSemaphores []VkSemaphore
	Swapchains     []VkSwapchainKHR
	ImageIndices   []uint32
	Next           Chain
}

type AccelerationStructureCreateInfo struct {
	CreateFlags   AccelerationStructureCreateFlags
	Buffer        VkBuffer
	Offset        uint64
	Size          uint64
	Type          uint32
	DeviceAddress uint64
	Next          Chain
}

// GeometryType is a VkGeometryTypeKHR value.
type GeometryType uint32

const (
	GeometryTypeTriangles GeometryType = 0
	GeometryTypeAABBs     GeometryType = 1
	GeometryTypeInstances GeometryType = 2
)

// AccelerationStructureGeometry flattens the geometry union. Only the
// addresses relevant to Type are meaningful.
type AccelerationStructureGeometry struct {
	Type          GeometryType
	Flags         uint32
	VertexFormat  Format
	VertexData    uint64
	VertexStride  uint64
	MaxVertex     uint32
	IndexType     uint32
	IndexData     uint64
	TransformData uint64
	AABBData      uint64
	AABBStride    uint64
	InstanceData  uint64
}

type AccelerationStructureBuildGeometryInfo struct {
	Type        uint32
	Flags       uint32
	Mode        uint32
	Src         VkAccelerationStructureKHR
	Dst         VkAccelerationStructureKHR
	Geometries  []AccelerationStructureGeometry
	ScratchData uint64
}

type AccelerationStructureBuildRangeInfo struct {
	PrimitiveCount  uint32
	PrimitiveOffset uint32
	FirstVertex     uint32
	TransformOffset uint32
}

type CopyAccelerationStructureInfo struct {
	Src  VkAccelerationStructureKHR
	Dst  VkAccelerationStructureKHR
	Mode uint32
}

type StridedDeviceAddressRegion struct {
	DeviceAddress uint64
	Stride        uint64
	Size          uint64
}
