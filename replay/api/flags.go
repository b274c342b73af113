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

import (
	"fmt"
	"strings"
)

// QueueFlags describes the capabilities of a queue family.
type QueueFlags uint32

const (
	QueueGraphics      QueueFlags = 0x1
	QueueCompute       QueueFlags = 0x2
	QueueTransfer      QueueFlags = 0x4
	QueueSparseBinding QueueFlags = 0x8
	QueueProtected     QueueFlags = 0x10
)

var queueFlagNames = []flagName{
	{uint32(QueueGraphics), "GRAPHICS"},
	{uint32(QueueCompute), "COMPUTE"},
	{uint32(QueueTransfer), "TRANSFER"},
	{uint32(QueueSparseBinding), "SPARSE_BINDING"},
	{uint32(QueueProtected), "PROTECTED"},
}

func (f QueueFlags) String() string { return flagString(uint32(f), queueFlagNames) }

// Contains returns true if every bit of mask is set in f.
func (f QueueFlags) Contains(mask QueueFlags) bool { return f&mask == mask }

// MemoryPropertyFlags describes the properties of a memory type.
type MemoryPropertyFlags uint32

const (
	MemoryDeviceLocal     MemoryPropertyFlags = 0x1
	MemoryHostVisible     MemoryPropertyFlags = 0x2
	MemoryHostCoherent    MemoryPropertyFlags = 0x4
	MemoryHostCached      MemoryPropertyFlags = 0x8
	MemoryLazilyAllocated MemoryPropertyFlags = 0x10
	MemoryProtected       MemoryPropertyFlags = 0x20
)

var memoryFlagNames = []flagName{
	{uint32(MemoryDeviceLocal), "DEVICE_LOCAL"},
	{uint32(MemoryHostVisible), "HOST_VISIBLE"},
	{uint32(MemoryHostCoherent), "HOST_COHERENT"},
	{uint32(MemoryHostCached), "HOST_CACHED"},
	{uint32(MemoryLazilyAllocated), "LAZILY_ALLOCATED"},
	{uint32(MemoryProtected), "PROTECTED"},
}

func (f MemoryPropertyFlags) String() string { return flagString(uint32(f), memoryFlagNames) }

// Contains returns true if every bit of mask is set in f.
func (f MemoryPropertyFlags) Contains(mask MemoryPropertyFlags) bool { return f&mask == mask }

type flagName struct {
	bit  uint32
	name string
}

func flagString(v uint32, names []flagName) string {
	if v == 0 {
		return "0"
	}
	parts := []string{}
	for _, n := range names {
		if v&n.bit != 0 {
			parts = append(parts, n.name)
			v &^= n.bit
		}
	}
	if v != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", v))
	}
	return strings.Join(parts, "|")
}

type BufferUsageFlags uint32

const (
	BufferUsageTransferSrc                             BufferUsageFlags = 0x1
	BufferUsageTransferDst                             BufferUsageFlags = 0x2
	BufferUsageUniformBuffer                           BufferUsageFlags = 0x10
	BufferUsageStorageBuffer                           BufferUsageFlags = 0x20
	BufferUsageIndexBuffer                             BufferUsageFlags = 0x40
	BufferUsageVertexBuffer                            BufferUsageFlags = 0x80
	BufferUsageShaderDeviceAddress                     BufferUsageFlags = 0x20000
	BufferUsageAccelerationStructureBuildInputReadOnly BufferUsageFlags = 0x80000
	BufferUsageAccelerationStructureStorage            BufferUsageFlags = 0x100000
	BufferUsageShaderBindingTable                      BufferUsageFlags = 0x400
)

type BufferCreateFlags uint32

const BufferCreateDeviceAddressCaptureReplay BufferCreateFlags = 0x10

type ImageUsageFlags uint32

const (
	ImageUsageTransferSrc     ImageUsageFlags = 0x1
	ImageUsageTransferDst     ImageUsageFlags = 0x2
	ImageUsageSampled         ImageUsageFlags = 0x4
	ImageUsageStorage         ImageUsageFlags = 0x8
	ImageUsageColorAttachment ImageUsageFlags = 0x10
)

type ImageLayout uint32

const (
	ImageLayoutUndefined              ImageLayout = 0
	ImageLayoutGeneral                ImageLayout = 1
	ImageLayoutColorAttachmentOptimal ImageLayout = 2
	ImageLayoutTransferSrcOptimal     ImageLayout = 6
	ImageLayoutTransferDstOptimal     ImageLayout = 7
	ImageLayoutPresentSrcKHR          ImageLayout = 1000001002
)

type AccessFlags uint32

const (
	AccessColorAttachmentWrite AccessFlags = 0x100
	AccessTransferRead         AccessFlags = 0x800
	AccessTransferWrite        AccessFlags = 0x1000
	AccessMemoryRead           AccessFlags = 0x8000
	AccessMemoryWrite          AccessFlags = 0x10000
)

type PipelineStageFlags uint32

const (
	PipelineStageTopOfPipe             PipelineStageFlags = 0x1
	PipelineStageColorAttachmentOutput PipelineStageFlags = 0x400
	PipelineStageTransfer              PipelineStageFlags = 0x1000
	PipelineStageBottomOfPipe          PipelineStageFlags = 0x2000
	PipelineStageAllCommands           PipelineStageFlags = 0x10000
)

type ImageAspectFlags uint32

const ImageAspectColor ImageAspectFlags = 0x1

type MemoryAllocateFlags uint32

const (
	MemoryAllocateDeviceMask                 MemoryAllocateFlags = 0x1
	MemoryAllocateDeviceAddress              MemoryAllocateFlags = 0x2
	MemoryAllocateDeviceAddressCaptureReplay MemoryAllocateFlags = 0x4
)

type AccelerationStructureCreateFlags uint32

const AccelerationStructureCreateDeviceAddressCaptureReplay AccelerationStructureCreateFlags = 0x1

type PipelineCreateFlags uint32

const (
	PipelineCreateDerivative                               PipelineCreateFlags = 0x4
	PipelineCreateLibraryKHR                               PipelineCreateFlags = 0x800
	PipelineCreateRayTracingShaderGroupHandleCaptureReplay PipelineCreateFlags = 0x80000
)

type FenceCreateFlags uint32

const FenceCreateSignaled FenceCreateFlags = 0x1

type CommandPoolCreateFlags uint32

const (
	CommandPoolCreateTransient          CommandPoolCreateFlags = 0x1
	CommandPoolCreateResetCommandBuffer CommandPoolCreateFlags = 0x2
)

type CommandBufferUsageFlags uint32

const (
	CommandBufferUsageOneTimeSubmit      CommandBufferUsageFlags = 0x1
	CommandBufferUsageRenderPassContinue CommandBufferUsageFlags = 0x2
)

type CommandBufferLevel uint32

const (
	CommandBufferLevelPrimary   CommandBufferLevel = 0
	CommandBufferLevelSecondary CommandBufferLevel = 1
)

type SharingMode uint32

const (
	SharingModeExclusive  SharingMode = 0
	SharingModeConcurrent SharingMode = 1
)

type QueryResultFlags uint32

const (
	QueryResult64   QueryResultFlags = 0x1
	QueryResultWait QueryResultFlags = 0x2
)

// Query types, as used by VkQueryPoolCreateInfo.
const (
	QueryTypeOcclusion                              uint32 = 0
	QueryTypeTimestamp                              uint32 = 2
	QueryTypeAccelerationStructureCompactedSize     uint32 = 1000150000
	QueryTypeAccelerationStructureSerializationSize uint32 = 1000150001
)

// Format is a VkFormat value. Formats are passed through untranslated.
type Format uint32

const (
	QueueFamilyIgnored = ^uint32(0)
	WholeSize          = ^uint64(0)

	// Infinite is the timeout value that blocks until completion.
	Infinite = ^uint64(0)
)
