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
	"bytes"
	"context"

	"github.com/pkg/errors"

	"github.com/ARM-software/vktrace-arm-sub000/core/log"
	"github.com/ARM-software/vktrace-arm-sub000/replay/address"
	"github.com/ARM-software/vktrace-arm-sub000/replay/api"
)

// lostDeterminism returns true if the trace relied on capture replay
// addresses of the category that the replay device does not provide.
func (d *deviceState) lostDeterminism(cat address.Category) bool {
	switch cat {
	case address.Buffer:
		return d.requested.BufferDeviceAddressCaptureReplay && !d.support.BufferDeviceAddressCaptureReplay
	case address.AccelerationStructure:
		return d.requested.AccelerationStructureCaptureReplay && !d.support.AccelerationStructureCaptureReplay
	}
	return false
}

// translate returns the live address for a captured device address used on
// d. A miss leaves the address as captured and only fails the call when the
// captured value cannot mean anything on the replay device.
func (r *Replayer) translate(ctx context.Context, c *call, d *deviceState, cat address.Category, addr uint64) uint64 {
	out, ok := r.addresses.Translate(cat, addr)
	if ok {
		return out
	}
	log.W(ctx, "%v: no live %v holds address 0x%x", ErrTranslationAmbiguity, cat, addr)
	if d != nil && d.lostDeterminism(cat) {
		c.fail(errors.Wrapf(ErrTranslationAmbiguity, "%v address 0x%x", cat, addr))
	}
	return out
}

type VkCreateAccelerationStructure struct {
	Device    api.VkDevice
	Info      api.AccelerationStructureCreateInfo
	Structure api.VkAccelerationStructureKHR
	Result    api.VkResult
}

func (*VkCreateAccelerationStructure) CmdName() string { return "vkCreateAccelerationStructureKHR" }

func (a *VkCreateAccelerationStructure) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev := live(c, a.Device)
	info := a.Info
	info.Buffer = live(c, a.Info.Buffer)
	info.Next = c.chain(a.Info.Next)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	d := r.device(a.Device)
	if d == nil || !d.support.AccelerationStructureCaptureReplay {
		info.CreateFlags &^= api.AccelerationStructureCreateDeviceAddressCaptureReplay
		info.DeviceAddress = 0
	}
	// Structures sized for a compacted copy take the compacted size measured
	// on the replay device.
	if size, ok := r.addresses.LiveCompactedSize(a.Info.Size); ok && size != info.Size {
		log.D(ctx, "Acceleration structure size 0x%x replaced by live compacted size 0x%x", info.Size, size)
		info.Size = size
	}
	as, res := r.drv.CreateAccelerationStructure(dev, &info)
	if res == api.VK_SUCCESS {
		add(ctx, r, a.Structure, as)
		r.addresses.SetSize(address.AccelerationStructure, uint64(a.Structure), uint64(as), a.Info.Size)
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkDestroyAccelerationStructure struct {
	Device    api.VkDevice
	Structure api.VkAccelerationStructureKHR
}

func (*VkDestroyAccelerationStructure) CmdName() string { return "vkDestroyAccelerationStructureKHR" }

func (a *VkDestroyAccelerationStructure) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, as := live(c, a.Device), live(c, a.Structure)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.addresses.Forget(address.AccelerationStructure, uint64(a.Structure))
	forget(r, a.Structure)
	r.drv.DestroyAccelerationStructure(dev, as)
	return Success
}

type VkGetAccelerationStructureDeviceAddress struct {
	Device    api.VkDevice
	Structure api.VkAccelerationStructureKHR
	Address   uint64
}

func (*VkGetAccelerationStructureDeviceAddress) CmdName() string {
	return "vkGetAccelerationStructureDeviceAddressKHR"
}

func (a *VkGetAccelerationStructureDeviceAddress) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, as := live(c, a.Device), live(c, a.Structure)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	addr := r.drv.GetAccelerationStructureDeviceAddress(dev, as)
	r.addresses.Record(address.AccelerationStructure, uint64(a.Structure), a.Address, addr)
	if addr != a.Address {
		if d := r.device(a.Device); d != nil && d.support.AccelerationStructureCaptureReplay {
			log.W(ctx, "Acceleration structure %v moved from 0x%x to 0x%x despite capture replay support",
				a.Structure, a.Address, addr)
		}
	}
	return Success
}

type VkCmdBuildAccelerationStructures struct {
	CommandBuffer api.VkCommandBuffer
	Infos         []api.AccelerationStructureBuildGeometryInfo
	Ranges        [][]api.AccelerationStructureBuildRangeInfo
}

func (*VkCmdBuildAccelerationStructures) CmdName() string {
	return "vkCmdBuildAccelerationStructuresKHR"
}

func (a *VkCmdBuildAccelerationStructures) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb := live(c, a.CommandBuffer)
	d := r.device(r.commandBuffers[a.CommandBuffer])
	buf := func(addr uint64) uint64 { return r.translate(ctx, c, d, address.Buffer, addr) }

	infos := make([]api.AccelerationStructureBuildGeometryInfo, len(a.Infos))
	for i, in := range a.Infos {
		out := in
		out.Src = live(c, in.Src)
		out.Dst = live(c, in.Dst)
		out.ScratchData = buf(in.ScratchData)
		out.Geometries = make([]api.AccelerationStructureGeometry, len(in.Geometries))
		for j, g := range in.Geometries {
			switch g.Type {
			case api.GeometryTypeTriangles:
				g.VertexData = buf(g.VertexData)
				g.IndexData = buf(g.IndexData)
				g.TransformData = buf(g.TransformData)
			case api.GeometryTypeAABBs:
				g.AABBData = buf(g.AABBData)
			case api.GeometryTypeInstances:
				// The instance records themselves hold acceleration structure
				// addresses, which are only valid with capture replay support.
				g.InstanceData = buf(g.InstanceData)
				if d != nil && d.lostDeterminism(address.AccelerationStructure) {
					if owner, offset, ok := r.addresses.OwningBuffer(in.Geometries[j].InstanceData); ok {
						log.W(ctx, "Instance data in buffer 0x%x at offset 0x%x refers to captured acceleration structure addresses",
							owner, offset)
					} else {
						log.W(ctx, "Instance data at 0x%x refers to captured acceleration structure addresses", g.InstanceData)
					}
				}
			}
			out.Geometries[j] = g
		}
		infos[i] = out
	}
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.CmdBuildAccelerationStructures(cb, infos, a.Ranges)
	return Success
}

type VkCmdCopyAccelerationStructure struct {
	CommandBuffer api.VkCommandBuffer
	Info          api.CopyAccelerationStructureInfo
}

func (*VkCmdCopyAccelerationStructure) CmdName() string { return "vkCmdCopyAccelerationStructureKHR" }

func (a *VkCmdCopyAccelerationStructure) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb := live(c, a.CommandBuffer)
	info := a.Info
	info.Src, info.Dst = live(c, a.Info.Src), live(c, a.Info.Dst)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.CmdCopyAccelerationStructure(cb, &info)
	return Success
}

// VkCmdWriteAccelerationStructuresProperties remembers which structures a
// compacted size query measures, so the sizes read back can be paired.
type VkCmdWriteAccelerationStructuresProperties struct {
	CommandBuffer api.VkCommandBuffer
	Structures    []api.VkAccelerationStructureKHR
	QueryType     uint32
	Pool          api.VkQueryPool
	FirstQuery    uint32
}

func (*VkCmdWriteAccelerationStructuresProperties) CmdName() string {
	return "vkCmdWriteAccelerationStructuresPropertiesKHR"
}

func (a *VkCmdWriteAccelerationStructuresProperties) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb, pool := live(c, a.CommandBuffer), live(c, a.Pool)
	structures := liveAll(c, a.Structures)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	if a.QueryType == api.QueryTypeAccelerationStructureCompactedSize {
		r.queries[a.Pool] = queryState{
			structures: append([]api.VkAccelerationStructureKHR(nil), a.Structures...),
			first:      a.FirstQuery,
		}
	}
	r.drv.CmdWriteAccelerationStructuresProperties(cb, structures, a.QueryType, pool, a.FirstQuery)
	return Success
}

type VkCreateRayTracingPipelines struct {
	Device    api.VkDevice
	Cache     api.VkPipelineCache
	Infos     []api.RayTracingPipelineCreateInfo
	Pipelines []api.VkPipeline
	Result    api.VkResult
}

func (*VkCreateRayTracingPipelines) CmdName() string { return "vkCreateRayTracingPipelinesKHR" }

func (a *VkCreateRayTracingPipelines) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, cache := live(c, a.Device), live(c, a.Cache)
	d := r.device(a.Device)
	keep := d != nil && d.support.ShaderGroupHandleCaptureReplay
	infos := make([]api.RayTracingPipelineCreateInfo, len(a.Infos))
	for i, in := range a.Infos {
		out := in
		out.Stages = liveStages(c, in.Stages)
		out.Layout = live(c, in.Layout)
		out.BasePipelineHandle = live(c, in.BasePipelineHandle)
		out.Next = c.chain(in.Next)
		if !keep && in.Flags&api.PipelineCreateRayTracingShaderGroupHandleCaptureReplay != 0 {
			log.W(ctx, "Shader group handles of pipeline %d will differ from capture", i)
			out.Flags &^= api.PipelineCreateRayTracingShaderGroupHandleCaptureReplay
			out.Groups = make([]api.RayTracingShaderGroupCreateInfo, len(in.Groups))
			for j, g := range in.Groups {
				g.CaptureReplayShaderGroupHandle = nil
				out.Groups[j] = g
			}
		}
		infos[i] = out
	}
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	pipelines, res := r.drv.CreateRayTracingPipelines(dev, cache, infos)
	addAll(ctx, r, a.Pipelines, pipelines)
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkGetRayTracingCaptureReplayShaderGroupHandles struct {
	Device     api.VkDevice
	Pipeline   api.VkPipeline
	FirstGroup uint32
	GroupCount uint32
	Data       []byte
	Result     api.VkResult
}

func (*VkGetRayTracingCaptureReplayShaderGroupHandles) CmdName() string {
	return "vkGetRayTracingCaptureReplayShaderGroupHandlesKHR"
}

func (a *VkGetRayTracingCaptureReplayShaderGroupHandles) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, pipeline := live(c, a.Device), live(c, a.Pipeline)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	if d := r.device(a.Device); d == nil || !d.support.ShaderGroupHandleCaptureReplay {
		log.D(ctx, "Capture replay shader group handles unavailable, skipping query")
		return Success
	}
	data, res := r.drv.GetRayTracingCaptureReplayShaderGroupHandles(dev, pipeline, a.FirstGroup, a.GroupCount, len(a.Data))
	if res == api.VK_SUCCESS && !bytes.Equal(data, a.Data) {
		log.W(ctx, "Capture replay shader group handles of pipeline %v differ from capture", a.Pipeline)
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkCmdTraceRays struct {
	CommandBuffer api.VkCommandBuffer
	Raygen        api.StridedDeviceAddressRegion
	Miss          api.StridedDeviceAddressRegion
	Hit           api.StridedDeviceAddressRegion
	Callable      api.StridedDeviceAddressRegion
	Width         uint32
	Height        uint32
	Depth         uint32
}

func (*VkCmdTraceRays) CmdName() string { return "vkCmdTraceRaysKHR" }

func (a *VkCmdTraceRays) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	cb := live(c, a.CommandBuffer)
	d := r.device(r.commandBuffers[a.CommandBuffer])
	region := func(in api.StridedDeviceAddressRegion) api.StridedDeviceAddressRegion {
		in.DeviceAddress = r.translate(ctx, c, d, address.Buffer, in.DeviceAddress)
		return in
	}
	raygen, miss, hit, callable := region(a.Raygen), region(a.Miss), region(a.Hit), region(a.Callable)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.CmdTraceRays(cb, raygen, miss, hit, callable, a.Width, a.Height, a.Depth)
	return Success
}
