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

	"github.com/pkg/errors"

	"github.com/ARM-software/vktrace-arm-sub000/core/log"
	"github.com/ARM-software/vktrace-arm-sub000/replay/address"
	"github.com/ARM-software/vktrace-arm-sub000/replay/api"
	"github.com/ARM-software/vktrace-arm-sub000/replay/compat"
)

func bufferKey(b api.VkBuffer) object { return object{api.TypeBuffer, uint64(b)} }
func imageKey(i api.VkImage) object   { return object{api.TypeImage, uint64(i)} }

// alignUp rounds a captured bind offset up to the live alignment.
func alignUp(offset, alignment uint64) uint64 {
	if alignment == 0 || offset%alignment == 0 {
		return offset
	}
	return offset + alignment - offset%alignment
}

type VkAllocateMemory struct {
	Device api.VkDevice
	Info   api.MemoryAllocateInfo
	Memory api.VkDeviceMemory
	Result api.VkResult
}

func (*VkAllocateMemory) CmdName() string { return "vkAllocateMemory" }

func (a *VkAllocateMemory) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev := live(c, a.Device)
	info := a.Info
	info.Next = c.chain(a.Info.Next)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	if d := r.device(a.Device); d != nil {
		req := d.requirements
		if ded, ok := api.FindAs[*api.MemoryDedicatedAllocateInfo](a.Info.Next); ok {
			key := bufferKey(ded.Buffer)
			if ded.Image != 0 {
				key = imageKey(ded.Image)
			}
			if dr, ok := r.requirements[key]; ok {
				req = dr
			}
		}
		allowed := req.MemoryTypeBits
		if allowed == 0 {
			allowed = ^uint32(0)
		}
		capture, replay := r.infos(d)
		idx, how, err := compat.ResolveMemoryType(a.Info.MemoryTypeIndex, capture, replay, allowed, r.settings.CompatibilityMode)
		switch {
		case errors.Is(err, compat.ErrNoCompatibleMemoryType):
			return r.skip(ctx, errors.Wrapf(ErrTranslationAmbiguity, "memory type %d: %v", a.Info.MemoryTypeIndex, err))
		case err != nil:
			log.W(ctx, "Memory type %d: %v", a.Info.MemoryTypeIndex, err)
		case how != compat.Unchanged:
			if idx != a.Info.MemoryTypeIndex {
				log.D(ctx, "Memory type %d replays as type %d (%v)", a.Info.MemoryTypeIndex, idx, how)
			}
			if req.Size > info.AllocationSize {
				log.D(ctx, "Allocation grown from 0x%x to 0x%x bytes", info.AllocationSize, req.Size)
				info.AllocationSize = req.Size
			}
		}
		info.MemoryTypeIndex = idx
		if !d.support.BufferDeviceAddressCaptureReplay {
			info.Next.Remove(api.StructureTypeMemoryOpaqueCaptureAddressAllocateInfo)
			if f, ok := api.FindAs[*api.MemoryAllocateFlagsInfo](info.Next); ok {
				f.Flags &^= api.MemoryAllocateDeviceAddressCaptureReplay
			}
		}
	}
	mem, res := r.drv.AllocateMemory(dev, &info)
	if res == api.VK_SUCCESS {
		add(ctx, r, a.Memory, mem)
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkFreeMemory struct {
	Device api.VkDevice
	Memory api.VkDeviceMemory
}

func (*VkFreeMemory) CmdName() string { return "vkFreeMemory" }

func (a *VkFreeMemory) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, mem := live(c, a.Device), live(c, a.Memory)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.FreeMemory(dev, mem)
	forget(r, a.Memory)
	return Success
}

type VkMapMemory struct {
	Device api.VkDevice
	Memory api.VkDeviceMemory
	Offset uint64
	Size   uint64
	Result api.VkResult
}

func (*VkMapMemory) CmdName() string { return "vkMapMemory" }

func (a *VkMapMemory) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, mem := live(c, a.Device), live(c, a.Memory)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	return r.result(ctx, a.CmdName(), a.Result, r.drv.MapMemory(dev, mem, a.Offset, a.Size))
}

type VkUnmapMemory struct {
	Device api.VkDevice
	Memory api.VkDeviceMemory
}

func (*VkUnmapMemory) CmdName() string { return "vkUnmapMemory" }

func (a *VkUnmapMemory) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, mem := live(c, a.Device), live(c, a.Memory)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.UnmapMemory(dev, mem)
	return Success
}

type VkFlushMappedMemoryRanges struct {
	Device api.VkDevice
	Ranges []api.MappedMemoryRange
	Result api.VkResult
}

func (*VkFlushMappedMemoryRanges) CmdName() string { return "vkFlushMappedMemoryRanges" }

func (a *VkFlushMappedMemoryRanges) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev := live(c, a.Device)
	ranges := make([]api.MappedMemoryRange, len(a.Ranges))
	for i, rg := range a.Ranges {
		ranges[i] = rg
		ranges[i].Memory = live(c, rg.Memory)
	}
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	return r.result(ctx, a.CmdName(), a.Result, r.drv.FlushMappedMemoryRanges(dev, ranges))
}

type VkGetDeviceMemoryOpaqueCaptureAddress struct {
	Device  api.VkDevice
	Memory  api.VkDeviceMemory
	Address uint64
}

func (*VkGetDeviceMemoryOpaqueCaptureAddress) CmdName() string {
	return "vkGetDeviceMemoryOpaqueCaptureAddress"
}

func (a *VkGetDeviceMemoryOpaqueCaptureAddress) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, mem := live(c, a.Device), live(c, a.Memory)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	if addr := r.drv.GetDeviceMemoryOpaqueCaptureAddress(dev, mem); addr != a.Address {
		if d := r.device(a.Device); d != nil && d.support.BufferDeviceAddressCaptureReplay {
			log.W(ctx, "Opaque address of memory %v is 0x%x, captured 0x%x", a.Memory, addr, a.Address)
		}
	}
	return Success
}

type VkCreateBuffer struct {
	Device api.VkDevice
	Info   api.BufferCreateInfo
	Buffer api.VkBuffer
	Result api.VkResult
}

func (*VkCreateBuffer) CmdName() string { return "vkCreateBuffer" }

func (a *VkCreateBuffer) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev := live(c, a.Device)
	info := a.Info
	info.Next = c.chain(a.Info.Next)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	d := r.device(a.Device)
	info.QueueFamilyIndices = r.familyList(ctx, c, d, a.Info.QueueFamilyIndices)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	if d != nil && !d.support.BufferDeviceAddressCaptureReplay {
		info.Next.Remove(api.StructureTypeBufferOpaqueCaptureAddressCreateInfo)
		info.Flags &^= api.BufferCreateDeviceAddressCaptureReplay
	}
	buf, res := r.drv.CreateBuffer(dev, &info)
	if res == api.VK_SUCCESS {
		add(ctx, r, a.Buffer, buf)
		r.addresses.SetSize(address.Buffer, uint64(a.Buffer), uint64(buf), a.Info.Size)
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkDestroyBuffer struct {
	Device api.VkDevice
	Buffer api.VkBuffer
}

func (*VkDestroyBuffer) CmdName() string { return "vkDestroyBuffer" }

func (a *VkDestroyBuffer) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, buf := live(c, a.Device), live(c, a.Buffer)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.DestroyBuffer(dev, buf)
	r.addresses.Forget(address.Buffer, uint64(a.Buffer))
	delete(r.requirements, bufferKey(a.Buffer))
	forget(r, a.Buffer)
	return Success
}

type VkGetBufferMemoryRequirements struct {
	Device       api.VkDevice
	Buffer       api.VkBuffer
	Requirements api.MemoryRequirements
}

func (*VkGetBufferMemoryRequirements) CmdName() string { return "vkGetBufferMemoryRequirements" }

func (a *VkGetBufferMemoryRequirements) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, buf := live(c, a.Device), live(c, a.Buffer)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	req := r.drv.GetBufferMemoryRequirements(dev, buf)
	r.requirements[bufferKey(a.Buffer)] = req
	if d := r.device(a.Device); d != nil {
		d.requirements = req
	}
	return Success
}

type VkBindBufferMemory struct {
	Device       api.VkDevice
	Buffer       api.VkBuffer
	Memory       api.VkDeviceMemory
	MemoryOffset uint64
	Result       api.VkResult
}

func (*VkBindBufferMemory) CmdName() string { return "vkBindBufferMemory" }

func (a *VkBindBufferMemory) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, buf, mem := live(c, a.Device), live(c, a.Buffer), live(c, a.Memory)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	offset := r.bindOffset(bufferKey(a.Buffer), a.MemoryOffset)
	return r.result(ctx, a.CmdName(), a.Result, r.drv.BindBufferMemory(dev, buf, mem, offset))
}

// bindOffset returns the live memory offset to bind an object at.
func (r *Replayer) bindOffset(key object, captured uint64) uint64 {
	if !r.settings.CompatibilityMode {
		return captured
	}
	return alignUp(captured, r.requirements[key].Alignment)
}

type VkBindBufferMemory2 struct {
	Device api.VkDevice
	Infos  []api.BindBufferMemoryInfo
	Result api.VkResult
}

func (*VkBindBufferMemory2) CmdName() string { return "vkBindBufferMemory2" }

func (a *VkBindBufferMemory2) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev := live(c, a.Device)
	infos := make([]api.BindBufferMemoryInfo, len(a.Infos))
	for i, in := range a.Infos {
		infos[i] = api.BindBufferMemoryInfo{
			Buffer:       live(c, in.Buffer),
			Memory:       live(c, in.Memory),
			MemoryOffset: r.bindOffset(bufferKey(in.Buffer), in.MemoryOffset),
			Next:         c.chain(in.Next),
		}
	}
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	return r.result(ctx, a.CmdName(), a.Result, r.drv.BindBufferMemory2(dev, infos))
}

type VkGetBufferDeviceAddress struct {
	Device  api.VkDevice
	Buffer  api.VkBuffer
	Address uint64
}

func (*VkGetBufferDeviceAddress) CmdName() string { return "vkGetBufferDeviceAddress" }

func (a *VkGetBufferDeviceAddress) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, buf := live(c, a.Device), live(c, a.Buffer)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	addr := r.drv.GetBufferDeviceAddress(dev, buf)
	r.addresses.Record(address.Buffer, uint64(a.Buffer), a.Address, addr)
	if addr != a.Address {
		if d := r.device(a.Device); d != nil && d.support.BufferDeviceAddressCaptureReplay {
			log.W(ctx, "Buffer %v moved from 0x%x to 0x%x despite capture replay support", a.Buffer, a.Address, addr)
		}
	}
	return Success
}

type VkGetBufferOpaqueCaptureAddress struct {
	Device  api.VkDevice
	Buffer  api.VkBuffer
	Address uint64
}

func (*VkGetBufferOpaqueCaptureAddress) CmdName() string { return "vkGetBufferOpaqueCaptureAddress" }

func (a *VkGetBufferOpaqueCaptureAddress) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, buf := live(c, a.Device), live(c, a.Buffer)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	if addr := r.drv.GetBufferOpaqueCaptureAddress(dev, buf); addr != a.Address {
		log.D(ctx, "Opaque address of buffer %v is 0x%x, captured 0x%x", a.Buffer, addr, a.Address)
	}
	return Success
}

type VkCreateImage struct {
	Device api.VkDevice
	Info   api.ImageCreateInfo
	Image  api.VkImage
	Result api.VkResult
}

func (*VkCreateImage) CmdName() string { return "vkCreateImage" }

func (a *VkCreateImage) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev := live(c, a.Device)
	info := a.Info
	info.Next = c.chain(a.Info.Next)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	info.QueueFamilyIndices = r.familyList(ctx, c, r.device(a.Device), a.Info.QueueFamilyIndices)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	img, res := r.drv.CreateImage(dev, &info)
	if res == api.VK_SUCCESS {
		add(ctx, r, a.Image, img)
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkDestroyImage struct {
	Device api.VkDevice
	Image  api.VkImage
}

func (*VkDestroyImage) CmdName() string { return "vkDestroyImage" }

func (a *VkDestroyImage) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, img := live(c, a.Device), live(c, a.Image)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.DestroyImage(dev, img)
	if t, ok := r.trackers.ForImage(img); ok {
		t.RemoveImage(img)
	}
	delete(r.requirements, imageKey(a.Image))
	forget(r, a.Image)
	return Success
}

type VkGetImageMemoryRequirements struct {
	Device       api.VkDevice
	Image        api.VkImage
	Requirements api.MemoryRequirements
}

func (*VkGetImageMemoryRequirements) CmdName() string { return "vkGetImageMemoryRequirements" }

func (a *VkGetImageMemoryRequirements) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, img := live(c, a.Device), live(c, a.Image)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	req := r.drv.GetImageMemoryRequirements(dev, img)
	r.requirements[imageKey(a.Image)] = req
	if d := r.device(a.Device); d != nil {
		d.requirements = req
	}
	return Success
}

type VkBindImageMemory struct {
	Device       api.VkDevice
	Image        api.VkImage
	Memory       api.VkDeviceMemory
	MemoryOffset uint64
	Result       api.VkResult
}

func (*VkBindImageMemory) CmdName() string { return "vkBindImageMemory" }

func (a *VkBindImageMemory) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, img, mem := live(c, a.Device), live(c, a.Image), live(c, a.Memory)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	offset := r.bindOffset(imageKey(a.Image), a.MemoryOffset)
	return r.result(ctx, a.CmdName(), a.Result, r.drv.BindImageMemory(dev, img, mem, offset))
}

type VkBindImageMemory2 struct {
	Device api.VkDevice
	Infos  []api.BindImageMemoryInfo
	Result api.VkResult
}

func (*VkBindImageMemory2) CmdName() string { return "vkBindImageMemory2" }

func (a *VkBindImageMemory2) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev := live(c, a.Device)
	infos := make([]api.BindImageMemoryInfo, len(a.Infos))
	for i, in := range a.Infos {
		infos[i] = api.BindImageMemoryInfo{
			Image:        live(c, in.Image),
			Memory:       live(c, in.Memory),
			MemoryOffset: in.MemoryOffset,
			Next:         c.chain(in.Next),
		}
		if in.Memory != 0 {
			infos[i].MemoryOffset = r.bindOffset(imageKey(in.Image), in.MemoryOffset)
		}
	}
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	return r.result(ctx, a.CmdName(), a.Result, r.drv.BindImageMemory2(dev, infos))
}
