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

const requirementAlignment = 0x100

func (d *Driver) requirements(device api.VkDevice, size uint64) api.MemoryRequirements {
	dev := d.deviceOf(device)
	bits := dev.MemoryTypeBits
	if bits == 0 {
		bits = uint32(1)<<uint(len(dev.Memory.Types)) - 1
	}
	return api.MemoryRequirements{
		Size:           (size + requirementAlignment - 1) &^ (requirementAlignment - 1),
		Alignment:      requirementAlignment,
		MemoryTypeBits: bits,
	}
}

func (d *Driver) AllocateMemory(device api.VkDevice, info *api.MemoryAllocateInfo) (api.VkDeviceMemory, api.VkResult) {
	d.check(api.TypeDevice, uint64(device))
	dev := d.deviceOf(device)
	if int(info.MemoryTypeIndex) >= len(dev.Memory.Types) {
		d.validationErrors++
		return 0, api.VK_ERROR_OUT_OF_DEVICE_MEMORY
	}
	if n, ok := api.FindAs[*api.MemoryDedicatedAllocateInfo](info.Next); ok {
		d.check(api.TypeImage, uint64(n.Image))
		d.check(api.TypeBuffer, uint64(n.Buffer))
	}
	h := api.VkDeviceMemory(d.create(api.TypeDeviceMemory, uint64(device)))
	d.sizes[uint64(h)] = info.AllocationSize
	if n, ok := api.FindAs[*api.MemoryOpaqueCaptureAddressAllocateInfo](info.Next); ok && n.OpaqueCaptureAddress != 0 {
		d.addresses[uint64(h)] = n.OpaqueCaptureAddress
	} else {
		d.addresses[uint64(h)] = d.allocAddress(info.AllocationSize)
	}
	d.record("vkAllocateMemory", device, info.MemoryTypeIndex, info.AllocationSize, h)
	return h, api.VK_SUCCESS
}

func (d *Driver) FreeMemory(device api.VkDevice, memory api.VkDeviceMemory) {
	d.record("vkFreeMemory", device, memory)
	d.destroy(api.TypeDeviceMemory, uint64(memory))
}

func (d *Driver) MapMemory(device api.VkDevice, memory api.VkDeviceMemory, offset, size uint64) api.VkResult {
	d.record("vkMapMemory", device, memory, offset, size)
	if !d.check(api.TypeDeviceMemory, uint64(memory)) {
		return api.VK_ERROR_MEMORY_MAP_FAILED
	}
	return api.VK_SUCCESS
}

func (d *Driver) UnmapMemory(device api.VkDevice, memory api.VkDeviceMemory) {
	d.record("vkUnmapMemory", device, memory)
	d.check(api.TypeDeviceMemory, uint64(memory))
}

func (d *Driver) FlushMappedMemoryRanges(device api.VkDevice, ranges []api.MappedMemoryRange) api.VkResult {
	d.record("vkFlushMappedMemoryRanges", device, len(ranges))
	for _, r := range ranges {
		d.check(api.TypeDeviceMemory, uint64(r.Memory))
	}
	return api.VK_SUCCESS
}

func (d *Driver) GetDeviceMemoryOpaqueCaptureAddress(device api.VkDevice, memory api.VkDeviceMemory) uint64 {
	d.record("vkGetDeviceMemoryOpaqueCaptureAddress", device, memory)
	d.check(api.TypeDeviceMemory, uint64(memory))
	return d.addresses[uint64(memory)]
}

func (d *Driver) CreateBuffer(device api.VkDevice, info *api.BufferCreateInfo) (api.VkBuffer, api.VkResult) {
	d.check(api.TypeDevice, uint64(device))
	h := api.VkBuffer(d.create(api.TypeBuffer, uint64(device)))
	d.sizes[uint64(h)] = info.Size
	if n, ok := api.FindAs[*api.BufferOpaqueCaptureAddressCreateInfo](info.Next); ok && n.OpaqueCaptureAddress != 0 {
		if info.Flags&api.BufferCreateDeviceAddressCaptureReplay == 0 {
			d.validationErrors++
		}
		d.addresses[uint64(h)] = n.OpaqueCaptureAddress
	} else if info.Usage&api.BufferUsageShaderDeviceAddress != 0 {
		d.addresses[uint64(h)] = d.allocAddress(info.Size)
	}
	d.record("vkCreateBuffer", device, info.Size, h)
	return h, api.VK_SUCCESS
}

func (d *Driver) DestroyBuffer(device api.VkDevice, buffer api.VkBuffer) {
	d.record("vkDestroyBuffer", device, buffer)
	d.destroy(api.TypeBuffer, uint64(buffer))
}

func (d *Driver) GetBufferMemoryRequirements(device api.VkDevice, buffer api.VkBuffer) api.MemoryRequirements {
	d.record("vkGetBufferMemoryRequirements", device, buffer)
	d.check(api.TypeBuffer, uint64(buffer))
	return d.requirements(device, d.sizes[uint64(buffer)])
}

func (d *Driver) BindBufferMemory(device api.VkDevice, buffer api.VkBuffer, memory api.VkDeviceMemory, offset uint64) api.VkResult {
	d.record("vkBindBufferMemory", device, buffer, memory, offset)
	d.check(api.TypeBuffer, uint64(buffer))
	d.check(api.TypeDeviceMemory, uint64(memory))
	return api.VK_SUCCESS
}

func (d *Driver) BindBufferMemory2(device api.VkDevice, infos []api.BindBufferMemoryInfo) api.VkResult {
	d.record("vkBindBufferMemory2", device, len(infos))
	for _, i := range infos {
		d.check(api.TypeBuffer, uint64(i.Buffer))
		d.check(api.TypeDeviceMemory, uint64(i.Memory))
	}
	return api.VK_SUCCESS
}

func (d *Driver) GetBufferDeviceAddress(device api.VkDevice, buffer api.VkBuffer) uint64 {
	d.record("vkGetBufferDeviceAddress", device, buffer)
	d.check(api.TypeBuffer, uint64(buffer))
	if _, ok := d.addresses[uint64(buffer)]; !ok {
		d.addresses[uint64(buffer)] = d.allocAddress(d.sizes[uint64(buffer)])
	}
	return d.addresses[uint64(buffer)]
}

func (d *Driver) GetBufferOpaqueCaptureAddress(device api.VkDevice, buffer api.VkBuffer) uint64 {
	d.record("vkGetBufferOpaqueCaptureAddress", device, buffer)
	return d.GetBufferDeviceAddress(device, buffer)
}

func (d *Driver) CreateImage(device api.VkDevice, info *api.ImageCreateInfo) (api.VkImage, api.VkResult) {
	d.check(api.TypeDevice, uint64(device))
	if n, ok := api.FindAs[*api.ImageSwapchainCreateInfo](info.Next); ok {
		d.check(api.TypeSwapchainKHR, uint64(n.Swapchain))
	}
	h := api.VkImage(d.create(api.TypeImage, uint64(device)))
	e := info.Extent
	d.sizes[uint64(h)] = uint64(e.Width) * uint64(e.Height) * uint64(max(e.Depth, 1)) * 4
	d.record("vkCreateImage", device, info.Format, info.Usage, h)
	return h, api.VK_SUCCESS
}

func (d *Driver) DestroyImage(device api.VkDevice, image api.VkImage) {
	d.record("vkDestroyImage", device, image)
	d.destroy(api.TypeImage, uint64(image))
}

func (d *Driver) GetImageMemoryRequirements(device api.VkDevice, image api.VkImage) api.MemoryRequirements {
	d.record("vkGetImageMemoryRequirements", device, image)
	d.check(api.TypeImage, uint64(image))
	return d.requirements(device, d.sizes[uint64(image)])
}

func (d *Driver) BindImageMemory(device api.VkDevice, image api.VkImage, memory api.VkDeviceMemory, offset uint64) api.VkResult {
	d.record("vkBindImageMemory", device, image, memory, offset)
	d.check(api.TypeImage, uint64(image))
	d.check(api.TypeDeviceMemory, uint64(memory))
	return api.VK_SUCCESS
}

func (d *Driver) BindImageMemory2(device api.VkDevice, infos []api.BindImageMemoryInfo) api.VkResult {
	d.record("vkBindImageMemory2", device, len(infos))
	for _, i := range infos {
		d.check(api.TypeImage, uint64(i.Image))
		if n, ok := api.FindAs[*api.BindImageMemorySwapchainInfo](i.Next); ok {
			d.check(api.TypeSwapchainKHR, uint64(n.Swapchain))
			if sc, ok := d.swapchains[n.Swapchain]; ok && int(n.ImageIndex) >= len(sc.images) {
				d.validationErrors++
			}
			continue
		}
		d.check(api.TypeDeviceMemory, uint64(i.Memory))
	}
	return api.VK_SUCCESS
}

func (d *Driver) CreateBufferView(device api.VkDevice, info *api.BufferViewCreateInfo) (api.VkBufferView, api.VkResult) {
	d.check(api.TypeBuffer, uint64(info.Buffer))
	h := api.VkBufferView(d.create(api.TypeBufferView, uint64(device)))
	d.record("vkCreateBufferView", device, info.Buffer, h)
	return h, api.VK_SUCCESS
}

func (d *Driver) DestroyBufferView(device api.VkDevice, view api.VkBufferView) {
	d.record("vkDestroyBufferView", device, view)
	d.destroy(api.TypeBufferView, uint64(view))
}

func (d *Driver) CreateImageView(device api.VkDevice, info *api.ImageViewCreateInfo) (api.VkImageView, api.VkResult) {
	d.check(api.TypeImage, uint64(info.Image))
	h := api.VkImageView(d.create(api.TypeImageView, uint64(device)))
	d.record("vkCreateImageView", device, info.Image, h)
	return h, api.VK_SUCCESS
}

func (d *Driver) DestroyImageView(device api.VkDevice, view api.VkImageView) {
	d.record("vkDestroyImageView", device, view)
	d.destroy(api.TypeImageView, uint64(view))
}

func (d *Driver) CreateSampler(device api.VkDevice, info *api.SamplerCreateInfo) (api.VkSampler, api.VkResult) {
	if n, ok := api.FindAs[*api.SamplerYcbcrConversionInfo](info.Next); ok {
		d.check(api.TypeSamplerYcbcrConversion, uint64(n.Conversion))
	}
	h := api.VkSampler(d.create(api.TypeSampler, uint64(device)))
	d.record("vkCreateSampler", device, h)
	return h, api.VK_SUCCESS
}

func (d *Driver) DestroySampler(device api.VkDevice, sampler api.VkSampler) {
	d.record("vkDestroySampler", device, sampler)
	d.destroy(api.TypeSampler, uint64(sampler))
}

func (d *Driver) CreateSamplerYcbcrConversion(device api.VkDevice, info *api.SamplerYcbcrConversionCreateInfo) (api.VkSamplerYcbcrConversion, api.VkResult) {
	h := api.VkSamplerYcbcrConversion(d.create(api.TypeSamplerYcbcrConversion, uint64(device)))
	d.record("vkCreateSamplerYcbcrConversion", device, h)
	return h, api.VK_SUCCESS
}

func (d *Driver) DestroySamplerYcbcrConversion(device api.VkDevice, conversion api.VkSamplerYcbcrConversion) {
	d.record("vkDestroySamplerYcbcrConversion", device, conversion)
	d.destroy(api.TypeSamplerYcbcrConversion, uint64(conversion))
}

func (d *Driver) CreateDescriptorSetLayout(device api.VkDevice, info *api.DescriptorSetLayoutCreateInfo) (api.VkDescriptorSetLayout, api.VkResult) {
	for _, b := range info.Bindings {
		checkAll(d, b.ImmutableSamplers)
	}
	h := api.VkDescriptorSetLayout(d.create(api.TypeDescriptorSetLayout, uint64(device)))
	d.record("vkCreateDescriptorSetLayout", device, h)
	return h, api.VK_SUCCESS
}

func (d *Driver) DestroyDescriptorSetLayout(device api.VkDevice, layout api.VkDescriptorSetLayout) {
	d.record("vkDestroyDescriptorSetLayout", device, layout)
	d.destroy(api.TypeDescriptorSetLayout, uint64(layout))
}

func (d *Driver) CreateDescriptorPool(device api.VkDevice, info *api.DescriptorPoolCreateInfo) (api.VkDescriptorPool, api.VkResult) {
	h := api.VkDescriptorPool(d.create(api.TypeDescriptorPool, uint64(device)))
	d.record("vkCreateDescriptorPool", device, h)
	return h, api.VK_SUCCESS
}

func (d *Driver) DestroyDescriptorPool(device api.VkDevice, pool api.VkDescriptorPool) {
	d.record("vkDestroyDescriptorPool", device, pool)
	d.destroy(api.TypeDescriptorPool, uint64(pool))
}

func (d *Driver) ResetDescriptorPool(device api.VkDevice, pool api.VkDescriptorPool) api.VkResult {
	d.record("vkResetDescriptorPool", device, pool)
	d.check(api.TypeDescriptorPool, uint64(pool))
	return api.VK_SUCCESS
}

func (d *Driver) AllocateDescriptorSets(device api.VkDevice, info *api.DescriptorSetAllocateInfo) ([]api.VkDescriptorSet, api.VkResult) {
	d.check(api.TypeDescriptorPool, uint64(info.DescriptorPool))
	checkAll(d, info.SetLayouts)
	out := make([]api.VkDescriptorSet, len(info.SetLayouts))
	for i := range out {
		out[i] = api.VkDescriptorSet(d.create(api.TypeDescriptorSet, uint64(info.DescriptorPool)))
	}
	d.record("vkAllocateDescriptorSets", device, out)
	return out, api.VK_SUCCESS
}

func (d *Driver) FreeDescriptorSets(device api.VkDevice, pool api.VkDescriptorPool, sets []api.VkDescriptorSet) api.VkResult {
	d.record("vkFreeDescriptorSets", device, pool, sets)
	for _, s := range sets {
		d.destroy(api.TypeDescriptorSet, uint64(s))
	}
	return api.VK_SUCCESS
}

func (d *Driver) UpdateDescriptorSets(device api.VkDevice, writes []api.WriteDescriptorSet, copies []api.CopyDescriptorSet) {
	d.record("vkUpdateDescriptorSets", device, len(writes), len(copies))
	for _, w := range writes {
		d.check(api.TypeDescriptorSet, uint64(w.DstSet))
		for _, i := range w.ImageInfo {
			d.check(api.TypeSampler, uint64(i.Sampler))
			d.check(api.TypeImageView, uint64(i.ImageView))
		}
		for _, b := range w.BufferInfo {
			d.check(api.TypeBuffer, uint64(b.Buffer))
		}
		checkAll(d, w.TexelBufferView)
		if n, ok := api.FindAs[*api.WriteDescriptorSetAccelerationStructure](w.Next); ok {
			checkAll(d, n.AccelerationStructures)
		}
	}
	for _, c := range copies {
		d.check(api.TypeDescriptorSet, uint64(c.SrcSet))
		d.check(api.TypeDescriptorSet, uint64(c.DstSet))
	}
}
