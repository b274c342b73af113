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

package swapchain

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ARM-software/vktrace-arm-sub000/core/fault"
	"github.com/ARM-software/vktrace-arm-sub000/core/log"
	"github.com/ARM-software/vktrace-arm-sub000/replay/api"
	"github.com/ARM-software/vktrace-arm-sub000/replay/driver"
)

const (
	ErrUnknownSwapchain   = fault.Const("Swapchain is not virtualized")
	ErrImageIndex         = fault.Const("Swapchain image index out of range")
	ErrNoMemoryType       = fault.Const("No memory type for virtual image")
	ErrVirtualImageFailed = fault.Const("Failed to create virtual image resources")
)

// VirtualImage is an off-screen image standing in for one presentable image,
// together with the objects used to blit it at present time.
type VirtualImage struct {
	Image         api.VkImage
	Memory        api.VkDeviceMemory
	Fence         api.VkFence
	Semaphore     api.VkSemaphore
	Pool          api.VkCommandPool
	CommandBuffer api.VkCommandBuffer
	// Presents counts the blits recorded from this image.
	Presents int
}

// SwapchainInfo describes a live swapchain to virtualize.
type SwapchainInfo struct {
	Device      api.VkDevice
	QueueFamily uint32
	Memory      api.MemoryProperties
	Format      api.Format
	Extent      api.Extent2D
	ArrayLayers uint32
	Usage       api.ImageUsageFlags
	// Images is the number of virtual images. 0 means one per real image.
	Images int
}

type virtualSwapchain struct {
	info   SwapchainInfo
	real   []api.VkImage
	images []*VirtualImage
}

// Virtual is the virtual swapchain. Replayed rendering targets its images
// and each present blits the virtual image into the real presentable one.
//
// Virtual is not safe for concurrent use.
type Virtual struct {
	drv        driver.Driver
	swapchains map[api.VkSwapchainKHR]*virtualSwapchain
	pending    map[api.VkDevice][]api.VkFence
}

// NewVirtual returns a virtual swapchain issuing calls to drv.
func NewVirtual(drv driver.Driver) *Virtual {
	return &Virtual{
		drv:        drv,
		swapchains: map[api.VkSwapchainKHR]*virtualSwapchain{},
		pending:    map[api.VkDevice][]api.VkFence{},
	}
}

// Register virtualizes the live swapchain whose presentable images are real.
func (v *Virtual) Register(sc api.VkSwapchainKHR, info SwapchainInfo, real []api.VkImage) {
	if info.ArrayLayers == 0 {
		info.ArrayLayers = 1
	}
	if info.Images == 0 {
		info.Images = len(real)
	}
	v.swapchains[sc] = &virtualSwapchain{
		info:   info,
		real:   append([]api.VkImage(nil), real...),
		images: make([]*VirtualImage, info.Images),
	}
}

// Registered returns true if sc is virtualized.
func (v *Virtual) Registered(sc api.VkSwapchainKHR) bool {
	_, ok := v.swapchains[sc]
	return ok
}

// Image returns the virtual image at index if it has been created.
func (v *Virtual) Image(sc api.VkSwapchainKHR, index uint32) (*VirtualImage, bool) {
	s, ok := v.swapchains[sc]
	if !ok || int(index) >= len(s.images) || s.images[index] == nil {
		return nil, false
	}
	return s.images[index], true
}

// Images returns the virtual images of sc, creating any that do not exist
// yet.
func (v *Virtual) Images(ctx context.Context, sc api.VkSwapchainKHR) ([]api.VkImage, error) {
	s, ok := v.swapchains[sc]
	if !ok {
		return nil, ErrUnknownSwapchain
	}
	out := make([]api.VkImage, len(s.images))
	for i := range s.images {
		vi, err := v.get(ctx, s, i)
		if err != nil {
			return nil, err
		}
		out[i] = vi.Image
	}
	return out, nil
}

func (v *Virtual) get(ctx context.Context, s *virtualSwapchain, index int) (*VirtualImage, error) {
	if vi := s.images[index]; vi != nil {
		return vi, nil
	}
	vi, err := v.create(ctx, s.info)
	if err != nil {
		return nil, err
	}
	s.images[index] = vi
	log.D(ctx, "Created virtual image %v for swapchain image %d", vi.Image, index)
	return vi, nil
}

func failed(call string, res api.VkResult) error {
	return errors.Wrapf(ErrVirtualImageFailed, "%s returned %v", call, res)
}

func (v *Virtual) create(ctx context.Context, info SwapchainInfo) (*VirtualImage, error) {
	dev := info.Device
	vi := &VirtualImage{}
	var res api.VkResult

	vi.Image, res = v.drv.CreateImage(dev, &api.ImageCreateInfo{
		ImageType:     1, // VK_IMAGE_TYPE_2D
		Format:        info.Format,
		Extent:        api.Extent3D{Width: info.Extent.Width, Height: info.Extent.Height, Depth: 1},
		MipLevels:     1,
		ArrayLayers:   info.ArrayLayers,
		Samples:       1,
		Usage:         info.Usage | api.ImageUsageTransferSrc,
		SharingMode:   api.SharingModeExclusive,
		InitialLayout: api.ImageLayoutUndefined,
	})
	if res != api.VK_SUCCESS {
		return nil, failed("vkCreateImage", res)
	}
	reqs := v.drv.GetImageMemoryRequirements(dev, vi.Image)
	typeIndex, ok := pickMemoryType(info.Memory, reqs.MemoryTypeBits)
	if !ok {
		v.release(dev, vi)
		return nil, ErrNoMemoryType
	}
	vi.Memory, res = v.drv.AllocateMemory(dev, &api.MemoryAllocateInfo{
		AllocationSize:  reqs.Size,
		MemoryTypeIndex: typeIndex,
	})
	if res != api.VK_SUCCESS {
		v.release(dev, vi)
		return nil, failed("vkAllocateMemory", res)
	}
	if res = v.drv.BindImageMemory(dev, vi.Image, vi.Memory, 0); res != api.VK_SUCCESS {
		v.release(dev, vi)
		return nil, failed("vkBindImageMemory", res)
	}
	// Created signaled so every present can wait then reset.
	if vi.Fence, res = v.drv.CreateFence(dev, &api.FenceCreateInfo{Flags: api.FenceCreateSignaled}); res != api.VK_SUCCESS {
		v.release(dev, vi)
		return nil, failed("vkCreateFence", res)
	}
	if vi.Semaphore, res = v.drv.CreateSemaphore(dev, &api.SemaphoreCreateInfo{}); res != api.VK_SUCCESS {
		v.release(dev, vi)
		return nil, failed("vkCreateSemaphore", res)
	}
	vi.Pool, res = v.drv.CreateCommandPool(dev, &api.CommandPoolCreateInfo{
		Flags:            api.CommandPoolCreateTransient | api.CommandPoolCreateResetCommandBuffer,
		QueueFamilyIndex: info.QueueFamily,
	})
	if res != api.VK_SUCCESS {
		v.release(dev, vi)
		return nil, failed("vkCreateCommandPool", res)
	}
	cbs, res := v.drv.AllocateCommandBuffers(dev, &api.CommandBufferAllocateInfo{
		CommandPool:        vi.Pool,
		Level:              api.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	})
	if res != api.VK_SUCCESS || len(cbs) != 1 {
		v.release(dev, vi)
		return nil, failed("vkAllocateCommandBuffers", res)
	}
	vi.CommandBuffer = cbs[0]
	return vi, nil
}

// pickMemoryType returns the first allowed DEVICE_LOCAL memory type, or the
// first allowed type if none is device local.
func pickMemoryType(props api.MemoryProperties, allowed uint32) (uint32, bool) {
	fallback, found := uint32(0), false
	for i, t := range props.Types {
		if i >= 32 || allowed&(1<<uint(i)) == 0 {
			continue
		}
		if t.PropertyFlags.Contains(api.MemoryDeviceLocal) {
			return uint32(i), true
		}
		if !found {
			fallback, found = uint32(i), true
		}
	}
	return fallback, found
}

func (v *Virtual) release(dev api.VkDevice, vi *VirtualImage) {
	if vi.CommandBuffer != 0 {
		v.drv.FreeCommandBuffers(dev, vi.Pool, []api.VkCommandBuffer{vi.CommandBuffer})
	}
	if vi.Pool != 0 {
		v.drv.DestroyCommandPool(dev, vi.Pool)
	}
	if vi.Semaphore != 0 {
		v.drv.DestroySemaphore(dev, vi.Semaphore)
	}
	if vi.Fence != 0 {
		v.drv.DestroyFence(dev, vi.Fence)
	}
	if vi.Image != 0 {
		v.drv.DestroyImage(dev, vi.Image)
	}
	if vi.Memory != 0 {
		v.drv.FreeMemory(dev, vi.Memory)
	}
}

func colorRange(layers uint32) api.ImageSubresourceRange {
	return api.ImageSubresourceRange{AspectMask: api.ImageAspectColor, LevelCount: 1, LayerCount: layers}
}

func barrier(img api.VkImage, layers uint32, src, dst api.AccessFlags, from, to api.ImageLayout) api.ImageMemoryBarrier {
	return api.ImageMemoryBarrier{
		SrcAccessMask:       src,
		DstAccessMask:       dst,
		OldLayout:           from,
		NewLayout:           to,
		SrcQueueFamilyIndex: api.QueueFamilyIgnored,
		DstQueueFamilyIndex: api.QueueFamilyIgnored,
		Image:               img,
		SubresourceRange:    colorRange(layers),
	}
}

// Present blits the virtual image at virtualIndex into the real image at
// realIndex on queue. The blit waits on waits and signals a semaphore, which
// is returned for the present to wait on instead.
func (v *Virtual) Present(ctx context.Context, queue api.VkQueue, sc api.VkSwapchainKHR, virtualIndex, realIndex uint32, waits []api.VkSemaphore) (api.VkSemaphore, error) {
	s, ok := v.swapchains[sc]
	if !ok {
		return 0, ErrUnknownSwapchain
	}
	if int(virtualIndex) >= len(s.images) || int(realIndex) >= len(s.real) {
		return 0, errors.Wrapf(ErrImageIndex, "virtual %d, real %d of %d", virtualIndex, realIndex, len(s.real))
	}
	vi, err := v.get(ctx, s, int(virtualIndex))
	if err != nil {
		return 0, err
	}
	dev := s.info.Device

	// The previous blit from this image must be done before its command
	// buffer is re-recorded and its fence resubmitted.
	if res := v.drv.WaitForFences(dev, []api.VkFence{vi.Fence}, true, api.Infinite); res != api.VK_SUCCESS {
		return 0, failed("vkWaitForFences", res)
	}
	if res := v.drv.ResetFences(dev, []api.VkFence{vi.Fence}); res != api.VK_SUCCESS {
		return 0, failed("vkResetFences", res)
	}
	v.settle(dev, vi.Fence)

	cb, real, layers := vi.CommandBuffer, s.real[realIndex], s.info.ArrayLayers
	if res := v.drv.ResetCommandBuffer(cb, 0); res != api.VK_SUCCESS {
		return 0, failed("vkResetCommandBuffer", res)
	}
	if res := v.drv.BeginCommandBuffer(cb, &api.CommandBufferBeginInfo{Flags: api.CommandBufferUsageOneTimeSubmit}); res != api.VK_SUCCESS {
		return 0, failed("vkBeginCommandBuffer", res)
	}
	v.drv.CmdPipelineBarrier(cb, api.PipelineStageAllCommands, api.PipelineStageTransfer, 0, nil, nil, []api.ImageMemoryBarrier{
		barrier(vi.Image, layers, api.AccessMemoryWrite, api.AccessTransferRead, api.ImageLayoutPresentSrcKHR, api.ImageLayoutTransferSrcOptimal),
		barrier(real, layers, 0, api.AccessTransferWrite, api.ImageLayoutUndefined, api.ImageLayoutTransferDstOptimal),
	})
	v.drv.CmdCopyImage(cb, vi.Image, api.ImageLayoutTransferSrcOptimal, real, api.ImageLayoutTransferDstOptimal, []api.ImageCopy{{
		SrcSubresource: api.ImageSubresourceLayers{AspectMask: api.ImageAspectColor, LayerCount: layers},
		DstSubresource: api.ImageSubresourceLayers{AspectMask: api.ImageAspectColor, LayerCount: layers},
		Extent:         api.Extent3D{Width: s.info.Extent.Width, Height: s.info.Extent.Height, Depth: 1},
	}})
	v.drv.CmdPipelineBarrier(cb, api.PipelineStageTransfer, api.PipelineStageBottomOfPipe, 0, nil, nil, []api.ImageMemoryBarrier{
		barrier(vi.Image, layers, api.AccessTransferRead, 0, api.ImageLayoutTransferSrcOptimal, api.ImageLayoutPresentSrcKHR),
		barrier(real, layers, api.AccessTransferWrite, api.AccessMemoryRead, api.ImageLayoutTransferDstOptimal, api.ImageLayoutPresentSrcKHR),
	})
	if res := v.drv.EndCommandBuffer(cb); res != api.VK_SUCCESS {
		return 0, failed("vkEndCommandBuffer", res)
	}

	stages := make([]api.PipelineStageFlags, len(waits))
	for i := range stages {
		stages[i] = api.PipelineStageTransfer
	}
	submit := api.SubmitInfo{
		WaitSemaphores:   waits,
		WaitDstStageMask: stages,
		CommandBuffers:   []api.VkCommandBuffer{cb},
		SignalSemaphores: []api.VkSemaphore{vi.Semaphore},
	}
	if res := v.drv.QueueSubmit(queue, []api.SubmitInfo{submit}, vi.Fence); res != api.VK_SUCCESS {
		return 0, failed("vkQueueSubmit", res)
	}
	v.pending[dev] = append(v.pending[dev], vi.Fence)
	vi.Presents++
	return vi.Semaphore, nil
}

func (v *Virtual) settle(dev api.VkDevice, fence api.VkFence) {
	fences := v.pending[dev]
	for i, f := range fences {
		if f == fence {
			v.pending[dev] = append(fences[:i:i], fences[i+1:]...)
			return
		}
	}
}

// Pending returns the blit fences submitted on dev and not yet waited on.
func (v *Virtual) Pending(dev api.VkDevice) []api.VkFence {
	return append([]api.VkFence(nil), v.pending[dev]...)
}

// WaitPending blocks until every blit submitted on dev has completed.
func (v *Virtual) WaitPending(ctx context.Context, dev api.VkDevice) error {
	fences := v.pending[dev]
	if len(fences) == 0 {
		return nil
	}
	if res := v.drv.WaitForFences(dev, fences, true, api.Infinite); res != api.VK_SUCCESS {
		return failed("vkWaitForFences", res)
	}
	delete(v.pending, dev)
	return nil
}

// Destroy releases the virtual images of sc once their blits have completed.
func (v *Virtual) Destroy(ctx context.Context, sc api.VkSwapchainKHR) {
	s, ok := v.swapchains[sc]
	if !ok {
		return
	}
	dev := s.info.Device
	for _, vi := range s.images {
		if vi == nil {
			continue
		}
		if res := v.drv.WaitForFences(dev, []api.VkFence{vi.Fence}, true, api.Infinite); res != api.VK_SUCCESS {
			log.W(ctx, "Waiting for blit of virtual image %v: %v", vi.Image, res)
		}
		v.settle(dev, vi.Fence)
		v.release(dev, vi)
	}
	delete(v.swapchains, sc)
}
