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
	"sort"

	"github.com/ARM-software/vktrace-arm-sub000/core/log"
	"github.com/ARM-software/vktrace-arm-sub000/replay/api"
	"github.com/ARM-software/vktrace-arm-sub000/replay/compat"
	"github.com/ARM-software/vktrace-arm-sub000/replay/swapchain"
)

// VkCreateSurface presents every captured surface of an instance to a single
// live surface.
type VkCreateSurface struct {
	Instance api.VkInstance
	Surface  api.VkSurfaceKHR
	Result   api.VkResult
}

func (*VkCreateSurface) CmdName() string { return "vkCreateSurfaceKHR" }

func (a *VkCreateSurface) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	inst := live(c, a.Instance)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	if w, ok := r.windows[a.Instance]; ok {
		w.refs++
		add(ctx, r, a.Surface, w.surface)
		return r.result(ctx, a.CmdName(), a.Result, api.VK_SUCCESS)
	}
	surface, res := r.drv.CreateSurface(inst)
	if res == api.VK_SUCCESS {
		r.windows[a.Instance] = &window{surface: surface, refs: 1}
		add(ctx, r, a.Surface, surface)
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkDestroySurface struct {
	Instance api.VkInstance
	Surface  api.VkSurfaceKHR
}

func (*VkDestroySurface) CmdName() string { return "vkDestroySurfaceKHR" }

func (a *VkDestroySurface) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	inst, surface := live(c, a.Instance), live(c, a.Surface)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	forget(r, a.Surface)
	if w, ok := r.windows[a.Instance]; ok && w.surface == surface {
		if w.refs--; w.refs > 0 {
			return Success
		}
		delete(r.windows, a.Instance)
	}
	r.drv.DestroySurface(inst, surface)
	return Success
}

type VkGetPhysicalDeviceSurfaceSupport struct {
	PhysicalDevice   api.VkPhysicalDevice
	QueueFamilyIndex uint32
	Surface          api.VkSurfaceKHR
	Supported        bool
	Result           api.VkResult
}

func (*VkGetPhysicalDeviceSurfaceSupport) CmdName() string {
	return "vkGetPhysicalDeviceSurfaceSupportKHR"
}

func (a *VkGetPhysicalDeviceSurfaceSupport) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	pd, surface := live(c, a.PhysicalDevice), live(c, a.Surface)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	capture, replay := r.devicePair(a.PhysicalDevice)
	family, _, err := compat.ResolveQueueFamily(ctx, a.QueueFamilyIndex, capture, replay, r.settings.CompatibilityMode)
	if err != nil {
		log.W(ctx, "Queue family %d: %v", a.QueueFamilyIndex, err)
	}
	supported, res := r.drv.GetPhysicalDeviceSurfaceSupport(pd, family, surface)
	if a.Supported && !supported {
		log.W(ctx, "Queue family %d cannot present on the replay device", family)
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkGetPhysicalDeviceSurfaceCapabilities struct {
	PhysicalDevice api.VkPhysicalDevice
	Surface        api.VkSurfaceKHR
	Capabilities   api.SurfaceCapabilities
	Result         api.VkResult
}

func (*VkGetPhysicalDeviceSurfaceCapabilities) CmdName() string {
	return "vkGetPhysicalDeviceSurfaceCapabilitiesKHR"
}

func (a *VkGetPhysicalDeviceSurfaceCapabilities) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	pd, surface := live(c, a.PhysicalDevice), live(c, a.Surface)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	caps, res := r.drv.GetPhysicalDeviceSurfaceCapabilities(pd, surface)
	if res == api.VK_SUCCESS && caps.MinImageCount != a.Capabilities.MinImageCount {
		log.D(ctx, "Surface needs %d images, captured %d", caps.MinImageCount, a.Capabilities.MinImageCount)
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkCreateSwapchain struct {
	Device    api.VkDevice
	Info      api.SwapchainCreateInfo
	Swapchain api.VkSwapchainKHR
	Result    api.VkResult
}

func (*VkCreateSwapchain) CmdName() string { return "vkCreateSwapchainKHR" }

func (a *VkCreateSwapchain) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev := live(c, a.Device)
	info := a.Info
	info.Surface = live(c, a.Info.Surface)
	info.OldSwapchain = live(c, a.Info.OldSwapchain)
	info.Next = c.chain(a.Info.Next)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	d := r.device(a.Device)
	info.QueueFamilyIndices = r.familyList(ctx, c, d, a.Info.QueueFamilyIndices)
	if s, skip := c.skipped(ctx); skip {
		return s
	}

	// A second captured swapchain on the live window shares the live
	// swapchain already there.
	if sc, ok := r.surfaces[info.Surface]; ok && sc != info.OldSwapchain {
		log.I(ctx, "Swapchain %v shares live swapchain %v", a.Swapchain, sc)
		r.trackers.Get(sc).Push()
		add(ctx, r, a.Swapchain, sc)
		r.swapchains[a.Swapchain] = &swapchainState{
			device:    a.Device,
			live:      sc,
			surface:   info.Surface,
			info:      info,
			coalesced: true,
		}
		return r.result(ctx, a.CmdName(), a.Result, api.VK_SUCCESS)
	}

	if d != nil {
		if caps, res := r.drv.GetPhysicalDeviceSurfaceCapabilities(d.livePD, info.Surface); res == api.VK_SUCCESS {
			n := max(info.MinImageCount, caps.MinImageCount)
			if caps.MaxImageCount > 0 && n > caps.MaxImageCount {
				n = caps.MaxImageCount
			}
			if n != info.MinImageCount {
				log.I(ctx, "Swapchain image count %d clamped to %d", info.MinImageCount, n)
				info.MinImageCount = n
			}
		}
	}
	if r.settings.EnableVirtualSwapchain {
		info.ImageUsage |= api.ImageUsageTransferDst
	}
	sc, res := r.drv.CreateSwapchain(dev, &info)
	if res == api.VK_SUCCESS {
		add(ctx, r, a.Swapchain, sc)
		r.swapchains[a.Swapchain] = &swapchainState{
			device:  a.Device,
			live:    sc,
			surface: info.Surface,
			info:    info,
		}
		r.surfaces[info.Surface] = sc
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkDestroySwapchain struct {
	Device    api.VkDevice
	Swapchain api.VkSwapchainKHR
}

func (*VkDestroySwapchain) CmdName() string { return "vkDestroySwapchainKHR" }

func (a *VkDestroySwapchain) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, sc := live(c, a.Device), live(c, a.Swapchain)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	st, ok := r.swapchains[a.Swapchain]
	delete(r.swapchains, a.Swapchain)
	forget(r, a.Swapchain)
	if ok {
		forgetAll(r, st.images)
	}
	if ok && st.coalesced {
		if t, ok := r.trackers.Lookup(sc); !ok || !t.Pop() {
			log.W(ctx, "Swapchain %v had no saved image correlations", a.Swapchain)
		}
		return Success
	}
	if t, ok := r.trackers.Lookup(sc); ok && t.Depth() > 0 {
		log.W(ctx, "Destroying live swapchain %v still shared by %d captured swapchains", sc, t.Depth())
	}
	r.releaseSwapchain(ctx, dev, sc)
	return Success
}

// releaseSwapchain destroys a live swapchain with its virtual images and
// image correlations.
func (r *Replayer) releaseSwapchain(ctx context.Context, dev api.VkDevice, sc api.VkSwapchainKHR) {
	r.virtual.Destroy(ctx, sc)
	r.trackers.Delete(sc)
	for surface, s := range r.surfaces {
		if s == sc {
			delete(r.surfaces, surface)
		}
	}
	r.drv.DestroySwapchain(dev, sc)
}

// presentFamily returns a live queue family of d able to run the blits of
// the virtual swapchain.
func (r *Replayer) presentFamily(d *deviceState) uint32 {
	_, replay := r.infos(d)
	families := make([]uint32, 0, len(d.queues))
	for f := range d.queues {
		families = append(families, f)
	}
	sort.Slice(families, func(i, j int) bool { return families[i] < families[j] })
	for _, f := range families {
		if int(f) < len(replay.QueueFamilies) && replay.QueueFamilies[f].QueueFlags.Contains(api.QueueGraphics) {
			return f
		}
	}
	if len(families) > 0 {
		return families[0]
	}
	return 0
}

type VkGetSwapchainImages struct {
	Device    api.VkDevice
	Swapchain api.VkSwapchainKHR
	Images    []api.VkImage
	Result    api.VkResult
}

func (*VkGetSwapchainImages) CmdName() string { return "vkGetSwapchainImagesKHR" }

func (a *VkGetSwapchainImages) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, sc := live(c, a.Device), live(c, a.Swapchain)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	presentable, res := r.drv.GetSwapchainImages(dev, sc)
	if res != api.VK_SUCCESS || len(a.Images) == 0 || len(presentable) == 0 {
		return r.result(ctx, a.CmdName(), a.Result, res)
	}
	st := r.swapchains[a.Swapchain]
	d := r.device(a.Device)

	images := presentable
	if r.settings.EnableVirtualSwapchain && st != nil && d != nil {
		if !r.virtual.Registered(sc) {
			_, replay := r.infos(d)
			info := swapchain.SwapchainInfo{
				Device:      dev,
				QueueFamily: r.presentFamily(d),
				Format:      st.info.ImageFormat,
				Extent:      st.info.ImageExtent,
				ArrayLayers: st.info.ImageArrayLayers,
				Usage:       st.info.ImageUsage,
				Images:      len(a.Images),
			}
			if replay.Memory != nil {
				info.Memory = *replay.Memory
			}
			r.virtual.Register(sc, info, presentable)
		}
		virt, err := r.virtual.Images(ctx, sc)
		if err != nil {
			return r.skip(ctx, err)
		}
		images = virt
	} else if len(a.Images) != len(presentable) {
		log.W(ctx, "Swapchain has %d live images, captured %d", len(presentable), len(a.Images))
	}

	for i, img := range a.Images {
		add(ctx, r, img, images[i%len(images)])
	}
	if st != nil {
		st.images = append([]api.VkImage(nil), a.Images...)
	}
	r.trackers.Get(sc).Populate(images)
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkAcquireNextImage struct {
	Device     api.VkDevice
	Swapchain  api.VkSwapchainKHR
	Timeout    uint64
	Semaphore  api.VkSemaphore
	Fence      api.VkFence
	ImageIndex uint32
	Result     api.VkResult
}

func (*VkAcquireNextImage) CmdName() string { return "vkAcquireNextImageKHR" }

func (a *VkAcquireNextImage) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, sc := live(c, a.Device), live(c, a.Swapchain)
	sem, fence := live(c, a.Semaphore), live(c, a.Fence)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	d := r.device(a.Device)
	var index uint32
	var res api.VkResult
	if r.settings.ForceSyncImgIdx && !r.settings.EnableVirtualSwapchain && d != nil && d.queue != 0 {
		index, res = r.syncAcquire(ctx, d, sc, a.ImageIndex, a.Timeout, sem, fence)
	} else {
		index, res = r.drv.AcquireNextImage(dev, sc, a.Timeout, sem, fence)
	}
	if res == api.VK_SUCCESS || res == api.VK_SUBOPTIMAL_KHR {
		r.trackers.Get(sc).Acquire(a.ImageIndex, index)
		if index != a.ImageIndex {
			log.D(ctx, "Acquired image %d in place of %d", index, a.ImageIndex)
		}
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

// syncAcquire acquires images until the live index matches the captured one,
// presenting each mismatching image straight back. It gives up after two
// passes over the swapchain and keeps the last image acquired. The
// application's semaphore and fence are signaled by an empty submit once the
// image is chosen.
func (r *Replayer) syncAcquire(ctx context.Context, d *deviceState, sc api.VkSwapchainKHR, captured uint32,
	timeout uint64, sem api.VkSemaphore, fence api.VkFence) (uint32, api.VkResult) {

	if d.aux == 0 {
		f, res := r.drv.CreateFence(d.live, &api.FenceCreateInfo{})
		if res != api.VK_SUCCESS {
			return r.drv.AcquireNextImage(d.live, sc, timeout, sem, fence)
		}
		d.aux = f
	}
	tries := 2
	if t, ok := r.trackers.Lookup(sc); ok && t.Len() > 0 {
		tries = 2 * t.Len()
	}
	var index uint32
	var res api.VkResult
	for i := 0; i < tries; i++ {
		index, res = r.drv.AcquireNextImage(d.live, sc, timeout, 0, d.aux)
		if res != api.VK_SUCCESS && res != api.VK_SUBOPTIMAL_KHR {
			return index, res
		}
		r.drv.WaitForFences(d.live, []api.VkFence{d.aux}, true, api.Infinite)
		r.drv.ResetFences(d.live, []api.VkFence{d.aux})
		if index == captured || i == tries-1 {
			break
		}
		r.drv.QueuePresent(d.queue, &api.PresentInfo{
			Swapchains:   []api.VkSwapchainKHR{sc},
			ImageIndices: []uint32{index},
		})
	}
	if index != captured {
		log.W(ctx, "Live image index never matched captured index %d, using %d", captured, index)
	}
	if sem != 0 || fence != 0 {
		submit := api.SubmitInfo{}
		if sem != 0 {
			submit.SignalSemaphores = []api.VkSemaphore{sem}
		}
		if s := r.drv.QueueSubmit(d.queue, []api.SubmitInfo{submit}, fence); s != api.VK_SUCCESS {
			return index, s
		}
	}
	return index, res
}

type VkQueuePresent struct {
	Queue  api.VkQueue
	Info   api.PresentInfo
	Result api.VkResult
}

func (*VkQueuePresent) CmdName() string { return "vkQueuePresentKHR" }

func (a *VkQueuePresent) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	q := live(c, a.Queue)
	waits := liveAll(c, a.Info.WaitSemaphores)
	swapchains := liveAll(c, a.Info.Swapchains)
	next := c.chain(a.Info.Next)
	if s, skip := c.skipped(ctx); skip {
		return s
	}

	info := api.PresentInfo{WaitSemaphores: waits, Next: next}
	seen := map[api.VkSwapchainKHR]bool{}
	var blits []api.VkSemaphore
	for i, sc := range swapchains {
		if seen[sc] || i >= len(a.Info.ImageIndices) {
			continue
		}
		seen[sc] = true
		captured := a.Info.ImageIndices[i]
		index := r.trackers.Get(sc).LiveIndex(captured)
		if r.settings.EnableVirtualSwapchain && r.virtual.Registered(sc) {
			// The blits consume the application's semaphores and the present
			// waits on the blits instead.
			sem, err := r.virtual.Present(ctx, q, sc, captured, index, waits)
			if err != nil {
				return r.skip(ctx, err)
			}
			waits = nil
			blits = append(blits, sem)
		}
		info.Swapchains = append(info.Swapchains, sc)
		info.ImageIndices = append(info.ImageIndices, index)
	}
	if r.settings.EnableVirtualSwapchain && len(blits) > 0 {
		info.WaitSemaphores = append(waits, blits...)
	}
	return r.result(ctx, a.CmdName(), a.Result, r.drv.QueuePresent(q, &info))
}
