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
	"github.com/ARM-software/vktrace-arm-sub000/replay/api"
	"github.com/ARM-software/vktrace-arm-sub000/replay/compat"
)

// device returns the state of a captured device, or nil if it was never
// created.
func (r *Replayer) device(captured api.VkDevice) *deviceState {
	return r.devices[captured]
}

// infos returns the capture and replay introspection data of the device's
// physical device.
func (r *Replayer) infos(d *deviceState) (capture, replay *compat.PhysicalDeviceInfo) {
	return r.physical.Capture(d.physical), r.introspect(d.livePD)
}

// family returns the live queue family used in place of a captured one on d.
// A family with no compatible live counterpart fails c.
func (r *Replayer) family(ctx context.Context, c *call, d *deviceState, captured uint32) uint32 {
	if d == nil {
		return captured
	}
	if f, ok := d.families[captured]; ok {
		return f
	}
	capture, replay := r.infos(d)
	f, _, err := compat.ResolveQueueFamily(ctx, captured, capture, replay, r.settings.CompatibilityMode)
	if !familyUsable(ctx, c, captured, err) {
		return f
	}
	d.families[captured] = f
	return f
}

// familyUsable logs a queue family resolution error. Unknown properties leave
// the captured index in place, no compatible family fails c.
func familyUsable(ctx context.Context, c *call, captured uint32, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, compat.ErrNoCompatibleQueueFamily):
		c.fail(errors.Wrapf(ErrTranslationAmbiguity, "queue family %d: %v", captured, err))
		return false
	}
	log.W(ctx, "Queue family %d: %v", captured, err)
	return true
}

func (r *Replayer) familyList(ctx context.Context, c *call, d *deviceState, captured []uint32) []uint32 {
	if captured == nil {
		return nil
	}
	out := make([]uint32, len(captured))
	for i, f := range captured {
		out[i] = r.family(ctx, c, d, f)
	}
	return out
}

type VkCreateDevice struct {
	PhysicalDevice api.VkPhysicalDevice
	Info           api.DeviceCreateInfo
	Device         api.VkDevice
	Result         api.VkResult
}

func (*VkCreateDevice) CmdName() string { return "vkCreateDevice" }

func (a *VkCreateDevice) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	pd := live(c, a.PhysicalDevice)
	info := a.Info
	info.Next = c.chain(a.Info.Next)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	d := &deviceState{
		physical:  a.PhysicalDevice,
		livePD:    pd,
		families:  map[uint32]uint32{},
		queueBase: map[uint32]uint32{},
		queues:    map[uint32]uint32{},
	}
	capture, replay := r.infos(d)

	// Captured families that resolve to the same live family are merged into
	// one request, capped at the live queue count.
	info.QueueCreateInfos = nil
	merged := map[uint32]int{}
	for _, q := range a.Info.QueueCreateInfos {
		fam, how, err := compat.ResolveQueueFamily(ctx, q.QueueFamilyIndex, capture, replay, r.settings.CompatibilityMode)
		if !familyUsable(ctx, c, q.QueueFamilyIndex, err) {
			continue
		}
		if err == nil && fam != q.QueueFamilyIndex {
			log.I(ctx, "Queue family %d replays on family %d (%v)", q.QueueFamilyIndex, fam, how)
		}
		d.families[q.QueueFamilyIndex] = fam
		i, ok := merged[fam]
		if !ok {
			i = len(info.QueueCreateInfos)
			merged[fam] = i
			info.QueueCreateInfos = append(info.QueueCreateInfos, api.DeviceQueueCreateInfo{QueueFamilyIndex: fam})
		}
		limit := uint32(0)
		if int(fam) < len(replay.QueueFamilies) {
			limit = replay.QueueFamilies[fam].QueueCount
		}
		req := &info.QueueCreateInfos[i]
		d.queueBase[q.QueueFamilyIndex] = uint32(len(req.QueuePriorities))
		for _, p := range q.QueuePriorities {
			if limit == 0 || uint32(len(req.QueuePriorities)) < limit {
				req.QueuePriorities = append(req.QueuePriorities, p)
			}
		}
		d.queues[fam] = uint32(len(req.QueuePriorities))
	}
	if s, skip := c.skipped(ctx); skip {
		return s
	}

	if a.Info.EnabledFeatures != nil {
		f := *a.Info.EnabledFeatures
		info.EnabledFeatures = &f
	}
	supported := api.PhysicalDeviceFeatures{}
	if replay.Features != nil {
		supported = *replay.Features
	}
	override := r.settings.OverrideCreateDeviceFeatures
	if n := len(compat.ReconcileFeatures(ctx, info.EnabledFeatures, info.Next, supported, replay.FeatureChain, override)); n > 0 && !override {
		log.W(ctx, "%d requested features are unsupported; device creation may fail", n)
	}
	info.EnabledExtensions, _ = compat.ReconcileExtensions(ctx, a.Info.EnabledExtensions, replay.Extensions, override)

	d.requested = compat.DeterministicSupport(a.Info.Next)
	d.support = compat.ResolveDeterministicFeatures(
		d.requested,
		compat.DeterministicSupport(replay.FeatureChain),
		compat.DisableMask(r.settings.DisableRQAndRTPCaptureReplay))
	d.support.Apply(info.Next)
	log.D(ctx, "Capture replay support: %+v", d.support)

	dev, res := r.drv.CreateDevice(pd, &info)
	if res == api.VK_SUCCESS {
		d.live = dev
		r.devices[a.Device] = d
		add(ctx, r, a.Device, dev)
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkDestroyDevice struct {
	Device api.VkDevice
}

func (*VkDestroyDevice) CmdName() string { return "vkDestroyDevice" }

func (a *VkDestroyDevice) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev := live(c, a.Device)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	if err := r.virtual.WaitPending(ctx, dev); err != nil {
		log.W(ctx, "Waiting for blits: %v", err)
	}
	// Swapchains still open on the device go with it.
	for captured, st := range r.swapchains {
		if st.device != a.Device {
			continue
		}
		delete(r.swapchains, captured)
		forget(r, captured)
		forgetAll(r, st.images)
		if !st.coalesced {
			log.W(ctx, "Swapchain %v outlived its device", captured)
			r.releaseSwapchain(ctx, dev, st.live)
		}
	}
	if d := r.device(a.Device); d != nil && d.aux != 0 {
		r.drv.DestroyFence(dev, d.aux)
	}
	r.drv.DestroyDevice(dev)
	for q, d := range r.queues {
		if d == a.Device {
			delete(r.queues, q)
			forget(r, q)
		}
	}
	delete(r.devices, a.Device)
	forget(r, a.Device)
	return Success
}

type VkDeviceWaitIdle struct {
	Device api.VkDevice
	Result api.VkResult
}

func (*VkDeviceWaitIdle) CmdName() string { return "vkDeviceWaitIdle" }

func (a *VkDeviceWaitIdle) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev := live(c, a.Device)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	return r.result(ctx, a.CmdName(), a.Result, r.drv.DeviceWaitIdle(dev))
}

type VkGetDeviceQueue struct {
	Device           api.VkDevice
	QueueFamilyIndex uint32
	QueueIndex       uint32
	Queue            api.VkQueue
}

func (*VkGetDeviceQueue) CmdName() string { return "vkGetDeviceQueue" }

func (a *VkGetDeviceQueue) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev := live(c, a.Device)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	d := r.device(a.Device)
	fam, idx := r.family(ctx, c, d, a.QueueFamilyIndex), a.QueueIndex
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	if d != nil {
		idx += d.queueBase[a.QueueFamilyIndex]
		if n := d.queues[fam]; n > 0 {
			idx %= n
		}
	}
	q := r.drv.GetDeviceQueue(dev, fam, idx)
	if q == 0 {
		return r.skip(ctx, compat.ErrNoCompatibleQueueFamily)
	}
	add(ctx, r, a.Queue, q)
	r.queues[a.Queue] = a.Device
	if d != nil && d.queue == 0 {
		d.queue = q
	}
	return Success
}

type VkQueueWaitIdle struct {
	Queue  api.VkQueue
	Result api.VkResult
}

func (*VkQueueWaitIdle) CmdName() string { return "vkQueueWaitIdle" }

func (a *VkQueueWaitIdle) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	q := live(c, a.Queue)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	return r.result(ctx, a.CmdName(), a.Result, r.drv.QueueWaitIdle(q))
}

type VkQueueSubmit struct {
	Queue   api.VkQueue
	Submits []api.SubmitInfo
	Fence   api.VkFence
	Result  api.VkResult
}

func (*VkQueueSubmit) CmdName() string { return "vkQueueSubmit" }

func (a *VkQueueSubmit) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	q := live(c, a.Queue)
	fence := live(c, a.Fence)
	submits := make([]api.SubmitInfo, len(a.Submits))
	for i, s := range a.Submits {
		submits[i] = api.SubmitInfo{
			WaitSemaphores:   liveAll(c, s.WaitSemaphores),
			WaitDstStageMask: s.WaitDstStageMask,
			CommandBuffers:   liveAll(c, s.CommandBuffers),
			SignalSemaphores: liveAll(c, s.SignalSemaphores),
			Next:             c.chain(s.Next),
		}
	}
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	if r.settings.EnableVirtualSwapchain {
		if d := r.device(r.queues[a.Queue]); d != nil {
			if err := r.virtual.WaitPending(ctx, d.live); err != nil {
				log.W(ctx, "Waiting for blits: %v", err)
			}
		}
	}
	return r.result(ctx, a.CmdName(), a.Result, r.drv.QueueSubmit(q, submits, fence))
}
