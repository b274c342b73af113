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

	"github.com/ARM-software/vktrace-arm-sub000/core/log"
	"github.com/ARM-software/vktrace-arm-sub000/replay/api"
	"github.com/ARM-software/vktrace-arm-sub000/replay/compat"
	"github.com/ARM-software/vktrace-arm-sub000/replay/handles"
)

type VkCreateInstance struct {
	Info     api.InstanceCreateInfo
	Instance api.VkInstance
	Result   api.VkResult
}

func (*VkCreateInstance) CmdName() string { return "vkCreateInstance" }

func (a *VkCreateInstance) Replay(ctx context.Context, r *Replayer) Status {
	info := a.Info
	info.Next = a.Info.Next.Clone()
	inst, res := r.drv.CreateInstance(&info)
	if res == api.VK_SUCCESS {
		add(ctx, r, a.Instance, inst)
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkDestroyInstance struct {
	Instance api.VkInstance
}

func (*VkDestroyInstance) CmdName() string { return "vkDestroyInstance" }

func (a *VkDestroyInstance) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	inst := live(c, a.Instance)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.DestroyInstance(inst)
	for _, pd := range r.livePhysical[a.Instance] {
		for _, captured := range handles.CapturedAll(r.handles, pd) {
			r.physical.Forget(captured, pd)
			forget(r, captured)
		}
	}
	delete(r.livePhysical, a.Instance)
	forget(r, a.Instance)
	return Success
}

// introspect queries and caches everything the resolvers need to know about
// a live physical device.
func (r *Replayer) introspect(pd api.VkPhysicalDevice) *compat.PhysicalDeviceInfo {
	info := r.physical.Replay(pd)
	if info.Properties != nil {
		return info
	}
	props := r.drv.GetPhysicalDeviceProperties(pd)
	info.Properties = &props
	info.QueueFamilies = r.drv.GetPhysicalDeviceQueueFamilyProperties(pd)
	mem := r.drv.GetPhysicalDeviceMemoryProperties(pd)
	info.Memory = &mem
	info.FeatureChain = api.NewChain(
		&api.BufferDeviceAddressFeatures{},
		&api.AccelerationStructureFeatures{},
		&api.RayTracingPipelineFeatures{},
		&api.RayQueryFeatures{},
	)
	features := r.drv.GetPhysicalDeviceFeatures2(pd, info.FeatureChain)
	info.Features = &features
	if exts, res := r.drv.EnumerateDeviceExtensionProperties(pd); res == api.VK_SUCCESS {
		info.Extensions = exts
	}
	return info
}

// devicePair returns the capture and replay info of a captured physical
// device.
func (r *Replayer) devicePair(captured api.VkPhysicalDevice) (capture, replay *compat.PhysicalDeviceInfo) {
	capture = r.physical.Capture(captured)
	if pd, ok := r.handles.Remap(api.TypePhysicalDevice, uint64(captured)); ok && pd != 0 {
		replay = r.introspect(api.VkPhysicalDevice(pd))
	}
	return capture, replay
}

type VkEnumeratePhysicalDevices struct {
	Instance        api.VkInstance
	PhysicalDevices []api.VkPhysicalDevice
	Result          api.VkResult
}

func (*VkEnumeratePhysicalDevices) CmdName() string { return "vkEnumeratePhysicalDevices" }

func (a *VkEnumeratePhysicalDevices) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	inst := live(c, a.Instance)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	pds, res := r.drv.EnumeratePhysicalDevices(inst)
	if res != api.VK_SUCCESS && res != api.VK_INCOMPLETE {
		return r.result(ctx, a.CmdName(), a.Result, res)
	}
	r.livePhysical[a.Instance] = pds

	liveFP := make([]compat.Fingerprint, len(pds))
	for i, pd := range pds {
		liveFP[i], _ = r.introspect(pd).Fingerprint()
	}
	captured := make([]*compat.Fingerprint, len(a.PhysicalDevices))
	if r.settings.CompatibilityMode {
		for i, h := range a.PhysicalDevices {
			if fp, ok := r.physical.Capture(h).Fingerprint(); ok {
				captured[i] = &fp
			}
		}
	}
	indices, how := compat.MatchPhysicalDevices(captured, liveFP)
	for i, h := range a.PhysicalDevices {
		if indices[i] < 0 {
			log.E(ctx, "No live physical device for captured device %d", i)
			continue
		}
		add(ctx, r, h, pds[indices[i]])
		if indices[i] != i {
			log.I(ctx, "Captured physical device %d replays on live device %d (%v) matched by %v",
				i, indices[i], liveFP[indices[i]], how[i])
		}
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkGetPhysicalDeviceProperties struct {
	PhysicalDevice api.VkPhysicalDevice
	Properties     api.PhysicalDeviceProperties
}

func (*VkGetPhysicalDeviceProperties) CmdName() string { return "vkGetPhysicalDeviceProperties" }

func (a *VkGetPhysicalDeviceProperties) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	pd := live(c, a.PhysicalDevice)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	props := a.Properties
	r.physical.Capture(a.PhysicalDevice).Properties = &props
	liveProps := r.drv.GetPhysicalDeviceProperties(pd)
	r.physical.Replay(pd).Properties = &liveProps
	return Success
}

type VkGetPhysicalDeviceQueueFamilyProperties struct {
	PhysicalDevice api.VkPhysicalDevice
	Properties     []api.QueueFamilyProperties
}

func (*VkGetPhysicalDeviceQueueFamilyProperties) CmdName() string {
	return "vkGetPhysicalDeviceQueueFamilyProperties"
}

func (a *VkGetPhysicalDeviceQueueFamilyProperties) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	pd := live(c, a.PhysicalDevice)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.physical.Capture(a.PhysicalDevice).QueueFamilies = append([]api.QueueFamilyProperties(nil), a.Properties...)
	r.physical.Replay(pd).QueueFamilies = r.drv.GetPhysicalDeviceQueueFamilyProperties(pd)
	return Success
}

type VkGetPhysicalDeviceMemoryProperties struct {
	PhysicalDevice api.VkPhysicalDevice
	Properties     api.MemoryProperties
}

func (*VkGetPhysicalDeviceMemoryProperties) CmdName() string {
	return "vkGetPhysicalDeviceMemoryProperties"
}

func (a *VkGetPhysicalDeviceMemoryProperties) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	pd := live(c, a.PhysicalDevice)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	props := a.Properties
	r.physical.Capture(a.PhysicalDevice).Memory = &props
	liveProps := r.drv.GetPhysicalDeviceMemoryProperties(pd)
	r.physical.Replay(pd).Memory = &liveProps
	return Success
}

type VkGetPhysicalDeviceFeatures struct {
	PhysicalDevice api.VkPhysicalDevice
	Features       api.PhysicalDeviceFeatures
}

func (*VkGetPhysicalDeviceFeatures) CmdName() string { return "vkGetPhysicalDeviceFeatures" }

func (a *VkGetPhysicalDeviceFeatures) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	pd := live(c, a.PhysicalDevice)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	features := a.Features
	r.physical.Capture(a.PhysicalDevice).Features = &features
	liveFeatures := r.drv.GetPhysicalDeviceFeatures(pd)
	r.physical.Replay(pd).Features = &liveFeatures
	return Success
}

type VkGetPhysicalDeviceFeatures2 struct {
	PhysicalDevice api.VkPhysicalDevice
	Features       api.PhysicalDeviceFeatures
	Next           api.Chain
}

func (*VkGetPhysicalDeviceFeatures2) CmdName() string { return "vkGetPhysicalDeviceFeatures2" }

func (a *VkGetPhysicalDeviceFeatures2) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	pd := live(c, a.PhysicalDevice)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	capture := r.physical.Capture(a.PhysicalDevice)
	features := a.Features
	capture.Features = &features
	for _, n := range a.Next.Nodes() {
		if _, ok := n.(api.FeatureStruct); ok {
			capture.FeatureChain.Insert(api.NewChain(n).Clone().Nodes()[0])
		}
	}
	r.introspect(pd)
	r.drv.GetPhysicalDeviceFeatures2(pd, a.Next.Clone())
	return Success
}

type VkEnumerateDeviceExtensionProperties struct {
	PhysicalDevice api.VkPhysicalDevice
	Extensions     []string
	Result         api.VkResult
}

func (*VkEnumerateDeviceExtensionProperties) CmdName() string {
	return "vkEnumerateDeviceExtensionProperties"
}

func (a *VkEnumerateDeviceExtensionProperties) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	pd := live(c, a.PhysicalDevice)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.physical.Capture(a.PhysicalDevice).Extensions = append([]string(nil), a.Extensions...)
	exts, res := r.drv.EnumerateDeviceExtensionProperties(pd)
	if res == api.VK_SUCCESS {
		r.physical.Replay(pd).Extensions = exts
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}
