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

// Package nulldriver is an in-memory driver.Driver that executes nothing.
// It hands out unique handles and device addresses, tracks fence and event
// state, and journals every call so replays can be checked without a GPU.
package nulldriver

import (
	"fmt"
	"strings"

	"github.com/ARM-software/vktrace-arm-sub000/replay/api"
	"github.com/ARM-software/vktrace-arm-sub000/replay/driver"
)

// PhysicalDevice describes a device exposed by the null driver.
type PhysicalDevice struct {
	Properties    api.PhysicalDeviceProperties
	QueueFamilies []api.QueueFamilyProperties
	Memory        api.MemoryProperties
	Features      api.PhysicalDeviceFeatures
	// FeatureChain holds the extension feature structures the device supports.
	FeatureChain api.Chain
	Extensions   []string
	// MemoryTypeBits is reported by every memory requirements query. Zero
	// allows every memory type.
	MemoryTypeBits uint32
}

// Config controls what the null driver reports.
type Config struct {
	Devices []PhysicalDevice
	Surface api.SurfaceCapabilities
	// AcquireOrder is the sequence of image indices returned by successive
	// acquires on a swapchain. It repeats once exhausted. If empty, images are
	// returned round robin.
	AcquireOrder []uint32
}

// DefaultDevice returns a device with a graphics+compute+transfer family, a
// transfer-only family and the usual desktop memory types.
func DefaultDevice() PhysicalDevice {
	return PhysicalDevice{
		Properties: api.PhysicalDeviceProperties{
			APIVersion:    1<<22 | 3<<12,
			DriverVersion: 1,
			VendorID:      0x13b5,
			DeviceID:      0x92020010,
			DeviceType:    api.PhysicalDeviceTypeIntegratedGPU,
			DeviceName:    "Null GPU",
		},
		QueueFamilies: []api.QueueFamilyProperties{
			{QueueFlags: api.QueueGraphics | api.QueueCompute | api.QueueTransfer, QueueCount: 2},
			{QueueFlags: api.QueueTransfer, QueueCount: 1},
		},
		Memory: api.MemoryProperties{
			Types: []api.MemoryType{
				{PropertyFlags: api.MemoryDeviceLocal},
				{PropertyFlags: api.MemoryHostVisible | api.MemoryHostCoherent},
				{PropertyFlags: api.MemoryHostVisible | api.MemoryHostCoherent | api.MemoryHostCached},
			},
			Heaps: []api.MemoryHeap{{Size: 1 << 32, Flags: 1}},
		},
		Extensions: []string{"VK_KHR_swapchain"},
	}
}

// DefaultConfig returns a config with a single DefaultDevice.
func DefaultConfig() Config {
	return Config{
		Devices: []PhysicalDevice{DefaultDevice()},
		Surface: api.SurfaceCapabilities{
			MinImageCount:       2,
			MaxImageCount:       3,
			CurrentExtent:       api.Extent2D{Width: 640, Height: 480},
			MinImageExtent:      api.Extent2D{Width: 1, Height: 1},
			MaxImageExtent:      api.Extent2D{Width: 4096, Height: 4096},
			MaxImageArrayLayers: 1,
			SupportedUsageFlags: api.ImageUsageColorAttachment | api.ImageUsageTransferSrc | api.ImageUsageTransferDst,
		},
	}
}

// Call is a journal entry.
type Call struct {
	Name string
	Args []interface{}
}

func (c Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = fmt.Sprintf("%v", a)
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")"
}

type object struct {
	ty     api.HandleType
	parent uint64
}

type swapchain struct {
	images  []api.VkImage
	acquire int
}

// Driver is the null driver.
//
// Driver is not safe for concurrent use.
type Driver struct {
	cfg              Config
	next             uint64
	nextAddress      uint64
	objects          map[uint64]object
	physical         map[api.VkPhysicalDevice]int
	devices          map[api.VkDevice]api.VkPhysicalDevice
	signaled         map[uint64]bool // fences and events
	sizes            map[uint64]uint64
	addresses        map[uint64]uint64
	queries          map[uint64]map[uint32]uint64 // query pool to written values
	swapchains       map[api.VkSwapchainKHR]*swapchain
	journal          []Call
	validationErrors int
	lost             bool
}

var _ driver.Driver = (*Driver)(nil)

// New returns a null driver reporting cfg.
func New(cfg Config) *Driver {
	return &Driver{
		cfg:         cfg,
		next:        0x100000,
		nextAddress: 0x7f0000000000,
		objects:     map[uint64]object{},
		physical:    map[api.VkPhysicalDevice]int{},
		devices:     map[api.VkDevice]api.VkPhysicalDevice{},
		signaled:    map[uint64]bool{},
		sizes:       map[uint64]uint64{},
		addresses:   map[uint64]uint64{},
		queries:     map[uint64]map[uint32]uint64{},
		swapchains:  map[api.VkSwapchainKHR]*swapchain{},
	}
}

// Calls returns the journal, optionally filtered to the named entry points.
func (d *Driver) Calls(names ...string) []Call {
	if len(names) == 0 {
		return append([]Call(nil), d.journal...)
	}
	out := []Call{}
	for _, c := range d.journal {
		for _, n := range names {
			if c.Name == n {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// LoseDevice makes every later queue, wait and present operation report
// VK_ERROR_DEVICE_LOST.
func (d *Driver) LoseDevice() { d.lost = true }

// ValidationErrors returns the number of calls that referenced handles the
// driver never created, or otherwise misused the API.
func (d *Driver) ValidationErrors() int { return d.validationErrors }

// Signaled returns true if the fence or event is signaled.
func (d *Driver) Signaled(h uint64) bool { return d.signaled[h] }

// Owns returns true if h is a live handle of type ty created by this driver.
func (d *Driver) Owns(ty api.HandleType, h uint64) bool {
	o, ok := d.objects[h]
	return ok && o.ty == ty
}

func (d *Driver) record(name string, args ...interface{}) {
	d.journal = append(d.journal, Call{Name: name, Args: args})
}

func (d *Driver) create(ty api.HandleType, parent uint64) uint64 {
	d.next++
	d.objects[d.next] = object{ty: ty, parent: parent}
	return d.next
}

func (d *Driver) destroy(ty api.HandleType, h uint64) {
	if h == 0 {
		return
	}
	if d.check(ty, h) {
		delete(d.objects, h)
		delete(d.signaled, h)
		delete(d.sizes, h)
		delete(d.addresses, h)
	}
}

// check counts a validation error if h is neither null nor a live handle of
// type ty.
func (d *Driver) check(ty api.HandleType, h uint64) bool {
	if h == 0 {
		return true
	}
	if o, ok := d.objects[h]; ok && o.ty == ty {
		return true
	}
	d.validationErrors++
	return false
}

func checkAll[T api.Handle](d *Driver, hs []T) {
	for _, h := range hs {
		d.check(h.Category(), uint64(h))
	}
}

func (d *Driver) allocAddress(size uint64) uint64 {
	const align = 0x1000
	addr := d.nextAddress
	d.nextAddress += (size + align - 1) &^ (align - 1)
	if size == 0 {
		d.nextAddress += align
	}
	return addr
}

func (d *Driver) device(pd api.VkPhysicalDevice) *PhysicalDevice {
	if i, ok := d.physical[pd]; ok {
		return &d.cfg.Devices[i]
	}
	d.validationErrors++
	return &PhysicalDevice{}
}

func (d *Driver) deviceOf(device api.VkDevice) *PhysicalDevice {
	pd, ok := d.devices[device]
	if !ok {
		d.validationErrors++
		return &PhysicalDevice{}
	}
	return d.device(pd)
}

func (d *Driver) status() api.VkResult {
	if d.lost {
		return api.VK_ERROR_DEVICE_LOST
	}
	return api.VK_SUCCESS
}

func (d *Driver) CreateInstance(info *api.InstanceCreateInfo) (api.VkInstance, api.VkResult) {
	h := api.VkInstance(d.create(api.TypeInstance, 0))
	d.record("vkCreateInstance", h)
	return h, api.VK_SUCCESS
}

func (d *Driver) DestroyInstance(instance api.VkInstance) {
	d.record("vkDestroyInstance", instance)
	d.destroy(api.TypeInstance, uint64(instance))
}

func (d *Driver) EnumeratePhysicalDevices(instance api.VkInstance) ([]api.VkPhysicalDevice, api.VkResult) {
	d.check(api.TypeInstance, uint64(instance))
	out := make([]api.VkPhysicalDevice, len(d.cfg.Devices))
	for i := range d.cfg.Devices {
		h := api.VkPhysicalDevice(d.create(api.TypePhysicalDevice, uint64(instance)))
		d.physical[h] = i
		out[i] = h
	}
	d.record("vkEnumeratePhysicalDevices", instance, out)
	return out, api.VK_SUCCESS
}

func (d *Driver) GetPhysicalDeviceProperties(pd api.VkPhysicalDevice) api.PhysicalDeviceProperties {
	d.record("vkGetPhysicalDeviceProperties", pd)
	return d.device(pd).Properties
}

func (d *Driver) GetPhysicalDeviceQueueFamilyProperties(pd api.VkPhysicalDevice) []api.QueueFamilyProperties {
	d.record("vkGetPhysicalDeviceQueueFamilyProperties", pd)
	return append([]api.QueueFamilyProperties(nil), d.device(pd).QueueFamilies...)
}

func (d *Driver) GetPhysicalDeviceMemoryProperties(pd api.VkPhysicalDevice) api.MemoryProperties {
	d.record("vkGetPhysicalDeviceMemoryProperties", pd)
	m := d.device(pd).Memory
	return api.MemoryProperties{
		Types: append([]api.MemoryType(nil), m.Types...),
		Heaps: append([]api.MemoryHeap(nil), m.Heaps...),
	}
}

func (d *Driver) GetPhysicalDeviceFeatures(pd api.VkPhysicalDevice) api.PhysicalDeviceFeatures {
	d.record("vkGetPhysicalDeviceFeatures", pd)
	return d.device(pd).Features
}

func (d *Driver) GetPhysicalDeviceFeatures2(pd api.VkPhysicalDevice, chain api.Chain) api.PhysicalDeviceFeatures {
	d.record("vkGetPhysicalDeviceFeatures2", pd)
	dev := d.device(pd)
	for _, n := range chain.Nodes() {
		out, ok := n.(api.FeatureStruct)
		if !ok {
			continue
		}
		var have []api.FeatureMember
		if s, ok := dev.FeatureChain.Find(n.StructureType()).(api.FeatureStruct); ok {
			have = s.Members()
		}
		for i, m := range out.Members() {
			*m.Enabled = i < len(have) && *have[i].Enabled
		}
	}
	return dev.Features
}

func (d *Driver) EnumerateDeviceExtensionProperties(pd api.VkPhysicalDevice) ([]string, api.VkResult) {
	d.record("vkEnumerateDeviceExtensionProperties", pd)
	return append([]string(nil), d.device(pd).Extensions...), api.VK_SUCCESS
}

func (d *Driver) CreateDevice(pd api.VkPhysicalDevice, info *api.DeviceCreateInfo) (api.VkDevice, api.VkResult) {
	dev := d.device(pd)
	d.record("vkCreateDevice", pd, info.EnabledExtensions)
	if info.EnabledFeatures != nil && len(info.EnabledFeatures.Unsupported(dev.Features)) > 0 {
		return 0, api.VK_ERROR_FEATURE_NOT_PRESENT
	}
	have := map[string]bool{}
	for _, e := range dev.Extensions {
		have[e] = true
	}
	for _, e := range info.EnabledExtensions {
		if !have[e] {
			return 0, api.VK_ERROR_EXTENSION_NOT_PRESENT
		}
	}
	for _, q := range info.QueueCreateInfos {
		if int(q.QueueFamilyIndex) >= len(dev.QueueFamilies) {
			d.validationErrors++
		}
	}
	h := api.VkDevice(d.create(api.TypeDevice, uint64(pd)))
	d.devices[h] = pd
	return h, api.VK_SUCCESS
}

func (d *Driver) DestroyDevice(device api.VkDevice) {
	d.record("vkDestroyDevice", device)
	d.destroy(api.TypeDevice, uint64(device))
	delete(d.devices, device)
}

func (d *Driver) DeviceWaitIdle(device api.VkDevice) api.VkResult {
	d.record("vkDeviceWaitIdle", device)
	d.check(api.TypeDevice, uint64(device))
	return d.status()
}

func (d *Driver) GetDeviceQueue(device api.VkDevice, family, index uint32) api.VkQueue {
	dev := d.deviceOf(device)
	if int(family) >= len(dev.QueueFamilies) {
		d.validationErrors++
	}
	q := api.VkQueue(d.create(api.TypeQueue, uint64(device)))
	d.record("vkGetDeviceQueue", device, family, index, q)
	return q
}

func (d *Driver) QueueWaitIdle(queue api.VkQueue) api.VkResult {
	d.record("vkQueueWaitIdle", queue)
	d.check(api.TypeQueue, uint64(queue))
	return d.status()
}

// QueueSubmit completes the submitted work immediately and signals fence.
func (d *Driver) QueueSubmit(queue api.VkQueue, submits []api.SubmitInfo, fence api.VkFence) api.VkResult {
	d.record("vkQueueSubmit", queue, submits, fence)
	d.check(api.TypeQueue, uint64(queue))
	for _, s := range submits {
		checkAll(d, s.WaitSemaphores)
		checkAll(d, s.CommandBuffers)
		checkAll(d, s.SignalSemaphores)
	}
	if d.lost {
		return api.VK_ERROR_DEVICE_LOST
	}
	if fence != 0 && d.check(api.TypeFence, uint64(fence)) {
		if d.signaled[uint64(fence)] {
			// Submitting with a fence that is already signaled is invalid.
			d.validationErrors++
		}
		d.signaled[uint64(fence)] = true
	}
	return api.VK_SUCCESS
}
