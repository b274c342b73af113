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

// Package loader opens the system Vulkan loader and describes the physical
// devices it exposes, in the same form the replayer uses for captured devices.
package loader

import (
	"context"
	"reflect"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"

	"github.com/ARM-software/vktrace-arm-sub000/core/fault"
	"github.com/ARM-software/vktrace-arm-sub000/core/log"
	"github.com/ARM-software/vktrace-arm-sub000/replay/api"
	"github.com/ARM-software/vktrace-arm-sub000/replay/compat"
)

const (
	// ErrNoLoader is returned when the Vulkan loader library cannot be found.
	ErrNoLoader = fault.Const("Vulkan loader not available")
	// ErrNoDevices is returned when the loader reports no physical devices.
	ErrNoDevices = fault.Const("No Vulkan physical devices")
)

// Instance is a live Vulkan instance created for introspection.
type Instance struct {
	handle vk.Instance
}

func check(ret vk.Result, what string) error {
	if ret == vk.Success {
		return nil
	}
	return errors.Wrap(vk.Error(ret), what)
}

// Open loads the Vulkan loader and creates an instance with no layers or
// extensions enabled.
func Open(ctx context.Context, appName string) (*Instance, error) {
	if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
		return nil, errors.Wrap(ErrNoLoader, err.Error())
	}
	if err := vk.Init(); err != nil {
		return nil, errors.Wrap(ErrNoLoader, err.Error())
	}
	var instance vk.Instance
	ret := vk.CreateInstance(&vk.InstanceCreateInfo{
		SType: vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &vk.ApplicationInfo{
			SType:            vk.StructureTypeApplicationInfo,
			ApiVersion:       vk.MakeVersion(1, 1, 0),
			PApplicationName: appName + "\x00",
			PEngineName:      "vkreplay\x00",
		},
	}, nil, &instance)
	if err := check(ret, "vkCreateInstance"); err != nil {
		return nil, err
	}
	vk.InitInstance(instance)
	log.D(ctx, "Created introspection instance")
	return &Instance{handle: instance}, nil
}

// Close destroys the instance.
func (i *Instance) Close() {
	if i.handle != nil {
		vk.DestroyInstance(i.handle, nil)
		i.handle = nil
	}
}

// PhysicalDevices describes every physical device, in enumeration order.
func (i *Instance) PhysicalDevices(ctx context.Context) ([]*compat.PhysicalDeviceInfo, error) {
	var count uint32
	if err := check(vk.EnumeratePhysicalDevices(i.handle, &count, nil), "vkEnumeratePhysicalDevices"); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNoDevices
	}
	gpus := make([]vk.PhysicalDevice, count)
	if err := check(vk.EnumeratePhysicalDevices(i.handle, &count, gpus), "vkEnumeratePhysicalDevices"); err != nil {
		return nil, err
	}
	out := make([]*compat.PhysicalDeviceInfo, 0, count)
	for _, gpu := range gpus[:count] {
		info, err := describe(gpu)
		if err != nil {
			return nil, err
		}
		fp, _ := info.Fingerprint()
		log.D(ctx, "Found physical device %v", fp)
		out = append(out, info)
	}
	return out, nil
}

func describe(gpu vk.PhysicalDevice) (*compat.PhysicalDeviceInfo, error) {
	var props vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(gpu, &props)
	props.Deref()
	p := Properties(props)

	var families uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(gpu, &families, nil)
	qf := make([]vk.QueueFamilyProperties, families)
	vk.GetPhysicalDeviceQueueFamilyProperties(gpu, &families, qf)

	var mem vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(gpu, &mem)
	mem.Deref()
	m := MemoryProperties(mem)

	var feats vk.PhysicalDeviceFeatures
	vk.GetPhysicalDeviceFeatures(gpu, &feats)
	feats.Deref()
	f := Features(feats)

	exts, err := extensions(gpu)
	if err != nil {
		return nil, err
	}
	return &compat.PhysicalDeviceInfo{
		Properties:    &p,
		QueueFamilies: QueueFamilies(qf),
		Memory:        &m,
		Features:      &f,
		Extensions:    exts,
	}, nil
}

func extensions(gpu vk.PhysicalDevice) ([]string, error) {
	var count uint32
	if err := check(vk.EnumerateDeviceExtensionProperties(gpu, "", &count, nil), "vkEnumerateDeviceExtensionProperties"); err != nil {
		return nil, err
	}
	list := make([]vk.ExtensionProperties, count)
	if err := check(vk.EnumerateDeviceExtensionProperties(gpu, "", &count, list), "vkEnumerateDeviceExtensionProperties"); err != nil {
		return nil, err
	}
	names := make([]string, 0, count)
	for _, ext := range list[:count] {
		ext.Deref()
		names = append(names, vk.ToString(ext.ExtensionName[:]))
	}
	return names, nil
}

// Properties converts the loader's device properties.
func Properties(p vk.PhysicalDeviceProperties) api.PhysicalDeviceProperties {
	return api.PhysicalDeviceProperties{
		APIVersion:        p.ApiVersion,
		DriverVersion:     p.DriverVersion,
		VendorID:          p.VendorID,
		DeviceID:          p.DeviceID,
		DeviceType:        api.PhysicalDeviceType(p.DeviceType),
		DeviceName:        vk.ToString(p.DeviceName[:]),
		PipelineCacheUUID: p.PipelineCacheUUID,
	}
}

// QueueFamilies converts the loader's queue family list.
func QueueFamilies(in []vk.QueueFamilyProperties) []api.QueueFamilyProperties {
	out := make([]api.QueueFamilyProperties, len(in))
	for i, q := range in {
		q.Deref()
		out[i] = api.QueueFamilyProperties{
			QueueFlags:         api.QueueFlags(q.QueueFlags),
			QueueCount:         q.QueueCount,
			TimestampValidBits: q.TimestampValidBits,
		}
	}
	return out
}

// MemoryProperties converts the loader's memory properties, trimming the
// fixed arrays to their counts.
func MemoryProperties(m vk.PhysicalDeviceMemoryProperties) api.MemoryProperties {
	out := api.MemoryProperties{
		Types: make([]api.MemoryType, m.MemoryTypeCount),
		Heaps: make([]api.MemoryHeap, m.MemoryHeapCount),
	}
	for i := range out.Types {
		t := m.MemoryTypes[i]
		t.Deref()
		out.Types[i] = api.MemoryType{
			PropertyFlags: api.MemoryPropertyFlags(t.PropertyFlags),
			HeapIndex:     t.HeapIndex,
		}
	}
	for i := range out.Heaps {
		h := m.MemoryHeaps[i]
		h.Deref()
		out.Heaps[i] = api.MemoryHeap{Size: uint64(h.Size), Flags: uint32(h.Flags)}
	}
	return out
}

var bool32 = reflect.TypeOf(vk.Bool32(0))

// Features converts the loader's core feature structure. Its Bool32 members
// are declared in api.Feature order.
func Features(f vk.PhysicalDeviceFeatures) api.PhysicalDeviceFeatures {
	out := api.PhysicalDeviceFeatures{}
	v := reflect.ValueOf(f)
	n := 0
	for i := 0; i < v.NumField() && n < int(api.FeatureCount); i++ {
		field := v.Type().Field(i)
		if field.PkgPath != "" || field.Type != bool32 {
			continue
		}
		out[n] = v.Field(i).Uint() != 0
		n++
	}
	return out
}
