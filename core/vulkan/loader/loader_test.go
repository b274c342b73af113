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

package loader_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"

	"github.com/ARM-software/vktrace-arm-sub000/core/vulkan/loader"
	"github.com/ARM-software/vktrace-arm-sub000/replay/api"
)

func TestProperties(t *testing.T) {
	p := vk.PhysicalDeviceProperties{
		ApiVersion:    vk.MakeVersion(1, 3, 0),
		DriverVersion: 0x1234,
		VendorID:      0x13b5,
		DeviceID:      0x92020010,
		DeviceType:    vk.PhysicalDeviceTypeIntegratedGpu,
	}
	copy(p.DeviceName[:], "Mali-G78\x00")
	got := loader.Properties(p)
	assert.Equal(t, "Mali-G78", got.DeviceName)
	assert.Equal(t, uint32(0x13b5), got.VendorID)
	assert.Equal(t, uint32(0x92020010), got.DeviceID)
	assert.Equal(t, uint32(0x1234), got.DriverVersion)
	assert.Equal(t, api.PhysicalDeviceType(vk.PhysicalDeviceTypeIntegratedGpu), got.DeviceType)
}

func TestMemoryPropertiesTrimmed(t *testing.T) {
	m := vk.PhysicalDeviceMemoryProperties{MemoryTypeCount: 2, MemoryHeapCount: 1}
	m.MemoryTypes[0] = vk.MemoryType{PropertyFlags: vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit), HeapIndex: 0}
	m.MemoryTypes[1] = vk.MemoryType{PropertyFlags: vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit)}
	m.MemoryHeaps[0] = vk.MemoryHeap{Size: 1 << 30}
	got := loader.MemoryProperties(m)
	assert.Len(t, got.Types, 2)
	assert.Len(t, got.Heaps, 1)
	assert.Equal(t, uint64(1<<30), got.Heaps[0].Size)
	assert.Equal(t, api.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit), got.Types[0].PropertyFlags)
}

func TestFeaturesInDeclarationOrder(t *testing.T) {
	f := vk.PhysicalDeviceFeatures{
		RobustBufferAccess: vk.True,
		GeometryShader:     vk.True,
		InheritedQueries:   vk.True,
	}
	got := loader.Features(f)
	assert.Equal(t, []api.Feature{
		api.FeatureRobustBufferAccess,
		api.FeatureGeometryShader,
		api.FeatureInheritedQueries,
	}, got.Enabled())
}

func TestQueueFamilies(t *testing.T) {
	got := loader.QueueFamilies([]vk.QueueFamilyProperties{
		{QueueFlags: vk.QueueFlags(vk.QueueGraphicsBit | vk.QueueComputeBit), QueueCount: 4},
		{QueueFlags: vk.QueueFlags(vk.QueueTransferBit), QueueCount: 1},
	})
	assert.Len(t, got, 2)
	assert.Equal(t, uint32(4), got[0].QueueCount)
	assert.Equal(t, api.QueueFlags(vk.QueueTransferBit), got[1].QueueFlags)
}
