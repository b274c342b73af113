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

package api_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/ARM-software/vktrace-arm-sub000/replay/api"
)

type remapTable map[api.HandleType]map[uint64]uint64

func (t remapTable) RemapHandle(ty api.HandleType, captured uint64) (uint64, bool) {
	live, ok := t[ty][captured]
	return live, ok
}

func TestChainInsertKeepsStructureTypesUnique(t *testing.T) {
	c := api.NewChain(
		&api.MemoryAllocateFlagsInfo{Flags: api.MemoryAllocateDeviceAddress},
		&api.MemoryDedicatedAllocateInfo{Buffer: 3},
	)
	c.Insert(&api.MemoryAllocateFlagsInfo{Flags: api.MemoryAllocateDeviceAddressCaptureReplay})

	require.Equal(t, 2, c.Len())
	assert.Equal(t, api.StructureTypeMemoryAllocateFlagsInfo, c.Nodes()[0].StructureType())
	flags, ok := api.FindAs[*api.MemoryAllocateFlagsInfo](c)
	require.True(t, ok)
	assert.Equal(t, api.MemoryAllocateDeviceAddressCaptureReplay, flags.Flags)

	assert.True(t, c.Remove(api.StructureTypeMemoryAllocateFlagsInfo))
	assert.False(t, c.Remove(api.StructureTypeMemoryAllocateFlagsInfo))
	assert.Nil(t, c.Find(api.StructureTypeMemoryAllocateFlagsInfo))
	assert.Equal(t, 1, c.Len())
}

func TestChainRemappedLeavesOriginal(t *testing.T) {
	c := api.NewChain(
		&api.MemoryDedicatedAllocateInfo{Image: 0x10},
		&api.PipelineLibraryCreateInfo{Libraries: []api.VkPipeline{0x20, 0}},
	)
	r := remapTable{
		api.TypeImage:    {0x10: 0x1000},
		api.TypePipeline: {0x20: 0x2000},
	}
	live, err := c.Remapped(r)
	require.NoError(t, err)

	dedicated, _ := api.FindAs[*api.MemoryDedicatedAllocateInfo](live)
	assert.Equal(t, api.VkImage(0x1000), dedicated.Image)
	libs, _ := api.FindAs[*api.PipelineLibraryCreateInfo](live)
	assert.Equal(t, []api.VkPipeline{0x2000, 0}, libs.Libraries)

	orig, _ := api.FindAs[*api.MemoryDedicatedAllocateInfo](c)
	assert.Equal(t, api.VkImage(0x10), orig.Image)
}

func TestChainRemappedReportsMissingHandle(t *testing.T) {
	c := api.NewChain(&api.ImageSwapchainCreateInfo{Swapchain: 7})
	_, err := c.Remapped(remapTable{})
	var re api.RemapError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, api.TypeSwapchainKHR, re.Type)
	assert.Equal(t, uint64(7), re.Captured)
}

func TestChainMsgpack(t *testing.T) {
	type holder struct {
		Size uint64
		Next api.Chain
	}
	opaque, err := msgpack.Marshal(map[string]int{"x": 1})
	require.NoError(t, err)
	in := holder{
		Size: 64,
		Next: api.NewChain(
			&api.BufferOpaqueCaptureAddressCreateInfo{OpaqueCaptureAddress: 0xdead0000},
			&api.OpaqueNode{Type: 12345, Data: opaque},
		),
	}
	data, err := msgpack.Marshal(&in)
	require.NoError(t, err)

	out := holder{}
	require.NoError(t, msgpack.Unmarshal(data, &out))
	assert.Equal(t, uint64(64), out.Size)
	require.Equal(t, 2, out.Next.Len())
	addr, ok := api.FindAs[*api.BufferOpaqueCaptureAddressCreateInfo](out.Next)
	require.True(t, ok)
	assert.Equal(t, uint64(0xdead0000), addr.OpaqueCaptureAddress)
	node, ok := out.Next.Find(12345).(*api.OpaqueNode)
	require.True(t, ok)
	assert.Equal(t, opaque, node.Data)
}

func TestFeatures(t *testing.T) {
	requested := api.PhysicalDeviceFeatures{}
	requested[api.FeatureGeometryShader] = true
	requested[api.FeatureShaderInt64] = true
	supported := api.PhysicalDeviceFeatures{}
	supported[api.FeatureShaderInt64] = true

	assert.Equal(t, []api.Feature{api.FeatureGeometryShader}, requested.Unsupported(supported))
	assert.Equal(t, "geometryShader", api.FeatureGeometryShader.String())
	assert.Equal(t, "inheritedQueries", (api.FeatureCount - 1).String())
}

func TestFlagStrings(t *testing.T) {
	assert.Equal(t, "GRAPHICS|COMPUTE", (api.QueueGraphics | api.QueueCompute).String())
	assert.Equal(t, "HOST_VISIBLE|0x100", (api.MemoryHostVisible | 0x100).String())
	assert.Equal(t, "VK_ERROR_DEVICE_LOST", api.VK_ERROR_DEVICE_LOST.String())
	assert.Equal(t, "VkBuffer", api.TypeBuffer.String())
}
