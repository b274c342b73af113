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

package trace_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/ARM-software/vktrace-arm-sub000/replay/api"
	"github.com/ARM-software/vktrace-arm-sub000/replay/trace"
)

type createBuffer struct {
	Device api.VkDevice
	Info   api.BufferCreateInfo
	Buffer api.VkBuffer
	Result api.VkResult
}

func TestWriteRead(t *testing.T) {
	features := api.PhysicalDeviceFeatures{}
	features[api.FeatureSamplerAnisotropy] = true
	h := trace.Header{
		Application: "triangle",
		Devices: []trace.Device{{
			Handle:     0x10,
			Properties: api.PhysicalDeviceProperties{VendorID: 0x13b5, DeviceID: 7, DeviceName: "Mali"},
			Features:   &features,
			FeatureChain: api.NewChain(&api.BufferDeviceAddressFeatures{
				BufferDeviceAddress:              true,
				BufferDeviceAddressCaptureReplay: true,
			}),
			Extensions: []string{"VK_KHR_swapchain"},
		}},
	}
	buf := &bytes.Buffer{}
	w, err := trace.NewWriter(buf, h)
	require.NoError(t, err)
	want := createBuffer{
		Device: 0x20,
		Info: api.BufferCreateInfo{
			Size:  256,
			Usage: api.BufferUsageShaderDeviceAddress,
			Next:  api.NewChain(&api.BufferOpaqueCaptureAddressCreateInfo{OpaqueCaptureAddress: 0x9000}),
		},
		Buffer: 0x30,
	}
	require.NoError(t, w.Write("vkCreateBuffer", want))
	require.NoError(t, w.Write("vkDestroyBuffer", struct{ Buffer api.VkBuffer }{0x30}))
	require.NoError(t, w.Flush())

	r, err := trace.NewReader(buf)
	require.NoError(t, err)
	got := r.Header()
	assert.Equal(t, trace.Magic, got.Magic)
	assert.Equal(t, "triangle", got.Application)
	require.Len(t, got.Devices, 1)
	assert.Equal(t, "Mali", got.Devices[0].Properties.DeviceName)
	assert.True(t, got.Devices[0].Features[api.FeatureSamplerAnisotropy])
	bda, ok := api.FindAs[*api.BufferDeviceAddressFeatures](got.Devices[0].FeatureChain)
	require.True(t, ok)
	assert.True(t, bda.BufferDeviceAddressCaptureReplay)

	p, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "vkCreateBuffer", p.Name)
	assert.Equal(t, uint64(0), p.Seq)
	var cb createBuffer
	require.NoError(t, p.Decode(&cb))
	assert.Equal(t, api.VkBuffer(0x30), cb.Buffer)
	assert.Equal(t, uint64(256), cb.Info.Size)
	opaque, ok := api.FindAs[*api.BufferOpaqueCaptureAddressCreateInfo](cb.Info.Next)
	require.True(t, ok)
	assert.Equal(t, uint64(0x9000), opaque.OpaqueCaptureAddress)

	p, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), p.Seq)

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestBadHeader(t *testing.T) {
	raw, err := msgpack.Marshal(&trace.Header{Magic: "NOTATRACE", Version: trace.Version})
	require.NoError(t, err)
	_, err = trace.NewReader(bytes.NewReader(raw))
	assert.ErrorIs(t, err, trace.ErrBadMagic)

	raw, err = msgpack.Marshal(&trace.Header{Magic: trace.Magic, Version: 99})
	require.NoError(t, err)
	_, err = trace.NewReader(bytes.NewReader(raw))
	assert.ErrorIs(t, err, trace.ErrBadVersion)
}
