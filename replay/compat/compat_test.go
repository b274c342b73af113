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

package compat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ARM-software/vktrace-arm-sub000/core/log"
	"github.com/ARM-software/vktrace-arm-sub000/replay/api"
	"github.com/ARM-software/vktrace-arm-sub000/replay/compat"
)

const (
	gct = api.QueueGraphics | api.QueueCompute | api.QueueTransfer
	ct  = api.QueueCompute | api.QueueTransfer
	xfr = api.QueueTransfer
)

func device(vendor, id uint32, families ...api.QueueFlags) *compat.PhysicalDeviceInfo {
	info := &compat.PhysicalDeviceInfo{
		Properties: &api.PhysicalDeviceProperties{VendorID: vendor, DeviceID: id, DeviceName: "gpu"},
	}
	for _, f := range families {
		info.QueueFamilies = append(info.QueueFamilies, api.QueueFamilyProperties{QueueFlags: f, QueueCount: 1})
	}
	return info
}

func TestQueueFamilyUnchangedOnSamePlatformOrCompatOff(t *testing.T) {
	ctx := log.Testing(t)
	capture := device(1, 1, gct, xfr)
	replay := device(1, 1, xfr, gct)
	idx, match, err := compat.ResolveQueueFamily(ctx, 1, capture, replay, true)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), idx)
	assert.Equal(t, compat.Unchanged, match)

	replay = device(2, 2, xfr, gct)
	idx, _, err = compat.ResolveQueueFamily(ctx, 1, capture, replay, false)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), idx)
}

func TestQueueFamilySingleFamilyAlwaysZero(t *testing.T) {
	ctx := log.Testing(t)
	replay := device(2, 2, api.QueueGraphics)
	for _, flags := range []api.QueueFlags{gct, xfr, api.QueueSparseBinding} {
		capture := device(1, 1, gct, ct, flags)
		idx, match, err := compat.ResolveQueueFamily(ctx, 2, capture, replay, true)
		require.NoError(t, err)
		assert.Equal(t, uint32(0), idx)
		assert.Equal(t, compat.SingleFamily, match)
	}
}

func TestQueueFamilyRules(t *testing.T) {
	ctx := log.Testing(t)
	for _, c := range []struct {
		name     string
		capture  []api.QueueFlags
		replay   []api.QueueFlags
		captured uint32
		want     uint32
		match    compat.Match
	}{
		{"exact elsewhere", []api.QueueFlags{gct, ct}, []api.QueueFlags{gct, xfr, ct}, 1, 2, compat.Exact},
		{"exact wraps from captured index", []api.QueueFlags{xfr, gct, xfr}, []api.QueueFlags{xfr, gct, gct}, 2, 0, compat.Exact},
		{"exact beats earlier superset", []api.QueueFlags{ct}, []api.QueueFlags{gct, ct}, 0, 1, compat.Exact},
		{"superset", []api.QueueFlags{xfr, ct}, []api.QueueFlags{gct, api.QueueGraphics}, 1, 0, compat.Superset},
		{"priority fallback", []api.QueueFlags{api.QueueSparseBinding}, []api.QueueFlags{xfr, gct}, 0, 1, compat.Fallback},
	} {
		t.Run(c.name, func(t *testing.T) {
			ctx := log.SubTest(ctx, t)
			idx, match, err := compat.ResolveQueueFamily(ctx, c.captured, device(1, 1, c.capture...), device(2, 2, c.replay...), true)
			require.NoError(t, err)
			assert.Equal(t, c.want, idx)
			assert.Equal(t, c.match, match)
		})
	}
}

func TestQueueFamilyFailures(t *testing.T) {
	ctx := log.Testing(t)
	_, _, err := compat.ResolveQueueFamily(ctx, 0, device(1, 1), device(2, 2, gct), true)
	assert.ErrorIs(t, err, compat.ErrQueuePropertiesUnknown)

	idx, _, err := compat.ResolveQueueFamily(ctx, 0, device(1, 1, api.QueueSparseBinding), device(2, 2, xfr, ct), true)
	assert.ErrorIs(t, err, compat.ErrNoCompatibleQueueFamily)
	assert.Equal(t, uint32(0), idx)

	idx, _, err = compat.ResolveQueueFamily(ctx, api.QueueFamilyIgnored, device(1, 1, gct), device(2, 2, xfr, gct), true)
	require.NoError(t, err)
	assert.Equal(t, api.QueueFamilyIgnored, idx)
}

func memory(flags ...api.MemoryPropertyFlags) *compat.PhysicalDeviceInfo {
	info := &compat.PhysicalDeviceInfo{Memory: &api.MemoryProperties{}}
	for _, f := range flags {
		info.Memory.Types = append(info.Memory.Types, api.MemoryType{PropertyFlags: f})
	}
	return info
}

const (
	dl  = api.MemoryDeviceLocal
	hv  = api.MemoryHostVisible
	hc  = api.MemoryHostCoherent
	hca = api.MemoryHostCached
)

func TestMemoryTypeTiers(t *testing.T) {
	for _, c := range []struct {
		name     string
		capture  []api.MemoryPropertyFlags
		replay   []api.MemoryPropertyFlags
		captured uint32
		allowed  uint32
		want     uint32
		match    compat.Match
	}{
		{"exact at other index", []api.MemoryPropertyFlags{dl, hv | hc}, []api.MemoryPropertyFlags{hv | hc, dl | hv | hc, dl}, 1, 0x7, 0, compat.Exact},
		{"exact beats superset", []api.MemoryPropertyFlags{hv | hc}, []api.MemoryPropertyFlags{hv | hc | hca, hv | hc}, 0, 0x3, 1, compat.Exact},
		{"exact skipped when not allowed", []api.MemoryPropertyFlags{hv | hc}, []api.MemoryPropertyFlags{hv | hc, hv | hc | hca}, 0, 0x2, 1, compat.Superset},
		{"host visible coherent fallback", []api.MemoryPropertyFlags{hv | hca}, []api.MemoryPropertyFlags{dl, hv | hc}, 0, 0x3, 1, compat.Fallback},
		{"device local fallback", []api.MemoryPropertyFlags{dl | api.MemoryLazilyAllocated}, []api.MemoryPropertyFlags{hv, dl}, 0, 0x3, 1, compat.Fallback},
	} {
		t.Run(c.name, func(t *testing.T) {
			idx, match, err := compat.ResolveMemoryType(c.captured, memory(c.capture...), memory(c.replay...), c.allowed, true)
			require.NoError(t, err)
			assert.Equal(t, c.want, idx)
			assert.Equal(t, c.match, match)
		})
	}
}

func TestMemoryTypeFailures(t *testing.T) {
	_, _, err := compat.ResolveMemoryType(0, &compat.PhysicalDeviceInfo{}, memory(dl), 1, true)
	assert.ErrorIs(t, err, compat.ErrMemoryPropertiesUnknown)

	_, _, err = compat.ResolveMemoryType(0, memory(hv), memory(hv, hca), 0x2, true)
	assert.ErrorIs(t, err, compat.ErrNoCompatibleMemoryType)

	idx, match, err := compat.ResolveMemoryType(3, memory(hv), memory(dl), 0, false)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), idx)
	assert.Equal(t, compat.Unchanged, match)
}

func TestMatchPhysicalDevicesByFingerprint(t *testing.T) {
	a := compat.Fingerprint{VendorID: 0x13b5, DeviceID: 0x1, Name: "A"}
	b := compat.Fingerprint{VendorID: 0x10de, DeviceID: 0x2, Name: "B"}
	idx, how := compat.MatchPhysicalDevices([]*compat.Fingerprint{&a, &b}, []compat.Fingerprint{b, a})
	assert.Equal(t, []int{1, 0}, idx)
	assert.Equal(t, []compat.DeviceMatch{compat.ByModel, compat.ByModel}, how)
}

func TestMatchPhysicalDevicesFallbacks(t *testing.T) {
	a := compat.Fingerprint{VendorID: 1, DeviceID: 1, Name: "shared"}
	c := compat.Fingerprint{VendorID: 3, DeviceID: 3, Name: "other"}
	live := []compat.Fingerprint{
		{VendorID: 9, DeviceID: 9, Name: "x"},
		{VendorID: 8, DeviceID: 8, Name: "shared"},
	}
	idx, how := compat.MatchPhysicalDevices([]*compat.Fingerprint{&a, &c, nil}, live)
	assert.Equal(t, []int{1, 0, 0}, idx)
	assert.Equal(t, []compat.DeviceMatch{compat.ByName, compat.ByPosition, compat.ByPosition}, how)

	idx, _ = compat.MatchPhysicalDevices([]*compat.Fingerprint{&a}, nil)
	assert.Equal(t, []int{-1}, idx)
}
