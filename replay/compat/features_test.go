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

func featureRequest() (*api.PhysicalDeviceFeatures, api.Chain) {
	requested := &api.PhysicalDeviceFeatures{}
	requested[api.FeatureGeometryShader] = true
	requested[api.FeatureSamplerAnisotropy] = true
	chain := api.NewChain(&api.BufferDeviceAddressFeatures{
		BufferDeviceAddress:              true,
		BufferDeviceAddressCaptureReplay: true,
	})
	return requested, chain
}

func featureSupport() (api.PhysicalDeviceFeatures, api.Chain) {
	supported := api.PhysicalDeviceFeatures{}
	supported[api.FeatureSamplerAnisotropy] = true
	return supported, api.NewChain(&api.BufferDeviceAddressFeatures{BufferDeviceAddress: true})
}

func TestReconcileFeaturesWithOverride(t *testing.T) {
	ctx := log.Testing(t)
	requested, chain := featureRequest()
	supported, supportedChain := featureSupport()

	mismatches := compat.ReconcileFeatures(ctx, requested, chain, supported, supportedChain, true)
	assert.Equal(t, []compat.FeatureMismatch{
		{Struct: "VkPhysicalDeviceFeatures", Name: "geometryShader"},
		{Struct: "VkPhysicalDeviceBufferDeviceAddressFeatures", Name: "bufferDeviceAddressCaptureReplay"},
	}, mismatches)
	assert.False(t, requested[api.FeatureGeometryShader])
	assert.True(t, requested[api.FeatureSamplerAnisotropy])
	bda, _ := api.FindAs[*api.BufferDeviceAddressFeatures](chain)
	assert.True(t, bda.BufferDeviceAddress)
	assert.False(t, bda.BufferDeviceAddressCaptureReplay)
}

func TestReconcileFeaturesWithoutOverride(t *testing.T) {
	ctx, rec := log.Recording(log.Testing(t))
	requested, chain := featureRequest()
	supported, supportedChain := featureSupport()

	mismatches := compat.ReconcileFeatures(ctx, requested, chain, supported, supportedChain, false)
	assert.Len(t, mismatches, 2)
	assert.Equal(t, 2, rec.Count(log.Error))
	assert.True(t, requested[api.FeatureGeometryShader])
	bda, _ := api.FindAs[*api.BufferDeviceAddressFeatures](chain)
	assert.True(t, bda.BufferDeviceAddressCaptureReplay)
}

func TestReconcileFeaturesUnknownStruct(t *testing.T) {
	ctx := log.Testing(t)
	chain := api.NewChain(&api.RayQueryFeatures{RayQuery: true})
	mismatches := compat.ReconcileFeatures(ctx, nil, chain, api.PhysicalDeviceFeatures{}, api.Chain{}, true)
	require.Len(t, mismatches, 1)
	assert.Equal(t, "VkPhysicalDeviceRayQueryFeaturesKHR.rayQuery", mismatches[0].String())
}

func TestReconcileExtensions(t *testing.T) {
	ctx := log.Testing(t)
	kept, missing := compat.ReconcileExtensions(ctx,
		[]string{"VK_KHR_swapchain", "VK_KHR_ray_query"},
		[]string{"VK_KHR_swapchain"}, true)
	assert.Equal(t, []string{"VK_KHR_swapchain"}, kept)
	assert.Equal(t, []string{"VK_KHR_ray_query"}, missing)

	ctx, _ = log.Recording(ctx)
	kept, _ = compat.ReconcileExtensions(ctx,
		[]string{"VK_KHR_swapchain", "VK_KHR_ray_query"},
		[]string{"VK_KHR_swapchain"}, false)
	assert.Equal(t, []string{"VK_KHR_swapchain", "VK_KHR_ray_query"}, kept)
}

func TestResolveDeterministicFeatures(t *testing.T) {
	all := compat.DeviceFeatureSupport{
		AccelerationStructureCaptureReplay: true,
		BufferDeviceAddressCaptureReplay:   true,
		ShaderGroupHandleCaptureReplay:     true,
	}
	assert.Equal(t, all, compat.ResolveDeterministicFeatures(all, all, 0))

	partial := compat.DeviceFeatureSupport{BufferDeviceAddressCaptureReplay: true}
	assert.Equal(t, partial, compat.ResolveDeterministicFeatures(all, partial, 0))
	assert.Equal(t, partial, compat.ResolveDeterministicFeatures(partial, all, 0))

	got := compat.ResolveDeterministicFeatures(all, all,
		compat.DisableAccelerationStructureCaptureReplay|compat.DisableShaderGroupHandleCaptureReplay)
	assert.Equal(t, partial, got)
	got = compat.ResolveDeterministicFeatures(all, all, compat.DisableBufferDeviceAddressCaptureReplay)
	assert.False(t, got.BufferDeviceAddressCaptureReplay)
	assert.True(t, got.AccelerationStructureCaptureReplay)
}

func TestDeterministicSupportApply(t *testing.T) {
	chain := api.NewChain(
		&api.AccelerationStructureFeatures{AccelerationStructure: true, AccelerationStructureCaptureReplay: true},
		&api.RayTracingPipelineFeatures{RayTracingPipeline: true, RayTracingPipelineShaderGroupHandleCaptureReplay: true},
	)
	s := compat.DeterministicSupport(chain)
	assert.True(t, s.AccelerationStructureCaptureReplay)
	assert.True(t, s.ShaderGroupHandleCaptureReplay)
	assert.False(t, s.BufferDeviceAddressCaptureReplay)

	compat.DeviceFeatureSupport{ShaderGroupHandleCaptureReplay: true}.Apply(chain)
	as, _ := api.FindAs[*api.AccelerationStructureFeatures](chain)
	assert.True(t, as.AccelerationStructure)
	assert.False(t, as.AccelerationStructureCaptureReplay)
	rt, _ := api.FindAs[*api.RayTracingPipelineFeatures](chain)
	assert.True(t, rt.RayTracingPipelineShaderGroupHandleCaptureReplay)
}
