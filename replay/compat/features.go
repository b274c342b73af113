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

package compat

import (
	"context"

	"github.com/ARM-software/vktrace-arm-sub000/core/log"
	"github.com/ARM-software/vktrace-arm-sub000/replay/api"
)

// FeatureMismatch names a requested device feature the replay device lacks.
type FeatureMismatch struct {
	Struct string // "VkPhysicalDeviceFeatures" or the extension structure name
	Name   string
}

func (m FeatureMismatch) String() string { return m.Struct + "." + m.Name }

// ReconcileFeatures compares the features requested at device creation with
// those supported by the replay device. Every unsupported request is logged.
// When override is true the request is cleared in place so creation can
// proceed, otherwise it is left for the driver to reject.
//
// requested and chain are modified; pass copies of captured data. supported
// holds the core features of the replay device and supportedChain the feature
// structures it filled in. A requested feature structure with no supported
// counterpart is treated as entirely unsupported.
func ReconcileFeatures(ctx context.Context, requested *api.PhysicalDeviceFeatures, chain api.Chain,
	supported api.PhysicalDeviceFeatures, supportedChain api.Chain, override bool) []FeatureMismatch {

	out := []FeatureMismatch{}
	report := func(m FeatureMismatch) {
		out = append(out, m)
		if override {
			log.W(ctx, "Feature %v is not supported by the replay device, disabling it", m)
		} else {
			log.E(ctx, "Feature %v is not supported by the replay device", m)
		}
	}
	if requested != nil {
		for _, f := range requested.Unsupported(supported) {
			report(FeatureMismatch{"VkPhysicalDeviceFeatures", f.String()})
			if override {
				requested[f] = false
			}
		}
	}
	for _, n := range chain.Nodes() {
		req, ok := n.(api.FeatureStruct)
		if !ok {
			continue
		}
		var have []api.FeatureMember
		if s, ok := supportedChain.Find(n.StructureType()).(api.FeatureStruct); ok {
			have = s.Members()
		}
		for i, m := range req.Members() {
			if !*m.Enabled || (i < len(have) && *have[i].Enabled) {
				continue
			}
			report(FeatureMismatch{n.StructureType().String(), m.Name})
			if override {
				*m.Enabled = false
			}
		}
	}
	return out
}

// ReconcileExtensions returns the requested extensions with those the replay
// device lacks removed when override is true, and the list of missing ones.
func ReconcileExtensions(ctx context.Context, requested, supported []string, override bool) (kept, missing []string) {
	have := make(map[string]bool, len(supported))
	for _, e := range supported {
		have[e] = true
	}
	kept = make([]string, 0, len(requested))
	for _, e := range requested {
		if have[e] {
			kept = append(kept, e)
			continue
		}
		missing = append(missing, e)
		if override {
			log.W(ctx, "Extension %s is not supported by the replay device, dropping it", e)
			continue
		}
		log.E(ctx, "Extension %s is not supported by the replay device", e)
		kept = append(kept, e)
	}
	return kept, missing
}

// DeviceFeatureSupport records which capture-replay features give objects
// the same device address on replay as during capture.
type DeviceFeatureSupport struct {
	AccelerationStructureCaptureReplay bool
	BufferDeviceAddressCaptureReplay   bool
	ShaderGroupHandleCaptureReplay     bool
}

// DisableMask force-disables deterministic address features.
type DisableMask uint32

const (
	DisableAccelerationStructureCaptureReplay DisableMask = 1 << 0
	DisableShaderGroupHandleCaptureReplay     DisableMask = 1 << 1
	DisableBufferDeviceAddressCaptureReplay   DisableMask = 1 << 2
)

// DeterministicSupport reads the capture-replay feature bits out of a
// feature chain.
func DeterministicSupport(chain api.Chain) DeviceFeatureSupport {
	s := DeviceFeatureSupport{}
	if f, ok := api.FindAs[*api.AccelerationStructureFeatures](chain); ok {
		s.AccelerationStructureCaptureReplay = f.AccelerationStructureCaptureReplay
	}
	if f, ok := api.FindAs[*api.BufferDeviceAddressFeatures](chain); ok {
		s.BufferDeviceAddressCaptureReplay = f.BufferDeviceAddressCaptureReplay
	}
	if f, ok := api.FindAs[*api.RayTracingPipelineFeatures](chain); ok {
		s.ShaderGroupHandleCaptureReplay = f.RayTracingPipelineShaderGroupHandleCaptureReplay
	}
	return s
}

// ResolveDeterministicFeatures returns the features usable for this replay:
// those supported at both capture and replay, less any disabled by mask.
func ResolveDeterministicFeatures(capture, replay DeviceFeatureSupport, disable DisableMask) DeviceFeatureSupport {
	return DeviceFeatureSupport{
		AccelerationStructureCaptureReplay: capture.AccelerationStructureCaptureReplay &&
			replay.AccelerationStructureCaptureReplay &&
			disable&DisableAccelerationStructureCaptureReplay == 0,
		BufferDeviceAddressCaptureReplay: capture.BufferDeviceAddressCaptureReplay &&
			replay.BufferDeviceAddressCaptureReplay &&
			disable&DisableBufferDeviceAddressCaptureReplay == 0,
		ShaderGroupHandleCaptureReplay: capture.ShaderGroupHandleCaptureReplay &&
			replay.ShaderGroupHandleCaptureReplay &&
			disable&DisableShaderGroupHandleCaptureReplay == 0,
	}
}

// Apply clears the capture-replay requests in a device creation chain that s
// does not allow. chain is modified.
func (s DeviceFeatureSupport) Apply(chain api.Chain) {
	if f, ok := api.FindAs[*api.AccelerationStructureFeatures](chain); ok && !s.AccelerationStructureCaptureReplay {
		f.AccelerationStructureCaptureReplay = false
	}
	if f, ok := api.FindAs[*api.BufferDeviceAddressFeatures](chain); ok && !s.BufferDeviceAddressCaptureReplay {
		f.BufferDeviceAddressCaptureReplay = false
	}
	if f, ok := api.FindAs[*api.RayTracingPipelineFeatures](chain); ok && !s.ShaderGroupHandleCaptureReplay {
		f.RayTracingPipelineShaderGroupHandleCaptureReplay = false
	}
}
