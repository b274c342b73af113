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

// Package compat reconciles differences between the device a trace was
// captured on and the device it is replayed on.
package compat

import (
	"fmt"

	"github.com/ARM-software/vktrace-arm-sub000/replay/api"
)

// Fingerprint identifies a physical device model and driver.
type Fingerprint struct {
	VendorID      uint32
	DeviceID      uint32
	DriverVersion uint32
	Name          string
}

// FingerprintOf returns the fingerprint of a device from its properties.
func FingerprintOf(p api.PhysicalDeviceProperties) Fingerprint {
	return Fingerprint{
		VendorID:      p.VendorID,
		DeviceID:      p.DeviceID,
		DriverVersion: p.DriverVersion,
		Name:          p.DeviceName,
	}
}

func (f Fingerprint) String() string {
	return fmt.Sprintf("%s [%04x:%04x driver 0x%x]", f.Name, f.VendorID, f.DeviceID, f.DriverVersion)
}

// SameModel returns true if both fingerprints name the same vendor and device.
func (f Fingerprint) SameModel(o Fingerprint) bool {
	return f.VendorID == o.VendorID && f.DeviceID == o.DeviceID
}

// SamePlatform returns true if both fingerprints name the same device running
// the same driver. Translation is never needed between such devices.
func (f Fingerprint) SamePlatform(o Fingerprint) bool {
	return f.SameModel(o) && f.DriverVersion == o.DriverVersion
}

// PhysicalDeviceInfo is what is known about a physical device, either from
// the trace or from querying the live driver. Nil or empty members are
// unknown.
type PhysicalDeviceInfo struct {
	Properties    *api.PhysicalDeviceProperties
	QueueFamilies []api.QueueFamilyProperties
	Memory        *api.MemoryProperties
	Features      *api.PhysicalDeviceFeatures
	// FeatureChain holds the extension feature structures of the device.
	FeatureChain api.Chain
	Extensions   []string
}

// Fingerprint returns the device fingerprint, if the properties are known.
func (i *PhysicalDeviceInfo) Fingerprint() (Fingerprint, bool) {
	if i == nil || i.Properties == nil {
		return Fingerprint{}, false
	}
	return FingerprintOf(*i.Properties), true
}

// SamePlatform returns true if both devices are known and share a platform.
func SamePlatform(capture, replay *PhysicalDeviceInfo) bool {
	c, ok := capture.Fingerprint()
	if !ok {
		return false
	}
	r, ok := replay.Fingerprint()
	return ok && c.SamePlatform(r)
}

// PhysicalDevices stores capture and replay introspection data per physical
// device handle. Capture data is keyed by captured handle, replay data by
// live handle.
type PhysicalDevices struct {
	capture map[api.VkPhysicalDevice]*PhysicalDeviceInfo
	replay  map[api.VkPhysicalDevice]*PhysicalDeviceInfo
}

// NewPhysicalDevices returns an empty store.
func NewPhysicalDevices() *PhysicalDevices {
	return &PhysicalDevices{
		capture: map[api.VkPhysicalDevice]*PhysicalDeviceInfo{},
		replay:  map[api.VkPhysicalDevice]*PhysicalDeviceInfo{},
	}
}

// Capture returns the capture-side info for a captured handle, creating an
// empty record if there is none.
func (p *PhysicalDevices) Capture(captured api.VkPhysicalDevice) *PhysicalDeviceInfo {
	return getOrCreate(p.capture, captured)
}

// Replay returns the replay-side info for a live handle, creating an empty
// record if there is none.
func (p *PhysicalDevices) Replay(live api.VkPhysicalDevice) *PhysicalDeviceInfo {
	return getOrCreate(p.replay, live)
}

// Forget drops both records of a physical device.
func (p *PhysicalDevices) Forget(captured, live api.VkPhysicalDevice) {
	delete(p.capture, captured)
	delete(p.replay, live)
}

func getOrCreate(m map[api.VkPhysicalDevice]*PhysicalDeviceInfo, h api.VkPhysicalDevice) *PhysicalDeviceInfo {
	i, ok := m[h]
	if !ok {
		i = &PhysicalDeviceInfo{}
		m[h] = i
	}
	return i
}

// DeviceMatch says how a captured physical device was paired with a live one.
type DeviceMatch int

const (
	ByModel DeviceMatch = iota
	ByName
	ByPosition
)

func (m DeviceMatch) String() string {
	switch m {
	case ByModel:
		return "vendor/device id"
	case ByName:
		return "name"
	default:
		return "position"
	}
}

// MatchPhysicalDevices pairs every captured device with a live device index.
// A captured device prefers an unclaimed live device of the same model, then
// one with the same name, then the live device at its own position. When
// every candidate is taken the first unclaimed device is used, and when there
// are more captured devices than live ones the remaining captures share
// position 0. A nil entry in captured is an unknown fingerprint. Indices are
// -1 only when live is empty.
func MatchPhysicalDevices(captured []*Fingerprint, live []Fingerprint) ([]int, []DeviceMatch) {
	out := make([]int, len(captured))
	how := make([]DeviceMatch, len(captured))
	claimed := make([]bool, len(live))
	for i := range out {
		out[i] = -1
	}
	pass := func(kind DeviceMatch, eq func(a, b Fingerprint) bool) {
		for i, c := range captured {
			if out[i] >= 0 || c == nil {
				continue
			}
			for j, l := range live {
				if !claimed[j] && eq(*c, l) {
					out[i], how[i], claimed[j] = j, kind, true
					break
				}
			}
		}
	}
	pass(ByModel, Fingerprint.SameModel)
	pass(ByName, func(a, b Fingerprint) bool { return a.Name != "" && a.Name == b.Name })
	for i := range captured {
		if out[i] >= 0 || len(live) == 0 {
			continue
		}
		how[i] = ByPosition
		switch {
		case i < len(live) && !claimed[i]:
			out[i] = i
		default:
			out[i] = 0
			for j := range live {
				if !claimed[j] {
					out[i] = j
					break
				}
			}
		}
		claimed[out[i]] = true
	}
	return out, how
}
