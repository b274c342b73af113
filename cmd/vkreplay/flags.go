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

package main

import (
	"github.com/ARM-software/vktrace-arm-sub000/replay/config"
)

// DeviceSource selects the physical devices the null driver pretends to be.
type DeviceSource uint8

const (
	// NullDevices exposes a single generic device.
	NullDevices DeviceSource = iota
	// CaptureDevices mirrors the devices recorded in the trace header, which
	// makes every translation an identity.
	CaptureDevices
	// LiveDevices mirrors the devices reported by the system Vulkan loader,
	// which shows how the trace would be translated on this machine.
	LiveDevices
)

var deviceSourceNames = map[DeviceSource]string{
	NullDevices:    "null",
	CaptureDevices: "capture",
	LiveDevices:    "live",
}

func (d DeviceSource) String() string { return deviceSourceNames[d] }

func (d *DeviceSource) Choose(c interface{}) { *d = c.(DeviceSource) }

type (
	ReplayFlags struct {
		config.Settings
		Devices DeviceSource `help:"physical devices the dry run driver exposes"`
	}
	MappingsFlags struct {
		ReplayFlags
		Out string `help:"write the mappings here instead of stdout"`
	}
	DevicesFlags struct {
		Extensions bool `help:"list the extensions of each device"`
	}
)
