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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ARM-software/vktrace-arm-sub000/core/app/flags"
	"github.com/ARM-software/vktrace-arm-sub000/core/log"
	"github.com/ARM-software/vktrace-arm-sub000/replay/api"
	"github.com/ARM-software/vktrace-arm-sub000/replay/config"
	"github.com/ARM-software/vktrace-arm-sub000/replay/driver/nulldriver"
	"github.com/ARM-software/vktrace-arm-sub000/replay/handles"
	"github.com/ARM-software/vktrace-arm-sub000/replay/trace"
	"github.com/ARM-software/vktrace-arm-sub000/replay/vulkan"
)

const (
	instance api.VkInstance       = 0x1
	physical api.VkPhysicalDevice = 0x10
)

func writeTrace(t *testing.T, d trace.Device) string {
	path := filepath.Join(t.TempDir(), "app.vkr")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	w, err := trace.NewWriter(f, trace.Header{Application: "app", Devices: []trace.Device{d}})
	require.NoError(t, err)
	require.NoError(t, w.Write("vkCreateInstance", &vulkan.VkCreateInstance{Instance: instance}))
	require.NoError(t, w.Write("vkEnumeratePhysicalDevices", &vulkan.VkEnumeratePhysicalDevices{
		Instance:        instance,
		PhysicalDevices: []api.VkPhysicalDevice{physical},
	}))
	require.NoError(t, w.Flush())
	return path
}

func TestReplayFileWithCaptureDevices(t *testing.T) {
	ctx := log.Testing(t)
	captured := nulldriver.DefaultDevice()
	captured.Properties.DeviceName = "Captured GPU"
	path := writeTrace(t, trace.Device{
		Handle:        physical,
		Properties:    captured.Properties,
		QueueFamilies: captured.QueueFamilies,
		Memory:        &captured.Memory,
	})

	r, err := replayFile(ctx, path, ReplayFlags{Settings: config.Default(), Devices: CaptureDevices})
	require.NoError(t, err)
	assert.Equal(t, 2, r.Stats().Calls)
	assert.Zero(t, r.Stats().Skipped)
	_, ok := handles.Remap(r.Handles(), physical)
	assert.True(t, ok)
}

func TestReplayFileMissingTrace(t *testing.T) {
	ctx := log.Testing(t)
	path := filepath.Join(t.TempDir(), "missing.vkr")
	r, err := replayFile(ctx, path, ReplayFlags{Settings: config.Default()})
	assert.ErrorContains(t, err, path)
	assert.Nil(t, r)
}

func TestFromCaptureCopiesOptionalMembers(t *testing.T) {
	features := api.PhysicalDeviceFeatures{}
	features[api.FeatureGeometryShader] = true
	d := fromCapture(trace.Device{Features: &features})
	assert.True(t, d.Features[api.FeatureGeometryShader])
	assert.Empty(t, d.Memory.Types)
}

func TestDeviceSourceChoices(t *testing.T) {
	var d DeviceSource
	c := flags.ForEnum(&d)
	assert.Equal(t, 3, c.Choices.Len())
	require.NoError(t, c.Set("LIVE"))
	assert.Equal(t, LiveDevices, d)
	assert.Error(t, c.Set("remote"))
}
