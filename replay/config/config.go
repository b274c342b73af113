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

// Package config holds the replay settings and build configuration flags.
package config

const (
	DebugReplay   = false // Logs every replayed call with its live result
	LogRemappings = false // Logs every handle added to the registry
)

// Settings controls the compatibility behavior of a replay.
type Settings struct {
	CompatibilityMode            bool   `help:"translate queue families, memory types and features between devices"`
	EnableVirtualSwapchain       bool   `help:"render to off-screen images and blit them at present"`
	ForceSyncImgIdx              bool   `help:"acquire until the live image index matches the captured one"`
	OverrideCreateDeviceFeatures bool   `help:"clear requested device features the replay device lacks"`
	DisableRQAndRTPCaptureReplay uint32 `help:"bitmask disabling capture replay of acceleration structures (1), shader group handles (2), buffer device addresses (4)"`
	Premapping                   bool   `help:"store live handles in premapped slots"`
	ExportMappings               string `help:"write the captured to live handle mapping to this file after replay"`
}

// Default returns the default settings.
func Default() Settings {
	return Settings{CompatibilityMode: true}
}
