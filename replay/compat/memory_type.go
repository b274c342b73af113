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
	"github.com/ARM-software/vktrace-arm-sub000/core/fault"
	"github.com/ARM-software/vktrace-arm-sub000/replay/api"
)

const (
	ErrMemoryPropertiesUnknown = fault.Const("Memory type properties unknown")
	ErrNoCompatibleMemoryType  = fault.Const("No compatible memory type")
)

// ResolveMemoryType maps a captured memory type index to a live one allowed
// by the memoryTypeBits of a live memory requirements query. An exact flag
// match at the captured index is preferred over any other exact match.
func ResolveMemoryType(captured uint32, capture, replay *PhysicalDeviceInfo, allowed uint32, compatibilityMode bool) (uint32, Match, error) {
	if !compatibilityMode || SamePlatform(capture, replay) {
		return captured, Unchanged, nil
	}
	if capture == nil || replay == nil || capture.Memory == nil || replay.Memory == nil ||
		int(captured) >= len(capture.Memory.Types) || len(replay.Memory.Types) == 0 {
		return captured, Unchanged, ErrMemoryPropertiesUnknown
	}
	want := capture.Memory.Types[captured].PropertyFlags
	types := replay.Memory.Types
	candidates := func(pred func(api.MemoryPropertyFlags) bool) (uint32, bool) {
		for i, t := range types {
			if i < 32 && allowed&(1<<uint(i)) != 0 && pred(t.PropertyFlags) {
				return uint32(i), true
			}
		}
		return 0, false
	}

	if int(captured) < len(types) && captured < 32 && allowed&(1<<captured) != 0 &&
		types[captured].PropertyFlags == want {
		return captured, Exact, nil
	}
	if i, ok := candidates(func(f api.MemoryPropertyFlags) bool { return f == want }); ok {
		return i, Exact, nil
	}
	if i, ok := candidates(func(f api.MemoryPropertyFlags) bool { return f.Contains(want) }); ok {
		return i, Superset, nil
	}
	if i, ok := candidates(func(f api.MemoryPropertyFlags) bool {
		return f.Contains(api.MemoryHostVisible | api.MemoryHostCoherent)
	}); ok {
		return i, Fallback, nil
	}
	if i, ok := candidates(func(f api.MemoryPropertyFlags) bool { return f.Contains(api.MemoryDeviceLocal) }); ok {
		return i, Fallback, nil
	}
	return captured, Unchanged, ErrNoCompatibleMemoryType
}
