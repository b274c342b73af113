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

	"github.com/ARM-software/vktrace-arm-sub000/core/fault"
	"github.com/ARM-software/vktrace-arm-sub000/core/log"
	"github.com/ARM-software/vktrace-arm-sub000/replay/api"
)

const (
	ErrQueuePropertiesUnknown  = fault.Const("Queue family properties unknown")
	ErrNoCompatibleQueueFamily = fault.Const("No compatible queue family")
)

// Match describes how a resolved index relates to the captured one.
type Match int

const (
	// Unchanged means no translation was needed.
	Unchanged Match = iota
	// SingleFamily means the replay device has only one queue family.
	SingleFamily
	// Exact means the resolved entry has identical flags.
	Exact
	// Superset means the resolved entry has every captured flag and more.
	Superset
	// Fallback means the resolved entry lacks some captured flags.
	Fallback
)

func (m Match) String() string {
	switch m {
	case Unchanged:
		return "unchanged"
	case SingleFamily:
		return "single family"
	case Exact:
		return "exact"
	case Superset:
		return "superset"
	default:
		return "fallback"
	}
}

var queuePriorityMasks = []api.QueueFlags{
	api.QueueGraphics | api.QueueCompute | api.QueueTransfer,
	api.QueueGraphics | api.QueueCompute,
	api.QueueGraphics,
}

// ResolveQueueFamily maps a captured queue family index to a live one.
// Special indices such as VK_QUEUE_FAMILY_IGNORED are returned unchanged. On
// error the captured index is returned alongside it.
func ResolveQueueFamily(ctx context.Context, captured uint32, capture, replay *PhysicalDeviceInfo, compatibilityMode bool) (uint32, Match, error) {
	if !compatibilityMode || SamePlatform(capture, replay) {
		return captured, Unchanged, nil
	}
	if captured >= api.QueueFamilyIgnored-2 {
		// VK_QUEUE_FAMILY_IGNORED, _EXTERNAL and _FOREIGN_EXT.
		return captured, Unchanged, nil
	}
	if capture == nil || replay == nil || int(captured) >= len(capture.QueueFamilies) || len(replay.QueueFamilies) == 0 {
		return captured, Unchanged, ErrQueuePropertiesUnknown
	}
	families := replay.QueueFamilies
	if len(families) == 1 {
		return 0, SingleFamily, nil
	}
	want := capture.QueueFamilies[captured].QueueFlags

	n := uint32(len(families))
	scan := func(pred func(api.QueueFlags) bool) (uint32, bool) {
		for i := uint32(0); i < n; i++ {
			idx := (captured + i) % n
			if pred(families[idx].QueueFlags) {
				return idx, true
			}
		}
		return 0, false
	}
	if idx, ok := scan(func(f api.QueueFlags) bool { return f == want }); ok {
		return idx, Exact, nil
	}
	if idx, ok := scan(func(f api.QueueFlags) bool { return f.Contains(want) }); ok {
		return idx, Superset, nil
	}
	for _, mask := range queuePriorityMasks {
		for i, f := range families {
			if f.QueueFlags.Contains(mask) {
				log.W(ctx, "Queue family %d (%v) inexactly matched to %d (%v)", captured, want, i, f.QueueFlags)
				return uint32(i), Fallback, nil
			}
		}
	}
	return captured, Unchanged, ErrNoCompatibleQueueFamily
}
