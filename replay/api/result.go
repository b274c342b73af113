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

package api

import "fmt"

// VkResult is the return code of a Vulkan entry point.
type VkResult int32

const (
	VK_SUCCESS                           VkResult = 0
	VK_NOT_READY                         VkResult = 1
	VK_TIMEOUT                           VkResult = 2
	VK_EVENT_SET                         VkResult = 3
	VK_EVENT_RESET                       VkResult = 4
	VK_INCOMPLETE                        VkResult = 5
	VK_ERROR_OUT_OF_HOST_MEMORY          VkResult = -1
	VK_ERROR_OUT_OF_DEVICE_MEMORY        VkResult = -2
	VK_ERROR_INITIALIZATION_FAILED       VkResult = -3
	VK_ERROR_DEVICE_LOST                 VkResult = -4
	VK_ERROR_MEMORY_MAP_FAILED           VkResult = -5
	VK_ERROR_LAYER_NOT_PRESENT           VkResult = -6
	VK_ERROR_EXTENSION_NOT_PRESENT       VkResult = -7
	VK_ERROR_FEATURE_NOT_PRESENT         VkResult = -8
	VK_ERROR_INCOMPATIBLE_DRIVER         VkResult = -9
	VK_ERROR_TOO_MANY_OBJECTS            VkResult = -10
	VK_ERROR_FORMAT_NOT_SUPPORTED        VkResult = -11
	VK_ERROR_FRAGMENTED_POOL             VkResult = -12
	VK_ERROR_UNKNOWN                     VkResult = -13
	VK_ERROR_OUT_OF_POOL_MEMORY          VkResult = -1000069000
	VK_ERROR_INVALID_OPAQUE_CAPTURE_ADDR VkResult = -1000257000
	VK_ERROR_SURFACE_LOST_KHR            VkResult = -1000000000
	VK_ERROR_NATIVE_WINDOW_IN_USE_KHR    VkResult = -1000000001
	VK_SUBOPTIMAL_KHR                    VkResult = 1000001003
	VK_ERROR_OUT_OF_DATE_KHR             VkResult = -1000001004
	VK_ERROR_VALIDATION_FAILED_EXT       VkResult = -1000011001
)

var resultNames = map[VkResult]string{
	VK_SUCCESS:                           "VK_SUCCESS",
	VK_NOT_READY:                         "VK_NOT_READY",
	VK_TIMEOUT:                           "VK_TIMEOUT",
	VK_EVENT_SET:                         "VK_EVENT_SET",
	VK_EVENT_RESET:                       "VK_EVENT_RESET",
	VK_INCOMPLETE:                        "VK_INCOMPLETE",
	VK_ERROR_OUT_OF_HOST_MEMORY:          "VK_ERROR_OUT_OF_HOST_MEMORY",
	VK_ERROR_OUT_OF_DEVICE_MEMORY:        "VK_ERROR_OUT_OF_DEVICE_MEMORY",
	VK_ERROR_INITIALIZATION_FAILED:       "VK_ERROR_INITIALIZATION_FAILED",
	VK_ERROR_DEVICE_LOST:                 "VK_ERROR_DEVICE_LOST",
	VK_ERROR_MEMORY_MAP_FAILED:           "VK_ERROR_MEMORY_MAP_FAILED",
	VK_ERROR_LAYER_NOT_PRESENT:           "VK_ERROR_LAYER_NOT_PRESENT",
	VK_ERROR_EXTENSION_NOT_PRESENT:       "VK_ERROR_EXTENSION_NOT_PRESENT",
	VK_ERROR_FEATURE_NOT_PRESENT:         "VK_ERROR_FEATURE_NOT_PRESENT",
	VK_ERROR_INCOMPATIBLE_DRIVER:         "VK_ERROR_INCOMPATIBLE_DRIVER",
	VK_ERROR_TOO_MANY_OBJECTS:            "VK_ERROR_TOO_MANY_OBJECTS",
	VK_ERROR_FORMAT_NOT_SUPPORTED:        "VK_ERROR_FORMAT_NOT_SUPPORTED",
	VK_ERROR_FRAGMENTED_POOL:             "VK_ERROR_FRAGMENTED_POOL",
	VK_ERROR_UNKNOWN:                     "VK_ERROR_UNKNOWN",
	VK_ERROR_OUT_OF_POOL_MEMORY:          "VK_ERROR_OUT_OF_POOL_MEMORY",
	VK_ERROR_INVALID_OPAQUE_CAPTURE_ADDR: "VK_ERROR_INVALID_OPAQUE_CAPTURE_ADDRESS",
	VK_ERROR_SURFACE_LOST_KHR:            "VK_ERROR_SURFACE_LOST_KHR",
	VK_ERROR_NATIVE_WINDOW_IN_USE_KHR:    "VK_ERROR_NATIVE_WINDOW_IN_USE_KHR",
	VK_SUBOPTIMAL_KHR:                    "VK_SUBOPTIMAL_KHR",
	VK_ERROR_OUT_OF_DATE_KHR:             "VK_ERROR_OUT_OF_DATE_KHR",
	VK_ERROR_VALIDATION_FAILED_EXT:       "VK_ERROR_VALIDATION_FAILED_EXT",
}

func (r VkResult) String() string {
	if n, ok := resultNames[r]; ok {
		return n
	}
	return fmt.Sprintf("VkResult(%d)", int32(r))
}

// IsError returns true for the negative (failure) result codes.
func (r VkResult) IsError() bool { return r < 0 }
