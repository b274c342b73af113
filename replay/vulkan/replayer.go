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

// Package vulkan replays recorded Vulkan calls against a live driver,
// translating captured handles and device addresses and reconciling the
// differences between the capture and replay devices.
package vulkan

import (
	"context"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ARM-software/vktrace-arm-sub000/core/fault"
	"github.com/ARM-software/vktrace-arm-sub000/core/log"
	"github.com/ARM-software/vktrace-arm-sub000/replay/address"
	"github.com/ARM-software/vktrace-arm-sub000/replay/api"
	"github.com/ARM-software/vktrace-arm-sub000/replay/compat"
	"github.com/ARM-software/vktrace-arm-sub000/replay/config"
	"github.com/ARM-software/vktrace-arm-sub000/replay/driver"
	"github.com/ARM-software/vktrace-arm-sub000/replay/handles"
	"github.com/ARM-software/vktrace-arm-sub000/replay/swapchain"
	"github.com/ARM-software/vktrace-arm-sub000/replay/trace"
)

const (
	ErrRemapFailure            = fault.Const("Captured handle has no live counterpart")
	ErrTranslationAmbiguity    = fault.Const("No compatible replay resource")
	ErrReturnValueMismatch     = fault.Const("Replay result differs from captured result")
	ErrUnrecoverableDeviceLoss = fault.Const("Device lost")
	ErrUnknownCommand          = fault.Const("Unknown command")
)

// Status is the outcome of replaying one call.
type Status int

const (
	Success Status = iota
	BadReturnValueMismatch
	ValidationErrorReported
	Unrecoverable
)

func (s Status) String() string {
	switch s {
	case Success:
		return "Success"
	case BadReturnValueMismatch:
		return "BadReturnValueMismatch"
	case ValidationErrorReported:
		return "ValidationErrorReported"
	case Unrecoverable:
		return "Unrecoverable"
	default:
		return "Status(?)"
	}
}

// Cmd is a recorded call. Its fields hold the captured parameters, outputs
// and result.
type Cmd interface {
	// CmdName returns the Vulkan entry point name of the command.
	CmdName() string

	// Replay issues the command to the replayer's driver.
	Replay(ctx context.Context, r *Replayer) Status
}

// Stats counts the outcomes of replayed calls.
type Stats struct {
	Calls            int
	Skipped          int
	Mismatches       int
	ValidationErrors int
}

type deviceState struct {
	physical  api.VkPhysicalDevice // captured
	live      api.VkDevice
	livePD    api.VkPhysicalDevice
	support   compat.DeviceFeatureSupport
	requested compat.DeviceFeatureSupport // capture replay features the trace relies on
	families  map[uint32]uint32           // captured family to live family
	queueBase map[uint32]uint32           // first live queue index used by a captured family
	queues    map[uint32]uint32           // live family to live queue count
	// requirements holds the result of the latest live memory requirements
	// query on the device.
	requirements api.MemoryRequirements
	queue        api.VkQueue // first live queue retrieved, used for internal submits
	aux          api.VkFence // live fence used to synchronize image acquires
}

// window is the live surface every captured surface of an instance presents
// to.
type window struct {
	surface api.VkSurfaceKHR
	refs    int
}

type swapchainState struct {
	device    api.VkDevice // captured
	live      api.VkSwapchainKHR
	surface   api.VkSurfaceKHR // live
	info      api.SwapchainCreateInfo
	images    []api.VkImage // captured
	coalesced bool
}

// object names a captured buffer or image.
type object struct {
	ty api.HandleType
	h  uint64
}

type queryState struct {
	structures []api.VkAccelerationStructureKHR // captured, per query from first
	first      uint32
}

// Replayer holds every table used to translate a trace for the live driver.
// One Replayer replays one trace.
//
// Replayer is not safe for concurrent use.
type Replayer struct {
	drv       driver.Driver
	settings  config.Settings
	session   uuid.UUID
	handles   *handles.Registry
	addresses *address.Table
	physical  *compat.PhysicalDevices
	trackers  *swapchain.Trackers
	virtual   *swapchain.Virtual

	devices        map[api.VkDevice]*deviceState                  // captured device
	queues         map[api.VkQueue]api.VkDevice                   // captured queue to captured device
	pools          map[api.VkCommandPool]api.VkDevice             // captured pool to captured device
	commandBuffers map[api.VkCommandBuffer]api.VkDevice           // captured command buffer to captured device
	descriptorSets map[api.VkDescriptorPool][]api.VkDescriptorSet // captured pool to its captured sets
	swapchains     map[api.VkSwapchainKHR]*swapchainState         // captured swapchain
	surfaces       map[api.VkSurfaceKHR]api.VkSwapchainKHR        // live surface to live swapchain
	requirements   map[object]api.MemoryRequirements              // captured buffer or image to live requirements
	queries        map[api.VkQueryPool]queryState                 // captured pool written with compacted sizes
	livePhysical   map[api.VkInstance][]api.VkPhysicalDevice      // captured instance to enumerated live devices
	windows        map[api.VkInstance]*window                     // captured instance to its live surface

	stats Stats

	// Terminate is called when replay cannot continue. It defaults to logging
	// the error and exiting the process.
	Terminate func(ctx context.Context, err error)
}

// New returns a replayer issuing calls to drv.
func New(drv driver.Driver, settings config.Settings) *Replayer {
	return &Replayer{
		drv:            drv,
		settings:       settings,
		session:        uuid.New(),
		handles:        handles.New(settings.Premapping),
		addresses:      address.New(),
		physical:       compat.NewPhysicalDevices(),
		trackers:       swapchain.NewTrackers(),
		virtual:        swapchain.NewVirtual(drv),
		devices:        map[api.VkDevice]*deviceState{},
		queues:         map[api.VkQueue]api.VkDevice{},
		pools:          map[api.VkCommandPool]api.VkDevice{},
		commandBuffers: map[api.VkCommandBuffer]api.VkDevice{},
		descriptorSets: map[api.VkDescriptorPool][]api.VkDescriptorSet{},
		swapchains:     map[api.VkSwapchainKHR]*swapchainState{},
		surfaces:       map[api.VkSurfaceKHR]api.VkSwapchainKHR{},
		requirements:   map[object]api.MemoryRequirements{},
		queries:        map[api.VkQueryPool]queryState{},
		livePhysical:   map[api.VkInstance][]api.VkPhysicalDevice{},
		windows:        map[api.VkInstance]*window{},
		Terminate: func(ctx context.Context, err error) {
			log.F(ctx, true, "Replay aborted: %v", err)
			os.Exit(1)
		},
	}
}

// Session returns the identifier of this replay session.
func (r *Replayer) Session() uuid.UUID { return r.session }

// Settings returns the replay settings.
func (r *Replayer) Settings() config.Settings { return r.settings }

// Stats returns the call statistics so far.
func (r *Replayer) Stats() Stats { return r.stats }

// Handles returns the captured to live handle registry.
func (r *Replayer) Handles() *handles.Registry { return r.handles }

// Addresses returns the device address translation table.
func (r *Replayer) Addresses() *address.Table { return r.addresses }

// Trackers returns the swapchain image trackers.
func (r *Replayer) Trackers() *swapchain.Trackers { return r.trackers }

// Virtual returns the virtual swapchain.
func (r *Replayer) Virtual() *swapchain.Virtual { return r.virtual }

// AddCapturedDevices records what the trace header says about the capture
// devices.
func (r *Replayer) AddCapturedDevices(devices []trace.Device) {
	for _, d := range devices {
		info := r.physical.Capture(d.Handle)
		props := d.Properties
		info.Properties = &props
		info.QueueFamilies = append([]api.QueueFamilyProperties(nil), d.QueueFamilies...)
		info.Memory = d.Memory
		info.Features = d.Features
		info.FeatureChain = d.FeatureChain.Clone()
		info.Extensions = append([]string(nil), d.Extensions...)
	}
}

// Context binds the replay session to ctx.
func (r *Replayer) Context(ctx context.Context) context.Context {
	return log.V{"session": r.session.String()}.Bind(ctx)
}

// Replay replays a single command.
func (r *Replayer) Replay(ctx context.Context, cmd Cmd) Status {
	ctx = log.Enter(ctx, cmd.CmdName())
	r.stats.Calls++
	before := r.drv.ValidationErrors()
	s := cmd.Replay(ctx, r)
	if s == Success && r.drv.ValidationErrors() > before {
		s = ValidationErrorReported
	}
	switch s {
	case BadReturnValueMismatch:
		r.stats.Mismatches++
	case ValidationErrorReported:
		r.stats.ValidationErrors++
	}
	if config.DebugReplay {
		log.D(ctx, "%s: %v", cmd.CmdName(), s)
	}
	return s
}

// Run replays every packet of t in order. It stops early only if a call is
// unrecoverable.
func (r *Replayer) Run(ctx context.Context, t *trace.Reader) error {
	ctx = r.Context(ctx)
	r.AddCapturedDevices(t.Header().Devices)
	for {
		p, err := t.Next()
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}
		cmd, err := Decode(p)
		if err != nil {
			log.W(ctx, "Skipping packet %d: %v", p.Seq, err)
			r.stats.Skipped++
			continue
		}
		if r.Replay(ctx, cmd) == Unrecoverable {
			return errors.Wrapf(ErrUnrecoverableDeviceLoss, "%s (packet %d)", cmd.CmdName(), p.Seq)
		}
	}
}

// ExportMappings writes the handle mapping to the file named by the
// ExportMappings setting, if any.
func (r *Replayer) ExportMappings(ctx context.Context) error {
	path := r.settings.ExportMappings
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "Creating mapping file")
	}
	defer f.Close()
	if _, err := io.WriteString(f, "session "+r.session.String()+"\n"); err != nil {
		return errors.Wrap(err, "Writing mapping file")
	}
	if err := r.handles.WriteMappings(f); err != nil {
		return err
	}
	log.I(ctx, "Wrote handle mappings to %s", path)
	return nil
}

// benign lists the results that may legitimately differ between capture and
// replay for an entry point.
var benign = map[string][]api.VkResult{
	"vkAcquireNextImageKHR":                {api.VK_SUCCESS, api.VK_SUBOPTIMAL_KHR},
	"vkQueuePresentKHR":                    {api.VK_SUCCESS, api.VK_SUBOPTIMAL_KHR},
	"vkGetQueryPoolResults":                {api.VK_SUCCESS, api.VK_NOT_READY},
	"vkGetFenceStatus":                     {api.VK_SUCCESS, api.VK_NOT_READY},
	"vkWaitForFences":                      {api.VK_SUCCESS, api.VK_TIMEOUT},
	"vkEnumeratePhysicalDevices":           {api.VK_SUCCESS, api.VK_INCOMPLETE},
	"vkEnumerateDeviceExtensionProperties": {api.VK_SUCCESS, api.VK_INCOMPLETE},
	"vkGetSwapchainImagesKHR":              {api.VK_SUCCESS, api.VK_INCOMPLETE},
}

func isBenign(name string, captured, live api.VkResult) bool {
	in := func(v api.VkResult) bool {
		for _, b := range benign[name] {
			if b == v {
				return true
			}
		}
		return false
	}
	return in(captured) && in(live)
}

// result compares the live result of a call with the captured one.
func (r *Replayer) result(ctx context.Context, name string, captured, live api.VkResult) Status {
	if live == api.VK_ERROR_DEVICE_LOST {
		return r.lost(ctx, name)
	}
	if captured == live || isBenign(name, captured, live) {
		return Success
	}
	log.W(ctx, "%v: captured %v, replay %v", ErrReturnValueMismatch, captured, live)
	return BadReturnValueMismatch
}

// lost reports an unrecoverable device loss.
func (r *Replayer) lost(ctx context.Context, name string) Status {
	err := errors.Wrapf(ErrUnrecoverableDeviceLoss, "%s", name)
	log.E(ctx, "%v", err)
	r.Terminate(ctx, err)
	return Unrecoverable
}

// skip logs a call that cannot be replayed.
func (r *Replayer) skip(ctx context.Context, err error) Status {
	log.E(ctx, "Skipping call: %v", err)
	r.stats.Skipped++
	return ValidationErrorReported
}
