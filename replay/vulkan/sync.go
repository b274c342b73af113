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

package vulkan

import (
	"context"
	"encoding/binary"
	"time"

	"github.com/ARM-software/vktrace-arm-sub000/core/log"
	"github.com/ARM-software/vktrace-arm-sub000/replay/api"
)

const (
	eventPollLimit    = 1000
	eventPollInterval = time.Millisecond
)

type VkCreateFence struct {
	Device api.VkDevice
	Info   api.FenceCreateInfo
	Fence  api.VkFence
	Result api.VkResult
}

func (*VkCreateFence) CmdName() string { return "vkCreateFence" }

func (a *VkCreateFence) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev := live(c, a.Device)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	info := a.Info
	fence, res := r.drv.CreateFence(dev, &info)
	if res == api.VK_SUCCESS {
		add(ctx, r, a.Fence, fence)
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkDestroyFence struct {
	Device api.VkDevice
	Fence  api.VkFence
}

func (*VkDestroyFence) CmdName() string { return "vkDestroyFence" }

func (a *VkDestroyFence) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, fence := live(c, a.Device), live(c, a.Fence)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.DestroyFence(dev, fence)
	forget(r, a.Fence)
	return Success
}

type VkResetFences struct {
	Device api.VkDevice
	Fences []api.VkFence
	Result api.VkResult
}

func (*VkResetFences) CmdName() string { return "vkResetFences" }

func (a *VkResetFences) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, fences := live(c, a.Device), liveAll(c, a.Fences)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	return r.result(ctx, a.CmdName(), a.Result, r.drv.ResetFences(dev, fences))
}

// VkGetFenceStatus blocks on the fence when it was signaled during capture,
// so that later calls observe the same state.
type VkGetFenceStatus struct {
	Device api.VkDevice
	Fence  api.VkFence
	Result api.VkResult
}

func (*VkGetFenceStatus) CmdName() string { return "vkGetFenceStatus" }

func (a *VkGetFenceStatus) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, fence := live(c, a.Device), live(c, a.Fence)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	if a.Result == api.VK_SUCCESS {
		if res := r.drv.WaitForFences(dev, []api.VkFence{fence}, true, api.Infinite); res == api.VK_ERROR_DEVICE_LOST {
			return r.lost(ctx, a.CmdName())
		}
	}
	return r.result(ctx, a.CmdName(), a.Result, r.drv.GetFenceStatus(dev, fence))
}

type VkWaitForFences struct {
	Device  api.VkDevice
	Fences  []api.VkFence
	WaitAll bool
	Timeout uint64
	Result  api.VkResult
}

func (*VkWaitForFences) CmdName() string { return "vkWaitForFences" }

func (a *VkWaitForFences) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, fences := live(c, a.Device), liveAll(c, a.Fences)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	timeout := a.Timeout
	if a.Result == api.VK_SUCCESS {
		timeout = api.Infinite
	}
	return r.result(ctx, a.CmdName(), a.Result, r.drv.WaitForFences(dev, fences, a.WaitAll, timeout))
}

type VkCreateSemaphore struct {
	Device    api.VkDevice
	Info      api.SemaphoreCreateInfo
	Semaphore api.VkSemaphore
	Result    api.VkResult
}

func (*VkCreateSemaphore) CmdName() string { return "vkCreateSemaphore" }

func (a *VkCreateSemaphore) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev := live(c, a.Device)
	info := a.Info
	info.Next = c.chain(a.Info.Next)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	sem, res := r.drv.CreateSemaphore(dev, &info)
	if res == api.VK_SUCCESS {
		add(ctx, r, a.Semaphore, sem)
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkDestroySemaphore struct {
	Device    api.VkDevice
	Semaphore api.VkSemaphore
}

func (*VkDestroySemaphore) CmdName() string { return "vkDestroySemaphore" }

func (a *VkDestroySemaphore) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, sem := live(c, a.Device), live(c, a.Semaphore)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.DestroySemaphore(dev, sem)
	forget(r, a.Semaphore)
	return Success
}

type VkCreateEvent struct {
	Device api.VkDevice
	Info   api.EventCreateInfo
	Event  api.VkEvent
	Result api.VkResult
}

func (*VkCreateEvent) CmdName() string { return "vkCreateEvent" }

func (a *VkCreateEvent) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev := live(c, a.Device)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	info := a.Info
	event, res := r.drv.CreateEvent(dev, &info)
	if res == api.VK_SUCCESS {
		add(ctx, r, a.Event, event)
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkDestroyEvent struct {
	Device api.VkDevice
	Event  api.VkEvent
}

func (*VkDestroyEvent) CmdName() string { return "vkDestroyEvent" }

func (a *VkDestroyEvent) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, event := live(c, a.Device), live(c, a.Event)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.DestroyEvent(dev, event)
	forget(r, a.Event)
	return Success
}

// VkGetEventStatus polls a bounded number of times for the captured state,
// since the event may be set by work still executing on the live device.
type VkGetEventStatus struct {
	Device api.VkDevice
	Event  api.VkEvent
	Result api.VkResult
}

func (*VkGetEventStatus) CmdName() string { return "vkGetEventStatus" }

func (a *VkGetEventStatus) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, event := live(c, a.Device), live(c, a.Event)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	res := r.drv.GetEventStatus(dev, event)
	for i := 0; i < eventPollLimit && res != a.Result && !res.IsError(); i++ {
		time.Sleep(eventPollInterval)
		res = r.drv.GetEventStatus(dev, event)
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkSetEvent struct {
	Device api.VkDevice
	Event  api.VkEvent
	Result api.VkResult
}

func (*VkSetEvent) CmdName() string { return "vkSetEvent" }

func (a *VkSetEvent) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, event := live(c, a.Device), live(c, a.Event)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	return r.result(ctx, a.CmdName(), a.Result, r.drv.SetEvent(dev, event))
}

type VkResetEvent struct {
	Device api.VkDevice
	Event  api.VkEvent
	Result api.VkResult
}

func (*VkResetEvent) CmdName() string { return "vkResetEvent" }

func (a *VkResetEvent) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, event := live(c, a.Device), live(c, a.Event)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	return r.result(ctx, a.CmdName(), a.Result, r.drv.ResetEvent(dev, event))
}

type VkCreateQueryPool struct {
	Device api.VkDevice
	Info   api.QueryPoolCreateInfo
	Pool   api.VkQueryPool
	Result api.VkResult
}

func (*VkCreateQueryPool) CmdName() string { return "vkCreateQueryPool" }

func (a *VkCreateQueryPool) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev := live(c, a.Device)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	info := a.Info
	pool, res := r.drv.CreateQueryPool(dev, &info)
	if res == api.VK_SUCCESS {
		add(ctx, r, a.Pool, pool)
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkDestroyQueryPool struct {
	Device api.VkDevice
	Pool   api.VkQueryPool
}

func (*VkDestroyQueryPool) CmdName() string { return "vkDestroyQueryPool" }

func (a *VkDestroyQueryPool) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, pool := live(c, a.Device), live(c, a.Pool)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.DestroyQueryPool(dev, pool)
	delete(r.queries, a.Pool)
	forget(r, a.Pool)
	return Success
}

// VkGetQueryPoolResults waits for results that were available during
// capture. Compacted acceleration structure sizes read back are recorded so
// that structures created with them can be resized for the live device.
type VkGetQueryPoolResults struct {
	Device     api.VkDevice
	Pool       api.VkQueryPool
	FirstQuery uint32
	QueryCount uint32
	Stride     uint64
	Flags      api.QueryResultFlags
	Data       []byte
	Result     api.VkResult
}

func (*VkGetQueryPoolResults) CmdName() string { return "vkGetQueryPoolResults" }

func (a *VkGetQueryPoolResults) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, pool := live(c, a.Device), live(c, a.Pool)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	flags := a.Flags
	if a.Result == api.VK_SUCCESS {
		flags |= api.QueryResultWait
	}
	data, res := r.drv.GetQueryPoolResults(dev, pool, a.FirstQuery, a.QueryCount, a.Stride, flags)
	if q, ok := r.queries[a.Pool]; ok && res == api.VK_SUCCESS {
		for i := uint32(0); i < a.QueryCount; i++ {
			query := a.FirstQuery + i
			if query < q.first || int(query-q.first) >= len(q.structures) {
				continue
			}
			captured, ok1 := queryValue(a.Data, a.Stride, i, a.Flags)
			replayed, ok2 := queryValue(data, a.Stride, i, a.Flags)
			if !ok1 || !ok2 {
				continue
			}
			as := q.structures[query-q.first]
			r.addresses.RecordCompactedSize(uint64(as), captured, replayed)
			log.D(ctx, "Compacted size of %v: captured 0x%x, replay 0x%x", as, captured, replayed)
		}
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

// queryValue reads the i'th result of a query results buffer.
func queryValue(data []byte, stride uint64, i uint32, flags api.QueryResultFlags) (uint64, bool) {
	at := uint64(i) * stride
	if flags&api.QueryResult64 != 0 {
		if at+8 > uint64(len(data)) {
			return 0, false
		}
		return binary.LittleEndian.Uint64(data[at:]), true
	}
	if at+4 > uint64(len(data)) {
		return 0, false
	}
	return uint64(binary.LittleEndian.Uint32(data[at:])), true
}
