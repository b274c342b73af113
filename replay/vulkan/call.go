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

	"github.com/pkg/errors"

	"github.com/ARM-software/vktrace-arm-sub000/core/fault"
	"github.com/ARM-software/vktrace-arm-sub000/core/log"
	"github.com/ARM-software/vktrace-arm-sub000/replay/api"
	"github.com/ARM-software/vktrace-arm-sub000/replay/config"
	"github.com/ARM-software/vktrace-arm-sub000/replay/handles"
)

// call gathers the failures of one replayed call so they are reported
// together and the call is skipped once.
type call struct {
	r    *Replayer
	errs fault.List
}

func (r *Replayer) call() *call { return &call{r: r} }

// live returns the live handle for a captured one. A failure is recorded
// and the captured value returned.
func live[T api.Handle](c *call, h T) T {
	out, err := api.Remap[T](c.r.handles, h)
	c.errs.Collect(err)
	return out
}

func liveAll[T api.Handle](c *call, hs []T) []T {
	if hs == nil {
		return nil
	}
	out := make([]T, len(hs))
	for i, h := range hs {
		out[i] = live(c, h)
	}
	return out
}

// chain returns a remapped copy of ch.
func (c *call) chain(ch api.Chain) api.Chain {
	out, err := ch.Remapped(c.r.handles)
	c.errs.Collect(err)
	return out
}

// fail records a failure that is not a remapping failure.
func (c *call) fail(err error) { c.errs.Collect(err) }

// skipped reports whether the call must be skipped, logging why.
func (c *call) skipped(ctx context.Context) (Status, bool) {
	err := c.errs.Err()
	if err == nil {
		return Success, false
	}
	var re api.RemapError
	if errors.As(err, &re) {
		err = fault.List{ErrRemapFailure, err}
	}
	return c.r.skip(ctx, err), true
}

// add records a new captured to live handle mapping.
func add[T api.Handle](ctx context.Context, r *Replayer, captured, live T) {
	handles.Add(r.handles, captured, live)
	if config.LogRemappings {
		log.D(ctx, "%v: 0x%x -> 0x%x", captured.Category(), uint64(captured), uint64(live))
	}
}

func addAll[T api.Handle](ctx context.Context, r *Replayer, captured, live []T) {
	for i := range captured {
		if i < len(live) {
			add(ctx, r, captured[i], live[i])
		}
	}
}

// forget removes the mapping of a destroyed captured handle.
func forget[T api.Handle](r *Replayer, captured T) {
	handles.Remove(r.handles, captured)
}

func forgetAll[T api.Handle](r *Replayer, captured []T) {
	for _, h := range captured {
		forget(r, h)
	}
}
