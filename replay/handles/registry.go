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

// Package handles maps captured object handles to the handles returned by the
// live driver during replay.
package handles

import (
	"github.com/ARM-software/vktrace-arm-sub000/core/fault"
	"github.com/ARM-software/vktrace-arm-sub000/replay/api"
)

const (
	// ErrCategoryMismatch is returned when a slot is read as a category other
	// than the one it was created for.
	ErrCategoryMismatch = fault.Const("Handle slot category mismatch")
	// ErrEmptySlot is returned when a premapped slot has not been filled.
	ErrEmptySlot = fault.Const("Handle slot is empty")
)

// Registry holds a captured to live handle mapping per handle category.
// A captured value of 0 always maps to 0 and is never stored.
//
// Registry is not safe for concurrent use.
type Registry struct {
	tables    map[api.HandleType]*table
	premapped bool
}

type table struct {
	fwd map[uint64]uint64
	// rev lists the captured handles of each live handle in the order they
	// were added. Several captured handles may share one live handle.
	rev   map[uint64][]uint64
	slots map[uint64]*Slot
}

func (t *table) unlink(captured, live uint64) {
	list := t.rev[live]
	for i, c := range list {
		if c == captured {
			list = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(t.rev, live)
		return
	}
	t.rev[live] = list
}

// Slot is a stable, category-tagged storage location for the live value of a
// single captured handle. Slots are only used when the registry is premapped.
type Slot struct {
	ty   api.HandleType
	live uint64
	set  bool
}

// Type returns the handle category the slot was created for.
func (s *Slot) Type() api.HandleType { return s.ty }

// Get returns the live value held by the slot, refusing to read it as any
// category other than its own.
func (s *Slot) Get(ty api.HandleType) (uint64, error) {
	if s.ty != ty {
		return 0, ErrCategoryMismatch
	}
	if !s.set {
		return 0, ErrEmptySlot
	}
	return s.live, nil
}

// SlotValue reads s as a handle of type T.
func SlotValue[T api.Handle](s *Slot) (T, error) {
	var zero T
	live, err := s.Get(zero.Category())
	return T(live), err
}

// New returns an empty registry. When premapped is true every entry is backed
// by a Slot that can be obtained with Premap before the live value is known.
func New(premapped bool) *Registry {
	return &Registry{tables: map[api.HandleType]*table{}, premapped: premapped}
}

// Premapped returns true if the registry stores entries in slots.
func (r *Registry) Premapped() bool { return r.premapped }

func (r *Registry) table(ty api.HandleType) *table {
	t, ok := r.tables[ty]
	if !ok {
		t = &table{fwd: map[uint64]uint64{}, rev: map[uint64][]uint64{}}
		if r.premapped {
			t.slots = map[uint64]*Slot{}
		}
		r.tables[ty] = t
	}
	return t
}

// Premap returns the slot for the captured handle, creating an empty one if
// needed. It returns nil if the registry is not premapped or captured is 0.
func (r *Registry) Premap(ty api.HandleType, captured uint64) *Slot {
	if !r.premapped || captured == 0 {
		return nil
	}
	t := r.table(ty)
	s, ok := t.slots[captured]
	if !ok {
		s = &Slot{ty: ty}
		t.slots[captured] = s
	}
	return s
}

// Add records that captured maps to live. An existing mapping for captured is
// replaced.
func (r *Registry) Add(ty api.HandleType, captured, live uint64) {
	if captured == 0 {
		return
	}
	t := r.table(ty)
	if old, ok := t.fwd[captured]; ok {
		t.unlink(captured, old)
	}
	t.fwd[captured] = live
	t.rev[live] = append(t.rev[live], captured)
	if s := r.Premap(ty, captured); s != nil {
		s.live, s.set = live, true
	}
}

// Remap returns the live handle for captured. ok is false if there is no
// mapping; callers must skip the call that needed it.
func (r *Registry) Remap(ty api.HandleType, captured uint64) (live uint64, ok bool) {
	if captured == 0 {
		return 0, true
	}
	t, ok := r.tables[ty]
	if !ok {
		return 0, false
	}
	if r.premapped {
		s, ok := t.slots[captured]
		if !ok {
			return 0, false
		}
		live, err := s.Get(ty)
		return live, err == nil
	}
	live, ok = t.fwd[captured]
	return live, ok
}

// RemapHandle implements api.Remapper.
func (r *Registry) RemapHandle(ty api.HandleType, captured uint64) (uint64, bool) {
	return r.Remap(ty, captured)
}

// Remove deletes the mapping for captured. Premapped slots are cleared but
// stay valid for reuse of the same captured value.
func (r *Registry) Remove(ty api.HandleType, captured uint64) {
	if captured == 0 {
		return
	}
	t, ok := r.tables[ty]
	if !ok {
		return
	}
	if live, ok := t.fwd[captured]; ok {
		t.unlink(captured, live)
		delete(t.fwd, captured)
	}
	if s, ok := t.slots[captured]; ok {
		s.live, s.set = 0, false
	}
}

// Captured returns the earliest added captured handle that maps to live.
func (r *Registry) Captured(ty api.HandleType, live uint64) (uint64, bool) {
	if live == 0 {
		return 0, true
	}
	all := r.CapturedAll(ty, live)
	if len(all) == 0 {
		return 0, false
	}
	return all[0], true
}

// CapturedAll returns every captured handle that maps to live.
func (r *Registry) CapturedAll(ty api.HandleType, live uint64) []uint64 {
	t, ok := r.tables[ty]
	if !ok || live == 0 {
		return nil
	}
	return append([]uint64(nil), t.rev[live]...)
}

// Len returns the number of live mappings of the given category.
func (r *Registry) Len(ty api.HandleType) int {
	if t, ok := r.tables[ty]; ok {
		return len(t.fwd)
	}
	return 0
}

// Add records a typed captured to live mapping.
func Add[T api.Handle](r *Registry, captured, live T) {
	r.Add(captured.Category(), uint64(captured), uint64(live))
}

// Remap returns the live handle for a typed captured handle.
func Remap[T api.Handle](r *Registry, captured T) (T, bool) {
	live, ok := r.Remap(captured.Category(), uint64(captured))
	return T(live), ok
}

// Remove deletes the mapping for a typed captured handle.
func Remove[T api.Handle](r *Registry, captured T) {
	r.Remove(captured.Category(), uint64(captured))
}

// Captured returns the captured handle for a typed live handle.
func Captured[T api.Handle](r *Registry, live T) (T, bool) {
	captured, ok := r.Captured(live.Category(), uint64(live))
	return T(captured), ok
}

// CapturedAll returns every captured handle for a typed live handle.
func CapturedAll[T api.Handle](r *Registry, live T) []T {
	all := r.CapturedAll(live.Category(), uint64(live))
	out := make([]T, len(all))
	for i, c := range all {
		out[i] = T(c)
	}
	return out
}
