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

// Package address translates GPU virtual addresses observed during capture
// into the addresses of the equivalent live objects.
package address

import (
	"fmt"

	"github.com/ARM-software/vktrace-arm-sub000/core/math/interval"
)

// Category selects the kind of object an address belongs to.
type Category uint8

const (
	Buffer Category = iota
	AccelerationStructure

	categoryCount
)

func (c Category) String() string {
	switch c {
	case Buffer:
		return "buffer"
	case AccelerationStructure:
		return "acceleration structure"
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// Entry is a snapshot of a recorded address range.
type Entry struct {
	Captured     uint64 // captured object handle
	Live         uint64 // live object handle
	CapturedBase uint64
	LiveBase     uint64
	Size         uint64 // 0 if the object size is not known
}

// Contains returns true if the captured address lies within the entry.
func (e Entry) Contains(addr uint64) bool {
	return e.CapturedBase <= addr && addr-e.CapturedBase < e.Size
}

type object struct {
	captured uint64
	live     uint64
	size     uint64
	entry    *entry
}

type entry struct {
	obj      *object
	base     uint64
	liveBase uint64
}

func (e *entry) snapshot() Entry {
	return Entry{
		Captured:     e.obj.captured,
		Live:         e.obj.live,
		CapturedBase: e.base,
		LiveBase:     e.liveBase,
		Size:         e.obj.size,
	}
}

// entryList is sorted by captured base address.
type entryList []*entry

func (l entryList) Length() int { return len(l) }

func (l entryList) GetSpan(i int) interval.U64Span {
	return interval.U64Span{Start: l[i].base, End: l[i].base + l[i].obj.size}
}

type table struct {
	objects map[uint64]*object
	entries entryList
}

type compacted struct {
	captured uint64
	live     uint64
}

// Table holds one captured to live address mapping per Category.
//
// Table is not safe for concurrent use.
type Table struct {
	tables    [categoryCount]table
	compacted map[uint64]compacted
}

// New returns an empty table.
func New() *Table {
	t := &Table{compacted: map[uint64]compacted{}}
	for i := range t.tables {
		t.tables[i].objects = map[uint64]*object{}
	}
	return t
}

func (t *Table) object(cat Category, captured uint64) *object {
	tbl := &t.tables[cat]
	o, ok := tbl.objects[captured]
	if !ok {
		o = &object{captured: captured}
		tbl.objects[captured] = o
	}
	return o
}

// SetSize declares the size of the captured object and its live handle.
func (t *Table) SetSize(cat Category, captured, live, size uint64) {
	o := t.object(cat, captured)
	o.live, o.size = live, size
}

// Record associates the captured object's captured device address with the
// address reported for its live counterpart. Recording a second address for
// the same object, or a second object at the same captured base, replaces
// the earlier entry.
func (t *Table) Record(cat Category, captured, capturedAddr, liveAddr uint64) {
	if capturedAddr == 0 {
		return
	}
	tbl := &t.tables[cat]
	o := t.object(cat, captured)
	if o.entry != nil {
		tbl.remove(o.entry)
	}
	e := &entry{obj: o, base: capturedAddr, liveBase: liveAddr}
	o.entry = e
	i, exists := interval.InsertionPoint(tbl.entries, capturedAddr)
	if exists {
		tbl.entries[i].obj.entry = nil
		tbl.entries[i] = e
		return
	}
	tbl.entries = append(tbl.entries, nil)
	copy(tbl.entries[i+1:], tbl.entries[i:])
	tbl.entries[i] = e
}

func (tbl *table) remove(e *entry) {
	i, exists := interval.InsertionPoint(tbl.entries, e.base)
	if exists && tbl.entries[i] == e {
		tbl.entries = append(tbl.entries[:i], tbl.entries[i+1:]...)
	}
}

// Forget removes the captured object and its address.
func (t *Table) Forget(cat Category, captured uint64) {
	tbl := &t.tables[cat]
	o, ok := tbl.objects[captured]
	if !ok {
		return
	}
	if o.entry != nil {
		tbl.remove(o.entry)
	}
	delete(tbl.objects, captured)
	if cat == AccelerationStructure {
		delete(t.compacted, captured)
	}
}

// Exact returns the live base for an address that was recorded exactly.
func (t *Table) Exact(cat Category, addr uint64) (uint64, bool) {
	tbl := &t.tables[cat]
	if i, exists := interval.InsertionPoint(tbl.entries, addr); exists {
		return tbl.entries[i].liveBase, true
	}
	return 0, false
}

// Nearest finds the closest recorded base not greater than addr and returns
// its live base and the offset of addr from it. The lookup fails if addr is
// at or beyond the end of that object, even when no other base is closer.
func (t *Table) Nearest(cat Category, addr uint64) (liveBase, delta uint64, ok bool) {
	e, ok := t.Lookup(cat, addr)
	if !ok {
		return 0, 0, false
	}
	return e.LiveBase, addr - e.CapturedBase, true
}

// Lookup returns the entry whose range contains addr.
func (t *Table) Lookup(cat Category, addr uint64) (Entry, bool) {
	tbl := &t.tables[cat]
	i := interval.IndexOf(tbl.entries, addr)
	if i < 0 {
		return Entry{}, false
	}
	return tbl.entries[i].snapshot(), true
}

// Translate returns the live address for a captured one, first by exact
// match and then by nearest enclosing range. 0 translates to 0.
func (t *Table) Translate(cat Category, addr uint64) (uint64, bool) {
	if addr == 0 {
		return 0, true
	}
	if live, ok := t.Exact(cat, addr); ok {
		return live, true
	}
	if base, delta, ok := t.Nearest(cat, addr); ok {
		return base + delta, true
	}
	return addr, false
}

// Entries returns a snapshot of the recorded ranges of a category, ordered by
// captured base.
func (t *Table) Entries(cat Category) []Entry {
	out := make([]Entry, len(t.tables[cat].entries))
	for i, e := range t.tables[cat].entries {
		out[i] = e.snapshot()
	}
	return out
}

// OwningBuffer returns the captured buffer whose device address range holds
// addr, and the offset of addr within it.
func (t *Table) OwningBuffer(addr uint64) (captured, offset uint64, ok bool) {
	e, ok := t.Lookup(Buffer, addr)
	if !ok {
		return 0, 0, false
	}
	return e.Captured, addr - e.CapturedBase, true
}

// RecordCompactedSize records the compacted size of a captured acceleration
// structure as reported during capture and on replay.
func (t *Table) RecordCompactedSize(capturedAS, capturedSize, liveSize uint64) {
	t.compacted[capturedAS] = compacted{captured: capturedSize, live: liveSize}
}

// LiveCompactedSize returns the live compacted size that corresponds to a
// captured compacted size. When several structures share the captured size
// the largest live size is returned.
func (t *Table) LiveCompactedSize(capturedSize uint64) (uint64, bool) {
	best, found := uint64(0), false
	for _, c := range t.compacted {
		if c.captured == capturedSize && (!found || c.live > best) {
			best, found = c.live, true
		}
	}
	return best, found
}
