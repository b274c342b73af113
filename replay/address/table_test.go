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

package address_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ARM-software/vktrace-arm-sub000/replay/address"
)

const (
	capturedBase = uint64(0x10000)
	liveBase     = uint64(0x7f000000)
)

func newTable() *address.Table {
	t := address.New()
	t.SetSize(address.Buffer, 1, 101, 256)
	t.Record(address.Buffer, 1, capturedBase, liveBase)
	return t
}

func TestTranslateMidObjectOffset(t *testing.T) {
	tbl := newTable()
	live, ok := tbl.Translate(address.Buffer, capturedBase+64)
	require.True(t, ok)
	assert.Equal(t, liveBase+64, live)

	base, delta, ok := tbl.Nearest(address.Buffer, capturedBase+64)
	require.True(t, ok)
	assert.Equal(t, liveBase, base)
	assert.Equal(t, uint64(64), delta)
}

func TestNearestIsBoundedBySize(t *testing.T) {
	tbl := newTable()
	for _, q := range []uint64{capturedBase, capturedBase + 1, capturedBase + 255} {
		live, ok := tbl.Translate(address.Buffer, q)
		require.True(t, ok, "0x%x", q)
		assert.Equal(t, liveBase+(q-capturedBase), live)
	}
	for _, q := range []uint64{capturedBase + 256, capturedBase + 0x1000, capturedBase - 1} {
		_, _, ok := tbl.Nearest(address.Buffer, q)
		assert.False(t, ok, "0x%x", q)
		live, ok := tbl.Translate(address.Buffer, q)
		assert.False(t, ok)
		assert.Equal(t, q, live, "misses are left untranslated")
	}
}

func TestBoundaryBelongsToNextAllocation(t *testing.T) {
	tbl := newTable()
	tbl.SetSize(address.Buffer, 2, 102, 128)
	tbl.Record(address.Buffer, 2, capturedBase+256, 0x5000)

	live, ok := tbl.Translate(address.Buffer, capturedBase+256)
	require.True(t, ok)
	assert.Equal(t, uint64(0x5000), live)

	owner, offset, ok := tbl.OwningBuffer(capturedBase + 300)
	require.True(t, ok)
	assert.Equal(t, uint64(2), owner)
	assert.Equal(t, uint64(44), offset)
}

func TestExactBeatsNearest(t *testing.T) {
	tbl := newTable()
	// An object with unknown size can only be found by its exact address.
	tbl.Record(address.Buffer, 3, capturedBase+16, 0x9000)
	live, ok := tbl.Exact(address.Buffer, capturedBase+16)
	require.True(t, ok)
	assert.Equal(t, uint64(0x9000), live)
	live, ok = tbl.Translate(address.Buffer, capturedBase+16)
	require.True(t, ok)
	assert.Equal(t, uint64(0x9000), live)

	// The closest preceding base is the sizeless object, so nearest fails.
	_, _, ok = tbl.Nearest(address.Buffer, capturedBase+17)
	assert.False(t, ok)
}

func TestRecordReplacesAndForgetRemoves(t *testing.T) {
	tbl := newTable()
	tbl.Record(address.Buffer, 1, capturedBase+0x1000, liveBase+0x1000)
	_, ok := tbl.Exact(address.Buffer, capturedBase)
	assert.False(t, ok)
	require.Len(t, tbl.Entries(address.Buffer), 1)

	tbl.Forget(address.Buffer, 1)
	assert.Empty(t, tbl.Entries(address.Buffer))
	_, ok = tbl.Exact(address.Buffer, capturedBase+0x1000)
	assert.False(t, ok)
}

func TestCategoriesAreSeparate(t *testing.T) {
	tbl := newTable()
	_, ok := tbl.Exact(address.AccelerationStructure, capturedBase)
	assert.False(t, ok)
	live, ok := tbl.Translate(address.AccelerationStructure, 0)
	assert.True(t, ok)
	assert.Zero(t, live)
}

func TestCompactedSizes(t *testing.T) {
	tbl := address.New()
	tbl.SetSize(address.AccelerationStructure, 9, 90, 4096)
	tbl.RecordCompactedSize(9, 1024, 1536)
	tbl.RecordCompactedSize(10, 1024, 1280)

	size, ok := tbl.LiveCompactedSize(1024)
	require.True(t, ok)
	assert.Equal(t, uint64(1536), size)

	tbl.Forget(address.AccelerationStructure, 9)
	size, ok = tbl.LiveCompactedSize(1024)
	require.True(t, ok)
	assert.Equal(t, uint64(1280), size)
	_, ok = tbl.LiveCompactedSize(2048)
	assert.False(t, ok)
}
