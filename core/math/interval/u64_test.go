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

package interval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ARM-software/vktrace-arm-sub000/core/math/interval"
)

func TestIndexOf(t *testing.T) {
	l := interval.U64SpanList{
		{Start: 0x1000, End: 0x1100},
		{Start: 0x2000, End: 0x2010},
		{Start: 0x2008, End: 0x2009},
	}
	for _, test := range []struct {
		name  string
		value uint64
		index int
	}{
		{"before all", 0x10, -1},
		{"first base", 0x1000, 0},
		{"inside first", 0x10ff, 0},
		{"end is exclusive", 0x1100, -1},
		{"gap", 0x1800, -1},
		{"closest base wins", 0x2008, 2},
		{"closest base bounded by size", 0x200a, -1},
	} {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.index, interval.IndexOf(l, test.value))
		})
	}
}

func TestInsertionPoint(t *testing.T) {
	l := interval.U64SpanList{{Start: 10, End: 20}, {Start: 30, End: 40}}
	i, exists := interval.InsertionPoint(l, 5)
	assert.Equal(t, 0, i)
	assert.False(t, exists)
	i, exists = interval.InsertionPoint(l, 30)
	assert.Equal(t, 1, i)
	assert.True(t, exists)
	i, exists = interval.InsertionPoint(l, 50)
	assert.Equal(t, 2, i)
	assert.False(t, exists)
}

func TestSpan(t *testing.T) {
	s := interval.U64Span{Start: 4, End: 8}
	assert.True(t, s.Contains(4))
	assert.False(t, s.Contains(8))
	assert.True(t, s.Overlaps(interval.U64Span{Start: 7, End: 9}))
	assert.False(t, s.Overlaps(interval.U64Span{Start: 8, End: 9}))
}
