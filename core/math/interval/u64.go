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

// Package interval provides sorted span lists over uint64 values.
package interval

import "sort"

// U64Span is a half-open interval [Start, End).
type U64Span struct {
	Start uint64 // the value at which the interval begins
	End   uint64 // the next value not included in the interval.
}

// Contains returns true if v lies within the span.
func (s U64Span) Contains(v uint64) bool { return s.Start <= v && v < s.End }

// Overlaps returns true if s and o share at least one value.
func (s U64Span) Overlaps(o U64Span) bool { return s.Start < o.End && o.Start < s.End }

// List is the interface to a list of spans sorted by Start.
type List interface {
	// Length returns the number of spans in the list.
	Length() int
	// GetSpan returns the span at index.
	GetSpan(index int) U64Span
}

// U64SpanList implements List for a plain slice of spans.
type U64SpanList []U64Span

func (l U64SpanList) Length() int               { return len(l) }
func (l U64SpanList) GetSpan(index int) U64Span { return l[index] }

// Search returns the smallest index i in [0, l.Length()) at which t is true,
// assuming t is false for some prefix of the list and true for the rest.
func Search(l List, t func(U64Span) bool) int {
	return sort.Search(l.Length(), func(at int) bool { return t(l.GetSpan(at)) })
}

// Preceding returns the index of the last span whose Start is not greater than
// value, or -1 if every span starts after value.
func Preceding(l List, value uint64) int {
	return Search(l, func(s U64Span) bool { return value < s.Start }) - 1
}

// IndexOf returns the index of the span that starts closest to, but not after,
// value and that also contains value. If the closest preceding span ends at or
// before value, IndexOf returns -1 even if an earlier, longer span would
// contain value.
func IndexOf(l List, value uint64) int {
	index := Preceding(l, value)
	if index >= 0 && value < l.GetSpan(index).End {
		return index
	}
	return -1
}

// InsertionPoint returns the index at which a span starting at start should
// be inserted to keep the list sorted, and whether a span already starts at
// exactly start (in which case the index is that span's).
func InsertionPoint(l List, start uint64) (int, bool) {
	i := Search(l, func(s U64Span) bool { return start <= s.Start })
	return i, i < l.Length() && l.GetSpan(i).Start == start
}
