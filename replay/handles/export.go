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

package handles

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/pkg/errors"

	"github.com/ARM-software/vktrace-arm-sub000/replay/api"
)

// MappingItem is a single captured to live handle mapping.
type MappingItem struct {
	Type     api.HandleType
	Captured uint64
	Live     uint64
}

func (m MappingItem) String() string {
	return fmt.Sprintf("%v(0x%x): 0x%x", m.Type, m.Captured, m.Live)
}

// Mappings returns every current mapping, ordered by category then captured
// value.
func (r *Registry) Mappings() []MappingItem {
	out := []MappingItem{}
	for ty, t := range r.tables {
		for captured, live := range t.fwd {
			out = append(out, MappingItem{ty, captured, live})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Captured < out[j].Captured
	})
	return out
}

// WriteMappings writes one line per mapping to w.
func (r *Registry) WriteMappings(w io.Writer) error {
	b := bufio.NewWriter(w)
	for _, m := range r.Mappings() {
		if _, err := fmt.Fprintln(b, m); err != nil {
			return errors.Wrap(err, "writing handle mappings")
		}
	}
	return errors.Wrap(b.Flush(), "writing handle mappings")
}
