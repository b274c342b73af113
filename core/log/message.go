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

package log

import "time"

// Message is a single log record.
type Message struct {
	Text        string    // The message text.
	Time        time.Time // The time the message was logged.
	Severity    Severity  // The severity of the message.
	StopProcess bool      // True if the message indicates the process should stop.
	Tag         string    // The tag of the context that logged the message.
	Trace       []string  // The trace stack, innermost first.
	Values      Values    // The values bound to the context, sorted by name.
}

// Value is a named value bound to a message.
type Value struct {
	Name  string
	Value interface{}
}

// Values is a sortable list of values.
type Values []*Value

func (v Values) Len() int           { return len(v) }
func (v Values) Less(i, j int) bool { return v[i].Name < v[j].Name }
func (v Values) Swap(i, j int)      { v[i], v[j] = v[j], v[i] }

// Get returns the value with the given name, or nil if there is none.
func (v Values) Get(name string) interface{} {
	for _, e := range v {
		if e.Name == name {
			return e.Value
		}
	}
	return nil
}
