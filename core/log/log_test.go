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

package log_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ARM-software/vktrace-arm-sub000/core/log"
)

var testClock log.Clock

func init() {
	t, err := time.Parse("Mon Jan _2 15:04:05.999 2006", "Mon Jan 22 12:34:56.789 2000")
	if err != nil {
		panic(err)
	}
	testClock = log.FixedClock(t)
}

type testMessage struct {
	msg      string
	args     []interface{}
	values   log.V
	severity log.Severity
	tag      string

	raw      string
	brief    string
	normal   string
	detailed string
}

func (m testMessage) send(h log.Handler) {
	ctx := context.Background()
	ctx = log.PutHandler(ctx, h)
	ctx = log.PutTag(ctx, m.tag)
	ctx = log.PutClock(ctx, testClock)
	ctx = m.values.Bind(ctx)
	log.From(ctx).Logf(m.severity, false, m.msg, m.args...)
}

var testMessages = []testMessage{
	{
		msg:      "plain warning",
		severity: log.Warning,

		raw:      "plain warning",
		brief:    "W: plain warning",
		normal:   "12:34:56.789 W: plain warning",
		detailed: "12:34:56.789 Warning: plain warning",
	}, {
		msg:      "info with values",
		severity: log.Info,
		values:   log.V{"cat": "meow", "dog": "woof"},

		raw:      "info with values",
		brief:    "I: info with values",
		normal:   "12:34:56.789 I: info with values",
		detailed: "12:34:56.789 Info: info with values \n  cat: meow\n  dog: woof",
	}, {
		msg:      "tagged error %d",
		args:     []interface{}{42},
		severity: log.Error,
		tag:      "vkCreateBuffer",

		raw:      "tagged error 42",
		brief:    "E: tagged error 42",
		normal:   "12:34:56.789 E: [vkCreateBuffer] tagged error 42",
		detailed: "12:34:56.789 Error: [vkCreateBuffer] tagged error 42",
	},
}

func TestStyles(t *testing.T) {
	for _, style := range []struct {
		style log.Style
		get   func(testMessage) string
	}{
		{log.Raw, func(m testMessage) string { return m.raw }},
		{log.Brief, func(m testMessage) string { return m.brief }},
		{log.Normal, func(m testMessage) string { return m.normal }},
		{log.Detailed, func(m testMessage) string { return m.detailed }},
	} {
		for _, m := range testMessages {
			w, buf := log.Buffer()
			m.send(style.style.Handler(w))
			assert.Equal(t, style.get(m), buf.String(), "style %v, message %q", style.style, m.msg)
		}
	}
}

func TestFilter(t *testing.T) {
	ctx, rec := log.Recording(context.Background())
	ctx = log.PutFilter(ctx, log.SeverityFilter(log.Warning))
	log.D(ctx, "hidden")
	log.I(ctx, "hidden")
	log.W(ctx, "shown")
	log.E(ctx, "shown")
	assert.Len(t, rec.Messages, 2)
	assert.Equal(t, 1, rec.Count(log.Warning))
	assert.Equal(t, 1, rec.Count(log.Error))
}

func TestTraceAndShadowedValues(t *testing.T) {
	ctx, rec := log.Recording(context.Background())
	ctx = log.V{"call": "outer", "session": "s"}.Bind(ctx)
	ctx = log.V{"call": "inner"}.Bind(ctx)
	ctx = log.Enter(log.Enter(ctx, "replay"), "vkQueueSubmit")
	log.I(ctx, "submit")

	m := rec.Messages[0]
	assert.Equal(t, []string{"vkQueueSubmit", "replay"}, m.Trace)
	assert.Equal(t, "inner", m.Values.Get("call"))
	assert.Equal(t, "s", m.Values.Get("session"))
	assert.Len(t, m.Values, 2)
}

func TestErrWrapsCause(t *testing.T) {
	ctx := log.Testing(t)
	cause := assert.AnError
	err := log.Errf(ctx, cause, "creating %v", "device")
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "creating device")
}
