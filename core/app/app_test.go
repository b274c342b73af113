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

package app_test

import (
	"context"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ARM-software/vktrace-arm-sub000/core/app"
	"github.com/ARM-software/vktrace-arm-sub000/core/log"
)

type countVerb struct {
	Times int    `help:"number of times"`
	Label string `help:"what to count"`
	ran   []string
}

func (v *countVerb) Run(ctx context.Context, flags flag.FlagSet) error {
	for i := 0; i < v.Times; i++ {
		v.ran = append(v.ran, v.Label)
	}
	return nil
}

func TestVerbInvokeByPrefix(t *testing.T) {
	ctx := log.Testing(t)
	root := app.Verb{Name: "tool"}
	count := &countVerb{Times: 1}
	root.Add(&app.Verb{Name: "count", ShortHelp: "counts", Auto: count})
	root.Add(&app.Verb{Name: "devices", Run: func(context.Context, flag.FlagSet) error { return nil }})

	assert.Len(t, root.Filter("c"), 1)
	assert.Len(t, root.Filter(""), 2)

	require.NoError(t, root.Invoke(ctx, []string{"cou", "-times", "3", "-label", "x"}))
	assert.Equal(t, []string{"x", "x", "x"}, count.ran)
}

func TestVerbDuplicatePanics(t *testing.T) {
	root := app.Verb{Name: "tool"}
	root.Add(&app.Verb{Name: "replay", Run: func(context.Context, flag.FlagSet) error { return nil }})
	assert.Panics(t, func() {
		root.Add(&app.Verb{Name: "replay", Run: func(context.Context, flag.FlagSet) error { return nil }})
	})
}

func TestUnknownVerbExitsWithUsage(t *testing.T) {
	rec := &log.Recorder{}
	ctx := log.PutHandler(context.Background(), rec)
	root := app.Verb{Name: "tool"}
	root.Add(&app.Verb{Name: "replay", Run: func(context.Context, flag.FlagSet) error { return nil }})
	defer func() {
		assert.Equal(t, app.UsageExit, recover())
		assert.NotZero(t, rec.Count(log.Error))
	}()
	root.Invoke(ctx, []string{"bogus"})
	t.Fatal("Invoke returned for an unknown verb")
}

func TestCleanupRunsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := false
	app.AddCleanup(ctx, func() { done = true })
	cancel()
	require.True(t, app.WaitForCleanup(ctx))
	assert.True(t, done)
}
