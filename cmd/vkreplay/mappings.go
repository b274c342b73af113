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

package main

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/ARM-software/vktrace-arm-sub000/core/app"
	"github.com/ARM-software/vktrace-arm-sub000/core/log"
	"github.com/ARM-software/vktrace-arm-sub000/replay/config"
)

type mappingsVerb struct{ MappingsFlags }

func init() {
	verb := &mappingsVerb{MappingsFlags{ReplayFlags: ReplayFlags{Settings: config.Default()}}}
	app.AddVerb(&app.Verb{
		Name:       "mappings",
		ShortHelp:  "Replays a trace and prints the captured to live handle mapping",
		ShortUsage: "<trace>",
		Auto:       verb,
	})
}

func (verb *mappingsVerb) Run(ctx context.Context, flags flag.FlagSet) error {
	if flags.NArg() != 1 {
		app.Usage(ctx, "Exactly one trace file expected, got %d", flags.NArg())
		return nil
	}
	r, err := replayFile(ctx, flags.Arg(0), verb.ReplayFlags)
	if r == nil {
		return err
	}
	if err != nil {
		log.W(ctx, "Replay stopped early, mappings are partial: %v", err)
	}

	var out io.Writer = os.Stdout
	if verb.Out != "" {
		f, err := os.Create(verb.Out)
		if err != nil {
			return log.Errf(ctx, err, "Could not create mapping file %s", verb.Out)
		}
		defer f.Close()
		out = f
	}
	return r.Handles().WriteMappings(out)
}
