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
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/ARM-software/vktrace-arm-sub000/core/app"
	"github.com/ARM-software/vktrace-arm-sub000/core/log"
	"github.com/ARM-software/vktrace-arm-sub000/core/vulkan/loader"
	"github.com/ARM-software/vktrace-arm-sub000/replay/compat"
	"github.com/ARM-software/vktrace-arm-sub000/replay/config"
	"github.com/ARM-software/vktrace-arm-sub000/replay/driver/nulldriver"
	"github.com/ARM-software/vktrace-arm-sub000/replay/trace"
	"github.com/ARM-software/vktrace-arm-sub000/replay/vulkan"
)

type replayVerb struct{ ReplayFlags }

func init() {
	verb := &replayVerb{ReplayFlags{Settings: config.Default()}}
	app.AddVerb(&app.Verb{
		Name:       "replay",
		ShortHelp:  "Replays a trace through the compatibility layer",
		ShortUsage: "<trace>",
		Auto:       verb,
	})
}

func (verb *replayVerb) Run(ctx context.Context, flags flag.FlagSet) error {
	if flags.NArg() != 1 {
		app.Usage(ctx, "Exactly one trace file expected, got %d", flags.NArg())
		return nil
	}
	r, err := replayFile(ctx, flags.Arg(0), verb.ReplayFlags)
	if r != nil {
		printStats(r.Stats())
	}
	if err != nil {
		return err
	}
	return r.ExportMappings(r.Context(ctx))
}

// replayFile runs the trace at path through a null driver exposing the
// devices selected by f. The replayer is returned whenever it was created,
// even if the replay failed part way.
func replayFile(ctx context.Context, path string, f ReplayFlags) (*vulkan.Replayer, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, log.Errf(ctx, err, "Could not open trace %s", path)
	}
	defer in.Close()

	t, err := trace.NewReader(in)
	if err != nil {
		return nil, err
	}
	cfg := nulldriver.DefaultConfig()
	switch f.Devices {
	case CaptureDevices:
		cfg.Devices = nil
		for _, d := range t.Header().Devices {
			cfg.Devices = append(cfg.Devices, fromCapture(d))
		}
		if len(cfg.Devices) == 0 {
			return nil, errors.Errorf("%s records no physical devices", path)
		}
	case LiveDevices:
		devices, err := liveDevices(ctx)
		if err != nil {
			return nil, err
		}
		cfg.Devices = nil
		for _, d := range devices {
			cfg.Devices = append(cfg.Devices, fromInfo(d))
		}
	}

	r := vulkan.New(nulldriver.New(cfg), f.Settings)
	log.I(ctx, "Replaying %s (%s) as session %v", path, t.Header().Application, r.Session())
	return r, r.Run(ctx, t)
}

func liveDevices(ctx context.Context) ([]*compat.PhysicalDeviceInfo, error) {
	instance, err := loader.Open(ctx, app.Name)
	if err != nil {
		return nil, err
	}
	defer instance.Close()
	return instance.PhysicalDevices(ctx)
}

func fromCapture(d trace.Device) nulldriver.PhysicalDevice {
	out := nulldriver.PhysicalDevice{
		Properties:    d.Properties,
		QueueFamilies: d.QueueFamilies,
		FeatureChain:  d.FeatureChain.Clone(),
		Extensions:    d.Extensions,
	}
	if d.Memory != nil {
		out.Memory = *d.Memory
	}
	if d.Features != nil {
		out.Features = *d.Features
	}
	return out
}

func fromInfo(d *compat.PhysicalDeviceInfo) nulldriver.PhysicalDevice {
	out := nulldriver.PhysicalDevice{
		QueueFamilies: d.QueueFamilies,
		FeatureChain:  d.FeatureChain,
		Extensions:    d.Extensions,
	}
	if d.Properties != nil {
		out.Properties = *d.Properties
	}
	if d.Memory != nil {
		out.Memory = *d.Memory
	}
	if d.Features != nil {
		out.Features = *d.Features
	}
	return out
}

func printStats(s vulkan.Stats) {
	fmt.Fprintf(os.Stdout, "calls:             %d\n", s.Calls)
	fmt.Fprintf(os.Stdout, "skipped:           %d\n", s.Skipped)
	fmt.Fprintf(os.Stdout, "result mismatches: %d\n", s.Mismatches)
	fmt.Fprintf(os.Stdout, "validation errors: %d\n", s.ValidationErrors)
}
