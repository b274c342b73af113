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

	"github.com/ARM-software/vktrace-arm-sub000/core/app"
	"github.com/ARM-software/vktrace-arm-sub000/core/log"
)

type devicesVerb struct{ DevicesFlags }

func init() {
	verb := &devicesVerb{}
	app.AddVerb(&app.Verb{
		Name:      "devices",
		ShortHelp: "Lists the Vulkan physical devices of this machine",
		Auto:      verb,
	})
}

func (verb *devicesVerb) Run(ctx context.Context, flags flag.FlagSet) error {
	devices, err := liveDevices(ctx)
	if err != nil {
		return log.Err(ctx, err, "Failed to query the Vulkan loader")
	}
	for i, d := range devices {
		fp, _ := d.Fingerprint()
		fmt.Fprintf(os.Stdout, "%d: %v\n", i, fp)
		for j, q := range d.QueueFamilies {
			fmt.Fprintf(os.Stdout, "    queue family %d: %v x%d\n", j, q.QueueFlags, q.QueueCount)
		}
		if d.Memory != nil {
			for j, m := range d.Memory.Types {
				fmt.Fprintf(os.Stdout, "    memory type %d: %v heap %d\n", j, m.PropertyFlags, m.HeapIndex)
			}
		}
		if verb.Extensions {
			for _, e := range d.Extensions {
				fmt.Fprintf(os.Stdout, "    %s\n", e)
			}
		} else {
			fmt.Fprintf(os.Stdout, "    %d extensions\n", len(d.Extensions))
		}
	}
	return nil
}
