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

// The vkreplay command replays Vulkan traces on devices other than the one
// they were captured on.
package main

import (
	"github.com/ARM-software/vktrace-arm-sub000/core/app"
)

func main() {
	app.ShortHelp = "vkreplay replays Vulkan traces across devices and drivers."
	app.Version = app.VersionSpec{Major: 1, Minor: 0, Point: -1}
	app.Run(app.VerbMain)
}
