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

package app

import (
	"context"
	"sync"
	"time"
)

// ExitCode is the type for named return values from the application main entry point.
type ExitCode int

const (
	// SuccessExit is the exit code for succesful exit.
	SuccessExit ExitCode = iota
	// FatalExit is the exit code if something logs at a fatal severity (critical or higher by default)
	FatalExit
	// UsageExit is the exit code if the usage function was invoked
	UsageExit
)

var (
	// CleanupTimeout is the time to wait for all cleanup signals to fire when shutting down.
	CleanupTimeout = time.Second * 10

	pending sync.WaitGroup
)

// AddCleanup calls f when the context is cancelled.
// Application will wait (for a maximum of CleanupTimeout) for f to complete
// before terminiating the application.
func AddCleanup(ctx context.Context, f func()) {
	pending.Add(1)
	go func() {
		defer pending.Done()
		<-ctx.Done()
		f()
	}()
}

// WaitForCleanup waits for all the cleanup functions to return, or the cleanup
// timeout to expire, whichever comes first.
func WaitForCleanup(ctx context.Context) bool {
	done := make(chan struct{})
	go func() {
		pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(CleanupTimeout):
		return false
	}
}
