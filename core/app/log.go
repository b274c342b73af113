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
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ARM-software/vktrace-arm-sub000/core/log"
)

// LogFlags controls where and how the application logs.
type LogFlags struct {
	Level log.Severity `help:"the severity to enable logs at"`
	Style log.Style    `help:"the style of log output"`
	File  string       `help:"also write the log to this file"`
}

var (
	logMu    sync.Mutex
	logClose []func()
)

func logDefaults() LogFlags {
	return LogFlags{
		Level: log.Info,
		Style: log.Normal,
	}
}

// wrapHandler turns a fatal message into a FatalExit once it has been
// written.
func wrapHandler(to log.Handler) log.Handler {
	return log.NewHandler(func(m *log.Message) {
		to.Handle(m)
		if m.StopProcess {
			closeLog()
			panic(FatalExit)
		}
	}, to.Close)
}

func prepareContext(flags *LogFlags) context.Context {
	ctx := context.Background()
	ctx = log.PutTag(ctx, Name)
	ctx = log.PutFilter(ctx, log.SeverityFilter(flags.Level))
	ctx = log.PutHandler(ctx, wrapHandler(flags.Style.Handler(log.Std())))
	return ctx
}

// updateContext applies the parsed log flags to the root context.
func updateContext(ctx context.Context, flags *LogFlags) context.Context {
	ctx = log.PutFilter(ctx, log.SeverityFilter(flags.Level))
	handler := flags.Style.Handler(log.Std())
	if flags.File != "" {
		if file := createLogFile(ctx, flags); file != nil {
			toFile := flags.Style.Handler(func(s string, _ log.Severity) {
				file.WriteString(s)
				file.WriteString("\n")
			})
			handler = log.Broadcast(handler, toFile)
			onCloseLog(func() { file.Close() })
		}
	}
	onCloseLog(handler.Close)
	return log.PutHandler(ctx, wrapHandler(handler))
}

func onCloseLog(f func()) {
	logMu.Lock()
	defer logMu.Unlock()
	logClose = append(logClose, f)
}

func closeLog() {
	logMu.Lock()
	fs := logClose
	logClose = nil
	logMu.Unlock()
	for _, f := range fs {
		f()
	}
}

func createLogFile(ctx context.Context, flags *LogFlags) *os.File {
	path, err := filepath.Abs(flags.File)
	if err != nil {
		log.E(ctx, "Bad log file path %v: %v", flags.File, err)
		return nil
	}
	dir, base := filepath.Split(path)
	ext := filepath.Ext(base)
	name := base[:len(base)-len(ext)]
	if name == "" {
		name, ext = Name, ".log"
		path = filepath.Join(dir, name+ext)
	}

	os.MkdirAll(dir, 0755)
	for i := 0; i < 10; i++ {
		file, err := os.Create(path)
		if err == nil {
			log.I(ctx, "Logging to: %v", path)
			return file
		}

		// Try a different path next.
		path = filepath.Join(dir, fmt.Sprintf("%s-%d%s", name, i, ext))
	}

	log.E(ctx, "Failed to create log file "+flags.File)
	return nil
}
