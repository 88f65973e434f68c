/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns a panic at the top of the CLI into a logged error, a
// report file and a non-zero exit.
package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	applog "snapguide/internal/log"
	"snapguide/internal/version"
)

// EnvDir overrides the directory crash reports are written to.
const EnvDir = "SNAP_CRASH_DIR"

// exitFn is used to allow testing of Recover without terminating the test process.
var exitFn = os.Exit

// Recover captures a panic and hands it to Handle. It must be deferred
// directly: defer crash.Recover(path).
func Recover(scenario string) {
	Handle(recover(), scenario)
}

// Handle logs a recovered panic value with stacktrace, writes an error report
// naming the scenario being resolved (if any) and exits with 2. A nil value
// is ignored. Use it when the scenario is only known once the panic happens:
//
//	defer func() { crash.Handle(recover(), a.scenario) }()
func Handle(r any, scenario string) {
	if r == nil {
		return
	}
	l := applog.WithComponent("crash")
	stack := debug.Stack()
	l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

	reportPath, err := writeReport(reportDir(), scenario, r, stack)
	if err != nil {
		l.Error("crash report failed", slog.Any("err", err), slog.String("path", reportPath))
	}

	if _, err := fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath); err != nil {
		l.Error("failed to write crash message to stderr", slog.Any("err", err))
	}
	if _, err := fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH); err != nil {
		l.Error("failed to write version info to stderr", slog.Any("err", err))
	}
	exitFn(2)
}

func reportDir() string {
	if d := os.Getenv(EnvDir); d != "" {
		return d
	}
	return os.TempDir()
}

func writeReport(dir, scenario string, panicVal any, stack []byte) (string, error) {
	stamp := time.Now().Format("20060102-150405")
	path := filepath.Join(dir, fmt.Sprintf("snapguide-crash-%s.log", stamp))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return path, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return path, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			applog.WithComponent("crash").Error("failed to close crash report file", slog.Any("err", err), slog.String("path", path))
		}
	}()

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "snapguide Crash Report\n")
	_, _ = fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	_, _ = fmt.Fprintf(&buf, "Version: %s\n", version.String())
	_, _ = fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if scenario != "" {
		_, _ = fmt.Fprintf(&buf, "Scenario: %s\n", scenario)
	}
	_, _ = fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	_, _ = fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))

	if _, err := f.Write(buf.Bytes()); err != nil {
		return path, err
	}
	return path, f.Sync()
}
