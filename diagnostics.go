// Copyright 2026 The Routecraft Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package router

// DiagnosticEvent represents a table diagnostic or anomaly observed at
// registration time. The router itself never prints; events are handed
// to the configured handler for reporting by the surrounding boot
// process.
//
// Diagnostic events are optional - the router functions correctly
// whether they are collected or not.
type DiagnosticEvent struct {
	Kind    DiagnosticKind
	Message string
	Fields  map[string]any // Structured context
}

// DiagnosticKind categorizes diagnostic events.
type DiagnosticKind string

const (
	// DiagRouteRegistered is emitted for every successfully mounted
	// route.
	DiagRouteRegistered DiagnosticKind = "route_registered"

	// DiagRouteCollision is emitted when two equal-rank routes could
	// match the same request. In strict mode the same condition also
	// fails the mount.
	DiagRouteCollision DiagnosticKind = "route_collision"
)

// DiagnosticHandler receives diagnostic events from the table.
// Implementations may log, emit metrics, trace events, or ignore them.
//
// Example with logging:
//
//	import "log/slog"
//
//	handler := router.DiagnosticHandlerFunc(func(e router.DiagnosticEvent) {
//	    slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	t := router.New(router.WithDiagnostics(handler))
//
// Example with OpenTelemetry:
//
//	handler := router.DiagnosticHandlerFunc(func(e router.DiagnosticEvent) {
//	    span := trace.SpanFromContext(ctx)
//	    if span.IsRecording() {
//	        span.AddEvent(e.Message)
//	    }
//	})
type DiagnosticHandler interface {
	OnDiagnostic(DiagnosticEvent)
}

// DiagnosticHandlerFunc is a function adapter for DiagnosticHandler.
type DiagnosticHandlerFunc func(DiagnosticEvent)

func (f DiagnosticHandlerFunc) OnDiagnostic(e DiagnosticEvent) {
	f(e)
}
