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

// Package router implements rank-based request routing: pattern
// compilation, build-time collision detection, and deterministic
// dispatch with handler forwarding.
//
// Routes are declared with patterns mixing static text and dynamic
// parameters:
//
//	r := router.MustRoute(router.GET, "/users/<id>", handler)
//	r = router.MustRoute(router.GET, "/files/<path..>", handler)
//	r = router.MustRoute(router.GET, "/search?sort=asc&<q>", handler)
//
// A <name> parameter matches exactly one path segment or binds one
// query value; a trailing <name..> matches any remainder, including an
// empty one. Patterns are validated at construction and every defect is
// reported with a byte-accurate span into the original text.
//
// # Ranking
//
// Every route carries a rank, lower dispatching first. The default rank
// is derived from the pattern's shape so that more specific routes win:
// fully static paths with static query filters rank ahead of wildcard
// paths with no query. Declaration order never affects precedence
// between routes of different shapes; WithRank overrides the default
// when an application needs explicit control.
//
// # Collisions
//
// Mounting a route checks it against every registered route of the same
// method and rank. Two routes collide when some request could match
// both, which makes dispatch order-dependent. Collisions are reported
// through the diagnostics handler as warnings, or rejected outright
// with WithStrictCollisions:
//
//	t := router.New(router.WithStrictCollisions())
//	_, err := t.Mount("/api", routes...)
//
// # Dispatch
//
// Dispatch tries the request method's candidates in ascending rank
// order and probes the first structural match through its handler's
// Decide. A handler may Accept, ending the search, or Forward, passing
// the request to the next-ranked candidate:
//
//	h := router.HandlerFunc(func(ctx context.Context, m *router.Match) router.Outcome {
//	    if m.Param("id") == "" {
//	        return router.Forward
//	    }
//	    return router.Accept
//	})
//
// A failed dispatch is an ordinary "not found" result, never an error.
//
// # Observability
//
// The table records dispatch counters through the OpenTelemetry metric
// API (WithMeterProvider, or WithPrometheusRegistry for a wired
// Prometheus exporter) and annotates active trace spans with match
// events. Registration-time findings are delivered to a pluggable
// DiagnosticHandler.
package router
