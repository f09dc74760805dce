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

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// Table owns all registered routes, partitioned by method, with each
// bucket kept in ascending rank order (ties broken by insertion order).
//
// A table is assembled single-threaded during application startup:
// Mount routes, then Freeze. Once frozen the table is immutable and may
// be shared, without locking, across any number of concurrent Dispatch
// calls.
type Table struct {
	mu      sync.Mutex
	buckets map[Method][]*Route
	routes  []*Route
	frozen  atomic.Bool

	strict         bool
	payloadMethods map[Method]bool
	diagnostics    DiagnosticHandler
	metrics        *tableMetrics
}

// New creates an empty routing table. New cannot fail: the table is a
// plain data structure, and options that require validation panic at
// application time on invalid input.
func New(opts ...Option) *Table {
	t := &Table{
		buckets: make(map[Method][]*Route),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Mount rebases each route under prefix and inserts it into the table,
// running collision detection against the routes already present.
//
// Collisions are returned as warnings and reported to the diagnostics
// handler; in strict mode (WithStrictCollisions) the first colliding
// route aborts the mount with ErrRouteCollision, leaving the routes
// mounted so far in place. Mounting after Freeze fails with
// ErrTableFrozen.
func (t *Table) Mount(prefix string, routes ...*Route) ([]Collision, error) {
	if t.frozen.Load() {
		return nil, ErrTableFrozen
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	var warnings []Collision
	for _, r := range routes {
		mounted, err := r.Rebase(prefix)
		if err != nil {
			return warnings, fmt.Errorf("mount %q: %w", prefix, err)
		}

		collisions := t.collisionsWith(mounted)
		for _, c := range collisions {
			t.diagnose(DiagnosticEvent{
				Kind:    DiagRouteCollision,
				Message: "routes can match the same request at the same rank",
				Fields: map[string]any{
					"route": c.A.String(),
					"other": c.B.String(),
				},
			})
			t.metrics.collision(context.Background())
		}
		warnings = append(warnings, collisions...)
		if t.strict && len(collisions) > 0 {
			return warnings, fmt.Errorf("%w: %s", ErrRouteCollision, collisions[0])
		}

		t.insert(mounted)
		t.diagnose(DiagnosticEvent{
			Kind:    DiagRouteRegistered,
			Message: "route registered",
			Fields: map[string]any{
				"route": mounted.String(),
				"rank":  mounted.Rank(),
			},
		})
	}
	return warnings, nil
}

// Add inserts routes at the root mount point "/".
func (t *Table) Add(routes ...*Route) ([]Collision, error) {
	return t.Mount("/", routes...)
}

// collisionsWith checks a candidate against every registered route in
// the same method bucket. Only equal-rank pairs can collide.
func (t *Table) collisionsWith(r *Route) []Collision {
	var out []Collision
	for _, existing := range t.buckets[r.method] {
		if collides(existing, r, t.isPayload) {
			out = append(out, Collision{A: existing, B: r})
		}
	}
	return out
}

// insert places the route in its method bucket, keeping the bucket in
// ascending rank order with stable insertion-order ties.
func (t *Table) insert(r *Route) {
	bucket := t.buckets[r.method]
	i := len(bucket)
	for i > 0 && bucket[i-1].rank > r.rank {
		i--
	}
	bucket = append(bucket, nil)
	copy(bucket[i+1:], bucket[i:])
	bucket[i] = r
	t.buckets[r.method] = bucket
	t.routes = append(t.routes, r)
}

// Freeze marks the table immutable. Further Mount calls fail with
// ErrTableFrozen. Dispatch does not require freezing, but a served
// table should be frozen so that accidental late registrations surface
// as errors instead of races.
func (t *Table) Freeze() {
	t.frozen.Store(true)
}

// Frozen reports whether Freeze has been called.
func (t *Table) Frozen() bool {
	return t.frozen.Load()
}

// Routes returns every registered route in registration order.
func (t *Table) Routes() []*Route {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Len returns the number of registered routes.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.routes)
}

// isPayload applies the configured payload-method set, defaulting to
// Method.SupportsPayload.
func (t *Table) isPayload(m Method) bool {
	if t.payloadMethods == nil {
		return m.SupportsPayload()
	}
	return t.payloadMethods[m]
}

func (t *Table) diagnose(e DiagnosticEvent) {
	if t.diagnostics != nil {
		t.diagnostics.OnDiagnostic(e)
	}
}
