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

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "routecraft.dev/router"

// tableMetrics holds the dispatch instruments. A nil *tableMetrics is
// valid and records nothing, so call sites never branch on whether
// metrics are enabled.
type tableMetrics struct {
	dispatches metric.Int64Counter
	forwards   metric.Int64Counter
	unmatches  metric.Int64Counter
	collisions metric.Int64Counter
}

func newTableMetrics(provider metric.MeterProvider) (*tableMetrics, error) {
	meter := provider.Meter(meterName)

	dispatches, err := meter.Int64Counter("router.dispatches",
		metric.WithDescription("Requests resolved to a route"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}
	forwards, err := meter.Int64Counter("router.forwards",
		metric.WithDescription("Handler probes that declined and forwarded"),
		metric.WithUnit("{probe}"),
	)
	if err != nil {
		return nil, err
	}
	unmatches, err := meter.Int64Counter("router.unmatched",
		metric.WithDescription("Requests no route handled"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}
	collisions, err := meter.Int64Counter("router.collisions",
		metric.WithDescription("Route collisions detected at mount time"),
		metric.WithUnit("{collision}"),
	)
	if err != nil {
		return nil, err
	}

	return &tableMetrics{
		dispatches: dispatches,
		forwards:   forwards,
		unmatches:  unmatches,
		collisions: collisions,
	}, nil
}

func (m *tableMetrics) dispatched(ctx context.Context, r *Route, forwards int) {
	if m == nil {
		return
	}
	m.dispatches.Add(ctx, 1, metric.WithAttributes(
		attribute.String("http.route", r.uri),
		attribute.String("http.request.method", string(r.method)),
		attribute.Int("router.forwards", forwards),
	))
}

func (m *tableMetrics) forwarded(ctx context.Context, r *Route) {
	if m == nil {
		return
	}
	m.forwards.Add(ctx, 1, metric.WithAttributes(
		attribute.String("http.route", r.uri),
		attribute.String("http.request.method", string(r.method)),
	))
}

func (m *tableMetrics) unmatched(ctx context.Context, method Method) {
	if m == nil {
		return
	}
	m.unmatches.Add(ctx, 1, metric.WithAttributes(
		attribute.String("http.request.method", string(method)),
	))
}

func (m *tableMetrics) collision(ctx context.Context) {
	if m == nil {
		return
	}
	m.collisions.Add(ctx, 1)
}
