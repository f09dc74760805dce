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
	"github.com/prometheus/client_golang/prometheus"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Option configures a Table at construction time.
type Option func(*Table)

// WithStrictCollisions makes route collisions build-fatal: Mount
// returns ErrRouteCollision for the first ambiguous registration
// instead of downgrading it to a warning.
func WithStrictCollisions() Option {
	return func(t *Table) {
		t.strict = true
	}
}

// WithDiagnostics sets a diagnostic handler for the table. Registration
// events and collision warnings are delivered to it; without a handler
// they are silently dropped.
func WithDiagnostics(handler DiagnosticHandler) Option {
	return func(t *Table) {
		t.diagnostics = handler
	}
}

// WithPayloadMethods overrides the set of methods treated as carrying a
// request body. The set decides whether a route's declared format
// filters against the request's Content-Type or its Accept, both during
// matching and during collision detection.
//
// Default: POST, PUT, PATCH, DELETE.
func WithPayloadMethods(methods ...Method) Option {
	return func(t *Table) {
		set := make(map[Method]bool, len(methods))
		for _, m := range methods {
			set[m] = true
		}
		t.payloadMethods = set
	}
}

// WithMeterProvider enables dispatch metrics, recorded through the
// OpenTelemetry metric API against the given provider. Panics if the
// instruments cannot be created; metric configuration errors should
// surface at application startup.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(t *Table) {
		m, err := newTableMetrics(provider)
		if err != nil {
			panic("router: cannot create metric instruments: " + err.Error())
		}
		t.metrics = m
	}
}

// WithPrometheusRegistry enables dispatch metrics exported to the given
// Prometheus registry, wiring an OpenTelemetry Prometheus exporter
// behind a dedicated meter provider. Panics if the exporter cannot be
// constructed.
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	t := router.New(router.WithPrometheusRegistry(reg))
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
func WithPrometheusRegistry(reg *prometheus.Registry) Option {
	return func(t *Table) {
		exporter, err := otelprom.New(otelprom.WithRegisterer(reg))
		if err != nil {
			panic("router: cannot create prometheus exporter: " + err.Error())
		}
		provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
		WithMeterProvider(provider)(t)
	}
}
