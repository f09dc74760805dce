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
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"routecraft.dev/router/media"
)

func TestMountOrdersByRank(t *testing.T) {
	t.Parallel()

	// Registered most-general first; the bucket must still come out in
	// ascending rank order.
	catchAll := MustRoute(Get, "/<path..>", nil)    // -1
	dynamic := MustRoute(Get, "/users/<id>", nil)   // -1
	filtered := MustRoute(Get, "/users?role=a", nil) // -6
	static := MustRoute(Get, "/users", nil)         // -4

	tab := New()
	_, err := tab.Add(catchAll, dynamic, filtered, static)
	require.NoError(t, err)

	bucket := tab.buckets[Get]
	require.Len(t, bucket, 4)
	assert.Equal(t, "/users?role=a", bucket[0].URI())
	assert.Equal(t, "/users", bucket[1].URI())
	// Equal ranks keep insertion order.
	assert.Equal(t, "/<path..>", bucket[2].URI())
	assert.Equal(t, "/users/<id>", bucket[3].URI())
}

func TestMountRebases(t *testing.T) {
	t.Parallel()

	tab := New()
	_, err := tab.Mount("/api/v1", MustRoute(Get, "/users/<id>", nil))
	require.NoError(t, err)

	routes := tab.Routes()
	require.Len(t, routes, 1)
	assert.Equal(t, "/api/v1/users/<id>", routes[0].URI())
	assert.Equal(t, "/api/v1", routes[0].Base())
}

func TestMountInvalidPrefix(t *testing.T) {
	t.Parallel()

	tab := New()
	_, err := tab.Mount("api", MustRoute(Get, "/users", nil))
	assert.ErrorIs(t, err, ErrInvalidMountPoint)
	assert.Zero(t, tab.Len())
}

func TestMountCollisionWarnings(t *testing.T) {
	t.Parallel()

	var events []DiagnosticEvent
	tab := New(WithDiagnostics(DiagnosticHandlerFunc(func(e DiagnosticEvent) {
		events = append(events, e)
	})))

	warnings, err := tab.Add(
		MustRoute(Get, "/x/<a>", nil),
		MustRoute(Get, "/x/<b>", nil),
	)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Same(t, tab.Routes()[0], warnings[0].A)
	assert.Same(t, tab.Routes()[1], warnings[0].B)

	// Both routes are registered despite the warning.
	assert.Equal(t, 2, tab.Len())

	var kinds []DiagnosticKind
	for _, e := range events {
		kinds = append(kinds, e.Kind)
	}
	assert.Equal(t, []DiagnosticKind{
		DiagRouteRegistered,
		DiagRouteCollision,
		DiagRouteRegistered,
	}, kinds)
}

func TestMountStrictCollisions(t *testing.T) {
	t.Parallel()

	tab := New(WithStrictCollisions())
	warnings, err := tab.Add(
		MustRoute(Get, "/x/<a>", nil),
		MustRoute(Get, "/x/<b>", nil),
	)
	assert.ErrorIs(t, err, ErrRouteCollision)
	assert.Len(t, warnings, 1)
	assert.Equal(t, 1, tab.Len(), "colliding route must not be inserted")
}

func TestFreeze(t *testing.T) {
	t.Parallel()

	tab := New()
	_, err := tab.Add(MustRoute(Get, "/a", nil))
	require.NoError(t, err)

	assert.False(t, tab.Frozen())
	tab.Freeze()
	assert.True(t, tab.Frozen())

	_, err = tab.Add(MustRoute(Get, "/b", nil))
	assert.ErrorIs(t, err, ErrTableFrozen)
	assert.Equal(t, 1, tab.Len())
}

func TestWithPayloadMethods(t *testing.T) {
	t.Parallel()

	a := MustRoute(Post, "/a", nil, WithFormat(media.JSON))
	b := MustRoute(Post, "/a", nil, WithFormat(media.HTML))

	// By default POST is a payload method, so disjoint Content-Type
	// filters keep the routes apart.
	tab := New()
	warnings, err := tab.Add(a, b)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	// With POST removed from the payload set, formats filter on Accept
	// and never disambiguate.
	tab = New(WithPayloadMethods())
	warnings, err = tab.Add(a, b)
	require.NoError(t, err)
	assert.Len(t, warnings, 1)
}

func TestWithPrometheusRegistry(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	tab := New(WithPrometheusRegistry(reg))
	_, err := tab.Add(MustRoute(Get, "/a", nil))
	require.NoError(t, err)

	_, ok := tab.Dispatch(context.Background(), &Request{Method: Get, Path: "/a"})
	require.True(t, ok)
	_, ok = tab.Dispatch(context.Background(), &Request{Method: Get, Path: "/missing"})
	require.False(t, ok)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["router_dispatches_total"], "expected dispatch counter, got %v", names)
	assert.True(t, names["router_unmatched_total"], "expected unmatched counter, got %v", names)
}
