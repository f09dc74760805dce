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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"routecraft.dev/router/media"
)

// accept and forward are handler stubs that also count probes.
func accept(n *int) Handler {
	return HandlerFunc(func(context.Context, *Match) Outcome {
		if n != nil {
			*n++
		}
		return Accept
	})
}

func forward(n *int) Handler {
	return HandlerFunc(func(context.Context, *Match) Outcome {
		if n != nil {
			*n++
		}
		return Forward
	})
}

func mustTable(t *testing.T, routes ...*Route) *Table {
	t.Helper()
	tab := New()
	_, err := tab.Add(routes...)
	require.NoError(t, err)
	return tab
}

func dispatch(t *testing.T, tab *Table, req *Request) *Match {
	t.Helper()
	m, ok := tab.Dispatch(context.Background(), req)
	require.True(t, ok, "expected a match for %s %s?%s", req.Method, req.Path, req.Query)
	return m
}

func TestDispatchRankOrdering(t *testing.T) {
	t.Parallel()

	// Most general registered first; rank must decide anyway.
	tab := mustTable(t,
		MustRoute(Get, "/<name>", nil, WithName("any")),
		MustRoute(Get, "/hello", nil, WithName("hello")),
	)

	m := dispatch(t, tab, &Request{Method: Get, Path: "/hello"})
	assert.Equal(t, "hello", m.Route().Name())

	m = dispatch(t, tab, &Request{Method: Get, Path: "/world"})
	assert.Equal(t, "any", m.Route().Name())
	v, ok := m.Param("name")
	require.True(t, ok)
	assert.Equal(t, "world", v)
}

func TestDispatchDeterminism(t *testing.T) {
	t.Parallel()

	tab := mustTable(t,
		MustRoute(Get, "/x/<a>", nil, WithName("first")),
		MustRoute(Get, "/x/<b>", nil, WithName("second")),
	)

	for i := 0; i < 10; i++ {
		m := dispatch(t, tab, &Request{Method: Get, Path: "/x/1"})
		assert.Equal(t, "first", m.Route().Name())
	}
}

func TestDispatchForwarding(t *testing.T) {
	t.Parallel()

	var first, second, third int
	tab := mustTable(t,
		MustRoute(Get, "/x/<a>", forward(&first)),
		MustRoute(Get, "/x/<b>", forward(&second)),
		MustRoute(Get, "/x/<c>", accept(&third), WithName("third")),
	)

	m := dispatch(t, tab, &Request{Method: Get, Path: "/x/1"})
	assert.Equal(t, "third", m.Route().Name())
	assert.Equal(t, 1, first, "a forwarded candidate is never re-probed")
	assert.Equal(t, 1, second)
	assert.Equal(t, 1, third)
}

func TestDispatchAllForward(t *testing.T) {
	t.Parallel()

	tab := mustTable(t,
		MustRoute(Get, "/x", forward(nil)),
		MustRoute(Get, "/<a>", forward(nil)),
	)

	_, ok := tab.Dispatch(context.Background(), &Request{Method: Get, Path: "/x"})
	assert.False(t, ok)
}

func TestDispatchNoBucket(t *testing.T) {
	t.Parallel()

	tab := mustTable(t, MustRoute(Get, "/x", nil))
	_, ok := tab.Dispatch(context.Background(), &Request{Method: Head, Path: "/x"})
	assert.False(t, ok)
}

func TestMatchSegmentCount(t *testing.T) {
	t.Parallel()

	tab := mustTable(t, MustRoute(Get, "/a/b/<c>", nil))

	tests := []struct {
		path string
		want bool
	}{
		{"/a/b/c", true},
		{"/a/b", false},
		{"/a", false},
		{"/a/b/c/d", false},
		{"/a/b/c/", true}, // trailing slash yields an empty piece, dropped
	}
	for _, tt := range tests {
		_, ok := tab.Dispatch(context.Background(), &Request{Method: Get, Path: tt.path})
		assert.Equal(t, tt.want, ok, tt.path)
	}
}

func TestMatchTrailing(t *testing.T) {
	t.Parallel()

	tab := mustTable(t, MustRoute(Get, "/files/<path..>", nil))

	tests := []struct {
		path  string
		bound string
	}{
		{"/files/a/b/c", "a/b/c"},
		{"/files/a", "a"},
		{"/files", ""},
		{"/files/", ""},
	}
	for _, tt := range tests {
		m := dispatch(t, tab, &Request{Method: Get, Path: tt.path})
		v, ok := m.Param("path")
		require.True(t, ok, tt.path)
		assert.Equal(t, tt.bound, v, tt.path)
	}

	_, ok := tab.Dispatch(context.Background(), &Request{Method: Get, Path: "/other"})
	assert.False(t, ok)
}

func TestMatchPercentEncoding(t *testing.T) {
	t.Parallel()

	tab := mustTable(t, MustRoute(Get, "/hello/<name>", nil))

	// Statics compare in decoded form.
	m := dispatch(t, tab, &Request{Method: Get, Path: "/%68ello/bob"})
	v, _ := m.Param("name")
	assert.Equal(t, "bob", v)

	// Dynamic bindings keep the raw text.
	m = dispatch(t, tab, &Request{Method: Get, Path: "/hello/b%6Fb"})
	v, _ = m.Param("name")
	assert.Equal(t, "b%6Fb", v)

	// Invalid percent-encoding matches nothing, without error.
	_, ok := tab.Dispatch(context.Background(), &Request{Method: Get, Path: "/hello/b%zzb"})
	assert.False(t, ok)
}

func TestMatchQuery(t *testing.T) {
	t.Parallel()

	t.Run("static fields are a required subset", func(t *testing.T) {
		t.Parallel()

		tab := mustTable(t, MustRoute(Get, "/s?a=1", nil))

		m := dispatch(t, tab, &Request{Method: Get, Path: "/s", Query: "a=1&b=2&c=3"})
		assert.NotNil(t, m)

		_, ok := tab.Dispatch(context.Background(), &Request{Method: Get, Path: "/s", Query: "b=2"})
		assert.False(t, ok)
		_, ok = tab.Dispatch(context.Background(), &Request{Method: Get, Path: "/s", Query: "a=2"})
		assert.False(t, ok)
		_, ok = tab.Dispatch(context.Background(), &Request{Method: Get, Path: "/s"})
		assert.False(t, ok)
	})

	t.Run("dynamic binds opportunistically", func(t *testing.T) {
		t.Parallel()

		tab := mustTable(t, MustRoute(Get, "/s?<q>", nil))

		m := dispatch(t, tab, &Request{Method: Get, Path: "/s", Query: "q=term"})
		v, ok := m.Param("q")
		require.True(t, ok)
		assert.Equal(t, "term", v)

		// A missing dynamic parameter never causes a mismatch.
		m = dispatch(t, tab, &Request{Method: Get, Path: "/s", Query: "other=1"})
		_, ok = m.Param("q")
		assert.False(t, ok)
	})

	t.Run("keyed form binds by key", func(t *testing.T) {
		t.Parallel()

		tab := mustTable(t, MustRoute(Get, "/s?page=<p>", nil))

		m := dispatch(t, tab, &Request{Method: Get, Path: "/s", Query: "page=2"})
		v, ok := m.Param("p")
		require.True(t, ok)
		assert.Equal(t, "2", v)
	})

	t.Run("trailing absorbs unclaimed pairs", func(t *testing.T) {
		t.Parallel()

		tab := mustTable(t, MustRoute(Get, "/s?a=1&<q>&<rest..>", nil))

		m := dispatch(t, tab, &Request{Method: Get, Path: "/s", Query: "a=1&q=x&k1=v1&k2=v2"})
		v, _ := m.Param("q")
		assert.Equal(t, "x", v)
		rest, _ := m.Param("rest")
		assert.Equal(t, "k1=v1&k2=v2", rest)
	})

	t.Run("invalid pair is ignored", func(t *testing.T) {
		t.Parallel()

		tab := mustTable(t, MustRoute(Get, "/s?a=1", nil))

		m := dispatch(t, tab, &Request{Method: Get, Path: "/s", Query: "junk=%zz&a=1"})
		assert.NotNil(t, m)
	})
}

func TestMatchQueryRanking(t *testing.T) {
	t.Parallel()

	tab := mustTable(t,
		MustRoute(Post, "/items?<q>", nil, WithName("generic")),
		MustRoute(Post, "/items?type=json&<q>", nil, WithName("json-only")),
	)

	m := dispatch(t, tab, &Request{Method: Post, Path: "/items", Query: "type=json&id=5"})
	assert.Equal(t, "json-only", m.Route().Name())

	m = dispatch(t, tab, &Request{Method: Post, Path: "/items", Query: "id=5"})
	assert.Equal(t, "generic", m.Route().Name())
}

func TestMatchFormat(t *testing.T) {
	t.Parallel()

	fmtOf := func(s string) *media.Type {
		t := media.MustParse(s)
		return &t
	}

	t.Run("accept side", func(t *testing.T) {
		t.Parallel()

		tab := mustTable(t, MustRoute(Get, "/a", nil, WithFormat(media.JSON)))

		// Absent Accept is */*.
		_, ok := tab.Dispatch(context.Background(), &Request{Method: Get, Path: "/a"})
		assert.True(t, ok)
		_, ok = tab.Dispatch(context.Background(), &Request{Method: Get, Path: "/a", Format: fmtOf("json")})
		assert.True(t, ok)
		_, ok = tab.Dispatch(context.Background(), &Request{Method: Get, Path: "/a", Format: fmtOf("*/*")})
		assert.True(t, ok)
		_, ok = tab.Dispatch(context.Background(), &Request{Method: Get, Path: "/a", Format: fmtOf("html")})
		assert.False(t, ok)
	})

	t.Run("payload side", func(t *testing.T) {
		t.Parallel()

		tab := mustTable(t, MustRoute(Post, "/a", nil, WithFormat(media.JSON)))

		// Content-Type must be fully specified.
		_, ok := tab.Dispatch(context.Background(), &Request{Method: Post, Path: "/a"})
		assert.False(t, ok)
		_, ok = tab.Dispatch(context.Background(), &Request{Method: Post, Path: "/a", Format: fmtOf("*/*")})
		assert.False(t, ok)
		_, ok = tab.Dispatch(context.Background(), &Request{Method: Post, Path: "/a", Format: fmtOf("application/*")})
		assert.False(t, ok)
		_, ok = tab.Dispatch(context.Background(), &Request{Method: Post, Path: "/a", Format: fmtOf("json")})
		assert.True(t, ok)
		_, ok = tab.Dispatch(context.Background(), &Request{Method: Post, Path: "/a", Format: fmtOf("html")})
		assert.False(t, ok)
	})

	t.Run("no declared format matches anything", func(t *testing.T) {
		t.Parallel()

		tab := mustTable(t, MustRoute(Post, "/a", nil))
		_, ok := tab.Dispatch(context.Background(), &Request{Method: Post, Path: "/a", Format: fmtOf("html")})
		assert.True(t, ok)
	})
}

func TestDispatchConcurrent(t *testing.T) {
	t.Parallel()

	tab := mustTable(t,
		MustRoute(Get, "/users/<id>", nil),
		MustRoute(Get, "/users", nil),
	)
	tab.Freeze()

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				m, ok := tab.Dispatch(context.Background(), &Request{Method: Get, Path: "/users/42"})
				if !ok || m.Route().URI() != "/users/<id>" {
					t.Error("concurrent dispatch returned the wrong route")
					return
				}
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
