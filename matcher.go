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
	"net/url"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"routecraft.dev/router/media"
	"routecraft.dev/router/segment"
)

// Outcome is a handler's decision about a structurally matched request.
type Outcome int

const (
	// Accept ends the search: the route handles the request.
	Accept Outcome = iota

	// Forward declines the request: dispatch resumes at the next-ranked
	// candidate. A structurally matching but semantically declining
	// handler never terminates the search.
	Forward
)

// Handler is the opaque capability attached to a route. The router
// never inspects or invokes it except through Decide, which acts as the
// probe during dispatch. Decide may perform arbitrary work; dispatch
// resumes at the next-ranked candidate regardless of what it did or how
// long it took.
//
// Implementations must be safe for concurrent use: one handler may be
// probed by many in-flight dispatches.
type Handler interface {
	Decide(ctx context.Context, m *Match) Outcome
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, m *Match) Outcome

// Decide calls f.
func (f HandlerFunc) Decide(ctx context.Context, m *Match) Outcome {
	return f(ctx, m)
}

// Request is an incoming request descriptor: everything the router
// consumes to select a route. Path and Query are percent-encoded, as
// received on the wire.
type Request struct {
	Method Method
	Path   string
	Query  string
	Format *media.Type
}

// Match is a successful structural match: the selected route plus the
// concrete bindings captured for each dynamic segment.
type Match struct {
	route  *Route
	params map[string]string
}

// Route returns the matched route.
func (m *Match) Route() *Route { return m.route }

// Param returns the raw text bound to a dynamic segment name.
func (m *Match) Param(name string) (string, bool) {
	v, ok := m.params[name]
	return v, ok
}

// Params returns all bindings, name to matched raw text. The returned
// map is owned by the Match; callers must not mutate it.
func (m *Match) Params() map[string]string { return m.params }

// Dispatch reduces a request to the registered route that handles it,
// if any. Candidates for the request's method are tried in ascending
// rank order (ties in insertion order); the first candidate whose path,
// query, and format all match is probed via its handler's Decide. An
// Accept returns that candidate; a Forward resumes with the next one.
// Routes without a handler accept implicitly.
//
// A false result means no route handles the request - an ordinary "not
// found" outcome, never an internal error. Malformed percent-encoding
// in the request path matches no candidate.
//
// Dispatch never mutates the table and is safe to call concurrently;
// each call allocates only local per-call state.
func (t *Table) Dispatch(ctx context.Context, req *Request) (*Match, bool) {
	bucket := t.buckets[req.Method]

	pathSegs, pathOK := splitRequestPath(req.Path)
	pairs := parseRequestQuery(req.Query)

	forwards := 0
	if pathOK {
		for _, r := range bucket {
			m, ok := t.matchRoute(r, req, pathSegs, pairs)
			if !ok {
				continue
			}

			outcome := Accept
			if r.handler != nil {
				outcome = r.handler.Decide(ctx, m)
			}
			if outcome == Forward {
				forwards++
				t.metrics.forwarded(ctx, r)
				continue
			}

			t.metrics.dispatched(ctx, r, forwards)
			if span := trace.SpanFromContext(ctx); span.IsRecording() {
				span.AddEvent("router.match", trace.WithAttributes(
					attribute.String("http.route", r.uri),
					attribute.String("http.request.method", string(req.Method)),
					attribute.Int("router.rank", r.rank),
					attribute.Int("router.forwards", forwards),
				))
			}
			return m, true
		}
	}

	t.metrics.unmatched(ctx, req.Method)
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.AddEvent("router.unmatched", trace.WithAttributes(
			attribute.String("http.request.method", string(req.Method)),
		))
	}
	return nil, false
}

// requestSegment is one incoming path segment in raw and decoded form.
type requestSegment struct {
	raw     string
	decoded string
}

// splitRequestPath splits a percent-encoded request path into segments,
// dropping empty ones. A false result means the path carries invalid
// percent-encoding and structurally matches no candidate.
func splitRequestPath(path string) ([]requestSegment, bool) {
	var segs []requestSegment
	for path != "" {
		var piece string
		if i := strings.IndexByte(path, '/'); i != -1 {
			piece, path = path[:i], path[i+1:]
		} else {
			piece, path = path, ""
		}
		if piece == "" {
			continue
		}
		decoded, err := url.PathUnescape(piece)
		if err != nil {
			return nil, false
		}
		segs = append(segs, requestSegment{raw: piece, decoded: decoded})
	}
	return segs, true
}

// queryPair is one incoming query pair in raw and decoded form.
type queryPair struct {
	raw      string // full "key=value" piece as received
	rawValue string // value portion as received
	key      string // decoded key
	value    string // decoded value
}

// parseRequestQuery splits a raw query string into decoded key/value
// pairs. Pairs with invalid percent-encoding are dropped: they cannot
// satisfy any static filter and cannot be bound, but their presence
// never turns dispatch into an error.
func parseRequestQuery(query string) []queryPair {
	if query == "" {
		return nil
	}
	var pairs []queryPair
	for query != "" {
		var piece string
		if i := strings.IndexByte(query, '&'); i != -1 {
			piece, query = query[:i], query[i+1:]
		} else {
			piece, query = query, ""
		}
		if piece == "" {
			continue
		}

		rawKey, rawValue := piece, ""
		if i := strings.IndexByte(piece, '='); i != -1 {
			rawKey, rawValue = piece[:i], piece[i+1:]
		}
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			continue
		}
		pairs = append(pairs, queryPair{raw: piece, rawValue: rawValue, key: key, value: value})
	}
	return pairs
}

// matchRoute checks one candidate against the request. It is
// side-effect free on non-matches: bindings are collected into a fresh
// Match only when every check passes.
func (t *Table) matchRoute(r *Route, req *Request, pathSegs []requestSegment, pairs []queryPair) (*Match, bool) {
	if !t.formatMatches(r, req) {
		return nil, false
	}

	params := make(map[string]string)
	if !matchPath(r, pathSegs, params) {
		return nil, false
	}
	if !matchQuery(r, pairs, params) {
		return nil, false
	}
	return &Match{route: r, params: params}, true
}

// matchPath compares the candidate's path segments against the request,
// binding dynamic segments as it goes.
//
// Segment counts must agree exactly unless the candidate has a trailing
// Multi segment, which may absorb any remainder, including none.
func matchPath(r *Route, reqSegs []requestSegment, params map[string]string) bool {
	routeSegs := r.md.pathSegments

	need := len(routeSegs)
	if r.md.trailingPath {
		need--
	}
	if len(reqSegs) < need {
		return false
	}
	if len(reqSegs) > len(routeSegs) && !r.md.trailingPath {
		return false
	}

	for i, rs := range routeSegs {
		if rs.Kind == segment.Multi {
			params[rs.Name] = joinRaw(reqSegs[i:])
			return true
		}
		if rs.Kind == segment.Static {
			if reqSegs[i].decoded != rs.Name {
				return false
			}
			continue
		}
		params[rs.Name] = reqSegs[i].raw
	}
	return true
}

func joinRaw(segs []requestSegment) string {
	switch len(segs) {
	case 0:
		return ""
	case 1:
		return segs[0].raw
	}
	var b strings.Builder
	for i, s := range segs {
		if i > 0 {
			b.WriteByte('/')
		}
		b.WriteString(s.raw)
	}
	return b.String()
}

// matchQuery enforces the candidate's static query filters and binds
// its dynamic query parameters.
//
// Static fields are a required subset: every declared pair must appear
// among the request's decoded pairs, but the request may carry any
// number of additional keys. Dynamic parameters bind opportunistically
// and never cause a mismatch; a trailing Multi absorbs the raw
// remainder not claimed by other segments.
func matchQuery(r *Route, pairs []queryPair, params map[string]string) bool {
	for _, f := range r.md.staticQueryFields {
		if !hasPair(pairs, f.Name, f.Value) {
			return false
		}
	}

	var multi *segment.Segment
	claimed := make(map[string]bool)
	for i := range r.md.querySegments {
		s := &r.md.querySegments[i]
		switch s.Kind {
		case segment.Single:
			claimed[s.Key] = true
			for _, p := range pairs {
				if p.key == s.Key {
					params[s.Name] = p.rawValue
					break
				}
			}
		case segment.Multi:
			multi = s
		case segment.Static:
			name, _ := s.Field()
			claimed[name] = true
		}
	}

	if multi != nil {
		var rest []string
		for _, p := range pairs {
			if !claimed[p.key] {
				rest = append(rest, p.raw)
			}
		}
		params[multi.Name] = strings.Join(rest, "&")
	}
	return true
}

func hasPair(pairs []queryPair, key, value string) bool {
	for _, p := range pairs {
		if p.key == key && p.value == value {
			return true
		}
	}
	return false
}

// formatMatches applies the candidate's media-type filter.
//
// For methods that carry a payload the filter runs against the
// request's Content-Type, which must be fully specified: a payload
// request without a resolvable format matches no format-declaring
// route. For the remaining methods the filter runs against Accept,
// where an absent format is implicitly */* and matches anything.
func (t *Table) formatMatches(r *Route, req *Request) bool {
	if r.format == nil {
		return true
	}
	if t.isPayload(req.Method) {
		if req.Format == nil || req.Format.Specificity() < 2 {
			return false
		}
		return r.format.Collides(*req.Format)
	}
	if req.Format == nil {
		return true
	}
	return r.format.Collides(*req.Format)
}
