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
	"fmt"
	"strings"

	"routecraft.dev/router/media"
	"routecraft.dev/router/segment"
)

// Method is an HTTP method token.
type Method string

// The standard method set.
const (
	Get     Method = "GET"
	Post    Method = "POST"
	Put     Method = "PUT"
	Patch   Method = "PATCH"
	Delete  Method = "DELETE"
	Head    Method = "HEAD"
	Options Method = "OPTIONS"
	Trace   Method = "TRACE"
	Connect Method = "CONNECT"
)

var standardMethods = map[Method]bool{
	Get: true, Post: true, Put: true, Patch: true, Delete: true,
	Head: true, Options: true, Trace: true, Connect: true,
}

// Valid reports whether m is one of the standard method tokens.
func (m Method) Valid() bool {
	return standardMethods[m]
}

// SupportsPayload reports whether the method conventionally carries a
// request body. It drives format matching: payload methods filter on the
// request's Content-Type, the rest on its Accept.
func (m Method) SupportsPayload() bool {
	switch m {
	case Post, Put, Patch, Delete:
		return true
	default:
		return false
	}
}

// QueryField is a literal key/value pair declared in a route's query
// pattern. It acts as a required filter, not a binding.
type QueryField struct {
	Name  string
	Value string
}

// metadata caches derived facts about a compiled pattern. It is a pure
// function of the segment sequences, computed once at construction and
// never mutated.
type metadata struct {
	pathSegments  []segment.Segment
	querySegments []segment.Segment

	staticPath   bool // every path segment is static
	wildPath     bool // every path segment is dynamic and the last is Multi
	trailingPath bool // the last path segment is Multi
	hasQuery     bool // a query was declared
	wildQuery    bool // a query was declared and every segment is dynamic

	staticQueryFields []QueryField
}

func newMetadata(path, query []segment.Segment, hasQuery bool) metadata {
	md := metadata{
		pathSegments:  path,
		querySegments: query,
		hasQuery:      hasQuery,
		staticPath:    true,
		wildQuery:     hasQuery,
	}

	allDynamic := len(path) > 0
	for _, s := range path {
		if s.Dynamic() {
			md.staticPath = false
		} else {
			allDynamic = false
		}
	}
	if n := len(path); n > 0 && path[n-1].Kind == segment.Multi {
		md.trailingPath = true
		md.wildPath = allDynamic
	}

	for _, s := range query {
		if s.Dynamic() {
			continue
		}
		md.wildQuery = false
		name, value := s.Field()
		md.staticQueryFields = append(md.staticQueryFields, QueryField{Name: name, Value: value})
	}

	return md
}

// defaultRank computes a route's rank from its pattern metadata. Lower
// ranks are tried first, so more specific shapes get lower values:
//
//	| static path | query         | rank |
//	|-------------|---------------|------|
//	| yes         | partly static | -6   |
//	| yes         | fully dynamic | -5   |
//	| yes         | none          | -4   |
//	| no          | partly static | -3   |
//	| no          | fully dynamic | -2   |
//	| no          | none          | -1   |
func defaultRank(md metadata) int {
	switch {
	case md.staticPath && md.hasQuery && !md.wildQuery:
		return -6
	case md.staticPath && md.hasQuery:
		return -5
	case md.staticPath:
		return -4
	case md.hasQuery && !md.wildQuery:
		return -3
	case md.hasQuery:
		return -2
	default:
		return -1
	}
}

// Route is one registered (method, pattern, rank, format, handler)
// tuple. Routes are immutable once constructed; Rebase returns a new
// Route rather than modifying the receiver.
type Route struct {
	name    string
	method  Method
	base    string // normalized mount prefix, "/" when unmounted
	pattern string // declared pattern, relative to base
	uri     string // base-joined pattern matched against requests

	handler Handler
	format  *media.Type

	rank         int
	explicitRank bool

	md metadata
}

// RouteOption configures a route at construction time.
type RouteOption func(*Route)

// WithRank overrides the route's default rank. Explicit ranks survive
// rebasing; default ranks are recomputed.
func WithRank(rank int) RouteOption {
	return func(r *Route) {
		r.rank = rank
		r.explicitRank = true
	}
}

// WithFormat declares the media type the route filters requests with.
// Accepts a media.Type value; use media.MustParse for string forms.
func WithFormat(t media.Type) RouteOption {
	return func(r *Route) {
		r.format = &t
	}
}

// WithName assigns a diagnostic name to the route. Names appear in
// Route.String and in collision warnings.
func WithName(name string) RouteOption {
	return func(r *Route) {
		r.name = name
	}
}

// NewRoute compiles a pattern string into a Route with a base of "/".
//
// The pattern is split at the first '?' into a path fragment and an
// optional query fragment, each compiled by the segment package. All
// compilation diagnostics for the pattern are accumulated and returned
// together as a segment.ErrorList, with spans indexing into the full
// pattern string.
//
// The handler may be nil, in which case the route accepts every request
// it structurally matches.
func NewRoute(method Method, pattern string, handler Handler, opts ...RouteOption) (*Route, error) {
	if !method.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, string(method))
	}
	if !strings.HasPrefix(pattern, "/") {
		return nil, fmt.Errorf("%w: %q", ErrRelativePattern, pattern)
	}

	r := &Route{
		method:  method,
		base:    "/",
		pattern: pattern,
		uri:     pattern,
		handler: handler,
	}
	if err := r.compile(); err != nil {
		return nil, err
	}

	for _, opt := range opts {
		opt(r)
	}
	if !r.explicitRank {
		r.rank = defaultRank(r.md)
	}
	return r, nil
}

// MustRoute is like NewRoute but panics on error. Intended for routes
// declared at application assembly time, where a bad pattern should
// prevent startup.
func MustRoute(method Method, pattern string, handler Handler, opts ...RouteOption) *Route {
	r, err := NewRoute(method, pattern, handler, opts...)
	if err != nil {
		panic(fmt.Sprintf("router: invalid route %s %q: %s", method, pattern, err))
	}
	return r
}

// compile parses r.uri into segments and recomputes metadata.
func (r *Route) compile() error {
	rawPath := r.uri
	rawQuery := ""
	hasQuery := false
	if q := strings.IndexByte(r.uri, '?'); q != -1 {
		rawPath, rawQuery = r.uri[:q], r.uri[q+1:]
		hasQuery = true
	}

	var errs segment.ErrorList

	pathSegs, err := segment.Compile(rawPath, segment.Path)
	if err != nil {
		errs = append(errs, err.(segment.ErrorList)...)
	}

	var querySegs []segment.Segment
	if hasQuery {
		querySegs, err = segment.Compile(rawQuery, segment.Query)
		if err != nil {
			// Query spans are relative to the fragment; shift them past
			// the path and the '?' so they index the full pattern.
			errs = append(errs, err.(segment.ErrorList).Shift(len(rawPath)+1)...)
		}
		for i := range querySegs {
			querySegs[i].Span = querySegs[i].Span.Shift(len(rawPath) + 1)
		}
	}

	if len(errs) > 0 {
		return errs
	}

	r.md = newMetadata(pathSegs, querySegs, hasQuery)
	return nil
}

// Rebase returns a copy of the route mounted under prefix. The prefix
// must be an absolute path without a query. Metadata is recomputed from
// the joined pattern; a default rank is recomputed while an explicit
// rank is preserved.
func (r *Route) Rebase(prefix string) (*Route, error) {
	prefix, err := normalizeMountPoint(prefix)
	if err != nil {
		return nil, err
	}

	rebased := *r
	rebased.base = prefix
	if prefix == "/" {
		rebased.uri = r.pattern
	} else {
		rebased.uri = prefix + r.pattern
	}

	if err := rebased.compile(); err != nil {
		return nil, err
	}
	if !rebased.explicitRank {
		rebased.rank = defaultRank(rebased.md)
	}
	return &rebased, nil
}

// normalizeMountPoint validates and canonicalizes a mount prefix.
func normalizeMountPoint(prefix string) (string, error) {
	if !strings.HasPrefix(prefix, "/") || strings.ContainsAny(prefix, "?<>") {
		return "", fmt.Errorf("%w: %q", ErrInvalidMountPoint, prefix)
	}
	for len(prefix) > 1 && strings.HasSuffix(prefix, "/") {
		prefix = prefix[:len(prefix)-1]
	}
	return prefix, nil
}

// Method returns the method the route matches against.
func (r *Route) Method() Method { return r.method }

// Base returns the route's mount prefix.
func (r *Route) Base() string { return r.base }

// Pattern returns the declared pattern, relative to the base.
func (r *Route) Pattern() string { return r.pattern }

// URI returns the full pattern (base joined with pattern) matched
// against incoming requests.
func (r *Route) URI() string { return r.uri }

// Rank returns the route's priority; lower ranks are tried first.
func (r *Route) Rank() int { return r.rank }

// Format returns the declared media type filter, or nil.
func (r *Route) Format() *media.Type {
	if r.format == nil {
		return nil
	}
	f := *r.format
	return &f
}

// Name returns the diagnostic name, or "".
func (r *Route) Name() string { return r.name }

// Handler returns the route's handler reference. The router never
// inspects it except through the Decide probe during dispatch.
func (r *Route) Handler() Handler { return r.handler }

// PathSegments returns the compiled path segments in declaration order.
func (r *Route) PathSegments() []segment.Segment { return r.md.pathSegments }

// QuerySegments returns the compiled query segments in declaration
// order, or nil when no query was declared.
func (r *Route) QuerySegments() []segment.Segment { return r.md.querySegments }

// StaticQueryFields returns the literal key/value filters contributed by
// static query segments, in declaration order.
func (r *Route) StaticQueryFields() []QueryField { return r.md.staticQueryFields }

// String renders the route for diagnostics: method, URI, a non-default
// rank, the format, and the name when present.
func (r *Route) String() string {
	var b strings.Builder
	b.WriteString(string(r.method))
	b.WriteByte(' ')
	b.WriteString(r.uri)
	if r.explicitRank {
		fmt.Fprintf(&b, " [%d]", r.rank)
	}
	if r.format != nil {
		b.WriteByte(' ')
		b.WriteString(r.format.String())
	}
	if r.name != "" {
		fmt.Fprintf(&b, " (%s)", r.name)
	}
	return b.String()
}
