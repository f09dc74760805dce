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

	"routecraft.dev/router/segment"
)

// Collision pairs two routes that could both match some concrete
// request at the same rank, making the outcome ambiguous. Collisions
// are detected once, at mount time; the check is a conservative
// over-approximation, so a reported collision may be a false positive
// but an unreported pair is guaranteed unambiguous.
type Collision struct {
	A *Route
	B *Route
}

// String renders the collision for diagnostics.
func (c Collision) String() string {
	return fmt.Sprintf("%s collides with %s", c.A, c.B)
}

// Collides reports whether two routes can match the same request:
// equal method and rank, overlapping paths, compatible query
// requirements, and overlapping formats. It is symmetric.
//
// Collides uses the default payload-method set; a Table configured with
// WithPayloadMethods applies its own set during mount-time checks.
func Collides(a, b *Route) bool {
	return collides(a, b, Method.SupportsPayload)
}

func collides(a, b *Route, payload func(Method) bool) bool {
	return a.method == b.method &&
		a.rank == b.rank &&
		pathsCollide(a, b) &&
		queriesCollide(a, b) &&
		formatsCollide(a, b, payload)
}

// pathsCollide reports whether some concrete path could match both
// routes' path sequences: position by position each segment pair must
// collide, and the sequences must be the same length unless one ends in
// a Multi segment, which absorbs any remainder.
func pathsCollide(a, b *Route) bool {
	as, bs := a.PathSegments(), b.PathSegments()
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i].Kind == segment.Multi || bs[i].Kind == segment.Multi {
			return true
		}
		if !segmentsCollide(as[i], bs[i]) {
			return false
		}
	}

	// Unequal lengths collide only when the longer sequence continues
	// with a Multi segment, which can absorb zero segments.
	switch {
	case len(as) == len(bs):
		return true
	case len(as) < len(bs):
		return bs[len(as)].Kind == segment.Multi
	default:
		return as[len(bs)].Kind == segment.Multi
	}
}

// segmentsCollide: statics collide only when textually equal; any
// pairing involving a dynamic segment collides unconditionally, since a
// dynamic segment accepts any value including the other's literal.
func segmentsCollide(a, b segment.Segment) bool {
	return a.Dynamic() || b.Dynamic() || a.Name == b.Name
}

// queriesCollide reports whether some concrete query string could
// satisfy both routes' requirements. Dynamic query parameters can bind
// anything, so only the static key/value filters discriminate: the
// routes fail to collide only when they require differing values for a
// common key. Everything else is conservatively treated as colliding.
func queriesCollide(a, b *Route) bool {
	bf := make(map[string]string, len(b.md.staticQueryFields))
	for _, f := range b.md.staticQueryFields {
		bf[f.Name] = f.Value
	}
	for _, f := range a.md.staticQueryFields {
		if v, ok := bf[f.Name]; ok && v != f.Value {
			return false
		}
	}
	return true
}

// formatsCollide reports whether the routes' format filters overlap.
// For non-payload methods the request's Accept can always be
// non-specific (*/*), so formats never disambiguate. For payload
// methods, two declared formats must overlap; an absent format collides
// with everything.
func formatsCollide(a, b *Route, payload func(Method) bool) bool {
	if !payload(a.method) {
		return true
	}
	if a.format != nil && b.format != nil {
		return a.format.Collides(*b.format)
	}
	return true
}
