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

package segment

// Kind classifies one compiled pattern token.
type Kind uint8

const (
	// Static is literal text that must match a request component exactly.
	Static Kind = iota

	// Single is a dynamic parameter (`<name>`) matching exactly one
	// request component.
	Single

	// Multi is a trailing dynamic parameter (`<name..>`) absorbing all
	// remaining request components, including zero. A Multi segment, if
	// present, is always the last segment in its sequence.
	Multi
)

// String returns a short human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Static:
		return "static"
	case Single:
		return "single"
	case Multi:
		return "multi"
	default:
		return "unknown"
	}
}

// Source identifies the part of a pattern a segment was compiled from.
type Source uint8

const (
	// Path segments come from the path portion of a pattern and are
	// separated by '/'.
	Path Source = iota

	// Query segments come from the query portion of a pattern and are
	// separated by '&'.
	Query

	// Data segments are body-bound fields declared in query position.
	// The router treats them identically to Query for matching.
	Data
)

// Delimiter returns the separator byte for the source's sequence.
func (s Source) Delimiter() byte {
	if s == Path {
		return '/'
	}
	return '&'
}

// String returns a short human-readable name for the source.
func (s Source) String() string {
	switch s {
	case Path:
		return "path"
	case Query:
		return "query"
	case Data:
		return "data"
	default:
		return "unknown"
	}
}

// Span is a half-open byte-offset range [Start, End) into the original
// pattern string. Spans let registration-time diagnostics point at the
// exact offending characters without coupling to any host tooling.
type Span struct {
	Start int
	End   int
}

// Shift returns the span moved right by n bytes. Used when a compiled
// fragment is embedded in a larger pattern string.
func (s Span) Shift(n int) Span {
	return Span{Start: s.Start + n, End: s.End + n}
}

// Segment is one atomic token of a compiled pattern.
type Segment struct {
	// Kind is the token classification.
	Kind Kind

	// Source records whether the segment was declared in path or query
	// position.
	Source Source

	// Name is the literal text for Static segments or the bound
	// identifier for dynamic segments. Never empty.
	Name string

	// Key is set for dynamic query segments only: the request query key
	// the parameter binds from. For the bare `<name>` form, Key equals
	// Name; for the `key=<name>` form, Key is the declared key.
	Key string

	// Index is the position among sibling segments.
	Index int

	// Span locates the segment in the original fragment.
	Span Span
}

// Dynamic reports whether the segment binds a request value.
func (s Segment) Dynamic() bool {
	return s.Kind != Static
}

// Field splits a static query segment into its literal key/value pair.
// "a=b" yields ("a", "b"); a lone "a" yields ("a", ""). The result is
// meaningful only for Static segments with a Query or Data source.
func (s Segment) Field() (key, value string) {
	for i := 0; i < len(s.Name); i++ {
		if s.Name[i] == '=' {
			return s.Name[:i], s.Name[i+1:]
		}
	}
	return s.Name, ""
}

// String renders the segment in route-pattern form.
func (s Segment) String() string {
	switch s.Kind {
	case Single:
		if s.Key != "" && s.Key != s.Name {
			return s.Key + "=<" + s.Name + ">"
		}
		return "<" + s.Name + ">"
	case Multi:
		return "<" + s.Name + "..>"
	default:
		return s.Name
	}
}
