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

import (
	"fmt"
	"strings"
)

// Compile parses one URI pattern fragment into an ordered sequence of
// typed segments. The fragment is split on the source's separator ('/'
// for path, '&' for query) and each piece is classified as Static,
// Single (`<name>`), or Multi (`<name..>`). Empty pieces are dropped.
//
// Compile accumulates every diagnosable error and returns them together
// as an ErrorList, with one exception: text following a Multi segment
// produces a Trailing error and halts further scanning of the fragment,
// since errors past that point are not meaningful.
//
// Output ordering always matches declaration order.
func Compile(raw string, source Source) ([]Segment, error) {
	var (
		segments []Segment
		errs     ErrorList
		multi    *Segment // first Multi seen, if any
	)

	sep := source.Delimiter()
	pos := 0
	for pos <= len(raw) {
		end := strings.IndexByte(raw[pos:], sep)
		if end == -1 {
			end = len(raw)
		} else {
			end += pos
		}

		piece := raw[pos:end]
		if piece != "" {
			span := Span{Start: pos, End: end}
			if multi != nil {
				errs = append(errs, &Error{
					Kind:    Trailing,
					Segment: piece,
					Name:    multi.Name,
					Span:    span,
					Hint:    "a trailing parameter must be the final component",
				})
				break
			}

			seg, err := compileOne(piece, source, span, len(segments))
			if err != nil {
				errs = append(errs, err)
			} else {
				segments = append(segments, seg)
				if seg.Kind == Multi {
					multi = &segments[len(segments)-1]
				}
			}
		}

		pos = end + 1
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return segments, nil
}

// compileOne classifies a single non-empty piece.
func compileOne(piece string, source Source, span Span, index int) (Segment, *Error) {
	lt := strings.IndexByte(piece, '<')
	gt := strings.IndexByte(piece, '>')

	// No brackets at all: static text.
	if lt == -1 && gt == -1 {
		if !validStatic(piece) {
			return Segment{}, &Error{
				Kind:    URI,
				Segment: piece,
				Span:    span,
				Hint:    "percent-encode reserved characters; components cannot contain '%' or '+'",
			}
		}
		return Segment{Kind: Static, Source: source, Name: piece, Index: index, Span: span}, nil
	}

	// A '>' with no opening bracket.
	if lt == -1 {
		return Segment{}, malformed(piece, span)
	}

	// Query position permits the `key=<name>` form.
	if lt > 0 {
		if source != Path && lt >= 2 && piece[lt-1] == '=' {
			key := piece[:lt-1]
			if validIdent(key) {
				seg, err := compileParam(piece[lt:], source, span, index)
				if err != nil {
					return Segment{}, err
				}
				if seg.Kind == Multi {
					// `key=<name..>` has no meaning: a trailing query
					// parameter absorbs whole pairs, not one value.
					return Segment{}, malformed(piece, span)
				}
				seg.Key = key
				return seg, nil
			}
		}
		return Segment{}, malformed(piece, span)
	}

	return compileParam(piece, source, span, index)
}

// compileParam parses a piece beginning with '<' into a dynamic segment.
func compileParam(piece string, source Source, span Span, index int) (Segment, *Error) {
	gt := strings.IndexByte(piece, '>')
	if gt == -1 {
		return Segment{}, &Error{
			Kind:    MissingClose,
			Segment: piece,
			Span:    span,
			Hint:    fmt.Sprintf("did you mean '%s>'?", piece),
		}
	}
	if gt != len(piece)-1 {
		return Segment{}, malformed(piece, span)
	}

	inner := piece[1 : len(piece)-1]
	if strings.ContainsAny(inner, "<>") {
		return Segment{}, malformed(piece, span)
	}

	kind := Single
	name := inner
	if strings.HasSuffix(inner, "..") {
		kind = Multi
		name = inner[:len(inner)-2]
	}

	switch {
	case name == "":
		return Segment{}, &Error{
			Kind:    Empty,
			Segment: piece,
			Span:    span,
			Hint:    "add a name between '<' and '>'",
		}
	case name == "_":
		return Segment{}, &Error{
			Kind:    Ignored,
			Segment: piece,
			Name:    name,
			Span:    span,
			Hint:    "give the parameter a unique, addressable name",
		}
	case !validIdent(name):
		return Segment{}, &Error{
			Kind:    Ident,
			Segment: piece,
			Name:    name,
			Span:    span,
			Hint:    "parameter names must be valid identifiers",
		}
	}

	seg := Segment{Kind: kind, Source: source, Name: name, Index: index, Span: span}
	if source != Path {
		seg.Key = name
	}
	return seg, nil
}

func malformed(piece string, span Span) *Error {
	return &Error{
		Kind:    Malformed,
		Segment: piece,
		Span:    span,
		Hint:    "parameters must be of the form '<name>'; identifiers cannot contain '<' or '>'",
	}
}

// validIdent reports whether s is a usable parameter name: an ASCII
// identifier of the form [A-Za-z_][A-Za-z0-9_]*.
func validIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// validStatic reports whether a static component contains only URI text
// that needs no percent-encoding. '%' and '+' are rejected outright:
// patterns are written in decoded form, so an escape sequence in a
// pattern is almost always a mistake.
func validStatic(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '.', c == '_', c == '~':
		case c == '!', c == '$', c == '\'', c == '(', c == ')', c == '*', c == ',', c == ';', c == '=', c == ':', c == '@':
		default:
			return false
		}
	}
	return true
}
