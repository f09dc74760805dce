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

// ErrorKind identifies a class of pattern compilation failure. Each kind
// has a distinct, mechanically-derivable suggested fix, which is why the
// compiler does not collapse them into one generic parse error.
type ErrorKind uint8

const (
	// Empty: a dynamic segment's identifier is empty ("<>").
	Empty ErrorKind = iota

	// Ident: the identifier is not a valid name.
	Ident

	// Ignored: the identifier is the wildcard placeholder "_", which is
	// disallowed because dynamic segments must be individually
	// addressable.
	Ignored

	// MissingClose: an opening '<' has no matching '>'.
	MissingClose

	// Malformed: nested or extra '<'/'>' inside one segment.
	Malformed

	// URI: static text contains characters requiring percent-encoding
	// that were left unescaped.
	URI

	// Trailing: non-empty content follows a Multi segment.
	Trailing
)

// String returns the kind's diagnostic label.
func (k ErrorKind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Ident:
		return "ident"
	case Ignored:
		return "ignored"
	case MissingClose:
		return "missing_close"
	case Malformed:
		return "malformed"
	case URI:
		return "uri"
	case Trailing:
		return "trailing"
	default:
		return "unknown"
	}
}

// Error is one structured pattern diagnostic. It carries the error kind,
// the raw text of the offending segment, a byte-offset span into the
// compiled fragment, and an optional suggested fix.
type Error struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Segment is the raw text of the offending piece.
	Segment string

	// Name is the identifier involved, when one exists. For Trailing
	// errors it names the Multi segment that the trailing text follows.
	Name string

	// Span locates the offending characters in the compiled fragment.
	Span Span

	// Hint is an optional suggested fix, suitable for display next to
	// the error message.
	Hint string
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case Empty:
		return "parameter names cannot be empty"
	case Ident:
		return fmt.Sprintf("%q is not a valid identifier", e.Name)
	case Ignored:
		return "parameters must be named"
	case MissingClose:
		return fmt.Sprintf("parameter %q is missing a closing '>'", e.Segment)
	case Malformed:
		return fmt.Sprintf("malformed parameter %q", e.Segment)
	case URI:
		return fmt.Sprintf("component %q contains invalid URI characters", e.Segment)
	case Trailing:
		return fmt.Sprintf("unexpected text after trailing parameter <%s..>", e.Name)
	default:
		return fmt.Sprintf("invalid segment %q", e.Segment)
	}
}

// ErrorList accumulates every diagnosable error found in one pattern
// fragment. The compiler is a diagnostics accumulator, not a
// short-circuiting parser: callers see all problems in one pass.
type ErrorList []*Error

// Error implements the error interface by joining the individual
// messages.
func (l ErrorList) Error() string {
	if len(l) == 0 {
		return "no errors"
	}
	if len(l) == 1 {
		return l[0].Error()
	}
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%d pattern errors: %s", len(l), strings.Join(msgs, "; "))
}

// Shift returns the list with every span moved right by n bytes.
func (l ErrorList) Shift(n int) ErrorList {
	out := make(ErrorList, len(l))
	for i, e := range l {
		shifted := *e
		shifted.Span = e.Span.Shift(n)
		out[i] = &shifted
	}
	return out
}
