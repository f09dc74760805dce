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

// Package segment compiles URI pattern fragments for the Routecraft
// router.
//
// A pattern fragment is either the path portion or the query portion of
// a route declaration. Compilation splits the fragment on its separator
// and classifies each piece into one of three segment kinds:
//
//   - Static: literal text, matched exactly ("users")
//   - Single: one dynamic component ("<id>")
//   - Multi: a trailing dynamic component absorbing the remainder
//     ("<rest..>")
//
// # Grammar
//
//	path      := '/' segment ('/' segment)*
//	segment   := STATIC | '<' IDENT '>' | '<' IDENT '..' '>'
//	query     := qsegment ('&' qsegment)*
//	qsegment  := STATIC '=' STATIC | IDENT '=' '<' IDENT '>' | '<' IDENT '>' | '<' IDENT '..' '>'
//
// A Multi segment must be the last segment in its sequence; at most one
// may appear. This is enforced here, at compile time, never at request
// time.
//
// # Diagnostics
//
// Compile is a diagnostics accumulator: it reports every problem in a
// fragment in one pass rather than stopping at the first. Each Error
// carries a kind, the offending raw text, a byte-offset Span into the
// fragment, and a suggested fix. The one short-circuit is a Trailing
// error (content after a Multi segment), which halts scanning because
// later errors would not be meaningful.
//
// Example:
//
//	segs, err := segment.Compile("/files/<path..>", segment.Path)
//	if err != nil {
//	    for _, e := range err.(segment.ErrorList) {
//	        fmt.Printf("%s at %d..%d: %s\n", e.Kind, e.Span.Start, e.Span.End, e)
//	    }
//	}
package segment
