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

package media

import (
	"errors"
	"strings"
)

// ErrInvalidType indicates that a string could not be parsed as a media
// type or known shorthand.
var ErrInvalidType = errors.New("media: invalid media type")

// Type is a parsed media type: a top-level type and a subtype, either of
// which may be the wildcard "*". Parameters (";q=", ";charset=", ...)
// are stripped during parsing; route formats filter on type identity,
// not parameter details.
type Type struct {
	// Top is the top-level type, e.g. "application".
	Top string

	// Sub is the subtype, e.g. "json".
	Sub string
}

// Common types, usable directly as route formats.
var (
	Any       = Type{Top: "*", Sub: "*"}
	JSON      = Type{Top: "application", Sub: "json"}
	XML       = Type{Top: "application", Sub: "xml"}
	MsgPack   = Type{Top: "application", Sub: "msgpack"}
	Form      = Type{Top: "application", Sub: "x-www-form-urlencoded"}
	HTML      = Type{Top: "text", Sub: "html"}
	Plain     = Type{Top: "text", Sub: "plain"}
	CSV       = Type{Top: "text", Sub: "csv"}
	Binary    = Type{Top: "application", Sub: "octet-stream"}
	PDF       = Type{Top: "application", Sub: "pdf"}
	PNG       = Type{Top: "image", Sub: "png"}
	JPEG      = Type{Top: "image", Sub: "jpeg"}
	GIF       = Type{Top: "image", Sub: "gif"}
	SVG       = Type{Top: "image", Sub: "svg+xml"}
	CSS       = Type{Top: "text", Sub: "css"}
	JS        = Type{Top: "application", Sub: "javascript"}
)

// shorthands maps bare names accepted in route declarations to full
// media types, so a route may declare format "json" instead of
// "application/json".
var shorthands = map[string]Type{
	"any":     Any,
	"json":    JSON,
	"xml":     XML,
	"msgpack": MsgPack,
	"form":    Form,
	"html":    HTML,
	"plain":   Plain,
	"text":    Plain,
	"txt":     Plain,
	"csv":     CSV,
	"binary":  Binary,
	"pdf":     PDF,
	"png":     PNG,
	"jpg":     JPEG,
	"jpeg":    JPEG,
	"gif":     GIF,
	"svg":     SVG,
	"css":     CSS,
	"js":      JS,
}

// Parse converts a media type string or shorthand into a Type.
//
// Accepted forms:
//   - shorthand names: "json", "html", "plain", ...
//   - full types: "application/json", "text/html;charset=utf-8"
//   - wildcards: "*/*", "text/*", "*/json"
//
// Matching is case-insensitive; parameters after ';' are discarded.
func Parse(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Type{}, ErrInvalidType
	}

	if t, ok := shorthands[s]; ok {
		return t, nil
	}

	if semi := strings.IndexByte(s, ';'); semi != -1 {
		s = strings.TrimSpace(s[:semi])
	}

	slash := strings.IndexByte(s, '/')
	if slash <= 0 || slash == len(s)-1 {
		return Type{}, ErrInvalidType
	}

	top, sub := s[:slash], s[slash+1:]
	if strings.IndexByte(sub, '/') != -1 {
		return Type{}, ErrInvalidType
	}
	return Type{Top: top, Sub: sub}, nil
}

// MustParse is like Parse but panics on error. Intended for route
// declarations, which are validated at application assembly time.
func MustParse(s string) Type {
	t, err := Parse(s)
	if err != nil {
		panic("media: cannot parse " + s + " as a media type")
	}
	return t
}

// String renders the type in canonical "top/sub" form.
func (t Type) String() string {
	return t.Top + "/" + t.Sub
}

// Specificity counts the non-wildcard components: 2 for a fully
// specified type, 1 for a half wildcard, 0 for */*.
func (t Type) Specificity() int {
	n := 0
	if t.Top != "*" {
		n++
	}
	if t.Sub != "*" {
		n++
	}
	return n
}

// Collides reports whether some concrete media type is accepted by both
// t and o: top and sub each match when equal or when either side is a
// wildcard.
func (t Type) Collides(o Type) bool {
	return part(t.Top, o.Top) && part(t.Sub, o.Sub)
}

func part(a, b string) bool {
	return a == "*" || b == "*" || a == b
}
