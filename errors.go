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

import "errors"

var (
	// ErrInvalidMethod indicates that a route was declared with a method
	// outside the standard token set.
	ErrInvalidMethod = errors.New("invalid HTTP method")

	// ErrRelativePattern indicates that a route pattern does not begin
	// with '/'.
	ErrRelativePattern = errors.New("route pattern must be absolute")

	// ErrInvalidMountPoint indicates that a mount prefix is not an
	// absolute path or carries a query.
	ErrInvalidMountPoint = errors.New("mount point must be an absolute path without a query")

	// ErrTableFrozen indicates an attempt to mount routes after the
	// table was frozen.
	ErrTableFrozen = errors.New("routing table is frozen")

	// ErrRouteCollision indicates that mounting was rejected in strict
	// mode because two routes at equal rank could match the same
	// request.
	ErrRouteCollision = errors.New("route collision detected")
)
