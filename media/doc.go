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

// Package media models the media types routes filter requests with.
//
// A route may declare a format such as "json" or "application/json".
// During dispatch the declared format is compared against the request's
// resolved format using standard specificity rules: wildcards match
// anything in their position, and two types overlap when both the
// top-level type and the subtype overlap.
package media
