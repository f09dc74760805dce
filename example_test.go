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

package router_test

import (
	"context"
	"fmt"

	"routecraft.dev/router"
	"routecraft.dev/router/media"
)

func Example() {
	t := router.New()
	t.Add(
		router.MustRoute(router.Get, "/hello", nil, router.WithName("greeting")),
		router.MustRoute(router.Get, "/<name>", nil, router.WithName("catch-all")),
	)
	t.Freeze()

	for _, path := range []string{"/hello", "/world"} {
		m, _ := t.Dispatch(context.Background(), &router.Request{Method: router.Get, Path: path})
		fmt.Printf("%s -> %s\n", path, m.Route().Name())
	}
	// Output:
	// /hello -> greeting
	// /world -> catch-all
}

func ExampleRoute_trailing() {
	t := router.New()
	t.Add(router.MustRoute(router.Get, "/files/<path..>", nil))

	m, _ := t.Dispatch(context.Background(), &router.Request{Method: router.Get, Path: "/files/docs/a.txt"})
	path, _ := m.Param("path")
	fmt.Println(path)
	// Output:
	// docs/a.txt
}

func ExampleHandlerFunc_forwarding() {
	deny := router.HandlerFunc(func(ctx context.Context, m *router.Match) router.Outcome {
		return router.Forward
	})

	t := router.New()
	t.Add(
		router.MustRoute(router.Get, "/admin", deny, router.WithName("admin")),
		router.MustRoute(router.Get, "/<page>", nil, router.WithName("public")),
	)

	m, _ := t.Dispatch(context.Background(), &router.Request{Method: router.Get, Path: "/admin"})
	fmt.Println(m.Route().Name())
	// Output:
	// public
}

func ExampleWithFormat() {
	t := router.New()
	t.Add(
		router.MustRoute(router.Post, "/items", nil, router.WithFormat(media.JSON), router.WithName("json")),
		router.MustRoute(router.Post, "/items", nil, router.WithFormat(media.Form), router.WithName("form")),
	)

	ct := media.MustParse("application/json")
	m, _ := t.Dispatch(context.Background(), &router.Request{Method: router.Post, Path: "/items", Format: &ct})
	fmt.Println(m.Route().Name())
	// Output:
	// json
}

func ExampleTable_mount() {
	t := router.New(router.WithStrictCollisions())
	_, err := t.Mount("/api/v1",
		router.MustRoute(router.Get, "/users", nil),
		router.MustRoute(router.Get, "/users/<id>", nil),
	)
	if err != nil {
		panic(err)
	}

	for _, r := range t.Routes() {
		fmt.Println(r)
	}
	// Output:
	// GET /api/v1/users
	// GET /api/v1/users/<id>
}
