package routing

import (
	"net/http"
	"strings"
)

// Group registers routes under a shared path prefix. The prefix may itself
// contain template variables:
//
//	api := r.Group("/api/v1")
//	api.Get("/products/{id:int}", listProduct)
//
//	tenant := r.Group("/tenants/{tenant}")
//	tenant.Get("/usage", usageHandler)
//
// Group middleware wraps handlers at registration time, innermost group
// first, so each route carries its full chain in the route table.
type Group struct {
	router      *Router
	prefix      string
	middlewares []MiddlewareFunc
}

// Group returns a route group rooted at the given prefix.
func (r *Router) Group(prefix string) *Group {
	return &Group{router: r, prefix: strings.TrimRight(prefix, "/")}
}

// Group returns a nested group. The child inherits the parent's prefix and
// middleware chain.
func (g *Group) Group(prefix string) *Group {
	child := &Group{
		router: g.router,
		prefix: g.prefix + strings.TrimRight(prefix, "/"),
	}
	child.middlewares = append(child.middlewares, g.middlewares...)
	return child
}

// Use appends middleware applied to every route registered through this
// group afterwards. Routes registered before the Use call are not affected.
func (g *Group) Use(mw ...MiddlewareFunc) *Group {
	g.middlewares = append(g.middlewares, mw...)
	return g
}

// Handle registers a handler under the group prefix. See Router.Register
// for the failure modes.
func (g *Group) Handle(method, pattern string, handler http.Handler) (*Route, error) {
	if handler != nil {
		for i := len(g.middlewares) - 1; i >= 0; i-- {
			handler = g.middlewares[i](handler)
		}
	}
	return g.router.Register(method, g.prefix+pattern, handler)
}

// HandleFunc registers a plain handler function under the group prefix.
func (g *Group) HandleFunc(method, pattern string, f func(http.ResponseWriter, *http.Request)) (*Route, error) {
	return g.Handle(method, pattern, http.HandlerFunc(f))
}

// Get registers a GET handler under the group prefix.
func (g *Group) Get(pattern string, f func(http.ResponseWriter, *http.Request)) (*Route, error) {
	return g.HandleFunc(http.MethodGet, pattern, f)
}

// Post registers a POST handler under the group prefix.
func (g *Group) Post(pattern string, f func(http.ResponseWriter, *http.Request)) (*Route, error) {
	return g.HandleFunc(http.MethodPost, pattern, f)
}

// Put registers a PUT handler under the group prefix.
func (g *Group) Put(pattern string, f func(http.ResponseWriter, *http.Request)) (*Route, error) {
	return g.HandleFunc(http.MethodPut, pattern, f)
}

// Delete registers a DELETE handler under the group prefix.
func (g *Group) Delete(pattern string, f func(http.ResponseWriter, *http.Request)) (*Route, error) {
	return g.HandleFunc(http.MethodDelete, pattern, f)
}

// Patch registers a PATCH handler under the group prefix.
func (g *Group) Patch(pattern string, f func(http.ResponseWriter, *http.Request)) (*Route, error) {
	return g.HandleFunc(http.MethodPatch, pattern, f)
}

// Any registers a handler matching every HTTP method under the group prefix.
func (g *Group) Any(pattern string, f func(http.ResponseWriter, *http.Request)) (*Route, error) {
	return g.HandleFunc(MethodAny, pattern, f)
}
