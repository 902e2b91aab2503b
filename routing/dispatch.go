package routing

import (
	"net/http"
	"path"
	"strings"
	"sync"
)

// MiddlewareFunc is a function which receives an http.Handler and returns
// another http.Handler, wrapping matched handlers with additional behavior.
type MiddlewareFunc func(http.Handler) http.Handler

// Dispatcher adapts a Router to http.Handler. It resolves each incoming
// request, stores the bound variables in the request context and invokes the
// winning handler, or replies 404/405 when resolution fails.
//
//	r := routing.New()
//	r.RegisterFunc(http.MethodGet, "/products/{id:int}", productHandler)
//	http.ListenAndServe(":8080", routing.NewDispatcher(r))
//
// Configure the dispatcher before serving; its fields must not be changed
// once requests are in flight.
type Dispatcher struct {
	// NotFoundHandler is called when no route matches. If nil, a plain
	// 404 per RFC 9110 Section 15.5.5 is written.
	NotFoundHandler http.Handler

	// MethodNotAllowedHandler is called when a route matches the path but
	// not the method. If nil, a plain 405 is written. The Allow header is
	// always set before this handler is invoked, per RFC 9110
	// Section 15.5.6.
	MethodNotAllowedHandler http.Handler

	router      *Router
	middlewares []MiddlewareFunc

	// handlerCache caches the middleware-wrapped handler per route to
	// avoid re-wrapping on every request.
	handlerCache sync.Map // map[*Route]http.Handler

	skipClean bool
}

// NewDispatcher returns a dispatcher serving the given router.
func NewDispatcher(r *Router) *Dispatcher {
	return &Dispatcher{router: r}
}

// Router returns the underlying route table.
func (d *Dispatcher) Router() *Router { return d.router }

// Use appends middleware to the chain. Middleware wraps matched handlers
// only; 404 and 405 responses bypass it.
func (d *Dispatcher) Use(mw ...MiddlewareFunc) {
	d.middlewares = append(d.middlewares, mw...)
}

// SkipClean disables request path normalization. By default the dispatcher
// removes dot segments per RFC 3986 Section 5.2.4 before resolving.
func (d *Dispatcher) SkipClean(value bool) *Dispatcher {
	d.skipClean = value
	return d
}

// ServeHTTP resolves the request and dispatches the matched handler.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	reqPath := req.URL.Path
	if !d.skipClean {
		if cleaned := cleanPath(reqPath); cleaned != reqPath {
			reqPath = cleaned
		}
	}

	m := d.router.Resolve(req.Method, reqPath, req.URL.Query())

	if m.Matched() {
		handler := m.Handler
		if len(d.middlewares) > 0 {
			handler = d.wrapped(m.Route, handler)
		}
		handler.ServeHTTP(w, withMatch(req, m.Route, m.Params))
		return
	}

	if m.Err == ErrMethodMismatch {
		// RFC 9110 Section 15.5.6: a 405 response must carry an Allow
		// header listing the supported methods.
		w.Header().Set("Allow", strings.Join(m.Allowed, ", "))
		if d.MethodNotAllowedHandler != nil {
			d.MethodNotAllowedHandler.ServeHTTP(w, req)
			return
		}
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	if d.NotFoundHandler != nil {
		d.NotFoundHandler.ServeHTTP(w, req)
		return
	}
	http.NotFound(w, req)
}

// wrapped returns the middleware-wrapped handler for the route, building and
// caching it on first use.
func (d *Dispatcher) wrapped(route *Route, handler http.Handler) http.Handler {
	if cached, ok := d.handlerCache.Load(route); ok {
		return cached.(http.Handler)
	}
	for i := len(d.middlewares) - 1; i >= 0; i-- {
		handler = d.middlewares[i](handler)
	}
	actual, _ := d.handlerCache.LoadOrStore(route, handler)
	return actual.(http.Handler)
}

// cleanPath returns the canonical path for p, eliminating . and .. elements
// per RFC 3986 Section 5.2.4 (remove dot segments).
func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	if p[0] != '/' {
		p = "/" + p
	}
	np := path.Clean(p)
	// path.Clean removes the trailing slash except for root; put it back.
	if p[len(p)-1] == '/' && np != "/" {
		np += "/"
	}
	return np
}
