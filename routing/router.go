package routing

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// MethodAny registers a route for every HTTP method. Routes registered under
// MethodAny never contribute to a 405 Allow list: a request that matched an
// ANY template by path has, by definition, matched it by method too.
const MethodAny = "ANY"

// Router owns the registered route table and resolves (method, path) pairs
// to a handler plus extracted variables.
//
// Registration happens once, during a single-threaded setup phase. After the
// last Register call the table is effectively sealed: Resolve never mutates
// it, so it is safe to call concurrently from any number of goroutines
// without locking.
type Router struct {
	routes []*Route
}

// New returns an empty router.
func New() *Router {
	return &Router{}
}

// Route is a registered template. Routes are created by Register and are
// immutable afterwards.
type Route struct {
	method   string
	pattern  string
	segments []segment
	handler  http.Handler
	priority []uint8
	index    int
}

// Method returns the HTTP method the route was registered under.
func (rt *Route) Method() string { return rt.method }

// Pattern returns the original template string.
func (rt *Route) Pattern() string { return rt.pattern }

// Handler returns the handler bound at registration.
func (rt *Route) Handler() http.Handler { return rt.handler }

// Static reports whether the template has no variables.
func (rt *Route) Static() bool {
	for i := range rt.segments {
		if rt.segments[i].kind != segmentLiteral {
			return false
		}
	}
	return true
}

// ParamNames returns the template variable names in order.
func (rt *Route) ParamNames() []string {
	var names []string
	for i := range rt.segments {
		if rt.segments[i].kind != segmentLiteral {
			names = append(names, rt.segments[i].name)
		}
	}
	return names
}

// Match is the outcome of a Resolve call.
//
// Exactly one of three states holds:
//   - Route is non-nil: the request matched, Params carries the bound
//     variables and Err is nil.
//   - Err is ErrMethodMismatch: the path matched under other methods,
//     listed sorted in Allowed.
//   - Err is ErrNotFound: nothing matched.
type Match struct {
	// Route is the winning route, nil when no template matched.
	Route *Route

	// Handler is the handler bound to the winning route.
	Handler http.Handler

	// Params holds path variables merged with query parameters.
	// Path variables win name collisions.
	Params Params

	// Allowed lists the methods that would have matched the path, sorted
	// alphabetically. Populated only when Err is ErrMethodMismatch, for
	// the Allow header required by RFC 9110 Section 15.5.6.
	Allowed []string

	// Err is nil on a match, otherwise ErrMethodMismatch or ErrNotFound.
	Err error
}

// Matched reports whether the resolution bound a route.
func (m *Match) Matched() bool { return m.Route != nil }

// Register parses a pattern, validates it and inserts it into the route
// table. It fails with ErrInvalidPattern for malformed templates, with
// ErrInvalidMethod for a method that is not a valid token, and with
// ErrDuplicateRoute when a structurally identical template is already
// registered under the same method. A failed registration leaves the table
// unchanged.
//
// Register must only be called during the setup phase, before Resolve is in
// use from other goroutines.
func (r *Router) Register(method, pattern string, handler http.Handler) (*Route, error) {
	if handler == nil {
		return nil, fmt.Errorf("%w: nil handler for %s %s", ErrInvalidPattern, method, pattern)
	}

	method = strings.ToUpper(method)
	if !validMethodToken(method) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}

	segments, err := parseTemplate(pattern)
	if err != nil {
		return nil, err
	}

	for _, existing := range r.routes {
		if existing.method == method && structuralEqual(existing.segments, segments) {
			return nil, fmt.Errorf("%w: %s %s conflicts with %s", ErrDuplicateRoute, method, pattern, existing.pattern)
		}
	}

	route := &Route{
		method:   method,
		pattern:  pattern,
		segments: segments,
		handler:  handler,
		priority: priorityOf(segments),
		index:    len(r.routes),
	}
	r.routes = append(r.routes, route)

	return route, nil
}

// RegisterFunc registers a plain handler function. See Register.
func (r *Router) RegisterFunc(method, pattern string, f func(http.ResponseWriter, *http.Request)) (*Route, error) {
	return r.Register(method, pattern, http.HandlerFunc(f))
}

// Resolve matches the request method and path against the route table.
//
// It is a pure function of the table and its inputs: identical calls against
// an unchanged table return identical results, and the table is never
// mutated. Safe for concurrent use once registration is complete.
func (r *Router) Resolve(method, path string, query url.Values) Match {
	method = strings.ToUpper(method)
	segs := splitPath(path)

	var (
		best       *Route
		bestParams Params
	)

	for _, rt := range r.routes {
		if rt.method != method && rt.method != MethodAny {
			continue
		}
		params, ok := rt.match(segs)
		if !ok {
			continue
		}
		if best == nil || moreSpecific(rt, best) {
			best = rt
			bestParams = params
		}
	}

	if best != nil {
		return Match{
			Route:   best,
			Handler: best.handler,
			Params:  mergeQuery(bestParams, query),
		}
	}

	// Cross-method fallback: a path that matches under other methods is a
	// 405 with the Allow set, not a 404.
	var allowed []string
	for _, rt := range r.routes {
		if rt.method == method || rt.method == MethodAny {
			continue
		}
		if _, ok := rt.match(segs); !ok {
			continue
		}
		if !containsString(allowed, rt.method) {
			allowed = append(allowed, rt.method)
		}
	}

	if len(allowed) > 0 {
		sort.Strings(allowed)
		return Match{Allowed: allowed, Err: ErrMethodMismatch}
	}

	return Match{Err: ErrNotFound}
}

// match binds the path segments to the template. Returns the bound path
// variables (nil when the template has none) and whether the template
// matched.
func (rt *Route) match(segs []string) (Params, bool) {
	var params Params
	bind := func(name string, v Value) {
		if params == nil {
			params = make(Params, len(rt.segments))
		}
		params[name] = v
	}

	n := len(rt.segments)
	j := 0

	for i := 0; i < n; i++ {
		seg := &rt.segments[i]

		switch seg.kind {
		case segmentLiteral:
			if j >= len(segs) || segs[j] != seg.literal {
				return nil, false
			}
			j++

		case segmentParam:
			if j >= len(segs) {
				// An optional variable may be absent only as the
				// final template segment, with the path exactly
				// one segment short.
				if seg.optional && i == n-1 {
					return params, true
				}
				return nil, false
			}
			raw := segs[j]
			if raw == "" {
				return nil, false
			}
			if seg.constraint != nil {
				v, ok := seg.constraint.Match(raw)
				if !ok {
					return nil, false
				}
				bind(seg.name, v)
			} else {
				bind(seg.name, stringValue(raw))
			}
			j++

		case segmentCatchAll:
			rest := strings.Join(segs[j:], "/")
			if rest == "" && !seg.optional {
				return nil, false
			}
			bind(seg.name, stringValue(rest))
			j = len(segs)
		}
	}

	if j != len(segs) {
		return nil, false
	}

	return params, true
}

// priorityOf derives the per-segment specificity ranks used to choose among
// templates that match the same path.
func priorityOf(segments []segment) []uint8 {
	ranks := make([]uint8, len(segments))
	for i := range segments {
		ranks[i] = segments[i].rank()
	}
	return ranks
}

// moreSpecific reports whether a outranks b: ranks are compared segment by
// segment; on a shared prefix the shorter template wins; a full tie keeps
// the earlier registration.
func moreSpecific(a, b *Route) bool {
	pa, pb := a.priority, b.priority
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if pa[i] != pb[i] {
			return pa[i] > pb[i]
		}
	}
	if len(pa) != len(pb) {
		return len(pa) < len(pb)
	}
	return a.index < b.index
}

// structuralEqual reports whether two segment sequences match exactly the
// same set of paths. See segment.structuralEqual for the per-segment rule.
func structuralEqual(a, b []segment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].structuralEqual(&b[i]) {
			return false
		}
	}
	return true
}

// mergeQuery folds query parameters into the bound path variables. Query
// values bind as plain strings; a path variable keeps its binding on a name
// collision. The first value wins for repeated query keys.
func mergeQuery(params Params, query url.Values) Params {
	if len(query) == 0 {
		return params
	}
	if params == nil {
		params = make(Params, len(query))
	}
	for key, values := range query {
		if _, bound := params[key]; bound || len(values) == 0 {
			continue
		}
		params[key] = stringValue(values[0])
	}
	return params
}

// splitPath breaks a request path into matchable segments. Leading and
// trailing slashes are not significant: "/" and "" both yield no segments.
func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// validMethodToken reports whether method is MethodAny or a valid HTTP
// method token per RFC 9110 Section 9.1. Token validation is shared with
// header field names (RFC 9110 Section 5.1 uses the same token grammar).
func validMethodToken(method string) bool {
	if method == MethodAny {
		return true
	}
	return httpguts.ValidHeaderFieldName(method)
}

// containsString reports whether the slice contains the value.
func containsString(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
