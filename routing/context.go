package routing

import (
	"context"
	"net/http"
)

// matchContextKey is an unexported type for the single context key.
type matchContextKey struct{}

// ctxKey is the single context key used to store the resolved match.
var ctxKey = matchContextKey{}

// matchContext holds the winning route and bound variables for a dispatched
// request.
type matchContext struct {
	route  *Route
	params Params
}

// ParamsFrom returns the variables bound for the current request, if any.
// This only works inside a handler dispatched through a Dispatcher.
func ParamsFrom(r *http.Request) Params {
	if mc, ok := r.Context().Value(ctxKey).(*matchContext); ok {
		return mc.params
	}
	return nil
}

// Param returns a single bound variable by name and whether it exists.
func Param(r *http.Request, name string) (Value, bool) {
	if mc, ok := r.Context().Value(ctxKey).(*matchContext); ok && mc.params != nil {
		v, exists := mc.params[name]
		return v, exists
	}
	return Value{}, false
}

// CurrentRoute returns the route matched for the current request, if any.
func CurrentRoute(r *http.Request) *Route {
	if mc, ok := r.Context().Value(ctxKey).(*matchContext); ok {
		return mc.route
	}
	return nil
}

// WithParams returns a copy of the request carrying the given variables.
// This is intended for testing handlers outside of a Dispatcher.
func WithParams(r *http.Request, params Params) *http.Request {
	var route *Route
	if mc, ok := r.Context().Value(ctxKey).(*matchContext); ok {
		route = mc.route
	}
	return withMatch(r, route, params)
}

// withMatch stores the route and variables in the request context using a
// single WithContext call.
func withMatch(r *http.Request, route *Route, params Params) *http.Request {
	mc := &matchContext{route: route, params: params}
	ctx := context.WithValue(r.Context(), ctxKey, mc)
	return r.WithContext(ctx)
}
