// Package routing implements a deterministic request router: a registered
// set of route templates is resolved against incoming (method, path) pairs,
// selecting exactly one handler and extracting typed variables, or reporting
// a well-defined non-match outcome.
//
// The package implements routing semantics based on:
//   - RFC 9110 (HTTP Semantics)
//   - RFC 3986 (URIs)
//   - RFC 9562 (UUIDs, for the guid/uuid constraints)
//
// # Templates
//
// Routes are registered from template strings. Each /-delimited segment is
// either literal text or a single variable expression:
//
//	r := routing.New()
//	r.RegisterFunc(http.MethodGet, "/api/products/{id:int}", productHandler)
//	r.RegisterFunc(http.MethodGet, "/files/{*path}", fileHandler)
//	r.RegisterFunc(http.MethodGet, "/reports/{year:int}/{month:int?}", reportHandler)
//
// Variable forms:
//
//	{name}           required variable, matches any non-empty segment
//	{name?}          optional variable (meaningful on the last segment)
//	{name:spec}      constrained variable
//	{name:spec(a)}   constrained variable with argument
//	{*name}          catch-all, binds the remaining segments slash-joined
//	{*name?}         catch-all that also matches an empty remainder
//
// # Constraints
//
// A constraint both validates the raw segment and, where applicable,
// converts it to a typed value:
//
//	int, long        integer (32/64-bit), binds as KindInt
//	bool             "true" or "false", binds as KindBool
//	float, double, decimal
//	                 decimal number, binds as KindFloat
//	guid, uuid       RFC 9562 UUID, binds as KindUUID
//	datetime, date   RFC 3339 date-time / date, binds as KindTime
//	alpha, hex, slug text shapes, bind as KindString
//	min(n), max(n), range(lo,hi)
//	                 bounded integer, binds as KindInt
//	minlength(n), maxlength(n), length(n)
//	                 length-checked text, binds as KindString
//	regex(pattern)   anchored regular expression, binds as KindString
//
// Custom constraints are added with RegisterConstraint before registering
// templates that use them.
//
// # Resolution
//
// Resolve returns a Match carrying one of three outcomes: a winning route
// with bound variables, ErrMethodMismatch with the sorted Allow set, or
// ErrNotFound. When several templates match one path, the winner is the most
// specific: literal segments rank above constrained variables, which rank
// above unconstrained variables, which rank above catch-alls; remaining ties
// keep the first-registered template.
//
// Registration is a single-threaded setup phase; after it completes the
// table is read-only and Resolve is safe for unlimited concurrent use.
//
// # Dispatching
//
// Dispatcher adapts a Router to http.Handler, storing bound variables in the
// request context and answering 404/405 (with the Allow header) on
// non-matches:
//
//	d := routing.NewDispatcher(r)
//	http.ListenAndServe(":8080", d)
//
// Inside handlers, variables are read back with Param or ParamsFrom:
//
//	id, _ := routing.Param(req, "id")
//	n, ok := id.Int()
//
// Groups register routes under a shared, possibly parameterized prefix with
// per-group middleware. See Group.
package routing
