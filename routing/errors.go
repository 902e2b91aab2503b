package routing

import "errors"

// ErrInvalidPattern is returned by Register when a route template cannot be
// parsed: unbalanced braces, an empty variable name, a constraint name that
// is not registered, or a catch-all segment that is not last. Registration
// errors wrap this sentinel, so callers can test with errors.Is.
var ErrInvalidPattern = errors.New("routing: invalid route pattern")

// ErrDuplicateRoute is returned by Register when a template with the same
// method, segment sequence and constraints is already present. The route
// table is left unchanged.
var ErrDuplicateRoute = errors.New("routing: duplicate route")

// ErrInvalidMethod is returned by Register when the method is not a valid
// HTTP method token per RFC 9110 Section 9.1.
var ErrInvalidMethod = errors.New("routing: invalid HTTP method")

// ErrMethodMismatch is set on a Match when the request path matches at least
// one registered template but the request method matches none of them.
// Triggers 405 Method Not Allowed per RFC 9110 Section 15.5.6.
var ErrMethodMismatch = errors.New("routing: method is not allowed")

// ErrNotFound is set on a Match when no registered template matches the
// request path. Triggers 404 Not Found per RFC 9110 Section 15.5.5.
var ErrNotFound = errors.New("routing: no matching route")

// ErrBind is returned by Bind when the target is not a struct pointer or a
// bound variable cannot be converted to the field type.
var ErrBind = errors.New("routing: cannot bind route variables")
