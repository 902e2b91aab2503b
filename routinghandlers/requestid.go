package routinghandlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/strada-dev/strada/routing"
)

type requestIDKey struct{}

// maxIncomingIDLength caps the length of client-supplied request IDs
// accepted with TrustIncoming.
const maxIncomingIDLength = 128

// RequestIDFromContext returns the request ID stored in the context by
// RequestIDMiddleware. Returns an empty string if no ID is present.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}

	return ""
}

// RequestIDConfig configures the Request ID middleware behaviour.
type RequestIDConfig struct {
	// HeaderName overrides the header used to propagate the request ID.
	// Defaults to "X-Request-ID" when empty.
	HeaderName string

	// GenerateFunc is an optional callback that returns a new unique ID.
	// Defaults to NewUUIDv7: time-ordered IDs sort in arrival order in
	// logs and traces.
	GenerateFunc func(r *http.Request) string

	// TrustIncoming, when true, reuses a well-formed request ID from the
	// incoming request header instead of generating a new one. Incoming
	// IDs longer than 128 bytes or containing non-printable characters
	// are discarded and replaced.
	TrustIncoming bool

	// EchoRouteHeader, when non-empty, names a response header set to the
	// matched route template (e.g. "/users/{id:int}"). Together with the
	// request ID this tags every response with a stable, low-cardinality
	// route label for log correlation. Requires dispatching through a
	// routing.Dispatcher; without a matched route the header is not set.
	EchoRouteHeader string
}

func (cfg RequestIDConfig) headerName() string {
	if cfg.HeaderName == "" {
		return "X-Request-ID"
	}
	return cfg.HeaderName
}

// resolveID returns the ID for the request: the trusted incoming header
// value when configured and well-formed, otherwise a freshly generated one.
func (cfg RequestIDConfig) resolveID(r *http.Request) string {
	if cfg.TrustIncoming {
		if id := r.Header.Get(cfg.headerName()); validIncomingID(id) {
			return id
		}
	}

	if cfg.GenerateFunc != nil {
		return cfg.GenerateFunc(r)
	}

	return NewUUIDv7(r)
}

// RequestIDMiddleware returns a middleware that tags every request and
// response with a unique ID. The ID is set on the request header (for
// downstream handlers), the response header (for the caller) and the request
// context (for RequestIDFromContext).
func RequestIDMiddleware(cfg RequestIDConfig) routing.MiddlewareFunc {
	header := cfg.headerName()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id := cfg.resolveID(r); id != "" {
				r.Header.Set(header, id)
				w.Header().Set(header, id)
				r = r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id))
			}

			if cfg.EchoRouteHeader != "" {
				if rt := routing.CurrentRoute(r); rt != nil {
					w.Header().Set(cfg.EchoRouteHeader, rt.Pattern())
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// validIncomingID reports whether a client-supplied ID is safe to propagate
// into logs and response headers: non-empty, bounded and printable ASCII.
func validIncomingID(id string) bool {
	if id == "" || len(id) > maxIncomingIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}
	return true
}

// NewUUIDv4 returns a new random UUID string per RFC 9562 Section 5.4.
func NewUUIDv4(_ *http.Request) string {
	return uuid.New().String()
}

// NewUUIDv7 returns a new time-ordered UUID string per RFC 9562 Section 5.7.
// IDs generated later sort lexicographically after earlier ones.
func NewUUIDv7(_ *http.Request) string {
	return uuid.Must(uuid.NewV7()).String()
}
