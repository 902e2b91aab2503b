package routinghandlers

import (
	"net/http"
	"runtime/debug"

	"github.com/strada-dev/strada/routing"
)

// RecoveryConfig configures the Recovery middleware behaviour.
type RecoveryConfig struct {
	// LogFunc is an optional callback invoked with the request, the
	// recovered value and, when CaptureStack is set, the goroutine stack
	// at the point of the panic. When nil, no logging is performed.
	LogFunc func(r *http.Request, err any, stack []byte)

	// CaptureStack includes the goroutine stack in the LogFunc call.
	CaptureStack bool
}

// RecoveryMiddleware returns a middleware that recovers from panics in
// downstream handlers. When a panic occurs it returns 500 Internal Server
// Error to the client and optionally invokes LogFunc.
//
// http.ErrAbortHandler is re-panicked: it is the net/http mechanism for
// aborting a response and must reach the server loop.
func RecoveryMiddleware(cfg RecoveryConfig) routing.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				err := recover()
				if err == nil {
					return
				}
				if err == http.ErrAbortHandler {
					panic(err)
				}

				if cfg.LogFunc != nil {
					var stack []byte
					if cfg.CaptureStack {
						stack = debug.Stack()
					}
					cfg.LogFunc(r, err, stack)
				}

				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
