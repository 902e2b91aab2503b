package routinghandlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethodOverrideMiddleware(t *testing.T) {
	captureMethod := func(dst *string) http.Handler {
		return http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			*dst = r.Method
		})
	}

	t.Run("overrides POST with allowed method", func(t *testing.T) {
		mw, err := MethodOverrideMiddleware(MethodOverrideConfig{})
		require.NoError(t, err)

		var method string
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("X-HTTP-Method-Override", "delete")

		mw(captureMethod(&method)).ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, http.MethodDelete, method)
		assert.Empty(t, req.Header.Get("X-HTTP-Method-Override"))
	})

	t.Run("ignores override on non-POST by default", func(t *testing.T) {
		mw, err := MethodOverrideMiddleware(MethodOverrideConfig{})
		require.NoError(t, err)

		var method string
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-HTTP-Method-Override", "DELETE")

		mw(captureMethod(&method)).ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, http.MethodGet, method)
	})

	t.Run("ignores disallowed override methods", func(t *testing.T) {
		mw, err := MethodOverrideMiddleware(MethodOverrideConfig{})
		require.NoError(t, err)

		var method string
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("X-HTTP-Method-Override", "CONNECT")

		mw(captureMethod(&method)).ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, http.MethodPost, method)
	})

	t.Run("first non-empty header wins", func(t *testing.T) {
		mw, err := MethodOverrideMiddleware(MethodOverrideConfig{})
		require.NoError(t, err)

		var method string
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("X-Method-Override", "PUT")
		req.Header.Set("X-HTTP-Method", "PATCH")

		mw(captureMethod(&method)).ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, http.MethodPut, method)
	})

	t.Run("rejects invalid configured methods", func(t *testing.T) {
		_, err := MethodOverrideMiddleware(MethodOverrideConfig{
			AllowedMethods: []string{"put"},
		})
		assert.ErrorIs(t, err, ErrInvalidOverrideMethod)

		_, err = MethodOverrideMiddleware(MethodOverrideConfig{
			OriginalMethods: []string{"PO ST"},
		})
		assert.ErrorIs(t, err, ErrInvalidOverrideMethod)
	})
}
