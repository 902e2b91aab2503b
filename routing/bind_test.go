package routing

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindRequest(t *testing.T, params Params) *http.Request {
	t.Helper()
	return WithParams(httptest.NewRequest(http.MethodGet, "/", nil), params)
}

func TestBind(t *testing.T) {
	t.Run("binds typed and raw variables", func(t *testing.T) {
		req := bindRequest(t, Params{
			"id":   intValue("42", 42),
			"tag":  stringValue("go"),
			"page": stringValue("3"),
		})

		var in struct {
			ID   int64  `route:"id"`
			Tag  string `route:"tag"`
			Page int
		}
		require.NoError(t, Bind(req, &in))
		assert.Equal(t, int64(42), in.ID)
		assert.Equal(t, "go", in.Tag)
		assert.Equal(t, 3, in.Page)
	})

	t.Run("binds uuid and time fields", func(t *testing.T) {
		u := uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")
		req := bindRequest(t, Params{
			"owner": uuidValue(u.String(), u),
			"since": stringValue("2024-01-15T10:30:00Z"),
		})

		var in struct {
			Owner uuid.UUID `route:"owner"`
			Since time.Time `route:"since"`
		}
		require.NoError(t, Bind(req, &in))
		assert.Equal(t, u, in.Owner)
		assert.Equal(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), in.Since)
	})

	t.Run("absent variable leaves the zero value", func(t *testing.T) {
		req := bindRequest(t, Params{"id": intValue("1", 1)})

		var in struct {
			ID    int64  `route:"id"`
			Month string `route:"month"`
		}
		require.NoError(t, Bind(req, &in))
		assert.Equal(t, "", in.Month)
	})

	t.Run("skips dash-tagged and unexported fields", func(t *testing.T) {
		req := bindRequest(t, Params{"id": intValue("1", 1), "skip": stringValue("x")})

		var in struct {
			ID   int64  `route:"id"`
			Skip string `route:"-"`
		}
		require.NoError(t, Bind(req, &in))
		assert.Equal(t, "", in.Skip)
	})

	t.Run("reports unparseable values", func(t *testing.T) {
		req := bindRequest(t, Params{"id": stringValue("abc")})

		var in struct {
			ID int64 `route:"id"`
		}
		assert.ErrorIs(t, Bind(req, &in), ErrBind)
	})

	t.Run("reports overflow", func(t *testing.T) {
		req := bindRequest(t, Params{"id": intValue("300", 300)})

		var in struct {
			ID int8 `route:"id"`
		}
		assert.ErrorIs(t, Bind(req, &in), ErrBind)
	})

	t.Run("rejects non-struct targets", func(t *testing.T) {
		req := bindRequest(t, Params{})

		var n int
		assert.ErrorIs(t, Bind(req, &n), ErrBind)
		assert.ErrorIs(t, Bind(req, nil), ErrBind)
	})

	t.Run("binds through a dispatcher", func(t *testing.T) {
		r := New()
		_, err := r.RegisterFunc(http.MethodGet, "/products/{id:int}", func(w http.ResponseWriter, req *http.Request) {
			var in struct {
				ID   int64 `route:"id"`
				Page int
			}
			require.NoError(t, Bind(req, &in))
			assert.Equal(t, int64(7), in.ID)
			assert.Equal(t, 2, in.Page)
			w.WriteHeader(http.StatusNoContent)
		})
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		NewDispatcher(r).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/7?page=2", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteJSON(rec, http.StatusCreated, map[string]string{"status": "created"}))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"created"}`, rec.Body.String())
}
