package introspect

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/strada-dev/strada/routing"
)

func newTestRouter(t *testing.T) *routing.Router {
	t.Helper()

	r := routing.New()
	h := func(_ http.ResponseWriter, _ *http.Request) {}

	_, err := r.RegisterFunc(http.MethodGet, "/api/products", h)
	require.NoError(t, err)
	_, err = r.RegisterFunc(http.MethodGet, "/api/products/{id:int}", h)
	require.NoError(t, err)
	_, err = r.RegisterFunc(http.MethodGet, "/files/{*path}", h)
	require.NoError(t, err)

	return r
}

func TestBuild(t *testing.T) {
	report := Build(newTestRouter(t))

	require.Len(t, report.Routes, 3)

	assert.Equal(t, "/api/products", report.Routes[0].Pattern)
	assert.True(t, report.Routes[0].Static)

	assert.Equal(t, []string{"id"}, report.Routes[1].Params)
	assert.Equal(t, map[string]string{"id": "int"}, report.Routes[1].Constraints)

	assert.Equal(t, []string{"path"}, report.Routes[2].Params)
	assert.False(t, report.Routes[2].Static)
}

func TestHandle(t *testing.T) {
	t.Run("serves JSON report", func(t *testing.T) {
		r := newTestRouter(t)
		require.NoError(t, Handle(r, "/_debug", nil))

		rec := httptest.NewRecorder()
		routing.NewDispatcher(r).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/_debug/routes.json", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var report Report
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		// The report includes the introspection routes themselves.
		assert.Len(t, report.Routes, 5)
	})

	t.Run("serves YAML report", func(t *testing.T) {
		r := newTestRouter(t)
		require.NoError(t, Handle(r, "/_debug", nil))

		rec := httptest.NewRecorder()
		routing.NewDispatcher(r).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/_debug/routes.yaml", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/x-yaml", rec.Header().Get("Content-Type"))

		var report Report
		require.NoError(t, yaml.Unmarshal(rec.Body.Bytes(), &report))
		assert.Len(t, report.Routes, 5)
	})

	t.Run("disables endpoints individually", func(t *testing.T) {
		r := newTestRouter(t)
		require.NoError(t, Handle(r, "/_debug", &HandleConfig{YAMLFilename: "-"}))

		rec := httptest.NewRecorder()
		routing.NewDispatcher(r).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/_debug/routes.yaml", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("custom filenames", func(t *testing.T) {
		r := newTestRouter(t)
		require.NoError(t, Handle(r, "/_debug", &HandleConfig{JSONFilename: "table.json", YAMLFilename: "-"}))

		rec := httptest.NewRecorder()
		routing.NewDispatcher(r).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/_debug/table.json", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("report is built once", func(t *testing.T) {
		r := newTestRouter(t)
		require.NoError(t, Handle(r, "/_debug", &HandleConfig{YAMLFilename: "-"}))

		d := routing.NewDispatcher(r)

		rec := httptest.NewRecorder()
		d.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/_debug/routes.json", nil))
		first := rec.Body.String()

		rec = httptest.NewRecorder()
		d.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/_debug/routes.json", nil))
		assert.Equal(t, first, rec.Body.String())
	})
}
