// Package introspect exposes a router's registered route table for
// debugging and documentation: as a plain Report value, or served over the
// router itself as JSON and YAML endpoints.
package introspect

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/strada-dev/strada/routing"
	"gopkg.in/yaml.v3"
)

// Report is a serializable snapshot of a route table.
type Report struct {
	// Routes lists the registered routes in registration order.
	Routes []RouteEntry `json:"routes" yaml:"routes"`
}

// RouteEntry describes one registered route.
type RouteEntry struct {
	Method      string            `json:"method" yaml:"method"`
	Pattern     string            `json:"pattern" yaml:"pattern"`
	Params      []string          `json:"params,omitempty" yaml:"params,omitempty"`
	Constraints map[string]string `json:"constraints,omitempty" yaml:"constraints,omitempty"`
	Static      bool              `json:"static" yaml:"static"`
}

// Build snapshots the route table of the given router.
func Build(r *routing.Router) Report {
	infos := r.Routes()
	report := Report{Routes: make([]RouteEntry, 0, len(infos))}
	for _, info := range infos {
		report.Routes = append(report.Routes, RouteEntry{
			Method:      info.Method,
			Pattern:     info.Pattern,
			Params:      info.Params,
			Constraints: info.Constraints,
			Static:      info.Static,
		})
	}
	return report
}

// HandleConfig configures the endpoints registered by Handle.
type HandleConfig struct {
	// JSONFilename is the path for the JSON endpoint, relative to the
	// base path (default: "routes.json"). Set to "-" to disable.
	JSONFilename string

	// YAMLFilename is the path for the YAML endpoint, relative to the
	// base path (default: "routes.yaml"). Set to "-" to disable.
	YAMLFilename string
}

func (cfg HandleConfig) jsonFilename() string {
	if cfg.JSONFilename == "" {
		return "routes.json"
	}
	return cfg.JSONFilename
}

func (cfg HandleConfig) yamlFilename() string {
	if cfg.YAMLFilename == "" {
		return "routes.yaml"
	}
	return cfg.YAMLFilename
}

// Handle registers the report endpoints under the given base path:
//
//	<basePath>/routes.json
//	<basePath>/routes.yaml
//
// The config parameter is optional; pass nil for defaults. The report is
// built once, on first request, so it reflects every route registered
// before the router starts serving, including routes registered after the
// Handle call itself.
func Handle(r *routing.Router, basePath string, cfg *HandleConfig) error {
	if cfg == nil {
		cfg = &HandleConfig{}
	}
	basePath = strings.TrimRight(basePath, "/")

	var (
		once   sync.Once
		report Report
	)
	build := func() Report {
		once.Do(func() { report = Build(r) })
		return report
	}

	if name := cfg.jsonFilename(); name != "-" {
		_, err := r.RegisterFunc(http.MethodGet, basePath+"/"+name, func(w http.ResponseWriter, _ *http.Request) {
			data, err := json.MarshalIndent(build(), "", "  ")
			if err != nil {
				http.Error(w, "failed to serialize route report as JSON", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(data)
		})
		if err != nil {
			return err
		}
	}

	if name := cfg.yamlFilename(); name != "-" {
		_, err := r.RegisterFunc(http.MethodGet, basePath+"/"+name, func(w http.ResponseWriter, _ *http.Request) {
			data, err := yaml.Marshal(build())
			if err != nil {
				http.Error(w, "failed to serialize route report as YAML", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/x-yaml")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(data)
		})
		if err != nil {
			return err
		}
	}

	return nil
}
