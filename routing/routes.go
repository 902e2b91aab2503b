package routing

// RouteInfo describes one registered route for introspection: debugging,
// documentation generation and monitoring.
type RouteInfo struct {
	// Method is the HTTP method, or "ANY".
	Method string

	// Pattern is the original template string.
	Pattern string

	// Params lists the template variable names in order.
	Params []string

	// Constraints maps variable names to their constraint expression
	// (e.g. "int", "range(1,10)"). Unconstrained variables are absent.
	Constraints map[string]string

	// Static reports whether the template has no variables.
	Static bool
}

// Routes returns a snapshot of the route table in registration order.
func (r *Router) Routes() []RouteInfo {
	infos := make([]RouteInfo, 0, len(r.routes))
	for _, rt := range r.routes {
		info := RouteInfo{
			Method:  rt.method,
			Pattern: rt.pattern,
			Params:  rt.ParamNames(),
			Static:  rt.Static(),
		}
		for i := range rt.segments {
			seg := &rt.segments[i]
			if seg.constraintSpec == "" {
				continue
			}
			if info.Constraints == nil {
				info.Constraints = make(map[string]string)
			}
			info.Constraints[seg.name] = seg.constraintSpec
		}
		infos = append(infos, info)
	}
	return infos
}
