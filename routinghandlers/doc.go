// Package routinghandlers provides middleware for routing.Dispatcher: an
// explicit, ordered list of request-processing stages composed around the
// matched handler.
//
//	d := routing.NewDispatcher(r)
//	d.Use(
//	    routinghandlers.RequestIDMiddleware(routinghandlers.RequestIDConfig{}),
//	    routinghandlers.RecoveryMiddleware(routinghandlers.RecoveryConfig{}),
//	)
//
// Each middleware is configured through a Config struct with zero-value
// defaults, and returns a routing.MiddlewareFunc.
package routinghandlers
