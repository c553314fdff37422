// Package http implements the HTTP transport layer of the sync server.
// It provides the router, middleware, and route handlers for the REST
// API. Tracing, request logging, timeouts, secret-key authentication,
// and per-key rate limiting are all handled at this layer before
// requests are forwarded to the service layer.
package http
