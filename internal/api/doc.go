// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It acts as an adapter between external clients
// and the internal application services, translating HTTP concerns to
// business operations.
//
// Handlers forward service results as they are; error values are mapped to
// status codes by MapErrorToStatusCode and logged in redacted form.
package api
