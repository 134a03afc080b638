// Package router wraps an http.Handler in a default middleware chain: CORS,
// OpenAPI request validation, a request timeout and debug request logging.
//
// Requests the chain rejects are answered with application/problem+json
// payloads rendered by a responder.Responder: validation failures with the
// validator's status, disallowed CORS preflights with 403, timeouts with
// 503. Share the responder of the service through WithResponder so these
// payloads match the ones handlers produce.
package router
