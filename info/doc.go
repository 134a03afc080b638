// Package info exposes build metadata, health probes, and the OpenAPI
// document of a service. Failing probes and missing documents are answered
// with application/problem+json payloads rendered by the responder.
//
// NewOpenAPIDocument describes the endpoints mounted by InfoHandler.Mount,
// including the shared Problem schema, so the same document can drive
// request validation in the router package.
//
// See ExampleInfoHandler_full for a runnable wiring of the handler and probes.
package info
