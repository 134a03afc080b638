// Package probe builds readiness and liveness checks from ping functions,
// database/sql style clients, MongoDB clients and HTTP endpoints.
//
// Every failure is a *problem.Error naming the probe in FieldProbe: 503 when
// the dependency misbehaves, 500 when the probe itself is not wired up. The
// info package renders these errors as problem payloads.
package probe
