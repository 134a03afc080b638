// Package apiproblem renders Go errors as RFC 7807 problem documents
// (application/problem+json) and wires them into HTTP services.
//
// The problem package holds the payload itself: status validation, title
// resolution from the status table or the error type, detail derived from an
// error together with its stack trace and cause chain, and case-insensitive
// member lookup. Errors can opt into richer payloads by implementing
// problem.StatusCoder or problem.ProblemAware, or by using problem.Error.
//
// # Packages
//
//   - problem: the payload, its serialization and the problem-aware error type.
//   - responder: renders errors as problems with an instance, a ULID trace id
//     and a timestamp, and logs them through slog.
//   - router: http.ServeMux with OpenAPI validation, CORS, timeouts and request
//     logging; validation failures and timeouts become problems too.
//   - info: status, health, readiness, version and OpenAPI endpoints.
//   - probe: adapters that turn database pings, HTTP checks or closures into
//     readiness checks failing with 503 problems.
//   - jsonutil: thin sonic wrappers used for every payload.
//
// # Quick Start
//
//	resp := responder.NewResponder(
//	    responder.WithLogger(logger),
//	    responder.WithStackTraces(isDevelopment),
//	)
//
//	mux := http.NewServeMux()
//	mux.HandleFunc("GET /orders/{id}", func(w http.ResponseWriter, r *http.Request) {
//	    order, err := store.Find(r.Context(), r.PathValue("id"))
//	    if errors.Is(err, ErrNotFound) {
//	        resp.HandleNotFoundError(w, r, err)
//	        return
//	    }
//	    if err != nil {
//	        resp.HandleErrors(w, r, err)
//	        return
//	    }
//	    resp.RespondWithJSON(w, r, http.StatusOK, order)
//	})
//
// Sharing the responder between handlers, the info endpoints and the router
// keeps every error body in the same shape.
package apiproblem
