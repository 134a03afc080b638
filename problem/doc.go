// Package problem builds problem details payloads for HTTP APIs.
//
// A Problem is created from a status, a detail and optional type, title and
// additional fields. The detail is either literal text (Text) or an error
// (FromError, Structured). Errors contribute their own status code and, when
// they implement ProblemAware, their own type, title and additional fields.
//
//	p := problem.New(http.StatusNotFound, problem.Text("order 42 does not exist"))
//	body, _ := p.MarshalJSON()
//	// {"detail":"order 42 does not exist","status":404,"title":"Not Found","type":"http://www.w3.org/Protocols/rfc2616/rfc2616-sec10.html"}
//
// Status, title and detail are resolved when the payload is read, so the
// stack trace switch may be flipped after construction:
//
//	err := problem.NewError(http.StatusConflict, "order already shipped").
//		WithTitle("Order locked").
//		WithAdditionalDetails(map[string]any{"order": 42})
//	p := problem.New(http.StatusInternalServerError, problem.FromError(err)).
//		SetIncludeStackTrace(true)
//	payload := p.ToMap() // status 409, title "Order locked", order 42, trace
//
// Converting a payload into an HTTP response is left to the responder
// package.
package problem
