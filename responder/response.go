package responder

import (
	"errors"
	"net/http"

	"github.com/drblury/apiproblem/jsonutil"
	"github.com/drblury/apiproblem/problem"
)

// HandleAPIError logs err and answers with its problem payload. A status
// code carried by the outermost error wins over status. A nil err writes
// nothing.
func (r *Responder) HandleAPIError(w http.ResponseWriter, req *http.Request, status int, err error, logMsg ...string) {
	if err == nil {
		return
	}

	p := r.NewProblem(req, status, err)
	r.logProblem(req, p, err, logMsg)
	r.RespondWithProblem(w, req, p)
}

// HandleInternalServerError is HandleAPIError with status 500.
func (r *Responder) HandleInternalServerError(w http.ResponseWriter, req *http.Request, err error, logMsg ...string) {
	r.HandleAPIError(w, req, http.StatusInternalServerError, err, logMsg...)
}

// HandleBadRequestError is HandleAPIError with status 400.
func (r *Responder) HandleBadRequestError(w http.ResponseWriter, req *http.Request, err error, logMsg ...string) {
	r.HandleAPIError(w, req, http.StatusBadRequest, err, logMsg...)
}

// HandleUnauthorizedError is HandleAPIError with status 401.
func (r *Responder) HandleUnauthorizedError(w http.ResponseWriter, req *http.Request, err error, logMsg ...string) {
	r.HandleAPIError(w, req, http.StatusUnauthorized, err, logMsg...)
}

// HandleNotFoundError is HandleAPIError with status 404.
func (r *Responder) HandleNotFoundError(w http.ResponseWriter, req *http.Request, err error, logMsg ...string) {
	r.HandleAPIError(w, req, http.StatusNotFound, err, logMsg...)
}

// HandleStatus logs and writes a problem whose detail is plain text, for
// rejections that have no underlying error.
func (r *Responder) HandleStatus(w http.ResponseWriter, req *http.Request, status int, detail string) {
	p := r.newTextProblem(req, status, detail)
	r.logProblem(req, p, nil, nil)
	r.RespondWithProblem(w, req, p)
}

// HandleErrors picks the status for err and hands over to HandleAPIError.
// The classifier decides first; otherwise the first status code found in
// the chain is used, and 500 when there is none.
func (r *Responder) HandleErrors(w http.ResponseWriter, req *http.Request, err error, msgs ...string) {
	if err == nil {
		return
	}

	status := http.StatusInternalServerError
	var coder problem.StatusCoder
	if classified, ok := r.classified(err); ok {
		status = classified
	} else if errors.As(err, &coder) {
		status = coder.HTTPStatus()
	}
	r.HandleAPIError(w, req, status, err, msgs...)
}

func (r *Responder) classified(err error) (int, bool) {
	if r.classify == nil {
		return 0, false
	}
	return r.classify(err)
}

// RespondWithJSON writes v as application/json.
func (r *Responder) RespondWithJSON(w http.ResponseWriter, req *http.Request, status int, v any) {
	r.write(w, req, status, jsonContentType, v)
}

// RespondWithProblem writes p as application/problem+json with its resolved
// status. Nothing is logged.
func (r *Responder) RespondWithProblem(w http.ResponseWriter, req *http.Request, p *problem.Problem) {
	if p == nil {
		return
	}
	r.write(w, req, httpStatus(p), problem.ContentType, p)
}

// write encodes payload followed by a newline. An encoding failure is
// logged and answered with a bare 500.
func (r *Responder) write(w http.ResponseWriter, req *http.Request, status int, contentType string, payload any) {
	if w == nil {
		return
	}

	body, err := jsonutil.Marshal(payload)
	if err != nil {
		r.logger().ErrorContext(requestContext(req), "failed to encode response", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if len(body) == 0 || body[len(body)-1] != '\n' {
		body = append(body, '\n')
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		r.logger().ErrorContext(requestContext(req), "failed to write response", "error", err)
	}
}
