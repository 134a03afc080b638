package responder

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/drblury/apiproblem/jsonutil"
	"github.com/drblury/apiproblem/problem"
)

// FieldContentType names the additional field carrying a rejected media type.
const FieldContentType = "contentType"

// ReadRequestBody decodes the JSON request body into v. On failure it
// responds with a problem and returns false: 415 for a body that is not
// declared as JSON, 400 for a missing or malformed one.
func (r *Responder) ReadRequestBody(w http.ResponseWriter, req *http.Request, v any) bool {
	if err := decodeRequestBody(req, v); err != nil {
		r.HandleErrors(w, req, err, "failed to parse request body")
		return false
	}
	return true
}

// decodeRequestBody accepts a missing Content-Type, application/json and any
// structured +json media type.
func decodeRequestBody(req *http.Request, v any) error {
	if req == nil || req.Body == nil || req.Body == http.NoBody {
		return problem.NewError(http.StatusBadRequest, "request body is required")
	}

	if declared := req.Header.Get("Content-Type"); declared != "" {
		mediaType, _, err := mime.ParseMediaType(declared)
		if err != nil || !isJSONMediaType(mediaType) {
			return problem.Errorf(http.StatusUnsupportedMediaType, "content type %q is not JSON", declared).
				WithAdditionalDetails(map[string]any{FieldContentType: declared})
		}
	}

	if err := jsonutil.Decode(req.Body, v); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return problem.Wrap(err, http.StatusBadRequest, "malformed request body")
	}
	return nil
}

func isJSONMediaType(mediaType string) bool {
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func requestInstance(req *http.Request) string {
	if req == nil || req.URL == nil {
		return ""
	}
	return req.URL.RequestURI()
}

func requestContext(req *http.Request) context.Context {
	if req == nil {
		return context.Background()
	}
	return req.Context()
}
