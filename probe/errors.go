package probe

import (
	"context"
	"net/http"

	"github.com/drblury/apiproblem/problem"
)

// Additional problem fields set on probe failures.
const (
	// FieldProbe names the failed probe.
	FieldProbe = "probe"
	// FieldUpstreamStatus holds the status an HTTP probe did not accept.
	FieldUpstreamStatus = "upstreamStatus"
)

// misconfigured reports a probe that cannot run at all. The service is
// wired wrongly, hence 500.
func misconfigured(name string, cause error, msg string) *problem.Error {
	var err *problem.Error
	if cause == nil {
		err = problem.NewError(http.StatusInternalServerError, msg)
	} else {
		err = problem.Wrap(cause, http.StatusInternalServerError, msg)
	}
	return err.WithAdditionalDetails(map[string]any{FieldProbe: name})
}

// unavailable reports a dependency that answered badly or not at all.
func unavailable(name string, cause error, msg string) *problem.Error {
	return problem.Wrap(cause, http.StatusServiceUnavailable, msg).
		WithAdditionalDetails(map[string]any{FieldProbe: name})
}

func broken(name, component string) Func {
	return func(_ context.Context) error {
		return misconfigured(name, nil, name+" probe: "+component+" is nil")
	}
}
