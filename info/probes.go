package info

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"

	"github.com/drblury/apiproblem/problem"
)

type probePayload struct {
	Status  string   `json:"status"`
	Details []string `json:"details,omitempty"`
}

func (ih *InfoHandler) respondProbe(w http.ResponseWriter, r *http.Request, statusCode int, state string, details ...string) {
	ih.RespondWithJSON(w, r, statusCode, probePayload{Status: state, Details: slices.Clone(details)})
}

// runChecks runs checks in order under one shared deadline and stops at the
// first failure. The returned error carries status 503; the fields of the
// probe's own problem error stay reachable through the chain.
func (ih *InfoHandler) runChecks(ctx context.Context, checks []ProbeFunc) error {
	if len(checks) == 0 {
		return nil
	}

	timeout := ih.timeout
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for i, check := range checks {
		if check == nil {
			continue
		}
		err := check(ctx)
		if err == nil {
			continue
		}

		n := i + 1
		msg := fmt.Sprintf("probe %d failed", n)
		if errors.Is(err, context.DeadlineExceeded) {
			msg = fmt.Sprintf("probe %d timed out after %s", n, timeout)
		} else if errors.Is(err, context.Canceled) {
			msg = fmt.Sprintf("probe %d was cancelled", n)
		}
		return problem.Wrap(err, http.StatusServiceUnavailable, msg)
	}
	return nil
}

// filterProbes drops nil checks. The result is nil when nothing remains.
func filterProbes(checks []ProbeFunc) []ProbeFunc {
	var kept []ProbeFunc
	for _, check := range checks {
		if check != nil {
			kept = append(kept, check)
		}
	}
	return kept
}
