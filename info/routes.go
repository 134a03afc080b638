package info

import (
	"net/http"
	"strings"
)

// Probe states reported in the status field of a successful probe.
const (
	StateHealthy = "HEALTHY"
	StateAlive   = "ok"
	StateReady   = "ready"
)

// GetStatus always answers 200. It runs no checks.
func (ih *InfoHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ih.respondProbe(w, r, http.StatusOK, StateHealthy)
}

// GetHealthz runs the liveness checks. The first failure is answered with a
// 503 problem.
func (ih *InfoHandler) GetHealthz(w http.ResponseWriter, r *http.Request) {
	ih.serveChecks(w, r, ih.liveness, StateAlive, "liveness probe failed")
}

// GetReadyz runs the readiness checks. The first failure is answered with a
// 503 problem.
func (ih *InfoHandler) GetReadyz(w http.ResponseWriter, r *http.Request) {
	ih.serveChecks(w, r, ih.readiness, StateReady, "readiness probe failed")
}

func (ih *InfoHandler) serveChecks(w http.ResponseWriter, r *http.Request, checks []ProbeFunc, state, logMsg string) {
	if err := ih.runChecks(r.Context(), checks); err != nil {
		ih.HandleAPIError(w, r, http.StatusServiceUnavailable, err, logMsg)
		return
	}
	ih.respondProbe(w, r, http.StatusOK, state)
}

// GetVersion answers with the InfoProvider payload, {} when it returns nil.
func (ih *InfoHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	payload := ih.version()
	if payload == nil {
		payload = map[string]string{}
	}
	ih.RespondWithJSON(w, r, http.StatusOK, payload)
}

// GetOpenAPIJSON writes the document as is. A provider error becomes a 500
// problem.
func (ih *InfoHandler) GetOpenAPIJSON(w http.ResponseWriter, r *http.Request) {
	doc, err := ih.document()
	if err != nil {
		ih.HandleInternalServerError(w, r, err, "failed to load openapi document")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(doc); err != nil {
		ih.Logger().ErrorContext(r.Context(), "failed to write openapi document", "error", err)
	}
}

// Mount registers the info endpoints on mux below prefix, for example
// "/info" yields GET /info/status. An empty prefix mounts them at the root.
func (ih *InfoHandler) Mount(mux *http.ServeMux, prefix string) {
	prefix = strings.TrimRight(prefix, "/")
	for path, handler := range map[string]http.HandlerFunc{
		PathStatus:  ih.GetStatus,
		PathHealthz: ih.GetHealthz,
		PathReadyz:  ih.GetReadyz,
		PathVersion: ih.GetVersion,
		PathOpenAPI: ih.GetOpenAPIJSON,
	} {
		mux.HandleFunc(http.MethodGet+" "+prefix+path, handler)
	}
}
