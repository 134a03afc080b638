package router

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/drblury/apiproblem/responder"
)

type corsPolicy struct {
	origins     []string
	methods     string
	headers     string
	credentials bool
	problems    *responder.Responder
}

func newCORSPolicy(cfg CORSConfig, problems *responder.Responder) *corsPolicy {
	return &corsPolicy{
		origins:     cloneStrings(cfg.Origins),
		methods:     strings.Join(cfg.Methods, ","),
		headers:     strings.Join(cfg.Headers, ","),
		credentials: cfg.AllowCredentials,
		problems:    problems,
	}
}

func (p *corsPolicy) allows(origin string) bool {
	return slices.Contains(p.origins, "*") || slices.Contains(p.origins, origin)
}

// middleware answers preflight requests itself. A preflight from an origin
// that is not allowed receives a 403 problem; other requests from such
// origins pass through without CORS headers.
func (p *corsPolicy) middleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			allowed := p.allows(origin)
			if allowed {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}

			if r.Method != http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				p.problems.HandleStatus(w, r, http.StatusForbidden, fmt.Sprintf("origin %q is not allowed", origin))
				return
			}

			w.Header().Set("Access-Control-Allow-Methods", p.methods)
			w.Header().Set("Access-Control-Allow-Headers", p.headers)
			if p.credentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			w.WriteHeader(http.StatusOK)
		})
	}
}
