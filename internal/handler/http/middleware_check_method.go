package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod is registered as the router's MethodNotAllowed handler.
//
// A request whose path exists only under other methods is answered with
// 404 in the usual JSON envelope instead of chi's 405, so callers cannot
// tell which methods a route accepts. Matching goes through chi itself,
// so parameterised routes such as /api/documents/{id} are covered too.
func CheckHTTPMethod(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if router.Match(chi.NewRouteContext(), r.Method, r.URL.Path) {
			router.ServeHTTP(w, r)
			return
		}

		routeNotFound(w, r)
	}
}

// routeNotFound writes the 404 envelope for unknown routes.
func routeNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, "routeNotFound", fmt.Errorf("%w: %s %s", ErrRouteNotFound, r.Method, r.URL.Path))
}
