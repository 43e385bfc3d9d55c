package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/storeconsole/internal/api"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router builds the API routes. Only the summary requires a bearer token.
func (s *HTTPServer) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Post(api.PathLogin, s.login)
	r.Get(api.PathPing, s.ping)

	r.Group(func(r chi.Router) {
		r.Use(s.requireToken)
		r.Get(api.PathSummary, s.summary)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}
