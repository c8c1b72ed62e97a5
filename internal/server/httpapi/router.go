package httpapi

import (
	"net/http"

	"github.com/dmaia/clipstream/internal/server/metrics"
	"github.com/go-chi/chi/v5"
)

// routes assembles the full route tree. The credential endpoints sit behind
// the per-client rate limiter; everything under the authenticated group
// requires a valid bearer token.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealthz)
	r.Handle("/metrics", metrics.Handler(s.gatherer))

	r.Route("/rpc", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(s.limiter.Middleware())

			r.Post("/auth.signUp", s.handleSignUp)
			r.Post("/auth.signIn", s.handleSignIn)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Get("/auth.me", s.handleMe)

			r.Post("/videos.create", s.handleCreateVideo)
			r.Get("/videos.list", s.handleListVideos)
			r.Get("/videos.get", s.handleGetVideo)
			r.Post("/videos.requestUpload", s.handleRequestUpload)

			r.Post("/shorts.create", s.handleCreateShort)
			r.Get("/shorts.list", s.handleListShorts)
		})
	})

	return r
}
