package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/languagesphere/server/internal/webutil"
)

const requestTimeout = 60 * time.Second

// Router builds the HTTP route tree with the shared middleware stack.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/health", webutil.MakeHandler(s.logger, s.handleHealth))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", webutil.MakeHandler(s.logger, s.handleRegister))
		r.Post("/login", webutil.MakeHandler(s.logger, s.handleLogin))

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate(false))
			r.Get("/me", webutil.MakeHandler(s.logger, s.handleMe))
		})
	})

	r.Route("/payment", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(s.authenticate(false))
			r.Post("/verify", webutil.MakeHandler(s.logger, s.handleVerifyPayment))
			r.Get("/status", webutil.MakeHandler(s.logger, s.handlePaymentStatus))
			r.Get("/pdf-url", webutil.MakeHandler(s.logger, s.handlePDFURL))
		})

		// The PDF route additionally accepts ?token= so a plain link works.
		r.Group(func(r chi.Router) {
			r.Use(s.authenticate(true))
			r.Get("/pdf", webutil.MakeHandler(s.logger, s.handlePDF))
		})
	})

	return r
}
