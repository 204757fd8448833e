package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/spycats/internal/http/apierror"
	"github.com/MrJamesThe3rd/spycats/internal/http/auth"
	"github.com/MrJamesThe3rd/spycats/internal/http/breed"
	"github.com/MrJamesThe3rd/spycats/internal/http/cat"
	"github.com/MrJamesThe3rd/spycats/internal/http/mission"
	"github.com/MrJamesThe3rd/spycats/internal/http/target"
)

type Options struct {
	AllowedOrigins []string
	// JWTSecret enables bearer auth on mutating routes when non-empty.
	JWTSecret string
	// Timeout bounds each request; zero disables it.
	Timeout time.Duration
	// Ping reports backend health for /healthz; nil means always healthy.
	Ping func(ctx context.Context) error
}

func New(
	opts Options,
	catsV1 *cat.Handler,
	missionsV1 *mission.Handler,
	targetsV1 *target.Handler,
	breedsV1 *breed.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/v1/cats", http.StatusTemporaryRedirect)
	})

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if opts.Ping != nil {
			if err := opts.Ping(r.Context()); err != nil {
				apierror.Write(w, http.StatusServiceUnavailable, "unhealthy")
				return
			}
		}

		apierror.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(opts.JWTSecret))

		r.Route("/cats", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			catsV1.Routes(r)
		})

		r.Route("/missions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			missionsV1.Routes(r)
		})

		r.Route("/targets", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			targetsV1.Routes(r)
		})

		r.Route("/breeds", breedsV1.Routes)
	})

	return router
}
