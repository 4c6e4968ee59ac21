package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/stockroom/internal/auth"
	"github.com/MrJamesThe3rd/stockroom/internal/http/dashboard"
	"github.com/MrJamesThe3rd/stockroom/internal/http/export"
	"github.com/MrJamesThe3rd/stockroom/internal/http/importcsv"
	"github.com/MrJamesThe3rd/stockroom/internal/http/inventory"
	"github.com/MrJamesThe3rd/stockroom/internal/http/login"
	"github.com/MrJamesThe3rd/stockroom/internal/http/report"
	"github.com/MrJamesThe3rd/stockroom/internal/live"
)

func New(
	authSvc *auth.Service,
	authV1 *login.Handler,
	itemsV1 *inventory.Handler,
	reportsV1 *report.Handler,
	dashboardV1 *dashboard.Handler,
	exportV1 *export.Handler,
	importV1 *importcsv.Handler,
	hub *live.Hub,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(authSvc))

			r.Route("/items", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				itemsV1.Routes(r)
			})

			r.Route("/reports", func(r chi.Router) {
				reportsV1.Routes(r)
			})

			r.Route("/dashboard", func(r chi.Router) {
				dashboardV1.Routes(r)
			})

			r.Route("/export", func(r chi.Router) {
				exportV1.Routes(r)
			})

			r.Route("/import", importV1.Routes)

			r.Get("/live", hub.Handle)
		})
	})

	return router
}
