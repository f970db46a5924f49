package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/rwhitten/nestegg/internal/http/account"
	"github.com/rwhitten/nestegg/internal/http/budget"
	"github.com/rwhitten/nestegg/internal/http/importcsv"
	"github.com/rwhitten/nestegg/internal/http/ledger"
	"github.com/rwhitten/nestegg/internal/http/report"
	"github.com/rwhitten/nestegg/internal/http/user"
)

func New(
	usersV1 *user.Handler,
	accountsV1 *account.Handler,
	entriesV1 *ledger.Handler,
	budgetsV1 *budget.Handler,
	importV1 *importcsv.Handler,
	reportsV1 *report.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			usersV1.Routes(r)
		})

		r.Route("/accounts", func(r chi.Router) {
			accountsV1.Routes(r)
		})

		r.Route("/entries", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			entriesV1.Routes(r)
		})

		r.Route("/statutory", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			entriesV1.StatutoryRoutes(r)
		})

		r.Route("/transfers", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			entriesV1.TransferRoutes(r)
		})

		r.Route("/paychecks", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			entriesV1.PaycheckRoutes(r)
		})

		r.Route("/budgets", func(r chi.Router) {
			budgetsV1.Routes(r)
		})

		r.Route("/import", importV1.Routes)

		r.Route("/reports", func(r chi.Router) {
			reportsV1.Routes(r)
		})
	})

	return router
}
