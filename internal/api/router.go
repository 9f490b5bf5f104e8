package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/kmansoor/sims-backend/docs" // swagger docs
)

func NewRouter(h *Handler, mw *Middleware) http.Handler {
	mux := chi.NewRouter()
	mux.Use(mw.Log, mw.Recover, mw.Cors)

	mux.Route("/api", func(r chi.Router) {
		r.HandleFunc("/health", h.HealthHandler)
		r.HandleFunc("/swagger/*", httpSwagger.Handler())

		r.Post("/auth/login", h.Login)

		r.Route("/v1", func(r chi.Router) {
			r.Use(mw.BearerAuth)

			r.Route("/customers", func(r chi.Router) {
				r.Post("/", h.CreateCustomer)
				r.Get("/", h.ListCustomers)
				r.Get("/{id}", h.GetCustomer)
				r.Patch("/{id}", h.UpdateCustomer)
				r.Delete("/{id}", h.DeleteCustomer)
			})

			r.Route("/products", func(r chi.Router) {
				r.Post("/", h.CreateProduct)
				r.Get("/", h.ListProducts)
				r.Get("/{id}", h.GetProduct)
				r.Patch("/{id}", h.UpdateProduct)
				r.Delete("/{id}", h.DeleteProduct)
			})

			r.Route("/invoices", func(r chi.Router) {
				r.Post("/", h.SubmitInvoice)
				r.Post("/preview", h.PreviewInvoiceTotals)
				r.Get("/", h.ListInvoices)
				r.Get("/{id}", h.GetInvoice)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", h.CreateOrder)
				r.Get("/", h.ListOrders)
				r.Get("/{id}", h.GetOrder)
				r.Post("/{id}/status", h.UpdateOrderStatus)
			})

			r.Get("/dashboard/summary", h.DashboardSummary)
		})

		r.Route("/private/v1", func(r chi.Router) {
			r.Use(mw.APIKeyAuth)
			r.Post("/invoices/{number}/paid", h.InvoicePaid)
		})
	})

	return mux
}
