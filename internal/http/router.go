package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rogerio-castellano/stock-ledger/internal/auth"
	"github.com/rogerio-castellano/stock-ledger/internal/broadcast"
	"github.com/rogerio-castellano/stock-ledger/internal/http/handlers"
	rl "github.com/rogerio-castellano/stock-ledger/internal/http/rate_limiter"
	"github.com/rogerio-castellano/stock-ledger/internal/models"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/rogerio-castellano/stock-ledger/docs"
)

type Deps struct {
	Server      *handlers.Server
	Gate        *auth.Gate
	Hub         *broadcast.Hub
	Limiter     *rl.Limiter
	CORSOrigins []string
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{handlers.TotalCountHeader},
		MaxAge:         300,
	}))
	if d.Limiter != nil {
		r.Use(d.Limiter.Middleware)
	}

	s := d.Server

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", s.LoginHandler)
		r.Method(http.MethodGet, "/ws", wsAuth(d.Gate, broadcast.NewWSHandler(d.Hub, originChecker(d.CORSOrigins))))

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(d.Gate))

			r.Post("/me/password", s.ChangePasswordHandler)
			r.Get("/cloud", s.GetSnapshotHandler)
			r.Get("/products", s.GetProductsHandler)
			r.Get("/transactions", s.GetTransactionsHandler)
			r.Post("/transactions", s.CreateTransactionHandler)
			r.Get("/transactions/export", s.ExportTransactionsHandler)
			r.Get("/metrics/dashboard", s.GetDashboardMetricsHandler)

			r.Group(func(r chi.Router) {
				r.Use(RequireRole(models.RoleAdmin))

				r.Post("/products", s.CreateProductHandler)
				r.Post("/products/import", s.ImportProductsHandler)
				r.Put("/products/{id}", s.UpdateProductHandler)
				r.Delete("/products/{id}", s.DeleteProductHandler)

				r.Get("/users", s.GetUsersHandler)
				r.Post("/users", s.CreateUserHandler)
				r.Delete("/users/{id}", s.DeleteUserHandler)

				r.Get("/admin/reconcile", s.ReconcileHandler)
				r.Get("/admin/bans", s.GetBansHandler)
			})
		})
	})

	return r
}
