package handlers

import (
	"net/http"

	"github.com/a2sh3r/mlmnet/internal/middleware"
	"github.com/a2sh3r/mlmnet/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handler struct {
	userService       service.UserService
	networkService    service.NetworkService
	productService    service.ProductService
	commissionService service.CommissionService
	withdrawalService service.WithdrawalService
	validate          *validator.Validate
}

func NewHandler(
	userService service.UserService,
	networkService service.NetworkService,
	productService service.ProductService,
	commissionService service.CommissionService,
	withdrawalService service.WithdrawalService,
) *Handler {
	return &Handler{
		userService:       userService,
		networkService:    networkService,
		productService:    productService,
		commissionService: commissionService,
		withdrawalService: withdrawalService,
		validate:          validator.New(),
	}
}

// NewRouter wires the API. Payment webhooks are the only signed routes.
func NewRouter(handler *Handler, webhookSecret string, limiter *middleware.ClientLimiter) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.NewLoggingMiddleware())
	if limiter != nil {
		r.Use(middleware.RateLimitMiddleware(limiter))
	}

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Invalid URL format", http.StatusNotFound)
	})

	// promhttp negotiates its own compression
	r.Handle("/metrics", promhttp.Handler())

	r.With(middleware.NewGzipMiddleware()).Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/", handler.RegisterUser)
			r.Get("/{id}", handler.GetUser)
			r.Get("/{id}/network", handler.GetNetwork)
			r.Get("/{id}/finance", handler.GetFinance)
			r.Post("/{id}/withdrawals", handler.RequestWithdrawal)
		})

		r.Get("/products", handler.ListProducts)
		r.Get("/products/{id}", handler.GetProduct)

		r.Route("/payments", func(r chi.Router) {
			r.Use(middleware.NewHashMiddleware(webhookSecret))
			r.Post("/enrollment", handler.EnrollmentPaid)
			r.Post("/recurring", handler.RecurringPaid)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/products", handler.CreateProduct)
			r.Get("/withdrawals", handler.ListWithdrawals)
			r.Get("/withdrawals/{id}", handler.GetWithdrawal)
			r.Post("/withdrawals/{id}/approve", handler.ApproveWithdrawal)
			r.Post("/withdrawals/{id}/reject", handler.RejectWithdrawal)
			r.Get("/reports/financial", handler.FinancialReport)
		})
	})

	return r
}
