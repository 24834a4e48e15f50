package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/panchhi-sarees/storefront-api/internal/application/account"
	"github.com/panchhi-sarees/storefront-api/internal/application/catalog"
	"github.com/panchhi-sarees/storefront-api/internal/application/order"
	"github.com/panchhi-sarees/storefront-api/internal/application/session"
	"github.com/panchhi-sarees/storefront-api/internal/application/signup"
	"github.com/panchhi-sarees/storefront-api/internal/config"
	"github.com/panchhi-sarees/storefront-api/internal/domain"
	"github.com/panchhi-sarees/storefront-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/panchhi-sarees/storefront-api/internal/infrastructure/jwt"
	"github.com/panchhi-sarees/storefront-api/internal/infrastructure/mail"
	rzp "github.com/panchhi-sarees/storefront-api/internal/infrastructure/razorpay"
	redisinfra "github.com/panchhi-sarees/storefront-api/internal/infrastructure/redis"
	s3infra "github.com/panchhi-sarees/storefront-api/internal/infrastructure/s3"
	"github.com/panchhi-sarees/storefront-api/internal/infrastructure/sns"
	"github.com/panchhi-sarees/storefront-api/internal/transport/http/handler"
	appmiddleware "github.com/panchhi-sarees/storefront-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	CustomerRepo *dynamo.CustomerRepo
	AdminRepo    *dynamo.AdminRepo
	SignupRepo   *dynamo.SignupRepo
	ProductRepo  *dynamo.ProductRepo
	OrderRepo    *dynamo.OrderRepo
	ImageStore   *s3infra.ImageStore
	Mailer       mail.Mailer
	SMSSender    sns.SMSSender
	JWTProvider  *jwtinfra.Provider
	SendLimiter  *redisinfra.SendLimiter
	Gateway      rzp.Gateway
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	signupSvc := signup.NewService(signup.ServiceDeps{
		CustomerRepo: deps.CustomerRepo,
		AdminRepo:    deps.AdminRepo,
		SignupRepo:   deps.SignupRepo,
		Mailer:       deps.Mailer,
		JWTProvider:  deps.JWTProvider,
		SendLimiter:  deps.SendLimiter,
	})
	sessionSvc := session.NewService(deps.CustomerRepo, deps.AdminRepo, deps.JWTProvider)
	accountSvc := account.NewService(deps.CustomerRepo, deps.ProductRepo)
	catalogSvc := catalog.NewService(deps.ProductRepo, deps.ImageStore)
	orderSvc := order.NewService(order.ServiceDeps{
		OrderRepo:     deps.OrderRepo,
		CustomerRepo:  deps.CustomerRepo,
		Gateway:       deps.Gateway,
		GatewaySecret: cfg.RazorpaySecret,
		Mailer:        deps.Mailer,
		SMSSender:     deps.SMSSender,
	})

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(signupSvc, sessionSvc)
	adminAuthH := handler.NewAdminAuthHandler(signupSvc, sessionSvc)
	accountH := handler.NewAccountHandler(accountSvc)
	productH := handler.NewProductHandler(catalogSvc)
	orderH := handler.NewOrderHandler(orderSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health", healthH.Check)

		r.With(sensitiveRL.Limit).Post("/auth/register", authH.Register)
		r.With(sensitiveRL.Limit).Post("/auth/verify", authH.Verify)
		r.With(sensitiveRL.Limit).Post("/auth/login", authH.Login)
		r.With(sensitiveRL.Limit).Post("/admin/auth/register", adminAuthH.Register)
		r.With(sensitiveRL.Limit).Post("/admin/auth/verify", adminAuthH.Verify)
		r.With(sensitiveRL.Limit).Post("/admin/auth/login", adminAuthH.Login)

		r.Get("/products", productH.List)
		r.Get("/products/{id}", productH.Get)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/me", accountH.Profile)
			r.Post("/me/wishlist/{productID}", accountH.ToggleWishlist)
			r.Get("/me/cart", accountH.Cart)
			r.Put("/me/cart", accountH.UpsertCartItem)
			r.Delete("/me/cart/{productID}", accountH.RemoveCartItem)
			r.Get("/me/addresses", accountH.Addresses)
			r.Post("/me/addresses", accountH.AddAddress)
			r.Put("/me/addresses/{id}", accountH.EditAddress)
			r.Delete("/me/addresses/{id}", accountH.DeleteAddress)

			r.Get("/orders", orderH.ListMine)
			r.Post("/orders", orderH.Place)
			r.Post("/payments/order", orderH.CreateGatewayOrder)
			r.Post("/payments/verify", orderH.VerifyPayment)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

				r.Post("/products", productH.Create)
				r.Put("/products/{id}", productH.Update)
				r.Delete("/products/{id}", productH.Delete)

				r.Get("/admin/orders", orderH.ListAll)
				r.Put("/admin/orders/{id}/status", orderH.UpdateStatus)
			})
		})
	})

	return r
}
