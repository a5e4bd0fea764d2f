package server

import (
	"context"
	"net/http"
	"net/netip"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"shopadmin/internal/auth"
	companyctrl "shopadmin/internal/company/controller"
	"shopadmin/internal/config"
	contactsctrl "shopadmin/internal/contacts/controller"
	faqctrl "shopadmin/internal/faq/controller"
	homepagectrl "shopadmin/internal/homepage/controller"
	"shopadmin/internal/middleware"
	orderctrl "shopadmin/internal/order/controller"
	productctrl "shopadmin/internal/product/controller"
	reviewctrl "shopadmin/internal/review/controller"
	textpagectrl "shopadmin/internal/textpage/controller"
	"shopadmin/internal/web"
)

// Controllers groups the handlers mounted under /api.
type Controllers struct {
	Auth        *auth.Controller
	Products    *productctrl.ProductController
	Company     *companyctrl.CompanyController
	Contacts    *contactsctrl.ContactController
	FAQ         *faqctrl.FAQController
	Homepage    *homepagectrl.HomepageController
	Orders      *orderctrl.OrderController
	Reviews     *reviewctrl.ReviewController
	Partnership *textpagectrl.TextPageController
	Payment     *textpagectrl.TextPageController
}

type RouterDeps struct {
	Controllers Controllers
	Verifier    middleware.TokenVerifier
	Limiter     middleware.Counter
	RateLimit   config.RateLimitConfig
	Origins     []string
	// TrustedProxies may set the client address through forwarding headers.
	TrustedProxies []netip.Prefix
	// UploadsDir is served at /uploads when set.
	UploadsDir string
	DB         DBPinger
	// Redis is checked by /health when set. Its failure does not fail the
	// check since rate limiting falls back to allowing requests.
	Redis  RedisPinger
	Logger *zap.Logger
}

type DBPinger interface {
	PingContext(ctx context.Context) error
}

type RedisPinger interface {
	Ping(ctx context.Context) error
}

func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		ExposedHeaders:   []string{"X-Trace-ID", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RealIP(deps.TrustedProxies))
	r.Use(middleware.TraceID(deps.Logger))
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", health(deps.DB, deps.Redis))
	r.Handle("/metrics", promhttp.Handler())
	if deps.UploadsDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.UploadsDir))))
	}

	admin := middleware.RequireAdmin(deps.Verifier)
	limited := middleware.RateLimit(deps.Limiter, deps.RateLimit.Requests, deps.RateLimit.Window)
	c := deps.Controllers

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", c.Auth.Login)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", c.Products.List)
			r.Get("/{id}", c.Products.Get)
			r.With(admin).Post("/", c.Products.Create)
			r.With(admin).Put("/{id}", c.Products.Update)
			r.With(admin).Delete("/{id}", c.Products.Delete)
		})

		r.Route("/company", func(r chi.Router) {
			r.Get("/", c.Company.Get)
			r.With(admin).Post("/", c.Company.Create)
			r.With(admin).Put("/{id}", c.Company.Update)
			r.With(admin).Delete("/{id}", c.Company.Delete)
		})

		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", c.Contacts.Get)
			r.With(admin).Post("/", c.Contacts.Create)
			r.With(admin).Put("/{id}", c.Contacts.Update)
			r.With(admin).Delete("/{id}", c.Contacts.Delete)
		})

		r.Route("/faqs", func(r chi.Router) {
			r.Get("/", c.FAQ.List)
			r.Get("/{id}", c.FAQ.Get)
			r.With(admin).Post("/", c.FAQ.Create)
			r.With(admin).Put("/{id}", c.FAQ.Update)
			r.With(admin).Delete("/{id}", c.FAQ.Delete)
		})

		r.Route("/homepage", func(r chi.Router) {
			r.Get("/", c.Homepage.Get)
			r.With(admin).Post("/", c.Homepage.Create)
			r.With(admin).Put("/{id}", c.Homepage.Update)
			r.With(admin).Delete("/{id}", c.Homepage.Delete)
		})

		r.Route("/orders", func(r chi.Router) {
			r.With(limited).Post("/", c.Orders.Create)
			r.Group(func(r chi.Router) {
				r.Use(admin)
				r.Get("/", c.Orders.List)
				r.Get("/{id}", c.Orders.Get)
				r.Patch("/{id}/status", c.Orders.UpdateStatus)
				r.Delete("/{id}", c.Orders.Delete)
			})
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", c.Reviews.ListApproved)
			r.With(limited).Post("/", c.Reviews.Submit)
			r.Group(func(r chi.Router) {
				r.Use(admin)
				r.Get("/all", c.Reviews.ListAll)
				r.Patch("/{id}/status", c.Reviews.UpdateStatus)
				r.Delete("/{id}", c.Reviews.Delete)
			})
		})

		mountTextPage(r, "/partnership", c.Partnership, admin)
		mountTextPage(r, "/payment", c.Payment, admin)
	})

	return r
}

func mountTextPage(r chi.Router, pattern string, ctrl *textpagectrl.TextPageController, admin func(http.Handler) http.Handler) {
	r.Route(pattern, func(r chi.Router) {
		r.Get("/", ctrl.Get)
		r.With(admin).Post("/", ctrl.Create)
		r.With(admin).Put("/{id}", ctrl.Update)
		r.With(admin).Delete("/{id}", ctrl.Delete)
	})
}

func health(db DBPinger, cache RedisPinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := map[string]string{"status": "ok", "database": "ok"}
		status := http.StatusOK

		if err := db.PingContext(ctx); err != nil {
			web.Logger(r.Context()).Warn("health check failed", zap.String("dependency", "database"), zap.Error(err))
			resp["status"], resp["database"] = "unavailable", "unavailable"
			status = http.StatusServiceUnavailable
		}
		if cache != nil {
			resp["redis"] = "ok"
			if err := cache.Ping(ctx); err != nil {
				web.Logger(r.Context()).Warn("health check failed", zap.String("dependency", "redis"), zap.Error(err))
				resp["redis"] = "unavailable"
			}
		}

		web.WriteJSON(w, r, status, resp)
	}
}
