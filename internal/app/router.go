package app

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/sparkbazaar/sparkbazaar/internal/admin"
	"github.com/sparkbazaar/sparkbazaar/internal/auth"
	"github.com/sparkbazaar/sparkbazaar/internal/cart"
	"github.com/sparkbazaar/sparkbazaar/internal/catalog/categories"
	"github.com/sparkbazaar/sparkbazaar/internal/catalog/products"
	"github.com/sparkbazaar/sparkbazaar/internal/checkout"
	"github.com/sparkbazaar/sparkbazaar/internal/media"
	"github.com/sparkbazaar/sparkbazaar/internal/orders"
	"github.com/sparkbazaar/sparkbazaar/internal/shared"
	"github.com/sparkbazaar/sparkbazaar/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager

	AuthService     *auth.Service
	AuthHandler     *auth.Handler
	ProductHandler  *products.Handler
	CategoryHandler *categories.Handler
	CartStore       cart.Store
	CartHandler     *cart.Handler
	CheckoutHandler *checkout.Handler
	OrderHandler    *orders.Handler
	AdminHandler    *admin.Handler
	MediaStore      *media.Store
}

// NewRouter constructs the chi.Router with storefront defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)
	r.Use(cart.CountMiddleware(params.CartStore, params.Logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Storefront
	r.Get("/", params.ProductHandler.Storefront)
	r.Get("/products/{id}", params.ProductHandler.Detail)

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", params.CartHandler.View)
		r.Post("/add", params.CartHandler.Add)
		r.Post("/update", params.CartHandler.Update)
		r.Post("/remove", params.CartHandler.Remove)
		r.Post("/clear", params.CartHandler.Clear)
	})

	r.Get("/orders", params.OrderHandler.MyOrders)

	r.Route("/checkout", func(r chi.Router) {
		r.Get("/", params.CheckoutHandler.Form)
		r.Post("/", params.CheckoutHandler.Submit)
		r.Get("/success", params.CheckoutHandler.Success)
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	// Admin console
	r.Route("/admin", func(r chi.Router) {
		r.Use(RequireAdmin(params.AuthService))

		r.Get("/", params.AdminHandler.Dashboard)
		r.Get("/customers", params.AdminHandler.Customers)
		r.Get("/customers/{id}", params.AdminHandler.CustomerDetail)
		r.Get("/events", params.OrderHandler.Events)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", params.ProductHandler.AdminList)
			r.Get("/new", params.ProductHandler.Form)
			r.Post("/", params.ProductHandler.Create)
			r.Get("/{id}/edit", params.ProductHandler.EditForm)
			r.Post("/{id}", params.ProductHandler.Update)
			r.Post("/{id}/deactivate", params.ProductHandler.Deactivate)
			r.Post("/{id}/reactivate", params.ProductHandler.Reactivate)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", params.CategoryHandler.AdminList)
			r.Get("/new", params.CategoryHandler.Form)
			r.Post("/", params.CategoryHandler.Create)
			r.Get("/{id}/edit", params.CategoryHandler.EditForm)
			r.Post("/{id}", params.CategoryHandler.Update)
			r.Post("/{id}/delete", params.CategoryHandler.Delete)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", params.OrderHandler.AdminList)
			r.Get("/{id}", params.OrderHandler.AdminDetail)
			r.Post("/{id}/status", params.OrderHandler.UpdateStatus)
		})
	})

	// Uploaded product images
	r.Handle(params.Config.MediaURLPrefix+"/*", params.MediaStore.Handler())

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	return r
}

// staticCacheHandler wraps a file server with Cache-Control headers.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
