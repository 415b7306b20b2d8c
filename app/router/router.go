package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"vitrina/app/controller"
	"vitrina/guard"
)

type Controllers struct {
	Catalog      *controller.CatalogController
	Shortlist    *controller.ShortlistController
	Public       *controller.PublicController
	Auth         *controller.AuthController
	Image        *controller.ImageController
	AdminProduct *controller.AdminProductController
	AdminCatalog *controller.AdminCatalogController
	AdminConfig  *controller.AdminConfigController
	Toast        *controller.ToastController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// SetupRoutes builds the HTTP handler. Every request passes the navigation
// guard; the public layout group loads the site config first.
func SetupRoutes(controllers *Controllers, g *guard.Guard, config guard.ConfigLoader) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(g.Middleware)

	// Ping endpoint
	r.Get("/ping", pingHandler)

	// Public layout
	r.Group(func(r chi.Router) {
		r.Use(guard.PublicLayout(config))
		r.Get("/", controllers.Public.Home)
		r.Get("/nosotros", controllers.Public.Page("nosotros"))
		r.Get("/contacto", controllers.Public.Page("contacto"))
		r.Get("/categorias", controllers.Public.Categories)
		r.Get("/categorias/{slug}", controllers.Public.Category)
		r.Get("/producto/{slug}", controllers.Public.Product)
	})

	// Shared catalogs
	r.Get("/c/{slug}", controllers.Catalog.View)
	r.Get("/c/{slug}/render", controllers.Catalog.Render)

	// Login
	r.Get("/login", controllers.Auth.Status)
	r.Post("/login", controllers.Auth.Login)
	r.Post("/logout", controllers.Auth.Logout)

	// Cotización
	r.Route("/cotizacion", func(r chi.Router) {
		r.Get("/", controllers.Shortlist.Get)
		r.Delete("/", controllers.Shortlist.Clear)
		r.Post("/{id}/toggle", controllers.Shortlist.Toggle)
		r.Put("/{id}", controllers.Shortlist.Add)
		r.Delete("/{id}", controllers.Shortlist.Remove)
	})

	// Optimized product images
	r.Get("/imagenes/{id}", controllers.Image.GetOptimized)

	// Admin routes
	r.Route(guard.AdminPrefix, func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, guard.AdminPrefix+"/productos", http.StatusFound)
		})

		r.Get("/configuracion", controllers.AdminConfig.Get)
		r.Put("/configuracion", controllers.AdminConfig.Save)

		r.Route("/productos", func(r chi.Router) {
			r.Get("/", controllers.AdminProduct.List)
			r.Post("/nuevo", controllers.AdminProduct.Create)
			r.Get("/editar/{id}", controllers.AdminProduct.Get)
			r.Put("/editar/{id}", controllers.AdminProduct.Update)
			r.Delete("/{id}", controllers.AdminProduct.Delete)
			r.Post("/importar", controllers.AdminProduct.Import)
		})

		r.Route("/catalogos", func(r chi.Router) {
			r.Get("/", controllers.AdminCatalog.List)
			r.Post("/nuevo", controllers.AdminCatalog.Create)
			r.Get("/editar/{id}", controllers.AdminCatalog.Get)
			r.Put("/editar/{id}", controllers.AdminCatalog.Update)
			r.Delete("/{id}", controllers.AdminCatalog.Delete)
			r.Get("/{id}/pdf", controllers.AdminCatalog.PDF)
		})

		r.Get("/toast", controllers.Toast.Get)
		r.Delete("/toast", controllers.Toast.Dismiss)
	})

	return r
}
