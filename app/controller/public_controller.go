package controller

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"vitrina/models"
	"vitrina/repository"
	"vitrina/service"
	"vitrina/utils"
)

// SiteConfigReader is the read side of the site config loader
type SiteConfigReader interface {
	Config() (json.RawMessage, bool)
	Err() error
}

// PublicController serves the pages under the public layout
type PublicController struct {
	config   SiteConfigReader
	content  *service.ContentService
	products repository.ProductRepositoryInterface
}

// NewPublicController creates a new PublicController
func NewPublicController(config SiteConfigReader, content *service.ContentService, products repository.ProductRepositoryInterface) *PublicController {
	return &PublicController{
		config:   config,
		content:  content,
		products: products,
	}
}

// Home handles GET /
// Returns the site configuration; null when it could not be loaded
func (c *PublicController) Home(w http.ResponseWriter, r *http.Request) {
	raw, ok := c.config.Config()
	if !ok {
		if err := c.config.Err(); err != nil {
			log.Printf("⚠️  Home: serving without site config: %v", err)
		}
		raw = json.RawMessage("null")
	}
	writeJSON(w, http.StatusOK, map[string]json.RawMessage{"configuracion": raw}, "Home")
}

// Page returns a handler for a Markdown content page stored in the site config
func (c *PublicController) Page(key string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := c.content.RenderPage(key)
		if err != nil {
			if errors.Is(err, service.ErrContentNotFound) {
				writeError(w, http.StatusNotFound, "Página no encontrada")
				return
			}
			log.Printf("❌ Page %s: %v", key, err)
			writeError(w, http.StatusInternalServerError, "Failed to render page")
			return
		}
		writeJSON(w, http.StatusOK, page, "Page")
	}
}

type categoryResponse struct {
	Name string `json:"nombre"`
	Slug string `json:"slug"`
}

// Categories handles GET /categorias
func (c *PublicController) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.products.ListCategories(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list categories")
		return
	}
	writeJSON(w, http.StatusOK, lo.Map(categories, func(name string, _ int) categoryResponse {
		return categoryResponse{Name: name, Slug: utils.Slugify(name)}
	}), "Categories")
}

// Category handles GET /categorias/{slug}
func (c *PublicController) Category(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	categories, err := c.products.ListCategories(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list categories")
		return
	}
	name, found := lo.Find(categories, func(name string) bool { return utils.Slugify(name) == slug })
	if !found {
		writeError(w, http.StatusNotFound, "Categoría no encontrada")
		return
	}

	products, err := c.products.List(r.Context(), models.ProductFilterParams{Category: &name})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list products")
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Category categoryResponse `json:"categoria"`
		Products []models.Product `json:"productos"`
	}{categoryResponse{Name: name, Slug: slug}, products}, "Category")
}

// Product handles GET /producto/{slug}
func (c *PublicController) Product(w http.ResponseWriter, r *http.Request) {
	product, err := c.products.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Producto no encontrado")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get product")
		return
	}
	writeJSON(w, http.StatusOK, product, "Product")
}
