package controller

import (
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"vitrina/models"
	"vitrina/repository"
	"vitrina/shortlist"
	"vitrina/utils"
)

// VisitorCookieName identifies the visitor that owns a shortlist
const VisitorCookieName = "vitrina_visitante"

// ShortlistController handles the cotización (quote shortlist) endpoints
type ShortlistController struct {
	registry *shortlist.Registry
	products repository.ProductRepositoryInterface
	secure   bool
}

// NewShortlistController creates a new ShortlistController
func NewShortlistController(registry *shortlist.Registry, products repository.ProductRepositoryInterface, secureCookies bool) *ShortlistController {
	return &ShortlistController{
		registry: registry,
		products: products,
		secure:   secureCookies,
	}
}

// existing returns the visitor's shortlist if one is held; it never creates one
func (c *ShortlistController) existing(r *http.Request) (*shortlist.Store, bool) {
	cookie, err := r.Cookie(VisitorCookieName)
	if err != nil || cookie.Value == "" {
		return nil, false
	}
	return c.registry.Lookup(cookie.Value)
}

// store returns the visitor's shortlist, issuing a visitor cookie when missing
func (c *ShortlistController) store(w http.ResponseWriter, r *http.Request) *shortlist.Store {
	if cookie, err := r.Cookie(VisitorCookieName); err == nil && cookie.Value != "" {
		return c.registry.For(cookie.Value)
	}

	visitor := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     VisitorCookieName,
		Value:    visitor,
		Path:     "/",
		MaxAge:   60 * 60 * 24 * 30,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.registry.For(visitor)
}

func productID(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "id"))
}

// Get handles GET /cotizacion
// Returns the shortlisted ids with the products that still resolve and their subtotal
func (c *ShortlistController) Get(w http.ResponseWriter, r *http.Request) {
	ids := []string{}
	if store, ok := c.existing(r); ok {
		ids = store.IDs()
	}

	products, err := c.products.GetByIDs(r.Context(), ids)
	if err != nil {
		log.Printf("❌ Shortlist: Error loading products: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to load shortlist products")
		return
	}

	subtotal := utils.SumPrices(lo.Map(products, func(p models.Product, _ int) decimal.Decimal { return p.Price }))
	writeJSON(w, http.StatusOK, models.ShortlistResponse{
		Total:      len(ids),
		ProductIDs: ids,
		Products:   products,
		Subtotal:   subtotal,
		Formatted:  utils.FormatCOP(subtotal),
	}, "Shortlist")
}

type toggleResponse struct {
	ProductID  string `json:"productoId"`
	InList     bool   `json:"enLista"`
	TotalCount int    `json:"totalProductos"`
}

// Toggle handles POST /cotizacion/{id}/toggle
func (c *ShortlistController) Toggle(w http.ResponseWriter, r *http.Request) {
	id := productID(r)
	if id == "" {
		writeError(w, http.StatusBadRequest, "product id is required")
		return
	}
	store := c.store(w, r)
	in := store.Toggle(id)
	writeJSON(w, http.StatusOK, toggleResponse{ProductID: id, InList: in, TotalCount: store.Count()}, "ShortlistToggle")
}

// Add handles PUT /cotizacion/{id}
func (c *ShortlistController) Add(w http.ResponseWriter, r *http.Request) {
	id := productID(r)
	if id == "" {
		writeError(w, http.StatusBadRequest, "product id is required")
		return
	}
	store := c.store(w, r)
	store.Add(id)
	writeJSON(w, http.StatusOK, toggleResponse{ProductID: id, InList: true, TotalCount: store.Count()}, "ShortlistAdd")
}

// Remove handles DELETE /cotizacion/{id}
func (c *ShortlistController) Remove(w http.ResponseWriter, r *http.Request) {
	id := productID(r)
	count := 0
	if store, ok := c.existing(r); ok {
		store.Remove(id)
		count = store.Count()
	}
	writeJSON(w, http.StatusOK, toggleResponse{ProductID: id, InList: false, TotalCount: count}, "ShortlistRemove")
}

// Clear handles DELETE /cotizacion
func (c *ShortlistController) Clear(w http.ResponseWriter, r *http.Request) {
	if store, ok := c.existing(r); ok {
		store.Clear()
	}
	w.WriteHeader(http.StatusNoContent)
}
