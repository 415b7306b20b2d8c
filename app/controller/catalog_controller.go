package controller

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"vitrina/catalogview"
	"vitrina/models"
	"vitrina/repository"
	"vitrina/service"
)

// CatalogController serves the public catalog pages
type CatalogController struct {
	fetcher catalogview.Fetcher
	export  service.CatalogExportServiceInterface
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(fetcher catalogview.Fetcher, export service.CatalogExportServiceInterface) *CatalogController {
	return &CatalogController{
		fetcher: fetcher,
		export:  export,
	}
}

type catalogHeader struct {
	ID        string     `json:"id"`
	Name      string     `json:"nombre"`
	Slug      string     `json:"slug"`
	ExpiresAt *time.Time `json:"fechaCaducidad,omitempty"`
}

type criteriaResponse struct {
	SearchTerm string `json:"q"`
	Category   string `json:"categoria"`
	SortOrder  string `json:"orden"`
}

// CatalogViewResponse is the derived view of one catalog page
type CatalogViewResponse struct {
	Catalog     catalogHeader    `json:"catalogo"`
	IsExpired   bool             `json:"caducado"`
	Criteria    criteriaResponse `json:"criterios"`
	ViewMode    string           `json:"vista"`
	Categories  []string         `json:"categorias"`
	Products    []models.Product `json:"productos"`
	TotalCount  int              `json:"totalProductos"`
	TotalPages  int              `json:"totalPaginas"`
	CurrentPage int              `json:"paginaActual"`
	PageSize    int              `json:"tamanoPagina"`
}

func newCatalogViewResponse(v catalogview.View) CatalogViewResponse {
	return CatalogViewResponse{
		Catalog: catalogHeader{
			ID:        v.Catalog.ID,
			Name:      v.Catalog.Name,
			Slug:      v.Catalog.Slug,
			ExpiresAt: v.Catalog.ExpiresAt,
		},
		IsExpired: v.IsExpired,
		Criteria: criteriaResponse{
			SearchTerm: v.Criteria.SearchTerm,
			Category:   v.Criteria.Category,
			SortOrder:  string(v.Criteria.SortOrder),
		},
		ViewMode:    string(v.ViewMode),
		Categories:  v.Categories,
		Products:    v.Products,
		TotalCount:  v.TotalCount,
		TotalPages:  v.TotalPages,
		CurrentPage: v.CurrentPage,
		PageSize:    v.PageSize,
	}
}

// View handles GET /c/{slug}
// Query: q, categoria, orden (nombre-asc|precio-asc|precio-desc), pagina, vista (grid|list)
func (c *CatalogController) View(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	log.Printf("📥 CatalogView: Received request for slug=%s query=%s", slug, r.URL.RawQuery)

	vm := catalogview.New(c.fetcher)
	if err := vm.Fetch(r.Context(), slug); err != nil {
		var ferr *catalogview.FetchError
		if errors.As(err, &ferr) && ferr.Kind == catalogview.KindNotFound {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: ferr.Message, Kind: ferr.Kind.String()}, "CatalogView")
			return
		}
		kind := catalogview.KindUnexpected.String()
		if ferr != nil {
			kind = ferr.Kind.String()
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error(), Kind: kind}, "CatalogView")
		return
	}

	q := r.URL.Query()
	vm.SetSearchTerm(q.Get("q"))
	vm.SetCategory(q.Get("categoria"))
	if raw := q.Get("orden"); raw != "" {
		order, ok := catalogview.ParseSortOrder(raw)
		if !ok {
			log.Printf("❌ CatalogView: Invalid orden: %s", raw)
			writeError(w, http.StatusBadRequest, "orden must be one of: nombre-asc, precio-asc, precio-desc")
			return
		}
		vm.SetSortOrder(order)
	}
	switch mode := catalogview.ViewMode(q.Get("vista")); mode {
	case catalogview.ViewGrid, catalogview.ViewList:
		vm.SetViewMode(mode)
	}
	if raw := q.Get("pagina"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "pagina must be a number")
			return
		}
		vm.GoToPage(page)
	}

	view := vm.Snapshot()
	log.Printf("✅ CatalogView: slug=%s matched=%d page=%d/%d", slug, view.TotalCount, view.CurrentPage, view.TotalPages)
	writeJSON(w, http.StatusOK, newCatalogViewResponse(view), "CatalogView")
}

// Render handles GET /c/{slug}/render
// Returns the printable HTML used by the PDF export
func (c *CatalogController) Render(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	html, err := c.export.RenderCatalogHTML(r.Context(), slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, catalogview.NotFoundMessage, http.StatusNotFound)
			return
		}
		log.Printf("❌ CatalogRender: Error rendering %s: %v", slug, err)
		http.Error(w, "Failed to render catalog", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(html)
}
