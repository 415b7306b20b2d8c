package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"vitrina/models"
	"vitrina/repository"
	"vitrina/service"
	"vitrina/utils"
)

// AdminCatalogController handles the admin catalog pages
type AdminCatalogController struct {
	repository repository.CatalogRepositoryInterface
	export     service.CatalogExportServiceInterface
	notifier   Notifier
}

// NewAdminCatalogController creates a new AdminCatalogController
func NewAdminCatalogController(repo repository.CatalogRepositoryInterface, export service.CatalogExportServiceInterface, notifier Notifier) *AdminCatalogController {
	return &AdminCatalogController{
		repository: repo,
		export:     export,
		notifier:   notifier,
	}
}

// List handles GET /admin/catalogos
func (c *AdminCatalogController) List(w http.ResponseWriter, r *http.Request) {
	catalogs, err := c.repository.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list catalogs")
		return
	}
	writeJSON(w, http.StatusOK, catalogs, "ListCatalogs")
}

// Get handles GET /admin/catalogos/editar/{id}
func (c *AdminCatalogController) Get(w http.ResponseWriter, r *http.Request) {
	catalog, err := c.repository.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Catálogo no encontrado")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get catalog")
		return
	}
	writeJSON(w, http.StatusOK, catalog, "GetCatalog")
}

func decodeCatalog(r *http.Request) (*models.SaveCatalogRequest, error) {
	var req models.SaveCatalogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, errors.New("nombre cannot be empty")
	}
	req.Slug = utils.Slugify(lo.Ternary(strings.TrimSpace(req.Slug) == "", req.Name, req.Slug))
	if req.Slug == "" {
		return nil, errors.New("slug cannot be empty")
	}
	req.ProductIDs = lo.Uniq(lo.Compact(req.ProductIDs))
	return &req, nil
}

// Create handles POST /admin/catalogos/nuevo
func (c *AdminCatalogController) Create(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateCatalog: Received %s request to %s", r.Method, r.URL.Path)

	req, err := decodeCatalog(r)
	if err != nil {
		log.Printf("❌ CreateCatalog: %v", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	catalog, err := c.repository.Create(r.Context(), req)
	if err != nil {
		c.notifier.Error("No se pudo crear el catálogo")
		writeError(w, http.StatusInternalServerError, "Failed to create catalog")
		return
	}

	c.notifier.Success("Catálogo creado")
	writeJSON(w, http.StatusCreated, catalog, "CreateCatalog")
}

// Update handles PUT /admin/catalogos/editar/{id}
func (c *AdminCatalogController) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	req, err := decodeCatalog(r)
	if err != nil {
		log.Printf("❌ UpdateCatalog: %v", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	catalog, err := c.repository.Update(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Catálogo no encontrado")
			return
		}
		c.notifier.Error("No se pudo guardar el catálogo")
		writeError(w, http.StatusInternalServerError, "Failed to update catalog")
		return
	}

	c.notifier.Success("Catálogo guardado")
	writeJSON(w, http.StatusOK, catalog, "UpdateCatalog")
}

// Delete handles DELETE /admin/catalogos/{id}
func (c *AdminCatalogController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.repository.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Catálogo no encontrado")
			return
		}
		c.notifier.Error("No se pudo eliminar el catálogo")
		writeError(w, http.StatusInternalServerError, "Failed to delete catalog")
		return
	}

	c.notifier.Success("Catálogo eliminado")
	w.WriteHeader(http.StatusNoContent)
}

// PDF handles GET /admin/catalogos/{id}/pdf
func (c *AdminCatalogController) PDF(w http.ResponseWriter, r *http.Request) {
	catalog, err := c.repository.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Catálogo no encontrado")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get catalog")
		return
	}

	pdf, err := c.export.GeneratePDF(r.Context(), catalog.Slug)
	if err != nil {
		log.Printf("❌ CatalogPDF: %v", err)
		c.notifier.Error("No se pudo generar el PDF")
		writeError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.pdf"`, catalog.Slug))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
