package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"vitrina/models"
	"vitrina/repository"
	"vitrina/service"
	"vitrina/utils"
)

// AdminProductController handles the admin product pages
type AdminProductController struct {
	repository    repository.ProductRepositoryInterface
	importService service.ImageImportServiceInterface
	driveFolderID string
	notifier      Notifier
}

// NewAdminProductController creates a new AdminProductController.
// importService may be nil when Google Drive is not configured.
func NewAdminProductController(repo repository.ProductRepositoryInterface, importService service.ImageImportServiceInterface, driveFolderID string, notifier Notifier) *AdminProductController {
	return &AdminProductController{
		repository:    repo,
		importService: importService,
		driveFolderID: driveFolderID,
		notifier:      notifier,
	}
}

// List handles GET /admin/productos
// Query: categoria, q
func (c *AdminProductController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filters models.ProductFilterParams
	if v := strings.TrimSpace(q.Get("categoria")); v != "" {
		filters.Category = &v
	}
	if v := strings.TrimSpace(q.Get("q")); v != "" {
		filters.Search = &v
	}

	products, err := c.repository.List(r.Context(), filters)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list products")
		return
	}
	writeJSON(w, http.StatusOK, products, "ListProducts")
}

// Get handles GET /admin/productos/editar/{id}
func (c *AdminProductController) Get(w http.ResponseWriter, r *http.Request) {
	product, err := c.repository.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Producto no encontrado")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get product")
		return
	}
	writeJSON(w, http.StatusOK, product, "GetProduct")
}

func decodeProduct(r *http.Request) (*models.SaveProductRequest, error) {
	var req models.SaveProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, errors.New("nombre cannot be empty")
	}
	if req.Price.IsNegative() {
		return nil, errors.New("precio cannot be negative")
	}
	if strings.TrimSpace(req.Slug) == "" {
		req.Slug = utils.Slugify(req.Name)
	}
	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	return &req, nil
}

// Create handles POST /admin/productos/nuevo
func (c *AdminProductController) Create(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateProduct: Received %s request to %s", r.Method, r.URL.Path)

	req, err := decodeProduct(r)
	if err != nil {
		log.Printf("❌ CreateProduct: %v", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := c.repository.Create(r.Context(), req)
	if err != nil {
		c.notifier.Error("No se pudo crear el producto")
		writeError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	c.notifier.Success("Producto creado")
	writeJSON(w, http.StatusCreated, product, "CreateProduct")
}

// Update handles PUT /admin/productos/editar/{id}
func (c *AdminProductController) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	log.Printf("📥 UpdateProduct: Received %s request for id=%s", r.Method, id)

	req, err := decodeProduct(r)
	if err != nil {
		log.Printf("❌ UpdateProduct: %v", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := c.repository.Update(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Producto no encontrado")
			return
		}
		c.notifier.Error("No se pudo guardar el producto")
		writeError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}

	c.notifier.Success("Producto guardado")
	writeJSON(w, http.StatusOK, product, "UpdateProduct")
}

// Delete handles DELETE /admin/productos/{id}
func (c *AdminProductController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.repository.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Producto no encontrado")
			return
		}
		c.notifier.Error("No se pudo eliminar el producto")
		writeError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	c.notifier.Success("Producto eliminado")
	w.WriteHeader(http.StatusNoContent)
}

// Import handles POST /admin/productos/importar
// Query: folderId (defaults to DRIVE_FOLDER_ID)
func (c *AdminProductController) Import(w http.ResponseWriter, r *http.Request) {
	if c.importService == nil {
		writeError(w, http.StatusServiceUnavailable, "Google Drive is not configured")
		return
	}

	folderID := r.URL.Query().Get("folderId")
	if folderID == "" {
		folderID = c.driveFolderID
	}
	if folderID == "" {
		writeError(w, http.StatusBadRequest, "folderId is required")
		return
	}
	if err := service.ValidateFolderID(folderID); err != nil {
		writeError(w, http.StatusBadRequest, "folderId is invalid")
		return
	}

	result, err := c.importService.ImportProductImages(r.Context(), folderID)
	if err != nil {
		log.Printf("❌ ImportImages: %v", err)
		c.notifier.Error("No se pudieron importar las imágenes")
		writeError(w, http.StatusBadGateway, "Failed to import images")
		return
	}

	c.notifier.Success(fmt.Sprintf("%d imágenes importadas", result.Attached))
	writeJSON(w, http.StatusOK, result, "ImportImages")
}
