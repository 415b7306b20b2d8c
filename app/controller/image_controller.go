package controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vitrina/repository"
	"vitrina/service"
)

// ImageController serves optimized product images
type ImageController struct {
	images service.ImageServiceInterface
}

// NewImageController creates a new ImageController
func NewImageController(images service.ImageServiceInterface) *ImageController {
	return &ImageController{images: images}
}

// GetOptimized handles GET /imagenes/{id}?size=thumb|medium
func (c *ImageController) GetOptimized(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	size := r.URL.Query().Get("size")
	if size == "" {
		size = service.SizeMedium
	}
	if size != service.SizeThumb && size != service.SizeMedium {
		http.Error(w, "size must be thumb or medium", http.StatusBadRequest)
		return
	}

	data, err := c.images.GetOptimized(r.Context(), id, size)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Image not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ GetOptimizedImage: id=%s size=%s: %v", id, size, err)
		http.Error(w, "Failed to load image", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
