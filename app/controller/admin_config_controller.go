package controller

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"vitrina/repository"
)

// ConfigResetter drops the cached site config so the next page refetches it
type ConfigResetter interface {
	Reset()
}

// AdminConfigController handles GET|PUT /admin/configuracion
type AdminConfigController struct {
	repository repository.SiteConfigRepositoryInterface
	loader     ConfigResetter
	notifier   Notifier
}

// NewAdminConfigController creates a new AdminConfigController
func NewAdminConfigController(repo repository.SiteConfigRepositoryInterface, loader ConfigResetter, notifier Notifier) *AdminConfigController {
	return &AdminConfigController{
		repository: repo,
		loader:     loader,
		notifier:   notifier,
	}
}

// Get returns the stored configuration, or {} when none was saved yet
func (c *AdminConfigController) Get(w http.ResponseWriter, r *http.Request) {
	raw, err := c.repository.Get(r.Context())
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusInternalServerError, "Failed to get site config")
			return
		}
		raw = json.RawMessage("{}")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

// Save replaces the configuration with the request body
func (c *AdminConfigController) Save(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil || !json.Valid(body) {
		writeError(w, http.StatusBadRequest, "Invalid request body: expected JSON")
		return
	}

	if err := c.repository.Save(r.Context(), json.RawMessage(body)); err != nil {
		log.Printf("❌ SaveConfig: %v", err)
		c.notifier.Error("No se pudo guardar la configuración")
		writeError(w, http.StatusInternalServerError, "Failed to save site config")
		return
	}

	c.loader.Reset()
	c.notifier.Success("Configuración guardada")
	w.WriteHeader(http.StatusNoContent)
}
