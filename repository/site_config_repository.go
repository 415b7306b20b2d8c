package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"vitrina/db"
)

// SiteConfigRepository reads and writes the singleton sitio_configuracion row
type SiteConfigRepository struct{}

// NewSiteConfigRepository creates a new SiteConfigRepository
func NewSiteConfigRepository() *SiteConfigRepository {
	return &SiteConfigRepository{}
}

// Ensure SiteConfigRepository implements SiteConfigRepositoryInterface
var _ SiteConfigRepositoryInterface = (*SiteConfigRepository)(nil)

// Get returns the raw config_json blob
func (r *SiteConfigRepository) Get(ctx context.Context) (json.RawMessage, error) {
	var raw []byte
	err := db.DB.QueryRowContext(ctx, `SELECT config_json FROM sitio_configuracion WHERE id = true`).Scan(&raw)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get site config: %w", err)
	}
	return json.RawMessage(raw), nil
}

// Save upserts the config_json blob
func (r *SiteConfigRepository) Save(ctx context.Context, config json.RawMessage) error {
	if !json.Valid(config) {
		return fmt.Errorf("config_json is not valid JSON")
	}

	query := `
		INSERT INTO sitio_configuracion (id, config_json) VALUES (true, $1::jsonb)
		ON CONFLICT (id) DO UPDATE SET config_json = EXCLUDED.config_json
	`
	if _, err := db.DB.ExecContext(ctx, query, string(config)); err != nil {
		log.Printf("❌ Error saving site config: %v", err)
		return fmt.Errorf("failed to save site config: %w", err)
	}
	log.Printf("✓ Site config saved (%d bytes)", len(config))
	return nil
}
