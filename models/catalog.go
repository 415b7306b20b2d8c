package models

import "time"

// Catalog represents a shareable collection of products exposed via a slug
type Catalog struct {
	ID        string        `json:"id"`
	Name      string        `json:"nombre"`
	Slug      string        `json:"slug"`
	ExpiresAt *time.Time    `json:"fechaCaducidad,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	Items     []CatalogItem `json:"items"`
}

// CatalogItem links a catalog to one product. Product is nil when the
// referenced product no longer resolves.
type CatalogItem struct {
	ID       string   `json:"id"`
	Position int      `json:"orden"`
	Product  *Product `json:"producto,omitempty"`
}

// CatalogSummary is the row shape used by the admin catalog list
type CatalogSummary struct {
	ID        string     `json:"id"`
	Name      string     `json:"nombre"`
	Slug      string     `json:"slug"`
	ExpiresAt *time.Time `json:"fechaCaducidad,omitempty"`
	ItemCount int        `json:"totalItems"`
	CreatedAt time.Time  `json:"createdAt"`
}

// SaveCatalogRequest represents the request body for creating or updating a catalog
type SaveCatalogRequest struct {
	Name       string     `json:"nombre"`
	Slug       string     `json:"slug"`
	ExpiresAt  *time.Time `json:"fechaCaducidad"`
	ProductIDs []string   `json:"productoIds"`
}
