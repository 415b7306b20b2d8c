package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product owned by the store
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"nombre"`
	Code        string          `json:"codigo,omitempty"`
	Slug        string          `json:"slug,omitempty"`
	Category    string          `json:"categoria,omitempty"`
	Description string          `json:"descripcion,omitempty"`
	Price       decimal.Decimal `json:"precio"`
	Images      []ProductImage  `json:"imagenes"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ProductImage is an image attached to a product. Either URL or DriveFileID is set.
type ProductImage struct {
	ID          string `json:"id"`
	ProductID   string `json:"productoId"`
	URL         string `json:"url,omitempty"`
	DriveFileID string `json:"driveFileId,omitempty"`
	Position    int    `json:"orden"`
}

// SaveProductRequest represents the request body for creating or updating a product
type SaveProductRequest struct {
	Name        string          `json:"nombre"`
	Code        string          `json:"codigo"`
	Slug        string          `json:"slug"`
	Category    string          `json:"categoria"`
	Description string          `json:"descripcion"`
	Price       decimal.Decimal `json:"precio"`
}

// ProductFilterParams represents optional filter parameters for the admin product list
type ProductFilterParams struct {
	Category *string
	Search   *string
}
