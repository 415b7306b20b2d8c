package models

import "github.com/shopspring/decimal"

// ShortlistResponse is returned by the cotización endpoints
type ShortlistResponse struct {
	Total      int             `json:"totalProductos"`
	ProductIDs []string        `json:"productoIds"`
	Products   []Product       `json:"productos,omitempty"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Formatted  string          `json:"subtotalFormateado"`
}
