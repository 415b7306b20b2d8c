package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrina/models"
	"vitrina/repository"
)

func exportCatalog(n int) *models.Catalog {
	expires := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	c := &models.Catalog{ID: "c1", Name: "Navidad", Slug: "navidad", ExpiresAt: &expires}
	for i := 0; i < n; i++ {
		c.Items = append(c.Items, models.CatalogItem{
			ID:       fmt.Sprintf("i%d", i),
			Position: i,
			Product: &models.Product{
				ID:     fmt.Sprintf("p%d", i),
				Name:   fmt.Sprintf("Producto %d", i),
				Price:  decimal.NewFromInt(25000),
				Images: []models.ProductImage{{ID: fmt.Sprintf("img%d", i)}},
			},
		})
	}
	c.Items = append(c.Items, models.CatalogItem{ID: "dangling"})
	return c
}

func TestRenderCatalogHTML(t *testing.T) {
	repo := &fakeCatalogs{bySlug: map[string]*models.Catalog{"navidad": exportCatalog(10)}}
	svc := NewCatalogExportService(repo, "http://localhost:8080", "")

	out, err := svc.RenderCatalogHTML(context.Background(), "navidad")
	require.NoError(t, err)

	html := string(out)
	assert.Equal(t, 2, strings.Count(html, `<section class="page">`))
	assert.Equal(t, 10, strings.Count(html, `class="item"`))
	assert.Contains(t, html, "$25.000")
	assert.Contains(t, html, "Válido hasta 31/12/2025")
	assert.Contains(t, html, "/imagenes/img0?size=medium")
}

func TestRenderCatalogHTMLEmptyCatalog(t *testing.T) {
	repo := &fakeCatalogs{bySlug: map[string]*models.Catalog{"vacio": {Name: "Vacío", Slug: "vacio"}}}
	svc := NewCatalogExportService(repo, "", "")

	out, err := svc.RenderCatalogHTML(context.Background(), "vacio")
	require.NoError(t, err)
	assert.Contains(t, string(out), "<h1>Vacío</h1>")
}

func TestRenderCatalogHTMLNotFound(t *testing.T) {
	svc := NewCatalogExportService(&fakeCatalogs{}, "", "")

	_, err := svc.RenderCatalogHTML(context.Background(), "nada")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
