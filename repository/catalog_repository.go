package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"vitrina/db"
	"vitrina/models"
)

// CatalogRepository handles database operations for catalogs
type CatalogRepository struct{}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{}
}

// Ensure CatalogRepository implements CatalogRepositoryInterface
var _ CatalogRepositoryInterface = (*CatalogRepository)(nil)

// catalogSelect joins a catalog with its items, products and product images.
// One row per (item, image) pair; items without product and products without
// images still produce a row through the LEFT JOINs.
const catalogSelect = `
	SELECT
		c.id,
		c.nombre,
		c.slug,
		c.fecha_caducidad,
		c.created_at,
		ci.id,
		ci.orden,
		p.id,
		p.nombre,
		p.codigo,
		p.slug,
		p.categoria,
		p.descripcion,
		p.precio,
		p.created_at,
		pi.id,
		pi.url,
		pi.drive_file_id,
		pi.orden
	FROM catalogos c
	LEFT JOIN catalogo_items ci ON ci.catalogo_id = c.id
	LEFT JOIN productos p ON p.id = ci.producto_id
	LEFT JOIN producto_imagenes pi ON pi.producto_id = p.id
`

const catalogOrder = ` ORDER BY ci.orden ASC NULLS LAST, ci.id ASC, pi.orden ASC, pi.id ASC`

// catalogRow is one scanned row of catalogSelect
type catalogRow struct {
	catalogID   string
	name        string
	slug        string
	expiresAt   sql.NullTime
	createdAt   time.Time
	itemID      sql.NullString
	itemOrder   sql.NullInt32
	productID   sql.NullString
	productName sql.NullString
	code        sql.NullString
	productSlug sql.NullString
	category    sql.NullString
	description sql.NullString
	price       decimal.NullDecimal
	productAt   sql.NullTime
	imageID     sql.NullString
	imageURL    sql.NullString
	driveFileID sql.NullString
	imageOrder  sql.NullInt32
}

// GetBySlug retrieves a catalog with its items, products and images in a single query
func (r *CatalogRepository) GetBySlug(ctx context.Context, slug string) (*models.Catalog, error) {
	log.Printf("🔍 GetBySlug: Fetching catalog slug=%s", slug)
	return r.getOne(ctx, catalogSelect+` WHERE c.slug = $1`+catalogOrder, slug)
}

// GetByID retrieves a catalog by id with the same nesting as GetBySlug
func (r *CatalogRepository) GetByID(ctx context.Context, id string) (*models.Catalog, error) {
	log.Printf("🔍 GetByID: Fetching catalog id=%s", id)
	return r.getOne(ctx, catalogSelect+` WHERE c.id = $1`+catalogOrder, id)
}

func (r *CatalogRepository) getOne(ctx context.Context, query string, arg string) (*models.Catalog, error) {
	rows, err := db.DB.QueryContext(ctx, query, arg)
	if err != nil {
		log.Printf("❌ Error querying catalog: %v", err)
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()

	var scanned []catalogRow
	for rows.Next() {
		var row catalogRow
		err := rows.Scan(
			&row.catalogID,
			&row.name,
			&row.slug,
			&row.expiresAt,
			&row.createdAt,
			&row.itemID,
			&row.itemOrder,
			&row.productID,
			&row.productName,
			&row.code,
			&row.productSlug,
			&row.category,
			&row.description,
			&row.price,
			&row.productAt,
			&row.imageID,
			&row.imageURL,
			&row.driveFileID,
			&row.imageOrder,
		)
		if err != nil {
			log.Printf("❌ Error scanning catalog row: %v", err)
			return nil, fmt.Errorf("failed to scan catalog row: %w", err)
		}
		scanned = append(scanned, row)
	}

	if err := rows.Err(); err != nil {
		log.Printf("❌ Error iterating catalog rows: %v", err)
		return nil, fmt.Errorf("failed to iterate catalog rows: %w", err)
	}

	if len(scanned) == 0 {
		return nil, ErrNotFound
	}

	catalog := assembleCatalog(scanned)
	log.Printf("✓ Successfully fetched catalog slug=%s with %d items", catalog.Slug, len(catalog.Items))
	return catalog, nil
}

// assembleCatalog folds the flat join rows back into the nested catalog,
// keeping item order and image order as returned by the query
func assembleCatalog(rows []catalogRow) *models.Catalog {
	first := rows[0]
	catalog := &models.Catalog{
		ID:        first.catalogID,
		Name:      first.name,
		Slug:      first.slug,
		CreatedAt: first.createdAt,
		Items:     []models.CatalogItem{},
	}
	if first.expiresAt.Valid {
		t := first.expiresAt.Time
		catalog.ExpiresAt = &t
	}

	itemIndex := make(map[string]int)
	seenImages := make(map[string]bool)

	for _, row := range rows {
		if !row.itemID.Valid {
			continue
		}

		idx, ok := itemIndex[row.itemID.String]
		if !ok {
			item := models.CatalogItem{
				ID:       row.itemID.String,
				Position: int(row.itemOrder.Int32),
			}
			if row.productID.Valid {
				item.Product = &models.Product{
					ID:          row.productID.String,
					Name:        row.productName.String,
					Code:        row.code.String,
					Slug:        row.productSlug.String,
					Category:    strings.TrimSpace(row.category.String),
					Description: row.description.String,
					Price:       row.price.Decimal,
					CreatedAt:   row.productAt.Time,
					Images:      []models.ProductImage{},
				}
			}
			catalog.Items = append(catalog.Items, item)
			idx = len(catalog.Items) - 1
			itemIndex[row.itemID.String] = idx
		}

		product := catalog.Items[idx].Product
		if product == nil || !row.imageID.Valid {
			continue
		}
		key := row.itemID.String + "/" + row.imageID.String
		if seenImages[key] {
			continue
		}
		seenImages[key] = true
		product.Images = append(product.Images, models.ProductImage{
			ID:          row.imageID.String,
			ProductID:   product.ID,
			URL:         row.imageURL.String,
			DriveFileID: row.driveFileID.String,
			Position:    int(row.imageOrder.Int32),
		})
	}

	return catalog
}

// List retrieves all catalogs with their item counts, newest first
func (r *CatalogRepository) List(ctx context.Context) ([]models.CatalogSummary, error) {
	query := `
		SELECT c.id, c.nombre, c.slug, c.fecha_caducidad, c.created_at, COUNT(ci.id)
		FROM catalogos c
		LEFT JOIN catalogo_items ci ON ci.catalogo_id = c.id
		GROUP BY c.id
		ORDER BY c.created_at DESC
	`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ Error listing catalogs: %v", err)
		return nil, fmt.Errorf("failed to list catalogs: %w", err)
	}
	defer rows.Close()

	summaries := []models.CatalogSummary{}
	for rows.Next() {
		var s models.CatalogSummary
		var expiresAt sql.NullTime
		if err := rows.Scan(&s.ID, &s.Name, &s.Slug, &expiresAt, &s.CreatedAt, &s.ItemCount); err != nil {
			log.Printf("❌ Error scanning catalog summary: %v", err)
			continue
		}
		if expiresAt.Valid {
			t := expiresAt.Time
			s.ExpiresAt = &t
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate catalogs: %w", err)
	}

	log.Printf("✓ Successfully listed %d catalogs", len(summaries))
	return summaries, nil
}

// Create inserts a catalog and its items in one transaction
func (r *CatalogRepository) Create(ctx context.Context, req *models.SaveCatalogRequest) (*models.Catalog, error) {
	log.Printf("📦 Create: Creating catalog slug=%s with %d products", req.Slug, len(req.ProductIDs))

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	id := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO catalogos (id, nombre, slug, fecha_caducidad, created_at) VALUES ($1, $2, $3, $4, NOW())`,
		id, req.Name, req.Slug, nullTime(req.ExpiresAt),
	)
	if err != nil {
		log.Printf("❌ Error inserting catalog: %v", err)
		return nil, fmt.Errorf("failed to insert catalog: %w", err)
	}

	if err := insertCatalogItems(ctx, tx, id, req.ProductIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✓ Successfully created catalog id=%s", id)
	return r.GetByID(ctx, id)
}

// Update replaces the catalog fields and its item list in one transaction
func (r *CatalogRepository) Update(ctx context.Context, id string, req *models.SaveCatalogRequest) (*models.Catalog, error) {
	log.Printf("📝 Update: Updating catalog id=%s", id)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE catalogos SET nombre = $2, slug = $3, fecha_caducidad = $4 WHERE id = $1`,
		id, req.Name, req.Slug, nullTime(req.ExpiresAt),
	)
	if err != nil {
		log.Printf("❌ Error updating catalog: %v", err)
		return nil, fmt.Errorf("failed to update catalog: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM catalogo_items WHERE catalogo_id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to clear catalog items: %w", err)
	}
	if err := insertCatalogItems(ctx, tx, id, req.ProductIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✓ Successfully updated catalog id=%s", id)
	return r.GetByID(ctx, id)
}

// Delete removes a catalog; its items cascade
func (r *CatalogRepository) Delete(ctx context.Context, id string) error {
	res, err := db.DB.ExecContext(ctx, `DELETE FROM catalogos WHERE id = $1`, id)
	if err != nil {
		log.Printf("❌ Error deleting catalog: %v", err)
		return fmt.Errorf("failed to delete catalog: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	log.Printf("🗑️  Deleted catalog id=%s", id)
	return nil
}

func insertCatalogItems(ctx context.Context, tx *sql.Tx, catalogID string, productIDs []string) error {
	for i, productID := range productIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO catalogo_items (id, catalogo_id, producto_id, orden) VALUES ($1, $2, $3, $4)`,
			uuid.NewString(), catalogID, productID, i,
		)
		if err != nil {
			log.Printf("❌ Error inserting catalog item product=%s: %v", productID, err)
			return fmt.Errorf("failed to insert catalog item: %w", err)
		}
	}
	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// isNoRows reports whether err is the database/sql no-rows sentinel
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
