package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"vitrina/db"
	"vitrina/models"
)

// ProductRepository handles database operations for products
type ProductRepository struct{}

// NewProductRepository creates a new ProductRepository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// Ensure ProductRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*ProductRepository)(nil)

const productColumns = `
	id, nombre, COALESCE(codigo, ''), COALESCE(slug, ''), COALESCE(categoria, ''),
	COALESCE(descripcion, ''), precio, created_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(s rowScanner) (*models.Product, error) {
	var p models.Product
	err := s.Scan(&p.ID, &p.Name, &p.Code, &p.Slug, &p.Category, &p.Description, &p.Price, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.Category = strings.TrimSpace(p.Category)
	p.Images = []models.ProductImage{}
	return &p, nil
}

// List retrieves products matching the provided filters, ordered by name
func (r *ProductRepository) List(ctx context.Context, filters models.ProductFilterParams) ([]models.Product, error) {
	log.Printf("🔍 Listing products with filters: category=%v, search=%v", filters.Category, filters.Search)

	query := `SELECT ` + productColumns + ` FROM productos WHERE 1 = 1`

	var args []any
	argIndex := 1

	if filters.Category != nil && *filters.Category != "" {
		query += fmt.Sprintf(" AND categoria = $%d", argIndex)
		args = append(args, *filters.Category)
		argIndex++
	}

	if filters.Search != nil && *filters.Search != "" {
		query += fmt.Sprintf(" AND (nombre ILIKE $%d OR codigo ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+*filters.Search+"%")
		argIndex++
	}

	query += " ORDER BY nombre ASC"

	return r.query(ctx, query, args...)
}

// ListCategories returns the distinct non-blank categories in use
func (r *ProductRepository) ListCategories(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT TRIM(categoria)
		FROM productos
		WHERE categoria IS NOT NULL AND TRIM(categoria) <> ''
		ORDER BY 1
	`
	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ Error listing categories: %v", err)
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return categories, nil
}

// GetByID retrieves a product and its images
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM productos WHERE id = $1`, id)
}

// GetBySlug retrieves a product and its images by slug
func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM productos WHERE slug = $1`, slug)
}

// GetByCode retrieves a product by its code, case-insensitively
func (r *ProductRepository) GetByCode(ctx context.Context, code string) (*models.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM productos WHERE UPPER(codigo) = UPPER($1) LIMIT 1`, code)
}

// GetByIDs retrieves the products with the given ids; unknown ids are skipped
func (r *ProductRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	return r.query(ctx, `SELECT `+productColumns+` FROM productos WHERE id = ANY($1) ORDER BY nombre ASC`, ids)
}

// Create inserts a new product
func (r *ProductRepository) Create(ctx context.Context, req *models.SaveProductRequest) (*models.Product, error) {
	id := uuid.NewString()
	log.Printf("📦 Create: Creating product id=%s, nombre=%s", id, req.Name)

	query := `
		INSERT INTO productos (id, nombre, codigo, slug, categoria, descripcion, precio, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING ` + productColumns

	product, err := scanProduct(db.DB.QueryRowContext(ctx, query,
		id,
		req.Name,
		nullString(req.Code),
		nullString(req.Slug),
		nullString(req.Category),
		nullString(req.Description),
		req.Price,
	))
	if err != nil {
		log.Printf("❌ Error inserting product: %v", err)
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	log.Printf("✓ Successfully created product id=%s", product.ID)
	return product, nil
}

// Update replaces the editable fields of a product
func (r *ProductRepository) Update(ctx context.Context, id string, req *models.SaveProductRequest) (*models.Product, error) {
	log.Printf("📝 Update: Updating product id=%s", id)

	query := `
		UPDATE productos
		SET nombre = $2, codigo = $3, slug = $4, categoria = $5, descripcion = $6, precio = $7
		WHERE id = $1
		RETURNING ` + productColumns

	product, err := scanProduct(db.DB.QueryRowContext(ctx, query,
		id,
		req.Name,
		nullString(req.Code),
		nullString(req.Slug),
		nullString(req.Category),
		nullString(req.Description),
		req.Price,
	))
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		log.Printf("❌ Error updating product: %v", err)
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	if err := loadImages(ctx, []*models.Product{product}); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product; catalog items referencing it become unresolved
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	res, err := db.DB.ExecContext(ctx, `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		log.Printf("❌ Error deleting product: %v", err)
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	log.Printf("🗑️  Deleted product id=%s", id)
	return nil
}

func (r *ProductRepository) getOne(ctx context.Context, query string, arg string) (*models.Product, error) {
	product, err := scanProduct(db.DB.QueryRowContext(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		log.Printf("❌ Error fetching product: %v", err)
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if err := loadImages(ctx, []*models.Product{product}); err != nil {
		return nil, err
	}
	return product, nil
}

func (r *ProductRepository) query(ctx context.Context, query string, args ...any) ([]models.Product, error) {
	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Printf("❌ Error querying products: %v", err)
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var ptrs []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Printf("❌ Error scanning product: %v", err)
			continue
		}
		ptrs = append(ptrs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	if err := loadImages(ctx, ptrs); err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(ptrs))
	for _, p := range ptrs {
		products = append(products, *p)
	}
	log.Printf("✓ Successfully fetched %d products", len(products))
	return products, nil
}

// loadImages attaches images to the given products with one query
func loadImages(ctx context.Context, products []*models.Product) error {
	if len(products) == 0 {
		return nil
	}

	byID := make(map[string]*models.Product, len(products))
	ids := make([]string, 0, len(products))
	for _, p := range products {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	query := `
		SELECT id, producto_id, COALESCE(url, ''), COALESCE(drive_file_id, ''), orden
		FROM producto_imagenes
		WHERE producto_id = ANY($1)
		ORDER BY orden ASC, id ASC
	`
	rows, err := db.DB.QueryContext(ctx, query, ids)
	if err != nil {
		log.Printf("❌ Error loading product images: %v", err)
		return fmt.Errorf("failed to load product images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var img models.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.URL, &img.DriveFileID, &img.Position); err != nil {
			return fmt.Errorf("failed to scan product image: %w", err)
		}
		if p, ok := byID[img.ProductID]; ok {
			p.Images = append(p.Images, img)
		}
	}
	return rows.Err()
}

func nullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}
