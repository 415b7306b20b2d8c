package repository

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"vitrina/db"
	"vitrina/models"
)

// ProductImageRepository handles database operations for product images
type ProductImageRepository struct{}

// NewProductImageRepository creates a new ProductImageRepository
func NewProductImageRepository() *ProductImageRepository {
	return &ProductImageRepository{}
}

// Ensure ProductImageRepository implements ProductImageRepositoryInterface
var _ ProductImageRepositoryInterface = (*ProductImageRepository)(nil)

// GetByID retrieves a product image
func (r *ProductImageRepository) GetByID(ctx context.Context, id string) (*models.ProductImage, error) {
	query := `
		SELECT id, producto_id, COALESCE(url, ''), COALESCE(drive_file_id, ''), orden
		FROM producto_imagenes
		WHERE id = $1
	`
	var img models.ProductImage
	err := db.DB.QueryRowContext(ctx, query, id).Scan(&img.ID, &img.ProductID, &img.URL, &img.DriveFileID, &img.Position)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		log.Printf("❌ Error fetching product image %s: %v", id, err)
		return nil, fmt.Errorf("failed to get product image: %w", err)
	}
	return &img, nil
}

// ExistsByDriveFileID checks if an image was already imported from Drive
func (r *ProductImageRepository) ExistsByDriveFileID(ctx context.Context, driveFileID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM producto_imagenes WHERE drive_file_id = $1)`
	if err := db.DB.QueryRowContext(ctx, query, driveFileID).Scan(&exists); err != nil {
		log.Printf("❌ Error checking existence for drive_file_id %s: %v", driveFileID, err)
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return exists, nil
}

// Insert attaches a new image to a product. Duplicate Drive files are ignored.
func (r *ProductImageRepository) Insert(ctx context.Context, image *models.ProductImage) error {
	if image.ID == "" {
		image.ID = uuid.NewString()
	}

	query := `
		INSERT INTO producto_imagenes (id, producto_id, url, drive_file_id, orden)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (drive_file_id) DO NOTHING
	`
	_, err := db.DB.ExecContext(ctx, query,
		image.ID,
		image.ProductID,
		nullString(image.URL),
		nullString(image.DriveFileID),
		image.Position,
	)
	if err != nil {
		log.Printf("❌ Database INSERT error for product image (producto_id: %s): %v", image.ProductID, err)
		return fmt.Errorf("failed to insert product image: %w", err)
	}

	log.Printf("💾 Database: Successfully inserted product image %s for producto_id %s", image.ID, image.ProductID)
	return nil
}
