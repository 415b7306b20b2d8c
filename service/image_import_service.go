package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"vitrina/models"
	"vitrina/repository"
)

// ImageImportServiceInterface defines the contract for importing product images
type ImageImportServiceInterface interface {
	ImportProductImages(ctx context.Context, folderID string) (*models.ImageImportResult, error)
}

// ImageImportService attaches Google Drive images to products by product code
type ImageImportService struct {
	driveService DriveServiceInterface
	products     repository.ProductRepositoryInterface
	images       repository.ProductImageRepositoryInterface
}

// NewImageImportService creates a new ImageImportService
func NewImageImportService(driveService DriveServiceInterface, products repository.ProductRepositoryInterface, images repository.ProductImageRepositoryInterface) *ImageImportService {
	return &ImageImportService{
		driveService: driveService,
		products:     products,
		images:       images,
	}
}

// Ensure ImageImportService implements ImageImportServiceInterface
var _ ImageImportServiceInterface = (*ImageImportService)(nil)

// ImportProductImages lists the folder and attaches each new image to the
// product whose code matches the file name. Files already imported are
// skipped; files with no matching product are reported as unmatched.
func (s *ImageImportService) ImportProductImages(ctx context.Context, folderID string) (*models.ImageImportResult, error) {
	if err := ValidateFolderID(folderID); err != nil {
		return nil, err
	}
	log.Printf("🔄 Starting image import for folder: %s", folderID)

	driveImages, err := s.driveService.ListProductImages(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list product images from Drive: %w", err)
	}

	result := &models.ImageImportResult{Total: len(driveImages), Unmatched: []string{}}

	for _, img := range driveImages {
		exists, err := s.images.ExistsByDriveFileID(ctx, img.DriveFileID)
		if err != nil {
			log.Printf("❌ Error checking existence for drive_file_id: %s: %v", img.DriveFileID, err)
			continue
		}
		if exists {
			log.Printf("⏭️  Skipping drive_file_id: %s (already imported)", img.DriveFileID)
			result.Skipped++
			continue
		}

		product, err := s.products.GetByCode(ctx, img.ProductCode)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				log.Printf("⚠️  No product with code %s for %s", img.ProductCode, img.FileName)
				result.Unmatched = append(result.Unmatched, img.FileName)
				continue
			}
			log.Printf("❌ Error looking up product code %s: %v", img.ProductCode, err)
			continue
		}

		log.Printf("💾 Attaching %s to producto_id %s (orden %d)", img.FileName, product.ID, img.Position)
		if err := s.images.Insert(ctx, &models.ProductImage{
			ProductID:   product.ID,
			DriveFileID: img.DriveFileID,
			Position:    img.Position,
		}); err != nil {
			log.Printf("❌ Error inserting drive_file_id %s: %v", img.DriveFileID, err)
			continue
		}
		result.Attached++
	}

	log.Printf("🎉 Image import completed: %d attached, %d skipped, %d unmatched, %d total", result.Attached, result.Skipped, len(result.Unmatched), result.Total)
	return result, nil
}
