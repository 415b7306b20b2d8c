package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"vitrina/repository"
)

// ImageServiceInterface defines the contract for serving optimized product images
type ImageServiceInterface interface {
	GetOptimized(ctx context.Context, imageID string, size string) ([]byte, error)
}

// ImageService serves product images optimized for the web. The source is
// Google Drive when the image has a drive_file_id, its URL otherwise.
type ImageService struct {
	images       repository.ProductImageRepositoryInterface
	driveService DriveServiceInterface
	cache        *ImageCache
	httpClient   *http.Client
}

// NewImageService creates a new ImageService. driveService may be nil when
// Drive is not configured.
func NewImageService(images repository.ProductImageRepositoryInterface, driveService DriveServiceInterface, cache *ImageCache) *ImageService {
	return &ImageService{
		images:       images,
		driveService: driveService,
		cache:        cache,
		httpClient:   &http.Client{Timeout: 20 * time.Second},
	}
}

// Ensure ImageService implements ImageServiceInterface
var _ ImageServiceInterface = (*ImageService)(nil)

// GetOptimized returns the image resized for size, reading the disk cache first
func (s *ImageService) GetOptimized(ctx context.Context, imageID string, size string) ([]byte, error) {
	cachePath := s.cache.Path(imageID, size)
	if data, ok := s.cache.Read(cachePath); ok {
		return data, nil
	}

	img, err := s.images.GetByID(ctx, imageID)
	if err != nil {
		return nil, err
	}

	var raw []byte
	switch {
	case img.DriveFileID != "" && s.driveService != nil:
		raw, err = s.driveService.DownloadImage(ctx, img.DriveFileID)
	case img.URL != "":
		raw, err = s.fetchURL(ctx, img.URL)
	default:
		return nil, fmt.Errorf("image %s has no usable source", imageID)
	}
	if err != nil {
		return nil, err
	}

	optimized, err := OptimizeImage(raw, size)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Save(cachePath, optimized); err != nil {
		log.Printf("⚠️  Warning: failed to cache image %s: %v", imageID, err)
	}
	return optimized, nil
}

func (s *ImageService) fetchURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build image request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image source returned status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	return data, nil
}
