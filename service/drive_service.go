package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"regexp"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"vitrina/models"
	"vitrina/utils"
)

// DriveService handles Google Drive API operations
type DriveService struct {
	client *drive.Service
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(ctx context.Context, credentialsPath string) (*DriveService, error) {
	driveService, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client: driveService,
	}, nil
}

var imageMimeTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
}

// ErrInvalidFolderID is returned for folder IDs outside the Drive ID alphabet
var ErrInvalidFolderID = errors.New("invalid drive folder id")

var folderIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateFolderID rejects IDs that could break out of the quoted Drive query
func ValidateFolderID(folderID string) error {
	if !folderIDPattern.MatchString(folderID) {
		return fmt.Errorf("%w: %q", ErrInvalidFolderID, folderID)
	}
	return nil
}

func folderQuery(folderID string) (string, error) {
	if err := ValidateFolderID(folderID); err != nil {
		return "", err
	}
	return fmt.Sprintf("'%s' in parents and trashed=false", folderID), nil
}

// ListProductImages lists all image files in a Google Drive folder whose
// names carry a product code
func (ds *DriveService) ListProductImages(ctx context.Context, folderID string) ([]models.DriveImage, error) {
	query, err := folderQuery(folderID)
	if err != nil {
		return nil, err
	}

	var images []models.DriveImage
	err = ds.client.Files.List().
		Q(query).
		Fields("nextPageToken, files(id, name, mimeType)").
		Pages(ctx, func(r *drive.FileList) error {
			for _, file := range r.Files {
				if !imageMimeTypes[strings.ToLower(file.MimeType)] {
					continue
				}
				code, position, err := utils.ParseImageFileName(file.Name)
				if err != nil {
					log.Printf("⚠️  Skipping %s: %v", file.Name, err)
					continue
				}
				images = append(images, models.DriveImage{
					DriveFileID: file.Id,
					FileName:    file.Name,
					ProductCode: code,
					Position:    position,
				})
			}
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	log.Printf("📂 Found %d product images in folder %s", len(images), folderID)
	return images, nil
}

// DownloadImage downloads the raw bytes of a Drive file
func (ds *DriveService) DownloadImage(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := ds.client.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fileID, err)
	}
	log.Printf("📥 Downloaded %s (%d bytes)", fileID, len(data))
	return data, nil
}
