package repository

import (
	"context"
	"encoding/json"
	"errors"

	"vitrina/models"
)

// ErrNotFound is returned when a query that expects one row returns none
var ErrNotFound = errors.New("not found")

// CatalogRepositoryInterface defines the contract for catalog repository operations
type CatalogRepositoryInterface interface {
	GetBySlug(ctx context.Context, slug string) (*models.Catalog, error)
	GetByID(ctx context.Context, id string) (*models.Catalog, error)
	List(ctx context.Context) ([]models.CatalogSummary, error)
	Create(ctx context.Context, req *models.SaveCatalogRequest) (*models.Catalog, error)
	Update(ctx context.Context, id string, req *models.SaveCatalogRequest) (*models.Catalog, error)
	Delete(ctx context.Context, id string) error
}

// ProductRepositoryInterface defines the contract for product repository operations
type ProductRepositoryInterface interface {
	List(ctx context.Context, filters models.ProductFilterParams) ([]models.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	GetByCode(ctx context.Context, code string) (*models.Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Product, error)
	Create(ctx context.Context, req *models.SaveProductRequest) (*models.Product, error)
	Update(ctx context.Context, id string, req *models.SaveProductRequest) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

// ProductImageRepositoryInterface defines the contract for product image operations
type ProductImageRepositoryInterface interface {
	GetByID(ctx context.Context, id string) (*models.ProductImage, error)
	ExistsByDriveFileID(ctx context.Context, driveFileID string) (bool, error)
	Insert(ctx context.Context, image *models.ProductImage) error
}

// SiteConfigRepositoryInterface defines the contract for the singleton configuration row
type SiteConfigRepositoryInterface interface {
	Get(ctx context.Context) (json.RawMessage, error)
	Save(ctx context.Context, config json.RawMessage) error
}

// SessionRepositoryInterface defines the contract for admin sessions and users
type SessionRepositoryInterface interface {
	GetSession(ctx context.Context, token string) (*models.Session, error)
	CreateSession(ctx context.Context, session *models.Session) error
	DeleteSession(ctx context.Context, token string) error
	GetUserByEmail(ctx context.Context, email string) (*models.AdminUser, error)
}
