package app

import (
	"context"
	"log"
	"net/http"

	"vitrina/app/controller"
	"vitrina/app/router"
	"vitrina/config"
	"vitrina/guard"
	"vitrina/repository"
	"vitrina/service"
	"vitrina/shortlist"
	"vitrina/siteconfig"
	"vitrina/toast"
)

// Initialize wires repositories, the process-wide singletons, services and
// controllers, and returns the HTTP handler. The database must already be open.
func Initialize(ctx context.Context, cfg *config.Config) (http.Handler, error) {
	// Repositories
	catalogRepo := repository.NewCatalogRepository()
	productRepo := repository.NewProductRepository()
	imageRepo := repository.NewProductImageRepository()
	siteConfigRepo := repository.NewSiteConfigRepository()
	sessionRepo := repository.NewSessionRepository()

	// Process-wide state
	notifier := toast.NewNotifier()
	configLoader := siteconfig.NewLoader(siteConfigRepo)
	shortlists := shortlist.NewRegistry()
	navGuard := guard.New(sessionRepo)

	// Google Drive is optional: without credentials images come from their URL
	// and the import endpoint is disabled
	var driveService service.DriveServiceInterface
	var importService service.ImageImportServiceInterface
	if cfg.Credentials != "" {
		ds, err := service.NewDriveService(ctx, cfg.Credentials)
		if err != nil {
			return nil, err
		}
		driveService = ds
		importService = service.NewImageImportService(ds, productRepo, imageRepo)
	} else {
		log.Printf("⚠️  GOOGLE_APPLICATION_CREDENTIALS is not set, Drive image import disabled")
	}

	imageCache := service.NewImageCache(cfg.ImageCacheDir)
	if err := imageCache.EnsureDir(); err != nil {
		return nil, err
	}

	imageService := service.NewImageService(imageRepo, driveService, imageCache)
	exportService := service.NewCatalogExportService(catalogRepo, cfg.BaseURL, cfg.ChromePath)
	contentService := service.NewContentService(configLoader)
	authService := service.NewAuthService(sessionRepo)

	controllers := &router.Controllers{
		Catalog:      controller.NewCatalogController(catalogRepo, exportService),
		Shortlist:    controller.NewShortlistController(shortlists, productRepo, cfg.IsProduction()),
		Public:       controller.NewPublicController(configLoader, contentService, productRepo),
		Auth:         controller.NewAuthController(authService, sessionRepo, cfg.IsProduction()),
		Image:        controller.NewImageController(imageService),
		AdminProduct: controller.NewAdminProductController(productRepo, importService, cfg.DriveFolderID, notifier),
		AdminCatalog: controller.NewAdminCatalogController(catalogRepo, exportService, notifier),
		AdminConfig:  controller.NewAdminConfigController(siteConfigRepo, configLoader, notifier),
		Toast:        controller.NewToastController(notifier),
	}

	return router.SetupRoutes(controllers, navGuard, configLoader), nil
}
