package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/samber/lo"

	"vitrina/models"
	"vitrina/repository"
	"vitrina/utils"
)

//go:embed templates/catalog.html
var templatesFS embed.FS

var catalogTemplate = template.Must(template.New("catalog.html").Funcs(template.FuncMap{
	"formatCOP": utils.FormatCOP,
	"imageURL": func(id string) string {
		return "/imagenes/" + url.PathEscape(id) + "?size=" + SizeMedium
	},
}).ParseFS(templatesFS, "templates/catalog.html"))

// itemsPerPage is the number of products per printed page
const itemsPerPage = 9

// CatalogExportServiceInterface defines the contract for printable catalogs
type CatalogExportServiceInterface interface {
	RenderCatalogHTML(ctx context.Context, slug string) ([]byte, error)
	GeneratePDF(ctx context.Context, slug string) ([]byte, error)
}

// CatalogExportService renders catalogs to printable HTML and PDF
type CatalogExportService struct {
	repository repository.CatalogRepositoryInterface
	baseURL    string // Base URL the headless browser loads the render page from
	chromePath string
}

// NewCatalogExportService creates a new CatalogExportService
func NewCatalogExportService(repo repository.CatalogRepositoryInterface, baseURL, chromePath string) *CatalogExportService {
	return &CatalogExportService{
		repository: repo,
		baseURL:    baseURL,
		chromePath: chromePath,
	}
}

// Ensure CatalogExportService implements CatalogExportServiceInterface
var _ CatalogExportServiceInterface = (*CatalogExportService)(nil)

// detectChromePath returns the configured Chrome/Chromium executable if it
// exists, then checks common installation paths
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// catalogPages splits the resolved products into printed pages
func catalogPages(catalog *models.Catalog) [][]models.Product {
	products := lo.FilterMap(catalog.Items, func(item models.CatalogItem, _ int) (models.Product, bool) {
		if item.Product == nil {
			return models.Product{}, false
		}
		return *item.Product, true
	})
	if len(products) == 0 {
		return [][]models.Product{{}}
	}
	return lo.Chunk(products, itemsPerPage)
}

// RenderCatalogHTML renders the printable catalog page
func (s *CatalogExportService) RenderCatalogHTML(ctx context.Context, slug string) ([]byte, error) {
	catalog, err := s.repository.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	data := struct {
		Catalog *models.Catalog
		Pages   [][]models.Product
	}{
		Catalog: catalog,
		Pages:   catalogPages(catalog),
	}

	var buf bytes.Buffer
	if err := catalogTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

// GeneratePDF prints the render page of the catalog with headless Chrome
func (s *CatalogExportService) GeneratePDF(ctx context.Context, slug string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
		chromedp.Flag("enable-print-preview", true),
	)
	if chromePath := detectChromePath(s.chromePath); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := fmt.Sprintf("%s/c/%s/render", s.baseURL, url.PathEscape(slug))
	log.Printf("🖨️  Generating PDF from %s", renderURL)

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123),
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		// Wait for fonts and images to load
		chromedp.Evaluate(`
			Promise.all([
				document.fonts.ready,
				...Array.from(document.images).map(img => img.complete ? null : new Promise(resolve => {
					const timeout = setTimeout(resolve, 5000);
					img.onload = img.onerror = () => { clearTimeout(timeout); resolve(); };
				}))
			]).then(() => true);
		`, nil, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 210mm x 297mm = 8.27" x 11.69"
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	log.Printf("✓ PDF generated for catalog %s (%d bytes)", slug, len(pdfBuf))
	return pdfBuf, nil
}
