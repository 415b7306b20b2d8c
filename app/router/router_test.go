package router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrina/app/controller"
	"vitrina/guard"
	"vitrina/models"
	"vitrina/repository"
	"vitrina/service"
	"vitrina/shortlist"
	"vitrina/siteconfig"
	"vitrina/toast"
)

type fakeCatalogs struct {
	repository.CatalogRepositoryInterface
	bySlug map[string]*models.Catalog
}

func (f *fakeCatalogs) GetBySlug(ctx context.Context, slug string) (*models.Catalog, error) {
	if c, ok := f.bySlug[slug]; ok {
		return c, nil
	}
	return nil, repository.ErrNotFound
}

type fakeProducts struct {
	repository.ProductRepositoryInterface
	all []models.Product
}

func (f *fakeProducts) GetByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	var out []models.Product
	for _, p := range f.all {
		for _, id := range ids {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

type fakeSiteConfig struct {
	raw   json.RawMessage
	gets  int
	saved json.RawMessage
}

func (f *fakeSiteConfig) Get(ctx context.Context) (json.RawMessage, error) {
	f.gets++
	return f.raw, nil
}

func (f *fakeSiteConfig) Save(ctx context.Context, config json.RawMessage) error {
	f.saved = config
	f.raw = config
	return nil
}

type fakeSessions struct{}

func (fakeSessions) GetSession(ctx context.Context, token string) (*models.Session, error) {
	if token == "valid" {
		return &models.Session{Token: token, UserID: "u1", Email: "admin@tienda.co"}, nil
	}
	return nil, repository.ErrNotFound
}

type stubExport struct{}

func (stubExport) RenderCatalogHTML(ctx context.Context, slug string) ([]byte, error) {
	return []byte("<html></html>"), nil
}

func (stubExport) GeneratePDF(ctx context.Context, slug string) ([]byte, error) {
	return []byte("%PDF-1.4"), nil
}

type fixture struct {
	handler    http.Handler
	siteConfig *fakeSiteConfig
	notifier   *toast.Notifier
	shortlists *shortlist.Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	var items []models.CatalogItem
	var products []models.Product
	for i := 0; i < 20; i++ {
		category := "Collares"
		if i%2 == 1 {
			category = "Camas"
		}
		p := models.Product{
			ID:       fmt.Sprintf("p%02d", i),
			Name:     fmt.Sprintf("Producto %02d", i),
			Category: category,
			Price:    decimal.NewFromInt(int64(1000 * (i + 1))),
		}
		products = append(products, p)
		items = append(items, models.CatalogItem{ID: fmt.Sprintf("i%02d", i), Position: i, Product: &products[i]})
	}

	catalogs := &fakeCatalogs{bySlug: map[string]*models.Catalog{
		"verano": {ID: "c1", Name: "Verano", Slug: "verano", Items: items},
	}}
	productRepo := &fakeProducts{all: products}
	siteConfig := &fakeSiteConfig{raw: json.RawMessage(`{"nombre":"Tienda","paginas":{"nosotros":"Somos **nosotros**"}}`)}
	notifier := toast.NewNotifier()
	t.Cleanup(notifier.Hide)
	loader := siteconfig.NewLoader(siteConfig)
	shortlists := shortlist.NewRegistry()

	controllers := &Controllers{
		Catalog:      controller.NewCatalogController(catalogs, stubExport{}),
		Shortlist:    controller.NewShortlistController(shortlists, productRepo, false),
		Public:       controller.NewPublicController(loader, service.NewContentService(loader), productRepo),
		Auth:         controller.NewAuthController(nil, fakeSessions{}, false),
		AdminCatalog: controller.NewAdminCatalogController(catalogs, stubExport{}, notifier),
		AdminConfig:  controller.NewAdminConfigController(siteConfig, loader, notifier),
		Toast:        controller.NewToastController(notifier),
	}

	return &fixture{
		handler:    SetupRoutes(controllers, guard.New(fakeSessions{}), loader),
		siteConfig: siteConfig,
		notifier:   notifier,
		shortlists: shortlists,
	}
}

func (f *fixture) do(t *testing.T, method, target string, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

var adminCookie = &http.Cookie{Name: guard.SessionCookieName, Value: "valid"}

func TestPing(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAdminRequiresSession(t *testing.T) {
	f := newFixture(t)

	for _, path := range []string{"/admin", "/admin/productos", "/admin/catalogos/editar/c1", "/admin/toast"} {
		rec := f.do(t, http.MethodGet, path, "")
		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, "/login", rec.Header().Get("Location"), path)
	}

	rec := f.do(t, http.MethodGet, "/admin", "", adminCookie)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin/productos", rec.Header().Get("Location"))

	rec = f.do(t, http.MethodGet, "/admin/toast", "", &http.Cookie{Name: guard.SessionCookieName, Value: "expired"})
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestCatalogView(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/c/verano?categoria=Collares&orden=precio-desc&pagina=1&vista=list", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view controller.CatalogViewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "verano", view.Catalog.Slug)
	assert.Equal(t, []string{"Todos", "Camas", "Collares"}, view.Categories)
	assert.Equal(t, 10, view.TotalCount)
	assert.Equal(t, 1, view.TotalPages)
	assert.Equal(t, "list", view.ViewMode)
	require.Len(t, view.Products, 10)
	assert.Equal(t, "p18", view.Products[0].ID)
	assert.False(t, view.IsExpired)
}

func TestCatalogViewPaginationClamps(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/c/verano?pagina=9", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view controller.CatalogViewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, 2, view.TotalPages)
	assert.Equal(t, 2, view.CurrentPage)
	assert.Len(t, view.Products, 4)
}

func TestCatalogViewNotFound(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/c/invierno", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"No se encontró el catálogo solicitado.","tipo":"not_found"}`, rec.Body.String())
}

func TestCatalogViewRejectsUnknownSort(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/c/verano?orden=azar", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestShortlistFlow(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/cotizacion/p01/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	visitor := cookies[0]
	assert.Equal(t, controller.VisitorCookieName, visitor.Name)

	rec = f.do(t, http.MethodPut, "/cotizacion/p03", "", visitor)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = f.do(t, http.MethodPut, "/cotizacion/p03", "", visitor)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/cotizacion", "", visitor)
	require.Equal(t, http.StatusOK, rec.Code)
	var list models.ShortlistResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 2, list.Total)
	assert.Equal(t, []string{"p01", "p03"}, list.ProductIDs)
	assert.Equal(t, "$6.000", list.Formatted)

	rec = f.do(t, http.MethodPost, "/cotizacion/p01/toggle", "", visitor)
	assert.JSONEq(t, `{"productoId":"p01","enLista":false,"totalProductos":1}`, rec.Body.String())

	// another visitor has an empty list
	rec = f.do(t, http.MethodGet, "/cotizacion", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Zero(t, list.Total)

	rec = f.do(t, http.MethodDelete, "/cotizacion", "", visitor)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = f.do(t, http.MethodGet, "/cotizacion", "", visitor)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Zero(t, list.Total)
}

func TestPublicLayoutLoadsConfigOnce(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"configuracion":{"nombre":"Tienda","paginas":{"nosotros":"Somos **nosotros**"}}}`, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/nosotros", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var page service.Page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Contains(t, string(page.HTML), `<strong>nosotros</strong>`)

	assert.Equal(t, 1, f.siteConfig.gets)
}

func TestSavingConfigResetsLoaderAndRaisesToast(t *testing.T) {
	f := newFixture(t)

	f.do(t, http.MethodGet, "/", "")
	require.Equal(t, 1, f.siteConfig.gets)

	rec := f.do(t, http.MethodPut, "/admin/configuracion", `{"nombre":"Nueva"}`, adminCookie)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.JSONEq(t, `{"nombre":"Nueva"}`, string(f.siteConfig.saved))

	current := f.notifier.Current()
	assert.True(t, current.Visible)
	assert.Equal(t, toast.KindSuccess, current.Kind)

	rec = f.do(t, http.MethodGet, "/", "")
	assert.JSONEq(t, `{"configuracion":{"nombre":"Nueva"}}`, rec.Body.String())
	assert.Equal(t, 2, f.siteConfig.gets)

	rec = f.do(t, http.MethodDelete, "/admin/toast", "", adminCookie)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, f.notifier.Current().Visible)
}

func TestSavingConfigRejectsInvalidJSON(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPut, "/admin/configuracion", `{nope`, adminCookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, f.siteConfig.saved)
}

func TestLoginStatus(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/login", "")
	assert.JSONEq(t, `{"autenticado":false}`, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/login", "", adminCookie)
	var status struct {
		Authenticated bool   `json:"autenticado"`
		Redirect      string `json:"redirect"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.True(t, status.Authenticated)
	assert.Equal(t, "/admin", status.Redirect)
}

func TestRenderForExport(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/c/verano/render", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestShortlistReadsDoNotAllocateStores(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 100; i++ {
		rec := f.do(t, http.MethodGet, "/cotizacion", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Result().Cookies())
	}
	unknown := &http.Cookie{Name: controller.VisitorCookieName, Value: "desconocido"}
	rec := f.do(t, http.MethodGet, "/cotizacion", "", unknown)
	assert.JSONEq(t, `{"totalProductos":0,"productoIds":[],"subtotal":"0","subtotalFormateado":"$0"}`, rec.Body.String())
	f.do(t, http.MethodDelete, "/cotizacion/p01", "", unknown)
	f.do(t, http.MethodDelete, "/cotizacion", "")

	assert.Zero(t, f.shortlists.Len())

	f.do(t, http.MethodPut, "/cotizacion/p01", "")
	assert.Equal(t, 1, f.shortlists.Len())
}
